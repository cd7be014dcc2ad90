// Package suggest produces deterministic, locally computed field suggestions
// and value predictions for the intake wizard. Despite the "smart assist"
// framing in the UI, nothing here calls out anywhere: suggestions are string
// cleanups and small heuristics over the data already typed in.
package suggest

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/rvanheerden/go-autoquote/internal/core"
)

var timeNow = time.Now

// Suggestion is one proposed replacement value for a field.
type Suggestion struct {
	Value      string  `json:"value"`
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
}

// Prediction is a guessed value for a field the user has not filled yet.
type Prediction struct {
	Value      string  `json:"value"`
	Confidence float64 `json:"confidence"`
	Source     string  `json:"source"`
}

var (
	usDateRe = regexp.MustCompile(`^(0[1-9]|1[0-2])/(0[1-9]|[12][0-9]|3[01])/\d{4}$`)
	emailRe  = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	nonDigit = regexp.MustCompile(`\D`)
	nonVIN   = regexp.MustCompile(`[^A-Z0-9]`)
)

// ForField returns suggestions for a single field given its current value.
// An empty slice means nothing worth proposing.
func ForField(field, value string, _ core.ApplicantRecord) []Suggestion {
	var suggestions []Suggestion

	switch field {
	case "firstName", "lastName":
		if len(value) > 0 {
			suggestions = append(suggestions, Suggestion{
				Value:      strings.ToUpper(value[:1]) + strings.ToLower(value[1:]),
				Label:      "Correct capitalization",
				Confidence: 0.8,
			})
		}

	case "dateOfBirth":
		if value != "" && !usDateRe.MatchString(value) {
			suggestions = append(suggestions, Suggestion{
				Value:      formatToDate(value),
				Label:      "Format as MM/DD/YYYY",
				Confidence: 0.9,
			})
		}

	case "email":
		if value != "" && !emailRe.MatchString(value) {
			if corrected := correctEmail(value); corrected != "" {
				suggestions = append(suggestions, Suggestion{
					Value:      corrected,
					Label:      "Did you mean?",
					Confidence: 0.95,
				})
			}
		}

	case "phone":
		if value != "" {
			if formatted := FormatPhone(value); formatted != value {
				suggestions = append(suggestions, Suggestion{
					Value:      formatted,
					Label:      "Format phone number",
					Confidence: 0.9,
				})
			}
		}

	case "address":
		if len(value) > 10 {
			suggestions = append(suggestions, Suggestion{
				Value:      capitalizeWords(value),
				Label:      "Format address",
				Confidence: 0.7,
			})
		}

	case "vin":
		if value != "" {
			if formatted := FormatVIN(value); formatted != value {
				suggestions = append(suggestions, Suggestion{
					Value:      formatted,
					Label:      "Format VIN",
					Confidence: 0.9,
				})
			}
			if len(value) == 17 {
				suggestions = append(suggestions, Suggestion{
					Value:      strings.ToUpper(value),
					Label:      "Standardize VIN",
					Confidence: 0.8,
				})
			}
		}
	}

	return suggestions
}

// Predict guesses values for unfilled fields from what is already present:
// an email from the applicant's name, licensed years for young drivers from
// their age, and the province from the postal code's forward sortation area.
func Predict(rec core.ApplicantRecord) map[string]Prediction {
	predictions := make(map[string]Prediction)

	if rec.FirstName != "" && rec.LastName != "" {
		predictions["email"] = Prediction{
			Value:      fmt.Sprintf("%s.%s@example.com", strings.ToLower(rec.FirstName), strings.ToLower(rec.LastName)),
			Confidence: 0.7,
			Source:     "name_based_prediction",
		}
	}

	if rec.DateOfBirth != "" {
		if age, ok := ageFromBirthDate(rec.DateOfBirth); ok && age >= 16 && age < 25 {
			predictions["yearsLicensed"] = Prediction{
				Value:      strconv.Itoa(max(0, age-16)),
				Confidence: 0.9,
				Source:     "age_based_prediction",
			}
		}
	}

	if rec.PostalCode != "" {
		if province := ProvinceFromPostal(rec.PostalCode); province != "" {
			predictions["province"] = Prediction{
				Value:      province,
				Confidence: 0.85,
				Source:     "postal_code_prediction",
			}
		}
	}

	return predictions
}

// provinceByFSA maps the first letter of a Canadian postal code to its
// province or territory. X covers both NT and NU; NT wins here.
var provinceByFSA = map[byte]string{
	'A': "NL",
	'B': "NS",
	'C': "PE",
	'E': "NB",
	'G': "QC",
	'H': "QC",
	'J': "QC",
	'K': "ON",
	'L': "ON",
	'M': "ON",
	'N': "ON",
	'P': "ON",
	'R': "MB",
	'S': "SK",
	'T': "AB",
	'V': "BC",
	'X': "NT",
	'Y': "YT",
}

// ProvinceFromPostal predicts the province code from a postal code, or ""
// when the leading letter is not a known forward sortation area.
func ProvinceFromPostal(postalCode string) string {
	if postalCode == "" {
		return ""
	}
	return provinceByFSA[strings.ToUpper(postalCode[:1])[0]]
}

// FormatPhone renders a 10-digit number as (NNN) NNN-NNNN and leaves
// anything else untouched.
func FormatPhone(phone string) string {
	cleaned := nonDigit.ReplaceAllString(phone, "")
	if len(cleaned) != 10 {
		return phone
	}
	return fmt.Sprintf("(%s) %s-%s", cleaned[:3], cleaned[3:6], cleaned[6:])
}

// FormatVIN uppercases, strips non-alphanumerics, and truncates to the
// standard 17 characters.
func FormatVIN(vin string) string {
	cleaned := nonVIN.ReplaceAllString(strings.ToUpper(vin), "")
	if len(cleaned) > 17 {
		cleaned = cleaned[:17]
	}
	return cleaned
}

// correctEmail proposes a fix for a typo'd domain when it sits within edit
// distance 2 of a common provider.
func correctEmail(email string) string {
	commonDomains := []string{"gmail.com", "yahoo.com", "hotmail.com", "outlook.com"}
	parts := strings.Split(email, "@")
	if len(parts) != 2 {
		return ""
	}
	for _, domain := range commonDomains {
		if levenshtein(parts[1], domain) <= 2 {
			return parts[0] + "@" + domain
		}
	}
	return ""
}

func levenshtein(a, b string) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	prev := make([]int, len(a)+1)
	curr := make([]int, len(a)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(b); i++ {
		curr[0] = i
		for j := 1; j <= len(a); j++ {
			cost := 1
			if b[i-1] == a[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j-1]+cost, min(curr[j-1]+1, prev[j]+1))
		}
		prev, curr = curr, prev
	}

	return prev[len(a)]
}

// formatToDate squeezes the digits of a free-form date into MM/DD/YYYY when
// there are enough of them.
func formatToDate(s string) string {
	cleaned := nonDigit.ReplaceAllString(s, "")
	if len(cleaned) < 8 {
		return s
	}
	return fmt.Sprintf("%s/%s/%s", cleaned[0:2], cleaned[2:4], cleaned[4:8])
}

func capitalizeWords(s string) string {
	var b strings.Builder
	prevLetterOrDigit := false
	for _, r := range s {
		isWordChar := r == '_' ||
			(r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
		if isWordChar && !prevLetterOrDigit && r >= 'a' && r <= 'z' {
			r = r - 'a' + 'A'
		}
		b.WriteRune(r)
		prevLetterOrDigit = isWordChar
	}
	return b.String()
}

func ageFromBirthDate(dob string) (int, bool) {
	birth, err := time.Parse("2006-01-02", dob)
	if err != nil {
		birth, err = time.Parse("01/02/2006", dob)
		if err != nil {
			return 0, false
		}
	}

	now := timeNow()
	age := now.Year() - birth.Year()
	if now.Month() < birth.Month() || (now.Month() == birth.Month() && now.Day() < birth.Day()) {
		age--
	}
	return age, true
}
