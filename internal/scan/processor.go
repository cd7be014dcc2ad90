// Package scan simulates the document side of the intake wizard: OCR of an
// uploaded licence or registration photo and VIN lookups. There is no real
// OCR or registry behind it; extraction is deterministic, keyed on the
// uploaded file's name, after a fixed artificial latency. The latency is the
// one honest part of the simulation: it is cancellable, and a cancelled
// operation never yields a result that could be applied late.
package scan

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"
)

const (
	// DocTypeLicense and DocTypeRegistration are the documents the wizard
	// understands. Anything else comes back as raw text only.
	DocTypeLicense      = "license"
	DocTypeRegistration = "registration"
)

var timeNow = time.Now

// Processor runs simulated document scans.
type Processor struct {
	delay time.Duration
}

func NewProcessor(delay time.Duration) *Processor {
	return &Processor{delay: delay}
}

// Process "scans" the named file and returns extracted applicant fields keyed
// by record field name. It blocks for the simulated latency; if ctx is
// cancelled first, it returns ctx.Err() and the pending result is discarded.
func (p *Processor) Process(ctx context.Context, filename, docType string) (map[string]string, error) {
	text, err := p.extractText(ctx, filename)
	if err != nil {
		return nil, err
	}

	switch docType {
	case DocTypeLicense:
		return ParseDriversLicense(text), nil
	case DocTypeRegistration:
		return ParseVehicleRegistration(text), nil
	default:
		return map[string]string{"rawText": strings.TrimSpace(text)}, nil
	}
}

// extractText stands in for the OCR engine. The canned output depends on the
// file name so the demo flow produces believable data.
func (p *Processor) extractText(ctx context.Context, filename string) (string, error) {
	if err := p.wait(ctx); err != nil {
		return "", err
	}

	name := strings.ToLower(filename)
	switch {
	case strings.Contains(name, "license"):
		return `
John Smith
123456789
123 Main Street
Toronto, ON M5V 3A8
1990-05-15
Male
Married
Licensed since 2010
`, nil
	case strings.Contains(name, "registration"):
		return `
2020 Toyota Camry
VIN: 1234567890ABCDEFG
Registered Owner: John Smith
Expiry Date: 2025-06-30
`, nil
	default:
		return "Sample extracted text from document", nil
	}
}

func (p *Processor) wait(ctx context.Context) error {
	timer := time.NewTimer(p.delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

var (
	licenseNumberRe = regexp.MustCompile(`\d{9}`)
	personNameRe    = regexp.MustCompile(`[A-Z][a-z]+ [A-Z][a-z]+`)
	isoDateRe       = regexp.MustCompile(`\d{4}-\d{2}-\d{2}`)
	genderRe        = regexp.MustCompile(`(?i)Male|Female`)
	maritalRe       = regexp.MustCompile(`(?i)Married|Single|Divorced|Widowed`)
	postalCodeRe    = regexp.MustCompile(`[A-Z]\d[A-Z] \d[A-Z]\d`)
	licensedSinceRe = regexp.MustCompile(`Licensed since \d{4}`)
	yearRe          = regexp.MustCompile(`\d{4}`)
	vehicleLineRe   = regexp.MustCompile(`(\d{4}) ([A-Z][a-z]+) ([A-Z][a-z]+)`)
	vinLineRe       = regexp.MustCompile(`VIN: ([A-Z0-9]+)`)
)

// ParseDriversLicense pulls applicant fields out of OCR text. Each line is
// classified by the first pattern that matches and a field is only filled
// once, so line order in the scanned document matters.
func ParseDriversLicense(text string) map[string]string {
	data := map[string]string{
		"firstName":     "",
		"lastName":      "",
		"licenseNumber": "",
		"address":       "",
		"city":          "",
		"province":      "",
		"postalCode":    "",
		"dateOfBirth":   "",
		"gender":        "",
		"maritalStatus": "",
		"yearsLicensed": "",
	}

	for _, line := range textLines(text) {
		switch {
		case licenseNumberRe.MatchString(line) && data["licenseNumber"] == "":
			data["licenseNumber"] = licenseNumberRe.FindString(line)

		case personNameRe.MatchString(line) && data["firstName"] == "":
			parts := strings.Split(line, " ")
			data["firstName"] = parts[0]
			if len(parts) > 1 {
				data["lastName"] = parts[1]
			}

		case isoDateRe.MatchString(line) && data["dateOfBirth"] == "":
			data["dateOfBirth"] = line

		case genderRe.MatchString(line) && data["gender"] == "":
			data["gender"] = strings.ToLower(line)

		case maritalRe.MatchString(line) && data["maritalStatus"] == "":
			data["maritalStatus"] = strings.ToLower(line)

		case postalCodeRe.MatchString(line):
			parts := strings.Split(line, ",")
			if len(parts) >= 2 {
				data["address"] = strings.TrimSpace(parts[0])
				cityProv := strings.Split(strings.TrimSpace(parts[1]), " ")
				if len(cityProv) > 0 {
					data["city"] = cityProv[0]
				}
				if len(cityProv) > 1 {
					data["province"] = cityProv[1]
				}
				if len(cityProv) > 2 {
					data["postalCode"] = cityProv[2]
				}
			}

		case licensedSinceRe.MatchString(line):
			year, _ := parseIntPrefix(yearRe.FindString(line))
			data["yearsLicensed"] = fmt.Sprintf("%d+", timeNow().Year()-year)
		}
	}

	return data
}

// ParseVehicleRegistration pulls vehicle fields out of OCR text.
func ParseVehicleRegistration(text string) map[string]string {
	data := map[string]string{
		"year":  "",
		"make":  "",
		"model": "",
		"vin":   "",
	}

	for _, line := range textLines(text) {
		if m := vehicleLineRe.FindStringSubmatch(line); m != nil {
			data["year"] = m[1]
			data["make"] = m[2]
			data["model"] = m[3]
		} else if m := vinLineRe.FindStringSubmatch(line); m != nil {
			data["vin"] = m[1]
		}
	}

	return data
}

// ValidationResult reports how usable an extraction was.
type ValidationResult struct {
	Valid    bool     `json:"valid"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

// ValidateExtract checks an extraction for the fields the given document type
// is expected to yield. Missing essentials are errors; incomplete address
// data is only a warning.
func ValidateExtract(data map[string]string, docType string) ValidationResult {
	var errs, warnings []string

	switch docType {
	case DocTypeLicense:
		if data["firstName"] == "" || data["lastName"] == "" {
			errs = append(errs, "Unable to extract full name from license")
		}
		if data["licenseNumber"] == "" {
			errs = append(errs, "Unable to extract license number")
		}
		if data["dateOfBirth"] == "" {
			errs = append(errs, "Unable to extract date of birth")
		}
		if data["address"] == "" || data["city"] == "" || data["province"] == "" || data["postalCode"] == "" {
			warnings = append(warnings, "Some address information may be incomplete")
		}
	case DocTypeRegistration:
		if data["vin"] == "" {
			errs = append(errs, "Unable to extract VIN number")
		}
		if data["year"] == "" || data["make"] == "" || data["model"] == "" {
			errs = append(errs, "Unable to extract complete vehicle information")
		}
	}

	return ValidationResult{Valid: len(errs) == 0, Errors: errs, Warnings: warnings}
}

func textLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

func parseIntPrefix(s string) (int, bool) {
	n := 0
	found := false
	for _, c := range s {
		if c < '0' || c > '9' {
			break
		}
		n = n*10 + int(c-'0')
		found = true
	}
	return n, found
}
