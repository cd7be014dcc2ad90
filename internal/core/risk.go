package core

import (
	"fmt"
	"strings"
	"time"
)

// timeNow is swapped out in tests to freeze age and vehicle-age math.
var timeNow = time.Now

type Impact string

const (
	ImpactLow      Impact = "low"
	ImpactMedium   Impact = "medium"
	ImpactHigh     Impact = "high"
	ImpactVeryHigh Impact = "very high"
)

type RiskTier string

const (
	RiskTierLow    RiskTier = "low"
	RiskTierMedium RiskTier = "medium"
	RiskTierHigh   RiskTier = "high"
)

// RiskFactor is one scored contributor to an assessment.
type RiskFactor struct {
	Factor      string `json:"factor"`
	Impact      Impact `json:"impact"`
	Description string `json:"description"`
}

// RiskAssessment is the output of a scorer: a clamped 0-100 score, the tier
// it falls into, and the factors that produced it, in scoring order.
type RiskAssessment struct {
	Score           int          `json:"score"`
	RiskLevel       RiskTier     `json:"riskLevel"`
	RiskDescription string       `json:"riskDescription"`
	Factors         []RiskFactor `json:"factors"`
}

const dateLayout = "2006-01-02"

// hoursPerYear uses the 365.25-day year the age calculation is defined over.
const hoursPerYear = 365.25 * 24

// ScoreDriver derives the driver risk assessment from the applicant record.
// It is pure and deterministic; blank or unparseable inputs contribute
// nothing rather than erroring.
func ScoreDriver(rec ApplicantRecord) RiskAssessment {
	score := 0
	var factors []RiskFactor

	// Age: drivers under 25 and over 65 carry extra risk.
	if birth, err := time.Parse(dateLayout, rec.DateOfBirth); err == nil {
		age := int(timeNow().Sub(birth).Hours() / hoursPerYear)
		switch {
		case age < 25:
			score += 20
			factors = append(factors, RiskFactor{"Young Driver", ImpactHigh,
				"Drivers under 25 are statistically higher risk"})
		case age > 65:
			score += 15
			factors = append(factors, RiskFactor{"Experienced Driver", ImpactMedium,
				"Drivers over 65 may have slower reaction times"})
		default:
			factors = append(factors, RiskFactor{"Prime Age", ImpactLow,
				"Drivers aged 25-65 are generally lower risk"})
		}
	}

	// Licensed years come in as a bucket label like "10+"; only the leading
	// digits count.
	if years, ok := parseLeadingInt(rec.YearsLicensed); ok {
		switch {
		case years < 2:
			score += 15
			factors = append(factors, RiskFactor{"Limited Experience", ImpactHigh,
				"New drivers have higher accident rates"})
		case years < 5:
			score += 10
			factors = append(factors, RiskFactor{"Moderate Experience", ImpactMedium,
				"Some driving experience reduces risk"})
		default:
			score -= 5
			factors = append(factors, RiskFactor{"Experienced Driver", ImpactLow,
				"Extensive driving experience reduces risk"})
		}
	}

	// Claims history. Anything but an explicit "yes" counts as a clean record.
	if rec.HasPreviousClaims == "yes" {
		claims, ok := parseLeadingInt(rec.NumberOfClaims)
		if !ok || claims < 1 {
			claims = 1
		}
		score += claims * 10
		factors = append(factors, RiskFactor{"Claims History", ImpactHigh,
			fmt.Sprintf("Previous claims indicate higher risk (%d claim%s)", claims, plural(claims))})
	} else {
		score -= 5
		factors = append(factors, RiskFactor{"Clean Record", ImpactLow,
			"No previous claims indicate lower risk"})
	}

	if rec.HasViolations == "yes" {
		score += 15
		factors = append(factors, RiskFactor{"Traffic Violations", ImpactHigh,
			"Traffic violations indicate higher risk behavior"})
	}

	if rec.DemeritPoints != "" {
		if points, ok := parseLeadingInt(rec.DemeritPoints); ok {
			switch {
			case points > 5:
				score += points * 2
				factors = append(factors, RiskFactor{"Demerit Points", ImpactHigh,
					fmt.Sprintf("High demerit points (%d) indicate risky driving", points)})
			case points > 0:
				score += points
				factors = append(factors, RiskFactor{"Demerit Points", ImpactMedium,
					fmt.Sprintf("Some demerit points (%d) indicate minor infractions", points)})
			}
		}
	}

	if rec.HasSuspensions == "yes" {
		score += 25
		factors = append(factors, RiskFactor{"License Suspensions", ImpactVeryHigh,
			"Previous suspensions indicate serious risk"})
	}

	if rec.HasTickets == "yes" {
		score += 10
		factors = append(factors, RiskFactor{"Traffic Tickets", ImpactMedium,
			"Multiple tickets indicate higher risk"})
	}

	return assess(score, factors)
}

// ScoreVehicle derives the vehicle risk assessment from the applicant record.
func ScoreVehicle(rec ApplicantRecord) RiskAssessment {
	score := 0
	var factors []RiskFactor

	if year, ok := parseLeadingInt(rec.Year); ok {
		age := timeNow().Year() - year
		switch {
		case age > 15:
			score += 15
			factors = append(factors, RiskFactor{"Old Vehicle", ImpactMedium,
				fmt.Sprintf("Vehicle is %d years old", age)})
		case age > 10:
			score += 10
			factors = append(factors, RiskFactor{"Aged Vehicle", ImpactLow,
				fmt.Sprintf("Vehicle is %d years old", age)})
		default:
			score -= 5
			factors = append(factors, RiskFactor{"New Vehicle", ImpactLow,
				fmt.Sprintf("Vehicle is %d years old", age)})
		}
	}

	// Coarse vehicle-type heuristic keyed on the make/model name.
	if rec.Make != "" && rec.Model != "" {
		name := strings.ToLower(rec.Make + " " + rec.Model)
		switch {
		case strings.Contains(name, "sports") || strings.Contains(name, "mustang") || strings.Contains(name, "camaro"):
			score += 20
			factors = append(factors, RiskFactor{"Performance Vehicle", ImpactHigh,
				"Sports cars are statistically higher risk"})
		case strings.Contains(name, "truck") || strings.Contains(name, "suv"):
			score += 10
			factors = append(factors, RiskFactor{"Large Vehicle", ImpactMedium,
				"Larger vehicles may have higher repair costs"})
		default:
			factors = append(factors, RiskFactor{"Standard Vehicle", ImpactLow,
				"Standard passenger vehicle"})
		}
	}

	return assess(score, factors)
}

// assess clamps the raw score to [0,100] and labels the tier.
func assess(score int, factors []RiskFactor) RiskAssessment {
	score = clamp(score, 0, 100)
	tier := tierFor(score)
	return RiskAssessment{
		Score:           score,
		RiskLevel:       tier,
		RiskDescription: tierDescription(tier),
		Factors:         factors,
	}
}

func tierFor(score int) RiskTier {
	switch {
	case score >= 70:
		return RiskTierHigh
	case score >= 40:
		return RiskTierMedium
	default:
		return RiskTierLow
	}
}

func tierDescription(t RiskTier) string {
	switch t {
	case RiskTierHigh:
		return "High Risk"
	case RiskTierMedium:
		return "Medium Risk"
	default:
		return "Low Risk"
	}
}

func clamp(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}

// parseLeadingInt reads the leading integer of a bucketed field, so "10+"
// parses as 10 and "5000-10000" as 5000. Fields with no leading digits, such
// as blanks or prose labels, report ok=false and contribute nothing.
func parseLeadingInt(s string) (int, bool) {
	s = strings.TrimSpace(s)
	i := 0
	neg := false
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		neg = s[i] == '-'
		i++
	}
	start := i
	n := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		n = n*10 + int(s[i]-'0')
		i++
	}
	if i == start {
		return 0, false
	}
	if neg {
		n = -n
	}
	return n, true
}

func plural(n int) string {
	if n > 1 {
		return "s"
	}
	return ""
}
