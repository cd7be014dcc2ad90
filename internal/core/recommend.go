package core

import "fmt"

// Recommendation is one advisory item shown on the quote summary.
type Recommendation struct {
	Type        string `json:"type"` // coverage, discount, improvement
	Priority    string `json:"priority"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Benefit     string `json:"benefit"`
}

// CoverageSuggestion is the coverage configuration the advisor proposes.
type CoverageSuggestion struct {
	Liability           string `json:"liability"`
	Collision           bool   `json:"collision"`
	Comprehensive       bool   `json:"comprehensive"`
	AccidentForgiveness bool   `json:"accidentForgiveness"`
}

// Advice bundles the suggested coverage with the ranked recommendation list.
type Advice struct {
	Coverage        CoverageSuggestion `json:"coverage"`
	Recommendations []Recommendation   `json:"recommendations"`
}

// Recommend turns the two risk assessments into a coverage suggestion and an
// ordered recommendation list: tier-driven items first, then one improvement
// item per high-impact driver factor, then per high-impact vehicle factor.
// Only factors whose impact is exactly "high" qualify; "very high" factors
// (license suspensions) are deliberate exclusions.
func Recommend(driver, vehicle RiskAssessment) Advice {
	overall := tierFor(max(driver.Score, vehicle.Score))

	coverage := CoverageSuggestion{
		Liability:     "1000000",
		Collision:     true,
		Comprehensive: true,
	}
	var recs []Recommendation

	switch overall {
	case RiskTierHigh:
		coverage.AccidentForgiveness = true
		recs = append(recs,
			Recommendation{
				Type:        "coverage",
				Priority:    "high",
				Title:       "Accident Forgiveness Recommended",
				Description: "Given your risk profile, accident forgiveness can protect your rates after your first at-fault accident.",
				Benefit:     "Protects your premium from rate increases after first accident",
			},
			Recommendation{
				Type:        "discount",
				Priority:    "medium",
				Title:       "Safe Driver Course Discount",
				Description: "Consider taking a defensive driving course to reduce your premiums.",
				Benefit:     "Up to 10% discount on your premium",
			})
	case RiskTierMedium:
		recs = append(recs, Recommendation{
			Type:        "discount",
			Priority:    "medium",
			Title:       "Loyalty Discount",
			Description: "Stay with us for multiple policies to receive loyalty discounts.",
			Benefit:     "Up to 15% discount for multiple policies",
		})
	default:
		coverage.Liability = "2000000"
		recs = append(recs,
			Recommendation{
				Type:        "coverage",
				Priority:    "low",
				Title:       "Higher Liability Coverage",
				Description: "As a low-risk driver, consider increasing your liability coverage.",
				Benefit:     "Better protection in case of major accidents",
			},
			Recommendation{
				Type:        "discount",
				Priority:    "high",
				Title:       "Paperless Billing Discount",
				Description: "Switch to paperless billing to save money and help the environment.",
				Benefit:     "5% discount on your premium",
			})
	}

	for _, f := range driver.Factors {
		if f.Impact == ImpactHigh {
			recs = append(recs, Recommendation{
				Type:        "improvement",
				Priority:    "high",
				Title:       fmt.Sprintf("Improve Your %s", f.Factor),
				Description: f.Description,
				Benefit:     "Reducing risk factors can lower your insurance costs",
			})
		}
	}

	for _, f := range vehicle.Factors {
		if f.Impact == ImpactHigh {
			recs = append(recs, Recommendation{
				Type:        "improvement",
				Priority:    "medium",
				Title:       fmt.Sprintf("Vehicle %s", f.Factor),
				Description: f.Description,
				Benefit:     "Safer vehicles or driving habits can reduce your premiums",
			})
		}
	}

	return Advice{Coverage: coverage, Recommendations: recs}
}
