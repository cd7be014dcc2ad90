package core

import (
	"math"
	"time"
)

// CoverageSelection are the flags the estimator prices against.
type CoverageSelection struct {
	Collision           bool `json:"collision"`
	Comprehensive       bool `json:"comprehensive"`
	AccidentForgiveness bool `json:"accidentForgiveness"`
}

// PremiumBreakdown itemizes the estimate. The components are rounded
// independently and the coverage factors compose multiplicatively, so they do
// not sum exactly to the annual figure; this is a documented estimate, not a
// reconciliation.
type PremiumBreakdown struct {
	Base                  int `json:"base"`
	DriverRiskAdjustment  int `json:"driverRiskAdjustment"`
	VehicleRiskAdjustment int `json:"vehicleRiskAdjustment"`
	CoverageAdjustments   int `json:"coverageAdjustments"`
}

// PremiumEstimate is the summary-stage premium with its breakdown.
type PremiumEstimate struct {
	Monthly   int              `json:"monthly"`
	Annual    int              `json:"annual"`
	Breakdown PremiumBreakdown `json:"breakdown"`
}

const basePremium = 1200

// EstimatePremium prices an annual premium from the two risk scores and the
// selected coverage. Driver risk scales the base up to 3x, vehicle risk up to
// 2.5x, then each selected coverage applies its own multiplier.
func EstimatePremium(driverScore, vehicleScore int, cov CoverageSelection) PremiumEstimate {
	driverMult := 1 + float64(driverScore)/100*2
	vehicleMult := 1 + float64(vehicleScore)/100*1.5

	premium := basePremium * driverMult * vehicleMult
	if cov.Collision {
		premium *= 1.2
	}
	if cov.Comprehensive {
		premium *= 1.15
	}
	if cov.AccidentForgiveness {
		premium *= 1.1
	}

	annual := roundHalfUp(premium)
	monthly := roundHalfUp(float64(annual) / 12)

	coverageShare := 0.0
	if cov.Collision {
		coverageShare += 0.2
	}
	if cov.Comprehensive {
		coverageShare += 0.15
	}
	if cov.AccidentForgiveness {
		coverageShare += 0.1
	}

	return PremiumEstimate{
		Monthly: monthly,
		Annual:  annual,
		Breakdown: PremiumBreakdown{
			Base:                  basePremium,
			DriverRiskAdjustment:  roundHalfUp(basePremium * (driverMult - 1)),
			VehicleRiskAdjustment: roundHalfUp(basePremium * driverMult * (vehicleMult - 1)),
			CoverageAdjustments:   roundHalfUp(basePremium * driverMult * vehicleMult * coverageShare),
		},
	}
}

// PaymentEstimate is the payment screen's own simplified premium. It predates
// EstimatePremium, uses only age, vehicle age and coverage flags, and visibly
// disagrees with the summary figure for the same applicant. The two formulas
// are kept as separate functions on purpose; unifying them is a product
// decision, not a refactor.
//
// Quirks carried over from the intake wizard this replaces: a blank or
// unparseable date of birth skips both age multipliers, and a blank vehicle
// year counts as a brand-new vehicle (age 0), which takes the 1.3x multiplier.
func PaymentEstimate(rec ApplicantRecord) int {
	rate := float64(basePremium)

	if birth, err := time.Parse(dateLayout, rec.DateOfBirth); err == nil {
		age := timeNow().Year() - birth.Year()
		if age < 25 {
			rate *= 1.5
		}
		if age > 65 {
			rate *= 1.2
		}
	}

	vehicleAge := 0
	if year, ok := parseLeadingInt(rec.Year); ok {
		vehicleAge = timeNow().Year() - year
	}
	if vehicleAge < 2 {
		rate *= 1.3
	}
	if vehicleAge > 10 {
		rate *= 0.8
	}

	if rec.Collision {
		rate += 300
	}
	if rec.Comprehensive {
		rate += 200
	}
	if rec.AccidentForgiveness {
		rate += 100
	}

	return roundHalfUp(rate)
}

func roundHalfUp(x float64) int {
	return int(math.Floor(x + 0.5))
}
