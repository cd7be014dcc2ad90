package core

import "testing"

func TestEstimatePremium_BaselineAllCoverage(t *testing.T) {
	cov := CoverageSelection{Collision: true, Comprehensive: true, AccidentForgiveness: true}
	got := EstimatePremium(0, 0, cov)

	// 1200 * 1.2 * 1.15 * 1.1 rounds to 1822.
	if got.Annual != 1822 {
		t.Errorf("Annual = %d, want 1822", got.Annual)
	}
	if got.Monthly != 152 {
		t.Errorf("Monthly = %d, want 152", got.Monthly)
	}
	want := PremiumBreakdown{Base: 1200, DriverRiskAdjustment: 0, VehicleRiskAdjustment: 0, CoverageAdjustments: 540}
	if got.Breakdown != want {
		t.Errorf("Breakdown = %+v, want %+v", got.Breakdown, want)
	}
}

func TestEstimatePremium_MaxRiskNoCoverage(t *testing.T) {
	got := EstimatePremium(100, 100, CoverageSelection{})

	// 1200 * 3 * 2.5
	if got.Annual != 9000 {
		t.Errorf("Annual = %d, want 9000", got.Annual)
	}
	if got.Monthly != 750 {
		t.Errorf("Monthly = %d, want 750", got.Monthly)
	}
	want := PremiumBreakdown{Base: 1200, DriverRiskAdjustment: 2400, VehicleRiskAdjustment: 5400, CoverageAdjustments: 0}
	if got.Breakdown != want {
		t.Errorf("Breakdown = %+v, want %+v", got.Breakdown, want)
	}
}

func TestEstimatePremium_CollisionOnly(t *testing.T) {
	got := EstimatePremium(50, 0, CoverageSelection{Collision: true})

	// 1200 * 2 * 1 * 1.2
	if got.Annual != 2880 {
		t.Errorf("Annual = %d, want 2880", got.Annual)
	}
	if got.Monthly != 240 {
		t.Errorf("Monthly = %d, want 240", got.Monthly)
	}
	if got.Breakdown.DriverRiskAdjustment != 1200 {
		t.Errorf("DriverRiskAdjustment = %d, want 1200", got.Breakdown.DriverRiskAdjustment)
	}
	if got.Breakdown.CoverageAdjustments != 480 {
		t.Errorf("CoverageAdjustments = %d, want 480", got.Breakdown.CoverageAdjustments)
	}
}

func TestPaymentEstimate_DefaultRecord(t *testing.T) {
	// Blank dob skips the age multipliers, blank year counts as a new vehicle:
	// 1200 * 1.3 + 300 + 200.
	got := PaymentEstimate(DefaultRecord())
	if got != 2060 {
		t.Errorf("PaymentEstimate = %d, want 2060", got)
	}
}

func TestPaymentEstimate_YoungDriverNewCar(t *testing.T) {
	rec := ApplicantRecord{
		DateOfBirth:         "2004-03-05", // 22 at the frozen date
		Year:                "2025",       // vehicle age 1
		Collision:           true,
		Comprehensive:       true,
		AccidentForgiveness: true,
	}
	// 1200 * 1.5 * 1.3 + 600
	if got := PaymentEstimate(rec); got != 2940 {
		t.Errorf("PaymentEstimate = %d, want 2940", got)
	}
}

func TestPaymentEstimate_SeniorDriverOldCar(t *testing.T) {
	rec := ApplicantRecord{
		DateOfBirth: "1950-01-01", // 76
		Year:        "2010",       // vehicle age 16
	}
	// 1200 * 1.2 * 0.8
	if got := PaymentEstimate(rec); got != 1152 {
		t.Errorf("PaymentEstimate = %d, want 1152", got)
	}
}

func TestRoundHalfUp(t *testing.T) {
	tests := []struct {
		in   float64
		want int
	}{
		{1.4, 1},
		{1.5, 2},
		{2.5, 3},
		{-0.4, 0},
		{151.8333, 152},
	}
	for _, tt := range tests {
		if got := roundHalfUp(tt.in); got != tt.want {
			t.Errorf("roundHalfUp(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
