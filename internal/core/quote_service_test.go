package core

import (
	"context"
	"testing"
)

func TestQuoteService_SummaryOnDefaultRecord(t *testing.T) {
	intake := newTestService(&fakeRepo{})
	svc := NewQuoteService(intake)

	got, err := svc.Summary(context.Background())
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}

	// Defaults score 0/0: low across the board, priced with the default
	// collision+comprehensive selection. 1200 * 1.2 * 1.15 = 1656.
	if got.DriverRisk.Score != 0 || got.VehicleRisk.Score != 0 {
		t.Errorf("scores = %d/%d, want 0/0", got.DriverRisk.Score, got.VehicleRisk.Score)
	}
	if got.Advice.Coverage.Liability != "2000000" {
		t.Errorf("suggested liability = %q, want 2000000", got.Advice.Coverage.Liability)
	}
	if got.Premium.Annual != 1656 {
		t.Errorf("Annual = %d, want 1656", got.Premium.Annual)
	}
	if got.Premium.Monthly != 138 {
		t.Errorf("Monthly = %d, want 138", got.Premium.Monthly)
	}
}

func TestQuoteService_SummaryTracksIntakeChanges(t *testing.T) {
	intake := newTestService(&fakeRepo{})
	svc := NewQuoteService(intake)

	fields := map[string]any{
		"hasPreviousClaims": "yes",
		"numberOfClaims":    "2",
		"hasViolations":     "yes",
		"year":              "2006",
		"make":              "Ford",
		"model":             "Mustang",
	}
	if _, err := intake.UpdateMany(context.Background(), fields); err != nil {
		t.Fatalf("UpdateMany: %v", err)
	}

	got, err := svc.Summary(context.Background())
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	if got.DriverRisk.Score != 35 { // +20 claims, +15 violations
		t.Errorf("driver score = %d, want 35", got.DriverRisk.Score)
	}
	if got.VehicleRisk.Score != 35 { // +15 old, +20 performance
		t.Errorf("vehicle score = %d, want 35", got.VehicleRisk.Score)
	}
}
