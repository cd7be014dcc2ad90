package core

import "testing"

func TestStepForScreen(t *testing.T) {
	tests := []struct {
		screen string
		want   int
	}{
		{"welcome", 0},
		{"driver-info", 0},
		{"vehicle-info", 1},
		{"personal-details", 2},
		{"coverage", 3},
		{"quote-summary", 4},
		{"payment", 5},
		{"/payment", 5}, // route paths work too
		{"", 0},
		{"  ", 0},
		{"checkout", 0}, // unknown screens fall back to the start
	}
	for _, tt := range tests {
		if got := StepForScreen(tt.screen); got != tt.want {
			t.Errorf("StepForScreen(%q) = %d, want %d", tt.screen, got, tt.want)
		}
	}
}
