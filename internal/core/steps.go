package core

import "strings"

// Screen identifiers for the seven wizard screens.
const (
	ScreenWelcome         = "welcome"
	ScreenDriverInfo      = "driver-info"
	ScreenVehicleInfo     = "vehicle-info"
	ScreenPersonalDetails = "personal-details"
	ScreenCoverage        = "coverage"
	ScreenQuoteSummary    = "quote-summary"
	ScreenPayment         = "payment"
)

// stepByScreen drives the progress bar only; it never gates data. Welcome and
// driver-info share step 0 because the welcome screen has no inputs.
var stepByScreen = map[string]int{
	ScreenWelcome:         0,
	ScreenDriverInfo:      0,
	ScreenVehicleInfo:     1,
	ScreenPersonalDetails: 2,
	ScreenCoverage:        3,
	ScreenQuoteSummary:    4,
	ScreenPayment:         5,
}

// StepForScreen maps a screen identifier to its wizard step index. Unknown
// identifiers map to 0.
func StepForScreen(screen string) int {
	screen = strings.TrimPrefix(strings.TrimSpace(screen), "/")
	if screen == "" {
		return 0
	}
	return stepByScreen[screen]
}
