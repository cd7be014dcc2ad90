package core

import (
	"context"
	"fmt"
	"time"
)

// ApplicantRecord is the single form-wide data object for the current intake
// session. It is a flat record: every wizard screen reads and writes slices of
// it, and the scoring pipeline consumes it whole. String fields left blank and
// boolean fields left false mean "not answered"; the scorers skip them.
type ApplicantRecord struct {
	// Driver information
	FirstName     string `json:"firstName"`
	LastName      string `json:"lastName"`
	DateOfBirth   string `json:"dateOfBirth"` // YYYY-MM-DD
	Gender        string `json:"gender"`
	MaritalStatus string `json:"maritalStatus"`
	LicenseNumber string `json:"licenseNumber"`
	YearsLicensed string `json:"yearsLicensed"` // bucketed, e.g. "10+"

	// Address
	Address    string `json:"address"`
	City       string `json:"city"`
	Province   string `json:"province"`
	PostalCode string `json:"postalCode"`

	// Driver history. The has* fields hold "yes"/"no"/"" and gate their
	// detail fields: details are only meaningful when the flag is "yes".
	HasPreviousClaims string `json:"hasPreviousClaims"`
	NumberOfClaims    string `json:"numberOfClaims"`
	ClaimDetails      string `json:"claimDetails"`
	HasViolations     string `json:"hasViolations"`
	ViolationDetails  string `json:"violationDetails"`
	DemeritPoints     string `json:"demeritPoints"`
	HasSuspensions    string `json:"hasSuspensions"`
	SuspensionDetails string `json:"suspensionDetails"`
	HasTickets        string `json:"hasTickets"`
	TicketDetails     string `json:"ticketDetails"`

	// Vehicle
	Year             string `json:"year"`
	Make             string `json:"make"`
	Model            string `json:"model"`
	VIN              string `json:"vin"`
	Usage            string `json:"usage"`
	AnnualKilometers string `json:"annualKilometers"`

	// Coverage selection
	Liability           string `json:"liability"`
	Collision           bool   `json:"collision"`
	Comprehensive       bool   `json:"comprehensive"`
	AccidentForgiveness bool   `json:"accidentForgiveness"`

	// Contact
	Email            string `json:"email"`
	Phone            string `json:"phone"`
	PreferredContact string `json:"preferredContact"`

	// Communication preferences
	AcceptEmailCommunications bool `json:"acceptEmailCommunications"`
	AcceptMailCommunications  bool `json:"acceptMailCommunications"`
	AcceptPhoneCommunications bool `json:"acceptPhoneCommunications"`
}

// DefaultRecord returns a fresh record with the intake defaults: collision
// and comprehensive pre-selected, the base liability limit, and email as the
// preferred contact channel.
func DefaultRecord() ApplicantRecord {
	return ApplicantRecord{
		Liability:        "1000000",
		Collision:        true,
		Comprehensive:    true,
		PreferredContact: "email",
	}
}

// Set assigns a single field by its JSON name. Unknown field names and
// mistyped values are validation errors; the record is left untouched.
func (r *ApplicantRecord) Set(field string, value any) error {
	if target, ok := r.stringField(field); ok {
		s, ok := value.(string)
		if !ok {
			return fmt.Errorf("%w: field %q expects a string", ErrValidation, field)
		}
		*target = s
		return nil
	}
	if target, ok := r.boolField(field); ok {
		b, ok := value.(bool)
		if !ok {
			return fmt.Errorf("%w: field %q expects a boolean", ErrValidation, field)
		}
		*target = b
		return nil
	}
	return fmt.Errorf("%w: unknown field %q", ErrValidation, field)
}

// Merge applies a partial update. The batch is applied to a copy first so a
// bad key cannot leave a half-applied record behind.
func (r *ApplicantRecord) Merge(fields map[string]any) error {
	next := *r
	for name, value := range fields {
		if err := next.Set(name, value); err != nil {
			return err
		}
	}
	*r = next
	return nil
}

func (r *ApplicantRecord) stringField(name string) (*string, bool) {
	fields := map[string]*string{
		"firstName":         &r.FirstName,
		"lastName":          &r.LastName,
		"dateOfBirth":       &r.DateOfBirth,
		"gender":            &r.Gender,
		"maritalStatus":     &r.MaritalStatus,
		"licenseNumber":     &r.LicenseNumber,
		"yearsLicensed":     &r.YearsLicensed,
		"address":           &r.Address,
		"city":              &r.City,
		"province":          &r.Province,
		"postalCode":        &r.PostalCode,
		"hasPreviousClaims": &r.HasPreviousClaims,
		"numberOfClaims":    &r.NumberOfClaims,
		"claimDetails":      &r.ClaimDetails,
		"hasViolations":     &r.HasViolations,
		"violationDetails":  &r.ViolationDetails,
		"demeritPoints":     &r.DemeritPoints,
		"hasSuspensions":    &r.HasSuspensions,
		"suspensionDetails": &r.SuspensionDetails,
		"hasTickets":        &r.HasTickets,
		"ticketDetails":     &r.TicketDetails,
		"year":              &r.Year,
		"make":              &r.Make,
		"model":             &r.Model,
		"vin":               &r.VIN,
		"usage":             &r.Usage,
		"annualKilometers":  &r.AnnualKilometers,
		"liability":         &r.Liability,
		"email":             &r.Email,
		"phone":             &r.Phone,
		"preferredContact":  &r.PreferredContact,
	}
	target, ok := fields[name]
	return target, ok
}

func (r *ApplicantRecord) boolField(name string) (*bool, bool) {
	fields := map[string]*bool{
		"collision":                 &r.Collision,
		"comprehensive":             &r.Comprehensive,
		"accidentForgiveness":       &r.AccidentForgiveness,
		"acceptEmailCommunications": &r.AcceptEmailCommunications,
		"acceptMailCommunications":  &r.AcceptMailCommunications,
		"acceptPhoneCommunications": &r.AcceptPhoneCommunications,
	}
	target, ok := fields[name]
	return target, ok
}

// Coverage returns the record's selected coverage flags for the estimator.
func (r ApplicantRecord) Coverage() CoverageSelection {
	return CoverageSelection{
		Collision:           r.Collision,
		Comprehensive:       r.Comprehensive,
		AccidentForgiveness: r.AccidentForgiveness,
	}
}

// RecordRepo persists the one applicant record of the current session.
// Load reports ErrNotFound when nothing has been stored yet and
// ErrCorruptData when the stored payload cannot be decoded.
type RecordRepo interface {
	Load(ctx context.Context) (ApplicantRecord, time.Time, error)
	Save(ctx context.Context, rec ApplicantRecord, savedAt time.Time) error
	Clear(ctx context.Context) error
	Ping(ctx context.Context) error
}
