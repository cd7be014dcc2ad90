package core

import "context"

// QuoteSummary is everything the summary screen renders: both assessments,
// the generated advice, and the premium estimate for the currently selected
// coverage.
type QuoteSummary struct {
	DriverRisk  RiskAssessment  `json:"driverRisk"`
	VehicleRisk RiskAssessment  `json:"vehicleRisk"`
	Advice      Advice          `json:"advice"`
	Premium     PremiumEstimate `json:"premium"`
}

// QuoteService assembles the quote summary from the current intake record.
type QuoteService interface {
	Summary(ctx context.Context) (QuoteSummary, error)
}

type quoteService struct {
	intake *IntakeService
}

func NewQuoteService(intake *IntakeService) QuoteService {
	return &quoteService{intake: intake}
}

// Summary recomputes the full pipeline on demand. Nothing here is persisted:
// assessments and estimates are derived values.
func (s *quoteService) Summary(ctx context.Context) (QuoteSummary, error) {
	rec := s.intake.Load(ctx)

	driver := ScoreDriver(rec)
	vehicle := ScoreVehicle(rec)

	return QuoteSummary{
		DriverRisk:  driver,
		VehicleRisk: vehicle,
		Advice:      Recommend(driver, vehicle),
		Premium:     EstimatePremium(driver.Score, vehicle.Score, rec.Coverage()),
	}, nil
}
