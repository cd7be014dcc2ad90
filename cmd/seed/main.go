// Seeds the record store with a fully-filled sample applicant so the summary
// and payment screens have something to show during demos.
package main

import (
	"context"
	"time"

	"github.com/rvanheerden/go-autoquote/internal/core"
	"github.com/rvanheerden/go-autoquote/internal/platform/config"
	"github.com/rvanheerden/go-autoquote/internal/platform/logging"
	"github.com/rvanheerden/go-autoquote/internal/store/sqlite"
)

func main() {
	cfg := config.MustLoad()
	log := logging.New(cfg.Env)
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	store, err := sqlite.Open(cfg.SQLitePath)
	if err != nil {
		log.Error("failed to open sqlite store", "path", cfg.SQLitePath, "err", err)
		return
	}
	defer store.Close()

	log.Info("seeding sample applicant", "path", cfg.SQLitePath)

	if err := store.Save(ctx, sampleApplicant(), time.Now()); err != nil {
		log.Error("failed to seed applicant", "err", err)
		return
	}

	log.Info("done seeding")
}

func sampleApplicant() core.ApplicantRecord {
	rec := core.DefaultRecord()
	rec.FirstName = "John"
	rec.LastName = "Smith"
	rec.DateOfBirth = "1990-05-15"
	rec.Gender = "male"
	rec.MaritalStatus = "married"
	rec.LicenseNumber = "123456789"
	rec.YearsLicensed = "10+"
	rec.Address = "123 Main Street"
	rec.City = "Toronto"
	rec.Province = "ON"
	rec.PostalCode = "M5V 3A8"
	rec.HasPreviousClaims = "no"
	rec.HasViolations = "no"
	rec.HasSuspensions = "no"
	rec.HasTickets = "no"
	rec.Year = "2020"
	rec.Make = "Toyota"
	rec.Model = "Camry"
	rec.VIN = "4T1B11HK0JU705506"
	rec.Usage = "commute"
	rec.AnnualKilometers = "10000-15000"
	rec.Email = "john.smith@example.com"
	rec.Phone = "(416) 555-0199"
	rec.AcceptEmailCommunications = true
	return rec
}
