package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	mongodrv "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/rvanheerden/go-autoquote/internal/core"
)

const ColApplicantRecords = "applicant_records"

// recordID is the fixed document key: the wizard holds one session's record.
const recordID = "current"

// recordDoc mirrors core.ApplicantRecord field for field plus the save
// timestamp the janitor ages sessions by.
type recordDoc struct {
	ID      string    `bson:"_id"`
	SavedAt time.Time `bson:"saved_at"`

	FirstName     string `bson:"first_name"`
	LastName      string `bson:"last_name"`
	DateOfBirth   string `bson:"date_of_birth"`
	Gender        string `bson:"gender"`
	MaritalStatus string `bson:"marital_status"`
	LicenseNumber string `bson:"license_number"`
	YearsLicensed string `bson:"years_licensed"`

	Address    string `bson:"address"`
	City       string `bson:"city"`
	Province   string `bson:"province"`
	PostalCode string `bson:"postal_code"`

	HasPreviousClaims string `bson:"has_previous_claims"`
	NumberOfClaims    string `bson:"number_of_claims"`
	ClaimDetails      string `bson:"claim_details"`
	HasViolations     string `bson:"has_violations"`
	ViolationDetails  string `bson:"violation_details"`
	DemeritPoints     string `bson:"demerit_points"`
	HasSuspensions    string `bson:"has_suspensions"`
	SuspensionDetails string `bson:"suspension_details"`
	HasTickets        string `bson:"has_tickets"`
	TicketDetails     string `bson:"ticket_details"`

	Year             string `bson:"year"`
	Make             string `bson:"make"`
	Model            string `bson:"model"`
	VIN              string `bson:"vin"`
	Usage            string `bson:"usage"`
	AnnualKilometers string `bson:"annual_kilometers"`

	Liability           string `bson:"liability"`
	Collision           bool   `bson:"collision"`
	Comprehensive       bool   `bson:"comprehensive"`
	AccidentForgiveness bool   `bson:"accident_forgiveness"`

	Email            string `bson:"email"`
	Phone            string `bson:"phone"`
	PreferredContact string `bson:"preferred_contact"`

	AcceptEmailCommunications bool `bson:"accept_email_communications"`
	AcceptMailCommunications  bool `bson:"accept_mail_communications"`
	AcceptPhoneCommunications bool `bson:"accept_phone_communications"`
}

func toRecordDoc(rec core.ApplicantRecord, savedAt time.Time) recordDoc {
	return recordDoc{
		ID:                        recordID,
		SavedAt:                   savedAt,
		FirstName:                 rec.FirstName,
		LastName:                  rec.LastName,
		DateOfBirth:               rec.DateOfBirth,
		Gender:                    rec.Gender,
		MaritalStatus:             rec.MaritalStatus,
		LicenseNumber:             rec.LicenseNumber,
		YearsLicensed:             rec.YearsLicensed,
		Address:                   rec.Address,
		City:                      rec.City,
		Province:                  rec.Province,
		PostalCode:                rec.PostalCode,
		HasPreviousClaims:         rec.HasPreviousClaims,
		NumberOfClaims:            rec.NumberOfClaims,
		ClaimDetails:              rec.ClaimDetails,
		HasViolations:             rec.HasViolations,
		ViolationDetails:          rec.ViolationDetails,
		DemeritPoints:             rec.DemeritPoints,
		HasSuspensions:            rec.HasSuspensions,
		SuspensionDetails:         rec.SuspensionDetails,
		HasTickets:                rec.HasTickets,
		TicketDetails:             rec.TicketDetails,
		Year:                      rec.Year,
		Make:                      rec.Make,
		Model:                     rec.Model,
		VIN:                       rec.VIN,
		Usage:                     rec.Usage,
		AnnualKilometers:          rec.AnnualKilometers,
		Liability:                 rec.Liability,
		Collision:                 rec.Collision,
		Comprehensive:             rec.Comprehensive,
		AccidentForgiveness:       rec.AccidentForgiveness,
		Email:                     rec.Email,
		Phone:                     rec.Phone,
		PreferredContact:          rec.PreferredContact,
		AcceptEmailCommunications: rec.AcceptEmailCommunications,
		AcceptMailCommunications:  rec.AcceptMailCommunications,
		AcceptPhoneCommunications: rec.AcceptPhoneCommunications,
	}
}

func fromRecordDoc(d recordDoc) core.ApplicantRecord {
	return core.ApplicantRecord{
		FirstName:                 d.FirstName,
		LastName:                  d.LastName,
		DateOfBirth:               d.DateOfBirth,
		Gender:                    d.Gender,
		MaritalStatus:             d.MaritalStatus,
		LicenseNumber:             d.LicenseNumber,
		YearsLicensed:             d.YearsLicensed,
		Address:                   d.Address,
		City:                      d.City,
		Province:                  d.Province,
		PostalCode:                d.PostalCode,
		HasPreviousClaims:         d.HasPreviousClaims,
		NumberOfClaims:            d.NumberOfClaims,
		ClaimDetails:              d.ClaimDetails,
		HasViolations:             d.HasViolations,
		ViolationDetails:          d.ViolationDetails,
		DemeritPoints:             d.DemeritPoints,
		HasSuspensions:            d.HasSuspensions,
		SuspensionDetails:         d.SuspensionDetails,
		HasTickets:                d.HasTickets,
		TicketDetails:             d.TicketDetails,
		Year:                      d.Year,
		Make:                      d.Make,
		Model:                     d.Model,
		VIN:                       d.VIN,
		Usage:                     d.Usage,
		AnnualKilometers:          d.AnnualKilometers,
		Liability:                 d.Liability,
		Collision:                 d.Collision,
		Comprehensive:             d.Comprehensive,
		AccidentForgiveness:       d.AccidentForgiveness,
		Email:                     d.Email,
		Phone:                     d.Phone,
		PreferredContact:          d.PreferredContact,
		AcceptEmailCommunications: d.AcceptEmailCommunications,
		AcceptMailCommunications:  d.AcceptMailCommunications,
		AcceptPhoneCommunications: d.AcceptPhoneCommunications,
	}
}

type RecordRepoMongo struct {
	coll      *mongodrv.Collection
	opTimeout time.Duration
}

func NewRecordRepo(db *mongodrv.Database, opTimeout time.Duration) *RecordRepoMongo {
	return &RecordRepoMongo{
		coll:      db.Collection(ColApplicantRecords),
		opTimeout: opTimeout,
	}
}

func (repo *RecordRepoMongo) Load(ctx context.Context) (core.ApplicantRecord, time.Time, error) {
	ctx, cancel := context.WithTimeout(ctx, repo.opTimeout)
	defer cancel()

	var doc recordDoc
	err := repo.coll.FindOne(ctx, bson.M{"_id": recordID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongodrv.ErrNoDocuments) {
			return core.ApplicantRecord{}, time.Time{}, core.ErrNotFound
		}
		return core.ApplicantRecord{}, time.Time{}, fmt.Errorf("applicant_records.findOne: %w", err)
	}
	return fromRecordDoc(doc), doc.SavedAt, nil
}

func (repo *RecordRepoMongo) Save(ctx context.Context, rec core.ApplicantRecord, savedAt time.Time) error {
	ctx, cancel := context.WithTimeout(ctx, repo.opTimeout)
	defer cancel()

	doc := toRecordDoc(rec, savedAt)
	_, err := repo.coll.ReplaceOne(ctx, bson.M{"_id": recordID}, doc,
		options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("applicant_records.replaceOne: %w", err)
	}
	return nil
}

func (repo *RecordRepoMongo) Clear(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, repo.opTimeout)
	defer cancel()

	if _, err := repo.coll.DeleteOne(ctx, bson.M{"_id": recordID}); err != nil {
		return fmt.Errorf("applicant_records.deleteOne: %w", err)
	}
	return nil
}

func (repo *RecordRepoMongo) Ping(ctx context.Context) error {
	return repo.coll.Database().Client().Ping(ctx, nil)
}
