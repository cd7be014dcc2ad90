package core

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"
)

// fakeRepo is an in-memory RecordRepo with switchable failure modes.
type fakeRepo struct {
	rec     ApplicantRecord
	savedAt time.Time
	stored  bool

	saveCalls  int
	clearCalls int

	loadErr  error
	saveErr  error
	clearErr error
}

func (f *fakeRepo) Load(ctx context.Context) (ApplicantRecord, time.Time, error) {
	if f.loadErr != nil {
		return ApplicantRecord{}, time.Time{}, f.loadErr
	}
	if !f.stored {
		return ApplicantRecord{}, time.Time{}, ErrNotFound
	}
	return f.rec, f.savedAt, nil
}

func (f *fakeRepo) Save(ctx context.Context, rec ApplicantRecord, savedAt time.Time) error {
	f.saveCalls++
	if f.saveErr != nil {
		return f.saveErr
	}
	f.rec, f.savedAt, f.stored = rec, savedAt, true
	return nil
}

func (f *fakeRepo) Clear(ctx context.Context) error {
	f.clearCalls++
	if f.clearErr != nil {
		return f.clearErr
	}
	f.rec, f.savedAt, f.stored = ApplicantRecord{}, time.Time{}, false
	return nil
}

func (f *fakeRepo) Ping(ctx context.Context) error { return nil }

func newTestService(repo RecordRepo) *IntakeService {
	return NewIntakeService(repo, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestIntakeService_LoadEmptyReturnsDefaults(t *testing.T) {
	svc := newTestService(&fakeRepo{})
	got := svc.Load(context.Background())
	if got != DefaultRecord() {
		t.Errorf("Load = %+v, want defaults", got)
	}
}

func TestIntakeService_LoadFailureFallsBackToDefaults(t *testing.T) {
	repo := &fakeRepo{loadErr: errors.New("db down")}
	svc := newTestService(repo)
	got := svc.Load(context.Background())
	if got != DefaultRecord() {
		t.Errorf("Load = %+v, want defaults on load failure", got)
	}
}

func TestIntakeService_LoadCorruptFallsBackToDefaults(t *testing.T) {
	repo := &fakeRepo{loadErr: ErrCorruptData}
	svc := newTestService(repo)
	if got := svc.Load(context.Background()); got != DefaultRecord() {
		t.Errorf("Load = %+v, want defaults on corrupt data", got)
	}
}

func TestIntakeService_UpdatePersists(t *testing.T) {
	repo := &fakeRepo{}
	svc := newTestService(repo)

	got, err := svc.Update(context.Background(), "email", "jane@example.com")
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if got.Email != "jane@example.com" {
		t.Errorf("Email = %q", got.Email)
	}
	if repo.saveCalls != 1 {
		t.Errorf("saveCalls = %d, want 1", repo.saveCalls)
	}
	if repo.rec.Email != "jane@example.com" {
		t.Errorf("stored Email = %q", repo.rec.Email)
	}
}

func TestIntakeService_UpdateManyPersistsOnce(t *testing.T) {
	repo := &fakeRepo{}
	svc := newTestService(repo)

	got, err := svc.UpdateMany(context.Background(), map[string]any{
		"firstName": "Jane",
		"lastName":  "Doe",
		"collision": false,
	})
	if err != nil {
		t.Fatalf("UpdateMany: %v", err)
	}
	if got.FirstName != "Jane" || got.LastName != "Doe" || got.Collision {
		t.Errorf("record = %+v", got)
	}
	if repo.saveCalls != 1 {
		t.Errorf("saveCalls = %d, want a single write for the batch", repo.saveCalls)
	}
}

func TestIntakeService_UpdateUnknownFieldRejectsBatch(t *testing.T) {
	repo := &fakeRepo{}
	svc := newTestService(repo)

	_, err := svc.UpdateMany(context.Background(), map[string]any{
		"firstName": "Jane",
		"favourite": "blue",
	})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("err = %v, want ErrValidation", err)
	}
	if repo.saveCalls != 0 {
		t.Errorf("saveCalls = %d, want 0 on rejected batch", repo.saveCalls)
	}
	// The valid field in the batch must not have leaked into the record.
	if got := svc.Load(context.Background()); got.FirstName != "" {
		t.Errorf("FirstName = %q, want unchanged", got.FirstName)
	}
}

func TestIntakeService_UpdateMistypedValueRejected(t *testing.T) {
	svc := newTestService(&fakeRepo{})
	if _, err := svc.Update(context.Background(), "collision", "yes"); !errors.Is(err, ErrValidation) {
		t.Errorf("err = %v, want ErrValidation for string into bool field", err)
	}
}

func TestIntakeService_SaveFailureKeepsMemory(t *testing.T) {
	repo := &fakeRepo{saveErr: errors.New("disk full")}
	svc := newTestService(repo)

	got, err := svc.Update(context.Background(), "firstName", "Jane")
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if got.FirstName != "Jane" {
		t.Errorf("FirstName = %q, want Jane despite save failure", got.FirstName)
	}
	if reloaded := svc.Load(context.Background()); reloaded.FirstName != "Jane" {
		t.Errorf("Load after failed save = %q, want Jane", reloaded.FirstName)
	}
}

func TestIntakeService_RoundTripThroughRepo(t *testing.T) {
	repo := &fakeRepo{}

	first := newTestService(repo)
	if _, err := first.Update(context.Background(), "postalCode", "M5V 3A8"); err != nil {
		t.Fatalf("Update: %v", err)
	}

	second := newTestService(repo)
	if got := second.Load(context.Background()); got.PostalCode != "M5V 3A8" {
		t.Errorf("PostalCode = %q, want M5V 3A8 after reload", got.PostalCode)
	}
}

func TestIntakeService_Clear(t *testing.T) {
	repo := &fakeRepo{}
	svc := newTestService(repo)
	if _, err := svc.Update(context.Background(), "firstName", "Jane"); err != nil {
		t.Fatalf("Update: %v", err)
	}

	got := svc.Clear(context.Background())
	if got != DefaultRecord() {
		t.Errorf("Clear = %+v, want defaults", got)
	}
	if repo.stored {
		t.Error("repo should be cleared")
	}
}

func TestIntakeService_ClearFailureStillResetsMemory(t *testing.T) {
	repo := &fakeRepo{clearErr: errors.New("db down")}
	svc := newTestService(repo)
	if _, err := svc.Update(context.Background(), "firstName", "Jane"); err != nil {
		t.Fatalf("Update: %v", err)
	}

	if got := svc.Clear(context.Background()); got != DefaultRecord() {
		t.Errorf("Clear = %+v, want defaults despite storage failure", got)
	}
}

func TestIntakeService_ExpireStale(t *testing.T) {
	repo := &fakeRepo{}
	svc := newTestService(repo)

	base := time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)
	svc.clock = func() time.Time { return base }
	if _, err := svc.Update(context.Background(), "firstName", "Jane"); err != nil {
		t.Fatalf("Update: %v", err)
	}

	// Fresh session stays.
	svc.clock = func() time.Time { return base.Add(time.Hour) }
	wiped, err := svc.ExpireStale(context.Background(), 72*time.Hour)
	if err != nil || wiped {
		t.Fatalf("ExpireStale fresh = (%v, %v), want (false, nil)", wiped, err)
	}

	// Past the TTL the session is wiped.
	svc.clock = func() time.Time { return base.Add(73 * time.Hour) }
	wiped, err = svc.ExpireStale(context.Background(), 72*time.Hour)
	if err != nil || !wiped {
		t.Fatalf("ExpireStale stale = (%v, %v), want (true, nil)", wiped, err)
	}
	if got := svc.Load(context.Background()); got != DefaultRecord() {
		t.Errorf("record after expiry = %+v, want defaults", got)
	}

	// Nothing ever saved: nothing to expire.
	fresh := newTestService(&fakeRepo{})
	wiped, err = fresh.ExpireStale(context.Background(), 0)
	if err != nil || wiped {
		t.Errorf("ExpireStale with no save = (%v, %v), want (false, nil)", wiped, err)
	}
}
