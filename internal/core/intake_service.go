package core

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"
)

// IntakeService owns the applicant record for the current session. The
// in-memory record is the source of truth; every mutation is written through
// to the repo before returning, and storage failures are logged rather than
// surfaced, so the wizard keeps working in memory-only mode when the backing
// store is unavailable.
type IntakeService struct {
	repo  RecordRepo
	log   *slog.Logger
	clock func() time.Time

	mu      sync.Mutex
	record  ApplicantRecord
	savedAt time.Time
	loaded  bool
}

func NewIntakeService(repo RecordRepo, log *slog.Logger) *IntakeService {
	return &IntakeService{
		repo:  repo,
		log:   log,
		clock: time.Now,
	}
}

// Load returns the current record, reading it from storage on first access.
// Missing or corrupt stored data yields the defaults.
func (s *IntakeService) Load(ctx context.Context) ApplicantRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLoaded(ctx)
	return s.record
}

func (s *IntakeService) ensureLoaded(ctx context.Context) {
	if s.loaded {
		return
	}
	rec, savedAt, err := s.repo.Load(ctx)
	switch {
	case err == nil:
		s.record = rec
		s.savedAt = savedAt
	case errors.Is(err, ErrNotFound):
		s.record = DefaultRecord()
	default:
		s.log.Error("failed to load saved intake, starting fresh", "err", err)
		s.record = DefaultRecord()
	}
	s.loaded = true
}

// Update merges a single field and persists. Only an unknown field or a
// mistyped value is an error; persistence failures are logged and swallowed.
func (s *IntakeService) Update(ctx context.Context, field string, value any) (ApplicantRecord, error) {
	return s.UpdateMany(ctx, map[string]any{field: value})
}

// UpdateMany merges a batch of fields atomically and persists once.
func (s *IntakeService) UpdateMany(ctx context.Context, fields map[string]any) (ApplicantRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLoaded(ctx)

	if err := s.record.Merge(fields); err != nil {
		return s.record, err
	}
	s.persist(ctx)
	return s.record, nil
}

// Clear wipes storage and resets the record to defaults ("start over").
// Storage failures are logged; the in-memory reset always happens.
func (s *IntakeService) Clear(ctx context.Context) ApplicantRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.repo.Clear(ctx); err != nil {
		s.log.Error("failed to clear saved intake", "err", err)
	}
	s.record = DefaultRecord()
	s.savedAt = time.Time{}
	s.loaded = true
	return s.record
}

// Step maps a screen identifier to its wizard step index.
func (s *IntakeService) Step(screen string) int {
	return StepForScreen(screen)
}

// ExpireStale clears the session when its last save is older than ttl.
// It reports whether anything was wiped.
func (s *IntakeService) ExpireStale(ctx context.Context, ttl time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLoaded(ctx)

	if s.savedAt.IsZero() || s.clock().Sub(s.savedAt) < ttl {
		return false, nil
	}
	if err := s.repo.Clear(ctx); err != nil {
		return false, err
	}
	s.record = DefaultRecord()
	s.savedAt = time.Time{}
	return true, nil
}

// persist writes through to storage. Best effort: the in-memory record is
// already updated and is not rolled back on failure.
func (s *IntakeService) persist(ctx context.Context) {
	now := s.clock()
	if err := s.repo.Save(ctx, s.record, now); err != nil {
		s.log.Error("failed to persist intake, continuing in memory", "err", err)
		return
	}
	s.savedAt = now
}
