package jobs

import (
	"context"
	"log/slog"
	"time"

	"github.com/rvanheerden/go-autoquote/internal/core"
)

// JanitorWorker wipes an abandoned intake session: a record that has not
// been saved for longer than the TTL is personal data nobody is coming back
// for.
type JanitorWorker struct {
	BaseWorker
	intake *core.IntakeService
	ttl    time.Duration
}

// NewJanitorWorker creates a new janitor worker.
func NewJanitorWorker(
	intake *core.IntakeService,
	ttl time.Duration,
	interval time.Duration,
	log *slog.Logger,
) *JanitorWorker {
	return &JanitorWorker{
		BaseWorker: NewBaseWorker("janitor", interval, log),
		intake:     intake,
		ttl:        ttl,
	}
}

// Start begins the worker polling loop.
func (w *JanitorWorker) Start(ctx context.Context) {
	w.Poll(ctx, w.sweep)
}

// Name returns the worker name.
func (w *JanitorWorker) Name() string {
	return w.name
}

func (w *JanitorWorker) sweep(ctx context.Context) error {
	wiped, err := w.intake.ExpireStale(ctx, w.ttl)
	if err != nil {
		return err
	}
	if wiped {
		w.log.Info("cleared stale intake session", "ttl", w.ttl)
	}
	return nil
}
