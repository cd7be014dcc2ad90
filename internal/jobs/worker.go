// Package jobs holds the background workers. There is exactly one today,
// the stale-session janitor, but the polling loop is shared infrastructure.
package jobs

import (
	"context"
	"log/slog"
	"time"
)

// Worker is a background job that polls for work until its context ends.
type Worker interface {
	Start(ctx context.Context)
	Name() string
}

// BaseWorker carries the polling loop and a named logger for a worker.
type BaseWorker struct {
	name     string
	interval time.Duration
	log      *slog.Logger
}

func NewBaseWorker(name string, interval time.Duration, log *slog.Logger) BaseWorker {
	return BaseWorker{
		name:     name,
		interval: interval,
		log:      log.With("worker", name),
	}
}

// Poll runs work immediately, then on every tick, until ctx is cancelled.
// A failing work function is logged and retried on the next tick.
func (w *BaseWorker) Poll(ctx context.Context, work func(context.Context) error) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.log.Info("worker started", "interval", w.interval)

	if err := work(ctx); err != nil {
		w.log.Error("worker error", "err", err)
	}

	for {
		select {
		case <-ctx.Done():
			w.log.Info("worker stopping")
			return
		case <-ticker.C:
			if err := work(ctx); err != nil {
				w.log.Error("worker error", "err", err)
			}
		}
	}
}
