// Package health exposes liveness and readiness endpoints. Readiness pings
// the record store, whichever backend is configured.
package health

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

// New builds the health check handler. The pinger is the active record
// store; opTimeout bounds the readiness probe.
func New(log *slog.Logger, store Pinger, opTimeout time.Duration) http.Handler {
	r := chi.NewRouter()

	// Liveness: the process is up.
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeStatus(w, http.StatusOK, "ok")
	})

	// Readiness: the record store answers.
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), opTimeout)
		defer cancel()

		if err := store.Ping(ctx); err != nil {
			if log != nil {
				log.Warn("record store not reachable", "err", err)
			}
			writeStatus(w, http.StatusServiceUnavailable, "store unavailable")
			return
		}
		writeStatus(w, http.StatusOK, "ready")
	})

	return r
}

func writeStatus(w http.ResponseWriter, code int, status string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]string{"status": status})
}
