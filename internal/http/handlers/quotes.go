package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rvanheerden/go-autoquote/internal/core"
)

// QuoteHandler serves the summary screen: risk assessments, advice, and the
// premium estimate, recomputed from the stored record on every call.
type QuoteHandler struct {
	Svc core.QuoteService
	Log *slog.Logger
}

func NewQuoteHandler(svc core.QuoteService, log *slog.Logger) *QuoteHandler {
	return &QuoteHandler{Svc: svc, Log: log}
}

func (h *QuoteHandler) Mount(r chi.Router) {
	r.Get("/quote", h.Get)
}

// Get returns the full quote summary.
// 200: JSON summary; 500: internal error.
func (h *QuoteHandler) Get(w http.ResponseWriter, r *http.Request) {
	summary, err := h.Svc.Summary(r.Context())
	if err != nil {
		writeError(r.Context(), h.Log, w, err, "Failed to build quote summary")
		return
	}

	if err := json.NewEncoder(w).Encode(summary); err != nil {
		h.Log.Error("failed to encode quote summary", "err", err)
	}
}
