package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rvanheerden/go-autoquote/internal/core"
	"github.com/rvanheerden/go-autoquote/internal/suggest"
	"github.com/rvanheerden/go-autoquote/pkg/problem"
)

// SuggestHandler serves the assistant's field suggestions and predictions.
type SuggestHandler struct {
	Svc *core.IntakeService
	Log *slog.Logger
}

func NewSuggestHandler(svc *core.IntakeService, log *slog.Logger) *SuggestHandler {
	return &SuggestHandler{Svc: svc, Log: log}
}

func (h *SuggestHandler) Mount(r chi.Router) {
	r.Get("/suggest", h.Suggest)
	r.Get("/predict", h.Predict)
}

// Suggest returns cleanup suggestions for ?field= with ?value=.
// 200: {"suggestions": [...]}; 400: missing field.
func (h *SuggestHandler) Suggest(w http.ResponseWriter, r *http.Request) {
	field := r.URL.Query().Get("field")
	if field == "" {
		problem.Write(w, http.StatusBadRequest, "Validation Error", "Query parameter field is required.")
		return
	}
	value := r.URL.Query().Get("value")

	rec := h.Svc.Load(r.Context())
	suggestions := suggest.ForField(field, value, rec)
	if suggestions == nil {
		suggestions = []suggest.Suggestion{}
	}

	resp := map[string]any{"field": field, "suggestions": suggestions}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		h.Log.Error("failed to encode suggestions", "field", field, "err", err)
	}
}

// Predict returns guessed values for unfilled fields from the current record.
// 200: {"predictions": {...}}.
func (h *SuggestHandler) Predict(w http.ResponseWriter, r *http.Request) {
	rec := h.Svc.Load(r.Context())

	resp := map[string]any{"predictions": suggest.Predict(rec)}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		h.Log.Error("failed to encode predictions", "err", err)
	}
}
