package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rvanheerden/go-autoquote/internal/core"
	"github.com/rvanheerden/go-autoquote/pkg/problem"
)

// IntakeHandler exposes the form store: read the record, merge fields,
// start over, and report wizard progress.
type IntakeHandler struct {
	Svc *core.IntakeService
	Log *slog.Logger
}

func NewIntakeHandler(svc *core.IntakeService, log *slog.Logger) *IntakeHandler {
	return &IntakeHandler{Svc: svc, Log: log}
}

func (h *IntakeHandler) Mount(r chi.Router) {
	r.Route("/intake", func(r chi.Router) {
		r.Get("/", h.Get)
		r.Patch("/", h.Patch)
		r.Put("/{field}", h.PutField)
		r.Delete("/", h.Clear)
		r.Get("/step", h.Step)
	})
}

// Get returns the current applicant record.
// 200: JSON record (defaults when nothing is saved yet).
func (h *IntakeHandler) Get(w http.ResponseWriter, r *http.Request) {
	rec := h.Svc.Load(r.Context())
	if err := json.NewEncoder(w).Encode(rec); err != nil {
		h.Log.Error("failed to encode record", "err", err)
	}
}

// Patch merges a batch of fields into the record.
// 200: updated record; 400: bad JSON or unknown field.
func (h *IntakeHandler) Patch(w http.ResponseWriter, r *http.Request) {
	var fields map[string]any
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		problem.Write(w, http.StatusBadRequest, "Invalid JSON", "Body could not be decoded.")
		return
	}

	rec, err := h.Svc.UpdateMany(r.Context(), fields)
	if err != nil {
		writeError(r.Context(), h.Log, w, err, err.Error())
		return
	}

	if err := json.NewEncoder(w).Encode(rec); err != nil {
		h.Log.Error("failed to encode record", "err", err)
	}
}

// PutField sets a single field. Body: {"value": ...}.
// 200: updated record; 400: bad JSON, unknown field, or mistyped value.
func (h *IntakeHandler) PutField(w http.ResponseWriter, r *http.Request) {
	field := chi.URLParam(r, "field")

	var body struct {
		Value any `json:"value"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		problem.Write(w, http.StatusBadRequest, "Invalid JSON", "Body could not be decoded.")
		return
	}

	rec, err := h.Svc.Update(r.Context(), field, body.Value)
	if err != nil {
		writeError(r.Context(), h.Log, w, err, err.Error())
		return
	}

	if err := json.NewEncoder(w).Encode(rec); err != nil {
		h.Log.Error("failed to encode record", "field", field, "err", err)
	}
}

// Clear wipes the saved intake and resets to defaults ("start over").
// 200: the default record.
func (h *IntakeHandler) Clear(w http.ResponseWriter, r *http.Request) {
	rec := h.Svc.Clear(r.Context())
	if err := json.NewEncoder(w).Encode(rec); err != nil {
		h.Log.Error("failed to encode record", "err", err)
	}
}

// Step maps ?screen= to the wizard step index for the progress display.
// 200: {"screen": ..., "step": n}. Unknown screens are step 0.
func (h *IntakeHandler) Step(w http.ResponseWriter, r *http.Request) {
	screen := r.URL.Query().Get("screen")
	resp := map[string]any{
		"screen": screen,
		"step":   h.Svc.Step(screen),
	}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		h.Log.Error("failed to encode step", "err", err)
	}
}
