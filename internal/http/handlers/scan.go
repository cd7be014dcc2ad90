package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rvanheerden/go-autoquote/internal/core"
	"github.com/rvanheerden/go-autoquote/internal/scan"
	"github.com/rvanheerden/go-autoquote/pkg/problem"
)

// ScanHandler drives the simulated document scans and VIN lookups. The
// simulation runs under the request context: if the client cancels the
// request while the fake latency is still pending, nothing is extracted and
// nothing is merged into the record.
type ScanHandler struct {
	Proc *scan.Processor
	Svc  *core.IntakeService
	Log  *slog.Logger
}

func NewScanHandler(proc *scan.Processor, svc *core.IntakeService, log *slog.Logger) *ScanHandler {
	return &ScanHandler{Proc: proc, Svc: svc, Log: log}
}

func (h *ScanHandler) Mount(r chi.Router) {
	r.Post("/scan/{document_type}", h.Scan)
	r.Post("/vin-lookup", h.VINLookup)
}

// Scan processes an uploaded document. Body: {"filename": "..."}. Extracted
// fields are merged into the record and echoed back with validation notes.
// 200: extraction + validation; 400: bad JSON or missing filename.
func (h *ScanHandler) Scan(w http.ResponseWriter, r *http.Request) {
	docType := chi.URLParam(r, "document_type")

	var body struct {
		Filename string `json:"filename"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		problem.Write(w, http.StatusBadRequest, "Invalid JSON", "Body could not be decoded.")
		return
	}
	if body.Filename == "" {
		problem.Write(w, http.StatusBadRequest, "Validation Error", "filename is required.")
		return
	}

	fields, err := h.Proc.Process(r.Context(), body.Filename, docType)
	if err != nil {
		writeError(r.Context(), h.Log, w, err, err.Error())
		return
	}

	validation := scan.ValidateExtract(fields, docType)
	if validation.Valid {
		if _, err := h.Svc.UpdateMany(r.Context(), toFieldMap(fields)); err != nil {
			writeError(r.Context(), h.Log, w, err, err.Error())
			return
		}
	}

	resp := map[string]any{
		"fields":     fields,
		"validation": validation,
		"applied":    validation.Valid,
	}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		h.Log.Error("failed to encode scan result", "err", err)
	}
}

// VINLookup decodes a VIN. Body: {"vin": "..."}. The decoded vehicle fields
// are merged into the record.
// 200: fields; 400: bad JSON or invalid VIN.
func (h *ScanHandler) VINLookup(w http.ResponseWriter, r *http.Request) {
	var body struct {
		VIN string `json:"vin"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		problem.Write(w, http.StatusBadRequest, "Invalid JSON", "Body could not be decoded.")
		return
	}

	fields, err := h.Proc.LookupVIN(r.Context(), body.VIN)
	if err != nil {
		writeError(r.Context(), h.Log, w, err, err.Error())
		return
	}

	if _, err := h.Svc.UpdateMany(r.Context(), toFieldMap(fields)); err != nil {
		writeError(r.Context(), h.Log, w, err, err.Error())
		return
	}

	if err := json.NewEncoder(w).Encode(fields); err != nil {
		h.Log.Error("failed to encode vin lookup result", "err", err)
	}
}

// toFieldMap widens an extraction for IntakeService.UpdateMany, dropping
// keys that are not record fields (e.g. rawText from an unknown document).
func toFieldMap(fields map[string]string) map[string]any {
	out := make(map[string]any, len(fields))
	for k, v := range fields {
		if k == "rawText" {
			continue
		}
		out[k] = v
	}
	return out
}
