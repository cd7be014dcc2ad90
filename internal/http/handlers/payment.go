package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rvanheerden/go-autoquote/internal/core"
	"github.com/rvanheerden/go-autoquote/internal/platform/ids"
	"github.com/rvanheerden/go-autoquote/pkg/problem"
)

// PaymentHandler serves the payment screen. It quotes with the payment
// stage's own simplified formula (which intentionally differs from the
// summary estimate) and accepts a simulated payment submission.
type PaymentHandler struct {
	Svc *core.IntakeService
	Log *slog.Logger
}

func NewPaymentHandler(svc *core.IntakeService, log *slog.Logger) *PaymentHandler {
	return &PaymentHandler{Svc: svc, Log: log}
}

func (h *PaymentHandler) Mount(r chi.Router) {
	r.Route("/payment", func(r chi.Router) {
		r.Get("/estimate", h.Estimate)
		r.Post("/", h.Submit)
	})
}

// Estimate recomputes the simplified payment-stage premium.
// 200: {"annual": n}.
func (h *PaymentHandler) Estimate(w http.ResponseWriter, r *http.Request) {
	rec := h.Svc.Load(r.Context())
	resp := map[string]int{"annual": core.PaymentEstimate(rec)}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		h.Log.Error("failed to encode payment estimate", "err", err)
	}
}

// Submit simulates the payment. No gateway is involved: the method just has
// to be one we recognize, and the response carries a generated reference.
// 200: confirmation; 400: unknown payment method.
func (h *PaymentHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Method string `json:"method"` // card or bank
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		problem.Write(w, http.StatusBadRequest, "Invalid JSON", "Body could not be decoded.")
		return
	}
	if body.Method != "card" && body.Method != "bank" {
		problem.Write(w, http.StatusBadRequest, "Validation Error", "Payment method must be 'card' or 'bank'.")
		return
	}

	rec := h.Svc.Load(r.Context())
	reference := ids.New()
	h.Log.Info("simulated payment accepted", "method", body.Method, "reference", reference)

	resp := map[string]any{
		"reference": reference,
		"method":    body.Method,
		"annual":    core.PaymentEstimate(rec),
		"status":    "accepted",
	}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		h.Log.Error("failed to encode payment confirmation", "err", err)
	}
}
