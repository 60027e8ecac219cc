package webhook

import (
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/dukerupert/storefront/internal/domain"
	"github.com/dukerupert/storefront/internal/handler"
	"github.com/dukerupert/storefront/internal/middleware"
	"github.com/dukerupert/storefront/internal/service"
	"github.com/dukerupert/storefront/internal/telemetry"
)

// SignatureHeader carries the gateway's HMAC signature.
const SignatureHeader = "Stripe-Signature"

// StripeHandler receives signed payment callbacks and hands them to the
// fulfillment pipeline. Only the status code reaches the gateway: 2xx means
// processed, anything else asks for redelivery.
type StripeHandler struct {
	fulfillment service.FulfillmentService
	logger      *slog.Logger
}

// NewStripeHandler creates a new Stripe webhook handler
func NewStripeHandler(fulfillment service.FulfillmentService, logger *slog.Logger) *StripeHandler {
	return &StripeHandler{fulfillment: fulfillment, logger: logger}
}

// HandleWebhook handles POST /webhooks/stripe
//
// Stripe CLI testing:
//
//	stripe listen --forward-to localhost:3000/webhooks/stripe
//	stripe trigger checkout.session.completed
func (h *StripeHandler) HandleWebhook(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger := middleware.GetLogger(r.Context(), h.logger)

	payload, err := io.ReadAll(r.Body)
	if err != nil {
		logger.Warn("failed to read webhook payload", "error", err)
		h.respond(w, http.StatusBadRequest, "unreadable", start)
		return
	}

	signature := r.Header.Get(SignatureHeader)
	if signature == "" {
		logger.Warn("webhook missing signature header", "bytes", len(payload))
		h.respond(w, http.StatusBadRequest, "missing_signature", start)
		return
	}

	outcome, err := h.fulfillment.HandleEvent(r.Context(), payload, signature)
	if err != nil {
		// The pipeline has already logged and captured the failure.
		h.respond(w, http.StatusInternalServerError, "error", start)
		return
	}

	switch outcome.Status {
	case domain.FulfillmentRejected:
		h.respond(w, http.StatusBadRequest, string(outcome.Status), start)
	default:
		logger.Info("webhook processed",
			"status", outcome.Status,
			"event_id", outcome.EventID,
			"event_type", outcome.EventType,
			"checkout_session_id", outcome.CheckoutSessionID,
		)
		h.respond(w, http.StatusOK, string(outcome.Status), start)
	}
}

func (h *StripeHandler) respond(w http.ResponseWriter, status int, label string, start time.Time) {
	if telemetry.Business != nil {
		telemetry.Business.WebhookReceived.WithLabelValues(label).Inc()
		telemetry.Business.WebhookLatency.WithLabelValues(label).Observe(time.Since(start).Seconds())
	}

	if status == http.StatusOK {
		handler.JSON(w, status, map[string]bool{"received": true})
		return
	}
	w.WriteHeader(status)
}
