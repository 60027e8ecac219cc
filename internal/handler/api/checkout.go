package api

import (
	"net/http"

	"github.com/dukerupert/storefront/internal/handler"
	"github.com/dukerupert/storefront/internal/middleware"
	"github.com/dukerupert/storefront/internal/service"
)

// CheckoutHandler opens gateway checkout sessions for signed-in callers.
type CheckoutHandler struct {
	checkout service.CheckoutService
}

// NewCheckoutHandler creates a new checkout handler
func NewCheckoutHandler(checkout service.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{checkout: checkout}
}

type checkoutResponse struct {
	SessionID string `json:"session_id"`
	URL       string `json:"url"`
	Total     string `json:"total"`
}

// Create handles POST /api/checkout
func (h *CheckoutHandler) Create(w http.ResponseWriter, r *http.Request) {
	accountID, ok := middleware.AccountIDFromContext(r.Context())
	if !ok {
		handler.UnauthorizedResponse(w, r)
		return
	}

	result, err := h.checkout.CreateCheckoutSession(r.Context(), accountID)
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	handler.JSON(w, http.StatusCreated, checkoutResponse{
		SessionID: result.SessionID,
		URL:       result.URL,
		Total:     result.Total.StringFixed(2),
	})
}
