package api

import (
	"net/http"

	"github.com/dukerupert/storefront/internal/cookie"
	"github.com/dukerupert/storefront/internal/handler"
	"github.com/dukerupert/storefront/internal/middleware"
	"github.com/dukerupert/storefront/internal/service"
	"github.com/google/uuid"
)

// CartHandler handles the cart endpoints for anonymous and signed-in callers.
type CartHandler struct {
	carts   service.CartService
	merges  service.MergeService
	cookies *cookie.Config
}

// NewCartHandler creates a new cart handler
func NewCartHandler(carts service.CartService, merges service.MergeService, cookies *cookie.Config) *CartHandler {
	return &CartHandler{carts: carts, merges: merges, cookies: cookies}
}

type addItemRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
	Quantity  *int   `json:"quantity" validate:"required,lte=10000"`
}

type updateItemRequest struct {
	Quantity *int `json:"quantity" validate:"required,lte=10000"`
}

// Get handles GET /api/cart
func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	owner, err := ownerFrom(r)
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	summary, err := h.carts.GetCartSummary(r.Context(), owner)
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}
	handler.JSON(w, http.StatusOK, summary)
}

// Add handles POST /api/cart
func (h *CartHandler) Add(w http.ResponseWriter, r *http.Request) {
	const op = "api.cart.add"

	var req addItemRequest
	if err := decodeJSON(r, op, &req); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	owner, err := ownerFrom(r)
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	summary, err := h.carts.AddItem(r.Context(), owner, uuid.MustParse(req.ProductID), *req.Quantity)
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}
	handler.JSON(w, http.StatusOK, summary)
}

// UpdateItem handles PUT /api/cart/items/{id}
func (h *CartHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	const op = "api.cart.update_item"

	itemID, err := pathUUID(r, "id", op)
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	var req updateItemRequest
	if err := decodeJSON(r, op, &req); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	owner, err := ownerFrom(r)
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	summary, err := h.carts.UpdateItemQuantity(r.Context(), owner, itemID, *req.Quantity)
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}
	handler.JSON(w, http.StatusOK, summary)
}

// RemoveItem handles DELETE /api/cart/items/{id}
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	itemID, err := pathUUID(r, "id", "api.cart.remove_item")
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	owner, err := ownerFrom(r)
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	summary, err := h.carts.RemoveItem(r.Context(), owner, itemID)
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}
	handler.JSON(w, http.StatusOK, summary)
}

// Merge handles POST /api/cart/merge. It requires an account; the session
// cookie names the anonymous cart to fold in and is cleared afterwards.
// Calling it again, or without a session, reports merged=false.
func (h *CartHandler) Merge(w http.ResponseWriter, r *http.Request) {
	accountID, ok := middleware.AccountIDFromContext(r.Context())
	if !ok {
		handler.UnauthorizedResponse(w, r)
		return
	}

	sessionID := middleware.SessionIDFromContext(r.Context())
	if sessionID == "" {
		handler.JSON(w, http.StatusOK, &service.MergeResult{})
		return
	}

	result, err := h.merges.MergeOnLogin(r.Context(), sessionID, accountID)
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	h.cookies.ClearSession(w)
	handler.JSON(w, http.StatusOK, result)
}
