package api

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"time"

	"github.com/dukerupert/storefront/internal/domain"
	"github.com/dukerupert/storefront/internal/middleware"
	"github.com/dukerupert/storefront/internal/service"
	"github.com/google/uuid"
)

var errNotImplemented = errors.New("not implemented")

// mockCartService implements service.CartService for testing
type mockCartService struct {
	resolveFunc            func(ctx context.Context, owner domain.CartOwner) (*service.Cart, error)
	addItemFunc            func(ctx context.Context, owner domain.CartOwner, productID uuid.UUID, quantity int) (*service.CartSummary, error)
	updateItemQuantityFunc func(ctx context.Context, owner domain.CartOwner, itemID uuid.UUID, quantity int) (*service.CartSummary, error)
	removeItemFunc         func(ctx context.Context, owner domain.CartOwner, itemID uuid.UUID) (*service.CartSummary, error)
	getCartSummaryFunc     func(ctx context.Context, owner domain.CartOwner) (*service.CartSummary, error)
}

func (m *mockCartService) Resolve(ctx context.Context, owner domain.CartOwner) (*service.Cart, error) {
	if m.resolveFunc != nil {
		return m.resolveFunc(ctx, owner)
	}
	return nil, errNotImplemented
}

func (m *mockCartService) AddItem(ctx context.Context, owner domain.CartOwner, productID uuid.UUID, quantity int) (*service.CartSummary, error) {
	if m.addItemFunc != nil {
		return m.addItemFunc(ctx, owner, productID, quantity)
	}
	return nil, errNotImplemented
}

func (m *mockCartService) UpdateItemQuantity(ctx context.Context, owner domain.CartOwner, itemID uuid.UUID, quantity int) (*service.CartSummary, error) {
	if m.updateItemQuantityFunc != nil {
		return m.updateItemQuantityFunc(ctx, owner, itemID, quantity)
	}
	return nil, errNotImplemented
}

func (m *mockCartService) RemoveItem(ctx context.Context, owner domain.CartOwner, itemID uuid.UUID) (*service.CartSummary, error) {
	if m.removeItemFunc != nil {
		return m.removeItemFunc(ctx, owner, itemID)
	}
	return nil, errNotImplemented
}

func (m *mockCartService) GetCartSummary(ctx context.Context, owner domain.CartOwner) (*service.CartSummary, error) {
	if m.getCartSummaryFunc != nil {
		return m.getCartSummaryFunc(ctx, owner)
	}
	return nil, errNotImplemented
}

// mockMergeService implements service.MergeService for testing
type mockMergeService struct {
	mergeOnLoginFunc func(ctx context.Context, sessionID string, accountID uuid.UUID) (*service.MergeResult, error)
	calls            int
}

func (m *mockMergeService) MergeOnLogin(ctx context.Context, sessionID string, accountID uuid.UUID) (*service.MergeResult, error) {
	m.calls++
	if m.mergeOnLoginFunc != nil {
		return m.mergeOnLoginFunc(ctx, sessionID, accountID)
	}
	return nil, errNotImplemented
}

// mockCheckoutService implements service.CheckoutService for testing
type mockCheckoutService struct {
	createCheckoutSessionFunc func(ctx context.Context, accountID uuid.UUID) (*service.CheckoutSessionResult, error)
}

func (m *mockCheckoutService) CreateCheckoutSession(ctx context.Context, accountID uuid.UUID) (*service.CheckoutSessionResult, error) {
	if m.createCheckoutSessionFunc != nil {
		return m.createCheckoutSessionFunc(ctx, accountID)
	}
	return nil, errNotImplemented
}

type mockReporter struct {
	abandonedCartsFunc func(ctx context.Context, start, end time.Time) (*service.AbandonmentReport, error)
}

func (m *mockReporter) AbandonedCarts(ctx context.Context, start, end time.Time) (*service.AbandonmentReport, error) {
	if m.abandonedCartsFunc != nil {
		return m.abandonedCartsFunc(ctx, start, end)
	}
	return nil, errNotImplemented
}

// newRequest builds a request carrying the given identity, as the
// Identity middleware would leave it.
func newRequest(method, target, body string, accountID uuid.UUID, sessionID string) *http.Request {
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, rd)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	return req.WithContext(middleware.WithIdentity(req.Context(), accountID, sessionID))
}
