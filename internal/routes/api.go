package routes

import (
	"github.com/dukerupert/storefront/internal/middleware"
	"github.com/dukerupert/storefront/internal/router"
)

// RegisterAPIRoutes registers the cart, checkout and analytics endpoints.
// Cart routes accept anonymous callers. Merge and checkout require an
// authenticated account, and the store-wide analytics report also
// requires the admin role.
func RegisterAPIRoutes(r *router.Router, deps APIDeps) {
	chain := []router.Middleware{
		middleware.MaxBodySize(),
		middleware.Timeout(),
		deps.Identity,
	}
	chain = append(chain, deps.RequestContext...)
	g := r.Group(chain...)

	g.Get("/api/cart", deps.CartHandler.Get)
	g.Post("/api/cart", deps.CartHandler.Add)
	g.Put("/api/cart/items/{id}", deps.CartHandler.UpdateItem)
	g.Delete("/api/cart/items/{id}", deps.CartHandler.RemoveItem)

	account := g.Group(middleware.RequireAccount)
	account.Post("/api/cart/merge", deps.CartHandler.Merge)
	account.Post("/api/checkout", deps.CheckoutHandler.Create, deps.CheckoutLimiter)
	account.Get("/api/analytics/abandoned-carts", deps.AnalyticsHandler.AbandonedCarts, middleware.RequireRole(middleware.RoleAdmin))
}
