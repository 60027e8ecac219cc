package routes

import (
	"net/http"

	"github.com/dukerupert/storefront/internal/handler/api"
	"github.com/dukerupert/storefront/internal/router"
)

// APIDeps contains dependencies for the JSON API routes
type APIDeps struct {
	// Identity resolves the cart session cookie and bearer account.
	Identity router.Middleware

	// RequestContext runs after Identity: request logger, Sentry scope.
	RequestContext []router.Middleware

	CartHandler      *api.CartHandler
	CheckoutHandler  *api.CheckoutHandler
	AnalyticsHandler *api.AnalyticsHandler

	// CheckoutLimiter throttles checkout session creation. Optional.
	CheckoutLimiter router.Middleware
}

// WebhookDeps contains dependencies for webhook routes
type WebhookDeps struct {
	StripeHandler http.HandlerFunc
}

// OpsDeps contains the operational endpoints.
type OpsDeps struct {
	Health  http.HandlerFunc
	Metrics http.Handler
}
