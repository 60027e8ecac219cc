package routes

import (
	"net/http"

	"github.com/dukerupert/storefront/internal/middleware"
	"github.com/dukerupert/storefront/internal/router"
)

// RegisterWebhookRoutes registers all webhook routes.
//
// Webhook routes have no identity middleware and no request timeout. The
// handler verifies the gateway signature, and processing must run to
// completion once the pipeline has started committing.
func RegisterWebhookRoutes(r *router.Router, deps WebhookDeps) {
	r.Post("/webhooks/stripe", deps.StripeHandler, middleware.MaxBodySize(middleware.WebhookMaxBodySize))
}

// RegisterOpsRoutes registers health and metrics endpoints.
func RegisterOpsRoutes(r *router.Router, deps OpsDeps) {
	r.Get("/health", deps.Health)
	if deps.Metrics != nil {
		r.Handle(http.MethodGet, "/metrics", deps.Metrics)
	}
}
