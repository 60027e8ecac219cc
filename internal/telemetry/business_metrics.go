package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// BusinessMetrics holds Prometheus metrics for the cart-to-order funnel.
type BusinessMetrics struct {
	// Cart
	CartsCreated   *prometheus.CounterVec
	CartEvents     *prometheus.CounterVec
	CartMutations  *prometheus.CounterVec
	CartMerges     *prometheus.CounterVec
	CartItemsMoved prometheus.Counter

	// Checkout
	CheckoutSessions *prometheus.CounterVec
	CheckoutValue    prometheus.Histogram

	// Fulfillment
	FulfillmentOutcomes *prometheus.CounterVec
	OrdersCreated       prometheus.Counter
	OrderValue          prometheus.Histogram
	StockMovements      *prometheus.CounterVec
	CacheInvalidations  *prometheus.CounterVec

	// Abandonment, refreshed by the report worker
	AbandonedCarts       prometheus.Gauge
	AbandonmentRate      prometheus.Gauge
	PotentialRevenueLost prometheus.Gauge
	AbandonmentRuns      *prometheus.CounterVec

	// Webhooks
	WebhookReceived *prometheus.CounterVec
	WebhookLatency  *prometheus.HistogramVec

	// External API performance
	StripeAPILatency *prometheus.HistogramVec
}

// NewBusinessMetrics creates and registers all business metrics on reg.
func NewBusinessMetrics(namespace string, reg prometheus.Registerer) *BusinessMetrics {
	if namespace == "" {
		namespace = "storefront"
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	subsystem := "business"
	factory := promauto.With(reg)

	moneyBuckets := []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500}

	m := &BusinessMetrics{
		// =======================================================================
		// Cart
		// =======================================================================
		CartsCreated: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "carts_created_total",
				Help:      "Total carts created, by owner kind",
			},
			[]string{"owner"}, // owner: anonymous, account
		),
		CartEvents: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "cart_events_total",
				Help:      "Total cart lifecycle events recorded",
			},
			[]string{"event_type"},
		),
		CartMutations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "cart_mutations_total",
				Help:      "Total cart line mutations",
			},
			[]string{"operation"}, // operation: add, update, remove
		),
		CartMerges: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "cart_merges_total",
				Help:      "Total login merges, by result",
			},
			[]string{"result"}, // result: merged, noop, failed
		),
		CartItemsMoved: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "cart_merge_items_total",
				Help:      "Total anonymous lines folded into account carts",
			},
		),

		// =======================================================================
		// Checkout
		// =======================================================================
		CheckoutSessions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "checkout_sessions_total",
				Help:      "Total checkout sessions requested, by result",
			},
			[]string{"result"}, // result: created, empty_cart, gateway_error
		),
		CheckoutValue: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "checkout_value_dollars",
				Help:      "Quoted checkout totals",
				Buckets:   moneyBuckets,
			},
		),

		// =======================================================================
		// Fulfillment
		// =======================================================================
		FulfillmentOutcomes: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "fulfillment_outcomes_total",
				Help:      "Payment confirmations processed, by terminal status and rejection reason",
			},
			[]string{"status", "reason"},
		),
		OrdersCreated: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "orders_created_total",
				Help:      "Total orders created",
			},
		),
		OrderValue: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "order_value_dollars",
				Help:      "Order totals",
				Buckets:   moneyBuckets,
			},
		),
		StockMovements: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "stock_movement_units_total",
				Help:      "Units moved in or out of stock, by reason",
			},
			[]string{"reason"},
		),
		CacheInvalidations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "cache_invalidations_total",
				Help:      "Dashboard cache invalidations, by result",
			},
			[]string{"result"},
		),

		// =======================================================================
		// Abandonment
		// =======================================================================
		AbandonedCarts: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "abandoned_carts",
				Help:      "Abandoned carts in the trailing report window",
			},
		),
		AbandonmentRate: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "cart_abandonment_rate_percent",
				Help:      "Abandoned carts as a percentage of carts with items",
			},
		),
		PotentialRevenueLost: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "abandoned_cart_value",
				Help:      "Current value of abandoned carts in the trailing report window",
			},
		),
		AbandonmentRuns: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "abandonment_report_runs_total",
				Help:      "Abandonment report runs, by result",
			},
			[]string{"result"},
		),

		// =======================================================================
		// Webhooks
		// =======================================================================
		WebhookReceived: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "webhooks_received_total",
				Help:      "Total webhooks received",
			},
			[]string{"status"},
		),
		WebhookLatency: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "webhook_processing_duration_seconds",
				Help:      "Webhook processing duration",
				Buckets:   []float64{.01, .05, .1, .25, .5, 1, 2.5, 5},
			},
			[]string{"status"},
		),

		// =======================================================================
		// External API Performance
		// =======================================================================
		StripeAPILatency: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "stripe_api_duration_seconds",
				Help:      "Stripe API call duration (helps differentiate app slowness from Stripe issues)",
				Buckets:   []float64{.1, .25, .5, 1, 2.5, 5, 10, 30},
			},
			[]string{"operation"}, // operation: create_checkout_session, get_checkout_session
		),
	}

	return m
}

// Global instance for easy access from services and handlers
var Business *BusinessMetrics

// InitBusinessMetrics initializes the global business metrics instance
func InitBusinessMetrics(namespace string) *BusinessMetrics {
	Business = NewBusinessMetrics(namespace, prometheus.DefaultRegisterer)
	return Business
}
