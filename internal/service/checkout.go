package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/dukerupert/storefront/internal/billing"
	"github.com/dukerupert/storefront/internal/domain"
	"github.com/dukerupert/storefront/internal/repository"
	"github.com/dukerupert/storefront/internal/telemetry"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CheckoutService builds hosted payment sessions from an account's cart.
type CheckoutService interface {
	// CreateCheckoutSession quotes the account's active cart and opens a
	// gateway checkout session for it. The cart is left untouched.
	CreateCheckoutSession(ctx context.Context, accountID uuid.UUID) (*CheckoutSessionResult, error)
}

// CheckoutConfig holds the gateway session settings.
type CheckoutConfig struct {
	Currency            string
	AllowedCountries    []string
	SuccessURL          string
	CancelURL           string
	PlaceholderImageURL string
	MaxImageURLLength   int
}

const (
	DefaultPlaceholderImageURL = "https://via.placeholder.com/150"
	DefaultMaxImageURLLength   = 2048
)

// DefaultAllowedCountries is the shipping allow-list used when none is configured.
var DefaultAllowedCountries = []string{"US", "CA", "MX", "EG"}

// CheckoutSessionResult is returned to the client for redirect.
type CheckoutSessionResult struct {
	SessionID string          `json:"session_id"`
	URL       string          `json:"url"`
	Total     decimal.Decimal `json:"total"`
	Lines     []QuoteLine     `json:"lines"`
}

// Quote is a priced snapshot of cart lines.
type Quote struct {
	Lines []QuoteLine
	Total decimal.Decimal
}

// QuoteLine is one cart line at its effective unit price.
type QuoteLine struct {
	ProductID uuid.UUID       `json:"product_id"`
	Name      string          `json:"name"`
	ImageURL  string          `json:"image_url,omitempty"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	LineTotal decimal.Decimal `json:"line_total"`
}

// QuoteCart prices cart lines at their current effective unit price. The
// same computation backs both session creation and payment reconciliation.
func QuoteCart(items []repository.ListCartItemsRow) Quote {
	q := Quote{
		Lines: make([]QuoteLine, 0, len(items)),
		Total: decimal.Zero,
	}
	for _, item := range items {
		unit := domain.EffectiveUnitPrice(item.Price, item.DiscountPercent)
		line := unit.Mul(decimal.NewFromInt32(item.Quantity))

		ql := QuoteLine{
			ProductID: mustUUID(item.ProductID),
			Name:      item.ProductName,
			Quantity:  int(item.Quantity),
			UnitPrice: unit,
			LineTotal: line,
		}
		if len(item.Images) > 0 {
			ql.ImageURL = item.Images[0]
		}

		q.Lines = append(q.Lines, ql)
		q.Total = q.Total.Add(line)
	}
	return q
}

type checkoutService struct {
	store   repository.Store
	gateway billing.Gateway
	events  *CartEventLog
	config  CheckoutConfig
	logger  *slog.Logger
}

// NewCheckoutService creates a new CheckoutService instance
func NewCheckoutService(
	store repository.Store,
	gateway billing.Gateway,
	events *CartEventLog,
	config CheckoutConfig,
	logger *slog.Logger,
) CheckoutService {
	if config.Currency == "" {
		config.Currency = "usd"
	}
	if len(config.AllowedCountries) == 0 {
		config.AllowedCountries = DefaultAllowedCountries
	}
	if config.PlaceholderImageURL == "" {
		config.PlaceholderImageURL = DefaultPlaceholderImageURL
	}
	if config.MaxImageURLLength <= 0 {
		config.MaxImageURLLength = DefaultMaxImageURLLength
	}

	return &checkoutService{
		store:   store,
		gateway: gateway,
		events:  events,
		config:  config,
		logger:  logger,
	}
}

func (s *checkoutService) CreateCheckoutSession(ctx context.Context, accountID uuid.UUID) (*CheckoutSessionResult, error) {
	ctx, finish := telemetry.StartSpan(ctx, "checkout.create_session", "stripe checkout session")
	defer finish()

	if accountID == uuid.Nil {
		return nil, ErrInvalidIdentity
	}

	cart, err := s.store.GetActiveCartByAccount(ctx, uuidToPgtype(accountID))
	if err != nil {
		if repository.IsNotFound(err) {
			s.recordResult("empty_cart")
			return nil, ErrEmptyCart
		}
		return nil, fmt.Errorf("failed to get cart: %w", err)
	}

	items, err := s.store.ListCartItems(ctx, cart.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list cart items: %w", err)
	}
	if len(items) == 0 {
		s.recordResult("empty_cart")
		return nil, ErrEmptyCart
	}

	quote := QuoteCart(items)

	params := billing.CreateCheckoutSessionParams{
		LineItems:                make([]billing.CheckoutLineItem, 0, len(quote.Lines)),
		Currency:                 s.config.Currency,
		AllowedShippingCountries: s.config.AllowedCountries,
		SuccessURL:               s.config.SuccessURL,
		CancelURL:                s.config.CancelURL,
		Metadata: map[string]string{
			billing.MetadataAccountID: accountID.String(),
		},
	}
	for i := range quote.Lines {
		line := &quote.Lines[i]
		line.ImageURL = s.displayImage(line.ImageURL)
		params.LineItems = append(params.LineItems, billing.CheckoutLineItem{
			Name:            line.Name,
			ImageURL:        line.ImageURL,
			UnitAmountCents: domain.ToCents(line.UnitPrice),
			Quantity:        int64(line.Quantity),
		})
	}

	start := time.Now()
	session, err := s.gateway.CreateCheckoutSession(ctx, params)
	if telemetry.Business != nil {
		telemetry.Business.StripeAPILatency.WithLabelValues("create_checkout_session").Observe(time.Since(start).Seconds())
	}
	if err != nil {
		s.recordResult("gateway_error")
		return nil, fmt.Errorf("failed to create checkout session: %w", err)
	}

	if err := s.events.Record(ctx, mustUUID(cart.ID), accountID, domain.CartEventCheckoutStarted); err != nil {
		s.logger.Warn("failed to record checkout started",
			"cart_id", mustUUID(cart.ID).String(),
			"account_id", accountID.String(),
			"error", err,
		)
	}

	s.recordResult("created")
	if telemetry.Business != nil {
		telemetry.Business.CheckoutValue.Observe(quote.Total.InexactFloat64())
	}

	s.logger.Info("checkout session created",
		"account_id", accountID.String(),
		"checkout_session_id", session.ID,
		"total", quote.Total.StringFixed(2),
	)

	return &CheckoutSessionResult{
		SessionID: session.ID,
		URL:       session.URL,
		Total:     quote.Total,
		Lines:     quote.Lines,
	}, nil
}

// displayImage falls back to the placeholder for missing or oversized URLs.
func (s *checkoutService) displayImage(url string) string {
	url = strings.TrimSpace(url)
	if url == "" || len(url) > s.config.MaxImageURLLength {
		return s.config.PlaceholderImageURL
	}
	return url
}

func (s *checkoutService) recordResult(result string) {
	if telemetry.Business != nil {
		telemetry.Business.CheckoutSessions.WithLabelValues(result).Inc()
	}
}
