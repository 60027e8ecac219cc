package billing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/stripe/stripe-go/v82"
	checkoutsession "github.com/stripe/stripe-go/v82/checkout/session"
	"github.com/stripe/stripe-go/v82/webhook"
)

// StripeGateway implements Gateway using Stripe Checkout.
type StripeGateway struct {
	sessions      *checkoutsession.Client
	webhookSecret string
	tolerance     time.Duration
}

// NewStripeGateway validates config and builds a gateway bound to its own
// API backend so that the package-level stripe.Key is never mutated.
func NewStripeGateway(config StripeConfig) (*StripeGateway, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	retries := config.MaxRetries
	if retries == 0 {
		retries = 2
	}
	backendConfig := &stripe.BackendConfig{
		MaxNetworkRetries: stripe.Int64(int64(retries)),
	}
	timeout := 30 * time.Second
	if config.TimeoutSeconds > 0 {
		timeout = time.Duration(config.TimeoutSeconds) * time.Second
	}
	backendConfig.HTTPClient = &http.Client{Timeout: timeout, Transport: config.Transport}

	tolerance := webhook.DefaultTolerance
	if config.WebhookToleranceSeconds > 0 {
		tolerance = time.Duration(config.WebhookToleranceSeconds) * time.Second
	}

	return &StripeGateway{
		sessions: &checkoutsession.Client{
			B:   stripe.GetBackendWithConfig(stripe.APIBackend, backendConfig),
			Key: config.APIKey,
		},
		webhookSecret: config.WebhookSecret,
		tolerance:     tolerance,
	}, nil
}

func (g *StripeGateway) CreateCheckoutSession(ctx context.Context, params CreateCheckoutSessionParams) (*CheckoutSession, error) {
	if len(params.LineItems) == 0 {
		return nil, errors.New("stripe: checkout session requires at least one line item")
	}
	if params.Metadata[MetadataAccountID] == "" {
		return nil, errors.New("stripe: checkout session requires account_id metadata")
	}

	sp := &stripe.CheckoutSessionParams{
		Mode:                     stripe.String(string(stripe.CheckoutSessionModePayment)),
		PaymentMethodTypes:       stripe.StringSlice([]string{"card"}),
		BillingAddressCollection: stripe.String(string(stripe.CheckoutSessionBillingAddressCollectionRequired)),
		ShippingAddressCollection: &stripe.CheckoutSessionShippingAddressCollectionParams{
			AllowedCountries: stripe.StringSlice(params.AllowedShippingCountries),
		},
		SuccessURL: stripe.String(params.SuccessURL),
		CancelURL:  stripe.String(params.CancelURL),
	}
	sp.Context = ctx

	for _, item := range params.LineItems {
		productData := &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
			Name: stripe.String(item.Name),
		}
		if item.ImageURL != "" {
			productData.Images = stripe.StringSlice([]string{item.ImageURL})
		}

		sp.LineItems = append(sp.LineItems, &stripe.CheckoutSessionLineItemParams{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency:    stripe.String(params.Currency),
				UnitAmount:  stripe.Int64(item.UnitAmountCents),
				ProductData: productData,
			},
			Quantity: stripe.Int64(item.Quantity),
		})
	}

	for k, v := range params.Metadata {
		sp.AddMetadata(k, v)
	}

	s, err := g.sessions.New(sp)
	if err != nil {
		return nil, wrapStripeError(err)
	}

	return fromStripeSession(s), nil
}

func (g *StripeGateway) GetCheckoutSession(ctx context.Context, sessionID string) (*CheckoutSession, error) {
	if sessionID == "" {
		return nil, ErrCheckoutSessionNotFound
	}

	sp := &stripe.CheckoutSessionParams{}
	sp.Context = ctx

	s, err := g.sessions.Get(sessionID, sp)
	if err != nil {
		var stripeErr *stripe.Error
		if errors.As(err, &stripeErr) && stripeErr.HTTPStatusCode == http.StatusNotFound {
			return nil, ErrCheckoutSessionNotFound
		}
		return nil, wrapStripeError(err)
	}

	return fromStripeSession(s), nil
}

func (g *StripeGateway) ConstructEvent(payload []byte, signature string) (*Event, error) {
	event, err := webhook.ConstructEventWithOptions(payload, signature, g.webhookSecret, webhook.ConstructEventOptions{
		Tolerance:                g.tolerance,
		IgnoreAPIVersionMismatch: true,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidWebhookSignature, err)
	}

	out := &Event{
		ID:   event.ID,
		Type: string(event.Type),
	}
	if event.Data != nil && len(event.Data.Raw) > 0 {
		var obj struct {
			ID string `json:"id"`
		}
		if err := json.Unmarshal(event.Data.Raw, &obj); err != nil {
			return nil, fmt.Errorf("stripe: failed to decode event object: %w", err)
		}
		out.ObjectID = obj.ID
	}

	return out, nil
}

func fromStripeSession(s *stripe.CheckoutSession) *CheckoutSession {
	out := &CheckoutSession{
		ID:                 s.ID,
		URL:                s.URL,
		AmountTotalCents:   s.AmountTotal,
		Currency:           string(s.Currency),
		PaymentStatus:      string(s.PaymentStatus),
		PaymentMethodTypes: s.PaymentMethodTypes,
		Metadata:           s.Metadata,
	}

	if s.CustomerDetails != nil {
		out.CustomerEmail = s.CustomerDetails.Email
		if a := s.CustomerDetails.Address; a != nil {
			out.CustomerAddress = &Address{
				Line1:      a.Line1,
				Line2:      a.Line2,
				City:       a.City,
				State:      a.State,
				PostalCode: a.PostalCode,
				Country:    a.Country,
			}
		}
	}

	return out
}

func wrapStripeError(err error) error {
	var stripeErr *stripe.Error
	if errors.As(err, &stripeErr) {
		return &StripeError{
			Message:       stripeErr.Msg,
			Code:          string(stripeErr.Code),
			DeclineCode:   string(stripeErr.DeclineCode),
			StripeCode:    fmt.Sprintf("%d", stripeErr.HTTPStatusCode),
			RequestID:     stripeErr.RequestID,
			OriginalError: err,
		}
	}
	return fmt.Errorf("stripe: %w", err)
}

var _ Gateway = (*StripeGateway)(nil)
