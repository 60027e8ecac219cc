package billing

import (
	"context"
)

// Gateway is the payment gateway used for hosted checkout.
type Gateway interface {
	// CreateCheckoutSession creates a hosted checkout session and returns
	// the handle the client redirects to.
	CreateCheckoutSession(ctx context.Context, params CreateCheckoutSessionParams) (*CheckoutSession, error)

	// GetCheckoutSession re-fetches a session by id. Webhook processing
	// relies on this instead of trusting the callback body.
	GetCheckoutSession(ctx context.Context, sessionID string) (*CheckoutSession, error)

	// ConstructEvent verifies the signature header against the payload
	// and decodes the event. Returns ErrInvalidWebhookSignature on failure.
	ConstructEvent(payload []byte, signature string) (*Event, error)
}

// EventCheckoutSessionCompleted is the only event type that triggers fulfillment.
const EventCheckoutSessionCompleted = "checkout.session.completed"

// MetadataAccountID is the checkout session metadata key carrying the buyer's account id.
const MetadataAccountID = "account_id"

// CreateCheckoutSessionParams contains parameters for a hosted checkout session.
type CreateCheckoutSessionParams struct {
	LineItems []CheckoutLineItem

	// Currency code (ISO 4217), lower case
	Currency string

	// AllowedShippingCountries restricts the collected shipping address (ISO 3166-1 alpha-2)
	AllowedShippingCountries []string

	SuccessURL string
	CancelURL  string

	// Metadata is echoed back on the session. Always includes account_id.
	Metadata map[string]string
}

// CheckoutLineItem is one priced line of a checkout session.
type CheckoutLineItem struct {
	Name            string
	ImageURL        string
	UnitAmountCents int64
	Quantity        int64
}

// CheckoutSession is the gateway's view of a checkout session.
type CheckoutSession struct {
	ID  string
	URL string

	// AmountTotalCents is what the customer was charged, in minor units
	AmountTotalCents int64
	Currency         string
	PaymentStatus    string

	// PaymentMethodTypes as reported by the gateway, e.g. ["card"]
	PaymentMethodTypes []string

	Metadata      map[string]string
	CustomerEmail string

	// CustomerAddress is nil when the gateway collected none
	CustomerAddress *Address
}

// AccountID returns the account id stored in the session metadata.
func (s *CheckoutSession) AccountID() string {
	if s == nil || s.Metadata == nil {
		return ""
	}
	return s.Metadata[MetadataAccountID]
}

// Address is a postal address collected by the gateway.
type Address struct {
	Line1      string
	Line2      string
	City       string
	State      string
	PostalCode string
	Country    string
}

// Event is a verified gateway webhook event.
type Event struct {
	ID   string
	Type string

	// ObjectID is the id of the object the event refers to
	// (the checkout session id for checkout events)
	ObjectID string
}
