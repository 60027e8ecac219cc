package billing

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// MockGateway is an in-memory Gateway for tests. Sessions created through
// it can be fetched back; Func fields override the default behavior.
type MockGateway struct {
	CreateCheckoutSessionFunc func(ctx context.Context, params CreateCheckoutSessionParams) (*CheckoutSession, error)
	GetCheckoutSessionFunc    func(ctx context.Context, sessionID string) (*CheckoutSession, error)
	ConstructEventFunc        func(payload []byte, signature string) (*Event, error)

	mu sync.Mutex

	// Sessions stores created or seeded sessions by id
	Sessions map[string]*CheckoutSession

	// CallLog tracks method calls for test assertions
	CallLog []string

	createParams []CreateCheckoutSessionParams
}

func NewMockGateway() *MockGateway {
	return &MockGateway{
		Sessions: make(map[string]*CheckoutSession),
	}
}

func (m *MockGateway) log(entry string) {
	m.mu.Lock()
	m.CallLog = append(m.CallLog, entry)
	m.mu.Unlock()
}

// Calls returns a copy of the call log.
func (m *MockGateway) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.CallLog...)
}

// CreateParams returns the params of every CreateCheckoutSession call.
func (m *MockGateway) CreateParams() []CreateCheckoutSessionParams {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]CreateCheckoutSessionParams(nil), m.createParams...)
}

// AddSession seeds a session as if the gateway had completed it.
func (m *MockGateway) AddSession(s *CheckoutSession) {
	m.mu.Lock()
	m.Sessions[s.ID] = s
	m.mu.Unlock()
}

func (m *MockGateway) CreateCheckoutSession(ctx context.Context, params CreateCheckoutSessionParams) (*CheckoutSession, error) {
	m.log(fmt.Sprintf("CreateCheckoutSession(%d items)", len(params.LineItems)))
	m.mu.Lock()
	m.createParams = append(m.createParams, params)
	m.mu.Unlock()

	if m.CreateCheckoutSessionFunc != nil {
		return m.CreateCheckoutSessionFunc(ctx, params)
	}

	var total int64
	for _, item := range params.LineItems {
		total += item.UnitAmountCents * item.Quantity
	}

	id := "cs_test_" + uuid.NewString()
	s := &CheckoutSession{
		ID:                 id,
		URL:                "https://checkout.stripe.com/c/pay/" + id,
		AmountTotalCents:   total,
		Currency:           params.Currency,
		PaymentStatus:      "unpaid",
		PaymentMethodTypes: []string{"card"},
		Metadata:           params.Metadata,
	}
	m.AddSession(s)
	return s, nil
}

func (m *MockGateway) GetCheckoutSession(ctx context.Context, sessionID string) (*CheckoutSession, error) {
	m.log(fmt.Sprintf("GetCheckoutSession(%s)", sessionID))

	if m.GetCheckoutSessionFunc != nil {
		return m.GetCheckoutSessionFunc(ctx, sessionID)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.Sessions[sessionID]
	if !ok {
		return nil, ErrCheckoutSessionNotFound
	}
	return s, nil
}

// ConstructEvent accepts the signature "valid" and treats the payload as
// the checkout session id of a completed checkout.
func (m *MockGateway) ConstructEvent(payload []byte, signature string) (*Event, error) {
	m.log("ConstructEvent")

	if m.ConstructEventFunc != nil {
		return m.ConstructEventFunc(payload, signature)
	}
	if signature != "valid" {
		return nil, ErrInvalidWebhookSignature
	}
	return &Event{ID: "evt_" + string(payload), Type: EventCheckoutSessionCompleted, ObjectID: string(payload)}, nil
}

var _ Gateway = (*MockGateway)(nil)
