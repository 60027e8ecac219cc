package service

import (
	"context"
	"errors"
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

const (
	// AddressSentinel replaces address fields the gateway did not collect.
	AddressSentinel = "N/A"

	// ShipmentLeadTime is the synthetic delivery estimate.
	ShipmentLeadTime = 7 * 24 * time.Hour

	paymentStatusSucceeded     = "succeeded"
	transactionStatusCompleted = "completed"
	unknownPaymentMethod       = "unknown"
)

// FulfillmentService turns verified payment confirmations into orders.
type FulfillmentService interface {
	// HandleEvent runs one gateway callback through the pipeline.
	//
	// Business rejections return an outcome with Status rejected and a nil
	// error. A non-nil error means processing could not complete and the
	// gateway should redeliver.
	HandleEvent(ctx context.Context, payload []byte, signature string) (*FulfillmentOutcome, error)
}

// CacheInvalidator drops derived aggregates after a new order lands.
type CacheInvalidator interface {
	InvalidateDashboards(ctx context.Context) error
}

// FulfillmentOutcome is the terminal state of one callback.
type FulfillmentOutcome struct {
	Status domain.FulfillmentStatus
	Stage  domain.FulfillmentStage
	Reason domain.RejectReason

	EventID           string
	EventType         string
	CheckoutSessionID string
	AccountID         uuid.UUID

	// Order is set for fulfilled and duplicate outcomes.
	Order *OrderDetail

	// Err is the rejection cause.
	Err error
}

// OrderDetail is an order with the records created alongside it. Only Order
// is populated on the duplicate path.
type OrderDetail struct {
	Order       repository.Order        `json:"order"`
	Items       []repository.OrderItem  `json:"items,omitempty"`
	Address     *repository.Address     `json:"address,omitempty"`
	Payment     *repository.Payment     `json:"payment,omitempty"`
	Transaction *repository.Transaction `json:"transaction,omitempty"`
	Shipment    *repository.Shipment    `json:"shipment,omitempty"`
}

type fulfillmentService struct {
	store       repository.Store
	gateway     billing.Gateway
	events      *CartEventLog
	invalidator CacheInvalidator
	logger      *slog.Logger
	now         func() time.Time
}

// NewFulfillmentService creates a new FulfillmentService instance
func NewFulfillmentService(
	store repository.Store,
	gateway billing.Gateway,
	events *CartEventLog,
	invalidator CacheInvalidator,
	logger *slog.Logger,
) FulfillmentService {
	return &fulfillmentService{
		store:       store,
		gateway:     gateway,
		events:      events,
		invalidator: invalidator,
		logger:      logger,
		now:         time.Now,
	}
}

var errOrderExists = errors.New("order already exists for checkout session")

func (s *fulfillmentService) HandleEvent(ctx context.Context, payload []byte, signature string) (*FulfillmentOutcome, error) {
	ctx, finish := telemetry.StartSpan(ctx, "fulfillment.handle_event", "stripe webhook")
	defer finish()

	out := &FulfillmentOutcome{Stage: domain.StageReceived}

	event, err := s.gateway.ConstructEvent(payload, signature)
	if err != nil {
		return s.reject(out, ErrInvalidSignature, err), nil
	}
	out.EventID = event.ID
	out.EventType = event.Type
	out.CheckoutSessionID = event.ObjectID

	if event.Type != billing.EventCheckoutSessionCompleted {
		out.Status = domain.FulfillmentIgnored
		s.logger.Debug("ignoring webhook event", "event_id", event.ID, "event_type", event.Type)
		s.recordOutcome(out)
		return out, nil
	}

	start := time.Now()
	session, err := s.gateway.GetCheckoutSession(ctx, event.ObjectID)
	if telemetry.Business != nil {
		telemetry.Business.StripeAPILatency.WithLabelValues("get_checkout_session").Observe(time.Since(start).Seconds())
	}
	if err != nil {
		return out, s.fail(out, fmt.Errorf("failed to fetch checkout session: %w", err))
	}
	out.CheckoutSessionID = session.ID

	accountID, err := uuid.Parse(session.AccountID())
	if err != nil || accountID == uuid.Nil {
		return s.reject(out, ErrMissingAccountContext, err), nil
	}
	out.AccountID = accountID

	if existing, err := s.store.GetOrderByCheckoutSession(ctx, session.ID); err == nil {
		return s.duplicate(ctx, out, existing, payload)
	} else if !repository.IsNotFound(err) {
		return out, s.fail(out, fmt.Errorf("failed to check existing order: %w", err))
	}

	cart, err := s.store.GetActiveCartByAccount(ctx, uuidToPgtype(accountID))
	if err != nil {
		if repository.IsNotFound(err) {
			return s.reject(out, ErrCartGone, err), nil
		}
		return out, s.fail(out, fmt.Errorf("failed to get cart: %w", err))
	}
	items, err := s.store.ListCartItems(ctx, cart.ID)
	if err != nil {
		return out, s.fail(out, fmt.Errorf("failed to list cart items: %w", err))
	}
	if len(items) == 0 {
		return s.reject(out, ErrCartGone, nil), nil
	}

	quote := QuoteCart(items)
	charged := domain.FromCents(session.AmountTotalCents)
	if !domain.AmountsMatch(quote.Total, charged) {
		cause := fmt.Errorf("cart total %s, charged %s", quote.Total.StringFixed(2), charged.StringFixed(2))
		return s.reject(out, ErrAmountMismatch, cause), nil
	}
	out.Stage = domain.StageValidated

	detail, completed, err := s.commit(ctx, session, cart, quote, charged)
	if err != nil {
		if errors.Is(err, errOrderExists) || repository.IsUniqueViolation(err, repository.ConstraintOrderCheckoutSession) {
			existing, lookupErr := s.store.GetOrderByCheckoutSession(ctx, session.ID)
			if lookupErr != nil {
				return out, s.fail(out, fmt.Errorf("failed to load existing order: %w", lookupErr))
			}
			return s.duplicate(ctx, out, existing, payload)
		}
		if errors.Is(err, ErrInsufficientStock) {
			return s.reject(out, ErrInsufficientStock, err), nil
		}
		return out, s.fail(out, err)
	}
	out.Stage = domain.StageCommitted
	out.Order = detail

	if telemetry.Business != nil {
		telemetry.Business.OrdersCreated.Inc()
		telemetry.Business.OrderValue.Observe(charged.InexactFloat64())
		for _, item := range detail.Items {
			telemetry.Business.StockMovements.WithLabelValues(string(domain.StockReasonSale)).Add(float64(item.Quantity))
		}
	}

	s.events.publish(ctx, completed)

	if err := s.finish(ctx, out, event, payload); err != nil {
		return out, s.fail(out, err)
	}

	out.Status = domain.FulfillmentFulfilled
	s.recordOutcome(out)

	s.logger.Info("order fulfilled",
		"order_id", mustUUID(detail.Order.ID).String(),
		"account_id", accountID.String(),
		"checkout_session_id", session.ID,
		"event_id", event.ID,
		"amount", charged.StringFixed(2),
	)

	return out, nil
}

// commit writes the order and everything that depends on it in one
// transaction. Stock is decremented conditionally inside the same
// transaction, so an InsufficientStock failure leaves nothing behind.
func (s *fulfillmentService) commit(
	ctx context.Context,
	session *billing.CheckoutSession,
	cart repository.Cart,
	quote Quote,
	charged decimal.Decimal,
) (*OrderDetail, repository.CartEvent, error) {
	var (
		detail    OrderDetail
		completed repository.CartEvent
	)
	accountID := cart.AccountID
	now := s.now()

	currency := strings.ToLower(session.Currency)
	if currency == "" {
		currency = "usd"
	}

	err := s.store.ExecTx(ctx, func(q repository.Querier) error {
		if _, err := q.GetOrderByCheckoutSession(ctx, session.ID); err == nil {
			return errOrderExists
		} else if !repository.IsNotFound(err) {
			return fmt.Errorf("failed to check existing order: %w", err)
		}

		order, err := q.CreateOrder(ctx, repository.CreateOrderParams{
			AccountID:         accountID,
			CartID:            cart.ID,
			CheckoutSessionID: session.ID,
			Status:            string(domain.OrderStatusPaid),
			Amount:            charged,
			Currency:          currency,
		})
		if err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}
		detail.Order = order

		for _, line := range quote.Lines {
			item, err := q.CreateOrderItem(ctx, repository.CreateOrderItemParams{
				OrderID:   order.ID,
				ProductID: uuidToPgtype(line.ProductID),
				Quantity:  int32(line.Quantity),
				UnitPrice: line.UnitPrice,
			})
			if err != nil {
				return fmt.Errorf("failed to create order item: %w", err)
			}
			detail.Items = append(detail.Items, item)
		}

		address, err := q.CreateAddress(ctx, addressParams(order, session.CustomerAddress))
		if err != nil {
			return fmt.Errorf("failed to create address: %w", err)
		}
		detail.Address = &address

		payment, err := q.CreatePayment(ctx, repository.CreatePaymentParams{
			OrderID:   order.ID,
			AccountID: accountID,
			Method:    paymentMethod(session),
			Amount:    charged,
			Status:    paymentStatusSucceeded,
		})
		if err != nil {
			return fmt.Errorf("failed to create payment: %w", err)
		}
		detail.Payment = &payment

		txn, err := q.CreateTransaction(ctx, repository.CreateTransactionParams{
			OrderID:           order.ID,
			AccountID:         accountID,
			Amount:            charged,
			Status:            transactionStatusCompleted,
			ProviderReference: session.ID,
		})
		if err != nil {
			return fmt.Errorf("failed to create transaction: %w", err)
		}
		detail.Transaction = &txn

		for _, line := range quote.Lines {
			productID := uuidToPgtype(line.ProductID)
			n, err := q.DecrementProductStock(ctx, repository.DecrementProductStockParams{
				ID:       productID,
				Quantity: int32(line.Quantity),
			})
			if err != nil {
				return fmt.Errorf("failed to decrement stock: %w", err)
			}
			if n == 0 {
				return domain.WrapError(ErrInsufficientStock, domain.ECONFLICT, "fulfillment.commit",
					fmt.Sprintf("insufficient stock for product %s", line.ProductID))
			}

			if _, err := q.CreateStockMovement(ctx, repository.CreateStockMovementParams{
				ProductID: productID,
				OrderID:   order.ID,
				Quantity:  -int32(line.Quantity),
				Reason:    string(domain.StockReasonSale),
			}); err != nil {
				return fmt.Errorf("failed to record stock movement: %w", err)
			}
		}

		shipment, err := q.CreateShipment(ctx, repository.CreateShipmentParams{
			OrderID:             order.ID,
			Carrier:             "Carrier_" + uuid.NewString()[:8],
			TrackingNumber:      uuid.NewString(),
			ShippedAt:           timeToPgtype(now),
			EstimatedDeliveryAt: timeToPgtype(now.Add(ShipmentLeadTime)),
		})
		if err != nil {
			return fmt.Errorf("failed to create shipment: %w", err)
		}
		detail.Shipment = &shipment

		if err := q.UpdateCartStatus(ctx, repository.UpdateCartStatusParams{
			ID:     cart.ID,
			Status: string(domain.CartStatusConverted),
		}); err != nil {
			return fmt.Errorf("failed to convert cart: %w", err)
		}

		completed, err = s.events.appendEvent(ctx, q, cart.ID, accountID, domain.CartEventCheckoutCompleted)
		return err
	})
	if err != nil {
		return nil, repository.CartEvent{}, err
	}

	return &detail, completed, nil
}

// duplicate acknowledges a redelivery. Side effects after the commit are
// repeated since an earlier attempt may have failed before finishing them.
func (s *fulfillmentService) duplicate(ctx context.Context, out *FulfillmentOutcome, existing repository.Order, payload []byte) (*FulfillmentOutcome, error) {
	out.Order = &OrderDetail{Order: existing}
	out.Stage = domain.StageCommitted

	event := &billing.Event{ID: out.EventID, Type: out.EventType, ObjectID: out.CheckoutSessionID}
	if err := s.finish(ctx, out, event, payload); err != nil {
		return out, s.fail(out, err)
	}

	out.Status = domain.FulfillmentDuplicate
	s.recordOutcome(out)

	s.logger.Info("duplicate checkout confirmation",
		"order_id", mustUUID(existing.ID).String(),
		"account_id", out.AccountID.String(),
		"checkout_session_id", out.CheckoutSessionID,
		"event_id", out.EventID,
	)
	return out, nil
}

// finish invalidates derived caches and appends the webhook log.
func (s *fulfillmentService) finish(ctx context.Context, out *FulfillmentOutcome, event *billing.Event, payload []byte) error {
	if err := s.invalidator.InvalidateDashboards(ctx); err != nil {
		if telemetry.Business != nil {
			telemetry.Business.CacheInvalidations.WithLabelValues("failed").Inc()
		}
		return fmt.Errorf("failed to invalidate dashboard cache: %w", err)
	}
	if telemetry.Business != nil {
		telemetry.Business.CacheInvalidations.WithLabelValues("ok").Inc()
	}
	out.Stage = domain.StageSideEffected

	if err := s.store.CreateWebhookLog(ctx, repository.CreateWebhookLogParams{
		EventID:   event.ID,
		EventType: event.Type,
		Payload:   payload,
	}); err != nil {
		return fmt.Errorf("failed to write webhook log: %w", err)
	}
	out.Stage = domain.StageLogged
	return nil
}

func (s *fulfillmentService) reject(out *FulfillmentOutcome, reason error, cause error) *FulfillmentOutcome {
	failedAt := out.Stage
	code, _ := domain.ReasonFor(reason)

	out.Status = domain.FulfillmentRejected
	out.Stage = domain.StageRejected
	out.Reason = code
	out.Err = reason
	if cause != nil && cause != reason {
		out.Err = fmt.Errorf("%w: %v", reason, cause)
	}

	attrs := []any{
		"reason", string(code),
		"stage", string(failedAt),
		"event_id", out.EventID,
		"checkout_session_id", out.CheckoutSessionID,
		"error", out.Err,
	}
	if out.AccountID != uuid.Nil {
		attrs = append(attrs, "account_id", out.AccountID.String())
	}
	s.logger.Warn("checkout confirmation rejected", attrs...)

	if code != domain.RejectInvalidSignature {
		telemetry.CaptureErrorWithAccount(out.Err, accountLabel(out.AccountID), map[string]interface{}{
			"reason":              string(code),
			"stage":               string(failedAt),
			"event_id":            out.EventID,
			"checkout_session_id": out.CheckoutSessionID,
		})
	}

	s.recordOutcome(out)
	return out
}

// fail reports an infrastructure error that should trigger redelivery.
func (s *fulfillmentService) fail(out *FulfillmentOutcome, err error) error {
	s.logger.Error("checkout confirmation failed",
		"stage", string(out.Stage),
		"event_id", out.EventID,
		"checkout_session_id", out.CheckoutSessionID,
		"account_id", accountLabel(out.AccountID),
		"error", err,
	)
	telemetry.CaptureErrorWithAccount(err, accountLabel(out.AccountID), map[string]interface{}{
		"stage":               string(out.Stage),
		"event_id":            out.EventID,
		"checkout_session_id": out.CheckoutSessionID,
	})
	if telemetry.Business != nil {
		telemetry.Business.FulfillmentOutcomes.WithLabelValues("error", "").Inc()
	}
	return err
}

func (s *fulfillmentService) recordOutcome(out *FulfillmentOutcome) {
	if telemetry.Business != nil {
		telemetry.Business.FulfillmentOutcomes.WithLabelValues(string(out.Status), string(out.Reason)).Inc()
	}
}

func addressParams(order repository.Order, a *billing.Address) repository.CreateAddressParams {
	params := repository.CreateAddressParams{
		OrderID:    order.ID,
		AccountID:  order.AccountID,
		Street:     AddressSentinel,
		City:       AddressSentinel,
		State:      AddressSentinel,
		Country:    AddressSentinel,
		PostalCode: AddressSentinel,
	}
	if a == nil {
		return params
	}

	street := strings.TrimSpace(strings.Join([]string{a.Line1, a.Line2}, " "))
	params.Street = orSentinel(street)
	params.City = orSentinel(a.City)
	params.State = orSentinel(a.State)
	params.Country = orSentinel(a.Country)
	params.PostalCode = orSentinel(a.PostalCode)
	return params
}

func orSentinel(v string) string {
	if v = strings.TrimSpace(v); v == "" {
		return AddressSentinel
	}
	return v
}

func paymentMethod(session *billing.CheckoutSession) string {
	if len(session.PaymentMethodTypes) == 0 || session.PaymentMethodTypes[0] == "" {
		return unknownPaymentMethod
	}
	return session.PaymentMethodTypes[0]
}

func accountLabel(id uuid.UUID) string {
	if id == uuid.Nil {
		return ""
	}
	return id.String()
}
