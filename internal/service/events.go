package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/dukerupert/storefront/internal/domain"
	"github.com/dukerupert/storefront/internal/events"
	"github.com/dukerupert/storefront/internal/repository"
	"github.com/dukerupert/storefront/internal/telemetry"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
)

// AbandonmentWindow is how long a cart may sit after its first ADD before
// it counts as abandoned.
const AbandonmentWindow = time.Hour

// EventPublisher fans recorded cart events out to downstream consumers.
type EventPublisher interface {
	PublishCartEvent(ctx context.Context, msg events.CartEventMessage) error
}

// CartEventLog is the append-only cart event store. Rows are written to
// Postgres and, once committed, published to the broker.
type CartEventLog struct {
	store     repository.Store
	publisher EventPublisher
	logger    *slog.Logger
	now       func() time.Time
}

func NewCartEventLog(store repository.Store, publisher EventPublisher, logger *slog.Logger) *CartEventLog {
	if publisher == nil {
		publisher = events.NoopPublisher{}
	}
	return &CartEventLog{
		store:     store,
		publisher: publisher,
		logger:    logger,
		now:       time.Now,
	}
}

// Record appends an event outside of any caller transaction.
func (l *CartEventLog) Record(ctx context.Context, cartID uuid.UUID, accountID uuid.UUID, eventType domain.CartEventType) error {
	ev, err := l.appendEvent(ctx, l.store, uuidToPgtype(cartID), uuidToPgtype(accountID), eventType)
	if err != nil {
		return err
	}
	l.publish(ctx, ev)
	return nil
}

func (l *CartEventLog) appendEvent(ctx context.Context, q repository.Querier, cartID, accountID pgtype.UUID, eventType domain.CartEventType) (repository.CartEvent, error) {
	if !eventType.Valid() {
		return repository.CartEvent{}, domain.Errorf(domain.EINVALID, "cart_event.record", "unknown cart event type %q", eventType)
	}

	ev, err := q.CreateCartEvent(ctx, repository.CreateCartEventParams{
		CartID:    cartID,
		AccountID: accountID,
		EventType: string(eventType),
	})
	if err != nil {
		return repository.CartEvent{}, fmt.Errorf("failed to record %s event: %w", eventType, err)
	}

	if telemetry.Business != nil {
		telemetry.Business.CartEvents.WithLabelValues(string(eventType)).Inc()
	}
	return ev, nil
}

// publish is best effort. The database row is the record of truth.
func (l *CartEventLog) publish(ctx context.Context, ev repository.CartEvent) {
	msg := events.CartEventMessage{
		EventID:    mustUUID(ev.ID).String(),
		CartID:     mustUUID(ev.CartID).String(),
		EventType:  ev.EventType,
		OccurredAt: ev.CreatedAt.Time,
	}
	if ev.AccountID.Valid {
		msg.AccountID = mustUUID(ev.AccountID).String()
	}

	if err := l.publisher.PublishCartEvent(ctx, msg); err != nil {
		l.logger.Warn("failed to publish cart event",
			"event_id", msg.EventID,
			"cart_id", msg.CartID,
			"event_type", msg.EventType,
			"error", err,
		)
	}
}

// AbandonmentReport summarises cart abandonment over a time range.
type AbandonmentReport struct {
	Start                time.Time       `json:"start"`
	End                  time.Time       `json:"end"`
	TotalCarts           int             `json:"total_carts"`
	AbandonedCarts       int             `json:"abandoned_carts"`
	AbandonmentRate      decimal.Decimal `json:"abandonment_rate"`
	PotentialRevenueLost decimal.Decimal `json:"potential_revenue_lost"`
}

// AbandonedCarts counts carts that received an ADD in [start, end) and
// never reached CHECKOUT_COMPLETED within that range, once their first ADD
// is older than AbandonmentWindow. Carts whose items are all gone are not
// counted. Revenue lost is the current value of the abandoned carts.
func (l *CartEventLog) AbandonedCarts(ctx context.Context, start, end time.Time) (*AbandonmentReport, error) {
	if !start.Before(end) {
		return nil, ErrInvalidRange
	}

	rows, err := l.store.ListCartEventsBetween(ctx, repository.ListCartEventsBetweenParams{
		StartAt: timeToPgtype(start),
		EndAt:   timeToPgtype(end),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list cart events: %w", err)
	}

	type cartActivity struct {
		firstAdd  time.Time
		completed bool
	}
	activity := make(map[pgtype.UUID]*cartActivity)
	order := make([]pgtype.UUID, 0)

	for _, ev := range rows {
		a, ok := activity[ev.CartID]
		if !ok {
			a = &cartActivity{}
			activity[ev.CartID] = a
			order = append(order, ev.CartID)
		}
		switch domain.CartEventType(ev.EventType) {
		case domain.CartEventAdd:
			if a.firstAdd.IsZero() || ev.CreatedAt.Time.Before(a.firstAdd) {
				a.firstAdd = ev.CreatedAt.Time
			}
		case domain.CartEventCheckoutCompleted:
			a.completed = true
		}
	}

	report := &AbandonmentReport{
		Start:                start,
		End:                  end,
		AbandonmentRate:      decimal.Zero,
		PotentialRevenueLost: decimal.Zero,
	}
	cutoff := l.now().Add(-AbandonmentWindow)

	for _, cartID := range order {
		a := activity[cartID]
		if a.firstAdd.IsZero() {
			continue
		}

		items, err := l.store.ListCartItems(ctx, cartID)
		if err != nil {
			return nil, fmt.Errorf("failed to list cart items: %w", err)
		}
		if len(items) == 0 && !a.completed {
			continue
		}
		report.TotalCarts++

		if a.completed || !a.firstAdd.Before(cutoff) {
			continue
		}
		report.AbandonedCarts++
		report.PotentialRevenueLost = report.PotentialRevenueLost.Add(QuoteCart(items).Total)
	}

	if report.TotalCarts > 0 {
		report.AbandonmentRate = decimal.NewFromInt(int64(report.AbandonedCarts)).
			Mul(decimal.NewFromInt(100)).
			Div(decimal.NewFromInt(int64(report.TotalCarts))).
			Round(2)
	}

	return report, nil
}
