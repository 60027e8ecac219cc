package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/nats-io/nats.go"
)

// CartEventMessage is the wire form of a recorded cart event.
type CartEventMessage struct {
	EventID    string    `json:"event_id"`
	CartID     string    `json:"cart_id"`
	AccountID  string    `json:"account_id,omitempty"`
	EventType  string    `json:"event_type"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Subject returns the subject a message is published on.
func Subject(prefix, eventType string) string {
	return fmt.Sprintf("%s.cart.%s", prefix, strings.ToLower(eventType))
}

type NATSPublisher struct {
	conn   *nats.Conn
	prefix string
	logger *slog.Logger
}

// NewNATSPublisher connects to url and publishes under prefix.
func NewNATSPublisher(url, prefix string, logger *slog.Logger) (*NATSPublisher, error) {
	conn, err := nats.Connect(url,
		nats.Name("storefront"),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				logger.Warn("nats disconnected", "error", err)
			}
		}),
		nats.ReconnectHandler(func(c *nats.Conn) {
			logger.Info("nats reconnected", "url", c.ConnectedUrl())
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to nats: %w", err)
	}

	return &NATSPublisher{conn: conn, prefix: prefix, logger: logger}, nil
}

func (p *NATSPublisher) PublishCartEvent(ctx context.Context, msg CartEventMessage) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to encode cart event: %w", err)
	}

	out := nats.NewMsg(Subject(p.prefix, msg.EventType))
	out.Data = data
	out.Header.Set(nats.MsgIdHdr, msg.EventID)

	if err := p.conn.PublishMsg(out); err != nil {
		return fmt.Errorf("failed to publish cart event: %w", err)
	}
	return nil
}

// Close drains pending messages before closing the connection.
func (p *NATSPublisher) Close() {
	if err := p.conn.Drain(); err != nil {
		p.logger.Warn("nats drain failed", "error", err)
		p.conn.Close()
	}
}

// NoopPublisher discards events when no broker is configured.
type NoopPublisher struct{}

func (NoopPublisher) PublishCartEvent(context.Context, CartEventMessage) error { return nil }
