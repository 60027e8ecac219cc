package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const createCartEvent = `-- name: CreateCartEvent :one
INSERT INTO cart_events (cart_id, account_id, event_type)
VALUES ($1, $2, $3)
RETURNING id, cart_id, account_id, event_type, created_at
`

type CreateCartEventParams struct {
	CartID    pgtype.UUID `json:"cart_id"`
	AccountID pgtype.UUID `json:"account_id"`
	EventType string      `json:"event_type"`
}

func (q *Queries) CreateCartEvent(ctx context.Context, arg CreateCartEventParams) (CartEvent, error) {
	row := q.db.QueryRow(ctx, createCartEvent, arg.CartID, arg.AccountID, arg.EventType)
	var i CartEvent
	err := row.Scan(
		&i.ID,
		&i.CartID,
		&i.AccountID,
		&i.EventType,
		&i.CreatedAt,
	)
	return i, err
}

const listCartEventsBetween = `-- name: ListCartEventsBetween :many
SELECT id, cart_id, account_id, event_type, created_at
FROM cart_events
WHERE created_at >= $1 AND created_at < $2
ORDER BY created_at, id
`

type ListCartEventsBetweenParams struct {
	StartAt pgtype.Timestamptz `json:"start_at"`
	EndAt   pgtype.Timestamptz `json:"end_at"`
}

func (q *Queries) ListCartEventsBetween(ctx context.Context, arg ListCartEventsBetweenParams) ([]CartEvent, error) {
	rows, err := q.db.Query(ctx, listCartEventsBetween, arg.StartAt, arg.EndAt)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []CartEvent
	for rows.Next() {
		var i CartEvent
		if err := rows.Scan(
			&i.ID,
			&i.CartID,
			&i.AccountID,
			&i.EventType,
			&i.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const createWebhookLog = `-- name: CreateWebhookLog :exec
INSERT INTO webhook_logs (event_id, event_type, payload)
VALUES ($1, $2, $3)
ON CONFLICT (event_id) DO NOTHING
`

type CreateWebhookLogParams struct {
	EventID   string `json:"event_id"`
	EventType string `json:"event_type"`
	Payload   []byte `json:"payload"`
}

func (q *Queries) CreateWebhookLog(ctx context.Context, arg CreateWebhookLogParams) error {
	_, err := q.db.Exec(ctx, createWebhookLog, arg.EventID, arg.EventType, arg.Payload)
	return err
}
