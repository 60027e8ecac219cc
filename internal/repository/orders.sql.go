package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
)

const getOrderByCheckoutSession = `-- name: GetOrderByCheckoutSession :one
SELECT id, account_id, cart_id, checkout_session_id, status, amount, currency, created_at, updated_at
FROM orders
WHERE checkout_session_id = $1
`

func (q *Queries) GetOrderByCheckoutSession(ctx context.Context, checkoutSessionID string) (Order, error) {
	row := q.db.QueryRow(ctx, getOrderByCheckoutSession, checkoutSessionID)
	var i Order
	err := row.Scan(
		&i.ID,
		&i.AccountID,
		&i.CartID,
		&i.CheckoutSessionID,
		&i.Status,
		&i.Amount,
		&i.Currency,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const createOrder = `-- name: CreateOrder :one
INSERT INTO orders (account_id, cart_id, checkout_session_id, status, amount, currency)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id, account_id, cart_id, checkout_session_id, status, amount, currency, created_at, updated_at
`

type CreateOrderParams struct {
	AccountID         pgtype.UUID     `json:"account_id"`
	CartID            pgtype.UUID     `json:"cart_id"`
	CheckoutSessionID string          `json:"checkout_session_id"`
	Status            string          `json:"status"`
	Amount            decimal.Decimal `json:"amount"`
	Currency          string          `json:"currency"`
}

func (q *Queries) CreateOrder(ctx context.Context, arg CreateOrderParams) (Order, error) {
	row := q.db.QueryRow(ctx, createOrder,
		arg.AccountID,
		arg.CartID,
		arg.CheckoutSessionID,
		arg.Status,
		arg.Amount,
		arg.Currency,
	)
	var i Order
	err := row.Scan(
		&i.ID,
		&i.AccountID,
		&i.CartID,
		&i.CheckoutSessionID,
		&i.Status,
		&i.Amount,
		&i.Currency,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const createOrderItem = `-- name: CreateOrderItem :one
INSERT INTO order_items (order_id, product_id, quantity, unit_price)
VALUES ($1, $2, $3, $4)
RETURNING id, order_id, product_id, quantity, unit_price, created_at
`

type CreateOrderItemParams struct {
	OrderID   pgtype.UUID     `json:"order_id"`
	ProductID pgtype.UUID     `json:"product_id"`
	Quantity  int32           `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

func (q *Queries) CreateOrderItem(ctx context.Context, arg CreateOrderItemParams) (OrderItem, error) {
	row := q.db.QueryRow(ctx, createOrderItem,
		arg.OrderID,
		arg.ProductID,
		arg.Quantity,
		arg.UnitPrice,
	)
	var i OrderItem
	err := row.Scan(
		&i.ID,
		&i.OrderID,
		&i.ProductID,
		&i.Quantity,
		&i.UnitPrice,
		&i.CreatedAt,
	)
	return i, err
}

const createAddress = `-- name: CreateAddress :one
INSERT INTO addresses (order_id, account_id, street, city, state, country, postal_code)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING id, order_id, account_id, street, city, state, country, postal_code, created_at
`

type CreateAddressParams struct {
	OrderID    pgtype.UUID `json:"order_id"`
	AccountID  pgtype.UUID `json:"account_id"`
	Street     string      `json:"street"`
	City       string      `json:"city"`
	State      string      `json:"state"`
	Country    string      `json:"country"`
	PostalCode string      `json:"postal_code"`
}

func (q *Queries) CreateAddress(ctx context.Context, arg CreateAddressParams) (Address, error) {
	row := q.db.QueryRow(ctx, createAddress,
		arg.OrderID,
		arg.AccountID,
		arg.Street,
		arg.City,
		arg.State,
		arg.Country,
		arg.PostalCode,
	)
	var i Address
	err := row.Scan(
		&i.ID,
		&i.OrderID,
		&i.AccountID,
		&i.Street,
		&i.City,
		&i.State,
		&i.Country,
		&i.PostalCode,
		&i.CreatedAt,
	)
	return i, err
}

const createPayment = `-- name: CreatePayment :one
INSERT INTO payments (order_id, account_id, method, amount, status)
VALUES ($1, $2, $3, $4, $5)
RETURNING id, order_id, account_id, method, amount, status, created_at
`

type CreatePaymentParams struct {
	OrderID   pgtype.UUID     `json:"order_id"`
	AccountID pgtype.UUID     `json:"account_id"`
	Method    string          `json:"method"`
	Amount    decimal.Decimal `json:"amount"`
	Status    string          `json:"status"`
}

func (q *Queries) CreatePayment(ctx context.Context, arg CreatePaymentParams) (Payment, error) {
	row := q.db.QueryRow(ctx, createPayment,
		arg.OrderID,
		arg.AccountID,
		arg.Method,
		arg.Amount,
		arg.Status,
	)
	var i Payment
	err := row.Scan(
		&i.ID,
		&i.OrderID,
		&i.AccountID,
		&i.Method,
		&i.Amount,
		&i.Status,
		&i.CreatedAt,
	)
	return i, err
}

const createTransaction = `-- name: CreateTransaction :one
INSERT INTO transactions (order_id, account_id, amount, status, provider_reference)
VALUES ($1, $2, $3, $4, $5)
RETURNING id, order_id, account_id, amount, status, provider_reference, created_at
`

type CreateTransactionParams struct {
	OrderID           pgtype.UUID     `json:"order_id"`
	AccountID         pgtype.UUID     `json:"account_id"`
	Amount            decimal.Decimal `json:"amount"`
	Status            string          `json:"status"`
	ProviderReference string          `json:"provider_reference"`
}

func (q *Queries) CreateTransaction(ctx context.Context, arg CreateTransactionParams) (Transaction, error) {
	row := q.db.QueryRow(ctx, createTransaction,
		arg.OrderID,
		arg.AccountID,
		arg.Amount,
		arg.Status,
		arg.ProviderReference,
	)
	var i Transaction
	err := row.Scan(
		&i.ID,
		&i.OrderID,
		&i.AccountID,
		&i.Amount,
		&i.Status,
		&i.ProviderReference,
		&i.CreatedAt,
	)
	return i, err
}

const createShipment = `-- name: CreateShipment :one
INSERT INTO shipments (order_id, carrier, tracking_number, shipped_at, estimated_delivery_at)
VALUES ($1, $2, $3, $4, $5)
RETURNING id, order_id, carrier, tracking_number, shipped_at, estimated_delivery_at, created_at
`

type CreateShipmentParams struct {
	OrderID             pgtype.UUID        `json:"order_id"`
	Carrier             string             `json:"carrier"`
	TrackingNumber      string             `json:"tracking_number"`
	ShippedAt           pgtype.Timestamptz `json:"shipped_at"`
	EstimatedDeliveryAt pgtype.Timestamptz `json:"estimated_delivery_at"`
}

func (q *Queries) CreateShipment(ctx context.Context, arg CreateShipmentParams) (Shipment, error) {
	row := q.db.QueryRow(ctx, createShipment,
		arg.OrderID,
		arg.Carrier,
		arg.TrackingNumber,
		arg.ShippedAt,
		arg.EstimatedDeliveryAt,
	)
	var i Shipment
	err := row.Scan(
		&i.ID,
		&i.OrderID,
		&i.Carrier,
		&i.TrackingNumber,
		&i.ShippedAt,
		&i.EstimatedDeliveryAt,
		&i.CreatedAt,
	)
	return i, err
}
