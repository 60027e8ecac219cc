package repository

import (
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
)

type Address struct {
	ID         pgtype.UUID        `json:"id"`
	OrderID    pgtype.UUID        `json:"order_id"`
	AccountID  pgtype.UUID        `json:"account_id"`
	Street     string             `json:"street"`
	City       string             `json:"city"`
	State      string             `json:"state"`
	Country    string             `json:"country"`
	PostalCode string             `json:"postal_code"`
	CreatedAt  pgtype.Timestamptz `json:"created_at"`
}

type Cart struct {
	ID        pgtype.UUID        `json:"id"`
	AccountID pgtype.UUID        `json:"account_id"`
	SessionID pgtype.Text        `json:"session_id"`
	Status    string             `json:"status"`
	CreatedAt pgtype.Timestamptz `json:"created_at"`
	UpdatedAt pgtype.Timestamptz `json:"updated_at"`
}

type CartEvent struct {
	ID        pgtype.UUID        `json:"id"`
	CartID    pgtype.UUID        `json:"cart_id"`
	AccountID pgtype.UUID        `json:"account_id"`
	EventType string             `json:"event_type"`
	CreatedAt pgtype.Timestamptz `json:"created_at"`
}

type CartItem struct {
	ID        pgtype.UUID        `json:"id"`
	CartID    pgtype.UUID        `json:"cart_id"`
	ProductID pgtype.UUID        `json:"product_id"`
	Quantity  int32              `json:"quantity"`
	CreatedAt pgtype.Timestamptz `json:"created_at"`
	UpdatedAt pgtype.Timestamptz `json:"updated_at"`
}

type Order struct {
	ID                pgtype.UUID        `json:"id"`
	AccountID         pgtype.UUID        `json:"account_id"`
	CartID            pgtype.UUID        `json:"cart_id"`
	CheckoutSessionID string             `json:"checkout_session_id"`
	Status            string             `json:"status"`
	Amount            decimal.Decimal    `json:"amount"`
	Currency          string             `json:"currency"`
	CreatedAt         pgtype.Timestamptz `json:"created_at"`
	UpdatedAt         pgtype.Timestamptz `json:"updated_at"`
}

type OrderItem struct {
	ID        pgtype.UUID        `json:"id"`
	OrderID   pgtype.UUID        `json:"order_id"`
	ProductID pgtype.UUID        `json:"product_id"`
	Quantity  int32              `json:"quantity"`
	UnitPrice decimal.Decimal    `json:"unit_price"`
	CreatedAt pgtype.Timestamptz `json:"created_at"`
}

type Payment struct {
	ID        pgtype.UUID        `json:"id"`
	OrderID   pgtype.UUID        `json:"order_id"`
	AccountID pgtype.UUID        `json:"account_id"`
	Method    string             `json:"method"`
	Amount    decimal.Decimal    `json:"amount"`
	Status    string             `json:"status"`
	CreatedAt pgtype.Timestamptz `json:"created_at"`
}

type Product struct {
	ID              pgtype.UUID        `json:"id"`
	Name            string             `json:"name"`
	Price           decimal.Decimal    `json:"price"`
	DiscountPercent decimal.Decimal    `json:"discount_percent"`
	Images          []string           `json:"images"`
	Stock           int32              `json:"stock"`
	SalesCount      int32              `json:"sales_count"`
	CreatedAt       pgtype.Timestamptz `json:"created_at"`
	UpdatedAt       pgtype.Timestamptz `json:"updated_at"`
}

type Shipment struct {
	ID                  pgtype.UUID        `json:"id"`
	OrderID             pgtype.UUID        `json:"order_id"`
	Carrier             string             `json:"carrier"`
	TrackingNumber      string             `json:"tracking_number"`
	ShippedAt           pgtype.Timestamptz `json:"shipped_at"`
	EstimatedDeliveryAt pgtype.Timestamptz `json:"estimated_delivery_at"`
	CreatedAt           pgtype.Timestamptz `json:"created_at"`
}

type StockMovement struct {
	ID        pgtype.UUID        `json:"id"`
	ProductID pgtype.UUID        `json:"product_id"`
	OrderID   pgtype.UUID        `json:"order_id"`
	Quantity  int32              `json:"quantity"`
	Reason    string             `json:"reason"`
	CreatedAt pgtype.Timestamptz `json:"created_at"`
}

type Transaction struct {
	ID                pgtype.UUID        `json:"id"`
	OrderID           pgtype.UUID        `json:"order_id"`
	AccountID         pgtype.UUID        `json:"account_id"`
	Amount            decimal.Decimal    `json:"amount"`
	Status            string             `json:"status"`
	ProviderReference string             `json:"provider_reference"`
	CreatedAt         pgtype.Timestamptz `json:"created_at"`
}

type WebhookLog struct {
	ID        pgtype.UUID        `json:"id"`
	EventID   string             `json:"event_id"`
	EventType string             `json:"event_type"`
	Payload   []byte             `json:"payload"`
	CreatedAt pgtype.Timestamptz `json:"created_at"`
}
