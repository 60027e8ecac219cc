package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

type Querier interface {
	AddCartItem(ctx context.Context, arg AddCartItemParams) (CartItem, error)
	CreateAddress(ctx context.Context, arg CreateAddressParams) (Address, error)
	CreateCart(ctx context.Context, arg CreateCartParams) (Cart, error)
	CreateCartEvent(ctx context.Context, arg CreateCartEventParams) (CartEvent, error)
	CreateOrder(ctx context.Context, arg CreateOrderParams) (Order, error)
	CreateOrderItem(ctx context.Context, arg CreateOrderItemParams) (OrderItem, error)
	CreatePayment(ctx context.Context, arg CreatePaymentParams) (Payment, error)
	CreateShipment(ctx context.Context, arg CreateShipmentParams) (Shipment, error)
	CreateStockMovement(ctx context.Context, arg CreateStockMovementParams) (StockMovement, error)
	CreateTransaction(ctx context.Context, arg CreateTransactionParams) (Transaction, error)
	CreateWebhookLog(ctx context.Context, arg CreateWebhookLogParams) error
	DecrementProductStock(ctx context.Context, arg DecrementProductStockParams) (int64, error)
	DeleteCart(ctx context.Context, id pgtype.UUID) error
	DeleteCartItem(ctx context.Context, id pgtype.UUID) error
	GetActiveCartByAccount(ctx context.Context, accountID pgtype.UUID) (Cart, error)
	GetActiveCartBySession(ctx context.Context, sessionID string) (Cart, error)
	GetCartByID(ctx context.Context, id pgtype.UUID) (Cart, error)
	GetCartItem(ctx context.Context, id pgtype.UUID) (CartItem, error)
	GetOrderByCheckoutSession(ctx context.Context, checkoutSessionID string) (Order, error)
	GetProduct(ctx context.Context, id pgtype.UUID) (Product, error)
	ListCartEventsBetween(ctx context.Context, arg ListCartEventsBetweenParams) ([]CartEvent, error)
	ListCartItems(ctx context.Context, cartID pgtype.UUID) ([]ListCartItemsRow, error)
	LockActiveCartBySession(ctx context.Context, sessionID string) (Cart, error)
	MoveCartItem(ctx context.Context, arg MoveCartItemParams) error
	UpdateCartItemQuantity(ctx context.Context, arg UpdateCartItemQuantityParams) (CartItem, error)
	UpdateCartStatus(ctx context.Context, arg UpdateCartStatusParams) error
}

var _ Querier = (*Queries)(nil)
