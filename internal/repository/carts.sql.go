package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
)

const getActiveCartByAccount = `-- name: GetActiveCartByAccount :one
SELECT id, account_id, session_id, status, created_at, updated_at
FROM carts
WHERE account_id = $1 AND status = 'active'
`

func (q *Queries) GetActiveCartByAccount(ctx context.Context, accountID pgtype.UUID) (Cart, error) {
	row := q.db.QueryRow(ctx, getActiveCartByAccount, accountID)
	var i Cart
	err := row.Scan(
		&i.ID,
		&i.AccountID,
		&i.SessionID,
		&i.Status,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const getActiveCartBySession = `-- name: GetActiveCartBySession :one
SELECT id, account_id, session_id, status, created_at, updated_at
FROM carts
WHERE session_id = $1 AND status = 'active'
`

func (q *Queries) GetActiveCartBySession(ctx context.Context, sessionID string) (Cart, error) {
	row := q.db.QueryRow(ctx, getActiveCartBySession, sessionID)
	var i Cart
	err := row.Scan(
		&i.ID,
		&i.AccountID,
		&i.SessionID,
		&i.Status,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const lockActiveCartBySession = `-- name: LockActiveCartBySession :one
SELECT id, account_id, session_id, status, created_at, updated_at
FROM carts
WHERE session_id = $1 AND status = 'active'
FOR UPDATE
`

// LockActiveCartBySession reads the session's active cart and holds a row
// lock on it until the surrounding transaction ends.
func (q *Queries) LockActiveCartBySession(ctx context.Context, sessionID string) (Cart, error) {
	row := q.db.QueryRow(ctx, lockActiveCartBySession, sessionID)
	var i Cart
	err := row.Scan(
		&i.ID,
		&i.AccountID,
		&i.SessionID,
		&i.Status,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const getCartByID = `-- name: GetCartByID :one
SELECT id, account_id, session_id, status, created_at, updated_at
FROM carts
WHERE id = $1
`

func (q *Queries) GetCartByID(ctx context.Context, id pgtype.UUID) (Cart, error) {
	row := q.db.QueryRow(ctx, getCartByID, id)
	var i Cart
	err := row.Scan(
		&i.ID,
		&i.AccountID,
		&i.SessionID,
		&i.Status,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const createCart = `-- name: CreateCart :one
INSERT INTO carts (account_id, session_id)
VALUES ($1, $2)
ON CONFLICT DO NOTHING
RETURNING id, account_id, session_id, status, created_at, updated_at
`

type CreateCartParams struct {
	AccountID pgtype.UUID `json:"account_id"`
	SessionID pgtype.Text `json:"session_id"`
}

// CreateCart returns pgx.ErrNoRows when a concurrent caller already created
// the active cart for the same owner.
func (q *Queries) CreateCart(ctx context.Context, arg CreateCartParams) (Cart, error) {
	row := q.db.QueryRow(ctx, createCart, arg.AccountID, arg.SessionID)
	var i Cart
	err := row.Scan(
		&i.ID,
		&i.AccountID,
		&i.SessionID,
		&i.Status,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const updateCartStatus = `-- name: UpdateCartStatus :exec
UPDATE carts
SET status = $2, updated_at = NOW()
WHERE id = $1
`

type UpdateCartStatusParams struct {
	ID     pgtype.UUID `json:"id"`
	Status string      `json:"status"`
}

func (q *Queries) UpdateCartStatus(ctx context.Context, arg UpdateCartStatusParams) error {
	_, err := q.db.Exec(ctx, updateCartStatus, arg.ID, arg.Status)
	return err
}

const deleteCart = `-- name: DeleteCart :exec
DELETE FROM carts WHERE id = $1
`

func (q *Queries) DeleteCart(ctx context.Context, id pgtype.UUID) error {
	_, err := q.db.Exec(ctx, deleteCart, id)
	return err
}

const listCartItems = `-- name: ListCartItems :many
SELECT
    ci.id,
    ci.cart_id,
    ci.product_id,
    ci.quantity,
    ci.created_at,
    p.name AS product_name,
    p.price,
    p.discount_percent,
    p.images,
    p.stock
FROM cart_items ci
JOIN products p ON p.id = ci.product_id
WHERE ci.cart_id = $1
ORDER BY ci.created_at, ci.id
`

type ListCartItemsRow struct {
	ID              pgtype.UUID        `json:"id"`
	CartID          pgtype.UUID        `json:"cart_id"`
	ProductID       pgtype.UUID        `json:"product_id"`
	Quantity        int32              `json:"quantity"`
	CreatedAt       pgtype.Timestamptz `json:"created_at"`
	ProductName     string             `json:"product_name"`
	Price           decimal.Decimal    `json:"price"`
	DiscountPercent decimal.Decimal    `json:"discount_percent"`
	Images          []string           `json:"images"`
	Stock           int32              `json:"stock"`
}

func (q *Queries) ListCartItems(ctx context.Context, cartID pgtype.UUID) ([]ListCartItemsRow, error) {
	rows, err := q.db.Query(ctx, listCartItems, cartID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []ListCartItemsRow
	for rows.Next() {
		var i ListCartItemsRow
		if err := rows.Scan(
			&i.ID,
			&i.CartID,
			&i.ProductID,
			&i.Quantity,
			&i.CreatedAt,
			&i.ProductName,
			&i.Price,
			&i.DiscountPercent,
			&i.Images,
			&i.Stock,
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

const getCartItem = `-- name: GetCartItem :one
SELECT id, cart_id, product_id, quantity, created_at, updated_at
FROM cart_items
WHERE id = $1
`

func (q *Queries) GetCartItem(ctx context.Context, id pgtype.UUID) (CartItem, error) {
	row := q.db.QueryRow(ctx, getCartItem, id)
	var i CartItem
	err := row.Scan(
		&i.ID,
		&i.CartID,
		&i.ProductID,
		&i.Quantity,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const addCartItem = `-- name: AddCartItem :one
INSERT INTO cart_items (cart_id, product_id, quantity)
VALUES ($1, $2, $3)
ON CONFLICT (cart_id, product_id)
DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity, updated_at = NOW()
RETURNING id, cart_id, product_id, quantity, created_at, updated_at
`

type AddCartItemParams struct {
	CartID    pgtype.UUID `json:"cart_id"`
	ProductID pgtype.UUID `json:"product_id"`
	Quantity  int32       `json:"quantity"`
}

// AddCartItem inserts a line or adds to the quantity of the existing line
// for the same product.
func (q *Queries) AddCartItem(ctx context.Context, arg AddCartItemParams) (CartItem, error) {
	row := q.db.QueryRow(ctx, addCartItem, arg.CartID, arg.ProductID, arg.Quantity)
	var i CartItem
	err := row.Scan(
		&i.ID,
		&i.CartID,
		&i.ProductID,
		&i.Quantity,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const updateCartItemQuantity = `-- name: UpdateCartItemQuantity :one
UPDATE cart_items
SET quantity = $2, updated_at = NOW()
WHERE id = $1
RETURNING id, cart_id, product_id, quantity, created_at, updated_at
`

type UpdateCartItemQuantityParams struct {
	ID       pgtype.UUID `json:"id"`
	Quantity int32       `json:"quantity"`
}

func (q *Queries) UpdateCartItemQuantity(ctx context.Context, arg UpdateCartItemQuantityParams) (CartItem, error) {
	row := q.db.QueryRow(ctx, updateCartItemQuantity, arg.ID, arg.Quantity)
	var i CartItem
	err := row.Scan(
		&i.ID,
		&i.CartID,
		&i.ProductID,
		&i.Quantity,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const moveCartItem = `-- name: MoveCartItem :exec
UPDATE cart_items
SET cart_id = $2, updated_at = NOW()
WHERE id = $1
`

type MoveCartItemParams struct {
	ID     pgtype.UUID `json:"id"`
	CartID pgtype.UUID `json:"cart_id"`
}

func (q *Queries) MoveCartItem(ctx context.Context, arg MoveCartItemParams) error {
	_, err := q.db.Exec(ctx, moveCartItem, arg.ID, arg.CartID)
	return err
}

const deleteCartItem = `-- name: DeleteCartItem :exec
DELETE FROM cart_items WHERE id = $1
`

func (q *Queries) DeleteCartItem(ctx context.Context, id pgtype.UUID) error {
	_, err := q.db.Exec(ctx, deleteCartItem, id)
	return err
}
