package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const getProduct = `-- name: GetProduct :one
SELECT id, name, price, discount_percent, images, stock, sales_count, created_at, updated_at
FROM products
WHERE id = $1
`

func (q *Queries) GetProduct(ctx context.Context, id pgtype.UUID) (Product, error) {
	row := q.db.QueryRow(ctx, getProduct, id)
	var i Product
	err := row.Scan(
		&i.ID,
		&i.Name,
		&i.Price,
		&i.DiscountPercent,
		&i.Images,
		&i.Stock,
		&i.SalesCount,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const decrementProductStock = `-- name: DecrementProductStock :execrows
UPDATE products
SET stock = stock - $2,
    sales_count = sales_count + $2,
    updated_at = NOW()
WHERE id = $1 AND stock >= $2
`

type DecrementProductStockParams struct {
	ID       pgtype.UUID `json:"id"`
	Quantity int32       `json:"quantity"`
}

// DecrementProductStock removes quantity from stock only when enough is
// on hand. It reports zero rows when the product would go negative.
func (q *Queries) DecrementProductStock(ctx context.Context, arg DecrementProductStockParams) (int64, error) {
	result, err := q.db.Exec(ctx, decrementProductStock, arg.ID, arg.Quantity)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const createStockMovement = `-- name: CreateStockMovement :one
INSERT INTO stock_movements (product_id, order_id, quantity, reason)
VALUES ($1, $2, $3, $4)
RETURNING id, product_id, order_id, quantity, reason, created_at
`

type CreateStockMovementParams struct {
	ProductID pgtype.UUID `json:"product_id"`
	OrderID   pgtype.UUID `json:"order_id"`
	Quantity  int32       `json:"quantity"`
	Reason    string      `json:"reason"`
}

func (q *Queries) CreateStockMovement(ctx context.Context, arg CreateStockMovementParams) (StockMovement, error) {
	row := q.db.QueryRow(ctx, createStockMovement,
		arg.ProductID,
		arg.OrderID,
		arg.Quantity,
		arg.Reason,
	)
	var i StockMovement
	err := row.Scan(
		&i.ID,
		&i.ProductID,
		&i.OrderID,
		&i.Quantity,
		&i.Reason,
		&i.CreatedAt,
	)
	return i, err
}
