package service

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/dukerupert/storefront/internal/domain"
	"github.com/dukerupert/storefront/internal/repository"
	"github.com/dukerupert/storefront/internal/telemetry"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CartService provides business logic for shopping cart operations.
// Every operation acts on the single active cart of the given owner.
type CartService interface {
	// Resolve returns the owner's active cart, creating an empty one if
	// none exists. Safe to call repeatedly.
	Resolve(ctx context.Context, owner domain.CartOwner) (*Cart, error)

	// AddItem adds quantity of a product, summing into an existing line.
	AddItem(ctx context.Context, owner domain.CartOwner, productID uuid.UUID, quantity int) (*CartSummary, error)

	// UpdateItemQuantity replaces a line's quantity. A quantity <= 0 removes it.
	UpdateItemQuantity(ctx context.Context, owner domain.CartOwner, itemID uuid.UUID, quantity int) (*CartSummary, error)

	// RemoveItem deletes a line. Removing an absent line is not an error.
	RemoveItem(ctx context.Context, owner domain.CartOwner, itemID uuid.UUID) (*CartSummary, error)

	GetCartSummary(ctx context.Context, owner domain.CartOwner) (*CartSummary, error)
}

// Cart represents a lightweight cart view model
type Cart struct {
	ID        uuid.UUID         `json:"id"`
	Owner     domain.CartOwner  `json:"-"`
	Status    domain.CartStatus `json:"status"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

// CartSummary aggregates cart information with items and calculated totals
type CartSummary struct {
	Cart      Cart            `json:"cart"`
	Items     []CartItem      `json:"items"`
	Subtotal  decimal.Decimal `json:"subtotal"`
	ItemCount int             `json:"item_count"`
}

// CartItem is a cart line priced at the product's current effective price.
type CartItem struct {
	ID              uuid.UUID       `json:"id"`
	ProductID       uuid.UUID       `json:"product_id"`
	ProductName     string          `json:"product_name"`
	Quantity        int             `json:"quantity"`
	ListPrice       decimal.Decimal `json:"list_price"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	LineSubtotal    decimal.Decimal `json:"line_subtotal"`
	ImageURL        string          `json:"image_url,omitempty"`
}

type cartService struct {
	store  repository.Store
	events *CartEventLog
	logger *slog.Logger
}

// NewCartService creates a new CartService instance
func NewCartService(store repository.Store, events *CartEventLog, logger *slog.Logger) CartService {
	return &cartService{
		store:  store,
		events: events,
		logger: logger,
	}
}

func (s *cartService) Resolve(ctx context.Context, owner domain.CartOwner) (*Cart, error) {
	cart, err := resolveCart(ctx, s.store, owner)
	if err != nil {
		return nil, err
	}
	view := toCart(cart)
	return &view, nil
}

// addItemAttempts bounds how often AddItem re-resolves a cart that a
// concurrent merge deleted between lookup and insert.
const addItemAttempts = 2

func (s *cartService) AddItem(ctx context.Context, owner domain.CartOwner, productID uuid.UUID, quantity int) (*CartSummary, error) {
	if quantity <= 0 || quantity > math.MaxInt32 {
		return nil, ErrInvalidQuantity
	}
	if !owner.Valid() {
		return nil, ErrInvalidIdentity
	}

	var (
		cart  repository.Cart
		event repository.CartEvent
		err   error
	)
	for attempt := 1; ; attempt++ {
		cart, event, err = s.addItem(ctx, owner, productID, int32(quantity))
		if attempt < addItemAttempts && repository.IsForeignKeyViolation(err, repository.ConstraintCartItemCart) {
			s.logger.Warn("cart removed during add, resolving again",
				"cart_id", mustUUID(cart.ID), "attempt", attempt)
			continue
		}
		break
	}
	if err != nil {
		return nil, err
	}

	s.events.publish(ctx, event)
	if telemetry.Business != nil {
		telemetry.Business.CartMutations.WithLabelValues("add").Inc()
	}

	return buildSummary(ctx, s.store, cart)
}

func (s *cartService) addItem(ctx context.Context, owner domain.CartOwner, productID uuid.UUID, quantity int32) (repository.Cart, repository.CartEvent, error) {
	var (
		cart  repository.Cart
		event repository.CartEvent
	)
	err := s.store.ExecTx(ctx, func(q repository.Querier) error {
		var err error
		cart, err = resolveCart(ctx, q, owner)
		if err != nil {
			return err
		}

		if _, err := q.GetProduct(ctx, uuidToPgtype(productID)); err != nil {
			if repository.IsNotFound(err) {
				return ErrProductNotFound
			}
			return fmt.Errorf("failed to get product: %w", err)
		}

		if _, err := q.AddCartItem(ctx, repository.AddCartItemParams{
			CartID:    cart.ID,
			ProductID: uuidToPgtype(productID),
			Quantity:  quantity,
		}); err != nil {
			return fmt.Errorf("failed to add cart item: %w", err)
		}

		event, err = s.events.appendEvent(ctx, q, cart.ID, cart.AccountID, domain.CartEventAdd)
		return err
	})
	return cart, event, err
}

func (s *cartService) UpdateItemQuantity(ctx context.Context, owner domain.CartOwner, itemID uuid.UUID, quantity int) (*CartSummary, error) {
	if quantity <= 0 {
		return s.RemoveItem(ctx, owner, itemID)
	}
	if quantity > math.MaxInt32 {
		return nil, ErrInvalidQuantity
	}

	cart, err := resolveCart(ctx, s.store, owner)
	if err != nil {
		return nil, err
	}

	item, err := s.store.GetCartItem(ctx, uuidToPgtype(itemID))
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrCartItemNotFound
		}
		return nil, fmt.Errorf("failed to get cart item: %w", err)
	}
	if item.CartID != cart.ID {
		return nil, ErrUnauthorized
	}

	if _, err := s.store.UpdateCartItemQuantity(ctx, repository.UpdateCartItemQuantityParams{
		ID:       item.ID,
		Quantity: int32(quantity),
	}); err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrCartItemNotFound
		}
		return nil, fmt.Errorf("failed to update cart item: %w", err)
	}

	if telemetry.Business != nil {
		telemetry.Business.CartMutations.WithLabelValues("update").Inc()
	}

	return buildSummary(ctx, s.store, cart)
}

func (s *cartService) RemoveItem(ctx context.Context, owner domain.CartOwner, itemID uuid.UUID) (*CartSummary, error) {
	cart, err := resolveCart(ctx, s.store, owner)
	if err != nil {
		return nil, err
	}

	item, err := s.store.GetCartItem(ctx, uuidToPgtype(itemID))
	switch {
	case repository.IsNotFound(err):
		return buildSummary(ctx, s.store, cart)
	case err != nil:
		return nil, fmt.Errorf("failed to get cart item: %w", err)
	case item.CartID != cart.ID:
		return nil, ErrUnauthorized
	}

	if err := s.store.DeleteCartItem(ctx, item.ID); err != nil {
		return nil, fmt.Errorf("failed to delete cart item: %w", err)
	}

	if telemetry.Business != nil {
		telemetry.Business.CartMutations.WithLabelValues("remove").Inc()
	}

	return buildSummary(ctx, s.store, cart)
}

func (s *cartService) GetCartSummary(ctx context.Context, owner domain.CartOwner) (*CartSummary, error) {
	cart, err := resolveCart(ctx, s.store, owner)
	if err != nil {
		return nil, err
	}
	return buildSummary(ctx, s.store, cart)
}

// resolveCart looks up the owner's active cart and creates it when absent.
// A concurrent creator wins through the partial unique index, in which case
// the lookup is repeated.
func resolveCart(ctx context.Context, q repository.Querier, owner domain.CartOwner) (repository.Cart, error) {
	if !owner.Valid() {
		return repository.Cart{}, ErrInvalidIdentity
	}

	lookup := func() (repository.Cart, error) {
		if accountID, ok := owner.AccountID(); ok {
			return q.GetActiveCartByAccount(ctx, uuidToPgtype(accountID))
		}
		sessionID, _ := owner.SessionID()
		return q.GetActiveCartBySession(ctx, sessionID)
	}

	cart, err := lookup()
	if err == nil {
		return cart, nil
	}
	if !repository.IsNotFound(err) {
		return repository.Cart{}, fmt.Errorf("failed to get cart: %w", err)
	}

	params := repository.CreateCartParams{}
	label := "anonymous"
	if accountID, ok := owner.AccountID(); ok {
		params.AccountID = uuidToPgtype(accountID)
		label = "account"
	} else {
		sessionID, _ := owner.SessionID()
		params.SessionID = textToPgtype(sessionID)
	}

	cart, err = q.CreateCart(ctx, params)
	switch {
	case err == nil:
		if telemetry.Business != nil {
			telemetry.Business.CartsCreated.WithLabelValues(label).Inc()
		}
		return cart, nil
	case repository.IsNotFound(err):
		cart, err = lookup()
		if err != nil {
			return repository.Cart{}, fmt.Errorf("failed to get cart after concurrent create: %w", err)
		}
		return cart, nil
	default:
		return repository.Cart{}, fmt.Errorf("failed to create cart: %w", err)
	}
}

func buildSummary(ctx context.Context, q repository.Querier, cart repository.Cart) (*CartSummary, error) {
	rows, err := q.ListCartItems(ctx, cart.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list cart items: %w", err)
	}

	summary := &CartSummary{
		Cart:     toCart(cart),
		Items:    make([]CartItem, 0, len(rows)),
		Subtotal: decimal.Zero,
	}

	for _, row := range rows {
		unit := domain.EffectiveUnitPrice(row.Price, row.DiscountPercent)
		line := unit.Mul(decimal.NewFromInt32(row.Quantity))

		item := CartItem{
			ID:              mustUUID(row.ID),
			ProductID:       mustUUID(row.ProductID),
			ProductName:     row.ProductName,
			Quantity:        int(row.Quantity),
			ListPrice:       row.Price,
			DiscountPercent: row.DiscountPercent,
			UnitPrice:       unit,
			LineSubtotal:    line,
		}
		if len(row.Images) > 0 {
			item.ImageURL = row.Images[0]
		}

		summary.Items = append(summary.Items, item)
		summary.Subtotal = summary.Subtotal.Add(line)
		summary.ItemCount += int(row.Quantity)
	}

	return summary, nil
}

func toCart(c repository.Cart) Cart {
	var owner domain.CartOwner
	if c.AccountID.Valid {
		owner = domain.AccountOwner(mustUUID(c.AccountID))
	} else {
		owner = domain.AnonymousOwner(c.SessionID.String)
	}

	return Cart{
		ID:        mustUUID(c.ID),
		Owner:     owner,
		Status:    domain.CartStatus(c.Status),
		CreatedAt: c.CreatedAt.Time,
		UpdatedAt: c.UpdatedAt.Time,
	}
}
