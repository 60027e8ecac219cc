package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/dukerupert/storefront/internal/repository"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
)

// memState is an in-memory stand-in for the Postgres schema. Its methods
// are not synchronised; memStore serialises access and provides rollback.
type memState struct {
	products     map[pgtype.UUID]repository.Product
	carts        map[pgtype.UUID]repository.Cart
	items        map[pgtype.UUID]repository.CartItem
	itemSeq      map[pgtype.UUID]int
	events       []repository.CartEvent
	orders       map[pgtype.UUID]repository.Order
	orderItems   []repository.OrderItem
	addresses    []repository.Address
	payments     []repository.Payment
	transactions []repository.Transaction
	shipments    []repository.Shipment
	movements    []repository.StockMovement
	webhookLogs  []repository.WebhookLog

	seq   int
	now   func() time.Time
	fails map[string]error
}

func newMemState() *memState {
	return &memState{
		products: map[pgtype.UUID]repository.Product{},
		carts:    map[pgtype.UUID]repository.Cart{},
		items:    map[pgtype.UUID]repository.CartItem{},
		itemSeq:  map[pgtype.UUID]int{},
		orders:   map[pgtype.UUID]repository.Order{},
		now:      time.Now,
		fails:    map[string]error{},
	}
}

func (s *memState) clone() *memState {
	c := *s
	c.products = cloneMap(s.products)
	c.carts = cloneMap(s.carts)
	c.items = cloneMap(s.items)
	c.itemSeq = cloneMap(s.itemSeq)
	c.orders = cloneMap(s.orders)
	c.events = append([]repository.CartEvent(nil), s.events...)
	c.orderItems = append([]repository.OrderItem(nil), s.orderItems...)
	c.addresses = append([]repository.Address(nil), s.addresses...)
	c.payments = append([]repository.Payment(nil), s.payments...)
	c.transactions = append([]repository.Transaction(nil), s.transactions...)
	c.shipments = append([]repository.Shipment(nil), s.shipments...)
	c.movements = append([]repository.StockMovement(nil), s.movements...)
	c.webhookLogs = append([]repository.WebhookLog(nil), s.webhookLogs...)
	return &c
}

func cloneMap[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func newID() pgtype.UUID {
	return pgtype.UUID{Bytes: uuid.New(), Valid: true}
}

func (s *memState) ts() pgtype.Timestamptz {
	return pgtype.Timestamptz{Time: s.now(), Valid: true}
}

func (s *memState) check(op string) error {
	return s.fails[op]
}

func (s *memState) activeCart(match func(repository.Cart) bool) (repository.Cart, error) {
	for _, c := range s.carts {
		if c.Status == "active" && match(c) {
			return c, nil
		}
	}
	return repository.Cart{}, pgx.ErrNoRows
}

func (s *memState) AddCartItem(_ context.Context, arg repository.AddCartItemParams) (repository.CartItem, error) {
	if err := s.check("AddCartItem"); err != nil {
		return repository.CartItem{}, err
	}
	for id, it := range s.items {
		if it.CartID == arg.CartID && it.ProductID == arg.ProductID {
			it.Quantity += arg.Quantity
			it.UpdatedAt = s.ts()
			s.items[id] = it
			return it, nil
		}
	}
	it := repository.CartItem{
		ID:        newID(),
		CartID:    arg.CartID,
		ProductID: arg.ProductID,
		Quantity:  arg.Quantity,
		CreatedAt: s.ts(),
		UpdatedAt: s.ts(),
	}
	s.items[it.ID] = it
	s.seq++
	s.itemSeq[it.ID] = s.seq
	return it, nil
}

func (s *memState) CreateAddress(_ context.Context, arg repository.CreateAddressParams) (repository.Address, error) {
	if err := s.check("CreateAddress"); err != nil {
		return repository.Address{}, err
	}
	a := repository.Address{
		ID:         newID(),
		OrderID:    arg.OrderID,
		AccountID:  arg.AccountID,
		Street:     arg.Street,
		City:       arg.City,
		State:      arg.State,
		Country:    arg.Country,
		PostalCode: arg.PostalCode,
		CreatedAt:  s.ts(),
	}
	s.addresses = append(s.addresses, a)
	return a, nil
}

func (s *memState) CreateCart(_ context.Context, arg repository.CreateCartParams) (repository.Cart, error) {
	if err := s.check("CreateCart"); err != nil {
		return repository.Cart{}, err
	}
	if _, err := s.activeCart(func(c repository.Cart) bool {
		if arg.AccountID.Valid {
			return c.AccountID == arg.AccountID
		}
		return c.SessionID.Valid && c.SessionID.String == arg.SessionID.String
	}); err == nil {
		return repository.Cart{}, pgx.ErrNoRows
	}
	c := repository.Cart{
		ID:        newID(),
		AccountID: arg.AccountID,
		SessionID: arg.SessionID,
		Status:    "active",
		CreatedAt: s.ts(),
		UpdatedAt: s.ts(),
	}
	s.carts[c.ID] = c
	return c, nil
}

func (s *memState) CreateCartEvent(_ context.Context, arg repository.CreateCartEventParams) (repository.CartEvent, error) {
	if err := s.check("CreateCartEvent"); err != nil {
		return repository.CartEvent{}, err
	}
	ev := repository.CartEvent{
		ID:        newID(),
		CartID:    arg.CartID,
		AccountID: arg.AccountID,
		EventType: arg.EventType,
		CreatedAt: s.ts(),
	}
	s.events = append(s.events, ev)
	return ev, nil
}

func (s *memState) CreateOrder(_ context.Context, arg repository.CreateOrderParams) (repository.Order, error) {
	if err := s.check("CreateOrder"); err != nil {
		return repository.Order{}, err
	}
	for _, o := range s.orders {
		if o.CheckoutSessionID == arg.CheckoutSessionID {
			return repository.Order{}, &pgconn.PgError{
				Code:           "23505",
				ConstraintName: repository.ConstraintOrderCheckoutSession,
			}
		}
	}
	o := repository.Order{
		ID:                newID(),
		AccountID:         arg.AccountID,
		CartID:            arg.CartID,
		CheckoutSessionID: arg.CheckoutSessionID,
		Status:            arg.Status,
		Amount:            arg.Amount,
		Currency:          arg.Currency,
		CreatedAt:         s.ts(),
		UpdatedAt:         s.ts(),
	}
	s.orders[o.ID] = o
	return o, nil
}

func (s *memState) CreateOrderItem(_ context.Context, arg repository.CreateOrderItemParams) (repository.OrderItem, error) {
	if err := s.check("CreateOrderItem"); err != nil {
		return repository.OrderItem{}, err
	}
	it := repository.OrderItem{
		ID:        newID(),
		OrderID:   arg.OrderID,
		ProductID: arg.ProductID,
		Quantity:  arg.Quantity,
		UnitPrice: arg.UnitPrice,
		CreatedAt: s.ts(),
	}
	s.orderItems = append(s.orderItems, it)
	return it, nil
}

func (s *memState) CreatePayment(_ context.Context, arg repository.CreatePaymentParams) (repository.Payment, error) {
	if err := s.check("CreatePayment"); err != nil {
		return repository.Payment{}, err
	}
	p := repository.Payment{
		ID:        newID(),
		OrderID:   arg.OrderID,
		AccountID: arg.AccountID,
		Method:    arg.Method,
		Amount:    arg.Amount,
		Status:    arg.Status,
		CreatedAt: s.ts(),
	}
	s.payments = append(s.payments, p)
	return p, nil
}

func (s *memState) CreateShipment(_ context.Context, arg repository.CreateShipmentParams) (repository.Shipment, error) {
	if err := s.check("CreateShipment"); err != nil {
		return repository.Shipment{}, err
	}
	sh := repository.Shipment{
		ID:                  newID(),
		OrderID:             arg.OrderID,
		Carrier:             arg.Carrier,
		TrackingNumber:      arg.TrackingNumber,
		ShippedAt:           arg.ShippedAt,
		EstimatedDeliveryAt: arg.EstimatedDeliveryAt,
		CreatedAt:           s.ts(),
	}
	s.shipments = append(s.shipments, sh)
	return sh, nil
}

func (s *memState) CreateStockMovement(_ context.Context, arg repository.CreateStockMovementParams) (repository.StockMovement, error) {
	if err := s.check("CreateStockMovement"); err != nil {
		return repository.StockMovement{}, err
	}
	m := repository.StockMovement{
		ID:        newID(),
		ProductID: arg.ProductID,
		OrderID:   arg.OrderID,
		Quantity:  arg.Quantity,
		Reason:    arg.Reason,
		CreatedAt: s.ts(),
	}
	s.movements = append(s.movements, m)
	return m, nil
}

func (s *memState) CreateTransaction(_ context.Context, arg repository.CreateTransactionParams) (repository.Transaction, error) {
	if err := s.check("CreateTransaction"); err != nil {
		return repository.Transaction{}, err
	}
	t := repository.Transaction{
		ID:                newID(),
		OrderID:           arg.OrderID,
		AccountID:         arg.AccountID,
		Amount:            arg.Amount,
		Status:            arg.Status,
		ProviderReference: arg.ProviderReference,
		CreatedAt:         s.ts(),
	}
	s.transactions = append(s.transactions, t)
	return t, nil
}

func (s *memState) CreateWebhookLog(_ context.Context, arg repository.CreateWebhookLogParams) error {
	if err := s.check("CreateWebhookLog"); err != nil {
		return err
	}
	for _, l := range s.webhookLogs {
		if l.EventID == arg.EventID {
			return nil
		}
	}
	s.webhookLogs = append(s.webhookLogs, repository.WebhookLog{
		ID:        newID(),
		EventID:   arg.EventID,
		EventType: arg.EventType,
		Payload:   arg.Payload,
		CreatedAt: s.ts(),
	})
	return nil
}

func (s *memState) DecrementProductStock(_ context.Context, arg repository.DecrementProductStockParams) (int64, error) {
	if err := s.check("DecrementProductStock"); err != nil {
		return 0, err
	}
	p, ok := s.products[arg.ID]
	if !ok || p.Stock < arg.Quantity {
		return 0, nil
	}
	p.Stock -= arg.Quantity
	p.SalesCount += arg.Quantity
	s.products[arg.ID] = p
	return 1, nil
}

func (s *memState) DeleteCart(_ context.Context, id pgtype.UUID) error {
	if err := s.check("DeleteCart"); err != nil {
		return err
	}
	delete(s.carts, id)
	for itemID, it := range s.items {
		if it.CartID == id {
			delete(s.items, itemID)
		}
	}
	return nil
}

func (s *memState) DeleteCartItem(_ context.Context, id pgtype.UUID) error {
	if err := s.check("DeleteCartItem"); err != nil {
		return err
	}
	delete(s.items, id)
	return nil
}

func (s *memState) GetActiveCartByAccount(_ context.Context, accountID pgtype.UUID) (repository.Cart, error) {
	if err := s.check("GetActiveCartByAccount"); err != nil {
		return repository.Cart{}, err
	}
	return s.activeCart(func(c repository.Cart) bool { return c.AccountID == accountID })
}

func (s *memState) GetActiveCartBySession(_ context.Context, sessionID string) (repository.Cart, error) {
	if err := s.check("GetActiveCartBySession"); err != nil {
		return repository.Cart{}, err
	}
	return s.activeCart(func(c repository.Cart) bool {
		return c.SessionID.Valid && c.SessionID.String == sessionID
	})
}

func (s *memState) GetCartByID(_ context.Context, id pgtype.UUID) (repository.Cart, error) {
	c, ok := s.carts[id]
	if !ok {
		return repository.Cart{}, pgx.ErrNoRows
	}
	return c, nil
}

func (s *memState) GetCartItem(_ context.Context, id pgtype.UUID) (repository.CartItem, error) {
	it, ok := s.items[id]
	if !ok {
		return repository.CartItem{}, pgx.ErrNoRows
	}
	return it, nil
}

func (s *memState) GetOrderByCheckoutSession(_ context.Context, checkoutSessionID string) (repository.Order, error) {
	if err := s.check("GetOrderByCheckoutSession"); err != nil {
		return repository.Order{}, err
	}
	for _, o := range s.orders {
		if o.CheckoutSessionID == checkoutSessionID {
			return o, nil
		}
	}
	return repository.Order{}, pgx.ErrNoRows
}

func (s *memState) GetProduct(_ context.Context, id pgtype.UUID) (repository.Product, error) {
	p, ok := s.products[id]
	if !ok {
		return repository.Product{}, pgx.ErrNoRows
	}
	return p, nil
}

func (s *memState) ListCartEventsBetween(_ context.Context, arg repository.ListCartEventsBetweenParams) ([]repository.CartEvent, error) {
	var out []repository.CartEvent
	for _, ev := range s.events {
		t := ev.CreatedAt.Time
		if !t.Before(arg.StartAt.Time) && t.Before(arg.EndAt.Time) {
			out = append(out, ev)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.Time.Before(out[j].CreatedAt.Time)
	})
	return out, nil
}

func (s *memState) ListCartItems(_ context.Context, cartID pgtype.UUID) ([]repository.ListCartItemsRow, error) {
	if err := s.check("ListCartItems"); err != nil {
		return nil, err
	}
	var rows []repository.ListCartItemsRow
	for _, it := range s.items {
		if it.CartID != cartID {
			continue
		}
		p, ok := s.products[it.ProductID]
		if !ok {
			continue
		}
		rows = append(rows, repository.ListCartItemsRow{
			ID:              it.ID,
			CartID:          it.CartID,
			ProductID:       it.ProductID,
			Quantity:        it.Quantity,
			CreatedAt:       it.CreatedAt,
			ProductName:     p.Name,
			Price:           p.Price,
			DiscountPercent: p.DiscountPercent,
			Images:          p.Images,
			Stock:           p.Stock,
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		return s.itemSeq[rows[i].ID] < s.itemSeq[rows[j].ID]
	})
	return rows, nil
}

func (s *memState) LockActiveCartBySession(ctx context.Context, sessionID string) (repository.Cart, error) {
	return s.GetActiveCartBySession(ctx, sessionID)
}

func (s *memState) MoveCartItem(_ context.Context, arg repository.MoveCartItemParams) error {
	if err := s.check("MoveCartItem"); err != nil {
		return err
	}
	it, ok := s.items[arg.ID]
	if !ok {
		return nil
	}
	it.CartID = arg.CartID
	s.items[arg.ID] = it
	return nil
}

func (s *memState) UpdateCartItemQuantity(_ context.Context, arg repository.UpdateCartItemQuantityParams) (repository.CartItem, error) {
	it, ok := s.items[arg.ID]
	if !ok {
		return repository.CartItem{}, pgx.ErrNoRows
	}
	it.Quantity = arg.Quantity
	it.UpdatedAt = s.ts()
	s.items[arg.ID] = it
	return it, nil
}

func (s *memState) UpdateCartStatus(_ context.Context, arg repository.UpdateCartStatusParams) error {
	if err := s.check("UpdateCartStatus"); err != nil {
		return err
	}
	c, ok := s.carts[arg.ID]
	if !ok {
		return nil
	}
	c.Status = arg.Status
	c.UpdatedAt = s.ts()
	s.carts[arg.ID] = c
	return nil
}

var _ repository.Querier = (*memState)(nil)

// memStore serialises every call behind one mutex. ExecTx holds the mutex
// for the whole transaction and restores a snapshot when fn fails.
type memStore struct {
	mu sync.Mutex
	st *memState
}

func newMemStore() *memStore {
	return &memStore{st: newMemState()}
}

func (m *memStore) ExecTx(ctx context.Context, fn func(repository.Querier) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	snapshot := m.st.clone()
	if err := fn(m.st); err != nil {
		m.st = snapshot
		return err
	}
	return nil
}

// with runs f against the state under the lock. Used by test assertions.
func (m *memStore) with(f func(*memState)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	f(m.st)
}

func (m *memStore) failOn(op string, err error) {
	m.with(func(s *memState) { s.fails[op] = err })
}

func (m *memStore) addProduct(name, price, discount string, stock int32, images ...string) pgtype.UUID {
	p := repository.Product{
		ID:              newID(),
		Name:            name,
		Price:           decimal.RequireFromString(price),
		DiscountPercent: decimal.RequireFromString(discount),
		Images:          images,
		Stock:           stock,
	}
	m.with(func(s *memState) {
		p.CreatedAt = s.ts()
		p.UpdatedAt = s.ts()
		s.products[p.ID] = p
	})
	return p.ID
}

func (m *memStore) AddCartItem(ctx context.Context, arg repository.AddCartItemParams) (repository.CartItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.st.AddCartItem(ctx, arg)
}

func (m *memStore) CreateAddress(ctx context.Context, arg repository.CreateAddressParams) (repository.Address, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.st.CreateAddress(ctx, arg)
}

func (m *memStore) CreateCart(ctx context.Context, arg repository.CreateCartParams) (repository.Cart, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.st.CreateCart(ctx, arg)
}

func (m *memStore) CreateCartEvent(ctx context.Context, arg repository.CreateCartEventParams) (repository.CartEvent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.st.CreateCartEvent(ctx, arg)
}

func (m *memStore) CreateOrder(ctx context.Context, arg repository.CreateOrderParams) (repository.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.st.CreateOrder(ctx, arg)
}

func (m *memStore) CreateOrderItem(ctx context.Context, arg repository.CreateOrderItemParams) (repository.OrderItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.st.CreateOrderItem(ctx, arg)
}

func (m *memStore) CreatePayment(ctx context.Context, arg repository.CreatePaymentParams) (repository.Payment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.st.CreatePayment(ctx, arg)
}

func (m *memStore) CreateShipment(ctx context.Context, arg repository.CreateShipmentParams) (repository.Shipment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.st.CreateShipment(ctx, arg)
}

func (m *memStore) CreateStockMovement(ctx context.Context, arg repository.CreateStockMovementParams) (repository.StockMovement, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.st.CreateStockMovement(ctx, arg)
}

func (m *memStore) CreateTransaction(ctx context.Context, arg repository.CreateTransactionParams) (repository.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.st.CreateTransaction(ctx, arg)
}

func (m *memStore) CreateWebhookLog(ctx context.Context, arg repository.CreateWebhookLogParams) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.st.CreateWebhookLog(ctx, arg)
}

func (m *memStore) DecrementProductStock(ctx context.Context, arg repository.DecrementProductStockParams) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.st.DecrementProductStock(ctx, arg)
}

func (m *memStore) DeleteCart(ctx context.Context, id pgtype.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.st.DeleteCart(ctx, id)
}

func (m *memStore) DeleteCartItem(ctx context.Context, id pgtype.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.st.DeleteCartItem(ctx, id)
}

func (m *memStore) GetActiveCartByAccount(ctx context.Context, accountID pgtype.UUID) (repository.Cart, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.st.GetActiveCartByAccount(ctx, accountID)
}

func (m *memStore) GetActiveCartBySession(ctx context.Context, sessionID string) (repository.Cart, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.st.GetActiveCartBySession(ctx, sessionID)
}

func (m *memStore) GetCartByID(ctx context.Context, id pgtype.UUID) (repository.Cart, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.st.GetCartByID(ctx, id)
}

func (m *memStore) GetCartItem(ctx context.Context, id pgtype.UUID) (repository.CartItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.st.GetCartItem(ctx, id)
}

func (m *memStore) GetOrderByCheckoutSession(ctx context.Context, checkoutSessionID string) (repository.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.st.GetOrderByCheckoutSession(ctx, checkoutSessionID)
}

func (m *memStore) GetProduct(ctx context.Context, id pgtype.UUID) (repository.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.st.GetProduct(ctx, id)
}

func (m *memStore) ListCartEventsBetween(ctx context.Context, arg repository.ListCartEventsBetweenParams) ([]repository.CartEvent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.st.ListCartEventsBetween(ctx, arg)
}

func (m *memStore) ListCartItems(ctx context.Context, cartID pgtype.UUID) ([]repository.ListCartItemsRow, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.st.ListCartItems(ctx, cartID)
}

func (m *memStore) LockActiveCartBySession(ctx context.Context, sessionID string) (repository.Cart, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.st.LockActiveCartBySession(ctx, sessionID)
}

func (m *memStore) MoveCartItem(ctx context.Context, arg repository.MoveCartItemParams) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.st.MoveCartItem(ctx, arg)
}

func (m *memStore) UpdateCartItemQuantity(ctx context.Context, arg repository.UpdateCartItemQuantityParams) (repository.CartItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.st.UpdateCartItemQuantity(ctx, arg)
}

func (m *memStore) UpdateCartStatus(ctx context.Context, arg repository.UpdateCartStatusParams) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.st.UpdateCartStatus(ctx, arg)
}

var _ repository.Store = (*memStore)(nil)
