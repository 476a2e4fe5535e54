package order

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/c360studio/vstore/cart"
	"github.com/c360studio/vstore/catalog"
	"github.com/c360studio/vstore/event"
	"github.com/c360studio/vstore/metrics"
	"github.com/c360studio/vstore/payment"
	"github.com/c360studio/vstore/pricing"
	"github.com/c360studio/vstore/promo"
	"github.com/c360studio/vstore/storage"
)

// Defaults for optional ManagerConfig fields.
const (
	DefaultPageSize      = 10
	DefaultLookupTimeout = 3 * time.Second
	DefaultCurrency      = "GBP"
)

// ManagerConfig wires a Manager's dependencies. Store, Cart, Promos and
// Catalog are required.
type ManagerConfig struct {
	Store      storage.Store
	Cart       *cart.Store
	Promos     *promo.Keeper
	Catalog    catalog.Resolver
	Validator  *payment.Validator
	Calculator pricing.Calculator
	Bus        event.Bus
	Logger     *slog.Logger

	// PageSize is the fixed page size for List. Default 10.
	PageSize int

	// LookupTimeout bounds each catalog resolution at order time.
	// A lookup that misses the deadline degrades to the client-supplied
	// line item. Default 3s.
	LookupTimeout time.Duration

	// Currency is recorded on every order. Default GBP.
	Currency string
}

// Manager creates orders and drives their lifecycle.
type Manager struct {
	store         storage.Store
	carts         *cart.Store
	promos        *promo.Keeper
	catalog       catalog.Resolver
	validator     *payment.Validator
	calc          pricing.Calculator
	bus           event.Bus
	logger        *slog.Logger
	pageSize      int
	lookupTimeout time.Duration
	currency      string
	now           func() time.Time
}

// NewManager creates a Manager from cfg, filling in defaults.
func NewManager(cfg ManagerConfig) *Manager {
	if cfg.Validator == nil {
		cfg.Validator = payment.New()
	}
	if cfg.Bus == nil {
		cfg.Bus = event.Discard{}
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = DefaultPageSize
	}
	if cfg.LookupTimeout <= 0 {
		cfg.LookupTimeout = DefaultLookupTimeout
	}
	if cfg.Currency == "" {
		cfg.Currency = DefaultCurrency
	}
	return &Manager{
		store:         cfg.Store,
		carts:         cfg.Cart,
		promos:        cfg.Promos,
		catalog:       cfg.Catalog,
		validator:     cfg.Validator,
		calc:          cfg.Calculator,
		bus:           cfg.Bus,
		logger:        cfg.Logger,
		pageSize:      cfg.PageSize,
		lookupTimeout: cfg.LookupTimeout,
		currency:      cfg.Currency,
		now:           time.Now,
	}
}

// Create validates the checkout, snapshots canonical prices, appends the
// order to the ledger, and only then clears the cart and active promo.
// The append-before-clear ordering is load-bearing: a persistence
// failure must not lose the purchase intent.
func (m *Manager) Create(ctx context.Context, customer Customer, pay payment.Input) (*Order, error) {
	items, err := m.carts.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("read cart: %w", err)
	}

	// Preconditions, in order; the first failure is the one reported.
	if len(items) == 0 {
		return nil, m.reject("cart", "cart is empty")
	}
	if len(strings.TrimSpace(customer.Name)) < 2 {
		return nil, m.reject("name", "enter your full name")
	}
	if len(strings.TrimSpace(customer.Address)) < 5 {
		return nil, m.reject("address", "enter a delivery address")
	}
	summary, err := m.validator.Validate(pay)
	if err != nil {
		metrics.OrderRejections.WithLabelValues("payment").Inc()
		return nil, err
	}

	items = m.resolveItems(ctx, items)

	rule, err := m.promos.Active(ctx)
	if err != nil {
		return nil, err
	}

	now := m.now()
	o := Order{
		ID:        mintID(now),
		CreatedAt: now,
		Items:     items,
		Totals:    m.calc.Compute(items, rule),
		Customer:  customer,
		Payment:   summary,
		Currency:  m.currency,
		Status:    StatusProcessing,
		StatusLog: []StatusChange{{From: "", To: StatusProcessing, Timestamp: now}},
	}
	if rule != nil {
		o.PromoCode = rule.Code
	}

	if err := m.append(ctx, o); err != nil {
		return nil, err
	}

	// The order is durable; a failed cleanup is worth a warning, not a
	// failed checkout.
	if err := m.carts.Clear(ctx); err != nil {
		m.logger.Warn("Failed to clear cart after order", slog.String("order_id", o.ID), slog.String("error", err.Error()))
	}
	if err := m.promos.Clear(ctx); err != nil {
		m.logger.Warn("Failed to clear promo after order", slog.String("order_id", o.ID), slog.String("error", err.Error()))
	}

	metrics.OrdersCreated.Inc()
	m.bus.Publish(ctx, event.New(event.TypeOrderCreated, event.OrderCreated{
		OrderID: o.ID,
		Total:   o.Totals.Total.StringFixed(2),
	}))
	m.logger.Info("Order created",
		slog.String("order_id", o.ID),
		slog.Int("items", len(o.Items)),
		slog.String("total", o.Totals.Total.StringFixed(2)))

	return &o, nil
}

func (m *Manager) reject(field, reason string) error {
	metrics.OrderRejections.WithLabelValues(field).Inc()
	return &ValidationError{Field: field, Reason: reason}
}

// resolveItems re-derives each line's canonical name and price from the
// catalog and re-clamps quantities. The stored cart can be written by
// anything holding the bucket, so the [MinQty, MaxQty] bound is
// re-established here rather than trusted. Unknown ids and failed or
// timed-out lookups keep the client-asserted fields; availability wins
// over strictness here.
func (m *Manager) resolveItems(ctx context.Context, items []cart.LineItem) []cart.LineItem {
	out := make([]cart.LineItem, len(items))
	for i, it := range items {
		out[i] = it
		if out[i].Qty < cart.MinQty {
			out[i].Qty = cart.MinQty
		}
		if out[i].Qty > cart.MaxQty {
			out[i].Qty = cart.MaxQty
		}

		lookupCtx, cancel := context.WithTimeout(ctx, m.lookupTimeout)
		p, err := m.catalog.Resolve(lookupCtx, it.ID)
		cancel()

		switch {
		case err == nil:
			out[i].Name = p.Name
			out[i].Price = p.Price
			if p.Image != "" {
				out[i].Image = p.Image
			}
		case errors.Is(err, catalog.ErrUnknown):
			metrics.CatalogFallbacks.Inc()
		default:
			metrics.CatalogFallbacks.Inc()
			m.logger.Warn("Catalog lookup degraded",
				slog.String("id", it.ID),
				slog.String("error", err.Error()))
		}
	}
	return out
}

// mintID builds a time-derived order id. The uuid suffix keeps ids
// unique when two orders land in the same millisecond.
func mintID(now time.Time) string {
	return fmt.Sprintf("ORD-%d-%s", now.UnixMilli(), uuid.New().String()[:8])
}

// Cancel moves an order from processing to cancelled. Orders in any
// other state are reported as conflicts and left untouched.
func (m *Manager) Cancel(ctx context.Context, orderID string) (*Order, error) {
	return m.SetStatus(ctx, orderID, StatusCancelled)
}

// SetStatus applies an externally driven status write, enforcing the
// lifecycle table. Illegal transitions return a ConflictError and change
// nothing.
func (m *Manager) SetStatus(ctx context.Context, orderID string, to Status) (*Order, error) {
	if !to.Valid() {
		return nil, &ValidationError{Field: "status", Reason: fmt.Sprintf("unknown status %q", to)}
	}

	ledger, err := m.loadLedger(ctx)
	if err != nil {
		return nil, err
	}

	idx := -1
	for i := range ledger {
		if ledger[i].ID == orderID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, ErrNotFound
	}

	from := ledger[idx].Status
	if !from.CanTransitionTo(to) {
		return nil, &ConflictError{OrderID: orderID, Status: from, Attempted: to}
	}

	ledger[idx].Status = to
	ledger[idx].StatusLog = append(ledger[idx].StatusLog, StatusChange{
		From:      from,
		To:        to,
		Timestamp: m.now(),
	})

	if err := m.saveLedger(ctx, ledger); err != nil {
		return nil, err
	}

	m.bus.Publish(ctx, event.New(event.TypeOrderStatusChanged, event.OrderStatusChanged{
		OrderID: orderID,
		From:    string(from),
		To:      string(to),
	}))
	m.logger.Info("Order status changed",
		slog.String("order_id", orderID),
		slog.String("from", string(from)),
		slog.String("to", string(to)))

	updated := ledger[idx]
	return &updated, nil
}

// Get returns the order with the given id.
func (m *Manager) Get(ctx context.Context, orderID string) (*Order, error) {
	ledger, err := m.loadLedger(ctx)
	if err != nil {
		return nil, err
	}
	for i := range ledger {
		if ledger[i].ID == orderID {
			o := ledger[i]
			return &o, nil
		}
	}
	return nil, ErrNotFound
}

func (m *Manager) append(ctx context.Context, o Order) error {
	ledger, err := m.loadLedger(ctx)
	if err != nil {
		return err
	}
	ledger = append(ledger, o)
	return m.saveLedger(ctx, ledger)
}

func (m *Manager) loadLedger(ctx context.Context) ([]Order, error) {
	raw, err := m.store.Get(ctx, storage.RecordOrders)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("read ledger: %w", err)
	}
	var ledger []Order
	if err := json.Unmarshal(raw, &ledger); err != nil {
		return nil, fmt.Errorf("unmarshal ledger: %w", err)
	}
	return ledger, nil
}

func (m *Manager) saveLedger(ctx context.Context, ledger []Order) error {
	data, err := json.Marshal(ledger)
	if err != nil {
		return fmt.Errorf("marshal ledger: %w", err)
	}
	if err := m.store.Set(ctx, storage.RecordOrders, data); err != nil {
		return fmt.Errorf("write ledger: %w", err)
	}
	return nil
}
