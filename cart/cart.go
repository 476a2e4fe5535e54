// Package cart implements the durable shopping cart. The stored
// collection is the single source of truth for what the customer intends
// to buy: every read re-fetches it, and every mutation writes the whole
// collection back in one record-granularity write, then publishes a
// cart-changed event for dependent views.
package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/c360studio/vstore/event"
	"github.com/c360studio/vstore/metrics"
	"github.com/c360studio/vstore/storage"
)

// Quantity bounds for a single line item.
const (
	MinQty = 1
	MaxQty = 99
)

// Cart errors.
var (
	// ErrQtyTooLow is returned by SetQty for quantities below MinQty;
	// the caller must use Remove instead.
	ErrQtyTooLow = errors.New("quantity below minimum: remove the item instead")

	// ErrItemNotFound is returned when the id is not in the cart.
	ErrItemNotFound = errors.New("item not in cart")
)

// LineItem is one entry in the cart. Identity is ID; price and name are
// client-asserted here and re-derived from the catalog at order time.
type LineItem struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
	Qty   int             `json:"qty"`
	Image string          `json:"img,omitempty"`
}

// Store is the cart store. It owns the cart record exclusively.
type Store struct {
	store  storage.Store
	bus    event.Bus
	logger *slog.Logger
}

// NewStore creates a cart Store. A nil bus discards events.
func NewStore(store storage.Store, bus event.Bus, logger *slog.Logger) *Store {
	if bus == nil {
		bus = event.Discard{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{store: store, bus: bus, logger: logger}
}

// Get returns the current cart contents. An unwritten cart is empty, not
// an error. The store is re-read on every call because a second session
// may have changed it.
func (s *Store) Get(ctx context.Context) ([]LineItem, error) {
	return s.load(ctx)
}

// Count returns the total quantity across all line items.
func (s *Store) Count(ctx context.Context) (int, error) {
	items, err := s.load(ctx)
	if err != nil {
		return 0, err
	}
	return count(items), nil
}

// Add merges item into the cart. If the id is already present, the
// quantities are summed and clamped to MaxQty; otherwise the item is
// inserted with at least MinQty.
func (s *Store) Add(ctx context.Context, item LineItem, qty int) error {
	if item.ID == "" {
		return ErrItemNotFound
	}
	items, err := s.load(ctx)
	if err != nil {
		return err
	}

	merged := false
	for i := range items {
		if items[i].ID == item.ID {
			items[i].Qty = clamp(items[i].Qty + qty)
			merged = true
			break
		}
	}
	if !merged {
		item.Qty = qty
		if item.Qty < MinQty {
			item.Qty = MinQty
		}
		if item.Qty > MaxQty {
			item.Qty = MaxQty
		}
		items = append(items, item)
	}

	if err := s.save(ctx, items); err != nil {
		return err
	}
	metrics.CartMutations.WithLabelValues("add").Inc()
	s.logger.Debug("Added to cart",
		slog.String("id", item.ID),
		slog.Int("qty", qty))
	return nil
}

// SetQty sets the quantity for id, clamped to MaxQty. Quantities below
// MinQty are rejected with ErrQtyTooLow.
func (s *Store) SetQty(ctx context.Context, id string, qty int) error {
	if qty < MinQty {
		return ErrQtyTooLow
	}
	items, err := s.load(ctx)
	if err != nil {
		return err
	}

	found := false
	for i := range items {
		if items[i].ID == id {
			items[i].Qty = clamp(qty)
			found = true
			break
		}
	}
	if !found {
		return ErrItemNotFound
	}

	if err := s.save(ctx, items); err != nil {
		return err
	}
	metrics.CartMutations.WithLabelValues("set_qty").Inc()
	return nil
}

// Remove deletes the line item with the given id.
func (s *Store) Remove(ctx context.Context, id string) error {
	items, err := s.load(ctx)
	if err != nil {
		return err
	}

	kept := items[:0]
	found := false
	for _, it := range items {
		if it.ID == id {
			found = true
			continue
		}
		kept = append(kept, it)
	}
	if !found {
		return ErrItemNotFound
	}

	if err := s.save(ctx, kept); err != nil {
		return err
	}
	metrics.CartMutations.WithLabelValues("remove").Inc()
	return nil
}

// Clear empties the cart.
func (s *Store) Clear(ctx context.Context) error {
	if err := s.save(ctx, nil); err != nil {
		return err
	}
	metrics.CartMutations.WithLabelValues("clear").Inc()
	s.logger.Debug("Cleared cart")
	return nil
}

func (s *Store) load(ctx context.Context) ([]LineItem, error) {
	raw, err := s.store.Get(ctx, storage.RecordCart)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("read cart: %w", err)
	}
	var items []LineItem
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("unmarshal cart: %w", err)
	}
	return items, nil
}

func (s *Store) save(ctx context.Context, items []LineItem) error {
	if items == nil {
		items = []LineItem{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("marshal cart: %w", err)
	}
	if err := s.store.Set(ctx, storage.RecordCart, data); err != nil {
		return fmt.Errorf("write cart: %w", err)
	}
	s.bus.Publish(ctx, event.New(event.TypeCartChanged, event.CartChanged{Count: count(items)}))
	return nil
}

func count(items []LineItem) int {
	total := 0
	for _, it := range items {
		total += it.Qty
	}
	return total
}

func clamp(qty int) int {
	if qty > MaxQty {
		return MaxQty
	}
	if qty < MinQty {
		return MinQty
	}
	return qty
}
