package order

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/vstore/cart"
	"github.com/c360studio/vstore/catalog"
	"github.com/c360studio/vstore/event"
	"github.com/c360studio/vstore/payment"
	"github.com/c360studio/vstore/pricing"
	"github.com/c360studio/vstore/promo"
	"github.com/c360studio/vstore/storage"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// testClock hands out strictly increasing instants so list ordering is
// deterministic.
type testClock struct {
	t time.Time
}

func (c *testClock) now() time.Time {
	c.t = c.t.Add(time.Second)
	return c.t
}

type fixture struct {
	mgr    *Manager
	carts  *cart.Store
	promos *promo.Keeper
	mem    *storage.MemStore
	bus    *event.LocalBus
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	mem := storage.NewMemStore()
	bus := event.NewLocalBus()
	carts := cart.NewStore(mem, bus, nil)
	promos := promo.NewKeeper(mem, nil)

	mgr := NewManager(ManagerConfig{
		Store:      mem,
		Cart:       carts,
		Promos:     promos,
		Catalog:    catalog.NewDefault(),
		Calculator: pricing.Default(),
		Bus:        bus,
	})
	clock := &testClock{t: time.Date(2026, time.March, 1, 10, 0, 0, 0, time.UTC)}
	mgr.now = clock.now

	return &fixture{mgr: mgr, carts: carts, promos: promos, mem: mem, bus: bus}
}

func validCustomer() Customer {
	return Customer{Name: "Ada Lovelace", Address: "12 Analytical Row, London"}
}

func validCard() payment.Input {
	return payment.Input{
		Method:     payment.MethodCard,
		CardNumber: "4111111111111111",
		Expiry:     "12/99",
		CVC:        "123",
	}
}

func addItem(t *testing.T, f *fixture, id, price string, qty int) {
	t.Helper()
	require.NoError(t, f.carts.Add(context.Background(),
		cart.LineItem{ID: id, Name: id, Price: dec(price)}, qty))
}

func TestCreateSnapshotsCanonicalPrices(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	// Client asserts a tampered price for a known catalog id.
	addItem(t, f, "fr-apple", "0.01", 2)

	o, err := f.mgr.Create(ctx, validCustomer(), validCard())
	require.NoError(t, err)

	require.Len(t, o.Items, 1)
	assert.Equal(t, "Red Apples", o.Items[0].Name)
	assert.True(t, o.Items[0].Price.Equal(dec("2.99")),
		"catalog price must override client price, got %s", o.Items[0].Price)

	assert.Equal(t, StatusProcessing, o.Status)
	require.Len(t, o.StatusLog, 1)
	assert.Equal(t, StatusProcessing, o.StatusLog[0].To)
	assert.Equal(t, payment.BrandVisa, o.Payment.Brand)
	assert.Equal(t, "1111", o.Payment.Last4)
	assert.Equal(t, "GBP", o.Currency)
	assert.Contains(t, o.ID, "ORD-")

	// Cart is cleared only after the durable append.
	items, err := f.carts.Get(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)

	// The order appears exactly once in an unfiltered list.
	page, err := f.mgr.List(ctx, Filter{})
	require.NoError(t, err)
	require.Len(t, page.Orders, 1)
	assert.Equal(t, o.ID, page.Orders[0].ID)
}

func TestCreateUnknownIDKeepsClientFields(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	addItem(t, f, "custom-hamper", "25.00", 1)

	o, err := f.mgr.Create(ctx, validCustomer(), validCard())
	require.NoError(t, err)

	assert.True(t, o.Items[0].Price.Equal(dec("25.00")))
	assert.Equal(t, "custom-hamper", o.Items[0].Name)
}

// downCatalog fails every lookup, as an unreachable catalog service
// would.
type downCatalog struct{}

func (downCatalog) Resolve(ctx context.Context, id string) (*catalog.Product, error) {
	return nil, errors.New("connect: connection refused")
}

func TestCreateCatalogDownKeepsClientFields(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.mgr.catalog = downCatalog{}
	addItem(t, f, "fr-apple", "2.50", 3)

	o, err := f.mgr.Create(ctx, validCustomer(), validCard())
	require.NoError(t, err, "an unreachable catalog must not fail checkout")

	require.Len(t, o.Items, 1)
	assert.Equal(t, "fr-apple", o.Items[0].Name)
	assert.True(t, o.Items[0].Price.Equal(dec("2.50")),
		"client price must survive a failed lookup, got %s", o.Items[0].Price)
	assert.Equal(t, 3, o.Items[0].Qty)
}

func TestCreateReclampsExternallyWrittenQuantities(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	// Another writer holding the bucket can put out-of-range quantities
	// in the shared cart record; order creation re-establishes the
	// bound.
	raw := `[{"id":"fr-apple","price":"2.99","qty":500},{"id":"da-milk","price":"1.19","qty":0}]`
	require.NoError(t, f.mem.Set(ctx, storage.RecordCart, []byte(raw)))

	o, err := f.mgr.Create(ctx, validCustomer(), validCard())
	require.NoError(t, err)

	require.Len(t, o.Items, 2)
	assert.Equal(t, 99, o.Items[0].Qty)
	assert.Equal(t, 1, o.Items[1].Qty)
	assert.True(t, o.Totals.Subtotal.Equal(dec("297.20")),
		"subtotal must price the clamped quantities, got %s", o.Totals.Subtotal)
}

func TestCreatePreconditionOrder(t *testing.T) {
	ctx := context.Background()

	t.Run("empty cart", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.mgr.Create(ctx, validCustomer(), validCard())
		var verr *ValidationError
		require.True(t, errors.As(err, &verr))
		assert.Equal(t, "cart", verr.Field)

		// No ledger entry was appended.
		page, err := f.mgr.List(ctx, Filter{})
		require.NoError(t, err)
		assert.Zero(t, page.Total)
	})

	t.Run("short name", func(t *testing.T) {
		f := newFixture(t)
		addItem(t, f, "fr-apple", "2.99", 1)
		_, err := f.mgr.Create(ctx, Customer{Name: "A", Address: "12 Analytical Row"}, validCard())
		var verr *ValidationError
		require.True(t, errors.As(err, &verr))
		assert.Equal(t, "name", verr.Field)
	})

	t.Run("short address", func(t *testing.T) {
		f := newFixture(t)
		addItem(t, f, "fr-apple", "2.99", 1)
		_, err := f.mgr.Create(ctx, Customer{Name: "Ada Lovelace", Address: "n/a"}, validCard())
		var verr *ValidationError
		require.True(t, errors.As(err, &verr))
		assert.Equal(t, "address", verr.Field)
	})

	t.Run("invalid payment", func(t *testing.T) {
		f := newFixture(t)
		addItem(t, f, "fr-apple", "2.99", 1)
		_, err := f.mgr.Create(ctx, validCustomer(), payment.Input{
			Method:     payment.MethodCard,
			CardNumber: "4111111111111112",
			Expiry:     "12/99",
			CVC:        "123",
		})
		var perr *payment.ValidationError
		require.True(t, errors.As(err, &perr))
		assert.Equal(t, "cardNumber", perr.Field)

		// Cart is untouched by a rejected submission.
		items, _ := f.carts.Get(ctx)
		assert.Len(t, items, 1)
	})
}

func TestCreateAppliesActivePromoAndClearsIt(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	// 12 lb of salmon clears SAVE15's minimum: subtotal 119.88,
	// discount 17.98, free shipping.
	addItem(t, f, "sf-salmon", "9.99", 12)
	_, err := f.promos.Activate(ctx, "SAVE15")
	require.NoError(t, err)

	o, err := f.mgr.Create(ctx, validCustomer(), validCard())
	require.NoError(t, err)

	assert.Equal(t, "SAVE15", o.PromoCode)
	assert.True(t, o.Totals.Discount.Equal(dec("17.98")), "discount %s", o.Totals.Discount)
	assert.True(t, o.Totals.Shipping.IsZero())

	// Success consumed the active promotion.
	rule, err := f.promos.Active(ctx)
	require.NoError(t, err)
	assert.Nil(t, rule)
}

func TestCreatePersistenceFailureKeepsCart(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	addItem(t, f, "fr-apple", "2.99", 2)

	f.mem.FailSet = errors.New("quota exceeded")
	_, err := f.mgr.Create(ctx, validCustomer(), validCard())
	require.Error(t, err)

	f.mem.FailSet = nil

	// The purchase intent survives: cart intact, ledger empty.
	items, _ := f.carts.Get(ctx)
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Qty)

	page, err := f.mgr.List(ctx, Filter{})
	require.NoError(t, err)
	assert.Zero(t, page.Total)
}

func TestCancelLifecycle(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	addItem(t, f, "fr-apple", "2.99", 1)

	o, err := f.mgr.Create(ctx, validCustomer(), validCard())
	require.NoError(t, err)

	cancelled, err := f.mgr.Cancel(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusCancelled, cancelled.Status)
	require.Len(t, cancelled.StatusLog, 2)
	assert.Equal(t, StatusProcessing, cancelled.StatusLog[1].From)

	// Second cancel reports the conflict and changes nothing.
	_, err = f.mgr.Cancel(ctx, o.ID)
	var cerr *ConflictError
	require.True(t, errors.As(err, &cerr))
	assert.Equal(t, StatusCancelled, cerr.Status)

	got, err := f.mgr.Get(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusCancelled, got.Status)
	assert.Len(t, got.StatusLog, 2)
}

func TestSetStatusFollowsLifecycleTable(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	addItem(t, f, "fr-apple", "2.99", 1)

	o, err := f.mgr.Create(ctx, validCustomer(), validCard())
	require.NoError(t, err)

	// processing → delivered skips shipping and is rejected.
	_, err = f.mgr.SetStatus(ctx, o.ID, StatusDelivered)
	var cerr *ConflictError
	require.True(t, errors.As(err, &cerr))

	shipped, err := f.mgr.SetStatus(ctx, o.ID, StatusShipped)
	require.NoError(t, err)
	assert.Equal(t, StatusShipped, shipped.Status)

	// shipped → cancelled is not in the table.
	_, err = f.mgr.SetStatus(ctx, o.ID, StatusCancelled)
	require.True(t, errors.As(err, &cerr))

	delivered, err := f.mgr.SetStatus(ctx, o.ID, StatusDelivered)
	require.NoError(t, err)
	assert.Equal(t, StatusDelivered, delivered.Status)
	assert.True(t, delivered.Status.Terminal())

	// Terminal states accept nothing further.
	_, err = f.mgr.SetStatus(ctx, o.ID, StatusShipped)
	require.True(t, errors.As(err, &cerr))

	_, err = f.mgr.SetStatus(ctx, o.ID, Status("misplaced"))
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))

	_, err = f.mgr.SetStatus(ctx, "ORD-0-deadbeef", StatusShipped)
	assert.ErrorIs(t, err, ErrNotFound)
}

func createOrder(t *testing.T, f *fixture, id, price string, qty int) *Order {
	t.Helper()
	addItem(t, f, id, price, qty)
	o, err := f.mgr.Create(context.Background(), validCustomer(), validCard())
	require.NoError(t, err)
	return o
}

func TestListFilterAndPagination(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.mgr.pageSize = 2

	first := createOrder(t, f, "fr-apple", "2.99", 1)
	second := createOrder(t, f, "da-milk", "1.19", 2)
	third := createOrder(t, f, "sf-salmon", "9.99", 1)
	_, err := f.mgr.Cancel(ctx, second.ID)
	require.NoError(t, err)

	// Unfiltered: most recent first.
	page, err := f.mgr.List(ctx, Filter{})
	require.NoError(t, err)
	require.Equal(t, 3, page.Total)
	assert.Equal(t, third.ID, page.Orders[0].ID)
	assert.Equal(t, first.ID, page.Orders[2].ID)

	// Free-text match on item name.
	page, err = f.mgr.List(ctx, Filter{Query: "salmon"})
	require.NoError(t, err)
	require.Len(t, page.Orders, 1)
	assert.Equal(t, third.ID, page.Orders[0].ID)

	// Free-text match on order id.
	page, err = f.mgr.List(ctx, Filter{Query: first.ID})
	require.NoError(t, err)
	require.Len(t, page.Orders, 1)

	// Status equality.
	page, err = f.mgr.List(ctx, Filter{Status: StatusCancelled})
	require.NoError(t, err)
	require.Len(t, page.Orders, 1)
	assert.Equal(t, second.ID, page.Orders[0].ID)

	// Inclusive creation-date range picks only the middle order.
	page, err = f.mgr.List(ctx, Filter{From: second.CreatedAt, To: second.CreatedAt})
	require.NoError(t, err)
	require.Len(t, page.Orders, 1)
	assert.Equal(t, second.ID, page.Orders[0].ID)

	// Fixed-size pages over the full set.
	page, err = f.mgr.List(ctx, Filter{Page: 1})
	require.NoError(t, err)
	assert.Len(t, page.Orders, 2)
	assert.Equal(t, 3, page.Total)

	page, err = f.mgr.List(ctx, Filter{Page: 2})
	require.NoError(t, err)
	assert.Len(t, page.Orders, 1)

	page, err = f.mgr.List(ctx, Filter{Page: 3})
	require.NoError(t, err)
	assert.Empty(t, page.Orders)

	// Any non-positive page means unpaginated and is reported as 0.
	page, err = f.mgr.List(ctx, Filter{Page: -1})
	require.NoError(t, err)
	assert.Equal(t, 0, page.Page)
	assert.Len(t, page.Orders, 3)
}

func TestCreatePublishesEvents(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	var types []string
	f.bus.Subscribe(func(e event.Event) { types = append(types, e.Type) })

	addItem(t, f, "fr-apple", "2.99", 1)
	o, err := f.mgr.Create(ctx, validCustomer(), validCard())
	require.NoError(t, err)
	_, err = f.mgr.Cancel(ctx, o.ID)
	require.NoError(t, err)

	assert.Contains(t, types, event.TypeOrderCreated)
	assert.Contains(t, types, event.TypeOrderStatusChanged)
	assert.Contains(t, types, event.TypeCartChanged)
}
