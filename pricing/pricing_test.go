package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/vstore/cart"
	"github.com/c360studio/vstore/promo"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func li(id, price string, qty int) cart.LineItem {
	return cart.LineItem{ID: id, Name: id, Price: dec(price), Qty: qty}
}

func TestComputeEmptyCart(t *testing.T) {
	q := Default().Compute(nil, nil)

	assert.True(t, q.Subtotal.IsZero())
	assert.True(t, q.Discount.IsZero())
	assert.True(t, q.Shipping.IsZero(), "empty cart ships nothing, fee is 0")
	assert.True(t, q.Total.IsZero())
}

func TestComputeBelowThresholdChargesShipping(t *testing.T) {
	q := Default().Compute([]cart.LineItem{li("a", "2.99", 2)}, nil)

	assert.True(t, q.Subtotal.Equal(dec("5.98")), "subtotal %s", q.Subtotal)
	assert.True(t, q.Shipping.Equal(dec("4.99")))
	// With no discount, total = subtotal + shipping exactly.
	assert.True(t, q.Total.Equal(q.Subtotal.Add(q.Shipping)))
}

func TestComputeAtThresholdShipsFree(t *testing.T) {
	q := Default().Compute([]cart.LineItem{li("a", "49.00", 1)}, nil)

	assert.True(t, q.Shipping.IsZero())
	assert.True(t, q.Total.Equal(dec("49.00")))
}

func TestDiscountCanReintroduceShipping(t *testing.T) {
	// Subtotal clears the threshold but the discount drags the
	// effective amount back under it.
	rule := promo.Normalize("SAVE5")
	require.NotNil(t, rule)

	q := Default().Compute([]cart.LineItem{li("a", "50.00", 1)}, rule)

	assert.True(t, q.Discount.Equal(dec("5")))
	assert.True(t, q.Shipping.Equal(dec("4.99")))
	assert.True(t, q.Total.Equal(dec("49.99")), "total %s", q.Total)
}

func TestFreeShipRuleWaivesFee(t *testing.T) {
	rule := promo.Normalize("FREESHIP")
	require.NotNil(t, rule)

	q := Default().Compute([]cart.LineItem{li("a", "3.00", 1)}, rule)

	assert.True(t, q.Discount.IsZero())
	assert.True(t, q.Shipping.IsZero())
	assert.True(t, q.Total.Equal(dec("3.00")))
}

func TestPercentPromoEndToEnd(t *testing.T) {
	rule := promo.Normalize("SAVE15")
	require.NotNil(t, rule)

	// 59.99 is under the rule's minimum: no discount, but the rule is
	// still considered active.
	q := Default().Compute([]cart.LineItem{li("a", "59.99", 1)}, rule)
	assert.True(t, q.Discount.IsZero())

	// 60.00 earns 9.00 off; 51.00 still clears free shipping.
	q = Default().Compute([]cart.LineItem{li("a", "60.00", 1)}, rule)
	assert.True(t, q.Discount.Equal(dec("9.00")), "discount %s", q.Discount)
	assert.True(t, q.Shipping.IsZero())
	assert.True(t, q.Total.Equal(dec("51.00")))
}

func TestFlatPromoNeverNegative(t *testing.T) {
	rule := promo.Normalize("SAVE5")
	require.NotNil(t, rule)

	q := Default().Compute([]cart.LineItem{li("a", "3.00", 1)}, rule)

	assert.True(t, q.Discount.Equal(dec("3.00")), "flat discount clamps to subtotal")
	assert.True(t, q.Shipping.Equal(dec("4.99")))
	assert.True(t, q.Total.Equal(dec("4.99")))
	assert.False(t, q.Total.IsNegative())
}

func TestComputeIsPure(t *testing.T) {
	in := []cart.LineItem{li("a", "2.50", 4), li("b", "1.10", 2)}
	c := Default()

	q1 := c.Compute(in, nil)
	q2 := c.Compute(in, nil)

	assert.True(t, q1.Total.Equal(q2.Total))
	assert.Equal(t, 4, in[0].Qty, "input must not be mutated")
}
