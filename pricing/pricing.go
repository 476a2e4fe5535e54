// Package pricing turns cart contents and an optional active promotion
// into a priced quote. Compute is pure: it reads only its arguments, so
// it is safe to call on every render tick, and quotes are never stored
// except as a snapshot inside a created order.
package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/c360studio/vstore/cart"
	"github.com/c360studio/vstore/promo"
)

// Default shipping policy, mirroring the storefront.
var (
	DefaultFreeShipThreshold = decimal.NewFromInt(49)
	DefaultShippingFee       = decimal.RequireFromString("4.99")
)

// Quote is a derived pricing snapshot.
// Total = max(0, Subtotal - Discount + Shipping).
type Quote struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Discount decimal.Decimal `json:"discount"`
	Shipping decimal.Decimal `json:"shipping"`
	Total    decimal.Decimal `json:"total"`
}

// Calculator holds the shipping policy knobs.
type Calculator struct {
	// FreeShipThreshold is the subtotal-after-discount at or above
	// which the shipping fee is waived.
	FreeShipThreshold decimal.Decimal

	// ShippingFee is the flat fee charged below the threshold.
	ShippingFee decimal.Decimal
}

// NewCalculator creates a Calculator with the given policy.
func NewCalculator(freeShipThreshold, shippingFee decimal.Decimal) Calculator {
	return Calculator{FreeShipThreshold: freeShipThreshold, ShippingFee: shippingFee}
}

// Default returns a Calculator with the storefront's standard policy.
func Default() Calculator {
	return NewCalculator(DefaultFreeShipThreshold, DefaultShippingFee)
}

// Compute prices the given items under the active rule.
func (c Calculator) Compute(items []cart.LineItem, rule *promo.Rule) Quote {
	subtotal := decimal.Zero
	for _, it := range items {
		subtotal = subtotal.Add(it.Price.Mul(decimal.NewFromInt(int64(it.Qty))))
	}

	discount := promo.Apply(rule, subtotal)

	shipping := decimal.Zero
	if len(items) > 0 {
		freeShip := rule != nil && rule.Kind == promo.KindFreeShip
		if !freeShip && subtotal.Sub(discount).LessThan(c.FreeShipThreshold) {
			shipping = c.ShippingFee
		}
	}

	total := subtotal.Sub(discount).Add(shipping)
	if total.IsNegative() {
		total = decimal.Zero
	}

	return Quote{Subtotal: subtotal, Discount: discount, Shipping: shipping, Total: total}
}
