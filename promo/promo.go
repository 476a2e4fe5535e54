// Package promo implements promotion codes and discount math. The rule
// registry is fixed; codes are validated by lookup, and a rule whose
// minimum-subtotal condition is unmet stays active but contributes no
// discount until the cart grows past the threshold.
package promo

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Kind discriminates how a rule discounts.
type Kind string

const (
	KindPercent  Kind = "percent"
	KindFlat     Kind = "flat"
	KindFreeShip Kind = "freeship"
)

// Rule is an immutable promotion rule.
type Rule struct {
	Code        string          `json:"code"`
	Kind        Kind            `json:"type"`
	Value       decimal.Decimal `json:"value"`
	MinSubtotal decimal.Decimal `json:"minSubtotal,omitempty"`
}

// registry is the fixed table of known codes, keyed by uppercased code.
var registry = map[string]Rule{
	"WELCOME10": {Code: "WELCOME10", Kind: KindPercent, Value: decimal.NewFromInt(10)},
	"FREESHIP":  {Code: "FREESHIP", Kind: KindFreeShip, Value: decimal.Zero},
	"SAVE5":     {Code: "SAVE5", Kind: KindFlat, Value: decimal.NewFromInt(5)},
	"SAVE15":    {Code: "SAVE15", Kind: KindPercent, Value: decimal.NewFromInt(15), MinSubtotal: decimal.NewFromInt(60)},
}

// Normalize trims and uppercases code and looks it up in the registry.
// Unknown codes return nil; the caller surfaces "invalid code".
func Normalize(code string) *Rule {
	rule, ok := registry[strings.ToUpper(strings.TrimSpace(code))]
	if !ok {
		return nil
	}
	return &rule
}

// Codes returns the known promotion codes. Order is not guaranteed;
// callers sort if they need stable output.
func Codes() []string {
	out := make([]string, 0, len(registry))
	for code := range registry {
		out = append(out, code)
	}
	return out
}

// Apply returns the discount a rule yields on the given subtotal.
//
//   - percent: round2(subtotal * value / 100), but only once subtotal has
//     reached the rule's minimum; below it the rule is silently inert.
//   - flat: min(subtotal, value), so the discount never drives the
//     subtotal negative.
//   - freeship: always 0 here; the effect lands at the shipping stage.
func Apply(rule *Rule, subtotal decimal.Decimal) decimal.Decimal {
	if rule == nil {
		return decimal.Zero
	}
	switch rule.Kind {
	case KindPercent:
		if subtotal.LessThan(rule.MinSubtotal) {
			return decimal.Zero
		}
		return subtotal.Mul(rule.Value).Div(decimal.NewFromInt(100)).Round(2)
	case KindFlat:
		return decimal.Min(subtotal, rule.Value)
	default:
		return decimal.Zero
	}
}
