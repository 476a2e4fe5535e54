// Package payment validates a chosen payment instrument syntactically.
// Card numbers are checksum-checked and brand-detected, expiry and CVC
// are shape-checked, and virtual payment handles are parsed and routed
// to a platform. No gateway is involved and no raw card data survives
// validation; only a derived summary is handed onward.
package payment

import (
	"fmt"
	"time"
)

// Method is the chosen payment method.
type Method string

const (
	// MethodCard is a credit or debit card, validated by checksum,
	// expiry and CVC.
	MethodCard Method = "credit-card"

	// MethodUPI is a virtual payment handle of the user@platform form.
	MethodUPI Method = "upi"

	// MethodPayPal is a deferred-redirect method with no entered
	// fields; selecting it is all the validation there is.
	MethodPayPal Method = "paypal"

	// MethodCOD is cash on delivery; like paypal, selection is the
	// whole validation.
	MethodCOD Method = "cod"
)

// Input carries the raw user-entered fields for the chosen method.
// Never persist this struct.
type Input struct {
	Method     Method
	CardNumber string
	Expiry     string // MM/YY
	CVC        string
	Handle     string // user@platform
}

// Summary is the derived instrument summary retained on an order.
type Summary struct {
	Method   Method `json:"method"`
	Brand    Brand  `json:"brand,omitempty"`
	Last4    string `json:"last4,omitempty"`
	Handle   string `json:"handle,omitempty"`
	Platform string `json:"platform,omitempty"`
}

// ValidationError reports a failed check with a user-facing reason.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// Validator checks payment instruments. The clock is injectable so
// expiry tests don't depend on the wall clock.
type Validator struct {
	now func() time.Time
}

// New creates a Validator using the system clock.
func New() *Validator {
	return &Validator{now: time.Now}
}

// NewAt creates a Validator with a fixed clock, for tests.
func NewAt(now func() time.Time) *Validator {
	return &Validator{now: now}
}

// Validate checks in and returns the derived summary. Checks run in a
// fixed order and the first failure wins, so the caller always gets one
// specific reason.
func (v *Validator) Validate(in Input) (Summary, error) {
	switch in.Method {
	case MethodCard:
		return v.validateCard(in)
	case MethodUPI:
		return validateHandle(in.Handle)
	case MethodPayPal, MethodCOD:
		// Nothing entered; selection is sufficient.
		return Summary{Method: in.Method}, nil
	default:
		return Summary{}, &ValidationError{Field: "method", Reason: "select a payment method"}
	}
}
