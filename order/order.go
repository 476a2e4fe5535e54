// Package order implements the order lifecycle: turning a validated cart
// into an immutable ledger entry and tracking it through a small status
// state machine. The ledger is append-only; the single mutable field on
// an order is its status, and every accepted transition is recorded in
// the order's status log.
package order

import (
	"time"

	"github.com/c360studio/vstore/cart"
	"github.com/c360studio/vstore/payment"
	"github.com/c360studio/vstore/pricing"
)

// Status is an order's lifecycle state.
type Status string

const (
	// StatusProcessing is the state every order is created in.
	StatusProcessing Status = "processing"

	// StatusShipped is set by an external fulfillment signal.
	StatusShipped Status = "shipped"

	// StatusDelivered is terminal.
	StatusDelivered Status = "delivered"

	// StatusCancelled is terminal; only reachable from processing.
	StatusCancelled Status = "cancelled"
)

// transitions is the lifecycle table. Absent keys are terminal states.
var transitions = map[Status][]Status{
	StatusProcessing: {StatusShipped, StatusCancelled},
	StatusShipped:    {StatusDelivered},
}

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// Terminal reports whether no further transition is allowed from s.
func (s Status) Terminal() bool {
	return len(transitions[s]) == 0
}

// CanTransitionTo reports whether the lifecycle table allows s → to.
func (s Status) CanTransitionTo(to Status) bool {
	for _, next := range transitions[s] {
		if next == to {
			return true
		}
	}
	return false
}

// StatusChange records one accepted transition.
type StatusChange struct {
	From      Status    `json:"from"`
	To        Status    `json:"to"`
	Timestamp time.Time `json:"timestamp"`
}

// Customer is the buyer's contact and shipping information.
type Customer struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
	City    string `json:"city,omitempty"`
	State   string `json:"state,omitempty"`
	Zip     string `json:"zip,omitempty"`
	Country string `json:"country,omitempty"`
}

// Order is a persisted ledger entry. Everything except Status and
// StatusLog is immutable after creation. Item names and prices are
// snapshotted from the catalog at creation time, not trusted from the
// client.
type Order struct {
	ID        string          `json:"id"`
	CreatedAt time.Time       `json:"createdAt"`
	Items     []cart.LineItem `json:"items"`
	Totals    pricing.Quote   `json:"totals"`
	Customer  Customer        `json:"customer"`
	Payment   payment.Summary `json:"payment"`
	PromoCode string          `json:"promo,omitempty"`
	Currency  string          `json:"currency"`
	Status    Status          `json:"status"`
	StatusLog []StatusChange  `json:"statusLog,omitempty"`
}
