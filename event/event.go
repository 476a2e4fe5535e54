// Package event provides the typed change-notification mechanism for the
// commerce core. Components publish explicit events instead of peeking at
// each other's state; views subscribe to whatever they need.
package event

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Event types published by the core.
const (
	TypeCartChanged        = "cart.changed"
	TypeOrderCreated       = "order.created"
	TypeOrderStatusChanged = "order.status_changed"
)

// Event is a single typed notification.
type Event struct {
	ID      string    `json:"id"`
	Type    string    `json:"type"`
	At      time.Time `json:"at"`
	Payload any       `json:"payload,omitempty"`
}

// New creates an Event with a fresh ID and the current timestamp.
func New(eventType string, payload any) Event {
	return Event{
		ID:      uuid.New().String(),
		Type:    eventType,
		At:      time.Now(),
		Payload: payload,
	}
}

// CartChanged is the payload for TypeCartChanged. Count is the total
// quantity across all line items, for badge rendering.
type CartChanged struct {
	Count int `json:"count"`
}

// OrderCreated is the payload for TypeOrderCreated.
type OrderCreated struct {
	OrderID string `json:"order_id"`
	Total   string `json:"total"`
}

// OrderStatusChanged is the payload for TypeOrderStatusChanged.
type OrderStatusChanged struct {
	OrderID string `json:"order_id"`
	From    string `json:"from"`
	To      string `json:"to"`
}

// Bus delivers events to whoever is listening. Publish must not block
// the publishing operation indefinitely; failures are the bus's problem,
// not the mutation's.
type Bus interface {
	Publish(ctx context.Context, e Event)
}

// Discard is a Bus that drops everything. Useful as a default.
type Discard struct{}

// Publish drops the event.
func (Discard) Publish(context.Context, Event) {}
