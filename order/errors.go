package order

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when no order has the given id.
var ErrNotFound = errors.New("order not found")

// ValidationError rejects an order submission with a user-facing reason.
// Field identifies the failing input so the UI can highlight it.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// ConflictError reports a status transition the lifecycle table forbids.
// The order is left unchanged.
type ConflictError struct {
	OrderID   string
	Status    Status
	Attempted Status
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("order %s is %s, cannot move to %s", e.OrderID, e.Status, e.Attempted)
}
