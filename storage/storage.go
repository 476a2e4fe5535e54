// Package storage provides the durable record store capability for the
// commerce core. Records are opaque byte payloads addressed by name; a
// write replaces the whole record or fails without partial effect.
package storage

import "context"

// Record names used by the core. All components of one storefront origin
// share the same bucket, so names are flat and well-known.
const (
	RecordCart        = "cart"
	RecordActivePromo = "promo_active"
	RecordOrders      = "orders"
)

// Store is the injected persistence capability. Implementations must make
// each Set atomic at record granularity: a concurrent reader observes
// either the previous or the new value, never a mix.
type Store interface {
	// Get returns the current value of the named record.
	// Returns ErrNotFound when the record has never been written.
	Get(ctx context.Context, name string) ([]byte, error)

	// Set replaces the named record with value.
	Set(ctx context.Context, name string, value []byte) error

	// Delete removes the named record. Deleting an absent record is not
	// an error.
	Delete(ctx context.Context, name string) error
}
