// Package catalog provides product lookup for the commerce core. The
// core only consumes the Resolver capability; the backing data may be a
// local snapshot or a remote catalog service.
package catalog

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
)

// ErrUnknown is returned when a product id is not in the catalog.
var ErrUnknown = errors.New("unknown product")

// Product is a canonical catalog entry. Name and Price are authoritative:
// order creation re-derives them from here rather than trusting
// client-submitted values.
type Product struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Image    string          `json:"img,omitempty"`
	Category string          `json:"category,omitempty"`
	Rating   float64         `json:"rating,omitempty"`
	Unit     string          `json:"unit,omitempty"`
}

// Resolver looks up canonical product data by id.
type Resolver interface {
	// Resolve returns the product for id, or ErrUnknown if the catalog
	// has no entry for it. Implementations backed by a remote service
	// must honor ctx cancellation; callers bound each lookup with a
	// deadline and degrade to client-supplied data on failure.
	Resolve(ctx context.Context, id string) (*Product, error)
}
