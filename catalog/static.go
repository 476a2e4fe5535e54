package catalog

import (
	"context"

	"github.com/shopspring/decimal"
)

// StaticCatalog resolves products from a fixed in-memory snapshot.
type StaticCatalog struct {
	products map[string]Product
}

// NewStatic creates a StaticCatalog over the given products.
func NewStatic(products []Product) *StaticCatalog {
	m := make(map[string]Product, len(products))
	for _, p := range products {
		m[p.ID] = p
	}
	return &StaticCatalog{products: m}
}

// NewDefault creates a StaticCatalog seeded with the storefront's demo
// catalog.
func NewDefault() *StaticCatalog {
	return NewStatic(DefaultProducts())
}

// Resolve returns the product for id, or ErrUnknown.
func (c *StaticCatalog) Resolve(_ context.Context, id string) (*Product, error) {
	p, ok := c.products[id]
	if !ok {
		return nil, ErrUnknown
	}
	return &p, nil
}

// All returns every product in the snapshot.
func (c *StaticCatalog) All() []Product {
	out := make([]Product, 0, len(c.products))
	for _, p := range c.products {
		out = append(out, p)
	}
	return out
}

func price(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// DefaultProducts returns the demo storefront catalog, one sample per
// department.
func DefaultProducts() []Product {
	return []Product{
		{ID: "fr-apple", Name: "Red Apples", Price: price("2.99"), Rating: 4.6, Unit: "/ lb", Category: "fruits"},
		{ID: "fr-orange", Name: "Navel Oranges", Price: price("3.49"), Rating: 4.2, Unit: "/ lb", Category: "fruits"},
		{ID: "ve-carrot", Name: "Carrots", Price: price("1.29"), Rating: 4.4, Unit: "/ lb", Category: "vegetables"},
		{ID: "ve-broc", Name: "Broccoli", Price: price("1.99"), Rating: 4.5, Unit: "/ head", Category: "vegetables"},
		{ID: "da-milk", Name: "Whole Milk", Price: price("1.19"), Rating: 4.7, Unit: "/ L", Category: "dairy"},
		{ID: "da-cheese", Name: "Cheddar Cheese", Price: price("3.99"), Rating: 4.6, Unit: "/ 200g", Category: "dairy"},
		{ID: "da-yogurt", Name: "Greek Yogurt", Price: price("0.89"), Rating: 4.3, Unit: "/ pot", Category: "dairy"},
		{ID: "eg-large", Name: "Large Eggs", Price: price("2.99"), Rating: 4.4, Unit: "/ dozen", Category: "eggs"},
		{ID: "me-chicken", Name: "Chicken Breast", Price: price("5.99"), Rating: 4.5, Unit: "/ lb", Category: "meat"},
		{ID: "me-beef", Name: "Ground Beef", Price: price("6.49"), Rating: 4.1, Unit: "/ lb", Category: "meat"},
		{ID: "sf-salmon", Name: "Atlantic Salmon", Price: price("9.99"), Rating: 4.6, Unit: "/ lb", Category: "seafood"},
		{ID: "ba-bread", Name: "Sourdough Bread", Price: price("2.49"), Rating: 4.6, Unit: "/ loaf", Category: "bakery"},
		{ID: "ba-crois", Name: "Butter Croissants", Price: price("3.29"), Rating: 4.7, Unit: "/ 4pk", Category: "bakery"},
		{ID: "pa-penne", Name: "Penne Pasta", Price: price("1.09"), Rating: 4.3, Unit: "/ 500g", Category: "pantry"},
		{ID: "be-oj", Name: "Orange Juice", Price: price("1.79"), Rating: 4.2, Unit: "/ 1L", Category: "beverages"},
	}
}
