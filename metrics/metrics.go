// Package metrics exposes prometheus instrumentation for the commerce
// core. Collectors are registered on the default registry; binaries that
// want them scraped expose promhttp in their own serving surface.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// CartMutations counts cart write operations by kind.
	CartMutations = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "vstore",
		Subsystem: "cart",
		Name:      "mutations_total",
		Help:      "Cart write operations by kind (add, set_qty, remove, clear).",
	}, []string{"op"})

	// OrdersCreated counts successfully appended orders.
	OrdersCreated = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "vstore",
		Subsystem: "orders",
		Name:      "created_total",
		Help:      "Orders appended to the ledger.",
	})

	// OrderRejections counts order submissions rejected at validation,
	// by reason field.
	OrderRejections = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "vstore",
		Subsystem: "orders",
		Name:      "rejections_total",
		Help:      "Order submissions rejected before persistence, by failing field.",
	}, []string{"field"})

	// CatalogFallbacks counts line items that kept client-supplied data
	// because the catalog lookup failed or timed out.
	CatalogFallbacks = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "vstore",
		Subsystem: "catalog",
		Name:      "fallbacks_total",
		Help:      "Line items priced from client data after a degraded catalog lookup.",
	})
)
