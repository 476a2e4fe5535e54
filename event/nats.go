package event

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/nats-io/nats.go"
)

// SubjectPrefix is the root of all storefront event subjects.
const SubjectPrefix = "vstore"

// NATSBus publishes events as JSON messages on NATS subjects of the form
// vstore.<event type>, e.g. vstore.cart.changed. Delivery is fire-and-
// forget: a publish failure is logged, never surfaced to the mutation
// that produced the event.
type NATSBus struct {
	nc     *nats.Conn
	logger *slog.Logger
}

// NewNATSBus creates a NATSBus on the given connection.
func NewNATSBus(nc *nats.Conn, logger *slog.Logger) *NATSBus {
	if logger == nil {
		logger = slog.Default()
	}
	return &NATSBus{nc: nc, logger: logger}
}

// Publish sends e to its subject.
func (b *NATSBus) Publish(_ context.Context, e Event) {
	data, err := json.Marshal(e)
	if err != nil {
		b.logger.Warn("Failed to marshal event",
			slog.String("type", e.Type),
			slog.String("error", err.Error()))
		return
	}
	subject := SubjectPrefix + "." + e.Type
	if err := b.nc.Publish(subject, data); err != nil {
		b.logger.Warn("Failed to publish event",
			slog.String("subject", subject),
			slog.String("error", err.Error()))
	}
}
