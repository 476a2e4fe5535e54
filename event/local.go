package event

import (
	"context"
	"sync"
)

// LocalBus is an in-process Bus. Subscribers are invoked synchronously in
// subscription order; a slow subscriber slows the publisher, which is
// acceptable for the single-session core and keeps tests deterministic.
type LocalBus struct {
	mu   sync.RWMutex
	subs []func(Event)
}

// NewLocalBus creates an empty LocalBus.
func NewLocalBus() *LocalBus {
	return &LocalBus{}
}

// Subscribe registers fn for every subsequently published event.
func (b *LocalBus) Subscribe(fn func(Event)) {
	b.mu.Lock()
	b.subs = append(b.subs, fn)
	b.mu.Unlock()
}

// Publish delivers e to all subscribers.
func (b *LocalBus) Publish(_ context.Context, e Event) {
	b.mu.RLock()
	subs := make([]func(Event), len(b.subs))
	copy(subs, b.subs)
	b.mu.RUnlock()

	for _, fn := range subs {
		fn(e)
	}
}
