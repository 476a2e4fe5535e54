package promo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/c360studio/vstore/storage"
)

// ErrInvalidCode is returned by Activate for codes not in the registry.
var ErrInvalidCode = errors.New("invalid promo code")

// Keeper persists the single active promotion code. At most one code is
// active; activating a new one replaces the prior one. The active code
// survives reloads until explicitly cleared or an order is finalized.
type Keeper struct {
	store  storage.Store
	logger *slog.Logger
}

// NewKeeper creates a Keeper over the given store.
func NewKeeper(store storage.Store, logger *slog.Logger) *Keeper {
	if logger == nil {
		logger = slog.Default()
	}
	return &Keeper{store: store, logger: logger}
}

// Activate validates code against the registry and persists it as the
// active promotion, replacing any prior one. The rule is stored even when
// its minimum-subtotal condition is currently unmet.
func (k *Keeper) Activate(ctx context.Context, code string) (*Rule, error) {
	rule := Normalize(code)
	if rule == nil {
		return nil, ErrInvalidCode
	}
	if err := k.store.Set(ctx, storage.RecordActivePromo, []byte(rule.Code)); err != nil {
		return nil, fmt.Errorf("persist active promo: %w", err)
	}
	k.logger.Debug("Activated promo", slog.String("code", rule.Code))
	return rule, nil
}

// Active returns the currently active rule, or nil when none is set.
// The code is always re-read from the store so a second session's change
// is picked up.
func (k *Keeper) Active(ctx context.Context) (*Rule, error) {
	raw, err := k.store.Get(ctx, storage.RecordActivePromo)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("read active promo: %w", err)
	}
	code := strings.TrimSpace(string(raw))
	if code == "" {
		return nil, nil
	}
	// A code that has left the registry since it was stored is treated
	// as no promotion rather than an error.
	return Normalize(code), nil
}

// Clear removes the active promotion.
func (k *Keeper) Clear(ctx context.Context) error {
	if err := k.store.Delete(ctx, storage.RecordActivePromo); err != nil {
		return fmt.Errorf("clear active promo: %w", err)
	}
	k.logger.Debug("Cleared active promo")
	return nil
}
