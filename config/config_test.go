package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 49.0, cfg.Pricing.FreeShipThreshold)
	assert.Equal(t, 4.99, cfg.Pricing.ShippingFee)
	assert.Equal(t, "GBP", cfg.Pricing.Currency)
	assert.Equal(t, 10, cfg.Orders.PageSize)
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty nats url", func(c *Config) { c.NATS.URL = "" }},
		{"zero lookup timeout", func(c *Config) { c.Catalog.LookupTimeout = 0 }},
		{"negative threshold", func(c *Config) { c.Pricing.FreeShipThreshold = -1 }},
		{"negative fee", func(c *Config) { c.Pricing.ShippingFee = -1 }},
		{"zero page size", func(c *Config) { c.Orders.PageSize = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestLoadSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "vstore.yaml")

	cfg := DefaultConfig()
	cfg.NATS.URL = "nats://store:4222"
	cfg.Pricing.FreeShipThreshold = 75
	cfg.Catalog.LookupTimeout = 5 * time.Second
	require.NoError(t, cfg.SaveToFile(path))

	loaded, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "nats://store:4222", loaded.NATS.URL)
	assert.Equal(t, 75.0, loaded.Pricing.FreeShipThreshold)
	assert.Equal(t, 5*time.Second, loaded.Catalog.LookupTimeout)
}

func TestLoadFromFilePartialKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "vstore.yaml")
	require.NoError(t, os.WriteFile(path, []byte("pricing:\n  free_ship_threshold: 120\n"), 0644))

	loaded, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, 120.0, loaded.Pricing.FreeShipThreshold)
	// Untouched sections keep their defaults.
	assert.Equal(t, 4.99, loaded.Pricing.ShippingFee)
	assert.Equal(t, 10, loaded.Orders.PageSize)
}

func TestMergePrecedence(t *testing.T) {
	base := DefaultConfig()
	overlay := &Config{}
	overlay.Pricing.Currency = "USD"
	overlay.Orders.PageSize = 25

	base.Merge(overlay)

	assert.Equal(t, "USD", base.Pricing.Currency)
	assert.Equal(t, 25, base.Orders.PageSize)
	// Zero values in the overlay leave the base alone.
	assert.Equal(t, "nats://localhost:4222", base.NATS.URL)

	base.Merge(nil)
	assert.Equal(t, "USD", base.Pricing.Currency)
}
