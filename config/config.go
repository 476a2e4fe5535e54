// Package config provides configuration loading and management for the
// V-Store commerce core.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the complete V-Store configuration
type Config struct {
	NATS    NATSConfig    `yaml:"nats"`
	Catalog CatalogConfig `yaml:"catalog"`
	Pricing PricingConfig `yaml:"pricing"`
	Orders  OrdersConfig  `yaml:"orders"`
}

// NATSConfig configures the NATS connection backing the durable store
// and the event bus
type NATSConfig struct {
	// URL is the NATS server URL
	URL string `yaml:"url"`
	// Bucket is the KV bucket holding storefront records
	Bucket string `yaml:"bucket"`
}

// CatalogConfig configures product lookup
type CatalogConfig struct {
	// Endpoint is the remote catalog base URL (empty = built-in snapshot)
	Endpoint string `yaml:"endpoint"`
	// LookupTimeout bounds a single product resolution; lookups past it
	// degrade to client-supplied data
	LookupTimeout time.Duration `yaml:"lookup_timeout"`
}

// PricingConfig configures the shipping policy. Money knobs are plain
// YAML numbers; they are converted to decimals where the calculator is
// constructed.
type PricingConfig struct {
	// FreeShipThreshold is the subtotal-after-discount at which
	// shipping becomes free
	FreeShipThreshold float64 `yaml:"free_ship_threshold"`
	// ShippingFee is the flat fee below the threshold
	ShippingFee float64 `yaml:"shipping_fee"`
	// Currency is the display/export currency code
	Currency string `yaml:"currency"`
}

// OrdersConfig configures the order history surface
type OrdersConfig struct {
	// PageSize is the fixed page size for order listing
	PageSize int `yaml:"page_size"`
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		NATS: NATSConfig{
			URL:    "nats://localhost:4222",
			Bucket: "VSTORE_RECORDS",
		},
		Catalog: CatalogConfig{
			Endpoint:      "", // Built-in snapshot
			LookupTimeout: 3 * time.Second,
		},
		Pricing: PricingConfig{
			FreeShipThreshold: 49,
			ShippingFee:       4.99,
			Currency:          "GBP",
		},
		Orders: OrdersConfig{
			PageSize: 10,
		},
	}
}

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	if c.NATS.URL == "" {
		return fmt.Errorf("nats.url is required")
	}
	if c.Catalog.LookupTimeout <= 0 {
		return fmt.Errorf("catalog.lookup_timeout must be positive")
	}
	if c.Pricing.FreeShipThreshold < 0 {
		return fmt.Errorf("pricing.free_ship_threshold must not be negative")
	}
	if c.Pricing.ShippingFee < 0 {
		return fmt.Errorf("pricing.shipping_fee must not be negative")
	}
	if c.Orders.PageSize < 1 {
		return fmt.Errorf("orders.page_size must be at least 1")
	}
	return nil
}

// Merge merges another config into this one (other takes precedence for non-zero values)
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}

	// NATS
	if other.NATS.URL != "" {
		c.NATS.URL = other.NATS.URL
	}
	if other.NATS.Bucket != "" {
		c.NATS.Bucket = other.NATS.Bucket
	}

	// Catalog
	if other.Catalog.Endpoint != "" {
		c.Catalog.Endpoint = other.Catalog.Endpoint
	}
	if other.Catalog.LookupTimeout != 0 {
		c.Catalog.LookupTimeout = other.Catalog.LookupTimeout
	}

	// Pricing
	if other.Pricing.FreeShipThreshold != 0 {
		c.Pricing.FreeShipThreshold = other.Pricing.FreeShipThreshold
	}
	if other.Pricing.ShippingFee != 0 {
		c.Pricing.ShippingFee = other.Pricing.ShippingFee
	}
	if other.Pricing.Currency != "" {
		c.Pricing.Currency = other.Pricing.Currency
	}

	// Orders
	if other.Orders.PageSize != 0 {
		c.Orders.PageSize = other.Orders.PageSize
	}
}

// LoadFromFile loads configuration from a YAML file
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveToFile saves configuration to a YAML file
func (c *Config) SaveToFile(path string) error {
	// Ensure parent directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
