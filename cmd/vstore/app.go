package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/shopspring/decimal"

	"github.com/c360studio/vstore/cart"
	"github.com/c360studio/vstore/catalog"
	"github.com/c360studio/vstore/config"
	"github.com/c360studio/vstore/event"
	"github.com/c360studio/vstore/order"
	"github.com/c360studio/vstore/payment"
	"github.com/c360studio/vstore/pricing"
	"github.com/c360studio/vstore/promo"
	"github.com/c360studio/vstore/storage"
)

type appOptions struct {
	configPath string
	memory     bool
	logLevel   string
}

// app holds the wired transaction core for one CLI invocation.
type app struct {
	cfg     *config.Config
	carts   *cart.Store
	promos  *promo.Keeper
	orders  *order.Manager
	catalog catalog.Resolver
	calc    pricing.Calculator
	nc      *nats.Conn
}

// newApp loads configuration, connects storage and wires the domain
// components. Callers must Close the returned app.
func newApp(ctx context.Context, opts *appOptions) (*app, error) {
	logger := slog.Default()

	cfg, err := loadConfig(opts.configPath, logger)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	a := &app{cfg: cfg}

	var store storage.Store
	var bus event.Bus = event.Discard{}
	if opts.memory {
		store = storage.NewMemStore()
	} else {
		nc, err := nats.Connect(cfg.NATS.URL,
			nats.Timeout(5*time.Second),
			nats.MaxReconnects(3),
		)
		if err != nil {
			return nil, fmt.Errorf("connect to NATS at %s: %w", cfg.NATS.URL, err)
		}
		a.nc = nc

		js, err := jetstream.New(nc)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("create JetStream context: %w", err)
		}
		kv, err := storage.NewKVStore(ctx, js, cfg.NATS.Bucket)
		if err != nil {
			a.Close()
			return nil, err
		}
		store = kv
		bus = event.NewNATSBus(nc, logger)
	}

	if cfg.Catalog.Endpoint != "" {
		a.catalog = catalog.NewHTTP(cfg.Catalog.Endpoint, cfg.Catalog.LookupTimeout)
	} else {
		a.catalog = catalog.NewDefault()
	}

	a.calc = pricing.NewCalculator(
		decimal.NewFromFloat(cfg.Pricing.FreeShipThreshold),
		decimal.NewFromFloat(cfg.Pricing.ShippingFee),
	)

	a.carts = cart.NewStore(store, bus, logger)
	a.promos = promo.NewKeeper(store, logger)
	a.orders = order.NewManager(order.ManagerConfig{
		Store:         store,
		Cart:          a.carts,
		Promos:        a.promos,
		Catalog:       a.catalog,
		Validator:     payment.New(),
		Calculator:    a.calc,
		Bus:           bus,
		Logger:        logger,
		PageSize:      cfg.Orders.PageSize,
		LookupTimeout: cfg.Catalog.LookupTimeout,
		Currency:      cfg.Pricing.Currency,
	})

	return a, nil
}

// Close releases the NATS connection, if any.
func (a *app) Close() {
	if a.nc != nil {
		a.nc.Close()
	}
}

func loadConfig(path string, logger *slog.Logger) (*config.Config, error) {
	if path != "" {
		cfg, err := config.LoadFromFile(path)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		return cfg, nil
	}
	return config.NewLoader(logger).Load()
}

// withApp wires the core, runs fn and tears down. Every subcommand
// funnels through here.
func withApp(ctx context.Context, opts *appOptions, fn func(ctx context.Context, a *app) error) error {
	a, err := newApp(ctx, opts)
	if err != nil {
		return err
	}
	defer a.Close()
	return fn(ctx, a)
}
