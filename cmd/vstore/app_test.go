package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/c360studio/vstore/cart"
	"github.com/c360studio/vstore/order"
	"github.com/c360studio/vstore/payment"
)

func writeTestConfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "vstore.yaml")
	if err := os.WriteFile(path, []byte("pricing:\n  currency: GBP\n"), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestNewAppMemory(t *testing.T) {
	ctx := context.Background()
	app, err := newApp(ctx, &appOptions{configPath: writeTestConfig(t), memory: true})
	if err != nil {
		t.Fatalf("failed to create app: %v", err)
	}
	defer app.Close()

	if app.carts == nil {
		t.Error("cart store not initialized")
	}
	if app.promos == nil {
		t.Error("promo keeper not initialized")
	}
	if app.orders == nil {
		t.Error("order manager not initialized")
	}
	if app.catalog == nil {
		t.Error("catalog not initialized")
	}
}

func TestAppCheckoutRoundTrip(t *testing.T) {
	ctx := context.Background()
	app, err := newApp(ctx, &appOptions{configPath: writeTestConfig(t), memory: true})
	if err != nil {
		t.Fatalf("failed to create app: %v", err)
	}
	defer app.Close()

	p, err := app.catalog.Resolve(ctx, "fr-apple")
	if err != nil {
		t.Fatalf("failed to resolve product: %v", err)
	}
	item := cart.LineItem{ID: p.ID, Name: p.Name, Price: p.Price, Image: p.Image}
	if err := app.carts.Add(ctx, item, 2); err != nil {
		t.Fatalf("failed to add to cart: %v", err)
	}

	o, err := app.orders.Create(ctx, order.Customer{
		Name:    "Sam Carter",
		Address: "4 Long Acre, London",
	}, payment.Input{
		Method:     payment.MethodCard,
		CardNumber: "4111111111111111",
		Expiry:     "12/39",
		CVC:        "123",
	})
	if err != nil {
		t.Fatalf("failed to create order: %v", err)
	}
	if o.Status != order.StatusProcessing {
		t.Errorf("expected processing status, got %s", o.Status)
	}

	got, err := app.orders.Get(ctx, o.ID)
	if err != nil {
		t.Fatalf("failed to fetch order back: %v", err)
	}
	if got.Totals.Total.String() != o.Totals.Total.String() {
		t.Errorf("ledger total %s does not match created total %s", got.Totals.Total, o.Totals.Total)
	}

	// Checkout empties the cart
	count, err := app.carts.Count(ctx)
	if err != nil {
		t.Fatalf("failed to count cart: %v", err)
	}
	if count != 0 {
		t.Errorf("expected empty cart after checkout, got %d items", count)
	}
}

func TestExportCommandWritesFile(t *testing.T) {
	outPath := filepath.Join(t.TempDir(), "orders.csv")

	root := rootCmd()
	root.SetArgs([]string{
		"export", "--format", "csv", "--out", outPath,
		"--config", writeTestConfig(t), "--memory",
	})
	if err := root.Execute(); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("failed to read export output: %v", err)
	}
	if got := string(data); got != "order id,date,status,subtotal,discount,shipping,total,items\n" {
		t.Errorf("unexpected export content: %q", got)
	}
}

func TestRootCmdSubcommands(t *testing.T) {
	root := rootCmd()
	want := []string{"cart", "promo", "quote", "checkout", "orders", "export", "config", "version"}
	for _, name := range want {
		found := false
		for _, sub := range root.Commands() {
			if sub.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("missing subcommand %q", name)
		}
	}
}
