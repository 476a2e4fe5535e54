package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/c360studio/vstore/cart"
)

func cartCmd(opts *appOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cart",
		Short: "Inspect and mutate the cart",
	}

	cmd.AddCommand(cartListCmd(opts))
	cmd.AddCommand(cartAddCmd(opts))
	cmd.AddCommand(cartSetCmd(opts))
	cmd.AddCommand(cartRemoveCmd(opts))
	cmd.AddCommand(cartClearCmd(opts))

	return cmd
}

func cartListCmd(opts *appOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List cart contents",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), opts, func(ctx context.Context, a *app) error {
				items, err := a.carts.Get(ctx)
				if err != nil {
					return err
				}
				if len(items) == 0 {
					fmt.Println("Cart is empty.")
					return nil
				}
				printCart(items)
				return nil
			})
		},
	}
}

func cartAddCmd(opts *appOptions) *cobra.Command {
	var qty int

	cmd := &cobra.Command{
		Use:   "add <product-id>",
		Short: "Add a product to the cart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), opts, func(ctx context.Context, a *app) error {
				p, err := a.catalog.Resolve(ctx, args[0])
				if err != nil {
					return fmt.Errorf("resolve product %q: %w", args[0], err)
				}
				item := cart.LineItem{
					ID:    p.ID,
					Name:  p.Name,
					Price: p.Price,
					Image: p.Image,
				}
				if err := a.carts.Add(ctx, item, qty); err != nil {
					return err
				}
				fmt.Printf("Added %dx %s\n", qty, p.Name)
				return nil
			})
		},
	}

	cmd.Flags().IntVarP(&qty, "qty", "n", 1, "Quantity to add")

	return cmd
}

func cartSetCmd(opts *appOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "set <product-id> <qty>",
		Short: "Set a line item's quantity",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			qty, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid quantity %q", args[1])
			}
			return withApp(cmd.Context(), opts, func(ctx context.Context, a *app) error {
				if err := a.carts.SetQty(ctx, args[0], qty); err != nil {
					return err
				}
				fmt.Printf("Set %s to %d\n", args[0], qty)
				return nil
			})
		},
	}
}

func cartRemoveCmd(opts *appOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <product-id>",
		Short: "Remove a line item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), opts, func(ctx context.Context, a *app) error {
				if err := a.carts.Remove(ctx, args[0]); err != nil {
					return err
				}
				fmt.Printf("Removed %s\n", args[0])
				return nil
			})
		},
	}
}

func cartClearCmd(opts *appOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Empty the cart",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), opts, func(ctx context.Context, a *app) error {
				if err := a.carts.Clear(ctx); err != nil {
					return err
				}
				fmt.Println("Cart cleared.")
				return nil
			})
		},
	}
}

func printCart(items []cart.LineItem) {
	total := 0
	for _, it := range items {
		fmt.Printf("%-14s %-24s %8s x%d\n", it.ID, it.Name, it.Price.StringFixed(2), it.Qty)
		total += it.Qty
	}
	fmt.Printf("%d item(s)\n", total)
}
