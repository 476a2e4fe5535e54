package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func quoteCmd(opts *appOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "quote",
		Short: "Price the current cart",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), opts, func(ctx context.Context, a *app) error {
				items, err := a.carts.Get(ctx)
				if err != nil {
					return err
				}
				rule, err := a.promos.Active(ctx)
				if err != nil {
					return err
				}

				q := a.calc.Compute(items, rule)
				cur := a.cfg.Pricing.Currency

				printCart(items)
				fmt.Println()
				fmt.Printf("Subtotal  %8s %s\n", q.Subtotal.StringFixed(2), cur)
				if q.Discount.IsPositive() {
					fmt.Printf("Discount -%8s %s (%s)\n", q.Discount.StringFixed(2), cur, rule.Code)
				}
				fmt.Printf("Shipping  %8s %s\n", q.Shipping.StringFixed(2), cur)
				fmt.Printf("Total     %8s %s\n", q.Total.StringFixed(2), cur)
				return nil
			})
		},
	}
}
