package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func promoCmd(opts *appOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "promo",
		Short: "Manage the active promotion",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "apply <code>",
		Short: "Validate and activate a promo code",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), opts, func(ctx context.Context, a *app) error {
				rule, err := a.promos.Activate(ctx, args[0])
				if err != nil {
					return err
				}
				fmt.Printf("Applied %s (%s)\n", rule.Code, rule.Kind)
				return nil
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the active promo code",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), opts, func(ctx context.Context, a *app) error {
				rule, err := a.promos.Active(ctx)
				if err != nil {
					return err
				}
				if rule == nil {
					fmt.Println("No active promo.")
					return nil
				}
				fmt.Printf("%s (%s)\n", rule.Code, rule.Kind)
				return nil
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Remove the active promo code",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), opts, func(ctx context.Context, a *app) error {
				if err := a.promos.Clear(ctx); err != nil {
					return err
				}
				fmt.Println("Promo cleared.")
				return nil
			})
		},
	})

	return cmd
}
