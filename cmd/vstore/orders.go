package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/c360studio/vstore/order"
)

func ordersCmd(opts *appOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "orders",
		Short: "Browse and manage the order ledger",
	}

	cmd.AddCommand(ordersListCmd(opts))
	cmd.AddCommand(ordersShowCmd(opts))
	cmd.AddCommand(ordersCancelCmd(opts))
	cmd.AddCommand(ordersAdvanceCmd(opts))

	return cmd
}

// filterFlags binds the shared ledger filter flags and converts them to
// an order.Filter.
type filterFlags struct {
	query  string
	status string
	from   string
	to     string
	page   int
}

func (f *filterFlags) bind(cmd *cobra.Command, paginated bool) {
	cmd.Flags().StringVarP(&f.query, "query", "q", "", "Match order id or item names")
	cmd.Flags().StringVar(&f.status, "status", "", "Filter by status (processing, shipped, delivered, cancelled)")
	cmd.Flags().StringVar(&f.from, "from", "", "Earliest order date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.to, "to", "", "Latest order date (YYYY-MM-DD)")
	if paginated {
		cmd.Flags().IntVarP(&f.page, "page", "p", 1, "Page number")
	}
}

func (f *filterFlags) filter() (order.Filter, error) {
	out := order.Filter{Query: f.query, Page: f.page}

	if f.status != "" {
		st := order.Status(f.status)
		if !st.Valid() {
			return out, fmt.Errorf("unknown status %q", f.status)
		}
		out.Status = st
	}
	if f.from != "" {
		t, err := time.Parse("2006-01-02", f.from)
		if err != nil {
			return out, fmt.Errorf("invalid --from date %q", f.from)
		}
		out.From = t
	}
	if f.to != "" {
		t, err := time.Parse("2006-01-02", f.to)
		if err != nil {
			return out, fmt.Errorf("invalid --to date %q", f.to)
		}
		// Inclusive through the end of the named day.
		out.To = t.Add(24*time.Hour - time.Nanosecond)
	}
	return out, nil
}

func ordersListCmd(opts *appOptions) *cobra.Command {
	flags := &filterFlags{}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List orders, most recent first",
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := flags.filter()
			if err != nil {
				return err
			}
			return withApp(cmd.Context(), opts, func(ctx context.Context, a *app) error {
				page, err := a.orders.List(ctx, f)
				if err != nil {
					return err
				}
				if page.Total == 0 {
					fmt.Println("No orders.")
					return nil
				}
				for _, o := range page.Orders {
					fmt.Printf("%-28s %-10s %s %8s %s\n",
						o.ID, o.Status, o.CreatedAt.Format("2006-01-02 15:04"),
						o.Totals.Total.StringFixed(2), o.Currency)
				}
				fmt.Printf("Page %d (%d of %d orders)\n", page.Page, len(page.Orders), page.Total)
				return nil
			})
		},
	}

	flags.bind(cmd, true)

	return cmd
}

func ordersShowCmd(opts *appOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show <order-id>",
		Short: "Show one order in full",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), opts, func(ctx context.Context, a *app) error {
				o, err := a.orders.Get(ctx, args[0])
				if err != nil {
					return err
				}
				printOrder(o)
				return nil
			})
		},
	}
}

func ordersCancelCmd(opts *appOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "cancel <order-id>",
		Short: "Cancel an order still in processing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), opts, func(ctx context.Context, a *app) error {
				o, err := a.orders.Cancel(ctx, args[0])
				if err != nil {
					return err
				}
				fmt.Printf("Order %s cancelled.\n", o.ID)
				return nil
			})
		},
	}
}

func ordersAdvanceCmd(opts *appOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "advance <order-id> <status>",
		Short: "Move an order to a new lifecycle status",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			to := order.Status(args[1])
			if !to.Valid() {
				return fmt.Errorf("unknown status %q", args[1])
			}
			return withApp(cmd.Context(), opts, func(ctx context.Context, a *app) error {
				o, err := a.orders.SetStatus(ctx, args[0], to)
				if err != nil {
					return err
				}
				fmt.Printf("Order %s is now %s.\n", o.ID, o.Status)
				return nil
			})
		},
	}
}

func printOrder(o *order.Order) {
	fmt.Printf("Order    %s\n", o.ID)
	fmt.Printf("Placed   %s\n", o.CreatedAt.Format(time.RFC3339))
	fmt.Printf("Status   %s\n", o.Status)
	fmt.Printf("Customer %s, %s\n", o.Customer.Name, o.Customer.Address)
	fmt.Printf("Payment  %s\n", describePayment(o))
	if o.PromoCode != "" {
		fmt.Printf("Promo    %s\n", o.PromoCode)
	}
	fmt.Println()
	printCart(o.Items)
	fmt.Println()
	fmt.Printf("Subtotal  %8s %s\n", o.Totals.Subtotal.StringFixed(2), o.Currency)
	if o.Totals.Discount.IsPositive() {
		fmt.Printf("Discount -%8s %s\n", o.Totals.Discount.StringFixed(2), o.Currency)
	}
	fmt.Printf("Shipping  %8s %s\n", o.Totals.Shipping.StringFixed(2), o.Currency)
	fmt.Printf("Total     %8s %s\n", o.Totals.Total.StringFixed(2), o.Currency)
	if len(o.StatusLog) > 0 {
		fmt.Println()
		for _, c := range o.StatusLog {
			fmt.Printf("%s  %s -> %s\n", c.Timestamp.Format(time.RFC3339), c.From, c.To)
		}
	}
}
