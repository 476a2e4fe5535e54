package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/c360studio/vstore/order"
	"github.com/c360studio/vstore/payment"
)

func checkoutCmd(opts *appOptions) *cobra.Command {
	var (
		customer order.Customer
		method   string
		card     string
		expiry   string
		cvc      string
		handle   string
	)

	cmd := &cobra.Command{
		Use:   "checkout",
		Short: "Place an order from the current cart",
		Long: `Checkout validates the customer details and payment instrument,
re-prices the cart against the catalog, writes the order to the ledger
and clears the cart and any active promo.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			pay := payment.Input{
				Method:     payment.Method(method),
				CardNumber: card,
				Expiry:     expiry,
				CVC:        cvc,
				Handle:     handle,
			}
			return withApp(cmd.Context(), opts, func(ctx context.Context, a *app) error {
				o, err := a.orders.Create(ctx, customer, pay)
				if err != nil {
					return err
				}
				fmt.Printf("Order %s placed.\n", o.ID)
				fmt.Printf("Total %s %s (%s)\n", o.Totals.Total.StringFixed(2), o.Currency, describePayment(o))
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&customer.Name, "name", "", "Customer name")
	cmd.Flags().StringVar(&customer.Address, "address", "", "Delivery address")
	cmd.Flags().StringVar(&customer.Email, "email", "", "Email address")
	cmd.Flags().StringVar(&customer.Phone, "phone", "", "Phone number")
	cmd.Flags().StringVar(&customer.City, "city", "", "City")
	cmd.Flags().StringVar(&customer.State, "state", "", "State or county")
	cmd.Flags().StringVar(&customer.Zip, "zip", "", "Postal code")
	cmd.Flags().StringVar(&customer.Country, "country", "", "Country")

	cmd.Flags().StringVar(&method, "method", string(payment.MethodCard), "Payment method (credit-card, upi, paypal, cod)")
	cmd.Flags().StringVar(&card, "card", "", "Card number (credit-card)")
	cmd.Flags().StringVar(&expiry, "expiry", "", "Card expiry MM/YY (credit-card)")
	cmd.Flags().StringVar(&cvc, "cvc", "", "Card security code (credit-card)")
	cmd.Flags().StringVar(&handle, "handle", "", "UPI handle (upi)")

	return cmd
}

func describePayment(o *order.Order) string {
	switch o.Payment.Method {
	case payment.MethodCard:
		return fmt.Sprintf("%s ending %s", o.Payment.Brand, o.Payment.Last4)
	case payment.MethodUPI:
		return fmt.Sprintf("%s via %s", o.Payment.Handle, o.Payment.Platform)
	default:
		return string(o.Payment.Method)
	}
}
