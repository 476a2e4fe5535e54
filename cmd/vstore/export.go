package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/c360studio/vstore/export"
)

func exportCmd(opts *appOptions) *cobra.Command {
	var (
		format string
		out    string
		flags  = &filterFlags{}
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the filtered order ledger",
		Long:  "Export writes the filtered order ledger as CSV or JSON, to stdout or a file.",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmtv, err := export.ParseFormat(format)
			if err != nil {
				return err
			}
			f, err := flags.filter()
			if err != nil {
				return err
			}

			var w io.Writer = os.Stdout
			var file *os.File
			if out != "" {
				file, err = os.Create(out)
				if err != nil {
					return fmt.Errorf("create output file: %w", err)
				}
				w = file
			}

			err = withApp(cmd.Context(), opts, func(ctx context.Context, a *app) error {
				// Page 0 exports every matching order.
				page, err := a.orders.List(ctx, f)
				if err != nil {
					return err
				}
				if err := export.Write(w, page.Orders, fmtv); err != nil {
					return err
				}
				if out != "" {
					fmt.Fprintf(os.Stderr, "Exported %d order(s) to %s\n", page.Total, out)
				}
				return nil
			})
			if file != nil {
				// A failed close can mean a failed flush; surface it.
				if cerr := file.Close(); cerr != nil && err == nil {
					err = fmt.Errorf("close output file: %w", cerr)
				}
			}
			return err
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "csv", "Output format (csv, json)")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file (default stdout)")
	flags.bind(cmd, false)

	return cmd
}
