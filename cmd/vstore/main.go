// Package main provides the vstore binary entry point.
// Vstore is a commerce transaction core: a persistent cart, promotion
// engine, totals calculator, payment validator and order ledger,
// driven from the command line against NATS JetStream (or an
// in-memory store for local experiments).
package main

import (
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"strings"

	"github.com/spf13/cobra"
)

const (
	Version   = "0.1.0"
	BuildTime = "dev"
	appName   = "vstore"
)

func main() {
	// Add panic recovery
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			_, _ = fmt.Fprintf(os.Stderr, "PANIC: %v\nStack trace:\n%s\n", r, string(buf[:n]))
			os.Exit(2)
		}
	}()

	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	opts := &appOptions{}

	cmd := &cobra.Command{
		Use:   "vstore",
		Short: "Commerce transaction core",
		Long: `Vstore is the transaction core of a storefront: cart, promotions,
totals, payment validation and the order ledger.

State lives in a NATS JetStream key-value bucket so every command
operates on the same durable records. Pass --memory to run against a
throwaway in-process store instead.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			configureLogging(opts.logLevel)
		},
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "Config file path (YAML)")
	cmd.PersistentFlags().BoolVar(&opts.memory, "memory", false, "Use an in-process store instead of NATS")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")

	cmd.AddCommand(
		cartCmd(opts),
		promoCmd(opts),
		quoteCmd(opts),
		checkoutCmd(opts),
		ordersCmd(opts),
		exportCmd(opts),
		configCmd(opts),
	)

	// Version command
	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("%s version %s (build: %s)\n", appName, Version, BuildTime)
		},
	})

	return cmd
}

func configureLogging(logLevel string) {
	level := slog.LevelWarn
	switch strings.ToLower(logLevel) {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "error":
		level = slog.LevelError
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
}
