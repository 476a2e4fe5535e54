package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/c360studio/vstore/config"
)

func configCmd(opts *appOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect and manage configuration",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Create the user config file with defaults",
		RunE: func(cmd *cobra.Command, args []string) error {
			return config.NewLoader(slog.Default()).EnsureUserConfig()
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts.configPath, slog.Default())
			if err != nil {
				return err
			}
			data, err := yaml.Marshal(cfg)
			if err != nil {
				return fmt.Errorf("marshal config: %w", err)
			}
			fmt.Print(string(data))
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "watch",
		Short: "Watch the config file and report pricing-policy reloads",
		Long: `Watch follows the config file on disk and prints each accepted
reload, so a pricing-knob edit can be verified before the next checkout
picks it up. Runs until interrupted.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := opts.configPath
			if path == "" {
				path = config.NewLoader(slog.Default()).ProjectConfigPath()
			}
			if path == "" {
				return fmt.Errorf("no config file to watch; pass --config or create %s", config.ProjectConfigFile)
			}

			w, err := config.NewWatcher(path, slog.Default())
			if err != nil {
				return fmt.Errorf("watch config: %w", err)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			go w.Run(ctx)

			fmt.Printf("Watching %s\n", path)
			for {
				select {
				case <-ctx.Done():
					return nil
				case cfg := <-w.Updates():
					printPricingPolicy(cfg)
				}
			}
		},
	})

	return cmd
}

func printPricingPolicy(cfg *config.Config) {
	fmt.Printf("Reloaded: free shipping over %.2f, fee %.2f, currency %s, page size %d\n",
		cfg.Pricing.FreeShipThreshold, cfg.Pricing.ShippingFee,
		cfg.Pricing.Currency, cfg.Orders.PageSize)
}
