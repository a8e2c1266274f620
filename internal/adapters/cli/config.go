package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/burningsea/craftcalc/internal/infrastructure/config"
)

// NewConfigCommand creates the config command with subcommands
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration settings",
		Long: `Manage craftcalc configuration settings.

Configuration is loaded from multiple sources with priority:
1. Environment variables (CRAFTCALC_* prefix)
2. Config file (config.yaml)
3. Default values

Example:
  craftcalc config show`,
	}

	cmd.AddCommand(newConfigShowCommand())

	return cmd
}

// newConfigShowCommand creates the config show subcommand
func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(configPath)
			if err != nil {
				fmt.Printf("Warning: Failed to load config: %v\n", err)
				fmt.Println("Using default configuration.")
				cfg = config.LoadConfigOrDefault(configPath)
			}

			fmt.Println("craftcalc Configuration")
			fmt.Println("=======================")

			fmt.Println("Catalog:")
			fmt.Printf("  Path:             %s\n", cfg.Catalog.Path)
			fmt.Printf("  Default quantity: %d\n", cfg.Catalog.DefaultQuantity)

			fmt.Println("\nOutput:")
			fmt.Printf("  Format:           %s\n", cfg.Output.Format)

			fmt.Println("\nCache:")
			fmt.Printf("  Enabled:          %t\n", cfg.Cache.Enabled)
			fmt.Printf("  TTL:              %s\n", cfg.Cache.TTL)

			return nil
		},
	}
}
