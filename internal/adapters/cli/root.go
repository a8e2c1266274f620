package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	configPath   string
	catalogPath  string
	outputFormat string
)

// NewRootCommand creates the root command for the CLI
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "craftcalc",
		Short: "craftcalc - Crafting economy calculator for Pirates of the Burning Sea",
		Long: `craftcalc resolves a production recipe into everything needed to craft it
from raw materials: the full dependency tree, a valid production order, total
labour and gold cost, raw material requirements, and building utilization.

Examples:
  craftcalc resolve oak_planks
  craftcalc resolve small_hull --quantity 5 --output json
  craftcalc catalog list --building Sawmill
  craftcalc catalog show oak_log
  craftcalc catalog stats`,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Path to config file (default: search ./config.yaml, ./configs, /etc/craftcalc)")
	rootCmd.PersistentFlags().StringVar(&catalogPath, "catalog", "",
		"Recipe directory (overrides catalog.path from config)")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "",
		"Output format: text or json (overrides output.format from config)")

	// Add command groups
	rootCmd.AddCommand(NewResolveCommand())
	rootCmd.AddCommand(NewCatalogCommand())
	rootCmd.AddCommand(NewConfigCommand())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
