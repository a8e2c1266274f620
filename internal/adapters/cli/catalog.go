package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/burningsea/craftcalc/internal/adapters/loader"
	"github.com/burningsea/craftcalc/internal/application/crafting/queries"
	"github.com/burningsea/craftcalc/internal/application/crafting/services"
	"github.com/burningsea/craftcalc/internal/domain/crafting"
)

// NewCatalogCommand creates the catalog command with subcommands
func NewCatalogCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Inspect the loaded recipe catalog",
		Long: `Inspect the recipe catalog without resolving anything.

Examples:
  craftcalc catalog list
  craftcalc catalog list --building Sawmill
  craftcalc catalog list --name plank
  craftcalc catalog show oak_planks
  craftcalc catalog stats`,
	}

	cmd.AddCommand(newCatalogListCommand())
	cmd.AddCommand(newCatalogShowCommand())
	cmd.AddCommand(newCatalogStatsCommand())

	return cmd
}

// newCatalogListCommand creates the catalog list subcommand
func newCatalogListCommand() *cobra.Command {
	var building string
	var name string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recipes in the catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newAppContext()
			if err != nil {
				return err
			}

			result, err := app.mediator.Send(context.Background(), &queries.ListRecipesQuery{
				Building:     building,
				NameContains: name,
			})
			if err != nil {
				return err
			}
			resp := result.(*queries.ListRecipesResponse)

			if app.cfg.Output.Format == "json" {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(resp)
			}

			fmt.Printf("%-35s %-10s %-8s %s\n", "RECIPE", "LABOUR", "GOLD", "BUILDINGS")
			for _, r := range resp.Recipes {
				buildings := "(none)"
				if len(r.Buildings) > 0 {
					buildings = r.Buildings[0]
					if len(r.Buildings) > 1 {
						buildings = fmt.Sprintf("%s (+%d)", r.Buildings[0], len(r.Buildings)-1)
					}
				}
				fmt.Printf("%-35s %-10s %-8d %s\n",
					r.ID, formatLabour(r.Cost.Labour), r.Cost.Gold, buildings)
			}
			fmt.Printf("\n%d recipes\n", resp.Total)
			return nil
		},
	}

	cmd.Flags().StringVar(&building, "building", "", "Only recipes producible at this building")
	cmd.Flags().StringVar(&name, "name", "", "Only recipes whose ID contains this substring")

	return cmd
}

// newCatalogShowCommand creates the catalog show subcommand
func newCatalogShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <recipe-id>",
		Short: "Show one recipe in full",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newAppContext()
			if err != nil {
				return err
			}

			result, err := app.mediator.Send(context.Background(), &queries.GetRecipeQuery{
				RecipeID: args[0],
			})
			if err != nil {
				return err
			}
			resp := result.(*queries.GetRecipeResponse)

			if app.cfg.Output.Format == "json" {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(resp)
			}

			r := resp.Recipe
			fmt.Printf("Recipe: %s\n", r.ID)
			fmt.Printf("  Products:    %s\n", formatItems(r.Products))
			fmt.Printf("  Ingredients: %s\n", formatItems(r.Ingredients))
			if len(r.Buildings) > 0 {
				fmt.Printf("  Buildings:   %v\n", r.Buildings)
			} else {
				fmt.Printf("  Buildings:   (none listed)\n")
			}
			fmt.Printf("  Cost:        %s, %d gold\n", formatLabour(r.Cost.Labour), r.Cost.Gold)
			if len(resp.Alternatives) > 0 {
				fmt.Printf("  Alternative producers of %s: %v\n", r.Products[0].Name, resp.Alternatives)
			}
			return nil
		},
	}
}

// newCatalogStatsCommand creates the catalog stats subcommand
func newCatalogStatsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show catalog totals by building",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newAppContext()
			if err != nil {
				return err
			}

			summary := loader.Summarize(app.catalog)
			cycles := findCycles(app.catalog)

			if app.cfg.Output.Format == "json" {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(struct {
					loader.CatalogSummary
					Cycles []string `json:"cycles,omitempty"`
				}{summary, cycles})
			}

			fmt.Printf("Catalog version: %s\n", app.catalog.Version())
			fmt.Printf("Total recipes:   %d\n", summary.TotalRecipes)
			fmt.Printf("Raw recipes:     %d\n", summary.RawRecipes)
			fmt.Printf("No building:     %d\n", summary.Unbuildable)
			fmt.Println("\nRecipes by building:")

			names := make([]string, 0, len(summary.RecipesByBuilding))
			for name := range summary.RecipesByBuilding {
				names = append(names, name)
			}
			sort.Strings(names)
			for _, name := range names {
				fmt.Printf("  %-30s %d\n", name, summary.RecipesByBuilding[name])
			}

			if len(cycles) > 0 {
				fmt.Println("\nCyclic production chains:")
				for _, cycle := range cycles {
					fmt.Printf("  %s\n", cycle)
				}
			}
			return nil
		},
	}
}

// findCycles runs the strict acyclicity check from every recipe and renders
// each offending chain once, keyed by the recipe that closes it.
func findCycles(catalog *crafting.Catalog) []string {
	resolver := services.NewDependencyResolver(catalog, crafting.BuildIndex(catalog))

	seen := make(map[string]bool)
	var cycles []string
	for _, id := range catalog.IDs() {
		var circular *crafting.ErrCircularDependency
		if err := resolver.VerifyAcyclic(id); errors.As(err, &circular) {
			if seen[circular.RecipeID] {
				continue
			}
			seen[circular.RecipeID] = true
			cycles = append(cycles, strings.Join(circular.Chain, " -> "))
		}
	}
	return cycles
}
