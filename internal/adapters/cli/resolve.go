package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/burningsea/craftcalc/internal/application/crafting/queries"
	"github.com/burningsea/craftcalc/internal/domain/crafting"
)

// NewResolveCommand creates the resolve command
func NewResolveCommand() *cobra.Command {
	var quantity int

	cmd := &cobra.Command{
		Use:   "resolve <recipe-id>",
		Short: "Resolve a recipe into its full production plan",
		Long: `Resolve expands a recipe into everything needed to produce it from raw
materials: every ingredient is expanded into the recipe that produces it,
recursively, until reaching ingredients with no known recipe.

Output includes the dependency tree, a dependency-respecting execution
order, total cost, raw material requirements, and building utilization.

Ingredients without a producing recipe are listed as must-source materials;
cyclic recipe chains are marked circular instead of failing the resolution.

Examples:
  craftcalc resolve oak_planks
  craftcalc resolve small_hull --quantity 5
  craftcalc resolve small_hull -o json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newAppContext()
			if err != nil {
				return err
			}

			if quantity < 1 {
				quantity = app.cfg.Catalog.DefaultQuantity
			}

			start := time.Now()
			result, err := app.mediator.Send(context.Background(), &queries.ResolveProductionQuery{
				RecipeID: args[0],
				Quantity: quantity,
			})
			if err != nil {
				var unknown *crafting.ErrUnknownRecipe
				if errors.As(err, &unknown) {
					return fmt.Errorf("recipe %q not found in catalog (%d recipes loaded)",
						unknown.ID, app.catalog.Len())
				}
				return err
			}
			elapsed := time.Since(start)

			resp := result.(*queries.ResolveProductionResponse)
			if app.cfg.Output.Format == "json" {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(resp)
			}

			printResolution(resp, elapsed)
			return nil
		},
	}

	cmd.Flags().IntVarP(&quantity, "quantity", "q", 0,
		"Desired units of the recipe's primary product (default: config catalog.default_quantity)")

	return cmd
}
