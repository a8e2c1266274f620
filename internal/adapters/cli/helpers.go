package cli

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/burningsea/craftcalc/internal/adapters/loader"
	"github.com/burningsea/craftcalc/internal/application/common"
	"github.com/burningsea/craftcalc/internal/application/crafting/queries"
	"github.com/burningsea/craftcalc/internal/application/crafting/services"
	"github.com/burningsea/craftcalc/internal/domain/crafting"
	"github.com/burningsea/craftcalc/internal/infrastructure/config"
)

// appContext wires the pieces every command needs: config, loaded catalog,
// and the mediator all queries dispatch through.
type appContext struct {
	cfg      *config.Config
	catalog  *crafting.Catalog
	mediator common.Mediator
}

// newAppContext loads config and catalog, honoring the global flag
// overrides, then registers every query handler with a fresh mediator.
// Priority: CLI flags > env/config file > defaults.
func newAppContext() (*appContext, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}
	if catalogPath != "" {
		cfg.Catalog.Path = catalogPath
	}
	if outputFormat != "" {
		cfg.Output.Format = outputFormat
	}
	if cfg.Output.Format != "text" && cfg.Output.Format != "json" {
		return nil, fmt.Errorf("unknown output format %q: use text or json", cfg.Output.Format)
	}

	catalog, err := loader.NewCatalogLoader(cfg.Catalog.Path).Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	var cache *services.ResolutionCache
	if cfg.Cache.Enabled {
		cache = services.NewResolutionCache(cfg.Cache.TTL)
	}

	mediator := common.NewMediator()
	if err := queries.RegisterHandlers(mediator, catalog, cache); err != nil {
		return nil, fmt.Errorf("failed to register query handlers: %w", err)
	}

	return &appContext{cfg: cfg, catalog: catalog, mediator: mediator}, nil
}

// formatLabour renders a labour time as "3h 25m".
func formatLabour(l crafting.LabourTime) string {
	return fmt.Sprintf("%dh %02dm", l.Hours, l.Minutes)
}

// printTree renders the dependency tree with box-drawing indentation.
func printTree(node *crafting.DependencyNode, prefix string, last bool) {
	connector := "├── "
	childPrefix := prefix + "│   "
	if prefix == "" {
		connector = ""
		childPrefix = ""
	} else if last {
		connector = "└── "
		childPrefix = prefix + "    "
	}

	if node.Circular {
		fmt.Printf("%s%s%s (circular - not expanded)\n", prefix, connector, node.Recipe.ID)
		return
	}

	fmt.Printf("%s%s%s x%d  [%s, %dg]\n",
		prefix, connector, node.Recipe.ID, node.Multiplier,
		formatLabour(node.TotalCost.Labour), node.TotalCost.Gold)

	for _, missing := range node.MissingIngredients {
		fmt.Printf("%s│   !! %s x%d (must source - no recipe)\n", prefix, missing.Name, missing.Quantity)
	}

	order := dependencyOrder(node)
	for i, name := range order {
		edge := node.Dependencies[name]
		printTree(edge.Child, childPrefix, i == len(order)-1)
	}
}

// dependencyOrder returns a node's dependency names in recipe ingredient
// order so the rendered tree is stable.
func dependencyOrder(node *crafting.DependencyNode) []string {
	var names []string
	for _, ing := range node.Recipe.Ingredients {
		if _, ok := node.Dependencies[ing.Name]; ok {
			names = append(names, ing.Name)
		}
	}
	return names
}

// printResolution renders a full production plan in text form.
func printResolution(resp *queries.ResolveProductionResponse, elapsed time.Duration) {
	fmt.Println("Dependency Tree")
	fmt.Println("===============")
	printTree(resp.Tree, "", true)

	fmt.Println("\nExecution Order")
	fmt.Println("===============")
	if len(resp.ExecutionOrder) == 0 {
		fmt.Println("(raw recipe - craft directly, nothing to stage)")
	} else {
		for i, node := range resp.ExecutionOrder {
			fmt.Printf("%2d. %s x%d\n", i+1, node.Recipe.ID, node.Multiplier)
		}
	}

	fmt.Println("\nTotal Cost")
	fmt.Println("==========")
	fmt.Printf("  Steps:  %d\n", resp.Cost.Steps)
	fmt.Printf("  Labour: %s\n", formatLabour(resp.Cost.Labour))
	fmt.Printf("  Gold:   %d\n", resp.Cost.Gold)

	fmt.Println("\nMaterials")
	fmt.Println("=========")
	if len(resp.Materials.Craftable) > 0 {
		fmt.Println("  Craftable (base recipes):")
		for _, name := range sortedKeys(resp.Materials.Craftable) {
			fmt.Printf("    %-30s x%d\n", name, resp.Materials.Craftable[name])
		}
	}
	if len(resp.Materials.MustSource) > 0 {
		fmt.Println("  Must source (no producing recipe):")
		for _, name := range sortedKeys(resp.Materials.MustSource) {
			fmt.Printf("    %-30s x%d\n", name, resp.Materials.MustSource[name])
		}
	}
	if len(resp.Materials.Craftable) == 0 && len(resp.Materials.MustSource) == 0 {
		fmt.Println("  (none)")
	}

	fmt.Println("\nBuilding Utilization")
	fmt.Println("====================")
	if len(resp.Buildings.Buildings) == 0 {
		fmt.Println("  (no buildings listed)")
	} else {
		names := make([]string, 0, len(resp.Buildings.Buildings))
		for name := range resp.Buildings.Buildings {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			stats := resp.Buildings.Buildings[name]
			fmt.Printf("  %s\n", name)
			fmt.Printf("    Recipes: %d  Labour: %s  Gold: %d\n",
				stats.Recipes, formatLabour(stats.Labour), stats.Gold)
			fmt.Printf("    Gold/hour: %.1f  Recipes/hour: %.2f\n",
				stats.GoldPerHour, stats.RecipesPerHour)
		}
	}

	fmt.Printf("\n%s (resolved in %s)\n", resp.ResolutionID, elapsed.Round(time.Millisecond))
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// formatItems renders an item list as "2x Oak Log, 1x Iron Ingot".
func formatItems(items []crafting.Item) string {
	if len(items) == 0 {
		return "(none)"
	}
	parts := make([]string, len(items))
	for i, item := range items {
		parts[i] = fmt.Sprintf("%dx %s", item.Quantity, item.Name)
	}
	return strings.Join(parts, ", ")
}
