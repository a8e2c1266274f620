package steps

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/cucumber/godog"

	"github.com/burningsea/craftcalc/internal/application/crafting/queries"
	"github.com/burningsea/craftcalc/internal/domain/crafting"
)

type resolverContext struct {
	catalog  *crafting.Catalog
	response *queries.ResolveProductionResponse
	err      error
}

func (ctx *resolverContext) reset() {
	ctx.catalog = nil
	ctx.response = nil
	ctx.err = nil
}

// ============================================================================
// Setup Steps
// ============================================================================

// parseItems parses "2x Log, 1x Iron Ingot" into items. Empty means none.
func parseItems(cell string) ([]crafting.Item, error) {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return nil, nil
	}

	var items []crafting.Item
	for _, part := range strings.Split(cell, ",") {
		part = strings.TrimSpace(part)
		qtyName := strings.SplitN(part, "x ", 2)
		if len(qtyName) != 2 {
			return nil, fmt.Errorf("malformed item %q (want \"<qty>x <name>\")", part)
		}
		qty, err := strconv.Atoi(strings.TrimSpace(qtyName[0]))
		if err != nil {
			return nil, fmt.Errorf("malformed quantity in %q: %w", part, err)
		}
		items = append(items, crafting.Item{Name: strings.TrimSpace(qtyName[1]), Quantity: qty})
	}
	return items, nil
}

// parseLabour parses "6h40m" into a labour time.
func parseLabour(cell string) (crafting.LabourTime, error) {
	cell = strings.TrimSpace(cell)
	var hours, minutes int
	if _, err := fmt.Sscanf(cell, "%dh%dm", &hours, &minutes); err != nil {
		return crafting.LabourTime{}, fmt.Errorf("malformed labour %q (want \"<h>h<m>m\"): %w", cell, err)
	}
	return crafting.LabourTime{Hours: hours, Minutes: minutes}, nil
}

func (ctx *resolverContext) aCatalogWithRecipes(table *godog.Table) error {
	catalog := crafting.NewCatalog("bdd")
	for i, row := range table.Rows {
		if i == 0 {
			continue // Skip header
		}

		products, err := parseItems(row.Cells[1].Value)
		if err != nil {
			return err
		}
		ingredients, err := parseItems(row.Cells[2].Value)
		if err != nil {
			return err
		}
		labour, err := parseLabour(row.Cells[4].Value)
		if err != nil {
			return err
		}
		gold, err := strconv.Atoi(strings.TrimSpace(row.Cells[5].Value))
		if err != nil {
			return err
		}

		var buildings []string
		if b := strings.TrimSpace(row.Cells[3].Value); b != "" {
			for _, name := range strings.Split(b, ",") {
				buildings = append(buildings, strings.TrimSpace(name))
			}
		}

		recipe := &crafting.Recipe{
			ID:          strings.TrimSpace(row.Cells[0].Value),
			Products:    products,
			Ingredients: ingredients,
			Buildings:   buildings,
			Cost:        crafting.Cost{Labour: labour, Gold: gold},
		}
		if err := catalog.Add(recipe); err != nil {
			return err
		}
	}

	ctx.catalog = catalog
	return nil
}

// ============================================================================
// Action Steps
// ============================================================================

func (ctx *resolverContext) iResolveForUnits(recipeID string, units int) error {
	handler := queries.NewResolveProductionHandler(ctx.catalog, nil)
	result, err := handler.Handle(context.Background(), &queries.ResolveProductionQuery{
		RecipeID: recipeID,
		Quantity: units,
	})
	if err != nil {
		ctx.err = err
		return nil
	}
	ctx.response = result.(*queries.ResolveProductionResponse)
	return nil
}

// ============================================================================
// Assertion Steps
// ============================================================================

func (ctx *resolverContext) theResolutionShouldSucceed() error {
	if ctx.err != nil {
		return fmt.Errorf("expected success, got error: %v", ctx.err)
	}
	if ctx.response == nil {
		return fmt.Errorf("no resolution response recorded")
	}
	return nil
}

func (ctx *resolverContext) theResolutionShouldFailWithUnknownRecipe(id string) error {
	if ctx.err == nil {
		return fmt.Errorf("expected resolution to fail, but it succeeded")
	}
	var unknown *crafting.ErrUnknownRecipe
	if !errors.As(ctx.err, &unknown) {
		return fmt.Errorf("expected ErrUnknownRecipe, got: %v", ctx.err)
	}
	if unknown.ID != id {
		return fmt.Errorf("expected unknown recipe %q, got %q", id, unknown.ID)
	}
	return nil
}

func (ctx *resolverContext) theExecutionOrderShouldBe(expected string) error {
	if err := ctx.theResolutionShouldSucceed(); err != nil {
		return err
	}
	var ids []string
	for _, node := range ctx.response.ExecutionOrder {
		ids = append(ids, node.Recipe.ID)
	}
	got := strings.Join(ids, ", ")
	if got != expected {
		return fmt.Errorf("expected execution order %q, got %q", expected, got)
	}
	return nil
}

func (ctx *resolverContext) theExecutionOrderShouldBeEmpty() error {
	if err := ctx.theResolutionShouldSucceed(); err != nil {
		return err
	}
	if len(ctx.response.ExecutionOrder) != 0 {
		return fmt.Errorf("expected empty execution order, got %d steps", len(ctx.response.ExecutionOrder))
	}
	return nil
}

func (ctx *resolverContext) theRootMultiplierShouldBe(expected int) error {
	if err := ctx.theResolutionShouldSucceed(); err != nil {
		return err
	}
	if ctx.response.Tree.Multiplier != expected {
		return fmt.Errorf("expected root multiplier %d, got %d", expected, ctx.response.Tree.Multiplier)
	}
	return nil
}

func (ctx *resolverContext) theMultiplierForShouldBe(recipeID string, expected int) error {
	if err := ctx.theResolutionShouldSucceed(); err != nil {
		return err
	}
	for _, node := range ctx.response.Tree.FlattenToList() {
		if node.Recipe.ID == recipeID {
			if node.Multiplier != expected {
				return fmt.Errorf("expected multiplier %d for %s, got %d", expected, recipeID, node.Multiplier)
			}
			return nil
		}
	}
	return fmt.Errorf("recipe %s not found in resolved tree", recipeID)
}

func (ctx *resolverContext) theTotalGoldShouldBe(expected int) error {
	if err := ctx.theResolutionShouldSucceed(); err != nil {
		return err
	}
	if ctx.response.Cost.Gold != expected {
		return fmt.Errorf("expected total gold %d, got %d", expected, ctx.response.Cost.Gold)
	}
	return nil
}

func (ctx *resolverContext) theTotalLabourShouldBe(expected string) error {
	if err := ctx.theResolutionShouldSucceed(); err != nil {
		return err
	}
	want, err := parseLabour(expected)
	if err != nil {
		return err
	}
	got := ctx.response.Cost.Labour
	if got != want {
		return fmt.Errorf("expected labour %dh%02dm, got %dh%02dm",
			want.Hours, want.Minutes, got.Hours, got.Minutes)
	}
	return nil
}

func (ctx *resolverContext) theStepCountShouldBe(expected int) error {
	if err := ctx.theResolutionShouldSucceed(); err != nil {
		return err
	}
	if ctx.response.Cost.Steps != expected {
		return fmt.Errorf("expected %d steps, got %d", expected, ctx.response.Cost.Steps)
	}
	return nil
}

func (ctx *resolverContext) theCraftableMaterialsShouldInclude(quantity int, name string) error {
	if err := ctx.theResolutionShouldSucceed(); err != nil {
		return err
	}
	got, ok := ctx.response.Materials.Craftable[name]
	if !ok {
		return fmt.Errorf("%s not in craftable materials: %v", name, ctx.response.Materials.Craftable)
	}
	if got != quantity {
		return fmt.Errorf("expected %d craftable %s, got %d", quantity, name, got)
	}
	return nil
}

func (ctx *resolverContext) theMustSourceMaterialsShouldInclude(quantity int, name string) error {
	if err := ctx.theResolutionShouldSucceed(); err != nil {
		return err
	}
	got, ok := ctx.response.Materials.MustSource[name]
	if !ok {
		return fmt.Errorf("%s not in must-source materials: %v", name, ctx.response.Materials.MustSource)
	}
	if got != quantity {
		return fmt.Errorf("expected %d must-source %s, got %d", quantity, name, got)
	}
	return nil
}

func (ctx *resolverContext) theTreeShouldContainACircularMarkerFor(recipeID string) error {
	if err := ctx.theResolutionShouldSucceed(); err != nil {
		return err
	}
	if findCircular(ctx.response.Tree, recipeID, make(map[string]bool)) {
		return nil
	}
	return fmt.Errorf("no circular marker for %s in tree", recipeID)
}

func findCircular(node *crafting.DependencyNode, recipeID string, seen map[string]bool) bool {
	if node.Circular {
		return node.Recipe.ID == recipeID
	}
	if seen[node.Recipe.ID] {
		return false
	}
	seen[node.Recipe.ID] = true
	for _, edge := range node.Dependencies {
		if findCircular(edge.Child, recipeID, seen) {
			return true
		}
	}
	return false
}

// InitializeResolverScenario registers the resolver step definitions
func InitializeResolverScenario(sc *godog.ScenarioContext) {
	ctx := &resolverContext{}

	sc.Before(func(c context.Context, sc *godog.Scenario) (context.Context, error) {
		ctx.reset()
		return c, nil
	})

	sc.Step(`^a catalog with recipes:$`, ctx.aCatalogWithRecipes)
	sc.Step(`^I resolve "([^"]*)" for (\d+) units$`, ctx.iResolveForUnits)
	sc.Step(`^the resolution should succeed$`, ctx.theResolutionShouldSucceed)
	sc.Step(`^the resolution should fail with unknown recipe "([^"]*)"$`, ctx.theResolutionShouldFailWithUnknownRecipe)
	sc.Step(`^the execution order should be "([^"]*)"$`, ctx.theExecutionOrderShouldBe)
	sc.Step(`^the execution order should be empty$`, ctx.theExecutionOrderShouldBeEmpty)
	sc.Step(`^the root multiplier should be (\d+)$`, ctx.theRootMultiplierShouldBe)
	sc.Step(`^the multiplier for "([^"]*)" should be (\d+)$`, ctx.theMultiplierForShouldBe)
	sc.Step(`^the total gold should be (\d+)$`, ctx.theTotalGoldShouldBe)
	sc.Step(`^the total labour should be "([^"]*)"$`, ctx.theTotalLabourShouldBe)
	sc.Step(`^the step count should be (\d+)$`, ctx.theStepCountShouldBe)
	sc.Step(`^the craftable materials should include (\d+) "([^"]*)"$`, ctx.theCraftableMaterialsShouldInclude)
	sc.Step(`^the must-source materials should include (\d+) "([^"]*)"$`, ctx.theMustSourceMaterialsShouldInclude)
	sc.Step(`^the tree should contain a circular marker for "([^"]*)"$`, ctx.theTreeShouldContainACircularMarkerFor)
}
