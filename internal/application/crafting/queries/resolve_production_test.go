package queries_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/burningsea/craftcalc/internal/application/common"
	"github.com/burningsea/craftcalc/internal/application/crafting/queries"
	"github.com/burningsea/craftcalc/internal/application/crafting/services"
	"github.com/burningsea/craftcalc/internal/domain/crafting"
)

func testCatalog(t *testing.T) *crafting.Catalog {
	t.Helper()
	catalog := crafting.NewCatalog("v1")
	recipes := []*crafting.Recipe{
		{
			ID:          "Plank",
			Products:    []crafting.Item{{Name: "Plank", Quantity: 1}},
			Ingredients: []crafting.Item{{Name: "Log", Quantity: 2}},
			Buildings:   []string{"Sawmill"},
			Cost:        crafting.Cost{Labour: crafting.LabourTime{Hours: 1}, Gold: 50},
		},
		{
			ID:        "Log",
			Products:  []crafting.Item{{Name: "Log", Quantity: 1}},
			Buildings: []string{"Logging Camp"},
			Cost:      crafting.Cost{Labour: crafting.LabourTime{Minutes: 10}, Gold: 5},
		},
	}
	for _, r := range recipes {
		require.NoError(t, catalog.Add(r))
	}
	return catalog
}

func TestResolveProductionHandler_FullPlan(t *testing.T) {
	handler := queries.NewResolveProductionHandler(testCatalog(t), nil)

	result, err := handler.Handle(context.Background(), &queries.ResolveProductionQuery{
		RecipeID: "Plank",
		Quantity: 5,
	})
	require.NoError(t, err)

	resp, ok := result.(*queries.ResolveProductionResponse)
	require.True(t, ok)

	assert.True(t, strings.HasPrefix(resp.ResolutionID, "resolution-"))
	require.NotNil(t, resp.Tree)
	assert.Equal(t, 5, resp.Tree.Multiplier)

	require.Len(t, resp.ExecutionOrder, 2)
	assert.Equal(t, "Log", resp.ExecutionOrder[0].Recipe.ID)
	assert.Equal(t, "Plank", resp.ExecutionOrder[1].Recipe.ID)

	assert.Equal(t, 300, resp.Cost.Gold)
	assert.Equal(t, map[string]int{"Log": 10}, resp.Materials.Craftable)
	assert.Contains(t, resp.Buildings.Buildings, "Sawmill")
	assert.Contains(t, resp.Buildings.Buildings, "Logging Camp")
}

func TestResolveProductionHandler_UnknownRoot(t *testing.T) {
	handler := queries.NewResolveProductionHandler(testCatalog(t), nil)

	_, err := handler.Handle(context.Background(), &queries.ResolveProductionQuery{
		RecipeID: "Ghost",
	})

	var unknown *crafting.ErrUnknownRecipe
	require.ErrorAs(t, err, &unknown)
}

func TestResolveProductionHandler_RejectsWrongRequestType(t *testing.T) {
	handler := queries.NewResolveProductionHandler(testCatalog(t), nil)

	_, err := handler.Handle(context.Background(), &queries.GetRecipeQuery{RecipeID: "Plank"})
	assert.Error(t, err)
}

func TestResolveProductionHandler_UsesCache(t *testing.T) {
	cache := services.NewResolutionCache(time.Minute)
	handler := queries.NewResolveProductionHandler(testCatalog(t), cache)

	first, err := handler.Handle(context.Background(), &queries.ResolveProductionQuery{RecipeID: "Plank", Quantity: 5})
	require.NoError(t, err)
	second, err := handler.Handle(context.Background(), &queries.ResolveProductionQuery{RecipeID: "Plank", Quantity: 5})
	require.NoError(t, err)

	// Same tree instance, distinct resolution IDs
	assert.Same(t,
		first.(*queries.ResolveProductionResponse).Tree,
		second.(*queries.ResolveProductionResponse).Tree)
	assert.NotEqual(t,
		first.(*queries.ResolveProductionResponse).ResolutionID,
		second.(*queries.ResolveProductionResponse).ResolutionID)
}

func TestResolveProduction_DispatchesThroughMediator(t *testing.T) {
	m := common.NewMediator()
	require.NoError(t, common.RegisterHandler[*queries.ResolveProductionQuery](
		m, queries.NewResolveProductionHandler(testCatalog(t), nil)))

	result, err := m.Send(context.Background(), &queries.ResolveProductionQuery{RecipeID: "Log"})
	require.NoError(t, err)

	resp := result.(*queries.ResolveProductionResponse)
	assert.Empty(t, resp.ExecutionOrder)
	assert.Equal(t, 1, resp.Cost.Steps)
	assert.Equal(t, 5, resp.Cost.Gold)
}

func TestRegisterHandlers_WiresEveryQuery(t *testing.T) {
	m := common.NewMediator()
	require.NoError(t, queries.RegisterHandlers(m, testCatalog(t), nil))

	result, err := m.Send(context.Background(), &queries.ResolveProductionQuery{RecipeID: "Plank", Quantity: 5})
	require.NoError(t, err)
	assert.Equal(t, 5, result.(*queries.ResolveProductionResponse).Tree.Multiplier)

	result, err = m.Send(context.Background(), &queries.GetRecipeQuery{RecipeID: "Log"})
	require.NoError(t, err)
	assert.Equal(t, "Log", result.(*queries.GetRecipeResponse).Recipe.ID)

	result, err = m.Send(context.Background(), &queries.ListRecipesQuery{})
	require.NoError(t, err)
	assert.Equal(t, 2, result.(*queries.ListRecipesResponse).Total)

	// Re-registering the same query types on one mediator must fail.
	assert.Error(t, queries.RegisterHandlers(m, testCatalog(t), nil))
}

func TestGetRecipeHandler_ReturnsAlternatives(t *testing.T) {
	catalog := crafting.NewCatalog("v1")
	require.NoError(t, catalog.Add(&crafting.Recipe{
		ID:       "Rough_Plank",
		Products: []crafting.Item{{Name: "Plank", Quantity: 1}},
	}))
	require.NoError(t, catalog.Add(&crafting.Recipe{
		ID:       "Bulk_Plank",
		Products: []crafting.Item{{Name: "Plank", Quantity: 10}},
	}))

	handler := queries.NewGetRecipeHandler(catalog)
	result, err := handler.Handle(context.Background(), &queries.GetRecipeQuery{RecipeID: "Rough_Plank"})
	require.NoError(t, err)

	resp := result.(*queries.GetRecipeResponse)
	assert.Equal(t, []string{"Bulk_Plank"}, resp.Alternatives)
}

func TestListRecipesHandler_Filters(t *testing.T) {
	handler := queries.NewListRecipesHandler(testCatalog(t))

	result, err := handler.Handle(context.Background(), &queries.ListRecipesQuery{Building: "sawmill"})
	require.NoError(t, err)
	resp := result.(*queries.ListRecipesResponse)
	require.Equal(t, 1, resp.Total)
	assert.Equal(t, "Plank", resp.Recipes[0].ID)

	result, err = handler.Handle(context.Background(), &queries.ListRecipesQuery{NameContains: "LOG"})
	require.NoError(t, err)
	resp = result.(*queries.ListRecipesResponse)
	require.Equal(t, 1, resp.Total)
	assert.Equal(t, "Log", resp.Recipes[0].ID)
}
