package crafting_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/burningsea/craftcalc/internal/domain/crafting"
)

func buildTestCatalog(t *testing.T, recipes ...*crafting.Recipe) *crafting.Catalog {
	t.Helper()
	catalog := crafting.NewCatalog("test")
	for _, r := range recipes {
		require.NoError(t, catalog.Add(r))
	}
	return catalog
}

func TestBuildIndex_MapsProductsToProducers(t *testing.T) {
	catalog := buildTestCatalog(t,
		&crafting.Recipe{ID: "Oak_Log", Products: []crafting.Item{{Name: "Oak Log", Quantity: 1}}},
		&crafting.Recipe{ID: "Oak_Plank", Products: []crafting.Item{{Name: "Oak Plank", Quantity: 2}}},
	)

	index := crafting.BuildIndex(catalog)

	assert.Equal(t, []string{"Oak_Log"}, index.Producers("Oak Log"))
	assert.Equal(t, []string{"Oak_Plank"}, index.Producers("Oak Plank"))
	assert.Nil(t, index.Producers("Iron Ingot"))
}

func TestBuildIndex_PreservesCatalogOrderForTieBreak(t *testing.T) {
	// Two producers of the same good: catalog order decides
	catalog := buildTestCatalog(t,
		&crafting.Recipe{ID: "Cheap_Plank", Products: []crafting.Item{{Name: "Plank", Quantity: 1}}},
		&crafting.Recipe{ID: "Fancy_Plank", Products: []crafting.Item{{Name: "Plank", Quantity: 4}}},
	)

	index := crafting.BuildIndex(catalog)

	assert.Equal(t, []string{"Cheap_Plank", "Fancy_Plank"}, index.Producers("Plank"))

	first, ok := index.FirstProducer("Plank")
	require.True(t, ok)
	assert.Equal(t, "Cheap_Plank", first)
}

func TestBuildIndex_Deterministic(t *testing.T) {
	recipes := []*crafting.Recipe{
		{ID: "R1", Products: []crafting.Item{{Name: "X", Quantity: 1}, {Name: "Y", Quantity: 1}}},
		{ID: "R2", Products: []crafting.Item{{Name: "Y", Quantity: 1}}},
		{ID: "R3", Products: []crafting.Item{{Name: "X", Quantity: 2}}},
	}

	a := crafting.BuildIndex(buildTestCatalog(t, recipes...))
	b := crafting.BuildIndex(buildTestCatalog(t, recipes...))

	assert.Equal(t, a.Producers("X"), b.Producers("X"))
	assert.Equal(t, a.Producers("Y"), b.Producers("Y"))
	assert.Equal(t, []string{"R1", "R3"}, a.Producers("X"))
}

func TestFirstProducer_MissingGood(t *testing.T) {
	index := crafting.BuildIndex(buildTestCatalog(t))

	_, ok := index.FirstProducer("Unobtanium")
	assert.False(t, ok)
}

func TestBuildIndex_RecipeWithoutProductsContributesNothing(t *testing.T) {
	catalog := buildTestCatalog(t,
		&crafting.Recipe{ID: "Degenerate"},
		&crafting.Recipe{ID: "Oak_Log", Products: []crafting.Item{{Name: "Oak Log", Quantity: 1}}},
	)

	index := crafting.BuildIndex(catalog)

	assert.Equal(t, []string{"Oak_Log"}, index.Producers("Oak Log"))
}
