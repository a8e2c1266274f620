package loader_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/burningsea/craftcalc/internal/adapters/loader"
	"github.com/burningsea/craftcalc/internal/domain/crafting"
)

func writeRecipes(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	return dir
}

func TestLoad_ListShape(t *testing.T) {
	dir := writeRecipes(t, map[string]string{
		"Oak_Plank.json": `{
			"products": [{"name": "Oak Plank", "quantity": 2}],
			"ingredients": [{"name": "Oak Log", "quantity": 3}],
			"buildings": ["Sawmill"],
			"cost": {"labour": {"hours": 1, "minutes": 30}, "gold": 25}
		}`,
	})

	catalog, err := loader.NewCatalogLoader(dir).Load()
	require.NoError(t, err)

	recipe := catalog.Get("Oak_Plank")
	require.NotNil(t, recipe)
	assert.Equal(t, []crafting.Item{{Name: "Oak Plank", Quantity: 2}}, recipe.Products)
	assert.Equal(t, []crafting.Item{{Name: "Oak Log", Quantity: 3}}, recipe.Ingredients)
	assert.Equal(t, []string{"Sawmill"}, recipe.Buildings)
	assert.Equal(t, 1, recipe.Cost.Labour.Hours)
	assert.Equal(t, 30, recipe.Cost.Labour.Minutes)
	assert.Equal(t, 25, recipe.Cost.Gold)
}

func TestLoad_LegacySingleProductShapeNormalizes(t *testing.T) {
	dir := writeRecipes(t, map[string]string{
		"Oak_Log.json": `{
			"product": {"name": "Oak Log", "quantity": 1},
			"ingredients": [],
			"buildings": ["Logging Camp"],
			"cost": {"labour": {"hours": 0, "minutes": 10}, "gold": 5}
		}`,
	})

	catalog, err := loader.NewCatalogLoader(dir).Load()
	require.NoError(t, err)

	recipe := catalog.Get("Oak_Log")
	require.NotNil(t, recipe)
	// Single-product shape normalized to a one-element products list
	assert.Equal(t, []crafting.Item{{Name: "Oak Log", Quantity: 1}}, recipe.Products)
	assert.True(t, recipe.IsRaw())
}

func TestLoad_SortedFilenameOrderFixesTieBreaks(t *testing.T) {
	dir := writeRecipes(t, map[string]string{
		"B_Plank.json": `{"products": [{"name": "Plank", "quantity": 4}], "ingredients": [], "buildings": [], "cost": {"labour": {"hours": 0, "minutes": 0}, "gold": 0}}`,
		"A_Plank.json": `{"products": [{"name": "Plank", "quantity": 1}], "ingredients": [], "buildings": [], "cost": {"labour": {"hours": 0, "minutes": 0}, "gold": 0}}`,
	})

	catalog, err := loader.NewCatalogLoader(dir).Load()
	require.NoError(t, err)

	assert.Equal(t, []string{"A_Plank", "B_Plank"}, catalog.IDs())

	index := crafting.BuildIndex(catalog)
	first, ok := index.FirstProducer("Plank")
	require.True(t, ok)
	assert.Equal(t, "A_Plank", first)
}

func TestLoad_SkipsMalformedFilesAndKeepsRest(t *testing.T) {
	dir := writeRecipes(t, map[string]string{
		"Good.json":       `{"products": [{"name": "Good", "quantity": 1}], "ingredients": [], "buildings": [], "cost": {"labour": {"hours": 0, "minutes": 0}, "gold": 0}}`,
		"Broken.json":     `{not json`,
		"BadMinutes.json": `{"products": [{"name": "X", "quantity": 1}], "ingredients": [], "buildings": [], "cost": {"labour": {"hours": 0, "minutes": 75}, "gold": 0}}`,
		"BadQty.json":     `{"products": [{"name": "Y", "quantity": 0}], "ingredients": [], "buildings": [], "cost": {"labour": {"hours": 0, "minutes": 0}, "gold": 0}}`,
	})

	catalog, err := loader.NewCatalogLoader(dir).Load()
	require.NoError(t, err)

	assert.Equal(t, 1, catalog.Len())
	assert.True(t, catalog.Has("Good"))
}

func TestLoad_IgnoresIndexFile(t *testing.T) {
	dir := writeRecipes(t, map[string]string{
		"index.json": `{"totalRecipes": 999}`,
		"Only.json":  `{"products": [{"name": "Only", "quantity": 1}], "ingredients": [], "buildings": [], "cost": {"labour": {"hours": 0, "minutes": 0}, "gold": 0}}`,
	})

	catalog, err := loader.NewCatalogLoader(dir).Load()
	require.NoError(t, err)
	assert.Equal(t, 1, catalog.Len())
}

func TestLoad_EmptyDirectoryFails(t *testing.T) {
	_, err := loader.NewCatalogLoader(t.TempDir()).Load()
	assert.Error(t, err)
}

func TestLoad_VersionTracksContent(t *testing.T) {
	files := map[string]string{
		"A.json": `{"products": [{"name": "A", "quantity": 1}], "ingredients": [], "buildings": [], "cost": {"labour": {"hours": 0, "minutes": 0}, "gold": 1}}`,
	}

	first, err := loader.NewCatalogLoader(writeRecipes(t, files)).Load()
	require.NoError(t, err)
	same, err := loader.NewCatalogLoader(writeRecipes(t, files)).Load()
	require.NoError(t, err)

	files["A.json"] = `{"products": [{"name": "A", "quantity": 1}], "ingredients": [], "buildings": [], "cost": {"labour": {"hours": 0, "minutes": 0}, "gold": 2}}`
	changed, err := loader.NewCatalogLoader(writeRecipes(t, files)).Load()
	require.NoError(t, err)

	assert.Equal(t, first.Version(), same.Version())
	assert.NotEqual(t, first.Version(), changed.Version())
}

func TestSummarize_CountsByBuilding(t *testing.T) {
	dir := writeRecipes(t, map[string]string{
		"Plank.json": `{"products": [{"name": "Plank", "quantity": 1}], "ingredients": [{"name": "Log", "quantity": 2}], "buildings": ["Sawmill"], "cost": {"labour": {"hours": 1, "minutes": 0}, "gold": 10}}`,
		"Log.json":   `{"products": [{"name": "Log", "quantity": 1}], "ingredients": [], "buildings": ["Logging Camp"], "cost": {"labour": {"hours": 0, "minutes": 10}, "gold": 1}}`,
		"Odd.json":   `{"products": [{"name": "Odd", "quantity": 1}], "ingredients": [], "buildings": [], "cost": {"labour": {"hours": 0, "minutes": 0}, "gold": 0}}`,
	})

	catalog, err := loader.NewCatalogLoader(dir).Load()
	require.NoError(t, err)

	summary := loader.Summarize(catalog)

	assert.Equal(t, 3, summary.TotalRecipes)
	assert.Equal(t, 2, summary.RawRecipes)
	assert.Equal(t, 1, summary.Unbuildable)
	assert.Equal(t, 1, summary.RecipesByBuilding["Sawmill"])
	assert.Equal(t, 1, summary.RecipesByBuilding["Logging Camp"])
}
