package loader

import (
	"github.com/burningsea/craftcalc/internal/domain/crafting"
)

// CatalogSummary aggregates headline numbers for a loaded catalog, in the
// shape of the dataset's index.json sidecar.
type CatalogSummary struct {
	TotalRecipes      int            `json:"totalRecipes"`
	RawRecipes        int            `json:"rawRecipes"`
	RecipesByBuilding map[string]int `json:"recipesByBuilding"`

	// Unbuildable counts recipes that list no building at all.
	Unbuildable int `json:"unbuildable"`
}

// Summarize walks the catalog once and tallies recipe counts per building.
func Summarize(catalog *crafting.Catalog) CatalogSummary {
	summary := CatalogSummary{
		RecipesByBuilding: make(map[string]int),
	}
	catalog.Each(func(r *crafting.Recipe) bool {
		summary.TotalRecipes++
		if r.IsRaw() {
			summary.RawRecipes++
		}
		if len(r.Buildings) == 0 {
			summary.Unbuildable++
		}
		for _, b := range r.Buildings {
			summary.RecipesByBuilding[b]++
		}
		return true
	})
	return summary
}
