package queries

import (
	"context"
	"fmt"
	"strings"

	"github.com/burningsea/craftcalc/internal/application/common"
	"github.com/burningsea/craftcalc/internal/domain/crafting"
)

// ListRecipesQuery asks for the catalog's recipes, optionally filtered.
type ListRecipesQuery struct {
	// Building filters to recipes producible at the named building.
	Building string

	// NameContains filters by substring match on the recipe ID,
	// case-insensitive.
	NameContains string
}

// ListRecipesResponse carries the matching recipes in catalog order.
type ListRecipesResponse struct {
	Recipes []*crafting.Recipe `json:"recipes"`
	Total   int                `json:"total"`
}

// ListRecipesHandler handles the ListRecipes query
type ListRecipesHandler struct {
	catalog *crafting.Catalog
}

// NewListRecipesHandler creates a new ListRecipesHandler
func NewListRecipesHandler(catalog *crafting.Catalog) *ListRecipesHandler {
	return &ListRecipesHandler{catalog: catalog}
}

// Handle executes the ListRecipes query
func (h *ListRecipesHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	query, ok := request.(*ListRecipesQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *ListRecipesQuery")
	}

	needle := strings.ToLower(query.NameContains)

	var recipes []*crafting.Recipe
	h.catalog.Each(func(r *crafting.Recipe) bool {
		if query.Building != "" && !listsBuilding(r, query.Building) {
			return true
		}
		if needle != "" && !strings.Contains(strings.ToLower(r.ID), needle) {
			return true
		}
		recipes = append(recipes, r)
		return true
	})

	return &ListRecipesResponse{
		Recipes: recipes,
		Total:   len(recipes),
	}, nil
}

func listsBuilding(r *crafting.Recipe, building string) bool {
	for _, b := range r.Buildings {
		if strings.EqualFold(b, building) {
			return true
		}
	}
	return false
}
