package queries

import (
	"context"
	"fmt"

	"github.com/burningsea/craftcalc/internal/application/common"
	"github.com/burningsea/craftcalc/internal/domain/crafting"
)

// GetRecipeQuery asks for a single recipe by ID.
type GetRecipeQuery struct {
	RecipeID string
}

// GetRecipeResponse carries the recipe plus the IDs of every other recipe
// that produces the same primary product (the alternatives the first-match
// tie-break skipped).
type GetRecipeResponse struct {
	Recipe       *crafting.Recipe `json:"recipe"`
	Alternatives []string         `json:"alternatives,omitempty"`
}

// GetRecipeHandler handles the GetRecipe query
type GetRecipeHandler struct {
	catalog *crafting.Catalog
	index   *crafting.ProductIndex
}

// NewGetRecipeHandler creates a new GetRecipeHandler
func NewGetRecipeHandler(catalog *crafting.Catalog) *GetRecipeHandler {
	return &GetRecipeHandler{
		catalog: catalog,
		index:   crafting.BuildIndex(catalog),
	}
}

// Handle executes the GetRecipe query
func (h *GetRecipeHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	query, ok := request.(*GetRecipeQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *GetRecipeQuery")
	}

	recipe := h.catalog.Get(query.RecipeID)
	if recipe == nil {
		return nil, &crafting.ErrUnknownRecipe{ID: query.RecipeID}
	}

	var alternatives []string
	if len(recipe.Products) > 0 {
		for _, id := range h.index.Producers(recipe.Products[0].Name) {
			if id != recipe.ID {
				alternatives = append(alternatives, id)
			}
		}
	}

	return &GetRecipeResponse{
		Recipe:       recipe,
		Alternatives: alternatives,
	}, nil
}
