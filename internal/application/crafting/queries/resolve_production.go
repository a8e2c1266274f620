package queries

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/burningsea/craftcalc/internal/application/common"
	"github.com/burningsea/craftcalc/internal/application/crafting/services"
	"github.com/burningsea/craftcalc/internal/domain/crafting"
)

// ResolveProductionQuery asks for the full production plan of a recipe:
// dependency tree, execution order, and the three aggregate summaries.
type ResolveProductionQuery struct {
	RecipeID string

	// Quantity is the desired number of units of the recipe's primary
	// product. 0 or 1 means a single run.
	Quantity int
}

// ResolveProductionResponse carries everything the presentation layer needs
// to render a production plan.
type ResolveProductionResponse struct {
	// ResolutionID correlates this response with handler log lines.
	ResolutionID string `json:"resolutionId"`

	Tree           *crafting.DependencyNode   `json:"tree"`
	ExecutionOrder []*crafting.DependencyNode `json:"executionOrder"`
	Cost           services.CostSummary       `json:"cost"`
	Materials      services.MaterialSummary   `json:"materials"`
	Buildings      services.BuildingSummary   `json:"buildings"`
}

// ResolveProductionHandler handles the ResolveProduction query
type ResolveProductionHandler struct {
	catalog    *crafting.Catalog
	resolver   *services.DependencyResolver
	linearizer *services.ExecutionLinearizer
	costs      *services.CostAggregator
	materials  *services.MaterialAggregator
	buildings  *services.BuildingAggregator
	cache      *services.ResolutionCache
}

// NewResolveProductionHandler creates a handler over an immutable catalog.
// The cache is optional; pass nil to recompute every resolution.
func NewResolveProductionHandler(catalog *crafting.Catalog, cache *services.ResolutionCache) *ResolveProductionHandler {
	index := crafting.BuildIndex(catalog)
	return &ResolveProductionHandler{
		catalog:    catalog,
		resolver:   services.NewDependencyResolver(catalog, index),
		linearizer: services.NewExecutionLinearizer(),
		costs:      services.NewCostAggregator(),
		materials:  services.NewMaterialAggregator(),
		buildings:  services.NewBuildingAggregator(),
		cache:      cache,
	}
}

// Handle executes the ResolveProduction query
func (h *ResolveProductionHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	query, ok := request.(*ResolveProductionQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *ResolveProductionQuery")
	}
	if query.RecipeID == "" {
		return nil, fmt.Errorf("recipe_id must be provided")
	}

	quantity := query.Quantity
	if quantity < 1 {
		quantity = 1
	}

	tree, err := h.resolveTree(ctx, query.RecipeID, quantity)
	if err != nil {
		return nil, err
	}

	order := h.linearizer.Linearize(tree)

	return &ResolveProductionResponse{
		ResolutionID:   "resolution-" + uuid.New().String(),
		Tree:           tree,
		ExecutionOrder: order,
		Cost:           h.costs.Summarize(tree, order),
		Materials:      h.materials.Summarize(tree),
		Buildings:      h.buildings.Summarize(tree),
	}, nil
}

// resolveTree checks the cache before resolving. Cached trees are immutable
// after construction, so sharing them across responses is safe.
func (h *ResolveProductionHandler) resolveTree(ctx context.Context, recipeID string, quantity int) (*crafting.DependencyNode, error) {
	if h.cache != nil {
		if tree, hit := h.cache.Get(h.catalog.Version(), recipeID, quantity); hit {
			return tree, nil
		}
	}

	tree, err := h.resolver.ResolveDemand(ctx, recipeID, quantity)
	if err != nil {
		return nil, err
	}

	if h.cache != nil {
		h.cache.Put(h.catalog.Version(), recipeID, quantity, tree)
	}
	return tree, nil
}
