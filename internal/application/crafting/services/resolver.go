package services

import (
	"context"
	"log"

	"github.com/burningsea/craftcalc/internal/domain/crafting"
)

// DependencyResolver expands a root recipe into a multiplicity-scaled
// dependency tree over an immutable catalog and product index.
//
// The resolver is pure computation: it never mutates the catalog or index,
// and every call allocates its own ancestor set and memo map, so a single
// resolver can serve concurrent resolutions.
type DependencyResolver struct {
	catalog *crafting.Catalog
	index   *crafting.ProductIndex
}

// NewDependencyResolver creates a resolver over the given catalog and its
// derived product index.
func NewDependencyResolver(catalog *crafting.Catalog, index *crafting.ProductIndex) *DependencyResolver {
	return &DependencyResolver{
		catalog: catalog,
		index:   index,
	}
}

// resolutionContext carries the mutable traversal state of one Resolve call.
// Passed by reference through the recursion instead of captured by closures.
type resolutionContext struct {
	// ancestors holds the recipe IDs on the current root-to-node path.
	// Re-entering one means a cycle.
	ancestors map[string]bool

	// memo holds fully resolved nodes by recipe ID. When the catalog is a
	// DAG but not a tree, a recipe demanded by several branches reuses the
	// same resolved subtree instead of being rebuilt.
	memo map[string]*crafting.DependencyNode
}

// Resolve builds the dependency tree for running rootID `multiplier` times.
//
// The algorithm is depth-first with top-down multiplicity propagation:
//  1. A recipe already on the current path becomes a circular sentinel node
//     instead of recursing, which bounds the traversal on any catalog.
//  2. Each ingredient is looked up in the product index; with no producer it
//     becomes a must-source entry, otherwise the first-registered producer
//     wins and its multiplier is the ceiling of needed/yield, since
//     production batches are indivisible.
//
// The only failure is an unknown root recipe. A producer ID that turns out
// to be absent from the catalog mid-tree is logged and degraded to a
// must-source ingredient rather than aborting the rest of the tree.
func (r *DependencyResolver) Resolve(ctx context.Context, rootID string, multiplier int) (*crafting.DependencyNode, error) {
	if !r.catalog.Has(rootID) {
		return nil, &crafting.ErrUnknownRecipe{ID: rootID}
	}
	if multiplier < 1 {
		multiplier = 1
	}

	rctx := &resolutionContext{
		ancestors: make(map[string]bool),
		memo:      make(map[string]*crafting.DependencyNode),
	}
	return r.resolveNode(rctx, rootID, multiplier, 0), nil
}

// ResolveDemand resolves rootID scaled to yield at least `units` of its
// primary (first-listed) product.
func (r *DependencyResolver) ResolveDemand(ctx context.Context, rootID string, units int) (*crafting.DependencyNode, error) {
	recipe := r.catalog.Get(rootID)
	if recipe == nil {
		return nil, &crafting.ErrUnknownRecipe{ID: rootID}
	}

	multiplier := 1
	if units > 1 && len(recipe.Products) > 0 {
		multiplier = ceilDiv(units, recipe.Products[0].Quantity)
	}
	return r.Resolve(ctx, rootID, multiplier)
}

// VerifyAcyclic walks the production chain under rootID and returns
// *crafting.ErrCircularDependency for the first cycle found, with the full
// recipe chain that closes it. Resolve never fails on cycles (it folds them
// into sentinel nodes); this is the strict check for catalog maintenance.
func (r *DependencyResolver) VerifyAcyclic(rootID string) error {
	recipe := r.catalog.Get(rootID)
	if recipe == nil {
		return &crafting.ErrUnknownRecipe{ID: rootID}
	}
	return r.walkAcyclic(recipe, make(map[string]bool), nil)
}

func (r *DependencyResolver) walkAcyclic(recipe *crafting.Recipe, ancestors map[string]bool, chain []string) error {
	if ancestors[recipe.ID] {
		return &crafting.ErrCircularDependency{
			RecipeID: recipe.ID,
			Chain:    append(chain, recipe.ID),
		}
	}
	ancestors[recipe.ID] = true
	defer delete(ancestors, recipe.ID)
	chain = append(chain, recipe.ID)

	for _, ingredient := range recipe.Ingredients {
		producerID, ok := r.index.FirstProducer(ingredient.Name)
		if !ok {
			continue
		}
		producer := r.catalog.Get(producerID)
		if producer == nil {
			continue
		}
		if err := r.walkAcyclic(producer, ancestors, chain); err != nil {
			return err
		}
	}
	return nil
}

// resolveNode expands one (recipeID, multiplier) demand. The recipe is known
// to exist in the catalog when this is called.
func (r *DependencyResolver) resolveNode(rctx *resolutionContext, recipeID string, multiplier, depth int) *crafting.DependencyNode {
	recipe := r.catalog.Get(recipeID)

	if rctx.ancestors[recipeID] {
		return crafting.NewCircularNode(recipe, depth)
	}
	if memoized, ok := rctx.memo[recipeID]; ok {
		return memoized
	}

	rctx.ancestors[recipeID] = true
	defer delete(rctx.ancestors, recipeID)

	node := crafting.NewDependencyNode(recipe, multiplier, depth)

	for _, ingredient := range recipe.Ingredients {
		quantityNeeded := ingredient.Quantity * multiplier

		producerID, ok := r.index.FirstProducer(ingredient.Name)
		if !ok {
			node.MissingIngredients = append(node.MissingIngredients, crafting.Item{
				Name:     ingredient.Name,
				Quantity: quantityNeeded,
			})
			continue
		}

		producer := r.catalog.Get(producerID)
		if producer == nil {
			// Index and catalog disagree; degrade to must-source so the
			// rest of the tree still resolves.
			log.Printf("resolver: producer %s for ingredient %s missing from catalog", producerID, ingredient.Name)
			node.MissingIngredients = append(node.MissingIngredients, crafting.Item{
				Name:     ingredient.Name,
				Quantity: quantityNeeded,
			})
			continue
		}

		childMultiplier := ceilDiv(quantityNeeded, producer.ProductQuantity(ingredient.Name))
		child := r.resolveNode(rctx, producerID, childMultiplier, depth+1)

		node.Dependencies[ingredient.Name] = &crafting.DependencyEdge{
			Child:           child,
			QuantityNeeded:  quantityNeeded,
			ChildMultiplier: childMultiplier,
		}
	}

	rctx.memo[recipeID] = node
	return node
}

// ceilDiv is integer division rounding up. Batches are indivisible: any
// fractional requirement forces an extra full batch.
func ceilDiv(needed, perBatch int) int {
	if perBatch <= 0 {
		perBatch = 1
	}
	return (needed + perBatch - 1) / perBatch
}
