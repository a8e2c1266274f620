package crafting

import "fmt"

// Domain errors for catalog and resolution operations

// ErrUnknownRecipe indicates a recipe ID is not present in the catalog.
// It is fatal only when the unknown ID is the resolution root; encountered
// mid-tree it degrades to a must-source material.
type ErrUnknownRecipe struct {
	ID string
}

func (e *ErrUnknownRecipe) Error() string {
	return fmt.Sprintf("unknown recipe: %s (not in catalog)", e.ID)
}

// ErrDuplicateRecipe indicates a recipe ID was registered twice in a catalog.
type ErrDuplicateRecipe struct {
	ID string
}

func (e *ErrDuplicateRecipe) Error() string {
	return fmt.Sprintf("duplicate recipe: %s already registered", e.ID)
}

// ErrCircularDependency describes a cycle found while expanding a recipe.
// Cycles never abort a resolution; the resolver folds them into the tree as
// sentinel nodes. The error type exists for callers that want to inspect
// cycles explicitly (e.g. catalog lint tooling).
type ErrCircularDependency struct {
	RecipeID string
	Chain    []string
}

func (e *ErrCircularDependency) Error() string {
	return fmt.Sprintf("circular dependency detected for %s: %v", e.RecipeID, e.Chain)
}
