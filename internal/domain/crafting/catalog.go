package crafting

// Catalog is the full set of known recipes, keyed by recipe ID.
// Iteration order is the insertion order, so derived structures (the product
// index, producer tie-breaks) are deterministic across runs.
//
// A catalog is built once by a loader and never mutated afterwards; the
// resolver and aggregators only read it, so a single catalog can serve
// concurrent resolutions.
type Catalog struct {
	version string
	ids     []string
	recipes map[string]*Recipe
}

// NewCatalog creates an empty catalog with the given version tag.
// The version identifies the loaded dataset (e.g. a content hash) and is used
// by callers to key caches of derived state.
func NewCatalog(version string) *Catalog {
	return &Catalog{
		version: version,
		recipes: make(map[string]*Recipe),
	}
}

// Version returns the catalog's dataset version tag.
func (c *Catalog) Version() string {
	return c.version
}

// Add registers a recipe under its ID. A duplicate ID returns
// ErrDuplicateRecipe and leaves the first registration in place.
func (c *Catalog) Add(recipe *Recipe) error {
	if _, exists := c.recipes[recipe.ID]; exists {
		return &ErrDuplicateRecipe{ID: recipe.ID}
	}
	c.ids = append(c.ids, recipe.ID)
	c.recipes[recipe.ID] = recipe
	return nil
}

// Get returns the recipe with the given ID, or nil if unknown.
func (c *Catalog) Get(id string) *Recipe {
	return c.recipes[id]
}

// Has reports whether the catalog contains the given recipe ID.
func (c *Catalog) Has(id string) bool {
	_, ok := c.recipes[id]
	return ok
}

// Len returns the number of recipes in the catalog.
func (c *Catalog) Len() int {
	return len(c.ids)
}

// IDs returns the recipe IDs in insertion order. The returned slice is a
// copy; mutating it does not affect the catalog.
func (c *Catalog) IDs() []string {
	out := make([]string, len(c.ids))
	copy(out, c.ids)
	return out
}

// Each calls fn for every recipe in insertion order, stopping early if fn
// returns false.
func (c *Catalog) Each(fn func(*Recipe) bool) {
	for _, id := range c.ids {
		if !fn(c.recipes[id]) {
			return
		}
	}
}
