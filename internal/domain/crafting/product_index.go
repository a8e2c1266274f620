package crafting

// ProductIndex maps a product name to the recipe IDs that produce it, in
// catalog insertion order. It exists so ingredient expansion does not scan
// the whole catalog per lookup.
//
// The index is derived state: rebuild it whenever the catalog changes.
type ProductIndex struct {
	producers map[string][]string
}

// BuildIndex derives a product index from the catalog. Deterministic: the
// catalog is walked in insertion order and producer lists preserve that
// order. A recipe with no products contributes nothing.
func BuildIndex(catalog *Catalog) *ProductIndex {
	idx := &ProductIndex{
		producers: make(map[string][]string),
	}
	catalog.Each(func(r *Recipe) bool {
		for _, p := range r.Products {
			idx.producers[p.Name] = append(idx.producers[p.Name], r.ID)
		}
		return true
	})
	return idx
}

// Producers returns the recipe IDs producing the named good, in catalog
// order. Returns nil when no recipe produces it.
func (idx *ProductIndex) Producers(name string) []string {
	return idx.producers[name]
}

// FirstProducer returns the first-registered recipe that produces the named
// good. This is the documented tie-break when several recipes produce the
// same good: first match in catalog order wins, with no cost or quantity
// comparison.
func (idx *ProductIndex) FirstProducer(name string) (string, bool) {
	ids := idx.producers[name]
	if len(ids) == 0 {
		return "", false
	}
	return ids[0], true
}
