package crafting

// DependencyNode is one resolved recipe instance in a dependency tree.
// This is a recursive structure: each node's Dependencies map carries an edge
// per ingredient to the node that produces it.
//
// A node's Multiplier is how many times the recipe must run to satisfy the
// demand that first reached it; TotalCost is always Recipe.Cost scaled by
// that multiplier. Subtrees are shared when the catalog is a DAG rather than
// a tree, so the same *DependencyNode can be reachable through several edges.
type DependencyNode struct {
	Recipe     *Recipe `json:"recipe"`
	Multiplier int     `json:"multiplier"`
	Depth      int     `json:"depth"`
	TotalCost  Cost    `json:"totalCost"`

	// Dependencies maps ingredient name -> edge to the producing node.
	// Empty for raw recipes and for circular sentinels.
	Dependencies map[string]*DependencyEdge `json:"dependencies,omitempty"`

	// MissingIngredients lists ingredients no catalog recipe produces,
	// scaled to the quantity this node's runs consume.
	MissingIngredients []Item `json:"missingIngredients,omitempty"`

	// Circular marks a node that was not expanded because doing so would
	// revisit an ancestor on the current path. A circular node is a
	// terminal sentinel: it carries no cost or dependency data.
	Circular bool `json:"circular,omitempty"`
}

// DependencyEdge links a node to the child producing one of its ingredients.
type DependencyEdge struct {
	Child *DependencyNode `json:"child"`

	// QuantityNeeded is ingredient quantity scaled by the parent's
	// multiplier; ChildMultiplier is the batch count covering it.
	QuantityNeeded  int `json:"quantityNeeded"`
	ChildMultiplier int `json:"childMultiplier"`
}

// NewDependencyNode creates a resolved node for the given recipe.
func NewDependencyNode(recipe *Recipe, multiplier, depth int) *DependencyNode {
	return &DependencyNode{
		Recipe:       recipe,
		Multiplier:   multiplier,
		Depth:        depth,
		TotalCost:    recipe.Cost.Scale(multiplier),
		Dependencies: make(map[string]*DependencyEdge),
	}
}

// NewCircularNode creates the terminal sentinel for a cycle back to recipe.
func NewCircularNode(recipe *Recipe, depth int) *DependencyNode {
	return &DependencyNode{
		Recipe:   recipe,
		Depth:    depth,
		Circular: true,
	}
}

// IsLeaf reports whether the node has no dependencies. Raw recipes are
// leaves; so are circular sentinels, though those carry no production data.
func (n *DependencyNode) IsLeaf() bool {
	return len(n.Dependencies) == 0
}

// TotalDepth returns the maximum depth of the tree rooted at this node.
func (n *DependencyNode) TotalDepth() int {
	max := 0
	for _, edge := range n.Dependencies {
		if d := edge.Child.TotalDepth(); d > max {
			max = d
		}
	}
	return max + 1
}

// FlattenToList returns every distinct non-circular node reachable from this
// one, deduplicated by recipe ID in depth-first discovery order.
func (n *DependencyNode) FlattenToList() []*DependencyNode {
	seen := make(map[string]bool)
	var result []*DependencyNode
	n.flatten(seen, &result)
	return result
}

func (n *DependencyNode) flatten(seen map[string]bool, result *[]*DependencyNode) {
	if n.Circular || seen[n.Recipe.ID] {
		return
	}
	seen[n.Recipe.ID] = true
	*result = append(*result, n)
	for _, name := range n.ingredientOrder() {
		n.Dependencies[name].Child.flatten(seen, result)
	}
}

// CountNodes returns the number of distinct non-circular nodes in the tree.
func (n *DependencyNode) CountNodes() int {
	return len(n.FlattenToList())
}

// HasCycle reports whether any circular sentinel is reachable from this node.
func (n *DependencyNode) HasCycle() bool {
	if n.Circular {
		return true
	}
	seen := make(map[string]bool)
	return n.hasCycle(seen)
}

func (n *DependencyNode) hasCycle(seen map[string]bool) bool {
	if n.Circular {
		return true
	}
	if seen[n.Recipe.ID] {
		return false
	}
	seen[n.Recipe.ID] = true
	for _, edge := range n.Dependencies {
		if edge.Child.hasCycle(seen) {
			return true
		}
	}
	return false
}

// ingredientOrder returns the node's dependency keys in the recipe's
// ingredient order, so traversals are deterministic despite the map.
func (n *DependencyNode) ingredientOrder() []string {
	order := make([]string, 0, len(n.Dependencies))
	for _, ing := range n.Recipe.Ingredients {
		if _, ok := n.Dependencies[ing.Name]; ok {
			order = append(order, ing.Name)
		}
	}
	return order
}
