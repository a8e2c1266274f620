package services

import (
	"github.com/burningsea/craftcalc/internal/domain/crafting"
)

// ExecutionLinearizer flattens a dependency tree into a production schedule:
// an ordered sequence of distinct recipe nodes where every node appears after
// all of its dependencies.
type ExecutionLinearizer struct{}

// NewExecutionLinearizer creates a linearizer.
func NewExecutionLinearizer() *ExecutionLinearizer {
	return &ExecutionLinearizer{}
}

// Linearize returns the post-order, dependency-first schedule for the tree.
//
// Each recipe appears exactly once, at the position reached by its first
// traversal; circular sentinels are never scheduled. A root with no
// dependencies yields an empty schedule: there is nothing to stage before
// crafting it directly.
func (l *ExecutionLinearizer) Linearize(root *crafting.DependencyNode) []*crafting.DependencyNode {
	if root == nil || root.IsLeaf() {
		return nil
	}

	seen := make(map[string]bool)
	var order []*crafting.DependencyNode
	l.visit(root, seen, &order)
	return order
}

func (l *ExecutionLinearizer) visit(node *crafting.DependencyNode, seen map[string]bool, order *[]*crafting.DependencyNode) {
	if node.Circular || seen[node.Recipe.ID] {
		return
	}
	seen[node.Recipe.ID] = true

	for _, ingredient := range node.Recipe.Ingredients {
		if edge, ok := node.Dependencies[ingredient.Name]; ok {
			l.visit(edge.Child, seen, order)
		}
	}
	*order = append(*order, node)
}
