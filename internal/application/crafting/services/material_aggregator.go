package services

import (
	"github.com/burningsea/craftcalc/internal/domain/crafting"
)

// MaterialSummary splits a tree's raw requirements into goods the player can
// craft from base recipes and goods that must be sourced outside the catalog.
type MaterialSummary struct {
	// Craftable maps product name -> units produced by the tree's leaf
	// (ingredient-free) recipes at their resolved multipliers.
	Craftable map[string]int `json:"craftable"`

	// MustSource maps ingredient name -> units with no producing recipe,
	// summed across every node that requires them.
	MustSource map[string]int `json:"mustSource"`
}

// MaterialAggregator reduces a dependency tree to its material requirements.
type MaterialAggregator struct{}

// NewMaterialAggregator creates a material aggregator.
func NewMaterialAggregator() *MaterialAggregator {
	return &MaterialAggregator{}
}

// Summarize walks the distinct nodes of the tree once. Leaf recipes
// contribute product quantity scaled by multiplier to Craftable; every
// node's missing ingredients accumulate additively into MustSource. Unlike
// producer selection, missing totals are not first-wins: two branches
// needing the same unsourced good both count.
func (a *MaterialAggregator) Summarize(root *crafting.DependencyNode) MaterialSummary {
	summary := MaterialSummary{
		Craftable:  make(map[string]int),
		MustSource: make(map[string]int),
	}
	if root == nil {
		return summary
	}

	for _, node := range root.FlattenToList() {
		if node.IsLeaf() {
			for _, p := range node.Recipe.Products {
				summary.Craftable[p.Name] += p.Quantity * node.Multiplier
			}
		}
		for _, missing := range node.MissingIngredients {
			summary.MustSource[missing.Name] += missing.Quantity
		}
	}
	return summary
}
