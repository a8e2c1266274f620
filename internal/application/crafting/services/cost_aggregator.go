package services

import (
	"github.com/burningsea/craftcalc/internal/domain/crafting"
)

// CostSummary is the total price of executing a production schedule.
type CostSummary struct {
	// Steps is the number of scheduled recipe runs (distinct recipes).
	Steps int `json:"steps"`

	Gold   int                 `json:"gold"`
	Labour crafting.LabourTime `json:"labour"`
}

// CostAggregator reduces a linearized schedule to its total cost.
type CostAggregator struct{}

// NewCostAggregator creates a cost aggregator.
func NewCostAggregator() *CostAggregator {
	return &CostAggregator{}
}

// Summarize totals gold and labour across the schedule. Labour is summed in
// minutes and renormalized so minutes stay in [0,59].
//
// An empty schedule means the root is itself a raw recipe: the total is the
// root's own scaled cost with a single step.
func (a *CostAggregator) Summarize(root *crafting.DependencyNode, order []*crafting.DependencyNode) CostSummary {
	if len(order) == 0 {
		if root == nil {
			return CostSummary{}
		}
		return CostSummary{
			Steps:  1,
			Gold:   root.TotalCost.Gold,
			Labour: root.TotalCost.Labour,
		}
	}

	total := crafting.Cost{}
	for _, node := range order {
		total = total.Add(node.TotalCost)
	}
	return CostSummary{
		Steps:  len(order),
		Gold:   total.Gold,
		Labour: total.Labour,
	}
}
