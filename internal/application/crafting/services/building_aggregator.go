package services

import (
	"github.com/burningsea/craftcalc/internal/domain/crafting"
)

// BuildingStats accumulates the work a single building performs across a
// dependency tree, plus derived throughput metrics.
type BuildingStats struct {
	// Recipes is how many distinct scheduled recipes list this building.
	Recipes int `json:"recipes"`

	Labour crafting.LabourTime `json:"labour"`
	Gold   int                 `json:"gold"`

	// GoldPerHour and RecipesPerHour are 0 when the building's total
	// labour time is zero.
	GoldPerHour    float64 `json:"goldPerHour"`
	RecipesPerHour float64 `json:"recipesPerHour"`
}

// BuildingSummary maps building name -> utilization stats.
type BuildingSummary struct {
	Buildings map[string]BuildingStats `json:"buildings"`
}

// BuildingAggregator reduces a dependency tree to per-building utilization.
type BuildingAggregator struct{}

// NewBuildingAggregator creates a building aggregator.
func NewBuildingAggregator() *BuildingAggregator {
	return &BuildingAggregator{}
}

// Summarize visits each distinct non-circular node once (same dedup
// discipline as the linearizer) and accumulates its scaled cost into every
// building the recipe lists. Minutes normalize into hours after
// accumulation; rate metrics guard against zero total time.
func (a *BuildingAggregator) Summarize(root *crafting.DependencyNode) BuildingSummary {
	summary := BuildingSummary{
		Buildings: make(map[string]BuildingStats),
	}
	if root == nil {
		return summary
	}

	minutes := make(map[string]int)
	for _, node := range root.FlattenToList() {
		for _, building := range node.Recipe.Buildings {
			stats := summary.Buildings[building]
			stats.Recipes++
			stats.Gold += node.TotalCost.Gold
			minutes[building] += node.TotalCost.Labour.TotalMinutes()
			summary.Buildings[building] = stats
		}
	}

	for building, stats := range summary.Buildings {
		total := minutes[building]
		stats.Labour = crafting.LabourFromMinutes(total)
		if total > 0 {
			hours := float64(total) / 60.0
			stats.GoldPerHour = float64(stats.Gold) / hours
			stats.RecipesPerHour = float64(stats.Recipes) / hours
		}
		summary.Buildings[building] = stats
	}
	return summary
}
