package engine

import (
	"github.com/piwi3910/BoxPack/internal/model"
)

// ComparisonScenario defines a named set of settings to compare.
type ComparisonScenario struct {
	Name     string
	Settings model.Settings
}

// ComparisonResult holds the packing result and computed statistics
// for a single scenario.
type ComparisonResult struct {
	Scenario      ComparisonScenario
	Result        model.PackResult
	Depth         int
	Efficiency    float64
	RejectedCount int
	Err           error
}

// CompareScenarios packs the same boxes under each scenario and returns the
// results in scenario order. Every scenario gets its own engine instance.
func CompareScenarios(scenarios []ComparisonScenario, boxes []model.Box) []ComparisonResult {
	results := make([]ComparisonResult, 0, len(scenarios))

	for _, scenario := range scenarios {
		opt := New(scenario.Settings)
		result, err := opt.Pack(boxes)

		results = append(results, ComparisonResult{
			Scenario:      scenario,
			Result:        result,
			Depth:         result.Depth,
			Efficiency:    result.Efficiency(),
			RejectedCount: len(result.Rejected),
			Err:           err,
		})
	}

	return results
}

// Best returns the index of the successful result with the smallest depth,
// or -1 if every scenario failed. Earlier scenarios win ties.
func Best(results []ComparisonResult) int {
	best := -1
	for i, r := range results {
		if r.Err != nil {
			continue
		}
		if best < 0 || r.Depth < results[best].Depth {
			best = i
		}
	}
	return best
}

// BuildDefaultScenarios generates a set of comparison scenarios based on
// the current settings, varying the order policy and the engine.
func BuildDefaultScenarios(base model.Settings) []ComparisonScenario {
	scenarios := []ComparisonScenario{
		{
			Name:     "Current Settings",
			Settings: base,
		},
	}

	for _, order := range []model.Order{model.OrderDescending, model.OrderAscending, model.OrderGenetic} {
		if order == base.Order {
			continue
		}
		s := base
		s.Order = order
		scenarios = append(scenarios, ComparisonScenario{
			Name:     "Order: " + string(order),
			Settings: s,
		})
	}

	altEngine := base
	if base.Engine == model.EngineGrid {
		altEngine.Engine = model.EngineTree
		scenarios = append(scenarios, ComparisonScenario{
			Name:     "Tree Engine",
			Settings: altEngine,
		})
	} else {
		altEngine.Engine = model.EngineGrid
		scenarios = append(scenarios, ComparisonScenario{
			Name:     "Grid Engine",
			Settings: altEngine,
		})
	}

	return scenarios
}
