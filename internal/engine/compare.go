package engine

import (
	"fmt"

	"github.com/piwi3910/WoodBOM/internal/model"
)

// ComparisonScenario defines a named set of settings to compare.
type ComparisonScenario struct {
	Name     string
	Settings model.Settings
}

// ComparisonResult holds the packing result and computed statistics for a
// single scenario.
type ComparisonResult struct {
	Scenario       ComparisonScenario
	Plans          []model.GroupPlan
	BoardsUsed     int
	PurchaseLength int // sum of stock lengths bought, mm
	WastePercent   float64
	OversizeBoards int
}

// CompareScenarios packs every stock group under each scenario. Results keep
// scenario order.
func CompareScenarios(scenarios []ComparisonScenario, groups []model.StockGroup) []ComparisonResult {
	results := make([]ComparisonResult, 0, len(scenarios))

	for _, scenario := range scenarios {
		opt := New(scenario.Settings)
		res := ComparisonResult{Scenario: scenario}

		var required int
		for _, g := range groups {
			plan := opt.PlanGroup(g)
			res.Plans = append(res.Plans, plan)
			for _, b := range plan.Boards {
				res.BoardsUsed++
				res.PurchaseLength += b.StockLength
				if b.Oversize {
					res.OversizeBoards++
				}
				for _, c := range b.Cuts {
					required += c
				}
			}
		}
		if res.PurchaseLength > 0 {
			res.WastePercent = 100.0 * float64(res.PurchaseLength-required) / float64(res.PurchaseLength)
			if res.WastePercent < 0 {
				res.WastePercent = 0
			}
		}
		results = append(results, res)
	}

	return results
}

// BuildDefaultScenarios generates what-if alternatives around the current
// settings: the other packing algorithm and a thinner blade.
func BuildDefaultScenarios(base model.Settings) []ComparisonScenario {
	scenarios := []ComparisonScenario{
		{
			Name:     "Current Settings",
			Settings: base,
		},
	}

	alt := base
	if base.Algorithm == model.AlgorithmBestFit {
		alt.Algorithm = model.AlgorithmFirstFit
		scenarios = append(scenarios, ComparisonScenario{Name: "First-Fit Decreasing", Settings: alt})
	} else {
		alt.Algorithm = model.AlgorithmBestFit
		scenarios = append(scenarios, ComparisonScenario{Name: "Best-Fit Decreasing", Settings: alt})
	}

	if base.SawKerf > 1 {
		thin := base
		thin.SawKerf = base.SawKerf / 2
		scenarios = append(scenarios, ComparisonScenario{
			Name:     fmt.Sprintf("Kerf %dmm (half)", thin.SawKerf),
			Settings: thin,
		})
	}

	return scenarios
}
