package pricing

import (
	"time"

	"broadbandx-pricing/core/types"
	"broadbandx-pricing/internal/errors"
)

// Canonical scenario names.
const (
	ScenarioPeakWeekday    = "peak_weekday"
	ScenarioOffpeakWeekday = "offpeak_weekday"
	ScenarioPeakWeekend    = "peak_weekend"
	ScenarioOffpeakWeekend = "offpeak_weekend"
)

// scenarioTimestamps fixes one representative instant per scenario so
// simulations are fully deterministic: Monday 2024-01-15 and Saturday
// 2024-01-20, at 8 PM (peak) and 10 AM (off-peak).
var scenarioTimestamps = map[string]time.Time{
	ScenarioPeakWeekday:    time.Date(2024, 1, 15, 20, 0, 0, 0, time.UTC),
	ScenarioOffpeakWeekday: time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC),
	ScenarioPeakWeekend:    time.Date(2024, 1, 20, 20, 0, 0, 0, time.UTC),
	ScenarioOffpeakWeekend: time.Date(2024, 1, 20, 10, 0, 0, 0, time.UTC),
}

// DefaultScenarios lists the four canonical scenarios.
func DefaultScenarios() []string {
	return []string{
		ScenarioPeakWeekday,
		ScenarioOffpeakWeekday,
		ScenarioPeakWeekend,
		ScenarioOffpeakWeekend,
	}
}

// SimulatePricingScenarios prices one customer under each named scenario
// at its fixed canonical timestamp. An empty scenario list runs all four.
// Unknown scenario names are rejected: silently falling back to "now"
// would make the result non-reproducible.
func (e *Engine) SimulatePricingScenarios(basePrice float64, features types.FeatureSet, scenarios []string) (map[string]*types.PricingResult, error) {
	if len(scenarios) == 0 {
		scenarios = DefaultScenarios()
	}

	results := make(map[string]*types.PricingResult, len(scenarios))
	for _, name := range scenarios {
		ts, ok := scenarioTimestamps[name]
		if !ok {
			return nil, errors.Inputf("unknown pricing scenario %q", name)
		}
		result, err := e.CalculateDynamicPrice(basePrice, features, ts)
		if err != nil {
			return nil, err
		}
		results[name] = result
	}
	return results, nil
}
