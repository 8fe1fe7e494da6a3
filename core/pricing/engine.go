// Package pricing implements the dynamic pricing engine.
//
// The engine blends three signals into one bounded price adjustment:
//
//	P_dynamic = P_base x (1 + adjustment)
//	adjustment = alpha*D_t - beta*EF_c - gamma*R_c
//
// D_t is the time-of-day demand factor, EF_c the elasticity discount
// intensity, and R_c the churn risk. Demand can push the price either way;
// elasticity and churn risk only ever pull it down. The adjustment is
// clamped into [min_discount, max_premium] and the final price floored at
// half the base price.
package pricing

import (
	"math"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"broadbandx-pricing/core/churnrisk"
	"broadbandx-pricing/core/demand"
	"broadbandx-pricing/core/elasticity"
	"broadbandx-pricing/core/types"
	"broadbandx-pricing/internal/errors"
	"broadbandx-pricing/internal/logging"
)

// Elasticity-to-discount-intensity mapping constants. They project the
// elasticity range [-2.5, -0.2] onto [0, 1]. Empirically chosen;
// treat as configuration, not derived truths.
const (
	elasticityOffset = 0.2
	elasticitySpan   = 2.3
)

// Absolute price safety net: the dynamic price never drops below this
// fraction of the base price, whatever the configuration says.
const priceFloorRatio = 0.5

// Sink receives every computed pricing result. Implementations own
// their durability; the engine never blocks pricing on a sink failure.
type Sink interface {
	Record(result *types.PricingResult) error
}

// Config carries the engine's injected configuration.
type Config struct {
	Weights         types.Weights
	Constraints     types.Constraints
	Schedule        types.DemandSchedule
	HistoryCapacity int
}

// DefaultConfig returns the production defaults.
func DefaultConfig() Config {
	return Config{
		Weights:         types.Weights{Alpha: 0.15, Beta: 0.10, Gamma: 0.20},
		Constraints:     types.Constraints{MinDiscount: -0.30, MaxPremium: 0.20, ChurnThreshold: 0.70},
		Schedule:        demand.DefaultSchedule(),
		HistoryCapacity: 1000,
	}
}

// Engine computes dynamic prices. Weight updates and pricing calls may
// run concurrently: every calculation reads one consistent snapshot of
// the weights under the read lock, and updates take the write lock.
type Engine struct {
	mu          sync.RWMutex
	weights     types.Weights
	constraints types.Constraints
	schedule    types.DemandSchedule

	churnModel churnrisk.Predictor
	segmenter  elasticity.Segmenter

	history *ring
	sink    Sink
}

// NewEngine builds an engine from the given configuration.
// Collaborators are attached separately via SetCollaborators.
func NewEngine(cfg Config) (*Engine, error) {
	if cfg.Constraints.MinDiscount >= 0 {
		return nil, errors.Input("min_discount must be negative")
	}
	if cfg.Constraints.MaxPremium < 0 {
		return nil, errors.Input("max_premium must not be negative")
	}
	if cfg.HistoryCapacity <= 0 {
		cfg.HistoryCapacity = DefaultConfig().HistoryCapacity
	}

	return &Engine{
		weights:     cfg.Weights,
		constraints: cfg.Constraints,
		schedule:    cfg.Schedule,
		history:     newRing(cfg.HistoryCapacity),
	}, nil
}

// SetCollaborators attaches the optional churn and segmentation models.
// Either may be nil or unfitted; the engine degrades to its feature
// heuristics in that case. The engine does not own their lifecycle.
func (e *Engine) SetCollaborators(churnModel churnrisk.Predictor, segmenter elasticity.Segmenter) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.churnModel = churnModel
	e.segmenter = segmenter
}

// SetSink attaches an external history sink.
func (e *Engine) SetSink(sink Sink) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.sink = sink
}

// snapshot is one consistent view of the engine configuration,
// taken once per calculation.
type snapshot struct {
	weights     types.Weights
	constraints types.Constraints
	schedule    types.DemandSchedule
	churnModel  churnrisk.Predictor
	segmenter   elasticity.Segmenter
	sink        Sink
}

func (e *Engine) snapshot() snapshot {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return snapshot{
		weights:     e.weights,
		constraints: e.constraints,
		schedule:    e.schedule,
		churnModel:  e.churnModel,
		segmenter:   e.segmenter,
		sink:        e.sink,
	}
}

// CalculateDynamicPrice computes the dynamic price for one customer.
// A zero ts means "now"; callers needing determinism (scenario
// simulation, tests) must pass an explicit timestamp.
func (e *Engine) CalculateDynamicPrice(basePrice float64, features types.FeatureSet, ts time.Time) (*types.PricingResult, error) {
	if basePrice <= 0 || math.IsNaN(basePrice) || math.IsInf(basePrice, 0) {
		return nil, errors.Inputf("base_price must be positive, got %v", basePrice)
	}
	if err := validateFeatures(features); err != nil {
		return nil, err
	}
	if ts.IsZero() {
		ts = time.Now()
	}

	snap := e.snapshot()

	demandFactor := demand.Factor(snap.schedule, ts)
	elasticityCoeff := elasticity.ForSegmenter(snap.segmenter).Estimate(features)
	churnRisk := churnrisk.ForPredictor(snap.churnModel).Estimate(features)

	// Normalize elasticity onto a [0,1] discount intensity: more price
	// sensitive customers produce a larger factor.
	elasticityFactor := clamp01((-elasticityCoeff - elasticityOffset) / elasticitySpan)

	// Demand may raise or lower the price; elasticity and churn risk
	// only ever discount. Low risk is never rewarded with a premium.
	adjustment := snap.weights.Alpha*demandFactor -
		snap.weights.Beta*elasticityFactor -
		snap.weights.Gamma*churnRisk

	adjustment = clamp(adjustment, snap.constraints.MinDiscount, snap.constraints.MaxPremium)

	dynamicPrice := basePrice * (1 + adjustment)
	if floor := basePrice * priceFloorRatio; dynamicPrice < floor {
		dynamicPrice = floor
	}

	changePct := (dynamicPrice - basePrice) / basePrice * 100

	result := &types.PricingResult{
		ID:                 uuid.NewString(),
		BasePrice:          basePrice,
		DynamicPrice:       types.RoundMoney(dynamicPrice),
		PriceChange:        types.RoundMoney(dynamicPrice - basePrice),
		PriceChangePercent: types.Round2(changePct),
		Factors: types.PricingFactors{
			DemandFactor:     demandFactor,
			Elasticity:       elasticityCoeff,
			ElasticityFactor: types.Round4(elasticityFactor),
			ChurnRisk:        churnRisk,
		},
		Weights:        snap.weights,
		Adjustment:     types.Round4(adjustment),
		Recommendation: recommend(changePct),
		Timestamp:      ts,
	}

	e.history.append(result)
	if snap.sink != nil {
		if err := snap.sink.Record(result); err != nil {
			logging.Error("history sink record failed", zap.Error(err), zap.String("result_id", result.ID))
		}
	}

	return result, nil
}

// OptimizeRevenue prices every customer in an index-aligned batch and
// aggregates the revenue impact. No cross-customer interaction: the
// total equals the sum of independent calls.
func (e *Engine) OptimizeRevenue(customers []types.FeatureSet, basePrices []float64, ts time.Time) (*types.RevenueOptimization, error) {
	if len(customers) == 0 {
		return nil, errors.Input("customer list is empty")
	}
	if len(customers) != len(basePrices) {
		return nil, errors.Inputf("customer list (%d) and base price list (%d) must be the same length",
			len(customers), len(basePrices))
	}

	results := make([]*types.PricingResult, 0, len(customers))
	baseRevenues := make([]float64, 0, len(customers))
	dynamicRevenues := make([]float64, 0, len(customers))
	var pctSum float64

	for i, features := range customers {
		result, err := e.CalculateDynamicPrice(basePrices[i], features, ts)
		if err != nil {
			return nil, errors.Wrapf(errors.TypeInput, err, "customer %d", i)
		}
		results = append(results, result)
		baseRevenues = append(baseRevenues, result.BasePrice)
		dynamicRevenues = append(dynamicRevenues, result.DynamicPrice)
		pctSum += result.PriceChangePercent
	}

	totalBase := types.SumMoney(baseRevenues...)
	totalDynamic := types.SumMoney(dynamicRevenues...)
	change := types.RoundMoney(totalDynamic - totalBase)

	return &types.RevenueOptimization{
		TotalBaseRevenue:     totalBase,
		TotalDynamicRevenue:  totalDynamic,
		RevenueChange:        change,
		RevenueChangePercent: types.Round2(change / totalBase * 100),
		CustomersProcessed:   len(customers),
		AvgPriceChangePct:    types.Round2(pctSum / float64(len(results))),
		Results:              results,
	}, nil
}

// UpdateWeights partially updates the blend weights: a nil argument
// leaves that weight unchanged. No bounds are enforced here; the
// adjustment clamp is the real safety net.
func (e *Engine) UpdateWeights(alpha, beta, gamma *float64) types.Weights {
	e.mu.Lock()
	defer e.mu.Unlock()

	if alpha != nil {
		e.weights.Alpha = *alpha
	}
	if beta != nil {
		e.weights.Beta = *beta
	}
	if gamma != nil {
		e.weights.Gamma = *gamma
	}

	logging.Info("pricing weights updated",
		zap.Float64("alpha", e.weights.Alpha),
		zap.Float64("beta", e.weights.Beta),
		zap.Float64("gamma", e.weights.Gamma))

	return e.weights
}

// Weights returns the current weight configuration.
func (e *Engine) Weights() types.Weights {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.weights
}

// Constraints returns the current adjustment constraints.
func (e *Engine) Constraints() types.Constraints {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.constraints
}

// Schedule returns the current demand schedule.
func (e *Engine) Schedule() types.DemandSchedule {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.schedule
}

// History returns up to limit most recent results, oldest first.
func (e *Engine) History(limit int) []*types.PricingResult {
	return e.history.recent(limit)
}

// validateFeatures rejects non-finite feature values. A nil or empty
// map is valid: every lookup supplies its own default.
func validateFeatures(features types.FeatureSet) error {
	for name, v := range features {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return errors.Inputf("feature %q has non-finite value", name)
		}
	}
	return nil
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clamp01(v float64) float64 {
	return clamp(v, 0, 1)
}
