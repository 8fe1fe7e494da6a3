// Package elasticity estimates the customer price elasticity coefficient E_c.
//
// Two strategies implement the same contract: a Delegating estimator backed
// by the segmentation collaborator, and a feature Heuristic used when no
// fitted collaborator is attached. Both return values in [-2.5, -0.2] on the
// same scale, so the pricing blend never needs to know which one ran.
package elasticity

import (
	"go.uber.org/zap"

	"broadbandx-pricing/core/types"
	"broadbandx-pricing/internal/logging"
)

// Elasticity coefficient bounds. More negative = more price sensitive.
const (
	Min = -2.5
	Max = -0.2
)

// Segmenter is the capability consumed from the segmentation collaborator.
type Segmenter interface {
	Fitted() bool
	PredictSingle(features types.FeatureSet) (types.SegmentPrediction, error)
}

// Estimator produces an elasticity coefficient for a customer.
type Estimator interface {
	Estimate(features types.FeatureSet) float64
}

// ForSegmenter selects the strategy for one call: delegate when a fitted
// segmenter is attached, otherwise fall back to the heuristic.
func ForSegmenter(s Segmenter) Estimator {
	if s != nil && s.Fitted() {
		return Delegating{Segmenter: s}
	}
	return Heuristic{}
}

// Heuristic derives elasticity from satisfaction, spend, and usage.
// Satisfied, high-spend, high-usage customers are modeled as least
// price sensitive.
type Heuristic struct{}

// Estimate implements Estimator.
func (Heuristic) Estimate(features types.FeatureSet) float64 {
	nps := features.Get(types.FeatNPSScore, 5)
	planPrice := features.Get(types.FeatPlanPrice, 1000)
	usage := features.Get(types.FeatAvgMonthlyUsageGB, 200)

	npsFactor := nps / 10
	priceFactor := min(planPrice/2000, 1)
	usageFactor := min(usage/500, 1)

	elasticity := -2.0 + 0.7*npsFactor + 0.5*priceFactor + 0.3*usageFactor

	return types.Round2(clamp(elasticity))
}

// Delegating returns the predicted segment's representative elasticity.
// A collaborator failure degrades to the heuristic instead of propagating.
type Delegating struct {
	Segmenter Segmenter
}

// Estimate implements Estimator.
func (d Delegating) Estimate(features types.FeatureSet) float64 {
	pred, err := d.Segmenter.PredictSingle(features)
	if err != nil {
		logging.Warn("segmentation predict failed, using heuristic elasticity", zap.Error(err))
		return Heuristic{}.Estimate(features)
	}
	return clamp(pred.PriceElasticity)
}

func clamp(e float64) float64 {
	if e < Min {
		return Min
	}
	if e > Max {
		return Max
	}
	return e
}
