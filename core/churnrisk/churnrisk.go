// Package churnrisk estimates the churn risk factor R_c in [0,1].
//
// Mirrors core/elasticity: a Delegating estimator backed by the churn
// collaborator and a fixed-weight feature Heuristic, both on the same
// [0,1] scale and directionally consistent (worse indicators, higher risk).
package churnrisk

import (
	"go.uber.org/zap"

	"broadbandx-pricing/core/types"
	"broadbandx-pricing/internal/logging"
)

// Heuristic indicator weights, summing to 1.0.
const (
	weightUsageDecline    = 0.25
	weightInactivity      = 0.20
	weightPaymentFailures = 0.20
	weightSupportTickets  = 0.15
	weightNPS             = 0.20
)

// Predictor is the capability consumed from the churn collaborator.
type Predictor interface {
	Fitted() bool
	PredictSingle(features types.FeatureSet) (types.ChurnPrediction, error)
}

// Estimator produces a churn risk probability for a customer.
type Estimator interface {
	Estimate(features types.FeatureSet) float64
}

// ForPredictor selects the strategy for one call: delegate when a fitted
// predictor is attached, otherwise fall back to the heuristic.
func ForPredictor(p Predictor) Estimator {
	if p != nil && p.Fitted() {
		return Delegating{Predictor: p}
	}
	return Heuristic{}
}

// Heuristic combines five normalized risk indicators with fixed weights.
// Reference ranges: usage decline 0-30, inactivity 0-30 days, payment
// failures 0-3, support tickets 0-5, plus an NPS-derived term.
type Heuristic struct{}

// Estimate implements Estimator.
func (Heuristic) Estimate(features types.FeatureSet) float64 {
	usageDecline := -features.Get(types.FeatUsageChange30d, 0)
	daysInactive := features.Get(types.FeatDaysSinceLogin, 0)
	paymentIssues := features.Get(types.FeatPaymentFailures, 0)
	supportTickets := features.Get(types.FeatSupportTickets, 0)
	nps := features.Get(types.FeatNPSScore, 5)

	risk := weightUsageDecline*normalize(usageDecline, 0, 30) +
		weightInactivity*normalize(daysInactive, 0, 30) +
		weightPaymentFailures*normalize(paymentIssues, 0, 3) +
		weightSupportTickets*normalize(supportTickets, 0, 5) +
		weightNPS*(1-nps/10)

	return types.Round4(clamp01(risk))
}

// Delegating returns the collaborator's churn probability.
// A collaborator failure degrades to the heuristic instead of propagating.
type Delegating struct {
	Predictor Predictor
}

// Estimate implements Estimator.
func (d Delegating) Estimate(features types.FeatureSet) float64 {
	pred, err := d.Predictor.PredictSingle(features)
	if err != nil {
		logging.Warn("churn predict failed, using heuristic risk", zap.Error(err))
		return Heuristic{}.Estimate(features)
	}
	return clamp01(pred.ChurnProbability)
}

// normalize min-max scales v into [0,1] against a fixed reference range.
func normalize(v, lo, hi float64) float64 {
	return clamp01((v - lo) / (hi - lo))
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
