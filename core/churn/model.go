// Package churn provides the churn prediction collaborator.
// The model is inference-only: it loads a JSON artifact produced by the
// offline training pipeline (feature order, standardization parameters,
// logistic coefficients) and scores single customers.
package churn

import (
	"encoding/json"
	"math"
	"os"
	"strings"

	"broadbandx-pricing/core/types"
	"broadbandx-pricing/internal/errors"
)

// Artifact is the serialized model produced by the training pipeline.
type Artifact struct {
	// FeatureNames fixes the feature vector order
	FeatureNames []string `json:"feature_names"`

	// ScalerMean and ScalerScale are the standardization parameters
	ScalerMean  []float64 `json:"scaler_mean"`
	ScalerScale []float64 `json:"scaler_scale"`

	// Coefficients are the per-feature logistic weights
	Coefficients []float64 `json:"coefficients"`

	// Intercept is the logistic bias term
	Intercept float64 `json:"intercept"`
}

// Model scores churn probability for single customers.
type Model struct {
	artifact Artifact
	fitted   bool
}

// New returns an unfitted model. PredictSingle fails until an
// artifact is loaded.
func New() *Model {
	return &Model{}
}

// NewFromArtifact builds a fitted model from an in-memory artifact.
func NewFromArtifact(a Artifact) (*Model, error) {
	n := len(a.FeatureNames)
	if n == 0 {
		return nil, errors.New(errors.TypeConfig, "churn artifact has no features")
	}
	if len(a.ScalerMean) != n || len(a.ScalerScale) != n || len(a.Coefficients) != n {
		return nil, errors.New(errors.TypeConfig, "churn artifact dimensions do not match features")
	}
	return &Model{artifact: a, fitted: true}, nil
}

// Load reads a model artifact from a JSON file.
func Load(path string) (*Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.TypeNotFound, "churn artifact", err)
	}

	var a Artifact
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, errors.Config("parse churn artifact", err)
	}

	return NewFromArtifact(a)
}

// Fitted reports whether the model may be used for prediction.
func (m *Model) Fitted() bool {
	return m != nil && m.fitted
}

// PredictSingle scores one customer and classifies the risk level:
// low < 0.3 <= medium < 0.6 <= high.
func (m *Model) PredictSingle(features types.FeatureSet) (types.ChurnPrediction, error) {
	if !m.Fitted() {
		return types.ChurnPrediction{}, errors.ModelUnavailable("churn")
	}

	z := m.artifact.Intercept
	for i, name := range m.artifact.FeatureNames {
		scale := m.artifact.ScalerScale[i]
		if scale == 0 {
			scale = 1
		}
		x := (features.Get(name, 0) - m.artifact.ScalerMean[i]) / scale
		z += m.artifact.Coefficients[i] * x
	}

	probability := types.Round4(1 / (1 + math.Exp(-z)))

	prediction := 0
	if probability >= 0.5 {
		prediction = 1
	}

	return types.ChurnPrediction{
		ChurnProbability: probability,
		ChurnPrediction:  prediction,
		RiskLevel:        RiskLevel(probability),
		Recommendation:   retentionRecommendation(probability, features),
	}, nil
}

// RiskLevel classifies a churn probability.
func RiskLevel(probability float64) string {
	switch {
	case probability < 0.3:
		return "low"
	case probability < 0.6:
		return "medium"
	default:
		return "high"
	}
}

// retentionRecommendation names the concrete risk drivers behind a score
// so support staff can act on them.
func retentionRecommendation(probability float64, features types.FeatureSet) string {
	if probability < 0.3 {
		return "Customer is stable. Continue standard engagement."
	}

	var riskFactors []string
	if features.Get(types.FeatUsageChange30d, 0) < -10 {
		riskFactors = append(riskFactors, "declining usage")
	}
	if features.Get(types.FeatDaysSinceLogin, 0) > 14 {
		riskFactors = append(riskFactors, "low engagement")
	}
	if features.Get(types.FeatPaymentFailures, 0) > 0 {
		riskFactors = append(riskFactors, "payment issues")
	}
	if features.Get(types.FeatSupportTickets, 0) > 3 {
		riskFactors = append(riskFactors, "frequent support requests")
	}
	if features.Get(types.FeatNPSScore, 5) < 5 {
		riskFactors = append(riskFactors, "low satisfaction")
	}

	action := "Consider proactive outreach"
	if probability >= 0.6 {
		action = "URGENT: Immediate intervention required"
	}

	if len(riskFactors) > 0 {
		return action + ". Key risk factors: " + strings.Join(riskFactors, ", ") + "."
	}
	return action + ". Monitor customer engagement closely."
}
