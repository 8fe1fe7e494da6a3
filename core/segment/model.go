// Package segment provides the customer segmentation collaborator.
// The model is inference-only: it loads a JSON artifact produced by the
// offline k-means training pipeline (scaler statistics, cluster centroids,
// per-segment profiles) and assigns customers to the nearest centroid.
package segment

import (
	"encoding/json"
	"math"
	"os"

	"broadbandx-pricing/core/types"
	"broadbandx-pricing/internal/errors"
)

// Profile describes one customer segment.
type Profile struct {
	ID              int     `json:"id"`
	Name            string  `json:"name"`
	PriceElasticity float64 `json:"price_elasticity"`
	PricingStrategy string  `json:"pricing_strategy"`
}

// Artifact is the serialized model produced by the training pipeline.
type Artifact struct {
	// FeatureNames fixes the feature vector order
	FeatureNames []string `json:"feature_names"`

	// ScalerMean and ScalerScale are the standardization parameters
	ScalerMean  []float64 `json:"scaler_mean"`
	ScalerScale []float64 `json:"scaler_scale"`

	// Centroids are the cluster centers in scaled feature space
	Centroids [][]float64 `json:"centroids"`

	// Profiles describe each segment, indexed by cluster id
	Profiles []Profile `json:"profiles"`
}

// Model assigns customers to segments by nearest centroid.
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
	if err := validateArtifact(a); err != nil {
		return nil, err
	}
	return &Model{artifact: a, fitted: true}, nil
}

// Load reads a model artifact from a JSON file.
func Load(path string) (*Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.TypeNotFound, "segmentation artifact", err)
	}

	var a Artifact
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, errors.Config("parse segmentation artifact", err)
	}

	return NewFromArtifact(a)
}

func validateArtifact(a Artifact) error {
	n := len(a.FeatureNames)
	if n == 0 {
		return errors.New(errors.TypeConfig, "segmentation artifact has no features")
	}
	if len(a.ScalerMean) != n || len(a.ScalerScale) != n {
		return errors.New(errors.TypeConfig, "segmentation scaler dimensions do not match features")
	}
	if len(a.Centroids) == 0 {
		return errors.New(errors.TypeConfig, "segmentation artifact has no centroids")
	}
	for _, c := range a.Centroids {
		if len(c) != n {
			return errors.New(errors.TypeConfig, "segmentation centroid dimensions do not match features")
		}
	}
	if len(a.Profiles) != len(a.Centroids) {
		return errors.New(errors.TypeConfig, "segmentation profiles do not match centroids")
	}
	return nil
}

// Fitted reports whether the model may be used for prediction.
func (m *Model) Fitted() bool {
	return m != nil && m.fitted
}

// PredictSingle assigns a customer to the nearest segment centroid.
// Confidence is 1 - d_assigned/sum(d): near 1 when the customer sits
// on its centroid, near 0 when all centroids are equidistant.
func (m *Model) PredictSingle(features types.FeatureSet) (types.SegmentPrediction, error) {
	if !m.Fitted() {
		return types.SegmentPrediction{}, errors.ModelUnavailable("segmentation")
	}

	scaled := m.scale(features)

	assigned := 0
	minDist := math.Inf(1)
	var distSum float64
	distances := make([]float64, len(m.artifact.Centroids))

	for i, centroid := range m.artifact.Centroids {
		d := euclidean(scaled, centroid)
		distances[i] = d
		distSum += d
		if d < minDist {
			minDist = d
			assigned = i
		}
	}

	confidence := 0.0
	if distSum > 0 {
		confidence = 1 - distances[assigned]/distSum
	}

	profile := m.artifact.Profiles[assigned]
	return types.SegmentPrediction{
		SegmentID:       profile.ID,
		SegmentName:     profile.Name,
		PriceElasticity: profile.PriceElasticity,
		PricingStrategy: profile.PricingStrategy,
		Confidence:      types.Round4(confidence),
	}, nil
}

// Profiles returns the segment profiles, or nil when unfitted.
func (m *Model) Profiles() []Profile {
	if !m.Fitted() {
		return nil
	}
	out := make([]Profile, len(m.artifact.Profiles))
	copy(out, m.artifact.Profiles)
	return out
}

func (m *Model) scale(features types.FeatureSet) []float64 {
	scaled := make([]float64, len(m.artifact.FeatureNames))
	for i, name := range m.artifact.FeatureNames {
		v := features.Get(name, 0)
		scale := m.artifact.ScalerScale[i]
		if scale == 0 {
			scale = 1
		}
		scaled[i] = (v - m.artifact.ScalerMean[i]) / scale
	}
	return scaled
}

func euclidean(a, b []float64) float64 {
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return math.Sqrt(sum)
}
