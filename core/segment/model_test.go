package segment

import (
	"testing"

	"broadbandx-pricing/core/types"
	"broadbandx-pricing/internal/errors"
)

func testArtifact() Artifact {
	return Artifact{
		FeatureNames: []string{types.FeatAvgMonthlyUsageGB, types.FeatPlanPrice, types.FeatNPSScore},
		ScalerMean:   []float64{200, 1000, 6},
		ScalerScale:  []float64{150, 600, 2.5},
		Centroids: [][]float64{
			{1.5, 1.2, 1.0},   // high usage, high price, happy
			{-1.0, -1.0, -1.2}, // low usage, cheap plan, unhappy
		},
		Profiles: []Profile{
			{ID: 0, Name: "Premium Power Users", PriceElasticity: -0.3, PricingStrategy: "loyalty"},
			{ID: 1, Name: "Budget Users", PriceElasticity: -2.0, PricingStrategy: "offpeak"},
		},
	}
}

func TestPredictSingleNearestCentroid(t *testing.T) {
	model, err := NewFromArtifact(testArtifact())
	if err != nil {
		t.Fatalf("NewFromArtifact: %v", err)
	}

	premium := types.FeatureSet{
		types.FeatAvgMonthlyUsageGB: 430,
		types.FeatPlanPrice:         1750,
		types.FeatNPSScore:          8.5,
	}
	pred, err := model.PredictSingle(premium)
	if err != nil {
		t.Fatalf("PredictSingle: %v", err)
	}
	if pred.SegmentID != 0 {
		t.Errorf("premium customer assigned to segment %d, want 0", pred.SegmentID)
	}
	if pred.PriceElasticity != -0.3 {
		t.Errorf("elasticity = %v, want -0.3", pred.PriceElasticity)
	}
	if pred.Confidence <= 0 || pred.Confidence >= 1 {
		t.Errorf("confidence = %v, want in (0,1)", pred.Confidence)
	}

	budget := types.FeatureSet{
		types.FeatAvgMonthlyUsageGB: 40,
		types.FeatPlanPrice:         350,
		types.FeatNPSScore:          3,
	}
	pred, err = model.PredictSingle(budget)
	if err != nil {
		t.Fatalf("PredictSingle: %v", err)
	}
	if pred.SegmentID != 1 {
		t.Errorf("budget customer assigned to segment %d, want 1", pred.SegmentID)
	}
}

func TestPredictSingleMissingFeaturesDefaultToZero(t *testing.T) {
	model, err := NewFromArtifact(testArtifact())
	if err != nil {
		t.Fatalf("NewFromArtifact: %v", err)
	}

	// Empty feature set must still produce a valid prediction.
	pred, err := model.PredictSingle(types.FeatureSet{})
	if err != nil {
		t.Fatalf("PredictSingle with empty features: %v", err)
	}
	if pred.SegmentName == "" {
		t.Error("expected a segment name for empty features")
	}
}

func TestUnfittedModelRejectsPrediction(t *testing.T) {
	model := New()
	if model.Fitted() {
		t.Fatal("new model must not report fitted")
	}

	_, err := model.PredictSingle(types.FeatureSet{})
	if err == nil {
		t.Fatal("expected error from unfitted model")
	}
	if !errors.IsType(err, errors.TypeModelUnavailable) {
		t.Errorf("error type = %v, want MODEL_UNAVAILABLE", err)
	}
}

func TestArtifactValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Artifact)
	}{
		{"no features", func(a *Artifact) { a.FeatureNames = nil }},
		{"scaler mismatch", func(a *Artifact) { a.ScalerMean = a.ScalerMean[:1] }},
		{"no centroids", func(a *Artifact) { a.Centroids = nil }},
		{"centroid dim mismatch", func(a *Artifact) { a.Centroids[0] = a.Centroids[0][:1] }},
		{"profile count mismatch", func(a *Artifact) { a.Profiles = a.Profiles[:1] }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := testArtifact()
			tt.mutate(&a)
			if _, err := NewFromArtifact(a); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestProfileForElasticityBands(t *testing.T) {
	tests := []struct {
		elasticity float64
		want       string
	}{
		{-0.3, "Premium Power Users"},
		{-0.8, "Casual Premium"},
		{-1.2, "Value-Seekers"},
		{-1.8, "Price-Conscious"},
		{-2.3, "Budget Users"},
	}

	for _, tt := range tests {
		if got := ProfileForElasticity(tt.elasticity); got.Name != tt.want {
			t.Errorf("ProfileForElasticity(%v) = %s, want %s", tt.elasticity, got.Name, tt.want)
		}
	}
}
