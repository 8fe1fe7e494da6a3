// Package api - Request and response types
package api

import (
	"time"

	"broadbandx-pricing/core/types"
)

// CalculateRequest asks for one dynamic price.
type CalculateRequest struct {
	// CustomerID is an optional caller-side identifier, echoed back
	CustomerID string `json:"customer_id,omitempty"`

	// BasePrice is the plan's base price; must be positive
	BasePrice float64 `json:"base_price"`

	// Features is the customer feature map; missing keys use defaults
	Features types.FeatureSet `json:"features"`

	// Timestamp overrides "now" for the demand factor
	Timestamp *time.Time `json:"timestamp,omitempty"`
}

// SimulateRequest prices one customer under the canonical scenarios.
type SimulateRequest struct {
	BasePrice float64          `json:"base_price"`
	Features  types.FeatureSet `json:"features"`

	// Scenarios defaults to all four canonical scenarios when empty
	Scenarios []string `json:"scenarios,omitempty"`
}

// ScenarioComparison summarizes the spread across scenarios.
type ScenarioComparison struct {
	MinPrice float64 `json:"min_price"`
	MaxPrice float64 `json:"max_price"`
	AvgPrice float64 `json:"avg_price"`
}

// SimulateResponse is the scenario simulation result.
type SimulateResponse struct {
	BasePrice  float64                         `json:"base_price"`
	Scenarios  map[string]*types.PricingResult `json:"scenarios"`
	Comparison ScenarioComparison              `json:"comparison"`
}

// BatchRequest prices multiple customers in one call.
type BatchRequest struct {
	Customers []CalculateRequest `json:"customers"`
}

// BatchResponse carries per-customer results plus the revenue summary.
type BatchResponse struct {
	Results []BatchItem  `json:"results"`
	Summary BatchSummary `json:"summary"`
}

// BatchItem is the condensed per-customer view of a batch run.
type BatchItem struct {
	CustomerID         string  `json:"customer_id,omitempty"`
	BasePrice          float64 `json:"base_price"`
	DynamicPrice       float64 `json:"dynamic_price"`
	PriceChangePercent float64 `json:"price_change_percent"`
	ChurnRisk          float64 `json:"churn_risk"`
}

// BatchSummary aggregates the revenue impact of a batch run.
type BatchSummary struct {
	TotalCustomers       int     `json:"total_customers"`
	TotalBaseRevenue     float64 `json:"total_base_revenue"`
	TotalDynamicRevenue  float64 `json:"total_dynamic_revenue"`
	RevenueChange        float64 `json:"revenue_change"`
	RevenueChangePercent float64 `json:"revenue_change_percent"`
}

// ROIRequest asks for a retention ROI projection.
type ROIRequest struct {
	CustomersSaved     int     `json:"customers_saved"`
	AvgRevenuePerUser  float64 `json:"avg_revenue_per_user"`
	AvgLifetimeMonths  int     `json:"avg_lifetime_months"`
	ImplementationCost float64 `json:"implementation_cost"`
}

// UpdateWeightsRequest partially updates the blend weights.
// Omitted fields are left unchanged.
type UpdateWeightsRequest struct {
	Alpha *float64 `json:"alpha,omitempty"`
	Beta  *float64 `json:"beta,omitempty"`
	Gamma *float64 `json:"gamma,omitempty"`
}

// PredictRequest asks a collaborator model for a single prediction.
type PredictRequest struct {
	CustomerID string           `json:"customer_id,omitempty"`
	Features   types.FeatureSet `json:"features"`
}

// ConfigResponse exposes the engine configuration.
type ConfigResponse struct {
	Weights        types.Weights        `json:"weights"`
	Constraints    types.Constraints    `json:"constraints"`
	DemandSchedule types.DemandSchedule `json:"demand_factors"`
	Formula        string               `json:"formula"`
}

// AnalyzeRequest asks for the combined customer view.
type AnalyzeRequest struct {
	CustomerID string           `json:"customer_id,omitempty"`
	BasePrice  float64          `json:"base_price"`
	Features   types.FeatureSet `json:"features"`
}

// AnalyzeResponse combines churn, segmentation, and pricing for one
// customer, with ordered action items.
type AnalyzeResponse struct {
	CustomerID             string    `json:"customer_id,omitempty"`
	ChurnProbability       float64   `json:"churn_probability"`
	ChurnPrediction        int       `json:"churn_prediction"`
	RiskLevel              string    `json:"risk_level"`
	SegmentID              int       `json:"segment_id"`
	SegmentName            string    `json:"segment_name"`
	PriceElasticity        float64   `json:"price_elasticity"`
	BasePrice              float64   `json:"base_price"`
	RecommendedPrice       float64   `json:"recommended_price"`
	PriceAdjustmentPercent float64   `json:"price_adjustment_percent"`
	OverallRecommendation  string    `json:"overall_recommendation"`
	ActionItems            []string  `json:"action_items"`
	Timestamp              time.Time `json:"timestamp"`
}

// HealthResponse reports service and model status.
type HealthResponse struct {
	Status  string          `json:"status"`
	Version string          `json:"version"`
	Time    string          `json:"time"`
	Models  map[string]bool `json:"models"`
}
