// Package types - Shared domain types for the pricing service
package types

import "time"

// Canonical feature keys
const (
	FeatUsageChange30d    = "usage_change_30d"
	FeatDaysSinceLogin    = "days_since_login"
	FeatPaymentFailures   = "payment_failures_90d"
	FeatSupportTickets    = "support_tickets"
	FeatContractAgeMonths = "contract_age_months"
	FeatAvgMonthlyUsageGB = "avg_monthly_usage_gb"
	FeatPlanPrice         = "plan_price"
	FeatLatePayments      = "late_payments_count"
	FeatNPSScore          = "nps_score"
	FeatComplaints        = "complaints_count"
	FeatSessionCount30d   = "session_count_30d"
	FeatAvgSpeedMbps      = "avg_speed_mbps"
	FeatTotalRevenue      = "total_revenue"
)

// FeatureSet maps a named numeric feature to its value.
// No key is required; every lookup supplies a default.
type FeatureSet map[string]float64

// Get returns the feature value, or def when the key is absent.
func (f FeatureSet) Get(key string, def float64) float64 {
	if v, ok := f[key]; ok {
		return v
	}
	return def
}

// Weights are the multipliers of the pricing formula
// P_dynamic = P_base x (1 + alpha*D_t - beta*EF_c - gamma*R_c).
// They are independent multipliers and do not need to sum to 1.
type Weights struct {
	// Alpha weights the time-of-day demand factor
	Alpha float64 `json:"alpha"`

	// Beta weights the elasticity discount intensity
	Beta float64 `json:"beta"`

	// Gamma weights the churn risk discount
	Gamma float64 `json:"gamma"`
}

// Constraints bound the net price adjustment.
// Invariant: MinDiscount < 0 <= MaxPremium.
type Constraints struct {
	// MinDiscount is the largest allowed discount, as a negative fraction
	MinDiscount float64 `json:"min_discount"`

	// MaxPremium is the largest allowed premium, as a positive fraction
	MaxPremium float64 `json:"max_premium"`

	// ChurnThreshold is the maximum acceptable churn probability
	ChurnThreshold float64 `json:"churn_threshold"`
}

// DemandSchedule configures the time-dependent demand factor.
type DemandSchedule struct {
	// PeakStartHour is the first peak hour of day, inclusive
	PeakStartHour int `json:"peak_hour_start"`

	// PeakEndHour is the last peak hour of day, inclusive
	PeakEndHour int `json:"peak_hour_end"`

	// PeakMultiplier applies during peak hours
	PeakMultiplier float64 `json:"peak_multiplier"`

	// OffpeakMultiplier applies outside peak hours
	OffpeakMultiplier float64 `json:"offpeak_multiplier"`

	// WeekendMultiplier is added on Saturdays and Sundays
	WeekendMultiplier float64 `json:"weekend_multiplier"`
}

// PricingFactors is the per-signal breakdown of a pricing decision.
type PricingFactors struct {
	// DemandFactor is the time-dependent demand signal D_t
	DemandFactor float64 `json:"demand_factor"`

	// Elasticity is the raw elasticity coefficient E_c, in [-2.5, -0.2]
	Elasticity float64 `json:"elasticity"`

	// ElasticityFactor is E_c normalized to a [0,1] discount intensity
	ElasticityFactor float64 `json:"elasticity_factor"`

	// ChurnRisk is the churn probability R_c, in [0,1]
	ChurnRisk float64 `json:"churn_risk"`
}

// PricingResult is the immutable output of one pricing calculation.
type PricingResult struct {
	// ID uniquely identifies this calculation
	ID string `json:"id"`

	// CustomerID is the caller-supplied customer identifier, if any
	CustomerID string `json:"customer_id,omitempty"`

	// BasePrice is the plan's base price P_base
	BasePrice float64 `json:"base_price"`

	// DynamicPrice is the computed price, rounded to 2 decimals
	DynamicPrice float64 `json:"dynamic_price"`

	// PriceChange is DynamicPrice - BasePrice
	PriceChange float64 `json:"price_change"`

	// PriceChangePercent is the change relative to BasePrice, in percent
	PriceChangePercent float64 `json:"price_change_percent"`

	// Factors is the signal breakdown
	Factors PricingFactors `json:"factors"`

	// Weights is the weight snapshot used for this calculation
	Weights Weights `json:"weights"`

	// Adjustment is the net fractional change actually applied, post-clamp
	Adjustment float64 `json:"adjustment"`

	// Recommendation is the pricing action suggestion
	Recommendation string `json:"recommendation"`

	// Timestamp is the demand evaluation time
	Timestamp time.Time `json:"timestamp"`
}

// SegmentPrediction is the output of the segmentation collaborator.
type SegmentPrediction struct {
	SegmentID       int     `json:"segment_id"`
	SegmentName     string  `json:"segment_name"`
	PriceElasticity float64 `json:"price_elasticity"`
	PricingStrategy string  `json:"pricing_strategy"`
	Confidence      float64 `json:"confidence"`
}

// ChurnPrediction is the output of the churn collaborator.
type ChurnPrediction struct {
	ChurnProbability float64 `json:"churn_probability"`
	ChurnPrediction  int     `json:"churn_prediction"`
	RiskLevel        string  `json:"risk_level"`
	Recommendation   string  `json:"recommendation"`
}

// RevenueOptimization aggregates a batch pricing run.
type RevenueOptimization struct {
	TotalBaseRevenue     float64          `json:"total_base_revenue"`
	TotalDynamicRevenue  float64          `json:"total_dynamic_revenue"`
	RevenueChange        float64          `json:"revenue_change"`
	RevenueChangePercent float64          `json:"revenue_change_percent"`
	CustomersProcessed   int              `json:"customers_processed"`
	AvgPriceChangePct    float64          `json:"avg_price_change_pct"`
	Results              []*PricingResult `json:"individual_results"`
}

// ROIProjection is the output of a retention ROI projection.
type ROIProjection struct {
	CustomersSaved     int     `json:"customers_saved"`
	RevenueSaved       float64 `json:"revenue_saved"`
	ImplementationCost float64 `json:"implementation_cost"`
	NetBenefit         float64 `json:"net_benefit"`
	ROIPercent         float64 `json:"roi_percent"`
	PaybackMonths      float64 `json:"payback_months"`
}
