// Package api - Request orchestration
// The handler wraps the engine and collaborators; it contains no pricing
// logic of its own.
package api

import (
	"time"

	"broadbandx-pricing/core/churn"
	"broadbandx-pricing/core/pricing"
	"broadbandx-pricing/core/segment"
	"broadbandx-pricing/core/types"
	"broadbandx-pricing/internal/errors"
)

// Handler executes API operations against the engine and models.
type Handler struct {
	engine     *pricing.Engine
	churnModel *churn.Model
	segModel   *segment.Model
}

// NewHandler creates a handler. Either model may be nil or unfitted;
// the engine falls back to its heuristics and the direct model
// endpoints report MODEL_UNAVAILABLE.
func NewHandler(engine *pricing.Engine, churnModel *churn.Model, segModel *segment.Model) *Handler {
	return &Handler{
		engine:     engine,
		churnModel: churnModel,
		segModel:   segModel,
	}
}

func (h *Handler) calculate(req *CalculateRequest) (*types.PricingResult, error) {
	var ts time.Time
	if req.Timestamp != nil {
		ts = *req.Timestamp
	}

	result, err := h.engine.CalculateDynamicPrice(req.BasePrice, req.Features, ts)
	if err != nil {
		return nil, err
	}
	result.CustomerID = req.CustomerID
	return result, nil
}

func (h *Handler) simulate(req *SimulateRequest) (*SimulateResponse, error) {
	scenarios, err := h.engine.SimulatePricingScenarios(req.BasePrice, req.Features, req.Scenarios)
	if err != nil {
		return nil, err
	}

	comparison := ScenarioComparison{}
	first := true
	var prices []float64
	for _, result := range scenarios {
		prices = append(prices, result.DynamicPrice)
		if first || result.DynamicPrice < comparison.MinPrice {
			comparison.MinPrice = result.DynamicPrice
		}
		if first || result.DynamicPrice > comparison.MaxPrice {
			comparison.MaxPrice = result.DynamicPrice
		}
		first = false
	}
	comparison.AvgPrice = types.RoundMoney(types.SumMoney(prices...) / float64(len(prices)))

	return &SimulateResponse{
		BasePrice:  req.BasePrice,
		Scenarios:  scenarios,
		Comparison: comparison,
	}, nil
}

func (h *Handler) batch(req *BatchRequest) (*BatchResponse, error) {
	if len(req.Customers) == 0 {
		return nil, errors.Input("customers list is empty")
	}

	customers := make([]types.FeatureSet, len(req.Customers))
	basePrices := make([]float64, len(req.Customers))
	for i, c := range req.Customers {
		customers[i] = c.Features
		basePrices[i] = c.BasePrice
	}

	opt, err := h.engine.OptimizeRevenue(customers, basePrices, time.Time{})
	if err != nil {
		return nil, err
	}

	items := make([]BatchItem, len(opt.Results))
	for i, result := range opt.Results {
		items[i] = BatchItem{
			CustomerID:         req.Customers[i].CustomerID,
			BasePrice:          result.BasePrice,
			DynamicPrice:       result.DynamicPrice,
			PriceChangePercent: result.PriceChangePercent,
			ChurnRisk:          result.Factors.ChurnRisk,
		}
	}

	return &BatchResponse{
		Results: items,
		Summary: BatchSummary{
			TotalCustomers:       opt.CustomersProcessed,
			TotalBaseRevenue:     opt.TotalBaseRevenue,
			TotalDynamicRevenue:  opt.TotalDynamicRevenue,
			RevenueChange:        opt.RevenueChange,
			RevenueChangePercent: opt.RevenueChangePercent,
		},
	}, nil
}

func (h *Handler) predictChurn(req *PredictRequest) (*types.ChurnPrediction, error) {
	if h.churnModel == nil || !h.churnModel.Fitted() {
		return nil, errors.ModelUnavailable("churn")
	}
	pred, err := h.churnModel.PredictSingle(req.Features)
	if err != nil {
		return nil, err
	}
	return &pred, nil
}

func (h *Handler) predictSegment(req *PredictRequest) (*types.SegmentPrediction, error) {
	if h.segModel == nil || !h.segModel.Fitted() {
		return nil, errors.ModelUnavailable("segmentation")
	}
	pred, err := h.segModel.PredictSingle(req.Features)
	if err != nil {
		return nil, err
	}
	return &pred, nil
}

// analyze combines pricing, churn, and segmentation for one customer.
func (h *Handler) analyze(req *AnalyzeRequest) (*AnalyzeResponse, error) {
	result, err := h.engine.CalculateDynamicPrice(req.BasePrice, req.Features, time.Time{})
	if err != nil {
		return nil, err
	}

	churnRisk := result.Factors.ChurnRisk
	prediction := 0
	if churnRisk >= 0.5 {
		prediction = 1
	}
	riskLevel := churn.RiskLevel(churnRisk)

	// Prefer the fitted segmentation model; otherwise map the
	// elasticity coefficient onto its canonical segment band.
	var segmentID int
	var segmentName string
	if h.segModel != nil && h.segModel.Fitted() {
		if pred, err := h.segModel.PredictSingle(req.Features); err == nil {
			segmentID = pred.SegmentID
			segmentName = pred.SegmentName
		}
	}
	if segmentName == "" {
		profile := segment.ProfileForElasticity(result.Factors.Elasticity)
		segmentID = profile.ID
		segmentName = profile.Name
	}

	return &AnalyzeResponse{
		CustomerID:             req.CustomerID,
		ChurnProbability:       churnRisk,
		ChurnPrediction:        prediction,
		RiskLevel:              riskLevel,
		SegmentID:              segmentID,
		SegmentName:            segmentName,
		PriceElasticity:        result.Factors.Elasticity,
		BasePrice:              req.BasePrice,
		RecommendedPrice:       result.DynamicPrice,
		PriceAdjustmentPercent: result.PriceChangePercent,
		OverallRecommendation:  result.Recommendation,
		ActionItems:            actionItems(riskLevel, churnRisk, req.Features),
		Timestamp:              time.Now().UTC(),
	}, nil
}

// actionItems orders concrete follow-ups by urgency.
func actionItems(riskLevel string, churnRisk float64, features types.FeatureSet) []string {
	var items []string

	switch riskLevel {
	case "high":
		items = append(items,
			"URGENT: Initiate proactive retention outreach",
			"Apply retention discount immediately")
	case "medium":
		items = append(items,
			"Schedule customer success check-in",
			"Consider loyalty rewards program")
	}

	if churnRisk > 0.3 {
		items = append(items, "Review and resolve any pending support tickets")
	}
	if features.Get(types.FeatPaymentFailures, 0) > 0 {
		items = append(items, "Address payment issues with customer")
	}

	if len(items) == 0 {
		items = append(items,
			"Maintain current engagement level",
			"Consider upsell opportunities")
	}
	return items
}

// modelStatus reports which models are loaded and fitted.
func (h *Handler) modelStatus() map[string]bool {
	return map[string]bool{
		"churn":        h.churnModel != nil && h.churnModel.Fitted(),
		"segmentation": h.segModel != nil && h.segModel.Fitted(),
		"pricing":      h.engine != nil,
	}
}
