package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"broadbandx-pricing/core/churn"
	"broadbandx-pricing/core/pricing"
	"broadbandx-pricing/core/segment"
	"broadbandx-pricing/core/types"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	engine, err := pricing.NewEngine(pricing.DefaultConfig())
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	return NewServer("test", NewHandler(engine, churn.New(), segment.New()))
}

func doJSON(t *testing.T, server *Server, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)
	return rec
}

func TestCalculateEndpoint(t *testing.T) {
	server := newTestServer(t)

	rec := doJSON(t, server, http.MethodPost, "/pricing/calculate", CalculateRequest{
		CustomerID: "cust-1",
		BasePrice:  1999,
		Features:   types.FeatureSet{types.FeatNPSScore: 8},
	})

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var result types.PricingResult
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if result.CustomerID != "cust-1" {
		t.Errorf("customer id = %q, want cust-1", result.CustomerID)
	}
	if result.BasePrice != 1999 {
		t.Errorf("base price = %v, want 1999", result.BasePrice)
	}
	if result.DynamicPrice < 999.5 {
		t.Errorf("dynamic price %v below half of base", result.DynamicPrice)
	}
}

func TestCalculateRejectsNonPositiveBasePrice(t *testing.T) {
	server := newTestServer(t)

	rec := doJSON(t, server, http.MethodPost, "/pricing/calculate", CalculateRequest{BasePrice: -5})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestSimulateEndpointComparison(t *testing.T) {
	server := newTestServer(t)

	rec := doJSON(t, server, http.MethodPost, "/pricing/simulate", SimulateRequest{
		BasePrice: 1499,
		Features:  types.FeatureSet{types.FeatNPSScore: 6},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp SimulateResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Scenarios) != 4 {
		t.Fatalf("got %d scenarios, want 4", len(resp.Scenarios))
	}
	if resp.Comparison.MinPrice > resp.Comparison.AvgPrice || resp.Comparison.AvgPrice > resp.Comparison.MaxPrice {
		t.Errorf("comparison not ordered: %+v", resp.Comparison)
	}
}

func TestSimulateRejectsUnknownScenario(t *testing.T) {
	server := newTestServer(t)

	rec := doJSON(t, server, http.MethodPost, "/pricing/simulate", SimulateRequest{
		BasePrice: 1499,
		Scenarios: []string{"flash_sale"},
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestBatchEndpointSummary(t *testing.T) {
	server := newTestServer(t)

	rec := doJSON(t, server, http.MethodPost, "/pricing/batch", BatchRequest{
		Customers: []CalculateRequest{
			{CustomerID: "a", BasePrice: 500, Features: types.FeatureSet{}},
			{CustomerID: "b", BasePrice: 1500, Features: types.FeatureSet{types.FeatNPSScore: 2}},
		},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp BatchResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Summary.TotalCustomers != 2 {
		t.Errorf("total customers = %d, want 2", resp.Summary.TotalCustomers)
	}
	if resp.Summary.TotalBaseRevenue != 2000 {
		t.Errorf("total base revenue = %v, want 2000", resp.Summary.TotalBaseRevenue)
	}
	if resp.Results[1].CustomerID != "b" {
		t.Errorf("result order not preserved: %+v", resp.Results)
	}
}

func TestUpdateWeightsPartialViaAPI(t *testing.T) {
	server := newTestServer(t)

	gamma := 0.33
	rec := doJSON(t, server, http.MethodPut, "/pricing/weights", UpdateWeightsRequest{Gamma: &gamma})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	cfgRec := doJSON(t, server, http.MethodGet, "/pricing/config", nil)
	var cfg ConfigResponse
	if err := json.Unmarshal(cfgRec.Body.Bytes(), &cfg); err != nil {
		t.Fatalf("decode config: %v", err)
	}
	if cfg.Weights.Gamma != 0.33 {
		t.Errorf("gamma = %v, want 0.33", cfg.Weights.Gamma)
	}
	if cfg.Weights.Alpha != 0.15 || cfg.Weights.Beta != 0.10 {
		t.Errorf("partial update touched other weights: %+v", cfg.Weights)
	}
}

func TestChurnEndpointUnavailableWithoutModel(t *testing.T) {
	server := newTestServer(t)

	rec := doJSON(t, server, http.MethodPost, "/churn/predict", PredictRequest{
		Features: types.FeatureSet{types.FeatNPSScore: 3},
	})
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", rec.Code)
	}
}

func TestSegmentEndpointWithFittedModel(t *testing.T) {
	engine, err := pricing.NewEngine(pricing.DefaultConfig())
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	segModel, err := segment.NewFromArtifact(segment.Artifact{
		FeatureNames: []string{types.FeatPlanPrice},
		ScalerMean:   []float64{1000},
		ScalerScale:  []float64{500},
		Centroids:    [][]float64{{1}, {-1}},
		Profiles: []segment.Profile{
			{ID: 0, Name: "Premium Power Users", PriceElasticity: -0.3},
			{ID: 3, Name: "Budget Users", PriceElasticity: -2.0},
		},
	})
	if err != nil {
		t.Fatalf("NewFromArtifact: %v", err)
	}
	server := NewServer("test", NewHandler(engine, churn.New(), segModel))

	rec := doJSON(t, server, http.MethodPost, "/segments/predict", PredictRequest{
		Features: types.FeatureSet{types.FeatPlanPrice: 1800},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var pred types.SegmentPrediction
	if err := json.Unmarshal(rec.Body.Bytes(), &pred); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if pred.SegmentName != "Premium Power Users" {
		t.Errorf("segment = %q, want Premium Power Users", pred.SegmentName)
	}
}

func TestAnalyzeEndpointActionItems(t *testing.T) {
	server := newTestServer(t)

	rec := doJSON(t, server, http.MethodPost, "/customers/analyze", AnalyzeRequest{
		CustomerID: "cust-9",
		BasePrice:  999,
		Features: types.FeatureSet{
			types.FeatUsageChange30d:  -25,
			types.FeatDaysSinceLogin:  28,
			types.FeatPaymentFailures: 2,
			types.FeatSupportTickets:  5,
			types.FeatNPSScore:        1,
		},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp AnalyzeResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.RiskLevel != "high" {
		t.Errorf("risk level = %q, want high", resp.RiskLevel)
	}
	if len(resp.ActionItems) == 0 {
		t.Error("expected action items for a high risk customer")
	}
	if resp.SegmentName == "" {
		t.Error("expected heuristic segment assignment without a fitted model")
	}
}

func TestROIEndpointDegenerateProjection(t *testing.T) {
	server := newTestServer(t)

	rec := doJSON(t, server, http.MethodPost, "/pricing/roi", ROIRequest{
		CustomersSaved:     0,
		AvgRevenuePerUser:  500,
		AvgLifetimeMonths:  24,
		ImplementationCost: 1000000,
	})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}
}

func TestHistoryEndpointLimit(t *testing.T) {
	server := newTestServer(t)

	for i := 0; i < 5; i++ {
		doJSON(t, server, http.MethodPost, "/pricing/calculate", CalculateRequest{BasePrice: 100})
	}

	rec := doJSON(t, server, http.MethodGet, "/pricing/history?limit=3", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var resp struct {
		Count int `json:"count"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Count != 3 {
		t.Errorf("count = %d, want 3", resp.Count)
	}

	// Non-numeric, zero, and negative limits are all invalid: zero must
	// not fall through to the engine's "everything retained" read.
	for _, v := range []string{"abc", "0", "-1"} {
		if rec := doJSON(t, server, http.MethodGet, "/pricing/history?limit="+v, nil); rec.Code != http.StatusBadRequest {
			t.Errorf("limit=%s status = %d, want 400", v, rec.Code)
		}
	}
}

func TestHealthReportsModelStatus(t *testing.T) {
	server := newTestServer(t)

	rec := doJSON(t, server, http.MethodGet, "/health", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var resp HealthResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Status != "healthy" {
		t.Errorf("status = %q, want healthy", resp.Status)
	}
	if resp.Models["churn"] || resp.Models["segmentation"] {
		t.Errorf("unfitted models reported as loaded: %+v", resp.Models)
	}
	if !resp.Models["pricing"] {
		t.Error("pricing engine not reported as loaded")
	}
}
