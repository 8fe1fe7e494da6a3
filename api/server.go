// Package api - Thin HTTP layer
// The server is only responsible for input ingestion, engine orchestration,
// and output serialization. It never performs pricing logic.
package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"broadbandx-pricing/internal/errors"
	"broadbandx-pricing/internal/logging"
)

// PricingFormula documents the blend for the config endpoint.
const PricingFormula = "P_dynamic = P_base x (1 + alpha*D_t - beta*EF_c - gamma*R_c)"

// Server is the API server
type Server struct {
	handler *Handler
	mux     *http.ServeMux
	version string
}

// NewServer creates a new API server around a handler.
func NewServer(version string, handler *Handler) *Server {
	s := &Server{
		handler: handler,
		mux:     http.NewServeMux(),
		version: version,
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	// Pricing endpoints
	s.mux.HandleFunc("POST /pricing/calculate", s.handleCalculate)
	s.mux.HandleFunc("POST /pricing/simulate", s.handleSimulate)
	s.mux.HandleFunc("POST /pricing/batch", s.handleBatch)
	s.mux.HandleFunc("POST /pricing/roi", s.handleROI)
	s.mux.HandleFunc("GET /pricing/config", s.handleConfig)
	s.mux.HandleFunc("PUT /pricing/weights", s.handleUpdateWeights)
	s.mux.HandleFunc("GET /pricing/history", s.handleHistory)

	// Collaborator model endpoints
	s.mux.HandleFunc("POST /churn/predict", s.handlePredictChurn)
	s.mux.HandleFunc("POST /segments/predict", s.handlePredictSegment)

	// Combined analysis
	s.mux.HandleFunc("POST /customers/analyze", s.handleAnalyze)

	// Supporting endpoints
	s.mux.HandleFunc("GET /health", s.handleHealth)
	s.mux.HandleFunc("GET /version", s.handleVersion)
}

func (s *Server) handleCalculate(w http.ResponseWriter, r *http.Request) {
	var req CalculateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, errors.Wrap(errors.TypeInput, "invalid JSON body", err))
		return
	}

	result, err := s.handler.calculate(&req)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, result, http.StatusOK)
}

func (s *Server) handleSimulate(w http.ResponseWriter, r *http.Request) {
	var req SimulateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, errors.Wrap(errors.TypeInput, "invalid JSON body", err))
		return
	}

	resp, err := s.handler.simulate(&req)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, resp, http.StatusOK)
}

func (s *Server) handleBatch(w http.ResponseWriter, r *http.Request) {
	var req BatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, errors.Wrap(errors.TypeInput, "invalid JSON body", err))
		return
	}

	resp, err := s.handler.batch(&req)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, resp, http.StatusOK)
}

func (s *Server) handleROI(w http.ResponseWriter, r *http.Request) {
	var req ROIRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, errors.Wrap(errors.TypeInput, "invalid JSON body", err))
		return
	}

	roi, err := s.handler.engine.CalculateROIProjection(
		req.CustomersSaved, req.AvgRevenuePerUser, req.AvgLifetimeMonths, req.ImplementationCost)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, roi, http.StatusOK)
}

func (s *Server) handleConfig(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, ConfigResponse{
		Weights:        s.handler.engine.Weights(),
		Constraints:    s.handler.engine.Constraints(),
		DemandSchedule: s.handler.engine.Schedule(),
		Formula:        PricingFormula,
	}, http.StatusOK)
}

func (s *Server) handleUpdateWeights(w http.ResponseWriter, r *http.Request) {
	var req UpdateWeightsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, errors.Wrap(errors.TypeInput, "invalid JSON body", err))
		return
	}

	weights := s.handler.engine.UpdateWeights(req.Alpha, req.Beta, req.Gamma)
	s.writeJSON(w, map[string]interface{}{
		"message":     "weights updated",
		"new_weights": weights,
	}, http.StatusOK)
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	limit := 100
	if v := r.URL.Query().Get("limit"); v != "" {
		// Zero is rejected: at the engine level it means "everything
		// retained", which this endpoint does not expose.
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			s.writeError(w, errors.Inputf("limit must be a positive integer, got %q", v))
			return
		}
		limit = n
	}

	history := s.handler.engine.History(limit)
	s.writeJSON(w, map[string]interface{}{
		"count":   len(history),
		"results": history,
	}, http.StatusOK)
}

func (s *Server) handlePredictChurn(w http.ResponseWriter, r *http.Request) {
	var req PredictRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, errors.Wrap(errors.TypeInput, "invalid JSON body", err))
		return
	}

	pred, err := s.handler.predictChurn(&req)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, pred, http.StatusOK)
}

func (s *Server) handlePredictSegment(w http.ResponseWriter, r *http.Request) {
	var req PredictRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, errors.Wrap(errors.TypeInput, "invalid JSON body", err))
		return
	}

	pred, err := s.handler.predictSegment(&req)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, pred, http.StatusOK)
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, errors.Wrap(errors.TypeInput, "invalid JSON body", err))
		return
	}

	resp, err := s.handler.analyze(&req)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, resp, http.StatusOK)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, HealthResponse{
		Status:  "healthy",
		Version: s.version,
		Time:    time.Now().UTC().Format(time.RFC3339),
		Models:  s.handler.modelStatus(),
	}, http.StatusOK)
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, map[string]string{
		"version":     s.version,
		"engine":      "broadbandx-pricing",
		"api_version": "v1",
	}, http.StatusOK)
}

func (s *Server) writeJSON(w http.ResponseWriter, data interface{}, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError maps domain error types onto HTTP statuses.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	code := string(errors.TypeInternal)
	message := err.Error()

	if e, ok := err.(*errors.Error); ok {
		code = string(e.Type)
		message = e.Message
		switch e.Type {
		case errors.TypeInput, errors.TypeConfig:
			status = http.StatusBadRequest
		case errors.TypeModelUnavailable:
			status = http.StatusServiceUnavailable
		case errors.TypeProjection:
			status = http.StatusUnprocessableEntity
		case errors.TypeNotFound:
			status = http.StatusNotFound
		}
	}

	if status >= 500 {
		logging.Error("request failed", zap.String("code", code), zap.Error(err))
	}

	s.writeJSON(w, map[string]interface{}{
		"error": map[string]string{
			"code":       code,
			"message":    message,
			"request_id": uuid.NewString(),
		},
	}, status)
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// ListenAndServe starts the server
func (s *Server) ListenAndServe(addr string) error {
	logging.Info("api server listening", zap.String("addr", addr))
	return http.ListenAndServe(addr, s)
}
