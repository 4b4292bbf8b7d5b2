package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"github.com/wonny/midas/internal/analysis"
	"github.com/wonny/midas/pkg/logger"
)

// AnalysisHandler handles analysis API endpoints
// ⭐ SSOT: 분석 API 핸들러는 이 구조체에서만
type AnalysisHandler struct {
	service *analysis.Service
	logger  *logger.Logger
}

// NewAnalysisHandler creates a new analysis handler
func NewAnalysisHandler(service *analysis.Service, log *logger.Logger) *AnalysisHandler {
	return &AnalysisHandler{
		service: service,
		logger:  log,
	}
}

// Analyze runs the full analysis pipeline for a metal
// POST /api/analyze/{metal}
func (h *AnalysisHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	metal := strings.ToUpper(mux.Vars(r)["metal"])

	report, err := h.service.Analyze(r.Context(), metal)
	if err != nil {
		if errors.Is(err, analysis.ErrUnsupportedMetal) {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.WithError(err).WithField("metal", metal).Error("Analysis failed")
		respondError(w, http.StatusInternalServerError, "analysis failed")
		return
	}

	respondJSON(w, http.StatusOK, report)
}

// GetReports lists stored reports for a metal, most recent first
// GET /api/reports/{metal}?limit=10
func (h *AnalysisHandler) GetReports(w http.ResponseWriter, r *http.Request) {
	metal := strings.ToUpper(mux.Vars(r)["metal"])

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = parsed
	}

	reports, err := h.service.Reports(r.Context(), metal, limit)
	if err != nil {
		if errors.Is(err, analysis.ErrUnsupportedMetal) {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.WithError(err).WithField("metal", metal).Error("Failed to list reports")
		respondError(w, http.StatusInternalServerError, "failed to list reports")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"metal":   metal,
		"count":   len(reports),
		"reports": reports,
	})
}

// GetPrices returns current prices for one or more symbols
// GET /api/prices?symbols=XAU,XAG
func (h *AnalysisHandler) GetPrices(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("symbols")
	if raw == "" {
		respondError(w, http.StatusBadRequest, "symbols query parameter is required")
		return
	}

	symbols := strings.Split(strings.ToUpper(raw), ",")
	prices, err := h.service.MultiPrice(r.Context(), symbols)
	if err != nil {
		if errors.Is(err, analysis.ErrUnsupportedMetal) {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.WithError(err).Error("Price lookup failed")
		respondError(w, http.StatusInternalServerError, "price lookup failed")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"currency": "USD",
		"prices":   prices,
	})
}
