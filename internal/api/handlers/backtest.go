package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/wonny/midas/internal/backtest"
	"github.com/wonny/midas/internal/contracts"
	"github.com/wonny/midas/pkg/logger"
)

// defaultHorizonDays 백테스트 기본 예측 기간
const defaultHorizonDays = 7

// BacktestHandler handles backtest API endpoints
type BacktestHandler struct {
	runner *backtest.Runner
	logger *logger.Logger
}

// NewBacktestHandler creates a new backtest handler
func NewBacktestHandler(runner *backtest.Runner, log *logger.Logger) *BacktestHandler {
	return &BacktestHandler{
		runner: runner,
		logger: log,
	}
}

type backtestRequest struct {
	Metal       string `json:"metal"`
	AsOfDate    string `json:"as_of_date"` // YYYY-MM-DD
	HorizonDays int    `json:"horizon_days"`
}

// Run executes a historical what-if prediction
// POST /api/backtest
func (h *BacktestHandler) Run(w http.ResponseWriter, r *http.Request) {
	var req backtestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	metal := strings.ToUpper(req.Metal)
	if metal == "" {
		metal = "XAU"
	}
	if !contracts.IsSupportedMetal(metal) {
		respondError(w, http.StatusBadRequest, "unsupported metal symbol: "+metal)
		return
	}

	asOf, err := time.Parse("2006-01-02", req.AsOfDate)
	if err != nil {
		respondError(w, http.StatusBadRequest, "as_of_date must be YYYY-MM-DD")
		return
	}

	horizon := req.HorizonDays
	if horizon <= 0 {
		horizon = defaultHorizonDays
	}

	result, err := h.runner.Run(r.Context(), metal, asOf, horizon)
	if err != nil {
		h.logger.WithError(err).WithFields(map[string]interface{}{
			"metal": metal,
			"as_of": req.AsOfDate,
		}).Error("Backtest failed")
		respondError(w, http.StatusInternalServerError, "backtest failed")
		return
	}

	respondJSON(w, http.StatusOK, result)
}
