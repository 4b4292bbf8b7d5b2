package metals

import (
	"golang.org/x/time/rate"

	"github.com/wonny/midas/pkg/config"
	"github.com/wonny/midas/pkg/httputil"
	"github.com/wonny/midas/pkg/logger"
)

// Client handles communication with metalpriceapi.com
// ⭐ SSOT: 금속 시세 API 호출은 이 클라이언트에서만
type Client struct {
	httpClient *httputil.Client
	logger     *logger.Logger
	baseURL    string
	apiKey     string
	limiter    *rate.Limiter
}

// NewClient creates a new metals price client
// 무료 플랜 쿼터 보호를 위해 초당 1건으로 페이싱
func NewClient(httpClient *httputil.Client, cfg config.MetalsAPIConfig, log *logger.Logger) *Client {
	return &Client{
		httpClient: httpClient,
		logger:     log,
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		limiter:    rate.NewLimiter(rate.Limit(1), 2),
	}
}

// ratesResponse /latest 및 /historical 응답
type ratesResponse struct {
	Success bool               `json:"success"`
	Rates   map[string]float64 `json:"rates"`
	Error   *apiError          `json:"error,omitempty"`
}

// timeseriesResponse /timeseries 응답 (날짜별 rate 맵)
type timeseriesResponse struct {
	Success bool                          `json:"success"`
	Rates   map[string]map[string]float64 `json:"rates"`
	Error   *apiError                     `json:"error,omitempty"`
}

type apiError struct {
	Code int    `json:"code"`
	Info string `json:"info"`
}
