package fred

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"github.com/wonny/midas/pkg/config"
	"github.com/wonny/midas/pkg/httputil"
	"github.com/wonny/midas/pkg/logger"
)

// goldSeriesID LBMA 금 AM fix (USD)
const goldSeriesID = "GOLDAMGBD228NLBM"

// lookbackDays 관측값이 없을 때 거슬러 올라갈 최대 일수
const lookbackDays = 7

// Client handles communication with the FRED observations API
// 금 과거 시세의 최종 폴백 소스
type Client struct {
	httpClient *httputil.Client
	logger     *logger.Logger
	baseURL    string
	apiKey     string
	limiter    *rate.Limiter
}

// NewClient creates a new FRED client
func NewClient(httpClient *httputil.Client, cfg config.FREDConfig, log *logger.Logger) *Client {
	return &Client{
		httpClient: httpClient,
		logger:     log,
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		limiter:    rate.NewLimiter(rate.Limit(2), 4),
	}
}

type observationsResponse struct {
	Observations []observation `json:"observations"`
}

type observation struct {
	Date  string `json:"date"`
	Value string `json:"value"`
}

// GoldPriceUSD 특정 날짜의 LBMA 금 시세 조회
// 해당 날짜에 관측값이 없으면 이전 7일까지 하루씩 거슬러 찾음
// API 키가 없거나 관측값이 전혀 없으면 0.0 반환
func (c *Client) GoldPriceUSD(ctx context.Context, date time.Time) (float64, error) {
	if c.apiKey == "" {
		return 0.0, nil
	}

	if price, ok, err := c.observe(ctx, date); err != nil {
		return 0, err
	} else if ok {
		return price, nil
	}

	for i := 1; i <= lookbackDays; i++ {
		prev := date.AddDate(0, 0, -i)
		price, ok, err := c.observe(ctx, prev)
		if err != nil {
			return 0, err
		}
		if ok {
			c.logger.WithFields(map[string]interface{}{
				"requested": date.Format("2006-01-02"),
				"used":      prev.Format("2006-01-02"),
			}).Debug("Using FRED fallback observation")
			return price, nil
		}
	}

	return 0.0, nil
}

func (c *Client) observe(ctx context.Context, date time.Time) (float64, bool, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return 0, false, err
	}

	day := date.Format("2006-01-02")
	params := url.Values{}
	params.Set("series_id", goldSeriesID)
	params.Set("api_key", c.apiKey)
	params.Set("file_type", "json")
	params.Set("observation_start", day)
	params.Set("observation_end", day)

	var resp observationsResponse
	endpoint := fmt.Sprintf("%s?%s", c.baseURL, params.Encode())
	if err := c.httpClient.GetJSON(ctx, endpoint, &resp); err != nil {
		return 0, false, fmt.Errorf("fred observations request: %w", err)
	}

	if len(resp.Observations) == 0 {
		return 0, false, nil
	}

	// 휴장일은 값이 "."로 옴
	raw := resp.Observations[0].Value
	if raw == "" || raw == "." {
		return 0, false, nil
	}

	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false, fmt.Errorf("fred observation parse %q: %w", raw, err)
	}

	return value, true, nil
}
