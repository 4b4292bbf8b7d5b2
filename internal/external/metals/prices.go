package metals

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/wonny/midas/internal/contracts"
)

// historicalLookbackDays /timeseries 폴백에서 거슬러 올라갈 최대 일수
// 주말/휴장일 근사치
const historicalLookbackDays = 5

// LatestPrices 현재 USD 시세 조회
// 응답에 없는 심볼은 결과 맵에서 빠짐 (에러 아님)
func (c *Client) LatestPrices(ctx context.Context, symbols []string) (map[string]float64, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf("%s/latest?api_key=%s&base=USD&currencies=%s",
		c.baseURL, url.QueryEscape(c.apiKey), strings.Join(symbols, ","))

	var resp ratesResponse
	if err := c.httpClient.GetJSON(ctx, endpoint, &resp); err != nil {
		return nil, fmt.Errorf("metals latest request: %w", err)
	}
	if !resp.Success {
		info := "unknown error"
		if resp.Error != nil {
			info = resp.Error.Info
		}
		return nil, fmt.Errorf("metals latest: %s", info)
	}

	prices := make(map[string]float64)
	for _, symbol := range symbols {
		// USD 기준 직접 환산 키 (예: USDXAU)
		if rate, ok := resp.Rates["USD"+symbol]; ok {
			prices[symbol] = contracts.Round2(rate)
		}
	}

	c.logger.WithFields(map[string]interface{}{
		"requested": len(symbols),
		"resolved":  len(prices),
	}).Debug("Latest metal prices fetched")

	return prices, nil
}

// HistoricalPrice 특정 날짜의 USD 시세 조회
// /historical → /timeseries(당일) → /timeseries(이전 5일) 순으로 폴백
// 어디서도 못 찾으면 0.0 반환 (호출자가 FRED 폴백 판단)
func (c *Client) HistoricalPrice(ctx context.Context, symbol string, date time.Time) (float64, error) {
	day := date.Format("2006-01-02")

	if price, ok, err := c.historicalEndpoint(ctx, symbol, day); err != nil {
		return 0, err
	} else if ok {
		return price, nil
	}

	if price, ok, err := c.timeseriesDay(ctx, symbol, day); err != nil {
		return 0, err
	} else if ok {
		return price, nil
	}

	for i := 1; i <= historicalLookbackDays; i++ {
		prev := date.AddDate(0, 0, -i).Format("2006-01-02")
		price, ok, err := c.timeseriesDay(ctx, symbol, prev)
		if err != nil {
			return 0, err
		}
		if ok {
			c.logger.WithFields(map[string]interface{}{
				"requested": day,
				"used":      prev,
			}).Debug("Using fallback historical price")
			return price, nil
		}
	}

	return 0.0, nil
}

func (c *Client) historicalEndpoint(ctx context.Context, symbol, day string) (float64, bool, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return 0, false, err
	}

	endpoint := fmt.Sprintf("%s/historical?api_key=%s&base=USD&currencies=%s&date=%s",
		c.baseURL, url.QueryEscape(c.apiKey), symbol, day)

	var resp ratesResponse
	if err := c.httpClient.GetJSON(ctx, endpoint, &resp); err != nil {
		// 폴백 경로가 남아있으므로 조회 실패는 미발견으로 처리
		c.logger.WithError(err).Debug("Historical endpoint failed")
		return 0, false, nil
	}
	if !resp.Success {
		return 0, false, nil
	}

	rate, ok := resp.Rates["USD"+symbol]
	if !ok || rate == 0 {
		return 0, false, nil
	}
	return rate, true, nil
}

func (c *Client) timeseriesDay(ctx context.Context, symbol, day string) (float64, bool, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return 0, false, err
	}

	endpoint := fmt.Sprintf("%s/timeseries?api_key=%s&base=USD&currencies=%s&start_date=%s&end_date=%s",
		c.baseURL, url.QueryEscape(c.apiKey), symbol, day, day)

	var resp timeseriesResponse
	if err := c.httpClient.GetJSON(ctx, endpoint, &resp); err != nil {
		c.logger.WithError(err).Debug("Timeseries endpoint failed")
		return 0, false, nil
	}
	if !resp.Success {
		return 0, false, nil
	}

	dayRates, ok := resp.Rates[day]
	if !ok {
		return 0, false, nil
	}
	rate, ok := dayRates["USD"+symbol]
	if !ok || rate == 0 {
		return 0, false, nil
	}
	return rate, true, nil
}
