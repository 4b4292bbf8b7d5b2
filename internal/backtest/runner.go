package backtest

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/wonny/midas/internal/contracts"
	"github.com/wonny/midas/internal/engine"
	"github.com/wonny/midas/internal/news"
	"github.com/wonny/midas/pkg/logger"
)

// newsLookbackDays 기준일로부터 거슬러 볼 뉴스 기간
const newsLookbackDays = 7

// neutralMatchBandPct NEUTRAL 예측이 적중으로 인정되는 실현 변화율 밴드 (±)
const neutralMatchBandPct = 0.3

// PriceSource 과거/현재 시세 소스
type PriceSource interface {
	LatestPrices(ctx context.Context, symbols []string) (map[string]float64, error)
	HistoricalPrice(ctx context.Context, symbol string, date time.Time) (float64, error)
}

// GoldFallback 금 시세 최종 폴백 소스
type GoldFallback interface {
	GoldPriceUSD(ctx context.Context, date time.Time) (float64, error)
}

// NewsSource 기간 지정 뉴스 소스
type NewsSource interface {
	FetchMetalNews(ctx context.Context, metal string, start, end time.Time) ([]news.RawArticle, error)
}

// Result holds a single backtest outcome
type Result struct {
	AsOfDate               string                  `json:"as_of_date"`
	HorizonDays            int                     `json:"horizon_days"`
	HistoricalPrice        float64                 `json:"historical_price"`
	PredictedPrice         float64                 `json:"predicted_price"`
	PredictedChangePercent float64                 `json:"predicted_change_percent"`
	Trend                  contracts.Trend         `json:"trend"`
	NewsSentiment          contracts.NewsAggregate `json:"news_sentiment"`
	TargetDate             string                  `json:"target_date"`
	ActualFuturePrice      float64                 `json:"actual_future_price"`
	RealizedChangePercent  *float64                `json:"realized_change_percent,omitempty"`
	DirectionMatch         *bool                   `json:"direction_match,omitempty"`
}

// Runner runs historical what-if predictions
// ⭐ SSOT: 백테스트 실행은 여기서만
type Runner struct {
	prices     PriceSource
	gold       GoldFallback
	newsSource NewsSource
	analyzer   *news.Analyzer
	predictor  *engine.Predictor
	logger     *logger.Logger
}

// NewRunner creates a new backtest runner
func NewRunner(
	prices PriceSource,
	gold GoldFallback,
	newsSource NewsSource,
	noise contracts.NoiseSource,
	log *logger.Logger,
) *Runner {
	return &Runner{
		prices:     prices,
		gold:       gold,
		newsSource: newsSource,
		analyzer:   news.NewAnalyzer(noise, log.Zerolog()),
		predictor:  engine.NewPredictor(noise, log.Zerolog()),
		logger:     log.WithComponent("backtest.runner"),
	}
}

// Run 기준일 시점의 뉴스만으로 horizon일 뒤를 예측하고 실제와 비교
// 목표일 시세가 아직 없으면 Realized/DirectionMatch는 비워둠
func (r *Runner) Run(ctx context.Context, metal string, asOf time.Time, horizonDays int) (*Result, error) {
	historicalPrice, err := r.priceAt(ctx, metal, asOf)
	if err != nil {
		return nil, err
	}
	if historicalPrice == 0 {
		historicalPrice, err = r.estimateFromCurrent(ctx, metal, asOf)
		if err != nil {
			return nil, err
		}
	}

	raws, err := r.newsSource.FetchMetalNews(ctx, strings.ToLower(contracts.MetalName(metal)),
		asOf.AddDate(0, 0, -newsLookbackDays), asOf)
	if err != nil {
		return nil, fmt.Errorf("fetch news window: %w", err)
	}
	aggregate := news.Aggregate(r.analyzer.ProcessAll(raws))

	// 백테스트는 저장된 리포트를 쓰지 않음 (기준일 시점의 과거 리포트는 존재 보장이 없음)
	prediction, err := r.predictor.Predict(ctx, historicalPrice, aggregate, nil)
	if err != nil {
		return nil, fmt.Errorf("backtest predict: %w", err)
	}

	targetDate := asOf.AddDate(0, 0, horizonDays)
	actualPrice, err := r.priceAt(ctx, metal, targetDate)
	if err != nil {
		return nil, err
	}

	result := &Result{
		AsOfDate:               asOf.Format("2006-01-02"),
		HorizonDays:            horizonDays,
		HistoricalPrice:        historicalPrice,
		PredictedPrice:         prediction.PredictedPrice,
		PredictedChangePercent: prediction.PriceChangePercent,
		Trend:                  prediction.Trend,
		NewsSentiment:          aggregate,
		TargetDate:             targetDate.Format("2006-01-02"),
		ActualFuturePrice:      actualPrice,
	}

	if actualPrice != 0 {
		realized := contracts.Round2((actualPrice - historicalPrice) / historicalPrice * 100)
		match := directionMatch(prediction.Trend, realized)
		result.RealizedChangePercent = &realized
		result.DirectionMatch = &match
	}

	r.logger.WithFields(map[string]interface{}{
		"metal":   metal,
		"as_of":   result.AsOfDate,
		"horizon": horizonDays,
		"trend":   string(prediction.Trend),
	}).Info("Backtest completed")

	return result, nil
}

// priceAt 특정 날짜 시세 조회 (metals → FRED 폴백)
func (r *Runner) priceAt(ctx context.Context, metal string, date time.Time) (float64, error) {
	price, err := r.prices.HistoricalPrice(ctx, metal, date)
	if err != nil {
		return 0, fmt.Errorf("historical price %s: %w", date.Format("2006-01-02"), err)
	}
	if price != 0 {
		return price, nil
	}

	price, err = r.gold.GoldPriceUSD(ctx, date)
	if err != nil {
		return 0, fmt.Errorf("fred fallback %s: %w", date.Format("2006-01-02"), err)
	}
	return price, nil
}

// estimateFromCurrent 과거 시세가 전혀 없을 때 현재가 기반 근사치 생성
// 일 0.1% 변동성 가정, 부호는 경과일 짝홀로 교차 (결정적)
func (r *Runner) estimateFromCurrent(ctx context.Context, metal string, asOf time.Time) (float64, error) {
	prices, err := r.prices.LatestPrices(ctx, []string{metal})
	if err != nil {
		return 0, fmt.Errorf("latest price fallback: %w", err)
	}
	current, ok := prices[metal]
	if !ok {
		return 0, fmt.Errorf("no historical or current price for %s as of %s",
			metal, asOf.Format("2006-01-02"))
	}

	daysDiff := int(time.Since(asOf).Hours() / 24)
	sign := 1.0
	if daysDiff%2 != 0 {
		sign = -1.0
	}
	estimate := current * (1 + float64(daysDiff)*0.001*sign)

	r.logger.WithFields(map[string]interface{}{
		"metal":    metal,
		"estimate": estimate,
	}).Warn("Using estimated historical price")

	return estimate, nil
}

// directionMatch 예측 방향과 실현 변화율의 적중 여부
func directionMatch(trend contracts.Trend, realizedPct float64) bool {
	switch trend {
	case contracts.TrendBullish:
		return realizedPct > 0
	case contracts.TrendBearish:
		return realizedPct < 0
	case contracts.TrendNeutral:
		return realizedPct > -neutralMatchBandPct && realizedPct < neutralMatchBandPct
	default:
		return false
	}
}
