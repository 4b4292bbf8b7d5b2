package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/wonny/midas/internal/contracts"
)

// reportVersion 리포트 포맷 버전: 저장된 리포트의 스키마 식별자
const reportVersion = "2.0"

// Builder 리포트 조립기
// ⭐ SSOT: Report 엔벨로프 생성은 이 컴포넌트에서만 (요약/리스크/권고 포함)
type Builder struct {
	log zerolog.Logger
}

// NewBuilder 새 리포트 빌더 생성
func NewBuilder(log zerolog.Logger) *Builder {
	return &Builder{
		log: log.With().Str("component", "report.builder").Logger(),
	}
}

// Build 분석 산출물을 완성된 리포트로 조립
func (b *Builder) Build(
	metal string,
	currentPrice float64,
	aggregate contracts.NewsAggregate,
	prediction *contracts.PredictionResult,
	now time.Time,
) *contracts.Report {
	return &contracts.Report{
		Timestamp:     now,
		ReportVersion: reportVersion,
		Metal:         metal,
		MetalName:     contracts.MetalName(metal),
		CurrentAnalysis: contracts.CurrentAnalysis{
			Price:       currentPrice,
			Currency:    "USD",
			Unit:        "per troy ounce",
			LastUpdated: now,
		},
		NewsSentiment:   aggregate,
		Prediction:      *prediction,
		MarketSummary:   marketSummary(aggregate, prediction),
		RiskAssessment:  AssessRisk(prediction, aggregate),
		Recommendations: recommendations(aggregate, prediction, now),
		Metadata: contracts.ReportMetadata{
			HistoricalDataPoints: prediction.HistoricalDataPoints,
			HistoricalAdjustment: prediction.HistoricalAdjustment,
			NextScheduledRun:     now.AddDate(0, 0, 1),
		},
	}
}

// marketSummary 시장 상황 요약 문장 생성
func marketSummary(aggregate contracts.NewsAggregate, prediction *contracts.PredictionResult) string {
	var trendDesc string
	switch prediction.Trend {
	case contracts.TrendBullish:
		trendDesc = "showing strong upward momentum"
	case contracts.TrendBearish:
		trendDesc = "experiencing downward pressure"
	default:
		trendDesc = "trading in a neutral range"
	}

	var sentimentDesc string
	switch {
	case aggregate.SentimentScore > 0.1:
		sentimentDesc = "positive"
	case aggregate.SentimentScore < -0.1:
		sentimentDesc = "negative"
	default:
		sentimentDesc = "neutral"
	}

	drivers := aggregate.KeyFactors
	if len(drivers) > 2 {
		drivers = drivers[:2]
	}
	names := make([]string, len(drivers))
	for i, d := range drivers {
		names[i] = string(d)
	}

	return fmt.Sprintf(
		"Automated analysis shows the metal %s with %s news sentiment. Key market drivers include %s.",
		trendDesc, sentimentDesc, strings.Join(names, ", "))
}

// recommendations 추세/신뢰도 기반 권고 목록 생성
func recommendations(aggregate contracts.NewsAggregate, prediction *contracts.PredictionResult, now time.Time) []string {
	var recs []string

	absPct := prediction.PriceChangePercent
	if absPct < 0 {
		absPct = -absPct
	}

	switch {
	case prediction.Trend == contracts.TrendBullish && prediction.Confidence > 0.7:
		recs = append(recs, fmt.Sprintf("Consider long positions with %.1f%% upside potential", absPct))
		if prediction.HistoricalDataPoints > 10 {
			recs = append(recs, "Historical trend analysis supports bullish outlook")
		}
	case prediction.Trend == contracts.TrendBearish && prediction.Confidence > 0.7:
		recs = append(recs, fmt.Sprintf("Consider hedging positions with %.1f%% downside risk", absPct))
		if prediction.HistoricalDataPoints > 10 {
			recs = append(recs, "Historical data confirms bearish sentiment")
		}
	default:
		recs = append(recs, "Maintain neutral position due to uncertain market conditions")
	}

	if contracts.HasFactor(aggregate.KeyFactors, contracts.FactorFederalReserve) {
		recs = append(recs, "Monitor Federal Reserve communications closely")
	}
	if contracts.HasFactor(aggregate.KeyFactors, contracts.FactorGeopolitical) {
		recs = append(recs, "Consider safe-haven demand in current geopolitical climate")
	}

	recs = append(recs, fmt.Sprintf(
		"Next automated analysis scheduled for %s", now.AddDate(0, 0, 1).Format("2006-01-02")))

	return recs
}
