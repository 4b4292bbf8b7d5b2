package report

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/midas/internal/contracts"
)

func TestBuilder_Build(t *testing.T) {
	builder := NewBuilder(zerolog.Nop())
	now := time.Date(2026, 8, 29, 9, 0, 0, 0, time.UTC)

	aggregate := contracts.NewsAggregate{
		SentimentScore:   0.2,
		KeyFactors:       []contracts.FactorTag{contracts.FactorGeopolitical, contracts.FactorInflation},
		ArticlesAnalyzed: 8,
	}
	prediction := &contracts.PredictionResult{
		PredictedPrice:       2680.50,
		CurrentPrice:         2650.00,
		PriceChange:          30.50,
		PriceChangePercent:   1.15,
		Trend:                contracts.TrendBullish,
		Confidence:           0.78,
		HistoricalDataPoints: 12,
		HistoricalAdjustment: 2.4,
	}

	report := builder.Build("XAU", 2650.00, aggregate, prediction, now)

	assert.Equal(t, "XAU", report.Metal)
	assert.Equal(t, "Gold", report.MetalName)
	assert.Equal(t, "2.0", report.ReportVersion)
	assert.Equal(t, now, report.Timestamp)
	assert.Equal(t, 2650.00, report.CurrentAnalysis.Price)
	assert.Equal(t, "USD", report.CurrentAnalysis.Currency)
	assert.Equal(t, "per troy ounce", report.CurrentAnalysis.Unit)
	assert.Equal(t, aggregate, report.NewsSentiment)
	assert.Equal(t, *prediction, report.Prediction)
	assert.Equal(t, 12, report.Metadata.HistoricalDataPoints)
	assert.Equal(t, now.AddDate(0, 0, 1), report.Metadata.NextScheduledRun)

	assert.Contains(t, report.MarketSummary, "strong upward momentum")
	assert.Contains(t, report.MarketSummary, "positive news sentiment")
	assert.Contains(t, report.MarketSummary, "Geopolitical, Inflation")
}

func TestBuilder_Recommendations(t *testing.T) {
	builder := NewBuilder(zerolog.Nop())
	now := time.Date(2026, 8, 29, 9, 0, 0, 0, time.UTC)

	t.Run("고신뢰 강세", func(t *testing.T) {
		prediction := &contracts.PredictionResult{
			Trend:                contracts.TrendBullish,
			Confidence:           0.8,
			PriceChangePercent:   1.2,
			HistoricalDataPoints: 15,
		}
		report := builder.Build("XAU", 2650.0, contracts.NewsAggregate{}, prediction, now)

		require.NotEmpty(t, report.Recommendations)
		assert.Equal(t, "Consider long positions with 1.2% upside potential", report.Recommendations[0])
		assert.Contains(t, report.Recommendations, "Historical trend analysis supports bullish outlook")
		assert.Contains(t, report.Recommendations, "Next automated analysis scheduled for 2026-08-30")
	})

	t.Run("고신뢰 약세", func(t *testing.T) {
		prediction := &contracts.PredictionResult{
			Trend:              contracts.TrendBearish,
			Confidence:         0.75,
			PriceChangePercent: -0.9,
		}
		report := builder.Build("XAU", 2650.0, contracts.NewsAggregate{}, prediction, now)

		assert.Equal(t, "Consider hedging positions with 0.9% downside risk", report.Recommendations[0])
	})

	t.Run("저신뢰는 중립 유지", func(t *testing.T) {
		prediction := &contracts.PredictionResult{
			Trend:      contracts.TrendBearish,
			Confidence: 0.65,
		}
		report := builder.Build("XAU", 2650.0, contracts.NewsAggregate{}, prediction, now)

		assert.Equal(t, "Maintain neutral position due to uncertain market conditions", report.Recommendations[0])
	})

	t.Run("동인별 추가 권고", func(t *testing.T) {
		prediction := &contracts.PredictionResult{Trend: contracts.TrendBearish, Confidence: 0.5}
		aggregate := contracts.NewsAggregate{
			KeyFactors: []contracts.FactorTag{
				contracts.FactorFederalReserve,
				contracts.FactorGeopolitical,
			},
		}
		report := builder.Build("XAU", 2650.0, aggregate, prediction, now)

		assert.Contains(t, report.Recommendations, "Monitor Federal Reserve communications closely")
		assert.Contains(t, report.Recommendations, "Consider safe-haven demand in current geopolitical climate")
	})
}

func TestReport_AsHistoricalRecord(t *testing.T) {
	report := contracts.Report{
		Prediction: contracts.PredictionResult{
			Trend:      contracts.TrendBearish,
			Confidence: 0.81,
		},
	}

	record := report.AsHistoricalRecord()
	assert.Equal(t, contracts.TrendBearish, record.Trend)
	assert.Equal(t, 0.81, record.Confidence)
}
