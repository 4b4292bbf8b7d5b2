package engine

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/wonny/midas/internal/contracts"
)

func TestHistoricalAnalyzer_TooFewRecords(t *testing.T) {
	analyzer := NewHistoricalAnalyzer(zerolog.Nop())

	assert.Zero(t, analyzer.Adjustment(nil))
	assert.Zero(t, analyzer.Adjustment([]contracts.HistoricalRecord{
		{Trend: contracts.TrendBullish, Confidence: 0.9},
		{Trend: contracts.TrendBullish, Confidence: 0.9},
	}))
}

func TestHistoricalAnalyzer_BullishMomentum(t *testing.T) {
	analyzer := NewHistoricalAnalyzer(zerolog.Nop())

	records := []contracts.HistoricalRecord{
		{Trend: contracts.TrendBullish, Confidence: 0.8},
		{Trend: contracts.TrendBullish, Confidence: 0.8},
		{Trend: contracts.TrendBullish, Confidence: 0.8},
	}

	// (0.8*10*1 + 0.8*10*0.5 + 0.8*10/3) / 3
	expected := (8.0 + 4.0 + 8.0/3.0) / 3.0
	assert.InDelta(t, expected, analyzer.Adjustment(records), 1e-9)
}

func TestHistoricalAnalyzer_NeutralDilutes(t *testing.T) {
	analyzer := NewHistoricalAnalyzer(zerolog.Nop())

	// NEUTRAL은 분자에 기여하지 않지만 분모에는 포함
	records := []contracts.HistoricalRecord{
		{Trend: contracts.TrendBullish, Confidence: 0.9},
		{Trend: contracts.TrendNeutral, Confidence: 0.9},
		{Trend: contracts.TrendNeutral, Confidence: 0.9},
	}

	assert.InDelta(t, 9.0/3.0, analyzer.Adjustment(records), 1e-9)
}

func TestHistoricalAnalyzer_WindowTruncation(t *testing.T) {
	analyzer := NewHistoricalAnalyzer(zerolog.Nop())

	// 8번째 이후 레코드는 무시됨: 앞 7개가 BEARISH라면
	// 뒤에 BULLISH가 아무리 많아도 결과는 음수
	records := make([]contracts.HistoricalRecord, 0, 20)
	for i := 0; i < 7; i++ {
		records = append(records, contracts.HistoricalRecord{Trend: contracts.TrendBearish, Confidence: 0.7})
	}
	for i := 0; i < 13; i++ {
		records = append(records, contracts.HistoricalRecord{Trend: contracts.TrendBullish, Confidence: 0.9})
	}

	assert.Negative(t, analyzer.Adjustment(records))
}

func TestHistoricalAnalyzer_MixedTrends(t *testing.T) {
	analyzer := NewHistoricalAnalyzer(zerolog.Nop())

	records := []contracts.HistoricalRecord{
		{Trend: contracts.TrendBullish, Confidence: 0.6},
		{Trend: contracts.TrendBearish, Confidence: 0.6},
		{Trend: contracts.TrendBullish, Confidence: 0.6},
	}

	// (6*1 - 6*0.5 + 6/3) / 3
	expected := (6.0 - 3.0 + 2.0) / 3.0
	assert.InDelta(t, expected, analyzer.Adjustment(records), 1e-9)
}
