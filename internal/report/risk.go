package report

import (
	"math"

	"github.com/wonny/midas/internal/contracts"
)

// AssessRisk 예측 결과와 뉴스 집계로 리스크 등급 산출
// 과거 데이터가 많을수록 등급 경계가 완화됨 (최대 0.1)
func AssessRisk(prediction *contracts.PredictionResult, aggregate contracts.NewsAggregate) contracts.RiskAssessment {
	volatilityFactors := len(aggregate.KeyFactors)
	adjustment := math.Min(0.1, float64(prediction.HistoricalDataPoints)*0.005)

	var level contracts.RiskLevel
	switch {
	case prediction.Confidence > 0.8-adjustment && volatilityFactors <= 2:
		level = contracts.RiskLow
	case prediction.Confidence > 0.6-adjustment && volatilityFactors <= 4:
		level = contracts.RiskMedium
	default:
		level = contracts.RiskHigh
	}

	keyRisks := aggregate.KeyFactors
	if len(keyRisks) > 3 {
		keyRisks = keyRisks[:3]
	}

	return contracts.RiskAssessment{
		RiskLevel:           level,
		Confidence:          prediction.Confidence,
		VolatilityFactors:   volatilityFactors,
		HistoricalDataBoost: prediction.HistoricalDataPoints > 5,
		KeyRisks:            keyRisks,
	}
}
