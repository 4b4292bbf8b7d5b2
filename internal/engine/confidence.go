package engine

import (
	"math"

	"github.com/rs/zerolog"

	"github.com/wonny/midas/internal/contracts"
)

// ConfidenceCalculator 신뢰도 계산기
// 감성 강도, 동인 수, 과거 데이터 깊이를 [0, 0.9] 점수로 결합
type ConfidenceCalculator struct {
	config contracts.EngineConfig
	log    zerolog.Logger
}

// NewConfidenceCalculator 새 신뢰도 계산기 생성
func NewConfidenceCalculator(log zerolog.Logger) *ConfidenceCalculator {
	return &ConfidenceCalculator{
		config: contracts.DefaultEngineConfig(),
		log:    log.With().Str("component", "engine.confidence").Logger(),
	}
}

// Calculate 기본 신뢰도 계산 (강신호 하한 적용 전)
func (c *ConfidenceCalculator) Calculate(sentiment float64, factorCount, historyCount int) float64 {
	sentimentConfidence := math.Abs(sentiment) * 0.18
	// 약한 감성은 기여 절반
	if math.Abs(sentiment) < 0.05 {
		sentimentConfidence *= 0.5
	}

	factorConfidence := float64(factorCount) * 0.04
	historicalConfidence := math.Min(0.2, float64(historyCount)*0.02)

	confidence := c.config.BaseConfidence + sentimentConfidence + factorConfidence + historicalConfidence

	return math.Min(c.config.MaxConfidence, confidence)
}

// ApplyStrongSignalFloor 강신호 시나리오에서 신뢰도 하한 적용
// 예측 변화율 0.6% 초과, 감성 강도 0.12 초과, 또는 과거 레코드 7개 이상이면
// 0.72 이상으로 올림 (절대 내리지 않음)
func (c *ConfidenceCalculator) ApplyStrongSignalFloor(confidence, changePct, sentiment float64, historyCount int) float64 {
	strongMove := math.Abs(changePct) > 0.6
	strongSentiment := math.Abs(sentiment) > 0.12
	deepHistory := historyCount >= c.config.StrongHistoryCount

	if strongMove || strongSentiment || deepHistory {
		return math.Max(confidence, c.config.StrongSignalFloor)
	}
	return confidence
}
