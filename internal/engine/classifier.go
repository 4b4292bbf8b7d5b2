package engine

import (
	"math"

	"github.com/rs/zerolog"

	"github.com/wonny/midas/internal/contracts"
)

// TrendClassifier 추세 분류기
// 감성 강도에 따라 적응형 임계값으로 BULLISH/BEARISH 판정
type TrendClassifier struct {
	log zerolog.Logger
}

// NewTrendClassifier 새 추세 분류기 생성
func NewTrendClassifier(log zerolog.Logger) *TrendClassifier {
	return &TrendClassifier{
		log: log.With().Str("component", "engine.classifier").Logger(),
	}
}

// Classify 예측 변화율과 감성 신호로 추세 판정
// 임계값은 감성 강도에 비례해 넓어짐:
//   - |감성| > 0.12: ±0.15%
//   - |감성| > 0.03: ±0.25%
//   - 그 외:         ±0.35%
//
// 임계값 사이 구간은 타이브레이크 사다리로 해소 (NEUTRAL 반환 경로 없음)
func (c *TrendClassifier) Classify(changePct, sentiment float64, factors []contracts.FactorTag) contracts.Trend {
	var threshold float64
	switch {
	case math.Abs(sentiment) > 0.12:
		threshold = 0.15
	case math.Abs(sentiment) > 0.03:
		threshold = 0.25
	default:
		threshold = 0.35
	}

	if changePct > threshold {
		return contracts.TrendBullish
	}
	if changePct < -threshold {
		return contracts.TrendBearish
	}

	// 타이브레이크: 임계값 이내의 약한 움직임
	hasUSD := false
	for _, f := range factors {
		if f == contracts.FactorUSDStrength {
			hasUSD = true
			break
		}
	}

	switch {
	case hasUSD && sentiment < 0.08:
		return contracts.TrendBearish
	case sentiment < -0.01:
		return contracts.TrendBearish
	case sentiment > 0.05:
		return contracts.TrendBullish
	default:
		return contracts.TrendBearish
	}
}
