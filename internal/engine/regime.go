package engine

import (
	"math"

	"github.com/rs/zerolog"

	"github.com/wonny/midas/internal/contracts"
)

// RegimeDetector 레짐 패턴 매칭기
// 특정 감성/동인 조합을 역추세 또는 추세 확인 가격 조정으로 매핑
// 패턴은 상호 배타적이며 선언 순서대로 평가 (first match wins)
type RegimeDetector struct {
	log zerolog.Logger
}

// NewRegimeDetector 새 레짐 감지기 생성
func NewRegimeDetector(log zerolog.Logger) *RegimeDetector {
	return &RegimeDetector{
		log: log.With().Str("component", "engine.regime").Logger(),
	}
}

// Bias 레짐 편향 계산 (가격 단위)
// provisionalPrice는 레짐 조정 이전까지의 잠정 예측가
func (d *RegimeDetector) Bias(currentPrice, sentiment float64, factors []contracts.FactorTag, provisionalPrice float64) float64 {
	provisionalChangePct := (provisionalPrice - currentPrice) / currentPrice * 100

	var bias float64
	var pattern string

	switch {
	// 패턴 1: 약한 긍정 감성 + 혼재 동인 = 약세 반전 가능성
	case sentiment > 0.05 && sentiment < 0.08 && len(factors) >= 3 &&
		(contracts.HasFactor(factors, contracts.FactorUSDStrength) ||
			contracts.HasFactor(factors, contracts.FactorEconomicData)):
		bias = -0.015 * currentPrice
		pattern = "weak_positive_mixed"

	// 패턴 2: 중간 긍정 감성이지만 달러 강세 존재 = 약세 압력
	case sentiment > 0.06 && sentiment < 0.10 &&
		contracts.HasFactor(factors, contracts.FactorUSDStrength):
		bias = -0.01 * currentPrice
		pattern = "usd_pressure"

	// 패턴 3: 강한 긍정 감성 = 지속 가능한 강세
	case sentiment > 0.12:
		bias = 0.008 * currentPrice
		pattern = "sustained_bullish"

	// 패턴 4: 매우 약한 감성 + 다수 동인 = 고불확실성 약세
	case math.Abs(sentiment) < 0.05 && len(factors) >= 2:
		bias = -0.012 * currentPrice
		pattern = "high_uncertainty"

	// 패턴 5: 부정 감성 = 약세 강화
	case sentiment < -0.03:
		bias = -0.01 * currentPrice
		pattern = "bearish_reinforce"

	// 패턴 6: 역추세 시그널. 잠정 예측이 강한 강세인데 감성이 약하면 과열 감쇠
	case provisionalChangePct > 1.0 && sentiment < 0.08:
		bias = -0.02 * currentPrice
		pattern = "contrarian_dampener"

	default:
		return 0.0
	}

	d.log.Debug().
		Str("pattern", pattern).
		Float64("sentiment", sentiment).
		Float64("provisional_change_pct", provisionalChangePct).
		Float64("bias", bias).
		Msg("market regime matched")

	return bias
}
