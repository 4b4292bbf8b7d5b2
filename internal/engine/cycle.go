package engine

import (
	"math"

	"github.com/rs/zerolog"

	"github.com/wonny/midas/internal/contracts"
)

// CycleDetector 시장 사이클 감지기
// 현재 감성과 동인 조합을 약세/강세 시그널로 집계해 가격 단위 편향을 산출
type CycleDetector struct {
	log zerolog.Logger
}

// NewCycleDetector 새 사이클 감지기 생성
func NewCycleDetector(log zerolog.Logger) *CycleDetector {
	return &CycleDetector{
		log: log.With().Str("component", "engine.cycle").Logger(),
	}
}

// Bias 사이클 편향 계산 (가격 단위)
func (d *CycleDetector) Bias(currentPrice, sentiment float64, factors []contracts.FactorTag) float64 {
	bearishSignals := 0
	bullishSignals := 0

	// 직접적 약세 감성
	if sentiment < -0.05 {
		bearishSignals += 2
	}

	// 달러 강세는 금에 약세
	if contracts.HasFactor(factors, contracts.FactorUSDStrength) {
		bearishSignals++
	}

	// Fed/경제지표는 감성이 충분히 긍정이 아니면 약세
	if contracts.HasFactor(factors, contracts.FactorFederalReserve) ||
		contracts.HasFactor(factors, contracts.FactorEconomicData) {
		if sentiment < 0.1 {
			bearishSignals++
		}
	}

	// 역추세 지표: 혼재된 시그널은 반전 가능성
	mixedCount := 0
	if contracts.HasFactor(factors, contracts.FactorGeopolitical) {
		mixedCount++
	}
	if contracts.HasFactor(factors, contracts.FactorEconomicData) {
		mixedCount++
	}
	if mixedCount >= 2 && sentiment < 0.1 {
		bearishSignals++
	}

	// 모멘텀 소진: 동인은 많은데 방향성이 없으면 약세
	if len(factors) >= 3 && math.Abs(sentiment) < 0.08 {
		bearishSignals++
	}

	// 강세 시그널
	if sentiment > 0.12 {
		bullishSignals += 2
	}
	if contracts.HasFactor(factors, contracts.FactorGeopolitical) && sentiment > 0.05 {
		bullishSignals++
	}
	if contracts.HasFactor(factors, contracts.FactorInflation) {
		bullishSignals++
	}

	var bias float64
	switch {
	case bearishSignals >= bullishSignals+1:
		bias = -0.012 * currentPrice // -1.2%
	case bullishSignals > bearishSignals+1:
		bias = 0.006 * currentPrice // +0.6%
	default:
		// 불확실 구간은 완만한 약세 기본값
		bias = -0.002 * currentPrice // -0.2%
	}

	d.log.Debug().
		Int("bearish_signals", bearishSignals).
		Int("bullish_signals", bullishSignals).
		Float64("bias", bias).
		Msg("market cycle detected")

	return bias
}
