package engine

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/wonny/midas/internal/contracts"
)

func TestCycleDetector_Bias(t *testing.T) {
	detector := NewCycleDetector(zerolog.Nop())
	price := 1000.0

	tests := []struct {
		name      string
		sentiment float64
		factors   []contracts.FactorTag
		expected  float64
	}{
		{
			name:      "시그널 없음은 완만한 약세 기본값",
			sentiment: 0.0,
			factors:   nil,
			expected:  -2.0, // -0.2%
		},
		{
			name:      "강한 부정 감성은 약세 우위",
			sentiment: -0.2,
			factors:   nil,
			expected:  -12.0, // -1.2%
		},
		{
			name:      "달러 강세 단독도 약세 우위",
			sentiment: 0.0,
			factors:   []contracts.FactorTag{contracts.FactorUSDStrength},
			expected:  -12.0,
		},
		{
			name:      "강한 긍정 감성 + 지정학 + 인플레이션은 강세",
			sentiment: 0.2,
			factors:   []contracts.FactorTag{contracts.FactorGeopolitical, contracts.FactorInflation},
			expected:  6.0, // +0.6%
		},
		{
			name:      "강세 2 약세 1은 기본값 구간",
			sentiment: 0.15,
			factors:   []contracts.FactorTag{contracts.FactorUSDStrength},
			expected:  -2.0,
		},
		{
			name:      "다수 동인 + 무방향 감성은 모멘텀 소진 약세",
			sentiment: 0.02,
			factors: []contracts.FactorTag{
				contracts.FactorFederalReserve,
				contracts.FactorGeopolitical,
				contracts.FactorEconomicData,
			},
			expected: -12.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bias := detector.Bias(price, tt.sentiment, tt.factors)
			assert.InDelta(t, tt.expected, bias, 1e-9)
		})
	}
}
