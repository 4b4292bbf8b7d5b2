package report

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wonny/midas/internal/contracts"
)

func TestAssessRisk_Levels(t *testing.T) {
	tests := []struct {
		name       string
		confidence float64
		factors    int
		history    int
		expected   contracts.RiskLevel
	}{
		{
			name:       "고신뢰 소수 동인은 LOW",
			confidence: 0.85,
			factors:    2,
			expected:   contracts.RiskLow,
		},
		{
			name:       "과거 데이터가 경계를 완화해 LOW 진입",
			confidence: 0.75,
			factors:    2,
			history:    20, // adjustment 0.1 → 경계 0.7
			expected:   contracts.RiskLow,
		},
		{
			name:       "중간 신뢰는 MEDIUM",
			confidence: 0.7,
			factors:    3,
			expected:   contracts.RiskMedium,
		},
		{
			name:       "저신뢰는 HIGH",
			confidence: 0.5,
			factors:    1,
			expected:   contracts.RiskHigh,
		},
		{
			name:       "동인 5개 이상은 신뢰도와 무관하게 HIGH",
			confidence: 0.9,
			factors:    5,
			expected:   contracts.RiskHigh,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			factors := make([]contracts.FactorTag, tt.factors)
			copy(factors, contracts.AllFactorTags)
			prediction := &contracts.PredictionResult{
				Confidence:           tt.confidence,
				HistoricalDataPoints: tt.history,
			}
			aggregate := contracts.NewsAggregate{KeyFactors: factors}

			got := AssessRisk(prediction, aggregate)
			assert.Equal(t, tt.expected, got.RiskLevel)
			assert.Equal(t, tt.factors, got.VolatilityFactors)
		})
	}
}

func TestAssessRisk_Fields(t *testing.T) {
	prediction := &contracts.PredictionResult{
		Confidence:           0.7,
		HistoricalDataPoints: 6,
	}
	aggregate := contracts.NewsAggregate{
		KeyFactors: []contracts.FactorTag{
			contracts.FactorFederalReserve,
			contracts.FactorInflation,
			contracts.FactorUSDStrength,
			contracts.FactorGeopolitical,
		},
	}

	got := AssessRisk(prediction, aggregate)

	assert.True(t, got.HistoricalDataBoost)
	assert.Equal(t, 0.7, got.Confidence)
	// key_risks는 앞 3개만
	assert.Equal(t, []contracts.FactorTag{
		contracts.FactorFederalReserve,
		contracts.FactorInflation,
		contracts.FactorUSDStrength,
	}, got.KeyRisks)
}
