package news

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wonny/midas/internal/contracts"
)

func TestExtractFactors(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected []contracts.FactorTag
	}{
		{
			name:     "빈 텍스트",
			text:     "",
			expected: nil,
		},
		{
			name:     "히트 없음",
			text:     "quiet session ahead of the long weekend",
			expected: nil,
		},
		{
			name: "그룹 순서대로 추출",
			text: "fed decision weighs on dollar while mining supply tightens",
			expected: []contracts.FactorTag{
				contracts.FactorFederalReserve,
				contracts.FactorUSDStrength,
				contracts.FactorSupplyDemand,
			},
		},
		{
			name: "키워드 여러 개여도 태그는 1회",
			text: "inflation and cpi both point to sticky consumer price growth",
			expected: []contracts.FactorTag{
				contracts.FactorInflation,
			},
		},
		{
			name: "태그는 최대 5개",
			text: "fed hikes as inflation and the dollar react to war while gdp slows and the central bank of england mulls supply cuts",
			expected: []contracts.FactorTag{
				contracts.FactorFederalReserve,
				contracts.FactorInflation,
				contracts.FactorUSDStrength,
				contracts.FactorGeopolitical,
				contracts.FactorEconomicData,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ExtractFactors(tt.text))
		})
	}
}
