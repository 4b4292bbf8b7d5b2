package news

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/wonny/midas/internal/contracts"
)

func TestSentimentScorer_Score(t *testing.T) {
	scorer := NewSentimentScorer(contracts.NoNoise(), zerolog.Nop())

	tests := []struct {
		name     string
		text     string
		expected float64
	}{
		{
			name:     "빈 텍스트는 0",
			text:     "",
			expected: 0.0,
		},
		{
			name:     "히트 없으면 0 (지터도 안 붙음)",
			text:     "gold holds steady near yesterday level",
			expected: 0.0,
		},
		{
			name: "강한 긍정만 있으면 감쇠된 만점",
			// "surge" (strong +2) → raw 1.0 → ×0.7
			text:     "gold prices surge on haven flows",
			expected: 0.7,
		},
		{
			name: "강한 부정만 있으면 감쇠된 최저점",
			// "plunge" (strong -2) → raw -1.0 → ×0.7
			text:     "silver plunge deepens",
			expected: -0.7,
		},
		{
			name: "혼합 신호는 비율로 희석",
			// "rally" (+2), "pressure" (-1) → (2-1)/(2+1) × 0.7
			text:     "gold rally stalls under dollar pressure",
			expected: 1.0 / 3.0 * 0.7,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, scorer.Score(tt.text), 1e-9)
		})
	}
}

func TestSentimentScorer_PhrasePresenceNotCount(t *testing.T) {
	scorer := NewSentimentScorer(contracts.NoNoise(), zerolog.Nop())

	// 같은 구문이 여러 번 나와도 1회만 집계됨
	once := scorer.Score("gold prices surge today")
	repeated := scorer.Score("surge surge surge in gold prices surge")
	assert.InDelta(t, once, repeated, 1e-9)
}

func TestSentimentScorer_ClampWithJitter(t *testing.T) {
	// 극단 시드에서도 결과는 [-1, 1] 내
	scorer := NewSentimentScorer(contracts.NewSeededNoise(7), zerolog.Nop())

	for i := 0; i < 100; i++ {
		score := scorer.Score("gold surge rally breakout record high bullish")
		assert.GreaterOrEqual(t, score, -1.0)
		assert.LessOrEqual(t, score, 1.0)
	}
}
