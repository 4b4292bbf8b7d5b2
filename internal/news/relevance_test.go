package news

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestRelevanceFilter_IsRelevant(t *testing.T) {
	filter := NewRelevanceFilter(zerolog.Nop())

	tests := []struct {
		name     string
		content  string
		expected bool
	}{
		{
			name:     "빈 컨텐츠는 제외",
			content:  "",
			expected: false,
		},
		{
			name:     "exclude 키워드 2개는 즉시 제외",
			content:  "national championship gold medal at the olympics",
			expected: false,
		},
		{
			name:     "exclude 1개 + 시장 맥락 없음은 제외",
			content:  "local athlete returns home after long season",
			expected: false,
		},
		{
			name:     "exclude 1개라도 시장 맥락이 있으면 통과",
			content:  "tournament sponsor hit by gold price swings in the commodity market",
			expected: true,
		},
		{
			name:     "금 가격 + 인플레이션 기사는 통과",
			content:  "gold price rally amid inflation concerns",
			expected: true,
		},
		{
			name:     "거시경제 용어만으로도 통과",
			content:  "fed officials signal patience on interest policy path",
			expected: true,
		},
		{
			name:     "금속 용어만으로도 통과",
			content:  "platinum output in south africa hits seasonal low",
			expected: true,
		},
		{
			name:     "어떤 맥락도 없으면 제외",
			content:  "new library opens downtown this weekend",
			expected: false,
		},
		{
			name:     "위스키 수상 기사는 제외",
			content:  "kavalan wins best of the best at tokyo whisky awards",
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, filter.IsRelevant(tt.content))
		})
	}
}
