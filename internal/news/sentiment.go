package news

import (
	"strings"

	"github.com/rs/zerolog"

	"github.com/wonny/midas/internal/contracts"
)

// 감성 키워드 테이블: 2단계 가중치 (strong 2, moderate 1)
// 구문 존재 여부만 판정하고 출현 횟수는 세지 않음 (레퍼런스 동작)

var strongPositiveWords = []string{
	"surge", "soar", "rally", "breakout", "bullish", "record high", "all-time high",
}

var moderatePositiveWords = []string{
	"rise", "rising", "up", "gain", "gains", "increase", "bull",
	"climb", "jump", "boost", "strong", "strength",
	"demand", "buy", "buying", "investment", "safe haven", "hedge", "support",
}

var strongNegativeWords = []string{
	"crash", "plunge", "collapse", "bearish", "sell-off", "panic", "dump", "dumping",
	"bloodbath", "meltdown", "free fall", "nosedive", "capitulation",
}

var moderateNegativeWords = []string{
	"fall", "falling", "down", "drop", "decline", "bear", "correction",
	"slide", "weak", "weakness", "sell", "selling", "retreat", "pullback",
	"pressure", "concern", "worry", "risk", "uncertainty", "volatility",
	"hawkish", "tightening", "rate hike", "rate hikes", "tapering",
	"oversupply", "headwinds", "challenges", "slowing", "slowdown",
}

// SentimentScorer 기사 감성 스코어러
// 지터는 유사 중복 기사가 동일 점수를 갖는 것을 막기 위한 의도된 장치이며,
// 테스트의 결정성을 위해 NoiseSource 뒤로 격리됨
type SentimentScorer struct {
	config contracts.EngineConfig
	noise  contracts.NoiseSource
	log    zerolog.Logger
}

// NewSentimentScorer 새 스코어러 생성
func NewSentimentScorer(noise contracts.NoiseSource, log zerolog.Logger) *SentimentScorer {
	return &SentimentScorer{
		config: contracts.DefaultEngineConfig(),
		noise:  noise,
		log:    log.With().Str("component", "news.sentiment").Logger(),
	}
}

// Score 소문자 텍스트의 감성 점수를 [-1, 1]로 반환
func (s *SentimentScorer) Score(text string) float64 {
	if text == "" {
		return 0.0
	}

	totalPositive := weightedHits(text, strongPositiveWords, 2) +
		weightedHits(text, moderatePositiveWords, 1)
	totalNegative := weightedHits(text, strongNegativeWords, 2) +
		weightedHits(text, moderateNegativeWords, 1)

	if totalPositive+totalNegative == 0 {
		return 0.0
	}

	raw := float64(totalPositive-totalNegative) / float64(totalPositive+totalNegative)

	// 감쇠 후 소폭 지터
	dampened := raw * s.config.SentimentDampening
	jitter := s.noise.Uniform(-s.config.SentimentJitter, s.config.SentimentJitter)

	return clamp(dampened+jitter, -1.0, 1.0)
}

// weightedHits 구문 존재 기반 가중 히트 수
func weightedHits(text string, phrases []string, weight int) int {
	hits := 0
	for _, phrase := range phrases {
		if strings.Contains(text, phrase) {
			hits += weight
		}
	}
	return hits
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
