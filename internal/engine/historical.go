package engine

import (
	"github.com/rs/zerolog"

	"github.com/wonny/midas/internal/contracts"
)

// HistoricalAnalyzer 과거 예측 레코드 기반 모멘텀 보정기
type HistoricalAnalyzer struct {
	config contracts.EngineConfig
	log    zerolog.Logger
}

// NewHistoricalAnalyzer 새 분석기 생성
func NewHistoricalAnalyzer(log zerolog.Logger) *HistoricalAnalyzer {
	return &HistoricalAnalyzer{
		config: contracts.DefaultEngineConfig(),
		log:    log.With().Str("component", "engine.historical").Logger(),
	}
}

// Adjustment 최신순 레코드 목록에서 가격 단위 보정값 계산
// 레코드 3개 미만이면 0.0 (에러 아님: 신규 심볼의 정상 상태)
//
// 앞 7개 레코드에 1/(i+1) 가중치를 적용해 합산하되, 합을 가중치 합이 아닌
// 레코드 수로 나눈다. 진짜 가중 평균이 아니지만 저장된 리포트와의
// 호환을 위해 그대로 유지
func (h *HistoricalAnalyzer) Adjustment(records []contracts.HistoricalRecord) float64 {
	if len(records) < h.config.MinHistoryRecords {
		return 0.0
	}

	window := records
	if len(window) > h.config.HistoryWindow {
		window = window[:h.config.HistoryWindow]
	}

	var total float64
	for i, record := range window {
		weight := 1.0 / float64(i+1)

		switch record.Trend {
		case contracts.TrendBullish:
			total += record.Confidence * 10 * weight
		case contracts.TrendBearish:
			total -= record.Confidence * 10 * weight
		}
		// NEUTRAL은 기여하지 않지만 분모에는 포함됨
	}

	adjustment := total / float64(len(window))

	h.log.Debug().
		Int("records", len(records)).
		Int("window", len(window)).
		Float64("adjustment", adjustment).
		Msg("historical adjustment calculated")

	return adjustment
}
