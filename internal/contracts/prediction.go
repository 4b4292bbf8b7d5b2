package contracts

import (
	"errors"
	"math"
)

// Trend 방향 라벨
type Trend string

const (
	TrendBullish Trend = "BULLISH"
	TrendBearish Trend = "BEARISH"
	// TrendNeutral 선언된 라벨이지만 분류기의 타이브레이크 사다리에서는
	// 도달 불가 (백테스트 매칭 룰에서만 소비됨)
	TrendNeutral Trend = "NEUTRAL"
)

// ErrInvalidPrice 엔진이 양수가 아닌 현재가를 받은 경우
var ErrInvalidPrice = errors.New("current price must be positive")

// HistoricalRecord 과거 예측 결과의 최소 뷰
// 리포트 저장소가 소유하며, 분석기는 최신순 리스트의 앞 7개만 읽음
type HistoricalRecord struct {
	Trend      Trend   `json:"trend"`
	Confidence float64 `json:"confidence"` // [0, 1]
}

// PredictionResult 예측 엔진의 최종 결과
// 필드명과 반올림 자릿수는 기존 소비자와의 호환 계약
type PredictionResult struct {
	PredictedPrice       float64     `json:"predicted_price"`        // 2dp
	CurrentPrice         float64     `json:"current_price"`
	PriceChange          float64     `json:"price_change"`           // 2dp
	PriceChangePercent   float64     `json:"price_change_percent"`   // 2dp
	Trend                Trend       `json:"trend"`
	Confidence           float64     `json:"confidence"`             // 3dp, [0, 0.9]
	SentimentImpact      float64     `json:"sentiment_impact"`       // 2dp
	FactorImpact         float64     `json:"factor_impact"`          // 2dp
	HistoricalAdjustment float64     `json:"historical_adjustment"`  // 2dp
	KeyDrivers           []FactorTag `json:"key_drivers"`            // 상위 3개
	HistoricalDataPoints int         `json:"historical_data_points"`
}

// EngineConfig 예측 엔진 상수
// 값들은 레퍼런스 동작과의 호환을 위해 고정: 변경 시 과거 리포트와 비교 불가
type EngineConfig struct {
	SentimentDampening float64 // 감성 점수 감쇠 계수
	SentimentJitter    float64 // 감성 지터 폭 (±)
	SentimentImpactPct float64 // 감성 → 가격 영향 비율
	MarketNoisePct     float64 // 시장 노이즈 폭 (±, 가격 비율)
	UncertaintyPct     float64 // 불확실성 페널티 (가격 비율)
	MaxUncertaintyFree int     // 페널티 없는 최대 factor 수

	BaseConfidence     float64 // 신뢰도 베이스
	MaxConfidence      float64 // 신뢰도 상한
	StrongSignalFloor  float64 // 강신호 신뢰도 하한
	MinHistoryRecords  int     // 추세 분석 최소 레코드 수
	HistoryWindow      int     // 추세 분석 윈도우 (최신순 앞 N개)
	StrongHistoryCount int     // 강신호 하한이 발동하는 레코드 수
}

// DefaultEngineConfig 기본 엔진 설정
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		SentimentDampening: 0.7,
		SentimentJitter:    0.02,
		SentimentImpactPct: 0.015,
		MarketNoisePct:     0.001,
		UncertaintyPct:     0.001,
		MaxUncertaintyFree: 4,

		BaseConfidence:     0.65,
		MaxConfidence:      0.9,
		StrongSignalFloor:  0.72,
		MinHistoryRecords:  3,
		HistoryWindow:      7,
		StrongHistoryCount: 7,
	}
}

// Round2 rounds to 2 decimal places (가격/임팩트/퍼센트)
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Round3 rounds to 3 decimal places (신뢰도/감성)
func Round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
