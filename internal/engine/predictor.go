package engine

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/wonny/midas/internal/contracts"
)

// Predictor 가격 예측 오케스트레이터
// 뉴스 집계와 과거 예측 레코드로부터 다음 가격을 추정
// ⭐ SSOT: 예측 파이프라인의 단계 순서와 반올림 규약은 이 파일이 기준
type Predictor struct {
	config     contracts.EngineConfig
	historical *HistoricalAnalyzer
	cycle      *CycleDetector
	regime     *RegimeDetector
	confidence *ConfidenceCalculator
	classifier *TrendClassifier
	noise      contracts.NoiseSource
	log        zerolog.Logger
}

// NewPredictor 새 예측기 생성
// noise는 시장 노이즈 주입용 (테스트에서는 contracts.NoNoise 또는 시드 고정)
func NewPredictor(noise contracts.NoiseSource, log zerolog.Logger) *Predictor {
	return &Predictor{
		config:     contracts.DefaultEngineConfig(),
		historical: NewHistoricalAnalyzer(log),
		cycle:      NewCycleDetector(log),
		regime:     NewRegimeDetector(log),
		confidence: NewConfidenceCalculator(log),
		classifier: NewTrendClassifier(log),
		noise:      noise,
		log:        log.With().Str("component", "engine.predictor").Logger(),
	}
}

// Predict 가격 예측 실행
// records는 최신순 정렬을 가정 (저장소 계약)
//
// 단계 순서 고정:
//  1. 감성 임팩트
//  2. 팩터 임팩트
//  3. 과거 추세 조정
//  4. 잠정가 (1+2+3)
//  5. 시장 노이즈
//  6. 불확실성 페널티
//  7. 사이클 바이어스
//  8. 레짐 바이어스 (4단계 잠정가 기준)
//  9. 예측가 합산
//  10. 신뢰도 + 강신호 하한
//  11. 추세 분류
func (p *Predictor) Predict(
	ctx context.Context,
	currentPrice float64,
	aggregate contracts.NewsAggregate,
	records []contracts.HistoricalRecord,
) (*contracts.PredictionResult, error) {
	if currentPrice <= 0 {
		return nil, contracts.ErrInvalidPrice
	}

	sentiment := aggregate.SentimentScore
	factors := aggregate.KeyFactors

	// 1. 감성 임팩트
	sentimentImpact := sentiment * p.config.SentimentImpactPct * currentPrice

	// 2. 팩터 임팩트
	factorImpact := p.factorImpact(currentPrice, sentiment, factors)

	// 3. 과거 추세 조정
	historicalAdjustment := p.historical.Adjustment(records)

	// 4. 잠정가 (레짐 판정의 기준점)
	provisionalPrice := currentPrice + sentimentImpact + factorImpact + historicalAdjustment

	// 5. 시장 노이즈
	marketNoise := p.noise.Uniform(-p.config.MarketNoisePct, p.config.MarketNoisePct) * currentPrice

	// 6. 불확실성 페널티 (동인이 많을수록 신호 혼잡)
	uncertaintyPenalty := 0.0
	if len(factors) > p.config.MaxUncertaintyFree {
		uncertaintyPenalty = -p.config.UncertaintyPct * currentPrice
	}

	// 7~8. 사이클/레짐 바이어스
	cycleBias := p.cycle.Bias(currentPrice, sentiment, factors)
	regimeBias := p.regime.Bias(currentPrice, sentiment, factors, provisionalPrice)

	// 9. 예측가 합산
	predictedPrice := provisionalPrice + marketNoise + uncertaintyPenalty + cycleBias + regimeBias

	priceChange := predictedPrice - currentPrice
	priceChangePct := priceChange / currentPrice * 100

	// 10. 신뢰도
	confidence := p.confidence.Calculate(sentiment, len(factors), len(records))
	confidence = p.confidence.ApplyStrongSignalFloor(confidence, priceChangePct, sentiment, len(records))

	// 11. 추세 분류
	trend := p.classifier.Classify(priceChangePct, sentiment, factors)

	keyDrivers := factors
	if len(keyDrivers) > 3 {
		keyDrivers = keyDrivers[:3]
	}

	result := &contracts.PredictionResult{
		PredictedPrice:       contracts.Round2(predictedPrice),
		CurrentPrice:         currentPrice,
		PriceChange:          contracts.Round2(priceChange),
		PriceChangePercent:   contracts.Round2(priceChangePct),
		Trend:                trend,
		Confidence:           contracts.Round3(confidence),
		SentimentImpact:      contracts.Round2(sentimentImpact),
		FactorImpact:         contracts.Round2(factorImpact),
		HistoricalAdjustment: contracts.Round2(historicalAdjustment),
		KeyDrivers:           keyDrivers,
		HistoricalDataPoints: len(records),
	}

	p.log.Debug().
		Float64("current", currentPrice).
		Float64("predicted", result.PredictedPrice).
		Float64("sentiment", sentiment).
		Str("trend", string(trend)).
		Float64("confidence", result.Confidence).
		Msg("예측 완료")

	return result, nil
}

// factorImpact 동인별 가격 임팩트 합산
// 연준 동인은 감성이 뚜렷이 부정적일 때 긴축 해석으로 부호 반전
func (p *Predictor) factorImpact(currentPrice, sentiment float64, factors []contracts.FactorTag) float64 {
	total := 0.0
	for _, f := range factors {
		var pct float64
		switch f {
		case contracts.FactorFederalReserve:
			pct = 0.008
			if sentiment < -0.1 {
				pct = -0.015
			}
		case contracts.FactorInflation:
			pct = 0.010
		case contracts.FactorUSDStrength:
			pct = -0.012
		case contracts.FactorGeopolitical:
			pct = 0.012
		case contracts.FactorEconomicData:
			pct = sentiment * 0.01
		case contracts.FactorCentralBanks:
			pct = 0.006
		case contracts.FactorSupplyDemand:
			pct = 0.008
		}
		total += pct * currentPrice
	}
	return total
}
