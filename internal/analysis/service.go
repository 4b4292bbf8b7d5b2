package analysis

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/wonny/midas/internal/contracts"
	"github.com/wonny/midas/internal/engine"
	"github.com/wonny/midas/internal/news"
	"github.com/wonny/midas/pkg/config"
	"github.com/wonny/midas/pkg/logger"
	"github.com/wonny/midas/pkg/redis"
)

// priceCacheTTL 시세 캐시 유효 기간
const priceCacheTTL = 60 * time.Second

// ErrUnsupportedMetal 미지원 금속 심볼
var ErrUnsupportedMetal = fmt.Errorf("unsupported metal symbol")

// PriceSource 현재 시세 소스
type PriceSource interface {
	LatestPrices(ctx context.Context, symbols []string) (map[string]float64, error)
}

// NewsSource 기간 지정 뉴스 소스
type NewsSource interface {
	FetchMetalNews(ctx context.Context, metal string, start, end time.Time) ([]news.RawArticle, error)
}

// ReportBuilder 리포트 엔벨로프 조립기
type ReportBuilder interface {
	Build(metal string, currentPrice float64, aggregate contracts.NewsAggregate,
		prediction *contracts.PredictionResult, now time.Time) *contracts.Report
}

// ReportStore 리포트 영속화 계층
type ReportStore interface {
	Save(ctx context.Context, report *contracts.Report) (int64, error)
	ListRecent(ctx context.Context, metal string, limit int) ([]contracts.Report, error)
	RecentRecords(ctx context.Context, metal string, limit int) ([]contracts.HistoricalRecord, error)
}

// Publisher 완성된 리포트를 구독자에게 전달
// 전달 실패는 분석 결과에 영향을 주지 않음
type Publisher interface {
	PublishReport(report *contracts.Report)
}

// Service 일일 분석 파이프라인 오케스트레이터
// ⭐ SSOT: 시세 조회 → 뉴스 분석 → 예측 → 리포트 저장의 전체 흐름은 여기서만
type Service struct {
	cfg        *config.Config
	prices     PriceSource
	newsSource NewsSource
	analyzer   *news.Analyzer
	predictor  *engine.Predictor
	builder    ReportBuilder
	store      ReportStore
	cache      *redis.Cache
	publisher  Publisher
	logger     *logger.Logger
}

// NewService creates the analysis service
func NewService(
	cfg *config.Config,
	prices PriceSource,
	newsSource NewsSource,
	builder ReportBuilder,
	store ReportStore,
	cache *redis.Cache,
	noise contracts.NoiseSource,
	log *logger.Logger,
) *Service {
	return &Service{
		cfg:        cfg,
		prices:     prices,
		newsSource: newsSource,
		analyzer:   news.NewAnalyzer(noise, log.Zerolog()),
		predictor:  engine.NewPredictor(noise, log.Zerolog()),
		builder:    builder,
		store:      store,
		cache:      cache,
		logger:     log.WithComponent("analysis.service"),
	}
}

// SetPublisher 리포트 발행 싱크 연결 (선택)
func (s *Service) SetPublisher(p Publisher) {
	s.publisher = p
}

// Analyze 금속 하나에 대한 전체 분석을 수행하고 리포트를 저장
func (s *Service) Analyze(ctx context.Context, metal string) (*contracts.Report, error) {
	if !contracts.IsSupportedMetal(metal) {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedMetal, metal)
	}

	currentPrice, err := s.QuickPrice(ctx, metal)
	if err != nil {
		return nil, err
	}

	raws, err := s.newsSource.FetchMetalNews(ctx,
		strings.ToLower(contracts.MetalName(metal)), time.Time{}, time.Time{})
	if err != nil {
		// 뉴스 실패는 분석 중단 사유가 아님: 무기사 기준선으로 진행
		s.logger.WithError(err).Warn("News fetch failed, proceeding without articles")
		raws = nil
	}
	aggregate := news.Aggregate(s.analyzer.ProcessAll(raws))

	records, err := s.store.RecentRecords(ctx, metal, s.cfg.Reports.HistoryLimit)
	if err != nil {
		s.logger.WithError(err).Warn("Historical records unavailable, predicting without history")
		records = nil
	}

	prediction, err := s.predictor.Predict(ctx, currentPrice, aggregate, records)
	if err != nil {
		return nil, fmt.Errorf("predict %s: %w", metal, err)
	}

	report := s.builder.Build(metal, currentPrice, aggregate, prediction, time.Now())

	id, err := s.store.Save(ctx, report)
	if err != nil {
		return nil, fmt.Errorf("save report: %w", err)
	}
	report.ID = id

	if s.publisher != nil {
		s.publisher.PublishReport(report)
	}

	s.logger.WithFields(map[string]interface{}{
		"metal":      metal,
		"report_id":  id,
		"trend":      string(prediction.Trend),
		"confidence": prediction.Confidence,
		"articles":   aggregate.ArticlesAnalyzed,
	}).Info("Analysis report generated")

	return report, nil
}

// QuickPrice 현재 시세 조회 (60초 캐시)
func (s *Service) QuickPrice(ctx context.Context, metal string) (float64, error) {
	if !contracts.IsSupportedMetal(metal) {
		return 0, fmt.Errorf("%w: %s", ErrUnsupportedMetal, metal)
	}

	var price float64
	err := s.cache.GetOrSet(ctx, "price:"+metal, &price, priceCacheTTL, func() (interface{}, error) {
		prices, err := s.prices.LatestPrices(ctx, []string{metal})
		if err != nil {
			return nil, fmt.Errorf("fetch price %s: %w", metal, err)
		}
		p, ok := prices[metal]
		if !ok {
			return nil, fmt.Errorf("no price returned for %s", metal)
		}
		return p, nil
	})
	if err != nil {
		return 0, err
	}

	return price, nil
}

// MultiPrice 복수 심볼 시세 일괄 조회
// 개별 캐시를 먼저 확인하고 미스만 모아 한 번에 요청
func (s *Service) MultiPrice(ctx context.Context, metals []string) (map[string]float64, error) {
	results := make(map[string]float64, len(metals))
	var misses []string

	for _, metal := range metals {
		if !contracts.IsSupportedMetal(metal) {
			return nil, fmt.Errorf("%w: %s", ErrUnsupportedMetal, metal)
		}
		var price float64
		found, err := s.cache.Get(ctx, "price:"+metal, &price)
		if err != nil {
			return nil, err
		}
		if found {
			results[metal] = price
		} else {
			misses = append(misses, metal)
		}
	}

	if len(misses) > 0 {
		fetched, err := s.prices.LatestPrices(ctx, misses)
		if err != nil {
			return nil, fmt.Errorf("fetch prices: %w", err)
		}
		for metal, price := range fetched {
			results[metal] = price
			if err := s.cache.Set(ctx, "price:"+metal, price, priceCacheTTL); err != nil {
				s.logger.WithError(err).Warn("Price cache write failed")
			}
		}
	}

	return results, nil
}

// Reports 저장된 리포트 목록 조회 (최신순)
func (s *Service) Reports(ctx context.Context, metal string, limit int) ([]contracts.Report, error) {
	if !contracts.IsSupportedMetal(metal) {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedMetal, metal)
	}
	if limit <= 0 || limit > s.cfg.Reports.HistoryLimit {
		limit = s.cfg.Reports.HistoryLimit
	}
	return s.store.ListRecent(ctx, metal, limit)
}
