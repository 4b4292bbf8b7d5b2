package analysis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/midas/internal/contracts"
	"github.com/wonny/midas/internal/news"
	"github.com/wonny/midas/internal/report"
	"github.com/wonny/midas/pkg/config"
	"github.com/wonny/midas/pkg/logger"
	"github.com/wonny/midas/pkg/redis"
)

type stubPrices struct {
	prices map[string]float64
	err    error
	calls  int
}

func (s *stubPrices) LatestPrices(_ context.Context, symbols []string) (map[string]float64, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	out := make(map[string]float64)
	for _, sym := range symbols {
		if p, ok := s.prices[sym]; ok {
			out[sym] = p
		}
	}
	return out, nil
}

type stubNews struct {
	raws []news.RawArticle
	err  error
}

func (s *stubNews) FetchMetalNews(_ context.Context, _ string, _, _ time.Time) ([]news.RawArticle, error) {
	return s.raws, s.err
}

type stubStore struct {
	saved   []*contracts.Report
	records []contracts.HistoricalRecord
	reports []contracts.Report
	saveErr error
}

func (s *stubStore) Save(_ context.Context, r *contracts.Report) (int64, error) {
	if s.saveErr != nil {
		return 0, s.saveErr
	}
	s.saved = append(s.saved, r)
	return int64(len(s.saved)), nil
}

func (s *stubStore) ListRecent(_ context.Context, _ string, limit int) ([]contracts.Report, error) {
	if limit < len(s.reports) {
		return s.reports[:limit], nil
	}
	return s.reports, nil
}

func (s *stubStore) RecentRecords(_ context.Context, _ string, _ int) ([]contracts.HistoricalRecord, error) {
	return s.records, nil
}

type capturingPublisher struct {
	published []*contracts.Report
}

func (p *capturingPublisher) PublishReport(r *contracts.Report) {
	p.published = append(p.published, r)
}

func newTestService(prices *stubPrices, newsSource *stubNews, store *stubStore) *Service {
	cfg := &config.Config{
		Env:      "development",
		LogLevel: "error", LogFormat: "json",
		Reports: config.ReportsConfig{HistoryLimit: 30, RetentionDays: 90},
	}
	log := logger.New(cfg)
	redisClient, _ := redis.New(cfg) // disabled → 캐시는 항상 미스
	cache := redis.NewCache(redisClient, "midas")

	return NewService(cfg, prices, newsSource, report.NewBuilder(log.Zerolog()),
		store, cache, contracts.NoNoise(), log)
}

func TestService_Analyze(t *testing.T) {
	prices := &stubPrices{prices: map[string]float64{"XAU": 2650.0}}
	newsSource := &stubNews{raws: []news.RawArticle{
		{Title: "Gold surges as inflation fears mount"},
	}}
	store := &stubStore{records: []contracts.HistoricalRecord{
		{Trend: contracts.TrendBullish, Confidence: 0.8},
		{Trend: contracts.TrendBullish, Confidence: 0.8},
		{Trend: contracts.TrendBullish, Confidence: 0.8},
	}}
	publisher := &capturingPublisher{}

	service := newTestService(prices, newsSource, store)
	service.SetPublisher(publisher)

	result, err := service.Analyze(context.Background(), "XAU")
	require.NoError(t, err)

	assert.Equal(t, int64(1), result.ID)
	assert.Equal(t, "XAU", result.Metal)
	assert.Equal(t, "Gold", result.MetalName)
	assert.Equal(t, 2650.0, result.CurrentAnalysis.Price)
	assert.Equal(t, 1, result.NewsSentiment.ArticlesAnalyzed)
	assert.Equal(t, 3, result.Prediction.HistoricalDataPoints)
	require.Len(t, store.saved, 1)
	require.Len(t, publisher.published, 1)
	assert.Same(t, result, publisher.published[0])
}

func TestService_Analyze_UnsupportedMetal(t *testing.T) {
	service := newTestService(&stubPrices{}, &stubNews{}, &stubStore{})

	_, err := service.Analyze(context.Background(), "URANIUM")
	assert.ErrorIs(t, err, ErrUnsupportedMetal)
}

func TestService_Analyze_NewsFailureDegrades(t *testing.T) {
	prices := &stubPrices{prices: map[string]float64{"XAU": 2650.0}}
	newsSource := &stubNews{err: errors.New("api quota exceeded")}
	store := &stubStore{}

	service := newTestService(prices, newsSource, store)
	result, err := service.Analyze(context.Background(), "XAU")
	require.NoError(t, err)

	// 무기사 기준선: 감성 0, 분석 기사 0건
	assert.Zero(t, result.NewsSentiment.SentimentScore)
	assert.Zero(t, result.NewsSentiment.ArticlesAnalyzed)
	assert.Equal(t, contracts.TrendBearish, result.Prediction.Trend)
}

func TestService_Analyze_PriceFailureAborts(t *testing.T) {
	prices := &stubPrices{err: errors.New("upstream down")}
	service := newTestService(prices, &stubNews{}, &stubStore{})

	_, err := service.Analyze(context.Background(), "XAU")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "upstream down")
}

func TestService_QuickPrice(t *testing.T) {
	prices := &stubPrices{prices: map[string]float64{"XAG": 30.25}}
	service := newTestService(prices, &stubNews{}, &stubStore{})

	price, err := service.QuickPrice(context.Background(), "XAG")
	require.NoError(t, err)
	assert.Equal(t, 30.25, price)

	_, err = service.QuickPrice(context.Background(), "BTC")
	assert.ErrorIs(t, err, ErrUnsupportedMetal)
}

func TestService_MultiPrice(t *testing.T) {
	prices := &stubPrices{prices: map[string]float64{"XAU": 2650.0, "XAG": 30.25}}
	service := newTestService(prices, &stubNews{}, &stubStore{})

	got, err := service.MultiPrice(context.Background(), []string{"XAU", "XAG"})
	require.NoError(t, err)
	assert.Equal(t, map[string]float64{"XAU": 2650.0, "XAG": 30.25}, got)
	assert.Equal(t, 1, prices.calls)
}

func TestService_Reports_LimitClamped(t *testing.T) {
	store := &stubStore{reports: make([]contracts.Report, 40)}
	service := newTestService(&stubPrices{}, &stubNews{}, store)

	got, err := service.Reports(context.Background(), "XAU", 0)
	require.NoError(t, err)
	assert.Len(t, got, 30)
}
