package news

import (
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/wonny/midas/internal/contracts"
)

// summaryMaxLen Article.Summary 최대 길이
const summaryMaxLen = 500

// headlineMaxLen 집계 헤드라인 최대 길이
const headlineMaxLen = 100

// maxHeadlines 집계에 포함할 헤드라인 수
const maxHeadlines = 5

// truncateRunes 문자 단위 절단 (멀티바이트 룬이 중간에서 잘리지 않도록)
func truncateRunes(s string, max int) string {
	if len(s) <= max {
		return s
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}

// RawArticle 뉴스 제공자가 전달하는 원시 기사 레코드
type RawArticle struct {
	Title         string
	URL           string
	Summary       string
	PublishedDate string
}

// Analyzer 기사별 파이프라인: 필터 → 스코어링 → 동인 추출
// ⭐ SSOT: Article 생성은 이 컴포넌트에서만
type Analyzer struct {
	filter *RelevanceFilter
	scorer *SentimentScorer
	log    zerolog.Logger
}

// NewAnalyzer 새 분석기 생성
func NewAnalyzer(noise contracts.NoiseSource, log zerolog.Logger) *Analyzer {
	return &Analyzer{
		filter: NewRelevanceFilter(log),
		scorer: NewSentimentScorer(noise, log),
		log:    log.With().Str("component", "news.analyzer").Logger(),
	}
}

// Process 원시 기사를 필터링하고 스코어링
// 관련성 필터를 통과하지 못하면 (nil, false) 반환
func (a *Analyzer) Process(raw RawArticle) (*contracts.Article, bool) {
	content := strings.ToLower(raw.Title + " " + raw.Summary)

	if !a.filter.IsRelevant(content) {
		return nil, false
	}

	summary := truncateRunes(raw.Summary, summaryMaxLen)

	article := &contracts.Article{
		Title:          raw.Title,
		URL:            raw.URL,
		Summary:        summary,
		PublishedDate:  raw.PublishedDate,
		SentimentScore: a.scorer.Score(content),
		KeyFactors:     ExtractFactors(content),
	}

	return article, true
}

// ProcessAll 원시 기사 목록을 일괄 처리
func (a *Analyzer) ProcessAll(raws []RawArticle) []contracts.Article {
	var articles []contracts.Article
	for _, raw := range raws {
		if article, ok := a.Process(raw); ok {
			articles = append(articles, *article)
		}
	}

	a.log.Debug().
		Int("total", len(raws)).
		Int("relevant", len(articles)).
		Msg("articles processed")

	return articles
}

// Aggregate 기사 집합을 NewsAggregate로 축약
// 감성은 산술 평균 (빈 입력이면 0.0), factor는 빈도순 상위 5개
// (동률은 먼저 발견된 순서 유지)
func Aggregate(articles []contracts.Article) contracts.NewsAggregate {
	if len(articles) == 0 {
		return contracts.NewsAggregate{}
	}

	var sentimentSum float64
	counts := make(map[contracts.FactorTag]int)
	var order []contracts.FactorTag

	for _, article := range articles {
		sentimentSum += article.SentimentScore
		for _, factor := range article.KeyFactors {
			if counts[factor] == 0 {
				order = append(order, factor)
			}
			counts[factor]++
		}
	}

	// 빈도 내림차순, 동률은 첫 발견 순서 (stable)
	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})
	if len(order) > contracts.MaxKeyFactors {
		order = order[:contracts.MaxKeyFactors]
	}

	var headlines []string
	for i, article := range articles {
		if i == maxHeadlines {
			break
		}
		headlines = append(headlines, truncateRunes(article.Title, headlineMaxLen))
	}

	return contracts.NewsAggregate{
		SentimentScore:   contracts.Round3(sentimentSum / float64(len(articles))),
		KeyFactors:       order,
		ArticlesAnalyzed: len(articles),
		RecentHeadlines:  headlines,
	}
}
