package worldnews

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/time/rate"

	"github.com/wonny/midas/pkg/config"
	"github.com/wonny/midas/pkg/httputil"
	"github.com/wonny/midas/pkg/logger"
)

// Client handles communication with worldnewsapi.com
// ⭐ SSOT: 뉴스 API 호출은 이 클라이언트에서만
type Client struct {
	httpClient  *httputil.Client
	logger      *logger.Logger
	baseURL     string
	apiKey      string
	daysBack    int
	maxArticles int
	limiter     *rate.Limiter
}

// NewClient creates a new World News API client
func NewClient(httpClient *httputil.Client, cfg config.WorldNewsConfig, log *logger.Logger) *Client {
	return &Client{
		httpClient:  httpClient,
		logger:      log,
		baseURL:     cfg.BaseURL,
		apiKey:      cfg.APIKey,
		daysBack:    cfg.DaysBack,
		maxArticles: cfg.MaxArticles,
		limiter:     rate.NewLimiter(rate.Limit(1), 1),
	}
}

// stripHTML 기사 본문 필드의 HTML 마크업 제거
// 뉴스 API는 summary/text에 태그가 섞인 문자열을 내려줌
func stripHTML(s string) string {
	if !strings.ContainsRune(s, '<') {
		return s
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return s
	}

	return strings.Join(strings.Fields(doc.Text()), " ")
}
