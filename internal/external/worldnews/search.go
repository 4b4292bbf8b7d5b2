package worldnews

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/wonny/midas/internal/news"
)

// maxArticlesPerRequest API 요청당 기사 수 상한
const maxArticlesPerRequest = 50

// searchTerms 금속별 검색어
var searchTerms = map[string]string{
	"gold":      "gold price OR gold market OR precious metals OR federal reserve OR inflation OR geopolitical",
	"silver":    "silver price OR silver market OR precious metals",
	"platinum":  "platinum price OR platinum market",
	"palladium": "palladium price OR palladium market",
}

type searchResponse struct {
	News []searchArticle `json:"news"`
}

type searchArticle struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	Summary     string `json:"summary"`
	Text        string `json:"text"`
	PublishTime string `json:"publish_time"`
}

// FetchMetalNews 금속 관련 뉴스 조회
// start/end가 제로값이면 end=now, start=end-daysBack
func (c *Client) FetchMetalNews(ctx context.Context, metal string, start, end time.Time) ([]news.RawArticle, error) {
	if end.IsZero() {
		end = time.Now()
	}
	if start.IsZero() {
		start = end.AddDate(0, 0, -c.daysBack)
	}

	term, ok := searchTerms[metal]
	if !ok {
		term = fmt.Sprintf("%s OR %q", metal, metal+" price")
	}

	number := c.maxArticles
	if number > maxArticlesPerRequest {
		number = maxArticlesPerRequest
	}

	params := url.Values{}
	params.Set("text", term)
	params.Set("language", "en")
	params.Set("sort", "publish-time")
	params.Set("sort-direction", "DESC")
	params.Set("earliest-publish-date", start.Format("2006-01-02"))
	params.Set("latest-publish-date", end.Format("2006-01-02"))
	params.Set("number", strconv.Itoa(number))
	params.Set("api-key", c.apiKey)

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	var resp searchResponse
	endpoint := fmt.Sprintf("%s/search-news?%s", c.baseURL, params.Encode())
	if err := c.httpClient.GetJSON(ctx, endpoint, &resp); err != nil {
		return nil, fmt.Errorf("worldnews search request: %w", err)
	}

	raws := make([]news.RawArticle, 0, len(resp.News))
	for _, article := range resp.News {
		summary := article.Summary
		if summary == "" {
			summary = article.Text
		}
		raws = append(raws, news.RawArticle{
			Title:         stripHTML(article.Title),
			URL:           article.URL,
			Summary:       stripHTML(summary),
			PublishedDate: article.PublishTime,
		})
	}

	c.logger.WithFields(map[string]interface{}{
		"metal": metal,
		"found": len(raws),
		"from":  start.Format("2006-01-02"),
		"to":    end.Format("2006-01-02"),
	}).Debug("Metal news fetched")

	return raws, nil
}
