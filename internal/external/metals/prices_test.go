package metals

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"github.com/wonny/midas/pkg/config"
	"github.com/wonny/midas/pkg/httputil"
	"github.com/wonny/midas/pkg/logger"
)

func testLogger() *logger.Logger {
	return logger.New(&config.Config{
		Env:       "development",
		LogLevel:  "error",
		LogFormat: "json",
	})
}

func newTestClient(baseURL string) *Client {
	log := testLogger()
	client := NewClient(httputil.New(log).DisableRetry(), config.MetalsAPIConfig{
		APIKey:  "test-key",
		BaseURL: baseURL,
	}, log)
	client.limiter = rate.NewLimiter(rate.Inf, 1)
	return client
}

func TestClient_LatestPrices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/latest", r.URL.Path)
		assert.Contains(t, r.URL.RawQuery, "currencies=XAU,XAG")
		_, _ = w.Write([]byte(`{"success":true,"rates":{"USDXAU":2651.237,"USDXAG":30.114}}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	prices, err := client.LatestPrices(context.Background(), []string{"XAU", "XAG"})
	require.NoError(t, err)

	assert.Equal(t, 2651.24, prices["XAU"])
	assert.Equal(t, 30.11, prices["XAG"])
}

func TestClient_LatestPrices_MissingSymbolSkipped(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success":true,"rates":{"USDXAU":2651.0}}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	prices, err := client.LatestPrices(context.Background(), []string{"XAU", "XPT"})
	require.NoError(t, err)

	assert.Len(t, prices, 1)
	assert.NotContains(t, prices, "XPT")
}

func TestClient_LatestPrices_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success":false,"error":{"code":101,"info":"invalid api key"}}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.LatestPrices(context.Background(), []string{"XAU"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid api key")
}

func TestClient_HistoricalPrice_DirectHit(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/historical", r.URL.Path)
		_, _ = w.Write([]byte(`{"success":true,"rates":{"USDXAU":2600.5}}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	date := time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC)
	price, err := client.HistoricalPrice(context.Background(), "XAU", date)
	require.NoError(t, err)
	assert.Equal(t, 2600.5, price)
}

func TestClient_HistoricalPrice_TimeseriesFallback(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/historical":
			_, _ = w.Write([]byte(`{"success":false,"error":{"code":404,"info":"no data"}}`))
		case "/timeseries":
			_, _ = w.Write([]byte(`{"success":true,"rates":{"2026-08-20":{"USDXAU":2598.7}}}`))
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	date := time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC)
	price, err := client.HistoricalPrice(context.Background(), "XAU", date)
	require.NoError(t, err)
	assert.Equal(t, 2598.7, price)
}

func TestClient_HistoricalPrice_LookbackFallback(t *testing.T) {
	// 요청일(일요일)과 전날(토요일)은 비어 있고 금요일에만 데이터가 있는 상황
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/historical" {
			_, _ = w.Write([]byte(`{"success":false}`))
			return
		}
		query := r.URL.Query()
		if query.Get("start_date") == "2026-08-21" {
			_, _ = w.Write([]byte(`{"success":true,"rates":{"2026-08-21":{"USDXAU":2597.0}}}`))
			return
		}
		_, _ = w.Write([]byte(`{"success":true,"rates":{}}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	date := time.Date(2026, 8, 23, 0, 0, 0, 0, time.UTC)
	price, err := client.HistoricalPrice(context.Background(), "XAU", date)
	require.NoError(t, err)
	assert.Equal(t, 2597.0, price)
}

func TestClient_HistoricalPrice_NotFound(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		_, _ = w.Write([]byte(`{"success":true,"rates":{}}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	price, err := client.HistoricalPrice(context.Background(), "XAU", time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Zero(t, price)
	// /historical + 당일 + 이전 5일
	assert.Equal(t, 7, calls)
}

func TestClient_LatestPrices_QueryEscapesKey(t *testing.T) {
	var rawQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rawQuery = r.URL.RawQuery
		_, _ = w.Write([]byte(`{"success":true,"rates":{}}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.LatestPrices(context.Background(), []string{"XAU"})
	require.NoError(t, err)
	assert.True(t, strings.Contains(rawQuery, "api_key=test-key"))
}
