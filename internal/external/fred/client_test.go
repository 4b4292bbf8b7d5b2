package fred

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"github.com/wonny/midas/pkg/config"
	"github.com/wonny/midas/pkg/httputil"
	"github.com/wonny/midas/pkg/logger"
)

func newTestClient(baseURL, apiKey string) *Client {
	log := logger.New(&config.Config{Env: "development", LogLevel: "error", LogFormat: "json"})
	client := NewClient(httputil.New(log).DisableRetry(), config.FREDConfig{
		APIKey:  apiKey,
		BaseURL: baseURL,
	}, log)
	client.limiter = rate.NewLimiter(rate.Inf, 1)
	return client
}

func TestClient_GoldPriceUSD(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		assert.Equal(t, "GOLDAMGBD228NLBM", query.Get("series_id"))
		assert.Equal(t, "json", query.Get("file_type"))
		_, _ = w.Write([]byte(`{"observations":[{"date":"2026-08-20","value":"2603.25"}]}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL, "test-key")
	price, err := client.GoldPriceUSD(context.Background(), time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, 2603.25, price)
}

func TestClient_GoldPriceUSD_FallsBackToPriorDay(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// 휴장일은 "." 값, 그 전날에만 관측값 존재
		switch r.URL.Query().Get("observation_start") {
		case "2026-08-23":
			_, _ = w.Write([]byte(`{"observations":[{"date":"2026-08-23","value":"."}]}`))
		case "2026-08-22":
			_, _ = w.Write([]byte(`{"observations":[]}`))
		case "2026-08-21":
			_, _ = w.Write([]byte(`{"observations":[{"date":"2026-08-21","value":"2600.10"}]}`))
		default:
			t.Fatalf("unexpected observation_start %s", r.URL.Query().Get("observation_start"))
		}
	}))
	defer server.Close()

	client := newTestClient(server.URL, "test-key")
	price, err := client.GoldPriceUSD(context.Background(), time.Date(2026, 8, 23, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, 2600.10, price)
}

func TestClient_GoldPriceUSD_NoAPIKey(t *testing.T) {
	client := newTestClient("http://unused.invalid", "")
	price, err := client.GoldPriceUSD(context.Background(), time.Now())
	require.NoError(t, err)
	assert.Zero(t, price)
}

func TestClient_GoldPriceUSD_NoObservations(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"observations":[]}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL, "test-key")
	price, err := client.GoldPriceUSD(context.Background(), time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Zero(t, price)
}
