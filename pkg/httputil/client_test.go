package httputil

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/midas/pkg/config"
	"github.com/wonny/midas/pkg/logger"
)

func testLogger() *logger.Logger {
	return logger.New(&config.Config{
		Env:       "development",
		LogLevel:  "error",
		LogFormat: "json",
	})
}

func TestClient_Get(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer server.Close()

	client := New(testLogger())
	resp, err := client.Get(context.Background(), server.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestClient_GetJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"rates":{"USDXAU":2345.67}}`))
	}))
	defer server.Close()

	var result struct {
		Success bool               `json:"success"`
		Rates   map[string]float64 `json:"rates"`
	}

	client := New(testLogger())
	err := client.GetJSON(context.Background(), server.URL, &result)
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.InDelta(t, 2345.67, result.Rates["USDXAU"], 1e-9)
}

func TestClient_RetryOn5xx(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := New(testLogger()).WithRetry(3, 10*time.Millisecond)
	resp, err := client.Get(context.Background(), server.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, int32(3), calls.Load())
}

func TestClient_NoRetryWhenDisabled(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := New(testLogger()).DisableRetry()
	resp, err := client.Get(context.Background(), server.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, int32(1), calls.Load())
}

func TestIsRetryableError(t *testing.T) {
	assert.True(t, IsRetryableError(500))
	assert.True(t, IsRetryableError(503))
	assert.True(t, IsRetryableError(429))
	assert.False(t, IsRetryableError(200))
	assert.False(t, IsRetryableError(404))
}
