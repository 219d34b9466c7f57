package httputil

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"github.com/wonny/smartmoney/pkg/config"
	"github.com/wonny/smartmoney/pkg/logger"
)

func testConfig() *config.Config {
	return &config.Config{
		Env: "development",
		Naver: config.NaverConfig{
			Timeout:    2 * time.Second,
			RatePerSec: 100,
		},
	}
}

func TestNew(t *testing.T) {
	client := New(testConfig(), logger.NewNop())
	require.NotNil(t, client)

	assert.Equal(t, 2*time.Second, client.httpClient.Timeout)
	assert.Equal(t, rate.Limit(100), client.limiter.Limit())
	assert.Equal(t, defaultUserAgent, client.headers["User-Agent"])
}

func TestNew_Defaults(t *testing.T) {
	client := New(&config.Config{}, logger.NewNop())

	assert.Equal(t, 30*time.Second, client.httpClient.Timeout)
	assert.Equal(t, rate.Limit(10), client.limiter.Limit())
}

func TestGet_SendsHeaders(t *testing.T) {
	var gotUA, gotReferer string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		gotReferer = r.Header.Get("Referer")
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := New(testConfig(), logger.NewNop()).
		WithHeader("Referer", "https://finance.naver.com/")

	resp, err := client.Get(context.Background(), server.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, defaultUserAgent, gotUA)
	assert.Equal(t, "https://finance.naver.com/", gotReferer)
}

func TestGet_ServerErrorIsNotRetried(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := New(testConfig(), logger.NewNop())
	resp, err := client.Get(context.Background(), server.URL)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, 1, calls)
}

func TestGet_CancelledContext(t *testing.T) {
	client := New(testConfig(), logger.NewNop()).
		WithLimiter(rate.NewLimiter(rate.Every(time.Hour), 1))

	// Drain the single token so the next Wait must block.
	require.True(t, client.limiter.Allow())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.Get(ctx, "http://127.0.0.1:0")
	assert.Error(t, err)
}
