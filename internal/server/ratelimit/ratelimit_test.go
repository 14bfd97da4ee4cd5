package ratelimit

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/autoreply/internal/metrics"
)

// fakeClock is advanced by hand so refills are deterministic.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newTestLimiter(t *testing.T, config *Config) (*Limiter, *fakeClock) {
	t.Helper()
	clock := &fakeClock{now: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
	limiter := NewLimiter(config)
	limiter.now = clock.Now
	t.Cleanup(limiter.Stop)
	return limiter, clock
}

func TestLimiter_Allow(t *testing.T) {
	limiter, _ := newTestLimiter(t, &Config{Enabled: true, DefaultLimit: 10, DefaultWindow: time.Minute})

	for i := 0; i < 10; i++ {
		allowed, info := limiter.Allow("127.0.0.1", "/test", "GET")
		require.True(t, allowed, "request %d", i+1)
		assert.Equal(t, 10, info.Limit)
		assert.Equal(t, 9-i, info.Remaining)
		assert.Equal(t, "default", info.Endpoint)
	}

	allowed, info := limiter.Allow("127.0.0.1", "/test", "GET")
	assert.False(t, allowed)
	assert.Equal(t, 0, info.Remaining)
	assert.Equal(t, 6*time.Second, info.RetryAfter)
}

func TestLimiter_Refill(t *testing.T) {
	limiter, clock := newTestLimiter(t, &Config{Enabled: true, DefaultLimit: 10, DefaultWindow: time.Minute})

	for i := 0; i < 10; i++ {
		allowed, _ := limiter.Allow("127.0.0.1", "/test", "GET")
		require.True(t, allowed)
	}
	allowed, _ := limiter.Allow("127.0.0.1", "/test", "GET")
	require.False(t, allowed)

	clock.Advance(6 * time.Second)
	allowed, info := limiter.Allow("127.0.0.1", "/test", "GET")
	assert.True(t, allowed)
	assert.Equal(t, 0, info.Remaining)
	assert.Equal(t, clock.Now().Add(time.Minute), info.ResetTime)
}

func TestLimiter_WhitelistBlacklistDisabled(t *testing.T) {
	limiter, _ := newTestLimiter(t, &Config{
		Enabled:       true,
		DefaultLimit:  1,
		DefaultWindow: time.Minute,
		Whitelist:     IPSet([]string{"127.0.0.1"}),
		Blacklist:     IPSet([]string{" 192.168.1.1 "}),
	})

	for i := 0; i < 5; i++ {
		allowed, info := limiter.Allow("127.0.0.1", "/test", "GET")
		assert.True(t, allowed)
		assert.Equal(t, 0, info.Limit)
	}

	allowed, _ := limiter.Allow("192.168.1.1", "/test", "GET")
	assert.False(t, allowed)

	disabled, _ := newTestLimiter(t, &Config{Enabled: false})
	for i := 0; i < 5; i++ {
		allowed, _ := disabled.Allow("10.0.0.1", "/generate", "POST")
		assert.True(t, allowed)
	}
	assert.Equal(t, 0, disabled.Len())
}

func TestLimiter_EndpointSpecific(t *testing.T) {
	limiter, _ := newTestLimiter(t, &Config{
		Enabled:         true,
		DefaultLimit:    1000,
		DefaultWindow:   time.Minute,
		EndpointConfigs: DefaultEndpointConfigs(),
	})

	for i := 0; i < 5; i++ {
		allowed, info := limiter.Allow("127.0.0.1", "/generate", "POST")
		require.True(t, allowed, "request %d", i+1)
		assert.Equal(t, 30, info.Limit)
		assert.Equal(t, "/generate", info.Endpoint)
	}
	allowed, _ := limiter.Allow("127.0.0.1", "/generate", "POST")
	assert.False(t, allowed, "burst exhausted")

	allowed, info := limiter.Allow("127.0.0.1", "/generate/stream", "POST")
	assert.True(t, allowed, "stream endpoint has its own bucket")
	assert.Equal(t, 30, info.Limit)

	allowed, info = limiter.Allow("127.0.0.1", "/other", "GET")
	assert.True(t, allowed)
	assert.Equal(t, 1000, info.Limit)

	allowed, info = limiter.Allow("127.0.0.1", "/health", "GET")
	assert.True(t, allowed)
	assert.Equal(t, 0, info.Limit)
}

func TestLimiter_Concurrent(t *testing.T) {
	limiter, _ := newTestLimiter(t, &Config{Enabled: true, DefaultLimit: 100, DefaultWindow: time.Minute})

	var wg sync.WaitGroup
	var allowedCount atomic.Int64
	for i := 0; i < 200; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if allowed, _ := limiter.Allow("127.0.0.1", "/test", "GET"); allowed {
				allowedCount.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(100), allowedCount.Load())
}

func TestLimiter_Cleanup(t *testing.T) {
	limiter, clock := newTestLimiter(t, &Config{Enabled: true, DefaultLimit: 10, DefaultWindow: time.Minute, IdleTTL: time.Hour})

	for i := 0; i < 10; i++ {
		limiter.Allow(fmt.Sprintf("127.0.0.%d", i+1), "/test", "GET")
	}
	require.Equal(t, 10, limiter.Len())

	clock.Advance(30 * time.Minute)
	for i := 0; i < 5; i++ {
		limiter.Allow(fmt.Sprintf("127.0.0.%d", i+1), "/test", "GET")
	}

	clock.Advance(45 * time.Minute)
	limiter.Cleanup()
	assert.Equal(t, 5, limiter.Len())
}

func TestLimiter_StopIsIdempotent(t *testing.T) {
	limiter := NewLimiter(&Config{Enabled: true, DefaultLimit: 1, DefaultWindow: time.Minute, CleanupInterval: time.Millisecond})
	limiter.Stop()
	limiter.Stop()
}

func TestNewLimiter_NilConfig(t *testing.T) {
	limiter, _ := newTestLimiter(t, nil)

	allowed, info := limiter.Allow("127.0.0.1", "/test", "GET")
	assert.True(t, allowed)
	assert.Equal(t, 1000, info.Limit)

	_, info = limiter.Allow("127.0.0.1", "/research", "POST")
	assert.Equal(t, 60, info.Limit)
}

func TestMatchEndpoint(t *testing.T) {
	configs := []EndpointConfig{
		{Path: "/generate", Method: "POST", Limit: 1, Window: time.Minute},
		{Path: "/runs/", Method: "POST", Limit: 2, Window: time.Minute},
	}

	tests := []struct {
		name   string
		path   string
		method string
		limit  int
		found  bool
	}{
		{"exact", "/generate", "POST", 1, true},
		{"method mismatch", "/generate", "GET", 0, false},
		{"prefix", "/runs/42", "POST", 2, true},
		{"health unlimited", "/health", "GET", 0, true},
		{"metrics unlimited", "/metrics", "GET", 0, true},
		{"no match", "/other", "POST", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MatchEndpoint(tt.path, tt.method, configs)
			if !tt.found {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, tt.limit, got.Limit)
		})
	}
}

func TestMiddleware(t *testing.T) {
	limiter, _ := newTestLimiter(t, &Config{
		Enabled:         true,
		DefaultLimit:    1000,
		DefaultWindow:   time.Minute,
		EndpointConfigs: []EndpointConfig{{Path: "/generate", Method: "POST", Limit: 1, Window: time.Minute}},
	})
	handler := limiter.Middleware(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	before := testutil.ToFloat64(metrics.RateLimitedTotal.WithLabelValues("/generate"))

	send := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/generate", nil)
		req.RemoteAddr = "203.0.113.7:5555"
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec
	}

	first := send()
	assert.Equal(t, http.StatusNoContent, first.Code)
	assert.Equal(t, "1", first.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "0", first.Header().Get("X-RateLimit-Remaining"))

	second := send()
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
	assert.Equal(t, "60", second.Header().Get("Retry-After"))

	var body map[string]any
	require.NoError(t, json.Unmarshal(second.Body.Bytes(), &body))
	assert.Equal(t, "rate_limit_exceeded", body["error"])
	assert.Equal(t, float64(60), body["retry_after"])
	assert.Equal(t, before+1, testutil.ToFloat64(metrics.RateLimitedTotal.WithLabelValues("/generate")))
}

func TestClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "198.51.100.3:1234"
	req.Header.Set("X-Forwarded-For", "10.0.0.1")
	assert.Equal(t, "198.51.100.3", ClientIP(req))

	req.RemoteAddr = "pipe"
	assert.Equal(t, "pipe", ClientIP(req))
}
