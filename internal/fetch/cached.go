package fetch

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"github.com/jonathan/autoreply/internal/metrics"
)

// DefaultCacheTTL is how long successful responses stay cached.
const DefaultCacheTTL = 6 * time.Hour

// DefaultKeyPrefix namespaces cache keys.
const DefaultKeyPrefix = "autoreply:fetch:"

// CachedFetcher wraps a Fetcher with a redis-backed response cache.
// Concurrent fetches of the same URL are collapsed into one upstream request.
// Only successful responses are cached; cache failures never fail a fetch.
type CachedFetcher struct {
	next      Fetcher
	client    redis.Cmdable
	ttl       time.Duration
	keyPrefix string
	group     singleflight.Group
}

// CachedFetcherConfig holds configuration for the cached fetcher.
type CachedFetcherConfig struct {
	CacheTTL  time.Duration
	KeyPrefix string
}

// DefaultCachedFetcherConfig returns sensible defaults.
func DefaultCachedFetcherConfig() *CachedFetcherConfig {
	return &CachedFetcherConfig{
		CacheTTL:  DefaultCacheTTL,
		KeyPrefix: DefaultKeyPrefix,
	}
}

// NewCachedFetcher creates a new cached fetcher. A nil client disables caching
// but keeps request collapsing.
func NewCachedFetcher(next Fetcher, client redis.Cmdable, config *CachedFetcherConfig) *CachedFetcher {
	if config == nil {
		config = DefaultCachedFetcherConfig()
	}
	if config.CacheTTL <= 0 {
		config.CacheTTL = DefaultCacheTTL
	}
	if config.KeyPrefix == "" {
		config.KeyPrefix = DefaultKeyPrefix
	}
	return &CachedFetcher{
		next:      next,
		client:    client,
		ttl:       config.CacheTTL,
		keyPrefix: config.KeyPrefix,
	}
}

func (f *CachedFetcher) key(urlStr string) string {
	return f.keyPrefix + urlStr
}

// Fetch retrieves a URL, using the cache when a fresh entry exists.
func (f *CachedFetcher) Fetch(ctx context.Context, urlStr string) (*Result, error) {
	if cached, ok := f.lookup(ctx, urlStr); ok {
		return cached, nil
	}

	v, err, _ := f.group.Do(urlStr, func() (any, error) {
		result, err := f.next.Fetch(ctx, urlStr)
		if err != nil {
			return nil, err
		}
		f.store(ctx, urlStr, result)
		return result, nil
	})
	if err != nil {
		return nil, err
	}

	result := *v.(*Result)
	result.FromCache = false
	return &result, nil
}

// Invalidate drops the cached entry for a URL.
func (f *CachedFetcher) Invalidate(ctx context.Context, urlStr string) error {
	if f.client == nil {
		return nil
	}
	return f.client.Del(ctx, f.key(urlStr)).Err()
}

func (f *CachedFetcher) lookup(ctx context.Context, urlStr string) (*Result, bool) {
	if f.client == nil {
		return nil, false
	}

	raw, err := f.client.Get(ctx, f.key(urlStr)).Bytes()
	if errors.Is(err, redis.Nil) {
		metrics.FetchCacheTotal.WithLabelValues(metrics.CacheMiss).Inc()
		return nil, false
	}
	if err != nil {
		metrics.FetchCacheTotal.WithLabelValues(metrics.CacheError).Inc()
		slog.Warn("fetch cache read failed", "url", urlStr, "error", err)
		return nil, false
	}

	var result Result
	if err := json.Unmarshal(raw, &result); err != nil {
		metrics.FetchCacheTotal.WithLabelValues(metrics.CacheError).Inc()
		slog.Debug("discarding malformed cache entry", "url", urlStr, "error", err)
		return nil, false
	}

	metrics.FetchCacheTotal.WithLabelValues(metrics.CacheHit).Inc()
	result.FromCache = true
	return &result, true
}

func (f *CachedFetcher) store(ctx context.Context, urlStr string, result *Result) {
	if f.client == nil {
		return
	}

	data, err := json.Marshal(result)
	if err != nil {
		return
	}
	if err := f.client.Set(ctx, f.key(urlStr), data, f.ttl).Err(); err != nil {
		slog.Warn("fetch cache write failed", "url", urlStr, "error", err)
	}
}
