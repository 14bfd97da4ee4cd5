package fetch

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func countingFetcher(body string, calls *atomic.Int32) Fetcher {
	return FetcherFunc(func(_ context.Context, u string) (*Result, error) {
		calls.Add(1)
		return &Result{URL: u, Body: body, StatusCode: 200}, nil
	})
}

func setupMiniredis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return client, mr
}

func TestDefaultCachedFetcherConfig(t *testing.T) {
	config := DefaultCachedFetcherConfig()
	assert.Equal(t, DefaultCacheTTL, config.CacheTTL)
	assert.Equal(t, DefaultKeyPrefix, config.KeyPrefix)
}

func TestCachedFetcher_CachesSuccess(t *testing.T) {
	client, mr := setupMiniredis(t)
	var calls atomic.Int32
	f := NewCachedFetcher(countingFetcher("payload", &calls), client, nil)
	ctx := context.Background()

	first, err := f.Fetch(ctx, "https://example.com/a")
	require.NoError(t, err)
	assert.False(t, first.FromCache)

	second, err := f.Fetch(ctx, "https://example.com/a")
	require.NoError(t, err)
	assert.True(t, second.FromCache)
	assert.Equal(t, "payload", second.Body)

	assert.Equal(t, int32(1), calls.Load())
	assert.True(t, mr.Exists(DefaultKeyPrefix+"https://example.com/a"))
	assert.Equal(t, DefaultCacheTTL, mr.TTL(DefaultKeyPrefix+"https://example.com/a"))
}

func TestCachedFetcher_ExpiresAfterTTL(t *testing.T) {
	client, mr := setupMiniredis(t)
	var calls atomic.Int32
	f := NewCachedFetcher(countingFetcher("payload", &calls), client, &CachedFetcherConfig{CacheTTL: time.Minute})
	ctx := context.Background()

	_, err := f.Fetch(ctx, "https://example.com/a")
	require.NoError(t, err)

	mr.FastForward(2 * time.Minute)

	_, err = f.Fetch(ctx, "https://example.com/a")
	require.NoError(t, err)
	assert.Equal(t, int32(2), calls.Load())
}

func TestCachedFetcher_DoesNotCacheFailures(t *testing.T) {
	client, mr := setupMiniredis(t)
	var calls atomic.Int32
	failing := FetcherFunc(func(_ context.Context, u string) (*Result, error) {
		calls.Add(1)
		return nil, &Error{URL: u, Message: "HTTP status 500"}
	})
	f := NewCachedFetcher(failing, client, nil)
	ctx := context.Background()

	_, err := f.Fetch(ctx, "https://example.com/b")
	require.Error(t, err)
	_, err = f.Fetch(ctx, "https://example.com/b")
	require.Error(t, err)

	assert.Equal(t, int32(2), calls.Load())
	assert.False(t, mr.Exists(DefaultKeyPrefix+"https://example.com/b"))
}

func TestCachedFetcher_IgnoresMalformedEntry(t *testing.T) {
	client, mr := setupMiniredis(t)
	require.NoError(t, mr.Set(DefaultKeyPrefix+"https://example.com/c", "{not json"))

	var calls atomic.Int32
	f := NewCachedFetcher(countingFetcher("fresh", &calls), client, nil)

	result, err := f.Fetch(context.Background(), "https://example.com/c")
	require.NoError(t, err)
	assert.Equal(t, "fresh", result.Body)
	assert.Equal(t, int32(1), calls.Load())
}

func TestCachedFetcher_RedisDown(t *testing.T) {
	client, mr := setupMiniredis(t)
	mr.Close()

	var calls atomic.Int32
	f := NewCachedFetcher(countingFetcher("payload", &calls), client, nil)

	result, err := f.Fetch(context.Background(), "https://example.com/d")
	require.NoError(t, err)
	assert.Equal(t, "payload", result.Body)
}

func TestCachedFetcher_NilClient(t *testing.T) {
	var calls atomic.Int32
	f := NewCachedFetcher(countingFetcher("payload", &calls), nil, nil)

	_, err := f.Fetch(context.Background(), "https://example.com/e")
	require.NoError(t, err)
	_, err = f.Fetch(context.Background(), "https://example.com/e")
	require.NoError(t, err)

	assert.Equal(t, int32(2), calls.Load())
	assert.NoError(t, f.Invalidate(context.Background(), "https://example.com/e"))
}

func TestCachedFetcher_Invalidate(t *testing.T) {
	client, _ := setupMiniredis(t)
	var calls atomic.Int32
	f := NewCachedFetcher(countingFetcher("payload", &calls), client, nil)
	ctx := context.Background()

	_, err := f.Fetch(ctx, "https://example.com/f")
	require.NoError(t, err)
	require.NoError(t, f.Invalidate(ctx, "https://example.com/f"))
	_, err = f.Fetch(ctx, "https://example.com/f")
	require.NoError(t, err)

	assert.Equal(t, int32(2), calls.Load())
}

func TestCachedFetcher_PropagatesFetchError(t *testing.T) {
	sentinel := errors.New("upstream down")
	f := NewCachedFetcher(FetcherFunc(func(context.Context, string) (*Result, error) {
		return nil, sentinel
	}), nil, nil)

	_, err := f.Fetch(context.Background(), "https://example.com/g")
	assert.ErrorIs(t, err, sentinel)
}
