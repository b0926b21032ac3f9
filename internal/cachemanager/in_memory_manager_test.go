package cachemanager

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type idemKey string

type storedResult struct {
	Status int
	Body   string
}

func newTestCache() *InMemoryCacheManager[idemKey, storedResult] {
	return NewInMemoryCacheManager[idemKey, storedResult]("test", DefaultExpiration, DefaultCleanupInterval)
}

func TestInMemoryCacheManager_SetGet(t *testing.T) {
	c := newTestCache()
	want := storedResult{Status: 200, Body: `{"type":"ok","value":1}`}
	c.Set(context.Background(), "alice:k1", want, time.Minute)

	got, ok := c.Get(context.Background(), "alice:k1")
	require.True(t, ok)
	require.Equal(t, want, got)
	require.Equal(t, 1, c.Len())
}

func TestInMemoryCacheManager_Miss(t *testing.T) {
	got, ok := newTestCache().Get(context.Background(), "missing")
	require.False(t, ok)
	require.Zero(t, got)
}

func TestInMemoryCacheManager_WrongTypeIsMiss(t *testing.T) {
	c := newTestCache()
	c.cache.Set("k", 123, DefaultExpiration)

	_, ok := c.Get(context.Background(), "k")
	require.False(t, ok)
}

func TestInMemoryCacheManager_Expires(t *testing.T) {
	c := newTestCache()
	c.Set(context.Background(), "k", storedResult{Status: 200}, 10*time.Millisecond)

	require.Eventually(t, func() bool {
		_, ok := c.Get(context.Background(), "k")
		return !ok
	}, time.Second, 5*time.Millisecond)
}

func TestInMemoryCacheManager_GetMultiple(t *testing.T) {
	c := newTestCache()
	ctx := context.Background()

	got, ok := c.GetMultiple(ctx, nil)
	require.False(t, ok)
	require.Nil(t, got)

	c.Set(ctx, "a", storedResult{Status: 1}, time.Minute)
	c.Set(ctx, "b", storedResult{Status: 2}, time.Minute)

	got, ok = c.GetMultiple(ctx, []idemKey{"a", "b", "c"})
	require.True(t, ok)
	require.Equal(t, map[idemKey]storedResult{"a": {Status: 1}, "b": {Status: 2}}, got)

	_, ok = c.GetMultiple(ctx, []idemKey{"x", "y"})
	require.False(t, ok)
}

func TestInMemoryCacheManager_GetWithRefresh(t *testing.T) {
	c := newTestCache()
	ctx := context.Background()
	c.Set(ctx, "k", storedResult{Status: 7}, 30*time.Millisecond)

	got, ok := c.GetWithRefresh(ctx, "k", time.Minute)
	require.True(t, ok)
	require.Equal(t, 7, got.Status)

	time.Sleep(50 * time.Millisecond)
	_, ok = c.Get(ctx, "k")
	require.True(t, ok, "refresh should extend the ttl")
}

func TestInMemoryCacheManager_DeleteAndFlush(t *testing.T) {
	c := newTestCache()
	ctx := context.Background()
	c.Set(ctx, "a", storedResult{}, time.Minute)
	c.Set(ctx, "b", storedResult{}, time.Minute)
	c.Set(ctx, "c", storedResult{}, time.Minute)

	require.NoError(t, c.Delete(ctx))
	require.NoError(t, c.Delete(ctx, "a"))
	_, ok := c.Get(ctx, "a")
	require.False(t, ok)

	require.NoError(t, c.Flush(ctx))
	require.Equal(t, 0, c.Len())
}

func TestNewInMemoryCacheManager_DefaultsDurations(t *testing.T) {
	require.NotPanics(t, func() {
		c := NewInMemoryCacheManager[string, int]("zero", 0, 0)
		c.Set(context.Background(), "k", 1, 0)
		v, ok := c.Get(context.Background(), "k")
		require.True(t, ok)
		require.Equal(t, 1, v)
	})
}
