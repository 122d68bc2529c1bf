package gqlcheck_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/gqlcheck"
)

func TestCacheKey(t *testing.T) {
	t.Parallel()

	a := gqlcheck.NewCacheKey("query { a }", []string{"FragmentCycles"})
	b := gqlcheck.NewCacheKey("query { a }", []string{"FragmentCycles"})
	assert.Equal(t, a.String(), b.String())

	// Content and rule set both participate in the key.
	c := gqlcheck.NewCacheKey("query { b }", []string{"FragmentCycles"})
	assert.NotEqual(t, a.String(), c.String())
	d := gqlcheck.NewCacheKey("query { a }", []string{"FragmentCycles", "NoUnusedFragments"})
	assert.NotEqual(t, a.String(), d.String())
}

func TestMemoryCache(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	cache := gqlcheck.NewMemoryCache()

	missing, err := cache.Get(ctx, "absent")
	require.NoError(t, err)
	assert.Nil(t, missing)

	require.NoError(t, cache.Set(ctx, "k1", []byte("v1"), 0))
	got, err := cache.Get(ctx, "k1")
	require.NoError(t, err)
	assert.Equal(t, []byte("v1"), got)

	require.NoError(t, cache.Delete(ctx, "k1"))
	got, err = cache.Get(ctx, "k1")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestMemoryCacheExpiry(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	cache := gqlcheck.NewMemoryCache()

	require.NoError(t, cache.Set(ctx, "short", []byte("v"), time.Millisecond))
	time.Sleep(5 * time.Millisecond)
	got, err := cache.Get(ctx, "short")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestMemoryCacheDeletePrefix(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	cache := gqlcheck.NewMemoryCache()

	require.NoError(t, cache.Set(ctx, "doc1:rules", []byte("a"), 0))
	require.NoError(t, cache.Set(ctx, "doc1:other", []byte("b"), 0))
	require.NoError(t, cache.Set(ctx, "doc2:rules", []byte("c"), 0))

	require.NoError(t, cache.DeletePrefix(ctx, "doc1:"))

	got, err := cache.Get(ctx, "doc1:rules")
	require.NoError(t, err)
	assert.Nil(t, got)
	got, err = cache.Get(ctx, "doc2:rules")
	require.NoError(t, err)
	assert.Equal(t, []byte("c"), got)
}

func TestMemoryCacheClear(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	cache := gqlcheck.NewMemoryCache()

	require.NoError(t, cache.Set(ctx, "k", []byte("v"), 0))
	require.NoError(t, cache.Clear(ctx))
	got, err := cache.Get(ctx, "k")
	require.NoError(t, err)
	assert.Nil(t, got)
}
