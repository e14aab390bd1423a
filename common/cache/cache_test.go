package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/craftline/catalog-admin/common/logger"
)

func newTestCache(t *testing.T) *MemoryCache {
	t.Helper()
	c := NewMemoryCache(logger.New("error", "text"))
	t.Cleanup(func() { c.Close() })
	return c
}

func TestMemoryCacheSetGet(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "profiles", []byte(`[{"id":"a"}]`), time.Minute))

	val, found, err := c.Get(ctx, "profiles")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, []byte(`[{"id":"a"}]`), val)
}

func TestMemoryCacheMiss(t *testing.T) {
	c := newTestCache(t)

	_, found, err := c.Get(context.Background(), "nothing")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestMemoryCacheExpiry(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "short", []byte("v"), time.Millisecond))
	time.Sleep(5 * time.Millisecond)

	_, found, err := c.Get(ctx, "short")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestMemoryCacheInvalidate(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "products", []byte("v"), time.Minute))
	require.NoError(t, c.Invalidate(ctx, "products"))

	_, found, err := c.Get(ctx, "products")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestMemoryCacheOverwrite(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", []byte("old"), time.Minute))
	require.NoError(t, c.Set(ctx, "k", []byte("new"), time.Minute))

	val, found, err := c.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, []byte("new"), val)
}
