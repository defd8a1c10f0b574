package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wordsim/internal/embeddings"
)

func setupRedisCache(t *testing.T) (*RedisCache, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	c, err := NewRedisCache(mr.Addr(), "")
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c, mr
}

func TestRedisCache_SetGet(t *testing.T) {
	c, mr := setupRedisCache(t)
	ctx := context.Background()

	vec := embeddings.Vector{0.418, 0.24968, -0.41242}
	require.NoError(t, c.Set(ctx, "glove:the", vec, time.Hour))
	assert.True(t, mr.Exists("vec:glove:the"))

	got, ok, err := c.Get(ctx, "glove:the")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, vec, got)
}

func TestRedisCache_Miss(t *testing.T) {
	c, _ := setupRedisCache(t)

	got, ok, err := c.Get(context.Background(), "glove:zzz")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, got)
}

func TestRedisCache_TTLExpiry(t *testing.T) {
	c, mr := setupRedisCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "glove:cat", embeddings.Vector{1, 2}, time.Minute))
	mr.FastForward(2 * time.Minute)

	_, ok, err := c.Get(ctx, "glove:cat")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisCache_CorruptEntry(t *testing.T) {
	c, mr := setupRedisCache(t)
	require.NoError(t, mr.Set("vec:glove:bad", "abc"))

	_, _, err := c.Get(context.Background(), "glove:bad")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "glove:bad")
}

func TestNewRedisCache_Unreachable(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	addr := mr.Addr()
	mr.Close()

	_, err = NewRedisCache(addr, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "redis connection failed")
}
