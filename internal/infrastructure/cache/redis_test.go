package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scentmatch/backend/internal/domain"
)

func setupRedis(t *testing.T) (*RedisCache, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	cache := NewRedisCacheFromClient(client, "scentmatch:")
	t.Cleanup(func() { cache.Close() })
	return cache, mr
}

func TestNewRedisCache_InvalidURL(t *testing.T) {
	_, err := NewRedisCache("not a url", "")
	assert.Error(t, err)
}

func TestNewRedisCache_FromURL(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	cache, err := NewRedisCache("redis://"+mr.Addr()+"/0", "")
	require.NoError(t, err)
	defer cache.Close()

	assert.NoError(t, cache.Ping(context.Background()))
}

func TestRedisCache_SetGetDelete(t *testing.T) {
	cache, mr := setupRedis(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "k", []byte(`{"grouped":true}`), time.Minute))
	assert.True(t, mr.Exists("scentmatch:k"), "key should be stored with prefix")

	got, err := cache.Get(ctx, "k")
	require.NoError(t, err)
	assert.JSONEq(t, `{"grouped":true}`, string(got))

	exists, err := cache.Exists(ctx, "k")
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, cache.Delete(ctx, "k"))
	_, err = cache.Get(ctx, "k")
	assert.ErrorIs(t, err, domain.ErrCacheMiss)

	exists, err = cache.Exists(ctx, "k")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestRedisCache_Expiry(t *testing.T) {
	cache, mr := setupRedis(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "ttl", []byte("v"), time.Minute))
	mr.FastForward(2 * time.Minute)

	_, err := cache.Get(ctx, "ttl")
	assert.ErrorIs(t, err, domain.ErrCacheMiss)
}

func TestRedisCache_Unavailable(t *testing.T) {
	cache, mr := setupRedis(t)
	ctx := context.Background()
	mr.Close()

	_, err := cache.Get(ctx, "k")
	assert.ErrorIs(t, err, domain.ErrCacheUnavailable)

	err = cache.Set(ctx, "k", []byte("v"), time.Minute)
	assert.ErrorIs(t, err, domain.ErrCacheUnavailable)

	assert.ErrorIs(t, cache.Ping(ctx), domain.ErrCacheUnavailable)
}
