package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clinicstock/internal/pkg/cache"
)

func newTestClient(t *testing.T) (*cache.RedisClient, *miniredis.Miniredis) {
	t.Helper()
	srv := miniredis.RunT(t)
	client, err := cache.NewRedisClient(srv.Addr(), time.Second, cache.BreakerSettings("cache-test", nil))
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })
	return client, srv
}

func TestRedisClient_SetGetDelete(t *testing.T) {
	client, _ := newTestClient(t)
	ctx := context.Background()

	require.NoError(t, client.Set(ctx, "item:1", `{"id":1}`, time.Minute))

	val, err := client.Get(ctx, "item:1")
	require.NoError(t, err)
	assert.Equal(t, `{"id":1}`, val)

	require.NoError(t, client.Delete(ctx, "item:1", "item:2"))
	_, err = client.Get(ctx, "item:1")
	assert.ErrorIs(t, err, cache.ErrCacheMiss)
}

func TestRedisClient_Counters(t *testing.T) {
	client, _ := newTestClient(t)
	ctx := context.Background()

	_, err := client.GetInt(ctx, "rate-limit:10.0.0.1")
	assert.ErrorIs(t, err, cache.ErrCacheMiss)

	require.NoError(t, client.Set(ctx, "rate-limit:10.0.0.1", 1, time.Minute))
	n, err := client.Incr(ctx, "rate-limit:10.0.0.1")
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	count, err := client.GetInt(ctx, "rate-limit:10.0.0.1")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

// TestRedisClient_MissesDoNotTripBreaker garante que chaves ausentes não contam como falha.
func TestRedisClient_MissesDoNotTripBreaker(t *testing.T) {
	client, _ := newTestClient(t)
	ctx := context.Background()

	for i := 0; i < 10; i++ {
		_, err := client.Get(ctx, "ausente")
		assert.ErrorIs(t, err, cache.ErrCacheMiss)
	}
	assert.Equal(t, gobreaker.StateClosed, client.State())
}

func TestRedisClient_BreakerOpensWhenRedisIsDown(t *testing.T) {
	srv, err := miniredis.Run()
	require.NoError(t, err)
	addr := srv.Addr()
	srv.Close()

	client, pingErr := cache.NewRedisClient(addr, 200*time.Millisecond, cache.BreakerSettings("cache-down", nil))
	assert.Error(t, pingErr)
	t.Cleanup(func() { client.Close() })
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := client.Get(ctx, "item:1")
		assert.Error(t, err)
	}

	_, err = client.Get(ctx, "item:1")
	assert.ErrorIs(t, err, cache.ErrCacheUnavailable)
	assert.Equal(t, gobreaker.StateOpen, client.State())
}

func TestJSONHelpers(t *testing.T) {
	client, srv := newTestClient(t)
	ctx := context.Background()

	type vendor struct {
		ID   int64  `json:"id"`
		Name string `json:"name"`
	}

	var got vendor
	assert.False(t, cache.GetJSON(ctx, client, "vendor:1", &got))

	require.NoError(t, cache.SetJSON(ctx, client, "vendor:1", vendor{ID: 1, Name: "Distribuidora"}, time.Minute))
	assert.True(t, cache.GetJSON(ctx, client, "vendor:1", &got))
	assert.Equal(t, "Distribuidora", got.Name)

	require.NoError(t, srv.Set("vendor:2", "{corrompido"))
	assert.False(t, cache.GetJSON(ctx, client, "vendor:2", &got))

	assert.False(t, cache.GetJSON(ctx, nil, "vendor:1", &got))
}
