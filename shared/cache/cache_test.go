package cache_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"homestay/infras/metrics"
	"homestay/infras/otel/mocks"
	"homestay/shared/cache"
)

type cachedProperty struct {
	ID            string `json:"id"`
	PricePerNight int64  `json:"price_per_night"`
}

func newCache(t *testing.T) (cache.RedisCache, *miniredis.Miniredis) {
	t.Helper()

	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})

	t.Cleanup(func() { _ = client.Close() })

	return cache.NewRedisCache(client, mocks.NewOtel(), metrics.New()), server
}

func TestRedisCache_SaveAndGet(t *testing.T) {
	redisCache, server := newCache(t)
	ctx := context.Background()

	err := redisCache.Save(ctx, "property:get:p-1", cachedProperty{ID: "p-1", PricePerNight: 500000}, 60)
	require.NoError(t, err)

	var got cachedProperty
	require.NoError(t, redisCache.Get(ctx, "property:get:p-1", &got))
	assert.Equal(t, cachedProperty{ID: "p-1", PricePerNight: 500000}, got)

	server.FastForward(61 * time.Second)

	err = redisCache.Get(ctx, "property:get:p-1", &got)
	assert.True(t, errors.Is(err, cache.Nil))
}

func TestRedisCache_StringValue(t *testing.T) {
	redisCache, _ := newCache(t)
	ctx := context.Background()

	require.NoError(t, redisCache.Save(ctx, "plain", "value", 60))

	var got string
	require.NoError(t, redisCache.Get(ctx, "plain", &got))
	assert.Equal(t, "value", got)
}

func TestRedisCache_Miss(t *testing.T) {
	redisCache, _ := newCache(t)

	var got cachedProperty
	err := redisCache.Get(context.Background(), "missing", &got)

	assert.Error(t, err)
	assert.True(t, errors.Is(err, cache.Nil))
}

func TestRedisCache_DeleteAndClear(t *testing.T) {
	redisCache, server := newCache(t)
	ctx := context.Background()

	require.NoError(t, redisCache.Save(ctx, "booking:gets:page=1", "a", 60))
	require.NoError(t, redisCache.Save(ctx, "booking:gets:page=2", "b", 60))
	require.NoError(t, redisCache.Save(ctx, "booking:get:1", "c", 60))

	require.NoError(t, redisCache.Delete(ctx, "booking:get:1"))
	assert.False(t, server.Exists("booking:get:1"))

	require.NoError(t, redisCache.Clear(ctx, "booking:gets*"))
	assert.False(t, server.Exists("booking:gets:page=1"))
	assert.False(t, server.Exists("booking:gets:page=2"))
}

func TestNamespace(t *testing.T) {
	assert.Equal(t, "booking", cache.Namespace("booking:get:b-1"))
	assert.Equal(t, "property", cache.Namespace("property:gets*"))
	assert.Equal(t, "plain", cache.Namespace("plain"))
	assert.Equal(t, "default", cache.Namespace(":x"))
}

func TestRedisCache_CountsEventsByNamespace(t *testing.T) {
	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	m := metrics.New()
	redisCache := cache.NewRedisCache(client, mocks.NewOtel(), m)
	ctx := context.Background()

	var got cachedProperty
	require.Error(t, redisCache.Get(ctx, "property:get:p-1", &got))
	require.NoError(t, redisCache.Save(ctx, "property:get:p-1", cachedProperty{ID: "p-1"}, 60))
	require.NoError(t, redisCache.Get(ctx, "property:get:p-1", &got))
	require.NoError(t, redisCache.Get(ctx, "property:get:p-1", &got))
	require.NoError(t, redisCache.Delete(ctx, "booking:get:b-1"))

	expected := `
# HELP homestay_cache_events_total Cache hits/misses/sets/dels.
# TYPE homestay_cache_events_total counter
homestay_cache_events_total{cache="booking",event="del"} 1
homestay_cache_events_total{cache="property",event="hit"} 2
homestay_cache_events_total{cache="property",event="miss"} 1
homestay_cache_events_total{cache="property",event="set"} 1
`
	require.NoError(t, testutil.GatherAndCompare(m.Registry(), strings.NewReader(expected), "homestay_cache_events_total"))
}

func TestRedisCache_MissIsNotTraced(t *testing.T) {
	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	recorder := mocks.NewRecorder()
	redisCache := cache.NewRedisCache(client, recorder, nil)
	ctx := context.Background()

	var got cachedProperty
	assert.ErrorIs(t, redisCache.Get(ctx, "booking:get:b-1", &got), cache.Nil)

	scope := recorder.Last("cache.Get")
	require.NotNil(t, scope)
	assert.Empty(t, scope.Errors())
	assert.True(t, scope.Ended())
	assert.Equal(t, "booking", scope.Attribute("cache.namespace"))

	require.NoError(t, server.Set("booking:get:b-1", "{not json"))

	assert.Error(t, redisCache.Get(ctx, "booking:get:b-1", &got))
	assert.Len(t, recorder.Last("cache.Get").Errors(), 1)
}

func TestSaveAsync(t *testing.T) {
	redisCache, server := newCache(t)

	value := cachedProperty{ID: "p-1", PricePerNight: 1}
	cache.SaveAsync(context.Background(), redisCache, "property:get:p-1", value, 60)
	value = cachedProperty{}

	assert.Eventually(t, func() bool { return server.Exists("property:get:p-1") }, time.Second, 10*time.Millisecond)

	var got cachedProperty
	require.NoError(t, redisCache.Get(context.Background(), "property:get:p-1", &got))
	assert.Equal(t, cachedProperty{ID: "p-1", PricePerNight: 1}, got)
	assert.Empty(t, value.ID)
}
