package cache

//go:generate go run go.uber.org/mock/mockgen -source=./cache.go -destination=./mocks/cache_mock.go -package=mocks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"homestay/infras/metrics"
	"homestay/infras/otel"
)

// Keys are "<namespace>:<kind>:<parts>", for example "booking:get:<id>". The namespace
// labels the hit, miss, set and del counters.
const (
	otelScopeName               = "cache"
	otelCacheKeyAttribute       = "cache.key"
	otelCacheNamespaceAttribute = "cache.namespace"
	keySeparator                = ":"
	defaultNamespace            = "default"

	EventHit  = "hit"
	EventMiss = "miss"
	EventSet  = "set"
	EventDel  = "del"

	Nil = redis.Nil
)

type RedisCache interface {
	Save(ctx context.Context, key string, value any, duration int) (err error)
	Get(ctx context.Context, key string, value any) (err error)
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context, prefix string) error
}

type redisCache struct {
	client  *redis.Client
	otel    otel.Otel
	metrics *metrics.Metrics
}

func NewRedisCache(client *redis.Client, ot otel.Otel, m *metrics.Metrics) RedisCache {
	return &redisCache{
		client:  client,
		otel:    ot,
		metrics: m,
	}
}

// Namespace returns the leading segment of key, ignoring a trailing glob.
func Namespace(key string) string {
	ns, _, _ := strings.Cut(strings.TrimSuffix(key, "*"), keySeparator)
	if ns == "" {
		return defaultNamespace
	}

	return ns
}

// SaveAsync stores value without holding up the caller. value is copied into the goroutine
// when SaveAsync is called, so the caller may go on changing or returning its own variable.
func SaveAsync(ctx context.Context, c RedisCache, key string, value any, duration int) {
	go func(ctx context.Context, value any) {
		if err := c.Save(ctx, key, value, duration); err != nil {
			log.Warn().Err(err).Str("cacheKey", key).Msg("failed to save cache")
		}
	}(context.WithoutCancel(ctx), value)
}

func (cache *redisCache) scope(ctx context.Context, op, key string) (context.Context, otel.Scope) {
	ctx, scope := cache.otel.NewScope(ctx, otelScopeName, otelScopeName+"."+op)
	scope.SetAttributes(map[string]any{
		otelCacheKeyAttribute:       key,
		otelCacheNamespaceAttribute: Namespace(key),
	})

	return ctx, scope
}

func (cache *redisCache) observe(key, event string) {
	if cache.metrics != nil {
		cache.metrics.ObserveCache(Namespace(key), event)
	}
}

// Clear implements RedisCache. prefix is a redis SCAN pattern.
func (cache *redisCache) Clear(ctx context.Context, prefix string) (err error) {
	ctx, scope := cache.scope(ctx, "Clear", prefix)
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	iter := cache.client.Scan(ctx, 0, prefix, 0).Iterator()

	for iter.Next(ctx) {
		key := iter.Val()
		if err = cache.client.Del(ctx, key).Err(); err != nil {
			log.Error().Err(err).Str("key", key).Str("RedisCache", "Clear").Msg("failed to del cache")

			return fmt.Errorf("failed to delete cache value: %w", err)
		}

		cache.observe(key, EventDel)
	}

	if err = iter.Err(); err != nil {
		return fmt.Errorf("failed to scan cache keys: %w", err)
	}

	return nil
}

// Delete implements RedisCache.
func (cache *redisCache) Delete(ctx context.Context, key string) (err error) {
	ctx, scope := cache.scope(ctx, "Delete", key)
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = cache.client.Del(ctx, key).Err(); err != nil {
		log.Error().Str("key", key).Err(err).Str("RedisCache", "Delete").Msg("failed to del cache")

		return fmt.Errorf("failed to delete cache value: %w", err)
	}

	cache.observe(key, EventDel)

	return nil
}

// Get implements RedisCache. A missing key returns an error wrapping Nil and is counted as
// a miss, not traced as a failure.
func (cache *redisCache) Get(ctx context.Context, key string, value any) (err error) {
	ctx, scope := cache.scope(ctx, "Get", key)
	defer scope.End()
	defer func() {
		if !errors.Is(err, Nil) {
			scope.TraceIfError(err)
		}
	}()

	cacheValue, err := cache.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, Nil) {
			cache.observe(key, EventMiss)
		}

		return fmt.Errorf("failed to get cache value: %w", err)
	}

	if v, ok := value.(*string); ok {
		*v = cacheValue
		cache.observe(key, EventHit)

		return nil
	}

	if err = json.Unmarshal([]byte(cacheValue), value); err != nil {
		log.Error().Err(err).Str("key", key).Str("RedisCache", "Get").Msg("failed to unmarshal cache")

		return fmt.Errorf("failed to unmarshal cache value: %w", err)
	}

	cache.observe(key, EventHit)

	return nil
}

// Save implements RedisCache. duration is in seconds.
func (cache *redisCache) Save(ctx context.Context, key string, value any, duration int) (err error) {
	ctx, scope := cache.scope(ctx, "Save", key)
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	var raw []byte

	switch v := value.(type) {
	case string:
		raw = []byte(v)
	default:
		if raw, err = json.Marshal(v); err != nil {
			log.Error().Err(err).Str("key", key).Str("RedisCache", "Save").Msg("failed to marshal cache")

			return fmt.Errorf("failed to marshal cache value: %w", err)
		}
	}

	if err = cache.client.Set(ctx, key, raw, time.Second*time.Duration(duration)).Err(); err != nil {
		log.Error().Err(err).Str("key", key).Str("RedisCache", "Save").Msg("failed to set cache")

		return fmt.Errorf("failed to set cache value: %w", err)
	}

	cache.observe(key, EventSet)
	log.Debug().Str("RedisCache", "Save").Str("key", key).Msg("cache set")

	return nil
}
