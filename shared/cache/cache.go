package cache

//go:generate go run go.uber.org/mock/mockgen -source=./cache.go -destination=./mocks/cache_mock.go -package=mocks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"parking/infras/otel"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	otelScopeName         = "cache"
	otelCacheKeyAttribute = "cache.key"
	clearBatchSize        = 100
	Nil                   = redis.Nil
)

// RedisCache stores JSON encoded values. Get returns Nil on a miss.
type RedisCache interface {
	Save(ctx context.Context, key string, value any, duration int) (err error)
	Get(ctx context.Context, key string, value any) (err error)
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context, pattern string) error
	Increment(ctx context.Context, key string, windowSeconds int) (int64, error)
}

type redisCache struct {
	client *redis.Client
	otel   otel.Otel
}

func NewRedisCache(client *redis.Client, ot otel.Otel) RedisCache {
	return &redisCache{
		client: client,
		otel:   ot,
	}
}

// Clear removes every key matching pattern, unlinking them in batches.
func (c *redisCache) Clear(ctx context.Context, pattern string) (err error) {
	ctx, scope := c.otel.NewScope(ctx, otelScopeName, otelScopeName+".Clear")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttribute(otelCacheKeyAttribute, pattern)

	keys := make([]string, 0, clearBatchSize)
	iter := c.client.Scan(ctx, 0, pattern, clearBatchSize).Iterator()

	for iter.Next(ctx) {
		keys = append(keys, iter.Val())

		if len(keys) == clearBatchSize {
			if err = c.unlink(ctx, keys); err != nil {
				return err
			}

			keys = keys[:0]
		}
	}

	if err = iter.Err(); err != nil {
		log.Error().Err(err).Str("pattern", pattern).Msg("failed to scan cache keys")

		return fmt.Errorf("failed to scan cache keys: %w", err)
	}

	return c.unlink(ctx, keys)
}

func (c *redisCache) unlink(ctx context.Context, keys []string) error {
	if len(keys) == 0 {
		return nil
	}

	if err := c.client.Unlink(ctx, keys...).Err(); err != nil {
		log.Error().Err(err).Strs("keys", keys).Msg("failed to unlink cache keys")

		return fmt.Errorf("failed to delete cache values: %w", err)
	}

	return nil
}

func (c *redisCache) Delete(ctx context.Context, key string) (err error) {
	ctx, scope := c.otel.NewScope(ctx, otelScopeName, otelScopeName+".Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttribute(otelCacheKeyAttribute, key)

	if err = c.client.Del(ctx, key).Err(); err != nil {
		log.Error().Err(err).Str("key", key).Msg("failed to delete cache")

		return fmt.Errorf("failed to delete cache value: %w", err)
	}

	return nil
}

func (c *redisCache) Get(ctx context.Context, key string, value any) (err error) {
	ctx, scope := c.otel.NewScope(ctx, otelScopeName, otelScopeName+".Get")
	defer scope.End()

	scope.SetAttribute(otelCacheKeyAttribute, key)

	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return Nil
		}

		scope.TraceError(err)

		return fmt.Errorf("failed to get cache value: %w", err)
	}

	if err = json.Unmarshal(raw, value); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("key", key).Msg("failed to unmarshal cache")

		return fmt.Errorf("failed to unmarshal cache value: %w", err)
	}

	return nil
}

// Save stores value for duration seconds.
func (c *redisCache) Save(ctx context.Context, key string, value any, duration int) (err error) {
	ctx, scope := c.otel.NewScope(ctx, otelScopeName, otelScopeName+".Save")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttribute(otelCacheKeyAttribute, key)

	raw, err := json.Marshal(value)
	if err != nil {
		log.Error().Err(err).Str("key", key).Msg("failed to marshal cache")

		return fmt.Errorf("failed to marshal cache value: %w", err)
	}

	if err = c.client.Set(ctx, key, raw, time.Duration(duration)*time.Second).Err(); err != nil {
		log.Error().Err(err).Str("key", key).Msg("failed to set cache")

		return fmt.Errorf("failed to set cache value: %w", err)
	}

	log.Debug().Str("key", key).Msg("cache saved")

	return nil
}

// Increment bumps a fixed-window counter. The window starts with the first increment.
func (c *redisCache) Increment(ctx context.Context, key string, windowSeconds int) (count int64, err error) {
	ctx, scope := c.otel.NewScope(ctx, otelScopeName, otelScopeName+".Increment")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttribute(otelCacheKeyAttribute, key)

	var incr *redis.IntCmd

	_, err = c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, key)
		pipe.ExpireNX(ctx, key, time.Duration(windowSeconds)*time.Second)

		return nil
	})
	if err != nil {
		log.Error().Err(err).Str("key", key).Msg("failed to increment counter")

		return 0, fmt.Errorf("failed to increment counter: %w", err)
	}

	return incr.Val(), nil
}
