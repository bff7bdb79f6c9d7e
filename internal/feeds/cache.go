// Package feeds provides the shared plumbing for the live data feeds: an
// optional Redis-backed response cache with a no-op stand-in when caching is
// not configured.
package feeds

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Cache stores serialized feed responses. Implementations must be safe to
// call with a canceled context and must never surface errors to callers: a
// failed Get is a miss, a failed Set is dropped.
type Cache interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key string, value string)
}

// NoopCache satisfies Cache without storing anything. Used when no Redis
// address is configured.
type NoopCache struct{}

func (NoopCache) Get(ctx context.Context, key string) (string, bool) { return "", false }

func (NoopCache) Set(ctx context.Context, key string, value string) {}

// RedisCache caches feed responses in Redis with a fixed TTL.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewRedisCache creates a Redis-backed feed cache.
func NewRedisCache(logger *zap.Logger, addr, password string, db int, ttl time.Duration) *RedisCache {
	if logger == nil {
		logger = zap.NewNop()
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	return &RedisCache{client: rdb, ttl: ttl, logger: logger}
}

// Ping tests the Redis connection.
func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close closes the Redis connection.
func (c *RedisCache) Close() error {
	return c.client.Close()
}

// Get retrieves a cached value; any Redis error is reported as a miss.
func (c *RedisCache) Get(ctx context.Context, key string) (string, bool) {
	val, err := c.client.Get(ctx, key).Result()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("feed cache read failed",
				zap.String("op", "feeds.RedisCache.Get"),
				zap.String("key", key),
				zap.Error(err),
			)
		}
		return "", false
	}
	return val, true
}

// Set stores a value with the cache TTL; failures are logged and dropped.
func (c *RedisCache) Set(ctx context.Context, key string, value string) {
	if err := c.client.Set(ctx, key, value, c.ttl).Err(); err != nil {
		c.logger.Warn("feed cache write failed",
			zap.String("op", "feeds.RedisCache.Set"),
			zap.String("key", key),
			zap.Error(err),
		)
	}
}
