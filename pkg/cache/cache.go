package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	// KeyScoreboard is the Redis key holding the cached scoreboard.
	KeyScoreboard = "cache:scoreboard"
)

// Cache is a small Redis-backed JSON cache for derived read models. The
// scoreboard is recomputed from Postgres on every miss; any write that can
// change a score invalidates it.
type Cache struct {
	client *redis.Client
	logger *zap.Logger
	ttl    time.Duration
}

// New creates a Redis-backed cache with the given default TTL.
func New(client *redis.Client, logger *zap.Logger, ttl time.Duration) *Cache {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Cache{client: client, logger: logger, ttl: ttl}
}

// Get loads the cached value under key into dest. Returns false on a miss.
// Redis failures are logged and reported as misses so reads fall through to
// the database.
func (c *Cache) Get(ctx context.Context, key string, dest interface{}) bool {
	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("cache get failed", zap.String("key", key), zap.Error(err))
		}
		return false
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		c.logger.Warn("cache entry invalid", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

// Set stores value under key with the configured TTL.
func (c *Cache) Set(ctx context.Context, key string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal cache value: %w", err)
	}
	if err := c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

// Invalidate removes the given keys. Failures are logged, not propagated:
// a stale entry expires by TTL anyway.
func (c *Cache) Invalidate(ctx context.Context, keys ...string) {
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		c.logger.Warn("cache invalidate failed", zap.Strings("keys", keys), zap.Error(err))
	}
}
