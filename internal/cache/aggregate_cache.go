package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/steelify/catalog-backend/config"
	"github.com/steelify/catalog-backend/pkg/logger"
)

const (
	KeyCountByProduct  = "counts:product"
	KeyCountByMaterial = "counts:material"

	countTTL  = 5 * time.Minute
	opTimeout = 2 * time.Second
)

// AggregateCache caches the grouped-count query results in Redis. A nil
// *AggregateCache is valid and disables caching entirely, so callers never
// need to branch on configuration.
type AggregateCache struct {
	client *redis.Client
}

// NewAggregateCache connects to Redis and verifies the connection.
func NewAggregateCache(cfg *config.RedisConfig) (*AggregateCache, error) {
	logger.Info("Initializing Redis connection", map[string]interface{}{
		"host": cfg.Host,
		"port": cfg.Port,
		"db":   cfg.DB,
	})

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		logger.Error("Failed to connect to Redis", err, map[string]interface{}{
			"host": cfg.Host,
			"port": cfg.Port,
		})
		return nil, err
	}

	logger.Info("Redis connection established successfully", nil)
	return &AggregateCache{client: client}, nil
}

// Close closes the Redis connection
func (c *AggregateCache) Close() error {
	if c == nil {
		return nil
	}
	logger.Info("Closing Redis connection", nil)
	return c.client.Close()
}

// GetCounts returns the cached counts for key, and whether the key was
// present. Cache errors are logged and treated as a miss.
func (c *AggregateCache) GetCounts(key string, dest interface{}) bool {
	if c == nil {
		return false
	}

	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	val, err := c.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return false
	}
	if err != nil {
		logger.Warn("Failed to read aggregate cache", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
		return false
	}

	if err := json.Unmarshal([]byte(val), dest); err != nil {
		logger.Warn("Failed to decode aggregate cache entry", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
		return false
	}

	logger.Debug("Aggregate cache hit", map[string]interface{}{
		"key": key,
	})
	return true
}

// SetCounts stores counts under key with a short TTL. Failures are logged and
// otherwise ignored; the cache is best effort.
func (c *AggregateCache) SetCounts(key string, counts interface{}) {
	if c == nil {
		return
	}

	data, err := json.Marshal(counts)
	if err != nil {
		logger.Warn("Failed to encode aggregate cache entry", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	if err := c.client.Set(ctx, key, data, countTTL).Err(); err != nil {
		logger.Warn("Failed to write aggregate cache", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
	}
}

// Invalidate drops both grouped-count keys. Called after every combination
// write.
func (c *AggregateCache) Invalidate() {
	if c == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	if err := c.client.Del(ctx, KeyCountByProduct, KeyCountByMaterial).Err(); err != nil {
		logger.Warn("Failed to invalidate aggregate cache", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}

	logger.Debug("Aggregate cache invalidated", nil)
}
