package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	domain "farm-gateway/internal/domain/weather"
)

// WeatherCache defines the interface for the optional weather caching layer.
// Caching is an opt-in extension; a nil cache means every request goes to
// the provider.
type WeatherCache interface {
	// Get retrieves a cached report for a coordinate pair.
	// Returns nil if there is no fresh entry.
	Get(ctx context.Context, lat, lon float64) (*domain.Report, error)

	// Set stores a report with the configured TTL.
	Set(ctx context.Context, lat, lon float64, report *domain.Report) error
}

// RedisWeatherCache implements WeatherCache using Redis as the backing store.
type RedisWeatherCache struct {
	client *redis.Client
	ttl    time.Duration
	log    *zap.Logger
}

// NewRedisWeatherCache creates a new Redis-backed weather cache.
func NewRedisWeatherCache(client *redis.Client, ttl time.Duration, log *zap.Logger) WeatherCache {
	return &RedisWeatherCache{
		client: client,
		ttl:    ttl,
		log:    log,
	}
}

// cacheKey generates a Redis key for a coordinate pair. Coordinates are
// rounded to two decimals so nearby dashboard refreshes share an entry.
func (c *RedisWeatherCache) cacheKey(lat, lon float64) string {
	return fmt.Sprintf("weather:%.2f:%.2f", lat, lon)
}

// Get retrieves a weather report from Redis cache.
func (c *RedisWeatherCache) Get(ctx context.Context, lat, lon float64) (*domain.Report, error) {
	key := c.cacheKey(lat, lon)

	data, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		// Cache miss - not an error
		c.log.Debug("weather cache miss", zap.String("key", key))
		return nil, nil
	}
	if err != nil {
		c.log.Error("failed to get from weather cache", zap.String("key", key), zap.Error(err))
		return nil, err
	}

	var report domain.Report
	if err := json.Unmarshal(data, &report); err != nil {
		c.log.Error("failed to unmarshal cached report", zap.String("key", key), zap.Error(err))
		return nil, err
	}

	c.log.Debug("weather cache hit", zap.String("key", key))
	return &report, nil
}

// Set stores a weather report in Redis cache with TTL.
func (c *RedisWeatherCache) Set(ctx context.Context, lat, lon float64, report *domain.Report) error {
	if report == nil {
		return fmt.Errorf("cannot cache nil report")
	}

	key := c.cacheKey(lat, lon)

	data, err := json.Marshal(report)
	if err != nil {
		c.log.Error("failed to marshal report for cache", zap.String("key", key), zap.Error(err))
		return err
	}

	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.log.Error("failed to set weather cache", zap.String("key", key), zap.Error(err))
		return err
	}

	c.log.Debug("cached weather report", zap.String("key", key), zap.Duration("ttl", c.ttl))
	return nil
}
