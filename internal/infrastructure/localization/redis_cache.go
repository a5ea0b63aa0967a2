// Package localization provides the text catalog source and cache backing
// the localization service.
package localization

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	defaultCacheKey = "localization:texts"
	defaultCacheTTL = 15 * time.Minute
)

// RedisCache stores the localization text map in Redis as a JSON blob.
type RedisCache struct {
	client *redis.Client
	key    string
	ttl    time.Duration
}

// RedisCacheConfig contains configuration for RedisCache.
type RedisCacheConfig struct {
	Client *redis.Client
	Key    string
	TTL    time.Duration
}

// NewRedisCache creates a new Redis-backed localization cache.
func NewRedisCache(cfg RedisCacheConfig) *RedisCache {
	key := cfg.Key
	if key == "" {
		key = defaultCacheKey
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}

	return &RedisCache{
		client: cfg.Client,
		key:    key,
		ttl:    ttl,
	}
}

// Get returns the cached text map. A missing key returns an empty map and no
// error, the service treats that as a cache miss.
func (c *RedisCache) Get(ctx context.Context) (map[string]string, error) {
	raw, err := c.client.Get(ctx, c.key).Result()
	if err != nil {
		if err == redis.Nil {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("failed to read localization cache: %w", err)
	}

	var texts map[string]string
	if err := json.Unmarshal([]byte(raw), &texts); err != nil {
		return nil, fmt.Errorf("failed to decode localization cache: %w", err)
	}

	return texts, nil
}

// Set stores the text map with the configured TTL.
func (c *RedisCache) Set(ctx context.Context, texts map[string]string) error {
	raw, err := json.Marshal(texts)
	if err != nil {
		return fmt.Errorf("failed to encode localization cache: %w", err)
	}

	if err := c.client.Set(ctx, c.key, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write localization cache: %w", err)
	}

	return nil
}
