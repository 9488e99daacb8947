// Package cache provides Redis caching of validation results.
//
// Validation is a pure function of the ordered point set, so results are
// keyed by a digest of that set and never need explicit invalidation.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/facemap/backend/internal/config"
	"github.com/facemap/backend/internal/models"
)

const (
	// Cache key prefix
	validationKeyPrefix = "validation:"

	// Default TTL for cached items
	defaultTTL = 5 * time.Minute
)

// Cache defines the interface for caching operations.
type Cache interface {
	// Get retrieves a validation result by key. A miss returns nil, nil.
	Get(ctx context.Context, key string) (*models.ValidationResult, error)

	// Set stores a validation result under key.
	Set(ctx context.Context, key string, result *models.ValidationResult) error

	// Close closes the cache connection.
	Close() error
}

// KeyFor returns the cache key for an ordered set of points.
func KeyFor(points []models.InjectionPoint) (string, error) {
	data, err := json.Marshal(points)
	if err != nil {
		return "", fmt.Errorf("failed to marshal points for cache key: %w", err)
	}
	sum := sha256.Sum256(data)
	return validationKeyPrefix + hex.EncodeToString(sum[:]), nil
}

// New returns a Redis cache when caching is enabled and a no-op cache otherwise.
func New(cfg *config.Config, logger *zap.Logger) (Cache, error) {
	if !cfg.CacheEnabled() {
		logger.Info("Validation cache disabled")
		return NopCache{}, nil
	}
	return NewRedisCache(cfg, logger)
}

// RedisCache implements Cache using Redis.
type RedisCache struct {
	client *redis.Client
	logger *zap.Logger
	ttl    time.Duration
}

// NewRedisCache creates a new Redis cache.
func NewRedisCache(cfg *config.Config, logger *zap.Logger) (Cache, error) {
	opt, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logger.Info("Connected to Redis cache")

	return NewRedisCacheWithClient(client, cfg.CacheTTL, logger), nil
}

// NewRedisCacheWithClient wraps an existing client.
func NewRedisCacheWithClient(client *redis.Client, ttl time.Duration, logger *zap.Logger) *RedisCache {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &RedisCache{
		client: client,
		logger: logger,
		ttl:    ttl,
	}
}

// Get retrieves a validation result from cache.
func (c *RedisCache) Get(ctx context.Context, key string) (*models.ValidationResult, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, nil // Cache miss
	}
	if err != nil {
		c.logger.Warn("Failed to get from cache", zap.String("key", key), zap.Error(err))
		return nil, nil // Treat errors as cache miss
	}

	var result models.ValidationResult
	if err := json.Unmarshal(data, &result); err != nil {
		c.logger.Warn("Failed to unmarshal cached validation result", zap.Error(err))
		return nil, nil
	}

	c.logger.Debug("Cache hit", zap.String("key", key))
	return &result, nil
}

// Set stores a validation result in cache.
func (c *RedisCache) Set(ctx context.Context, key string, result *models.ValidationResult) error {
	data, err := json.Marshal(result)
	if err != nil {
		c.logger.Warn("Failed to marshal validation result for cache", zap.Error(err))
		return err
	}

	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.logger.Warn("Failed to set cache", zap.String("key", key), zap.Error(err))
		return err
	}

	c.logger.Debug("Cached validation result", zap.String("key", key))
	return nil
}

// Close closes the Redis connection.
func (c *RedisCache) Close() error {
	c.logger.Info("Closing Redis connection")
	return c.client.Close()
}

// NopCache never stores anything; every Get is a miss.
type NopCache struct{}

// Get always reports a miss.
func (NopCache) Get(context.Context, string) (*models.ValidationResult, error) { return nil, nil }

// Set discards the result.
func (NopCache) Set(context.Context, string, *models.ValidationResult) error { return nil }

// Close is a no-op.
func (NopCache) Close() error { return nil }
