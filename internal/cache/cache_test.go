package cache

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/facemap/backend/internal/config"
	"github.com/facemap/backend/internal/models"
)

// Both implementations satisfy the read/write-only interface.
var (
	_ Cache = (*RedisCache)(nil)
	_ Cache = NopCache{}
)

func TestKeyFor(t *testing.T) {
	points := []models.InjectionPoint{
		{ID: "a", Muscle: "procerus", X: 50, Y: 35, Dosage: 4},
		{ID: "b", Muscle: "frontalis", X: 50, Y: 15, Dosage: 2},
	}

	key, err := KeyFor(points)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(key, validationKeyPrefix))
	assert.Len(t, key, len(validationKeyPrefix)+64)

	again, err := KeyFor(points)
	require.NoError(t, err)
	assert.Equal(t, key, again)

	reordered, err := KeyFor([]models.InjectionPoint{points[1], points[0]})
	require.NoError(t, err)
	assert.NotEqual(t, key, reordered)
}

func TestNew_DisabledReturnsNopCache(t *testing.T) {
	tests := []struct {
		name string
		cfg  *config.Config
	}{
		{"no redis url", &config.Config{CacheTTL: time.Minute}},
		{"zero ttl", &config.Config{RedisURL: "redis://localhost:6379", CacheTTL: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := New(tt.cfg, zap.NewNop())
			require.NoError(t, err)
			assert.IsType(t, NopCache{}, c)
		})
	}
}

func TestNewRedisCache_InvalidURL(t *testing.T) {
	_, err := NewRedisCache(&config.Config{RedisURL: "not-a-url", CacheTTL: time.Minute}, zap.NewNop())
	assert.Error(t, err)
}

func TestNopCache(t *testing.T) {
	ctx := context.Background()
	var c Cache = NopCache{}

	require.NoError(t, c.Set(ctx, "k", &models.ValidationResult{IsValid: true}))
	result, err := c.Get(ctx, "k")
	assert.NoError(t, err)
	assert.Nil(t, result)
	assert.NoError(t, c.Close())
}

func TestRedisCache_UnreachableServer(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		MaxRetries:  -1,
		DialTimeout: 100 * time.Millisecond,
	})
	c := NewRedisCacheWithClient(client, 0, zap.NewNop())
	defer c.Close()

	assert.Equal(t, defaultTTL, c.ttl)

	ctx := context.Background()
	result, err := c.Get(ctx, "validation:abc")
	assert.NoError(t, err, "errors are treated as misses")
	assert.Nil(t, result)

	assert.Error(t, c.Set(ctx, "validation:abc", &models.ValidationResult{IsValid: true}))
}
