package localization_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/whiteakyloff/metis-back-v2/internal/infrastructure/localization"
	"github.com/whiteakyloff/metis-back-v2/tests/testutil"
)

func TestRedisCache_RoundTrip(t *testing.T) {
	// Arrange
	client, prefix := testutil.SetupTestRedisWithPrefix(t)
	cache := localization.NewRedisCache(localization.RedisCacheConfig{
		Client: client,
		Key:    prefix + "texts",
		TTL:    time.Minute,
	})
	ctx := context.Background()
	texts := map[string]string{
		"USER_NOT_FOUND": "User not found",
		"INVALID_INPUT":  "Invalid input",
	}

	// Act
	require.NoError(t, cache.Set(ctx, texts))
	loaded, err := cache.Get(ctx)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, texts, loaded)
}

func TestRedisCache_Get_MissReturnsEmptyMap(t *testing.T) {
	client, prefix := testutil.SetupTestRedisWithPrefix(t)
	cache := localization.NewRedisCache(localization.RedisCacheConfig{
		Client: client,
		Key:    prefix + "missing",
	})

	loaded, err := cache.Get(context.Background())

	require.NoError(t, err)
	assert.Empty(t, loaded)
}

func TestRedisCache_SetAppliesTTL(t *testing.T) {
	client, prefix := testutil.SetupTestRedisWithPrefix(t)
	key := prefix + "ttl"
	cache := localization.NewRedisCache(localization.RedisCacheConfig{
		Client: client,
		Key:    key,
		TTL:    time.Minute,
	})
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, map[string]string{"GREETING": "Hello"}))

	ttl, err := client.TTL(ctx, key).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))
	assert.LessOrEqual(t, ttl, time.Minute)
}

func TestRedisCache_Get_CorruptPayload(t *testing.T) {
	client, prefix := testutil.SetupTestRedisWithPrefix(t)
	key := prefix + "corrupt"
	cache := localization.NewRedisCache(localization.RedisCacheConfig{
		Client: client,
		Key:    key,
	})
	ctx := context.Background()

	require.NoError(t, client.Set(ctx, key, "not-json", 0).Err())

	_, err := cache.Get(ctx)
	assert.Error(t, err)
}
