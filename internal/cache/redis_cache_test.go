package cache_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thebagdis/storefront/internal/cache"
	"github.com/thebagdis/storefront/internal/config"
)

type cachedProduct struct {
	Name  string `json:"name"`
	Stock int    `json:"stock"`
}

func setup(t *testing.T) (cache.Cache, redismock.ClientMock, *config.CacheConfig) {
	t.Helper()

	client, mock := redismock.NewClientMock()
	cfg := &config.CacheConfig{
		DefaultTTL: 5 * time.Minute,
	}

	return cache.NewRedisCache(client, cfg), mock, cfg
}

func TestGet(t *testing.T) {
	ctx := context.Background()
	key := "product:68b1c0ffee0000000000abcd"
	stored := cachedProduct{Name: "A2 Ghee", Stock: 10}
	jsonData, err := json.Marshal(stored)
	require.NoError(t, err)

	t.Run("Success - Key Found", func(t *testing.T) {
		// Arrange
		c, mock, _ := setup(t)

		var result cachedProduct

		mock.ExpectGet(key).SetVal(string(jsonData))

		// Act
		found, err := c.Get(ctx, key, &result)

		// Assert
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, stored, result)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Success - Cache Miss", func(t *testing.T) {
		c, mock, _ := setup(t)

		var result cachedProduct

		mock.ExpectGet(key).SetErr(redis.Nil)

		found, err := c.Get(ctx, key, &result)

		require.NoError(t, err)
		assert.False(t, found)
		assert.Empty(t, result)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Redis Error", func(t *testing.T) {
		c, mock, _ := setup(t)

		var result cachedProduct

		expectedErr := errors.New("redis connection error")

		mock.ExpectGet(key).SetErr(expectedErr)

		found, err := c.Get(ctx, key, &result)

		require.Error(t, err)
		assert.False(t, found)
		assert.ErrorIs(t, err, expectedErr)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Corrupt Payload", func(t *testing.T) {
		c, mock, _ := setup(t)

		var result cachedProduct

		mock.ExpectGet(key).SetVal(`{"name":"A2 Ghee","stock":"ten"}`)

		found, err := c.Get(ctx, key, &result)

		require.Error(t, err)
		assert.False(t, found)
		assert.Contains(t, err.Error(), "failed to unmarshal cache data for key "+key)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestSet(t *testing.T) {
	ctx := context.Background()
	key := "product:68b1c0ffee0000000000abcd"
	value := cachedProduct{Name: "A2 Ghee", Stock: 10}
	jsonData, err := json.Marshal(value)
	require.NoError(t, err)

	t.Run("Success - Explicit TTL", func(t *testing.T) {
		c, mock, _ := setup(t)

		mock.ExpectSet(key, jsonData, time.Minute).SetVal("OK")

		err := c.Set(ctx, key, value, time.Minute)

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Success - Zero TTL Falls Back To Default", func(t *testing.T) {
		c, mock, cfg := setup(t)

		mock.ExpectSet(key, jsonData, cfg.DefaultTTL).SetVal("OK")

		err := c.Set(ctx, key, value, 0)

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Unmarshallable Value", func(t *testing.T) {
		c, mock, _ := setup(t)

		err := c.Set(ctx, key, make(chan int), time.Minute)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to marshal value for key "+key)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Redis Error", func(t *testing.T) {
		c, mock, _ := setup(t)
		expectedErr := errors.New("redis SET failed")

		mock.ExpectSet(key, jsonData, time.Minute).SetErr(expectedErr)

		err := c.Set(ctx, key, value, time.Minute)

		require.Error(t, err)
		assert.ErrorIs(t, err, expectedErr)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	key := "product:68b1c0ffee0000000000abcd"

	t.Run("Success", func(t *testing.T) {
		c, mock, _ := setup(t)

		mock.ExpectDel(key).SetVal(1)

		err := c.Delete(ctx, key)

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Redis Error", func(t *testing.T) {
		c, mock, _ := setup(t)
		expectedErr := errors.New("redis DEL failed")

		mock.ExpectDel(key).SetErr(expectedErr)

		err := c.Delete(ctx, key)

		require.Error(t, err)
		assert.ErrorIs(t, err, expectedErr)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
