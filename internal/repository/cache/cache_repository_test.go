package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/visor-crm/internal/repository/cache"
)

func getTestRedis(t *testing.T) *cache.Redis {
	client := redis.NewClient(&redis.Options{
		Addr: "localhost:6379",
		DB:   1,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		t.Skipf("Redis not available for integration tests: %v", err)
	}

	t.Cleanup(func() { client.Close() })
	return cache.NewRedisFromClient(client, nil)
}

func TestCacheRepository_GetSetDelete(t *testing.T) {
	r := getTestRedis(t)
	repo := cache.NewCacheRepository(r)
	ctx := context.Background()
	key := "test:cache:raw"
	defer r.Client().Del(ctx, key)

	val, err := repo.Get(ctx, key)
	require.NoError(t, err)
	assert.Nil(t, val, "miss must not be an error")

	require.NoError(t, repo.Set(ctx, key, []byte("hello"), time.Minute))

	val, err = repo.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, []byte("hello"), val)

	require.NoError(t, repo.Delete(ctx, key))

	val, err = repo.Get(ctx, key)
	require.NoError(t, err)
	assert.Nil(t, val)
}

func TestCacheRepository_JSON(t *testing.T) {
	r := getTestRedis(t)
	repo := cache.NewCacheRepository(r)
	ctx := context.Background()
	key := "test:cache:json"
	defer r.Client().Del(ctx, key)

	type payload struct {
		Total int     `json:"total"`
		Mean  float64 `json:"mean"`
	}

	var got payload
	found, err := repo.GetJSON(ctx, key, &got)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, repo.SetJSON(ctx, key, payload{Total: 3, Mean: 12.5}, time.Minute))

	found, err = repo.GetJSON(ctx, key, &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, payload{Total: 3, Mean: 12.5}, got)

	ttl, err := r.Client().TTL(ctx, key).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))
}

func TestCacheRepository_GetJSON_CorruptValue(t *testing.T) {
	r := getTestRedis(t)
	repo := cache.NewCacheRepository(r)
	ctx := context.Background()
	key := "test:cache:corrupt"
	defer r.Client().Del(ctx, key)

	require.NoError(t, repo.Set(ctx, key, []byte("{not json"), time.Minute))

	var dest map[string]int
	found, err := repo.GetJSON(ctx, key, &dest)
	assert.Error(t, err)
	assert.False(t, found)
}

func TestCacheRepository_DeleteNoKeys(t *testing.T) {
	r := getTestRedis(t)
	repo := cache.NewCacheRepository(r)

	assert.NoError(t, repo.Delete(context.Background()))
}
