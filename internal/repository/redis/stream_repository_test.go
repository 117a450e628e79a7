package redis_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/visor-crm/internal/domain"
	redisRepo "github.com/visor-crm/internal/repository/redis"
)

const testStream = "test:stream:chat:updates"

func getTestRedisClient(t *testing.T) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr: "localhost:6379",
		DB:   1,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		t.Skipf("Redis not available for integration tests: %v", err)
	}

	client.Del(ctx, testStream)
	t.Cleanup(func() {
		client.Del(context.Background(), testStream)
		client.Close()
	})

	return client
}

func TestStreamRepository_CreateConsumerGroup(t *testing.T) {
	client := getTestRedisClient(t)
	repo := redisRepo.NewStreamRepository(client, 100*time.Millisecond, 0, zap.NewNop())
	ctx := context.Background()

	require.NoError(t, repo.CreateConsumerGroup(ctx, testStream, "test-group"))

	groups, err := client.XInfoGroups(ctx, testStream).Result()
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Equal(t, "test-group", groups[0].Name)

	// повторное создание не ошибка
	assert.NoError(t, repo.CreateConsumerGroup(ctx, testStream, "test-group"))

	require.NoError(t, repo.DeleteConsumerGroup(ctx, testStream, "test-group"))
	groups, err = client.XInfoGroups(ctx, testStream).Result()
	require.NoError(t, err)
	assert.Empty(t, groups)
}

func TestStreamRepository_PublishToStream(t *testing.T) {
	client := getTestRedisClient(t)
	repo := redisRepo.NewStreamRepository(client, 100*time.Millisecond, 0, zap.NewNop())
	ctx := context.Background()

	event := domain.NewBotStatusEvent("51911111111", false, time.Now().UTC())
	require.NoError(t, repo.PublishToStream(ctx, testStream, event))

	messages, err := client.XRead(ctx, &redis.XReadArgs{
		Streams: []string{testStream, "0"},
		Count:   1,
	}).Result()
	require.NoError(t, err)
	require.Len(t, messages, 1)
	require.Len(t, messages[0].Messages, 1)

	data, ok := messages[0].Messages[0].Values["data"].(string)
	require.True(t, ok)

	var received domain.ChatUpdateEvent
	require.NoError(t, json.Unmarshal([]byte(data), &received))
	assert.Equal(t, event.EventID, received.EventID)
	assert.Equal(t, domain.ChatEventBotStatus, received.Kind)
	require.NotNil(t, received.IsActive)
	assert.False(t, *received.IsActive)
}

func TestStreamRepository_ConsumeBatchAndAck(t *testing.T) {
	client := getTestRedisClient(t)
	repo := redisRepo.NewStreamRepository(client, 100*time.Millisecond, 0, zap.NewNop())
	ctx := context.Background()
	group := "test-batch-group"

	require.NoError(t, repo.CreateConsumerGroup(ctx, testStream, group))

	for i := 0; i < 3; i++ {
		require.NoError(t, repo.PublishToStream(ctx, testStream, domain.NewBotStatusEvent("s", true, time.Now())))
	}

	batch, err := repo.ConsumeBatch(ctx, testStream, group, "consumer-1", 2)
	require.NoError(t, err)
	require.Len(t, batch, 2)

	rest, err := repo.ConsumeBatch(ctx, testStream, group, "consumer-1", 10)
	require.NoError(t, err)
	require.Len(t, rest, 1)

	pending, err := client.XPending(ctx, testStream, group).Result()
	require.NoError(t, err)
	assert.Equal(t, int64(3), pending.Count)

	ids := []string{batch[0].ID, batch[1].ID, rest[0].ID}
	require.NoError(t, repo.AckMessages(ctx, testStream, group, ids))

	pending, err = client.XPending(ctx, testStream, group).Result()
	require.NoError(t, err)
	assert.Zero(t, pending.Count)
}

func TestStreamRepository_ConsumeBatch_EmptyReturnsNil(t *testing.T) {
	client := getTestRedisClient(t)
	repo := redisRepo.NewStreamRepository(client, 50*time.Millisecond, 0, zap.NewNop())
	ctx := context.Background()

	require.NoError(t, repo.CreateConsumerGroup(ctx, testStream, "test-empty-group"))

	batch, err := repo.ConsumeBatch(ctx, testStream, "test-empty-group", "consumer-1", 10)
	assert.NoError(t, err)
	assert.Empty(t, batch)
}

func TestStreamRepository_ConsumeBatch_MessageWithoutData(t *testing.T) {
	client := getTestRedisClient(t)
	repo := redisRepo.NewStreamRepository(client, 50*time.Millisecond, 0, zap.NewNop())
	ctx := context.Background()
	group := "test-nodata-group"

	require.NoError(t, repo.CreateConsumerGroup(ctx, testStream, group))
	require.NoError(t, client.XAdd(ctx, &redis.XAddArgs{
		Stream: testStream,
		Values: map[string]interface{}{"other": "x"},
	}).Err())

	batch, err := repo.ConsumeBatch(ctx, testStream, group, "consumer-1", 10)
	require.NoError(t, err)
	require.Len(t, batch, 1)
	assert.Empty(t, batch[0].Data)
}

func TestStreamRepository_AckMessages_Empty(t *testing.T) {
	client := getTestRedisClient(t)
	repo := redisRepo.NewStreamRepository(client, 50*time.Millisecond, 0, zap.NewNop())

	assert.NoError(t, repo.AckMessages(context.Background(), testStream, "none", nil))
}
