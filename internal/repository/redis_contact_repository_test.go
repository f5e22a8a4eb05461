package repository

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestRedisContactRepository(t *testing.T) {
	_, client := setupTestRedis(t)
	exerciseContactRepository(t, NewRedisContactRepository(client, "contacts"))
}

func TestRedisContactRepository_StoresIDInsideValue(t *testing.T) {
	mr, client := setupTestRedis(t)
	repo := NewRedisContactRepository(client, "site:contacts")

	id, err := repo.Insert(context.Background(), sampleDoc(7))
	require.NoError(t, err)

	values, err := mr.List("site:contacts")
	require.NoError(t, err)
	require.Len(t, values, 1)

	var raw map[string]any
	require.NoError(t, json.Unmarshal([]byte(values[0]), &raw))
	assert.Equal(t, id, raw["id"])
	assert.Equal(t, "User 7", raw["name"])
}

func TestRedisContactRepository_Unreachable(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	defer client.Close()
	repo := NewRedisContactRepository(client, "contacts")
	mr.Close()

	ctx := context.Background()
	assert.Error(t, repo.Ping(ctx))
	_, err = repo.Insert(ctx, sampleDoc(1))
	assert.Error(t, err)
	_, err = repo.FindAll(ctx)
	assert.Error(t, err)
}

func TestRedisContactRepository_CorruptValue(t *testing.T) {
	mr, client := setupTestRedis(t)
	_, err := mr.Push("contacts", "{not json")
	require.NoError(t, err)

	_, err = NewRedisContactRepository(client, "contacts").FindAll(context.Background())
	assert.Error(t, err)
}

func TestNewRedisClient(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := NewRedisClient("redis://" + mr.Addr() + "/0")
	require.NoError(t, err)
	defer client.Close()
	assert.NoError(t, client.Ping(context.Background()).Err())

	_, err = NewRedisClient("not-a-url")
	assert.Error(t, err)
}
