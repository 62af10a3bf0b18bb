package cache

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	domain "users-api/internal/domain/user"
)

// setupTestRedis creates a miniredis instance for testing
func setupTestRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
	t.Cleanup(func() {
		_ = client.Close()
	})
	return client, mr
}

func TestRedisUserCache_Set(t *testing.T) {
	client, mr := setupTestRedis(t)
	cache := NewRedisUserCache(client, 5*time.Minute, zaptest.NewLogger(t))

	user := &domain.User{ID: 1, Name: "Alice", Email: "alice@example.com"}
	require.NoError(t, cache.Set(context.Background(), user))

	raw, err := mr.Get("user:1")
	require.NoError(t, err)

	var cached domain.User
	require.NoError(t, json.Unmarshal([]byte(raw), &cached))
	assert.Equal(t, *user, cached)
	assert.Equal(t, 5*time.Minute, mr.TTL("user:1"))
}

func TestRedisUserCache_Set_NilUser(t *testing.T) {
	client, _ := setupTestRedis(t)
	cache := NewRedisUserCache(client, 5*time.Minute, zaptest.NewLogger(t))

	err := cache.Set(context.Background(), nil)
	assert.EqualError(t, err, "cannot cache nil user")
}

func TestRedisUserCache_Get(t *testing.T) {
	client, _ := setupTestRedis(t)
	cache := NewRedisUserCache(client, 5*time.Minute, zaptest.NewLogger(t))
	ctx := context.Background()

	user := &domain.User{ID: 2, Name: "Bob", Email: "bob@example.com"}
	require.NoError(t, cache.Set(ctx, user))

	got, err := cache.Get(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, user, got)
}

func TestRedisUserCache_Get_Miss(t *testing.T) {
	client, _ := setupTestRedis(t)
	cache := NewRedisUserCache(client, 5*time.Minute, zaptest.NewLogger(t))

	got, err := cache.Get(context.Background(), 99)
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestRedisUserCache_Get_Expired(t *testing.T) {
	client, mr := setupTestRedis(t)
	cache := NewRedisUserCache(client, time.Minute, zaptest.NewLogger(t))
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, &domain.User{ID: 3, Name: "Carol", Email: "carol@example.com"}))
	mr.FastForward(2 * time.Minute)

	got, err := cache.Get(ctx, 3)
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestRedisUserCache_Get_CorruptValue(t *testing.T) {
	client, mr := setupTestRedis(t)
	cache := NewRedisUserCache(client, time.Minute, zaptest.NewLogger(t))

	require.NoError(t, mr.Set("user:4", "not json"))

	_, err := cache.Get(context.Background(), 4)
	assert.Error(t, err)
}

func TestRedisUserCache_Delete(t *testing.T) {
	client, mr := setupTestRedis(t)
	cache := NewRedisUserCache(client, time.Minute, zaptest.NewLogger(t))
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, &domain.User{ID: 5, Name: "Dave", Email: "dave@example.com"}))
	require.NoError(t, cache.Delete(ctx, 5))
	assert.False(t, mr.Exists("user:5"))

	// deleting a missing key is fine
	assert.NoError(t, cache.Delete(ctx, 5))
}

func TestRedisUserCache_RedisDown(t *testing.T) {
	client, mr := setupTestRedis(t)
	cache := NewRedisUserCache(client, time.Minute, zaptest.NewLogger(t))
	mr.Close()

	_, err := cache.Get(context.Background(), 1)
	assert.Error(t, err)
}
