package di

import (
	"context"
	"net"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"users-api/internal/adapter/db/memory"
	"users-api/internal/adapter/db/sqlstore"
	"users-api/internal/adapter/repository/cached"
	"users-api/internal/config"
	"users-api/internal/usecase/user"
)

func testConfig(t *testing.T) *config.Config {
	cfg, err := config.LoadConfig(t.TempDir())
	require.NoError(t, err)
	return cfg
}

func TestNewContainer_Memory(t *testing.T) {
	c, err := NewContainer(context.Background(), testConfig(t), zaptest.NewLogger(t))
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, c.Close()) })

	assert.IsType(t, &memory.UserRepoMemory{}, c.Store)
	assert.Nil(t, c.DB)
	assert.Nil(t, c.RedisClient)
	assert.False(t, c.RateLimiter.Enabled())
	assert.NotNil(t, c.GinHandler)

	created, err := c.UserUC.CreateUser(context.Background(), user.CreateUserRequest{
		UserInput: user.UserInput{Name: "Alice", Email: "a@b.com"},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.ID)
}

func TestNewContainer_SQLiteWithRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	host, port, err := net.SplitHostPort(mr.Addr())
	require.NoError(t, err)

	cfg := testConfig(t)
	cfg.DB.Driver = config.DriverSQLite
	cfg.DB.SQLitePath = filepath.Join(t.TempDir(), "users.db")
	cfg.Redis.Enabled = true
	cfg.Redis.Host = host
	cfg.Redis.Port = port
	cfg.RateLimit.Enabled = true

	c, err := NewContainer(context.Background(), cfg, zaptest.NewLogger(t))
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, c.Close()) })

	assert.IsType(t, &cached.UserRepository{}, c.Store)
	assert.NotNil(t, c.DB)
	assert.True(t, c.RateLimiter.Enabled())

	ctx := context.Background()
	created, err := c.UserUC.CreateUser(ctx, user.CreateUserRequest{
		UserInput: user.UserInput{Name: "Alice", Email: "a@b.com"},
	})
	require.NoError(t, err)

	got, err := c.UserUC.GetUser(ctx, user.GetUserRequest{ID: created.ID})
	require.NoError(t, err)
	assert.Equal(t, created, got)

	stored, err := sqlstore.NewUserRepoSQL(c.DB, zaptest.NewLogger(t)).List(ctx)
	require.NoError(t, err)
	assert.Len(t, stored, 1)
}

func TestNewContainer_InvalidConfig(t *testing.T) {
	cfg := testConfig(t)
	cfg.DB.Driver = "mongo"

	_, err := NewContainer(context.Background(), cfg, zaptest.NewLogger(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config validation failed")
}

func TestNewContainer_RedisUnreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	host, port, err := net.SplitHostPort(mr.Addr())
	require.NoError(t, err)
	mr.Close()

	cfg := testConfig(t)
	cfg.Redis.Enabled = true
	cfg.Redis.Host = host
	cfg.Redis.Port = port

	_, err = NewContainer(context.Background(), cfg, zaptest.NewLogger(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to initialize Redis")
}
