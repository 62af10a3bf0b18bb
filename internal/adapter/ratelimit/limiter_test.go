package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zaptest"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time { return c.t }

func setupLimiter(t *testing.T, cfg Config) (*Limiter, *fakeClock, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { _ = client.Close() })

	clock := &fakeClock{t: time.Unix(1_700_000_000, 0)}
	l := New(client, cfg, zaptest.NewLogger(t))
	l.now = clock.now
	return l, clock, mr
}

func TestLimiter_AdmitsBurstThenRejects(t *testing.T) {
	l, _, _ := setupLimiter(t, Config{RequestsPerSecond: 1, BurstCapacity: 3, Enabled: true})
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		assert.True(t, l.Allow(ctx, "GET /users", "10.0.0.1"), "request %d", i+1)
	}
	assert.False(t, l.Allow(ctx, "GET /users", "10.0.0.1"))
}

func TestLimiter_Refills(t *testing.T) {
	l, clock, _ := setupLimiter(t, Config{RequestsPerSecond: 1, BurstCapacity: 2, Enabled: true})
	ctx := context.Background()

	assert.True(t, l.Allow(ctx, "s", "c"))
	assert.True(t, l.Allow(ctx, "s", "c"))
	assert.False(t, l.Allow(ctx, "s", "c"))

	clock.t = clock.t.Add(time.Second)
	assert.True(t, l.Allow(ctx, "s", "c"))
	assert.False(t, l.Allow(ctx, "s", "c"))
}

func TestLimiter_SeparateBuckets(t *testing.T) {
	l, _, mr := setupLimiter(t, Config{RequestsPerSecond: 1, BurstCapacity: 1, Enabled: true})
	ctx := context.Background()

	assert.True(t, l.Allow(ctx, "s", "10.0.0.1"))
	assert.False(t, l.Allow(ctx, "s", "10.0.0.1"))
	assert.True(t, l.Allow(ctx, "s", "10.0.0.2"))
	assert.True(t, l.Allow(ctx, "other", "10.0.0.1"))

	assert.True(t, mr.Exists("ratelimit:tb:s:10.0.0.1"))
}

func TestLimiter_Disabled(t *testing.T) {
	l, _, mr := setupLimiter(t, Config{RequestsPerSecond: 1, BurstCapacity: 1, Enabled: false})
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		assert.True(t, l.Allow(ctx, "s", "c"))
	}
	assert.Empty(t, mr.Keys())
}

func TestLimiter_NilClient(t *testing.T) {
	l := New(nil, Config{RequestsPerSecond: 1, BurstCapacity: 1, Enabled: true}, zaptest.NewLogger(t))
	assert.False(t, l.Enabled())
	assert.True(t, l.Allow(context.Background(), "s", "c"))
}

func TestLimiter_FailsOpen(t *testing.T) {
	l, _, mr := setupLimiter(t, Config{RequestsPerSecond: 1, BurstCapacity: 1, Enabled: true})
	mr.Close()

	ctx := context.Background()
	assert.True(t, l.Allow(ctx, "s", "c"))
	assert.True(t, l.Allow(ctx, "s", "c"))
}
