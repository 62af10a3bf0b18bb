// Package ratelimit implements a Redis-backed token bucket shared by the
// HTTP and gRPC transports.
package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Config holds configuration for the rate limiter.
type Config struct {
	RequestsPerSecond float64
	BurstCapacity     int
	Enabled           bool
}

// tokenBucket refills at ARGV[1] tokens/s up to ARGV[2] and takes one token.
// Bucket state is {last_refill, tokens}; idle buckets expire after 60s.
var tokenBucket = redis.NewScript(`
local key = KEYS[1]
local rate = tonumber(ARGV[1])
local capacity = tonumber(ARGV[2])
local now = tonumber(ARGV[3])

local bucket = redis.call('HMGET', key, 'last_refill', 'tokens')
local last_refill = tonumber(bucket[1]) or now
local tokens = tonumber(bucket[2]) or capacity

local elapsed = math.max(0, now - last_refill)
tokens = math.min(capacity, tokens + elapsed * rate)

local allowed = 0
if tokens >= 1 then
	tokens = tokens - 1
	allowed = 1
end

redis.call('HSET', key, 'last_refill', tostring(now), 'tokens', tostring(tokens))
redis.call('EXPIRE', key, 60)
return allowed
`)

// Limiter decides whether a client may make another request.
type Limiter struct {
	client *redis.Client
	config Config
	log    *zap.Logger
	now    func() time.Time
}

// New creates a Limiter. A nil client disables limiting.
func New(client *redis.Client, config Config, log *zap.Logger) *Limiter {
	return &Limiter{
		client: client,
		config: config,
		log:    log,
		now:    time.Now,
	}
}

// Enabled reports whether requests are actually limited.
func (l *Limiter) Enabled() bool {
	return l != nil && l.client != nil && l.config.Enabled
}

// Config returns the limiter configuration.
func (l *Limiter) Config() Config {
	return l.config
}

// Allow takes one token from the bucket of (scope, client).
// Redis failures allow the request.
func (l *Limiter) Allow(ctx context.Context, scope, client string) bool {
	if !l.Enabled() {
		return true
	}

	key := fmt.Sprintf("ratelimit:tb:%s:%s", scope, client)
	now := float64(l.now().UnixNano()) / float64(time.Second)

	allowed, err := tokenBucket.Run(ctx, l.client, []string{key},
		l.config.RequestsPerSecond,
		l.config.BurstCapacity,
		now,
	).Int64()
	if err != nil {
		l.log.Warn("rate limiter redis error, allowing request",
			zap.String("scope", scope),
			zap.String("client", client),
			zap.Error(err),
		)
		return true
	}

	if allowed == 0 {
		l.log.Warn("rate limit exceeded",
			zap.String("scope", scope),
			zap.String("client", client),
			zap.Float64("rps", l.config.RequestsPerSecond),
			zap.Int("burst", l.config.BurstCapacity),
		)
		return false
	}
	return true
}
