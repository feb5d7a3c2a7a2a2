// Package ratelimit implements a redis-backed token bucket shared across
// instances. With no redis configured every request is allowed.
package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// tokenBucketScript refills and consumes atomically so concurrent callers
// cannot overdraw the bucket.
var tokenBucketScript = redis.NewScript(`
local key = KEYS[1]
local rate = tonumber(ARGV[1])
local burst = tonumber(ARGV[2])
local now = tonumber(ARGV[3])
local requested = tonumber(ARGV[4])

local bucket = redis.call('HMGET', key, 'tokens', 'ts')
local tokens = tonumber(bucket[1])
local ts = tonumber(bucket[2])

if tokens == nil then
  tokens = burst
  ts = now
end

local elapsed = math.max(0, now - ts)
tokens = math.min(burst, tokens + elapsed * rate)

local allowed = 0
if tokens >= requested then
  tokens = tokens - requested
  allowed = 1
end

redis.call('HSET', key, 'tokens', tokens, 'ts', now)
redis.call('EXPIRE', key, math.ceil(burst / rate) * 2)

return allowed
`)

// Limiter rations requests per key using a token bucket in redis.
type Limiter struct {
	client *redis.Client
	rate   float64 // tokens per second
	burst  int
}

func NewLimiter(client *redis.Client, rate float64, burst int) *Limiter {
	if rate <= 0 {
		rate = 25
	}
	if burst <= 0 {
		burst = 50
	}
	return &Limiter{client: client, rate: rate, burst: burst}
}

// Allow consumes one token for the key. Redis being down or unconfigured
// fails open: limiting is protection, not a correctness requirement.
func (l *Limiter) Allow(ctx context.Context, key string) (bool, error) {
	if l == nil || l.client == nil {
		return true, nil
	}

	now := float64(time.Now().UnixMicro()) / 1e6
	res, err := tokenBucketScript.Run(ctx, l.client,
		[]string{fmt.Sprintf("ratelimit:{%s}", key)},
		l.rate, l.burst, now, 1,
	).Int()
	if err != nil {
		return true, err
	}
	return res == 1, nil
}
