package ratelimit

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"civictrack.org/internal/obs"
)

var fixedWindowScript = redis.NewScript(`
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
local ttl = redis.call("PTTL", KEYS[1])
return {current, ttl}
`)

// Redis is a fixed-window limiter shared across instances. When Redis is
// unreachable it defers to Fallback.
type Redis struct {
	Client   *redis.Client
	Limit    int
	Window   time.Duration
	Prefix   string
	Fallback Limiter
}

func NewRedis(client *redis.Client, limit int, window time.Duration) *Redis {
	if limit <= 0 {
		limit = 1
	}
	if window <= 0 {
		window = time.Minute
	}
	return &Redis{
		Client:   client,
		Limit:    limit,
		Window:   window,
		Prefix:   "civictrack:rl:",
		Fallback: NewTokenBucket(limit, window),
	}
}

func (l *Redis) Allow(ctx context.Context, key string) Decision {
	if l.Client == nil {
		return l.fallback(ctx, key)
	}
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	res, err := fixedWindowScript.Run(ctx, l.Client, []string{l.Prefix + key}, l.Window.Milliseconds()).Result()
	if err != nil {
		obs.Warn("rate limiter falling back to memory", map[string]any{"error": err.Error()})
		return l.fallback(ctx, key)
	}
	vals, ok := res.([]interface{})
	if !ok || len(vals) < 2 {
		return l.fallback(ctx, key)
	}
	count, _ := vals[0].(int64)
	ttlMs, _ := vals[1].(int64)
	if ttlMs < 0 {
		ttlMs = l.Window.Milliseconds()
	}
	remaining := l.Limit - int(count)
	if remaining < 0 {
		remaining = 0
	}
	d := Decision{Allowed: int(count) <= l.Limit, Limit: l.Limit, Remaining: remaining}
	if !d.Allowed {
		d.RetryAfter = time.Duration(ttlMs) * time.Millisecond
	}
	return d
}

func (l *Redis) fallback(ctx context.Context, key string) Decision {
	if l.Fallback == nil {
		return Decision{Allowed: true, Limit: l.Limit, Remaining: l.Limit}
	}
	return l.Fallback.Allow(ctx, key)
}
