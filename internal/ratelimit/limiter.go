package ratelimit

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Decision is the outcome of one Allow call.
type Decision struct {
	Allowed    bool
	Limit      int
	Remaining  int
	RetryAfter time.Duration
}

// Limiter throttles events per key.
type Limiter interface {
	Allow(ctx context.Context, key string) Decision
}

type bucket struct {
	lim  *rate.Limiter
	seen time.Time
}

// TokenBucket is an in-process per-key limiter refilling limit tokens per window.
type TokenBucket struct {
	mu      sync.Mutex
	limit   int
	every   rate.Limit
	idle    time.Duration
	buckets map[string]*bucket
	now     func() time.Time
}

// NewTokenBucket allows limit events per window for each key, bursting up to limit.
func NewTokenBucket(limit int, window time.Duration) *TokenBucket {
	if limit <= 0 {
		limit = 1
	}
	if window <= 0 {
		window = time.Minute
	}
	return &TokenBucket{
		limit:   limit,
		every:   rate.Every(window / time.Duration(limit)),
		idle:    5 * window,
		buckets: make(map[string]*bucket),
		now:     time.Now,
	}
}

func (l *TokenBucket) Allow(_ context.Context, key string) Decision {
	now := l.now()
	l.mu.Lock()
	defer l.mu.Unlock()
	l.cleanup(now)

	b, ok := l.buckets[key]
	if !ok {
		b = &bucket{lim: rate.NewLimiter(l.every, l.limit)}
		l.buckets[key] = b
	}
	b.seen = now

	res := b.lim.ReserveN(now, 1)
	if delay := res.DelayFrom(now); delay > 0 {
		res.CancelAt(now)
		return Decision{Allowed: false, Limit: l.limit, RetryAfter: delay}
	}
	return Decision{Allowed: true, Limit: l.limit, Remaining: int(b.lim.TokensAt(now))}
}

func (l *TokenBucket) cleanup(now time.Time) {
	for k, b := range l.buckets {
		if now.Sub(b.seen) > l.idle {
			delete(l.buckets, k)
		}
	}
}
