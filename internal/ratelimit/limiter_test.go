package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func TestTokenBucketLimitsPerKey(t *testing.T) {
	lim := NewTokenBucket(3, time.Minute)
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	lim.now = func() time.Time { return now }
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if d := lim.Allow(ctx, "10.0.0.1"); !d.Allowed {
			t.Fatalf("attempt %d rejected", i+1)
		}
	}
	d := lim.Allow(ctx, "10.0.0.1")
	if d.Allowed {
		t.Fatal("fourth attempt allowed")
	}
	if d.RetryAfter <= 0 || d.RetryAfter > 20*time.Second {
		t.Fatalf("unexpected retry after %v", d.RetryAfter)
	}
	if d := lim.Allow(ctx, "10.0.0.2"); !d.Allowed {
		t.Fatal("other key throttled")
	}

	now = now.Add(20 * time.Second)
	if d := lim.Allow(ctx, "10.0.0.1"); !d.Allowed {
		t.Fatal("token not refilled")
	}
}

func TestTokenBucketForgetsIdleKeys(t *testing.T) {
	lim := NewTokenBucket(1, time.Minute)
	now := time.Now()
	lim.now = func() time.Time { return now }
	lim.Allow(context.Background(), "a")
	now = now.Add(10 * time.Minute)
	lim.Allow(context.Background(), "b")
	if _, ok := lim.buckets["a"]; ok {
		t.Fatal("idle bucket kept")
	}
}

func TestRedisFixedWindow(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis: %v", err)
	}
	defer mr.Close()
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	lim := NewRedis(client, 2, time.Minute)
	ctx := context.Background()
	for i := 0; i < 2; i++ {
		if d := lim.Allow(ctx, "login:1.2.3.4"); !d.Allowed {
			t.Fatalf("attempt %d rejected", i+1)
		}
	}
	d := lim.Allow(ctx, "login:1.2.3.4")
	if d.Allowed || d.RetryAfter <= 0 {
		t.Fatalf("expected throttle with retry-after, got %+v", d)
	}

	mr.FastForward(time.Minute + time.Second)
	if d := lim.Allow(ctx, "login:1.2.3.4"); !d.Allowed {
		t.Fatal("window did not reset")
	}
}

func TestRedisFallsBackWhenUnreachable(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:         "127.0.0.1:1",
		DialTimeout:  5 * time.Millisecond,
		ReadTimeout:  5 * time.Millisecond,
		WriteTimeout: 5 * time.Millisecond,
		MaxRetries:   0,
	})
	defer client.Close()

	lim := NewRedis(client, 1, time.Minute)
	ctx := context.Background()
	if d := lim.Allow(ctx, "k"); !d.Allowed {
		t.Fatal("first attempt rejected by fallback")
	}
	if d := lim.Allow(ctx, "k"); d.Allowed {
		t.Fatal("fallback did not throttle")
	}

	lim.Fallback = nil
	if d := lim.Allow(ctx, "k"); !d.Allowed {
		t.Fatal("expected permissive decision without fallback")
	}
}
