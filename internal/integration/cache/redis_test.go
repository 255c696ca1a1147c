package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/fintrack/analytics-backend/internal/application/usecase/analytics"
	"github.com/fintrack/analytics-backend/internal/domain/valueobject"
)

func newTestRedisCache(t *testing.T, ttl time.Duration) (*RedisCache, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewRedisCache(client, ttl), mr
}

func TestRedisCache(t *testing.T) {
	ctx := context.Background()

	t.Run("round-trips a stored value", func(t *testing.T) {
		c, _ := newTestRedisCache(t, 5*time.Minute)

		if err := c.Set(ctx, "k", payload{Value: "v"}); err != nil {
			t.Fatalf("Set failed: %v", err)
		}

		var got payload
		hit, err := c.Get(ctx, "k", &got)
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if !hit {
			t.Fatal("expected a cache hit")
		}
		if got.Value != "v" {
			t.Errorf("Value = %q, want %q", got.Value, "v")
		}
	})

	t.Run("missing key is a miss, not an error", func(t *testing.T) {
		c, _ := newTestRedisCache(t, 5*time.Minute)

		var got payload
		hit, err := c.Get(ctx, "absent", &got)
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if hit {
			t.Error("expected a miss")
		}
	})

	t.Run("entries expire server-side after the TTL", func(t *testing.T) {
		c, mr := newTestRedisCache(t, 5*time.Minute)

		if err := c.Set(ctx, "k", payload{Value: "v"}); err != nil {
			t.Fatalf("Set failed: %v", err)
		}

		mr.FastForward(5*time.Minute + time.Second)

		var got payload
		hit, err := c.Get(ctx, "k", &got)
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if hit {
			t.Error("expected a miss after TTL expiry")
		}
	})

	t.Run("invalidates a single user's entries", func(t *testing.T) {
		c, _ := newTestRedisCache(t, 5*time.Minute)
		userA := uuid.New()
		userB := uuid.New()
		all := valueobject.AllWallets()

		keyA1 := analytics.CacheKey(userA, analytics.KindSummary, "2025-04", all)
		keyA2 := analytics.CacheKey(userA, analytics.KindInsights, "2025-04:n7", all)
		keyB := analytics.CacheKey(userB, analytics.KindSummary, "2025-04", all)
		for _, k := range []string{keyA1, keyA2, keyB} {
			if err := c.Set(ctx, k, payload{Value: "v"}); err != nil {
				t.Fatalf("Set failed: %v", err)
			}
		}

		if err := c.InvalidateUser(ctx, userA); err != nil {
			t.Fatalf("InvalidateUser failed: %v", err)
		}

		var got payload
		if hit, _ := c.Get(ctx, keyA1, &got); hit {
			t.Error("expected userA's summary entry to be dropped")
		}
		if hit, _ := c.Get(ctx, keyA2, &got); hit {
			t.Error("expected userA's insights entry to be dropped")
		}
		if hit, _ := c.Get(ctx, keyB, &got); !hit {
			t.Error("expected userB's entry to survive")
		}
	})

	t.Run("invalidating a user with no entries succeeds", func(t *testing.T) {
		c, _ := newTestRedisCache(t, 5*time.Minute)
		if err := c.InvalidateUser(ctx, uuid.New()); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})
}
