package cache

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/fintrack/analytics-backend/internal/application/usecase/analytics"
	"github.com/fintrack/analytics-backend/internal/domain/valueobject"
)

type payload struct {
	Value string `json:"value"`
}

func TestMemoryCache(t *testing.T) {
	ctx := context.Background()

	t.Run("round-trips a stored value", func(t *testing.T) {
		c := NewMemoryCache(5 * time.Minute)

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

	t.Run("missing key is a miss", func(t *testing.T) {
		c := NewMemoryCache(5 * time.Minute)

		var got payload
		hit, err := c.Get(ctx, "absent", &got)
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if hit {
			t.Error("expected a miss")
		}
	})

	t.Run("entries expire after the TTL", func(t *testing.T) {
		clock := time.Date(2025, time.April, 10, 12, 0, 0, 0, time.UTC)
		c := NewMemoryCacheWithClock(5*time.Minute, func() time.Time { return clock })

		if err := c.Set(ctx, "k", payload{Value: "v"}); err != nil {
			t.Fatalf("Set failed: %v", err)
		}

		// Just before expiry: still a hit.
		clock = clock.Add(5 * time.Minute)
		var got payload
		hit, err := c.Get(ctx, "k", &got)
		if err != nil || !hit {
			t.Fatalf("expected a hit at the TTL boundary, hit=%v err=%v", hit, err)
		}

		// Past expiry: a miss, and the stale entry is dropped.
		clock = clock.Add(time.Second)
		hit, err = c.Get(ctx, "k", &got)
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if hit {
			t.Error("expected a miss after TTL expiry")
		}
		if c.Len() != 0 {
			t.Errorf("Len = %d, want 0 after stale drop", c.Len())
		}
	})

	t.Run("readers get copies, not aliases", func(t *testing.T) {
		c := NewMemoryCache(5 * time.Minute)
		stored := payload{Value: "original"}
		if err := c.Set(ctx, "k", stored); err != nil {
			t.Fatalf("Set failed: %v", err)
		}

		var first payload
		if _, err := c.Get(ctx, "k", &first); err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		first.Value = "mutated"

		var second payload
		if _, err := c.Get(ctx, "k", &second); err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if second.Value != "original" {
			t.Errorf("Value = %q, want %q", second.Value, "original")
		}
	})

	t.Run("invalidates a single user's entries", func(t *testing.T) {
		c := NewMemoryCache(5 * time.Minute)
		userA := uuid.New()
		userB := uuid.New()
		all := valueobject.AllWallets()

		keyA1 := analytics.CacheKey(userA, analytics.KindSummary, "2025-04", all)
		keyA2 := analytics.CacheKey(userA, analytics.KindTrend, "2025-04:n12", all)
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
			t.Error("expected userA's trend entry to be dropped")
		}
		if hit, _ := c.Get(ctx, keyB, &got); !hit {
			t.Error("expected userB's entry to survive")
		}
	})
}
