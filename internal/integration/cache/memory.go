// Package cache implements the analytics result cache port.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/fintrack/analytics-backend/internal/application/usecase/analytics"
)

// memoryEntry is one cached value with its expiry deadline.
type memoryEntry struct {
	data      []byte
	expiresAt time.Time
}

// MemoryCache is an in-process TTL cache for analytics results. Values are
// stored as JSON so readers get copies, never aliases of cached structures.
// Safe for concurrent use. The key space is bounded (periods x wallets x
// kinds), so expired entries are simply dropped on read with no further
// eviction machinery.
type MemoryCache struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	ttl     time.Duration
	now     func() time.Time
}

// NewMemoryCache creates a memory cache with the given TTL.
func NewMemoryCache(ttl time.Duration) *MemoryCache {
	return &MemoryCache{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// NewMemoryCacheWithClock creates a memory cache with an injected clock,
// used by tests to control TTL expiry.
func NewMemoryCacheWithClock(ttl time.Duration, now func() time.Time) *MemoryCache {
	c := NewMemoryCache(ttl)
	c.now = now
	return c
}

// Get loads a fresh entry into dest; a stale entry is a miss and is removed.
func (c *MemoryCache) Get(_ context.Context, key string, dest any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		return false, nil
	}
	if c.now().After(entry.expiresAt) {
		delete(c.entries, key)
		return false, nil
	}

	if err := json.Unmarshal(entry.data, dest); err != nil {
		return false, fmt.Errorf("failed to decode cached value: %w", err)
	}
	return true, nil
}

// Set stores a value under key with the cache's TTL.
func (c *MemoryCache) Set(_ context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode value for cache: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = memoryEntry{
		data:      data,
		expiresAt: c.now().Add(c.ttl),
	}
	return nil
}

// InvalidateUser drops every entry belonging to the given user.
func (c *MemoryCache) InvalidateUser(_ context.Context, userID uuid.UUID) error {
	prefix := analytics.UserCachePrefix(userID)

	c.mu.Lock()
	defer c.mu.Unlock()

	for key := range c.entries {
		if strings.HasPrefix(key, prefix) {
			delete(c.entries, key)
		}
	}
	return nil
}

// Len reports the number of stored entries, including stale ones.
func (c *MemoryCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
