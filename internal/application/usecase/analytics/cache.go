package analytics

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/fintrack/analytics-backend/internal/domain/valueobject"
)

// ResultKind discriminates cached aggregate results.
type ResultKind string

const (
	KindSummary         ResultKind = "summary"
	KindBreakdown       ResultKind = "breakdown"
	KindTrend           ResultKind = "trend"
	KindDailyComparison ResultKind = "daily_comparison"
	KindInsights        ResultKind = "insights"
)

// ResultCache memoizes aggregate results under a composite key with a short
// TTL. A stale entry is a miss. Implementations must be safe for concurrent
// use. Cache failures are never fatal to a request; use cases degrade to
// recomputation.
type ResultCache interface {
	// Get loads the cached value for key into dest, reporting whether a
	// fresh entry was found.
	Get(ctx context.Context, key string, dest any) (bool, error)

	// Set stores a value under key with the cache's TTL.
	Set(ctx context.Context, key string, value any) error

	// InvalidateUser drops every cached result for the given user. Called
	// by the CRUD application's mutation hook, since any movement change
	// invalidates all aggregates.
	InvalidateUser(ctx context.Context, userID uuid.UUID) error
}

// CacheKeyPrefix namespaces all analytics cache entries.
const CacheKeyPrefix = "analytics"

// CacheKey builds the composite cache key for an aggregate request:
// kind + period-or-range scope + wallet, namespaced per user.
func CacheKey(userID uuid.UUID, kind ResultKind, scope string, wallet valueobject.WalletFilter) string {
	return fmt.Sprintf("%s:%s:%s:%s:%s", CacheKeyPrefix, userID, kind, scope, wallet)
}

// UserCachePrefix returns the key prefix shared by all of a user's entries,
// used for invalidation.
func UserCachePrefix(userID uuid.UUID) string {
	return fmt.Sprintf("%s:%s:", CacheKeyPrefix, userID)
}
