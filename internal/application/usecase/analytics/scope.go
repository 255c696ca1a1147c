package analytics

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/fintrack/analytics-backend/internal/domain/entity"
	domainerror "github.com/fintrack/analytics-backend/internal/domain/error"
	"github.com/fintrack/analytics-backend/internal/domain/valueobject"
)

// Scope selects the records an aggregate is computed over: a fiscal period,
// a named preset, or an explicit inclusive date range. Exactly one must be
// set.
type Scope struct {
	Period    *valueobject.PeriodKey
	Preset    RangePreset
	StartDate time.Time
	EndDate   time.Time
}

// ScopeInfo echoes the resolved scope back to the caller.
type ScopeInfo struct {
	Period    *valueobject.PeriodKey `json:"period,omitempty"`
	StartDate time.Time              `json:"start_date"`
	EndDate   time.Time              `json:"end_date"`
	Label     string                 `json:"label"`
}

// resolvedScope is the internal form of a validated scope.
type resolvedScope struct {
	period     *valueobject.PeriodKey
	start, end time.Time
	cacheScope string
	info       ScopeInfo
}

// resolveScope validates a scope and resolves presets against now.
func resolveScope(scope Scope, now time.Time) (resolvedScope, error) {
	hasPeriod := scope.Period != nil
	hasPreset := scope.Preset != ""
	hasRange := !scope.StartDate.IsZero() || !scope.EndDate.IsZero()

	set := 0
	for _, v := range []bool{hasPeriod, hasPreset, hasRange} {
		if v {
			set++
		}
	}
	if set > 1 {
		return resolvedScope{}, domainerror.NewAnalyticsError(
			domainerror.ErrCodeAmbiguousScope,
			"provide exactly one of period, preset, or date range",
			domainerror.ErrAmbiguousScope,
		)
	}

	switch {
	case hasPeriod:
		key := *scope.Period
		start, end := key.Interval()
		return resolvedScope{
			period:     scope.Period,
			start:      start,
			end:        end,
			cacheScope: string(key),
			info: ScopeInfo{
				Period:    scope.Period,
				StartDate: start,
				EndDate:   dateOnly(end),
				Label:     key.Label(),
			},
		}, nil

	case hasPreset:
		start, end, err := ResolvePreset(scope.Preset, now)
		if err != nil {
			return resolvedScope{}, err
		}
		return resolvedScope{
			start:      start,
			end:        end,
			cacheScope: rangeScope(start, end),
			info: ScopeInfo{
				StartDate: start,
				EndDate:   end,
				Label:     string(scope.Preset),
			},
		}, nil

	case hasRange:
		if scope.StartDate.IsZero() || scope.EndDate.IsZero() {
			return resolvedScope{}, domainerror.NewAnalyticsError(
				domainerror.ErrCodeMissingPeriod,
				"both start_date and end_date are required for a date range",
				domainerror.ErrMissingPeriod,
			)
		}
		if scope.EndDate.Before(scope.StartDate) {
			return resolvedScope{}, domainerror.NewAnalyticsError(
				domainerror.ErrCodeInvalidDateRange,
				"end_date must be after start_date",
				domainerror.ErrInvalidDateRange,
			)
		}
		start := dateOnly(scope.StartDate)
		end := dateOnly(scope.EndDate)
		return resolvedScope{
			start:      start,
			end:        end,
			cacheScope: rangeScope(start, end),
			info: ScopeInfo{
				StartDate: start,
				EndDate:   end,
				Label:     rangeScope(start, end),
			},
		}, nil

	default:
		return resolvedScope{}, domainerror.NewAnalyticsError(
			domainerror.ErrCodeMissingPeriod,
			"period, preset, or date range is required",
			domainerror.ErrMissingPeriod,
		)
	}
}

// records applies the resolved scope and wallet filter to a snapshot.
func (rs resolvedScope) records(s Snapshot, wallet valueobject.WalletFilter) []entity.Movement {
	if rs.period != nil {
		return s.FilterByPeriod(*rs.period, wallet)
	}
	return s.FilterByRange(rs.start, rs.end, wallet)
}

// rangeScope renders a date range for cache keys and labels.
func rangeScope(start, end time.Time) string {
	return start.Format("2006-01-02") + " - " + end.Format("2006-01-02")
}

// loadSnapshot takes a fresh snapshot of the user's movements, logging a
// warning when invalid records were excluded so the exclusion is observable.
func loadSnapshot(ctx context.Context, repo MovementRepository, userID uuid.UUID) (Snapshot, error) {
	movements, err := repo.GetMovements(ctx, userID)
	if err != nil {
		return Snapshot{}, fmt.Errorf("failed to load movement snapshot: %w", err)
	}

	snapshot := NewSnapshot(movements)
	if snapshot.Skipped > 0 {
		slog.Warn("excluded invalid movement records from analytics",
			"user_id", userID,
			"skipped", snapshot.Skipped,
		)
	}
	return snapshot, nil
}

// cacheGet reads a cached result, treating cache failures as misses.
func cacheGet(ctx context.Context, cache ResultCache, key string, dest any) bool {
	if cache == nil {
		return false
	}
	hit, err := cache.Get(ctx, key, dest)
	if err != nil {
		slog.Warn("analytics cache read failed", "key", key, "error", err)
		return false
	}
	return hit
}

// cacheSet stores a computed result, logging and swallowing failures.
func cacheSet(ctx context.Context, cache ResultCache, key string, value any) {
	if cache == nil {
		return
	}
	if err := cache.Set(ctx, key, value); err != nil {
		slog.Warn("analytics cache write failed", "key", key, "error", err)
	}
}
