// Package analytics contains the period analytics engine and its use cases.
//
// The engine is a pure computation layer: every aggregate is recomputed on
// demand from an immutable snapshot of movement records taken per request.
// No function here mutates its input or retains a reference to it across
// calls.
package analytics

import (
	"sort"
	"time"

	"github.com/fintrack/analytics-backend/internal/domain/entity"
	"github.com/fintrack/analytics-backend/internal/domain/valueobject"
)

// Snapshot is an immutable view of a user's movement history, validated at
// the engine boundary. Records that fail validation are excluded from every
// aggregate and reported through Skipped so they do not vanish silently.
type Snapshot struct {
	Movements []entity.Movement
	Skipped   int
}

// NewSnapshot builds a snapshot from raw movement records, dropping and
// counting invalid ones (negative amount, unknown kind, zero date).
func NewSnapshot(movements []entity.Movement) Snapshot {
	valid := make([]entity.Movement, 0, len(movements))
	skipped := 0
	for _, m := range movements {
		if err := m.Validate(); err != nil {
			skipped++
			continue
		}
		valid = append(valid, m)
	}
	return Snapshot{Movements: valid, Skipped: skipped}
}

// FilterByPeriod returns the movements belonging to the given fiscal period
// and wallet scope. The scan is linear and preserves input order.
func (s Snapshot) FilterByPeriod(key valueobject.PeriodKey, wallet valueobject.WalletFilter) []entity.Movement {
	out := make([]entity.Movement, 0, len(s.Movements))
	for _, m := range s.Movements {
		if wallet.Matches(m.WalletID) && key.Contains(m.Date) {
			out = append(out, m)
		}
	}
	return out
}

// FilterByRange returns the movements whose date falls inside the inclusive
// [start, end] calendar-date range and whose wallet matches. Time of day is
// ignored on both sides.
func (s Snapshot) FilterByRange(start, end time.Time, wallet valueobject.WalletFilter) []entity.Movement {
	startDay := dateOnly(start)
	endDay := dateOnly(end)
	out := make([]entity.Movement, 0, len(s.Movements))
	for _, m := range s.Movements {
		if !wallet.Matches(m.WalletID) {
			continue
		}
		d := dateOnly(m.Date)
		if d.Before(startDay) || d.After(endDay) {
			continue
		}
		out = append(out, m)
	}
	return out
}

// PeriodKeys returns the sorted ascending, deduplicated list of fiscal
// periods for which any movement exists under the given wallet scope.
func (s Snapshot) PeriodKeys(wallet valueobject.WalletFilter) []valueobject.PeriodKey {
	seen := make(map[valueobject.PeriodKey]struct{})
	for _, m := range s.Movements {
		if wallet.Matches(m.WalletID) {
			seen[valueobject.PeriodKeyForDate(m.Date)] = struct{}{}
		}
	}

	keys := make([]valueobject.PeriodKey, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	// "YYYY-MM" keys sort chronologically as strings.
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// dateOnly strips the time-of-day and location from a timestamp.
func dateOnly(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
