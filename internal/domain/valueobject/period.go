// Package valueobject defines immutable domain value objects.
package valueobject

import (
	"fmt"
	"time"
)

// PeriodStartDay is the day of the calendar month on which a fiscal period
// begins. A fiscal "month" runs from the 26th of one calendar month through
// the 25th of the next.
const PeriodStartDay = 26

// PeriodKey identifies a fiscal period as "YYYY-MM", where the month is the
// calendar month of the period's end date (the 25th). Every calendar date
// maps to exactly one period key.
type PeriodKey string

// PeriodKeyForDate returns the period key containing the given date. Dates on
// or after the 26th belong to the following calendar month's key, with year
// rollover at December.
func PeriodKeyForDate(date time.Time) PeriodKey {
	year, month, day := date.Date()
	if day >= PeriodStartDay {
		month++
	}
	// time.Date normalizes month 13 to January of the next year.
	normalized := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return PeriodKey(normalized.Format("2006-01"))
}

// ParsePeriodKey validates a "YYYY-MM" string and returns it as a PeriodKey.
func ParsePeriodKey(s string) (PeriodKey, error) {
	if _, err := time.Parse("2006-01", s); err != nil {
		return "", fmt.Errorf("invalid period key %q: %w", s, err)
	}
	return PeriodKey(s), nil
}

// endMonth returns the year and month of the period's end date. The zero
// value is returned for malformed keys, which cannot be produced through
// PeriodKeyForDate or ParsePeriodKey.
func (k PeriodKey) endMonth() (int, time.Month) {
	t, err := time.Parse("2006-01", string(k))
	if err != nil {
		return 0, 0
	}
	return t.Year(), t.Month()
}

// Interval returns the concrete [start, end] range for the period: the 26th
// of the preceding month at start of day through the 25th of the key's month
// at end of day. Intervals of consecutive keys are contiguous and
// non-overlapping.
func (k PeriodKey) Interval() (start, end time.Time) {
	year, month := k.endMonth()
	start = time.Date(year, month-1, PeriodStartDay, 0, 0, 0, 0, time.UTC)
	end = time.Date(year, month, PeriodStartDay-1, 23, 59, 59, 0, time.UTC)
	return start, end
}

// Contains reports whether the given date falls inside the period. Only the
// calendar date matters; time of day and location are ignored.
func (k PeriodKey) Contains(date time.Time) bool {
	return PeriodKeyForDate(date) == k
}

// Days enumerates every calendar date in the period's interval, in order.
// The length varies from 28 to 31 depending on the months bounding the
// period.
func (k PeriodKey) Days() []time.Time {
	start, end := k.Interval()
	days := make([]time.Time, 0, 31)
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// Next returns the key of the immediately following period.
func (k PeriodKey) Next() PeriodKey {
	year, month := k.endMonth()
	return PeriodKey(time.Date(year, month+1, 1, 0, 0, 0, 0, time.UTC).Format("2006-01"))
}

// Prev returns the key of the immediately preceding period.
func (k PeriodKey) Prev() PeriodKey {
	year, month := k.endMonth()
	return PeriodKey(time.Date(year, month-1, 1, 0, 0, 0, 0, time.UTC).Format("2006-01"))
}

// Label returns a human-readable description of the period's span, e.g.
// "Mar 26 - Apr 25".
func (k PeriodKey) Label() string {
	start, end := k.Interval()
	return fmt.Sprintf("%s %d - %s %d",
		start.Format("Jan"), PeriodStartDay,
		end.Format("Jan"), PeriodStartDay-1,
	)
}

// ShortLabel returns a compact month marker for chart axes, e.g. "Apr 25"
// (end month plus 2-digit year).
func (k PeriodKey) ShortLabel() string {
	year, month := k.endMonth()
	return time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).Format("Jan 06")
}
