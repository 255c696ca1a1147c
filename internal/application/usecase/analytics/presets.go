package analytics

import (
	"time"

	domainerror "github.com/fintrack/analytics-backend/internal/domain/error"
	"github.com/fintrack/analytics-backend/internal/domain/valueobject"
)

// RangePreset names a common relative date range offered by the UI.
type RangePreset string

const (
	PresetLast7Days  RangePreset = "last_7_days"
	PresetLast30Days RangePreset = "last_30_days"
	PresetThisMonth  RangePreset = "this_month"
	PresetThisPeriod RangePreset = "this_period"
	PresetYearToDate RangePreset = "year_to_date"
)

// ResolvePreset turns a preset name into a concrete inclusive [start, end]
// date range relative to now. "this_period" resolves to the current fiscal
// period's interval; the others use plain calendar semantics.
func ResolvePreset(preset RangePreset, now time.Time) (start, end time.Time, err error) {
	today := dateOnly(now)

	switch preset {
	case PresetLast7Days:
		return today.AddDate(0, 0, -6), today, nil
	case PresetLast30Days:
		return today.AddDate(0, 0, -29), today, nil
	case PresetThisMonth:
		start = time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)
		end = start.AddDate(0, 1, -1)
		return start, end, nil
	case PresetThisPeriod:
		start, end = valueobject.PeriodKeyForDate(today).Interval()
		return start, dateOnly(end), nil
	case PresetYearToDate:
		return time.Date(today.Year(), time.January, 1, 0, 0, 0, 0, time.UTC), today, nil
	default:
		return time.Time{}, time.Time{}, domainerror.NewAnalyticsError(
			domainerror.ErrCodeInvalidPreset,
			"unknown range preset: "+string(preset),
			domainerror.ErrInvalidPreset,
		)
	}
}
