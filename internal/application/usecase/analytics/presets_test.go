package analytics

import (
	"errors"
	"testing"
	"time"

	domainerror "github.com/fintrack/analytics-backend/internal/domain/error"
)

func TestResolvePreset(t *testing.T) {
	// Fixed clock: 2025-04-10, mid-period of 2025-04.
	now := time.Date(2025, time.April, 10, 14, 30, 0, 0, time.UTC)

	t.Run("last 7 days", func(t *testing.T) {
		start, end, err := ResolvePreset(PresetLast7Days, now)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !start.Equal(onDay(2025, time.April, 4)) || !end.Equal(onDay(2025, time.April, 10)) {
			t.Errorf("range = [%v, %v], want [2025-04-04, 2025-04-10]", start, end)
		}
	})

	t.Run("last 30 days", func(t *testing.T) {
		start, end, err := ResolvePreset(PresetLast30Days, now)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !start.Equal(onDay(2025, time.March, 12)) || !end.Equal(onDay(2025, time.April, 10)) {
			t.Errorf("range = [%v, %v], want [2025-03-12, 2025-04-10]", start, end)
		}
	})

	t.Run("this month is the calendar month", func(t *testing.T) {
		start, end, err := ResolvePreset(PresetThisMonth, now)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !start.Equal(onDay(2025, time.April, 1)) || !end.Equal(onDay(2025, time.April, 30)) {
			t.Errorf("range = [%v, %v], want [2025-04-01, 2025-04-30]", start, end)
		}
	})

	t.Run("this period is the fiscal period", func(t *testing.T) {
		start, end, err := ResolvePreset(PresetThisPeriod, now)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !start.Equal(onDay(2025, time.March, 26)) || !end.Equal(onDay(2025, time.April, 25)) {
			t.Errorf("range = [%v, %v], want [2025-03-26, 2025-04-25]", start, end)
		}
	})

	t.Run("this period late in the month crosses into the next key", func(t *testing.T) {
		lateNow := time.Date(2025, time.April, 26, 8, 0, 0, 0, time.UTC)
		start, end, err := ResolvePreset(PresetThisPeriod, lateNow)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !start.Equal(onDay(2025, time.April, 26)) || !end.Equal(onDay(2025, time.May, 25)) {
			t.Errorf("range = [%v, %v], want [2025-04-26, 2025-05-25]", start, end)
		}
	})

	t.Run("year to date", func(t *testing.T) {
		start, end, err := ResolvePreset(PresetYearToDate, now)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !start.Equal(onDay(2025, time.January, 1)) || !end.Equal(onDay(2025, time.April, 10)) {
			t.Errorf("range = [%v, %v], want [2025-01-01, 2025-04-10]", start, end)
		}
	})

	t.Run("unknown preset is a typed domain error", func(t *testing.T) {
		_, _, err := ResolvePreset("last_fortnight", now)
		var analyticsErr *domainerror.AnalyticsError
		if !errors.As(err, &analyticsErr) {
			t.Fatalf("expected AnalyticsError, got %v", err)
		}
		if analyticsErr.Code != domainerror.ErrCodeInvalidPreset {
			t.Errorf("code = %s, want %s", analyticsErr.Code, domainerror.ErrCodeInvalidPreset)
		}
	})
}
