package analytics

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/fintrack/analytics-backend/internal/domain/entity"
	"github.com/fintrack/analytics-backend/internal/domain/valueobject"
)

func TestDailyExpenseSeries(t *testing.T) {
	all := valueobject.AllWallets()

	t.Run("sums per day offset from the period start", func(t *testing.T) {
		// Period 2025-05 runs Apr 26 - May 25 (30 days).
		s := NewSnapshot([]entity.Movement{
			anExpense("10.00", onDay(2025, time.April, 26)).build(), // offset 0
			anExpense("5.00", onDay(2025, time.April, 26)).build(),  // offset 0
			anExpense("7.00", onDay(2025, time.May, 25)).build(),    // offset 29
			anIncome("100.00", onDay(2025, time.May, 1)).build(),    // ignored
		})

		series := DailyExpenseSeries(s, "2025-05", all)
		if len(series) != 30 {
			t.Fatalf("len = %d, want 30", len(series))
		}
		if !series[0].Equal(mustDecimal("15.00")) {
			t.Errorf("series[0] = %s, want 15.00", series[0])
		}
		if !series[29].Equal(mustDecimal("7.00")) {
			t.Errorf("series[29] = %s, want 7.00", series[29])
		}
		if !series[10].IsZero() {
			t.Errorf("series[10] = %s, want 0", series[10])
		}
	})

	t.Run("empty period yields zero-filled series of the period length", func(t *testing.T) {
		series := DailyExpenseSeries(NewSnapshot(nil), "2025-08", all)
		if len(series) != 31 {
			t.Fatalf("len = %d, want 31", len(series))
		}
		for i, v := range series {
			if !v.IsZero() {
				t.Fatalf("series[%d] = %s, want 0", i, v)
			}
		}
	})
}

func TestCompareDailyExpenses(t *testing.T) {
	all := valueobject.AllWallets()

	t.Run("short history extends by its last daily value", func(t *testing.T) {
		wallet := uuid.New()
		// Historical period 2025-07 (Jun 26 - Jul 25, 30 days) at a flat
		// 10.00/day; current period 2025-08 (Jul 26 - Aug 25, 31 days).
		movements := flatDailyExpenses("10.00",
			onDay(2025, time.June, 26), onDay(2025, time.July, 25), wallet)
		movements = append(movements,
			anExpense("20.00", onDay(2025, time.July, 26)).inWallet(wallet).build())
		s := NewSnapshot(movements)

		c := CompareDailyExpenses(s, "2025-08", 6, all)

		if c.HistoricalPeriods != 1 {
			t.Fatalf("HistoricalPeriods = %d, want 1", c.HistoricalPeriods)
		}
		if len(c.Days) != 31 {
			t.Fatalf("len(Days) = %d, want 31 (current period length)", len(c.Days))
		}

		// The 31st day has no counterpart in the 30-day history, so the last
		// historical value stands in and the average stays flat.
		for d := 0; d < 31; d++ {
			if !c.HistoricalAverageDaily[d].Equal(mustDecimal("10.00")) {
				t.Fatalf("HistoricalAverageDaily[%d] = %s, want 10.00", d, c.HistoricalAverageDaily[d])
			}
		}
		if !c.HistoricalAverageCumulative[30].Equal(mustDecimal("310.00")) {
			t.Errorf("final historical cumulative = %s, want 310.00", c.HistoricalAverageCumulative[30])
		}

		if !c.CurrentDaily[0].Equal(mustDecimal("20.00")) {
			t.Errorf("CurrentDaily[0] = %s, want 20.00", c.CurrentDaily[0])
		}
		if !c.CurrentCumulative[30].Equal(mustDecimal("20.00")) {
			t.Errorf("final current cumulative = %s, want 20.00", c.CurrentCumulative[30])
		}
	})

	t.Run("averages over the historical period count", func(t *testing.T) {
		wallet := uuid.New()
		movements := []entity.Movement{
			// 2025-06 (May 26 - Jun 25): one 30.00 expense on day offset 0.
			anExpense("30.00", onDay(2025, time.May, 26)).inWallet(wallet).build(),
			// 2025-07 (Jun 26 - Jul 25): one 10.00 expense on day offset 0.
			anExpense("10.00", onDay(2025, time.June, 26)).inWallet(wallet).build(),
			// Current period 2025-08 marker.
			anExpense("1.00", onDay(2025, time.August, 1)).inWallet(wallet).build(),
		}
		s := NewSnapshot(movements)

		c := CompareDailyExpenses(s, "2025-08", 6, all)
		if c.HistoricalPeriods != 2 {
			t.Fatalf("HistoricalPeriods = %d, want 2", c.HistoricalPeriods)
		}
		if !c.HistoricalAverageDaily[0].Equal(mustDecimal("20.00")) {
			t.Errorf("HistoricalAverageDaily[0] = %s, want 20.00", c.HistoricalAverageDaily[0])
		}
	})

	t.Run("only periods strictly before the current one count", func(t *testing.T) {
		s := NewSnapshot([]entity.Movement{
			anExpense("10.00", onDay(2025, time.August, 1)).build(),     // current 2025-08
			anExpense("10.00", onDay(2025, time.September, 1)).build(),  // later period
		})
		c := CompareDailyExpenses(s, "2025-08", 6, all)
		if c.HistoricalPeriods != 0 {
			t.Errorf("HistoricalPeriods = %d, want 0", c.HistoricalPeriods)
		}
	})

	t.Run("period count bounds the history window", func(t *testing.T) {
		movements := []entity.Movement{
			anExpense("100.00", onDay(2025, time.March, 1)).build(), // 2025-03
			anExpense("10.00", onDay(2025, time.April, 1)).build(),  // 2025-04
			anExpense("10.00", onDay(2025, time.May, 1)).build(),    // 2025-05
		}
		s := NewSnapshot(movements)

		c := CompareDailyExpenses(s, "2025-06", 2, all)
		if c.HistoricalPeriods != 2 {
			t.Errorf("HistoricalPeriods = %d, want 2 (2025-04 and 2025-05)", c.HistoricalPeriods)
		}
	})

	t.Run("no data yields zero series with defined shape", func(t *testing.T) {
		c := CompareDailyExpenses(NewSnapshot(nil), "2025-05", 6, all)

		if len(c.Days) != 30 {
			t.Fatalf("len(Days) = %d, want 30", len(c.Days))
		}
		if c.Days[0] != 1 || c.Days[29] != 30 {
			t.Errorf("day axis = [%d..%d], want [1..30]", c.Days[0], c.Days[29])
		}
		for i := range c.Days {
			if !c.CurrentDaily[i].IsZero() || !c.HistoricalAverageDaily[i].IsZero() {
				t.Fatalf("expected zero series at index %d", i)
			}
		}
		if c.HistoricalPeriods != 0 {
			t.Errorf("HistoricalPeriods = %d, want 0", c.HistoricalPeriods)
		}
	})

	t.Run("cumulative series are monotonically non-decreasing", func(t *testing.T) {
		wallet := uuid.New()
		movements := flatDailyExpenses("3.50",
			onDay(2025, time.April, 26), onDay(2025, time.May, 25), wallet)
		movements = append(movements, flatDailyExpenses("2.00",
			onDay(2025, time.May, 26), onDay(2025, time.June, 10), wallet)...)
		s := NewSnapshot(movements)

		c := CompareDailyExpenses(s, "2025-06", 6, all)
		for i := 1; i < len(c.Days); i++ {
			if c.CurrentCumulative[i].LessThan(c.CurrentCumulative[i-1]) {
				t.Fatalf("CurrentCumulative decreases at %d", i)
			}
			if c.HistoricalAverageCumulative[i].LessThan(c.HistoricalAverageCumulative[i-1]) {
				t.Fatalf("HistoricalAverageCumulative decreases at %d", i)
			}
		}
	})
}
