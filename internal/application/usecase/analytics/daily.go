package analytics

import (
	"github.com/shopspring/decimal"

	"github.com/fintrack/analytics-backend/internal/domain/valueobject"
)

// DailyComparison aligns the current period's daily expenses against the
// average of preceding periods on a common day-offset axis. All slices have
// the same length (the current period's day count) and are never nil, so
// chart renderers need no special-casing.
type DailyComparison struct {
	Days                        []int             `json:"days"`
	CurrentDaily                []decimal.Decimal `json:"current_daily"`
	CurrentCumulative           []decimal.Decimal `json:"current_cumulative"`
	HistoricalAverageDaily      []decimal.Decimal `json:"historical_average_daily"`
	HistoricalAverageCumulative []decimal.Decimal `json:"historical_average_cumulative"`
	HistoricalPeriods           int               `json:"historical_periods"`
}

// DailyExpenseSeries sums expense amounts per day offset within the period
// (offset 0 = period start, the 26th). The result length equals the
// period's day count; days without expenses hold zero.
func DailyExpenseSeries(s Snapshot, key valueobject.PeriodKey, wallet valueobject.WalletFilter) []decimal.Decimal {
	days := key.Days()

	offsets := make(map[string]int, len(days))
	for i, d := range days {
		offsets[d.Format("2006-01-02")] = i
	}

	series := zeroSeries(len(days))
	for _, m := range s.FilterByPeriod(key, wallet) {
		if !m.IsExpense() {
			continue
		}
		if offset, ok := offsets[m.Date.Format("2006-01-02")]; ok {
			series[offset] = series[offset].Add(m.Amount)
		}
	}
	return series
}

// CompareDailyExpenses builds the day-aligned comparison of the current
// period against up to periodCount immediately preceding periods with data.
//
// Historical periods can be shorter than the current one (months vary from
// 28 to 31 days). For day offsets past a short period's end, that period's
// last daily value stands in for the missing day, so a short month does not
// look artificially cheaper near its tail. Every historical period therefore
// contributes at every offset and the average denominator is constant.
func CompareDailyExpenses(s Snapshot, current valueobject.PeriodKey, periodCount int, wallet valueobject.WalletFilter) DailyComparison {
	currentDaily := DailyExpenseSeries(s, current, wallet)
	n := len(currentDaily)

	historical := precedingPeriods(s.PeriodKeys(wallet), current, periodCount)

	histSeries := make([][]decimal.Decimal, 0, len(historical))
	for _, key := range historical {
		histSeries = append(histSeries, DailyExpenseSeries(s, key, wallet))
	}

	averageDaily := zeroSeries(n)
	if len(histSeries) > 0 {
		count := decimal.NewFromInt(int64(len(histSeries)))
		for d := 0; d < n; d++ {
			sum := decimal.Zero
			for _, series := range histSeries {
				sum = sum.Add(valueAtOffset(series, d))
			}
			averageDaily[d] = sum.Div(count)
		}
	}

	return DailyComparison{
		Days:                        dayAxis(n),
		CurrentDaily:                currentDaily,
		CurrentCumulative:           cumulative(currentDaily),
		HistoricalAverageDaily:      averageDaily,
		HistoricalAverageCumulative: cumulative(averageDaily),
		HistoricalPeriods:           len(histSeries),
	}
}

// precedingPeriods selects up to periodCount keys strictly before current
// from the sorted ascending key list.
func precedingPeriods(keys []valueobject.PeriodKey, current valueobject.PeriodKey, periodCount int) []valueobject.PeriodKey {
	end := 0
	for end < len(keys) && keys[end] < current {
		end++
	}
	start := end - periodCount
	if start < 0 {
		start = 0
	}
	return keys[start:end]
}

// valueAtOffset returns the series value at the given day offset, reusing
// the last available day's value when the series is shorter.
func valueAtOffset(series []decimal.Decimal, offset int) decimal.Decimal {
	if offset < len(series) {
		return series[offset]
	}
	return series[len(series)-1]
}

// cumulative returns the running sum of a daily series.
func cumulative(daily []decimal.Decimal) []decimal.Decimal {
	out := make([]decimal.Decimal, len(daily))
	running := decimal.Zero
	for i, v := range daily {
		running = running.Add(v)
		out[i] = running
	}
	return out
}

// dayAxis returns the 1-based day-of-period labels [1..n].
func dayAxis(n int) []int {
	days := make([]int, n)
	for i := range days {
		days[i] = i + 1
	}
	return days
}

// zeroSeries returns a non-nil slice of n decimal zeros.
func zeroSeries(n int) []decimal.Decimal {
	series := make([]decimal.Decimal, n)
	for i := range series {
		series[i] = decimal.Zero
	}
	return series
}
