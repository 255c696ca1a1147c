package analytics

import (
	"github.com/shopspring/decimal"

	"github.com/fintrack/analytics-backend/internal/domain/valueobject"
)

// TrendPoint is one period's totals in a multi-period trend series. Values
// are period-local, not running totals.
type TrendPoint struct {
	Period  valueobject.PeriodKey `json:"period"`
	Label   string                `json:"label"`
	Income  decimal.Decimal       `json:"income"`
	Expense decimal.Decimal       `json:"expense"`
}

// BuildTrend assembles per-period income/expense totals for up to
// periodCount periods ending at endKey. Periods are drawn from the sorted
// list of periods with data under the wallet scope; when endKey has no data
// the series ends at the latest available period instead. Fewer periods than
// requested is valid near the start of history.
func BuildTrend(s Snapshot, endKey valueobject.PeriodKey, periodCount int, wallet valueobject.WalletFilter) []TrendPoint {
	keys := s.PeriodKeys(wallet)
	if len(keys) == 0 || periodCount == 0 {
		return []TrendPoint{}
	}

	endIdx := len(keys) - 1
	for i, k := range keys {
		if k == endKey {
			endIdx = i
			break
		}
	}

	startIdx := endIdx - periodCount + 1
	if startIdx < 0 {
		startIdx = 0
	}

	window := keys[startIdx : endIdx+1]
	points := make([]TrendPoint, 0, len(window))
	for _, key := range window {
		summary := Summarize(s.FilterByPeriod(key, wallet))
		points = append(points, TrendPoint{
			Period:  key,
			Label:   key.ShortLabel(),
			Income:  summary.IncomeTotal,
			Expense: summary.ExpenseTotal,
		})
	}
	return points
}
