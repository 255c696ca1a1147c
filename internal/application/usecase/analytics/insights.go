package analytics

import (
	"github.com/shopspring/decimal"

	"github.com/fintrack/analytics-backend/internal/domain/valueobject"
)

// NoTopCategory is reported when a period has no expenses at all.
const NoTopCategory = "-"

// Insights holds the derived scalar indicators for a period.
type Insights struct {
	SavingsRate       int             `json:"savings_rate"`
	TopCategory       string          `json:"top_category"`
	TopCategoryAmount decimal.Decimal `json:"top_category_amount"`
	PeriodAverage     decimal.Decimal `json:"period_average"`
	PeriodCount       int             `json:"period_count"`
}

// ComputeInsights derives the savings rate, top spending category, and
// rolling period-average expense for the given period.
//
// The savings rate is (income - expense) / income as a half-up integer
// percentage, 0 when there is no income. The period average is the mean
// expense total over the current period plus up to windowPeriods-1
// immediately preceding periods with data, rounded to the nearest currency
// unit; PeriodCount reports how many periods actually contributed.
func ComputeInsights(s Snapshot, key valueobject.PeriodKey, windowPeriods int, wallet valueobject.WalletFilter) Insights {
	summary := Summarize(s.FilterByPeriod(key, wallet))

	savingsRate := 0
	if summary.IncomeTotal.IsPositive() {
		savingsRate = percentOf(summary.Balance, summary.IncomeTotal)
	}

	topCategory := NoTopCategory
	topAmount := decimal.Zero
	breakdown := BreakdownByCategory(s.FilterByPeriod(key, wallet))
	if len(breakdown.Categories) > 0 {
		// Categories are sorted by total descending.
		topCategory = breakdown.Categories[0].Name
		topAmount = breakdown.Categories[0].Total
	}

	preceding := []valueobject.PeriodKey{}
	if windowPeriods > 1 {
		preceding = precedingPeriods(s.PeriodKeys(wallet), key, windowPeriods-1)
	}

	// The current period always contributes, even when empty.
	total := summary.ExpenseTotal
	count := 1
	for _, prev := range preceding {
		total = total.Add(Summarize(s.FilterByPeriod(prev, wallet)).ExpenseTotal)
		count++
	}
	average := total.Div(decimal.NewFromInt(int64(count))).Round(0)

	return Insights{
		SavingsRate:       savingsRate,
		TopCategory:       topCategory,
		TopCategoryAmount: topAmount,
		PeriodAverage:     average,
		PeriodCount:       count,
	}
}
