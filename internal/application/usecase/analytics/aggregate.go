package analytics

import (
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fintrack/analytics-backend/internal/domain/entity"
)

// UncategorizedName is the bucket for expenses without a category.
const UncategorizedName = "Uncategorized"

// DefaultSubcategoryName is the bucket for expenses without a subcategory.
const DefaultSubcategoryName = "General"

// Summary holds the headline totals for a set of movements. It is defined
// for the empty set (all fields zero).
type Summary struct {
	IncomeTotal  decimal.Decimal `json:"income_total"`
	ExpenseTotal decimal.Decimal `json:"expense_total"`
	Balance      decimal.Decimal `json:"balance"`
	IncomeCount  int             `json:"income_count"`
	ExpenseCount int             `json:"expense_count"`
}

// Summarize partitions movements by kind and sums their amounts.
// Balance is income minus expense.
func Summarize(movements []entity.Movement) Summary {
	s := Summary{
		IncomeTotal:  decimal.Zero,
		ExpenseTotal: decimal.Zero,
	}
	for _, m := range movements {
		switch m.Kind {
		case entity.MovementKindIncome:
			s.IncomeTotal = s.IncomeTotal.Add(m.Amount)
			s.IncomeCount++
		case entity.MovementKindExpense:
			s.ExpenseTotal = s.ExpenseTotal.Add(m.Amount)
			s.ExpenseCount++
		}
	}
	s.Balance = s.IncomeTotal.Sub(s.ExpenseTotal)
	return s
}

// SubcategoryBreakdown is one subcategory bucket inside a category. The
// percentage is relative to the category total.
type SubcategoryBreakdown struct {
	Name       string          `json:"name"`
	Total      decimal.Decimal `json:"total"`
	Percentage int             `json:"percentage"`
	Items      []uuid.UUID     `json:"items"`
}

// CategoryBreakdown is one category bucket. The percentage is relative to
// the total expenses of the filtered set.
type CategoryBreakdown struct {
	Name          string                 `json:"name"`
	Total         decimal.Decimal        `json:"total"`
	Percentage    int                    `json:"percentage"`
	Subcategories []SubcategoryBreakdown `json:"subcategories"`
}

// Breakdown is the two-level category/subcategory grouping of expenses.
// Category totals are exact; only percentages are rounded, so the category
// totals always sum to TotalExpenses.
type Breakdown struct {
	Categories    []CategoryBreakdown `json:"categories"`
	TotalExpenses decimal.Decimal     `json:"total_expenses"`
}

// BreakdownByCategory groups expense movements by category, then by
// subcategory. Non-expense movements are ignored. Buckets are sorted by
// total descending, name ascending on ties, so the output is deterministic.
func BreakdownByCategory(movements []entity.Movement) Breakdown {
	type subBucket struct {
		total decimal.Decimal
		items []uuid.UUID
	}
	type catBucket struct {
		total decimal.Decimal
		subs  map[string]*subBucket
	}

	buckets := make(map[string]*catBucket)
	totalExpenses := decimal.Zero

	for _, m := range movements {
		if !m.IsExpense() {
			continue
		}

		category := m.Category
		if category == "" {
			category = UncategorizedName
		}
		subcategory := DefaultSubcategoryName
		if m.Subcategory != nil && *m.Subcategory != "" {
			subcategory = *m.Subcategory
		}

		cb, ok := buckets[category]
		if !ok {
			cb = &catBucket{total: decimal.Zero, subs: make(map[string]*subBucket)}
			buckets[category] = cb
		}
		sb, ok := cb.subs[subcategory]
		if !ok {
			sb = &subBucket{total: decimal.Zero}
			cb.subs[subcategory] = sb
		}

		cb.total = cb.total.Add(m.Amount)
		sb.total = sb.total.Add(m.Amount)
		sb.items = append(sb.items, m.ID)
		totalExpenses = totalExpenses.Add(m.Amount)
	}

	categories := make([]CategoryBreakdown, 0, len(buckets))
	for name, cb := range buckets {
		subs := make([]SubcategoryBreakdown, 0, len(cb.subs))
		for subName, sb := range cb.subs {
			subs = append(subs, SubcategoryBreakdown{
				Name:       subName,
				Total:      sb.total,
				Percentage: percentOf(sb.total, cb.total),
				Items:      sb.items,
			})
		}
		sortBreakdown(subs, func(b SubcategoryBreakdown) (decimal.Decimal, string) {
			return b.Total, b.Name
		})

		categories = append(categories, CategoryBreakdown{
			Name:          name,
			Total:         cb.total,
			Percentage:    percentOf(cb.total, totalExpenses),
			Subcategories: subs,
		})
	}
	sortBreakdown(categories, func(b CategoryBreakdown) (decimal.Decimal, string) {
		return b.Total, b.Name
	})

	return Breakdown{Categories: categories, TotalExpenses: totalExpenses}
}

// percentOf returns part/whole as a half-up rounded integer percentage.
// A zero whole yields 0, never a division by zero.
func percentOf(part, whole decimal.Decimal) int {
	if whole.IsZero() {
		return 0
	}
	pct := part.Mul(decimal.NewFromInt(100)).Div(whole).Round(0)
	return int(pct.IntPart())
}

// sortBreakdown orders buckets by total descending, name ascending on ties.
func sortBreakdown[T any](buckets []T, key func(T) (decimal.Decimal, string)) {
	sort.Slice(buckets, func(i, j int) bool {
		ti, ni := key(buckets[i])
		tj, nj := key(buckets[j])
		if !ti.Equal(tj) {
			return ti.GreaterThan(tj)
		}
		return ni < nj
	})
}
