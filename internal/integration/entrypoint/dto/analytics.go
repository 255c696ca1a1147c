// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/fintrack/analytics-backend/internal/application/usecase/analytics"
)

const dateLayout = "2006-01-02"

// ScopeResponse describes the resolved period or date range of a result.
type ScopeResponse struct {
	Period    string `json:"period,omitempty"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Label     string `json:"label"`
}

func toScopeResponse(scope analytics.ScopeInfo) ScopeResponse {
	out := ScopeResponse{
		StartDate: scope.StartDate.Format(dateLayout),
		EndDate:   scope.EndDate.Format(dateLayout),
		Label:     scope.Label,
	}
	if scope.Period != nil {
		out.Period = string(*scope.Period)
	}
	return out
}

// SummaryResponse represents the response for the summary API.
type SummaryResponse struct {
	Data SummaryData `json:"data"`
}

// SummaryData represents the data section of the summary response.
type SummaryData struct {
	Scope            ScopeResponse `json:"scope"`
	Wallet           string        `json:"wallet"`
	IncomeTotal      float64       `json:"income_total"`
	ExpenseTotal     float64       `json:"expense_total"`
	Balance          float64       `json:"balance"`
	IncomeCount      int           `json:"income_count"`
	ExpenseCount     int           `json:"expense_count"`
	SkippedMovements int           `json:"skipped_movements"`
}

// ToSummaryResponse converts a GetSummaryOutput to SummaryResponse DTO.
func ToSummaryResponse(output *analytics.GetSummaryOutput) SummaryResponse {
	return SummaryResponse{
		Data: SummaryData{
			Scope:            toScopeResponse(output.Scope),
			Wallet:           output.Wallet,
			IncomeTotal:      toFloat(output.Summary.IncomeTotal),
			ExpenseTotal:     toFloat(output.Summary.ExpenseTotal),
			Balance:          toFloat(output.Summary.Balance),
			IncomeCount:      output.Summary.IncomeCount,
			ExpenseCount:     output.Summary.ExpenseCount,
			SkippedMovements: output.SkippedMovements,
		},
	}
}

// BreakdownResponse represents the response for the category breakdown API.
type BreakdownResponse struct {
	Data BreakdownData `json:"data"`
}

// BreakdownData represents the data section of the breakdown response.
type BreakdownData struct {
	Scope            ScopeResponse      `json:"scope"`
	Wallet           string             `json:"wallet"`
	Categories       []CategoryResponse `json:"categories"`
	TotalExpenses    float64            `json:"total_expenses"`
	SkippedMovements int                `json:"skipped_movements"`
}

// CategoryResponse represents one category bucket in the breakdown.
type CategoryResponse struct {
	Name          string                `json:"name"`
	Total         float64               `json:"total"`
	Percentage    int                   `json:"percentage"`
	Subcategories []SubcategoryResponse `json:"subcategories"`
}

// SubcategoryResponse represents one subcategory bucket in the breakdown.
type SubcategoryResponse struct {
	Name       string   `json:"name"`
	Total      float64  `json:"total"`
	Percentage int      `json:"percentage"`
	Items      []string `json:"items"`
}

// ToBreakdownResponse converts a GetBreakdownOutput to BreakdownResponse DTO.
func ToBreakdownResponse(output *analytics.GetBreakdownOutput) BreakdownResponse {
	categories := make([]CategoryResponse, len(output.Breakdown.Categories))
	for i, cat := range output.Breakdown.Categories {
		subs := make([]SubcategoryResponse, len(cat.Subcategories))
		for j, sub := range cat.Subcategories {
			items := make([]string, len(sub.Items))
			for k, id := range sub.Items {
				items[k] = id.String()
			}
			subs[j] = SubcategoryResponse{
				Name:       sub.Name,
				Total:      toFloat(sub.Total),
				Percentage: sub.Percentage,
				Items:      items,
			}
		}
		categories[i] = CategoryResponse{
			Name:          cat.Name,
			Total:         toFloat(cat.Total),
			Percentage:    cat.Percentage,
			Subcategories: subs,
		}
	}

	return BreakdownResponse{
		Data: BreakdownData{
			Scope:            toScopeResponse(output.Scope),
			Wallet:           output.Wallet,
			Categories:       categories,
			TotalExpenses:    toFloat(output.Breakdown.TotalExpenses),
			SkippedMovements: output.SkippedMovements,
		},
	}
}

// TrendResponse represents the response for the trend API.
type TrendResponse struct {
	Data TrendData `json:"data"`
}

// TrendData carries the trend as parallel arrays, ready for multi-bar or
// line chart rendering.
type TrendData struct {
	EndPeriod        string    `json:"end_period"`
	Wallet           string    `json:"wallet"`
	Periods          []string  `json:"periods"`
	Labels           []string  `json:"labels"`
	Income           []float64 `json:"income"`
	Expense          []float64 `json:"expense"`
	SkippedMovements int       `json:"skipped_movements"`
}

// ToTrendResponse converts a GetTrendOutput to TrendResponse DTO.
func ToTrendResponse(output *analytics.GetTrendOutput) TrendResponse {
	n := len(output.Points)
	data := TrendData{
		EndPeriod:        string(output.EndPeriod),
		Wallet:           output.Wallet,
		Periods:          make([]string, n),
		Labels:           make([]string, n),
		Income:           make([]float64, n),
		Expense:          make([]float64, n),
		SkippedMovements: output.SkippedMovements,
	}
	for i, p := range output.Points {
		data.Periods[i] = string(p.Period)
		data.Labels[i] = p.Label
		data.Income[i] = toFloat(p.Income)
		data.Expense[i] = toFloat(p.Expense)
	}
	return TrendResponse{Data: data}
}

// DailyComparisonResponse represents the response for the daily comparison API.
type DailyComparisonResponse struct {
	Data DailyComparisonData `json:"data"`
}

// DailyComparisonData represents the data section of the daily comparison
// response. All series share the same length as Days.
type DailyComparisonData struct {
	Period                      string    `json:"period"`
	Label                       string    `json:"label"`
	Wallet                      string    `json:"wallet"`
	Days                        []int     `json:"days"`
	CurrentDaily                []float64 `json:"current_daily"`
	CurrentCumulative           []float64 `json:"current_cumulative"`
	HistoricalAverageDaily      []float64 `json:"historical_average_daily"`
	HistoricalAverageCumulative []float64 `json:"historical_average_cumulative"`
	HistoricalPeriods           int       `json:"historical_periods"`
	SkippedMovements            int       `json:"skipped_movements"`
}

// ToDailyComparisonResponse converts a GetDailyComparisonOutput to its DTO.
func ToDailyComparisonResponse(output *analytics.GetDailyComparisonOutput) DailyComparisonResponse {
	c := output.Comparison
	return DailyComparisonResponse{
		Data: DailyComparisonData{
			Period:                      string(output.Period),
			Label:                       output.Label,
			Wallet:                      output.Wallet,
			Days:                        c.Days,
			CurrentDaily:                toFloats(c.CurrentDaily),
			CurrentCumulative:           toFloats(c.CurrentCumulative),
			HistoricalAverageDaily:      toFloats(c.HistoricalAverageDaily),
			HistoricalAverageCumulative: toFloats(c.HistoricalAverageCumulative),
			HistoricalPeriods:           c.HistoricalPeriods,
			SkippedMovements:            output.SkippedMovements,
		},
	}
}

// InsightsResponse represents the response for the insights API.
type InsightsResponse struct {
	Data InsightsData `json:"data"`
}

// InsightsData represents the data section of the insights response.
type InsightsData struct {
	Period            string  `json:"period"`
	Label             string  `json:"label"`
	Wallet            string  `json:"wallet"`
	SavingsRate       int     `json:"savings_rate"`
	TopCategory       string  `json:"top_category"`
	TopCategoryAmount float64 `json:"top_category_amount"`
	PeriodAverage     float64 `json:"period_average"`
	PeriodCount       int     `json:"period_count"`
	SkippedMovements  int     `json:"skipped_movements"`
}

// ToInsightsResponse converts a GetInsightsOutput to InsightsResponse DTO.
func ToInsightsResponse(output *analytics.GetInsightsOutput) InsightsResponse {
	return InsightsResponse{
		Data: InsightsData{
			Period:            string(output.Period),
			Label:             output.Label,
			Wallet:            output.Wallet,
			SavingsRate:       output.Insights.SavingsRate,
			TopCategory:       output.Insights.TopCategory,
			TopCategoryAmount: toFloat(output.Insights.TopCategoryAmount),
			PeriodAverage:     toFloat(output.Insights.PeriodAverage),
			PeriodCount:       output.Insights.PeriodCount,
			SkippedMovements:  output.SkippedMovements,
		},
	}
}

// DataRangeResponse represents the response for the data range API.
type DataRangeResponse struct {
	Data DataRangeData `json:"data"`
}

// DataRangeData represents the data section of the data range response.
type DataRangeData struct {
	OldestDate     *string          `json:"oldest_date"`
	NewestDate     *string          `json:"newest_date"`
	TotalMovements int              `json:"total_movements"`
	HasData        bool             `json:"has_data"`
	Periods        []PeriodResponse `json:"periods"`
}

// PeriodResponse represents one fiscal period with data.
type PeriodResponse struct {
	Period string `json:"period"`
	Label  string `json:"label"`
}

// ToDataRangeResponse converts a GetDataRangeOutput to DataRangeResponse DTO.
func ToDataRangeResponse(output *analytics.GetDataRangeOutput) DataRangeResponse {
	periods := make([]PeriodResponse, len(output.Periods))
	for i, p := range output.Periods {
		periods[i] = PeriodResponse{Period: string(p.Period), Label: p.Label}
	}

	return DataRangeResponse{
		Data: DataRangeData{
			OldestDate:     formatDatePtr(output.OldestDate),
			NewestDate:     formatDatePtr(output.NewestDate),
			TotalMovements: output.TotalMovements,
			HasData:        output.HasData,
			Periods:        periods,
		},
	}
}

func toFloat(d decimal.Decimal) float64 {
	f, _ := d.Float64()
	return f
}

func toFloats(ds []decimal.Decimal) []float64 {
	out := make([]float64, len(ds))
	for i, d := range ds {
		out[i] = toFloat(d)
	}
	return out
}

func formatDatePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(dateLayout)
	return &s
}
