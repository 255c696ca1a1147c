// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/fintrack/analytics-backend/internal/application/usecase/analytics"
	domainerror "github.com/fintrack/analytics-backend/internal/domain/error"
	"github.com/fintrack/analytics-backend/internal/domain/valueobject"
	"github.com/fintrack/analytics-backend/internal/integration/entrypoint/dto"
	"github.com/fintrack/analytics-backend/internal/integration/entrypoint/middleware"
)

// AnalyticsDefaults holds the default window lengths for trend, comparison,
// and insight queries.
type AnalyticsDefaults struct {
	TrendPeriods      int
	ComparisonPeriods int
	InsightPeriods    int
}

// AnalyticsController handles the period analytics endpoints.
type AnalyticsController struct {
	getSummaryUseCase         *analytics.GetSummaryUseCase
	getBreakdownUseCase       *analytics.GetBreakdownUseCase
	getTrendUseCase           *analytics.GetTrendUseCase
	getDailyComparisonUseCase *analytics.GetDailyComparisonUseCase
	getInsightsUseCase        *analytics.GetInsightsUseCase
	getDataRangeUseCase       *analytics.GetDataRangeUseCase
	invalidateCacheUseCase    *analytics.InvalidateCacheUseCase
	defaults                  AnalyticsDefaults
}

// NewAnalyticsController creates a new analytics controller instance.
func NewAnalyticsController(
	getSummaryUseCase *analytics.GetSummaryUseCase,
	getBreakdownUseCase *analytics.GetBreakdownUseCase,
	getTrendUseCase *analytics.GetTrendUseCase,
	getDailyComparisonUseCase *analytics.GetDailyComparisonUseCase,
	getInsightsUseCase *analytics.GetInsightsUseCase,
	getDataRangeUseCase *analytics.GetDataRangeUseCase,
	invalidateCacheUseCase *analytics.InvalidateCacheUseCase,
	defaults AnalyticsDefaults,
) *AnalyticsController {
	return &AnalyticsController{
		getSummaryUseCase:         getSummaryUseCase,
		getBreakdownUseCase:       getBreakdownUseCase,
		getTrendUseCase:           getTrendUseCase,
		getDailyComparisonUseCase: getDailyComparisonUseCase,
		getInsightsUseCase:        getInsightsUseCase,
		getDataRangeUseCase:       getDataRangeUseCase,
		invalidateCacheUseCase:    invalidateCacheUseCase,
		defaults:                  defaults,
	}
}

// GetSummary handles GET /analytics/summary requests.
func (c *AnalyticsController) GetSummary(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	scope, ok := parseScope(ctx)
	if !ok {
		return
	}
	wallet, ok := parseWallet(ctx)
	if !ok {
		return
	}

	output, err := c.getSummaryUseCase.Execute(ctx.Request.Context(), analytics.GetSummaryInput{
		UserID: userID,
		Scope:  scope,
		Wallet: wallet,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToSummaryResponse(output))
}

// GetBreakdown handles GET /analytics/breakdown requests.
func (c *AnalyticsController) GetBreakdown(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	scope, ok := parseScope(ctx)
	if !ok {
		return
	}
	wallet, ok := parseWallet(ctx)
	if !ok {
		return
	}

	output, err := c.getBreakdownUseCase.Execute(ctx.Request.Context(), analytics.GetBreakdownInput{
		UserID: userID,
		Scope:  scope,
		Wallet: wallet,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToBreakdownResponse(output))
}

// GetTrend handles GET /analytics/trend requests.
func (c *AnalyticsController) GetTrend(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	period, ok := requirePeriod(ctx)
	if !ok {
		return
	}
	wallet, ok := parseWallet(ctx)
	if !ok {
		return
	}
	periods, ok := parsePeriodCount(ctx, c.defaults.TrendPeriods)
	if !ok {
		return
	}

	output, err := c.getTrendUseCase.Execute(ctx.Request.Context(), analytics.GetTrendInput{
		UserID:      userID,
		EndPeriod:   period,
		PeriodCount: periods,
		Wallet:      wallet,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToTrendResponse(output))
}

// GetDailyComparison handles GET /analytics/daily-comparison requests.
func (c *AnalyticsController) GetDailyComparison(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	period, ok := requirePeriod(ctx)
	if !ok {
		return
	}
	wallet, ok := parseWallet(ctx)
	if !ok {
		return
	}
	periods, ok := parsePeriodCount(ctx, c.defaults.ComparisonPeriods)
	if !ok {
		return
	}

	output, err := c.getDailyComparisonUseCase.Execute(ctx.Request.Context(), analytics.GetDailyComparisonInput{
		UserID:      userID,
		Period:      period,
		PeriodCount: periods,
		Wallet:      wallet,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToDailyComparisonResponse(output))
}

// GetInsights handles GET /analytics/insights requests.
func (c *AnalyticsController) GetInsights(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	period, ok := requirePeriod(ctx)
	if !ok {
		return
	}
	wallet, ok := parseWallet(ctx)
	if !ok {
		return
	}

	output, err := c.getInsightsUseCase.Execute(ctx.Request.Context(), analytics.GetInsightsInput{
		UserID:        userID,
		Period:        period,
		WindowPeriods: c.defaults.InsightPeriods,
		Wallet:        wallet,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToInsightsResponse(output))
}

// GetDataRange handles GET /analytics/data-range requests.
func (c *AnalyticsController) GetDataRange(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	output, err := c.getDataRangeUseCase.Execute(ctx.Request.Context(), analytics.GetDataRangeInput{
		UserID: userID,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToDataRangeResponse(output))
}

// InvalidateCache handles DELETE /analytics/cache requests. The CRUD service
// calls this after creating, updating, or deleting a movement.
func (c *AnalyticsController) InvalidateCache(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	err := c.invalidateCacheUseCase.Execute(ctx.Request.Context(), analytics.InvalidateCacheInput{
		UserID: userID,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// requireUser extracts the authenticated user or answers 401.
func requireUser(ctx *gin.Context) (uuid.UUID, bool) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return uuid.Nil, false
	}
	return userID, true
}

// parseScope reads the period, preset, or start_date/end_date parameters.
// Scope combination rules are enforced by the use case.
func parseScope(ctx *gin.Context) (analytics.Scope, bool) {
	scope := analytics.Scope{}

	if periodStr := ctx.Query("period"); periodStr != "" {
		key, err := valueobject.ParsePeriodKey(periodStr)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid period format, expected YYYY-MM",
				Code:  string(domainerror.ErrCodeInvalidPeriodKey),
			})
			return analytics.Scope{}, false
		}
		scope.Period = &key
	}

	scope.Preset = analytics.RangePreset(ctx.Query("preset"))

	if startStr := ctx.Query("start_date"); startStr != "" {
		start, ok := parseDate(ctx, startStr, "start_date")
		if !ok {
			return analytics.Scope{}, false
		}
		scope.StartDate = start
	}
	if endStr := ctx.Query("end_date"); endStr != "" {
		end, ok := parseDate(ctx, endStr, "end_date")
		if !ok {
			return analytics.Scope{}, false
		}
		scope.EndDate = end
	}

	return scope, true
}

// requirePeriod reads the mandatory period parameter.
func requirePeriod(ctx *gin.Context) (valueobject.PeriodKey, bool) {
	periodStr := ctx.Query("period")
	if periodStr == "" {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "period is required",
			Code:  string(domainerror.ErrCodeMissingPeriod),
		})
		return "", false
	}

	key, err := valueobject.ParsePeriodKey(periodStr)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid period format, expected YYYY-MM",
			Code:  string(domainerror.ErrCodeInvalidPeriodKey),
		})
		return "", false
	}
	return key, true
}

// parseWallet reads the wallet filter parameter, defaulting to all wallets.
func parseWallet(ctx *gin.Context) (valueobject.WalletFilter, bool) {
	wallet, err := valueobject.ParseWalletFilter(ctx.Query("wallet"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "wallet must be \"all\" or a wallet ID",
			Code:  string(domainerror.ErrCodeInvalidWalletFilter),
		})
		return valueobject.WalletFilter{}, false
	}
	return wallet, true
}

// parsePeriodCount reads the periods window parameter.
func parsePeriodCount(ctx *gin.Context, defaultCount int) (int, bool) {
	periodsStr := ctx.DefaultQuery("periods", strconv.Itoa(defaultCount))
	periods, err := strconv.Atoi(periodsStr)
	if err != nil || periods < 0 {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "periods must be a non-negative integer",
			Code:  string(domainerror.ErrCodeNegativePeriodCount),
		})
		return 0, false
	}
	return periods, true
}

// parseDate parses a YYYY-MM-DD query value.
func parseDate(ctx *gin.Context, value, field string) (time.Time, bool) {
	date, err := time.Parse("2006-01-02", value)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid " + field + " format, expected YYYY-MM-DD",
			Code:  string(domainerror.ErrCodeInvalidDateFormat),
		})
		return time.Time{}, false
	}
	return date, true
}

// respondError maps domain errors to HTTP responses.
func respondError(ctx *gin.Context, err error) {
	var analyticsErr *domainerror.AnalyticsError
	if errors.As(err, &analyticsErr) {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: analyticsErr.Message,
			Code:  string(analyticsErr.Code),
		})
		return
	}

	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "Internal server error",
		Code:  string(domainerror.ErrCodeAnalyticsInternalError),
	})
}
