package analytics

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	domainerror "github.com/fintrack/analytics-backend/internal/domain/error"
	"github.com/fintrack/analytics-backend/internal/domain/valueobject"
)

// GetDailyComparisonInput represents the input for the day-aligned
// comparison of the current period against historical averages.
type GetDailyComparisonInput struct {
	UserID      uuid.UUID
	Period      valueobject.PeriodKey
	PeriodCount int
	Wallet      valueobject.WalletFilter
}

// GetDailyComparisonOutput represents the output of the daily comparison.
type GetDailyComparisonOutput struct {
	Period           valueobject.PeriodKey `json:"period"`
	Label            string                `json:"label"`
	Wallet           string                `json:"wallet"`
	Comparison       DailyComparison       `json:"comparison"`
	SkippedMovements int                   `json:"skipped_movements"`
}

// GetDailyComparisonUseCase builds cumulative daily expense curves for the
// current period and the average of preceding periods.
type GetDailyComparisonUseCase struct {
	movementRepo MovementRepository
	cache        ResultCache
}

// NewGetDailyComparisonUseCase creates a new GetDailyComparisonUseCase instance.
func NewGetDailyComparisonUseCase(movementRepo MovementRepository, cache ResultCache) *GetDailyComparisonUseCase {
	return &GetDailyComparisonUseCase{
		movementRepo: movementRepo,
		cache:        cache,
	}
}

// Execute computes the daily comparison for the given period. An empty
// period or empty history yields zero-filled series of the period's length.
func (uc *GetDailyComparisonUseCase) Execute(
	ctx context.Context,
	input GetDailyComparisonInput,
) (*GetDailyComparisonOutput, error) {
	if input.PeriodCount < 0 {
		return nil, domainerror.NewAnalyticsError(
			domainerror.ErrCodeNegativePeriodCount,
			"period count must not be negative",
			domainerror.ErrNegativePeriodCount,
		)
	}

	scope := fmt.Sprintf("%s:n%d", input.Period, input.PeriodCount)
	cacheKey := CacheKey(input.UserID, KindDailyComparison, scope, input.Wallet)
	var cached GetDailyComparisonOutput
	if cacheGet(ctx, uc.cache, cacheKey, &cached) {
		return &cached, nil
	}

	snapshot, err := loadSnapshot(ctx, uc.movementRepo, input.UserID)
	if err != nil {
		return nil, err
	}

	output := GetDailyComparisonOutput{
		Period:           input.Period,
		Label:            input.Period.Label(),
		Wallet:           input.Wallet.String(),
		Comparison:       CompareDailyExpenses(snapshot, input.Period, input.PeriodCount, input.Wallet),
		SkippedMovements: snapshot.Skipped,
	}

	cacheSet(ctx, uc.cache, cacheKey, &output)
	return &output, nil
}
