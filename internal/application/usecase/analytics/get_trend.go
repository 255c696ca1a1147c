package analytics

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	domainerror "github.com/fintrack/analytics-backend/internal/domain/error"
	"github.com/fintrack/analytics-backend/internal/domain/valueobject"
)

// GetTrendInput represents the input for getting a multi-period trend.
type GetTrendInput struct {
	UserID      uuid.UUID
	EndPeriod   valueobject.PeriodKey
	PeriodCount int
	Wallet      valueobject.WalletFilter
}

// GetTrendOutput represents the output of getting a multi-period trend.
type GetTrendOutput struct {
	EndPeriod        valueobject.PeriodKey `json:"end_period"`
	Wallet           string                `json:"wallet"`
	Points           []TrendPoint          `json:"points"`
	SkippedMovements int                   `json:"skipped_movements"`
}

// GetTrendUseCase assembles per-period income/expense series for trend
// charts.
type GetTrendUseCase struct {
	movementRepo MovementRepository
	cache        ResultCache
}

// NewGetTrendUseCase creates a new GetTrendUseCase instance.
func NewGetTrendUseCase(movementRepo MovementRepository, cache ResultCache) *GetTrendUseCase {
	return &GetTrendUseCase{
		movementRepo: movementRepo,
		cache:        cache,
	}
}

// Execute computes the trend series ending at the given period. The window
// is clamped to available history; fewer points than requested is valid.
func (uc *GetTrendUseCase) Execute(
	ctx context.Context,
	input GetTrendInput,
) (*GetTrendOutput, error) {
	if input.PeriodCount < 0 {
		return nil, domainerror.NewAnalyticsError(
			domainerror.ErrCodeNegativePeriodCount,
			"period count must not be negative",
			domainerror.ErrNegativePeriodCount,
		)
	}

	scope := fmt.Sprintf("%s:n%d", input.EndPeriod, input.PeriodCount)
	cacheKey := CacheKey(input.UserID, KindTrend, scope, input.Wallet)
	var cached GetTrendOutput
	if cacheGet(ctx, uc.cache, cacheKey, &cached) {
		return &cached, nil
	}

	snapshot, err := loadSnapshot(ctx, uc.movementRepo, input.UserID)
	if err != nil {
		return nil, err
	}

	output := GetTrendOutput{
		EndPeriod:        input.EndPeriod,
		Wallet:           input.Wallet.String(),
		Points:           BuildTrend(snapshot, input.EndPeriod, input.PeriodCount, input.Wallet),
		SkippedMovements: snapshot.Skipped,
	}

	cacheSet(ctx, uc.cache, cacheKey, &output)
	return &output, nil
}
