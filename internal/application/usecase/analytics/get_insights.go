package analytics

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	domainerror "github.com/fintrack/analytics-backend/internal/domain/error"
	"github.com/fintrack/analytics-backend/internal/domain/valueobject"
)

// GetInsightsInput represents the input for getting period insights.
type GetInsightsInput struct {
	UserID        uuid.UUID
	Period        valueobject.PeriodKey
	WindowPeriods int
	Wallet        valueobject.WalletFilter
}

// GetInsightsOutput represents the output of getting period insights.
type GetInsightsOutput struct {
	Period           valueobject.PeriodKey `json:"period"`
	Label            string                `json:"label"`
	Wallet           string                `json:"wallet"`
	Insights         Insights              `json:"insights"`
	SkippedMovements int                   `json:"skipped_movements"`
}

// GetInsightsUseCase derives scalar indicators (savings rate, top category,
// rolling period average) by composing the aggregator over a period window.
type GetInsightsUseCase struct {
	movementRepo MovementRepository
	cache        ResultCache
}

// NewGetInsightsUseCase creates a new GetInsightsUseCase instance.
func NewGetInsightsUseCase(movementRepo MovementRepository, cache ResultCache) *GetInsightsUseCase {
	return &GetInsightsUseCase{
		movementRepo: movementRepo,
		cache:        cache,
	}
}

// Execute computes insights for the given period and wallet filter.
func (uc *GetInsightsUseCase) Execute(
	ctx context.Context,
	input GetInsightsInput,
) (*GetInsightsOutput, error) {
	if input.WindowPeriods < 1 {
		return nil, domainerror.NewAnalyticsError(
			domainerror.ErrCodeNegativePeriodCount,
			"insight window must cover at least the current period",
			domainerror.ErrNegativePeriodCount,
		)
	}

	scope := fmt.Sprintf("%s:n%d", input.Period, input.WindowPeriods)
	cacheKey := CacheKey(input.UserID, KindInsights, scope, input.Wallet)
	var cached GetInsightsOutput
	if cacheGet(ctx, uc.cache, cacheKey, &cached) {
		return &cached, nil
	}

	snapshot, err := loadSnapshot(ctx, uc.movementRepo, input.UserID)
	if err != nil {
		return nil, err
	}

	output := GetInsightsOutput{
		Period:           input.Period,
		Label:            input.Period.Label(),
		Wallet:           input.Wallet.String(),
		Insights:         ComputeInsights(snapshot, input.Period, input.WindowPeriods, input.Wallet),
		SkippedMovements: snapshot.Skipped,
	}

	cacheSet(ctx, uc.cache, cacheKey, &output)
	return &output, nil
}
