package analytics

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/fintrack/analytics-backend/internal/domain/valueobject"
)

// GetSummaryInput represents the input for getting a period or range summary.
type GetSummaryInput struct {
	UserID uuid.UUID
	Scope  Scope
	Wallet valueobject.WalletFilter
}

// GetSummaryOutput represents the output of getting a summary.
type GetSummaryOutput struct {
	Scope            ScopeInfo `json:"scope"`
	Wallet           string    `json:"wallet"`
	Summary          Summary   `json:"summary"`
	SkippedMovements int       `json:"skipped_movements"`
}

// GetSummaryUseCase computes income/expense/balance totals for a scope.
type GetSummaryUseCase struct {
	movementRepo MovementRepository
	cache        ResultCache
	now          func() time.Time
}

// NewGetSummaryUseCase creates a new GetSummaryUseCase instance.
func NewGetSummaryUseCase(movementRepo MovementRepository, cache ResultCache) *GetSummaryUseCase {
	return &GetSummaryUseCase{
		movementRepo: movementRepo,
		cache:        cache,
		now:          time.Now,
	}
}

// Execute computes the summary for the given scope and wallet filter.
func (uc *GetSummaryUseCase) Execute(
	ctx context.Context,
	input GetSummaryInput,
) (*GetSummaryOutput, error) {
	scope, err := resolveScope(input.Scope, uc.now())
	if err != nil {
		return nil, err
	}

	cacheKey := CacheKey(input.UserID, KindSummary, scope.cacheScope, input.Wallet)
	var cached GetSummaryOutput
	if cacheGet(ctx, uc.cache, cacheKey, &cached) {
		return &cached, nil
	}

	snapshot, err := loadSnapshot(ctx, uc.movementRepo, input.UserID)
	if err != nil {
		return nil, err
	}

	output := GetSummaryOutput{
		Scope:            scope.info,
		Wallet:           input.Wallet.String(),
		Summary:          Summarize(scope.records(snapshot, input.Wallet)),
		SkippedMovements: snapshot.Skipped,
	}

	cacheSet(ctx, uc.cache, cacheKey, &output)
	return &output, nil
}
