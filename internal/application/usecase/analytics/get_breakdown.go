package analytics

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/fintrack/analytics-backend/internal/domain/valueobject"
)

// GetBreakdownInput represents the input for getting a category breakdown.
type GetBreakdownInput struct {
	UserID uuid.UUID
	Scope  Scope
	Wallet valueobject.WalletFilter
}

// GetBreakdownOutput represents the output of getting a category breakdown.
type GetBreakdownOutput struct {
	Scope            ScopeInfo `json:"scope"`
	Wallet           string    `json:"wallet"`
	Breakdown        Breakdown `json:"breakdown"`
	SkippedMovements int       `json:"skipped_movements"`
}

// GetBreakdownUseCase computes the two-level category/subcategory expense
// breakdown for a scope.
type GetBreakdownUseCase struct {
	movementRepo MovementRepository
	cache        ResultCache
	now          func() time.Time
}

// NewGetBreakdownUseCase creates a new GetBreakdownUseCase instance.
func NewGetBreakdownUseCase(movementRepo MovementRepository, cache ResultCache) *GetBreakdownUseCase {
	return &GetBreakdownUseCase{
		movementRepo: movementRepo,
		cache:        cache,
		now:          time.Now,
	}
}

// Execute computes the category breakdown for the given scope and wallet.
func (uc *GetBreakdownUseCase) Execute(
	ctx context.Context,
	input GetBreakdownInput,
) (*GetBreakdownOutput, error) {
	scope, err := resolveScope(input.Scope, uc.now())
	if err != nil {
		return nil, err
	}

	cacheKey := CacheKey(input.UserID, KindBreakdown, scope.cacheScope, input.Wallet)
	var cached GetBreakdownOutput
	if cacheGet(ctx, uc.cache, cacheKey, &cached) {
		return &cached, nil
	}

	snapshot, err := loadSnapshot(ctx, uc.movementRepo, input.UserID)
	if err != nil {
		return nil, err
	}

	output := GetBreakdownOutput{
		Scope:            scope.info,
		Wallet:           input.Wallet.String(),
		Breakdown:        BreakdownByCategory(scope.records(snapshot, input.Wallet)),
		SkippedMovements: snapshot.Skipped,
	}

	cacheSet(ctx, uc.cache, cacheKey, &output)
	return &output, nil
}
