package analytics

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// InvalidateCacheInput represents the input for cache invalidation.
type InvalidateCacheInput struct {
	UserID uuid.UUID
}

// InvalidateCacheUseCase drops every cached aggregate for a user. The CRUD
// application calls this after any movement mutation; besides that, entries
// simply age out through the TTL.
type InvalidateCacheUseCase struct {
	cache ResultCache
}

// NewInvalidateCacheUseCase creates a new InvalidateCacheUseCase instance.
func NewInvalidateCacheUseCase(cache ResultCache) *InvalidateCacheUseCase {
	return &InvalidateCacheUseCase{
		cache: cache,
	}
}

// Execute invalidates all cached analytics results for the user.
func (uc *InvalidateCacheUseCase) Execute(ctx context.Context, input InvalidateCacheInput) error {
	if uc.cache == nil {
		return nil
	}
	if err := uc.cache.InvalidateUser(ctx, input.UserID); err != nil {
		return fmt.Errorf("failed to invalidate analytics cache: %w", err)
	}
	return nil
}
