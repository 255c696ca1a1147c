package analytics

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/fintrack/analytics-backend/internal/domain/entity"
)

// MovementRepository defines the read-only interface to the movement store.
// The CRUD application owns the records; the engine only takes per-request
// snapshots through this interface and never writes.
type MovementRepository interface {
	// GetMovements returns a snapshot of the user's movement history,
	// ordered by date ascending.
	GetMovements(ctx context.Context, userID uuid.UUID) ([]entity.Movement, error)

	// GetDataRange returns the date boundaries of the user's movements.
	GetDataRange(ctx context.Context, userID uuid.UUID) (*DataRange, error)
}

// DataRange represents the date boundaries of a user's movement history.
type DataRange struct {
	OldestDate     *time.Time
	NewestDate     *time.Time
	TotalMovements int
}
