// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fintrack/analytics-backend/internal/application/usecase/analytics"
	"github.com/fintrack/analytics-backend/internal/domain/entity"
	"github.com/fintrack/analytics-backend/internal/integration/persistence/model"
)

// movementRepository implements the analytics.MovementRepository interface.
type movementRepository struct {
	db *gorm.DB
}

// NewMovementRepository creates a new movement repository instance.
func NewMovementRepository(db *gorm.DB) analytics.MovementRepository {
	return &movementRepository{
		db: db,
	}
}

// GetMovements returns a snapshot of the user's movement history, ordered by
// date ascending. The engine receives a copy and never a live reference into
// the store.
func (r *movementRepository) GetMovements(
	ctx context.Context,
	userID uuid.UUID,
) ([]entity.Movement, error) {
	var models []model.MovementModel

	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("date ASC").
		Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load movements: %w", err)
	}

	movements := make([]entity.Movement, len(models))
	for i, m := range models {
		movements[i] = *m.ToEntity()
	}
	return movements, nil
}

// GetDataRange returns the date boundaries of the user's movements.
func (r *movementRepository) GetDataRange(
	ctx context.Context,
	userID uuid.UUID,
) (*analytics.DataRange, error) {
	var result struct {
		OldestDate *time.Time `gorm:"column:oldest_date"`
		NewestDate *time.Time `gorm:"column:newest_date"`
		Total      int        `gorm:"column:total"`
	}

	err := r.db.WithContext(ctx).
		Table("movements").
		Select("MIN(date) as oldest_date, MAX(date) as newest_date, COUNT(*) as total").
		Where("user_id = ?", userID).
		Where("deleted_at IS NULL").
		Scan(&result).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get data range: %w", err)
	}

	return &analytics.DataRange{
		OldestDate:     result.OldestDate,
		NewestDate:     result.NewestDate,
		TotalMovements: result.Total,
	}, nil
}
