package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/fintrack/analytics-backend/internal/domain/valueobject"
)

// GetDataRangeInput represents the input for getting the data range.
type GetDataRangeInput struct {
	UserID uuid.UUID
}

// PeriodWithData describes one fiscal period for the UI's period picker.
type PeriodWithData struct {
	Period valueobject.PeriodKey `json:"period"`
	Label  string                `json:"label"`
}

// GetDataRangeOutput represents the output of getting the data range.
type GetDataRangeOutput struct {
	OldestDate     *time.Time       `json:"oldest_date"`
	NewestDate     *time.Time       `json:"newest_date"`
	TotalMovements int              `json:"total_movements"`
	HasData        bool             `json:"has_data"`
	Periods        []PeriodWithData `json:"periods"`
}

// GetDataRangeUseCase reports the extent of a user's movement history and
// the fiscal periods that contain data.
type GetDataRangeUseCase struct {
	movementRepo MovementRepository
}

// NewGetDataRangeUseCase creates a new GetDataRangeUseCase instance.
func NewGetDataRangeUseCase(movementRepo MovementRepository) *GetDataRangeUseCase {
	return &GetDataRangeUseCase{
		movementRepo: movementRepo,
	}
}

// Execute retrieves the date range and the list of periods with data.
func (uc *GetDataRangeUseCase) Execute(
	ctx context.Context,
	input GetDataRangeInput,
) (*GetDataRangeOutput, error) {
	dataRange, err := uc.movementRepo.GetDataRange(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to get data range: %w", err)
	}

	snapshot, err := loadSnapshot(ctx, uc.movementRepo, input.UserID)
	if err != nil {
		return nil, err
	}

	keys := snapshot.PeriodKeys(valueobject.AllWallets())
	periods := make([]PeriodWithData, 0, len(keys))
	for _, key := range keys {
		periods = append(periods, PeriodWithData{Period: key, Label: key.Label()})
	}

	hasData := dataRange.OldestDate != nil && dataRange.NewestDate != nil

	return &GetDataRangeOutput{
		OldestDate:     dataRange.OldestDate,
		NewestDate:     dataRange.NewestDate,
		TotalMovements: dataRange.TotalMovements,
		HasData:        hasData,
		Periods:        periods,
	}, nil
}
