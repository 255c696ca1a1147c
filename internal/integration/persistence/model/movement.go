// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/fintrack/analytics-backend/internal/domain/entity"
)

// MovementModel represents the movements table in the database. The table is
// written by the CRUD application; this service only reads from it.
type MovementModel struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	WalletID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	Kind        string          `gorm:"type:varchar(10);not null;index"`
	Amount      decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Date        time.Time       `gorm:"type:date;not null;index"`
	Category    string          `gorm:"type:varchar(100)"`
	Subcategory *string         `gorm:"type:varchar(100)"`
	Description string          `gorm:"type:varchar(255)"`
	CreatedAt   time.Time       `gorm:"not null"`
	UpdatedAt   time.Time       `gorm:"not null"`
	DeletedAt   gorm.DeletedAt  `gorm:"index"` // Soft-delete support
}

// TableName returns the table name for the MovementModel.
func (MovementModel) TableName() string {
	return "movements"
}

// ToEntity converts a MovementModel to a domain Movement entity.
func (m *MovementModel) ToEntity() *entity.Movement {
	var deletedAt *time.Time
	if m.DeletedAt.Valid {
		deletedAt = &m.DeletedAt.Time
	}

	return &entity.Movement{
		ID:          m.ID,
		UserID:      m.UserID,
		WalletID:    m.WalletID,
		Kind:        entity.MovementKind(m.Kind),
		Amount:      m.Amount,
		Date:        m.Date,
		Category:    m.Category,
		Subcategory: m.Subcategory,
		Description: m.Description,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
		DeletedAt:   deletedAt,
	}
}

// MovementFromEntity creates a MovementModel from a domain Movement entity.
func MovementFromEntity(movement *entity.Movement) *MovementModel {
	var deletedAt gorm.DeletedAt
	if movement.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *movement.DeletedAt, Valid: true}
	}

	return &MovementModel{
		ID:          movement.ID,
		UserID:      movement.UserID,
		WalletID:    movement.WalletID,
		Kind:        string(movement.Kind),
		Amount:      movement.Amount,
		Date:        movement.Date,
		Category:    movement.Category,
		Subcategory: movement.Subcategory,
		Description: movement.Description,
		CreatedAt:   movement.CreatedAt,
		UpdatedAt:   movement.UpdatedAt,
		DeletedAt:   deletedAt,
	}
}
