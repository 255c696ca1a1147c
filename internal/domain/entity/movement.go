// Package entity defines the core business entities for the domain layer.
package entity

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MovementKind represents the kind of money movement (expense or income).
type MovementKind string

const (
	MovementKindExpense MovementKind = "expense"
	MovementKindIncome  MovementKind = "income"
)

// Movement represents a single dated money movement in a wallet. Expenses
// carry a category and an optional subcategory; incomes carry neither.
type Movement struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	WalletID    uuid.UUID
	Kind        MovementKind
	Amount      decimal.Decimal // Always non-negative; the kind carries the sign
	Date        time.Time       // Day granularity; time of day is ignored
	Category    string          // Expenses only; empty means uncategorized
	Subcategory *string         // Optional refinement of the category
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   *time.Time // Soft-delete support
}

// NewMovement creates a new Movement entity.
func NewMovement(
	userID uuid.UUID,
	walletID uuid.UUID,
	kind MovementKind,
	amount decimal.Decimal,
	date time.Time,
	category string,
	subcategory *string,
	description string,
) *Movement {
	now := time.Now().UTC()

	return &Movement{
		ID:          uuid.New(),
		UserID:      userID,
		WalletID:    walletID,
		Kind:        kind,
		Amount:      amount,
		Date:        date,
		Category:    category,
		Subcategory: subcategory,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// Validation errors for Movement records.
var (
	ErrMovementInvalidKind    = errors.New("movement kind must be expense or income")
	ErrMovementNegativeAmount = errors.New("movement amount must not be negative")
	ErrMovementInvalidDate    = errors.New("movement date is not a valid calendar date")
)

// Validate checks the record invariants at the engine boundary. Records
// failing validation are excluded from aggregation rather than crashing it.
func (m *Movement) Validate() error {
	if m.Kind != MovementKindExpense && m.Kind != MovementKindIncome {
		return ErrMovementInvalidKind
	}
	if m.Amount.IsNegative() {
		return ErrMovementNegativeAmount
	}
	if m.Date.IsZero() {
		return ErrMovementInvalidDate
	}
	return nil
}

// IsExpense reports whether the movement is an expense.
func (m *Movement) IsExpense() bool {
	return m.Kind == MovementKindExpense
}

// IsIncome reports whether the movement is an income.
func (m *Movement) IsIncome() bool {
	return m.Kind == MovementKindIncome
}
