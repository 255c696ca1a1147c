package analytics

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fintrack/analytics-backend/internal/domain/entity"
)

// movementBuilder assembles test movements with sensible defaults.
type movementBuilder struct {
	m entity.Movement
}

func anExpense(amount string, date time.Time) *movementBuilder {
	return &movementBuilder{m: entity.Movement{
		ID:       uuid.New(),
		UserID:   uuid.New(),
		WalletID: uuid.New(),
		Kind:     entity.MovementKindExpense,
		Amount:   decimal.RequireFromString(amount),
		Date:     date,
	}}
}

func anIncome(amount string, date time.Time) *movementBuilder {
	b := anExpense(amount, date)
	b.m.Kind = entity.MovementKindIncome
	return b
}

func (b *movementBuilder) inWallet(walletID uuid.UUID) *movementBuilder {
	b.m.WalletID = walletID
	return b
}

func (b *movementBuilder) withCategory(category string) *movementBuilder {
	b.m.Category = category
	return b
}

func (b *movementBuilder) withSubcategory(subcategory string) *movementBuilder {
	b.m.Subcategory = &subcategory
	return b
}

func (b *movementBuilder) withKind(kind entity.MovementKind) *movementBuilder {
	b.m.Kind = kind
	return b
}

func (b *movementBuilder) build() entity.Movement {
	return b.m
}

func onDay(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// flatDailyExpenses creates one expense of the given amount on every day in
// the inclusive date range.
func flatDailyExpenses(amount string, from, to time.Time, walletID uuid.UUID) []entity.Movement {
	var out []entity.Movement
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		out = append(out, anExpense(amount, d).inWallet(walletID).build())
	}
	return out
}

func mustDecimal(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
