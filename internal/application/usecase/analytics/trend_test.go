package analytics

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/fintrack/analytics-backend/internal/domain/entity"
	"github.com/fintrack/analytics-backend/internal/domain/valueobject"
)

func TestBuildTrend(t *testing.T) {
	// One movement per period across four consecutive periods.
	s := NewSnapshot([]entity.Movement{
		anExpense("10.00", onDay(2025, time.February, 10)).build(), // 2025-02
		anExpense("20.00", onDay(2025, time.March, 10)).build(),   // 2025-03
		anIncome("500.00", onDay(2025, time.April, 10)).build(),   // 2025-04
		anExpense("40.00", onDay(2025, time.May, 10)).build(),     // 2025-05
	})
	all := valueobject.AllWallets()

	t.Run("window ends at the requested period", func(t *testing.T) {
		points := BuildTrend(s, "2025-04", 2, all)
		if len(points) != 2 {
			t.Fatalf("len = %d, want 2", len(points))
		}
		if points[0].Period != "2025-03" || points[1].Period != "2025-04" {
			t.Errorf("periods = %s, %s; want 2025-03, 2025-04", points[0].Period, points[1].Period)
		}
		if !points[1].Income.Equal(mustDecimal("500.00")) {
			t.Errorf("income = %s, want 500.00", points[1].Income)
		}
		if !points[1].Expense.IsZero() {
			t.Errorf("expense = %s, want 0", points[1].Expense)
		}
	})

	t.Run("clamps to available history", func(t *testing.T) {
		points := BuildTrend(s, "2025-03", 12, all)
		if len(points) != 2 {
			t.Fatalf("len = %d, want 2 (only 2025-02 and 2025-03 exist before the end)", len(points))
		}
		if points[0].Period != "2025-02" {
			t.Errorf("first period = %s, want 2025-02", points[0].Period)
		}
	})

	t.Run("unknown end period falls back to latest with data", func(t *testing.T) {
		points := BuildTrend(s, "2030-01", 2, all)
		if len(points) != 2 {
			t.Fatalf("len = %d, want 2", len(points))
		}
		if points[1].Period != "2025-05" {
			t.Errorf("last period = %s, want 2025-05", points[1].Period)
		}
	})

	t.Run("labels use the compact end-month form", func(t *testing.T) {
		points := BuildTrend(s, "2025-04", 1, all)
		if len(points) != 1 {
			t.Fatalf("len = %d, want 1", len(points))
		}
		if points[0].Label != "Apr 25" {
			t.Errorf("label = %q, want %q", points[0].Label, "Apr 25")
		}
	})

	t.Run("empty snapshot yields empty series", func(t *testing.T) {
		points := BuildTrend(NewSnapshot(nil), "2025-04", 12, all)
		if points == nil || len(points) != 0 {
			t.Errorf("got %v, want empty non-nil slice", points)
		}
	})

	t.Run("zero period count yields empty series", func(t *testing.T) {
		points := BuildTrend(s, "2025-04", 0, all)
		if len(points) != 0 {
			t.Errorf("len = %d, want 0", len(points))
		}
	})

	t.Run("wallet scope drops other wallets' periods", func(t *testing.T) {
		walletA := uuid.New()
		scoped := NewSnapshot([]entity.Movement{
			anExpense("10.00", onDay(2025, time.March, 10)).inWallet(walletA).build(),
			anExpense("99.00", onDay(2025, time.April, 10)).build(),
		})
		points := BuildTrend(scoped, "2025-04", 12, valueobject.SingleWallet(walletA))
		if len(points) != 1 || points[0].Period != "2025-03" {
			t.Errorf("points = %+v, want only 2025-03", points)
		}
	})
}
