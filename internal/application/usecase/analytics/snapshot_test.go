package analytics

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/fintrack/analytics-backend/internal/domain/entity"
	"github.com/fintrack/analytics-backend/internal/domain/valueobject"
)

func TestNewSnapshot(t *testing.T) {
	t.Run("keeps valid records", func(t *testing.T) {
		s := NewSnapshot([]entity.Movement{
			anExpense("10.00", onDay(2025, time.April, 1)).build(),
			anIncome("20.00", onDay(2025, time.April, 2)).build(),
		})
		if len(s.Movements) != 2 {
			t.Errorf("len(Movements) = %d, want 2", len(s.Movements))
		}
		if s.Skipped != 0 {
			t.Errorf("Skipped = %d, want 0", s.Skipped)
		}
	})

	t.Run("drops and counts invalid records", func(t *testing.T) {
		negative := anExpense("10.00", onDay(2025, time.April, 1)).build()
		negative.Amount = negative.Amount.Neg()

		s := NewSnapshot([]entity.Movement{
			anExpense("10.00", onDay(2025, time.April, 1)).build(),
			anExpense("5.00", onDay(2025, time.April, 2)).withKind("transfer").build(),
			negative,
			anExpense("3.00", time.Time{}).build(),
		})
		if len(s.Movements) != 1 {
			t.Errorf("len(Movements) = %d, want 1", len(s.Movements))
		}
		if s.Skipped != 3 {
			t.Errorf("Skipped = %d, want 3", s.Skipped)
		}
	})

	t.Run("empty input yields a defined empty snapshot", func(t *testing.T) {
		s := NewSnapshot(nil)
		if len(s.Movements) != 0 || s.Skipped != 0 {
			t.Errorf("got %d movements, %d skipped, want 0, 0", len(s.Movements), s.Skipped)
		}
	})
}

func TestSnapshotFilterByPeriod(t *testing.T) {
	walletA := uuid.New()
	walletB := uuid.New()

	s := NewSnapshot([]entity.Movement{
		anExpense("10.00", onDay(2025, time.March, 25)).inWallet(walletA).build(), // 2025-03
		anExpense("20.00", onDay(2025, time.March, 26)).inWallet(walletA).build(), // 2025-04
		anExpense("30.00", onDay(2025, time.April, 25)).inWallet(walletB).build(), // 2025-04
		anExpense("40.00", onDay(2025, time.April, 26)).inWallet(walletA).build(), // 2025-05
	})

	t.Run("selects only the period's records", func(t *testing.T) {
		got := s.FilterByPeriod("2025-04", valueobject.AllWallets())
		if len(got) != 2 {
			t.Fatalf("len = %d, want 2", len(got))
		}
	})

	t.Run("applies the wallet filter", func(t *testing.T) {
		got := s.FilterByPeriod("2025-04", valueobject.SingleWallet(walletA))
		if len(got) != 1 {
			t.Fatalf("len = %d, want 1", len(got))
		}
		if !got[0].Amount.Equal(mustDecimal("20.00")) {
			t.Errorf("amount = %s, want 20.00", got[0].Amount)
		}
	})

	t.Run("empty period yields empty non-nil slice", func(t *testing.T) {
		got := s.FilterByPeriod("2030-01", valueobject.AllWallets())
		if got == nil || len(got) != 0 {
			t.Errorf("got %v, want empty slice", got)
		}
	})
}

func TestSnapshotFilterByRange(t *testing.T) {
	s := NewSnapshot([]entity.Movement{
		anExpense("10.00", onDay(2025, time.April, 1)).build(),
		anExpense("20.00", onDay(2025, time.April, 15)).build(),
		anExpense("30.00", onDay(2025, time.April, 30)).build(),
	})

	t.Run("range bounds are inclusive", func(t *testing.T) {
		got := s.FilterByRange(onDay(2025, time.April, 1), onDay(2025, time.April, 15), valueobject.AllWallets())
		if len(got) != 2 {
			t.Errorf("len = %d, want 2", len(got))
		}
	})

	t.Run("time of day on bounds is ignored", func(t *testing.T) {
		start := time.Date(2025, time.April, 15, 23, 0, 0, 0, time.UTC)
		got := s.FilterByRange(start, onDay(2025, time.April, 30), valueobject.AllWallets())
		if len(got) != 2 {
			t.Errorf("len = %d, want 2", len(got))
		}
	})
}

func TestSnapshotPeriodKeys(t *testing.T) {
	walletA := uuid.New()
	walletB := uuid.New()

	s := NewSnapshot([]entity.Movement{
		anExpense("1.00", onDay(2025, time.May, 1)).inWallet(walletA).build(),   // 2025-05
		anExpense("1.00", onDay(2025, time.March, 10)).inWallet(walletA).build(), // 2025-03
		anExpense("1.00", onDay(2025, time.March, 12)).inWallet(walletA).build(), // 2025-03 dup
		anExpense("1.00", onDay(2025, time.April, 10)).inWallet(walletB).build(), // 2025-04
	})

	t.Run("sorted ascending and deduplicated", func(t *testing.T) {
		got := s.PeriodKeys(valueobject.AllWallets())
		want := []valueobject.PeriodKey{"2025-03", "2025-04", "2025-05"}
		if len(got) != len(want) {
			t.Fatalf("len = %d, want %d", len(got), len(want))
		}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("keys[%d] = %s, want %s", i, got[i], want[i])
			}
		}
	})

	t.Run("respects the wallet scope", func(t *testing.T) {
		got := s.PeriodKeys(valueobject.SingleWallet(walletB))
		if len(got) != 1 || got[0] != "2025-04" {
			t.Errorf("keys = %v, want [2025-04]", got)
		}
	})
}
