package valueobject

import (
	"testing"

	"github.com/google/uuid"
)

func TestParseWalletFilter(t *testing.T) {
	walletID := uuid.New()

	t.Run("empty string selects all wallets", func(t *testing.T) {
		f, err := ParseWalletFilter("")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !f.IsAll() {
			t.Error("expected IsAll to be true")
		}
	})

	t.Run("all sentinel selects all wallets", func(t *testing.T) {
		f, err := ParseWalletFilter(WalletFilterAll)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !f.IsAll() {
			t.Error("expected IsAll to be true")
		}
		if !f.Matches(walletID) {
			t.Error("expected all-wallets filter to match any wallet")
		}
	})

	t.Run("wallet UUID selects a single wallet", func(t *testing.T) {
		f, err := ParseWalletFilter(walletID.String())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if f.IsAll() {
			t.Error("expected IsAll to be false")
		}
		if !f.Matches(walletID) {
			t.Error("expected filter to match its own wallet")
		}
		if f.Matches(uuid.New()) {
			t.Error("expected filter to reject another wallet")
		}
	})

	t.Run("rejects non-UUID values", func(t *testing.T) {
		if _, err := ParseWalletFilter("not-a-wallet"); err == nil {
			t.Error("expected error for invalid wallet filter")
		}
	})
}

func TestWalletFilterString(t *testing.T) {
	t.Run("all filter renders the sentinel", func(t *testing.T) {
		if got := AllWallets().String(); got != WalletFilterAll {
			t.Errorf("String() = %q, want %q", got, WalletFilterAll)
		}
	})

	t.Run("single filter renders the wallet ID", func(t *testing.T) {
		walletID := uuid.New()
		if got := SingleWallet(walletID).String(); got != walletID.String() {
			t.Errorf("String() = %q, want %q", got, walletID)
		}
	})
}
