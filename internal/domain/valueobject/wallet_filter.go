package valueobject

import (
	"fmt"

	"github.com/google/uuid"
)

// WalletFilterAll is the sentinel value selecting every wallet.
const WalletFilterAll = "all"

// WalletFilter scopes an aggregation to a single wallet or to all wallets.
// It is a pure predicate, not a stored entity.
type WalletFilter struct {
	walletID uuid.UUID
	all      bool
}

// AllWallets returns a filter matching every wallet.
func AllWallets() WalletFilter {
	return WalletFilter{all: true}
}

// SingleWallet returns a filter matching only the given wallet.
func SingleWallet(walletID uuid.UUID) WalletFilter {
	return WalletFilter{walletID: walletID}
}

// ParseWalletFilter parses the API representation of a wallet filter: empty
// or "all" selects every wallet, anything else must be a wallet UUID.
func ParseWalletFilter(s string) (WalletFilter, error) {
	if s == "" || s == WalletFilterAll {
		return AllWallets(), nil
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return WalletFilter{}, fmt.Errorf("invalid wallet filter %q: %w", s, err)
	}
	return SingleWallet(id), nil
}

// Matches reports whether a movement in the given wallet passes the filter.
func (f WalletFilter) Matches(walletID uuid.UUID) bool {
	return f.all || f.walletID == walletID
}

// IsAll reports whether the filter selects every wallet.
func (f WalletFilter) IsAll() bool {
	return f.all
}

// String returns the canonical representation used in cache keys.
func (f WalletFilter) String() string {
	if f.all {
		return WalletFilterAll
	}
	return f.walletID.String()
}
