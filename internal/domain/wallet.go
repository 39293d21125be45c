// internal/domain/wallet.go
package domain

import (
	"time"

	"github.com/shopspring/decimal" // For precise monetary calculations
)

// WalletType describes where the money physically lives.
type WalletType string

const (
	WalletTypeBank    WalletType = "bank"
	WalletTypeEWallet WalletType = "ewallet"
	WalletTypeCash    WalletType = "cash"
)

// Valid reports whether t is one of the known wallet types.
func (t WalletType) Valid() bool {
	switch t {
	case WalletTypeBank, WalletTypeEWallet, WalletTypeCash:
		return true
	}
	return false
}

// WalletCategory separates spendable wallets from sequestered savings.
type WalletCategory string

const (
	WalletCategoryActive  WalletCategory = "active"
	WalletCategorySavings WalletCategory = "savings"
)

// Valid reports whether c is one of the known wallet categories.
func (c WalletCategory) Valid() bool {
	return c == WalletCategoryActive || c == WalletCategorySavings
}

// Wallet represents a named money container with a running balance.
//
// Balance is maintained incrementally by every ledger operation; it is never
// recomputed from transaction history. SourceWalletID is a weak reference to
// the wallet that funded this one and may point to a wallet that no longer exists.
type Wallet struct {
	ID             int64           `db:"id" json:"id"`                             // Primary key
	Name           string          `db:"name" json:"name"`                         // Display name
	Type           WalletType      `db:"type" json:"type"`                         // bank, ewallet or cash
	Category       WalletCategory  `db:"category" json:"category"`                 // active or savings
	Balance        decimal.Decimal `db:"balance" json:"balance"`                   // Current balance, may go negative
	SourceWalletID *int64          `db:"source_wallet_id" json:"source_wallet_id"` // Funding wallet, nullable
	CreatedAt      time.Time       `db:"created_at" json:"created_at"`             // Timestamp of creation
	UpdatedAt      time.Time       `db:"updated_at" json:"updated_at"`             // Timestamp of last update
}

// NewWallet creates a new Wallet instance with the given opening balance.
func NewWallet(name string, walletType WalletType, category WalletCategory, balance decimal.Decimal) *Wallet {
	now := time.Now().UTC()
	return &Wallet{
		Name:      name,
		Type:      walletType,
		Category:  category,
		Balance:   balance,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// IsLinked reports whether the wallet records a funding source.
func (w *Wallet) IsLinked() bool {
	return w.SourceWalletID != nil
}

// WalletTotals aggregates balances for the dashboard.
type WalletTotals struct {
	Active  decimal.Decimal `json:"active"`
	Savings decimal.Decimal `json:"savings"`
	Total   decimal.Decimal `json:"total"`
}

// SumWallets splits the balances of ws into spendable and savings totals.
func SumWallets(ws []Wallet) WalletTotals {
	totals := WalletTotals{Active: decimal.Zero, Savings: decimal.Zero}
	for _, w := range ws {
		if w.Category == WalletCategorySavings {
			totals.Savings = totals.Savings.Add(w.Balance)
		} else {
			totals.Active = totals.Active.Add(w.Balance)
		}
	}
	totals.Total = totals.Active.Add(totals.Savings)
	return totals
}
