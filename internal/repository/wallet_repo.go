// internal/repository/wallet_repo.go
package repository

import (
	"context"

	"my-money/internal/domain"

	"github.com/shopspring/decimal"
)

// WalletFilter narrows a wallet listing. Zero values mean "no filter".
type WalletFilter struct {
	Category domain.WalletCategory
	Type     domain.WalletType
}

// WalletRepository defines the interface for wallet data operations.
type WalletRepository interface {
	// CreateWallet adds a new wallet and sets wallet.ID.
	CreateWallet(ctx context.Context, q DBExecutor, wallet *domain.Wallet) error
	// GetWalletByID retrieves a wallet by its ID, or util.ErrNotFound.
	GetWalletByID(ctx context.Context, q DBExecutor, id int64) (*domain.Wallet, error)
	// ListWallets returns wallets ordered by ID.
	ListWallets(ctx context.Context, q DBExecutor, filter WalletFilter) ([]domain.Wallet, error)
	// UpdateWallet overwrites every mutable column of the wallet.
	UpdateWallet(ctx context.Context, q DBExecutor, wallet *domain.Wallet) error
	// UpdateWalletBalance writes an absolute balance for a specific wallet.
	UpdateWalletBalance(ctx context.Context, q DBExecutor, walletID int64, balance decimal.Decimal) error
	// DeleteWallet removes a wallet, or returns util.ErrNotFound.
	DeleteWallet(ctx context.Context, q DBExecutor, id int64) error
}
