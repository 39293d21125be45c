// internal/repository/sqlstore/wallet_store.go
package sqlstore

import (
	"context"
	"fmt"
	"time"

	"my-money/internal/domain"
	"my-money/internal/repository"

	"github.com/shopspring/decimal"
)

const walletColumns = `id, name, type, category, balance, source_wallet_id, created_at, updated_at`

// WalletRepository implements repository.WalletRepository.
type WalletRepository struct{}

// NewWalletRepository creates a new WalletRepository.
func NewWalletRepository() repository.WalletRepository {
	return &WalletRepository{}
}

// CreateWallet inserts a new wallet using the provided DBExecutor.
func (r *WalletRepository) CreateWallet(ctx context.Context, q repository.DBExecutor, wallet *domain.Wallet) error {
	query := q.Rebind(`INSERT INTO wallets (name, type, category, balance, source_wallet_id, created_at, updated_at)
              VALUES (?, ?, ?, ?, ?, ?, ?) RETURNING id`)
	err := q.QueryRowContext(ctx, query,
		wallet.Name,
		wallet.Type,
		wallet.Category,
		wallet.Balance,
		wallet.SourceWalletID,
		wallet.CreatedAt,
		wallet.UpdatedAt,
	).Scan(&wallet.ID)
	if err != nil {
		return fmt.Errorf("failed to create wallet: %w", err)
	}
	return nil
}

// GetWalletByID retrieves a wallet by its ID using the provided DBExecutor.
func (r *WalletRepository) GetWalletByID(ctx context.Context, q repository.DBExecutor, id int64) (*domain.Wallet, error) {
	var wallet domain.Wallet
	query := q.Rebind(`SELECT ` + walletColumns + ` FROM wallets WHERE id = ?`)
	if err := q.GetContext(ctx, &wallet, query, id); err != nil {
		return nil, notFoundOr(err, "failed to get wallet by ID %d", id)
	}
	return &wallet, nil
}

// ListWallets retrieves wallets matching filter, ordered by ID.
func (r *WalletRepository) ListWallets(ctx context.Context, q repository.DBExecutor, filter repository.WalletFilter) ([]domain.Wallet, error) {
	var (
		clauses []string
		args    []interface{}
	)
	if filter.Category != "" {
		clauses = append(clauses, "category = ?")
		args = append(args, filter.Category)
	}
	if filter.Type != "" {
		clauses = append(clauses, "type = ?")
		args = append(args, filter.Type)
	}

	wallets := []domain.Wallet{}
	query := q.Rebind(`SELECT ` + walletColumns + ` FROM wallets` + where(clauses) + ` ORDER BY id`)
	if err := q.SelectContext(ctx, &wallets, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list wallets: %w", err)
	}
	return wallets, nil
}

// UpdateWallet overwrites name, type, category, balance and source of a wallet.
func (r *WalletRepository) UpdateWallet(ctx context.Context, q repository.DBExecutor, wallet *domain.Wallet) error {
	wallet.UpdatedAt = time.Now().UTC()
	query := q.Rebind(`UPDATE wallets SET name = ?, type = ?, category = ?, balance = ?, source_wallet_id = ?, updated_at = ?
              WHERE id = ?`)
	result, err := q.ExecContext(ctx, query,
		wallet.Name,
		wallet.Type,
		wallet.Category,
		wallet.Balance,
		wallet.SourceWalletID,
		wallet.UpdatedAt,
		wallet.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update wallet %d: %w", wallet.ID, err)
	}
	return requireAffected(result, "wallet", wallet.ID)
}

// UpdateWalletBalance sets the balance of a specific wallet using the provided DBExecutor.
// The value is absolute: callers compute it from the balance they read.
func (r *WalletRepository) UpdateWalletBalance(ctx context.Context, q repository.DBExecutor, walletID int64, balance decimal.Decimal) error {
	query := q.Rebind(`UPDATE wallets SET balance = ?, updated_at = ? WHERE id = ?`)
	result, err := q.ExecContext(ctx, query, balance, time.Now().UTC(), walletID)
	if err != nil {
		return fmt.Errorf("failed to update wallet balance for ID %d: %w", walletID, err)
	}
	return requireAffected(result, "wallet", walletID)
}

// DeleteWallet removes a wallet by ID.
func (r *WalletRepository) DeleteWallet(ctx context.Context, q repository.DBExecutor, id int64) error {
	result, err := q.ExecContext(ctx, q.Rebind(`DELETE FROM wallets WHERE id = ?`), id)
	if err != nil {
		return fmt.Errorf("failed to delete wallet %d: %w", id, err)
	}
	return requireAffected(result, "wallet", id)
}
