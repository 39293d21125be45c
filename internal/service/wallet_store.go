// internal/service/wallet_store.go
package service

import (
	"context"
	"fmt"
	"log/slog"

	"my-money/internal/domain"
	"my-money/internal/repository"
	"my-money/internal/util"

	"github.com/shopspring/decimal"
)

// WalletStore reads wallets and applies balance changes.
type WalletStore interface {
	// GetWallet returns the wallet or an error matching util.ErrWalletNotFound.
	GetWallet(ctx context.Context, id int64) (*domain.Wallet, error)
	// LookupWallet resolves a weak reference: a missing wallet is reported
	// through found=false instead of an error.
	LookupWallet(ctx context.Context, id int64) (wallet *domain.Wallet, found bool, err error)
	ListWallets(ctx context.Context, filter repository.WalletFilter) ([]domain.Wallet, error)
	// AdjustBalance reads the wallet, adds delta and writes the result back.
	// No lower bound is enforced; balances may go negative.
	AdjustBalance(ctx context.Context, id int64, delta decimal.Decimal) (*domain.Wallet, error)
	// SetBalance writes an absolute balance computed by the caller from an
	// earlier read.
	SetBalance(ctx context.Context, id int64, balance decimal.Decimal) error
	// Totals sums active and savings balances.
	Totals(ctx context.Context) (domain.WalletTotals, error)
}

// walletStore implements the WalletStore interface.
type walletStore struct {
	dbExecutor repository.DBExecutor
	walletRepo repository.WalletRepository
	logger     *slog.Logger
}

// NewWalletStore creates a new instance of WalletStore.
func NewWalletStore(dbExecutor repository.DBExecutor, walletRepo repository.WalletRepository, logger *slog.Logger) WalletStore {
	return &walletStore{
		dbExecutor: dbExecutor,
		walletRepo: walletRepo,
		logger:     logger,
	}
}

func (s *walletStore) GetWallet(ctx context.Context, id int64) (*domain.Wallet, error) {
	wallet, err := s.walletRepo.GetWalletByID(ctx, s.dbExecutor, id)
	if err != nil {
		if util.IsError(err, util.ErrNotFound) {
			return nil, fmt.Errorf("wallet %d: %w", id, util.ErrWalletNotFound)
		}
		return nil, util.Persistence(fmt.Sprintf("get wallet %d", id), err)
	}
	return wallet, nil
}

func (s *walletStore) LookupWallet(ctx context.Context, id int64) (*domain.Wallet, bool, error) {
	wallet, err := s.GetWallet(ctx, id)
	if err != nil {
		if util.IsError(err, util.ErrWalletNotFound) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return wallet, true, nil
}

func (s *walletStore) ListWallets(ctx context.Context, filter repository.WalletFilter) ([]domain.Wallet, error) {
	wallets, err := s.walletRepo.ListWallets(ctx, s.dbExecutor, filter)
	if err != nil {
		return nil, util.Persistence("list wallets", err)
	}
	return wallets, nil
}

func (s *walletStore) AdjustBalance(ctx context.Context, id int64, delta decimal.Decimal) (*domain.Wallet, error) {
	wallet, err := s.GetWallet(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("adjust balance: %w", err)
	}

	newBalance := wallet.Balance.Add(delta)
	if err := s.SetBalance(ctx, id, newBalance); err != nil {
		return nil, fmt.Errorf("adjust balance: %w", err)
	}

	s.logger.Debug("Wallet balance adjusted",
		"wallet_id", id,
		"delta", delta.String(),
		"balance", newBalance.String(),
	)
	wallet.Balance = newBalance
	return wallet, nil
}

func (s *walletStore) SetBalance(ctx context.Context, id int64, balance decimal.Decimal) error {
	if err := s.walletRepo.UpdateWalletBalance(ctx, s.dbExecutor, id, balance); err != nil {
		if util.IsError(err, util.ErrNotFound) {
			return fmt.Errorf("wallet %d: %w", id, util.ErrWalletNotFound)
		}
		return util.Persistence(fmt.Sprintf("write balance of wallet %d", id), err)
	}
	return nil
}

func (s *walletStore) Totals(ctx context.Context) (domain.WalletTotals, error) {
	wallets, err := s.ListWallets(ctx, repository.WalletFilter{})
	if err != nil {
		return domain.WalletTotals{}, err
	}
	return domain.SumWallets(wallets), nil
}
