// internal/service/ledger.go
package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"my-money/internal/domain"
	"my-money/internal/metrics"
	"my-money/internal/repository"
	"my-money/internal/util"

	"github.com/shopspring/decimal"
)

// TransactionInput carries the user-editable fields of a transaction.
type TransactionInput struct {
	Title    string
	Amount   decimal.Decimal
	Type     domain.TransactionType
	Category string
	WalletID int64
	Date     time.Time
}

func (in TransactionInput) validate() error {
	if !in.Amount.IsPositive() {
		return util.NewValidationError("amount", "must be greater than zero")
	}
	if !in.Type.Valid() {
		return util.NewValidationError("type", "must be income or expense")
	}
	if strings.TrimSpace(in.Category) == "" {
		return util.NewValidationError("category", "is required")
	}
	if in.WalletID <= 0 {
		return util.NewValidationError("wallet_id", "is required")
	}
	if in.Date.IsZero() {
		return util.NewValidationError("date", "is required")
	}
	return nil
}

// title falls back to the category when no title was given.
func (in TransactionInput) title() string {
	if t := strings.TrimSpace(in.Title); t != "" {
		return t
	}
	return strings.TrimSpace(in.Category)
}

// TransactionLedger keeps a transaction's existence and its wallet's
// balance in lockstep.
type TransactionLedger interface {
	Create(ctx context.Context, sess domain.Session, in TransactionInput) (*domain.Transaction, error)
	Update(ctx context.Context, sess domain.Session, id int64, in TransactionInput) (*domain.Transaction, error)
	// Delete removes the transaction and reverses its current effect.
	// The removed record is returned.
	Delete(ctx context.Context, sess domain.Session, id int64) (*domain.Transaction, error)
	Get(ctx context.Context, id int64) (*domain.Transaction, error)
	List(ctx context.Context, filter domain.TransactionFilter) ([]domain.Transaction, int64, error)
}

type transactionLedger struct {
	dbExecutor      repository.DBExecutor
	wallets         WalletStore
	transactionRepo repository.TransactionRepository
	logger          *slog.Logger
	metrics         *metrics.Metrics
}

// NewTransactionLedger creates a new instance of TransactionLedger.
func NewTransactionLedger(
	dbExecutor repository.DBExecutor,
	wallets WalletStore,
	transactionRepo repository.TransactionRepository,
	logger *slog.Logger,
	m *metrics.Metrics,
) TransactionLedger {
	return &transactionLedger{
		dbExecutor:      dbExecutor,
		wallets:         wallets,
		transactionRepo: transactionRepo,
		logger:          logger,
		metrics:         m,
	}
}

func (l *transactionLedger) Create(ctx context.Context, sess domain.Session, in TransactionInput) (*domain.Transaction, error) {
	if err := in.validate(); err != nil {
		return nil, fmt.Errorf("create transaction: %w", err)
	}
	if _, err := l.wallets.GetWallet(ctx, in.WalletID); err != nil {
		return nil, fmt.Errorf("create transaction: %w", err)
	}

	tx := domain.NewTransaction(in.title(), in.Amount, in.Type, strings.TrimSpace(in.Category), in.WalletID, in.Date)

	err := newSequence("transaction.create").
		then("insert transaction", func(ctx context.Context) error {
			if err := l.transactionRepo.CreateTransaction(ctx, l.dbExecutor, tx); err != nil {
				return util.Persistence("insert transaction", err)
			}
			return nil
		}).
		then("apply wallet effect", func(ctx context.Context) error {
			_, err := l.wallets.AdjustBalance(ctx, tx.WalletID, tx.BalanceEffect())
			return err
		}).
		run(ctx, l.logger, l.metrics, sess.LogAttrs()...)
	if err != nil {
		return nil, err
	}

	l.logger.Info("Transaction created",
		append(sess.LogAttrs(),
			"transaction_id", tx.ID,
			"wallet_id", tx.WalletID,
			"type", tx.Type,
			"amount", tx.Amount.String(),
		)...)
	return tx, nil
}

func (l *transactionLedger) Update(ctx context.Context, sess domain.Session, id int64, in TransactionInput) (*domain.Transaction, error) {
	existing, err := l.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("update transaction: %w", err)
	}
	if err := in.validate(); err != nil {
		return nil, fmt.Errorf("update transaction: %w", err)
	}
	if _, err := l.wallets.GetWallet(ctx, in.WalletID); err != nil {
		return nil, fmt.Errorf("update transaction: %w", err)
	}

	old := *existing
	updated := *existing
	updated.Title = in.title()
	updated.Amount = in.Amount
	updated.Type = in.Type
	updated.Category = strings.TrimSpace(in.Category)
	updated.WalletID = in.WalletID
	updated.Date = domain.TruncateDay(in.Date)

	err = newSequence("transaction.update").
		then("update transaction", func(ctx context.Context) error {
			if err := l.transactionRepo.UpdateTransaction(ctx, l.dbExecutor, &updated); err != nil {
				if util.IsError(err, util.ErrNotFound) {
					return fmt.Errorf("transaction %d: %w", id, util.ErrTransactionNotFound)
				}
				return util.Persistence("update transaction", err)
			}
			return nil
		}).
		then("roll back old wallet effect", func(ctx context.Context) error {
			return l.rollback(ctx, sess, &old)
		}).
		then("apply new wallet effect", func(ctx context.Context) error {
			_, err := l.wallets.AdjustBalance(ctx, updated.WalletID, updated.BalanceEffect())
			return err
		}).
		run(ctx, l.logger, l.metrics, sess.LogAttrs()...)
	if err != nil {
		return nil, err
	}

	l.logger.Info("Transaction updated",
		append(sess.LogAttrs(),
			"transaction_id", id,
			"old_wallet_id", old.WalletID,
			"new_wallet_id", updated.WalletID,
			"old_effect", old.BalanceEffect().String(),
			"new_effect", updated.BalanceEffect().String(),
		)...)
	return &updated, nil
}

func (l *transactionLedger) Delete(ctx context.Context, sess domain.Session, id int64) (*domain.Transaction, error) {
	existing, err := l.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("delete transaction: %w", err)
	}

	err = newSequence("transaction.delete").
		then("delete transaction", func(ctx context.Context) error {
			if err := l.transactionRepo.DeleteTransaction(ctx, l.dbExecutor, id); err != nil {
				if util.IsError(err, util.ErrNotFound) {
					return fmt.Errorf("transaction %d: %w", id, util.ErrTransactionNotFound)
				}
				return util.Persistence("delete transaction", err)
			}
			return nil
		}).
		then("roll back wallet effect", func(ctx context.Context) error {
			return l.rollback(ctx, sess, existing)
		}).
		run(ctx, l.logger, l.metrics, sess.LogAttrs()...)
	if err != nil {
		return nil, err
	}

	l.logger.Info("Transaction deleted",
		append(sess.LogAttrs(),
			"transaction_id", id,
			"wallet_id", existing.WalletID,
			"reversal", existing.Reversal().String(),
		)...)
	return existing, nil
}

// rollback reverses tx's effect on its wallet. A wallet that no longer
// exists is skipped.
func (l *transactionLedger) rollback(ctx context.Context, sess domain.Session, tx *domain.Transaction) error {
	_, err := l.wallets.AdjustBalance(ctx, tx.WalletID, tx.Reversal())
	if util.IsError(err, util.ErrWalletNotFound) {
		l.logger.Warn("Wallet gone, skipping balance rollback",
			append(sess.LogAttrs(), "transaction_id", tx.ID, "wallet_id", tx.WalletID)...)
		return nil
	}
	return err
}

func (l *transactionLedger) Get(ctx context.Context, id int64) (*domain.Transaction, error) {
	tx, err := l.transactionRepo.GetTransactionByID(ctx, l.dbExecutor, id)
	if err != nil {
		if util.IsError(err, util.ErrNotFound) {
			return nil, fmt.Errorf("transaction %d: %w", id, util.ErrTransactionNotFound)
		}
		return nil, util.Persistence(fmt.Sprintf("get transaction %d", id), err)
	}
	return tx, nil
}

func (l *transactionLedger) List(ctx context.Context, filter domain.TransactionFilter) ([]domain.Transaction, int64, error) {
	if filter.Limit < 0 || filter.Offset < 0 {
		return nil, 0, util.NewValidationError("limit", "limit and offset must not be negative")
	}
	txs, total, err := l.transactionRepo.ListTransactions(ctx, l.dbExecutor, filter)
	if err != nil {
		return nil, 0, util.Persistence("list transactions", err)
	}
	return txs, total, nil
}
