// internal/repository/transaction_repo.go
package repository

import (
	"context"

	"my-money/internal/domain"
)

// TransactionRepository defines the interface for transaction data operations.
type TransactionRepository interface {
	// CreateTransaction adds a new transaction record and sets transaction.ID.
	CreateTransaction(ctx context.Context, q DBExecutor, transaction *domain.Transaction) error
	// GetTransactionByID retrieves a transaction, or util.ErrNotFound.
	GetTransactionByID(ctx context.Context, q DBExecutor, id int64) (*domain.Transaction, error)
	// UpdateTransaction overwrites the editable fields of a transaction.
	UpdateTransaction(ctx context.Context, q DBExecutor, transaction *domain.Transaction) error
	// DeleteTransaction removes a transaction, or returns util.ErrNotFound.
	DeleteTransaction(ctx context.Context, q DBExecutor, id int64) error
	// DeleteTransactionsByWalletID removes every transaction of a wallet and returns how many went.
	DeleteTransactionsByWalletID(ctx context.Context, q DBExecutor, walletID int64) (int64, error)
	// ListTransactions returns a page of transactions matching filter and the total count.
	ListTransactions(ctx context.Context, q DBExecutor, filter domain.TransactionFilter) ([]domain.Transaction, int64, error)
}
