// internal/repository/sqlstore/transaction_store.go
package sqlstore

import (
	"context"
	"fmt"

	"my-money/internal/domain"
	"my-money/internal/repository"
)

const transactionColumns = `id, title, amount, type, category, wallet_id, date, created_at`

// TransactionRepository implements repository.TransactionRepository.
type TransactionRepository struct{}

// NewTransactionRepository creates a new TransactionRepository.
func NewTransactionRepository() repository.TransactionRepository {
	return &TransactionRepository{}
}

// CreateTransaction inserts a new transaction record using the provided DBExecutor.
func (r *TransactionRepository) CreateTransaction(ctx context.Context, q repository.DBExecutor, transaction *domain.Transaction) error {
	query := q.Rebind(`INSERT INTO transactions (title, amount, type, category, wallet_id, date, created_at)
              VALUES (?, ?, ?, ?, ?, ?, ?) RETURNING id`)

	err := q.QueryRowContext(ctx, query,
		transaction.Title,
		transaction.Amount,
		transaction.Type,
		transaction.Category,
		transaction.WalletID,
		transaction.Date,
		transaction.CreatedAt,
	).Scan(&transaction.ID)

	if err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}
	return nil
}

// GetTransactionByID retrieves a transaction by its ID.
func (r *TransactionRepository) GetTransactionByID(ctx context.Context, q repository.DBExecutor, id int64) (*domain.Transaction, error) {
	var transaction domain.Transaction
	query := q.Rebind(`SELECT ` + transactionColumns + ` FROM transactions WHERE id = ?`)
	if err := q.GetContext(ctx, &transaction, query, id); err != nil {
		return nil, notFoundOr(err, "failed to get transaction by ID %d", id)
	}
	return &transaction, nil
}

// UpdateTransaction overwrites the editable fields of a transaction.
func (r *TransactionRepository) UpdateTransaction(ctx context.Context, q repository.DBExecutor, transaction *domain.Transaction) error {
	query := q.Rebind(`UPDATE transactions SET title = ?, amount = ?, type = ?, category = ?, wallet_id = ?, date = ?
              WHERE id = ?`)
	result, err := q.ExecContext(ctx, query,
		transaction.Title,
		transaction.Amount,
		transaction.Type,
		transaction.Category,
		transaction.WalletID,
		transaction.Date,
		transaction.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update transaction %d: %w", transaction.ID, err)
	}
	return requireAffected(result, "transaction", transaction.ID)
}

// DeleteTransaction removes a transaction by ID.
func (r *TransactionRepository) DeleteTransaction(ctx context.Context, q repository.DBExecutor, id int64) error {
	result, err := q.ExecContext(ctx, q.Rebind(`DELETE FROM transactions WHERE id = ?`), id)
	if err != nil {
		return fmt.Errorf("failed to delete transaction %d: %w", id, err)
	}
	return requireAffected(result, "transaction", id)
}

// DeleteTransactionsByWalletID removes all transactions booked against a wallet.
func (r *TransactionRepository) DeleteTransactionsByWalletID(ctx context.Context, q repository.DBExecutor, walletID int64) (int64, error) {
	result, err := q.ExecContext(ctx, q.Rebind(`DELETE FROM transactions WHERE wallet_id = ?`), walletID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete transactions of wallet %d: %w", walletID, err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected deleting transactions of wallet %d: %w", walletID, err)
	}
	return n, nil
}

// ListTransactions retrieves a page of transactions matching filter, newest first.
// It performs two queries: one for the data and one for the total count.
func (r *TransactionRepository) ListTransactions(ctx context.Context, q repository.DBExecutor, filter domain.TransactionFilter) ([]domain.Transaction, int64, error) {
	var (
		clauses []string
		args    []interface{}
	)
	if filter.WalletID != nil {
		clauses = append(clauses, "wallet_id = ?")
		args = append(args, *filter.WalletID)
	}
	if filter.Category != "" {
		clauses = append(clauses, "category = ?")
		args = append(args, filter.Category)
	}
	if filter.Type != "" {
		clauses = append(clauses, "type = ?")
		args = append(args, filter.Type)
	}
	if !filter.From.IsZero() {
		clauses = append(clauses, "date >= ?")
		args = append(args, filter.From)
	}
	if !filter.To.IsZero() {
		clauses = append(clauses, "date < ?")
		args = append(args, filter.To)
	}

	// Query 1: Get the matching transactions
	transactions := []domain.Transaction{}
	query := `SELECT ` + transactionColumns + ` FROM transactions` + where(clauses) + ` ORDER BY date DESC, id DESC`
	pageArgs := args
	if filter.Limit > 0 {
		query += ` LIMIT ? OFFSET ?`
		pageArgs = append(append([]interface{}{}, args...), filter.Limit, filter.Offset)
	}
	if err := q.SelectContext(ctx, &transactions, q.Rebind(query), pageArgs...); err != nil {
		return nil, 0, fmt.Errorf("failed to list transactions: %w", err)
	}

	// Query 2: Get the total count of matching transactions
	var totalCount int64
	countQuery := q.Rebind(`SELECT COUNT(*) FROM transactions` + where(clauses))
	if err := q.GetContext(ctx, &totalCount, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to count transactions: %w", err)
	}

	return transactions, totalCount, nil
}
