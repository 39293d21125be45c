// internal/domain/transaction.go
package domain

import (
	"time"

	"github.com/shopspring/decimal" // For precise monetary calculations
)

// TransactionType defines the direction of a transaction.
type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "income"
	TransactionTypeExpense TransactionType = "expense"
)

// Valid reports whether t is income or expense.
func (t TransactionType) Valid() bool {
	return t == TransactionTypeIncome || t == TransactionTypeExpense
}

// Effect returns the signed balance change an amount of this type causes.
func (t TransactionType) Effect(amount decimal.Decimal) decimal.Decimal {
	if t == TransactionTypeIncome {
		return amount
	}
	return amount.Neg()
}

// Transaction represents a single income or expense booked against a wallet.
type Transaction struct {
	ID        int64           `db:"id" json:"id"`                 // Primary key
	Title     string          `db:"title" json:"title"`           // Free-form description
	Amount    decimal.Decimal `db:"amount" json:"amount"`         // Always positive
	Type      TransactionType `db:"type" json:"type"`             // income or expense
	Category  string          `db:"category" json:"category"`     // Conventionally one of Categories
	WalletID  int64           `db:"wallet_id" json:"wallet_id"`   // Wallet whose balance it affects
	Date      time.Time       `db:"date" json:"date"`             // User-chosen effective date
	CreatedAt time.Time       `db:"created_at" json:"created_at"` // Timestamp of record creation
}

// NewTransaction creates a new Transaction instance.
func NewTransaction(title string, amount decimal.Decimal, txType TransactionType, category string, walletID int64, date time.Time) *Transaction {
	return &Transaction{
		Title:     title,
		Amount:    amount,
		Type:      txType,
		Category:  category,
		WalletID:  walletID,
		Date:      TruncateDay(date),
		CreatedAt: time.Now().UTC(),
	}
}

// BalanceEffect is the change this transaction applied to its wallet.
func (t *Transaction) BalanceEffect() decimal.Decimal {
	return t.Type.Effect(t.Amount)
}

// Reversal is the change that undoes BalanceEffect.
func (t *Transaction) Reversal() decimal.Decimal {
	return t.BalanceEffect().Neg()
}

// TransactionFilter narrows a transaction listing. Zero values mean "no filter".
type TransactionFilter struct {
	WalletID *int64
	Category string
	Type     TransactionType
	From     time.Time // inclusive
	To       time.Time // exclusive
	Limit    int
	Offset   int
}

// ForMonth restricts the filter to the calendar month identified by month ("2006-01").
func (f TransactionFilter) ForMonth(month string) (TransactionFilter, error) {
	start, err := ParseMonth(month)
	if err != nil {
		return f, err
	}
	f.From = start
	f.To = start.AddDate(0, 1, 0)
	return f, nil
}
