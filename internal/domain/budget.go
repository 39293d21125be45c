// internal/domain/budget.go
package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Budget caps spending in one category for one month.
type Budget struct {
	ID        int64           `db:"id" json:"id"`
	Category  string          `db:"category" json:"category"`
	Limit     decimal.Decimal `db:"amount_limit" json:"limit"`
	Month     string          `db:"month" json:"month"` // yyyy-mm
	CreatedAt time.Time       `db:"created_at" json:"created_at"`
}

// BudgetUsage is a budget with its spent amount computed from transactions.
type BudgetUsage struct {
	Budget
	Spent     decimal.Decimal `json:"spent"`
	Remaining decimal.Decimal `json:"remaining"`
	Exceeded  bool            `json:"exceeded"`
}

// Usage sums the expense transactions of txs that fall in the budget's
// category and month.
func (b Budget) Usage(txs []Transaction) BudgetUsage {
	spent := decimal.Zero
	for _, tx := range txs {
		if tx.Type != TransactionTypeExpense || tx.Category != b.Category {
			continue
		}
		if MonthOf(tx.Date) != b.Month {
			continue
		}
		spent = spent.Add(tx.Amount)
	}
	remaining := b.Limit.Sub(spent)
	return BudgetUsage{
		Budget:    b,
		Spent:     spent,
		Remaining: remaining,
		Exceeded:  remaining.IsNegative(),
	}
}
