// internal/report/statement.go
package report

import (
	"context"
	"fmt"
	"sort"
	"time"

	"my-money/internal/domain"
	"my-money/internal/repository"
	"my-money/internal/service"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// CategoryTotal sums one category's income and expense for the month.
type CategoryTotal struct {
	Category string          `json:"category"`
	Income   decimal.Decimal `json:"income"`
	Expense  decimal.Decimal `json:"expense"`
}

// Statement is the monthly summary behind the PDF export.
type Statement struct {
	Month        string               `json:"month"`
	Owner        string               `json:"owner"`
	Currency     string               `json:"currency"`
	Income       decimal.Decimal      `json:"income"`
	Expense      decimal.Decimal      `json:"expense"`
	Net          decimal.Decimal      `json:"net"`
	Categories   []CategoryTotal      `json:"categories"`
	Transactions []domain.Transaction `json:"transactions"`
	Wallets      domain.WalletTotals  `json:"wallets"`
	GeneratedAt  time.Time            `json:"generated_at"`
}

// BuildStatement totals txs, which must already be restricted to month.
func BuildStatement(sess domain.Session, month string, txs []domain.Transaction, wallets []domain.Wallet) *Statement {
	st := &Statement{
		Month:        month,
		Owner:        sess.DisplayName,
		Currency:     sess.Currency,
		Income:       decimal.Zero,
		Expense:      decimal.Zero,
		Transactions: txs,
		Wallets:      domain.SumWallets(wallets),
		GeneratedAt:  time.Now().UTC(),
	}

	byCategory := map[string]*CategoryTotal{}
	for _, tx := range txs {
		ct, ok := byCategory[tx.Category]
		if !ok {
			ct = &CategoryTotal{Category: tx.Category, Income: decimal.Zero, Expense: decimal.Zero}
			byCategory[tx.Category] = ct
		}
		if tx.Type == domain.TransactionTypeIncome {
			st.Income = st.Income.Add(tx.Amount)
			ct.Income = ct.Income.Add(tx.Amount)
		} else {
			st.Expense = st.Expense.Add(tx.Amount)
			ct.Expense = ct.Expense.Add(tx.Amount)
		}
	}
	st.Net = st.Income.Sub(st.Expense)

	for _, ct := range byCategory {
		st.Categories = append(st.Categories, *ct)
	}
	// Biggest spenders first, then by name for a stable order.
	sort.Slice(st.Categories, func(i, j int) bool {
		a, b := st.Categories[i], st.Categories[j]
		if !a.Expense.Equal(b.Expense) {
			return a.Expense.GreaterThan(b.Expense)
		}
		return a.Category < b.Category
	})
	return st
}

// FormatAmount renders amount in the currency's display format.
func FormatAmount(amount decimal.Decimal, currency string) string {
	// money.New never returns a nil currency, unknown codes included.
	cur := *money.New(0, currency).Currency()
	minor := amount.Shift(int32(cur.Fraction)).Round(0).IntPart()
	return cur.Formatter().Format(minor)
}

// Service loads the data for a statement from the ledger.
type Service struct {
	ledger  service.TransactionLedger
	wallets service.WalletStore
}

// NewService creates a new statement Service.
func NewService(ledger service.TransactionLedger, wallets service.WalletStore) *Service {
	return &Service{ledger: ledger, wallets: wallets}
}

// Statement builds the statement for month ("yyyy-mm").
func (s *Service) Statement(ctx context.Context, sess domain.Session, month string) (*Statement, error) {
	filter, err := domain.TransactionFilter{}.ForMonth(month)
	if err != nil {
		return nil, fmt.Errorf("statement: %w", err)
	}
	txs, _, err := s.ledger.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("statement: %w", err)
	}
	wallets, err := s.wallets.ListWallets(ctx, repository.WalletFilter{})
	if err != nil {
		return nil, fmt.Errorf("statement: %w", err)
	}
	return BuildStatement(sess, month, txs, wallets), nil
}
