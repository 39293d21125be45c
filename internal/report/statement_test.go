// internal/report/statement_test.go
package report

import (
	"bytes"
	"testing"
	"time"

	"my-money/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleStatement() *Statement {
	day := time.Date(2025, 6, 12, 0, 0, 0, 0, time.UTC)
	txs := []domain.Transaction{
		{ID: 1, Title: "Salary", Amount: decimal.NewFromInt(8_000_000), Type: domain.TransactionTypeIncome, Category: domain.CategorySalary, WalletID: 1, Date: day},
		{ID: 2, Title: "Groceries", Amount: decimal.NewFromInt(450_000), Type: domain.TransactionTypeExpense, Category: domain.CategoryFood, WalletID: 1, Date: day},
		{ID: 3, Title: "Lunch", Amount: decimal.NewFromInt(50_000), Type: domain.TransactionTypeExpense, Category: domain.CategoryFood, WalletID: 1, Date: day},
		{ID: 4, Title: "Internet", Amount: decimal.NewFromInt(300_000), Type: domain.TransactionTypeExpense, Category: domain.CategoryBills, WalletID: 2, Date: day},
	}
	wallets := []domain.Wallet{
		{ID: 1, Category: domain.WalletCategoryActive, Balance: decimal.NewFromInt(2_000_000)},
		{ID: 2, Category: domain.WalletCategorySavings, Balance: decimal.NewFromInt(500_000)},
	}
	return BuildStatement(domain.NewSession("Owner", "IDR"), "2025-06", txs, wallets)
}

func TestBuildStatement(t *testing.T) {
	st := sampleStatement()

	assert.True(t, st.Income.Equal(decimal.NewFromInt(8_000_000)))
	assert.True(t, st.Expense.Equal(decimal.NewFromInt(800_000)))
	assert.True(t, st.Net.Equal(decimal.NewFromInt(7_200_000)))
	assert.True(t, st.Wallets.Total.Equal(decimal.NewFromInt(2_500_000)))

	require.Len(t, st.Categories, 3)
	assert.Equal(t, domain.CategoryFood, st.Categories[0].Category)
	assert.True(t, st.Categories[0].Expense.Equal(decimal.NewFromInt(500_000)))
	assert.Equal(t, domain.CategoryBills, st.Categories[1].Category)
	assert.Equal(t, domain.CategorySalary, st.Categories[2].Category)
}

func TestFormatAmount(t *testing.T) {
	formatted := FormatAmount(decimal.NewFromInt(1_500), "USD")
	assert.Contains(t, formatted, "1,500")
	assert.NotEqual(t, FormatAmount(decimal.NewFromInt(-5), "USD"), FormatAmount(decimal.NewFromInt(5), "USD"))
}

func TestRenderPDF(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderPDF(&buf, sampleStatement()))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
}
