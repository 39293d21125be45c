// internal/repository/sqlstore/sqlstore_test.go
package sqlstore

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"my-money/internal/domain"
	"my-money/internal/repository"
	"my-money/internal/util"
	"my-money/pkg/db"
)

// openTestDB creates a fresh SQLite database with the schema applied.
func openTestDB(t *testing.T) *sqlx.DB {
	t.Helper()
	conn, err := db.Open(context.Background(), db.Config{
		Driver: db.DriverSQLite,
		Path:   filepath.Join(t.TempDir(), "test.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestWalletRepository(t *testing.T) {
	ctx := context.Background()
	conn := openTestDB(t)
	repo := NewWalletRepository()

	source := domain.NewWallet("BCA", domain.WalletTypeBank, domain.WalletCategoryActive, decimal.NewFromInt(5_000_000))
	require.NoError(t, repo.CreateWallet(ctx, conn, source))
	require.NotZero(t, source.ID)

	savings := domain.NewWallet("Emergency fund", domain.WalletTypeBank, domain.WalletCategorySavings, decimal.RequireFromString("1000000.25"))
	savings.SourceWalletID = &source.ID
	require.NoError(t, repo.CreateWallet(ctx, conn, savings))

	t.Run("GetWalletByID round-trips fields", func(t *testing.T) {
		got, err := repo.GetWalletByID(ctx, conn, savings.ID)
		require.NoError(t, err)
		assert.Equal(t, "Emergency fund", got.Name)
		assert.Equal(t, domain.WalletCategorySavings, got.Category)
		assert.True(t, decimal.RequireFromString("1000000.25").Equal(got.Balance))
		require.NotNil(t, got.SourceWalletID)
		assert.Equal(t, source.ID, *got.SourceWalletID)
	})

	t.Run("GetWalletByID not found", func(t *testing.T) {
		_, err := repo.GetWalletByID(ctx, conn, 9999)
		assert.ErrorIs(t, err, util.ErrNotFound)
	})

	t.Run("ListWallets filters by category", func(t *testing.T) {
		all, err := repo.ListWallets(ctx, conn, repository.WalletFilter{})
		require.NoError(t, err)
		assert.Len(t, all, 2)

		onlySavings, err := repo.ListWallets(ctx, conn, repository.WalletFilter{Category: domain.WalletCategorySavings})
		require.NoError(t, err)
		require.Len(t, onlySavings, 1)
		assert.Equal(t, savings.ID, onlySavings[0].ID)
	})

	t.Run("UpdateWalletBalance writes absolute value", func(t *testing.T) {
		require.NoError(t, repo.UpdateWalletBalance(ctx, conn, source.ID, decimal.NewFromInt(4_000_000)))
		got, err := repo.GetWalletByID(ctx, conn, source.ID)
		require.NoError(t, err)
		assert.True(t, decimal.NewFromInt(4_000_000).Equal(got.Balance))

		err = repo.UpdateWalletBalance(ctx, conn, 9999, decimal.Zero)
		assert.ErrorIs(t, err, util.ErrNotFound)
	})

	t.Run("UpdateWallet clears source", func(t *testing.T) {
		savings.SourceWalletID = nil
		savings.Name = "Rainy day"
		require.NoError(t, repo.UpdateWallet(ctx, conn, savings))

		got, err := repo.GetWalletByID(ctx, conn, savings.ID)
		require.NoError(t, err)
		assert.Nil(t, got.SourceWalletID)
		assert.Equal(t, "Rainy day", got.Name)
	})

	t.Run("DeleteWallet", func(t *testing.T) {
		require.NoError(t, repo.DeleteWallet(ctx, conn, savings.ID))
		assert.ErrorIs(t, repo.DeleteWallet(ctx, conn, savings.ID), util.ErrNotFound)
	})
}

func TestTransactionRepository(t *testing.T) {
	ctx := context.Background()
	conn := openTestDB(t)
	repo := NewTransactionRepository()

	oct := time.Date(2026, time.October, 5, 0, 0, 0, 0, time.UTC)
	nov := time.Date(2026, time.November, 1, 0, 0, 0, 0, time.UTC)

	lunch := domain.NewTransaction("Lunch", decimal.NewFromInt(50_000), domain.TransactionTypeExpense, domain.CategoryFood, 1, oct)
	salary := domain.NewTransaction("Salary", decimal.NewFromInt(8_000_000), domain.TransactionTypeIncome, domain.CategorySalary, 1, oct)
	bus := domain.NewTransaction("Bus", decimal.NewFromInt(10_000), domain.TransactionTypeExpense, domain.CategoryTransport, 2, nov)
	for _, tx := range []*domain.Transaction{lunch, salary, bus} {
		require.NoError(t, repo.CreateTransaction(ctx, conn, tx))
	}

	t.Run("GetTransactionByID", func(t *testing.T) {
		got, err := repo.GetTransactionByID(ctx, conn, lunch.ID)
		require.NoError(t, err)
		assert.Equal(t, "Lunch", got.Title)
		assert.Equal(t, domain.TransactionTypeExpense, got.Type)
		assert.True(t, decimal.NewFromInt(50_000).Equal(got.Amount))
		assert.True(t, oct.Equal(got.Date), "date should round-trip, got %s", got.Date)

		_, err = repo.GetTransactionByID(ctx, conn, 9999)
		assert.ErrorIs(t, err, util.ErrNotFound)
	})

	t.Run("ListTransactions by wallet", func(t *testing.T) {
		walletID := int64(1)
		txs, total, err := repo.ListTransactions(ctx, conn, domain.TransactionFilter{WalletID: &walletID})
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
		assert.Len(t, txs, 2)
	})

	t.Run("ListTransactions by month and category", func(t *testing.T) {
		filter, err := domain.TransactionFilter{Category: domain.CategoryFood}.ForMonth("2026-10")
		require.NoError(t, err)
		txs, total, err := repo.ListTransactions(ctx, conn, filter)
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, txs, 1)
		assert.Equal(t, lunch.ID, txs[0].ID)

		filter, err = domain.TransactionFilter{}.ForMonth("2026-11")
		require.NoError(t, err)
		txs, _, err = repo.ListTransactions(ctx, conn, filter)
		require.NoError(t, err)
		require.Len(t, txs, 1)
		assert.Equal(t, bus.ID, txs[0].ID)
	})

	t.Run("ListTransactions paginates", func(t *testing.T) {
		txs, total, err := repo.ListTransactions(ctx, conn, domain.TransactionFilter{Limit: 1, Offset: 1})
		require.NoError(t, err)
		assert.Equal(t, int64(3), total)
		assert.Len(t, txs, 1)
	})

	t.Run("UpdateTransaction", func(t *testing.T) {
		lunch.Amount = decimal.NewFromInt(75_000)
		lunch.WalletID = 2
		require.NoError(t, repo.UpdateTransaction(ctx, conn, lunch))

		got, err := repo.GetTransactionByID(ctx, conn, lunch.ID)
		require.NoError(t, err)
		assert.True(t, decimal.NewFromInt(75_000).Equal(got.Amount))
		assert.Equal(t, int64(2), got.WalletID)
	})

	t.Run("DeleteTransactionsByWalletID", func(t *testing.T) {
		n, err := repo.DeleteTransactionsByWalletID(ctx, conn, 2)
		require.NoError(t, err)
		assert.Equal(t, int64(2), n)

		assert.ErrorIs(t, repo.DeleteTransaction(ctx, conn, bus.ID), util.ErrNotFound)
		require.NoError(t, repo.DeleteTransaction(ctx, conn, salary.ID))
	})
}

func TestBillRepository(t *testing.T) {
	ctx := context.Background()
	conn := openTestDB(t)
	repo := NewBillRepository()

	internet := domain.NewRecurringBill("Internet", decimal.NewFromInt(350_000), 10, "")
	require.NoError(t, repo.CreateBill(ctx, conn, internet))
	assert.Equal(t, domain.CategoryBills, internet.Category)

	payment := &domain.BillPayment{BillID: internet.ID, Month: "2026-10", TransactionID: 42, PaidAt: time.Now().UTC()}
	require.NoError(t, repo.CreatePayment(ctx, conn, payment))

	t.Run("duplicate marker is rejected", func(t *testing.T) {
		dup := &domain.BillPayment{BillID: internet.ID, Month: "2026-10", TransactionID: 43, PaidAt: time.Now().UTC()}
		assert.ErrorIs(t, repo.CreatePayment(ctx, conn, dup), util.ErrDuplicateEntry)
	})

	t.Run("GetPayment", func(t *testing.T) {
		got, err := repo.GetPayment(ctx, conn, internet.ID, "2026-10")
		require.NoError(t, err)
		assert.Equal(t, int64(42), got.TransactionID)

		_, err = repo.GetPayment(ctx, conn, internet.ID, "2026-11")
		assert.ErrorIs(t, err, util.ErrNotFound)
	})

	t.Run("ListPaymentsByMonth and DeletePayment", func(t *testing.T) {
		payments, err := repo.ListPaymentsByMonth(ctx, conn, "2026-10")
		require.NoError(t, err)
		require.Len(t, payments, 1)

		require.NoError(t, repo.DeletePayment(ctx, conn, payments[0].ID))
		payments, err = repo.ListPaymentsByMonth(ctx, conn, "2026-10")
		require.NoError(t, err)
		assert.Empty(t, payments)
	})

	t.Run("UpdateBill and DeleteBill", func(t *testing.T) {
		internet.DueDate = 15
		require.NoError(t, repo.UpdateBill(ctx, conn, internet))
		bills, err := repo.ListBills(ctx, conn)
		require.NoError(t, err)
		require.Len(t, bills, 1)
		assert.Equal(t, 15, bills[0].DueDate)

		require.NoError(t, repo.DeleteBill(ctx, conn, internet.ID))
		_, err = repo.GetBillByID(ctx, conn, internet.ID)
		assert.ErrorIs(t, err, util.ErrNotFound)
	})
}

func TestPlanningRepositories(t *testing.T) {
	ctx := context.Background()
	conn := openTestDB(t)
	budgets := NewBudgetRepository()
	goals := NewGoalRepository()

	food := &domain.Budget{Category: domain.CategoryFood, Limit: decimal.NewFromInt(2_000_000), Month: "2026-10", CreatedAt: time.Now().UTC()}
	require.NoError(t, budgets.CreateBudget(ctx, conn, food))

	dup := &domain.Budget{Category: domain.CategoryFood, Limit: decimal.NewFromInt(1), Month: "2026-10", CreatedAt: time.Now().UTC()}
	assert.ErrorIs(t, budgets.CreateBudget(ctx, conn, dup), util.ErrDuplicateEntry)

	list, err := budgets.ListBudgets(ctx, conn, "2026-10")
	require.NoError(t, err)
	assert.Len(t, list, 1)
	list, err = budgets.ListBudgets(ctx, conn, "2026-11")
	require.NoError(t, err)
	assert.Empty(t, list)

	deadline := time.Date(2027, time.June, 1, 0, 0, 0, 0, time.UTC)
	laptop := &domain.Goal{Name: "Laptop", TargetAmount: decimal.NewFromInt(15_000_000), CurrentAmount: decimal.Zero, Deadline: &deadline, CreatedAt: time.Now().UTC()}
	require.NoError(t, goals.CreateGoal(ctx, conn, laptop))
	require.NoError(t, goals.UpdateGoalAmount(ctx, conn, laptop.ID, decimal.NewFromInt(500_000)))

	got, err := goals.GetGoalByID(ctx, conn, laptop.ID)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(500_000).Equal(got.CurrentAmount))
	require.NotNil(t, got.Deadline)
	assert.True(t, deadline.Equal(*got.Deadline))

	require.NoError(t, goals.DeleteGoal(ctx, conn, laptop.ID))
	assert.ErrorIs(t, goals.DeleteGoal(ctx, conn, laptop.ID), util.ErrNotFound)
}
