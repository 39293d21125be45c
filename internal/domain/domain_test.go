// internal/domain/domain_test.go
package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestTransactionEffect(t *testing.T) {
	amount := decimal.NewFromInt(250)

	income := NewTransaction("Salary", amount, TransactionTypeIncome, CategorySalary, 1, time.Now())
	assert.True(t, amount.Equal(income.BalanceEffect()))
	assert.True(t, amount.Neg().Equal(income.Reversal()))

	expense := NewTransaction("Lunch", amount, TransactionTypeExpense, CategoryFood, 1, time.Now())
	assert.True(t, amount.Neg().Equal(expense.BalanceEffect()))
	assert.True(t, amount.Equal(expense.Reversal()))

	assert.False(t, TransactionType("transfer").Valid())
}

func TestNewTransactionTruncatesDate(t *testing.T) {
	tx := NewTransaction("Taxi", decimal.NewFromInt(10), TransactionTypeExpense, CategoryTransport, 1,
		time.Date(2025, time.May, 4, 21, 30, 0, 0, time.UTC))
	assert.Equal(t, day(2025, time.May, 4), tx.Date)
}

func TestTransactionFilterForMonth(t *testing.T) {
	f, err := TransactionFilter{Category: CategoryFood}.ForMonth("2024-12")
	require.NoError(t, err)
	assert.Equal(t, CategoryFood, f.Category)
	assert.Equal(t, day(2024, time.December, 1), f.From)
	assert.Equal(t, day(2025, time.January, 1), f.To)

	_, err = TransactionFilter{}.ForMonth("12-2024")
	assert.Error(t, err)
}

func TestBillStatusOn(t *testing.T) {
	bill := NewRecurringBill("Electricity", decimal.NewFromInt(90), 15, "")
	assert.Equal(t, CategoryBills, bill.Category)

	tests := []struct {
		name  string
		today time.Time
		days  int
		want  BillStatus
	}{
		{"Upcoming", day(2025, time.June, 1), 14, BillStatusUpcoming},
		{"SoonAtThreshold", day(2025, time.June, 12), 3, BillStatusSoon},
		{"DueToday", day(2025, time.June, 15), 0, BillStatusSoon},
		{"Passed", day(2025, time.June, 16), -1, BillStatusCompleted},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.days, bill.DaysUntilDue(tt.today))
			assert.Equal(t, tt.want, bill.StatusOn(tt.today))
		})
	}
}

func TestBudgetUsage(t *testing.T) {
	budget := Budget{Category: CategoryFood, Limit: decimal.NewFromInt(100), Month: "2025-02"}
	txs := []Transaction{
		{Amount: decimal.NewFromInt(60), Type: TransactionTypeExpense, Category: CategoryFood, Date: day(2025, time.February, 3)},
		{Amount: decimal.NewFromInt(55), Type: TransactionTypeExpense, Category: CategoryFood, Date: day(2025, time.February, 20)},
		{Amount: decimal.NewFromInt(500), Type: TransactionTypeIncome, Category: CategoryFood, Date: day(2025, time.February, 1)},
		{Amount: decimal.NewFromInt(30), Type: TransactionTypeExpense, Category: CategoryTransport, Date: day(2025, time.February, 5)},
		{Amount: decimal.NewFromInt(40), Type: TransactionTypeExpense, Category: CategoryFood, Date: day(2025, time.March, 1)},
	}

	usage := budget.Usage(txs)
	assert.True(t, decimal.NewFromInt(115).Equal(usage.Spent))
	assert.True(t, decimal.NewFromInt(-15).Equal(usage.Remaining))
	assert.True(t, usage.Exceeded)

	assert.False(t, budget.Usage(nil).Exceeded)
}

func TestGoalProgress(t *testing.T) {
	g := Goal{TargetAmount: decimal.NewFromInt(200), CurrentAmount: decimal.NewFromInt(50)}
	assert.True(t, decimal.NewFromInt(25).Equal(g.Progress()))
	assert.False(t, g.Reached())

	g.CurrentAmount = decimal.NewFromInt(300)
	assert.True(t, decimal.NewFromInt(100).Equal(g.Progress()))
	assert.True(t, g.Reached())

	assert.True(t, Goal{}.Progress().IsZero())
}

func TestWalletKinds(t *testing.T) {
	w := NewWallet("Pocket", WalletTypeCash, WalletCategoryActive, decimal.NewFromInt(5))
	assert.False(t, w.IsLinked())
	assert.True(t, w.Type.Valid())
	assert.True(t, w.Category.Valid())
	assert.False(t, WalletType("crypto").Valid())
	assert.False(t, WalletCategory("loan").Valid())
}

func TestSessionAndCategories(t *testing.T) {
	s := NewSession("Dewi", "")
	assert.Equal(t, DefaultCurrency, s.Currency)
	assert.NotEmpty(t, s.ID)
	assert.NotEqual(t, s.ID, NewSession("Dewi", "").ID)
	assert.Equal(t, []any{"session_id", s.ID, "user", "Dewi"}, s.LogAttrs())

	assert.True(t, IsKnownCategory(CategoryBills))
	assert.False(t, IsKnownCategory("Groceries"))
	assert.Equal(t, "2025-07", MonthOf(day(2025, time.July, 31)))
}

func TestBillDueDayClampedToMonthEnd(t *testing.T) {
	bill := NewRecurringBill("Rent", decimal.NewFromInt(1000), 31, "")

	assert.Equal(t, 28, bill.DueDayIn(2025, time.February))
	assert.Equal(t, 29, bill.DueDayIn(2024, time.February))
	assert.Equal(t, 30, bill.DueDayIn(2025, time.April))
	assert.Equal(t, 31, bill.DueDayIn(2025, time.December))

	assert.Equal(t, 0, bill.DaysUntilDue(day(2025, time.February, 28)))
	assert.Equal(t, BillStatusSoon, bill.StatusOn(day(2025, time.February, 26)))
	assert.Equal(t, 3, bill.DaysUntilDue(day(2025, time.April, 27)))

	early := NewRecurringBill("Fees", decimal.NewFromInt(10), 29, "")
	assert.Equal(t, 28, early.DueDayIn(2025, time.February))
	assert.Equal(t, BillStatusCompleted, NewRecurringBill("Card", decimal.NewFromInt(10), 30, "").StatusOn(day(2025, time.March, 31)))
}
