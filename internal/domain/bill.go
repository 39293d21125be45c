// internal/domain/bill.go
package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// SoonThresholdDays is how many days before the due day a bill counts as due soon.
const SoonThresholdDays = 3

// BillStatus is a presentational classification derived on read, never stored.
type BillStatus string

const (
	BillStatusSoon      BillStatus = "soon"
	BillStatusUpcoming  BillStatus = "upcoming"
	BillStatusCompleted BillStatus = "completed"
)

// RecurringBill is a template for a monthly expense.
type RecurringBill struct {
	ID        int64           `db:"id" json:"id"`
	Name      string          `db:"name" json:"name"`
	Amount    decimal.Decimal `db:"amount" json:"amount"`
	DueDate   int             `db:"due_date" json:"due_date"` // Day of month, 1-31
	Category  string          `db:"category" json:"category"`
	CreatedAt time.Time       `db:"created_at" json:"created_at"`
}

// NewRecurringBill creates a new RecurringBill instance.
func NewRecurringBill(name string, amount decimal.Decimal, dueDate int, category string) *RecurringBill {
	if category == "" {
		category = CategoryBills
	}
	return &RecurringBill{
		Name:      name,
		Amount:    amount,
		DueDate:   dueDate,
		Category:  category,
		CreatedAt: time.Now().UTC(),
	}
}

// DaysUntilDue returns how many days are left until the due day in today's month.
// A negative value means the due day has already passed this month.
func (b *RecurringBill) DaysUntilDue(today time.Time) int {
	return b.DueDayIn(today.Year(), today.Month()) - today.Day()
}

// DueDayIn clamps the due day to the last day of the given month, so a bill
// due on the 31st falls due on the 30th in April and on the 28th or 29th in February.
func (b *RecurringBill) DueDayIn(year int, month time.Month) int {
	last := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
	if b.DueDate > last {
		return last
	}
	return b.DueDate
}

// StatusOn classifies the bill relative to today.
func (b *RecurringBill) StatusOn(today time.Time) BillStatus {
	days := b.DaysUntilDue(today)
	switch {
	case days < 0:
		return BillStatusCompleted
	case days <= SoonThresholdDays:
		return BillStatusSoon
	default:
		return BillStatusUpcoming
	}
}

// BillPayment marks a bill as paid for one month and points at the
// transaction that paid it.
type BillPayment struct {
	ID            int64     `db:"id" json:"id"`
	BillID        int64     `db:"bill_id" json:"bill_id"`
	Month         string    `db:"month" json:"month"` // yyyy-mm
	TransactionID int64     `db:"transaction_id" json:"transaction_id"`
	PaidAt        time.Time `db:"paid_at" json:"paid_at"`
}

// BillView is a bill together with its derived state for a given month.
type BillView struct {
	RecurringBill
	Status     BillStatus   `json:"status"`
	DaysLeft   int          `json:"days_left"`
	Paid       bool         `json:"paid"`
	Payment    *BillPayment `json:"payment,omitempty"`
	Actionable bool         `json:"actionable"`
}
