// internal/repository/bill_repo.go
package repository

import (
	"context"

	"my-money/internal/domain"
)

// BillRepository defines the interface for recurring bills and their payment markers.
type BillRepository interface {
	CreateBill(ctx context.Context, q DBExecutor, bill *domain.RecurringBill) error
	GetBillByID(ctx context.Context, q DBExecutor, id int64) (*domain.RecurringBill, error)
	ListBills(ctx context.Context, q DBExecutor) ([]domain.RecurringBill, error)
	UpdateBill(ctx context.Context, q DBExecutor, bill *domain.RecurringBill) error
	DeleteBill(ctx context.Context, q DBExecutor, id int64) error

	// CreatePayment records a bill as paid for payment.Month.
	// A second marker for the same bill and month yields util.ErrDuplicateEntry.
	CreatePayment(ctx context.Context, q DBExecutor, payment *domain.BillPayment) error
	// GetPayment returns the marker for a bill and month, or util.ErrNotFound.
	GetPayment(ctx context.Context, q DBExecutor, billID int64, month string) (*domain.BillPayment, error)
	// ListPaymentsByMonth returns every marker of a month.
	ListPaymentsByMonth(ctx context.Context, q DBExecutor, month string) ([]domain.BillPayment, error)
	// DeletePayment removes a marker, or returns util.ErrNotFound.
	DeletePayment(ctx context.Context, q DBExecutor, id int64) error
}
