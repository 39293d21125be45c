// internal/repository/sqlstore/bill_store.go
package sqlstore

import (
	"context"
	"fmt"

	"my-money/internal/domain"
	"my-money/internal/repository"
	"my-money/internal/util"
)

const (
	billColumns    = `id, name, amount, due_date, category, created_at`
	paymentColumns = `id, bill_id, month, transaction_id, paid_at`
)

// BillRepository implements repository.BillRepository.
type BillRepository struct{}

// NewBillRepository creates a new BillRepository.
func NewBillRepository() repository.BillRepository {
	return &BillRepository{}
}

// CreateBill inserts a new recurring bill.
func (r *BillRepository) CreateBill(ctx context.Context, q repository.DBExecutor, bill *domain.RecurringBill) error {
	query := q.Rebind(`INSERT INTO recurring_bills (name, amount, due_date, category, created_at)
              VALUES (?, ?, ?, ?, ?) RETURNING id`)
	err := q.QueryRowContext(ctx, query, bill.Name, bill.Amount, bill.DueDate, bill.Category, bill.CreatedAt).Scan(&bill.ID)
	if err != nil {
		return fmt.Errorf("failed to create bill: %w", err)
	}
	return nil
}

// GetBillByID retrieves a recurring bill by its ID.
func (r *BillRepository) GetBillByID(ctx context.Context, q repository.DBExecutor, id int64) (*domain.RecurringBill, error) {
	var bill domain.RecurringBill
	query := q.Rebind(`SELECT ` + billColumns + ` FROM recurring_bills WHERE id = ?`)
	if err := q.GetContext(ctx, &bill, query, id); err != nil {
		return nil, notFoundOr(err, "failed to get bill by ID %d", id)
	}
	return &bill, nil
}

// ListBills retrieves all recurring bills ordered by due day.
func (r *BillRepository) ListBills(ctx context.Context, q repository.DBExecutor) ([]domain.RecurringBill, error) {
	bills := []domain.RecurringBill{}
	query := `SELECT ` + billColumns + ` FROM recurring_bills ORDER BY due_date, id`
	if err := q.SelectContext(ctx, &bills, query); err != nil {
		return nil, fmt.Errorf("failed to list bills: %w", err)
	}
	return bills, nil
}

// UpdateBill overwrites the fields of a recurring bill.
func (r *BillRepository) UpdateBill(ctx context.Context, q repository.DBExecutor, bill *domain.RecurringBill) error {
	query := q.Rebind(`UPDATE recurring_bills SET name = ?, amount = ?, due_date = ?, category = ? WHERE id = ?`)
	result, err := q.ExecContext(ctx, query, bill.Name, bill.Amount, bill.DueDate, bill.Category, bill.ID)
	if err != nil {
		return fmt.Errorf("failed to update bill %d: %w", bill.ID, err)
	}
	return requireAffected(result, "bill", bill.ID)
}

// DeleteBill removes a recurring bill. Its payment markers are kept as history.
func (r *BillRepository) DeleteBill(ctx context.Context, q repository.DBExecutor, id int64) error {
	result, err := q.ExecContext(ctx, q.Rebind(`DELETE FROM recurring_bills WHERE id = ?`), id)
	if err != nil {
		return fmt.Errorf("failed to delete bill %d: %w", id, err)
	}
	return requireAffected(result, "bill", id)
}

// CreatePayment inserts a payment marker.
func (r *BillRepository) CreatePayment(ctx context.Context, q repository.DBExecutor, payment *domain.BillPayment) error {
	query := q.Rebind(`INSERT INTO bill_payments (bill_id, month, transaction_id, paid_at)
              VALUES (?, ?, ?, ?) RETURNING id`)
	err := q.QueryRowContext(ctx, query, payment.BillID, payment.Month, payment.TransactionID, payment.PaidAt).Scan(&payment.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return util.ErrDuplicateEntry
		}
		return fmt.Errorf("failed to create bill payment: %w", err)
	}
	return nil
}

// GetPayment retrieves the payment marker of a bill for a month.
func (r *BillRepository) GetPayment(ctx context.Context, q repository.DBExecutor, billID int64, month string) (*domain.BillPayment, error) {
	var payment domain.BillPayment
	query := q.Rebind(`SELECT ` + paymentColumns + ` FROM bill_payments WHERE bill_id = ? AND month = ?`)
	if err := q.GetContext(ctx, &payment, query, billID, month); err != nil {
		return nil, notFoundOr(err, "failed to get payment of bill %d for %s", billID, month)
	}
	return &payment, nil
}

// ListPaymentsByMonth retrieves all payment markers of a month.
func (r *BillRepository) ListPaymentsByMonth(ctx context.Context, q repository.DBExecutor, month string) ([]domain.BillPayment, error) {
	payments := []domain.BillPayment{}
	query := q.Rebind(`SELECT ` + paymentColumns + ` FROM bill_payments WHERE month = ? ORDER BY id`)
	if err := q.SelectContext(ctx, &payments, query, month); err != nil {
		return nil, fmt.Errorf("failed to list payments for %s: %w", month, err)
	}
	return payments, nil
}

// DeletePayment removes a payment marker.
func (r *BillRepository) DeletePayment(ctx context.Context, q repository.DBExecutor, id int64) error {
	result, err := q.ExecContext(ctx, q.Rebind(`DELETE FROM bill_payments WHERE id = ?`), id)
	if err != nil {
		return fmt.Errorf("failed to delete bill payment %d: %w", id, err)
	}
	return requireAffected(result, "bill payment", id)
}
