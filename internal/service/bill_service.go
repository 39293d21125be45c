// internal/service/bill_service.go
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"my-money/internal/domain"
	"my-money/internal/metrics"
	"my-money/internal/repository"
	"my-money/internal/util"

	"github.com/shopspring/decimal"
)

// BillInput carries the fields of a recurring bill.
type BillInput struct {
	Name     string
	Amount   decimal.Decimal
	DueDate  int
	Category string
}

func (in BillInput) validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return util.NewValidationError("name", "is required")
	}
	if !in.Amount.IsPositive() {
		return util.NewValidationError("amount", "must be greater than zero")
	}
	if in.DueDate < 1 || in.DueDate > 31 {
		return util.NewValidationError("due_date", "must be a day of month between 1 and 31")
	}
	return nil
}

// PayBillInput identifies one payment of a bill.
type PayBillInput struct {
	BillID   int64
	WalletID int64
	Amount   decimal.Decimal
	Date     time.Time
}

// BillPaymentResult is the expense and the marker created by a payment.
type BillPaymentResult struct {
	Transaction *domain.Transaction `json:"transaction"`
	Payment     *domain.BillPayment `json:"payment"`
}

// BillPaymentCoordinator manages recurring bills and turns them into paid
// expense transactions at most once per month.
type BillPaymentCoordinator interface {
	CreateBill(ctx context.Context, sess domain.Session, in BillInput) (*domain.RecurringBill, error)
	UpdateBill(ctx context.Context, sess domain.Session, id int64, in BillInput) (*domain.RecurringBill, error)
	DeleteBill(ctx context.Context, sess domain.Session, id int64) error
	GetBill(ctx context.Context, id int64) (*domain.RecurringBill, error)
	// ListBills returns every bill with its status relative to today and
	// its paid state for month.
	ListBills(ctx context.Context, month string, today time.Time) ([]domain.BillView, error)
	Pay(ctx context.Context, sess domain.Session, in PayBillInput) (*BillPaymentResult, error)
	// Unpay deletes the payment's transaction through the ledger, which
	// restores the wallet balance, and then removes the marker.
	Unpay(ctx context.Context, sess domain.Session, billID int64, month string) (*domain.Transaction, error)
}

type billPaymentCoordinator struct {
	dbExecutor repository.DBExecutor
	billRepo   repository.BillRepository
	wallets    WalletStore
	ledger     TransactionLedger
	logger     *slog.Logger
	metrics    *metrics.Metrics
}

// NewBillPaymentCoordinator creates a new instance of BillPaymentCoordinator.
func NewBillPaymentCoordinator(
	dbExecutor repository.DBExecutor,
	billRepo repository.BillRepository,
	wallets WalletStore,
	ledger TransactionLedger,
	logger *slog.Logger,
	m *metrics.Metrics,
) BillPaymentCoordinator {
	return &billPaymentCoordinator{
		dbExecutor: dbExecutor,
		billRepo:   billRepo,
		wallets:    wallets,
		ledger:     ledger,
		logger:     logger,
		metrics:    m,
	}
}

func (s *billPaymentCoordinator) CreateBill(ctx context.Context, sess domain.Session, in BillInput) (*domain.RecurringBill, error) {
	if err := in.validate(); err != nil {
		return nil, fmt.Errorf("create bill: %w", err)
	}
	bill := domain.NewRecurringBill(strings.TrimSpace(in.Name), in.Amount, in.DueDate, strings.TrimSpace(in.Category))
	if err := s.billRepo.CreateBill(ctx, s.dbExecutor, bill); err != nil {
		return nil, util.Persistence("create bill", err)
	}
	s.logger.Info("Bill created", append(sess.LogAttrs(), "bill_id", bill.ID, "due_date", bill.DueDate)...)
	return bill, nil
}

func (s *billPaymentCoordinator) UpdateBill(ctx context.Context, sess domain.Session, id int64, in BillInput) (*domain.RecurringBill, error) {
	if err := in.validate(); err != nil {
		return nil, fmt.Errorf("update bill: %w", err)
	}
	bill, err := s.GetBill(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("update bill: %w", err)
	}
	bill.Name = strings.TrimSpace(in.Name)
	bill.Amount = in.Amount
	bill.DueDate = in.DueDate
	if c := strings.TrimSpace(in.Category); c != "" {
		bill.Category = c
	}
	if err := s.billRepo.UpdateBill(ctx, s.dbExecutor, bill); err != nil {
		if util.IsError(err, util.ErrNotFound) {
			return nil, fmt.Errorf("bill %d: %w", id, util.ErrBillNotFound)
		}
		return nil, util.Persistence("update bill", err)
	}
	s.logger.Info("Bill updated", append(sess.LogAttrs(), "bill_id", id)...)
	return bill, nil
}

// DeleteBill removes the template only. Transactions created by earlier
// payments stay in the ledger.
func (s *billPaymentCoordinator) DeleteBill(ctx context.Context, sess domain.Session, id int64) error {
	if err := s.billRepo.DeleteBill(ctx, s.dbExecutor, id); err != nil {
		if util.IsError(err, util.ErrNotFound) {
			return fmt.Errorf("bill %d: %w", id, util.ErrBillNotFound)
		}
		return util.Persistence("delete bill", err)
	}
	s.logger.Info("Bill deleted", append(sess.LogAttrs(), "bill_id", id)...)
	return nil
}

func (s *billPaymentCoordinator) GetBill(ctx context.Context, id int64) (*domain.RecurringBill, error) {
	bill, err := s.billRepo.GetBillByID(ctx, s.dbExecutor, id)
	if err != nil {
		if util.IsError(err, util.ErrNotFound) {
			return nil, fmt.Errorf("bill %d: %w", id, util.ErrBillNotFound)
		}
		return nil, util.Persistence("get bill", err)
	}
	return bill, nil
}

func (s *billPaymentCoordinator) ListBills(ctx context.Context, month string, today time.Time) ([]domain.BillView, error) {
	if _, err := domain.ParseMonth(month); err != nil {
		return nil, util.NewValidationError("month", "must be formatted as yyyy-mm")
	}

	bills, err := s.billRepo.ListBills(ctx, s.dbExecutor)
	if err != nil {
		return nil, util.Persistence("list bills", err)
	}
	payments, err := s.billRepo.ListPaymentsByMonth(ctx, s.dbExecutor, month)
	if err != nil {
		return nil, util.Persistence("list bill payments", err)
	}

	paid := make(map[int64]*domain.BillPayment, len(payments))
	for i := range payments {
		paid[payments[i].BillID] = &payments[i]
	}

	views := make([]domain.BillView, 0, len(bills))
	for _, bill := range bills {
		payment := paid[bill.ID]
		views = append(views, domain.BillView{
			RecurringBill: bill,
			Status:        bill.StatusOn(today),
			DaysLeft:      bill.DaysUntilDue(today),
			Paid:          payment != nil,
			Payment:       payment,
			Actionable:    payment == nil,
		})
	}
	return views, nil
}

func (s *billPaymentCoordinator) Pay(ctx context.Context, sess domain.Session, in PayBillInput) (*BillPaymentResult, error) {
	if !in.Amount.IsPositive() {
		return nil, fmt.Errorf("pay bill: %w", util.NewValidationError("amount", "must be greater than zero"))
	}
	if in.Date.IsZero() {
		return nil, fmt.Errorf("pay bill: %w", util.NewValidationError("date", "is required"))
	}

	bill, err := s.GetBill(ctx, in.BillID)
	if err != nil {
		return nil, fmt.Errorf("pay bill: %w", err)
	}
	wallet, err := s.wallets.GetWallet(ctx, in.WalletID)
	if err != nil {
		return nil, fmt.Errorf("pay bill: %w", err)
	}

	month := domain.MonthOf(in.Date)
	if _, err := s.billRepo.GetPayment(ctx, s.dbExecutor, bill.ID, month); err == nil {
		return nil, fmt.Errorf("pay bill %d for %s: %w", bill.ID, month, util.ErrAlreadyPaid)
	} else if !util.IsError(err, util.ErrNotFound) {
		return nil, util.Persistence("check bill payment", err)
	}

	if wallet.Balance.LessThan(in.Amount) {
		return nil, fmt.Errorf("pay bill: %w", util.NewInsufficientFundsError(wallet.ID, wallet.Balance, in.Amount))
	}

	result := &BillPaymentResult{}
	err = newSequence("bill.pay").
		then("create expense transaction", func(ctx context.Context) error {
			tx, err := s.ledger.Create(ctx, sess, TransactionInput{
				Title:    bill.Name,
				Amount:   in.Amount,
				Type:     domain.TransactionTypeExpense,
				Category: domain.CategoryBills,
				WalletID: wallet.ID,
				Date:     in.Date,
			})
			if err != nil {
				return err
			}
			result.Transaction = tx
			return nil
		}).
		then("record payment marker", func(ctx context.Context) error {
			payment := &domain.BillPayment{
				BillID:        bill.ID,
				Month:         month,
				TransactionID: result.Transaction.ID,
				PaidAt:        time.Now().UTC(),
			}
			if err := s.billRepo.CreatePayment(ctx, s.dbExecutor, payment); err != nil {
				if util.IsError(err, util.ErrDuplicateEntry) {
					return fmt.Errorf("bill %d for %s: %w", bill.ID, month, util.ErrAlreadyPaid)
				}
				return util.Persistence("record bill payment", err)
			}
			result.Payment = payment
			return nil
		}).
		run(ctx, s.logger, s.metrics, sess.LogAttrs()...)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Bill paid",
		append(sess.LogAttrs(),
			"bill_id", bill.ID,
			"month", month,
			"wallet_id", wallet.ID,
			"transaction_id", result.Transaction.ID,
		)...)
	return result, nil
}

func (s *billPaymentCoordinator) Unpay(ctx context.Context, sess domain.Session, billID int64, month string) (*domain.Transaction, error) {
	payment, err := s.billRepo.GetPayment(ctx, s.dbExecutor, billID, month)
	if err != nil {
		if util.IsError(err, util.ErrNotFound) {
			return nil, fmt.Errorf("unpay bill %d for %s: %w", billID, month, util.ErrNotFound)
		}
		return nil, util.Persistence("get bill payment", err)
	}

	var removed *domain.Transaction
	err = newSequence("bill.unpay").
		then("delete expense transaction", func(ctx context.Context) error {
			tx, err := s.ledger.Delete(ctx, sess, payment.TransactionID)
			if util.IsError(err, util.ErrTransactionNotFound) {
				s.logger.Warn("Payment transaction already gone",
					append(sess.LogAttrs(), "bill_id", billID, "transaction_id", payment.TransactionID)...)
				return nil
			}
			// The row is gone but the marker stays: the bill keeps showing as
			// paid and points at a missing transaction until unpaid again.
			var partial *PartialFailureError
			if errors.As(err, &partial) {
				s.logger.Warn("Payment marker left pointing at a deleted transaction",
					append(sess.LogAttrs(),
						"bill_id", billID,
						"month", month,
						"payment_id", payment.ID,
						"transaction_id", payment.TransactionID,
					)...)
			}
			removed = tx
			return err
		}).
		then("remove payment marker", func(ctx context.Context) error {
			if err := s.billRepo.DeletePayment(ctx, s.dbExecutor, payment.ID); err != nil {
				return util.Persistence("remove bill payment", err)
			}
			return nil
		}).
		run(ctx, s.logger, s.metrics, sess.LogAttrs()...)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Bill payment reverted", append(sess.LogAttrs(), "bill_id", billID, "month", month)...)
	return removed, nil
}
