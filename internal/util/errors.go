// internal/util/errors.go
package util

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Common application-specific errors.
var (
	ErrNotFound            = errors.New("resource not found")
	ErrInvalidInput        = errors.New("invalid input provided")
	ErrInsufficientFunds   = errors.New("insufficient funds")
	ErrSelfReference       = errors.New("wallet cannot be its own source")
	ErrWalletNotFound      = errors.New("wallet not found")
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrBillNotFound        = errors.New("bill not found")
	ErrBudgetNotFound      = errors.New("budget not found")
	ErrGoalNotFound        = errors.New("goal not found")
	ErrAlreadyPaid         = errors.New("bill already paid for this month")
	ErrUserCancelled       = errors.New("operation cancelled by user")
	ErrPersistence         = errors.New("persistence failure")
	ErrDuplicateEntry      = errors.New("duplicate entry")
)

// IsError reports whether err matches target anywhere in its chain.
func IsError(err, target error) bool {
	return errors.Is(err, target)
}

// ValidationError describes a rejected input field. It matches ErrInvalidInput.
type ValidationError struct {
	Field  string
	Reason string
}

// NewValidationError creates a ValidationError.
func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Is makes errors.Is(err, ErrInvalidInput) hold.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// InsufficientFundsError carries the amounts shown to the user. It matches ErrInsufficientFunds.
type InsufficientFundsError struct {
	WalletID  int64
	Available decimal.Decimal
	Required  decimal.Decimal
}

// NewInsufficientFundsError creates an InsufficientFundsError.
func NewInsufficientFundsError(walletID int64, available, required decimal.Decimal) *InsufficientFundsError {
	return &InsufficientFundsError{WalletID: walletID, Available: available, Required: required}
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("insufficient funds in wallet %d: available %s, required %s",
		e.WalletID, e.Available.String(), e.Required.String())
}

// Is makes errors.Is(err, ErrInsufficientFunds) hold.
func (e *InsufficientFundsError) Is(target error) bool {
	return target == ErrInsufficientFunds
}

// Persistence wraps a storage failure so that it matches both ErrPersistence and the cause.
func Persistence(op string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w: %w", op, ErrPersistence, err)
}
