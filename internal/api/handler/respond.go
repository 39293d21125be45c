// internal/api/handler/respond.go
package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"my-money/internal/domain"
	"my-money/internal/service"
	"my-money/internal/util" // For custom errors
)

// DefaultTimeout bounds every request.
const DefaultTimeout = 30 * time.Second

// notFoundErrors are reported as 404 with the sentinel's own message.
var notFoundErrors = []error{
	util.ErrWalletNotFound,
	util.ErrTransactionNotFound,
	util.ErrBillNotFound,
	util.ErrBudgetNotFound,
	util.ErrGoalNotFound,
	util.ErrNotFound,
}

// responder holds the JSON helpers shared by every handler.
type responder struct {
	logger *slog.Logger
}

// Helper function to send JSON responses.
func (h responder) respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		h.logger.Error("Failed to marshal JSON response", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(response)
}

// Helper function to send error responses.
func (h responder) respondWithError(w http.ResponseWriter, err error) {
	statusCode := http.StatusInternalServerError
	message := "Internal server error"

	var (
		insufficient *util.InsufficientFundsError
		partial      *service.PartialFailureError
	)

	switch {
	case util.IsError(err, util.ErrInvalidInput):
		statusCode = http.StatusBadRequest
		message = err.Error() // Use the error message directly for invalid input
	case util.IsError(err, util.ErrSelfReference):
		statusCode = http.StatusBadRequest
		message = util.ErrSelfReference.Error()
	case errors.As(err, &insufficient):
		statusCode = http.StatusPaymentRequired // 402 Payment Required
		message = insufficient.Error()
	case util.IsError(err, util.ErrInsufficientFunds):
		statusCode = http.StatusPaymentRequired
		message = "Insufficient funds"
	case util.IsError(err, util.ErrAlreadyPaid):
		statusCode = http.StatusConflict
		message = util.ErrAlreadyPaid.Error()
	case util.IsError(err, util.ErrUserCancelled):
		statusCode = http.StatusConflict
		message = "Source wallet no longer exists; resend with confirm_orphaned_refund=true to drop the refund"
	case errors.As(err, &partial):
		message = "Operation failed after partially applying changes"
		h.logger.Error("Partially applied operation", "error", err)
	default:
		for _, target := range notFoundErrors {
			if util.IsError(err, target) {
				statusCode = http.StatusNotFound
				message = target.Error()
				break
			}
		}
		if statusCode == http.StatusInternalServerError {
			h.logger.Error("Unhandled service error", "error", err)
		}
	}

	h.respondWithJSON(w, statusCode, map[string]string{"error": message})
}

// decode reads a JSON request body into dst.
func decode(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return util.NewValidationError("body", "malformed JSON: "+err.Error())
	}
	return nil
}

// idParam parses a positive int64 URL parameter.
func idParam(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, util.NewValidationError(name, "must be a positive integer")
	}
	return id, nil
}

// parseDay parses a "2006-01-02" date, defaulting to today when empty.
func parseDay(field, s string, now time.Time) (time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return domain.TruncateDay(now), nil
	}
	t, err := domain.ParseDate(s)
	if err != nil {
		return time.Time{}, util.NewValidationError(field, "must be formatted as YYYY-MM-DD")
	}
	return t, nil
}

// monthParam reads ?month=, defaulting to the current month.
func monthParam(r *http.Request, now time.Time) (string, error) {
	month := strings.TrimSpace(r.URL.Query().Get("month"))
	if month == "" {
		return domain.MonthOf(now), nil
	}
	if _, err := domain.ParseMonth(month); err != nil {
		return "", util.NewValidationError("month", "must be formatted as YYYY-MM")
	}
	return month, nil
}
