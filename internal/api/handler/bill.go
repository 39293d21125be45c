// internal/api/handler/bill.go
package handler

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"my-money/internal/domain"
	"my-money/internal/service"
	"my-money/internal/util"
)

// BillHandler handles HTTP requests for recurring bills.
type BillHandler struct {
	responder
	bills service.BillPaymentCoordinator
	now   func() time.Time
}

// NewBillHandler creates a new BillHandler.
func NewBillHandler(bills service.BillPaymentCoordinator, logger *slog.Logger) *BillHandler {
	return &BillHandler{
		responder: responder{logger: logger},
		bills:     bills,
		now:       time.Now,
	}
}

// BillRequest represents the request body for creating or updating a bill.
type BillRequest struct {
	Name     string          `json:"name"`
	Amount   decimal.Decimal `json:"amount"`
	DueDate  int             `json:"due_date"`
	Category string          `json:"category"`
}

func (req BillRequest) input() service.BillInput {
	return service.BillInput{
		Name:     req.Name,
		Amount:   req.Amount,
		DueDate:  req.DueDate,
		Category: req.Category,
	}
}

// PayBillRequest represents the request body for paying a bill.
// Amount defaults to the bill's amount and Date to today.
type PayBillRequest struct {
	WalletID int64            `json:"wallet_id"`
	Amount   *decimal.Decimal `json:"amount"`
	Date     string           `json:"date"`
}

// ListBills handles the bill list with status and paid state.
// GET /bills?month=
func (h *BillHandler) ListBills(w http.ResponseWriter, r *http.Request) {
	now := h.now()
	month, err := monthParam(r, now)
	if err != nil {
		h.respondWithError(w, err)
		return
	}
	views, err := h.bills.ListBills(r.Context(), month, now)
	if err != nil {
		h.respondWithError(w, err)
		return
	}
	h.respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"month": month,
		"data":  views,
	})
}

// GetBill handles the get bill request.
// GET /bills/{billID}
func (h *BillHandler) GetBill(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "billID")
	if err != nil {
		h.respondWithError(w, err)
		return
	}
	bill, err := h.bills.GetBill(r.Context(), id)
	if err != nil {
		h.respondWithError(w, err)
		return
	}
	h.respondWithJSON(w, http.StatusOK, bill)
}

// CreateBill handles the create bill request.
// POST /bills
func (h *BillHandler) CreateBill(w http.ResponseWriter, r *http.Request) {
	var req BillRequest
	if err := decode(r, &req); err != nil {
		h.respondWithError(w, err)
		return
	}
	bill, err := h.bills.CreateBill(r.Context(), SessionFrom(r.Context()), req.input())
	if err != nil {
		h.respondWithError(w, err)
		return
	}
	h.respondWithJSON(w, http.StatusCreated, bill)
}

// UpdateBill handles the update bill request.
// PUT /bills/{billID}
func (h *BillHandler) UpdateBill(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "billID")
	if err != nil {
		h.respondWithError(w, err)
		return
	}
	var req BillRequest
	if err := decode(r, &req); err != nil {
		h.respondWithError(w, err)
		return
	}
	bill, err := h.bills.UpdateBill(r.Context(), SessionFrom(r.Context()), id, req.input())
	if err != nil {
		h.respondWithError(w, err)
		return
	}
	h.respondWithJSON(w, http.StatusOK, bill)
}

// DeleteBill handles the delete bill request.
// DELETE /bills/{billID}
func (h *BillHandler) DeleteBill(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "billID")
	if err != nil {
		h.respondWithError(w, err)
		return
	}
	if err := h.bills.DeleteBill(r.Context(), SessionFrom(r.Context()), id); err != nil {
		h.respondWithError(w, err)
		return
	}
	h.respondWithJSON(w, http.StatusOK, map[string]string{"message": "Bill deleted"})
}

// PayBill handles the pay bill request.
// POST /bills/{billID}/pay
func (h *BillHandler) PayBill(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "billID")
	if err != nil {
		h.respondWithError(w, err)
		return
	}
	var req PayBillRequest
	if err := decode(r, &req); err != nil {
		h.respondWithError(w, err)
		return
	}
	date, err := parseDay("date", req.Date, h.now())
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	var amount decimal.Decimal
	if req.Amount != nil {
		amount = *req.Amount
	} else {
		bill, err := h.bills.GetBill(r.Context(), id)
		if err != nil {
			h.respondWithError(w, err)
			return
		}
		amount = bill.Amount
	}

	result, err := h.bills.Pay(r.Context(), SessionFrom(r.Context()), service.PayBillInput{
		BillID:   id,
		WalletID: req.WalletID,
		Amount:   amount,
		Date:     date,
	})
	if err != nil {
		h.respondWithError(w, err)
		return
	}
	h.respondWithJSON(w, http.StatusCreated, result)
}

// UnpayBill handles reverting a month's payment.
// DELETE /bills/{billID}/payments/{month}
func (h *BillHandler) UnpayBill(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "billID")
	if err != nil {
		h.respondWithError(w, err)
		return
	}
	month := strings.TrimSpace(chi.URLParam(r, "month"))
	if _, err := domain.ParseMonth(month); err != nil {
		h.respondWithError(w, util.NewValidationError("month", "must be formatted as YYYY-MM"))
		return
	}

	removed, err := h.bills.Unpay(r.Context(), SessionFrom(r.Context()), id, month)
	if err != nil {
		h.respondWithError(w, err)
		return
	}
	h.respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"message":     "Bill payment reverted",
		"transaction": removed,
	})
}
