// internal/api/handler/transaction.go
package handler

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"my-money/internal/api/types"
	"my-money/internal/domain"
	"my-money/internal/service"
	"my-money/internal/util"
)

// TransactionHandler handles HTTP requests for ledger transactions.
type TransactionHandler struct {
	responder
	ledger service.TransactionLedger
	now    func() time.Time
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(ledger service.TransactionLedger, logger *slog.Logger) *TransactionHandler {
	return &TransactionHandler{
		responder: responder{logger: logger},
		ledger:    ledger,
		now:       time.Now,
	}
}

// TransactionRequest represents the request body for creating or updating a transaction.
type TransactionRequest struct {
	Title    string                 `json:"title"`
	Amount   decimal.Decimal        `json:"amount"`
	Type     domain.TransactionType `json:"type"`
	Category string                 `json:"category"`
	WalletID int64                  `json:"wallet_id"`
	Date     string                 `json:"date"` // YYYY-MM-DD, defaults to today
}

func (req TransactionRequest) input(now time.Time) (service.TransactionInput, error) {
	date, err := parseDay("date", req.Date, now)
	if err != nil {
		return service.TransactionInput{}, err
	}
	return service.TransactionInput{
		Title:    req.Title,
		Amount:   req.Amount,
		Type:     req.Type,
		Category: req.Category,
		WalletID: req.WalletID,
		Date:     date,
	}, nil
}

// ListTransactions handles the filtered transaction list.
// GET /transactions?wallet_id=&category=&type=&month=&from=&to=&limit=&offset=
func (h *TransactionHandler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := domain.TransactionFilter{
		Category: q.Get("category"),
		Type:     domain.TransactionType(q.Get("type")),
	}
	if filter.Type != "" && !filter.Type.Valid() {
		h.respondWithError(w, util.NewValidationError("type", "must be income or expense"))
		return
	}
	if v := q.Get("wallet_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			h.respondWithError(w, util.NewValidationError("wallet_id", "must be an integer"))
			return
		}
		filter.WalletID = &id
	}
	if month := q.Get("month"); month != "" {
		var err error
		if filter, err = filter.ForMonth(month); err != nil {
			h.respondWithError(w, util.NewValidationError("month", "must be formatted as YYYY-MM"))
			return
		}
	}
	if v := q.Get("from"); v != "" {
		from, err := domain.ParseDate(v)
		if err != nil {
			h.respondWithError(w, util.NewValidationError("from", "must be formatted as YYYY-MM-DD"))
			return
		}
		filter.From = from
	}
	if v := q.Get("to"); v != "" {
		to, err := domain.ParseDate(v)
		if err != nil {
			h.respondWithError(w, util.NewValidationError("to", "must be formatted as YYYY-MM-DD"))
			return
		}
		// The query bound is inclusive, the filter's is exclusive.
		filter.To = to.AddDate(0, 0, 1)
	}

	limit, err := strconv.Atoi(q.Get("limit"))
	if err != nil || limit <= 0 {
		limit = 50
	}
	offset, err := strconv.Atoi(q.Get("offset"))
	if err != nil || offset < 0 {
		offset = 0
	}
	filter.Limit, filter.Offset = limit, offset

	transactions, total, err := h.ledger.List(r.Context(), filter)
	if err != nil {
		h.respondWithError(w, err)
		return
	}
	h.respondWithJSON(w, http.StatusOK, types.NewPage(transactions, limit, offset, total))
}

// GetTransaction handles the get transaction request.
// GET /transactions/{transactionID}
func (h *TransactionHandler) GetTransaction(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "transactionID")
	if err != nil {
		h.respondWithError(w, err)
		return
	}
	tx, err := h.ledger.Get(r.Context(), id)
	if err != nil {
		h.respondWithError(w, err)
		return
	}
	h.respondWithJSON(w, http.StatusOK, tx)
}

// CreateTransaction handles the create transaction request.
// POST /transactions
func (h *TransactionHandler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	var req TransactionRequest
	if err := decode(r, &req); err != nil {
		h.respondWithError(w, err)
		return
	}
	in, err := req.input(h.now())
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	tx, err := h.ledger.Create(r.Context(), SessionFrom(r.Context()), in)
	if err != nil {
		h.respondWithError(w, err)
		return
	}
	h.respondWithJSON(w, http.StatusCreated, tx)
}

// UpdateTransaction handles the update transaction request.
// PUT /transactions/{transactionID}
func (h *TransactionHandler) UpdateTransaction(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "transactionID")
	if err != nil {
		h.respondWithError(w, err)
		return
	}
	var req TransactionRequest
	if err := decode(r, &req); err != nil {
		h.respondWithError(w, err)
		return
	}
	in, err := req.input(h.now())
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	tx, err := h.ledger.Update(r.Context(), SessionFrom(r.Context()), id, in)
	if err != nil {
		h.respondWithError(w, err)
		return
	}
	h.respondWithJSON(w, http.StatusOK, tx)
}

// DeleteTransaction handles the delete transaction request.
// DELETE /transactions/{transactionID}
func (h *TransactionHandler) DeleteTransaction(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "transactionID")
	if err != nil {
		h.respondWithError(w, err)
		return
	}
	tx, err := h.ledger.Delete(r.Context(), SessionFrom(r.Context()), id)
	if err != nil {
		h.respondWithError(w, err)
		return
	}
	h.respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"message":     "Transaction deleted",
		"transaction": tx,
	})
}
