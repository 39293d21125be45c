// internal/api/handler/wallet.go
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/shopspring/decimal"

	"my-money/internal/api/types"
	"my-money/internal/domain"
	"my-money/internal/repository"
	"my-money/internal/service"
	"my-money/internal/util"
)

// WalletHandler handles HTTP requests related to wallet operations.
type WalletHandler struct {
	responder
	wallets service.WalletStore
	links   service.TransferLinkResolver
	ledger  service.TransactionLedger
}

// NewWalletHandler creates a new WalletHandler.
func NewWalletHandler(wallets service.WalletStore, links service.TransferLinkResolver, ledger service.TransactionLedger, logger *slog.Logger) *WalletHandler {
	return &WalletHandler{
		responder: responder{logger: logger},
		wallets:   wallets,
		links:     links,
		ledger:    ledger,
	}
}

// WalletRequest represents the request body for creating or editing a wallet.
type WalletRequest struct {
	Name           string                `json:"name"`
	Type           domain.WalletType     `json:"type"`
	Category       domain.WalletCategory `json:"category"`
	Balance        decimal.Decimal       `json:"balance"`
	LinkToSource   bool                  `json:"link_to_source"`
	SourceWalletID *int64                `json:"source_wallet_id"`
	// ConfirmOrphanedRefund approves dropping a refund whose source wallet
	// was deleted.
	ConfirmOrphanedRefund bool `json:"confirm_orphaned_refund"`
}

func (req WalletRequest) input() service.WalletInput {
	confirmed := req.ConfirmOrphanedRefund
	return service.WalletInput{
		Name:           req.Name,
		Type:           req.Type,
		Category:       req.Category,
		Balance:        req.Balance,
		LinkToSource:   req.LinkToSource,
		SourceWalletID: req.SourceWalletID,
		Confirm: func(context.Context, string) bool {
			return confirmed
		},
	}
}

// ListWallets handles the list wallets request.
// GET /wallets?category=&type=
func (h *WalletHandler) ListWallets(w http.ResponseWriter, r *http.Request) {
	filter := repository.WalletFilter{
		Category: domain.WalletCategory(r.URL.Query().Get("category")),
		Type:     domain.WalletType(r.URL.Query().Get("type")),
	}
	if filter.Category != "" && !filter.Category.Valid() {
		h.respondWithError(w, util.NewValidationError("category", "must be active or savings"))
		return
	}
	if filter.Type != "" && !filter.Type.Valid() {
		h.respondWithError(w, util.NewValidationError("type", "must be bank, ewallet or cash"))
		return
	}

	wallets, err := h.wallets.ListWallets(r.Context(), filter)
	if err != nil {
		h.respondWithError(w, err)
		return
	}
	h.respondWithJSON(w, http.StatusOK, map[string]interface{}{"data": wallets})
}

// Summary handles the dashboard totals request.
// GET /summary
func (h *WalletHandler) Summary(w http.ResponseWriter, r *http.Request) {
	totals, err := h.wallets.Totals(r.Context())
	if err != nil {
		h.respondWithError(w, err)
		return
	}
	sess := SessionFrom(r.Context())
	h.respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"owner":    sess.DisplayName,
		"currency": sess.Currency,
		"totals":   totals,
	})
}

// GetWallet handles the get wallet request.
// GET /wallets/{walletID}
func (h *WalletHandler) GetWallet(w http.ResponseWriter, r *http.Request) {
	walletID, err := idParam(r, "walletID")
	if err != nil {
		h.respondWithError(w, err)
		return
	}
	wallet, err := h.wallets.GetWallet(r.Context(), walletID)
	if err != nil {
		h.respondWithError(w, err)
		return
	}
	h.respondWithJSON(w, http.StatusOK, wallet)
}

// CreateWallet handles the create wallet request.
// POST /wallets
func (h *WalletHandler) CreateWallet(w http.ResponseWriter, r *http.Request) {
	var req WalletRequest
	if err := decode(r, &req); err != nil {
		h.respondWithError(w, err)
		return
	}

	wallet, err := h.links.CreateWallet(r.Context(), SessionFrom(r.Context()), req.input())
	if err != nil {
		h.respondWithError(w, err)
		return
	}
	h.respondWithJSON(w, http.StatusCreated, wallet)
}

// EditWallet handles the edit wallet request.
// PUT /wallets/{walletID}
func (h *WalletHandler) EditWallet(w http.ResponseWriter, r *http.Request) {
	walletID, err := idParam(r, "walletID")
	if err != nil {
		h.respondWithError(w, err)
		return
	}
	var req WalletRequest
	if err := decode(r, &req); err != nil {
		h.respondWithError(w, err)
		return
	}

	wallet, err := h.links.EditWallet(r.Context(), SessionFrom(r.Context()), walletID, req.input())
	if err != nil {
		h.respondWithError(w, err)
		return
	}
	h.respondWithJSON(w, http.StatusOK, wallet)
}

// DeleteWallet handles the delete wallet request.
// DELETE /wallets/{walletID}
func (h *WalletHandler) DeleteWallet(w http.ResponseWriter, r *http.Request) {
	walletID, err := idParam(r, "walletID")
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	deletion, err := h.links.DeleteWallet(r.Context(), SessionFrom(r.Context()), walletID)
	if err != nil {
		h.respondWithError(w, err)
		return
	}
	h.respondWithJSON(w, http.StatusOK, deletion)
}

// GetTransactionHistory handles the get transaction history request.
// GET /wallets/{walletID}/transactions
func (h *WalletHandler) GetTransactionHistory(w http.ResponseWriter, r *http.Request) {
	walletID, err := idParam(r, "walletID")
	if err != nil {
		h.respondWithError(w, err)
		return
	}
	if _, err := h.wallets.GetWallet(r.Context(), walletID); err != nil {
		h.respondWithError(w, err)
		return
	}

	// Parse query parameters for pagination
	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit <= 0 {
		limit = 10 // Default limit
	}
	offset, err := strconv.Atoi(r.URL.Query().Get("offset"))
	if err != nil || offset < 0 {
		offset = 0 // Default offset
	}

	transactions, total, err := h.ledger.List(r.Context(), domain.TransactionFilter{
		WalletID: &walletID,
		Limit:    limit,
		Offset:   offset,
	})
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	h.respondWithJSON(w, http.StatusOK, types.NewPage(transactions, limit, offset, total))
}
