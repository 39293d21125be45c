// internal/service/transfer_link.go
package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"my-money/internal/domain"
	"my-money/internal/metrics"
	"my-money/internal/repository"
	"my-money/internal/util"

	"github.com/shopspring/decimal"
)

// ConfirmFunc asks the user to approve a lossy step. Returning false
// aborts the operation with util.ErrUserCancelled.
type ConfirmFunc func(ctx context.Context, prompt string) bool

// WalletInput carries the fields of a wallet create or edit.
type WalletInput struct {
	Name     string
	Type     domain.WalletType
	Category domain.WalletCategory
	Balance  decimal.Decimal
	// LinkToSource enables funding from (and refunding to) a source wallet.
	// On edit, false unlinks the wallet without moving any money.
	LinkToSource bool
	// SourceWalletID is the source picked by the user. On a balance
	// decrease it is ignored in favour of the stored source.
	SourceWalletID *int64
	// Confirm is consulted when a refund would be dropped because the
	// stored source wallet no longer exists. Nil counts as a decline.
	Confirm ConfirmFunc
}

func (in WalletInput) validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return util.NewValidationError("name", "is required")
	}
	if !in.Type.Valid() {
		return util.NewValidationError("type", "must be bank, ewallet or cash")
	}
	if !in.Category.Valid() {
		return util.NewValidationError("category", "must be active or savings")
	}
	return nil
}

// errNegativeBalance rejects a negative balance typed in by the user. An
// overdraft reached through expenses is still a legal wallet state.
var errNegativeBalance = util.NewValidationError("balance", "must not be negative")

// WalletDeletion describes what deleting a wallet did.
type WalletDeletion struct {
	Wallet              domain.Wallet   `json:"wallet"`
	Refunded            decimal.Decimal `json:"refunded"`
	RefundedTo          *int64          `json:"refunded_to,omitempty"`
	TransactionsRemoved int64           `json:"transactions_removed"`
}

// TransferLinkResolver creates, edits and deletes wallets, moving money
// to and from the linked source wallet.
//
// Every decision is taken from the wallets read at the start of the
// operation; balances are written back as absolute values without a
// fresh read, so overlapping edits on the same source are last-write-wins.
type TransferLinkResolver interface {
	CreateWallet(ctx context.Context, sess domain.Session, in WalletInput) (*domain.Wallet, error)
	EditWallet(ctx context.Context, sess domain.Session, id int64, in WalletInput) (*domain.Wallet, error)
	DeleteWallet(ctx context.Context, sess domain.Session, id int64) (*WalletDeletion, error)
}

type transferLinkResolver struct {
	dbExecutor      repository.DBExecutor
	wallets         WalletStore
	walletRepo      repository.WalletRepository
	transactionRepo repository.TransactionRepository
	logger          *slog.Logger
	metrics         *metrics.Metrics
}

// NewTransferLinkResolver creates a new instance of TransferLinkResolver.
func NewTransferLinkResolver(
	dbExecutor repository.DBExecutor,
	wallets WalletStore,
	walletRepo repository.WalletRepository,
	transactionRepo repository.TransactionRepository,
	logger *slog.Logger,
	m *metrics.Metrics,
) TransferLinkResolver {
	return &transferLinkResolver{
		dbExecutor:      dbExecutor,
		wallets:         wallets,
		walletRepo:      walletRepo,
		transactionRepo: transactionRepo,
		logger:          logger,
		metrics:         m,
	}
}

// transfer is a balance write on a source wallet, computed from its snapshot.
type transfer struct {
	source domain.Wallet
	delta  decimal.Decimal
}

func (t *transfer) target() decimal.Decimal {
	return t.source.Balance.Add(t.delta)
}

func (r *transferLinkResolver) writeTransfer(t *transfer) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		return r.wallets.SetBalance(ctx, t.source.ID, t.target())
	}
}

func (r *transferLinkResolver) CreateWallet(ctx context.Context, sess domain.Session, in WalletInput) (*domain.Wallet, error) {
	if err := in.validate(); err != nil {
		return nil, fmt.Errorf("create wallet: %w", err)
	}
	if in.Balance.IsNegative() {
		return nil, fmt.Errorf("create wallet: %w", errNegativeBalance)
	}

	wallet := domain.NewWallet(strings.TrimSpace(in.Name), in.Type, in.Category, in.Balance)

	var funding *transfer
	if in.LinkToSource && in.SourceWalletID != nil {
		source, err := r.wallets.GetWallet(ctx, *in.SourceWalletID)
		if err != nil {
			return nil, fmt.Errorf("create wallet: source: %w", err)
		}
		if source.Balance.LessThan(in.Balance) {
			return nil, fmt.Errorf("create wallet: %w", util.NewInsufficientFundsError(source.ID, source.Balance, in.Balance))
		}
		sourceID := source.ID
		wallet.SourceWalletID = &sourceID
		if in.Balance.IsPositive() {
			funding = &transfer{source: *source, delta: in.Balance.Neg()}
		}
	}

	seq := newSequence("wallet.create").
		then("insert wallet", func(ctx context.Context) error {
			if err := r.walletRepo.CreateWallet(ctx, r.dbExecutor, wallet); err != nil {
				return util.Persistence("insert wallet", err)
			}
			return nil
		})
	if funding != nil {
		seq.then("deduct source wallet", r.writeTransfer(funding))
	}
	if err := seq.run(ctx, r.logger, r.metrics, sess.LogAttrs()...); err != nil {
		return nil, err
	}

	r.logger.Info("Wallet created",
		append(sess.LogAttrs(),
			"wallet_id", wallet.ID,
			"balance", wallet.Balance.String(),
			"linked", wallet.IsLinked(),
		)...)
	return wallet, nil
}

func (r *transferLinkResolver) EditWallet(ctx context.Context, sess domain.Session, id int64, in WalletInput) (*domain.Wallet, error) {
	if err := in.validate(); err != nil {
		return nil, fmt.Errorf("edit wallet: %w", err)
	}

	current, err := r.wallets.GetWallet(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("edit wallet: %w", err)
	}
	// Keeping an overdrawn balance as is must stay possible.
	if in.Balance.IsNegative() && !in.Balance.Equal(current.Balance) {
		return nil, fmt.Errorf("edit wallet: %w", errNegativeBalance)
	}

	updated := *current
	updated.Name = strings.TrimSpace(in.Name)
	updated.Type = in.Type
	updated.Category = in.Category
	updated.Balance = in.Balance

	diff := in.Balance.Sub(current.Balance)
	move, err := r.planEdit(ctx, current, &updated, diff, in)
	if err != nil {
		return nil, fmt.Errorf("edit wallet: %w", err)
	}

	seq := newSequence("wallet.edit").
		then("update wallet", func(ctx context.Context) error {
			if err := r.walletRepo.UpdateWallet(ctx, r.dbExecutor, &updated); err != nil {
				if util.IsError(err, util.ErrNotFound) {
					return fmt.Errorf("wallet %d: %w", id, util.ErrWalletNotFound)
				}
				return util.Persistence("update wallet", err)
			}
			return nil
		})
	if move != nil {
		name := "deduct source wallet"
		if move.delta.IsPositive() {
			name = "refund source wallet"
		}
		seq.then(name, r.writeTransfer(move))
	}
	if err := seq.run(ctx, r.logger, r.metrics, sess.LogAttrs()...); err != nil {
		return nil, err
	}

	r.logger.Info("Wallet edited",
		append(sess.LogAttrs(),
			"wallet_id", id,
			"diff", diff.String(),
			"linked", updated.IsLinked(),
		)...)
	return &updated, nil
}

// planEdit decides the stored source and the transfer for an edit. It
// mutates updated.SourceWalletID and returns nil when no money moves.
func (r *transferLinkResolver) planEdit(ctx context.Context, current, updated *domain.Wallet, diff decimal.Decimal, in WalletInput) (*transfer, error) {
	if !in.LinkToSource {
		updated.SourceWalletID = nil
		return nil, nil
	}

	if !diff.IsNegative() {
		sourceID := in.SourceWalletID
		if sourceID == nil {
			sourceID = current.SourceWalletID
		}
		if sourceID == nil {
			return nil, nil
		}
		if *sourceID == current.ID {
			return nil, util.ErrSelfReference
		}
		stored := *sourceID
		updated.SourceWalletID = &stored
		if diff.IsZero() {
			return nil, nil
		}

		source, err := r.wallets.GetWallet(ctx, stored)
		if err != nil {
			return nil, fmt.Errorf("source: %w", err)
		}
		if source.Balance.LessThan(diff) {
			return nil, util.NewInsufficientFundsError(source.ID, source.Balance, diff)
		}
		return &transfer{source: *source, delta: diff.Neg()}, nil
	}

	// Decrease: refunds always go to the stored source.
	if current.SourceWalletID == nil {
		return nil, nil
	}
	source, found, err := r.wallets.LookupWallet(ctx, *current.SourceWalletID)
	if err != nil {
		return nil, fmt.Errorf("source: %w", err)
	}
	if !found {
		prompt := fmt.Sprintf("Source wallet %d no longer exists. The refund of %s will be dropped. Continue?",
			*current.SourceWalletID, diff.Neg().String())
		if in.Confirm == nil || !in.Confirm(ctx, prompt) {
			return nil, util.ErrUserCancelled
		}
		r.logger.Warn("Dropping refund to missing source wallet",
			"wallet_id", current.ID,
			"source_wallet_id", *current.SourceWalletID,
			"amount", diff.Neg().String(),
		)
		return nil, nil
	}
	return &transfer{source: *source, delta: diff.Neg()}, nil
}

func (r *transferLinkResolver) DeleteWallet(ctx context.Context, sess domain.Session, id int64) (*WalletDeletion, error) {
	wallet, err := r.wallets.GetWallet(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("delete wallet: %w", err)
	}

	result := &WalletDeletion{Wallet: *wallet, Refunded: decimal.Zero}

	var refund *transfer
	if wallet.SourceWalletID != nil && *wallet.SourceWalletID != wallet.ID && wallet.Balance.IsPositive() {
		source, found, err := r.wallets.LookupWallet(ctx, *wallet.SourceWalletID)
		if err != nil {
			return nil, fmt.Errorf("delete wallet: source: %w", err)
		}
		if found {
			refund = &transfer{source: *source, delta: wallet.Balance}
		} else {
			r.logger.Warn("Source wallet gone, deleting without refund",
				append(sess.LogAttrs(), "wallet_id", id, "source_wallet_id", *wallet.SourceWalletID)...)
		}
	}

	seq := newSequence("wallet.delete")
	if refund != nil {
		seq.then("refund source wallet", r.writeTransfer(refund))
	}
	seq.then("delete wallet transactions", func(ctx context.Context) error {
		n, err := r.transactionRepo.DeleteTransactionsByWalletID(ctx, r.dbExecutor, id)
		if err != nil {
			return util.Persistence("delete wallet transactions", err)
		}
		result.TransactionsRemoved = n
		return nil
	}).then("delete wallet", func(ctx context.Context) error {
		if err := r.walletRepo.DeleteWallet(ctx, r.dbExecutor, id); err != nil {
			if util.IsError(err, util.ErrNotFound) {
				return fmt.Errorf("wallet %d: %w", id, util.ErrWalletNotFound)
			}
			return util.Persistence("delete wallet", err)
		}
		return nil
	})
	if err := seq.run(ctx, r.logger, r.metrics, sess.LogAttrs()...); err != nil {
		return nil, err
	}

	if refund != nil {
		sourceID := refund.source.ID
		result.Refunded = refund.delta
		result.RefundedTo = &sourceID
	}

	r.logger.Info("Wallet deleted",
		append(sess.LogAttrs(),
			"wallet_id", id,
			"refunded", result.Refunded.String(),
			"transactions_removed", result.TransactionsRemoved,
		)...)
	return result, nil
}
