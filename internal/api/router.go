// internal/api/router.go
package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"my-money/internal/api/handler"
	"my-money/internal/metrics"
)

// Handlers groups the HTTP handlers mounted by NewRouter.
type Handlers struct {
	Wallets      *handler.WalletHandler
	Transactions *handler.TransactionHandler
	Bills        *handler.BillHandler
	Planning     *handler.PlanningHandler
	Reports      *handler.ReportHandler
}

// SessionDefaults fills the session of every request.
type SessionDefaults struct {
	DisplayName string
	Currency    string
}

// NewRouter sets up and returns a new HTTP router.
func NewRouter(h Handlers, m *metrics.Metrics, sess SessionDefaults, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	// Global middlewares
	r.Use(middleware.RequestID)                       // Add a request ID to the context
	r.Use(middleware.RealIP)                          // Use the real IP address
	r.Use(middleware.Logger)                          // Log HTTP requests
	r.Use(middleware.Recoverer)                       // Recover from panics and return 500
	r.Use(middleware.Timeout(handler.DefaultTimeout)) // Set a default timeout for requests
	r.Use(m.Middleware)                               // Record request latency per route

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	r.Method(http.MethodGet, "/metrics", m.Handler())

	r.Group(func(r chi.Router) {
		r.Use(handler.SessionMiddleware(sess.DisplayName, sess.Currency))

		r.Get("/summary", h.Wallets.Summary)

		// Wallet API routes
		r.Route("/wallets", func(r chi.Router) {
			r.Get("/", h.Wallets.ListWallets)
			r.Post("/", h.Wallets.CreateWallet)
			r.Get("/{walletID}", h.Wallets.GetWallet)
			r.Put("/{walletID}", h.Wallets.EditWallet)
			r.Delete("/{walletID}", h.Wallets.DeleteWallet)
			r.Get("/{walletID}/transactions", h.Wallets.GetTransactionHistory)
		})

		r.Route("/transactions", func(r chi.Router) {
			r.Get("/", h.Transactions.ListTransactions)
			r.Post("/", h.Transactions.CreateTransaction)
			r.Get("/{transactionID}", h.Transactions.GetTransaction)
			r.Put("/{transactionID}", h.Transactions.UpdateTransaction)
			r.Delete("/{transactionID}", h.Transactions.DeleteTransaction)
		})

		r.Route("/bills", func(r chi.Router) {
			r.Get("/", h.Bills.ListBills)
			r.Post("/", h.Bills.CreateBill)
			r.Get("/{billID}", h.Bills.GetBill)
			r.Put("/{billID}", h.Bills.UpdateBill)
			r.Delete("/{billID}", h.Bills.DeleteBill)
			r.Post("/{billID}/pay", h.Bills.PayBill)
			r.Delete("/{billID}/payments/{month}", h.Bills.UnpayBill)
		})

		r.Route("/budgets", func(r chi.Router) {
			r.Get("/", h.Planning.ListBudgets)
			r.Post("/", h.Planning.CreateBudget)
			r.Put("/{budgetID}", h.Planning.UpdateBudget)
			r.Delete("/{budgetID}", h.Planning.DeleteBudget)
			r.Post("/{budgetID}/expense", h.Planning.QuickExpense)
		})

		r.Route("/goals", func(r chi.Router) {
			r.Get("/", h.Planning.ListGoals)
			r.Post("/", h.Planning.CreateGoal)
			r.Delete("/{goalID}", h.Planning.DeleteGoal)
			r.Post("/{goalID}/add", h.Planning.QuickAdd)
		})

		r.Get("/reports/statement.pdf", h.Reports.StatementPDF)
	})

	logger.Debug("HTTP routes registered")
	return r
}
