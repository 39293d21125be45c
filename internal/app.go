// internal/app.go
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/jmoiron/sqlx"

	router "my-money/internal/api"
	"my-money/internal/api/handler"
	"my-money/internal/config"
	"my-money/internal/metrics"
	"my-money/internal/report"
	"my-money/internal/repository"
	"my-money/internal/repository/sqlstore"
	"my-money/internal/service"
	"my-money/internal/util"
	"my-money/pkg/db"
)

// Application holds all the initialized components of the application.
type Application struct {
	Config  *config.AppConfig
	Logger  *slog.Logger
	DB      *sqlx.DB
	Metrics *metrics.Metrics

	// Repositories
	WalletRepository      repository.WalletRepository
	TransactionRepository repository.TransactionRepository
	BillRepository        repository.BillRepository
	BudgetRepository      repository.BudgetRepository
	GoalRepository        repository.GoalRepository

	// Services
	Wallets service.WalletStore
	Ledger  service.TransactionLedger
	Links   service.TransferLinkResolver
	Bills   service.BillPaymentCoordinator
	Budgets service.BudgetService
	Goals   service.GoalService
	Reports *report.Service

	// HTTP API
	HTTPHandler http.Handler
}

// NewApplication creates a new Application instance.
func NewApplication() *Application {
	return &Application{}
}

// Initialize initializes all application components.
func (app *Application) Initialize(ctx context.Context) error {
	// 1. Load Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	return app.InitializeWith(ctx, cfg)
}

// InitializeWith initializes all components from an already loaded configuration.
func (app *Application) InitializeWith(ctx context.Context, cfg *config.AppConfig) error {
	app.Config = cfg

	// 2. Initialize Logger
	util.InitLogger(cfg.Log)
	app.Logger = util.GetLogger()
	app.Logger.Info("Application configuration loaded successfully.", "db_driver", cfg.DB.Driver)

	// 3. Connect to Database and apply the schema
	database, err := db.Open(ctx, cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = database
	app.Logger.Info("Database connection established.")

	// 4. Initialize Repositories
	app.WalletRepository = sqlstore.NewWalletRepository()
	app.TransactionRepository = sqlstore.NewTransactionRepository()
	app.BillRepository = sqlstore.NewBillRepository()
	app.BudgetRepository = sqlstore.NewBudgetRepository()
	app.GoalRepository = sqlstore.NewGoalRepository()
	app.Logger.Info("Repositories initialized.")

	// 5. Initialize Services
	app.Metrics = metrics.New()
	app.Wallets = service.NewWalletStore(app.DB, app.WalletRepository, app.Logger)
	app.Ledger = service.NewTransactionLedger(app.DB, app.Wallets, app.TransactionRepository, app.Logger, app.Metrics)
	app.Links = service.NewTransferLinkResolver(app.DB, app.Wallets, app.WalletRepository, app.TransactionRepository, app.Logger, app.Metrics)
	app.Bills = service.NewBillPaymentCoordinator(app.DB, app.BillRepository, app.Wallets, app.Ledger, app.Logger, app.Metrics)
	app.Budgets = service.NewBudgetService(app.DB, app.BudgetRepository, app.Ledger, app.Logger)
	app.Goals = service.NewGoalService(app.DB, app.GoalRepository, app.Logger)
	app.Reports = report.NewService(app.Ledger, app.Wallets)
	app.Logger.Info("Services initialized.")

	// 6. Initialize HTTP Handlers and Router
	app.HTTPHandler = router.NewRouter(router.Handlers{
		Wallets:      handler.NewWalletHandler(app.Wallets, app.Links, app.Ledger, app.Logger),
		Transactions: handler.NewTransactionHandler(app.Ledger, app.Logger),
		Bills:        handler.NewBillHandler(app.Bills, app.Logger),
		Planning:     handler.NewPlanningHandler(app.Budgets, app.Goals, app.Logger),
		Reports:      handler.NewReportHandler(app.Reports, app.Logger),
	}, app.Metrics, router.SessionDefaults{
		DisplayName: cfg.DisplayName,
		Currency:    cfg.Currency,
	}, app.Logger)
	app.Logger.Info("HTTP router and handlers initialized.")

	return nil
}

// Shutdown gracefully shuts down application resources.
func (app *Application) Shutdown(ctx context.Context) error {
	app.Logger.Info("Shutting down application...")
	if app.DB != nil {
		if err := app.DB.Close(); err != nil {
			app.Logger.Error("Failed to close database connection", "error", err)
			return fmt.Errorf("failed to close database connection: %w", err)
		}
		app.Logger.Info("Database connection closed.")
	}
	app.Logger.Info("Application shut down gracefully.")
	return nil
}
