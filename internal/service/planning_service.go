// internal/service/planning_service.go
package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"my-money/internal/domain"
	"my-money/internal/repository"
	"my-money/internal/util"

	"github.com/shopspring/decimal"
)

// BudgetInput carries the fields of a monthly budget.
type BudgetInput struct {
	Category string
	Limit    decimal.Decimal
	Month    string
}

func (in BudgetInput) validate() error {
	if strings.TrimSpace(in.Category) == "" {
		return util.NewValidationError("category", "is required")
	}
	if !in.Limit.IsPositive() {
		return util.NewValidationError("limit", "must be greater than zero")
	}
	if _, err := domain.ParseMonth(in.Month); err != nil {
		return util.NewValidationError("month", "must be formatted as yyyy-mm")
	}
	return nil
}

// QuickExpenseInput books an expense against a budget's category.
type QuickExpenseInput struct {
	WalletID int64
	Amount   decimal.Decimal
	Title    string
	Date     time.Time
}

// BudgetService manages monthly budgets. Spending is always computed from
// the ledger, never stored.
type BudgetService interface {
	CreateBudget(ctx context.Context, sess domain.Session, in BudgetInput) (*domain.Budget, error)
	UpdateBudget(ctx context.Context, sess domain.Session, id int64, in BudgetInput) (*domain.Budget, error)
	DeleteBudget(ctx context.Context, sess domain.Session, id int64) error
	ListBudgets(ctx context.Context, month string) ([]domain.BudgetUsage, error)
	QuickExpense(ctx context.Context, sess domain.Session, budgetID int64, in QuickExpenseInput) (*domain.Transaction, error)
}

type budgetService struct {
	dbExecutor repository.DBExecutor
	budgetRepo repository.BudgetRepository
	ledger     TransactionLedger
	logger     *slog.Logger
}

// NewBudgetService creates a new instance of BudgetService.
func NewBudgetService(dbExecutor repository.DBExecutor, budgetRepo repository.BudgetRepository, ledger TransactionLedger, logger *slog.Logger) BudgetService {
	return &budgetService{
		dbExecutor: dbExecutor,
		budgetRepo: budgetRepo,
		ledger:     ledger,
		logger:     logger,
	}
}

func (s *budgetService) CreateBudget(ctx context.Context, sess domain.Session, in BudgetInput) (*domain.Budget, error) {
	if err := in.validate(); err != nil {
		return nil, fmt.Errorf("create budget: %w", err)
	}
	budget := &domain.Budget{
		Category:  strings.TrimSpace(in.Category),
		Limit:     in.Limit,
		Month:     in.Month,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.budgetRepo.CreateBudget(ctx, s.dbExecutor, budget); err != nil {
		if util.IsError(err, util.ErrDuplicateEntry) {
			return nil, fmt.Errorf("create budget: %w", util.NewValidationError("category", "already has a budget for "+in.Month))
		}
		return nil, util.Persistence("create budget", err)
	}
	s.logger.Info("Budget created", append(sess.LogAttrs(), "budget_id", budget.ID, "category", budget.Category, "month", budget.Month)...)
	return budget, nil
}

func (s *budgetService) UpdateBudget(ctx context.Context, sess domain.Session, id int64, in BudgetInput) (*domain.Budget, error) {
	if err := in.validate(); err != nil {
		return nil, fmt.Errorf("update budget: %w", err)
	}
	budget, err := s.getBudget(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("update budget: %w", err)
	}
	budget.Category = strings.TrimSpace(in.Category)
	budget.Limit = in.Limit
	budget.Month = in.Month
	if err := s.budgetRepo.UpdateBudget(ctx, s.dbExecutor, budget); err != nil {
		switch {
		case util.IsError(err, util.ErrNotFound):
			return nil, fmt.Errorf("budget %d: %w", id, util.ErrBudgetNotFound)
		case util.IsError(err, util.ErrDuplicateEntry):
			return nil, fmt.Errorf("update budget: %w", util.NewValidationError("category", "already has a budget for "+in.Month))
		}
		return nil, util.Persistence("update budget", err)
	}
	s.logger.Info("Budget updated", append(sess.LogAttrs(), "budget_id", id)...)
	return budget, nil
}

func (s *budgetService) DeleteBudget(ctx context.Context, sess domain.Session, id int64) error {
	if err := s.budgetRepo.DeleteBudget(ctx, s.dbExecutor, id); err != nil {
		if util.IsError(err, util.ErrNotFound) {
			return fmt.Errorf("budget %d: %w", id, util.ErrBudgetNotFound)
		}
		return util.Persistence("delete budget", err)
	}
	s.logger.Info("Budget deleted", append(sess.LogAttrs(), "budget_id", id)...)
	return nil
}

func (s *budgetService) ListBudgets(ctx context.Context, month string) ([]domain.BudgetUsage, error) {
	filter, err := domain.TransactionFilter{Type: domain.TransactionTypeExpense}.ForMonth(month)
	if err != nil {
		return nil, util.NewValidationError("month", "must be formatted as yyyy-mm")
	}

	budgets, err := s.budgetRepo.ListBudgets(ctx, s.dbExecutor, month)
	if err != nil {
		return nil, util.Persistence("list budgets", err)
	}
	expenses, _, err := s.ledger.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list budgets: %w", err)
	}

	usage := make([]domain.BudgetUsage, 0, len(budgets))
	for _, b := range budgets {
		usage = append(usage, b.Usage(expenses))
	}
	return usage, nil
}

func (s *budgetService) QuickExpense(ctx context.Context, sess domain.Session, budgetID int64, in QuickExpenseInput) (*domain.Transaction, error) {
	budget, err := s.getBudget(ctx, budgetID)
	if err != nil {
		return nil, fmt.Errorf("quick expense: %w", err)
	}
	return s.ledger.Create(ctx, sess, TransactionInput{
		Title:    in.Title,
		Amount:   in.Amount,
		Type:     domain.TransactionTypeExpense,
		Category: budget.Category,
		WalletID: in.WalletID,
		Date:     in.Date,
	})
}

func (s *budgetService) getBudget(ctx context.Context, id int64) (*domain.Budget, error) {
	budget, err := s.budgetRepo.GetBudgetByID(ctx, s.dbExecutor, id)
	if err != nil {
		if util.IsError(err, util.ErrNotFound) {
			return nil, fmt.Errorf("budget %d: %w", id, util.ErrBudgetNotFound)
		}
		return nil, util.Persistence("get budget", err)
	}
	return budget, nil
}

// GoalInput carries the fields of a savings goal.
type GoalInput struct {
	Name          string
	TargetAmount  decimal.Decimal
	CurrentAmount decimal.Decimal
	Deadline      *time.Time
}

// GoalService manages savings goals. Progress moves only through QuickAdd.
type GoalService interface {
	CreateGoal(ctx context.Context, sess domain.Session, in GoalInput) (*domain.Goal, error)
	ListGoals(ctx context.Context) ([]domain.Goal, error)
	DeleteGoal(ctx context.Context, sess domain.Session, id int64) error
	QuickAdd(ctx context.Context, sess domain.Session, id int64, amount decimal.Decimal) (*domain.Goal, error)
}

type goalService struct {
	dbExecutor repository.DBExecutor
	goalRepo   repository.GoalRepository
	logger     *slog.Logger
}

// NewGoalService creates a new instance of GoalService.
func NewGoalService(dbExecutor repository.DBExecutor, goalRepo repository.GoalRepository, logger *slog.Logger) GoalService {
	return &goalService{dbExecutor: dbExecutor, goalRepo: goalRepo, logger: logger}
}

func (s *goalService) CreateGoal(ctx context.Context, sess domain.Session, in GoalInput) (*domain.Goal, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, fmt.Errorf("create goal: %w", util.NewValidationError("name", "is required"))
	}
	if !in.TargetAmount.IsPositive() {
		return nil, fmt.Errorf("create goal: %w", util.NewValidationError("target_amount", "must be greater than zero"))
	}
	if in.CurrentAmount.IsNegative() {
		return nil, fmt.Errorf("create goal: %w", util.NewValidationError("current_amount", "must not be negative"))
	}

	goal := &domain.Goal{
		Name:          strings.TrimSpace(in.Name),
		TargetAmount:  in.TargetAmount,
		CurrentAmount: in.CurrentAmount,
		CreatedAt:     time.Now().UTC(),
	}
	if in.Deadline != nil {
		d := domain.TruncateDay(*in.Deadline)
		goal.Deadline = &d
	}
	if err := s.goalRepo.CreateGoal(ctx, s.dbExecutor, goal); err != nil {
		return nil, util.Persistence("create goal", err)
	}
	s.logger.Info("Goal created", append(sess.LogAttrs(), "goal_id", goal.ID)...)
	return goal, nil
}

func (s *goalService) ListGoals(ctx context.Context) ([]domain.Goal, error) {
	goals, err := s.goalRepo.ListGoals(ctx, s.dbExecutor)
	if err != nil {
		return nil, util.Persistence("list goals", err)
	}
	return goals, nil
}

func (s *goalService) DeleteGoal(ctx context.Context, sess domain.Session, id int64) error {
	if err := s.goalRepo.DeleteGoal(ctx, s.dbExecutor, id); err != nil {
		if util.IsError(err, util.ErrNotFound) {
			return fmt.Errorf("goal %d: %w", id, util.ErrGoalNotFound)
		}
		return util.Persistence("delete goal", err)
	}
	s.logger.Info("Goal deleted", append(sess.LogAttrs(), "goal_id", id)...)
	return nil
}

func (s *goalService) QuickAdd(ctx context.Context, sess domain.Session, id int64, amount decimal.Decimal) (*domain.Goal, error) {
	if !amount.IsPositive() {
		return nil, fmt.Errorf("quick add: %w", util.NewValidationError("amount", "must be greater than zero"))
	}
	goal, err := s.goalRepo.GetGoalByID(ctx, s.dbExecutor, id)
	if err != nil {
		if util.IsError(err, util.ErrNotFound) {
			return nil, fmt.Errorf("goal %d: %w", id, util.ErrGoalNotFound)
		}
		return nil, util.Persistence("get goal", err)
	}

	goal.CurrentAmount = goal.CurrentAmount.Add(amount)
	if err := s.goalRepo.UpdateGoalAmount(ctx, s.dbExecutor, id, goal.CurrentAmount); err != nil {
		if util.IsError(err, util.ErrNotFound) {
			return nil, fmt.Errorf("goal %d: %w", id, util.ErrGoalNotFound)
		}
		return nil, util.Persistence("update goal amount", err)
	}
	s.logger.Info("Goal amount added",
		append(sess.LogAttrs(), "goal_id", id, "amount", amount.String(), "reached", goal.Reached())...)
	return goal, nil
}
