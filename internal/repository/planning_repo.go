// internal/repository/planning_repo.go
package repository

import (
	"context"

	"my-money/internal/domain"

	"github.com/shopspring/decimal"
)

// BudgetRepository defines the interface for monthly category budgets.
type BudgetRepository interface {
	CreateBudget(ctx context.Context, q DBExecutor, budget *domain.Budget) error
	GetBudgetByID(ctx context.Context, q DBExecutor, id int64) (*domain.Budget, error)
	// ListBudgets returns the budgets of a month, or all budgets when month is empty.
	ListBudgets(ctx context.Context, q DBExecutor, month string) ([]domain.Budget, error)
	UpdateBudget(ctx context.Context, q DBExecutor, budget *domain.Budget) error
	DeleteBudget(ctx context.Context, q DBExecutor, id int64) error
}

// GoalRepository defines the interface for savings goals.
type GoalRepository interface {
	CreateGoal(ctx context.Context, q DBExecutor, goal *domain.Goal) error
	GetGoalByID(ctx context.Context, q DBExecutor, id int64) (*domain.Goal, error)
	ListGoals(ctx context.Context, q DBExecutor) ([]domain.Goal, error)
	UpdateGoalAmount(ctx context.Context, q DBExecutor, id int64, current decimal.Decimal) error
	DeleteGoal(ctx context.Context, q DBExecutor, id int64) error
}
