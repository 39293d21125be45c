// internal/repository/sqlstore/planning_store.go
package sqlstore

import (
	"context"
	"fmt"

	"my-money/internal/domain"
	"my-money/internal/repository"
	"my-money/internal/util"

	"github.com/shopspring/decimal"
)

const (
	budgetColumns = `id, category, amount_limit, month, created_at`
	goalColumns   = `id, name, target_amount, current_amount, deadline, created_at`
)

// BudgetRepository implements repository.BudgetRepository.
type BudgetRepository struct{}

// NewBudgetRepository creates a new BudgetRepository.
func NewBudgetRepository() repository.BudgetRepository {
	return &BudgetRepository{}
}

func (r *BudgetRepository) CreateBudget(ctx context.Context, q repository.DBExecutor, budget *domain.Budget) error {
	query := q.Rebind(`INSERT INTO budgets (category, amount_limit, month, created_at) VALUES (?, ?, ?, ?) RETURNING id`)
	err := q.QueryRowContext(ctx, query, budget.Category, budget.Limit, budget.Month, budget.CreatedAt).Scan(&budget.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return util.ErrDuplicateEntry
		}
		return fmt.Errorf("failed to create budget: %w", err)
	}
	return nil
}

func (r *BudgetRepository) GetBudgetByID(ctx context.Context, q repository.DBExecutor, id int64) (*domain.Budget, error) {
	var budget domain.Budget
	query := q.Rebind(`SELECT ` + budgetColumns + ` FROM budgets WHERE id = ?`)
	if err := q.GetContext(ctx, &budget, query, id); err != nil {
		return nil, notFoundOr(err, "failed to get budget by ID %d", id)
	}
	return &budget, nil
}

func (r *BudgetRepository) ListBudgets(ctx context.Context, q repository.DBExecutor, month string) ([]domain.Budget, error) {
	budgets := []domain.Budget{}
	query := `SELECT ` + budgetColumns + ` FROM budgets`
	var args []interface{}
	if month != "" {
		query += ` WHERE month = ?`
		args = append(args, month)
	}
	query += ` ORDER BY month DESC, category`
	if err := q.SelectContext(ctx, &budgets, q.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("failed to list budgets: %w", err)
	}
	return budgets, nil
}

func (r *BudgetRepository) UpdateBudget(ctx context.Context, q repository.DBExecutor, budget *domain.Budget) error {
	query := q.Rebind(`UPDATE budgets SET category = ?, amount_limit = ?, month = ? WHERE id = ?`)
	result, err := q.ExecContext(ctx, query, budget.Category, budget.Limit, budget.Month, budget.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return util.ErrDuplicateEntry
		}
		return fmt.Errorf("failed to update budget %d: %w", budget.ID, err)
	}
	return requireAffected(result, "budget", budget.ID)
}

func (r *BudgetRepository) DeleteBudget(ctx context.Context, q repository.DBExecutor, id int64) error {
	result, err := q.ExecContext(ctx, q.Rebind(`DELETE FROM budgets WHERE id = ?`), id)
	if err != nil {
		return fmt.Errorf("failed to delete budget %d: %w", id, err)
	}
	return requireAffected(result, "budget", id)
}

// GoalRepository implements repository.GoalRepository.
type GoalRepository struct{}

// NewGoalRepository creates a new GoalRepository.
func NewGoalRepository() repository.GoalRepository {
	return &GoalRepository{}
}

func (r *GoalRepository) CreateGoal(ctx context.Context, q repository.DBExecutor, goal *domain.Goal) error {
	query := q.Rebind(`INSERT INTO goals (name, target_amount, current_amount, deadline, created_at)
              VALUES (?, ?, ?, ?, ?) RETURNING id`)
	err := q.QueryRowContext(ctx, query, goal.Name, goal.TargetAmount, goal.CurrentAmount, goal.Deadline, goal.CreatedAt).Scan(&goal.ID)
	if err != nil {
		return fmt.Errorf("failed to create goal: %w", err)
	}
	return nil
}

func (r *GoalRepository) GetGoalByID(ctx context.Context, q repository.DBExecutor, id int64) (*domain.Goal, error) {
	var goal domain.Goal
	query := q.Rebind(`SELECT ` + goalColumns + ` FROM goals WHERE id = ?`)
	if err := q.GetContext(ctx, &goal, query, id); err != nil {
		return nil, notFoundOr(err, "failed to get goal by ID %d", id)
	}
	return &goal, nil
}

func (r *GoalRepository) ListGoals(ctx context.Context, q repository.DBExecutor) ([]domain.Goal, error) {
	goals := []domain.Goal{}
	if err := q.SelectContext(ctx, &goals, `SELECT `+goalColumns+` FROM goals ORDER BY id`); err != nil {
		return nil, fmt.Errorf("failed to list goals: %w", err)
	}
	return goals, nil
}

func (r *GoalRepository) UpdateGoalAmount(ctx context.Context, q repository.DBExecutor, id int64, current decimal.Decimal) error {
	result, err := q.ExecContext(ctx, q.Rebind(`UPDATE goals SET current_amount = ? WHERE id = ?`), current, id)
	if err != nil {
		return fmt.Errorf("failed to update goal %d: %w", id, err)
	}
	return requireAffected(result, "goal", id)
}

func (r *GoalRepository) DeleteGoal(ctx context.Context, q repository.DBExecutor, id int64) error {
	result, err := q.ExecContext(ctx, q.Rebind(`DELETE FROM goals WHERE id = ?`), id)
	if err != nil {
		return fmt.Errorf("failed to delete goal %d: %w", id, err)
	}
	return requireAffected(result, "goal", id)
}
