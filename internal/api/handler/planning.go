// internal/api/handler/planning.go
package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"my-money/internal/domain"
	"my-money/internal/service"
)

// PlanningHandler handles HTTP requests for budgets and savings goals.
type PlanningHandler struct {
	responder
	budgets service.BudgetService
	goals   service.GoalService
	now     func() time.Time
}

// NewPlanningHandler creates a new PlanningHandler.
func NewPlanningHandler(budgets service.BudgetService, goals service.GoalService, logger *slog.Logger) *PlanningHandler {
	return &PlanningHandler{
		responder: responder{logger: logger},
		budgets:   budgets,
		goals:     goals,
		now:       time.Now,
	}
}

// BudgetRequest represents the request body for a budget.
type BudgetRequest struct {
	Category string          `json:"category"`
	Limit    decimal.Decimal `json:"limit"`
	Month    string          `json:"month"` // YYYY-MM, defaults to the current month
}

func (h *PlanningHandler) budgetInput(req BudgetRequest) service.BudgetInput {
	month := req.Month
	if month == "" {
		month = domain.MonthOf(h.now())
	}
	return service.BudgetInput{Category: req.Category, Limit: req.Limit, Month: month}
}

// QuickExpenseRequest represents the request body for a budget quick expense.
type QuickExpenseRequest struct {
	WalletID int64           `json:"wallet_id"`
	Amount   decimal.Decimal `json:"amount"`
	Title    string          `json:"title"`
	Date     string          `json:"date"`
}

// GoalRequest represents the request body for a goal.
type GoalRequest struct {
	Name          string          `json:"name"`
	TargetAmount  decimal.Decimal `json:"target_amount"`
	CurrentAmount decimal.Decimal `json:"current_amount"`
	Deadline      string          `json:"deadline"`
}

// AmountRequest carries a single amount.
type AmountRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

// ListBudgets handles the budget usage list.
// GET /budgets?month=
func (h *PlanningHandler) ListBudgets(w http.ResponseWriter, r *http.Request) {
	month, err := monthParam(r, h.now())
	if err != nil {
		h.respondWithError(w, err)
		return
	}
	usage, err := h.budgets.ListBudgets(r.Context(), month)
	if err != nil {
		h.respondWithError(w, err)
		return
	}
	h.respondWithJSON(w, http.StatusOK, map[string]interface{}{"month": month, "data": usage})
}

// CreateBudget handles the create budget request.
// POST /budgets
func (h *PlanningHandler) CreateBudget(w http.ResponseWriter, r *http.Request) {
	var req BudgetRequest
	if err := decode(r, &req); err != nil {
		h.respondWithError(w, err)
		return
	}
	budget, err := h.budgets.CreateBudget(r.Context(), SessionFrom(r.Context()), h.budgetInput(req))
	if err != nil {
		h.respondWithError(w, err)
		return
	}
	h.respondWithJSON(w, http.StatusCreated, budget)
}

// UpdateBudget handles the update budget request.
// PUT /budgets/{budgetID}
func (h *PlanningHandler) UpdateBudget(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "budgetID")
	if err != nil {
		h.respondWithError(w, err)
		return
	}
	var req BudgetRequest
	if err := decode(r, &req); err != nil {
		h.respondWithError(w, err)
		return
	}
	budget, err := h.budgets.UpdateBudget(r.Context(), SessionFrom(r.Context()), id, h.budgetInput(req))
	if err != nil {
		h.respondWithError(w, err)
		return
	}
	h.respondWithJSON(w, http.StatusOK, budget)
}

// DeleteBudget handles the delete budget request.
// DELETE /budgets/{budgetID}
func (h *PlanningHandler) DeleteBudget(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "budgetID")
	if err != nil {
		h.respondWithError(w, err)
		return
	}
	if err := h.budgets.DeleteBudget(r.Context(), SessionFrom(r.Context()), id); err != nil {
		h.respondWithError(w, err)
		return
	}
	h.respondWithJSON(w, http.StatusOK, map[string]string{"message": "Budget deleted"})
}

// QuickExpense books an expense in the budget's category.
// POST /budgets/{budgetID}/expense
func (h *PlanningHandler) QuickExpense(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "budgetID")
	if err != nil {
		h.respondWithError(w, err)
		return
	}
	var req QuickExpenseRequest
	if err := decode(r, &req); err != nil {
		h.respondWithError(w, err)
		return
	}
	date, err := parseDay("date", req.Date, h.now())
	if err != nil {
		h.respondWithError(w, err)
		return
	}
	tx, err := h.budgets.QuickExpense(r.Context(), SessionFrom(r.Context()), id, service.QuickExpenseInput{
		WalletID: req.WalletID,
		Amount:   req.Amount,
		Title:    req.Title,
		Date:     date,
	})
	if err != nil {
		h.respondWithError(w, err)
		return
	}
	h.respondWithJSON(w, http.StatusCreated, tx)
}

type goalView struct {
	domain.Goal
	Progress decimal.Decimal `json:"progress"`
	Reached  bool            `json:"reached"`
}

func viewGoal(g domain.Goal) goalView {
	return goalView{Goal: g, Progress: g.Progress(), Reached: g.Reached()}
}

// ListGoals handles the goal list.
// GET /goals
func (h *PlanningHandler) ListGoals(w http.ResponseWriter, r *http.Request) {
	goals, err := h.goals.ListGoals(r.Context())
	if err != nil {
		h.respondWithError(w, err)
		return
	}
	views := make([]goalView, 0, len(goals))
	for _, g := range goals {
		views = append(views, viewGoal(g))
	}
	h.respondWithJSON(w, http.StatusOK, map[string]interface{}{"data": views})
}

// CreateGoal handles the create goal request.
// POST /goals
func (h *PlanningHandler) CreateGoal(w http.ResponseWriter, r *http.Request) {
	var req GoalRequest
	if err := decode(r, &req); err != nil {
		h.respondWithError(w, err)
		return
	}
	in := service.GoalInput{
		Name:          req.Name,
		TargetAmount:  req.TargetAmount,
		CurrentAmount: req.CurrentAmount,
	}
	if req.Deadline != "" {
		deadline, err := parseDay("deadline", req.Deadline, h.now())
		if err != nil {
			h.respondWithError(w, err)
			return
		}
		in.Deadline = &deadline
	}
	goal, err := h.goals.CreateGoal(r.Context(), SessionFrom(r.Context()), in)
	if err != nil {
		h.respondWithError(w, err)
		return
	}
	h.respondWithJSON(w, http.StatusCreated, viewGoal(*goal))
}

// DeleteGoal handles the delete goal request.
// DELETE /goals/{goalID}
func (h *PlanningHandler) DeleteGoal(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "goalID")
	if err != nil {
		h.respondWithError(w, err)
		return
	}
	if err := h.goals.DeleteGoal(r.Context(), SessionFrom(r.Context()), id); err != nil {
		h.respondWithError(w, err)
		return
	}
	h.respondWithJSON(w, http.StatusOK, map[string]string{"message": "Goal deleted"})
}

// QuickAdd moves a goal's progress forward.
// POST /goals/{goalID}/add
func (h *PlanningHandler) QuickAdd(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "goalID")
	if err != nil {
		h.respondWithError(w, err)
		return
	}
	var req AmountRequest
	if err := decode(r, &req); err != nil {
		h.respondWithError(w, err)
		return
	}
	goal, err := h.goals.QuickAdd(r.Context(), SessionFrom(r.Context()), id, req.Amount)
	if err != nil {
		h.respondWithError(w, err)
		return
	}
	h.respondWithJSON(w, http.StatusOK, viewGoal(*goal))
}
