package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"tally/internal/core"
	"tally/internal/storage"
)

// ExpenseService records expenses and evaluates the matching budget.
type ExpenseService struct {
	store Store
}

func NewExpenseService(store Store) *ExpenseService {
	return &ExpenseService{store: store}
}

// AddExpense durably records the expense, then evaluates the budget for the
// expense's own (category, year, month). The spend sum is read back from the
// store so it includes the row just written.
func (s *ExpenseService) AddExpense(ctx context.Context, e core.Expense) (core.Expense, core.BudgetSignal, error) {
	if err := e.Validate(); err != nil {
		return core.Expense{}, core.BudgetSignal{}, fmt.Errorf("validate expense: %w", err)
	}

	saved, err := s.store.CreateExpense(ctx, e)
	if err != nil {
		return core.Expense{}, core.BudgetSignal{}, fmt.Errorf("save expense: %w", err)
	}

	year, month := saved.Date.Year(), saved.Date.Month()
	budget, err := s.store.GetBudget(ctx, saved.UserID, saved.Category, year, month)
	if errors.Is(err, storage.ErrNotFound) {
		// Valid empty result: the expense is saved, there is just no cap to check.
		return saved, core.EvaluateBudget(saved.Category, nil, core.Money{}), nil
	}
	if err != nil {
		return saved, core.BudgetSignal{}, fmt.Errorf("look up budget: %w", err)
	}

	spent, err := s.store.SumCategoryMonth(ctx, saved.UserID, saved.Category, year, month)
	if err != nil {
		return saved, core.BudgetSignal{}, fmt.Errorf("sum month spend: %w", err)
	}

	sig := core.EvaluateBudget(saved.Category, budget, spent)
	if sig.Kind == core.SignalExceeded || sig.Kind == core.SignalLowRemaining {
		slog.WarnContext(ctx, "Budget signal",
			"kind", sig.Kind,
			"user_id", saved.UserID,
			"category", saved.Category,
			"spent_cents", sig.Spent.Cents,
			"budget_cents", sig.Budget.Cents)
	}
	return saved, sig, nil
}
