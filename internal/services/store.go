// Package services orchestrates the domain logic over the persistence
// store: expense recording with budget evaluation, and the month reports.
package services

import (
	"context"

	"tally/internal/core"
)

// Store is the persistence surface the services need. Satisfied by
// storage.SQLiteRepository; tests substitute an in-memory fake.
type Store interface {
	CreateUser(ctx context.Context, name string, email *string) (core.User, error)
	UpsertBudget(ctx context.Context, b core.Budget) (core.Budget, error)
	GetBudget(ctx context.Context, userID int64, category string, year, month int) (*core.Budget, error)
	ListBudgets(ctx context.Context, userID int64, year, month int) ([]core.Budget, error)
	CreateExpense(ctx context.Context, e core.Expense) (core.Expense, error)
	SumCategoryMonth(ctx context.Context, userID int64, category string, year, month int) (core.Money, error)
	SumMonth(ctx context.Context, userID int64, year, month int) (core.Money, error)
	CategorySumsMonth(ctx context.Context, userID int64, year, month int) ([]core.CategorySpend, error)
}
