// Package storage persists users, budgets and expenses in a local SQLite
// database and answers the aggregate queries the reports are built from.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"tally/internal/core"

	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when a lookup matches no row. Callers treat it as
// a valid empty result, not a failure.
var ErrNotFound = errors.New("not found")

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// CreateUser inserts a user and returns it with the assigned id.
func (r *SQLiteRepository) CreateUser(ctx context.Context, name string, email *string) (core.User, error) {
	u := core.User{Name: name, Email: email}
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO users (name, email) VALUES (?, ?)
		RETURNING id
	`, name, email).Scan(&u.ID)
	if err != nil {
		return core.User{}, fmt.Errorf("create user: %w", err)
	}

	slog.InfoContext(ctx, "User created", "id", u.ID, "name", u.Name)
	return u, nil
}

// UpsertBudget writes the budget for (user, category, year, month) in a
// single statement. The unique index on the key enforces at-most-one row;
// a second call with the same key overwrites amount and alert_pct.
func (r *SQLiteRepository) UpsertBudget(ctx context.Context, b core.Budget) (core.Budget, error) {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO budgets (user_id, category, year, month, amount_cents, alert_pct)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (user_id, category, year, month)
		DO UPDATE SET amount_cents = excluded.amount_cents, alert_pct = excluded.alert_pct
		RETURNING id
	`, b.UserID, b.Category, b.Year, b.Month, b.Amount.Cents, b.AlertPct).Scan(&b.ID)
	if err != nil {
		return core.Budget{}, fmt.Errorf("upsert budget: %w", err)
	}

	slog.InfoContext(ctx, "Budget saved",
		"id", b.ID,
		"user_id", b.UserID,
		"category", b.Category,
		"year", b.Year,
		"month", b.Month,
		"amount_cents", b.Amount.Cents)
	return b, nil
}

// GetBudget returns the budget for the key, or ErrNotFound.
// Category matching is a case-sensitive exact comparison.
func (r *SQLiteRepository) GetBudget(ctx context.Context, userID int64, category string, year, month int) (*core.Budget, error) {
	var (
		b        core.Budget
		amount   int64
		alertPct sql.NullFloat64
	)
	err := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, category, year, month, amount_cents, alert_pct
		FROM budgets
		WHERE user_id = ? AND category = ? AND year = ? AND month = ?
	`, userID, category, year, month).Scan(&b.ID, &b.UserID, &b.Category, &b.Year, &b.Month, &amount, &alertPct)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get budget: %w", err)
	}
	b.Amount = core.Money{Cents: amount}
	if alertPct.Valid {
		b.AlertPct = &alertPct.Float64
	}
	return &b, nil
}

// ListBudgets returns all budgets for a user and month, category ascending.
func (r *SQLiteRepository) ListBudgets(ctx context.Context, userID int64, year, month int) ([]core.Budget, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, category, year, month, amount_cents, alert_pct
		FROM budgets
		WHERE user_id = ? AND year = ? AND month = ?
		ORDER BY category ASC
	`, userID, year, month)
	if err != nil {
		return nil, fmt.Errorf("list budgets: %w", err)
	}
	defer rows.Close()

	var budgets []core.Budget
	for rows.Next() {
		var (
			b        core.Budget
			amount   int64
			alertPct sql.NullFloat64
		)
		if err := rows.Scan(&b.ID, &b.UserID, &b.Category, &b.Year, &b.Month, &amount, &alertPct); err != nil {
			return nil, fmt.Errorf("scan budget: %w", err)
		}
		b.Amount = core.Money{Cents: amount}
		if alertPct.Valid {
			b.AlertPct = &alertPct.Float64
		}
		budgets = append(budgets, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate budgets: %w", err)
	}
	return budgets, nil
}

// CreateExpense inserts an expense and returns it with the assigned id.
func (r *SQLiteRepository) CreateExpense(ctx context.Context, e core.Expense) (core.Expense, error) {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO expenses (user_id, category, amount_cents, note, date)
		VALUES (?, ?, ?, ?, ?)
		RETURNING id
	`, e.UserID, e.Category, e.Amount.Cents, e.Note, e.Date.ISO()).Scan(&e.ID)
	if err != nil {
		return core.Expense{}, fmt.Errorf("create expense: %w", err)
	}

	slog.InfoContext(ctx, "Expense saved",
		"id", e.ID,
		"user_id", e.UserID,
		"category", e.Category,
		"amount_cents", e.Amount.Cents,
		"date", e.Date.ISO())
	return e, nil
}

// SumCategoryMonth sums a category's expenses for the month, 0 when none.
func (r *SQLiteRepository) SumCategoryMonth(ctx context.Context, userID int64, category string, year, month int) (core.Money, error) {
	start, end := monthRange(year, month)
	var cents int64
	err := r.db.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(amount_cents), 0) FROM expenses
		WHERE user_id = ? AND category = ? AND date >= ? AND date < ?
	`, userID, category, start, end).Scan(&cents)
	if err != nil {
		return core.Money{}, fmt.Errorf("sum category month: %w", err)
	}
	return core.Money{Cents: cents}, nil
}

// SumMonth sums a user's expenses across all categories for the month.
func (r *SQLiteRepository) SumMonth(ctx context.Context, userID int64, year, month int) (core.Money, error) {
	start, end := monthRange(year, month)
	var cents int64
	err := r.db.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(amount_cents), 0) FROM expenses
		WHERE user_id = ? AND date >= ? AND date < ?
	`, userID, start, end).Scan(&cents)
	if err != nil {
		return core.Money{}, fmt.Errorf("sum month: %w", err)
	}
	return core.Money{Cents: cents}, nil
}

// CategorySumsMonth groups a user's month expenses by category, ascending.
func (r *SQLiteRepository) CategorySumsMonth(ctx context.Context, userID int64, year, month int) ([]core.CategorySpend, error) {
	start, end := monthRange(year, month)
	rows, err := r.db.QueryContext(ctx, `
		SELECT category, COALESCE(SUM(amount_cents), 0) FROM expenses
		WHERE user_id = ? AND date >= ? AND date < ?
		GROUP BY category
		ORDER BY category ASC
	`, userID, start, end)
	if err != nil {
		return nil, fmt.Errorf("category sums: %w", err)
	}
	defer rows.Close()

	var sums []core.CategorySpend
	for rows.Next() {
		var (
			s     core.CategorySpend
			cents int64
		)
		if err := rows.Scan(&s.Category, &cents); err != nil {
			return nil, fmt.Errorf("scan category sum: %w", err)
		}
		s.Spent = core.Money{Cents: cents}
		sums = append(sums, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate category sums: %w", err)
	}
	return sums, nil
}

// monthRange returns the ISO dates [first of month, first of next month).
// Comparing against the range keeps the filter correct regardless of how
// many days the month has; lexicographic order on ISO dates matches
// chronological order.
func monthRange(year, month int) (string, string) {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)
	const layout = "2006-01-02"
	return start.Format(layout), end.Format(layout)
}
