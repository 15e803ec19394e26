package services

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"tally/internal/core"
)

// ReportService answers the month report queries. Both are stateless point
// reads over the store.
type ReportService struct {
	store Store
}

func NewReportService(store Store) *ReportService {
	return &ReportService{store: store}
}

// MonthTotal sums a user's spend for the month. An empty month is 0.00,
// never an error.
func (s *ReportService) MonthTotal(ctx context.Context, userID int64, year, month int) (core.Money, error) {
	total, err := s.store.SumMonth(ctx, userID, year, month)
	if err != nil {
		return core.Money{}, fmt.Errorf("month total: %w", err)
	}
	return total, nil
}

// MonthByCategory builds the per-category breakdown: grouped expense sums
// merged with configured budgets, including budgets that saw no spend. The
// two underlying queries are independent and run concurrently.
func (s *ReportService) MonthByCategory(ctx context.Context, userID int64, year, month int) (core.MonthReport, error) {
	var (
		sums    []core.CategorySpend
		budgets []core.Budget
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		sums, err = s.store.CategorySumsMonth(gctx, userID, year, month)
		return err
	})
	g.Go(func() error {
		var err error
		budgets, err = s.store.ListBudgets(gctx, userID, year, month)
		return err
	})
	if err := g.Wait(); err != nil {
		return core.MonthReport{}, fmt.Errorf("month by category: %w", err)
	}

	return core.MonthReport{
		Year:  year,
		Month: month,
		Lines: core.MergeCategoryReport(sums, budgets),
	}, nil
}
