package core

import "sort"

// CategorySpend is one row of a grouped month sum.
type CategorySpend struct {
	Category string
	Spent    Money
}

// CategoryLine is one line of the by-category report. Budget is nil for
// categories with spend but no configured budget.
type CategoryLine struct {
	Category string
	Spent    Money
	Budget   *Money
}

// MonthReport is the per-category breakdown for one user and month.
type MonthReport struct {
	Year  int
	Month int // 1-12
	Lines []CategoryLine
}

// MergeCategoryReport joins grouped expense sums with configured budgets.
// Categories with spend get their budget amount attached when one exists;
// budgets whose category saw no spend are reported with spent 0.00 so a
// configured-but-unused budget stays visible. Lines come back sorted by
// category ascending.
func MergeCategoryReport(sums []CategorySpend, budgets []Budget) []CategoryLine {
	byCategory := make(map[string]Money, len(budgets))
	for _, b := range budgets {
		byCategory[b.Category] = b.Amount
	}

	lines := make([]CategoryLine, 0, len(sums)+len(budgets))
	seen := make(map[string]bool, len(sums))
	for _, s := range sums {
		line := CategoryLine{Category: s.Category, Spent: s.Spent}
		if amount, ok := byCategory[s.Category]; ok {
			line.Budget = &amount
		}
		lines = append(lines, line)
		seen[s.Category] = true
	}
	for _, b := range budgets {
		if seen[b.Category] {
			continue
		}
		amount := b.Amount
		lines = append(lines, CategoryLine{Category: b.Category, Budget: &amount})
	}

	sort.Slice(lines, func(i, j int) bool { return lines[i].Category < lines[j].Category })
	return lines
}
