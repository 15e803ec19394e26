package core

import "testing"

func TestMergeCategoryReport(t *testing.T) {
	sums := []CategorySpend{
		{Category: "Food", Spent: Money{Cents: 19000}},
		{Category: "Bar", Spent: Money{Cents: 1500}},
	}
	budgets := []Budget{
		{Category: "Food", Amount: Money{Cents: 20000}},
		{Category: "Transport", Amount: Money{Cents: 5000}},
	}

	lines := MergeCategoryReport(sums, budgets)
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}

	// Sorted by category ascending.
	wantOrder := []string{"Bar", "Food", "Transport"}
	for i, want := range wantOrder {
		if lines[i].Category != want {
			t.Fatalf("line %d: expected %q, got %q", i, want, lines[i].Category)
		}
	}

	// Spent category without budget has no budget attached.
	if lines[0].Budget != nil {
		t.Fatalf("Bar has no budget, got %v", *lines[0].Budget)
	}
	// Spent category with budget carries the configured amount.
	if lines[1].Budget == nil || lines[1].Budget.Cents != 20000 {
		t.Fatalf("Food budget not attached: %+v", lines[1])
	}
	if lines[1].Spent.Cents != 19000 {
		t.Fatalf("Food spent expected 19000, got %d", lines[1].Spent.Cents)
	}
	// Budgeted category with no spend is reported with spent 0.00.
	if lines[2].Spent.Cents != 0 {
		t.Fatalf("Transport spent expected 0, got %d", lines[2].Spent.Cents)
	}
	if lines[2].Budget == nil || lines[2].Budget.Cents != 5000 {
		t.Fatalf("Transport budget not attached: %+v", lines[2])
	}
}

func TestMergeCategoryReportEmpty(t *testing.T) {
	if lines := MergeCategoryReport(nil, nil); len(lines) != 0 {
		t.Fatalf("expected empty report, got %d lines", len(lines))
	}
}

func TestMergeCategoryReportCaseSensitive(t *testing.T) {
	sums := []CategorySpend{{Category: "food", Spent: Money{Cents: 100}}}
	budgets := []Budget{{Category: "Food", Amount: Money{Cents: 20000}}}

	lines := MergeCategoryReport(sums, budgets)
	if len(lines) != 2 {
		t.Fatalf("category match must be case-sensitive, got %d lines", len(lines))
	}
}
