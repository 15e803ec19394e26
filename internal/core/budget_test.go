package core

import (
	"testing"

	"pgregory.net/rapid"
)

func pctPtr(v float64) *float64 { return &v }

func TestEvaluateBudget(t *testing.T) {
	cases := []struct {
		name          string
		budget        *Budget
		spentCents    int64
		wantKind      SignalKind
		wantRemaining int64
		wantPct       float64
	}{
		{
			name:     "no budget configured",
			budget:   nil,
			wantKind: SignalNoBudget,
		},
		{
			name:          "low remaining at default threshold",
			budget:        &Budget{Amount: Money{Cents: 20000}, AlertPct: pctPtr(10)},
			spentCents:    19000,
			wantKind:      SignalLowRemaining,
			wantRemaining: 1000,
			wantPct:       5.0,
		},
		{
			name:          "exceeded",
			budget:        &Budget{Amount: Money{Cents: 20000}, AlertPct: pctPtr(10)},
			spentCents:    25000,
			wantKind:      SignalExceeded,
			wantRemaining: 0,
			wantPct:       0,
		},
		{
			name:          "well within budget is silent",
			budget:        &Budget{Amount: Money{Cents: 20000}},
			spentCents:    5000,
			wantKind:      SignalNone,
			wantRemaining: 15000,
			wantPct:       75.0,
		},
		{
			name:          "nil alert_pct falls back to default",
			budget:        &Budget{Amount: Money{Cents: 10000}},
			spentCents:    9000,
			wantKind:      SignalLowRemaining,
			wantRemaining: 1000,
			wantPct:       10.0,
		},
		{
			name:       "zero budget with positive spend is exceeded not low",
			budget:     &Budget{Amount: Money{Cents: 0}},
			spentCents: 1,
			wantKind:   SignalExceeded,
		},
		{
			name:     "zero budget with zero spend is low remaining",
			budget:   &Budget{Amount: Money{Cents: 0}},
			wantKind: SignalLowRemaining,
		},
		{
			name:          "negative spend leaves more than full budget",
			budget:        &Budget{Amount: Money{Cents: 10000}},
			spentCents:    -500,
			wantKind:      SignalNone,
			wantRemaining: 10500,
			wantPct:       105.0,
		},
		{
			name:          "exact spend is low remaining, not exceeded",
			budget:        &Budget{Amount: Money{Cents: 20000}},
			spentCents:    20000,
			wantKind:      SignalLowRemaining,
			wantRemaining: 0,
			wantPct:       0,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			sig := EvaluateBudget("Food", tc.budget, Money{Cents: tc.spentCents})
			if sig.Kind != tc.wantKind {
				t.Fatalf("expected kind %v, got %v", tc.wantKind, sig.Kind)
			}
			if tc.budget == nil {
				return
			}
			if sig.Remaining.Cents != tc.wantRemaining {
				t.Fatalf("expected remaining %d, got %d", tc.wantRemaining, sig.Remaining.Cents)
			}
			if sig.RemainingPct != tc.wantPct {
				t.Fatalf("expected pct %v, got %v", tc.wantPct, sig.RemainingPct)
			}
		})
	}
}

func TestEvaluateBudgetProperties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		budgetCents := rapid.Int64Range(0, 10_000_000).Draw(t, "budget")
		spentCents := rapid.Int64Range(-10_000_000, 20_000_000).Draw(t, "spent")
		alert := rapid.Float64Range(0, 100).Draw(t, "alert")

		b := &Budget{Amount: Money{Cents: budgetCents}, AlertPct: &alert}
		sig := EvaluateBudget("x", b, Money{Cents: spentCents})

		if sig.Remaining.Cents < 0 {
			t.Fatalf("remaining must never be negative, got %d", sig.Remaining.Cents)
		}
		if spentCents > budgetCents && sig.Kind != SignalExceeded {
			t.Fatalf("spent %d > budget %d must be exceeded, got %v", spentCents, budgetCents, sig.Kind)
		}
		if spentCents <= budgetCents && sig.Kind == SignalExceeded {
			t.Fatalf("spent %d <= budget %d must not be exceeded", spentCents, budgetCents)
		}
		if sig.Kind == SignalNone && sig.RemainingPct <= alert {
			t.Fatalf("silent signal with pct %v <= alert %v", sig.RemainingPct, alert)
		}
	})
}
