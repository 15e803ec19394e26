package core

// DefaultAlertPct is the remaining-budget percentage below which a
// low-budget alert fires when the budget row carries no threshold.
const DefaultAlertPct = 10.0

// SignalKind classifies the outcome of a budget evaluation.
type SignalKind int

const (
	// SignalNone: spend is comfortably within budget, nothing to report.
	SignalNone SignalKind = iota
	// SignalNoBudget: no budget configured for the category/month.
	SignalNoBudget
	// SignalExceeded: spent is strictly greater than the budget cap.
	SignalExceeded
	// SignalLowRemaining: remaining budget dropped to or below the alert threshold.
	SignalLowRemaining
)

// BudgetSignal is the result of evaluating a category's month spend against
// its budget. Remaining is floored at zero, never negative.
type BudgetSignal struct {
	Kind         SignalKind
	Category     string
	Spent        Money
	Budget       Money
	Remaining    Money
	RemainingPct float64
}

// EvaluateBudget decides whether a warning should be emitted after an expense
// lands. budget may be nil (no budget configured); spent is the month's total
// for the category including the expense just recorded.
//
// The exceeded check runs first: with a zero budget any positive spend is
// exceeded, not merely low-remaining.
func EvaluateBudget(category string, budget *Budget, spent Money) BudgetSignal {
	if budget == nil {
		return BudgetSignal{Kind: SignalNoBudget, Category: category, Spent: spent}
	}

	alertPct := DefaultAlertPct
	if budget.AlertPct != nil {
		alertPct = *budget.AlertPct
	}

	remaining := budget.Amount.Cents - spent.Cents
	if remaining < 0 {
		remaining = 0
	}
	var remainingPct float64
	if budget.Amount.Cents > 0 {
		remainingPct = float64(remaining) / float64(budget.Amount.Cents) * 100
	}

	sig := BudgetSignal{
		Category:     category,
		Spent:        spent,
		Budget:       budget.Amount,
		Remaining:    Money{Cents: remaining},
		RemainingPct: remainingPct,
	}
	switch {
	case spent.Cents > budget.Amount.Cents:
		sig.Kind = SignalExceeded
	case remainingPct <= alertPct:
		sig.Kind = SignalLowRemaining
	default:
		sig.Kind = SignalNone
	}
	return sig
}
