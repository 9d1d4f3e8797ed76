package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// BudgetPriority ranks how important a budget's category is to the user.
type BudgetPriority string

const (
	PriorityEssential BudgetPriority = "essencial"
	PriorityHigh      BudgetPriority = "alto"
	PriorityMedium    BudgetPriority = "medio"
	PriorityLow       BudgetPriority = "baixo"
)

// ParseBudgetPriority validates a raw string against the closed priority set.
func ParseBudgetPriority(s string) (BudgetPriority, error) {
	switch BudgetPriority(s) {
	case PriorityEssential, PriorityHigh, PriorityMedium, PriorityLow:
		return BudgetPriority(s), nil
	}
	return "", fmt.Errorf("invalid budget priority: %q", s)
}

// Weight returns the scoring multiplier for the priority. Rows persisted
// before the enum was enforced score with the medium weight.
func (p BudgetPriority) Weight() float64 {
	switch p {
	case PriorityEssential:
		return 4.0
	case PriorityHigh:
		return 2.5
	case PriorityLow:
		return 0.8
	default:
		return 1.5
	}
}

// Budget caps spending for one transaction category. Spent is never trusted
// as stored state: every read recomputes it from expense transactions whose
// category matches.
type Budget struct {
	BudgetID string          `json:"budgetID"`
	Category string          `json:"category"`
	Limit    decimal.Decimal `json:"limit"`
	Spent    decimal.Decimal `json:"spent"` // derived, recomputed at read time
	Priority BudgetPriority  `json:"priority"`
	Icon     string          `json:"icon"`
	Goal     string          `json:"goal"`
	AuditFields
}

// Remaining is the headroom left under the budget's limit.
func (b Budget) Remaining() decimal.Decimal {
	return b.Limit.Sub(b.Spent)
}

// PercentageUsed is spent/limit expressed as 0-100, 0 for a zero limit.
func (b Budget) PercentageUsed() float64 {
	if !b.Limit.IsPositive() {
		return 0
	}
	used, _ := b.Spent.Div(b.Limit).Mul(decimal.NewFromInt(100)).Float64()
	return used
}

// BudgetItem is a named sub-target inside a budget (e.g. a planned purchase).
type BudgetItem struct {
	ItemID       string          `json:"itemID"`
	BudgetID     string          `json:"budgetID"`
	Name         string          `json:"name"`
	TargetAmount decimal.Decimal `json:"targetAmount"`
	Spent        decimal.Decimal `json:"spent"`
	Completed    bool            `json:"completed"`
	AuditFields
}
