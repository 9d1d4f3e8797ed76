package domain

import "github.com/shopspring/decimal"

// AllocationStatus is the lifecycle state of a paycheck allocation.
// The only transition is draft -> applied; applied is terminal.
type AllocationStatus string

const (
	AllocationDraft   AllocationStatus = "draft"
	AllocationApplied AllocationStatus = "applied"
)

// Allocation bucket identifiers. Items in the safety-margin bucket stay on
// the account and never become transactions.
const (
	BucketEssentials   = "essentials"
	BucketGoals        = "goals"
	BucketBudgets      = "budgets"
	BucketSafetyMargin = "safety_margin"
)

// Reference types an allocation item may point at.
const (
	RefDebt   = "debt"
	RefGoal   = "goal"
	RefBudget = "budget"
)

// PaycheckAllocation is the header of a proposed split of a paycheck across
// debts, goals, budgets and a safety margin.
type PaycheckAllocation struct {
	AllocationID   string           `json:"allocationID"`
	PaycheckDate   string           `json:"paycheckDate"`
	PaycheckAmount decimal.Decimal  `json:"paycheckAmount"`
	Status         AllocationStatus `json:"status"`
	AuditFields
}

// AllocationCategory is one bucket of an allocation plan with its items and
// the bucket total.
type AllocationCategory struct {
	ID         string           `json:"id"`
	Name       string           `json:"name"`
	Color      string           `json:"color"`
	Amount     decimal.Decimal  `json:"amount"`
	Percentage float64          `json:"percentage"`
	Items      []AllocationItem `json:"items"`
}

// AllocationPlan is a full paycheck split: the persisted header plus its
// items grouped by bucket and the narrative insights that came with it.
type AllocationPlan struct {
	Allocation PaycheckAllocation   `json:"allocation"`
	Categories []AllocationCategory `json:"categories"`
	Insights   []string             `json:"insights"`
}

// AllocationItem is one line of a paycheck allocation. ReferenceID points at
// the debt/goal/budget the item funds, when any.
type AllocationItem struct {
	ItemID        string          `json:"itemID"`
	AllocationID  string          `json:"allocationID"`
	Category      string          `json:"category"` // bucket id
	Name          string          `json:"name"`
	Amount        decimal.Decimal `json:"amount"`
	Percentage    float64         `json:"percentage"`
	ReferenceID   *string         `json:"referenceID,omitempty"`
	ReferenceType string          `json:"referenceType,omitempty"`
}
