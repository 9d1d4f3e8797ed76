package domain

import "github.com/shopspring/decimal"

// ReportKPI summarizes spending for a reporting window.
type ReportKPI struct {
	TotalSpent       decimal.Decimal `json:"totalSpent"`
	TotalSpentChange float64         `json:"totalSpentChange"` // % vs the previous window
	TopCategory      string          `json:"topCategory"`
	TopCategoryValue decimal.Decimal `json:"topCategoryValue"`
	TransactionCount int             `json:"transactionCount"`
}

// CategorySlice is one category's share of a distribution.
type CategorySlice struct {
	Name       string          `json:"name"`
	Value      decimal.Decimal `json:"value"`
	Percentage float64         `json:"percentage"`
	Color      string          `json:"color"`
}

// ReportsResult is the KPI + expense distribution payload.
type ReportsResult struct {
	KPI          ReportKPI       `json:"kpi"`
	Distribution []CategorySlice `json:"distribution"`
}

// CashFlowEntry is one month of income vs expense.
type CashFlowEntry struct {
	Month   string          `json:"month"`
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Balance decimal.Decimal `json:"balance"`
}

// TrendEntry is one month of expense with the percent delta vs the
// previous month in the series.
type TrendEntry struct {
	Month  string          `json:"month"`
	Value  decimal.Decimal `json:"value"`
	Change float64         `json:"change"`
}

// DebtStatusBreakdown groups debt count and outstanding total for one status.
type DebtStatusBreakdown struct {
	Count int             `json:"count"`
	Total decimal.Decimal `json:"total"`
}

// HealthSummary is the consolidated debt-health view.
type HealthSummary struct {
	TotalDebt       decimal.Decimal                    `json:"totalDebt"`
	PendingPayments decimal.Decimal                    `json:"pendingPayments"`
	NextDueDate     string                             `json:"nextDueDate,omitempty"`
	StatusBreakdown map[DebtStatus]DebtStatusBreakdown `json:"statusBreakdown"`
	DebtCount       int                                `json:"debtCount"`
}

// NetWorthSummary aggregates assets and liabilities.
type NetWorthSummary struct {
	TotalAssets      decimal.Decimal `json:"totalAssets"`
	TotalLiabilities decimal.Decimal `json:"totalLiabilities"`
	NetWorth         decimal.Decimal `json:"netWorth"`
	Assets           []Asset         `json:"assets"`
	Liabilities      []Liability     `json:"liabilities"`
	Composition      []CategorySlice `json:"composition"`
}

// BudgetNeed is a budget's computed claim on newly available money.
type BudgetNeed struct {
	BudgetID       string          `json:"budgetID"`
	Category       string          `json:"category"`
	Priority       BudgetPriority  `json:"priority"`
	CurrentSpent   decimal.Decimal `json:"currentSpent"`
	Limit          decimal.Decimal `json:"limit"`
	Remaining      decimal.Decimal `json:"remaining"`
	PercentageUsed float64         `json:"percentageUsed"`
	NeedScore      float64         `json:"needScore"`
}

// BudgetAllocation is one budget's share of an auto-allocated amount.
type BudgetAllocation struct {
	BudgetID        string          `json:"budgetID"`
	Category        string          `json:"category"`
	Priority        BudgetPriority  `json:"priority"`
	SuggestedAmount decimal.Decimal `json:"suggestedAmount"`
	NewTotal        decimal.Decimal `json:"newTotal"`
	NewPercentage   float64         `json:"newPercentage"`
}

// PriorityScore ranks one budget for the priority ordering view.
type PriorityScore struct {
	BudgetID string  `json:"budgetID"`
	Score    float64 `json:"score"`
	Reason   string  `json:"reason"`
}
