package dto

import (
	"github.com/axxyfin/axxy_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SuggestAllocationRequest asks for a paycheck split suggestion.
type SuggestAllocationRequest struct {
	PaycheckAmount decimal.Decimal `json:"paycheck_amount" binding:"required"`
	PaycheckDate   string          `json:"paycheck_date" binding:"required,datetime=2006-01-02"`
}

// ApplyAllocationRequest identifies the draft allocation to apply.
type ApplyAllocationRequest struct {
	AllocationID string `json:"allocation_id" binding:"required"`
}

// AllocationItemResponse is one line of a suggested or recorded allocation.
type AllocationItemResponse struct {
	Name          string          `json:"name"`
	Amount        decimal.Decimal `json:"amount"`
	Percentage    float64         `json:"percentage"`
	ReferenceID   *string         `json:"reference_id,omitempty"`
	ReferenceType string          `json:"reference_type,omitempty"`
}

// AllocationCategoryResponse groups items per bucket with the bucket total.
type AllocationCategoryResponse struct {
	ID         string                   `json:"id"`
	Name       string                   `json:"name"`
	Color      string                   `json:"color"`
	Amount     decimal.Decimal          `json:"amount"`
	Percentage float64                  `json:"percentage"`
	Items      []AllocationItemResponse `json:"items"`
}

// ChartSlice feeds the allocation donut chart.
type ChartSlice struct {
	Name  string          `json:"name"`
	Value decimal.Decimal `json:"value"`
	Color string          `json:"color"`
}

// SuggestAllocationResponse is a persisted draft suggestion.
type SuggestAllocationResponse struct {
	AllocationID   string                       `json:"id"`
	PaycheckAmount decimal.Decimal              `json:"paycheck_amount"`
	PaycheckDate   string                       `json:"paycheck_date"`
	Categories     []AllocationCategoryResponse `json:"categories"`
	Insights       []string                     `json:"insights"`
	ChartData      []ChartSlice                 `json:"chart_data"`
}

// ApplyAllocationResponse reports the side effects of applying a draft.
type ApplyAllocationResponse struct {
	Success             bool     `json:"success"`
	Message             string   `json:"message"`
	TransactionsCreated int      `json:"transactions_created"`
	GoalsUpdated        []string `json:"goals_updated"`
}

// AllocationHistoryEntry is one past allocation with items grouped by bucket.
type AllocationHistoryEntry struct {
	AllocationID   string                       `json:"id"`
	PaycheckDate   string                       `json:"paycheck_date"`
	PaycheckAmount decimal.Decimal              `json:"paycheck_amount"`
	Status         domain.AllocationStatus      `json:"status"`
	Categories     []AllocationCategoryResponse `json:"categories"`
}
