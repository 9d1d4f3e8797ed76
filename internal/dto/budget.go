package dto

import (
	"github.com/axxyfin/axxy_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateBudgetRequest defines the data needed to create a budget.
type CreateBudgetRequest struct {
	Category string          `json:"category" binding:"required"`
	Limit    decimal.Decimal `json:"limit" binding:"required"`
	Priority string          `json:"priority" binding:"omitempty,oneof=essencial alto medio baixo"`
	Icon     string          `json:"icon"`
	Goal     string          `json:"goal"`
}

// UpdateBudgetRequest defines the data allowed for updating a budget.
type UpdateBudgetRequest struct {
	Category *string          `json:"category"`
	Limit    *decimal.Decimal `json:"limit"`
	Priority *string          `json:"priority" binding:"omitempty,oneof=essencial alto medio baixo"`
	Icon     *string          `json:"icon"`
	Goal     *string          `json:"goal"`
}

// BudgetResponse defines the data returned for a budget. Spent is the value
// recomputed from expense transactions at read time, never the stored one.
type BudgetResponse struct {
	BudgetID string          `json:"id"`
	Category string          `json:"category"`
	Limit    decimal.Decimal `json:"limit"`
	Spent    decimal.Decimal `json:"spent"`
	Priority string          `json:"priority"`
	Icon     string          `json:"icon"`
	Goal     string          `json:"goal,omitempty"`
}

// ToBudgetResponse converts a domain.Budget to its DTO.
func ToBudgetResponse(b *domain.Budget) BudgetResponse {
	return BudgetResponse{
		BudgetID: b.BudgetID,
		Category: b.Category,
		Limit:    b.Limit,
		Spent:    b.Spent,
		Priority: string(b.Priority),
		Icon:     b.Icon,
		Goal:     b.Goal,
	}
}

// ToListBudgetResponse converts a slice of budgets to DTOs.
func ToListBudgetResponse(budgets []domain.Budget) []BudgetResponse {
	res := make([]BudgetResponse, len(budgets))
	for i, b := range budgets {
		res[i] = ToBudgetResponse(&b)
	}
	return res
}

// CreateBudgetItemRequest defines the data for a budget sub-target.
type CreateBudgetItemRequest struct {
	Name         string          `json:"name" binding:"required"`
	TargetAmount decimal.Decimal `json:"targetAmount" binding:"required"`
}

// UpdateBudgetItemRequest defines the data allowed for updating a budget item.
type UpdateBudgetItemRequest struct {
	Name         *string          `json:"name"`
	TargetAmount *decimal.Decimal `json:"targetAmount"`
	Spent        *decimal.Decimal `json:"spent"`
	Completed    *bool            `json:"completed"`
}

// AutoAllocateRequest carries the lump sum to distribute across budgets.
type AutoAllocateRequest struct {
	AvailableAmount decimal.Decimal `json:"availableAmount" binding:"required"`
}

// AutoAllocateResponse is the result of distributing a lump sum.
type AutoAllocateResponse struct {
	TotalAvailable decimal.Decimal           `json:"total_available"`
	Allocations    []domain.BudgetAllocation `json:"allocations"`
	TotalAllocated decimal.Decimal           `json:"total_allocated"`
}
