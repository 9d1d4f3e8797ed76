package dto

import (
	"github.com/axxyfin/axxy_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateGoalRequest defines the data needed to create a savings goal.
type CreateGoalRequest struct {
	Name          string          `json:"name" binding:"required"`
	CurrentAmount decimal.Decimal `json:"currentAmount"`
	TargetAmount  decimal.Decimal `json:"targetAmount" binding:"required"`
	Deadline      string          `json:"deadline" binding:"omitempty,datetime=2006-01-02"`
	Color         string          `json:"color"`
	ImageURL      string          `json:"imageUrl"`
}

// UpdateGoalRequest defines the data allowed for updating a goal.
type UpdateGoalRequest struct {
	Name          *string          `json:"name"`
	CurrentAmount *decimal.Decimal `json:"currentAmount"`
	TargetAmount  *decimal.Decimal `json:"targetAmount"`
	Deadline      *string          `json:"deadline" binding:"omitempty,datetime=2006-01-02"`
	Color         *string          `json:"color"`
	ImageURL      *string          `json:"imageUrl"`
}

// GoalResponse defines the data returned for a goal.
type GoalResponse struct {
	GoalID        string          `json:"id"`
	Name          string          `json:"name"`
	CurrentAmount decimal.Decimal `json:"currentAmount"`
	TargetAmount  decimal.Decimal `json:"targetAmount"`
	Deadline      string          `json:"deadline,omitempty"`
	Color         string          `json:"color"`
	ImageURL      string          `json:"imageUrl,omitempty"`
}

// ToGoalResponse converts a domain.Goal to its DTO.
func ToGoalResponse(g *domain.Goal) GoalResponse {
	return GoalResponse{
		GoalID:        g.GoalID,
		Name:          g.Name,
		CurrentAmount: g.CurrentAmount,
		TargetAmount:  g.TargetAmount,
		Deadline:      g.Deadline,
		Color:         g.Color,
		ImageURL:      g.ImageURL,
	}
}

// ToListGoalResponse converts a slice of goals to DTOs.
func ToListGoalResponse(goals []domain.Goal) []GoalResponse {
	res := make([]GoalResponse, len(goals))
	for i, g := range goals {
		res[i] = ToGoalResponse(&g)
	}
	return res
}
