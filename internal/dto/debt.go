package dto

import (
	"time"

	"github.com/axxyfin/axxy_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateDebtRequest defines the data needed to register a debt.
type CreateDebtRequest struct {
	Name               string          `json:"name" binding:"required"`
	Remaining          decimal.Decimal `json:"remaining"`
	Monthly            decimal.Decimal `json:"monthly"`
	DueDate            string          `json:"dueDate"`
	Status             string          `json:"status" binding:"required,oneof='Em dia' Pendente Atrasado"`
	IsUrgent           bool            `json:"isUrgent"`
	DebtType           string          `json:"debtType" binding:"omitempty,oneof=fixo parcelado"`
	TotalInstallments  int             `json:"totalInstallments"`
	CurrentInstallment int             `json:"currentInstallment"`
	Category           string          `json:"category"`
}

// UpdateDebtRequest defines the data allowed for updating a debt.
type UpdateDebtRequest struct {
	Name               *string          `json:"name"`
	Remaining          *decimal.Decimal `json:"remaining"`
	Monthly            *decimal.Decimal `json:"monthly"`
	DueDate            *string          `json:"dueDate"`
	Status             *string          `json:"status" binding:"omitempty,oneof='Em dia' Pendente Atrasado"`
	IsUrgent           *bool            `json:"isUrgent"`
	DebtType           *string          `json:"debtType" binding:"omitempty,oneof=fixo parcelado"`
	TotalInstallments  *int             `json:"totalInstallments"`
	CurrentInstallment *int             `json:"currentInstallment"`
	Category           *string          `json:"category"`
}

// PayDebtRequest registers a payment against a debt from a given account.
type PayDebtRequest struct {
	Amount    decimal.Decimal `json:"amount" binding:"required"`
	AccountID string          `json:"accountId" binding:"required"`
	Date      string          `json:"date" binding:"required,datetime=2006-01-02"`
}

// PayDebtResponse reports the outcome of a debt payment.
type PayDebtResponse struct {
	Success      bool            `json:"success"`
	NewRemaining decimal.Decimal `json:"new_remaining"`
}

// DebtResponse defines the data returned for a debt.
type DebtResponse struct {
	DebtID             string          `json:"id"`
	Name               string          `json:"name"`
	Remaining          decimal.Decimal `json:"remaining"`
	Monthly            decimal.Decimal `json:"monthly"`
	DueDate            string          `json:"dueDate"`
	Status             string          `json:"status"`
	IsUrgent           bool            `json:"isUrgent"`
	DebtType           string          `json:"debtType"`
	TotalInstallments  int             `json:"totalInstallments"`
	CurrentInstallment int             `json:"currentInstallment"`
	Category           string          `json:"category"`
	CreatedAt          time.Time       `json:"createdAt"`
	LastUpdatedAt      time.Time       `json:"lastUpdatedAt"`
}

// ToDebtResponse converts a domain.Debt to its DTO.
func ToDebtResponse(d *domain.Debt) DebtResponse {
	return DebtResponse{
		DebtID:             d.DebtID,
		Name:               d.Name,
		Remaining:          d.Remaining,
		Monthly:            d.Monthly,
		DueDate:            d.DueDate,
		Status:             string(d.Status),
		IsUrgent:           d.IsUrgent,
		DebtType:           string(d.DebtType),
		TotalInstallments:  d.TotalInstallments,
		CurrentInstallment: d.CurrentInstallment,
		Category:           d.Category,
		CreatedAt:          d.CreatedAt,
		LastUpdatedAt:      d.LastUpdatedAt,
	}
}

// ToListDebtResponse converts a slice of debts to DTOs.
func ToListDebtResponse(debts []domain.Debt) []DebtResponse {
	res := make([]DebtResponse, len(debts))
	for i, d := range debts {
		res[i] = ToDebtResponse(&d)
	}
	return res
}
