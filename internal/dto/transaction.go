package dto

import (
	"github.com/axxyfin/axxy_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateTransactionRequest defines the data needed to record a transaction.
// Amount is always non-negative; Type carries the direction.
type CreateTransactionRequest struct {
	AccountID   *string         `json:"accountId"`
	Description string          `json:"description" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Type        string          `json:"type" binding:"required,oneof=income expense"`
	Date        string          `json:"date" binding:"required,datetime=2006-01-02"`
	Category    string          `json:"category" binding:"required"`
	Status      string          `json:"status" binding:"omitempty,oneof=completed pending"`
}

// UpdateTransactionRequest rewrites all mutable fields of a transaction,
// mirroring the full-replace semantics of the edit form.
type UpdateTransactionRequest struct {
	AccountID   *string         `json:"accountId"`
	Description string          `json:"description" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Type        string          `json:"type" binding:"required,oneof=income expense"`
	Date        string          `json:"date" binding:"required,datetime=2006-01-02"`
	Category    string          `json:"category" binding:"required"`
	Status      string          `json:"status" binding:"omitempty,oneof=completed pending"`
}

// TransactionResponse defines the data returned for a transaction. Projected
// is true only for virtual entries produced by the unifier; those carry the
// originating debt's id and are never persisted.
type TransactionResponse struct {
	TransactionID string          `json:"id"`
	AccountID     *string         `json:"accountId"`
	Description   string          `json:"description"`
	Amount        decimal.Decimal `json:"amount"`
	Type          string          `json:"type"`
	Date          string          `json:"date"`
	Category      string          `json:"category"`
	Status        string          `json:"status"`
	Projected     bool            `json:"projected,omitempty"`
	DebtID        string          `json:"debtId,omitempty"`
}

// ToTransactionResponse converts a domain.Transaction to its DTO.
func ToTransactionResponse(t *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID: t.TransactionID,
		AccountID:     t.AccountID,
		Description:   t.Description,
		Amount:        t.Amount,
		Type:          string(t.Type),
		Date:          t.Date,
		Category:      t.Category,
		Status:        string(t.Status),
	}
}

// ToListTransactionResponse converts a slice of transactions to DTOs.
func ToListTransactionResponse(txns []domain.Transaction) []TransactionResponse {
	res := make([]TransactionResponse, len(txns))
	for i, t := range txns {
		res[i] = ToTransactionResponse(&t)
	}
	return res
}

// ToUnifiedResponse converts unified entries (real + projected) to DTOs.
func ToUnifiedResponse(entries []domain.UnifiedEntry) []TransactionResponse {
	res := make([]TransactionResponse, len(entries))
	for i, e := range entries {
		res[i] = ToTransactionResponse(&e.Transaction)
		res[i].Projected = e.Projected
		res[i].DebtID = e.DebtID
	}
	return res
}
