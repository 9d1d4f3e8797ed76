package domain

import "github.com/shopspring/decimal"

// Account represents a money account (wallet, bank account, card).
// Balance is mutated by transaction creation/update/deletion and debt payment.
type Account struct {
	AccountID string          `json:"accountID"`
	Name      string          `json:"name"`
	Type      string          `json:"type"`
	Balance   decimal.Decimal `json:"balance"`
	Color     string          `json:"color"`
	Icon      string          `json:"icon"`
	AuditFields
}
