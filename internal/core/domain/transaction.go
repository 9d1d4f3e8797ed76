package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// TransactionType indicates whether a transaction adds or removes money.
type TransactionType string

const (
	Income  TransactionType = "income"
	Expense TransactionType = "expense"
)

// ParseTransactionType validates a raw string against the closed set of types.
func ParseTransactionType(s string) (TransactionType, error) {
	switch TransactionType(s) {
	case Income, Expense:
		return TransactionType(s), nil
	}
	return "", fmt.Errorf("invalid transaction type: %q", s)
}

// TransactionStatus indicates whether a transaction has settled.
type TransactionStatus string

const (
	StatusCompleted TransactionStatus = "completed"
	StatusPending   TransactionStatus = "pending"
)

// Transaction is a persisted ledger entry. Amount is always non-negative;
// Type carries the sign. Date is an ISO YYYY-MM-DD string so that date
// ranges compare lexicographically.
type Transaction struct {
	TransactionID string            `json:"transactionID"`
	AccountID     *string           `json:"accountID"` // nil when not tied to an account
	Description   string            `json:"description"`
	Amount        decimal.Decimal   `json:"amount"`
	Type          TransactionType   `json:"type"`
	Date          string            `json:"date"`
	Category      string            `json:"category"`
	Status        TransactionStatus `json:"status"`
	AuditFields
}
