package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// DebtStatus tracks whether a debt's current installment has been handled.
type DebtStatus string

const (
	DebtOnTrack DebtStatus = "Em dia"
	DebtPending DebtStatus = "Pendente"
	DebtOverdue DebtStatus = "Atrasado"
)

// ParseDebtStatus validates a raw string against the closed set of statuses.
func ParseDebtStatus(s string) (DebtStatus, error) {
	switch DebtStatus(s) {
	case DebtOnTrack, DebtPending, DebtOverdue:
		return DebtStatus(s), nil
	}
	return "", fmt.Errorf("invalid debt status: %q", s)
}

// DebtType distinguishes fixed recurring obligations from installment plans.
type DebtType string

const (
	DebtFixed       DebtType = "fixo"
	DebtInstallment DebtType = "parcelado"
)

// Debt is an obligation with a recurring monthly amount and a remaining
// total. DueDate is either a full YYYY-MM-DD date or a bare day-of-month;
// the unifier resolves it against the reporting window.
type Debt struct {
	DebtID             string          `json:"debtID"`
	Name               string          `json:"name"`
	Remaining          decimal.Decimal `json:"remaining"`
	Monthly            decimal.Decimal `json:"monthly"`
	DueDate            string          `json:"dueDate"`
	Status             DebtStatus      `json:"status"`
	IsUrgent           bool            `json:"isUrgent"`
	DebtType           DebtType        `json:"debtType"`
	TotalInstallments  int             `json:"totalInstallments"`
	CurrentInstallment int             `json:"currentInstallment"`
	Category           string          `json:"category"`
	AuditFields
}

// Projectable reports whether the debt should be considered for projection
// in unified views. Debts already on track are assumed handled.
func (d Debt) Projectable() bool {
	return d.Status == DebtPending || d.Status == DebtOverdue
}
