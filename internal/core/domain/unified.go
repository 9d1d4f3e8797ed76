package domain

import "github.com/shopspring/decimal"

// UnifiedEntry is a ledger entry as seen by the reporting side: either a
// persisted transaction or a projected debt payment that has not happened
// yet. Projections are never persisted; only the unifier produces them.
type UnifiedEntry struct {
	Transaction
	Projected bool   `json:"projected"`
	DebtID    string `json:"debtID,omitempty"` // set only when Projected
}

// RealEntry wraps a persisted transaction.
func RealEntry(t Transaction) UnifiedEntry {
	return UnifiedEntry{Transaction: t}
}

// ProjectedEntry builds the virtual entry for an unpaid debt obligation.
// The embedded transaction carries no ID and no account: it exists only in
// memory for the duration of a report.
func ProjectedEntry(d Debt, date string, amount decimal.Decimal) UnifiedEntry {
	category := d.Category
	if category == "" {
		category = "Dívidas"
	}
	return UnifiedEntry{
		Transaction: Transaction{
			Description: "[Previsto] " + d.Name,
			Amount:      amount,
			Type:        Expense,
			Date:        date,
			Category:    category,
			Status:      StatusPending,
		},
		Projected: true,
		DebtID:    d.DebtID,
	}
}
