package domain

import "github.com/shopspring/decimal"

// Asset is something the user owns that contributes to net worth.
// IconType groups assets for the composition chart: home, car, investment, other.
type Asset struct {
	AssetID  string          `json:"assetID"`
	Name     string          `json:"name"`
	Type     string          `json:"type"`
	Value    decimal.Decimal `json:"value"`
	IconType string          `json:"iconType"`
	AuditFields
}

// Liability is a long-lived obligation counted against net worth
// (loan, card, debt, other). Distinct from Debt, which tracks the
// month-to-month payment cycle.
type Liability struct {
	LiabilityID string          `json:"liabilityID"`
	Name        string          `json:"name"`
	Type        string          `json:"type"`
	Value       decimal.Decimal `json:"value"`
	IconType    string          `json:"iconType"`
	AuditFields
}
