package domain

import "github.com/shopspring/decimal"

// Goal is a savings target with an optional deadline (YYYY-MM-DD).
type Goal struct {
	GoalID        string          `json:"goalID"`
	Name          string          `json:"name"`
	CurrentAmount decimal.Decimal `json:"currentAmount"`
	TargetAmount  decimal.Decimal `json:"targetAmount"`
	Deadline      string          `json:"deadline"`
	Color         string          `json:"color"`
	ImageURL      string          `json:"imageUrl"`
	AuditFields
}

// Progress returns completion as a fraction in [0,1]; a goal without a
// positive target counts as complete.
func (g Goal) Progress() float64 {
	if !g.TargetAmount.IsPositive() {
		return 1
	}
	p, _ := g.CurrentAmount.Div(g.TargetAmount).Float64()
	return p
}
