package domain_test

import (
	"testing"

	"github.com/axxyfin/axxy_backend/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestBudgetPriority_Weight(t *testing.T) {
	tests := []struct {
		name     string
		priority domain.BudgetPriority
		want     float64
	}{
		{name: "essential priority", priority: domain.PriorityEssential, want: 4.0},
		{name: "high priority", priority: domain.PriorityHigh, want: 2.5},
		{name: "medium priority", priority: domain.PriorityMedium, want: 1.5},
		{name: "low priority", priority: domain.PriorityLow, want: 0.8},
		{name: "legacy row without priority scores as medium", priority: domain.BudgetPriority(""), want: 1.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.priority.Weight())
		})
	}
}

func TestParseBudgetPriority(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "essencial is valid", input: "essencial"},
		{name: "baixo is valid", input: "baixo"},
		{name: "empty string is rejected", input: "", wantErr: true},
		{name: "unknown value is rejected", input: "urgente", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := domain.ParseBudgetPriority(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, domain.BudgetPriority(tt.input), got)
			}
		})
	}
}

func TestBudget_PercentageUsed(t *testing.T) {
	tests := []struct {
		name   string
		budget domain.Budget
		want   float64
	}{
		{
			name:   "half used",
			budget: domain.Budget{Limit: decimal.NewFromInt(800), Spent: decimal.NewFromInt(400)},
			want:   50,
		},
		{
			name:   "over limit goes past 100",
			budget: domain.Budget{Limit: decimal.NewFromInt(100), Spent: decimal.NewFromInt(150)},
			want:   150,
		},
		{
			name:   "zero limit reports zero instead of dividing",
			budget: domain.Budget{Limit: decimal.Zero, Spent: decimal.NewFromInt(50)},
			want:   0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, tt.budget.PercentageUsed(), 0.0001)
		})
	}
}

func TestBudget_Remaining(t *testing.T) {
	b := domain.Budget{Limit: decimal.NewFromInt(800), Spent: decimal.NewFromInt(650)}
	assert.True(t, b.Remaining().Equal(decimal.NewFromInt(150)))

	overspent := domain.Budget{Limit: decimal.NewFromInt(100), Spent: decimal.NewFromInt(130)}
	assert.True(t, overspent.Remaining().IsNegative())
}
