package services

import (
	"context"

	"github.com/axxyfin/axxy_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AdvisorySvc is the gateway to the external language-model provider. Every
// result is optional enrichment: callers must behave identically when it
// returns ErrAdvisoryUnavailable or a result missing the expected keys.
type AdvisorySvc interface {
	Analyze(ctx context.Context, prompt string) (map[string]any, error)
}

// AllocationSvcFacade covers budget auto-allocation and the paycheck
// allocation workflow.
type AllocationSvcFacade interface {
	// AutoAllocate distributes availableAmount across budgets. An advisory
	// suggestion wins when well-formed; otherwise the distribution is
	// proportional to need score, capped at each budget's remaining headroom.
	AutoAllocate(ctx context.Context, availableAmount decimal.Decimal) ([]domain.BudgetAllocation, error)

	// CalculatePriorities ranks budgets by urgency, advisory-assisted with a
	// deterministic fallback.
	CalculatePriorities(ctx context.Context) ([]domain.PriorityScore, error)

	// SuggestAllocation builds and persists a draft paycheck split.
	SuggestAllocation(ctx context.Context, amount decimal.Decimal, paycheckDate string) (*domain.AllocationPlan, error)

	// ApplyAllocation transitions a draft to applied: one expense transaction
	// per non-safety-margin item against the default account, goal balances
	// incremented for goal-referencing items. All-or-nothing; re-applying
	// fails with ErrAllocationApplied.
	ApplyAllocation(ctx context.Context, allocationID string) (int, []string, error)

	// History lists past allocations, newest first, items grouped by bucket.
	History(ctx context.Context) ([]domain.AllocationPlan, error)
}
