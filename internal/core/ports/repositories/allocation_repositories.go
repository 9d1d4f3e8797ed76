package repositories

import (
	"context"

	"github.com/axxyfin/axxy_backend/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// AllocationReader defines read operations for paycheck allocations.
type AllocationReader interface {
	FindAllocationByID(ctx context.Context, allocationID string) (*domain.PaycheckAllocation, error)
	ListAllocations(ctx context.Context) ([]domain.PaycheckAllocation, error)
	ListAllocationItems(ctx context.Context, allocationID string) ([]domain.AllocationItem, error)
}

// AllocationWriter defines write operations for paycheck allocations.
type AllocationWriter interface {
	// SaveAllocation persists the allocation header and all of its items.
	SaveAllocation(ctx context.Context, allocation domain.PaycheckAllocation, items []domain.AllocationItem) error

	// MarkAppliedInTx flips a draft allocation to applied within an existing
	// database transaction, failing with ErrAllocationApplied if the row is
	// no longer a draft.
	MarkAppliedInTx(ctx context.Context, tx pgx.Tx, allocationID string) error
}

// AllocationRepositoryFacade combines all allocation-related repository interfaces.
type AllocationRepositoryFacade interface {
	AllocationReader
	AllocationWriter
	TransactionManager
}
