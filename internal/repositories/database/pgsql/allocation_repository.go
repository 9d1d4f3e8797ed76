package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/axxyfin/axxy_backend/internal/apperrors"
	"github.com/axxyfin/axxy_backend/internal/core/domain"
	portsrepo "github.com/axxyfin/axxy_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxAllocationRepository struct {
	BaseRepository
}

// newPgxAllocationRepository creates a new repository for paycheck allocations.
func newPgxAllocationRepository(pool *pgxpool.Pool) portsrepo.AllocationRepositoryFacade {
	return &PgxAllocationRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.AllocationRepositoryFacade = (*PgxAllocationRepository)(nil)

const allocationColumns = `allocation_id, paycheck_date, paycheck_amount, status, created_at, last_updated_at`
const allocationItemColumns = `item_id, allocation_id, category, name, amount, percentage, reference_id, reference_type`

func scanAllocation(row pgx.Row) (*domain.PaycheckAllocation, error) {
	var a domain.PaycheckAllocation
	err := row.Scan(&a.AllocationID, &a.PaycheckDate, &a.PaycheckAmount, &a.Status, &a.CreatedAt, &a.LastUpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan allocation: %w", err)
	}
	return &a, nil
}

func scanAllocationItem(row pgx.Row) (*domain.AllocationItem, error) {
	var it domain.AllocationItem
	err := row.Scan(
		&it.ItemID, &it.AllocationID, &it.Category, &it.Name,
		&it.Amount, &it.Percentage, &it.ReferenceID, &it.ReferenceType,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan allocation item: %w", err)
	}
	return &it, nil
}

// FindAllocationByID retrieves an allocation header by its ID.
func (r *PgxAllocationRepository) FindAllocationByID(ctx context.Context, allocationID string) (*domain.PaycheckAllocation, error) {
	query := `SELECT ` + allocationColumns + ` FROM paycheck_allocations WHERE allocation_id = $1;`
	return scanAllocation(r.Pool.QueryRow(ctx, query, allocationID))
}

// ListAllocations retrieves all allocation headers, newest paycheck first.
func (r *PgxAllocationRepository) ListAllocations(ctx context.Context) ([]domain.PaycheckAllocation, error) {
	query := `SELECT ` + allocationColumns + ` FROM paycheck_allocations ORDER BY paycheck_date DESC, created_at DESC;`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list allocations: %w", err)
	}
	defer rows.Close()

	allocations := make([]domain.PaycheckAllocation, 0)
	for rows.Next() {
		a, err := scanAllocation(rows)
		if err != nil {
			return nil, err
		}
		allocations = append(allocations, *a)
	}
	return allocations, rows.Err()
}

// ListAllocationItems retrieves the items of one allocation in insert order.
func (r *PgxAllocationRepository) ListAllocationItems(ctx context.Context, allocationID string) ([]domain.AllocationItem, error) {
	query := `SELECT ` + allocationItemColumns + ` FROM allocation_items WHERE allocation_id = $1 ORDER BY item_id;`
	rows, err := r.Pool.Query(ctx, query, allocationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list allocation items: %w", err)
	}
	defer rows.Close()

	items := make([]domain.AllocationItem, 0)
	for rows.Next() {
		it, err := scanAllocationItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *it)
	}
	return items, rows.Err()
}

// SaveAllocation persists the allocation header and all of its items in a
// single transaction.
func (r *PgxAllocationRepository) SaveAllocation(ctx context.Context, allocation domain.PaycheckAllocation, items []domain.AllocationItem) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	headerQuery := `INSERT INTO paycheck_allocations (` + allocationColumns + `) VALUES ($1, $2, $3, $4, $5, $6);`
	_, err = tx.Exec(ctx, headerQuery,
		allocation.AllocationID, allocation.PaycheckDate, allocation.PaycheckAmount,
		allocation.Status, allocation.CreatedAt, allocation.LastUpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save allocation %s: %w", allocation.AllocationID, err)
	}

	itemQuery := `INSERT INTO allocation_items (` + allocationItemColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8);`
	for _, it := range items {
		_, err = tx.Exec(ctx, itemQuery,
			it.ItemID, allocation.AllocationID, it.Category, it.Name,
			it.Amount, it.Percentage, it.ReferenceID, it.ReferenceType,
		)
		if err != nil {
			return fmt.Errorf("failed to save allocation item %s: %w", it.ItemID, err)
		}
	}

	return r.Commit(ctx, tx)
}

// MarkAppliedInTx flips a draft allocation to applied within an existing
// database transaction. Applied is terminal, so a row that is no longer a
// draft fails with ErrAllocationApplied.
func (r *PgxAllocationRepository) MarkAppliedInTx(ctx context.Context, tx pgx.Tx, allocationID string) error {
	query := `
		UPDATE paycheck_allocations
		SET status = $2, last_updated_at = $3
		WHERE allocation_id = $1 AND status = $4;
	`
	tag, err := tx.Exec(ctx, query, allocationID, domain.AllocationApplied, time.Now(), domain.AllocationDraft)
	if err != nil {
		return fmt.Errorf("failed to mark allocation %s applied: %w", allocationID, err)
	}
	if tag.RowsAffected() == 0 {
		var exists bool
		if err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM paycheck_allocations WHERE allocation_id = $1);`, allocationID).Scan(&exists); err != nil {
			return fmt.Errorf("failed to check allocation %s: %w", allocationID, err)
		}
		if exists {
			return apperrors.ErrAllocationApplied
		}
		return apperrors.ErrNotFound
	}
	return nil
}
