package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/axxyfin/axxy_backend/internal/apperrors"
	"github.com/axxyfin/axxy_backend/internal/core/domain"
	portsrepo "github.com/axxyfin/axxy_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxBudgetRepository struct {
	BaseRepository
}

// newPgxBudgetRepository creates a new repository for budget data.
func newPgxBudgetRepository(pool *pgxpool.Pool) portsrepo.BudgetRepositoryFacade {
	return &PgxBudgetRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.BudgetRepositoryFacade = (*PgxBudgetRepository)(nil)

const budgetColumns = `budget_id, category, spending_limit, spent, priority, icon, goal, created_at, last_updated_at`

func scanBudget(row pgx.Row) (*domain.Budget, error) {
	var b domain.Budget
	err := row.Scan(
		&b.BudgetID,
		&b.Category,
		&b.Limit,
		&b.Spent,
		&b.Priority,
		&b.Icon,
		&b.Goal,
		&b.CreatedAt,
		&b.LastUpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan budget: %w", err)
	}
	return &b, nil
}

// FindBudgetByID retrieves a budget by its ID.
func (r *PgxBudgetRepository) FindBudgetByID(ctx context.Context, budgetID string) (*domain.Budget, error) {
	query := `SELECT ` + budgetColumns + ` FROM budgets WHERE budget_id = $1;`
	return scanBudget(r.Pool.QueryRow(ctx, query, budgetID))
}

// ListBudgets retrieves all budgets, oldest first.
func (r *PgxBudgetRepository) ListBudgets(ctx context.Context) ([]domain.Budget, error) {
	query := `SELECT ` + budgetColumns + ` FROM budgets ORDER BY created_at;`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list budgets: %w", err)
	}
	defer rows.Close()

	budgets := make([]domain.Budget, 0)
	for rows.Next() {
		b, err := scanBudget(rows)
		if err != nil {
			return nil, err
		}
		budgets = append(budgets, *b)
	}
	return budgets, rows.Err()
}

// SaveBudget inserts a new budget. Category is unique: budgets join to
// transactions by category.
func (r *PgxBudgetRepository) SaveBudget(ctx context.Context, budget domain.Budget) error {
	query := `
		INSERT INTO budgets (` + budgetColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.Pool.Exec(ctx, query,
		budget.BudgetID, budget.Category, budget.Limit, budget.Spent,
		budget.Priority, budget.Icon, budget.Goal, budget.CreatedAt, budget.LastUpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: budget for category %q already exists", apperrors.ErrDuplicate, budget.Category)
		}
		return fmt.Errorf("failed to save budget %s: %w", budget.BudgetID, err)
	}
	return nil
}

// UpdateBudget rewrites an existing budget.
func (r *PgxBudgetRepository) UpdateBudget(ctx context.Context, budget domain.Budget) error {
	query := `
		UPDATE budgets
		SET category = $2, spending_limit = $3, spent = $4, priority = $5, icon = $6, goal = $7, last_updated_at = $8
		WHERE budget_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		budget.BudgetID, budget.Category, budget.Limit, budget.Spent,
		budget.Priority, budget.Icon, budget.Goal, budget.LastUpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update budget %s: %w", budget.BudgetID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteBudget removes a budget and its items (ON DELETE CASCADE).
func (r *PgxBudgetRepository) DeleteBudget(ctx context.Context, budgetID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM budgets WHERE budget_id = $1;`, budgetID)
	if err != nil {
		return fmt.Errorf("failed to delete budget %s: %w", budgetID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

const budgetItemColumns = `item_id, budget_id, name, target_amount, spent, completed, created_at, last_updated_at`

func scanBudgetItem(row pgx.Row) (*domain.BudgetItem, error) {
	var it domain.BudgetItem
	err := row.Scan(
		&it.ItemID,
		&it.BudgetID,
		&it.Name,
		&it.TargetAmount,
		&it.Spent,
		&it.Completed,
		&it.CreatedAt,
		&it.LastUpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan budget item: %w", err)
	}
	return &it, nil
}

// ListBudgetItems retrieves a budget's items, oldest first.
func (r *PgxBudgetRepository) ListBudgetItems(ctx context.Context, budgetID string) ([]domain.BudgetItem, error) {
	query := `SELECT ` + budgetItemColumns + ` FROM budget_items WHERE budget_id = $1 ORDER BY created_at;`
	rows, err := r.Pool.Query(ctx, query, budgetID)
	if err != nil {
		return nil, fmt.Errorf("failed to list budget items: %w", err)
	}
	defer rows.Close()

	items := make([]domain.BudgetItem, 0)
	for rows.Next() {
		it, err := scanBudgetItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *it)
	}
	return items, rows.Err()
}

// FindBudgetItemByID retrieves one item scoped to its parent budget.
func (r *PgxBudgetRepository) FindBudgetItemByID(ctx context.Context, budgetID, itemID string) (*domain.BudgetItem, error) {
	query := `SELECT ` + budgetItemColumns + ` FROM budget_items WHERE budget_id = $1 AND item_id = $2;`
	return scanBudgetItem(r.Pool.QueryRow(ctx, query, budgetID, itemID))
}

// SaveBudgetItem inserts a new budget item.
func (r *PgxBudgetRepository) SaveBudgetItem(ctx context.Context, item domain.BudgetItem) error {
	query := `
		INSERT INTO budget_items (` + budgetItemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.Pool.Exec(ctx, query,
		item.ItemID, item.BudgetID, item.Name, item.TargetAmount,
		item.Spent, item.Completed, item.CreatedAt, item.LastUpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" { // FK violation: parent budget gone
			return apperrors.ErrNotFound
		}
		return fmt.Errorf("failed to save budget item %s: %w", item.ItemID, err)
	}
	return nil
}

// UpdateBudgetItem rewrites an existing budget item.
func (r *PgxBudgetRepository) UpdateBudgetItem(ctx context.Context, item domain.BudgetItem) error {
	query := `
		UPDATE budget_items
		SET name = $3, target_amount = $4, spent = $5, completed = $6, last_updated_at = $7
		WHERE budget_id = $1 AND item_id = $2;
	`
	tag, err := r.Pool.Exec(ctx, query,
		item.BudgetID, item.ItemID, item.Name, item.TargetAmount,
		item.Spent, item.Completed, item.LastUpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update budget item %s: %w", item.ItemID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteBudgetItem removes one item scoped to its parent budget.
func (r *PgxBudgetRepository) DeleteBudgetItem(ctx context.Context, budgetID, itemID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM budget_items WHERE budget_id = $1 AND item_id = $2;`, budgetID, itemID)
	if err != nil {
		return fmt.Errorf("failed to delete budget item %s: %w", itemID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
