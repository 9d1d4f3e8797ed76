package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/axxyfin/axxy_backend/internal/apperrors"
	"github.com/axxyfin/axxy_backend/internal/core/domain"
	portsrepo "github.com/axxyfin/axxy_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxDebtRepository struct {
	BaseRepository
}

// newPgxDebtRepository creates a new repository for debt data.
func newPgxDebtRepository(pool *pgxpool.Pool) portsrepo.DebtRepositoryFacade {
	return &PgxDebtRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.DebtRepositoryFacade = (*PgxDebtRepository)(nil)

const debtColumns = `debt_id, name, remaining, monthly, due_date, status, is_urgent, debt_type, total_installments, current_installment, category, created_at, last_updated_at`

func scanDebt(row pgx.Row) (*domain.Debt, error) {
	var d domain.Debt
	err := row.Scan(
		&d.DebtID,
		&d.Name,
		&d.Remaining,
		&d.Monthly,
		&d.DueDate,
		&d.Status,
		&d.IsUrgent,
		&d.DebtType,
		&d.TotalInstallments,
		&d.CurrentInstallment,
		&d.Category,
		&d.CreatedAt,
		&d.LastUpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan debt: %w", err)
	}
	return &d, nil
}

// FindDebtByID retrieves a debt by its ID.
func (r *PgxDebtRepository) FindDebtByID(ctx context.Context, debtID string) (*domain.Debt, error) {
	query := `SELECT ` + debtColumns + ` FROM debts WHERE debt_id = $1;`
	return scanDebt(r.Pool.QueryRow(ctx, query, debtID))
}

// ListDebts retrieves all debts, oldest first.
func (r *PgxDebtRepository) ListDebts(ctx context.Context) ([]domain.Debt, error) {
	query := `SELECT ` + debtColumns + ` FROM debts ORDER BY created_at;`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list debts: %w", err)
	}
	defer rows.Close()

	debts := make([]domain.Debt, 0)
	for rows.Next() {
		d, err := scanDebt(rows)
		if err != nil {
			return nil, err
		}
		debts = append(debts, *d)
	}
	return debts, rows.Err()
}

// SaveDebt inserts a new debt.
func (r *PgxDebtRepository) SaveDebt(ctx context.Context, debt domain.Debt) error {
	query := `
		INSERT INTO debts (` + debtColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err := r.Pool.Exec(ctx, query, debtArgs(debt)...)
	if err != nil {
		return fmt.Errorf("failed to save debt %s: %w", debt.DebtID, err)
	}
	return nil
}

// UpdateDebt rewrites an existing debt.
func (r *PgxDebtRepository) UpdateDebt(ctx context.Context, debt domain.Debt) error {
	tag, err := r.Pool.Exec(ctx, debtUpdateQuery, debtArgs(debt)...)
	if err != nil {
		return fmt.Errorf("failed to update debt %s: %w", debt.DebtID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// UpdateDebtInTx rewrites a debt within an existing database transaction.
func (r *PgxDebtRepository) UpdateDebtInTx(ctx context.Context, tx pgx.Tx, debt domain.Debt) error {
	tag, err := tx.Exec(ctx, debtUpdateQuery, debtArgs(debt)...)
	if err != nil {
		return fmt.Errorf("failed to update debt %s: %w", debt.DebtID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteDebt removes a debt.
func (r *PgxDebtRepository) DeleteDebt(ctx context.Context, debtID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM debts WHERE debt_id = $1;`, debtID)
	if err != nil {
		return fmt.Errorf("failed to delete debt %s: %w", debtID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

const debtUpdateQuery = `
	UPDATE debts
	SET name = $2, remaining = $3, monthly = $4, due_date = $5, status = $6, is_urgent = $7,
	    debt_type = $8, total_installments = $9, current_installment = $10, category = $11,
	    last_updated_at = $13
	WHERE debt_id = $1;
`

func debtArgs(d domain.Debt) []any {
	return []any{
		d.DebtID,
		d.Name,
		d.Remaining,
		d.Monthly,
		d.DueDate,
		d.Status,
		d.IsUrgent,
		d.DebtType,
		d.TotalInstallments,
		d.CurrentInstallment,
		d.Category,
		d.CreatedAt,
		d.LastUpdatedAt,
	}
}
