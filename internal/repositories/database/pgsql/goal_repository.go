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
	"github.com/shopspring/decimal"
)

type PgxGoalRepository struct {
	BaseRepository
}

// newPgxGoalRepository creates a new repository for goal data.
func newPgxGoalRepository(pool *pgxpool.Pool) portsrepo.GoalRepositoryFacade {
	return &PgxGoalRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.GoalRepositoryFacade = (*PgxGoalRepository)(nil)

const goalColumns = `goal_id, name, current_amount, target_amount, deadline, color, image_url, created_at, last_updated_at`

func scanGoal(row pgx.Row) (*domain.Goal, error) {
	var g domain.Goal
	err := row.Scan(
		&g.GoalID,
		&g.Name,
		&g.CurrentAmount,
		&g.TargetAmount,
		&g.Deadline,
		&g.Color,
		&g.ImageURL,
		&g.CreatedAt,
		&g.LastUpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan goal: %w", err)
	}
	return &g, nil
}

// FindGoalByID retrieves a goal by its ID.
func (r *PgxGoalRepository) FindGoalByID(ctx context.Context, goalID string) (*domain.Goal, error) {
	query := `SELECT ` + goalColumns + ` FROM goals WHERE goal_id = $1;`
	return scanGoal(r.Pool.QueryRow(ctx, query, goalID))
}

// ListGoals retrieves all goals, oldest first.
func (r *PgxGoalRepository) ListGoals(ctx context.Context) ([]domain.Goal, error) {
	query := `SELECT ` + goalColumns + ` FROM goals ORDER BY created_at;`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list goals: %w", err)
	}
	defer rows.Close()

	goals := make([]domain.Goal, 0)
	for rows.Next() {
		g, err := scanGoal(rows)
		if err != nil {
			return nil, err
		}
		goals = append(goals, *g)
	}
	return goals, rows.Err()
}

// SaveGoal inserts a new goal.
func (r *PgxGoalRepository) SaveGoal(ctx context.Context, goal domain.Goal) error {
	query := `
		INSERT INTO goals (` + goalColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.Pool.Exec(ctx, query,
		goal.GoalID, goal.Name, goal.CurrentAmount, goal.TargetAmount,
		goal.Deadline, goal.Color, goal.ImageURL, goal.CreatedAt, goal.LastUpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save goal %s: %w", goal.GoalID, err)
	}
	return nil
}

// UpdateGoal rewrites an existing goal.
func (r *PgxGoalRepository) UpdateGoal(ctx context.Context, goal domain.Goal) error {
	query := `
		UPDATE goals
		SET name = $2, current_amount = $3, target_amount = $4, deadline = $5, color = $6, image_url = $7, last_updated_at = $8
		WHERE goal_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		goal.GoalID, goal.Name, goal.CurrentAmount, goal.TargetAmount,
		goal.Deadline, goal.Color, goal.ImageURL, goal.LastUpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update goal %s: %w", goal.GoalID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteGoal removes a goal.
func (r *PgxGoalRepository) DeleteGoal(ctx context.Context, goalID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM goals WHERE goal_id = $1;`, goalID)
	if err != nil {
		return fmt.Errorf("failed to delete goal %s: %w", goalID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// AddToGoalInTx increments a goal's current amount within an existing
// database transaction.
func (r *PgxGoalRepository) AddToGoalInTx(ctx context.Context, tx pgx.Tx, goalID string, amount decimal.Decimal) error {
	query := `
		UPDATE goals
		SET current_amount = current_amount + $2, last_updated_at = $3
		WHERE goal_id = $1;
	`
	tag, err := tx.Exec(ctx, query, goalID, amount, time.Now())
	if err != nil {
		return fmt.Errorf("failed to add to goal %s: %w", goalID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
