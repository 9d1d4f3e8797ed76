package repositories

import (
	"context"

	"github.com/axxyfin/axxy_backend/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// GoalReader defines read operations for goal data.
type GoalReader interface {
	FindGoalByID(ctx context.Context, goalID string) (*domain.Goal, error)
	ListGoals(ctx context.Context) ([]domain.Goal, error)
}

// GoalWriter defines write operations for goal data.
type GoalWriter interface {
	SaveGoal(ctx context.Context, goal domain.Goal) error
	UpdateGoal(ctx context.Context, goal domain.Goal) error
	DeleteGoal(ctx context.Context, goalID string) error

	// AddToGoalInTx increments a goal's current amount within an existing
	// database transaction. Used by allocation apply.
	AddToGoalInTx(ctx context.Context, tx pgx.Tx, goalID string, amount decimal.Decimal) error
}

// GoalRepositoryFacade combines all goal-related repository interfaces.
type GoalRepositoryFacade interface {
	GoalReader
	GoalWriter
}
