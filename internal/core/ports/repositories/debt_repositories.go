package repositories

import (
	"context"

	"github.com/axxyfin/axxy_backend/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// DebtReader defines read operations for debt data.
type DebtReader interface {
	FindDebtByID(ctx context.Context, debtID string) (*domain.Debt, error)
	ListDebts(ctx context.Context) ([]domain.Debt, error)
}

// DebtWriter defines write operations for debt data.
type DebtWriter interface {
	SaveDebt(ctx context.Context, debt domain.Debt) error
	UpdateDebt(ctx context.Context, debt domain.Debt) error
	DeleteDebt(ctx context.Context, debtID string) error

	// UpdateDebtInTx rewrites a debt within an existing database transaction:
	// used by PayDebt, which also touches transactions and account balances.
	UpdateDebtInTx(ctx context.Context, tx pgx.Tx, debt domain.Debt) error
}

// DebtRepositoryFacade combines all debt-related repository interfaces.
type DebtRepositoryFacade interface {
	DebtReader
	DebtWriter
	TransactionManager
}
