package pgsql

import (
	portsrepo "github.com/axxyfin/axxy_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires all pgsql-backed repositories over one shared
// connection pool.
func NewRepositoryProvider(pool *pgxpool.Pool) *portsrepo.RepositoryProvider {
	return &portsrepo.RepositoryProvider{
		AccountRepo:     newPgxAccountRepository(pool),
		TransactionRepo: newPgxTransactionRepository(pool),
		CategoryRepo:    newPgxCategoryRepository(pool),
		BudgetRepo:      newPgxBudgetRepository(pool),
		GoalRepo:        newPgxGoalRepository(pool),
		DebtRepo:        newPgxDebtRepository(pool),
		AssetRepo:       newPgxAssetRepository(pool),
		AllocationRepo:  newPgxAllocationRepository(pool),
	}
}
