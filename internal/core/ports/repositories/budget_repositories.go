package repositories

import (
	"context"

	"github.com/axxyfin/axxy_backend/internal/core/domain"
)

// BudgetReader defines read operations for budget data. Spent on returned
// budgets is the stored value; services overlay the recomputed one.
type BudgetReader interface {
	FindBudgetByID(ctx context.Context, budgetID string) (*domain.Budget, error)
	ListBudgets(ctx context.Context) ([]domain.Budget, error)
	ListBudgetItems(ctx context.Context, budgetID string) ([]domain.BudgetItem, error)
	FindBudgetItemByID(ctx context.Context, budgetID, itemID string) (*domain.BudgetItem, error)
}

// BudgetWriter defines write operations for budget data.
type BudgetWriter interface {
	SaveBudget(ctx context.Context, budget domain.Budget) error
	UpdateBudget(ctx context.Context, budget domain.Budget) error
	DeleteBudget(ctx context.Context, budgetID string) error
	SaveBudgetItem(ctx context.Context, item domain.BudgetItem) error
	UpdateBudgetItem(ctx context.Context, item domain.BudgetItem) error
	DeleteBudgetItem(ctx context.Context, budgetID, itemID string) error
}

// BudgetRepositoryFacade combines all budget-related repository interfaces.
type BudgetRepositoryFacade interface {
	BudgetReader
	BudgetWriter
}
