package services

import (
	"context"

	"github.com/axxyfin/axxy_backend/internal/core/domain"
	"github.com/axxyfin/axxy_backend/internal/dto"
)

// AccountSvcFacade defines operations on money accounts.
type AccountSvcFacade interface {
	CreateAccount(ctx context.Context, req dto.CreateAccountRequest) (*domain.Account, error)
	GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error)
	ListAccounts(ctx context.Context) ([]domain.Account, error)
	UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest) (*domain.Account, error)
	DeleteAccount(ctx context.Context, accountID string) error
}

// TransactionSvcFacade defines operations on persisted transactions.
// Every mutation keeps the linked account balance in step.
type TransactionSvcFacade interface {
	CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest) (*domain.Transaction, error)
	ListTransactions(ctx context.Context) ([]domain.Transaction, error)
	UpdateTransaction(ctx context.Context, transactionID string, req dto.UpdateTransactionRequest) (*domain.Transaction, error)
	DeleteTransaction(ctx context.Context, transactionID string) error
}

// CategorySvcFacade defines operations on transaction categories.
type CategorySvcFacade interface {
	CreateCategory(ctx context.Context, req dto.CreateCategoryRequest) (*domain.Category, error)
	ListCategories(ctx context.Context) ([]domain.Category, error)
	UpdateCategory(ctx context.Context, categoryID string, req dto.UpdateCategoryRequest) (*domain.Category, error)
	DeleteCategory(ctx context.Context, categoryID string) error
}

// GoalSvcFacade defines operations on savings goals.
type GoalSvcFacade interface {
	CreateGoal(ctx context.Context, req dto.CreateGoalRequest) (*domain.Goal, error)
	ListGoals(ctx context.Context) ([]domain.Goal, error)
	UpdateGoal(ctx context.Context, goalID string, req dto.UpdateGoalRequest) (*domain.Goal, error)
	DeleteGoal(ctx context.Context, goalID string) error
}

// DebtSvcFacade defines operations on debts, including payments.
type DebtSvcFacade interface {
	CreateDebt(ctx context.Context, req dto.CreateDebtRequest) (*domain.Debt, error)
	ListDebts(ctx context.Context) ([]domain.Debt, error)
	UpdateDebt(ctx context.Context, debtID string, req dto.UpdateDebtRequest) (*domain.Debt, error)
	DeleteDebt(ctx context.Context, debtID string) error

	// PayDebt atomically records the payment transaction, adjusts the paying
	// account's balance and the debt's remaining/installment/status.
	PayDebt(ctx context.Context, debtID string, req dto.PayDebtRequest) (*domain.Debt, error)

	// HealthSummary aggregates debts by status for the financial-health view.
	HealthSummary(ctx context.Context) (*domain.HealthSummary, error)
}

// BudgetSvcFacade defines operations on budgets and their sub-items.
// Spent on every returned budget is recomputed from expense transactions.
type BudgetSvcFacade interface {
	CreateBudget(ctx context.Context, req dto.CreateBudgetRequest) (*domain.Budget, error)
	GetBudgetByID(ctx context.Context, budgetID string) (*domain.Budget, error)
	ListBudgets(ctx context.Context) ([]domain.Budget, error)
	UpdateBudget(ctx context.Context, budgetID string, req dto.UpdateBudgetRequest) (*domain.Budget, error)
	DeleteBudget(ctx context.Context, budgetID string) error

	CreateBudgetItem(ctx context.Context, budgetID string, req dto.CreateBudgetItemRequest) (*domain.BudgetItem, error)
	ListBudgetItems(ctx context.Context, budgetID string) ([]domain.BudgetItem, error)
	UpdateBudgetItem(ctx context.Context, budgetID, itemID string, req dto.UpdateBudgetItemRequest) (*domain.BudgetItem, error)
	DeleteBudgetItem(ctx context.Context, budgetID, itemID string) error
}

// NetWorthSvcFacade defines operations on assets, liabilities and the
// consolidated net-worth view.
type NetWorthSvcFacade interface {
	CreateAsset(ctx context.Context, req dto.CreateAssetRequest) (*domain.Asset, error)
	UpdateAsset(ctx context.Context, assetID string, req dto.UpdateAssetRequest) (*domain.Asset, error)
	DeleteAsset(ctx context.Context, assetID string) error

	CreateLiability(ctx context.Context, req dto.CreateLiabilityRequest) (*domain.Liability, error)
	UpdateLiability(ctx context.Context, liabilityID string, req dto.UpdateLiabilityRequest) (*domain.Liability, error)
	DeleteLiability(ctx context.Context, liabilityID string) error

	NetWorth(ctx context.Context) (*domain.NetWorthSummary, error)
}
