package services

import (
	portsrepo "github.com/axxyfin/axxy_backend/internal/core/ports/repositories"
	portssvc "github.com/axxyfin/axxy_backend/internal/core/ports/services"
)

// NewServiceContainer wires all application services over the repository
// provider and the advisory gateway.
func NewServiceContainer(repos *portsrepo.RepositoryProvider, advisory portssvc.AdvisorySvc) *portssvc.ServiceContainer {
	unifier := NewUnifierService(repos.TransactionRepo, repos.DebtRepo)

	return &portssvc.ServiceContainer{
		Account:     NewAccountService(repos.AccountRepo),
		Transaction: NewTransactionService(repos.TransactionRepo, repos.AccountRepo),
		Category:    NewCategoryService(repos.CategoryRepo),
		Budget:      NewBudgetService(repos.BudgetRepo, repos.TransactionRepo),
		Goal:        NewGoalService(repos.GoalRepo),
		Debt:        NewDebtService(repos.DebtRepo, repos.TransactionRepo, repos.AccountRepo),
		NetWorth:    NewNetWorthService(repos.AssetRepo),
		Unifier:     unifier,
		Reporting:   NewReportingService(unifier, repos.TransactionRepo),
		Allocation: NewAllocationService(
			repos.BudgetRepo,
			repos.TransactionRepo,
			repos.DebtRepo,
			repos.GoalRepo,
			repos.AccountRepo,
			repos.AllocationRepo,
			advisory,
		),
	}
}
