package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/axxyfin/axxy_backend/internal/apperrors"
	"github.com/axxyfin/axxy_backend/internal/core/domain"
	portsrepo "github.com/axxyfin/axxy_backend/internal/core/ports/repositories"
	portssvc "github.com/axxyfin/axxy_backend/internal/core/ports/services"
	"github.com/axxyfin/axxy_backend/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BudgetService manages budgets and their sub-items. Spent is never the
// stored column: every read overlays the sum of expense transactions whose
// category matches the budget's.
type BudgetService struct {
	BaseService
	budgetRepo portsrepo.BudgetRepositoryFacade
	txnRepo    portsrepo.TransactionRepositoryFacade
}

func NewBudgetService(budgetRepo portsrepo.BudgetRepositoryFacade, txnRepo portsrepo.TransactionRepositoryFacade) portssvc.BudgetSvcFacade {
	return &BudgetService{budgetRepo: budgetRepo, txnRepo: txnRepo}
}

var _ portssvc.BudgetSvcFacade = (*BudgetService)(nil)

func (s *BudgetService) CreateBudget(ctx context.Context, req dto.CreateBudgetRequest) (*domain.Budget, error) {
	priority := domain.PriorityMedium
	if req.Priority != "" {
		p, err := domain.ParseBudgetPriority(req.Priority)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
		}
		priority = p
	}

	now := time.Now()
	budget := domain.Budget{
		BudgetID: uuid.NewString(),
		Category: req.Category,
		Limit:    req.Limit,
		Spent:    decimal.Zero,
		Priority: priority,
		Icon:     req.Icon,
		Goal:     req.Goal,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}

	if err := s.budgetRepo.SaveBudget(ctx, budget); err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) {
			s.LogError(ctx, err, "Failed to save budget", slog.String("budget_id", budget.BudgetID))
		}
		return nil, err
	}
	return &budget, nil
}

func (s *BudgetService) GetBudgetByID(ctx context.Context, budgetID string) (*domain.Budget, error) {
	budget, err := s.budgetRepo.FindBudgetByID(ctx, budgetID)
	if err != nil {
		return nil, err
	}

	spentByCategory, err := s.txnRepo.SumExpensesByCategory(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to sum expenses by category")
		return nil, fmt.Errorf("failed to compute budget spent: %w", err)
	}
	budget.Spent = spentByCategory[budget.Category]

	return budget, nil
}

func (s *BudgetService) ListBudgets(ctx context.Context) ([]domain.Budget, error) {
	budgets, err := s.budgetRepo.ListBudgets(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list budgets")
		return nil, fmt.Errorf("failed to list budgets: %w", err)
	}

	spentByCategory, err := s.txnRepo.SumExpensesByCategory(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to sum expenses by category")
		return nil, fmt.Errorf("failed to compute budget spent: %w", err)
	}
	for i := range budgets {
		budgets[i].Spent = spentByCategory[budgets[i].Category]
	}

	return budgets, nil
}

func (s *BudgetService) UpdateBudget(ctx context.Context, budgetID string, req dto.UpdateBudgetRequest) (*domain.Budget, error) {
	budget, err := s.budgetRepo.FindBudgetByID(ctx, budgetID)
	if err != nil {
		return nil, err
	}

	if req.Category != nil {
		budget.Category = *req.Category
	}
	if req.Limit != nil {
		budget.Limit = *req.Limit
	}
	if req.Priority != nil {
		p, err := domain.ParseBudgetPriority(*req.Priority)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
		}
		budget.Priority = p
	}
	if req.Icon != nil {
		budget.Icon = *req.Icon
	}
	if req.Goal != nil {
		budget.Goal = *req.Goal
	}
	budget.LastUpdatedAt = time.Now()

	if err := s.budgetRepo.UpdateBudget(ctx, *budget); err != nil {
		s.LogError(ctx, err, "Failed to update budget", slog.String("budget_id", budgetID))
		return nil, err
	}

	spentByCategory, err := s.txnRepo.SumExpensesByCategory(ctx)
	if err == nil {
		budget.Spent = spentByCategory[budget.Category]
	}
	return budget, nil
}

func (s *BudgetService) DeleteBudget(ctx context.Context, budgetID string) error {
	if err := s.budgetRepo.DeleteBudget(ctx, budgetID); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to delete budget", slog.String("budget_id", budgetID))
		}
		return err
	}
	return nil
}

func (s *BudgetService) CreateBudgetItem(ctx context.Context, budgetID string, req dto.CreateBudgetItemRequest) (*domain.BudgetItem, error) {
	// Reject items for budgets that do not exist before hitting the FK.
	if _, err := s.budgetRepo.FindBudgetByID(ctx, budgetID); err != nil {
		return nil, err
	}

	now := time.Now()
	item := domain.BudgetItem{
		ItemID:       uuid.NewString(),
		BudgetID:     budgetID,
		Name:         req.Name,
		TargetAmount: req.TargetAmount,
		Spent:        decimal.Zero,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}

	if err := s.budgetRepo.SaveBudgetItem(ctx, item); err != nil {
		s.LogError(ctx, err, "Failed to save budget item", slog.String("item_id", item.ItemID))
		return nil, err
	}
	return &item, nil
}

func (s *BudgetService) ListBudgetItems(ctx context.Context, budgetID string) ([]domain.BudgetItem, error) {
	items, err := s.budgetRepo.ListBudgetItems(ctx, budgetID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list budget items", slog.String("budget_id", budgetID))
		return nil, fmt.Errorf("failed to list budget items: %w", err)
	}
	return items, nil
}

func (s *BudgetService) UpdateBudgetItem(ctx context.Context, budgetID, itemID string, req dto.UpdateBudgetItemRequest) (*domain.BudgetItem, error) {
	item, err := s.budgetRepo.FindBudgetItemByID(ctx, budgetID, itemID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		item.Name = *req.Name
	}
	if req.TargetAmount != nil {
		item.TargetAmount = *req.TargetAmount
	}
	if req.Spent != nil {
		item.Spent = *req.Spent
	}
	if req.Completed != nil {
		item.Completed = *req.Completed
	}
	item.LastUpdatedAt = time.Now()

	if err := s.budgetRepo.UpdateBudgetItem(ctx, *item); err != nil {
		s.LogError(ctx, err, "Failed to update budget item", slog.String("item_id", itemID))
		return nil, err
	}
	return item, nil
}

func (s *BudgetService) DeleteBudgetItem(ctx context.Context, budgetID, itemID string) error {
	if err := s.budgetRepo.DeleteBudgetItem(ctx, budgetID, itemID); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to delete budget item", slog.String("item_id", itemID))
		}
		return err
	}
	return nil
}
