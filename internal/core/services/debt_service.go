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

type DebtService struct {
	BaseService
	debtRepo    portsrepo.DebtRepositoryFacade
	txnRepo     portsrepo.TransactionRepositoryFacade
	accountRepo portsrepo.AccountRepositoryFacade
}

func NewDebtService(debtRepo portsrepo.DebtRepositoryFacade, txnRepo portsrepo.TransactionRepositoryFacade, accountRepo portsrepo.AccountRepositoryFacade) portssvc.DebtSvcFacade {
	return &DebtService{debtRepo: debtRepo, txnRepo: txnRepo, accountRepo: accountRepo}
}

var _ portssvc.DebtSvcFacade = (*DebtService)(nil)

func (s *DebtService) CreateDebt(ctx context.Context, req dto.CreateDebtRequest) (*domain.Debt, error) {
	status, err := domain.ParseDebtStatus(req.Status)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}

	category := req.Category
	if category == "" {
		category = "Outros"
	}

	now := time.Now()
	debt := domain.Debt{
		DebtID:             uuid.NewString(),
		Name:               req.Name,
		Remaining:          req.Remaining,
		Monthly:            req.Monthly,
		DueDate:            req.DueDate,
		Status:             status,
		IsUrgent:           req.IsUrgent,
		DebtType:           domain.DebtType(req.DebtType),
		TotalInstallments:  req.TotalInstallments,
		CurrentInstallment: req.CurrentInstallment,
		Category:           category,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}

	if err := s.debtRepo.SaveDebt(ctx, debt); err != nil {
		s.LogError(ctx, err, "Failed to save debt", slog.String("debt_id", debt.DebtID))
		return nil, err
	}
	return &debt, nil
}

func (s *DebtService) ListDebts(ctx context.Context) ([]domain.Debt, error) {
	debts, err := s.debtRepo.ListDebts(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list debts")
		return nil, fmt.Errorf("failed to list debts: %w", err)
	}
	return debts, nil
}

func (s *DebtService) UpdateDebt(ctx context.Context, debtID string, req dto.UpdateDebtRequest) (*domain.Debt, error) {
	debt, err := s.debtRepo.FindDebtByID(ctx, debtID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		debt.Name = *req.Name
	}
	if req.Remaining != nil {
		debt.Remaining = *req.Remaining
	}
	if req.Monthly != nil {
		debt.Monthly = *req.Monthly
	}
	if req.DueDate != nil {
		debt.DueDate = *req.DueDate
	}
	if req.Status != nil {
		status, err := domain.ParseDebtStatus(*req.Status)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
		}
		debt.Status = status
	}
	if req.IsUrgent != nil {
		debt.IsUrgent = *req.IsUrgent
	}
	if req.DebtType != nil {
		debt.DebtType = domain.DebtType(*req.DebtType)
	}
	if req.TotalInstallments != nil {
		debt.TotalInstallments = *req.TotalInstallments
	}
	if req.CurrentInstallment != nil {
		debt.CurrentInstallment = *req.CurrentInstallment
	}
	if req.Category != nil {
		debt.Category = *req.Category
	}
	debt.LastUpdatedAt = time.Now()

	if err := s.debtRepo.UpdateDebt(ctx, *debt); err != nil {
		s.LogError(ctx, err, "Failed to update debt", slog.String("debt_id", debtID))
		return nil, err
	}
	return debt, nil
}

func (s *DebtService) DeleteDebt(ctx context.Context, debtID string) error {
	if err := s.debtRepo.DeleteDebt(ctx, debtID); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to delete debt", slog.String("debt_id", debtID))
		}
		return err
	}
	return nil
}

// PayDebt records a payment in one atomic unit: the expense transaction is
// created, the paying account's balance decremented, and the debt's
// remaining/installment/status advanced. Remaining never goes below zero and
// the current installment never passes the total.
func (s *DebtService) PayDebt(ctx context.Context, debtID string, req dto.PayDebtRequest) (*domain.Debt, error) {
	debt, err := s.debtRepo.FindDebtByID(ctx, debtID)
	if err != nil {
		return nil, err
	}

	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: payment amount must be positive", apperrors.ErrValidation)
	}

	now := time.Now()

	tx, err := s.debtRepo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = s.debtRepo.Rollback(ctx, tx) }()

	// Lock the account first; a payment from a missing account is an error,
	// unlike plain ledger entries.
	if _, err := s.accountRepo.FindAccountByIDForUpdate(ctx, tx, req.AccountID); err != nil {
		return nil, err
	}

	category := debt.Category
	if category == "" {
		category = "Dívidas"
	}
	payment := domain.Transaction{
		TransactionID: uuid.NewString(),
		AccountID:     &req.AccountID,
		Description:   "Pagamento: " + debt.Name,
		Amount:        req.Amount,
		Type:          domain.Expense,
		Date:          req.Date,
		Category:      category,
		Status:        domain.StatusCompleted,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}
	if err := s.txnRepo.SaveTransactionInTx(ctx, tx, payment); err != nil {
		s.LogError(ctx, err, "Failed to save debt payment transaction", slog.String("debt_id", debtID))
		return nil, err
	}

	if err := s.accountRepo.AdjustBalanceInTx(ctx, tx, req.AccountID, req.Amount.Neg(), now); err != nil {
		s.LogError(ctx, err, "Failed to debit account for debt payment", slog.String("account_id", req.AccountID))
		return nil, err
	}

	if debt.Remaining.IsPositive() {
		debt.Remaining = decimal.Max(decimal.Zero, debt.Remaining.Sub(req.Amount))
	}
	if debt.DebtType == domain.DebtInstallment && debt.CurrentInstallment > 0 && debt.TotalInstallments > 0 {
		if debt.CurrentInstallment < debt.TotalInstallments {
			debt.CurrentInstallment++
		}
	}
	if debt.Remaining.IsZero() && debt.DebtType != domain.DebtFixed {
		debt.Status = domain.DebtOnTrack
	}
	debt.LastUpdatedAt = now

	if err := s.debtRepo.UpdateDebtInTx(ctx, tx, *debt); err != nil {
		s.LogError(ctx, err, "Failed to update debt after payment", slog.String("debt_id", debtID))
		return nil, err
	}

	if err := s.debtRepo.Commit(ctx, tx); err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Debt payment recorded",
		slog.String("debt_id", debtID),
		slog.String("amount", req.Amount.String()),
		slog.String("new_remaining", debt.Remaining.String()))
	return debt, nil
}

// HealthSummary aggregates all debts by status. The next due date is the
// smallest non-empty due date across all debts, regardless of status.
func (s *DebtService) HealthSummary(ctx context.Context) (*domain.HealthSummary, error) {
	debts, err := s.debtRepo.ListDebts(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list debts for health summary")
		return nil, fmt.Errorf("failed to list debts: %w", err)
	}

	summary := &domain.HealthSummary{
		TotalDebt:       decimal.Zero,
		PendingPayments: decimal.Zero,
		StatusBreakdown: map[domain.DebtStatus]domain.DebtStatusBreakdown{
			domain.DebtOnTrack: {Total: decimal.Zero},
			domain.DebtPending: {Total: decimal.Zero},
			domain.DebtOverdue: {Total: decimal.Zero},
		},
		DebtCount: len(debts),
	}

	nextDue := ""
	for _, d := range debts {
		summary.TotalDebt = summary.TotalDebt.Add(d.Remaining)

		b := summary.StatusBreakdown[d.Status]
		b.Count++
		b.Total = b.Total.Add(d.Remaining)
		summary.StatusBreakdown[d.Status] = b

		if d.Status == domain.DebtPending {
			summary.PendingPayments = summary.PendingPayments.Add(d.Monthly)
		}
		if d.DueDate != "" && (nextDue == "" || d.DueDate < nextDue) {
			nextDue = d.DueDate
		}
	}
	summary.NextDueDate = nextDue

	return summary, nil
}
