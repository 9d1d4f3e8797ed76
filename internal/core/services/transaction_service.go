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
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// TransactionService records ledger entries. Every mutation that touches a
// linked account adjusts its balance in the same database transaction.
type TransactionService struct {
	BaseService
	txnRepo     portsrepo.TransactionRepositoryFacade
	accountRepo portsrepo.AccountRepositoryFacade
}

func NewTransactionService(txnRepo portsrepo.TransactionRepositoryFacade, accountRepo portsrepo.AccountRepositoryFacade) portssvc.TransactionSvcFacade {
	return &TransactionService{txnRepo: txnRepo, accountRepo: accountRepo}
}

var _ portssvc.TransactionSvcFacade = (*TransactionService)(nil)

// balanceImpact is the signed effect a transaction has on its account.
func balanceImpact(t domain.Transaction) decimal.Decimal {
	if t.Type == domain.Income {
		return t.Amount
	}
	return t.Amount.Neg()
}

func (s *TransactionService) CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest) (*domain.Transaction, error) {
	txnType, err := domain.ParseTransactionType(req.Type)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}

	status := domain.TransactionStatus(req.Status)
	if status == "" {
		status = domain.StatusCompleted
	}

	now := time.Now()
	txn := domain.Transaction{
		TransactionID: uuid.NewString(),
		AccountID:     req.AccountID,
		Description:   req.Description,
		Amount:        req.Amount,
		Type:          txnType,
		Date:          req.Date,
		Category:      req.Category,
		Status:        status,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}

	tx, err := s.txnRepo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = s.txnRepo.Rollback(ctx, tx) }()

	if err := s.txnRepo.SaveTransactionInTx(ctx, tx, txn); err != nil {
		s.LogError(ctx, err, "Failed to save transaction", slog.String("transaction_id", txn.TransactionID))
		return nil, err
	}

	if txn.AccountID != nil {
		if err := s.applyBalance(ctx, tx, *txn.AccountID, balanceImpact(txn), now); err != nil {
			return nil, err
		}
	}

	if err := s.txnRepo.Commit(ctx, tx); err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Transaction created", slog.String("transaction_id", txn.TransactionID))
	return &txn, nil
}

func (s *TransactionService) ListTransactions(ctx context.Context) ([]domain.Transaction, error) {
	txns, err := s.txnRepo.ListTransactions(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list transactions")
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	return txns, nil
}

// UpdateTransaction replaces all mutable fields. The old balance impact is
// reverted and the new one applied, both inside one database transaction, so
// account balances never drift even when the account link itself changes.
func (s *TransactionService) UpdateTransaction(ctx context.Context, transactionID string, req dto.UpdateTransactionRequest) (*domain.Transaction, error) {
	existing, err := s.txnRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}

	txnType, err := domain.ParseTransactionType(req.Type)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}

	status := domain.TransactionStatus(req.Status)
	if status == "" {
		status = existing.Status
	}

	now := time.Now()
	updated := *existing
	updated.AccountID = req.AccountID
	updated.Description = req.Description
	updated.Amount = req.Amount
	updated.Type = txnType
	updated.Date = req.Date
	updated.Category = req.Category
	updated.Status = status
	updated.LastUpdatedAt = now

	tx, err := s.txnRepo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = s.txnRepo.Rollback(ctx, tx) }()

	if existing.AccountID != nil {
		if err := s.applyBalance(ctx, tx, *existing.AccountID, balanceImpact(*existing).Neg(), now); err != nil {
			return nil, err
		}
	}

	if err := s.txnRepo.UpdateTransactionInTx(ctx, tx, updated); err != nil {
		s.LogError(ctx, err, "Failed to update transaction", slog.String("transaction_id", transactionID))
		return nil, err
	}

	if updated.AccountID != nil {
		if err := s.applyBalance(ctx, tx, *updated.AccountID, balanceImpact(updated), now); err != nil {
			return nil, err
		}
	}

	if err := s.txnRepo.Commit(ctx, tx); err != nil {
		return nil, err
	}

	return &updated, nil
}

func (s *TransactionService) DeleteTransaction(ctx context.Context, transactionID string) error {
	existing, err := s.txnRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return err
	}

	tx, err := s.txnRepo.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = s.txnRepo.Rollback(ctx, tx) }()

	if err := s.txnRepo.DeleteTransactionInTx(ctx, tx, transactionID); err != nil {
		s.LogError(ctx, err, "Failed to delete transaction", slog.String("transaction_id", transactionID))
		return err
	}

	if existing.AccountID != nil {
		if err := s.applyBalance(ctx, tx, *existing.AccountID, balanceImpact(*existing).Neg(), time.Now()); err != nil {
			return err
		}
	}

	if err := s.txnRepo.Commit(ctx, tx); err != nil {
		return err
	}

	s.LogInfo(ctx, "Transaction deleted", slog.String("transaction_id", transactionID))
	return nil
}

// applyBalance adjusts one account's balance inside an open transaction.
// A missing account is tolerated: entries may reference accounts deleted
// since they were recorded.
func (s *TransactionService) applyBalance(ctx context.Context, tx pgx.Tx, accountID string, delta decimal.Decimal, now time.Time) error {
	err := s.accountRepo.AdjustBalanceInTx(ctx, tx, accountID, delta, now)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.LogDebug(ctx, "Skipping balance adjustment for missing account", slog.String("account_id", accountID))
			return nil
		}
		s.LogError(ctx, err, "Failed to adjust account balance", slog.String("account_id", accountID))
		return err
	}
	return nil
}
