package services_test

import (
	"context"
	"testing"

	"github.com/axxyfin/axxy_backend/internal/apperrors"
	"github.com/axxyfin/axxy_backend/internal/core/domain"
	portssvc "github.com/axxyfin/axxy_backend/internal/core/ports/services"
	"github.com/axxyfin/axxy_backend/internal/core/services"
	"github.com/axxyfin/axxy_backend/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type TransactionServiceTestSuite struct {
	suite.Suite
	mockTxnRepo *MockTransactionRepository
	mockAccRepo *MockAccountRepository
	service     portssvc.TransactionSvcFacade
}

func (suite *TransactionServiceTestSuite) SetupTest() {
	suite.mockTxnRepo = new(MockTransactionRepository)
	suite.mockAccRepo = new(MockAccountRepository)
	suite.service = services.NewTransactionService(suite.mockTxnRepo, suite.mockAccRepo)
}

func deltaEq(expected int64) any {
	return mock.MatchedBy(func(d decimal.Decimal) bool { return d.Equal(decimal.NewFromInt(expected)) })
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_ExpenseDebitsAccount() {
	ctx := context.Background()
	accountID := "acc-1"
	req := dto.CreateTransactionRequest{
		AccountID:   &accountID,
		Description: "Supermercado",
		Amount:      decimal.NewFromInt(250),
		Type:        "expense",
		Date:        "2026-08-05",
		Category:    "Mercado",
	}

	suite.mockTxnRepo.On("Begin", ctx).Return(nil, nil).Once()
	suite.mockTxnRepo.On("SaveTransactionInTx", ctx, mock.Anything, mock.MatchedBy(func(txn domain.Transaction) bool {
		return txn.Type == domain.Expense && txn.Status == domain.StatusCompleted
	})).Return(nil).Once()
	suite.mockAccRepo.On("AdjustBalanceInTx", ctx, mock.Anything, "acc-1", deltaEq(-250), mock.Anything).Return(nil).Once()
	suite.mockTxnRepo.On("Commit", ctx, mock.Anything).Return(nil).Once()
	suite.mockTxnRepo.On("Rollback", ctx, mock.Anything).Return(nil)

	txn, err := suite.service.CreateTransaction(ctx, req)

	suite.Require().NoError(err)
	suite.NotEmpty(txn.TransactionID)
	// Omitted status defaults to completed.
	suite.Equal(domain.StatusCompleted, txn.Status)
	suite.mockTxnRepo.AssertExpectations(suite.T())
	suite.mockAccRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_IncomeCreditsAccount() {
	ctx := context.Background()
	accountID := "acc-1"
	req := dto.CreateTransactionRequest{
		AccountID:   &accountID,
		Description: "Salário",
		Amount:      decimal.NewFromInt(3000),
		Type:        "income",
		Date:        "2026-08-01",
		Category:    "Salário",
		Status:      "pending",
	}

	suite.mockTxnRepo.On("Begin", ctx).Return(nil, nil).Once()
	suite.mockTxnRepo.On("SaveTransactionInTx", ctx, mock.Anything, mock.Anything).Return(nil).Once()
	suite.mockAccRepo.On("AdjustBalanceInTx", ctx, mock.Anything, "acc-1", deltaEq(3000), mock.Anything).Return(nil).Once()
	suite.mockTxnRepo.On("Commit", ctx, mock.Anything).Return(nil).Once()
	suite.mockTxnRepo.On("Rollback", ctx, mock.Anything).Return(nil)

	txn, err := suite.service.CreateTransaction(ctx, req)

	suite.Require().NoError(err)
	suite.Equal(domain.StatusPending, txn.Status)
	suite.mockAccRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_UnlinkedSkipsBalance() {
	ctx := context.Background()
	req := dto.CreateTransactionRequest{
		Description: "Pix avulso",
		Amount:      decimal.NewFromInt(50),
		Type:        "expense",
		Date:        "2026-08-05",
		Category:    "Outros",
	}

	suite.mockTxnRepo.On("Begin", ctx).Return(nil, nil).Once()
	suite.mockTxnRepo.On("SaveTransactionInTx", ctx, mock.Anything, mock.Anything).Return(nil).Once()
	suite.mockTxnRepo.On("Commit", ctx, mock.Anything).Return(nil).Once()
	suite.mockTxnRepo.On("Rollback", ctx, mock.Anything).Return(nil)

	_, err := suite.service.CreateTransaction(ctx, req)

	suite.Require().NoError(err)
	suite.mockAccRepo.AssertNotCalled(suite.T(), "AdjustBalanceInTx", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_InvalidType() {
	_, err := suite.service.CreateTransaction(context.Background(), dto.CreateTransactionRequest{
		Description: "x",
		Amount:      decimal.NewFromInt(10),
		Type:        "transfer",
		Date:        "2026-08-05",
		Category:    "Outros",
	})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "Begin", mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_MissingAccountTolerated() {
	ctx := context.Background()
	accountID := "gone"
	req := dto.CreateTransactionRequest{
		AccountID:   &accountID,
		Description: "Assinatura",
		Amount:      decimal.NewFromInt(30),
		Type:        "expense",
		Date:        "2026-08-05",
		Category:    "Lazer",
	}

	suite.mockTxnRepo.On("Begin", ctx).Return(nil, nil).Once()
	suite.mockTxnRepo.On("SaveTransactionInTx", ctx, mock.Anything, mock.Anything).Return(nil).Once()
	suite.mockAccRepo.On("AdjustBalanceInTx", ctx, mock.Anything, "gone", mock.Anything, mock.Anything).
		Return(apperrors.ErrNotFound).Once()
	suite.mockTxnRepo.On("Commit", ctx, mock.Anything).Return(nil).Once()
	suite.mockTxnRepo.On("Rollback", ctx, mock.Anything).Return(nil)

	_, err := suite.service.CreateTransaction(ctx, req)

	suite.Require().NoError(err)
}

func (suite *TransactionServiceTestSuite) TestUpdateTransaction_MovesBalanceBetweenAccounts() {
	ctx := context.Background()
	oldAccount := "acc-1"
	newAccount := "acc-2"
	existing := &domain.Transaction{
		TransactionID: "t1",
		AccountID:     &oldAccount,
		Description:   "Supermercado",
		Amount:        decimal.NewFromInt(100),
		Type:          domain.Expense,
		Date:          "2026-08-05",
		Category:      "Mercado",
		Status:        domain.StatusCompleted,
	}
	req := dto.UpdateTransactionRequest{
		AccountID:   &newAccount,
		Description: "Supermercado do mês",
		Amount:      decimal.NewFromInt(150),
		Type:        "expense",
		Date:        "2026-08-06",
		Category:    "Mercado",
	}

	suite.mockTxnRepo.On("FindTransactionByID", ctx, "t1").Return(existing, nil).Once()
	suite.mockTxnRepo.On("Begin", ctx).Return(nil, nil).Once()
	// Revert the old expense on the old account, apply the new one on the new.
	suite.mockAccRepo.On("AdjustBalanceInTx", ctx, mock.Anything, "acc-1", deltaEq(100), mock.Anything).Return(nil).Once()
	suite.mockTxnRepo.On("UpdateTransactionInTx", ctx, mock.Anything, mock.Anything).Return(nil).Once()
	suite.mockAccRepo.On("AdjustBalanceInTx", ctx, mock.Anything, "acc-2", deltaEq(-150), mock.Anything).Return(nil).Once()
	suite.mockTxnRepo.On("Commit", ctx, mock.Anything).Return(nil).Once()
	suite.mockTxnRepo.On("Rollback", ctx, mock.Anything).Return(nil)

	updated, err := suite.service.UpdateTransaction(ctx, "t1", req)

	suite.Require().NoError(err)
	suite.Equal("Supermercado do mês", updated.Description)
	suite.Equal("acc-2", *updated.AccountID)
	// Status is preserved when the request omits it.
	suite.Equal(domain.StatusCompleted, updated.Status)
	suite.mockAccRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestDeleteTransaction_RevertsBalance() {
	ctx := context.Background()
	accountID := "acc-1"
	existing := &domain.Transaction{
		TransactionID: "t1",
		AccountID:     &accountID,
		Amount:        decimal.NewFromInt(80),
		Type:          domain.Income,
	}

	suite.mockTxnRepo.On("FindTransactionByID", ctx, "t1").Return(existing, nil).Once()
	suite.mockTxnRepo.On("Begin", ctx).Return(nil, nil).Once()
	suite.mockTxnRepo.On("DeleteTransactionInTx", ctx, mock.Anything, "t1").Return(nil).Once()
	suite.mockAccRepo.On("AdjustBalanceInTx", ctx, mock.Anything, "acc-1", deltaEq(-80), mock.Anything).Return(nil).Once()
	suite.mockTxnRepo.On("Commit", ctx, mock.Anything).Return(nil).Once()
	suite.mockTxnRepo.On("Rollback", ctx, mock.Anything).Return(nil)

	err := suite.service.DeleteTransaction(ctx, "t1")

	suite.Require().NoError(err)
	suite.mockAccRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestDeleteTransaction_NotFound() {
	ctx := context.Background()
	suite.mockTxnRepo.On("FindTransactionByID", ctx, "missing").Return(nil, apperrors.ErrNotFound).Once()

	err := suite.service.DeleteTransaction(ctx, "missing")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "Begin", mock.Anything)
}

func TestTransactionService(t *testing.T) {
	suite.Run(t, new(TransactionServiceTestSuite))
}
