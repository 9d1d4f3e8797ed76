package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/axxyfin/axxy_backend/internal/core/domain"
	portssvc "github.com/axxyfin/axxy_backend/internal/core/ports/services"
	"github.com/axxyfin/axxy_backend/internal/core/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type UnifierServiceTestSuite struct {
	suite.Suite
	mockTxnRepo  *MockTransactionRepository
	mockDebtRepo *MockDebtRepository
	service      portssvc.UnifierSvc
}

func (suite *UnifierServiceTestSuite) SetupTest() {
	suite.mockTxnRepo = new(MockTransactionRepository)
	suite.mockDebtRepo = new(MockDebtRepository)
	suite.service = services.NewUnifierService(suite.mockTxnRepo, suite.mockDebtRepo)
}

func (suite *UnifierServiceTestSuite) TestUnified_ProjectsUnpaidDebt() {
	ctx := context.Background()
	debt := domain.Debt{
		DebtID:   "d1",
		Name:     "Aluguel",
		Monthly:  decimal.NewFromInt(1200),
		DueDate:  "2026-08-10",
		Status:   domain.DebtPending,
		Category: "Moradia",
	}

	suite.mockTxnRepo.On("ListTransactionsInRange", ctx, "2026-08-01", "2026-08-31", "").
		Return([]domain.Transaction{}, nil).Once()
	suite.mockDebtRepo.On("ListDebts", ctx).Return([]domain.Debt{debt}, nil).Once()

	entries, err := suite.service.UnifiedTransactions(ctx, "2026-08-01", "2026-08-31", "all")

	suite.Require().NoError(err)
	suite.Require().Len(entries, 1)
	suite.True(entries[0].Projected)
	suite.Equal("d1", entries[0].DebtID)
	suite.Equal("[Previsto] Aluguel", entries[0].Description)
	suite.Equal("2026-08-10", entries[0].Date)
	suite.Equal("Moradia", entries[0].Category)
	suite.True(entries[0].Amount.Equal(decimal.NewFromInt(1200)))
	suite.Equal(domain.StatusPending, entries[0].Status)

	suite.mockTxnRepo.AssertExpectations(suite.T())
	suite.mockDebtRepo.AssertExpectations(suite.T())
}

func (suite *UnifierServiceTestSuite) TestUnified_SpecificAccountSkipsProjections() {
	ctx := context.Background()
	accountID := "acc-1"
	txn := domain.Transaction{
		TransactionID: "t1",
		AccountID:     &accountID,
		Description:   "Mercado",
		Amount:        decimal.NewFromInt(200),
		Type:          domain.Expense,
		Date:          "2026-08-05",
	}

	suite.mockTxnRepo.On("ListTransactionsInRange", ctx, "2026-08-01", "2026-08-31", "acc-1").
		Return([]domain.Transaction{txn}, nil).Once()

	entries, err := suite.service.UnifiedTransactions(ctx, "2026-08-01", "2026-08-31", "acc-1")

	suite.Require().NoError(err)
	suite.Require().Len(entries, 1)
	suite.False(entries[0].Projected)

	// Debts must never be consulted for a single-account view.
	suite.mockDebtRepo.AssertNotCalled(suite.T(), "ListDebts")
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *UnifierServiceTestSuite) TestUnified_OnTrackDebtNotProjected() {
	ctx := context.Background()
	debt := domain.Debt{
		DebtID:  "d1",
		Name:    "Internet",
		Monthly: decimal.NewFromInt(100),
		DueDate: "2026-08-15",
		Status:  domain.DebtOnTrack,
	}

	suite.mockTxnRepo.On("ListTransactionsInRange", ctx, "2026-08-01", "2026-08-31", "").
		Return([]domain.Transaction{}, nil).Once()
	suite.mockDebtRepo.On("ListDebts", ctx).Return([]domain.Debt{debt}, nil).Once()

	entries, err := suite.service.UnifiedTransactions(ctx, "2026-08-01", "2026-08-31", "all")

	suite.Require().NoError(err)
	suite.Empty(entries)
}

func (suite *UnifierServiceTestSuite) TestUnified_DebtOutsideWindowNotProjected() {
	ctx := context.Background()
	debt := domain.Debt{
		DebtID:  "d1",
		Name:    "Seguro",
		Monthly: decimal.NewFromInt(300),
		DueDate: "2026-09-10",
		Status:  domain.DebtPending,
	}

	suite.mockTxnRepo.On("ListTransactionsInRange", ctx, "2026-08-01", "2026-08-31", "").
		Return([]domain.Transaction{}, nil).Once()
	suite.mockDebtRepo.On("ListDebts", ctx).Return([]domain.Debt{debt}, nil).Once()

	entries, err := suite.service.UnifiedTransactions(ctx, "2026-08-01", "2026-08-31", "all")

	suite.Require().NoError(err)
	suite.Empty(entries)
}

func (suite *UnifierServiceTestSuite) TestUnified_DedupByNameInDescription() {
	ctx := context.Background()
	debt := domain.Debt{
		DebtID:   "d1",
		Name:     "Cartão Nubank",
		Monthly:  decimal.NewFromInt(450),
		DueDate:  "2026-08-12",
		Status:   domain.DebtPending,
		Category: "Cartões",
	}
	payment := domain.Transaction{
		TransactionID: "t1",
		Description:   "Pagamento: Cartão Nubank",
		Amount:        decimal.NewFromInt(450),
		Type:          domain.Expense,
		Date:          "2026-08-11",
		Category:      "Outros",
	}

	suite.mockTxnRepo.On("ListTransactionsInRange", ctx, "2026-08-01", "2026-08-31", "").
		Return([]domain.Transaction{payment}, nil).Once()
	suite.mockDebtRepo.On("ListDebts", ctx).Return([]domain.Debt{debt}, nil).Once()

	entries, err := suite.service.UnifiedTransactions(ctx, "2026-08-01", "2026-08-31", "all")

	suite.Require().NoError(err)
	suite.Require().Len(entries, 1)
	suite.False(entries[0].Projected)
}

func (suite *UnifierServiceTestSuite) TestUnified_DedupByCategoryMatch() {
	ctx := context.Background()
	debt := domain.Debt{
		DebtID:   "d1",
		Name:     "Financiamento do carro",
		Monthly:  decimal.NewFromFloat(899.90),
		DueDate:  "2026-08-20",
		Status:   domain.DebtPending,
		Category: "Transporte",
	}
	// Description does not mention the debt; the category and amount do.
	payment := domain.Transaction{
		TransactionID: "t1",
		Description:   "Parcela mensal",
		Amount:        decimal.NewFromFloat(899.90),
		Type:          domain.Expense,
		Date:          "2026-08-19",
		Category:      "Transporte",
	}

	suite.mockTxnRepo.On("ListTransactionsInRange", ctx, "2026-08-01", "2026-08-31", "").
		Return([]domain.Transaction{payment}, nil).Once()
	suite.mockDebtRepo.On("ListDebts", ctx).Return([]domain.Debt{debt}, nil).Once()

	entries, err := suite.service.UnifiedTransactions(ctx, "2026-08-01", "2026-08-31", "all")

	suite.Require().NoError(err)
	suite.Require().Len(entries, 1)
	suite.False(entries[0].Projected)
}

func (suite *UnifierServiceTestSuite) TestUnified_DifferentAmountStillProjected() {
	ctx := context.Background()
	debt := domain.Debt{
		DebtID:   "d1",
		Name:     "Empréstimo",
		Monthly:  decimal.NewFromInt(500),
		DueDate:  "2026-08-25",
		Status:   domain.DebtPending,
		Category: "Empréstimos",
	}
	// Same category but an unrelated amount: not the debt payment.
	payment := domain.Transaction{
		TransactionID: "t1",
		Description:   "Empréstimo extra",
		Amount:        decimal.NewFromInt(120),
		Type:          domain.Expense,
		Date:          "2026-08-10",
		Category:      "Empréstimos",
	}

	suite.mockTxnRepo.On("ListTransactionsInRange", ctx, "2026-08-01", "2026-08-31", "").
		Return([]domain.Transaction{payment}, nil).Once()
	suite.mockDebtRepo.On("ListDebts", ctx).Return([]domain.Debt{debt}, nil).Once()

	entries, err := suite.service.UnifiedTransactions(ctx, "2026-08-01", "2026-08-31", "all")

	suite.Require().NoError(err)
	suite.Len(entries, 2)
}

func (suite *UnifierServiceTestSuite) TestUnified_RemainingUsedWhenMonthlyZero() {
	ctx := context.Background()
	debt := domain.Debt{
		DebtID:    "d1",
		Name:      "Acordo",
		Remaining: decimal.NewFromInt(750),
		DueDate:   "2026-08-18",
		Status:    domain.DebtOverdue,
	}

	suite.mockTxnRepo.On("ListTransactionsInRange", ctx, "2026-08-01", "2026-08-31", "").
		Return([]domain.Transaction{}, nil).Once()
	suite.mockDebtRepo.On("ListDebts", ctx).Return([]domain.Debt{debt}, nil).Once()

	entries, err := suite.service.UnifiedTransactions(ctx, "2026-08-01", "2026-08-31", "all")

	suite.Require().NoError(err)
	suite.Require().Len(entries, 1)
	suite.True(entries[0].Amount.Equal(decimal.NewFromInt(750)))
	// A debt without a category projects as Dívidas.
	suite.Equal("Dívidas", entries[0].Category)
}

func (suite *UnifierServiceTestSuite) TestUnified_BareDayDueDateResolvesToCurrentMonth() {
	ctx := context.Background()
	now := time.Now()
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).Format("2006-01-02")
	end := time.Date(now.Year(), now.Month()+1, 0, 0, 0, 0, 0, now.Location()).Format("2006-01-02")
	expectedDate := time.Date(now.Year(), now.Month(), 15, 0, 0, 0, 0, now.Location()).Format("2006-01-02")

	debt := domain.Debt{
		DebtID:  "d1",
		Name:    "Luz",
		Monthly: decimal.NewFromInt(180),
		DueDate: "15",
		Status:  domain.DebtPending,
	}

	suite.mockTxnRepo.On("ListTransactionsInRange", ctx, start, end, "").
		Return([]domain.Transaction{}, nil).Once()
	suite.mockDebtRepo.On("ListDebts", ctx).Return([]domain.Debt{debt}, nil).Once()

	entries, err := suite.service.UnifiedTransactions(ctx, start, end, "all")

	suite.Require().NoError(err)
	suite.Require().Len(entries, 1)
	suite.Equal(expectedDate, entries[0].Date)
}

func (suite *UnifierServiceTestSuite) TestUnified_EmptyDueDateSkipped() {
	ctx := context.Background()
	debt := domain.Debt{
		DebtID:  "d1",
		Name:    "Sem data",
		Monthly: decimal.NewFromInt(50),
		Status:  domain.DebtPending,
	}

	suite.mockTxnRepo.On("ListTransactionsInRange", ctx, "2026-08-01", "2026-08-31", "").
		Return([]domain.Transaction{}, nil).Once()
	suite.mockDebtRepo.On("ListDebts", ctx).Return([]domain.Debt{debt}, nil).Once()

	entries, err := suite.service.UnifiedTransactions(ctx, "2026-08-01", "2026-08-31", "all")

	suite.Require().NoError(err)
	suite.Empty(entries)
}

func TestUnifierService(t *testing.T) {
	suite.Run(t, new(UnifierServiceTestSuite))
}
