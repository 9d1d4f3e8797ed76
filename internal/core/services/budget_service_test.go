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

type BudgetServiceTestSuite struct {
	suite.Suite
	mockBudgetRepo *MockBudgetRepository
	mockTxnRepo    *MockTransactionRepository
	service        portssvc.BudgetSvcFacade
}

func (suite *BudgetServiceTestSuite) SetupTest() {
	suite.mockBudgetRepo = new(MockBudgetRepository)
	suite.mockTxnRepo = new(MockTransactionRepository)
	suite.service = services.NewBudgetService(suite.mockBudgetRepo, suite.mockTxnRepo)
}

func (suite *BudgetServiceTestSuite) TestCreateBudget_DefaultsPriority() {
	ctx := context.Background()
	req := dto.CreateBudgetRequest{Category: "Mercado", Limit: decimal.NewFromInt(800)}

	suite.mockBudgetRepo.On("SaveBudget", ctx, mock.AnythingOfType("domain.Budget")).Return(nil).Once()

	budget, err := suite.service.CreateBudget(ctx, req)

	suite.Require().NoError(err)
	suite.NotEmpty(budget.BudgetID)
	suite.Equal(domain.PriorityMedium, budget.Priority)
	suite.True(budget.Spent.IsZero())
	suite.mockBudgetRepo.AssertExpectations(suite.T())
}

func (suite *BudgetServiceTestSuite) TestCreateBudget_InvalidPriority() {
	_, err := suite.service.CreateBudget(context.Background(), dto.CreateBudgetRequest{
		Category: "Mercado",
		Limit:    decimal.NewFromInt(800),
		Priority: "urgentissimo",
	})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockBudgetRepo.AssertNotCalled(suite.T(), "SaveBudget", mock.Anything, mock.Anything)
}

func (suite *BudgetServiceTestSuite) TestCreateBudget_DuplicateCategory() {
	ctx := context.Background()
	suite.mockBudgetRepo.On("SaveBudget", ctx, mock.Anything).Return(apperrors.ErrDuplicate).Once()

	_, err := suite.service.CreateBudget(ctx, dto.CreateBudgetRequest{
		Category: "Mercado",
		Limit:    decimal.NewFromInt(800),
	})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
}

func (suite *BudgetServiceTestSuite) TestListBudgets_OverlaysSpentFromLedger() {
	ctx := context.Background()
	budgets := []domain.Budget{
		{BudgetID: "b1", Category: "Mercado", Limit: decimal.NewFromInt(800), Spent: decimal.NewFromInt(999)},
		{BudgetID: "b2", Category: "Transporte", Limit: decimal.NewFromInt(300)},
	}
	spent := map[string]decimal.Decimal{"Mercado": decimal.NewFromInt(450)}

	suite.mockBudgetRepo.On("ListBudgets", ctx).Return(budgets, nil).Once()
	suite.mockTxnRepo.On("SumExpensesByCategory", ctx).Return(spent, nil).Once()

	result, err := suite.service.ListBudgets(ctx)

	suite.Require().NoError(err)
	suite.Require().Len(result, 2)
	// The stored value is ignored in favor of the ledger sum.
	suite.True(result[0].Spent.Equal(decimal.NewFromInt(450)))
	suite.True(result[1].Spent.IsZero())
}

func (suite *BudgetServiceTestSuite) TestGetBudgetByID_OverlaysSpent() {
	ctx := context.Background()
	budget := &domain.Budget{BudgetID: "b1", Category: "Mercado", Limit: decimal.NewFromInt(800)}

	suite.mockBudgetRepo.On("FindBudgetByID", ctx, "b1").Return(budget, nil).Once()
	suite.mockTxnRepo.On("SumExpensesByCategory", ctx).
		Return(map[string]decimal.Decimal{"Mercado": decimal.NewFromInt(120)}, nil).Once()

	result, err := suite.service.GetBudgetByID(ctx, "b1")

	suite.Require().NoError(err)
	suite.True(result.Spent.Equal(decimal.NewFromInt(120)))
}

func (suite *BudgetServiceTestSuite) TestGetBudgetByID_NotFound() {
	ctx := context.Background()
	suite.mockBudgetRepo.On("FindBudgetByID", ctx, "missing").Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.GetBudgetByID(ctx, "missing")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "SumExpensesByCategory", mock.Anything)
}

func (suite *BudgetServiceTestSuite) TestUpdateBudget_PartialFields() {
	ctx := context.Background()
	budget := &domain.Budget{
		BudgetID: "b1",
		Category: "Mercado",
		Limit:    decimal.NewFromInt(800),
		Priority: domain.PriorityMedium,
	}
	newLimit := decimal.NewFromInt(1000)
	newPriority := "essencial"

	suite.mockBudgetRepo.On("FindBudgetByID", ctx, "b1").Return(budget, nil).Once()
	suite.mockBudgetRepo.On("UpdateBudget", ctx, mock.AnythingOfType("domain.Budget")).Return(nil).Once()
	suite.mockTxnRepo.On("SumExpensesByCategory", ctx).Return(map[string]decimal.Decimal{}, nil).Once()

	result, err := suite.service.UpdateBudget(ctx, "b1", dto.UpdateBudgetRequest{
		Limit:    &newLimit,
		Priority: &newPriority,
	})

	suite.Require().NoError(err)
	suite.True(result.Limit.Equal(newLimit))
	suite.Equal(domain.PriorityEssential, result.Priority)
	suite.Equal("Mercado", result.Category)
}

func (suite *BudgetServiceTestSuite) TestCreateBudgetItem_RequiresExistingBudget() {
	ctx := context.Background()
	suite.mockBudgetRepo.On("FindBudgetByID", ctx, "missing").Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.CreateBudgetItem(ctx, "missing", dto.CreateBudgetItemRequest{
		Name:         "Feira da semana",
		TargetAmount: decimal.NewFromInt(150),
	})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockBudgetRepo.AssertNotCalled(suite.T(), "SaveBudgetItem", mock.Anything, mock.Anything)
}

func (suite *BudgetServiceTestSuite) TestCreateBudgetItem_Success() {
	ctx := context.Background()
	suite.mockBudgetRepo.On("FindBudgetByID", ctx, "b1").
		Return(&domain.Budget{BudgetID: "b1", Category: "Mercado"}, nil).Once()

	var saved domain.BudgetItem
	suite.mockBudgetRepo.On("SaveBudgetItem", ctx, mock.AnythingOfType("domain.BudgetItem")).
		Run(func(args mock.Arguments) { saved = args.Get(1).(domain.BudgetItem) }).
		Return(nil).Once()

	item, err := suite.service.CreateBudgetItem(ctx, "b1", dto.CreateBudgetItemRequest{
		Name:         "Feira da semana",
		TargetAmount: decimal.NewFromInt(150),
	})

	suite.Require().NoError(err)
	suite.Equal("b1", item.BudgetID)
	suite.NotEmpty(item.ItemID)
	suite.False(item.Completed)
	suite.Equal(saved.ItemID, item.ItemID)
}

func (suite *BudgetServiceTestSuite) TestUpdateBudgetItem_TogglesCompleted() {
	ctx := context.Background()
	item := &domain.BudgetItem{
		ItemID:       "i1",
		BudgetID:     "b1",
		Name:         "Feira da semana",
		TargetAmount: decimal.NewFromInt(150),
	}
	completed := true

	suite.mockBudgetRepo.On("FindBudgetItemByID", ctx, "b1", "i1").Return(item, nil).Once()
	suite.mockBudgetRepo.On("UpdateBudgetItem", ctx, mock.AnythingOfType("domain.BudgetItem")).Return(nil).Once()

	result, err := suite.service.UpdateBudgetItem(ctx, "b1", "i1", dto.UpdateBudgetItemRequest{
		Completed: &completed,
	})

	suite.Require().NoError(err)
	suite.True(result.Completed)
	suite.Equal("Feira da semana", result.Name)
}

func TestBudgetService(t *testing.T) {
	suite.Run(t, new(BudgetServiceTestSuite))
}
