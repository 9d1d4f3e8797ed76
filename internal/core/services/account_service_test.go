package services_test

import (
	"context"
	"errors"
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

type AccountServiceTestSuite struct {
	suite.Suite
	mockRepo *MockAccountRepository
	service  portssvc.AccountSvcFacade
}

func (suite *AccountServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockAccountRepository)
	suite.service = services.NewAccountService(suite.mockRepo)
}

func (suite *AccountServiceTestSuite) TestCreateAccount() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{
		Name:    "Conta Corrente",
		Type:    "checking",
		Balance: decimal.NewFromInt(1500),
		Color:   "#3b82f6",
	}

	var saved domain.Account
	suite.mockRepo.On("SaveAccount", ctx, mock.AnythingOfType("domain.Account")).
		Run(func(args mock.Arguments) { saved = args.Get(1).(domain.Account) }).
		Return(nil).Once()

	account, err := suite.service.CreateAccount(ctx, req)

	suite.Require().NoError(err)
	suite.NotEmpty(account.AccountID)
	suite.Equal("Conta Corrente", account.Name)
	suite.True(account.Balance.Equal(decimal.NewFromInt(1500)))
	suite.Equal(saved.AccountID, account.AccountID)
	suite.False(account.CreatedAt.IsZero())
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestCreateAccount_RepositoryError() {
	ctx := context.Background()
	repoErr := errors.New("connection refused")
	suite.mockRepo.On("SaveAccount", ctx, mock.Anything).Return(repoErr).Once()

	_, err := suite.service.CreateAccount(ctx, dto.CreateAccountRequest{Name: "Poupança", Type: "savings"})

	suite.Require().Error(err)
	suite.ErrorIs(err, repoErr)
}

func (suite *AccountServiceTestSuite) TestGetAccountByID() {
	ctx := context.Background()
	account := &domain.Account{AccountID: "acc-1", Name: "Conta Corrente"}
	suite.mockRepo.On("FindAccountByID", ctx, "acc-1").Return(account, nil).Once()

	result, err := suite.service.GetAccountByID(ctx, "acc-1")

	suite.Require().NoError(err)
	suite.Equal("acc-1", result.AccountID)
}

func (suite *AccountServiceTestSuite) TestGetAccountByID_NotFound() {
	ctx := context.Background()
	suite.mockRepo.On("FindAccountByID", ctx, "missing").Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.GetAccountByID(ctx, "missing")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *AccountServiceTestSuite) TestListAccounts() {
	ctx := context.Background()
	accounts := []domain.Account{
		{AccountID: "acc-1", Name: "Conta Corrente"},
		{AccountID: "acc-2", Name: "Poupança"},
	}
	suite.mockRepo.On("ListAccounts", ctx).Return(accounts, nil).Once()

	result, err := suite.service.ListAccounts(ctx)

	suite.Require().NoError(err)
	suite.Len(result, 2)
}

func (suite *AccountServiceTestSuite) TestUpdateAccount_PartialFields() {
	ctx := context.Background()
	account := &domain.Account{
		AccountID: "acc-1",
		Name:      "Conta Corrente",
		Type:      "checking",
		Balance:   decimal.NewFromInt(1500),
	}
	newName := "Conta Principal"

	suite.mockRepo.On("FindAccountByID", ctx, "acc-1").Return(account, nil).Once()
	suite.mockRepo.On("UpdateAccount", ctx, mock.AnythingOfType("domain.Account")).Return(nil).Once()

	result, err := suite.service.UpdateAccount(ctx, "acc-1", dto.UpdateAccountRequest{Name: &newName})

	suite.Require().NoError(err)
	suite.Equal("Conta Principal", result.Name)
	// Untouched fields keep their values.
	suite.Equal("checking", result.Type)
	suite.True(result.Balance.Equal(decimal.NewFromInt(1500)))
}

func (suite *AccountServiceTestSuite) TestDeleteAccount() {
	ctx := context.Background()
	suite.mockRepo.On("DeleteAccount", ctx, "acc-1").Return(nil).Once()

	err := suite.service.DeleteAccount(ctx, "acc-1")

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestDeleteAccount_NotFound() {
	ctx := context.Background()
	suite.mockRepo.On("DeleteAccount", ctx, "missing").Return(apperrors.ErrNotFound).Once()

	err := suite.service.DeleteAccount(ctx, "missing")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func TestAccountService(t *testing.T) {
	suite.Run(t, new(AccountServiceTestSuite))
}
