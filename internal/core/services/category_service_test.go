package services_test

import (
	"context"
	"testing"

	"github.com/axxyfin/axxy_backend/internal/apperrors"
	"github.com/axxyfin/axxy_backend/internal/core/domain"
	portssvc "github.com/axxyfin/axxy_backend/internal/core/ports/services"
	"github.com/axxyfin/axxy_backend/internal/core/services"
	"github.com/axxyfin/axxy_backend/internal/dto"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type CategoryServiceTestSuite struct {
	suite.Suite
	mockRepo *MockCategoryRepository
	service  portssvc.CategorySvcFacade
}

func (suite *CategoryServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockCategoryRepository)
	suite.service = services.NewCategoryService(suite.mockRepo)
}

func (suite *CategoryServiceTestSuite) TestCreateCategory() {
	ctx := context.Background()
	req := dto.CreateCategoryRequest{Name: "Mercado", Type: "expense", Color: "#8b5cf6"}

	suite.mockRepo.On("SaveCategory", ctx, mock.AnythingOfType("domain.Category")).Return(nil).Once()

	category, err := suite.service.CreateCategory(ctx, req)

	suite.Require().NoError(err)
	suite.NotEmpty(category.CategoryID)
	suite.Equal(domain.Expense, category.Type)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *CategoryServiceTestSuite) TestCreateCategory_InvalidType() {
	_, err := suite.service.CreateCategory(context.Background(), dto.CreateCategoryRequest{
		Name: "Mercado",
		Type: "transfer",
	})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveCategory", mock.Anything, mock.Anything)
}

func (suite *CategoryServiceTestSuite) TestCreateCategory_Duplicate() {
	ctx := context.Background()
	suite.mockRepo.On("SaveCategory", ctx, mock.Anything).Return(apperrors.ErrDuplicate).Once()

	_, err := suite.service.CreateCategory(ctx, dto.CreateCategoryRequest{Name: "Mercado", Type: "expense"})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
}

func (suite *CategoryServiceTestSuite) TestListCategories() {
	ctx := context.Background()
	categories := []domain.Category{
		{CategoryID: "c1", Name: "Mercado", Type: domain.Expense},
		{CategoryID: "c2", Name: "Salário", Type: domain.Income},
	}
	suite.mockRepo.On("ListCategories", ctx).Return(categories, nil).Once()

	result, err := suite.service.ListCategories(ctx)

	suite.Require().NoError(err)
	suite.Len(result, 2)
}

func (suite *CategoryServiceTestSuite) TestUpdateCategory_ChangesType() {
	ctx := context.Background()
	category := &domain.Category{CategoryID: "c1", Name: "Freela", Type: domain.Expense}
	newType := "income"

	suite.mockRepo.On("FindCategoryByID", ctx, "c1").Return(category, nil).Once()
	suite.mockRepo.On("UpdateCategory", ctx, mock.AnythingOfType("domain.Category")).Return(nil).Once()

	result, err := suite.service.UpdateCategory(ctx, "c1", dto.UpdateCategoryRequest{Type: &newType})

	suite.Require().NoError(err)
	suite.Equal(domain.Income, result.Type)
	suite.Equal("Freela", result.Name)
}

func (suite *CategoryServiceTestSuite) TestDeleteCategory_NotFound() {
	ctx := context.Background()
	suite.mockRepo.On("DeleteCategory", ctx, "missing").Return(apperrors.ErrNotFound).Once()

	err := suite.service.DeleteCategory(ctx, "missing")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func TestCategoryService(t *testing.T) {
	suite.Run(t, new(CategoryServiceTestSuite))
}
