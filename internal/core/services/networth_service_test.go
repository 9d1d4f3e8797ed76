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

type NetWorthServiceTestSuite struct {
	suite.Suite
	mockRepo *MockAssetRepository
	service  portssvc.NetWorthSvcFacade
}

func (suite *NetWorthServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockAssetRepository)
	suite.service = services.NewNetWorthService(suite.mockRepo)
}

func (suite *NetWorthServiceTestSuite) TestCreateAsset() {
	ctx := context.Background()
	req := dto.CreateAssetRequest{
		Name:     "Apartamento",
		Type:     "Imóvel",
		Value:    decimal.NewFromInt(350000),
		IconType: "home",
	}

	suite.mockRepo.On("SaveAsset", ctx, mock.AnythingOfType("domain.Asset")).Return(nil).Once()

	asset, err := suite.service.CreateAsset(ctx, req)

	suite.Require().NoError(err)
	suite.NotEmpty(asset.AssetID)
	suite.Equal("home", asset.IconType)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *NetWorthServiceTestSuite) TestUpdateAsset_NotFound() {
	ctx := context.Background()
	suite.mockRepo.On("FindAssetByID", ctx, "missing").Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.UpdateAsset(ctx, "missing", dto.UpdateAssetRequest{})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *NetWorthServiceTestSuite) TestUpdateLiability_PartialFields() {
	ctx := context.Background()
	liability := &domain.Liability{
		LiabilityID: "l1",
		Name:        "Financiamento imóvel",
		Value:       decimal.NewFromInt(200000),
	}
	newValue := decimal.NewFromInt(195000)

	suite.mockRepo.On("FindLiabilityByID", ctx, "l1").Return(liability, nil).Once()
	suite.mockRepo.On("UpdateLiability", ctx, mock.AnythingOfType("domain.Liability")).Return(nil).Once()

	result, err := suite.service.UpdateLiability(ctx, "l1", dto.UpdateLiabilityRequest{Value: &newValue})

	suite.Require().NoError(err)
	suite.True(result.Value.Equal(newValue))
	suite.Equal("Financiamento imóvel", result.Name)
}

func (suite *NetWorthServiceTestSuite) TestNetWorth_TotalsAndComposition() {
	ctx := context.Background()
	assets := []domain.Asset{
		{AssetID: "a1", Name: "Apartamento", Value: decimal.NewFromInt(300000), IconType: "home"},
		{AssetID: "a2", Name: "Carro", Value: decimal.NewFromInt(80000), IconType: "car"},
		{AssetID: "a3", Name: "CDB", Value: decimal.NewFromInt(20000), IconType: "investment"},
	}
	liabilities := []domain.Liability{
		{LiabilityID: "l1", Name: "Financiamento", Value: decimal.NewFromInt(150000)},
	}

	suite.mockRepo.On("ListAssets", ctx).Return(assets, nil).Once()
	suite.mockRepo.On("ListLiabilities", ctx).Return(liabilities, nil).Once()

	summary, err := suite.service.NetWorth(ctx)

	suite.Require().NoError(err)
	suite.True(summary.TotalAssets.Equal(decimal.NewFromInt(400000)))
	suite.True(summary.TotalLiabilities.Equal(decimal.NewFromInt(150000)))
	suite.True(summary.NetWorth.Equal(decimal.NewFromInt(250000)))

	// Composition groups by icon type, alphabetically: car, home, investment.
	suite.Require().Len(summary.Composition, 3)
	suite.Equal("Veículos", summary.Composition[0].Name)
	suite.Equal(20.0, summary.Composition[0].Percentage)
	suite.Equal("Imóveis", summary.Composition[1].Name)
	suite.Equal(75.0, summary.Composition[1].Percentage)
	suite.Equal("Investimentos", summary.Composition[2].Name)
	suite.Equal(5.0, summary.Composition[2].Percentage)
}

func (suite *NetWorthServiceTestSuite) TestNetWorth_UnknownIconTypeGrouped() {
	ctx := context.Background()
	assets := []domain.Asset{
		{AssetID: "a1", Name: "Coleção", Value: decimal.NewFromInt(1000), IconType: "other"},
	}

	suite.mockRepo.On("ListAssets", ctx).Return(assets, nil).Once()
	suite.mockRepo.On("ListLiabilities", ctx).Return([]domain.Liability{}, nil).Once()

	summary, err := suite.service.NetWorth(ctx)

	suite.Require().NoError(err)
	suite.Require().Len(summary.Composition, 1)
	suite.Equal("Outros", summary.Composition[0].Name)
	suite.Equal(100.0, summary.Composition[0].Percentage)
}

func (suite *NetWorthServiceTestSuite) TestNetWorth_Empty() {
	ctx := context.Background()
	suite.mockRepo.On("ListAssets", ctx).Return([]domain.Asset{}, nil).Once()
	suite.mockRepo.On("ListLiabilities", ctx).Return([]domain.Liability{}, nil).Once()

	summary, err := suite.service.NetWorth(ctx)

	suite.Require().NoError(err)
	suite.True(summary.NetWorth.IsZero())
	suite.Empty(summary.Composition)
}

func TestNetWorthService(t *testing.T) {
	suite.Run(t, new(NetWorthServiceTestSuite))
}
