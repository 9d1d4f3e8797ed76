package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/axxyfin/axxy_backend/internal/apperrors"
	"github.com/axxyfin/axxy_backend/internal/core/domain"
	portssvc "github.com/axxyfin/axxy_backend/internal/core/ports/services"
	"github.com/axxyfin/axxy_backend/internal/dto"
	"github.com/axxyfin/axxy_backend/internal/handlers"
	"github.com/axxyfin/axxy_backend/internal/platform/config"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock DebtService ---
type MockDebtService struct {
	mock.Mock
}

func (m *MockDebtService) CreateDebt(ctx context.Context, req dto.CreateDebtRequest) (*domain.Debt, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Debt), args.Error(1)
}

func (m *MockDebtService) ListDebts(ctx context.Context) ([]domain.Debt, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Debt), args.Error(1)
}

func (m *MockDebtService) UpdateDebt(ctx context.Context, debtID string, req dto.UpdateDebtRequest) (*domain.Debt, error) {
	args := m.Called(ctx, debtID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Debt), args.Error(1)
}

func (m *MockDebtService) DeleteDebt(ctx context.Context, debtID string) error {
	args := m.Called(ctx, debtID)
	return args.Error(0)
}

func (m *MockDebtService) PayDebt(ctx context.Context, debtID string, req dto.PayDebtRequest) (*domain.Debt, error) {
	args := m.Called(ctx, debtID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Debt), args.Error(1)
}

func (m *MockDebtService) HealthSummary(ctx context.Context) (*domain.HealthSummary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.HealthSummary), args.Error(1)
}

var _ portssvc.DebtSvcFacade = (*MockDebtService)(nil)

// --- Test Suite ---
type DebtHandlerTestSuite struct {
	suite.Suite
	router          *gin.Engine
	mockDebtService *MockDebtService
}

func (suite *DebtHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.mockDebtService = new(MockDebtService)

	cfg := &config.Config{IsProduction: true}
	handlers.RegisterRoutes(suite.router, cfg, &portssvc.ServiceContainer{
		Debt: suite.mockDebtService,
	})
}

func (suite *DebtHandlerTestSuite) TestPayDebt_Success() {
	payReq := dto.PayDebtRequest{
		Amount:    decimal.NewFromInt(100),
		AccountID: "acc-1",
		Date:      "2026-08-10",
	}
	paid := &domain.Debt{
		DebtID:    "d1",
		Name:      "Financiamento",
		Remaining: decimal.NewFromInt(200),
		Status:    domain.DebtPending,
	}

	suite.mockDebtService.On("PayDebt", mock.Anything, "d1", payReq).Return(paid, nil).Once()

	body, _ := json.Marshal(payReq)
	httpReq, _ := http.NewRequest(http.MethodPost, "/api/v1/debts/d1/pay", bytes.NewReader(body))
	httpReq.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, httpReq)

	suite.Equal(http.StatusOK, w.Code)

	var resp dto.PayDebtResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.True(resp.Success)
	suite.True(resp.NewRemaining.Equal(decimal.NewFromInt(200)))
	suite.mockDebtService.AssertExpectations(suite.T())
}

func (suite *DebtHandlerTestSuite) TestPayDebt_DebtNotFound() {
	suite.mockDebtService.On("PayDebt", mock.Anything, "missing", mock.Anything).
		Return(nil, apperrors.ErrNotFound).Once()

	body := []byte(`{"amount": 100, "accountId": "acc-1", "date": "2026-08-10"}`)
	httpReq, _ := http.NewRequest(http.MethodPost, "/api/v1/debts/missing/pay", bytes.NewReader(body))
	httpReq.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, httpReq)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *DebtHandlerTestSuite) TestPayDebt_MissingFields() {
	body := []byte(`{"amount": 100}`)
	httpReq, _ := http.NewRequest(http.MethodPost, "/api/v1/debts/d1/pay", bytes.NewReader(body))
	httpReq.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, httpReq)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockDebtService.AssertNotCalled(suite.T(), "PayDebt", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *DebtHandlerTestSuite) TestHealthSummary_Success() {
	summary := &domain.HealthSummary{
		TotalDebt:       decimal.NewFromInt(1700),
		PendingPayments: decimal.NewFromInt(100),
		StatusBreakdown: map[domain.DebtStatus]domain.DebtStatusBreakdown{
			domain.DebtPending: {Count: 1, Total: decimal.NewFromInt(1000)},
		},
		NextDueDate: "2026-09-05",
		DebtCount:   2,
	}
	suite.mockDebtService.On("HealthSummary", mock.Anything).Return(summary, nil).Once()

	httpReq, _ := http.NewRequest(http.MethodGet, "/api/v1/financial-health/summary", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, httpReq)

	suite.Equal(http.StatusOK, w.Code)
	suite.Contains(w.Body.String(), "2026-09-05")
}

func TestDebtHandler(t *testing.T) {
	suite.Run(t, new(DebtHandlerTestSuite))
}
