package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/axxyfin/axxy_backend/internal/core/ports/services"
	"github.com/axxyfin/axxy_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// reportHandler handles the read-only aggregation endpoints. Every endpoint
// takes the same two query params: range (a named window like "30d" or
// "this-year") and account ("all" or a specific account id).
type reportHandler struct {
	reportingService portssvc.ReportingSvc
}

func newReportHandler(rs portssvc.ReportingSvc) *reportHandler {
	return &reportHandler{reportingService: rs}
}

// registerReportRoutes registers the reporting routes.
func registerReportRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingSvc) {
	h := newReportHandler(reportingService)

	reports := rg.Group("/reports")
	{
		reports.GET("", h.reports)
		reports.GET("/cash-flow", h.cashFlow)
		reports.GET("/spending-trends", h.spendingTrends)
		reports.GET("/income-sources", h.incomeSources)
	}
}

func reportingParams(c *gin.Context) (rangeName, accountFilter string) {
	return c.DefaultQuery("range", "30d"), c.DefaultQuery("account", "all")
}

// reports godoc
// @Summary Expense report
// @Description KPI block plus the expense distribution by category for the window
// @Tags reports
// @Produce  json
// @Param   range query string false "Named range (7d, 30d, 90d, this-month, this-year)" default(30d)
// @Param   account query string false "Account filter" default(all)
// @Success 200 {object} domain.ReportsResult
// @Failure 500 {object} map[string]string "Failed to build report"
// @Router /reports [get]
func (h *reportHandler) reports(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	rangeName, accountFilter := reportingParams(c)

	result, err := h.reportingService.Reports(c.Request.Context(), rangeName, accountFilter)
	if err != nil {
		logger.Error("Failed to build report", slog.String("error", err.Error()), slog.String("range", rangeName))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build report"})
		return
	}

	c.JSON(http.StatusOK, result)
}

// cashFlow godoc
// @Summary Monthly cash flow
// @Description Income vs expense per month, chronological, ending at the current month
// @Tags reports
// @Produce  json
// @Param   range query string false "Named range" default(30d)
// @Param   account query string false "Account filter" default(all)
// @Success 200 {array} domain.CashFlowEntry
// @Failure 500 {object} map[string]string "Failed to build cash flow"
// @Router /reports/cash-flow [get]
func (h *reportHandler) cashFlow(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	rangeName, accountFilter := reportingParams(c)

	entries, err := h.reportingService.CashFlow(c.Request.Context(), rangeName, accountFilter)
	if err != nil {
		logger.Error("Failed to build cash flow", slog.String("error", err.Error()), slog.String("range", rangeName))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build cash flow"})
		return
	}

	c.JSON(http.StatusOK, entries)
}

// spendingTrends godoc
// @Summary Monthly spending trend
// @Description Expense totals per month with the percent change vs the previous month
// @Tags reports
// @Produce  json
// @Param   range query string false "Named range" default(30d)
// @Param   account query string false "Account filter" default(all)
// @Success 200 {array} domain.TrendEntry
// @Failure 500 {object} map[string]string "Failed to build spending trends"
// @Router /reports/spending-trends [get]
func (h *reportHandler) spendingTrends(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	rangeName, accountFilter := reportingParams(c)

	entries, err := h.reportingService.SpendingTrends(c.Request.Context(), rangeName, accountFilter)
	if err != nil {
		logger.Error("Failed to build spending trends", slog.String("error", err.Error()), slog.String("range", rangeName))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build spending trends"})
		return
	}

	c.JSON(http.StatusOK, entries)
}

// incomeSources godoc
// @Summary Income distribution by source
// @Tags reports
// @Produce  json
// @Param   range query string false "Named range" default(30d)
// @Param   account query string false "Account filter" default(all)
// @Success 200 {array} domain.CategorySlice
// @Failure 500 {object} map[string]string "Failed to build income sources"
// @Router /reports/income-sources [get]
func (h *reportHandler) incomeSources(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	rangeName, accountFilter := reportingParams(c)

	slices, err := h.reportingService.IncomeSources(c.Request.Context(), rangeName, accountFilter)
	if err != nil {
		logger.Error("Failed to build income sources", slog.String("error", err.Error()), slog.String("range", rangeName))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build income sources"})
		return
	}

	c.JSON(http.StatusOK, slices)
}
