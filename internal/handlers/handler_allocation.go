package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/axxyfin/axxy_backend/internal/apperrors"
	"github.com/axxyfin/axxy_backend/internal/core/domain"
	portssvc "github.com/axxyfin/axxy_backend/internal/core/ports/services"
	"github.com/axxyfin/axxy_backend/internal/dto"
	"github.com/axxyfin/axxy_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// allocationHandler handles the paycheck allocation workflow.
type allocationHandler struct {
	allocationService portssvc.AllocationSvcFacade
}

func newAllocationHandler(as portssvc.AllocationSvcFacade) *allocationHandler {
	return &allocationHandler{allocationService: as}
}

// registerAllocationRoutes registers the paycheck allocation routes.
func registerAllocationRoutes(rg *gin.RouterGroup, allocationService portssvc.AllocationSvcFacade) {
	h := newAllocationHandler(allocationService)

	allocation := rg.Group("/allocation")
	{
		allocation.POST("/suggest", h.suggest)
		allocation.POST("/apply", h.apply)
		allocation.GET("/history", h.history)
	}
}

func toAllocationCategoryResponses(categories []domain.AllocationCategory) []dto.AllocationCategoryResponse {
	res := make([]dto.AllocationCategoryResponse, len(categories))
	for i, cat := range categories {
		items := make([]dto.AllocationItemResponse, len(cat.Items))
		for j, item := range cat.Items {
			items[j] = dto.AllocationItemResponse{
				Name:          item.Name,
				Amount:        item.Amount,
				Percentage:    item.Percentage,
				ReferenceID:   item.ReferenceID,
				ReferenceType: item.ReferenceType,
			}
		}
		res[i] = dto.AllocationCategoryResponse{
			ID:         cat.ID,
			Name:       cat.Name,
			Color:      cat.Color,
			Amount:     cat.Amount,
			Percentage: cat.Percentage,
			Items:      items,
		}
	}
	return res
}

func toChartData(categories []domain.AllocationCategory) []dto.ChartSlice {
	slices := make([]dto.ChartSlice, len(categories))
	for i, cat := range categories {
		slices[i] = dto.ChartSlice{Name: cat.Name, Value: cat.Amount, Color: cat.Color}
	}
	return slices
}

// suggest godoc
// @Summary Suggest a paycheck split
// @Description Builds and persists a draft split of the paycheck across debts, goals, budgets and a safety margin
// @Tags allocation
// @Accept  json
// @Produce  json
// @Param   request body dto.SuggestAllocationRequest true "Paycheck amount and date"
// @Success 200 {object} dto.SuggestAllocationResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 500 {object} map[string]string "Failed to suggest allocation"
// @Router /allocation/suggest [post]
func (h *allocationHandler) suggest(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.SuggestAllocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for SuggestAllocation", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	plan, err := h.allocationService.SuggestAllocation(c.Request.Context(), req.PaycheckAmount, req.PaycheckDate)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to suggest allocation", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to suggest allocation"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.SuggestAllocationResponse{
		AllocationID:   plan.Allocation.AllocationID,
		PaycheckAmount: plan.Allocation.PaycheckAmount,
		PaycheckDate:   plan.Allocation.PaycheckDate,
		Categories:     toAllocationCategoryResponses(plan.Categories),
		Insights:       plan.Insights,
		ChartData:      toChartData(plan.Categories),
	})
}

// apply godoc
// @Summary Apply a draft allocation
// @Description Turns the draft into completed expense transactions and goal contributions, atomically
// @Tags allocation
// @Accept  json
// @Produce  json
// @Param   request body dto.ApplyAllocationRequest true "Draft allocation ID"
// @Success 200 {object} dto.ApplyAllocationResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Allocation not found"
// @Failure 409 {object} map[string]string "Allocation already applied"
// @Failure 500 {object} map[string]string "Failed to apply allocation"
// @Router /allocation/apply [post]
func (h *allocationHandler) apply(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.ApplyAllocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for ApplyAllocation", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	created, goalsUpdated, err := h.allocationService.ApplyAllocation(c.Request.Context(), req.AllocationID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Allocation not found"})
		case errors.Is(err, apperrors.ErrAllocationApplied):
			c.JSON(http.StatusConflict, gin.H{"error": "Allocation has already been applied"})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to apply allocation", slog.String("error", err.Error()), slog.String("allocation_id", req.AllocationID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to apply allocation"})
		}
		return
	}

	if goalsUpdated == nil {
		goalsUpdated = []string{}
	}

	c.JSON(http.StatusOK, dto.ApplyAllocationResponse{
		Success:             true,
		Message:             fmt.Sprintf("Alocação aplicada com sucesso! %d transações criadas.", created),
		TransactionsCreated: created,
		GoalsUpdated:        goalsUpdated,
	})
}

// history godoc
// @Summary List past allocations
// @Description Past paycheck allocations, newest first, items grouped by bucket
// @Tags allocation
// @Produce  json
// @Success 200 {array} dto.AllocationHistoryEntry
// @Failure 500 {object} map[string]string "Failed to list allocation history"
// @Router /allocation/history [get]
func (h *allocationHandler) history(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	plans, err := h.allocationService.History(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list allocation history", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list allocation history"})
		return
	}

	entries := make([]dto.AllocationHistoryEntry, len(plans))
	for i, plan := range plans {
		entries[i] = dto.AllocationHistoryEntry{
			AllocationID:   plan.Allocation.AllocationID,
			PaycheckDate:   plan.Allocation.PaycheckDate,
			PaycheckAmount: plan.Allocation.PaycheckAmount,
			Status:         plan.Allocation.Status,
			Categories:     toAllocationCategoryResponses(plan.Categories),
		}
	}

	c.JSON(http.StatusOK, entries)
}
