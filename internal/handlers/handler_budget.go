package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/axxyfin/axxy_backend/internal/apperrors"
	portssvc "github.com/axxyfin/axxy_backend/internal/core/ports/services"
	"github.com/axxyfin/axxy_backend/internal/dto"
	"github.com/axxyfin/axxy_backend/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// budgetHandler handles HTTP requests for budgets, budget items and the
// budget-level allocation helpers.
type budgetHandler struct {
	budgetService     portssvc.BudgetSvcFacade
	allocationService portssvc.AllocationSvcFacade
}

func newBudgetHandler(bs portssvc.BudgetSvcFacade, as portssvc.AllocationSvcFacade) *budgetHandler {
	return &budgetHandler{budgetService: bs, allocationService: as}
}

// registerBudgetRoutes registers routes related to budgets.
func registerBudgetRoutes(rg *gin.RouterGroup, budgetService portssvc.BudgetSvcFacade, allocationService portssvc.AllocationSvcFacade) {
	h := newBudgetHandler(budgetService, allocationService)

	budgets := rg.Group("/budgets")
	{
		budgets.POST("", h.createBudget)
		budgets.GET("", h.listBudgets)
		budgets.GET("/:budgetID", h.getBudget)
		budgets.PUT("/:budgetID", h.updateBudget)
		budgets.DELETE("/:budgetID", h.deleteBudget)

		budgets.POST("/:budgetID/items", h.createBudgetItem)
		budgets.GET("/:budgetID/items", h.listBudgetItems)
		budgets.PUT("/:budgetID/items/:itemID", h.updateBudgetItem)
		budgets.DELETE("/:budgetID/items/:itemID", h.deleteBudgetItem)

		budgets.POST("/allocate", h.autoAllocate)
		budgets.POST("/calculate-priorities", h.calculatePriorities)
	}
}

// createBudget godoc
// @Summary Create a budget
// @Tags budgets
// @Accept  json
// @Produce  json
// @Param   budget body dto.CreateBudgetRequest true "Budget details"
// @Success 201 {object} dto.BudgetResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 409 {object} map[string]string "Budget for category already exists"
// @Failure 500 {object} map[string]string "Failed to create budget"
// @Router /budgets [post]
func (h *budgetHandler) createBudget(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateBudget", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	budget, err := h.budgetService.CreateBudget(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrDuplicate):
			c.JSON(http.StatusConflict, gin.H{"error": "A budget for this category already exists"})
		default:
			logger.Error("Failed to create budget", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create budget"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToBudgetResponse(budget))
}

// listBudgets godoc
// @Summary List budgets
// @Description Lists all budgets with spent recomputed from expense transactions
// @Tags budgets
// @Produce  json
// @Success 200 {array} dto.BudgetResponse
// @Failure 500 {object} map[string]string "Failed to list budgets"
// @Router /budgets [get]
func (h *budgetHandler) listBudgets(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	budgets, err := h.budgetService.ListBudgets(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list budgets", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list budgets"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListBudgetResponse(budgets))
}

// getBudget godoc
// @Summary Get a budget by ID
// @Tags budgets
// @Produce  json
// @Param   budgetID path string true "Budget ID"
// @Success 200 {object} dto.BudgetResponse
// @Failure 404 {object} map[string]string "Budget not found"
// @Failure 500 {object} map[string]string "Failed to get budget"
// @Router /budgets/{budgetID} [get]
func (h *budgetHandler) getBudget(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	budgetID := c.Param("budgetID")

	budget, err := h.budgetService.GetBudgetByID(c.Request.Context(), budgetID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Budget not found"})
		} else {
			logger.Error("Failed to get budget", slog.String("error", err.Error()), slog.String("budget_id", budgetID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get budget"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToBudgetResponse(budget))
}

// updateBudget godoc
// @Summary Update a budget
// @Tags budgets
// @Accept  json
// @Produce  json
// @Param   budgetID path string true "Budget ID"
// @Param   budget body dto.UpdateBudgetRequest true "Fields to update"
// @Success 200 {object} dto.BudgetResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Budget not found"
// @Failure 500 {object} map[string]string "Failed to update budget"
// @Router /budgets/{budgetID} [put]
func (h *budgetHandler) updateBudget(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	budgetID := c.Param("budgetID")

	var req dto.UpdateBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateBudget", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	budget, err := h.budgetService.UpdateBudget(c.Request.Context(), budgetID, req)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Budget not found"})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to update budget", slog.String("error", err.Error()), slog.String("budget_id", budgetID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update budget"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToBudgetResponse(budget))
}

// deleteBudget godoc
// @Summary Delete a budget
// @Description Deletes the budget and all of its items
// @Tags budgets
// @Produce  json
// @Param   budgetID path string true "Budget ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string "Budget not found"
// @Failure 500 {object} map[string]string "Failed to delete budget"
// @Router /budgets/{budgetID} [delete]
func (h *budgetHandler) deleteBudget(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	budgetID := c.Param("budgetID")

	if err := h.budgetService.DeleteBudget(c.Request.Context(), budgetID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Budget not found"})
		} else {
			logger.Error("Failed to delete budget", slog.String("error", err.Error()), slog.String("budget_id", budgetID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete budget"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// createBudgetItem godoc
// @Summary Add an item to a budget
// @Tags budgets
// @Accept  json
// @Produce  json
// @Param   budgetID path string true "Budget ID"
// @Param   item body dto.CreateBudgetItemRequest true "Item details"
// @Success 201 {object} domain.BudgetItem
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Budget not found"
// @Failure 500 {object} map[string]string "Failed to create budget item"
// @Router /budgets/{budgetID}/items [post]
func (h *budgetHandler) createBudgetItem(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	budgetID := c.Param("budgetID")

	var req dto.CreateBudgetItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateBudgetItem", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	item, err := h.budgetService.CreateBudgetItem(c.Request.Context(), budgetID, req)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Budget not found"})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to create budget item", slog.String("error", err.Error()), slog.String("budget_id", budgetID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create budget item"})
		}
		return
	}

	c.JSON(http.StatusCreated, item)
}

// listBudgetItems godoc
// @Summary List the items of a budget
// @Tags budgets
// @Produce  json
// @Param   budgetID path string true "Budget ID"
// @Success 200 {array} domain.BudgetItem
// @Failure 404 {object} map[string]string "Budget not found"
// @Failure 500 {object} map[string]string "Failed to list budget items"
// @Router /budgets/{budgetID}/items [get]
func (h *budgetHandler) listBudgetItems(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	budgetID := c.Param("budgetID")

	items, err := h.budgetService.ListBudgetItems(c.Request.Context(), budgetID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Budget not found"})
		} else {
			logger.Error("Failed to list budget items", slog.String("error", err.Error()), slog.String("budget_id", budgetID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list budget items"})
		}
		return
	}

	c.JSON(http.StatusOK, items)
}

// updateBudgetItem godoc
// @Summary Update a budget item
// @Tags budgets
// @Accept  json
// @Produce  json
// @Param   budgetID path string true "Budget ID"
// @Param   itemID path string true "Item ID"
// @Param   item body dto.UpdateBudgetItemRequest true "Fields to update"
// @Success 200 {object} domain.BudgetItem
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Budget item not found"
// @Failure 500 {object} map[string]string "Failed to update budget item"
// @Router /budgets/{budgetID}/items/{itemID} [put]
func (h *budgetHandler) updateBudgetItem(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	budgetID := c.Param("budgetID")
	itemID := c.Param("itemID")

	var req dto.UpdateBudgetItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateBudgetItem", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	item, err := h.budgetService.UpdateBudgetItem(c.Request.Context(), budgetID, itemID, req)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Budget item not found"})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to update budget item", slog.String("error", err.Error()), slog.String("item_id", itemID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update budget item"})
		}
		return
	}

	c.JSON(http.StatusOK, item)
}

// deleteBudgetItem godoc
// @Summary Delete a budget item
// @Tags budgets
// @Produce  json
// @Param   budgetID path string true "Budget ID"
// @Param   itemID path string true "Item ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string "Budget item not found"
// @Failure 500 {object} map[string]string "Failed to delete budget item"
// @Router /budgets/{budgetID}/items/{itemID} [delete]
func (h *budgetHandler) deleteBudgetItem(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	budgetID := c.Param("budgetID")
	itemID := c.Param("itemID")

	if err := h.budgetService.DeleteBudgetItem(c.Request.Context(), budgetID, itemID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Budget item not found"})
		} else {
			logger.Error("Failed to delete budget item", slog.String("error", err.Error()), slog.String("item_id", itemID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete budget item"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// autoAllocate godoc
// @Summary Distribute an amount across budgets
// @Description Splits the available amount across budgets proportionally to need, advisory-assisted when configured
// @Tags budgets
// @Accept  json
// @Produce  json
// @Param   request body dto.AutoAllocateRequest true "Amount to distribute"
// @Success 200 {object} dto.AutoAllocateResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 500 {object} map[string]string "Failed to allocate"
// @Router /budgets/allocate [post]
func (h *budgetHandler) autoAllocate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.AutoAllocateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for AutoAllocate", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	allocations, err := h.allocationService.AutoAllocate(c.Request.Context(), req.AvailableAmount)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to auto-allocate", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to allocate"})
		}
		return
	}

	totalAllocated := decimal.Zero
	for _, a := range allocations {
		totalAllocated = totalAllocated.Add(a.SuggestedAmount)
	}

	c.JSON(http.StatusOK, dto.AutoAllocateResponse{
		TotalAvailable: req.AvailableAmount,
		Allocations:    allocations,
		TotalAllocated: totalAllocated,
	})
}

// calculatePriorities godoc
// @Summary Rank budgets by priority
// @Description Scores every budget for urgency, advisory-assisted with a deterministic fallback
// @Tags budgets
// @Produce  json
// @Success 200 {array} domain.PriorityScore
// @Failure 500 {object} map[string]string "Failed to calculate priorities"
// @Router /budgets/calculate-priorities [post]
func (h *budgetHandler) calculatePriorities(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	scores, err := h.allocationService.CalculatePriorities(c.Request.Context())
	if err != nil {
		logger.Error("Failed to calculate priorities", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to calculate priorities"})
		return
	}

	c.JSON(http.StatusOK, scores)
}
