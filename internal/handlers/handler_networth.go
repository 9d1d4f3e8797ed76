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
)

// netWorthHandler handles HTTP requests for assets, liabilities and the
// consolidated net-worth view.
type netWorthHandler struct {
	netWorthService portssvc.NetWorthSvcFacade
}

func newNetWorthHandler(ns portssvc.NetWorthSvcFacade) *netWorthHandler {
	return &netWorthHandler{netWorthService: ns}
}

// registerNetWorthRoutes registers routes related to assets and liabilities.
func registerNetWorthRoutes(rg *gin.RouterGroup, netWorthService portssvc.NetWorthSvcFacade) {
	h := newNetWorthHandler(netWorthService)

	assets := rg.Group("/assets")
	{
		assets.POST("", h.createAsset)
		assets.PUT("/:assetID", h.updateAsset)
		assets.DELETE("/:assetID", h.deleteAsset)
	}

	liabilities := rg.Group("/liabilities")
	{
		liabilities.POST("", h.createLiability)
		liabilities.PUT("/:liabilityID", h.updateLiability)
		liabilities.DELETE("/:liabilityID", h.deleteLiability)
	}

	rg.GET("/net-worth", h.netWorth)
}

// createAsset godoc
// @Summary Register an asset
// @Tags net-worth
// @Accept  json
// @Produce  json
// @Param   asset body dto.CreateAssetRequest true "Asset details"
// @Success 201 {object} domain.Asset
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 500 {object} map[string]string "Failed to create asset"
// @Router /assets [post]
func (h *netWorthHandler) createAsset(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateAsset", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	asset, err := h.netWorthService.CreateAsset(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to create asset", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create asset"})
		}
		return
	}

	c.JSON(http.StatusCreated, asset)
}

// updateAsset godoc
// @Summary Update an asset
// @Tags net-worth
// @Accept  json
// @Produce  json
// @Param   assetID path string true "Asset ID"
// @Param   asset body dto.UpdateAssetRequest true "Fields to update"
// @Success 200 {object} domain.Asset
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Asset not found"
// @Failure 500 {object} map[string]string "Failed to update asset"
// @Router /assets/{assetID} [put]
func (h *netWorthHandler) updateAsset(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	assetID := c.Param("assetID")

	var req dto.UpdateAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateAsset", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	asset, err := h.netWorthService.UpdateAsset(c.Request.Context(), assetID, req)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Asset not found"})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to update asset", slog.String("error", err.Error()), slog.String("asset_id", assetID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update asset"})
		}
		return
	}

	c.JSON(http.StatusOK, asset)
}

// deleteAsset godoc
// @Summary Delete an asset
// @Tags net-worth
// @Produce  json
// @Param   assetID path string true "Asset ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string "Asset not found"
// @Failure 500 {object} map[string]string "Failed to delete asset"
// @Router /assets/{assetID} [delete]
func (h *netWorthHandler) deleteAsset(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	assetID := c.Param("assetID")

	if err := h.netWorthService.DeleteAsset(c.Request.Context(), assetID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Asset not found"})
		} else {
			logger.Error("Failed to delete asset", slog.String("error", err.Error()), slog.String("asset_id", assetID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete asset"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// createLiability godoc
// @Summary Register a liability
// @Tags net-worth
// @Accept  json
// @Produce  json
// @Param   liability body dto.CreateLiabilityRequest true "Liability details"
// @Success 201 {object} domain.Liability
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 500 {object} map[string]string "Failed to create liability"
// @Router /liabilities [post]
func (h *netWorthHandler) createLiability(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateLiabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateLiability", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	liability, err := h.netWorthService.CreateLiability(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to create liability", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create liability"})
		}
		return
	}

	c.JSON(http.StatusCreated, liability)
}

// updateLiability godoc
// @Summary Update a liability
// @Tags net-worth
// @Accept  json
// @Produce  json
// @Param   liabilityID path string true "Liability ID"
// @Param   liability body dto.UpdateLiabilityRequest true "Fields to update"
// @Success 200 {object} domain.Liability
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Liability not found"
// @Failure 500 {object} map[string]string "Failed to update liability"
// @Router /liabilities/{liabilityID} [put]
func (h *netWorthHandler) updateLiability(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	liabilityID := c.Param("liabilityID")

	var req dto.UpdateLiabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateLiability", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	liability, err := h.netWorthService.UpdateLiability(c.Request.Context(), liabilityID, req)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Liability not found"})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to update liability", slog.String("error", err.Error()), slog.String("liability_id", liabilityID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update liability"})
		}
		return
	}

	c.JSON(http.StatusOK, liability)
}

// deleteLiability godoc
// @Summary Delete a liability
// @Tags net-worth
// @Produce  json
// @Param   liabilityID path string true "Liability ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string "Liability not found"
// @Failure 500 {object} map[string]string "Failed to delete liability"
// @Router /liabilities/{liabilityID} [delete]
func (h *netWorthHandler) deleteLiability(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	liabilityID := c.Param("liabilityID")

	if err := h.netWorthService.DeleteLiability(c.Request.Context(), liabilityID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Liability not found"})
		} else {
			logger.Error("Failed to delete liability", slog.String("error", err.Error()), slog.String("liability_id", liabilityID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete liability"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// netWorth godoc
// @Summary Net worth summary
// @Description Totals assets and liabilities and breaks assets down by icon type
// @Tags net-worth
// @Produce  json
// @Success 200 {object} domain.NetWorthSummary
// @Failure 500 {object} map[string]string "Failed to compute net worth"
// @Router /net-worth [get]
func (h *netWorthHandler) netWorth(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	summary, err := h.netWorthService.NetWorth(c.Request.Context())
	if err != nil {
		logger.Error("Failed to compute net worth", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute net worth"})
		return
	}

	c.JSON(http.StatusOK, summary)
}
