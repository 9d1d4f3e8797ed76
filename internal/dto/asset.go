package dto

import "github.com/shopspring/decimal"

// CreateAssetRequest defines the data needed to register an asset.
type CreateAssetRequest struct {
	Name     string          `json:"name" binding:"required"`
	Type     string          `json:"type"`
	Value    decimal.Decimal `json:"value" binding:"required"`
	IconType string          `json:"iconType" binding:"omitempty,oneof=home car investment other"`
}

// UpdateAssetRequest defines the data allowed for updating an asset.
type UpdateAssetRequest struct {
	Name     *string          `json:"name"`
	Type     *string          `json:"type"`
	Value    *decimal.Decimal `json:"value"`
	IconType *string          `json:"iconType" binding:"omitempty,oneof=home car investment other"`
}

// CreateLiabilityRequest defines the data needed to register a liability.
type CreateLiabilityRequest struct {
	Name     string          `json:"name" binding:"required"`
	Type     string          `json:"type"`
	Value    decimal.Decimal `json:"value" binding:"required"`
	IconType string          `json:"iconType" binding:"omitempty,oneof=loan card debt other"`
}

// UpdateLiabilityRequest defines the data allowed for updating a liability.
type UpdateLiabilityRequest struct {
	Name     *string          `json:"name"`
	Type     *string          `json:"type"`
	Value    *decimal.Decimal `json:"value"`
	IconType *string          `json:"iconType" binding:"omitempty,oneof=loan card debt other"`
}
