package repositories

import (
	"context"

	"github.com/axxyfin/axxy_backend/internal/core/domain"
)

// AssetRepositoryFacade covers assets and liabilities; they live in sibling
// tables and are always consumed together by the net-worth views.
type AssetRepositoryFacade interface {
	ListAssets(ctx context.Context) ([]domain.Asset, error)
	FindAssetByID(ctx context.Context, assetID string) (*domain.Asset, error)
	SaveAsset(ctx context.Context, asset domain.Asset) error
	UpdateAsset(ctx context.Context, asset domain.Asset) error
	DeleteAsset(ctx context.Context, assetID string) error

	ListLiabilities(ctx context.Context) ([]domain.Liability, error)
	FindLiabilityByID(ctx context.Context, liabilityID string) (*domain.Liability, error)
	SaveLiability(ctx context.Context, liability domain.Liability) error
	UpdateLiability(ctx context.Context, liability domain.Liability) error
	DeleteLiability(ctx context.Context, liabilityID string) error
}
