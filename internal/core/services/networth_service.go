package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/axxyfin/axxy_backend/internal/apperrors"
	"github.com/axxyfin/axxy_backend/internal/core/domain"
	portsrepo "github.com/axxyfin/axxy_backend/internal/core/ports/repositories"
	portssvc "github.com/axxyfin/axxy_backend/internal/core/ports/services"
	"github.com/axxyfin/axxy_backend/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var compositionColors = []string{"#22c55e", "#3b82f6", "#a855f7", "#64748b"}

// compositionLabels maps asset icon types to the chart labels the dashboard
// shows. Anything unknown falls under "Outros".
var compositionLabels = map[string]string{
	"home":       "Imóveis",
	"car":        "Veículos",
	"investment": "Investimentos",
}

type NetWorthService struct {
	BaseService
	assetRepo portsrepo.AssetRepositoryFacade
}

func NewNetWorthService(repo portsrepo.AssetRepositoryFacade) portssvc.NetWorthSvcFacade {
	return &NetWorthService{assetRepo: repo}
}

var _ portssvc.NetWorthSvcFacade = (*NetWorthService)(nil)

func (s *NetWorthService) CreateAsset(ctx context.Context, req dto.CreateAssetRequest) (*domain.Asset, error) {
	now := time.Now()
	asset := domain.Asset{
		AssetID:  uuid.NewString(),
		Name:     req.Name,
		Type:     req.Type,
		Value:    req.Value,
		IconType: req.IconType,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}

	if err := s.assetRepo.SaveAsset(ctx, asset); err != nil {
		s.LogError(ctx, err, "Failed to save asset", slog.String("asset_id", asset.AssetID))
		return nil, err
	}
	return &asset, nil
}

func (s *NetWorthService) UpdateAsset(ctx context.Context, assetID string, req dto.UpdateAssetRequest) (*domain.Asset, error) {
	asset, err := s.assetRepo.FindAssetByID(ctx, assetID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		asset.Name = *req.Name
	}
	if req.Type != nil {
		asset.Type = *req.Type
	}
	if req.Value != nil {
		asset.Value = *req.Value
	}
	if req.IconType != nil {
		asset.IconType = *req.IconType
	}
	asset.LastUpdatedAt = time.Now()

	if err := s.assetRepo.UpdateAsset(ctx, *asset); err != nil {
		s.LogError(ctx, err, "Failed to update asset", slog.String("asset_id", assetID))
		return nil, err
	}
	return asset, nil
}

func (s *NetWorthService) DeleteAsset(ctx context.Context, assetID string) error {
	if err := s.assetRepo.DeleteAsset(ctx, assetID); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to delete asset", slog.String("asset_id", assetID))
		}
		return err
	}
	return nil
}

func (s *NetWorthService) CreateLiability(ctx context.Context, req dto.CreateLiabilityRequest) (*domain.Liability, error) {
	now := time.Now()
	liability := domain.Liability{
		LiabilityID: uuid.NewString(),
		Name:        req.Name,
		Type:        req.Type,
		Value:       req.Value,
		IconType:    req.IconType,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}

	if err := s.assetRepo.SaveLiability(ctx, liability); err != nil {
		s.LogError(ctx, err, "Failed to save liability", slog.String("liability_id", liability.LiabilityID))
		return nil, err
	}
	return &liability, nil
}

func (s *NetWorthService) UpdateLiability(ctx context.Context, liabilityID string, req dto.UpdateLiabilityRequest) (*domain.Liability, error) {
	liability, err := s.assetRepo.FindLiabilityByID(ctx, liabilityID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		liability.Name = *req.Name
	}
	if req.Type != nil {
		liability.Type = *req.Type
	}
	if req.Value != nil {
		liability.Value = *req.Value
	}
	if req.IconType != nil {
		liability.IconType = *req.IconType
	}
	liability.LastUpdatedAt = time.Now()

	if err := s.assetRepo.UpdateLiability(ctx, *liability); err != nil {
		s.LogError(ctx, err, "Failed to update liability", slog.String("liability_id", liabilityID))
		return nil, err
	}
	return liability, nil
}

func (s *NetWorthService) DeleteLiability(ctx context.Context, liabilityID string) error {
	if err := s.assetRepo.DeleteLiability(ctx, liabilityID); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to delete liability", slog.String("liability_id", liabilityID))
		}
		return err
	}
	return nil
}

// NetWorth totals assets against liabilities and builds the composition of
// assets grouped by icon type.
func (s *NetWorthService) NetWorth(ctx context.Context) (*domain.NetWorthSummary, error) {
	assets, err := s.assetRepo.ListAssets(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list assets")
		return nil, fmt.Errorf("failed to list assets: %w", err)
	}
	liabilities, err := s.assetRepo.ListLiabilities(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list liabilities")
		return nil, fmt.Errorf("failed to list liabilities: %w", err)
	}

	totalAssets := decimal.Zero
	byIconType := map[string]decimal.Decimal{}
	for _, a := range assets {
		totalAssets = totalAssets.Add(a.Value)
		byIconType[a.IconType] = byIconType[a.IconType].Add(a.Value)
	}

	totalLiabilities := decimal.Zero
	for _, l := range liabilities {
		totalLiabilities = totalLiabilities.Add(l.Value)
	}

	iconTypes := make([]string, 0, len(byIconType))
	for k := range byIconType {
		iconTypes = append(iconTypes, k)
	}
	sort.Strings(iconTypes)

	composition := make([]domain.CategorySlice, 0, len(iconTypes))
	for i, iconType := range iconTypes {
		label, ok := compositionLabels[iconType]
		if !ok {
			label = "Outros"
		}
		value := byIconType[iconType]
		percentage := 0.0
		if totalAssets.IsPositive() {
			percentage, _ = value.Div(totalAssets).Mul(decimal.NewFromInt(100)).Round(1).Float64()
		}
		composition = append(composition, domain.CategorySlice{
			Name:       label,
			Value:      value,
			Percentage: percentage,
			Color:      compositionColors[i%len(compositionColors)],
		})
	}

	return &domain.NetWorthSummary{
		TotalAssets:      totalAssets,
		TotalLiabilities: totalLiabilities,
		NetWorth:         totalAssets.Sub(totalLiabilities),
		Assets:           assets,
		Liabilities:      liabilities,
		Composition:      composition,
	}, nil
}
