package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/axxyfin/axxy_backend/internal/apperrors"
	"github.com/axxyfin/axxy_backend/internal/core/domain"
	portsrepo "github.com/axxyfin/axxy_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxAssetRepository persists assets and liabilities. The two tables share a
// shape and are always read together by the net-worth views, so one
// repository covers both.
type PgxAssetRepository struct {
	BaseRepository
}

func newPgxAssetRepository(pool *pgxpool.Pool) portsrepo.AssetRepositoryFacade {
	return &PgxAssetRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.AssetRepositoryFacade = (*PgxAssetRepository)(nil)

const assetColumns = `asset_id, name, asset_type, value, icon_type, created_at, last_updated_at`
const liabilityColumns = `liability_id, name, liability_type, value, icon_type, created_at, last_updated_at`

func scanAsset(row pgx.Row) (*domain.Asset, error) {
	var a domain.Asset
	err := row.Scan(&a.AssetID, &a.Name, &a.Type, &a.Value, &a.IconType, &a.CreatedAt, &a.LastUpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan asset: %w", err)
	}
	return &a, nil
}

func scanLiability(row pgx.Row) (*domain.Liability, error) {
	var l domain.Liability
	err := row.Scan(&l.LiabilityID, &l.Name, &l.Type, &l.Value, &l.IconType, &l.CreatedAt, &l.LastUpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan liability: %w", err)
	}
	return &l, nil
}

// ListAssets retrieves all assets, oldest first.
func (r *PgxAssetRepository) ListAssets(ctx context.Context) ([]domain.Asset, error) {
	rows, err := r.Pool.Query(ctx, `SELECT `+assetColumns+` FROM assets ORDER BY created_at;`)
	if err != nil {
		return nil, fmt.Errorf("failed to list assets: %w", err)
	}
	defer rows.Close()

	assets := make([]domain.Asset, 0)
	for rows.Next() {
		a, err := scanAsset(rows)
		if err != nil {
			return nil, err
		}
		assets = append(assets, *a)
	}
	return assets, rows.Err()
}

// FindAssetByID retrieves an asset by its ID.
func (r *PgxAssetRepository) FindAssetByID(ctx context.Context, assetID string) (*domain.Asset, error) {
	query := `SELECT ` + assetColumns + ` FROM assets WHERE asset_id = $1;`
	return scanAsset(r.Pool.QueryRow(ctx, query, assetID))
}

// SaveAsset inserts a new asset.
func (r *PgxAssetRepository) SaveAsset(ctx context.Context, asset domain.Asset) error {
	query := `INSERT INTO assets (` + assetColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7);`
	_, err := r.Pool.Exec(ctx, query,
		asset.AssetID, asset.Name, asset.Type, asset.Value, asset.IconType,
		asset.CreatedAt, asset.LastUpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save asset %s: %w", asset.AssetID, err)
	}
	return nil
}

// UpdateAsset rewrites an existing asset.
func (r *PgxAssetRepository) UpdateAsset(ctx context.Context, asset domain.Asset) error {
	query := `
		UPDATE assets
		SET name = $2, asset_type = $3, value = $4, icon_type = $5, last_updated_at = $6
		WHERE asset_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		asset.AssetID, asset.Name, asset.Type, asset.Value, asset.IconType, asset.LastUpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update asset %s: %w", asset.AssetID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteAsset removes an asset.
func (r *PgxAssetRepository) DeleteAsset(ctx context.Context, assetID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM assets WHERE asset_id = $1;`, assetID)
	if err != nil {
		return fmt.Errorf("failed to delete asset %s: %w", assetID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// ListLiabilities retrieves all liabilities, oldest first.
func (r *PgxAssetRepository) ListLiabilities(ctx context.Context) ([]domain.Liability, error) {
	rows, err := r.Pool.Query(ctx, `SELECT `+liabilityColumns+` FROM liabilities ORDER BY created_at;`)
	if err != nil {
		return nil, fmt.Errorf("failed to list liabilities: %w", err)
	}
	defer rows.Close()

	liabilities := make([]domain.Liability, 0)
	for rows.Next() {
		l, err := scanLiability(rows)
		if err != nil {
			return nil, err
		}
		liabilities = append(liabilities, *l)
	}
	return liabilities, rows.Err()
}

// FindLiabilityByID retrieves a liability by its ID.
func (r *PgxAssetRepository) FindLiabilityByID(ctx context.Context, liabilityID string) (*domain.Liability, error) {
	query := `SELECT ` + liabilityColumns + ` FROM liabilities WHERE liability_id = $1;`
	return scanLiability(r.Pool.QueryRow(ctx, query, liabilityID))
}

// SaveLiability inserts a new liability.
func (r *PgxAssetRepository) SaveLiability(ctx context.Context, liability domain.Liability) error {
	query := `INSERT INTO liabilities (` + liabilityColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7);`
	_, err := r.Pool.Exec(ctx, query,
		liability.LiabilityID, liability.Name, liability.Type, liability.Value, liability.IconType,
		liability.CreatedAt, liability.LastUpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save liability %s: %w", liability.LiabilityID, err)
	}
	return nil
}

// UpdateLiability rewrites an existing liability.
func (r *PgxAssetRepository) UpdateLiability(ctx context.Context, liability domain.Liability) error {
	query := `
		UPDATE liabilities
		SET name = $2, liability_type = $3, value = $4, icon_type = $5, last_updated_at = $6
		WHERE liability_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		liability.LiabilityID, liability.Name, liability.Type, liability.Value,
		liability.IconType, liability.LastUpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update liability %s: %w", liability.LiabilityID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteLiability removes a liability.
func (r *PgxAssetRepository) DeleteLiability(ctx context.Context, liabilityID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM liabilities WHERE liability_id = $1;`, liabilityID)
	if err != nil {
		return fmt.Errorf("failed to delete liability %s: %w", liabilityID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
