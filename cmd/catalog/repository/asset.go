package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/craftline/catalog-admin/cmd/catalog/models"
	"github.com/craftline/catalog-admin/common/db"
)

// AssetRepository handles database operations for content-addressed
// assets. The hash is the identity, so re-uploading identical bytes is a
// no-op at the storage layer.
type AssetRepository struct {
	db *db.DB
}

// NewAssetRepository creates a new asset repository
func NewAssetRepository(db *db.DB) *AssetRepository {
	return &AssetRepository{db: db}
}

// Create inserts a new asset, deduplicating on hash
func (r *AssetRepository) Create(ctx context.Context, asset *models.Asset) error {
	query := `
		INSERT INTO asset (hash, file_name, media_type, kind, size_bytes, content, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (hash) DO NOTHING
	`

	_, err := r.db.Exec(ctx, query,
		asset.Hash,
		asset.FileName,
		asset.MediaType,
		asset.Kind,
		asset.SizeBytes,
		asset.Content,
		asset.CreatedBy,
		asset.CreatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create asset: %w", err)
	}

	return nil
}

// GetByHash retrieves an asset including its content
func (r *AssetRepository) GetByHash(ctx context.Context, hash string) (*models.Asset, error) {
	query := `
		SELECT hash, file_name, media_type, kind, size_bytes, content, created_by, created_at
		FROM asset
		WHERE hash = $1
	`

	asset := &models.Asset{}
	err := r.db.QueryRow(ctx, query, hash).Scan(
		&asset.Hash,
		&asset.FileName,
		&asset.MediaType,
		&asset.Kind,
		&asset.SizeBytes,
		&asset.Content,
		&asset.CreatedBy,
		&asset.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get asset: %w", err)
	}

	return asset, nil
}

// ListByKind retrieves asset metadata of one kind, newest first. Content
// is deliberately not loaded.
func (r *AssetRepository) ListByKind(ctx context.Context, kind models.AssetKind) ([]*models.Asset, error) {
	query := `
		SELECT hash, file_name, media_type, kind, size_bytes, created_by, created_at
		FROM asset
		WHERE kind = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(ctx, query, kind)
	if err != nil {
		return nil, fmt.Errorf("failed to list assets: %w", err)
	}
	defer rows.Close()

	var assets []*models.Asset
	for rows.Next() {
		asset := &models.Asset{}
		err := rows.Scan(
			&asset.Hash,
			&asset.FileName,
			&asset.MediaType,
			&asset.Kind,
			&asset.SizeBytes,
			&asset.CreatedBy,
			&asset.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan asset: %w", err)
		}
		assets = append(assets, asset)
	}

	return assets, rows.Err()
}

// Exists checks whether an asset with this hash is already stored
func (r *AssetRepository) Exists(ctx context.Context, hash string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM asset WHERE hash = $1)`

	var exists bool
	if err := r.db.QueryRow(ctx, query, hash).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check asset existence: %w", err)
	}

	return exists, nil
}

// Delete removes an asset. Fails if any entity still references the hash,
// which the foreign keys enforce.
func (r *AssetRepository) Delete(ctx context.Context, hash string) error {
	result, err := r.db.Exec(ctx, `DELETE FROM asset WHERE hash = $1`, hash)
	if err != nil {
		return fmt.Errorf("failed to delete asset: %w", err)
	}

	if result.RowsAffected() == 0 {
		return models.ErrNotFound
	}

	return nil
}
