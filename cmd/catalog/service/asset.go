package service

import (
	"context"
	"fmt"

	"github.com/craftline/catalog-admin/cmd/catalog/models"
	"github.com/craftline/catalog-admin/cmd/catalog/repository"
	"github.com/craftline/catalog-admin/common/logger"
)

// AssetService handles content-addressed file uploads
type AssetService struct {
	repo    *repository.AssetRepository
	maxSize int64
	log     *logger.Logger
}

// NewAssetService creates a new asset service
func NewAssetService(repo *repository.AssetRepository, maxSize int64, log *logger.Logger) *AssetService {
	return &AssetService{
		repo:    repo,
		maxSize: maxSize,
		log:     log,
	}
}

// Upload stores uploaded content and returns its asset record. Identical
// content deduplicates onto the existing row.
func (s *AssetService) Upload(ctx context.Context, fileName, mediaType string, kind models.AssetKind, content []byte, username string) (*models.Asset, error) {
	if int64(len(content)) > s.maxSize {
		return nil, fmt.Errorf("%w: file exceeds the %d byte limit", models.ErrInvalid, s.maxSize)
	}

	asset, err := models.NewAsset(fileName, mediaType, kind, content, username)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", models.ErrInvalid, err)
	}

	exists, err := s.repo.Exists(ctx, asset.Hash)
	if err != nil {
		return nil, err
	}

	if !exists {
		if err := s.repo.Create(ctx, asset); err != nil {
			return nil, err
		}
	}

	s.log.Info("stored asset",
		"hash", asset.Hash,
		"kind", asset.Kind,
		"bytes", asset.SizeBytes,
		"deduplicated", exists,
	)
	return asset, nil
}

// Get retrieves an asset including its content
func (s *AssetService) Get(ctx context.Context, hash string) (*models.Asset, error) {
	return s.repo.GetByHash(ctx, hash)
}

// ListByKind retrieves asset metadata of one kind
func (s *AssetService) ListByKind(ctx context.Context, kind models.AssetKind) ([]*models.Asset, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: invalid asset kind %q", models.ErrInvalid, kind)
	}
	return s.repo.ListByKind(ctx, kind)
}

// Delete removes an asset that is no longer referenced
func (s *AssetService) Delete(ctx context.Context, hash string) error {
	if err := s.repo.Delete(ctx, hash); err != nil {
		return err
	}

	s.log.Info("deleted asset", "hash", hash)
	return nil
}
