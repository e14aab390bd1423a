package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/craftline/catalog-admin/cmd/catalog/models"
	"github.com/craftline/catalog-admin/cmd/catalog/repository"
	"github.com/craftline/catalog-admin/common/cache"
	"github.com/craftline/catalog-admin/common/logger"
	"github.com/craftline/catalog-admin/common/notify"
	"github.com/craftline/catalog-admin/common/reorder"
)

// ItemService handles item operations. Items carry loose JSONB blobs and
// a derived flow; ordering is per (profile, category) scope.
type ItemService struct {
	repo        *repository.ItemRepository
	cache       cache.Cache
	coordinator *reorder.Coordinator
	log         *logger.Logger
	ttl         time.Duration
}

// NewItemService creates a new item service
func NewItemService(repo *repository.ItemRepository, c cache.Cache, notifier notify.Notifier, log *logger.Logger, ttl time.Duration) *ItemService {
	return &ItemService{
		repo:        repo,
		cache:       c,
		coordinator: reorder.NewCoordinator(positionStore(repo.UpdatePositions), c, notifier, log, ttl),
		log:         log,
		ttl:         ttl,
	}
}

// Create creates a new item at the end of its scope's ordering
func (s *ItemService) Create(ctx context.Context, item *models.Item, username string) error {
	if item.Name == "" {
		return fmt.Errorf("%w: item name is required", models.ErrInvalid)
	}
	if err := item.ValidateBlobs(); err != nil {
		return fmt.Errorf("%w: %s", models.ErrInvalid, err)
	}

	item.ID = uuid.New()
	if username != "" {
		item.CreatedBy = &username
		item.UpdatedBy = &username
	}

	if err := s.repo.Create(ctx, item); err != nil {
		return err
	}

	s.invalidate(ctx, item.CategoryID, item.ProfileID)
	s.log.Info("created item",
		"id", item.ID,
		"name", item.Name,
		"flow", item.Flow(),
	)
	return nil
}

// Get retrieves an item by ID
func (s *ItemService) Get(ctx context.Context, id uuid.UUID) (*models.Item, error) {
	return s.repo.GetByID(ctx, id)
}

// List retrieves one scope's items in display order
func (s *ItemService) List(ctx context.Context, categoryID, profileID *uuid.UUID) ([]*models.Item, error) {
	key := models.ItemsCollectionKey(categoryID, profileID)
	return listThroughCache(ctx, s.cache, s.log, key, s.ttl, func(ctx context.Context) ([]*models.Item, error) {
		return s.repo.List(ctx, categoryID, profileID)
	})
}

// Update modifies an existing item's editable fields
func (s *ItemService) Update(ctx context.Context, item *models.Item, username string) error {
	if item.Name == "" {
		return fmt.Errorf("%w: item name is required", models.ErrInvalid)
	}
	if err := item.ValidateBlobs(); err != nil {
		return fmt.Errorf("%w: %s", models.ErrInvalid, err)
	}

	if username != "" {
		item.UpdatedBy = &username
	}

	if err := s.repo.Update(ctx, item); err != nil {
		return err
	}

	s.invalidate(ctx, item.CategoryID, item.ProfileID)
	s.log.Info("updated item", "id", item.ID)
	return nil
}

// Delete removes an item; its scope's siblings close ranks
func (s *ItemService) Delete(ctx context.Context, id uuid.UUID) error {
	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.invalidate(ctx, item.CategoryID, item.ProfileID)
	s.log.Info("deleted item", "id", id)
	return nil
}

// Reorder moves an item within its scope and returns the optimistic
// arrangement
func (s *ItemService) Reorder(ctx context.Context, categoryID, profileID *uuid.UUID, sourceIndex, destinationIndex int) ([]*models.Item, error) {
	items, err := s.List(ctx, categoryID, profileID)
	if err != nil {
		return nil, err
	}

	key := models.ItemsCollectionKey(categoryID, profileID)
	reordered, err := s.coordinator.Reorder(ctx, key, asRecords(items), sourceIndex, destinationIndex)
	if err != nil {
		return nil, err
	}

	return fromRecords[*models.Item](reordered), nil
}

// Drain blocks until pending reorder persists have completed
func (s *ItemService) Drain() {
	s.coordinator.Wait()
}

func (s *ItemService) invalidate(ctx context.Context, categoryID, profileID *uuid.UUID) {
	key := models.ItemsCollectionKey(categoryID, profileID)
	if err := s.cache.Invalidate(ctx, key); err != nil {
		s.log.Warn("failed to invalidate item collection", "collection", key, "error", err)
	}
}
