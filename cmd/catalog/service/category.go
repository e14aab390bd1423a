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

// CategoryService handles category operations. Every read and reorder is
// scoped: global categories and each profile's categories are separate
// collections with separate orderings.
type CategoryService struct {
	repo        *repository.CategoryRepository
	cache       cache.Cache
	coordinator *reorder.Coordinator
	log         *logger.Logger
	ttl         time.Duration
}

// NewCategoryService creates a new category service
func NewCategoryService(repo *repository.CategoryRepository, c cache.Cache, notifier notify.Notifier, log *logger.Logger, ttl time.Duration) *CategoryService {
	return &CategoryService{
		repo:        repo,
		cache:       c,
		coordinator: reorder.NewCoordinator(positionStore(repo.UpdatePositions), c, notifier, log, ttl),
		log:         log,
		ttl:         ttl,
	}
}

// Create creates a new category at the end of its scope's ordering
func (s *CategoryService) Create(ctx context.Context, category *models.Category, username string) error {
	if category.Name == "" {
		return fmt.Errorf("%w: category name is required", models.ErrInvalid)
	}

	category.ID = uuid.New()
	if username != "" {
		category.CreatedBy = &username
		category.UpdatedBy = &username
	}

	if err := s.repo.Create(ctx, category); err != nil {
		return err
	}

	s.invalidate(ctx, category.ProfileID)
	s.log.Info("created category", "id", category.ID, "name", category.Name, "profile_id", category.ProfileID)
	return nil
}

// Get retrieves a category by ID
func (s *CategoryService) Get(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	return s.repo.GetByID(ctx, id)
}

// List retrieves one scope's categories in display order
func (s *CategoryService) List(ctx context.Context, profileID *uuid.UUID) ([]*models.Category, error) {
	key := models.CategoriesCollectionKey(profileID)
	return listThroughCache(ctx, s.cache, s.log, key, s.ttl, func(ctx context.Context) ([]*models.Category, error) {
		return s.repo.List(ctx, profileID)
	})
}

// Update modifies an existing category's editable fields
func (s *CategoryService) Update(ctx context.Context, category *models.Category, username string) error {
	if category.Name == "" {
		return fmt.Errorf("%w: category name is required", models.ErrInvalid)
	}

	if username != "" {
		category.UpdatedBy = &username
	}

	if err := s.repo.Update(ctx, category); err != nil {
		return err
	}

	s.invalidate(ctx, category.ProfileID)
	s.log.Info("updated category", "id", category.ID)
	return nil
}

// Delete removes a category; its scope's siblings close ranks
func (s *CategoryService) Delete(ctx context.Context, id uuid.UUID) error {
	category, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.invalidate(ctx, category.ProfileID)
	s.log.Info("deleted category", "id", id)
	return nil
}

// Reorder moves a category within its scope and returns the optimistic
// arrangement
func (s *CategoryService) Reorder(ctx context.Context, profileID *uuid.UUID, sourceIndex, destinationIndex int) ([]*models.Category, error) {
	categories, err := s.List(ctx, profileID)
	if err != nil {
		return nil, err
	}

	key := models.CategoriesCollectionKey(profileID)
	reordered, err := s.coordinator.Reorder(ctx, key, asRecords(categories), sourceIndex, destinationIndex)
	if err != nil {
		return nil, err
	}

	return fromRecords[*models.Category](reordered), nil
}

// Drain blocks until pending reorder persists have completed
func (s *CategoryService) Drain() {
	s.coordinator.Wait()
}

func (s *CategoryService) invalidate(ctx context.Context, profileID *uuid.UUID) {
	key := models.CategoriesCollectionKey(profileID)
	if err := s.cache.Invalidate(ctx, key); err != nil {
		s.log.Warn("failed to invalidate category collection", "collection", key, "error", err)
	}
}
