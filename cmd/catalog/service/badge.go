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

// BadgeService handles badge operations. Badges live under a product and
// order within it.
type BadgeService struct {
	repo        *repository.BadgeRepository
	products    *repository.ProductRepository
	cache       cache.Cache
	coordinator *reorder.Coordinator
	log         *logger.Logger
	ttl         time.Duration
}

// NewBadgeService creates a new badge service
func NewBadgeService(repo *repository.BadgeRepository, products *repository.ProductRepository, c cache.Cache, notifier notify.Notifier, log *logger.Logger, ttl time.Duration) *BadgeService {
	return &BadgeService{
		repo:        repo,
		products:    products,
		cache:       c,
		coordinator: reorder.NewCoordinator(positionStore(repo.UpdatePositions), c, notifier, log, ttl),
		log:         log,
		ttl:         ttl,
	}
}

// Create creates a new badge at the end of its product's ordering
func (s *BadgeService) Create(ctx context.Context, badge *models.Badge, username string) error {
	if badge.Label == "" {
		return fmt.Errorf("%w: badge label is required", models.ErrInvalid)
	}

	// Resolve the owner first so a bad product id surfaces as a 404, not
	// a constraint violation.
	if _, err := s.products.GetByID(ctx, badge.ProductID); err != nil {
		return err
	}

	badge.ID = uuid.New()
	if username != "" {
		badge.CreatedBy = &username
		badge.UpdatedBy = &username
	}

	if err := s.repo.Create(ctx, badge); err != nil {
		return err
	}

	s.invalidate(ctx, badge.ProductID)
	s.log.Info("created badge", "id", badge.ID, "label", badge.Label, "product_id", badge.ProductID)
	return nil
}

// Get retrieves a badge by ID
func (s *BadgeService) Get(ctx context.Context, id uuid.UUID) (*models.Badge, error) {
	return s.repo.GetByID(ctx, id)
}

// List retrieves one product's badges in display order
func (s *BadgeService) List(ctx context.Context, productID uuid.UUID) ([]*models.Badge, error) {
	key := models.BadgesCollectionKey(productID)
	return listThroughCache(ctx, s.cache, s.log, key, s.ttl, func(ctx context.Context) ([]*models.Badge, error) {
		return s.repo.List(ctx, productID)
	})
}

// Update modifies an existing badge's editable fields
func (s *BadgeService) Update(ctx context.Context, badge *models.Badge, username string) error {
	if badge.Label == "" {
		return fmt.Errorf("%w: badge label is required", models.ErrInvalid)
	}

	if username != "" {
		badge.UpdatedBy = &username
	}

	if err := s.repo.Update(ctx, badge); err != nil {
		return err
	}

	s.invalidate(ctx, badge.ProductID)
	s.log.Info("updated badge", "id", badge.ID)
	return nil
}

// Delete removes a badge; the product's remaining badges close ranks
func (s *BadgeService) Delete(ctx context.Context, id uuid.UUID) error {
	badge, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.invalidate(ctx, badge.ProductID)
	s.log.Info("deleted badge", "id", id)
	return nil
}

// Reorder moves a badge within its product and returns the optimistic
// arrangement
func (s *BadgeService) Reorder(ctx context.Context, productID uuid.UUID, sourceIndex, destinationIndex int) ([]*models.Badge, error) {
	badges, err := s.List(ctx, productID)
	if err != nil {
		return nil, err
	}

	key := models.BadgesCollectionKey(productID)
	reordered, err := s.coordinator.Reorder(ctx, key, asRecords(badges), sourceIndex, destinationIndex)
	if err != nil {
		return nil, err
	}

	return fromRecords[*models.Badge](reordered), nil
}

// Drain blocks until pending reorder persists have completed
func (s *BadgeService) Drain() {
	s.coordinator.Wait()
}

func (s *BadgeService) invalidate(ctx context.Context, productID uuid.UUID) {
	key := models.BadgesCollectionKey(productID)
	if err := s.cache.Invalidate(ctx, key); err != nil {
		s.log.Warn("failed to invalidate badge collection", "collection", key, "error", err)
	}
}
