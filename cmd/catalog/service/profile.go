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

// ProfileService handles profile operations
type ProfileService struct {
	repo        *repository.ProfileRepository
	cache       cache.Cache
	coordinator *reorder.Coordinator
	log         *logger.Logger
	ttl         time.Duration
}

// NewProfileService creates a new profile service
func NewProfileService(repo *repository.ProfileRepository, c cache.Cache, notifier notify.Notifier, log *logger.Logger, ttl time.Duration) *ProfileService {
	return &ProfileService{
		repo:        repo,
		cache:       c,
		coordinator: reorder.NewCoordinator(positionStore(repo.UpdatePositions), c, notifier, log, ttl),
		log:         log,
		ttl:         ttl,
	}
}

// Create creates a new profile at the end of the ordering
func (s *ProfileService) Create(ctx context.Context, profile *models.Profile, username string) error {
	if profile.Name == "" {
		return fmt.Errorf("%w: profile name is required", models.ErrInvalid)
	}

	profile.ID = uuid.New()
	if username != "" {
		profile.CreatedBy = &username
		profile.UpdatedBy = &username
	}

	if err := s.repo.Create(ctx, profile); err != nil {
		return err
	}

	s.invalidate(ctx)
	s.log.Info("created profile", "id", profile.ID, "name", profile.Name, "position", profile.Position)
	return nil
}

// Get retrieves a profile by ID
func (s *ProfileService) Get(ctx context.Context, id uuid.UUID) (*models.Profile, error) {
	return s.repo.GetByID(ctx, id)
}

// List retrieves all profiles in display order, served from the
// collection cache when a snapshot exists
func (s *ProfileService) List(ctx context.Context) ([]*models.Profile, error) {
	return listThroughCache(ctx, s.cache, s.log, models.ProfilesCollectionKey, s.ttl, s.repo.List)
}

// Update modifies an existing profile's editable fields
func (s *ProfileService) Update(ctx context.Context, profile *models.Profile, username string) error {
	if profile.Name == "" {
		return fmt.Errorf("%w: profile name is required", models.ErrInvalid)
	}

	if username != "" {
		profile.UpdatedBy = &username
	}

	if err := s.repo.Update(ctx, profile); err != nil {
		return err
	}

	s.invalidate(ctx)
	s.log.Info("updated profile", "id", profile.ID)
	return nil
}

// Delete removes a profile; the remaining profiles close ranks
func (s *ProfileService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.invalidate(ctx)
	s.log.Info("deleted profile", "id", id)
	return nil
}

// Reorder moves the profile at sourceIndex to destinationIndex and returns
// the optimistic arrangement. Persistence completes in the background.
func (s *ProfileService) Reorder(ctx context.Context, sourceIndex, destinationIndex int) ([]*models.Profile, error) {
	profiles, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	reordered, err := s.coordinator.Reorder(ctx, models.ProfilesCollectionKey, asRecords(profiles), sourceIndex, destinationIndex)
	if err != nil {
		return nil, err
	}

	return fromRecords[*models.Profile](reordered), nil
}

// Drain blocks until pending reorder persists have completed
func (s *ProfileService) Drain() {
	s.coordinator.Wait()
}

func (s *ProfileService) invalidate(ctx context.Context) {
	if err := s.cache.Invalidate(ctx, models.ProfilesCollectionKey); err != nil {
		s.log.Warn("failed to invalidate profile collection", "error", err)
	}
}
