package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	jsonpatch "github.com/evanphx/json-patch/v5"
	"github.com/google/uuid"

	"github.com/craftline/catalog-admin/cmd/catalog/models"
	"github.com/craftline/catalog-admin/cmd/catalog/repository"
	"github.com/craftline/catalog-admin/common/cache"
	"github.com/craftline/catalog-admin/common/logger"
	"github.com/craftline/catalog-admin/common/notify"
	"github.com/craftline/catalog-admin/common/reorder"
	"github.com/craftline/catalog-admin/common/validation"
)

// ProductService handles product operations
type ProductService struct {
	repo        *repository.ProductRepository
	cache       cache.Cache
	coordinator *reorder.Coordinator
	validator   *validation.PatchValidator
	log         *logger.Logger
	ttl         time.Duration
}

// NewProductService creates a new product service
func NewProductService(repo *repository.ProductRepository, c cache.Cache, notifier notify.Notifier, log *logger.Logger, ttl time.Duration) *ProductService {
	return &ProductService{
		repo:        repo,
		cache:       c,
		coordinator: reorder.NewCoordinator(positionStore(repo.UpdatePositions), c, notifier, log, ttl),
		validator:   validation.NewPatchValidator(),
		log:         log,
		ttl:         ttl,
	}
}

// Create creates a new product at the end of the ordering
func (s *ProductService) Create(ctx context.Context, product *models.Product, username string) error {
	if product.Name == "" {
		return fmt.Errorf("%w: product name is required", models.ErrInvalid)
	}
	if product.Premium != nil && product.Premium.Tier == "" {
		return fmt.Errorf("%w: premium products need a tier", models.ErrInvalid)
	}

	product.ID = uuid.New()
	if username != "" {
		product.CreatedBy = &username
		product.UpdatedBy = &username
	}

	if err := s.repo.Create(ctx, product); err != nil {
		return err
	}

	s.invalidate(ctx)
	s.log.Info("created product", "id", product.ID, "name", product.Name, "premium", product.IsPremium())
	return nil
}

// Get retrieves a product by ID
func (s *ProductService) Get(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	return s.repo.GetByID(ctx, id)
}

// List retrieves all products in display order
func (s *ProductService) List(ctx context.Context) ([]*models.Product, error) {
	return listThroughCache(ctx, s.cache, s.log, models.ProductsCollectionKey, s.ttl, s.repo.List)
}

// Update replaces an existing product's editable fields
func (s *ProductService) Update(ctx context.Context, product *models.Product, username string) error {
	if product.Name == "" {
		return fmt.Errorf("%w: product name is required", models.ErrInvalid)
	}
	if product.Premium != nil && product.Premium.Tier == "" {
		return fmt.Errorf("%w: premium products need a tier", models.ErrInvalid)
	}

	if username != "" {
		product.UpdatedBy = &username
	}

	if err := s.repo.Update(ctx, product); err != nil {
		return err
	}

	s.invalidate(ctx)
	s.log.Info("updated product", "id", product.ID)
	return nil
}

// ApplyPatch applies an RFC 6902 patch document to a product. Identity,
// ordering and audit fields are shielded from the patch; everything else
// is fair game, including attaching or detaching the premium sub-record.
func (s *ProductService) ApplyPatch(ctx context.Context, id uuid.UUID, patchJSON []byte, username string) (*models.Product, error) {
	var operations []map[string]interface{}
	if err := json.Unmarshal(patchJSON, &operations); err != nil {
		return nil, fmt.Errorf("%w: malformed patch document", models.ErrInvalid)
	}

	if err := s.validator.ValidateOperations(operations); err != nil {
		return nil, fmt.Errorf("%w: %s", models.ErrInvalid, err)
	}

	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	patch, err := jsonpatch.DecodePatch(patchJSON)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", models.ErrInvalid, err)
	}

	original, err := json.Marshal(product)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal product: %w", err)
	}

	patched, err := patch.Apply(original)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", models.ErrInvalid, err)
	}

	updated := &models.Product{}
	if err := json.Unmarshal(patched, updated); err != nil {
		return nil, fmt.Errorf("%w: patch produced an invalid product", models.ErrInvalid)
	}
	if updated.Name == "" {
		return nil, fmt.Errorf("%w: product name is required", models.ErrInvalid)
	}
	if updated.Premium != nil && updated.Premium.Tier == "" {
		return nil, fmt.Errorf("%w: premium products need a tier", models.ErrInvalid)
	}

	// Shielded fields carry over from the stored row regardless of what
	// the patch document contained.
	updated.ID = product.ID
	updated.Position = product.Position
	updated.CreatedBy = product.CreatedBy
	updated.CreatedAt = product.CreatedAt
	if username != "" {
		updated.UpdatedBy = &username
	}

	if err := s.repo.Update(ctx, updated); err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	s.log.Info("patched product", "id", id, "operations", len(operations))
	return updated, nil
}

// Delete removes a product; the remaining products close ranks
func (s *ProductService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.invalidate(ctx)
	s.log.Info("deleted product", "id", id)
	return nil
}

// Reorder moves the product at sourceIndex to destinationIndex and returns
// the optimistic arrangement
func (s *ProductService) Reorder(ctx context.Context, sourceIndex, destinationIndex int) ([]*models.Product, error) {
	products, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	reordered, err := s.coordinator.Reorder(ctx, models.ProductsCollectionKey, asRecords(products), sourceIndex, destinationIndex)
	if err != nil {
		return nil, err
	}

	return fromRecords[*models.Product](reordered), nil
}

// Drain blocks until pending reorder persists have completed
func (s *ProductService) Drain() {
	s.coordinator.Wait()
}

func (s *ProductService) invalidate(ctx context.Context) {
	if err := s.cache.Invalidate(ctx, models.ProductsCollectionKey); err != nil {
		s.log.Warn("failed to invalidate product collection", "error", err)
	}
}
