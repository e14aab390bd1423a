package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/craftline/catalog-admin/cmd/catalog/models"
	"github.com/craftline/catalog-admin/cmd/catalog/repository"
	"github.com/craftline/catalog-admin/common/cache"
	"github.com/craftline/catalog-admin/common/filter"
	"github.com/craftline/catalog-admin/common/logger"
	"github.com/craftline/catalog-admin/common/notify"
	"github.com/craftline/catalog-admin/common/reorder"
)

// CertificateService handles certificate operations. Certificate lists
// support CEL filter expressions, and a reorder performed on a filtered
// view splices against the full collection so hidden certificates keep
// their relative order.
type CertificateService struct {
	repo        *repository.CertificateRepository
	cache       cache.Cache
	coordinator *reorder.Coordinator
	evaluator   *filter.Evaluator
	log         *logger.Logger
	ttl         time.Duration
}

// NewCertificateService creates a new certificate service
func NewCertificateService(repo *repository.CertificateRepository, c cache.Cache, notifier notify.Notifier, log *logger.Logger, ttl time.Duration) *CertificateService {
	return &CertificateService{
		repo:        repo,
		cache:       c,
		coordinator: reorder.NewCoordinator(positionStore(repo.UpdatePositions), c, notifier, log, ttl),
		evaluator:   filter.NewEvaluator(),
		log:         log,
		ttl:         ttl,
	}
}

// Create creates a new certificate at the end of the ordering
func (s *CertificateService) Create(ctx context.Context, cert *models.Certificate, username string) error {
	if cert.Name == "" {
		return fmt.Errorf("%w: certificate name is required", models.ErrInvalid)
	}

	cert.ID = uuid.New()
	if username != "" {
		cert.CreatedBy = &username
		cert.UpdatedBy = &username
	}

	if err := s.repo.Create(ctx, cert); err != nil {
		return err
	}

	s.invalidate(ctx)
	s.log.Info("created certificate", "id", cert.ID, "name", cert.Name)
	return nil
}

// Get retrieves a certificate by ID
func (s *CertificateService) Get(ctx context.Context, id uuid.UUID) (*models.Certificate, error) {
	return s.repo.GetByID(ctx, id)
}

// List retrieves all certificates in display order
func (s *CertificateService) List(ctx context.Context) ([]*models.Certificate, error) {
	return listThroughCache(ctx, s.cache, s.log, models.CertificatesCollectionKey, s.ttl, s.repo.List)
}

// ListFiltered retrieves the certificates matching a CEL filter
// expression, e.g. `record.name.contains("ISO")`. An empty expression
// returns the full list.
func (s *CertificateService) ListFiltered(ctx context.Context, expr string) ([]*models.Certificate, error) {
	certs, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	if expr == "" {
		return certs, nil
	}
	return s.applyFilter(expr, certs)
}

// Update modifies an existing certificate's editable fields
func (s *CertificateService) Update(ctx context.Context, cert *models.Certificate, username string) error {
	if cert.Name == "" {
		return fmt.Errorf("%w: certificate name is required", models.ErrInvalid)
	}

	if username != "" {
		cert.UpdatedBy = &username
	}

	if err := s.repo.Update(ctx, cert); err != nil {
		return err
	}

	s.invalidate(ctx)
	s.log.Info("updated certificate", "id", cert.ID)
	return nil
}

// Delete removes a certificate; the remaining certificates close ranks
func (s *CertificateService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.invalidate(ctx)
	s.log.Info("deleted certificate", "id", id)
	return nil
}

// Reorder moves a certificate by indices into the view the admin is
// looking at. With a filter expression the indices address the filtered
// view and the move is spliced against the full collection; without one
// they address the full list directly.
func (s *CertificateService) Reorder(ctx context.Context, expr string, sourceIndex, destinationIndex int) ([]*models.Certificate, error) {
	certs, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	full := asRecords(certs)

	var reordered []reorder.Record
	if expr == "" {
		reordered, err = s.coordinator.Reorder(ctx, models.CertificatesCollectionKey, full, sourceIndex, destinationIndex)
	} else {
		var visible []*models.Certificate
		visible, err = s.applyFilter(expr, certs)
		if err != nil {
			return nil, err
		}
		reordered, err = s.coordinator.ReorderFiltered(ctx, models.CertificatesCollectionKey, full, asRecords(visible), sourceIndex, destinationIndex)
	}
	if err != nil {
		return nil, err
	}

	return fromRecords[*models.Certificate](reordered), nil
}

// Drain blocks until pending reorder persists have completed
func (s *CertificateService) Drain() {
	s.coordinator.Wait()
}

func (s *CertificateService) applyFilter(expr string, certs []*models.Certificate) ([]*models.Certificate, error) {
	visible := make([]*models.Certificate, 0, len(certs))
	for _, cert := range certs {
		record, err := filter.RecordContext(cert)
		if err != nil {
			return nil, err
		}

		match, err := s.evaluator.Matches(expr, record)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", models.ErrInvalid, err)
		}
		if match {
			visible = append(visible, cert)
		}
	}
	return visible, nil
}

func (s *CertificateService) invalidate(ctx context.Context) {
	if err := s.cache.Invalidate(ctx, models.CertificatesCollectionKey); err != nil {
		s.log.Warn("failed to invalidate certificate collection", "error", err)
	}
}
