package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/craftline/catalog-admin/cmd/catalog/models"
	"github.com/craftline/catalog-admin/common/db"
	"github.com/craftline/catalog-admin/common/reorder"
)

// CertificateRepository handles database operations for certificates
type CertificateRepository struct {
	db *db.DB
}

// NewCertificateRepository creates a new certificate repository
func NewCertificateRepository(db *db.DB) *CertificateRepository {
	return &CertificateRepository{db: db}
}

// Create inserts a new certificate at the end of the ordering
func (r *CertificateRepository) Create(ctx context.Context, cert *models.Certificate) error {
	query := `
		INSERT INTO certificate (id, name, issuer, issued_on, document_hash,
		                         "position", created_by, updated_by)
		VALUES ($1, $2, $3, $4, $5,
		        (SELECT COALESCE(MAX("position") + 1, 0) FROM certificate),
		        $6, $6)
		RETURNING "position", created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		cert.ID,
		cert.Name,
		cert.Issuer,
		cert.IssuedOn,
		cert.DocumentHash,
		cert.CreatedBy,
	).Scan(&cert.Position, &cert.CreatedAt, &cert.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to create certificate: %w", err)
	}

	return nil
}

// GetByID retrieves a certificate by ID
func (r *CertificateRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Certificate, error) {
	query := `
		SELECT id, name, issuer, issued_on, document_hash, "position",
		       created_by, updated_by, created_at, updated_at
		FROM certificate
		WHERE id = $1
	`

	cert := &models.Certificate{}
	err := r.db.QueryRow(ctx, query, id).Scan(
		&cert.ID,
		&cert.Name,
		&cert.Issuer,
		&cert.IssuedOn,
		&cert.DocumentHash,
		&cert.Position,
		&cert.CreatedBy,
		&cert.UpdatedBy,
		&cert.CreatedAt,
		&cert.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get certificate: %w", err)
	}

	return cert, nil
}

// List retrieves all certificates in display order
func (r *CertificateRepository) List(ctx context.Context) ([]*models.Certificate, error) {
	query := `
		SELECT id, name, issuer, issued_on, document_hash, "position",
		       created_by, updated_by, created_at, updated_at
		FROM certificate
		ORDER BY "position" ASC, created_at ASC
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list certificates: %w", err)
	}
	defer rows.Close()

	var certs []*models.Certificate
	for rows.Next() {
		cert := &models.Certificate{}
		err := rows.Scan(
			&cert.ID,
			&cert.Name,
			&cert.Issuer,
			&cert.IssuedOn,
			&cert.DocumentHash,
			&cert.Position,
			&cert.CreatedBy,
			&cert.UpdatedBy,
			&cert.CreatedAt,
			&cert.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan certificate: %w", err)
		}
		certs = append(certs, cert)
	}

	return certs, rows.Err()
}

// Update modifies an existing certificate's editable fields
func (r *CertificateRepository) Update(ctx context.Context, cert *models.Certificate) error {
	query := `
		UPDATE certificate
		SET name = $2, issuer = $3, issued_on = $4, document_hash = $5,
		    updated_by = $6, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`

	err := r.db.QueryRow(ctx, query,
		cert.ID,
		cert.Name,
		cert.Issuer,
		cert.IssuedOn,
		cert.DocumentHash,
		cert.UpdatedBy,
	).Scan(&cert.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.ErrNotFound
		}
		return fmt.Errorf("failed to update certificate: %w", err)
	}

	return nil
}

// Delete removes a certificate and closes the gap in the remaining ordering
func (r *CertificateRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithinTx(ctx, func(tx pgx.Tx) error {
		var position int
		err := tx.QueryRow(ctx, `DELETE FROM certificate WHERE id = $1 RETURNING "position"`, id).Scan(&position)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return models.ErrNotFound
			}
			return fmt.Errorf("failed to delete certificate: %w", err)
		}

		_, err = tx.Exec(ctx, `UPDATE certificate SET "position" = "position" - 1 WHERE "position" > $1`, position)
		if err != nil {
			return fmt.Errorf("failed to renumber certificates: %w", err)
		}

		return nil
	})
}

// UpdatePositions persists a reorder batch atomically
func (r *CertificateRepository) UpdatePositions(ctx context.Context, updates []reorder.PositionUpdate) error {
	return r.db.WithinTx(ctx, func(tx pgx.Tx) error {
		for _, update := range updates {
			id, err := uuid.Parse(update.ID)
			if err != nil {
				return fmt.Errorf("invalid certificate id %q: %w", update.ID, err)
			}

			result, err := tx.Exec(ctx,
				`UPDATE certificate SET "position" = $2, updated_at = NOW() WHERE id = $1`,
				id, update.Position)
			if err != nil {
				return fmt.Errorf("failed to update certificate position: %w", err)
			}
			if result.RowsAffected() == 0 {
				return fmt.Errorf("certificate %s vanished during reorder: %w", update.ID, models.ErrNotFound)
			}
		}

		return nil
	})
}
