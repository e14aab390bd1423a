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

// ProfileRepository handles database operations for profiles
type ProfileRepository struct {
	db *db.DB
}

// NewProfileRepository creates a new profile repository
func NewProfileRepository(db *db.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// Create inserts a new profile at the end of the ordering
func (r *ProfileRepository) Create(ctx context.Context, profile *models.Profile) error {
	query := `
		INSERT INTO profile (id, name, description, website, contact_email,
		                     profile_pdf_hash, catalogue_pdf_hash, is_active,
		                     "position", created_by, updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8,
		        (SELECT COALESCE(MAX("position") + 1, 0) FROM profile),
		        $9, $9)
		RETURNING "position", created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		profile.ID,
		profile.Name,
		profile.Description,
		profile.Website,
		profile.ContactEmail,
		profile.ProfilePDFHash,
		profile.CataloguePDFHash,
		profile.IsActive,
		profile.CreatedBy,
	).Scan(&profile.Position, &profile.CreatedAt, &profile.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to create profile: %w", err)
	}

	return nil
}

// GetByID retrieves a profile by ID
func (r *ProfileRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Profile, error) {
	query := `
		SELECT id, name, description, website, contact_email,
		       profile_pdf_hash, catalogue_pdf_hash, is_active, "position",
		       created_by, updated_by, created_at, updated_at
		FROM profile
		WHERE id = $1
	`

	profile := &models.Profile{}
	err := r.db.QueryRow(ctx, query, id).Scan(
		&profile.ID,
		&profile.Name,
		&profile.Description,
		&profile.Website,
		&profile.ContactEmail,
		&profile.ProfilePDFHash,
		&profile.CataloguePDFHash,
		&profile.IsActive,
		&profile.Position,
		&profile.CreatedBy,
		&profile.UpdatedBy,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	return profile, nil
}

// List retrieves all profiles in display order
func (r *ProfileRepository) List(ctx context.Context) ([]*models.Profile, error) {
	query := `
		SELECT id, name, description, website, contact_email,
		       profile_pdf_hash, catalogue_pdf_hash, is_active, "position",
		       created_by, updated_by, created_at, updated_at
		FROM profile
		ORDER BY "position" ASC, created_at ASC
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	defer rows.Close()

	var profiles []*models.Profile
	for rows.Next() {
		profile := &models.Profile{}
		err := rows.Scan(
			&profile.ID,
			&profile.Name,
			&profile.Description,
			&profile.Website,
			&profile.ContactEmail,
			&profile.ProfilePDFHash,
			&profile.CataloguePDFHash,
			&profile.IsActive,
			&profile.Position,
			&profile.CreatedBy,
			&profile.UpdatedBy,
			&profile.CreatedAt,
			&profile.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan profile: %w", err)
		}
		profiles = append(profiles, profile)
	}

	return profiles, rows.Err()
}

// Update modifies an existing profile's editable fields
func (r *ProfileRepository) Update(ctx context.Context, profile *models.Profile) error {
	query := `
		UPDATE profile
		SET name = $2, description = $3, website = $4, contact_email = $5,
		    profile_pdf_hash = $6, catalogue_pdf_hash = $7, is_active = $8,
		    updated_by = $9, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`

	err := r.db.QueryRow(ctx, query,
		profile.ID,
		profile.Name,
		profile.Description,
		profile.Website,
		profile.ContactEmail,
		profile.ProfilePDFHash,
		profile.CataloguePDFHash,
		profile.IsActive,
		profile.UpdatedBy,
	).Scan(&profile.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.ErrNotFound
		}
		return fmt.Errorf("failed to update profile: %w", err)
	}

	return nil
}

// Delete removes a profile and closes the gap in the remaining ordering
func (r *ProfileRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithinTx(ctx, func(tx pgx.Tx) error {
		var position int
		err := tx.QueryRow(ctx, `DELETE FROM profile WHERE id = $1 RETURNING "position"`, id).Scan(&position)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return models.ErrNotFound
			}
			return fmt.Errorf("failed to delete profile: %w", err)
		}

		_, err = tx.Exec(ctx, `UPDATE profile SET "position" = "position" - 1 WHERE "position" > $1`, position)
		if err != nil {
			return fmt.Errorf("failed to renumber profiles: %w", err)
		}

		return nil
	})
}

// UpdatePositions persists a reorder batch atomically. Either every row
// takes its new position or none do.
func (r *ProfileRepository) UpdatePositions(ctx context.Context, updates []reorder.PositionUpdate) error {
	return r.db.WithinTx(ctx, func(tx pgx.Tx) error {
		for _, update := range updates {
			id, err := uuid.Parse(update.ID)
			if err != nil {
				return fmt.Errorf("invalid profile id %q: %w", update.ID, err)
			}

			result, err := tx.Exec(ctx,
				`UPDATE profile SET "position" = $2, updated_at = NOW() WHERE id = $1`,
				id, update.Position)
			if err != nil {
				return fmt.Errorf("failed to update profile position: %w", err)
			}
			if result.RowsAffected() == 0 {
				return fmt.Errorf("profile %s vanished during reorder: %w", update.ID, models.ErrNotFound)
			}
		}

		return nil
	})
}
