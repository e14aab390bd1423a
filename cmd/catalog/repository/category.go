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

// CategoryRepository handles database operations for categories.
// Categories order independently within each profile scope; the global
// scope is profile_id IS NULL.
type CategoryRepository struct {
	db *db.DB
}

// NewCategoryRepository creates a new category repository
func NewCategoryRepository(db *db.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

// Create inserts a new category at the end of its scope's ordering
func (r *CategoryRepository) Create(ctx context.Context, category *models.Category) error {
	query := `
		INSERT INTO category (id, name, description, profile_id, cover_image_hash,
		                      "position", created_by, updated_by)
		VALUES ($1, $2, $3, $4, $5,
		        (SELECT COALESCE(MAX("position") + 1, 0) FROM category
		         WHERE profile_id IS NOT DISTINCT FROM $4),
		        $6, $6)
		RETURNING "position", created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		category.ID,
		category.Name,
		category.Description,
		category.ProfileID,
		category.CoverImageHash,
		category.CreatedBy,
	).Scan(&category.Position, &category.CreatedAt, &category.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to create category: %w", err)
	}

	return nil
}

// GetByID retrieves a category by ID
func (r *CategoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	query := `
		SELECT id, name, description, profile_id, cover_image_hash, "position",
		       created_by, updated_by, created_at, updated_at
		FROM category
		WHERE id = $1
	`

	category := &models.Category{}
	err := r.db.QueryRow(ctx, query, id).Scan(
		&category.ID,
		&category.Name,
		&category.Description,
		&category.ProfileID,
		&category.CoverImageHash,
		&category.Position,
		&category.CreatedBy,
		&category.UpdatedBy,
		&category.CreatedAt,
		&category.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get category: %w", err)
	}

	return category, nil
}

// List retrieves the categories of one scope in display order
func (r *CategoryRepository) List(ctx context.Context, profileID *uuid.UUID) ([]*models.Category, error) {
	query := `
		SELECT id, name, description, profile_id, cover_image_hash, "position",
		       created_by, updated_by, created_at, updated_at
		FROM category
		WHERE profile_id IS NOT DISTINCT FROM $1
		ORDER BY "position" ASC, created_at ASC
	`

	rows, err := r.db.Query(ctx, query, profileID)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	var categories []*models.Category
	for rows.Next() {
		category := &models.Category{}
		err := rows.Scan(
			&category.ID,
			&category.Name,
			&category.Description,
			&category.ProfileID,
			&category.CoverImageHash,
			&category.Position,
			&category.CreatedBy,
			&category.UpdatedBy,
			&category.CreatedAt,
			&category.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, category)
	}

	return categories, rows.Err()
}

// Update modifies an existing category's editable fields. The profile
// scope is fixed at creation and not updatable here.
func (r *CategoryRepository) Update(ctx context.Context, category *models.Category) error {
	query := `
		UPDATE category
		SET name = $2, description = $3, cover_image_hash = $4,
		    updated_by = $5, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`

	err := r.db.QueryRow(ctx, query,
		category.ID,
		category.Name,
		category.Description,
		category.CoverImageHash,
		category.UpdatedBy,
	).Scan(&category.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.ErrNotFound
		}
		return fmt.Errorf("failed to update category: %w", err)
	}

	return nil
}

// Delete removes a category and closes the gap within its scope
func (r *CategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithinTx(ctx, func(tx pgx.Tx) error {
		var position int
		var profileID *uuid.UUID
		err := tx.QueryRow(ctx,
			`DELETE FROM category WHERE id = $1 RETURNING "position", profile_id`, id,
		).Scan(&position, &profileID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return models.ErrNotFound
			}
			return fmt.Errorf("failed to delete category: %w", err)
		}

		_, err = tx.Exec(ctx, `
			UPDATE category SET "position" = "position" - 1
			WHERE profile_id IS NOT DISTINCT FROM $1 AND "position" > $2`,
			profileID, position)
		if err != nil {
			return fmt.Errorf("failed to renumber categories: %w", err)
		}

		return nil
	})
}

// UpdatePositions persists a reorder batch atomically
func (r *CategoryRepository) UpdatePositions(ctx context.Context, updates []reorder.PositionUpdate) error {
	return r.db.WithinTx(ctx, func(tx pgx.Tx) error {
		for _, update := range updates {
			id, err := uuid.Parse(update.ID)
			if err != nil {
				return fmt.Errorf("invalid category id %q: %w", update.ID, err)
			}

			result, err := tx.Exec(ctx,
				`UPDATE category SET "position" = $2, updated_at = NOW() WHERE id = $1`,
				id, update.Position)
			if err != nil {
				return fmt.Errorf("failed to update category position: %w", err)
			}
			if result.RowsAffected() == 0 {
				return fmt.Errorf("category %s vanished during reorder: %w", update.ID, models.ErrNotFound)
			}
		}

		return nil
	})
}
