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

// ItemRepository handles database operations for items. An item's scope,
// and therefore its ordering peer group, is the (profile_id, category_id)
// pair with NULLs treated as values.
type ItemRepository struct {
	db *db.DB
}

// NewItemRepository creates a new item repository
func NewItemRepository(db *db.DB) *ItemRepository {
	return &ItemRepository{db: db}
}

// Create inserts a new item at the end of its scope's ordering
func (r *ItemRepository) Create(ctx context.Context, item *models.Item) error {
	item.Normalize()

	query := `
		INSERT INTO item (id, name, description, category_id, profile_id,
		                  suitables, size, spec_info, "position", created_by, updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8,
		        (SELECT COALESCE(MAX("position") + 1, 0) FROM item
		         WHERE profile_id IS NOT DISTINCT FROM $5
		           AND category_id IS NOT DISTINCT FROM $4),
		        $9, $9)
		RETURNING "position", created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		item.ID,
		item.Name,
		item.Description,
		item.CategoryID,
		item.ProfileID,
		item.Suitables,
		item.Size,
		item.SpecInfo,
		item.CreatedBy,
	).Scan(&item.Position, &item.CreatedAt, &item.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to create item: %w", err)
	}

	return nil
}

// GetByID retrieves an item by ID
func (r *ItemRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Item, error) {
	query := `
		SELECT id, name, description, category_id, profile_id,
		       suitables, size, spec_info, "position",
		       created_by, updated_by, created_at, updated_at
		FROM item
		WHERE id = $1
	`

	item := &models.Item{}
	err := r.db.QueryRow(ctx, query, id).Scan(
		&item.ID,
		&item.Name,
		&item.Description,
		&item.CategoryID,
		&item.ProfileID,
		&item.Suitables,
		&item.Size,
		&item.SpecInfo,
		&item.Position,
		&item.CreatedBy,
		&item.UpdatedBy,
		&item.CreatedAt,
		&item.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get item: %w", err)
	}

	item.Normalize()
	return item, nil
}

// List retrieves the items of one scope in display order
func (r *ItemRepository) List(ctx context.Context, categoryID, profileID *uuid.UUID) ([]*models.Item, error) {
	query := `
		SELECT id, name, description, category_id, profile_id,
		       suitables, size, spec_info, "position",
		       created_by, updated_by, created_at, updated_at
		FROM item
		WHERE profile_id IS NOT DISTINCT FROM $2
		  AND category_id IS NOT DISTINCT FROM $1
		ORDER BY "position" ASC, created_at ASC
	`

	rows, err := r.db.Query(ctx, query, categoryID, profileID)
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	defer rows.Close()

	var items []*models.Item
	for rows.Next() {
		item := &models.Item{}
		err := rows.Scan(
			&item.ID,
			&item.Name,
			&item.Description,
			&item.CategoryID,
			&item.ProfileID,
			&item.Suitables,
			&item.Size,
			&item.SpecInfo,
			&item.Position,
			&item.CreatedBy,
			&item.UpdatedBy,
			&item.CreatedAt,
			&item.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		item.Normalize()
		items = append(items, item)
	}

	return items, rows.Err()
}

// Update modifies an existing item's editable fields. The scope pair is
// fixed at creation; moving an item between scopes is a delete and
// recreate from the caller's point of view.
func (r *ItemRepository) Update(ctx context.Context, item *models.Item) error {
	item.Normalize()

	query := `
		UPDATE item
		SET name = $2, description = $3, suitables = $4, size = $5,
		    spec_info = $6, updated_by = $7, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`

	err := r.db.QueryRow(ctx, query,
		item.ID,
		item.Name,
		item.Description,
		item.Suitables,
		item.Size,
		item.SpecInfo,
		item.UpdatedBy,
	).Scan(&item.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.ErrNotFound
		}
		return fmt.Errorf("failed to update item: %w", err)
	}

	return nil
}

// Delete removes an item and closes the gap within its scope
func (r *ItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithinTx(ctx, func(tx pgx.Tx) error {
		var position int
		var categoryID, profileID *uuid.UUID
		err := tx.QueryRow(ctx,
			`DELETE FROM item WHERE id = $1 RETURNING "position", category_id, profile_id`, id,
		).Scan(&position, &categoryID, &profileID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return models.ErrNotFound
			}
			return fmt.Errorf("failed to delete item: %w", err)
		}

		_, err = tx.Exec(ctx, `
			UPDATE item SET "position" = "position" - 1
			WHERE profile_id IS NOT DISTINCT FROM $1
			  AND category_id IS NOT DISTINCT FROM $2
			  AND "position" > $3`,
			profileID, categoryID, position)
		if err != nil {
			return fmt.Errorf("failed to renumber items: %w", err)
		}

		return nil
	})
}

// UpdatePositions persists a reorder batch atomically
func (r *ItemRepository) UpdatePositions(ctx context.Context, updates []reorder.PositionUpdate) error {
	return r.db.WithinTx(ctx, func(tx pgx.Tx) error {
		for _, update := range updates {
			id, err := uuid.Parse(update.ID)
			if err != nil {
				return fmt.Errorf("invalid item id %q: %w", update.ID, err)
			}

			result, err := tx.Exec(ctx,
				`UPDATE item SET "position" = $2, updated_at = NOW() WHERE id = $1`,
				id, update.Position)
			if err != nil {
				return fmt.Errorf("failed to update item position: %w", err)
			}
			if result.RowsAffected() == 0 {
				return fmt.Errorf("item %s vanished during reorder: %w", update.ID, models.ErrNotFound)
			}
		}

		return nil
	})
}
