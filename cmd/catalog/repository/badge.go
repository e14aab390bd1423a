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

// BadgeRepository handles database operations for badges. Badges order
// independently within their owning product.
type BadgeRepository struct {
	db *db.DB
}

// NewBadgeRepository creates a new badge repository
func NewBadgeRepository(db *db.DB) *BadgeRepository {
	return &BadgeRepository{db: db}
}

// Create inserts a new badge at the end of its product's ordering
func (r *BadgeRepository) Create(ctx context.Context, badge *models.Badge) error {
	query := `
		INSERT INTO badge (id, product_id, label, icon_hash, "position",
		                   created_by, updated_by)
		VALUES ($1, $2, $3, $4,
		        (SELECT COALESCE(MAX("position") + 1, 0) FROM badge WHERE product_id = $2),
		        $5, $5)
		RETURNING "position", created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		badge.ID,
		badge.ProductID,
		badge.Label,
		badge.IconHash,
		badge.CreatedBy,
	).Scan(&badge.Position, &badge.CreatedAt, &badge.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to create badge: %w", err)
	}

	return nil
}

// GetByID retrieves a badge by ID
func (r *BadgeRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Badge, error) {
	query := `
		SELECT id, product_id, label, icon_hash, "position",
		       created_by, updated_by, created_at, updated_at
		FROM badge
		WHERE id = $1
	`

	badge := &models.Badge{}
	err := r.db.QueryRow(ctx, query, id).Scan(
		&badge.ID,
		&badge.ProductID,
		&badge.Label,
		&badge.IconHash,
		&badge.Position,
		&badge.CreatedBy,
		&badge.UpdatedBy,
		&badge.CreatedAt,
		&badge.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get badge: %w", err)
	}

	return badge, nil
}

// List retrieves one product's badges in display order
func (r *BadgeRepository) List(ctx context.Context, productID uuid.UUID) ([]*models.Badge, error) {
	query := `
		SELECT id, product_id, label, icon_hash, "position",
		       created_by, updated_by, created_at, updated_at
		FROM badge
		WHERE product_id = $1
		ORDER BY "position" ASC, created_at ASC
	`

	rows, err := r.db.Query(ctx, query, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to list badges: %w", err)
	}
	defer rows.Close()

	var badges []*models.Badge
	for rows.Next() {
		badge := &models.Badge{}
		err := rows.Scan(
			&badge.ID,
			&badge.ProductID,
			&badge.Label,
			&badge.IconHash,
			&badge.Position,
			&badge.CreatedBy,
			&badge.UpdatedBy,
			&badge.CreatedAt,
			&badge.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan badge: %w", err)
		}
		badges = append(badges, badge)
	}

	return badges, rows.Err()
}

// Update modifies an existing badge's editable fields
func (r *BadgeRepository) Update(ctx context.Context, badge *models.Badge) error {
	query := `
		UPDATE badge
		SET label = $2, icon_hash = $3, updated_by = $4, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`

	err := r.db.QueryRow(ctx, query,
		badge.ID,
		badge.Label,
		badge.IconHash,
		badge.UpdatedBy,
	).Scan(&badge.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.ErrNotFound
		}
		return fmt.Errorf("failed to update badge: %w", err)
	}

	return nil
}

// Delete removes a badge and closes the gap within its product
func (r *BadgeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithinTx(ctx, func(tx pgx.Tx) error {
		var position int
		var productID uuid.UUID
		err := tx.QueryRow(ctx,
			`DELETE FROM badge WHERE id = $1 RETURNING "position", product_id`, id,
		).Scan(&position, &productID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return models.ErrNotFound
			}
			return fmt.Errorf("failed to delete badge: %w", err)
		}

		_, err = tx.Exec(ctx,
			`UPDATE badge SET "position" = "position" - 1 WHERE product_id = $1 AND "position" > $2`,
			productID, position)
		if err != nil {
			return fmt.Errorf("failed to renumber badges: %w", err)
		}

		return nil
	})
}

// UpdatePositions persists a reorder batch atomically
func (r *BadgeRepository) UpdatePositions(ctx context.Context, updates []reorder.PositionUpdate) error {
	return r.db.WithinTx(ctx, func(tx pgx.Tx) error {
		for _, update := range updates {
			id, err := uuid.Parse(update.ID)
			if err != nil {
				return fmt.Errorf("invalid badge id %q: %w", update.ID, err)
			}

			result, err := tx.Exec(ctx,
				`UPDATE badge SET "position" = $2, updated_at = NOW() WHERE id = $1`,
				id, update.Position)
			if err != nil {
				return fmt.Errorf("failed to update badge position: %w", err)
			}
			if result.RowsAffected() == 0 {
				return fmt.Errorf("badge %s vanished during reorder: %w", update.ID, models.ErrNotFound)
			}
		}

		return nil
	})
}
