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

// ProductRepository handles database operations for products
type ProductRepository struct {
	db *db.DB
}

// NewProductRepository creates a new product repository
func NewProductRepository(db *db.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// Create inserts a new product at the end of the ordering
func (r *ProductRepository) Create(ctx context.Context, product *models.Product) error {
	query := `
		INSERT INTO product (id, name, description, sku, is_active, premium,
		                     cover_image_hash, "position", created_by, updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7,
		        (SELECT COALESCE(MAX("position") + 1, 0) FROM product),
		        $8, $8)
		RETURNING "position", created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		product.ID,
		product.Name,
		product.Description,
		product.SKU,
		product.IsActive,
		product.Premium,
		product.CoverImageHash,
		product.CreatedBy,
	).Scan(&product.Position, &product.CreatedAt, &product.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}

	return nil
}

// GetByID retrieves a product by ID
func (r *ProductRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	query := `
		SELECT id, name, description, sku, is_active, premium, cover_image_hash,
		       "position", created_by, updated_by, created_at, updated_at
		FROM product
		WHERE id = $1
	`

	product := &models.Product{}
	err := r.db.QueryRow(ctx, query, id).Scan(
		&product.ID,
		&product.Name,
		&product.Description,
		&product.SKU,
		&product.IsActive,
		&product.Premium,
		&product.CoverImageHash,
		&product.Position,
		&product.CreatedBy,
		&product.UpdatedBy,
		&product.CreatedAt,
		&product.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	return product, nil
}

// List retrieves all products in display order
func (r *ProductRepository) List(ctx context.Context) ([]*models.Product, error) {
	query := `
		SELECT id, name, description, sku, is_active, premium, cover_image_hash,
		       "position", created_by, updated_by, created_at, updated_at
		FROM product
		ORDER BY "position" ASC, created_at ASC
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	var products []*models.Product
	for rows.Next() {
		product := &models.Product{}
		err := rows.Scan(
			&product.ID,
			&product.Name,
			&product.Description,
			&product.SKU,
			&product.IsActive,
			&product.Premium,
			&product.CoverImageHash,
			&product.Position,
			&product.CreatedBy,
			&product.UpdatedBy,
			&product.CreatedAt,
			&product.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, product)
	}

	return products, rows.Err()
}

// Update modifies an existing product's editable fields
func (r *ProductRepository) Update(ctx context.Context, product *models.Product) error {
	query := `
		UPDATE product
		SET name = $2, description = $3, sku = $4, is_active = $5,
		    premium = $6, cover_image_hash = $7, updated_by = $8, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`

	err := r.db.QueryRow(ctx, query,
		product.ID,
		product.Name,
		product.Description,
		product.SKU,
		product.IsActive,
		product.Premium,
		product.CoverImageHash,
		product.UpdatedBy,
	).Scan(&product.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.ErrNotFound
		}
		return fmt.Errorf("failed to update product: %w", err)
	}

	return nil
}

// Delete removes a product and closes the gap in the remaining ordering.
// Badges go with it via the cascade.
func (r *ProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithinTx(ctx, func(tx pgx.Tx) error {
		var position int
		err := tx.QueryRow(ctx, `DELETE FROM product WHERE id = $1 RETURNING "position"`, id).Scan(&position)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return models.ErrNotFound
			}
			return fmt.Errorf("failed to delete product: %w", err)
		}

		_, err = tx.Exec(ctx, `UPDATE product SET "position" = "position" - 1 WHERE "position" > $1`, position)
		if err != nil {
			return fmt.Errorf("failed to renumber products: %w", err)
		}

		return nil
	})
}

// UpdatePositions persists a reorder batch atomically
func (r *ProductRepository) UpdatePositions(ctx context.Context, updates []reorder.PositionUpdate) error {
	return r.db.WithinTx(ctx, func(tx pgx.Tx) error {
		for _, update := range updates {
			id, err := uuid.Parse(update.ID)
			if err != nil {
				return fmt.Errorf("invalid product id %q: %w", update.ID, err)
			}

			result, err := tx.Exec(ctx,
				`UPDATE product SET "position" = $2, updated_at = NOW() WHERE id = $1`,
				id, update.Position)
			if err != nil {
				return fmt.Errorf("failed to update product position: %w", err)
			}
			if result.RowsAffected() == 0 {
				return fmt.Errorf("product %s vanished during reorder: %w", update.ID, models.ErrNotFound)
			}
		}

		return nil
	})
}
