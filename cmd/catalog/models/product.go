package models

import (
	"time"

	"github.com/google/uuid"
)

// PremiumInfo is the conditional sub-record carried only by premium
// products. Stored as a nullable JSONB column; absence means the product
// is not premium.
type PremiumInfo struct {
	Tier           string `json:"tier"`
	Tagline        string `json:"tagline,omitempty"`
	HighlightColor string `json:"highlight_color,omitempty"`
}

// Product is a catalog product
// Maps to: product table
type Product struct {
	ID          uuid.UUID `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Description string    `db:"description" json:"description,omitempty"`
	SKU         string    `db:"sku" json:"sku,omitempty"`
	IsActive    bool      `db:"is_active" json:"is_active"`

	// Present only for premium products
	Premium *PremiumInfo `db:"premium" json:"premium,omitempty"`

	CoverImageHash *string `db:"cover_image_hash" json:"cover_image_hash,omitempty"`

	// Zero-based position among all products
	Position int `db:"position" json:"position"`

	CreatedBy *string   `db:"created_by" json:"created_by,omitempty"`
	UpdatedBy *string   `db:"updated_by" json:"updated_by,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// IsPremium reports whether the product carries a premium sub-record
func (p *Product) IsPremium() bool { return p.Premium != nil }

// RecordID implements reorder.Record
func (p *Product) RecordID() string { return p.ID.String() }

// RecordPosition implements reorder.Record
func (p *Product) RecordPosition() int { return p.Position }

// SetRecordPosition implements reorder.Record
func (p *Product) SetRecordPosition(pos int) { p.Position = pos }

// ProductsCollectionKey is the cache identity for the product list
const ProductsCollectionKey = "products"
