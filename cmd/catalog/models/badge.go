package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Badge is a short label attached to one product
// Maps to: badge table
type Badge struct {
	ID        uuid.UUID `db:"id" json:"id"`
	ProductID uuid.UUID `db:"product_id" json:"product_id"`
	Label     string    `db:"label" json:"label"`

	IconHash *string `db:"icon_hash" json:"icon_hash,omitempty"`

	// Zero-based position among the product's badges
	Position int `db:"position" json:"position"`

	CreatedBy *string   `db:"created_by" json:"created_by,omitempty"`
	UpdatedBy *string   `db:"updated_by" json:"updated_by,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// RecordID implements reorder.Record
func (b *Badge) RecordID() string { return b.ID.String() }

// RecordPosition implements reorder.Record
func (b *Badge) RecordPosition() int { return b.Position }

// SetRecordPosition implements reorder.Record
func (b *Badge) SetRecordPosition(pos int) { b.Position = pos }

// BadgesCollectionKey is the cache identity for one product's badge list
func BadgesCollectionKey(productID uuid.UUID) string {
	return fmt.Sprintf("badges:product:%s", productID)
}
