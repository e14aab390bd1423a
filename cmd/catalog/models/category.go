package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Category groups items, optionally scoped to a profile
// Maps to: category table
type Category struct {
	ID          uuid.UUID `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Description string    `db:"description" json:"description,omitempty"`

	// Optional profile scope; nil means a global category
	ProfileID *uuid.UUID `db:"profile_id" json:"profile_id,omitempty"`

	CoverImageHash *string `db:"cover_image_hash" json:"cover_image_hash,omitempty"`

	// Zero-based position among siblings with the same profile scope
	Position int `db:"position" json:"position"`

	CreatedBy *string   `db:"created_by" json:"created_by,omitempty"`
	UpdatedBy *string   `db:"updated_by" json:"updated_by,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// RecordID implements reorder.Record
func (c *Category) RecordID() string { return c.ID.String() }

// RecordPosition implements reorder.Record
func (c *Category) RecordPosition() int { return c.Position }

// SetRecordPosition implements reorder.Record
func (c *Category) SetRecordPosition(pos int) { c.Position = pos }

// CategoriesCollectionKey is the cache identity for a category list scoped
// to one profile (or the global scope when profileID is nil)
func CategoriesCollectionKey(profileID *uuid.UUID) string {
	if profileID == nil {
		return "categories:global"
	}
	return fmt.Sprintf("categories:profile:%s", profileID)
}
