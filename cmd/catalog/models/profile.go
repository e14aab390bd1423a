package models

import (
	"time"

	"github.com/google/uuid"
)

// Profile is a company profile with its attached documents
// Maps to: profile table
type Profile struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	Description  string    `db:"description" json:"description,omitempty"`
	Website      string    `db:"website" json:"website,omitempty"`
	ContactEmail string    `db:"contact_email" json:"contact_email,omitempty"`

	// Content hashes of the attached PDFs (asset table)
	ProfilePDFHash   *string `db:"profile_pdf_hash" json:"profile_pdf_hash,omitempty"`
	CataloguePDFHash *string `db:"catalogue_pdf_hash" json:"catalogue_pdf_hash,omitempty"`

	IsActive bool `db:"is_active" json:"is_active"`

	// Zero-based position among all profiles
	Position int `db:"position" json:"position"`

	CreatedBy *string   `db:"created_by" json:"created_by,omitempty"`
	UpdatedBy *string   `db:"updated_by" json:"updated_by,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// RecordID implements reorder.Record
func (p *Profile) RecordID() string { return p.ID.String() }

// RecordPosition implements reorder.Record
func (p *Profile) RecordPosition() int { return p.Position }

// SetRecordPosition implements reorder.Record
func (p *Profile) SetRecordPosition(pos int) { p.Position = pos }

// ProfilesCollectionKey is the cache identity for the profile list
const ProfilesCollectionKey = "profiles"
