package models

import (
	"time"

	"github.com/google/uuid"
)

// Certificate is a company certificate with its attached document
// Maps to: certificate table
type Certificate struct {
	ID       uuid.UUID  `db:"id" json:"id"`
	Name     string     `db:"name" json:"name"`
	Issuer   string     `db:"issuer" json:"issuer,omitempty"`
	IssuedOn *time.Time `db:"issued_on" json:"issued_on,omitempty"`

	DocumentHash *string `db:"document_hash" json:"document_hash,omitempty"`

	// Zero-based position among all certificates
	Position int `db:"position" json:"position"`

	CreatedBy *string   `db:"created_by" json:"created_by,omitempty"`
	UpdatedBy *string   `db:"updated_by" json:"updated_by,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// RecordID implements reorder.Record
func (c *Certificate) RecordID() string { return c.ID.String() }

// RecordPosition implements reorder.Record
func (c *Certificate) RecordPosition() int { return c.Position }

// SetRecordPosition implements reorder.Record
func (c *Certificate) SetRecordPosition(pos int) { c.Position = pos }

// CertificatesCollectionKey is the cache identity for the certificate list
const CertificatesCollectionKey = "certificates"
