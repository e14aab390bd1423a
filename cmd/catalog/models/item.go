package models

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tidwall/gjson"
)

// Flow is an item's conceptual placement, derived from which of its two
// optional foreign keys are set. The derivation is the single source of
// truth; the discriminant is never stored.
type Flow string

const (
	FlowDirect          Flow = "direct"
	FlowCategory        Flow = "category"
	FlowProfile         Flow = "profile"
	FlowProfileCategory Flow = "profile_category"
)

// DeriveFlow computes an item's flow from its foreign keys.
// Precedence: profile+category > profile > category > direct.
func DeriveFlow(categoryID, profileID *uuid.UUID) Flow {
	switch {
	case profileID != nil && categoryID != nil:
		return FlowProfileCategory
	case profileID != nil:
		return FlowProfile
	case categoryID != nil:
		return FlowCategory
	default:
		return FlowDirect
	}
}

// emptyJSON is the stored form of an absent loose blob
var emptyJSON = json.RawMessage("{}")

// Item is a concrete catalog entry
// Maps to: item table
type Item struct {
	ID          uuid.UUID `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Description string    `db:"description" json:"description,omitempty"`

	CategoryID *uuid.UUID `db:"category_id" json:"category_id,omitempty"`
	ProfileID  *uuid.UUID `db:"profile_id" json:"profile_id,omitempty"`

	// Loose JSONB blobs; never nil once normalized, empty object when unset
	Suitables json.RawMessage `db:"suitables" json:"suitables"`
	Size      json.RawMessage `db:"size" json:"size"`
	SpecInfo  json.RawMessage `db:"spec_info" json:"spec_info"`

	// Zero-based position among siblings sharing the same scope
	Position int `db:"position" json:"position"`

	CreatedBy *string   `db:"created_by" json:"created_by,omitempty"`
	UpdatedBy *string   `db:"updated_by" json:"updated_by,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// Flow returns the item's derived flow
func (i *Item) Flow() Flow {
	return DeriveFlow(i.CategoryID, i.ProfileID)
}

// RecordID implements reorder.Record
func (i *Item) RecordID() string { return i.ID.String() }

// RecordPosition implements reorder.Record
func (i *Item) RecordPosition() int { return i.Position }

// SetRecordPosition implements reorder.Record
func (i *Item) SetRecordPosition(pos int) { i.Position = pos }

// Normalize applies the absence policy to the loose blobs: a nil or empty
// blob becomes the empty JSON object so readers never see SQL NULL.
func (i *Item) Normalize() {
	if len(i.Suitables) == 0 {
		i.Suitables = emptyJSON
	}
	if len(i.Size) == 0 {
		i.Size = emptyJSON
	}
	if len(i.SpecInfo) == 0 {
		i.SpecInfo = emptyJSON
	}
}

// ValidateBlobs checks that the loose blobs are well-formed JSON objects
func (i *Item) ValidateBlobs() error {
	for name, blob := range map[string]json.RawMessage{
		"suitables": i.Suitables,
		"size":      i.Size,
		"spec_info": i.SpecInfo,
	} {
		if len(blob) == 0 {
			continue
		}
		if !json.Valid(blob) {
			return fmt.Errorf("%s is not valid JSON", name)
		}
		if !gjson.ValidBytes(blob) || !gjson.ParseBytes(blob).IsObject() {
			return fmt.Errorf("%s must be a JSON object", name)
		}
	}
	return nil
}

// SpecField extracts one field from spec_info by gjson path, for list-view
// summaries. Returns "" when the path is absent.
func (i *Item) SpecField(path string) string {
	if len(i.SpecInfo) == 0 {
		return ""
	}
	return gjson.GetBytes(i.SpecInfo, path).String()
}

// ItemsCollectionKey is the cache identity for an item list scoped by its
// optional category and profile
func ItemsCollectionKey(categoryID, profileID *uuid.UUID) string {
	category := "none"
	if categoryID != nil {
		category = categoryID.String()
	}
	profile := "none"
	if profileID != nil {
		profile = profileID.String()
	}
	return fmt.Sprintf("items:profile:%s:category:%s", profile, category)
}
