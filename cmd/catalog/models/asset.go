package models

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

// AssetKind classifies what an uploaded file is used for
type AssetKind string

const (
	AssetKindCompanyProfile AssetKind = "company_profile"
	AssetKindCatalogue      AssetKind = "catalogue"
	AssetKindImage          AssetKind = "image"
	AssetKindDocument       AssetKind = "document"
	AssetKindIcon           AssetKind = "icon"
)

// Valid reports whether the kind is a known asset kind
func (k AssetKind) Valid() bool {
	switch k {
	case AssetKindCompanyProfile, AssetKindCatalogue, AssetKindImage, AssetKindDocument, AssetKindIcon:
		return true
	}
	return false
}

// Asset is a content-addressed uploaded file. Identical content uploaded
// twice maps to the same row.
// Maps to: asset table
type Asset struct {
	// SHA-256 of the content, hex encoded
	Hash string `db:"hash" json:"hash"`

	FileName  string    `db:"file_name" json:"file_name"`
	MediaType string    `db:"media_type" json:"media_type"`
	Kind      AssetKind `db:"kind" json:"kind"`
	SizeBytes int64     `db:"size_bytes" json:"size_bytes"`

	// Raw bytes; never serialized in list responses
	Content []byte `db:"content" json:"-"`

	CreatedBy *string   `db:"created_by" json:"created_by,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// NewAsset builds an asset from uploaded content, computing its hash
func NewAsset(fileName, mediaType string, kind AssetKind, content []byte, createdBy string) (*Asset, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("invalid asset kind: %s", kind)
	}
	if len(content) == 0 {
		return nil, fmt.Errorf("asset content is empty")
	}

	sum := sha256.Sum256(content)

	asset := &Asset{
		Hash:      hex.EncodeToString(sum[:]),
		FileName:  fileName,
		MediaType: mediaType,
		Kind:      kind,
		SizeBytes: int64(len(content)),
		Content:   content,
		CreatedAt: time.Now(),
	}
	if createdBy != "" {
		asset.CreatedBy = &createdBy
	}

	return asset, nil
}
