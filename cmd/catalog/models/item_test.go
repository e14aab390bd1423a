package models

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveFlowPrecedence(t *testing.T) {
	category := uuid.New()
	profile := uuid.New()

	tests := []struct {
		name       string
		categoryID *uuid.UUID
		profileID  *uuid.UUID
		want       Flow
	}{
		{"both set", &category, &profile, FlowProfileCategory},
		{"profile only", nil, &profile, FlowProfile},
		{"category only", &category, nil, FlowCategory},
		{"neither", nil, nil, FlowDirect},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DeriveFlow(tt.categoryID, tt.profileID))
		})
	}
}

func TestItemNormalizeAbsencePolicy(t *testing.T) {
	item := &Item{Name: "valve"}
	item.Normalize()

	assert.Equal(t, json.RawMessage("{}"), item.Suitables)
	assert.Equal(t, json.RawMessage("{}"), item.Size)
	assert.Equal(t, json.RawMessage("{}"), item.SpecInfo)

	// Existing blobs are left untouched
	item.SpecInfo = json.RawMessage(`{"material":"steel"}`)
	item.Normalize()
	assert.JSONEq(t, `{"material":"steel"}`, string(item.SpecInfo))
}

func TestItemValidateBlobs(t *testing.T) {
	item := &Item{
		Suitables: json.RawMessage(`{"indoor":true}`),
		Size:      json.RawMessage(`{"w":10,"h":20}`),
		SpecInfo:  json.RawMessage(`{"material":"steel"}`),
	}
	require.NoError(t, item.ValidateBlobs())

	item.SpecInfo = json.RawMessage(`not json`)
	assert.Error(t, item.ValidateBlobs())

	item.SpecInfo = json.RawMessage(`["array","not","object"]`)
	assert.Error(t, item.ValidateBlobs())
}

func TestItemSpecField(t *testing.T) {
	item := &Item{
		SpecInfo: json.RawMessage(`{"material":"steel","dimensions":{"weight_kg":4.5}}`),
	}

	assert.Equal(t, "steel", item.SpecField("material"))
	assert.Equal(t, "4.5", item.SpecField("dimensions.weight_kg"))
	assert.Equal(t, "", item.SpecField("missing"))
	assert.Equal(t, "", (&Item{}).SpecField("material"))
}

func TestItemsCollectionKeyScopes(t *testing.T) {
	category := uuid.New()
	profile := uuid.New()

	assert.Equal(t, "items:profile:none:category:none", ItemsCollectionKey(nil, nil))
	assert.Contains(t, ItemsCollectionKey(&category, nil), category.String())
	assert.Contains(t, ItemsCollectionKey(nil, &profile), profile.String())

	// Distinct scopes must never share a cache identity
	assert.NotEqual(t, ItemsCollectionKey(&category, nil), ItemsCollectionKey(nil, &profile))
}

func TestNewAsset(t *testing.T) {
	asset, err := NewAsset("catalogue.pdf", "application/pdf", AssetKindCatalogue, []byte("pdf-bytes"), "alice")
	require.NoError(t, err)
	assert.Len(t, asset.Hash, 64)
	assert.Equal(t, int64(9), asset.SizeBytes)
	require.NotNil(t, asset.CreatedBy)
	assert.Equal(t, "alice", *asset.CreatedBy)

	// Same content, same hash
	again, err := NewAsset("other-name.pdf", "application/pdf", AssetKindCatalogue, []byte("pdf-bytes"), "")
	require.NoError(t, err)
	assert.Equal(t, asset.Hash, again.Hash)
	assert.Nil(t, again.CreatedBy)

	_, err = NewAsset("x", "application/pdf", AssetKind("bogus"), []byte("y"), "")
	assert.Error(t, err)

	_, err = NewAsset("x", "application/pdf", AssetKindImage, nil, "")
	assert.Error(t, err)
}
