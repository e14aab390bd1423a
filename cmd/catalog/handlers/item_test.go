package handlers

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/craftline/catalog-admin/cmd/catalog/models"
)

func TestItemViewsLiftSpecField(t *testing.T) {
	items := []*models.Item{
		{Name: "valve", SpecInfo: json.RawMessage(`{"material":"steel","weight":{"kg":1.2}}`)},
		{Name: "pipe"},
	}

	views := itemViews(items, "material")
	require.Len(t, views, 2)
	assert.Equal(t, "steel", views[0].SpecValue)
	assert.Equal(t, "", views[1].SpecValue)

	nested := itemViews(items, "weight.kg")
	assert.Equal(t, "1.2", nested[0].SpecValue)
}

func TestItemViewsWithoutSpecField(t *testing.T) {
	profileID := uuid.New()
	items := []*models.Item{
		{Name: "valve", ProfileID: &profileID, SpecInfo: json.RawMessage(`{"material":"steel"}`)},
	}

	views := itemViews(items, "")
	require.Len(t, views, 1)
	assert.Empty(t, views[0].SpecValue)
	assert.Equal(t, models.FlowProfile, views[0].Flow)
}
