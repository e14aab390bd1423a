package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchesSimpleExpression(t *testing.T) {
	e := NewEvaluator()

	record := map[string]interface{}{
		"name":   "ISO 9001",
		"issuer": "TUV",
	}

	ok, err := e.Matches(`record.name.contains("ISO")`, record)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = e.Matches(`record.name.contains("CE")`, record)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMatchesCompoundExpression(t *testing.T) {
	e := NewEvaluator()

	record := map[string]interface{}{
		"name":      "CE Marking",
		"issuer":    "",
		"is_active": true,
	}

	ok, err := e.Matches(`record.is_active && record.issuer == ""`, record)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestMatchesCachesCompiledPrograms(t *testing.T) {
	e := NewEvaluator()

	record := map[string]interface{}{"name": "a"}

	_, err := e.Matches(`record.name == "a"`, record)
	require.NoError(t, err)
	_, err = e.Matches(`record.name == "a"`, record)
	require.NoError(t, err)

	assert.Equal(t, 1, e.CacheSize())

	e.ClearCache()
	assert.Zero(t, e.CacheSize())
}

func TestMatchesRejectsNonBoolean(t *testing.T) {
	e := NewEvaluator()

	_, err := e.Matches(`record.name`, map[string]interface{}{"name": "a"})
	assert.Error(t, err)
}

func TestMatchesInvalidExpression(t *testing.T) {
	e := NewEvaluator()

	_, err := e.Matches(`record.name ===`, map[string]interface{}{"name": "a"})
	assert.Error(t, err)
}

func TestRecordContext(t *testing.T) {
	type certificate struct {
		Name   string `json:"name"`
		Issuer string `json:"issuer,omitempty"`
	}

	record, err := RecordContext(certificate{Name: "ISO 14001", Issuer: "DNV"})
	require.NoError(t, err)
	assert.Equal(t, "ISO 14001", record["name"])
	assert.Equal(t, "DNV", record["issuer"])
}
