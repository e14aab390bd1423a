package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateOperationsAccepted(t *testing.T) {
	v := NewPatchValidator()

	err := v.ValidateOperations([]map[string]interface{}{
		{"op": "replace", "path": "/name", "value": "New name"},
		{"op": "add", "path": "/premium", "value": map[string]interface{}{"tier": "gold"}},
		{"op": "remove", "path": "/description"},
		{"op": "test", "path": "/sku", "value": "SKU-1"},
	})
	assert.NoError(t, err)
}

func TestValidateOperationsEmpty(t *testing.T) {
	v := NewPatchValidator()
	assert.Error(t, v.ValidateOperations(nil))
}

func TestValidateOperationsImmutablePaths(t *testing.T) {
	v := NewPatchValidator()

	cases := []string{"/id", "/position", "/created_at", "/updated_by"}
	for _, path := range cases {
		err := v.ValidateOperations([]map[string]interface{}{
			{"op": "replace", "path": path, "value": "x"},
		})
		assert.Error(t, err, "path %s must be rejected", path)
	}
}

func TestValidateOperationsMissingValue(t *testing.T) {
	v := NewPatchValidator()

	err := v.ValidateOperations([]map[string]interface{}{
		{"op": "replace", "path": "/name"},
	})
	assert.Error(t, err)
}

func TestValidateOperationsUnsupportedOp(t *testing.T) {
	v := NewPatchValidator()

	err := v.ValidateOperations([]map[string]interface{}{
		{"op": "move", "path": "/name", "from": "/description"},
	})
	assert.Error(t, err)
}

func TestValidateOperationsBadPath(t *testing.T) {
	v := NewPatchValidator()

	err := v.ValidateOperations([]map[string]interface{}{
		{"op": "remove", "path": "name"},
	})
	assert.Error(t, err)
}
