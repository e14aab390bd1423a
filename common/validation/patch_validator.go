package validation

import (
	"fmt"
	"strings"
)

// PatchValidator validates RFC 6902 JSON Patch operations submitted against
// catalog entities before they are applied.
type PatchValidator struct{}

// NewPatchValidator creates a new patch validator
func NewPatchValidator() *PatchValidator {
	return &PatchValidator{}
}

// immutablePaths are entity fields a patch may never touch. Positions are
// only changed through the reorder endpoints so the renumbering invariant
// holds.
var immutablePaths = []string{
	"/id",
	"/position",
	"/created_at",
	"/updated_at",
	"/created_by",
	"/updated_by",
}

// ValidateOperations validates all patch operations
func (v *PatchValidator) ValidateOperations(operations []map[string]interface{}) error {
	if len(operations) == 0 {
		return fmt.Errorf("patch contains no operations")
	}

	for i, op := range operations {
		if err := v.validateOperation(op, i); err != nil {
			return err
		}
	}

	return nil
}

// validateOperation validates a single operation
func (v *PatchValidator) validateOperation(op map[string]interface{}, index int) error {
	opType, ok := op["op"].(string)
	if !ok {
		return fmt.Errorf("operation %d: missing or invalid 'op' field", index)
	}

	path, ok := op["path"].(string)
	if !ok {
		return fmt.Errorf("operation %d: missing or invalid 'path' field", index)
	}

	if !strings.HasPrefix(path, "/") {
		return fmt.Errorf("operation %d: path must start with '/', got %q", index, path)
	}

	for _, immutable := range immutablePaths {
		if path == immutable || strings.HasPrefix(path, immutable+"/") {
			return fmt.Errorf("operation %d: path %q is immutable", index, path)
		}
	}

	switch opType {
	case "add", "replace", "test":
		if _, ok := op["value"]; !ok {
			return fmt.Errorf("operation %d: 'value' required for %s operation", index, opType)
		}
	case "remove":
		// path only
	default:
		return fmt.Errorf("operation %d: unsupported op %q", index, opType)
	}

	return nil
}
