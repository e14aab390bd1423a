package repository

import (
	"context"
	_ "embed"
	"fmt"
	"time"

	"github.com/craftline/catalog-admin/common/db"
)

//go:embed schema.sql
var schemaSQL string

// ApplySchema applies the embedded DDL. Safe to run at every startup; all
// statements are idempotent. Wired through the bootstrap DB init hook.
func ApplySchema(database *db.DB) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if _, err := database.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}

	return nil
}
