package db

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/craftline/catalog-admin/common/config"
	"github.com/craftline/catalog-admin/common/logger"
)

func TestNewRejectsInvertedPoolBounds(t *testing.T) {
	cfg := &config.Config{
		Database: config.DatabaseConfig{
			Host:     "localhost",
			Port:     5432,
			Database: "catalog",
			User:     "catalog",
			Password: "catalog",
			MaxConns: 2,
			MinConns: 10,
		},
	}

	pool, err := New(context.Background(), cfg, logger.New("error", "text"))
	assert.Nil(t, pool)
	assert.ErrorContains(t, err, "below min conns")
}
