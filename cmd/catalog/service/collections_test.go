package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/craftline/catalog-admin/cmd/catalog/models"
	"github.com/craftline/catalog-admin/common/cache"
	"github.com/craftline/catalog-admin/common/logger"
	"github.com/craftline/catalog-admin/common/reorder"
)

func TestListThroughCachePopulatesAndServes(t *testing.T) {
	c := cache.NewMemoryCache(logger.New("error", "text"))
	defer c.Close()
	log := logger.New("error", "text")
	ctx := context.Background()

	fetches := 0
	fetch := func(context.Context) ([]*models.Profile, error) {
		fetches++
		return []*models.Profile{{Name: "acme", Position: 0}}, nil
	}

	first, err := listThroughCache(ctx, c, log, "profiles", time.Minute, fetch)
	require.NoError(t, err)
	require.Len(t, first, 1)
	assert.Equal(t, 1, fetches)

	// Second read is served from the snapshot
	second, err := listThroughCache(ctx, c, log, "profiles", time.Minute, fetch)
	require.NoError(t, err)
	require.Len(t, second, 1)
	assert.Equal(t, "acme", second[0].Name)
	assert.Equal(t, 1, fetches)
}

func TestListThroughCacheFetchErrorPropagates(t *testing.T) {
	c := cache.NewMemoryCache(logger.New("error", "text"))
	defer c.Close()

	wantErr := errors.New("db down")
	_, err := listThroughCache(context.Background(), c, logger.New("error", "text"), "profiles", time.Minute,
		func(context.Context) ([]*models.Profile, error) { return nil, wantErr })
	assert.ErrorIs(t, err, wantErr)
}

func TestListThroughCacheCorruptSnapshotRefetches(t *testing.T) {
	c := cache.NewMemoryCache(logger.New("error", "text"))
	defer c.Close()
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "profiles", []byte("not json"), time.Minute))

	out, err := listThroughCache(ctx, c, logger.New("error", "text"), "profiles", time.Minute,
		func(context.Context) ([]*models.Profile, error) {
			return []*models.Profile{{Name: "fresh"}}, nil
		})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "fresh", out[0].Name)
}

func TestRecordConversionRoundTrip(t *testing.T) {
	profiles := []*models.Profile{
		{Name: "a", Position: 0},
		{Name: "b", Position: 1},
	}

	records := asRecords(profiles)
	require.Len(t, records, 2)

	back := fromRecords[*models.Profile](records)
	assert.Equal(t, profiles, back)

	items := []*models.Item{
		{Name: "bolt", Position: 0},
		{Name: "washer", Position: 1},
	}
	itemsBack := fromRecords[*models.Item](asRecords(items))
	assert.Equal(t, items, itemsBack)
}

func TestEveryOrderableEntityIsARecord(t *testing.T) {
	entities := []reorder.Record{
		&models.Profile{},
		&models.Category{},
		&models.Product{},
		&models.Item{},
		&models.Certificate{},
		&models.Badge{},
	}

	for _, entity := range entities {
		entity.SetRecordPosition(3)
		assert.Equal(t, 3, entity.RecordPosition())
		assert.NotEmpty(t, entity.RecordID())
	}
}

func TestPositionStoreAdapter(t *testing.T) {
	var got []reorder.PositionUpdate
	store := positionStore(func(_ context.Context, updates []reorder.PositionUpdate) error {
		got = updates
		return nil
	})

	updates := []reorder.PositionUpdate{{ID: "x", Position: 0}}
	require.NoError(t, store.PersistPositions(context.Background(), "ignored-key", updates))
	assert.Equal(t, updates, got)
}
