package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/craftline/catalog-admin/common/cache"
	"github.com/craftline/catalog-admin/common/logger"
	"github.com/craftline/catalog-admin/common/reorder"
)

// positionStore adapts a repository position-batch function to
// reorder.Store. The collection key is dropped: each repository already
// knows its table, and the update IDs carry the row identity.
type positionStore func(ctx context.Context, updates []reorder.PositionUpdate) error

// PersistPositions implements reorder.Store
func (f positionStore) PersistPositions(ctx context.Context, _ string, updates []reorder.PositionUpdate) error {
	return f(ctx, updates)
}

// asRecords widens a typed entity slice to the coordinator's record view
func asRecords[T reorder.Record](entities []T) []reorder.Record {
	records := make([]reorder.Record, len(entities))
	for i, entity := range entities {
		records[i] = entity
	}
	return records
}

// fromRecords narrows the coordinator's result back to the entity type
func fromRecords[T reorder.Record](records []reorder.Record) []T {
	entities := make([]T, len(records))
	for i, record := range records {
		entities[i] = record.(T)
	}
	return entities
}

// listThroughCache serves a collection from its cached snapshot when one
// exists and falls back to the fetcher otherwise, repopulating the cache
// on the way out. Cache trouble degrades to a fetch, never to an error.
func listThroughCache[T any](
	ctx context.Context,
	c cache.Cache,
	log *logger.Logger,
	key string,
	ttl time.Duration,
	fetch func(context.Context) ([]T, error),
) ([]T, error) {
	raw, found, err := c.Get(ctx, key)
	if err != nil {
		log.Warn("collection cache read failed", "collection", key, "error", err)
	} else if found {
		var collection []T
		if err := json.Unmarshal(raw, &collection); err == nil {
			return collection, nil
		}
		log.Warn("collection cache snapshot unreadable, refetching", "collection", key, "error", err)
	}

	collection, err := fetch(ctx)
	if err != nil {
		return nil, err
	}

	if raw, err := json.Marshal(collection); err == nil {
		if err := c.Set(ctx, key, raw, ttl); err != nil {
			log.Warn("collection cache write failed", "collection", key, "error", err)
		}
	}

	return collection, nil
}
