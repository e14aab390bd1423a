package reorder

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/craftline/catalog-admin/common/logger"
)

// ErrIndexOutOfRange is returned when a drag addresses an index outside
// the collection it was performed on
var ErrIndexOutOfRange = errors.New("index out of range")

// Record is the orderable view over a domain entity. Implementations are
// pointer types so SetPosition mutates the entity that gets cached.
type Record interface {
	RecordID() string
	RecordPosition() int
	SetRecordPosition(pos int)
}

// PositionUpdate carries one id -> position assignment to persist
type PositionUpdate struct {
	ID       string `json:"id"`
	Position int    `json:"position"`
}

// Store is the backing record store. PersistPositions must apply the whole
// batch atomically: partial failure is treated as total failure.
type Store interface {
	PersistPositions(ctx context.Context, key string, updates []PositionUpdate) error
}

// Cache is the read cache the coordinator updates optimistically. Set
// replaces the whole cached snapshot; Invalidate discards it so the next
// read refetches the authoritative order.
type Cache interface {
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Invalidate(ctx context.Context, key string) error
}

// Notifier surfaces non-fatal outcome notifications to the user
type Notifier interface {
	Success(ctx context.Context, collection, message string)
	Failure(ctx context.Context, collection, message string)
}

// Coordinator translates a drag-and-drop gesture into a renumbered
// sequence plus a persistence request. The cache write happens
// synchronously before the store write is issued, so the caller always
// sees the intended order immediately; the store write runs in the
// background and a failure reverts the cache to server state.
type Coordinator struct {
	store    Store
	cache    Cache
	notifier Notifier
	log      *logger.Logger
	ttl      time.Duration

	mu      sync.Mutex
	seq     map[string]uint64
	pending sync.WaitGroup
}

// NewCoordinator creates a reorder coordinator
func NewCoordinator(store Store, cache Cache, notifier Notifier, log *logger.Logger, cacheTTL time.Duration) *Coordinator {
	return &Coordinator{
		store:    store,
		cache:    cache,
		notifier: notifier,
		log:      log,
		ttl:      cacheTTL,
		seq:      make(map[string]uint64),
	}
}

// Reorder moves the record at sourceIndex to destinationIndex within the
// displayed collection, renumbers every record to its zero-based position,
// writes the snapshot to the cache and persists the batch asynchronously.
// It returns the optimistic arrangement. A negative destinationIndex marks
// a cancelled drag and is a no-op, as is sourceIndex == destinationIndex.
func (c *Coordinator) Reorder(ctx context.Context, key string, collection []Record, sourceIndex, destinationIndex int) ([]Record, error) {
	if destinationIndex < 0 || sourceIndex == destinationIndex {
		return collection, nil
	}

	n := len(collection)
	if sourceIndex < 0 || sourceIndex >= n {
		return nil, fmt.Errorf("%w: source index %d for collection of %d", ErrIndexOutOfRange, sourceIndex, n)
	}
	if destinationIndex >= n {
		return nil, fmt.Errorf("%w: destination index %d for collection of %d", ErrIndexOutOfRange, destinationIndex, n)
	}

	reordered := splice(collection, sourceIndex, destinationIndex)
	return c.apply(ctx, key, reordered)
}

// ReorderFiltered handles a drag performed against a filtered projection of
// a larger collection. The indices address the visible slice, but the
// persisted order is computed against the full collection: the moved record
// is spliced next to its visible neighbor so hidden records keep their
// relative order.
func (c *Coordinator) ReorderFiltered(ctx context.Context, key string, full, visible []Record, sourceIndex, destinationIndex int) ([]Record, error) {
	if destinationIndex < 0 || sourceIndex == destinationIndex {
		return full, nil
	}

	n := len(visible)
	if sourceIndex < 0 || sourceIndex >= n {
		return nil, fmt.Errorf("%w: source index %d for visible collection of %d", ErrIndexOutOfRange, sourceIndex, n)
	}
	if destinationIndex >= n {
		return nil, fmt.Errorf("%w: destination index %d for visible collection of %d", ErrIndexOutOfRange, destinationIndex, n)
	}
	if n == 1 {
		return full, nil
	}

	newVisible := splice(visible, sourceIndex, destinationIndex)
	moved := newVisible[destinationIndex]

	// Remove the moved record from the full collection, then reinsert it
	// relative to its new visible neighbor.
	remaining := make([]Record, 0, len(full))
	for _, rec := range full {
		if rec.RecordID() != moved.RecordID() {
			remaining = append(remaining, rec)
		}
	}

	insertAt := len(remaining)
	if destinationIndex+1 < len(newVisible) {
		successor := newVisible[destinationIndex+1].RecordID()
		for i, rec := range remaining {
			if rec.RecordID() == successor {
				insertAt = i
				break
			}
		}
	} else {
		predecessor := newVisible[destinationIndex-1].RecordID()
		for i, rec := range remaining {
			if rec.RecordID() == predecessor {
				insertAt = i + 1
				break
			}
		}
	}

	reordered := make([]Record, 0, len(full))
	reordered = append(reordered, remaining[:insertAt]...)
	reordered = append(reordered, moved)
	reordered = append(reordered, remaining[insertAt:]...)

	return c.apply(ctx, key, reordered)
}

// Wait blocks until all in-flight persistence batches have completed.
// Used during shutdown and in tests.
func (c *Coordinator) Wait() {
	c.pending.Wait()
}

// apply renumbers the sequence, updates the cache synchronously and kicks
// off the background persist. Reorders for the same key are stamped with a
// monotonic sequence so a stale failure never clobbers a newer optimistic
// snapshot.
func (c *Coordinator) apply(ctx context.Context, key string, reordered []Record) ([]Record, error) {
	updates := make([]PositionUpdate, len(reordered))
	for i, rec := range reordered {
		rec.SetRecordPosition(i)
		updates[i] = PositionUpdate{ID: rec.RecordID(), Position: i}
	}

	snapshot, err := json.Marshal(reordered)
	if err != nil {
		return nil, fmt.Errorf("marshal collection snapshot: %w", err)
	}

	c.mu.Lock()
	c.seq[key]++
	seq := c.seq[key]
	c.mu.Unlock()

	// Cache write strictly precedes the store write. The user sees the
	// intended order even if the persist is still in flight.
	if err := c.cache.Set(ctx, key, snapshot, c.ttl); err != nil {
		return nil, fmt.Errorf("cache optimistic snapshot for %s: %w", key, err)
	}

	c.pending.Add(1)
	go c.persist(context.WithoutCancel(ctx), key, seq, updates)

	return reordered, nil
}

func (c *Coordinator) persist(ctx context.Context, key string, seq uint64, updates []PositionUpdate) {
	defer c.pending.Done()

	if err := c.store.PersistPositions(ctx, key, updates); err != nil {
		c.log.Error("failed to persist order", "collection", key, "seq", seq, "error", err)

		// Only revert if no newer reorder has been applied since; a stale
		// failure must not discard a newer optimistic snapshot.
		c.mu.Lock()
		latest := c.seq[key]
		c.mu.Unlock()

		if seq == latest {
			if err := c.cache.Invalidate(ctx, key); err != nil {
				c.log.Error("failed to invalidate collection after persist failure", "collection", key, "error", err)
			}
		}

		c.notifier.Failure(ctx, key, "failed to update order")
		return
	}

	c.log.Info("order persisted", "collection", key, "records", len(updates), "seq", seq)
	c.notifier.Success(ctx, key, "order updated")
}

// splice removes the record at src and reinserts it at dst
func splice(collection []Record, src, dst int) []Record {
	out := make([]Record, 0, len(collection))
	out = append(out, collection[:src]...)
	out = append(out, collection[src+1:]...)

	tail := make([]Record, 0, len(collection))
	tail = append(tail, out[:dst]...)
	tail = append(tail, collection[src])
	tail = append(tail, out[dst:]...)
	return tail
}
