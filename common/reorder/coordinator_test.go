package reorder

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/craftline/catalog-admin/common/logger"
)

type testRecord struct {
	ID   string `json:"id"`
	Pos  int    `json:"position"`
	Name string `json:"name,omitempty"`
}

func (r *testRecord) RecordID() string    { return r.ID }
func (r *testRecord) RecordPosition() int { return r.Pos }
func (r *testRecord) SetRecordPosition(pos int) { r.Pos = pos }

type fakeStore struct {
	mu        sync.Mutex
	persisted [][]PositionUpdate
	failWith  error
	// when set, only batches whose first id matches fail
	failWhenFirstID string
	gate            chan struct{}
}

func (s *fakeStore) PersistPositions(ctx context.Context, key string, updates []PositionUpdate) error {
	if s.gate != nil {
		<-s.gate
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		if s.failWhenFirstID == "" || (len(updates) > 0 && updates[0].ID == s.failWhenFirstID) {
			return s.failWith
		}
	}
	s.persisted = append(s.persisted, updates)
	return nil
}

func (s *fakeStore) batches() [][]PositionUpdate {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([][]PositionUpdate(nil), s.persisted...)
}

type fakeCache struct {
	mu   sync.Mutex
	data map[string][]byte
	sets int
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: make(map[string][]byte)}
}

func (c *fakeCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = value
	c.sets++
	return nil
}

func (c *fakeCache) Invalidate(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
	return nil
}

func (c *fakeCache) snapshot(key string) ([]testRecord, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	raw, ok := c.data[key]
	if !ok {
		return nil, false
	}
	var records []testRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, false
	}
	return records, true
}

type fakeNotifier struct {
	mu        sync.Mutex
	successes []string
	failures  []string
}

func (n *fakeNotifier) Success(ctx context.Context, collection, message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.successes = append(n.successes, message)
}

func (n *fakeNotifier) Failure(ctx context.Context, collection, message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.failures = append(n.failures, message)
}

func (n *fakeNotifier) counts() (int, int) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.successes), len(n.failures)
}

func testCoordinator(store *fakeStore, cache *fakeCache, notifier *fakeNotifier) *Coordinator {
	log := logger.New("error", "json")
	return NewCoordinator(store, cache, notifier, log, time.Minute)
}

func records(ids ...string) []Record {
	out := make([]Record, len(ids))
	for i, id := range ids {
		out[i] = &testRecord{ID: id, Pos: i}
	}
	return out
}

func ids(collection []Record) []string {
	out := make([]string, len(collection))
	for i, rec := range collection {
		out[i] = rec.RecordID()
	}
	return out
}

func TestReorderNoOpSameIndex(t *testing.T) {
	store := &fakeStore{}
	cache := newFakeCache()
	notifier := &fakeNotifier{}
	c := testCoordinator(store, cache, notifier)

	collection := records("a", "b", "c")
	result, err := c.Reorder(context.Background(), "certs", collection, 1, 1)
	require.NoError(t, err)
	c.Wait()

	assert.Equal(t, []string{"a", "b", "c"}, ids(result))
	assert.Zero(t, cache.sets, "no-op drag must not touch the cache")
	assert.Empty(t, store.batches(), "no-op drag must not persist")
}

func TestReorderNoOpCancelledDrag(t *testing.T) {
	store := &fakeStore{}
	cache := newFakeCache()
	notifier := &fakeNotifier{}
	c := testCoordinator(store, cache, notifier)

	collection := records("a", "b", "c")
	result, err := c.Reorder(context.Background(), "certs", collection, 0, -1)
	require.NoError(t, err)
	c.Wait()

	assert.Equal(t, []string{"a", "b", "c"}, ids(result))
	assert.Empty(t, store.batches())
}

func TestReorderIndexOutOfRange(t *testing.T) {
	c := testCoordinator(&fakeStore{}, newFakeCache(), &fakeNotifier{})

	_, err := c.Reorder(context.Background(), "certs", records("a", "b"), 5, 0)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)

	_, err = c.Reorder(context.Background(), "certs", records("a", "b"), 0, 7)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
}

func TestReorderContiguity(t *testing.T) {
	store := &fakeStore{}
	cache := newFakeCache()
	c := testCoordinator(store, cache, &fakeNotifier{})

	// Positions start with gaps, as left behind by deletions
	collection := []Record{
		&testRecord{ID: "a", Pos: 0},
		&testRecord{ID: "b", Pos: 3},
		&testRecord{ID: "c", Pos: 7},
		&testRecord{ID: "d", Pos: 9},
	}

	result, err := c.Reorder(context.Background(), "certs", collection, 3, 1)
	require.NoError(t, err)
	c.Wait()

	require.Equal(t, []string{"a", "d", "b", "c"}, ids(result))
	for i, rec := range result {
		assert.Equal(t, i, rec.RecordPosition(), "positions must be contiguous from 0")
	}

	batches := store.batches()
	require.Len(t, batches, 1)
	for i, update := range batches[0] {
		assert.Equal(t, i, update.Position)
	}
}

func TestOptimisticVisibilityPrecedesPersistence(t *testing.T) {
	gate := make(chan struct{})
	store := &fakeStore{gate: gate}
	cache := newFakeCache()
	notifier := &fakeNotifier{}
	c := testCoordinator(store, cache, notifier)

	collection := records("a", "b", "c")
	_, err := c.Reorder(context.Background(), "certs", collection, 0, 2)
	require.NoError(t, err)

	// The store is still blocked; the cache must already hold the new order
	snapshot, ok := cache.snapshot("certs")
	require.True(t, ok, "optimistic snapshot must be cached before persist resolves")
	assert.Equal(t, "b", snapshot[0].ID)
	assert.Equal(t, "c", snapshot[1].ID)
	assert.Equal(t, "a", snapshot[2].ID)
	assert.Empty(t, store.batches())

	close(gate)
	c.Wait()

	require.Len(t, store.batches(), 1)
	successes, failures := notifier.counts()
	assert.Equal(t, 1, successes)
	assert.Zero(t, failures)
}

func TestRollbackOnPersistFailure(t *testing.T) {
	store := &fakeStore{failWith: errors.New("connection reset")}
	cache := newFakeCache()
	notifier := &fakeNotifier{}
	c := testCoordinator(store, cache, notifier)

	collection := records("a", "b", "c")
	result, err := c.Reorder(context.Background(), "certs", collection, 0, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "c", "a"}, ids(result), "optimistic order shown first")

	c.Wait()

	_, ok := cache.snapshot("certs")
	assert.False(t, ok, "failed persist must invalidate the optimistic snapshot")

	successes, failures := notifier.counts()
	assert.Zero(t, successes)
	assert.Equal(t, 1, failures, "failure notification must be raised")
}

func TestStaleFailureDoesNotClobberNewerReorder(t *testing.T) {
	gate := make(chan struct{})
	store := &fakeStore{failWith: errors.New("timeout"), failWhenFirstID: "b", gate: gate}
	cache := newFakeCache()
	notifier := &fakeNotifier{}
	c := testCoordinator(store, cache, notifier)

	// First drag produces [b, c, a]; its persist will fail, but slowly
	_, err := c.Reorder(context.Background(), "certs", records("a", "b", "c"), 0, 2)
	require.NoError(t, err)

	// Second drag lands before the first persist resolves
	_, err = c.Reorder(context.Background(), "certs", records("b", "c", "a"), 2, 0)
	require.NoError(t, err)

	close(gate)
	c.Wait()

	// The newer optimistic snapshot must survive the older failure
	snapshot, ok := cache.snapshot("certs")
	require.True(t, ok, "stale failure must not invalidate newer snapshot")
	assert.Equal(t, "a", snapshot[0].ID)
}

func TestFilteredReorderSplicesAgainstFullCollection(t *testing.T) {
	store := &fakeStore{}
	cache := newFakeCache()
	c := testCoordinator(store, cache, &fakeNotifier{})

	full := records("A", "B", "C", "D", "E")
	visible := []Record{full[1], full[3]} // filter shows [B, D]

	// Drag D before B in the filtered view
	result, err := c.ReorderFiltered(context.Background(), "certs", full, visible, 1, 0)
	require.NoError(t, err)
	c.Wait()

	assert.Equal(t, []string{"A", "D", "B", "C", "E"}, ids(result),
		"D lands immediately before B; A, C, E keep their relative order")

	batches := store.batches()
	require.Len(t, batches, 1)
	require.Len(t, batches[0], 5)
	for i, update := range batches[0] {
		assert.Equal(t, i, update.Position)
	}
}

func TestFilteredReorderMoveToEnd(t *testing.T) {
	store := &fakeStore{}
	c := testCoordinator(store, newFakeCache(), &fakeNotifier{})

	full := records("A", "B", "C", "D", "E")
	visible := []Record{full[1], full[3]} // [B, D]

	// Drag B after D in the filtered view
	result, err := c.ReorderFiltered(context.Background(), "certs", full, visible, 0, 1)
	require.NoError(t, err)
	c.Wait()

	assert.Equal(t, []string{"A", "C", "D", "B", "E"}, ids(result),
		"B lands immediately after D; hidden records are untouched")
}

func TestFilteredReorderSingleVisibleIsNoOp(t *testing.T) {
	store := &fakeStore{}
	c := testCoordinator(store, newFakeCache(), &fakeNotifier{})

	full := records("A", "B", "C")
	visible := []Record{full[1]}

	result, err := c.ReorderFiltered(context.Background(), "certs", full, visible, 0, 0)
	require.NoError(t, err)
	c.Wait()

	assert.Equal(t, []string{"A", "B", "C"}, ids(result))
	assert.Empty(t, store.batches())
}

func TestReorderEndToEnd(t *testing.T) {
	store := &fakeStore{}
	cache := newFakeCache()
	notifier := &fakeNotifier{}
	c := testCoordinator(store, cache, notifier)

	collection := []Record{
		&testRecord{ID: "x1", Pos: 0},
		&testRecord{ID: "x2", Pos: 1},
		&testRecord{ID: "x3", Pos: 2},
	}

	result, err := c.Reorder(context.Background(), "items:cat-1", collection, 0, 2)
	require.NoError(t, err)
	c.Wait()

	require.Equal(t, []string{"x2", "x3", "x1"}, ids(result))
	assert.Equal(t, 0, result[0].RecordPosition())
	assert.Equal(t, 1, result[1].RecordPosition())
	assert.Equal(t, 2, result[2].RecordPosition())

	batches := store.batches()
	require.Len(t, batches, 1)
	assert.Equal(t, []PositionUpdate{
		{ID: "x2", Position: 0},
		{ID: "x3", Position: 1},
		{ID: "x1", Position: 2},
	}, batches[0])

	successes, _ := notifier.counts()
	assert.Equal(t, 1, successes)
}
