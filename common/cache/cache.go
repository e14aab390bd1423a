package cache

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/craftline/catalog-admin/common/logger"
	rediscommon "github.com/craftline/catalog-admin/common/redis"
)

// Cache is the read cache for ordered-collection snapshots, keyed by
// collection identity. Snapshots are whole-array replacements, never
// partial in-place edits.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Invalidate(ctx context.Context, key string) error
	Close() error
}

// MemoryCache is an in-memory cache implementation, used in tests and
// when Redis is unavailable
type MemoryCache struct {
	data map[string]*cacheEntry
	mu   sync.RWMutex
	log  *logger.Logger
}

type cacheEntry struct {
	value     []byte
	expiresAt time.Time
}

// NewMemoryCache creates a new in-memory cache
func NewMemoryCache(log *logger.Logger) *MemoryCache {
	c := &MemoryCache{
		data: make(map[string]*cacheEntry),
		log:  log,
	}

	go c.cleanup()

	return c
}

// Get retrieves a snapshot from cache
func (c *MemoryCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, exists := c.data[key]
	if !exists {
		return nil, false, nil
	}

	if time.Now().After(entry.expiresAt) {
		return nil, false, nil
	}

	return entry.value, true, nil
}

// Set stores a snapshot with TTL
func (c *MemoryCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.data[key] = &cacheEntry{
		value:     value,
		expiresAt: time.Now().Add(ttl),
	}

	return nil
}

// Invalidate removes a snapshot from cache
func (c *MemoryCache) Invalidate(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.data, key)
	return nil
}

// Close closes the cache
func (c *MemoryCache) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.data = nil
	c.log.Info("memory cache closed")
	return nil
}

// cleanup removes expired entries periodically
func (c *MemoryCache) cleanup() {
	ticker := time.NewTicker(1 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		c.mu.Lock()
		if c.data == nil {
			c.mu.Unlock()
			return
		}
		now := time.Now()
		for key, entry := range c.data {
			if now.After(entry.expiresAt) {
				delete(c.data, key)
			}
		}
		c.mu.Unlock()
	}
}

// RedisCache stores snapshots in Redis so every replica of the admin API
// observes the same optimistic state
type RedisCache struct {
	client     *rediscommon.Client
	keyPrefix  string
	defaultTTL time.Duration
	log        *logger.Logger
}

// NewRedisCache creates a Redis-backed collection cache
func NewRedisCache(client *rediscommon.Client, keyPrefix string, defaultTTL time.Duration, log *logger.Logger) *RedisCache {
	return &RedisCache{
		client:     client,
		keyPrefix:  keyPrefix,
		defaultTTL: defaultTTL,
		log:        log,
	}
}

func (c *RedisCache) namespaced(key string) string {
	return fmt.Sprintf("%s:collections:%s", c.keyPrefix, key)
}

// Get retrieves a snapshot from Redis
func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	val, err := c.client.Get(ctx, c.namespaced(key))
	if errors.Is(err, rediscommon.ErrKeyNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("cache get %s: %w", key, err)
	}
	return []byte(val), true, nil
}

// Set stores a snapshot with TTL (0 falls back to the default TTL)
func (c *RedisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = c.defaultTTL
	}
	if err := c.client.SetWithExpiry(ctx, c.namespaced(key), string(value), ttl); err != nil {
		return fmt.Errorf("cache set %s: %w", key, err)
	}
	return nil
}

// Invalidate removes a snapshot from Redis
func (c *RedisCache) Invalidate(ctx context.Context, key string) error {
	if err := c.client.Delete(ctx, c.namespaced(key)); err != nil {
		return fmt.Errorf("cache invalidate %s: %w", key, err)
	}
	return nil
}

// Close closes the cache (connection lifecycle is owned by the caller)
func (c *RedisCache) Close() error {
	c.log.Info("redis cache closed")
	return nil
}
