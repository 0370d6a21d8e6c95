// Package eventcache remembers webhook deliveries that have already been
// processed so that redeliveries can be answered without touching the
// database. It is a best-effort layer, reconciliation itself is idempotent.
package eventcache

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache stores processed event references for a limited time.
type Cache interface {
	// Get returns the value stored for key and whether it exists.
	Get(ctx context.Context, key string) (string, bool)

	// Set stores value under key for the given TTL.
	Set(ctx context.Context, key, value string, ttl time.Duration) error
}

// New returns a redis backed cache when addr is set and an in-process
// cache otherwise.
func New(addr string) Cache {
	if addr != "" {
		return NewRedisCache(addr)
	}

	return NewMemoryCache()
}

// RedisCache is a Cache backed by a redis server.
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache returns a RedisCache connecting to the redis server at addr.
func NewRedisCache(addr string) *RedisCache {
	return &RedisCache{
		client: redis.NewClient(&redis.Options{
			Addr: addr,
		}),
	}
}

func (c *RedisCache) Get(ctx context.Context, key string) (string, bool) {
	value, err := c.client.Get(ctx, key).Result()
	if err != nil {
		return "", false
	}

	return value, true
}

func (c *RedisCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return c.client.Set(ctx, key, value, ttl).Err()
}

type memoryEntry struct {
	value     string
	expiresAt time.Time
}

// MemoryCache is an in-process Cache. It is used when no redis server is
// configured, for example in tests and local development.
type MemoryCache struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
}

// NewMemoryCache returns an empty MemoryCache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		entries: make(map[string]memoryEntry),
	}
}

func (c *MemoryCache) Get(_ context.Context, key string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		return "", false
	}

	if time.Now().After(entry.expiresAt) {
		delete(c.entries, key)
		return "", false
	}

	return entry.value, true
}

func (c *MemoryCache) Set(_ context.Context, key, value string, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = memoryEntry{
		value:     value,
		expiresAt: time.Now().Add(ttl),
	}

	return nil
}
