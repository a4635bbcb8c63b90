package job

import (
	"context"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
)

// availableJobsCacheKey holds the serialized open-jobs listing.
const availableJobsCacheKey = "jobs:available"

// availableJobsCacheTTL bounds how stale the cached listing may get for
// mutations that bypass invalidation, such as new offers on an open job.
const availableJobsCacheTTL = 30 * time.Second

// ListingCache stores the serialized open-jobs listing so hot browsing
// traffic does not hit Mongo on every request.
type ListingCache interface {
	// Get returns the cached value, or ok=false on a miss.
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	// Set stores the value under the key for the given TTL.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// Del drops the key.
	Del(ctx context.Context, key string) error
}

// RedisListingCache implements ListingCache on the shared cache client.
type RedisListingCache struct {
	Client *redis.Client
}

// NewRedisListingCache creates a listing cache backed by the given client.
func NewRedisListingCache(client *redis.Client) *RedisListingCache {
	return &RedisListingCache{Client: client}
}

func (c *RedisListingCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	value, err := c.Client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return value, true, nil
}

func (c *RedisListingCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return c.Client.Set(ctx, key, value, ttl).Err()
}

func (c *RedisListingCache) Del(ctx context.Context, key string) error {
	return c.Client.Del(ctx, key).Err()
}

// MemoryListingCache is an in-memory ListingCache used as a test double. The
// Clock field lets tests control expiry; it defaults to time.Now.
type MemoryListingCache struct {
	mu      sync.Mutex
	entries map[string]memoryListingEntry
	Clock   func() time.Time
}

type memoryListingEntry struct {
	value  []byte
	expiry time.Time
}

// NewMemoryListingCache creates an empty in-memory listing cache.
func NewMemoryListingCache() *MemoryListingCache {
	return &MemoryListingCache{entries: make(map[string]memoryListingEntry)}
}

func (c *MemoryListingCache) now() time.Time {
	if c.Clock != nil {
		return c.Clock()
	}
	return time.Now()
}

func (c *MemoryListingCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok || c.now().After(entry.expiry) {
		delete(c.entries, key)
		return nil, false, nil
	}
	return entry.value, true, nil
}

func (c *MemoryListingCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = memoryListingEntry{value: value, expiry: c.now().Add(ttl)}
	return nil
}

func (c *MemoryListingCache) Del(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.entries, key)
	return nil
}
