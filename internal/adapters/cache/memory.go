package cache

import (
	"context"
	"sync"
	"time"
)

// Backend is the store behind the cache.
type Backend interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, data []byte) error
}

// MemoryCache is a read-through cache with TTL support in front of a Backend.
// Writes go to the backend first and refresh the cached copy on success.
type MemoryCache struct {
	backend Backend
	blobs   sync.Map
	ttl     time.Duration
	stop    chan struct{}
	once    sync.Once
}

// cacheEntry holds a cached blob with expiration metadata.
type cacheEntry struct {
	data      []byte
	expiresAt time.Time
}

// NewMemoryCache creates a cache with the specified TTL in front of backend.
func NewMemoryCache(backend Backend, ttl time.Duration) *MemoryCache {
	c := &MemoryCache{
		backend: backend,
		ttl:     ttl,
		stop:    make(chan struct{}),
	}
	go c.cleanup(time.Minute)
	return c
}

// Get returns the cached blob if present and not expired, otherwise it reads
// the backend and caches the result. Backend errors are not cached.
func (c *MemoryCache) Get(ctx context.Context, key string) ([]byte, error) {
	if value, ok := c.blobs.Load(key); ok {
		entry := value.(*cacheEntry)
		if time.Now().Before(entry.expiresAt) {
			return entry.data, nil
		}
		c.blobs.Delete(key)
	}

	data, err := c.backend.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	c.set(key, data)
	return data, nil
}

// Put writes through to the backend.
func (c *MemoryCache) Put(ctx context.Context, key string, data []byte) error {
	if err := c.backend.Put(ctx, key, data); err != nil {
		c.blobs.Delete(key)
		return err
	}
	c.set(key, data)
	return nil
}

// Close stops the cleanup goroutine.
func (c *MemoryCache) Close() {
	c.once.Do(func() { close(c.stop) })
}

func (c *MemoryCache) set(key string, data []byte) {
	c.blobs.Store(key, &cacheEntry{
		data:      data,
		expiresAt: time.Now().Add(c.ttl),
	})
}

// cleanup periodically removes expired entries from the cache.
func (c *MemoryCache) cleanup(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-c.stop:
			return
		case now := <-ticker.C:
			c.blobs.Range(func(key, value any) bool {
				if now.After(value.(*cacheEntry).expiresAt) {
					c.blobs.Delete(key)
				}
				return true
			})
		}
	}
}
