package folders

import (
	"context"
	"sync"
)

// Cache maps folder cache keys to folder references. Entries never expire;
// Clear is the only way to remove them.
type Cache interface {
	// Get returns the cached reference for key.
	Get(ctx context.Context, key string) (ref string, ok bool, err error)
	// Put stores ref under key, replacing any previous value.
	Put(ctx context.Context, key, ref string) error
	// PutIfAbsent stores ref only when key has no entry and reports whether it did.
	PutIfAbsent(ctx context.Context, key, ref string) (bool, error)
	// Clear removes every entry.
	Clear(ctx context.Context) error
}

// MemoryCache is a process-local Cache. Every operation holds a single mutex
// for the duration of the map access only.
type MemoryCache struct {
	mu      sync.Mutex
	entries map[string]string
}

// NewMemoryCache creates an empty cache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{entries: make(map[string]string)}
}

func (c *MemoryCache) Get(_ context.Context, key string) (string, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	ref, ok := c.entries[key]
	return ref, ok, nil
}

func (c *MemoryCache) Put(_ context.Context, key, ref string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = ref
	return nil
}

func (c *MemoryCache) PutIfAbsent(_ context.Context, key, ref string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.entries[key]; ok {
		return false, nil
	}
	c.entries[key] = ref
	return true, nil
}

func (c *MemoryCache) Clear(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]string)
	return nil
}

// Len returns the number of cached entries.
func (c *MemoryCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Key builds the cache key of code under parent.
func Key(parent, code string) string {
	return parent + "/" + code
}
