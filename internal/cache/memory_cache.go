package cache

import (
	"context"
	"sync"
)

// MemoryFeedCache is an in-process FeedCache for tests and single instance runs
type MemoryFeedCache struct {
	mu      sync.Mutex
	version int64
	entries map[string]memoryEntry
}

type memoryEntry struct {
	version int64
	value   []byte
}

func NewMemoryFeedCache() *MemoryFeedCache {
	return &MemoryFeedCache{entries: make(map[string]memoryEntry)}
}

func (c *MemoryFeedCache) Get(_ context.Context, key string) ([]byte, int64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok || e.version != c.version {
		return nil, c.version, false
	}
	return e.value, c.version, true
}

// Set drops pages built under a version that has since been invalidated
func (c *MemoryFeedCache) Set(_ context.Context, key string, version int64, value []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if version != c.version {
		return
	}
	c.entries[key] = memoryEntry{version: version, value: value}
}

func (c *MemoryFeedCache) Invalidate(context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.version++
	c.entries = make(map[string]memoryEntry)
}

var _ FeedCache = (*MemoryFeedCache)(nil)
