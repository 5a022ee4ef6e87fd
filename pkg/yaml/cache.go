package yaml

import (
	"sync"
	"time"

	"github.com/shapestone/confyaml/pkg/value"
)

// Cache is the collaborator a Reader consults before re-parsing a file. A
// Cache implementation is keyed by file path; Reader compares Time(key)
// against the file's mtime to decide whether the cached Fetch result is
// still current.
type Cache interface {
	// Time returns the timestamp the entry was stored at, and whether an
	// entry exists at all.
	Time(key string) (time.Time, bool)
	// Fetch returns the cached value for key, and whether it was present.
	Fetch(key string) (value.Value, bool)
	// Store records value for key. A ttl of 0 means "no expiry, invalidate
	// only by comparing Time against the file's mtime".
	Store(key string, v value.Value, ttl time.Duration)
}

// MemoryCache is an in-process, mutex-guarded Cache with per-key TTL
// expiry, grounded on the timeout-tracking map pattern used by the pack's
// zookeeper service configer cache (cacheTimeout map[string]time.Time
// guarded by a sync.RWMutex).
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]cacheEntry
}

type cacheEntry struct {
	value    value.Value
	storedAt time.Time
	ttl      time.Duration
}

// NewMemoryCache returns an empty, ready-to-use MemoryCache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{entries: make(map[string]cacheEntry)}
}

func (c *MemoryCache) Time(key string) (time.Time, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[key]
	if !ok || c.expiredLocked(e) {
		return time.Time{}, false
	}
	return e.storedAt, true
}

func (c *MemoryCache) Fetch(key string) (value.Value, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[key]
	if !ok || c.expiredLocked(e) {
		return value.Value{}, false
	}
	return e.value, true
}

func (c *MemoryCache) Store(key string, v value.Value, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = cacheEntry{value: v, storedAt: currentTime(), ttl: ttl}
}

// expiredLocked must be called with mu held (read or write).
func (c *MemoryCache) expiredLocked(e cacheEntry) bool {
	if e.ttl <= 0 {
		return false
	}
	return currentTime().Sub(e.storedAt) > e.ttl
}

// currentTime is the single seam through which MemoryCache reads wall-clock
// time, kept as a var so tests can fake expiry without sleeping.
var currentTime = time.Now
