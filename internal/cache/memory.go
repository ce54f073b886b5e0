package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Memory is an in-process cache for compose memoization. Vocabulary
// data never changes within a run, so entries default to no expiry.
type Memory struct {
	cache *gocache.Cache
}

// NewMemory creates a memory cache. ttl of zero means entries never
// expire.
func NewMemory(ttl time.Duration) *Memory {
	if ttl == 0 {
		ttl = gocache.NoExpiration
	}
	return &Memory{cache: gocache.New(ttl, 10*time.Minute)}
}

// Get retrieves a cached value.
func (m *Memory) Get(key string) ([]byte, bool) {
	if val, found := m.cache.Get(key); found {
		return val.([]byte), true
	}
	return nil, false
}

// Set stores a value with the given TTL (zero uses the default).
func (m *Memory) Set(key string, value []byte, ttl time.Duration) error {
	m.cache.Set(key, value, ttl)
	return nil
}

// Delete removes a value.
func (m *Memory) Delete(key string) error {
	m.cache.Delete(key)
	return nil
}

// Clear removes all values.
func (m *Memory) Clear() error {
	m.cache.Flush()
	return nil
}
