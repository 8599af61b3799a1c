// Package transient provides the short-TTL key-value cache wrapped around
// every outbound fetch. Keys are derived from the request URL; values are
// the raw JSON bodies. Expired entries are kept until overwritten so
// callers can serve stale data when the upstream is down.
package transient

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"sync"
	"time"
)

// Store is the cache contract. Get reports fresh=false for entries past
// their TTL but still returns the stale value when one exists.
type Store interface {
	Get(ctx context.Context, key string) (value []byte, fresh bool, err error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Key derives the cache key for a URL
func Key(url string) string {
	sum := md5.Sum([]byte(url))
	return "ge_" + hex.EncodeToString(sum[:])
}

type memoryEntry struct {
	value     []byte
	expiresAt time.Time
}

// MemoryStore is an in-process cache. It is the default store when no
// cache database is configured.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	now     func() time.Time
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

// Get returns the cached value for key, if any
func (m *MemoryStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	entry, ok := m.entries[key]
	if !ok {
		return nil, false, nil
	}
	return entry.value, m.now().Before(entry.expiresAt), nil
}

// Set stores a value under key with the given TTL
func (m *MemoryStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries[key] = memoryEntry{
		value:     append([]byte(nil), value...),
		expiresAt: m.now().Add(ttl),
	}
	return nil
}

// Delete removes a key
func (m *MemoryStore) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.entries, key)
	return nil
}

// Close is a no-op for the memory store
func (m *MemoryStore) Close() error {
	return nil
}
