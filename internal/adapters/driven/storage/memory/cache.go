// Package memory provides an in-memory document cache for tests and
// for degraded operation when the durable store cannot be opened.
package memory

import (
	"context"
	"sync"

	"github.com/Franklivania/tax-yasef-sub001/internal/core/domain"
	"github.com/Franklivania/tax-yasef-sub001/internal/core/ports/driven"
)

// Ensure Cache implements the port.
var _ driven.DocumentCache = (*Cache)(nil)

// Cache is a thread-safe in-memory document cache.
// Records are immutable by contract, so pointers are shared.
type Cache struct {
	mu      sync.RWMutex
	records map[string]*domain.CachedRecord
}

// NewCache creates an empty in-memory cache.
func NewCache() *Cache {
	return &Cache{
		records: make(map[string]*domain.CachedRecord),
	}
}

// Get returns the cached record for the hash.
func (c *Cache) Get(_ context.Context, hash string) (*domain.CachedRecord, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	rec, ok := c.records[hash]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return rec, nil
}

// Put stores a record under its hash, overwriting any existing one.
func (c *Cache) Put(_ context.Context, rec *domain.CachedRecord) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.records[rec.Hash] = rec
	return nil
}

// Has reports whether a record exists for the hash.
func (c *Cache) Has(_ context.Context, hash string) (bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	_, ok := c.records[hash]
	return ok, nil
}

// Delete removes the record for the hash, if present.
func (c *Cache) Delete(_ context.Context, hash string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.records, hash)
	return nil
}

// Len returns the number of cached records. Useful for tests.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.records)
}
