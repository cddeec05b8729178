package driven

import (
	"context"

	"github.com/Franklivania/tax-yasef-sub001/internal/core/domain"
)

// DocumentCache is a durable key-value store keyed by content hash.
// Records, once written, are immutable; writing the same hash again is
// an idempotent overwrite (a hash collision is treated as a cache hit
// by design). No TTL or eviction is defined: retention is unbounded
// unless the caller deletes explicitly.
type DocumentCache interface {
	// Get returns the cached record for the hash.
	// Returns domain.ErrNotFound if no record exists.
	Get(ctx context.Context, hash string) (*domain.CachedRecord, error)

	// Put stores a record under its hash, overwriting any existing one.
	Put(ctx context.Context, rec *domain.CachedRecord) error

	// Has reports whether a record exists for the hash.
	Has(ctx context.Context, hash string) (bool, error)

	// Delete removes the record for the hash, if present.
	Delete(ctx context.Context, hash string) error
}
