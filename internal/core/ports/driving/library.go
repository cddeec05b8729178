package driving

import (
	"context"

	"github.com/Franklivania/tax-yasef-sub001/internal/core/domain"
)

// LibraryService owns the catalog of approved documents, the loaded
// document registry and the single-flight loader, and composes
// multi-document context for the chat layer.
type LibraryService interface {
	// Catalog returns the read-only document catalog.
	Catalog() domain.Catalog

	// EnsureLoaded loads the document for the catalog id if it is not
	// loaded yet. Concurrent callers for the same id share a single
	// in-flight ingestion and all receive the same result or the same
	// failure. A failed load clears the in-flight marker so a later
	// call can retry.
	EnsureLoaded(ctx context.Context, id string) (*LoadedDocument, error)

	// Loaded returns the loaded document for the id, if present.
	Loaded(id string) (*LoadedDocument, bool)

	// RouteForQuery scores every catalog entry by keyword overlap
	// with the query and returns the best id, falling back to the
	// catalog default when no entry scores above the confidence
	// threshold.
	RouteForQuery(query string) string

	// BuildContext selects (or accepts) a primary document, loads and
	// queries it under the large token budget, opportunistically adds
	// at most one already-loaded secondary reference under the small
	// budget, and returns the assembled context. Empty retrieval
	// yields a placeholder notice, never an empty context.
	BuildContext(ctx context.Context, query, selectedID string) (*domain.ContextResult, error)
}
