package driven

import "github.com/Franklivania/tax-yasef-sub001/internal/core/domain"

// Hit is a single search result from the index.
type Hit struct {
	// ChunkID is the matched chunk.
	ChunkID string

	// Score is the relevance score, higher meaning closer match.
	Score float64
}

// SearchIndex is an in-memory searchable structure over chunks.
// The index is derived and disposable: it is never persisted, and is
// rebuilt from cached chunks on load (rebuild is a linear tokenise
// pass, cheap relative to re-parsing the source).
type SearchIndex interface {
	// Search returns up to limit hits ordered by descending score.
	// Matching is keyword-based with a fuzzy fallback so minor
	// misspellings still surface results.
	Search(query string, limit int) []Hit
}

// IndexBuilder constructs a SearchIndex over a chunk list.
type IndexBuilder interface {
	Build(chunks []domain.Chunk) SearchIndex
}
