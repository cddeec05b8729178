package driving

import (
	"github.com/Franklivania/tax-yasef-sub001/internal/core/domain"
	"github.com/Franklivania/tax-yasef-sub001/internal/core/ports/driven"
)

// QueryOptions configures a single document query.
type QueryOptions struct {
	// Limit is the maximum number of matches (default 10).
	Limit int

	// MinScore discards matches scoring below this value.
	MinScore float64
}

// LoadedDocument binds a catalog entry to its ingested document and
// the live search index rebuilt over its chunks.
type LoadedDocument struct {
	// Entry is the catalog record this document was loaded for.
	Entry domain.CatalogEntry

	// Doc is the ingestion result.
	Doc *domain.IngestedDocument

	// Index is the searchable structure over Doc.Chunks.
	Index driven.SearchIndex
}

// QueryService searches a loaded document and assembles AI-ready
// context under a token budget.
type QueryService interface {
	// DetectIntent classifies the query over surface patterns.
	DetectIntent(query string) domain.QueryIntent

	// Query runs the index search for the document and returns
	// matches ordered by descending relevance, filtered by MinScore.
	Query(doc *LoadedDocument, query string, opts QueryOptions) domain.QueryResult

	// AssembleContext concatenates chunk contents in relevance order,
	// each prefixed by its section path, until the next chunk would
	// exceed maxTokens. Chunks are never truncated: one that alone
	// overflows the remaining budget is skipped whole.
	AssembleContext(result domain.QueryResult, maxTokens int, intent domain.QueryIntent) string
}
