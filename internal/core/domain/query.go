package domain

// QueryIntent classifies a user query into a closed set of categories.
// Intent biases context assembly; it is derived per query and never
// persisted.
type QueryIntent string

// The closed intent set.
const (
	// IntentDefinition covers "what is / define / meaning of" queries.
	IntentDefinition QueryIntent = "definition"

	// IntentCalculation covers numeric queries: rates, amounts,
	// percentages, computations.
	IntentCalculation QueryIntent = "calculation"

	// IntentGeneral is everything else.
	IntentGeneral QueryIntent = "general"
)

// ScoredChunk is one ranked retrieval hit.
type ScoredChunk struct {
	// Chunk is the matched retrieval unit.
	Chunk Chunk

	// Score is the relevance score, higher meaning closer match.
	Score float64
}

// QueryResult holds ranked matches for a query, already filtered by
// the caller's minimum score and ordered by descending relevance.
type QueryResult struct {
	Matches []ScoredChunk
}

// Empty reports whether the query matched nothing.
func (r QueryResult) Empty() bool {
	return len(r.Matches) == 0
}

// ContextMode records how the primary document was chosen.
type ContextMode string

const (
	// ModeAuto means keyword routing selected the primary document.
	ModeAuto ContextMode = "auto"

	// ModeSelected means the caller named the primary document.
	ModeSelected ContextMode = "selected"
)

// ContextResult is the final payload returned to the chat layer.
type ContextResult struct {
	// Primary is the catalog entry the context was built around.
	Primary CatalogEntry

	// Mode records whether routing or the caller chose Primary.
	Mode ContextMode

	// UsedDocIDs lists every document that contributed context,
	// primary first.
	UsedDocIDs []string

	// Context is the assembled, token-bounded context text.
	Context string
}
