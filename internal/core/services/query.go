package services

import (
	"regexp"
	"strings"

	"github.com/Franklivania/tax-yasef-sub001/internal/core/domain"
	"github.com/Franklivania/tax-yasef-sub001/internal/core/ports/driven"
	"github.com/Franklivania/tax-yasef-sub001/internal/core/ports/driving"
	"github.com/Franklivania/tax-yasef-sub001/internal/logger"
)

// Ensure QueryEngine implements the interface.
var _ driving.QueryService = (*QueryEngine)(nil)

// PlaceholderNotice is returned in place of an empty context when a
// query matches nothing, so the caller never receives silent
// emptiness.
const PlaceholderNotice = "Document retrieval is still initializing; no reference passages are available yet. Please retry shortly."

// DefaultQueryLimit caps the number of matches when the caller does
// not set one.
const DefaultQueryLimit = 10

// QueryEngine classifies query intent, searches a loaded document's
// index, and assembles context under a token budget.
type QueryEngine struct {
	counter driven.TokenCounter
}

// NewQueryEngine creates a query engine using the given token counter
// for budget accounting.
func NewQueryEngine(counter driven.TokenCounter) *QueryEngine {
	return &QueryEngine{counter: counter}
}

var (
	calculationPattern = regexp.MustCompile(`(?i)\b(calculat\w*|comput\w*|how much|rate of|percentage|levy|charge\w*)\b|%`)
	definitionPattern  = regexp.MustCompile(`(?i)\b(what is|what are|define\w*|definition|meaning of|means)\b`)
)

// DetectIntent classifies the query over surface patterns into the
// closed intent set. Calculation cues take precedence so "how much is
// the rate" is not mistaken for a definition lookup.
func (q *QueryEngine) DetectIntent(query string) domain.QueryIntent {
	switch {
	case calculationPattern.MatchString(query):
		return domain.IntentCalculation
	case definitionPattern.MatchString(query):
		return domain.IntentDefinition
	default:
		return domain.IntentGeneral
	}
}

// Query searches the document's index and returns matches at or above
// MinScore, ordered by descending relevance.
func (q *QueryEngine) Query(doc *driving.LoadedDocument, query string, opts driving.QueryOptions) domain.QueryResult {
	limit := opts.Limit
	if limit <= 0 {
		limit = DefaultQueryLimit
	}

	byID := make(map[string]domain.Chunk, len(doc.Doc.Chunks))
	for _, c := range doc.Doc.Chunks {
		byID[c.ID] = c
	}

	hits := doc.Index.Search(query, limit)
	logger.Debug("Query %q: %d raw hits", query, len(hits))

	matches := make([]domain.ScoredChunk, 0, len(hits))
	for _, hit := range hits {
		if hit.Score < opts.MinScore {
			continue
		}
		chunk, ok := byID[hit.ChunkID]
		if !ok {
			continue
		}
		matches = append(matches, domain.ScoredChunk{Chunk: chunk, Score: hit.Score})
	}
	logger.Debug("Query %q: %d matches above min score %.3f", query, len(matches), opts.MinScore)

	return domain.QueryResult{Matches: matches}
}

// AssembleContext concatenates chunk contents in relevance order, each
// prefixed by its section path, until the budget is spent. A chunk
// that would overflow the remaining budget is skipped whole: context
// never contains a truncated chunk. An empty result yields an empty
// string; callers substitute PlaceholderNotice at the boundary.
func (q *QueryEngine) AssembleContext(result domain.QueryResult, maxTokens int, intent domain.QueryIntent) string {
	if result.Empty() || maxTokens <= 0 {
		return ""
	}

	matches := biasOrder(result.Matches, intent)

	var b strings.Builder
	used := 0
	for _, m := range matches {
		piece := formatBlock(m.Chunk)
		if b.Len() > 0 {
			piece = "\n\n" + piece
		}
		// The separator counts against the budget too.
		cost := q.counter.Count(piece)
		if used+cost > maxTokens {
			continue
		}
		b.WriteString(piece)
		used += cost
	}
	logger.Debug("Assembled context: ~%d/%d tokens", used, maxTokens)

	return b.String()
}

// formatBlock renders a chunk with its section path prefix so
// retrieval results stay attributable.
func formatBlock(c domain.Chunk) string {
	label := c.SectionLabel()
	if label == "" {
		return c.Content
	}
	return "§ " + label + "\n" + c.Content
}

// biasOrder stable-partitions matches so chunks fitting the query
// intent come first at equal relevance. Relevance order is preserved
// within each partition.
func biasOrder(matches []domain.ScoredChunk, intent domain.QueryIntent) []domain.ScoredChunk {
	var fits func(domain.ScoredChunk) bool
	switch intent {
	case domain.IntentDefinition:
		fits = func(m domain.ScoredChunk) bool {
			text := strings.ToLower(m.Chunk.SectionLabel() + " " + m.Chunk.Content)
			return strings.Contains(text, "interpretation") ||
				strings.Contains(text, "definition") ||
				strings.Contains(text, " means ")
		}
	case domain.IntentCalculation:
		fits = func(m domain.ScoredChunk) bool {
			return strings.ContainsAny(m.Chunk.Content, "0123456789%")
		}
	default:
		return matches
	}

	ordered := make([]domain.ScoredChunk, 0, len(matches))
	var rest []domain.ScoredChunk
	for _, m := range matches {
		if fits(m) {
			ordered = append(ordered, m)
		} else {
			rest = append(rest, m)
		}
	}
	return append(ordered, rest...)
}
