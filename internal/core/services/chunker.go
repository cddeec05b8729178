package services

import (
	"strings"

	"github.com/google/uuid"

	"github.com/Franklivania/tax-yasef-sub001/internal/core/domain"
	"github.com/Franklivania/tax-yasef-sub001/internal/core/ports/driven"
)

// DefaultMaxChunkTokens is the default chunk size bound.
const DefaultMaxChunkTokens = 450

// Chunker walks a structure tree depth-first and emits bounded,
// section-path-tagged chunks. Small leaves are never merged across
// parents, so every chunk stays attributable to one node.
type Chunker struct {
	maxTokens int
	counter   driven.TokenCounter
}

// ChunkerOption configures the chunker.
type ChunkerOption func(*Chunker)

// WithMaxTokens sets the maximum estimated token count per chunk.
func WithMaxTokens(n int) ChunkerOption {
	return func(c *Chunker) {
		if n > 0 {
			c.maxTokens = n
		}
	}
}

// NewChunker creates a chunker using the given token counter.
func NewChunker(counter driven.TokenCounter, opts ...ChunkerOption) *Chunker {
	c := &Chunker{
		maxTokens: DefaultMaxChunkTokens,
		counter:   counter,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// MaxTokens returns the configured chunk bound.
func (c *Chunker) MaxTokens() int {
	return c.maxTokens
}

// Chunk emits the chunks for a structure tree in document order.
// A node's text is split into multiple chunks when it exceeds the
// bound, preferring sentence boundaries.
func (c *Chunker) Chunk(root *domain.StructureNode) []domain.Chunk {
	var chunks []domain.Chunk
	position := 0

	root.Walk(func(n *domain.StructureNode) {
		if strings.TrimSpace(n.Text) == "" {
			return
		}
		for _, content := range c.split(n.Text) {
			chunks = append(chunks, domain.Chunk{
				ID:          uuid.New().String(),
				Content:     content,
				SectionPath: append([]string{}, n.SectionPath...),
				TokenCount:  c.counter.Count(content),
				NodeType:    n.Type,
				Position:    position,
			})
			position++
		}
	})

	return chunks
}

// split packs sentences into pieces that stay under the token bound.
func (c *Chunker) split(text string) []string {
	if c.counter.Count(text) <= c.maxTokens {
		return []string{strings.TrimSpace(text)}
	}

	var pieces []string
	var cur []string
	curTokens := 0

	flush := func() {
		if len(cur) > 0 {
			pieces = append(pieces, strings.Join(cur, " "))
			cur = nil
			curTokens = 0
		}
	}

	for _, sentence := range splitSentences(text) {
		// Counting the joining space keeps the recount of a packed
		// piece at or under the running estimate.
		st := c.counter.Count(sentence + " ")
		if st > c.maxTokens {
			// A single oversized sentence is split at word
			// boundaries as a last resort.
			flush()
			pieces = append(pieces, c.splitWords(sentence)...)
			continue
		}
		if curTokens+st > c.maxTokens {
			flush()
		}
		cur = append(cur, sentence)
		curTokens += st
	}
	flush()

	return pieces
}

// splitWords hard-splits an oversized sentence into bounded pieces.
func (c *Chunker) splitWords(sentence string) []string {
	words := strings.Fields(sentence)
	var pieces []string
	var cur []string
	curTokens := 0

	for _, w := range words {
		wt := c.counter.Count(w + " ")
		if curTokens+wt > c.maxTokens && len(cur) > 0 {
			pieces = append(pieces, strings.Join(cur, " "))
			cur = nil
			curTokens = 0
		}
		cur = append(cur, w)
		curTokens += wt
	}
	if len(cur) > 0 {
		pieces = append(pieces, strings.Join(cur, " "))
	}
	return pieces
}

// splitSentences splits text at common sentence terminators.
func splitSentences(text string) []string {
	var sentences []string
	var current strings.Builder

	for _, r := range text {
		current.WriteRune(r)
		if r == '.' || r == '!' || r == '?' || r == '\n' {
			s := strings.TrimSpace(current.String())
			if s != "" {
				sentences = append(sentences, s)
			}
			current.Reset()
		}
	}
	if s := strings.TrimSpace(current.String()); s != "" {
		sentences = append(sentences, s)
	}

	return sentences
}
