package memindex

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Franklivania/tax-yasef-sub001/internal/core/domain"
)

func buildTestIndex() *index {
	chunks := []domain.Chunk{
		{
			ID:          "interp",
			SectionPath: []string{"PART I", "2. Interpretation"},
			Content:     "In this Act, company means any body corporate incorporated under the Companies Act.",
		},
		{
			ID:          "penalty",
			SectionPath: []string{"PART VI", "40. Penalty for offences"},
			Content:     "A person who fails to comply is liable on conviction to a penalty of 25,000 naira.",
		},
		{
			ID:          "rates",
			SectionPath: []string{"PART IV", "16. Rates of tax"},
			Content:     "Tax shall be charged at the rate of 30% upon the total profits of every company.",
		},
	}
	return NewBuilder().Build(chunks).(*index)
}

func TestSearch_RanksByRelevance(t *testing.T) {
	idx := buildTestIndex()

	hits := idx.Search("penalty for conviction", 10)

	require.NotEmpty(t, hits)
	assert.Equal(t, "penalty", hits[0].ChunkID)
	for i := 1; i < len(hits); i++ {
		assert.GreaterOrEqual(t, hits[i-1].Score, hits[i].Score)
	}
}

func TestSearch_SectionPathBoost(t *testing.T) {
	idx := buildTestIndex()

	// "rates" occurs only in a section title; the boost must still
	// surface the chunk under it first.
	hits := idx.Search("rates", 10)

	require.NotEmpty(t, hits)
	assert.Equal(t, "rates", hits[0].ChunkID)
}

func TestSearch_FuzzyFallbackForMisspellings(t *testing.T) {
	idx := buildTestIndex()

	exact := idx.Search("penalty", 10)
	fuzzy := idx.Search("penelty", 10)

	require.NotEmpty(t, exact)
	require.NotEmpty(t, fuzzy)
	assert.Equal(t, exact[0].ChunkID, fuzzy[0].ChunkID)
	// Fuzzy resolution carries a discount relative to the exact term.
	assert.Less(t, fuzzy[0].Score, exact[0].Score)
}

func TestSearch_ShortTermsNeverFuzzyMatch(t *testing.T) {
	idx := buildTestIndex()

	assert.Empty(t, idx.Search("zzqx", 10))
}

func TestSearch_RespectsLimit(t *testing.T) {
	idx := buildTestIndex()

	hits := idx.Search("company tax penalty", 1)

	assert.Len(t, hits, 1)
}

func TestSearch_EmptyQueryAndEmptyIndex(t *testing.T) {
	idx := buildTestIndex()
	assert.Empty(t, idx.Search("", 10))
	assert.Empty(t, idx.Search("the of and", 10))

	empty := NewBuilder().Build(nil)
	assert.Empty(t, empty.Search("company", 10))
}

func TestEditDistance(t *testing.T) {
	tests := []struct {
		a, b string
		max  int
		want int
	}{
		{"penalty", "penalty", 2, 0},
		{"penelty", "penalty", 2, 1},
		{"penalty", "penlty", 2, 1},
		{"company", "companies", 3, 3},
		{"tax", "levy", 2, 3}, // capped at max+1
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, editDistance(tt.a, tt.b, tt.max), "%s vs %s", tt.a, tt.b)
	}
}

func TestTokenize(t *testing.T) {
	tokens := tokenize("The rate of 7.5% applies to goods; see s. 4(1) of the Act.")

	assert.Contains(t, tokens, "rate")
	assert.Contains(t, tokens, "7.5%")
	assert.NotContains(t, tokens, "the")
	assert.NotContains(t, tokens, "of")
}
