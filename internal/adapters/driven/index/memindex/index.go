// Package memindex is the in-memory keyword index over chunks.
// It scores with smoothed TF-IDF, indexes section-path text as an
// extra boosted signal, and falls back to bounded edit distance for
// query terms that miss the vocabulary, so minor misspellings still
// surface results. The index is derived and disposable: it is rebuilt
// from chunks on every load and never persisted.
package memindex

import (
	"math"
	"regexp"
	"sort"
	"strings"

	"github.com/Franklivania/tax-yasef-sub001/internal/core/domain"
	"github.com/Franklivania/tax-yasef-sub001/internal/core/ports/driven"
)

// sectionBoost is the pseudo-count added for terms appearing in a
// chunk's section path, so a query matching a section title ranks
// chunks under that section higher.
const sectionBoost = 2.0

// fuzzyPenalty discounts matches resolved through edit distance.
const fuzzyPenalty = 0.7

// Ensure the builder implements the port.
var _ driven.IndexBuilder = (*Builder)(nil)

// Builder constructs in-memory indexes over chunk lists.
type Builder struct{}

// NewBuilder creates an index builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Build indexes the chunks.
func (b *Builder) Build(chunks []domain.Chunk) driven.SearchIndex {
	return newIndex(chunks)
}

var tokenPattern = regexp.MustCompile(`\p{L}+(?:['’]\p{L}+)*|\p{N}+(?:\.\p{N}+)?%?`)

type index struct {
	ids     []string
	weights []map[string]float64
	norms   []float64
	df      map[string]int
	vocab   []string
	n       int
}

var _ driven.SearchIndex = (*index)(nil)

func newIndex(chunks []domain.Chunk) *index {
	idx := &index{
		ids:     make([]string, len(chunks)),
		weights: make([]map[string]float64, len(chunks)),
		df:      make(map[string]int),
		n:       len(chunks),
	}

	for i, c := range chunks {
		idx.ids[i] = c.ID
		w := make(map[string]float64)
		for _, t := range tokenize(c.Content) {
			w[t]++
		}
		for _, t := range tokenize(strings.Join(c.SectionPath, " ")) {
			w[t] += sectionBoost
		}
		idx.weights[i] = w
		for t := range w {
			idx.df[t]++
		}
	}

	// Stable vocabulary order keeps fuzzy resolution deterministic.
	idx.vocab = make([]string, 0, len(idx.df))
	for t := range idx.df {
		idx.vocab = append(idx.vocab, t)
	}
	sort.Strings(idx.vocab)

	idx.norms = make([]float64, len(chunks))
	for i, w := range idx.weights {
		sum := 0.0
		for t, count := range w {
			v := count * idx.idf(t)
			sum += v * v
		}
		idx.norms[i] = math.Sqrt(sum)
		if idx.norms[i] == 0 {
			idx.norms[i] = 1
		}
	}

	return idx
}

// idf is the smoothed inverse document frequency of a term.
func (idx *index) idf(term string) float64 {
	return math.Log((1+float64(idx.n))/(1+float64(idx.df[term]))) + 1
}

// Search returns up to limit hits ordered by descending score.
func (idx *index) Search(query string, limit int) []driven.Hit {
	terms := tokenize(query)
	if len(terms) == 0 || idx.n == 0 {
		return nil
	}
	if limit <= 0 {
		limit = 10
	}

	scores := make([]float64, idx.n)
	for _, term := range terms {
		resolved, weight := idx.resolve(term)
		if resolved == "" {
			continue
		}
		idf := idx.idf(resolved)
		for i, w := range idx.weights {
			if count := w[resolved]; count > 0 {
				scores[i] += weight * count * idf * idf / idx.norms[i]
			}
		}
	}

	hits := make([]driven.Hit, 0, idx.n)
	for i, score := range scores {
		if score > 0 {
			hits = append(hits, driven.Hit{ChunkID: idx.ids[i], Score: score})
		}
	}
	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Score > hits[j].Score
	})
	if len(hits) > limit {
		hits = hits[:limit]
	}
	return hits
}

// resolve maps a query term onto a vocabulary term, falling back to
// the closest term within the edit-distance bound.
func (idx *index) resolve(term string) (string, float64) {
	if idx.df[term] > 0 {
		return term, 1.0
	}

	bound := editBound(term)
	if bound == 0 {
		return "", 0
	}

	best := ""
	bestDist := bound + 1
	for _, candidate := range idx.vocab {
		if abs(len(candidate)-len(term)) > bound {
			continue
		}
		if d := editDistance(term, candidate, bound); d < bestDist {
			bestDist = d
			best = candidate
		}
	}
	if best == "" {
		return "", 0
	}
	return best, fuzzyPenalty
}

// editBound allows one edit for medium terms and two for long ones.
// Short terms must match exactly.
func editBound(term string) int {
	switch {
	case len(term) >= 8:
		return 2
	case len(term) >= 5:
		return 1
	default:
		return 0
	}
}

// editDistance is Levenshtein distance capped at max+1 for early exit.
func editDistance(a, b string, max int) int {
	ra, rb := []rune(a), []rune(b)
	prev := make([]int, len(rb)+1)
	cur := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		cur[0] = i
		rowMin := cur[0]
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			cur[j] = min3(prev[j]+1, cur[j-1]+1, prev[j-1]+cost)
			if cur[j] < rowMin {
				rowMin = cur[j]
			}
		}
		if rowMin > max {
			return max + 1
		}
		prev, cur = cur, prev
	}
	return prev[len(rb)]
}

func tokenize(text string) []string {
	raw := tokenPattern.FindAllString(strings.ToLower(text), -1)
	out := raw[:0]
	for _, t := range raw {
		if _, isStop := stopwords[t]; isStop {
			continue
		}
		out = append(out, t)
	}
	return out
}

var stopwords = func() map[string]struct{} {
	words := []string{
		"a", "an", "the", "and", "or", "but", "if", "then", "for", "to",
		"of", "in", "on", "at", "by", "with", "as", "is", "are", "was",
		"were", "be", "been", "it", "this", "that", "these", "those",
		"from", "such", "into", "about", "between", "through", "shall",
		"any", "no", "not", "under", "where", "which", "who", "whom",
	}
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}()

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
