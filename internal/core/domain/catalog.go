package domain

import "strings"

// CatalogEntry is a pre-approved, selectable document.
// Entries are static configuration, read-only at runtime.
type CatalogEntry struct {
	// ID is the stable catalog identifier (e.g. "cita").
	ID string `toml:"id"`

	// Title is the full document title.
	Title string `toml:"title"`

	// ShortTitle is a compact display name.
	ShortTitle string `toml:"short_title"`

	// SourceURL is where the source document lives.
	SourceURL string `toml:"source_url"`

	// Keywords are routing signals matched against user queries.
	Keywords []string `toml:"keywords"`
}

// Catalog is the read-only set of approved documents plus the id used
// when routing cannot make a confident choice.
type Catalog struct {
	Entries   []CatalogEntry `toml:"documents"`
	DefaultID string         `toml:"default_id"`
}

// Get returns the entry with the given id.
func (c *Catalog) Get(id string) (*CatalogEntry, bool) {
	for i := range c.Entries {
		if c.Entries[i].ID == id {
			return &c.Entries[i], true
		}
	}
	return nil, false
}

// Default returns the configured fallback entry.
func (c *Catalog) Default() (*CatalogEntry, bool) {
	return c.Get(c.DefaultID)
}

// Score rates how well a query matches this entry's keywords.
// A full keyword appearing as a substring of the query scores 2;
// a single word of a multi-word keyword matching scores 1.
func (e *CatalogEntry) Score(query string) int {
	q := strings.ToLower(query)
	score := 0
	for _, kw := range e.Keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw == "" {
			continue
		}
		if strings.Contains(q, kw) {
			score += 2
			continue
		}
		words := strings.Fields(kw)
		for _, w := range words {
			if len(w) > 3 && wordMatch(q, w) {
				if len(words) == 1 {
					score += 2
				} else {
					score++
				}
				break
			}
		}
	}
	return score
}

// wordMatch reports whether the keyword word appears in the query,
// tolerating a simple singular/plural mismatch.
func wordMatch(query, word string) bool {
	if strings.Contains(query, word) {
		return true
	}
	return strings.Contains(query, singular(word))
}

func singular(w string) string {
	switch {
	case strings.HasSuffix(w, "ies"):
		return strings.TrimSuffix(w, "ies") + "y"
	case strings.HasSuffix(w, "s"):
		return strings.TrimSuffix(w, "s")
	default:
		return w
	}
}
