package driven

import (
	"context"

	"github.com/Franklivania/tax-yasef-sub001/internal/core/domain"
)

// Source is raw input to ingest: either file bytes or a URL that a
// fetching extractor resolves. Exactly one of Data or URL is set.
type Source struct {
	// Data is the raw document bytes, if the source is byte-backed.
	Data []byte

	// URL is the declared location, if the source is URL-backed.
	URL string

	// Filename is an optional display name for byte-backed sources.
	Filename string
}

// Hash derives the content hash for this source. Byte-backed sources
// hash the full byte stream; URL-backed sources hash the URL string
// (identity tracks the declared location, see domain.HashURL).
func (s Source) Hash() string {
	if len(s.Data) > 0 {
		return domain.HashBytes(s.Data)
	}
	return domain.HashURL(s.URL)
}

// Extractor yields per-page positioned text for a source.
// Its internal parsing is an external concern.
type Extractor interface {
	// Extract returns the ordered pages of positioned text runs.
	// It must fail with a descriptive error on empty, truncated or
	// invalid-header input. An isolated page failure yields a page
	// with no items rather than an error; if every page fails the
	// whole extraction fails.
	Extract(ctx context.Context, src Source) ([]domain.ExtractedPage, error)
}
