package driving

import (
	"context"

	"github.com/Franklivania/tax-yasef-sub001/internal/core/domain"
	"github.com/Franklivania/tax-yasef-sub001/internal/core/ports/driven"
)

// IngestOptions configures a single ingestion request.
type IngestOptions struct {
	// Force skips the cache check and re-runs the full pipeline,
	// overwriting the cached record.
	Force bool
}

// IngestService turns a raw source into a cached, indexed document.
type IngestService interface {
	// Ingest computes the source hash, consults the cache unless
	// forced, and on a miss runs extract → normalise → detect →
	// build → chunk → index, caching the result. Source errors fail
	// the attempt and leave the cache untouched; cache errors are
	// treated as misses.
	Ingest(ctx context.Context, src driven.Source, opts IngestOptions) (*domain.IngestedDocument, error)
}
