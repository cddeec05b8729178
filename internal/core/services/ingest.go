package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Franklivania/tax-yasef-sub001/internal/core/domain"
	"github.com/Franklivania/tax-yasef-sub001/internal/core/ports/driven"
	"github.com/Franklivania/tax-yasef-sub001/internal/core/ports/driving"
	"github.com/Franklivania/tax-yasef-sub001/internal/logger"
)

// Ensure IngestPipeline implements the interface.
var _ driving.IngestService = (*IngestPipeline)(nil)

// IngestPipeline orchestrates extraction, structure recovery,
// chunking and caching for one source at a time.
type IngestPipeline struct {
	extractor  driven.Extractor
	cache      driven.DocumentCache
	classifier Classifier
	chunker    *Chunker
}

// PipelineOption configures the ingestion pipeline.
type PipelineOption func(*IngestPipeline)

// WithClassifier swaps the heading heuristic.
func WithClassifier(c Classifier) PipelineOption {
	return func(p *IngestPipeline) {
		if c != nil {
			p.classifier = c
		}
	}
}

// WithChunker sets the chunker used for emitted documents.
func WithChunker(c *Chunker) PipelineOption {
	return func(p *IngestPipeline) {
		if c != nil {
			p.chunker = c
		}
	}
}

// NewIngestPipeline creates an ingestion pipeline.
// The cache may be nil, in which case every request ingests from
// scratch. The chunker defaults to a heuristic token counter bound.
func NewIngestPipeline(extractor driven.Extractor, cache driven.DocumentCache, opts ...PipelineOption) *IngestPipeline {
	p := &IngestPipeline{
		extractor:  extractor,
		cache:      cache,
		classifier: DefaultClassifier,
		chunker:    NewChunker(heuristicCounter{}),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Ingest computes the source hash, consults the cache unless forced,
// and otherwise runs the full pipeline and caches the result.
func (p *IngestPipeline) Ingest(ctx context.Context, src driven.Source, opts driving.IngestOptions) (*domain.IngestedDocument, error) {
	if len(src.Data) == 0 && strings.TrimSpace(src.URL) == "" {
		return nil, fmt.Errorf("ingest: %w", domain.ErrEmptySource)
	}

	hash := src.Hash()
	logger.Section("Ingestion")
	logger.Debug("Source hash: %s (force=%t)", hash, opts.Force)

	if !opts.Force {
		if doc := p.fromCache(ctx, hash); doc != nil {
			logger.Info("Cache hit for %s", hash)
			return doc, nil
		}
	}

	pages, err := p.extractor.Extract(ctx, src)
	if err != nil {
		return nil, fmt.Errorf("extract: %w", err)
	}
	items := 0
	for _, page := range pages {
		items += len(page.Items)
	}
	if items == 0 {
		return nil, fmt.Errorf("extract: %w", domain.ErrExtractionFailed)
	}
	logger.Debug("Extracted %d pages, %d text runs", len(pages), items)

	runs := NormalizePages(pages)
	stats := ComputeFontStats(runs)
	logger.Debug("Font stats: modal=%.1f max=%.1f", stats.Modal, stats.Max)

	elements := p.classifier(runs, stats)
	root := BuildStructure(elements)
	chunks := p.chunker.Chunk(root)
	logger.Info("Structured into %d chunks", len(chunks))

	doc := &domain.IngestedDocument{
		Hash:   hash,
		Root:   root,
		Chunks: chunks,
		Meta: domain.DocumentMeta{
			SourceURL:  src.URL,
			Filename:   src.Filename,
			PageCount:  len(pages),
			IngestedAt: time.Now().UTC(),
		},
	}

	p.toCache(ctx, doc)
	return doc, nil
}

// fromCache returns the cached document for the hash, or nil on a
// miss. Cache failures are downgraded to misses so a degraded store
// never blocks ingestion.
func (p *IngestPipeline) fromCache(ctx context.Context, hash string) *domain.IngestedDocument {
	if p.cache == nil {
		return nil
	}
	rec, err := p.cache.Get(ctx, hash)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			logger.Warn("Cache read failed, treating as miss: %v", err)
		}
		return nil
	}
	return &domain.IngestedDocument{
		Hash:   rec.Hash,
		Root:   rec.Root,
		Chunks: rec.Chunks,
		Meta:   rec.Meta,
	}
}

// toCache persists the document. Write failures are logged and
// swallowed: the caller still gets the freshly ingested document.
func (p *IngestPipeline) toCache(ctx context.Context, doc *domain.IngestedDocument) {
	if p.cache == nil {
		return
	}
	rec := &domain.CachedRecord{
		Hash:   doc.Hash,
		Root:   doc.Root,
		Chunks: doc.Chunks,
		Meta:   doc.Meta,
	}
	if err := p.cache.Put(ctx, rec); err != nil {
		logger.Warn("Cache write failed for %s: %v", doc.Hash, err)
	}
}

// heuristicCounter is the zero-dependency fallback token estimator
// used when no counter is injected: roughly four characters per token.
type heuristicCounter struct{}

func (heuristicCounter) Count(text string) int {
	if text == "" {
		return 0
	}
	return (len(text) + 3) / 4
}
