package services

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Franklivania/tax-yasef-sub001/internal/adapters/driven/storage/memory"
	"github.com/Franklivania/tax-yasef-sub001/internal/core/domain"
	"github.com/Franklivania/tax-yasef-sub001/internal/core/ports/driven"
	"github.com/Franklivania/tax-yasef-sub001/internal/core/ports/driving"
)

// fakeExtractor serves canned pages and counts invocations.
type fakeExtractor struct {
	calls int32
	pages []domain.ExtractedPage
	err   error
}

func (f *fakeExtractor) Extract(_ context.Context, _ driven.Source) ([]domain.ExtractedPage, error) {
	atomic.AddInt32(&f.calls, 1)
	if f.err != nil {
		return nil, f.err
	}
	return f.pages, nil
}

func (f *fakeExtractor) Calls() int {
	return int(atomic.LoadInt32(&f.calls))
}

// failingCache errors on every operation.
type failingCache struct{}

func (failingCache) Get(context.Context, string) (*domain.CachedRecord, error) {
	return nil, errors.New("store degraded")
}
func (failingCache) Put(context.Context, *domain.CachedRecord) error {
	return errors.New("store degraded")
}
func (failingCache) Has(context.Context, string) (bool, error) {
	return false, errors.New("store degraded")
}
func (failingCache) Delete(context.Context, string) error {
	return errors.New("store degraded")
}

func statutePages() []domain.ExtractedPage {
	return []domain.ExtractedPage{
		{Number: 1, Items: []domain.TextItem{
			{Text: "PART I PRELIMINARY", FontSize: 16, X: 50, Y: 700, Page: 1},
			{Text: "This Part provides for the administration of the tax by the relevant authority.", FontSize: 10, X: 50, Y: 680, Page: 1},
		}},
		{Number: 2, Items: []domain.TextItem{
			{Text: "2. Interpretation", FontSize: 12, X: 50, Y: 700, Page: 2},
			{Text: "In this Act, company means any company or corporation established by or under any law.", FontSize: 10, X: 50, Y: 680, Page: 2},
		}},
	}
}

func TestIngestPipeline_ProducesStructuredDocument(t *testing.T) {
	extractor := &fakeExtractor{pages: statutePages()}
	pipeline := NewIngestPipeline(extractor, memory.NewCache())

	doc, err := pipeline.Ingest(context.Background(), driven.Source{Data: []byte("raw pdf bytes")}, driving.IngestOptions{})
	require.NoError(t, err)

	assert.Equal(t, domain.HashBytes([]byte("raw pdf bytes")), doc.Hash)
	assert.Equal(t, 2, doc.Meta.PageCount)
	assert.NotNil(t, doc.Root)
	require.Len(t, doc.Chunks, 2)
	assert.NotEmpty(t, doc.Chunks[0].SectionPath)
	assert.False(t, doc.Meta.IngestedAt.IsZero())
}

func TestIngestPipeline_SecondIngestHitsCache(t *testing.T) {
	extractor := &fakeExtractor{pages: statutePages()}
	pipeline := NewIngestPipeline(extractor, memory.NewCache())
	src := driven.Source{Data: []byte("raw pdf bytes")}
	ctx := context.Background()

	first, err := pipeline.Ingest(ctx, src, driving.IngestOptions{})
	require.NoError(t, err)
	require.Equal(t, 1, extractor.Calls())

	second, err := pipeline.Ingest(ctx, src, driving.IngestOptions{})
	require.NoError(t, err)

	// Zero extraction calls on the cache hit, structurally equal chunks.
	assert.Equal(t, 1, extractor.Calls())
	assert.Equal(t, first.Chunks, second.Chunks)
	assert.Equal(t, first.Hash, second.Hash)
}

func TestIngestPipeline_ForceSkipsCache(t *testing.T) {
	extractor := &fakeExtractor{pages: statutePages()}
	pipeline := NewIngestPipeline(extractor, memory.NewCache())
	src := driven.Source{Data: []byte("raw pdf bytes")}
	ctx := context.Background()

	_, err := pipeline.Ingest(ctx, src, driving.IngestOptions{})
	require.NoError(t, err)

	_, err = pipeline.Ingest(ctx, src, driving.IngestOptions{Force: true})
	require.NoError(t, err)

	assert.Equal(t, 2, extractor.Calls())
}

func TestIngestPipeline_EmptySourceFails(t *testing.T) {
	pipeline := NewIngestPipeline(&fakeExtractor{}, memory.NewCache())

	_, err := pipeline.Ingest(context.Background(), driven.Source{}, driving.IngestOptions{})

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrEmptySource)
}

func TestIngestPipeline_ExtractionErrorLeavesCacheUntouched(t *testing.T) {
	cache := memory.NewCache()
	extractor := &fakeExtractor{err: domain.ErrInvalidSource}
	pipeline := NewIngestPipeline(extractor, cache)

	_, err := pipeline.Ingest(context.Background(), driven.Source{Data: []byte("broken")}, driving.IngestOptions{})

	require.ErrorIs(t, err, domain.ErrInvalidSource)
	assert.Zero(t, cache.Len())
}

func TestIngestPipeline_AllPagesEmptyIsFatal(t *testing.T) {
	extractor := &fakeExtractor{pages: []domain.ExtractedPage{{Number: 1}, {Number: 2}}}
	pipeline := NewIngestPipeline(extractor, memory.NewCache())

	_, err := pipeline.Ingest(context.Background(), driven.Source{Data: []byte("scanned")}, driving.IngestOptions{})

	assert.ErrorIs(t, err, domain.ErrExtractionFailed)
}

func TestIngestPipeline_CacheErrorsAreTreatedAsMisses(t *testing.T) {
	extractor := &fakeExtractor{pages: statutePages()}
	pipeline := NewIngestPipeline(extractor, failingCache{})
	src := driven.Source{Data: []byte("raw pdf bytes")}
	ctx := context.Background()

	doc, err := pipeline.Ingest(ctx, src, driving.IngestOptions{})
	require.NoError(t, err)
	assert.NotEmpty(t, doc.Chunks)

	// Degraded store means every request ingests from scratch, but
	// never an error.
	_, err = pipeline.Ingest(ctx, src, driving.IngestOptions{})
	require.NoError(t, err)
	assert.Equal(t, 2, extractor.Calls())
}

func TestIngestPipeline_NilCacheIngestsEveryTime(t *testing.T) {
	extractor := &fakeExtractor{pages: statutePages()}
	pipeline := NewIngestPipeline(extractor, nil)
	src := driven.Source{Data: []byte("raw pdf bytes")}
	ctx := context.Background()

	_, err := pipeline.Ingest(ctx, src, driving.IngestOptions{})
	require.NoError(t, err)
	_, err = pipeline.Ingest(ctx, src, driving.IngestOptions{})
	require.NoError(t, err)

	assert.Equal(t, 2, extractor.Calls())
}
