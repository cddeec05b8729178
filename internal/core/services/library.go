package services

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/Franklivania/tax-yasef-sub001/internal/core/domain"
	"github.com/Franklivania/tax-yasef-sub001/internal/core/ports/driven"
	"github.com/Franklivania/tax-yasef-sub001/internal/core/ports/driving"
	"github.com/Franklivania/tax-yasef-sub001/internal/logger"
)

// Ensure Library implements the interface.
var _ driving.LibraryService = (*Library)(nil)

// Default token budgets for context assembly.
const (
	DefaultPrimaryBudget   = 2200
	DefaultSecondaryBudget = 600
)

// Library owns the catalog of approved documents, the loaded-document
// registry and the single-flight loader, and composes multi-document
// context. All registry state is instance-scoped: a fresh Library per
// test keeps the single-flight guarantee observable.
type Library struct {
	catalog  domain.Catalog
	ingester driving.IngestService
	engine   driving.QueryService
	indexer  driven.IndexBuilder
	resolve  func(domain.CatalogEntry) driven.Source

	primaryBudget   int
	secondaryBudget int
	routeThreshold  int
	minScore        float64

	mu     sync.RWMutex
	loaded map[string]*driving.LoadedDocument
	flight singleflight.Group
}

// LibraryOption configures the library.
type LibraryOption func(*Library)

// WithBudgets sets the primary and secondary context token budgets.
func WithBudgets(primary, secondary int) LibraryOption {
	return func(l *Library) {
		if primary > 0 {
			l.primaryBudget = primary
		}
		if secondary > 0 {
			l.secondaryBudget = secondary
		}
	}
}

// WithRouteThreshold sets the keyword score at or below which routing
// falls back to the default document.
func WithRouteThreshold(t int) LibraryOption {
	return func(l *Library) {
		l.routeThreshold = t
	}
}

// WithMinScore sets the minimum relevance score for retrieval.
func WithMinScore(s float64) LibraryOption {
	return func(l *Library) {
		l.minScore = s
	}
}

// WithSourceResolver overrides how a catalog entry becomes an
// ingestable source. The default resolves the entry's source URL.
func WithSourceResolver(fn func(domain.CatalogEntry) driven.Source) LibraryOption {
	return func(l *Library) {
		if fn != nil {
			l.resolve = fn
		}
	}
}

// NewLibrary creates a library over the catalog.
func NewLibrary(
	catalog domain.Catalog,
	ingester driving.IngestService,
	engine driving.QueryService,
	indexer driven.IndexBuilder,
	opts ...LibraryOption,
) (*Library, error) {
	if len(catalog.Entries) == 0 {
		return nil, domain.ErrNoCatalog
	}
	l := &Library{
		catalog:  catalog,
		ingester: ingester,
		engine:   engine,
		indexer:  indexer,
		resolve: func(e domain.CatalogEntry) driven.Source {
			return driven.Source{URL: e.SourceURL}
		},
		primaryBudget:   DefaultPrimaryBudget,
		secondaryBudget: DefaultSecondaryBudget,
		loaded:          make(map[string]*driving.LoadedDocument),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l, nil
}

// Catalog returns the read-only document catalog.
func (l *Library) Catalog() domain.Catalog {
	return l.catalog
}

// Loaded returns the loaded document for the id, if present.
func (l *Library) Loaded(id string) (*driving.LoadedDocument, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	d, ok := l.loaded[id]
	return d, ok
}

// EnsureLoaded loads the document for the catalog id at most once.
// Concurrent callers for the same id share a single in-flight
// ingestion and all receive the same result or the same failure; a
// failure clears the flight so a later call can retry. An abandoned
// caller does not cancel the load: it completes and populates the
// registry for future callers.
func (l *Library) EnsureLoaded(ctx context.Context, id string) (*driving.LoadedDocument, error) {
	if d, ok := l.Loaded(id); ok {
		return d, nil
	}

	v, err, shared := l.flight.Do(id, func() (any, error) {
		if d, ok := l.Loaded(id); ok {
			return d, nil
		}

		entry, ok := l.catalog.Get(id)
		if !ok {
			return nil, fmt.Errorf("%w: %s", domain.ErrUnknownDocument, id)
		}

		logger.Info("Loading document %s (%s)", id, entry.ShortTitle)
		// The flight is shared: a caller that abandons interest must
		// not cancel the load out from under the other waiters.
		doc, err := l.ingester.Ingest(context.WithoutCancel(ctx), l.resolve(*entry), driving.IngestOptions{})
		if err != nil {
			return nil, fmt.Errorf("load %s: %w", id, err)
		}

		ld := &driving.LoadedDocument{
			Entry: *entry,
			Doc:   doc,
			Index: l.indexer.Build(doc.Chunks),
		}

		l.mu.Lock()
		l.loaded[id] = ld
		l.mu.Unlock()

		return ld, nil
	})
	if err != nil {
		return nil, err
	}
	if shared {
		logger.Debug("Load of %s shared with concurrent caller", id)
	}
	return v.(*driving.LoadedDocument), nil
}

// RouteForQuery scores every catalog entry by keyword overlap and
// returns the best id. At or below the confidence threshold it falls
// back to the configured default rather than a low-confidence guess.
func (l *Library) RouteForQuery(query string) string {
	bestID := ""
	bestScore := 0
	for i := range l.catalog.Entries {
		e := &l.catalog.Entries[i]
		if score := e.Score(query); score > bestScore {
			bestScore = score
			bestID = e.ID
		}
	}
	if bestScore <= l.routeThreshold || bestID == "" {
		fallback := l.catalog.DefaultID
		if fallback == "" {
			fallback = l.catalog.Entries[0].ID
		}
		logger.Debug("Routing %q: low confidence (%d), default %s", query, bestScore, fallback)
		return fallback
	}
	logger.Debug("Routing %q -> %s (score %d)", query, bestID, bestScore)
	return bestID
}

// BuildContext selects or accepts a primary document, queries it under
// the large budget, opportunistically adds at most one already-loaded
// secondary reference under the small budget, and returns the
// assembled context.
func (l *Library) BuildContext(ctx context.Context, query, selectedID string) (*domain.ContextResult, error) {
	logger.Section("Context Build")

	mode := domain.ModeAuto
	primaryID := selectedID
	if primaryID != "" {
		mode = domain.ModeSelected
		if _, ok := l.catalog.Get(primaryID); !ok {
			return nil, fmt.Errorf("%w: %s", domain.ErrUnknownDocument, primaryID)
		}
	} else {
		primaryID = l.RouteForQuery(query)
	}
	logger.Debug("Primary: %s (mode %s)", primaryID, mode)

	primary, err := l.EnsureLoaded(ctx, primaryID)
	if err != nil {
		return nil, err
	}

	intent := l.engine.DetectIntent(query)
	logger.Debug("Intent: %s", intent)

	result := l.engine.Query(primary, query, driving.QueryOptions{MinScore: l.minScore})
	text := l.engine.AssembleContext(result, l.primaryBudget, intent)
	used := []string{primaryID}

	if sec := l.pickSecondary(query, primaryID); sec != nil {
		secResult := l.engine.Query(sec, query, driving.QueryOptions{Limit: 6, MinScore: l.minScore})
		if secText := l.engine.AssembleContext(secResult, l.secondaryBudget, intent); secText != "" {
			if text != "" {
				text += "\n\n"
			}
			text += "--- Related reference: " + sec.Entry.ShortTitle + " ---\n\n" + secText
			used = append(used, sec.Entry.ID)
		}
	}

	if strings.TrimSpace(text) == "" {
		text = PlaceholderNotice
	}

	return &domain.ContextResult{
		Primary:    primary.Entry,
		Mode:       mode,
		UsedDocIDs: used,
		Context:    text,
	}, nil
}

// pickSecondary chooses the best-scoring already-loaded document other
// than the primary. Documents are never loaded on account of a
// secondary lookup.
func (l *Library) pickSecondary(query, primaryID string) *driving.LoadedDocument {
	l.mu.RLock()
	defer l.mu.RUnlock()

	var best *driving.LoadedDocument
	bestScore := l.routeThreshold
	for id, ld := range l.loaded {
		if id == primaryID {
			continue
		}
		if score := ld.Entry.Score(query); score > bestScore {
			bestScore = score
			best = ld
		}
	}
	return best
}
