// Package pdf extracts positioned text from PDF sources.
// It wraps the ledongthuc/pdf reader and maps its text runs onto the
// domain's TextItem shape. Page-level failures are tolerated: a page
// that cannot be parsed yields no items rather than failing the
// document.
package pdf

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/ledongthuc/pdf"

	"github.com/Franklivania/tax-yasef-sub001/internal/core/domain"
	"github.com/Franklivania/tax-yasef-sub001/internal/core/ports/driven"
	"github.com/Franklivania/tax-yasef-sub001/internal/logger"
)

// Ensure Extractor implements the port.
var _ driven.Extractor = (*Extractor)(nil)

// minSourceSize is the smallest byte stream that can hold a valid PDF.
const minSourceSize = 64

var pdfHeader = []byte("%PDF-")

// Extractor reads positioned text out of PDF bytes, local files or
// HTTP(S) URLs.
type Extractor struct {
	client *http.Client
}

// Option configures the extractor.
type Option func(*Extractor)

// WithHTTPClient overrides the client used for URL sources.
func WithHTTPClient(c *http.Client) Option {
	return func(e *Extractor) {
		if c != nil {
			e.client = c
		}
	}
}

// New creates a PDF extractor.
func New(opts ...Option) *Extractor {
	e := &Extractor{
		client: &http.Client{Timeout: 60 * time.Second},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract resolves the source to bytes and returns its pages of
// positioned text runs. It fails on empty, truncated or
// invalid-header input; it fails with ErrExtractionFailed only when
// every page yields nothing.
func (e *Extractor) Extract(ctx context.Context, src driven.Source) ([]domain.ExtractedPage, error) {
	data, err := e.resolve(ctx, src)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, domain.ErrEmptySource
	}
	if len(data) < minSourceSize {
		return nil, fmt.Errorf("%w: %d bytes is too small for a document", domain.ErrInvalidSource, len(data))
	}
	if !bytes.HasPrefix(data, pdfHeader) {
		return nil, fmt.Errorf("%w: missing PDF header", domain.ErrInvalidSource)
	}

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidSource, err)
	}

	total := reader.NumPage()
	pages := make([]domain.ExtractedPage, 0, total)
	extracted := 0
	for num := 1; num <= total; num++ {
		items := extractPage(reader, num)
		if len(items) == 0 {
			logger.Warn("Page %d/%d yielded no text", num, total)
		} else {
			extracted++
		}
		pages = append(pages, domain.ExtractedPage{Number: num, Items: items})
	}

	if extracted == 0 {
		return nil, fmt.Errorf("%w: no page produced text", domain.ErrExtractionFailed)
	}
	logger.Debug("Extracted text from %d/%d pages", extracted, total)
	return pages, nil
}

// extractPage pulls the positioned runs of a single page.
// The underlying reader panics on some malformed content streams, so
// a page-level recover turns that into an empty page.
func extractPage(reader *pdf.Reader, num int) (items []domain.TextItem) {
	defer func() {
		if r := recover(); r != nil {
			logger.Warn("Page %d extraction panicked: %v", num, r)
			items = nil
		}
	}()

	page := reader.Page(num)
	if page.V.IsNull() {
		return nil
	}

	content := page.Content()
	items = make([]domain.TextItem, 0, len(content.Text))
	for _, t := range content.Text {
		if t.S == "" {
			continue
		}
		items = append(items, domain.TextItem{
			Text:     t.S,
			FontSize: t.FontSize,
			X:        t.X,
			Y:        t.Y,
			Page:     num,
		})
	}
	return items
}

// resolve turns a source into raw bytes: inline data as-is, http(s)
// URLs fetched, anything else treated as a local file path.
func (e *Extractor) resolve(ctx context.Context, src driven.Source) ([]byte, error) {
	if len(src.Data) > 0 {
		return src.Data, nil
	}

	loc := strings.TrimSpace(src.URL)
	if loc == "" {
		return nil, domain.ErrEmptySource
	}

	if strings.HasPrefix(loc, "http://") || strings.HasPrefix(loc, "https://") {
		return e.fetch(ctx, loc)
	}

	data, err := os.ReadFile(strings.TrimPrefix(loc, "file://"))
	if err != nil {
		return nil, fmt.Errorf("reading source file: %w", err)
	}
	return data, nil
}

func (e *Extractor) fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching %s: unexpected status %d", url, resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}
	return data, nil
}
