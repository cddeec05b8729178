package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrEmptySource indicates the source contained no bytes.
	ErrEmptySource = errors.New("empty source")

	// ErrInvalidSource indicates the source is corrupt or has an
	// unreadable header.
	ErrInvalidSource = errors.New("invalid source")

	// ErrExtractionFailed indicates every page of the source failed
	// to extract. Isolated page failures are tolerated; total failure
	// is fatal for the ingestion attempt.
	ErrExtractionFailed = errors.New("extraction failed")

	// ErrUnknownDocument indicates a catalog id that is not in the
	// catalog.
	ErrUnknownDocument = errors.New("unknown document")

	// ErrNoCatalog indicates the library was constructed without any
	// catalog entries.
	ErrNoCatalog = errors.New("catalog is empty")

	// ErrNotLoaded indicates a document that has not been ingested yet
	// was queried directly.
	ErrNotLoaded = errors.New("document not loaded")
)
