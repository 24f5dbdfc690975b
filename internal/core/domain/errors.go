package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrSourceUnreadable indicates the source file does not exist or
	// cannot be opened. Distinct from collaborator availability errors.
	ErrSourceUnreadable = errors.New("source unreadable")

	// Collaborator availability errors. Each recognition collaborator is
	// probed once at pipeline construction; a missing one surfaces as a
	// typed error before any per-file work starts.

	// ErrRasterizerUnavailable indicates the page rasterizer is not installed.
	ErrRasterizerUnavailable = errors.New("page rasterizer unavailable")

	// ErrRecognizerUnavailable indicates the text recogniser is not installed.
	ErrRecognizerUnavailable = errors.New("text recogniser unavailable")

	// ErrProducerUnavailable indicates the searchable-PDF producer is not installed.
	ErrProducerUnavailable = errors.New("searchable PDF producer unavailable")

	// ErrExtractorUnavailable indicates the page text extractor is not configured.
	ErrExtractorUnavailable = errors.New("page text extractor unavailable")
)
