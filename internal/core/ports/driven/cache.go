package driven

import "github.com/inkwell-labs/scandex-cli/internal/core/domain"

// RecognitionCache stores prior OCR output keyed by a fingerprint of
// the source file's resolved path and modification time. An identical
// fingerprint means the cached output is safe to reuse without
// re-running recognition.
type RecognitionCache interface {
	// Lookup returns the cached entry for the file's current
	// fingerprint. Fails open: a missing, corrupt or unreadable entry is
	// a miss, never an error.
	Lookup(path string) (*domain.CacheEntry, bool)

	// Store writes an entry for the file's current fingerprint,
	// unconditionally overwriting any colliding entry.
	Store(path string, entry domain.CacheEntry) error
}
