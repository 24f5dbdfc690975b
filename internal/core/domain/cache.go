package domain

import "time"

// Recognition backend identifiers, recorded in cache entries and used
// to select a strategy.
const (
	// BackendDirect renders each page to an image and recognises it.
	BackendDirect = "tesseract"

	// BackendPipeline runs a whole-document producer and reads back the
	// text it burned into the page content streams.
	BackendPipeline = "ocrmypdf"
)

// CacheEntry is a previously computed recognition result, keyed by the
// fingerprint of (resolved path, mtime). Entries are created once after
// a successful run and never mutated or evicted.
type CacheEntry struct {
	Text      string    `json:"text"`
	PageCount int       `json:"page_count"`
	Lang      string    `json:"lang"`
	DPI       int       `json:"dpi"`
	Backend   string    `json:"backend"`
	CachedAt  time.Time `json:"cached_at"`
}
