package domain

import (
	"time"
	"unicode/utf8"
)

// MaxTextContent caps the stored text per document. Recognised output
// longer than this is truncated before storage, so very large documents
// do not round-trip their full text through the index.
const MaxTextContent = 500_000

// DefaultLanguage is the tesseract language pack used when a caller
// does not specify one.
const DefaultLanguage = "chi_tra+eng"

// DefaultDPI is the render resolution used for per-page recognition
// when a caller does not specify one.
const DefaultDPI = 300

// TruncateText caps s at MaxTextContent bytes. The cut is pulled back
// to the previous rune boundary so stored text never ends with a
// partial UTF-8 sequence.
func TruncateText(s string) string {
	if len(s) <= MaxTextContent {
		return s
	}
	cut := MaxTextContent
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}

// DocumentRecord is one indexed PDF. Identity is the file path: the
// index holds at most one record per path, and an upsert with an
// existing path replaces every mutable field.
type DocumentRecord struct {
	// ID is the surrogate key assigned by the store.
	ID int64

	// FilePath is the unique key. Two observations of the same path are
	// the same document regardless of content.
	FilePath string

	// Text is the recognised text, truncated to MaxTextContent. Page
	// boundaries are embedded as page markers (see pagemarker.go).
	Text string

	// PageCount is the number of pages in the source PDF.
	PageCount int

	// CreatedAt is when this record was written or last replaced.
	CreatedAt time.Time

	// FileModifiedAt is the source file's mtime in nanoseconds at
	// indexing time. Zero for legacy rows that predate the column.
	// A current mtime strictly greater than this marks the record stale.
	FileModifiedAt int64

	// Lang is the language code used for the most recent recognition.
	// Empty for legacy rows.
	Lang string
}

// UpsertAction reports whether an upsert created or replaced a record.
type UpsertAction string

const (
	UpsertInserted UpsertAction = "inserted"
	UpsertUpdated  UpsertAction = "updated"
)
