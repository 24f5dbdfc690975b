package driven

import (
	"context"

	"github.com/inkwell-labs/scandex-cli/internal/core/domain"
)

// DocumentStore persists one record per source file path.
// Backed by SQLite.
type DocumentStore interface {
	// Upsert inserts a record or fully replaces the mutable fields of an
	// existing one, keyed by rec.FilePath. Text beyond
	// domain.MaxTextContent is truncated before storage. The store
	// assigns CreatedAt and reports whether the record was inserted or
	// updated.
	Upsert(ctx context.Context, rec *domain.DocumentRecord) (domain.UpsertAction, error)

	// Get retrieves a record by file path. Returns domain.ErrNotFound
	// when no record exists.
	Get(ctx context.Context, filePath string) (*domain.DocumentRecord, error)

	// All returns every record ordered by creation time, newest first.
	All(ctx context.Context) ([]domain.DocumentRecord, error)

	// Close releases the underlying database handle.
	Close() error
}
