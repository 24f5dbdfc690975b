package driving

import (
	"context"

	"github.com/inkwell-labs/scandex-cli/internal/core/domain"
)

// Indexer runs recognition and writes results into the document index.
type Indexer interface {
	// IndexFile recognises a single PDF and upserts it into the index,
	// honouring the recognition cache.
	IndexFile(ctx context.Context, path string, opts domain.BatchOptions) (domain.UpsertAction, error)

	// IndexFolder processes every PDF under folder, strictly
	// sequentially and sorted by path. Per-file failures are collected
	// in the result, never propagated. The sink (may be nil) receives a
	// synchronous event per file state change. Cancellation is checked
	// between files; on cancellation the partial result is returned
	// together with the context error.
	IndexFolder(ctx context.Context, folder string, opts domain.BatchOptions, sink domain.ProgressSink) (*domain.BatchResult, error)
}
