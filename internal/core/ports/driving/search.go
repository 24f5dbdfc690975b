package driving

import (
	"context"

	"github.com/inkwell-labs/scandex-cli/internal/core/domain"
)

// SearchService answers keyword queries over the document index.
type SearchService interface {
	// Search performs a case-insensitive substring query across all
	// indexed documents, newest first. An empty or whitespace-only
	// keyword returns no results and no error.
	Search(ctx context.Context, keyword string, opts domain.SearchOptions) ([]domain.SearchResult, error)
}
