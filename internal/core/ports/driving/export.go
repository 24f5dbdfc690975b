package driving

import "context"

// Exporter serialises the document index to a portable format.
type Exporter interface {
	// Export writes the full index as a JSON document to outPath,
	// creating parent directories as needed. Returns the number of
	// records written.
	Export(ctx context.Context, outPath string) (int, error)
}
