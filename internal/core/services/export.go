package services

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/inkwell-labs/scandex-cli/internal/core/ports/driven"
	"github.com/inkwell-labs/scandex-cli/internal/core/ports/driving"
	"github.com/inkwell-labs/scandex-cli/internal/logger"
)

// Ensure ExportService implements the interface.
var _ driving.Exporter = (*ExportService)(nil)

// exportRecord is the interchange shape of one index row.
type exportRecord struct {
	FilePath    string `json:"file_path"`
	TextContent string `json:"text_content"`
	PageCount   int    `json:"page_count"`
	CreatedAt   string `json:"created_at"`
	Lang        string `json:"lang"`
}

// ExportService serialises the document index to JSON.
type ExportService struct {
	store driven.DocumentStore
	trail *logger.Trail
}

// NewExportService creates an exporter over the given store. The trail
// may be nil.
func NewExportService(store driven.DocumentStore, trail *logger.Trail) *ExportService {
	return &ExportService{store: store, trail: trail}
}

// Export writes every record, newest first, as a JSON array to outPath.
// Non-ASCII text is preserved as UTF-8. Parent directories are created
// as needed.
func (s *ExportService) Export(ctx context.Context, outPath string) (int, error) {
	records, err := s.store.All(ctx)
	if err != nil {
		return 0, fmt.Errorf("export: %w", err)
	}

	payload := make([]exportRecord, 0, len(records))
	for i := range records {
		payload = append(payload, exportRecord{
			FilePath:    records[i].FilePath,
			TextContent: records[i].Text,
			PageCount:   records[i].PageCount,
			CreatedAt:   records[i].CreatedAt.Format("2006-01-02 15:04:05"),
			Lang:        records[i].Lang,
		})
	}

	if dir := filepath.Dir(outPath); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return 0, fmt.Errorf("creating export directory: %w", err)
		}
	}

	f, err := os.Create(outPath)
	if err != nil {
		return 0, fmt.Errorf("creating export file: %w", err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(payload); err != nil {
		return 0, fmt.Errorf("encoding export: %w", err)
	}

	s.trail.Append("index exported: %s (%d records)", outPath, len(payload))
	logger.Info("Exported %d records to %s", len(payload), outPath)
	return len(payload), nil
}
