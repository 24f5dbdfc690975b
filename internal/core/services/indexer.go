package services

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/inkwell-labs/scandex-cli/internal/core/domain"
	"github.com/inkwell-labs/scandex-cli/internal/core/ports/driven"
	"github.com/inkwell-labs/scandex-cli/internal/core/ports/driving"
	"github.com/inkwell-labs/scandex-cli/internal/logger"
)

// Ensure IndexerService implements the interface.
var _ driving.Indexer = (*IndexerService)(nil)

// IndexerService coordinates recognition and index writes. Files are
// processed strictly sequentially so progress reporting and error
// attribution stay deterministic.
type IndexerService struct {
	store       driven.DocumentStore
	recognition *RecognitionService
	trail       *logger.Trail
}

// NewIndexerService creates a batch indexer. The trail may be nil.
func NewIndexerService(store driven.DocumentStore, recognition *RecognitionService, trail *logger.Trail) *IndexerService {
	return &IndexerService{
		store:       store,
		recognition: recognition,
		trail:       trail,
	}
}

// IndexFile recognises one PDF and upserts its record.
func (s *IndexerService) IndexFile(ctx context.Context, path string, opts domain.BatchOptions) (domain.UpsertAction, error) {
	text, pageCount, err := s.recognition.Recognize(ctx, path, opts)
	if err != nil {
		return "", err
	}
	return s.indexRecognized(ctx, path, text, pageCount, opts)
}

// IndexFolder processes every PDF under folder per the batch contract:
// sorted scan, per-file staleness check, per-file error isolation,
// cooperative cancellation between files.
func (s *IndexerService) IndexFolder(
	ctx context.Context,
	folder string,
	opts domain.BatchOptions,
	sink domain.ProgressSink,
) (*domain.BatchResult, error) {
	info, err := os.Stat(folder)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: folder %s", domain.ErrSourceUnreadable, folder)
	}

	files, err := listPDFs(folder, opts.Recursive)
	if err != nil {
		return nil, fmt.Errorf("scanning folder: %w", err)
	}

	result := &domain.BatchResult{
		Folder: folder,
		Total:  len(files),
		Errors: []domain.BatchError{},
	}

	logger.Section("Batch Indexing")
	logger.Info("Folder %s: %d files", folder, len(files))

	started := time.Now()
	for i, file := range files {
		if err := ctx.Err(); err != nil {
			result.Duration = time.Since(started)
			return result, err
		}

		emit(sink, domain.ProgressEvent{
			Index:    i + 1,
			Total:    len(files),
			FilePath: file,
			Status:   domain.ProgressStart,
			Message:  "processing",
		})

		action, processed, err := s.processFile(ctx, file, opts)
		switch {
		case err != nil:
			// One bad file never aborts the batch; cancellation does.
			if ctx.Err() != nil {
				result.Duration = time.Since(started)
				return result, ctx.Err()
			}
			result.Errors = append(result.Errors, domain.BatchError{FilePath: file, Err: err.Error()})
			s.trail.Append("indexing failed: %s -> %v", file, err)
			emit(sink, domain.ProgressEvent{
				Index:    i + 1,
				Total:    len(files),
				FilePath: file,
				Status:   domain.ProgressError,
				Message:  err.Error(),
			})

		case !processed:
			result.Skipped++
			emit(sink, domain.ProgressEvent{
				Index:    i + 1,
				Total:    len(files),
				FilePath: file,
				Status:   domain.ProgressSkip,
				Message:  "already indexed, unchanged",
			})

		default:
			result.Indexed++
			if action == domain.UpsertUpdated {
				result.Updated++
			}
			emit(sink, domain.ProgressEvent{
				Index:    i + 1,
				Total:    len(files),
				FilePath: file,
				Status:   domain.ProgressSuccess,
				Message:  "recognition complete",
			})
		}
	}

	result.Duration = time.Since(started)
	logger.Info("Batch done: %d indexed, %d skipped, %d errors in %s",
		result.Indexed, result.Skipped, len(result.Errors), result.Duration)
	return result, nil
}

// processFile runs the per-file state machine. The processed return is
// false when the staleness policy skipped the file.
func (s *IndexerService) processFile(ctx context.Context, file string, opts domain.BatchOptions) (domain.UpsertAction, bool, error) {
	if !opts.Force {
		stale, err := s.needsReindex(ctx, file)
		if err != nil {
			return "", false, err
		}
		if !stale {
			return "", false, nil
		}
	}

	action, err := s.IndexFile(ctx, file, opts)
	if err != nil {
		return "", false, err
	}
	return action, true, nil
}

// needsReindex reports whether file's current mtime is strictly newer
// than the one stored at last indexing. Unknown files and legacy rows
// without a stored mtime are always stale.
func (s *IndexerService) needsReindex(ctx context.Context, file string) (bool, error) {
	existing, err := s.store.Get(ctx, file)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return true, nil
		}
		return false, err
	}

	info, err := os.Stat(file)
	if err != nil {
		return false, fmt.Errorf("%w: %s", domain.ErrSourceUnreadable, file)
	}

	return info.ModTime().UnixNano() > existing.FileModifiedAt, nil
}

// indexRecognized writes a recognition result into the store.
func (s *IndexerService) indexRecognized(
	ctx context.Context,
	path, text string,
	pageCount int,
	opts domain.BatchOptions,
) (domain.UpsertAction, error) {
	lang := opts.Lang
	if lang == "" {
		lang = domain.DefaultLanguage
	}

	var modifiedAt int64
	if info, err := os.Stat(path); err == nil {
		modifiedAt = info.ModTime().UnixNano()
	}

	rec := &domain.DocumentRecord{
		FilePath:       path,
		Text:           text,
		PageCount:      pageCount,
		FileModifiedAt: modifiedAt,
		Lang:           lang,
	}

	action, err := s.store.Upsert(ctx, rec)
	if err != nil {
		return "", fmt.Errorf("upsert document: %w", err)
	}

	s.trail.Append("index %s: %s", action, path)
	logger.Debug("Indexed %s (%s, %d pages)", path, action, pageCount)
	return action, nil
}

// listPDFs returns the PDF files under folder, sorted by path for
// deterministic batch order.
func listPDFs(folder string, recursive bool) ([]string, error) {
	var files []string

	if recursive {
		err := filepath.WalkDir(folder, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && isPDF(path) {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	} else {
		entries, err := os.ReadDir(folder)
		if err != nil {
			return nil, err
		}
		for _, entry := range entries {
			if !entry.IsDir() && isPDF(entry.Name()) {
				files = append(files, filepath.Join(folder, entry.Name()))
			}
		}
	}

	sort.Strings(files)
	return files, nil
}

// isPDF matches the .pdf extension case-insensitively.
func isPDF(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".pdf")
}

// emit calls the sink if one is registered.
func emit(sink domain.ProgressSink, event domain.ProgressEvent) {
	if sink != nil {
		sink(event)
	}
}
