package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/inkwell-labs/scandex-cli/internal/core/domain"
	"github.com/inkwell-labs/scandex-cli/internal/core/ports/driven"
	"github.com/inkwell-labs/scandex-cli/internal/logger"
)

// RecognitionService turns a source PDF into marker-delimited text plus
// a page count. Two interchangeable strategies produce the same output
// shape: direct per-page rasterise-and-recognise, and a whole-document
// producer whose output is read back page by page.
type RecognitionService struct {
	rasterizer driven.Rasterizer
	recognizer driven.Recognizer
	producer   driven.SearchablePDFProducer
	extractor  driven.PageTextExtractor
	cache      driven.RecognitionCache

	// Availability is probed once at construction so a missing
	// collaborator fails fast per call instead of mid-document.
	directErr   error
	pipelineErr error
}

// NewRecognitionService wires the recognition collaborators. The
// extractor is required; either strategy's collaborators may be absent,
// in which case calls selecting that strategy fail with a typed
// unavailable error. The cache may be nil to disable caching entirely.
func NewRecognitionService(
	rasterizer driven.Rasterizer,
	recognizer driven.Recognizer,
	producer driven.SearchablePDFProducer,
	extractor driven.PageTextExtractor,
	cache driven.RecognitionCache,
) (*RecognitionService, error) {
	if extractor == nil {
		return nil, domain.ErrExtractorUnavailable
	}

	s := &RecognitionService{
		rasterizer: rasterizer,
		recognizer: recognizer,
		producer:   producer,
		extractor:  extractor,
		cache:      cache,
	}

	switch {
	case rasterizer == nil:
		s.directErr = domain.ErrRasterizerUnavailable
	case recognizer == nil:
		s.directErr = domain.ErrRecognizerUnavailable
	default:
		if err := rasterizer.Available(); err != nil {
			s.directErr = err
		} else if err := recognizer.Available(); err != nil {
			s.directErr = err
		}
	}

	if producer == nil {
		s.pipelineErr = domain.ErrProducerUnavailable
	} else if err := producer.Available(); err != nil {
		s.pipelineErr = err
	}

	if s.directErr != nil && s.pipelineErr != nil {
		return nil, fmt.Errorf("no recognition backend usable: %w", s.directErr)
	}

	return s, nil
}

// Recognize extracts text and page count from the PDF at path,
// consulting the cache first unless opts.NoCache is set. The returned
// text carries a "=== Page <N> ===" marker before each page.
func (s *RecognitionService) Recognize(ctx context.Context, path string, opts domain.BatchOptions) (string, int, error) {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return "", 0, fmt.Errorf("%w: %s", domain.ErrSourceUnreadable, path)
	}

	if opts.Pipeline {
		if s.pipelineErr != nil {
			return "", 0, s.pipelineErr
		}
	} else if s.directErr != nil {
		return "", 0, s.directErr
	}

	lang := opts.Lang
	if lang == "" {
		lang = domain.DefaultLanguage
	}
	dpi := opts.DPI
	if dpi <= 0 {
		dpi = domain.DefaultDPI
	}

	if !opts.NoCache && s.cache != nil {
		if entry, ok := s.cache.Lookup(path); ok {
			logger.Debug("Cache hit: %s", path)
			return entry.Text, entry.PageCount, nil
		}
	}

	var text string
	var pageCount int
	if opts.Pipeline {
		text, pageCount, err = s.recognizeViaProducer(ctx, path, lang)
	} else {
		text, pageCount, err = s.recognizeDirect(ctx, path, lang, dpi)
	}
	if err != nil {
		return "", 0, err
	}

	if !opts.NoCache && s.cache != nil {
		entry := domain.CacheEntry{
			Text:      text,
			PageCount: pageCount,
			Lang:      lang,
			DPI:       dpi,
			Backend:   backendName(opts.Pipeline),
			CachedAt:  time.Now(),
		}
		if err := s.cache.Store(path, entry); err != nil {
			// A result we could not cache is still a result.
			logger.Warn("Caching %s failed: %v", path, err)
		}
	}

	return text, pageCount, nil
}

// recognizeDirect renders each page at the requested DPI and recognises
// it individually.
func (s *RecognitionService) recognizeDirect(ctx context.Context, path, lang string, dpi int) (string, int, error) {
	pageCount, err := s.extractor.PageCount(path)
	if err != nil {
		return "", 0, err
	}

	parts := make([]string, 0, pageCount)
	for page := 1; page <= pageCount; page++ {
		select {
		case <-ctx.Done():
			return "", 0, ctx.Err()
		default:
		}

		image, err := s.rasterizer.RenderPage(ctx, path, page, dpi)
		if err != nil {
			return "", 0, fmt.Errorf("render page %d: %w", page, err)
		}
		text, err := s.recognizer.Recognize(ctx, image, lang, dpi)
		if err != nil {
			return "", 0, fmt.Errorf("recognize page %d: %w", page, err)
		}
		parts = append(parts, pagePart(page, text))
	}

	return strings.Join(parts, "\n"), pageCount, nil
}

// recognizeViaProducer runs the whole-document producer into a scratch
// PDF, then reads the burned-in text back page by page. The scratch
// file is removed on every exit path.
func (s *RecognitionService) recognizeViaProducer(ctx context.Context, path, lang string) (string, int, error) {
	scratch := filepath.Join(os.TempDir(), "scandex-"+uuid.NewString()+".pdf")
	defer os.Remove(scratch)

	if err := s.producer.Produce(ctx, path, scratch, lang); err != nil {
		return "", 0, err
	}

	pages, err := s.extractor.ExtractPages(scratch)
	if err != nil {
		return "", 0, fmt.Errorf("read back produced PDF: %w", err)
	}

	parts := make([]string, 0, len(pages))
	for i, text := range pages {
		parts = append(parts, pagePart(i+1, text))
	}

	return strings.Join(parts, "\n"), len(pages), nil
}

// pagePart formats one page as marker, text, trailing newline.
func pagePart(page int, text string) string {
	return fmt.Sprintf("%s\n%s\n", domain.PageMarker(page), strings.TrimSpace(text))
}

// backendName maps the strategy flag to the identifier stored in cache
// entries.
func backendName(pipeline bool) string {
	if pipeline {
		return domain.BackendPipeline
	}
	return domain.BackendDirect
}
