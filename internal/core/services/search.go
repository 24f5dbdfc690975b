package services

import (
	"context"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/inkwell-labs/scandex-cli/internal/core/domain"
	"github.com/inkwell-labs/scandex-cli/internal/core/ports/driven"
	"github.com/inkwell-labs/scandex-cli/internal/core/ports/driving"
	"github.com/inkwell-labs/scandex-cli/internal/logger"
)

const (
	defaultSearchLimit  = 20
	defaultContextChars = 80

	// ellipsis marks a snippet clipped at either end.
	ellipsis = "..."
)

// Ensure SearchService implements the interface.
var _ driving.SearchService = (*SearchService)(nil)

// SearchService answers substring keyword queries over the document
// index. Matching is case-insensitive and unranked; every hit carries a
// fixed score.
type SearchService struct {
	store driven.DocumentStore
}

// NewSearchService creates a search service over the given store.
func NewSearchService(store driven.DocumentStore) *SearchService {
	return &SearchService{store: store}
}

// Search scans all records newest-first and returns up to opts.Limit
// hits, one per matching document. An empty or whitespace-only keyword
// returns no results and no error.
func (s *SearchService) Search(ctx context.Context, keyword string, opts domain.SearchOptions) ([]domain.SearchResult, error) {
	logger.Section("Search Execution")

	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		logger.Debug("Empty keyword, returning no results")
		return []domain.SearchResult{}, nil
	}

	limit := opts.Limit
	if limit <= 0 {
		limit = defaultSearchLimit
	}
	contextChars := opts.ContextChars
	if contextChars <= 0 {
		contextChars = defaultContextChars
	}
	logger.Debug("Keyword: %q, limit: %d, context: %d", keyword, limit, contextChars)

	// Full scan in-process rather than a LIKE pre-filter: SQLite's LIKE
	// is only case-insensitive for ASCII, which would drop matches in
	// non-ASCII text.
	records, err := s.store.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}

	lowerKeyword := strings.ToLower(keyword)
	results := make([]domain.SearchResult, 0, limit)
	for i := range records {
		if len(results) >= limit {
			break
		}

		text := records[i].Text
		lowerText := strings.ToLower(text)
		pos := strings.Index(lowerText, lowerKeyword)
		if pos == -1 {
			continue
		}

		// The match offset is in lowered-text coordinates. Case mapping
		// can change rune byte lengths (Ⱥ grows, the Kelvin sign
		// shrinks), so translate back before slicing the original.
		start, end := pos, pos+len(lowerKeyword)
		if text != lowerText {
			start, end = matchBounds(text, pos, len(lowerKeyword))
		}

		results = append(results, domain.SearchResult{
			FilePath: records[i].FilePath,
			Page:     domain.InferPage(text, start),
			Snippet:  buildSnippet(text, start, end-start, contextChars),
			Keyword:  keyword,
			Score:    1.0,
		})
	}

	logger.Info("Search %q: %d results", keyword, len(results))
	return results, nil
}

// matchBounds translates a match spanning [lowPos, lowPos+lowLen) in
// strings.ToLower(text) into byte offsets in text itself. The two
// strings are walked in lockstep, advancing the lowered offset by the
// lowered byte length of each original rune.
func matchBounds(text string, lowPos, lowLen int) (start, end int) {
	low := 0
	start, end = len(text), len(text)
	started := false
	for i, r := range text {
		if !started && low >= lowPos {
			start = i
			started = true
		}
		if started && low >= lowPos+lowLen {
			return start, i
		}
		low += utf8.RuneLen(unicode.ToLower(r))
	}
	return start, end
}

// buildSnippet extracts the window of contextChars bytes around the
// match, clipped to the text bounds, with newlines collapsed to spaces
// and an ellipsis marking each clipped end. Window edges are pulled
// inward to the nearest rune boundary so the snippet stays valid UTF-8.
func buildSnippet(text string, pos, matchLen, contextChars int) string {
	start := pos - contextChars
	if start < 0 {
		start = 0
	}
	end := pos + matchLen + contextChars
	if end > len(text) {
		end = len(text)
	}

	for start < pos && !utf8.RuneStart(text[start]) {
		start++
	}
	for end > pos+matchLen && end < len(text) && !utf8.RuneStart(text[end]) {
		end--
	}

	snippet := strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ").Replace(text[start:end])

	prefix := ""
	if start > 0 {
		prefix = ellipsis
	}
	suffix := ""
	if end < len(text) {
		suffix = ellipsis
	}
	return prefix + snippet + suffix
}
