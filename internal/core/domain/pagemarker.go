package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// pageMarkerPrefix opens the boundary line both recognition backends
// embed between pages. The full marker is "=== Page <N> ===".
const pageMarkerPrefix = "=== Page "

// PageMarker returns the literal boundary marker for a 1-based page
// number, as embedded in recognised text.
func PageMarker(page int) string {
	return fmt.Sprintf("=== Page %d ===", page)
}

// InferPage returns the page number of the nearest page marker at or
// before byte offset pos in text. Best effort: returns 1 when no marker
// precedes the position or the marker is malformed.
func InferPage(text string, pos int) int {
	if pos < 0 {
		return 1
	}
	if pos > len(text) {
		pos = len(text)
	}

	markerPos := strings.LastIndex(text[:pos], pageMarkerPrefix)
	if markerPos == -1 {
		return 1
	}

	rest := text[markerPos+len(pageMarkerPrefix):]
	end := strings.Index(rest, "===")
	if end == -1 {
		return 1
	}

	page, err := strconv.Atoi(strings.TrimSpace(rest[:end]))
	if err != nil || page < 1 {
		return 1
	}
	return page
}
