package domain

// SearchOptions configures a keyword query.
type SearchOptions struct {
	// Limit is the maximum number of results. Zero or negative falls
	// back to a default of 20.
	Limit int

	// ContextChars is the number of characters kept on each side of a
	// match when building the snippet. Zero or negative falls back to
	// a default of 80.
	ContextChars int
}

// SearchResult is a single keyword hit. Results are query-time only
// and never persisted.
type SearchResult struct {
	// FilePath is the indexed document the match was found in.
	FilePath string

	// Page is the page number inferred from the nearest preceding page
	// marker. Best effort: 1 when no marker precedes the match.
	Page int

	// Snippet is the match with surrounding context, newlines collapsed
	// to spaces, ellipsis-marked where clipped.
	Snippet string

	// Keyword is the sanitised query term that produced the hit.
	Keyword string

	// Score is the relevance score. Substring search is unranked, so
	// every hit scores 1.0.
	Score float64
}
