package domain

import "time"

// ProgressStatus is the per-file state reported to a progress sink.
type ProgressStatus string

const (
	ProgressStart   ProgressStatus = "start"
	ProgressSuccess ProgressStatus = "success"
	ProgressSkip    ProgressStatus = "skip"
	ProgressError   ProgressStatus = "error"
)

// ProgressEvent describes one step of a batch run. Events are emitted
// synchronously and possibly from a non-UI goroutine; sinks that update
// UI state must redispatch onto their own event loop.
type ProgressEvent struct {
	// Index is the 1-based position of the file within the batch.
	Index int

	// Total is the number of files in the batch.
	Total int

	// FilePath is the file the event refers to.
	FilePath string

	// Status is one of start, success, skip, error.
	Status ProgressStatus

	// Message is a human-readable detail line.
	Message string
}

// ProgressSink receives batch progress events. A nil sink is valid and
// disables reporting.
type ProgressSink func(ProgressEvent)

// BatchOptions configures a batch indexing run.
type BatchOptions struct {
	// Lang is the recognition language. Empty means DefaultLanguage.
	Lang string

	// DPI is the render resolution for per-page recognition. Zero means
	// DefaultDPI.
	DPI int

	// Recursive walks subdirectories when scanning for PDFs.
	Recursive bool

	// Force reprocesses every file regardless of staleness.
	Force bool

	// NoCache bypasses the recognition cache entirely.
	NoCache bool

	// Pipeline selects the whole-document producer backend instead of
	// per-page recognition.
	Pipeline bool
}

// BatchError records one file that failed during a batch run. Failures
// are collected, never propagated, so one bad file cannot abort the
// batch.
type BatchError struct {
	FilePath string `json:"file"`
	Err      string `json:"error"`
}

// BatchResult is the aggregate outcome of a batch run.
type BatchResult struct {
	Folder   string        `json:"folder"`
	Total    int           `json:"total"`
	Indexed  int           `json:"indexed"`
	Updated  int           `json:"updated"`
	Skipped  int           `json:"skipped"`
	Errors   []BatchError  `json:"errors"`
	Duration time.Duration `json:"duration"`
}
