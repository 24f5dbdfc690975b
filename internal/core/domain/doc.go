// Package domain defines the core business entities for Scandex.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - DocumentRecord: One indexed PDF with its recognised text
//   - SearchResult: A keyword hit with snippet and inferred page
//   - ProgressEvent: Per-file progress during a batch run
//   - BatchResult: Aggregate outcome of a batch run
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
