// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - DocumentStore: persistent index of recognised documents
//   - RecognitionCache: fingerprint-keyed store of prior OCR output
//   - PageTextExtractor: reads page count and page text from a PDF
//
// # Recognition Collaborators
//
// At least one recognition strategy must be usable:
//
//   - Rasterizer + Recognizer: per-page render and recognise (direct)
//   - SearchablePDFProducer: whole-document OCR into a new PDF (pipeline)
//
// Each collaborator reports its own availability via Available; the
// recognition service probes them once at construction and surfaces a
// typed unavailable error rather than failing mid-batch.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
