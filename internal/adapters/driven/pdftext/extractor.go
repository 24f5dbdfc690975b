// Package pdftext reads page counts and page text straight from PDF
// content streams using the pure-Go ledongthuc/pdf reader. It performs
// no recognition; for scanned pages it only sees text a producer has
// already burned in.
package pdftext

import (
	"fmt"

	"github.com/ledongthuc/pdf"

	"github.com/inkwell-labs/scandex-cli/internal/core/domain"
	"github.com/inkwell-labs/scandex-cli/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.PageTextExtractor = (*Extractor)(nil)

// Extractor reads PDF page text without external dependencies.
type Extractor struct{}

// NewExtractor constructs a page text extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// PageCount returns the number of pages in the PDF.
func (e *Extractor) PageCount(path string) (int, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %v", domain.ErrSourceUnreadable, path, err)
	}
	defer f.Close()

	return reader.NumPage(), nil
}

// ExtractPages returns the text of every page in document order. Pages
// without content yield an empty string rather than an error.
func (e *Extractor) ExtractPages(path string) ([]string, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrSourceUnreadable, path, err)
	}
	defer f.Close()

	total := reader.NumPage()
	pages := make([]string, 0, total)
	for i := 1; i <= total; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			pages = append(pages, "")
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return nil, fmt.Errorf("extracting text from page %d of %s: %w", i, path, err)
		}
		pages = append(pages, text)
	}

	return pages, nil
}
