package driven

import "context"

// Rasterizer renders a single PDF page to an encoded raster image.
type Rasterizer interface {
	// Available reports whether the rasteriser can run, e.g. whether its
	// external binary is installed.
	Available() error

	// RenderPage renders the 1-based page of the PDF at the given DPI
	// and returns PNG-encoded bytes.
	RenderPage(ctx context.Context, pdfPath string, page, dpi int) ([]byte, error)
}

// Recognizer turns a page image into text.
type Recognizer interface {
	// Available reports whether the recognition engine can run.
	Available() error

	// Recognize extracts text from PNG-encoded image bytes using the
	// given language code. DPI is a layout hint; zero means unknown.
	Recognize(ctx context.Context, image []byte, lang string, dpi int) (string, error)
}

// SearchablePDFProducer runs whole-document OCR, writing a new PDF with
// the recognised text burned into the page content streams.
type SearchablePDFProducer interface {
	// Available reports whether the producer can run.
	Available() error

	// Produce OCRs srcPath into dstPath using the given language code.
	Produce(ctx context.Context, srcPath, dstPath, lang string) error
}

// PageTextExtractor reads textual content directly from a PDF's page
// content streams. Used to count pages before rasterising and to read
// back the output of a SearchablePDFProducer.
type PageTextExtractor interface {
	// PageCount returns the number of pages in the PDF.
	PageCount(path string) (int, error)

	// ExtractPages returns the text of every page in document order.
	ExtractPages(path string) ([]string, error)
}
