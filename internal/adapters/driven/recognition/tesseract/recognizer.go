// Package tesseract adapts the gosseract Tesseract binding to the
// Recognizer port.
package tesseract

import (
	"context"
	"fmt"
	"strings"

	"github.com/otiai10/gosseract/v2"

	"github.com/inkwell-labs/scandex-cli/internal/core/domain"
	"github.com/inkwell-labs/scandex-cli/internal/core/ports/driven"
)

// Ensure Recognizer implements the interface.
var _ driven.Recognizer = (*Recognizer)(nil)

// Recognizer runs Tesseract over page images. A fresh client is created
// per call; clients are cheap relative to recognition itself and a
// per-call client keeps the adapter goroutine-safe.
type Recognizer struct {
	clientFactory func() *gosseract.Client
}

// NewRecognizer constructs a Tesseract-backed recogniser.
func NewRecognizer() *Recognizer {
	return &Recognizer{clientFactory: gosseract.NewClient}
}

// Available reports whether Tesseract is installed with at least one
// trained language pack.
func (r *Recognizer) Available() error {
	langs, err := gosseract.GetAvailableLanguages()
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrRecognizerUnavailable, err)
	}
	if len(langs) == 0 {
		return fmt.Errorf("%w: no trained language data found", domain.ErrRecognizerUnavailable)
	}
	return nil
}

// Recognize extracts text from PNG-encoded image bytes. Composite
// language codes ("chi_tra+eng") select multiple trained packs.
func (r *Recognizer) Recognize(ctx context.Context, image []byte, lang string, dpi int) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	default:
	}

	c := r.clientFactory()
	defer c.Close()

	if err := c.SetImageFromBytes(image); err != nil {
		return "", fmt.Errorf("set image: %w", err)
	}
	if lang != "" {
		if err := c.SetLanguage(strings.Split(lang, "+")...); err != nil {
			return "", fmt.Errorf("set languages: %w", err)
		}
	}
	if dpi > 0 {
		if err := c.SetVariable(gosseract.SettableVariable("user_defined_dpi"), fmt.Sprint(dpi)); err != nil {
			return "", fmt.Errorf("set dpi: %w", err)
		}
	}

	text, err := c.Text()
	if err != nil {
		return "", fmt.Errorf("recognize text: %w", err)
	}
	return strings.TrimSpace(text), nil
}
