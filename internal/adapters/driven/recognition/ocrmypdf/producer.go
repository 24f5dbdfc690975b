// Package ocrmypdf adapts the ocrmypdf binary to the
// SearchablePDFProducer port.
package ocrmypdf

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"

	"github.com/inkwell-labs/scandex-cli/internal/core/domain"
	"github.com/inkwell-labs/scandex-cli/internal/core/ports/driven"
)

// Ensure Producer implements the interface.
var _ driven.SearchablePDFProducer = (*Producer)(nil)

// Producer shells out to ocrmypdf to produce a searchable PDF with the
// recognised text burned into each page's content stream.
type Producer struct {
	binary string
}

// NewProducer constructs an ocrmypdf-backed producer.
func NewProducer() *Producer {
	return &Producer{binary: "ocrmypdf"}
}

// Available reports whether ocrmypdf is on PATH.
func (p *Producer) Available() error {
	if _, err := exec.LookPath(p.binary); err != nil {
		return fmt.Errorf("%w: %s not found in PATH", domain.ErrProducerUnavailable, p.binary)
	}
	return nil
}

// Produce OCRs srcPath into dstPath. Deskew and clean match the
// behaviour users get from running ocrmypdf interactively on scans.
func (p *Producer) Produce(ctx context.Context, srcPath, dstPath, lang string) error {
	if _, err := os.Stat(srcPath); err != nil {
		return fmt.Errorf("%w: %s", domain.ErrSourceUnreadable, srcPath)
	}

	args := []string{"--deskew", "--clean", "--quiet"}
	if lang != "" {
		args = append(args, "-l", lang)
	}
	args = append(args, srcPath, dstPath)

	cmd := exec.CommandContext(ctx, p.binary, args...)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("producing searchable PDF for %s: %w: %s",
			srcPath, err, bytes.TrimSpace(stderr.Bytes()))
	}
	return nil
}
