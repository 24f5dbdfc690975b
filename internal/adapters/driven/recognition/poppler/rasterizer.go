// Package poppler adapts the poppler-utils pdftoppm binary to the
// Rasterizer port.
package poppler

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"

	"github.com/inkwell-labs/scandex-cli/internal/core/domain"
	"github.com/inkwell-labs/scandex-cli/internal/core/ports/driven"
)

// Ensure Rasterizer implements the interface.
var _ driven.Rasterizer = (*Rasterizer)(nil)

// Rasterizer renders PDF pages to PNG by shelling out to pdftoppm.
type Rasterizer struct {
	binary string
}

// NewRasterizer constructs a pdftoppm-backed rasteriser.
func NewRasterizer() *Rasterizer {
	return &Rasterizer{binary: "pdftoppm"}
}

// Available reports whether pdftoppm is on PATH.
func (r *Rasterizer) Available() error {
	if _, err := exec.LookPath(r.binary); err != nil {
		return fmt.Errorf("%w: %s not found in PATH", domain.ErrRasterizerUnavailable, r.binary)
	}
	return nil
}

// RenderPage renders one 1-based page at the given DPI and returns the
// PNG bytes. The scratch directory is removed on every exit path.
func (r *Rasterizer) RenderPage(ctx context.Context, pdfPath string, page, dpi int) ([]byte, error) {
	if _, err := os.Stat(pdfPath); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrSourceUnreadable, pdfPath)
	}

	scratch, err := os.MkdirTemp("", "scandex-raster-*")
	if err != nil {
		return nil, fmt.Errorf("creating scratch directory: %w", err)
	}
	defer os.RemoveAll(scratch)

	prefix := filepath.Join(scratch, "page")
	pageArg := strconv.Itoa(page)

	cmd := exec.CommandContext(ctx, r.binary,
		"-png",
		"-r", strconv.Itoa(dpi),
		"-f", pageArg,
		"-l", pageArg,
		"-singlefile",
		pdfPath, prefix)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("rendering page %d of %s: %w: %s",
			page, pdfPath, err, bytes.TrimSpace(stderr.Bytes()))
	}

	data, err := os.ReadFile(prefix + ".png")
	if err != nil {
		return nil, fmt.Errorf("reading rendered page %d: %w", page, err)
	}
	return data, nil
}
