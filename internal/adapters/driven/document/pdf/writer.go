// Package pdf writes paginated PDF documents from a rendered surface.
package pdf

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"

	"github.com/go-pdf/fpdf"

	"github.com/Surya-Mathivanan/pathway-cli/internal/core/domain"
	"github.com/Surya-Mathivanan/pathway-cli/internal/core/ports/driven"
	"github.com/Surya-Mathivanan/pathway-cli/internal/logger"
)

// Ensure Writer implements the interface.
var _ driven.DocumentWriter = (*Writer)(nil)

const surfaceImageName = "surface"

// Writer produces A4 portrait PDFs in millimetres.
type Writer struct {
	// Title is stored in the document metadata.
	Title string
}

// NewWriter creates a PDF writer.
func NewWriter() *Writer {
	return &Writer{Title: "Pathway"}
}

// Write draws img once per page of layout, shifted by the page offset, and
// saves the document to path.
func (w *Writer) Write(ctx context.Context, path string, img image.Image, layout domain.PageLayout) error {
	if img == nil || len(layout.Pages) == 0 {
		return fmt.Errorf("%w: nothing to write", domain.ErrRenderFailed)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return fmt.Errorf("%w: encode surface: %w", domain.ErrRenderFailed, err)
	}

	doc := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           fpdf.SizeType{Wd: layout.ImageWidth, Ht: layout.PageHeight},
	})
	doc.SetTitle(w.Title, true)
	doc.SetMargins(0, 0, 0)
	doc.SetAutoPageBreak(false, 0)

	opts := fpdf.ImageOptions{ImageType: "PNG"}
	doc.RegisterImageOptionsReader(surfaceImageName, opts, &buf)

	for _, page := range layout.Pages {
		if err := ctx.Err(); err != nil {
			return err
		}
		doc.AddPage()
		doc.ImageOptions(surfaceImageName, 0, page.Offset, layout.ImageWidth, layout.ImageHeight, false, opts, 0, "")
		logger.Debug("pdf page %d: offset=%.2fmm slice=[%.2f, %.2f)", page.Page, page.Offset, page.Top, page.Bottom)
	}

	if err := doc.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("%w: write %s: %w", domain.ErrRenderFailed, path, err)
	}
	return nil
}
