package driven

import (
	"context"
	"image"

	"github.com/Surya-Mathivanan/pathway-cli/internal/core/domain"
)

// SurfaceRenderer draws a pathway onto a single tall raster surface.
type SurfaceRenderer interface {
	// Render returns the plan drawn at the given scale factor.
	Render(ctx context.Context, p *domain.Pathway, scale float64) (image.Image, error)
}

// DocumentWriter writes a paginated document built from a rendered surface.
type DocumentWriter interface {
	// Write places img on each page of layout and saves the document to path.
	Write(ctx context.Context, path string, img image.Image, layout domain.PageLayout) error
}
