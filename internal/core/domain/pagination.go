package domain

import "math"

// PageSlice describes one page of a paginated export.
type PageSlice struct {
	// Page is the 1-based page number.
	Page int
	// Offset is the vertical position the full image is drawn at on this page.
	// It is 0 on the first page and moves up by one page height per page.
	Offset float64
	// Top and Bottom bound the visible slice of the image, [Top, Bottom).
	Top    float64
	Bottom float64
}

// PageLayout is the result of paginating a rendered surface.
type PageLayout struct {
	// ImageWidth and ImageHeight are the surface dimensions in page units.
	ImageWidth  float64
	ImageHeight float64
	PageHeight  float64
	Pages       []PageSlice
}

// Paginate slices a rendered surface of surfaceWidth x surfaceHeight pixels
// into pages of pageWidth x pageHeight physical units. The surface is scaled
// to the page width; every page redraws the whole image shifted up so that
// consecutive pages tile [0, imgHeight) without gaps or overlap.
// Degenerate inputs produce a layout with no pages.
func Paginate(surfaceWidth, surfaceHeight, pageWidth, pageHeight float64) PageLayout {
	layout := PageLayout{ImageWidth: pageWidth, PageHeight: pageHeight}
	if surfaceWidth <= 0 || surfaceHeight <= 0 || pageWidth <= 0 || pageHeight <= 0 {
		return layout
	}

	imgHeight := surfaceHeight * pageWidth / surfaceWidth
	layout.ImageHeight = imgHeight

	add := func(offset float64) {
		top := -offset
		layout.Pages = append(layout.Pages, PageSlice{
			Page:   len(layout.Pages) + 1,
			Offset: offset,
			Top:    top,
			Bottom: math.Min(top+pageHeight, imgHeight),
		})
	}

	heightLeft := imgHeight
	add(0)
	heightLeft -= pageHeight

	for heightLeft > 0 {
		add(heightLeft - imgHeight)
		heightLeft -= pageHeight
	}

	return layout
}
