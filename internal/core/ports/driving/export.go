package driving

import (
	"context"

	"github.com/Surya-Mathivanan/pathway-cli/internal/core/domain"
)

// ExportService writes pathways to files.
type ExportService interface {
	// Export writes p in the given format into dir.
	// Returns domain.ErrExportInProgress if another export is running.
	Export(ctx context.Context, p *domain.Pathway, format domain.ExportFormat, dir string) (*domain.ExportRecord, error)

	// History returns recent exports, newest first.
	History(ctx context.Context, limit int) ([]domain.ExportRecord, error)
}
