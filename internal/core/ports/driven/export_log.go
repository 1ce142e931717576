package driven

import (
	"context"

	"github.com/Surya-Mathivanan/pathway-cli/internal/core/domain"
)

// ExportLog records completed exports.
type ExportLog interface {
	// Record stores an export record.
	Record(ctx context.Context, rec domain.ExportRecord) error

	// List returns the most recent records first, at most limit entries.
	// A limit of 0 or less returns every record.
	List(ctx context.Context, limit int) ([]domain.ExportRecord, error)
}
