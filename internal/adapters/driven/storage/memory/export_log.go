package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/Surya-Mathivanan/pathway-cli/internal/core/domain"
	"github.com/Surya-Mathivanan/pathway-cli/internal/core/ports/driven"
)

// Ensure ExportLog implements the interface.
var _ driven.ExportLog = (*ExportLog)(nil)

// ExportLog is an in-memory implementation of driven.ExportLog.
type ExportLog struct {
	mu      sync.Mutex
	records []domain.ExportRecord
}

// NewExportLog creates an empty export log.
func NewExportLog() *ExportLog {
	return &ExportLog{}
}

// Record stores an export record.
func (l *ExportLog) Record(_ context.Context, rec domain.ExportRecord) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.records = append(l.records, rec)
	return nil
}

// List returns the newest records first.
func (l *ExportLog) List(_ context.Context, limit int) ([]domain.ExportRecord, error) {
	l.mu.Lock()
	out := make([]domain.ExportRecord, len(l.records))
	copy(out, l.records)
	l.mu.Unlock()

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
