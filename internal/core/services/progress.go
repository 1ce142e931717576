package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Surya-Mathivanan/pathway-cli/internal/core/domain"
	"github.com/Surya-Mathivanan/pathway-cli/internal/core/ports/driven"
	"github.com/Surya-Mathivanan/pathway-cli/internal/core/ports/driving"
	"github.com/Surya-Mathivanan/pathway-cli/internal/logger"
)

// Ensure ProgressTracker implements the interface.
var _ driving.ProgressService = (*ProgressTracker)(nil)

// ProgressTracker keeps the current pathway and its progress in sync with
// the service. It never patches state locally: every toggle is followed by
// a full reload, and the snapshot is whatever the last completed reload
// returned. Overlapping reloads are not cancelled.
type ProgressTracker struct {
	api driven.PathwayAPI
	now func() time.Time

	mu       sync.RWMutex
	snapshot domain.ProgressSnapshot
}

// NewProgressTracker creates a tracker with an empty snapshot.
func NewProgressTracker(api driven.PathwayAPI) *ProgressTracker {
	return &ProgressTracker{
		api: api,
		now: time.Now,
	}
}

// Reload fetches the current pathway and replaces the snapshot.
// On failure the previous snapshot is kept and returned with the error.
func (t *ProgressTracker) Reload(ctx context.Context) (domain.ProgressSnapshot, error) {
	pathway, err := t.api.Current(ctx)
	if err != nil {
		return t.Snapshot(), fmt.Errorf("reload pathway: %w", err)
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	t.snapshot = domain.ProgressSnapshot{
		Pathway:  pathway,
		Progress: domain.ComputeProgress(pathway),
		Sequence: t.snapshot.Sequence + 1,
		LoadedAt: t.now(),
	}
	logger.Debug("progress: reload #%d %d/%d (%d%%)", t.snapshot.Sequence,
		t.snapshot.Progress.Completed, t.snapshot.Progress.Total, t.snapshot.Progress.Percentage)
	return t.snapshot, nil
}

// Toggle flips an item's completion flag, then reloads.
// A failed toggle leaves the snapshot untouched and skips the reload.
func (t *ProgressTracker) Toggle(ctx context.Context, itemID string) (domain.ProgressSnapshot, error) {
	if itemID == "" {
		return t.Snapshot(), fmt.Errorf("%w: missing item id", domain.ErrInvalidInput)
	}
	if err := t.api.ToggleProgress(ctx, itemID); err != nil {
		return t.Snapshot(), fmt.Errorf("toggle %s: %w", itemID, err)
	}
	return t.Reload(ctx)
}

// Snapshot returns the last successfully reloaded state.
func (t *ProgressTracker) Snapshot() domain.ProgressSnapshot {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.snapshot
}
