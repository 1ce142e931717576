package driving

import (
	"context"

	"github.com/Surya-Mathivanan/pathway-cli/internal/core/domain"
)

// ProgressService tracks completion of the current pathway.
type ProgressService interface {
	// Reload fetches the current pathway and replaces the snapshot.
	Reload(ctx context.Context) (domain.ProgressSnapshot, error)

	// Toggle flips an item's completion flag and reloads.
	Toggle(ctx context.Context, itemID string) (domain.ProgressSnapshot, error)

	// Snapshot returns the last successfully reloaded state.
	Snapshot() domain.ProgressSnapshot
}
