package driving

import (
	"context"

	"github.com/Surya-Mathivanan/pathway-cli/internal/core/domain"
)

// PathwayService provides read access to pathways.
type PathwayService interface {
	// Current returns the current pathway, or domain.ErrNoPathway.
	Current(ctx context.Context) (*domain.Pathway, error)

	// List returns pathway summaries in server order.
	List(ctx context.Context) ([]domain.PathwaySummary, error)

	// Dashboard loads the current pathway, history and tips together.
	Dashboard(ctx context.Context) (*domain.Dashboard, error)

	// Adjust asks for an adjustment suggestion for the current plan.
	Adjust(ctx context.Context, note string) (string, error)
}
