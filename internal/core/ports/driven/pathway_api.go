package driven

import (
	"context"

	"github.com/Surya-Mathivanan/pathway-cli/internal/core/domain"
)

// PathwayAPI is the plan-generation backend.
//
// Every method returns domain.ErrUnauthorized when the backend rejects the
// bearer credential. Other non-2xx responses wrap domain.ErrServiceFailure.
type PathwayAPI interface {
	// ResetDraft discards any in-progress draft before a new wizard run.
	ResetDraft(ctx context.Context) error

	// Generate creates a new pathway. It replaces the current one server-side.
	Generate(ctx context.Context, req domain.GenerationRequest) (*domain.Pathway, error)

	// Current returns the current pathway, or nil if none has been generated.
	Current(ctx context.Context) (*domain.Pathway, error)

	// List returns pathway summaries in server order.
	List(ctx context.Context) ([]domain.PathwaySummary, error)

	// ToggleProgress flips the completion flag of an item in the current pathway.
	// The response carries no state; callers must reload.
	ToggleProgress(ctx context.Context, itemID string) error

	// Adjust asks the backend for a plan adjustment suggestion.
	Adjust(ctx context.Context, note string) (string, error)
}

// AssistantAPI is the study assistant backend.
type AssistantAPI interface {
	// Chat sends a question and returns the answer.
	Chat(ctx context.Context, message string) (string, error)

	// Motivation returns a few short motivational tips.
	Motivation(ctx context.Context) ([]string, error)
}
