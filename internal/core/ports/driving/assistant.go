package driving

import "context"

// AssistantService answers study questions.
type AssistantService interface {
	// Ask sends a question to the assistant.
	Ask(ctx context.Context, message string) (string, error)

	// Tips returns motivational tips.
	Tips(ctx context.Context) ([]string, error)
}
