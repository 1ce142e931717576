package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/Surya-Mathivanan/pathway-cli/internal/core/domain"
	"github.com/Surya-Mathivanan/pathway-cli/internal/core/ports/driven"
	"github.com/Surya-Mathivanan/pathway-cli/internal/core/ports/driving"
)

// Ensure AssistantService implements the interface.
var _ driving.AssistantService = (*AssistantService)(nil)

// AssistantService answers study questions.
type AssistantService struct {
	api driven.AssistantAPI
}

// NewAssistantService creates an assistant service.
func NewAssistantService(api driven.AssistantAPI) *AssistantService {
	return &AssistantService{api: api}
}

// Ask sends a question to the assistant. Empty questions are rejected
// without a request.
func (s *AssistantService) Ask(ctx context.Context, message string) (string, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return "", fmt.Errorf("%w: empty message", domain.ErrInvalidInput)
	}
	answer, err := s.api.Chat(ctx, message)
	if err != nil {
		return "", fmt.Errorf("chat: %w", err)
	}
	return answer, nil
}

// Tips returns motivational tips.
func (s *AssistantService) Tips(ctx context.Context) ([]string, error) {
	tips, err := s.api.Motivation(ctx)
	if err != nil {
		return nil, fmt.Errorf("motivation: %w", err)
	}
	return tips, nil
}
