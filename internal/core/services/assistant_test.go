package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Surya-Mathivanan/pathway-cli/internal/core/domain"
)

func TestAssistantService_Ask(t *testing.T) {
	api := &mockAssistantAPI{answer: "Use a hash map."}
	svc := NewAssistantService(api)

	answer, err := svc.Ask(context.Background(), " How do I solve two sum? ")

	require.NoError(t, err)
	assert.Equal(t, "Use a hash map.", answer)
	assert.Equal(t, []string{"How do I solve two sum?"}, api.messages)
}

func TestAssistantService_Ask_EmptyMessage(t *testing.T) {
	api := &mockAssistantAPI{}
	svc := NewAssistantService(api)

	_, err := svc.Ask(context.Background(), "  \n ")

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, api.messages, "no request for empty input")
}

func TestAssistantService_Ask_Failure(t *testing.T) {
	svc := NewAssistantService(&mockAssistantAPI{chatErr: &domain.ServiceError{Status: 500}})

	_, err := svc.Ask(context.Background(), "hi")

	assert.ErrorIs(t, err, domain.ErrServiceFailure)
}

func TestAssistantService_Tips(t *testing.T) {
	svc := NewAssistantService(&mockAssistantAPI{tips: []string{"a", "b"}})

	tips, err := svc.Tips(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, tips)
}
