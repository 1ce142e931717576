package mcp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewServer(t *testing.T) {
	t.Run("nil ports returns error", func(t *testing.T) {
		server, err := NewServer(nil)
		require.Error(t, err)
		assert.Nil(t, server)
	})

	t.Run("missing progress service returns error", func(t *testing.T) {
		server, err := NewServer(&Ports{Pathway: &mockPathwayService{}})
		require.Error(t, err)
		assert.Nil(t, server)
		assert.ErrorIs(t, err, ErrMissingProgressService)
	})

	t.Run("valid ports creates server", func(t *testing.T) {
		server, err := NewServer(&Ports{
			Progress: &mockProgressService{},
			Pathway:  &mockPathwayService{},
		})
		require.NoError(t, err)
		assert.NotNil(t, server)
	})

	t.Run("assistant is optional", func(t *testing.T) {
		server, err := NewServer(&Ports{
			Progress:  &mockProgressService{},
			Pathway:   &mockPathwayService{},
			Assistant: &mockAssistantService{},
		})
		require.NoError(t, err)
		assert.NotNil(t, server)
	})
}

func TestPorts_Validate(t *testing.T) {
	tests := []struct {
		name    string
		ports   Ports
		wantErr error
	}{
		{name: "empty", ports: Ports{}, wantErr: ErrMissingProgressService},
		{name: "progress only", ports: Ports{Progress: &mockProgressService{}}, wantErr: ErrMissingPathwayService},
		{name: "required set", ports: Ports{Progress: &mockProgressService{}, Pathway: &mockPathwayService{}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.ports.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
