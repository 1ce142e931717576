package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Surya-Mathivanan/pathway-cli/internal/adapters/driving/mcp"
)

func TestMCPServeCmd_Flags(t *testing.T) {
	flag := mcpServeCmd.Flags().Lookup("port")
	require.NotNil(t, flag)
	assert.Equal(t, "p", flag.Shorthand)
	assert.Equal(t, "0", flag.DefValue)
}

func TestMCPServe_RequiresServices(t *testing.T) {
	useServices(t, Services{})

	_, err := execute(t, "mcp", "serve")

	assert.ErrorIs(t, err, mcp.ErrMissingProgressService)
}

func TestMCPServe_RejectsBadPort(t *testing.T) {
	useServices(t, Services{Progress: &mockProgress{}, Pathway: &mockPathways{}})

	_, err := execute(t, "mcp", "serve", "--port", "70000")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "port")
}
