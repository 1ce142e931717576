package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Surya-Mathivanan/pathway-cli/internal/adapters/driving/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  `Commands for the Model Context Protocol (MCP) server integration.`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server so AI assistants can read your
current pathway and record progress.

Tools: pathway_progress, pathway_toggle, pathway_list, motivation_tips,
ask_assistant. Resources: pathway://current and pathway://days/{day}.

By default the server speaks JSON-RPC over stdio. Use --port to serve
streamable HTTP instead.

Examples:
  # Stdio mode (default)
  pathway mcp serve

  # HTTP mode (for MCP Inspector)
  pathway mcp serve --port 8080

Client configuration:
  {
    "mcpServers": {
      "pathway": {
        "command": "/path/to/pathway",
        "args": ["mcp", "serve"]
      }
    }
  }`,
	RunE: runMCPServe,
}

func init() {
	mcpServeCmd.Flags().IntP("port", "p", 0, "HTTP port (0 = use stdio)")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	port, err := cmd.Flags().GetInt("port")
	if err != nil {
		return fmt.Errorf("getting port flag: %w", err)
	}
	if port < 0 || port > 65535 {
		return errors.New("port must be between 0 and 65535")
	}

	server, err := mcp.NewServer(&mcp.Ports{
		Progress:  progressService,
		Pathway:   pathwayService,
		Assistant: assistantService,
	})
	if err != nil {
		return err
	}

	if port > 0 {
		addr := fmt.Sprintf(":%d", port)
		cmd.Printf("MCP server listening on http://localhost%s\n", addr)
		return server.RunHTTP(cmd.Context(), addr)
	}

	return server.Run(cmd.Context())
}
