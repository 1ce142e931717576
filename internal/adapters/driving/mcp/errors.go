// Package mcp provides an MCP (Model Context Protocol) server adapter.
// It lets AI assistants read the current pathway and record progress.
package mcp

import "errors"

var (
	// ErrMissingProgressService is returned when the progress service is not provided.
	ErrMissingProgressService = errors.New("mcp: progress service is required")

	// ErrMissingPathwayService is returned when the pathway service is not provided.
	ErrMissingPathwayService = errors.New("mcp: pathway service is required")
)
