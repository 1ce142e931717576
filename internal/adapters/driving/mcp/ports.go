package mcp

import (
	"github.com/Surya-Mathivanan/pathway-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
type Ports struct {
	// Progress reads and toggles completion of the current pathway.
	Progress driving.ProgressService

	// Pathway lists pathways.
	Pathway driving.PathwayService

	// Assistant answers questions. Optional.
	Assistant driving.AssistantService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Progress == nil {
		return ErrMissingProgressService
	}
	if p.Pathway == nil {
		return ErrMissingPathwayService
	}
	return nil
}
