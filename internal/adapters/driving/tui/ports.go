// Package tui provides an interactive terminal user interface for pathway.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/Surya-Mathivanan/pathway-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Session gates protected views and drives sign-in.
	Session driving.SessionService

	// Wizard runs the questionnaire.
	Wizard driving.WizardService

	// Progress tracks completion of the current pathway.
	Progress driving.ProgressService

	// Pathway loads the dashboard and pathway history.
	Pathway driving.PathwayService

	// Assistant answers study questions. Optional.
	Assistant driving.AssistantService

	// Export writes the pathway to disk. Optional.
	Export driving.ExportService

	// Settings provides the export directory. Optional.
	Settings driving.SettingsService
}

// NewPorts creates a new Ports aggregate with the required services.
func NewPorts(
	session driving.SessionService,
	wizard driving.WizardService,
	progress driving.ProgressService,
	pathway driving.PathwayService,
) *Ports {
	return &Ports{
		Session:  session,
		Wizard:   wizard,
		Progress: progress,
		Pathway:  pathway,
	}
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil {
		return ErrInvalidPorts
	}
	if p.Session == nil {
		return ErrMissingSessionService
	}
	if p.Wizard == nil {
		return ErrMissingWizardService
	}
	if p.Progress == nil {
		return ErrMissingProgressService
	}
	if p.Pathway == nil {
		return ErrMissingPathwayService
	}
	return nil
}

// exportDir returns the configured export directory, or "" for the
// working directory.
func (p *Ports) exportDir() string {
	if p.Settings == nil {
		return ""
	}
	settings, err := p.Settings.Get()
	if err != nil || settings == nil {
		return ""
	}
	return settings.Export.Dir
}
