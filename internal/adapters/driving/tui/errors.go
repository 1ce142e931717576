package tui

import "errors"

// ErrMissingSessionService is returned when the session service is not provided.
var ErrMissingSessionService = errors.New("tui: session service is required")

// ErrMissingWizardService is returned when the wizard service is not provided.
var ErrMissingWizardService = errors.New("tui: wizard service is required")

// ErrMissingProgressService is returned when the progress service is not provided.
var ErrMissingProgressService = errors.New("tui: progress service is required")

// ErrMissingPathwayService is returned when the pathway service is not provided.
var ErrMissingPathwayService = errors.New("tui: pathway service is required")

// ErrInvalidPorts is returned when ports validation fails.
var ErrInvalidPorts = errors.New("tui: invalid ports configuration")
