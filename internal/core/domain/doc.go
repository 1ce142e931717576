// Package domain defines the core business entities for the pathway client.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Pathway: A generated study plan with a daily schedule and resource sections
//   - SectionItem: A single trackable resource with a completion flag
//   - QuestionnaireAnswers: The learner's intake preferences
//   - Wizard: The adaptive intake state machine
//   - Progress: Completion counts aggregated over a Pathway
//   - Session: The current authentication snapshot
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
