package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/Surya-Mathivanan/pathway-cli/internal/core/domain"
	"github.com/Surya-Mathivanan/pathway-cli/internal/core/ports/driven"
	"github.com/Surya-Mathivanan/pathway-cli/internal/core/ports/driving"
	"github.com/Surya-Mathivanan/pathway-cli/internal/logger"
)

// Ensure Wizard implements the interface.
var _ driving.WizardService = (*Wizard)(nil)

// User-facing wizard messages.
const (
	msgDraftResetFailed = "Could not initialize a new pathway, you can still continue."
	msgGenerateFailed   = "Failed to generate pathway"
	msgSignInToGenerate = "Please sign in to generate a pathway."
)

// Wizard runs the questionnaire state machine against the pathway service.
type Wizard struct {
	api driven.PathwayAPI

	mu      sync.Mutex
	machine *domain.Wizard
}

// NewWizard creates a wizard service on the landing step.
func NewWizard(api driven.PathwayAPI) *Wizard {
	return &Wizard{
		api:     api,
		machine: domain.NewWizard(),
	}
}

// State returns a snapshot of the wizard.
func (w *Wizard) State() domain.WizardState {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.machine.State()
}

// Start moves to level selection and resets the server-side draft.
// An authorization failure returns the wizard to landing and reports
// domain.ErrSignInRequired. Any other failure only records a warning.
func (w *Wizard) Start(ctx context.Context) error {
	w.mu.Lock()
	err := w.machine.Start()
	w.mu.Unlock()
	if err != nil {
		return err
	}

	resetErr := w.api.ResetDraft(ctx)
	if resetErr == nil {
		return nil
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if errors.Is(resetErr, domain.ErrUnauthorized) {
		logger.Debug("wizard: draft reset unauthorized, aborting start")
		w.machine.AbortStart()
		return fmt.Errorf("%w: %w", domain.ErrSignInRequired, resetErr)
	}

	logger.Warn("wizard: draft reset failed: %v", resetErr)
	w.machine.SetWarning(domain.ServiceMessage(resetErr, msgDraftResetFailed))
	return nil
}

// SelectLevel records the skill level.
func (w *Wizard) SelectLevel(level domain.SkillLevel) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.machine.SelectLevel(level)
}

// SubmitDetails records the remaining preferences.
func (w *Wizard) SubmitDetails(hours domain.HoursPerDay, language domain.ProgrammingLanguage, prep domain.PrepTime) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.machine.SubmitDetails(hours, language, prep)
}

// SubmitQuiz applies the calibration score.
func (w *Wizard) SubmitQuiz(score int) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.machine.SubmitQuiz(score)
}

// Generate submits the answers. On failure the wizard returns to confirm
// with the error attached so the user can resubmit.
func (w *Wizard) Generate(ctx context.Context) (*domain.Pathway, error) {
	w.mu.Lock()
	req, err := w.machine.BeginSubmit()
	w.mu.Unlock()
	if err != nil {
		return nil, err
	}

	logger.Section("Generate Pathway")
	logger.Debug("level=%s hours=%s language=%s prep=%s",
		req.SkillLevel, req.HoursPerDay, req.ProgrammingLanguage, req.PrepTime)

	pathway, genErr := w.api.Generate(ctx, req)
	if genErr == nil && pathway == nil {
		genErr = &domain.ServiceError{Message: msgGenerateFailed}
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if genErr != nil {
		if errors.Is(genErr, domain.ErrUnauthorized) {
			_ = w.machine.FailSubmit(msgSignInToGenerate)
			return nil, fmt.Errorf("%w: %w", domain.ErrSignInRequired, genErr)
		}
		_ = w.machine.FailSubmit(domain.ServiceMessage(genErr, msgGenerateFailed))
		return nil, fmt.Errorf("generate pathway: %w", genErr)
	}

	if err := w.machine.CompleteSubmit(); err != nil {
		return nil, err
	}
	logger.Info("Generated pathway %q", pathway.Title)
	return pathway, nil
}

// Reset returns the wizard to the landing step.
func (w *Wizard) Reset() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.machine.Reset()
}
