package driving

import (
	"context"

	"github.com/Surya-Mathivanan/pathway-cli/internal/core/domain"
)

// WizardService drives the questionnaire wizard and its backend calls.
// Methods return domain.ErrSignInRequired when the user must sign in.
type WizardService interface {
	// State returns a snapshot of the wizard.
	State() domain.WizardState

	// Start begins a new run and resets the server-side draft.
	Start(ctx context.Context) error

	// SelectLevel records the skill level.
	SelectLevel(level domain.SkillLevel) error

	// SubmitDetails records hours per day, language and preparation time.
	SubmitDetails(hours domain.HoursPerDay, language domain.ProgrammingLanguage, prep domain.PrepTime) error

	// SubmitQuiz applies the calibration quiz score.
	SubmitQuiz(score int) error

	// Generate submits the answers and returns the generated pathway.
	Generate(ctx context.Context) (*domain.Pathway, error)

	// Reset returns the wizard to the landing step.
	Reset()
}
