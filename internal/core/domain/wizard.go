package domain

import "fmt"

// WizardStep identifies where the intake wizard currently is.
type WizardStep int

// Wizard steps in the order they are normally visited.
const (
	StepLanding WizardStep = iota
	StepLevelSelect
	StepDetails
	StepQuiz
	StepConfirm
	StepSubmitting
	StepDone
)

// String returns the string representation of the step.
func (s WizardStep) String() string {
	switch s {
	case StepLanding:
		return "landing"
	case StepLevelSelect:
		return "level-select"
	case StepDetails:
		return "details"
	case StepQuiz:
		return "quiz"
	case StepConfirm:
		return "confirm"
	case StepSubmitting:
		return "submitting"
	case StepDone:
		return "done"
	default:
		return "unknown"
	}
}

// WizardState is an immutable snapshot of the wizard for presentation.
type WizardState struct {
	Step    WizardStep
	Answers QuestionnaireAnswers
	// Quiz is nil unless the calibration quiz was taken.
	Quiz *QuizResult
	// Warning is a non-blocking notice, e.g. when the draft reset failed.
	Warning string
	// Error is the message from the last failed generation attempt.
	Error string
}

// Wizard is the adaptive intake state machine.
//
//	landing → level-select → details → {quiz | confirm} → submitting → {done | confirm(error)}
//
// It holds no IO; callers drive the transitions and perform requests.
// Wizard is not safe for concurrent use.
type Wizard struct {
	step    WizardStep
	answers QuestionnaireAnswers
	quiz    *QuizResult
	warning string
	err     string
}

// NewWizard creates a wizard on the landing step with default answers.
func NewWizard() *Wizard {
	return &Wizard{
		step:    StepLanding,
		answers: DefaultAnswers(),
	}
}

// Step returns the current step.
func (w *Wizard) Step() WizardStep {
	return w.step
}

// State returns a snapshot of the wizard.
func (w *Wizard) State() WizardState {
	state := WizardState{
		Step:    w.step,
		Answers: w.answers,
		Warning: w.warning,
		Error:   w.err,
	}
	if w.quiz != nil {
		q := *w.quiz
		state.Quiz = &q
	}
	return state
}

// Start moves from landing to level-select.
func (w *Wizard) Start() error {
	if err := w.expect(StepLanding); err != nil {
		return err
	}
	w.answers = DefaultAnswers()
	w.quiz = nil
	w.warning = ""
	w.err = ""
	w.step = StepLevelSelect
	return nil
}

// AbortStart returns to landing. Used when the draft reset was rejected
// for authorization and the user must sign in first.
func (w *Wizard) AbortStart() {
	if w.step == StepLevelSelect {
		w.step = StepLanding
	}
}

// SetWarning records a non-blocking notice without changing step.
func (w *Wizard) SetWarning(msg string) {
	w.warning = msg
}

// SelectLevel records the skill level and moves to details.
func (w *Wizard) SelectLevel(level SkillLevel) error {
	if err := w.expect(StepLevelSelect); err != nil {
		return err
	}
	if !level.IsValid() {
		return fmt.Errorf("%w: skill level %q", ErrInvalidInput, level)
	}
	w.answers.SkillLevel = level
	w.step = StepDetails
	return nil
}

// SubmitDetails records the remaining preferences. The wizard moves to the
// quiz when the selected level requires calibration, otherwise to confirm.
func (w *Wizard) SubmitDetails(hours HoursPerDay, language ProgrammingLanguage, prep PrepTime) error {
	if err := w.expect(StepDetails); err != nil {
		return err
	}
	answers := w.answers
	answers.HoursPerDay = hours
	answers.ProgrammingLanguage = language
	answers.PrepTime = prep
	if err := answers.Validate(); err != nil {
		return err
	}
	w.answers = answers

	if w.answers.SkillLevel.RequiresQuiz() {
		w.step = StepQuiz
	} else {
		w.step = StepConfirm
	}
	return nil
}

// SubmitQuiz applies the calibration score and moves to confirm.
// A downgraded level is final; no second quiz is offered.
func (w *Wizard) SubmitQuiz(score int) error {
	if err := w.expect(StepQuiz); err != nil {
		return err
	}
	if err := ValidateQuizScore(score); err != nil {
		return err
	}
	before := w.answers.SkillLevel
	after := DowngradeLevel(before, score)
	w.quiz = &QuizResult{Score: score, LevelBefore: before, LevelAfter: after}
	w.answers.SkillLevel = after
	w.step = StepConfirm
	return nil
}

// BeginSubmit moves from confirm to submitting and returns the payload
// built from the current (post-downgrade) answers.
func (w *Wizard) BeginSubmit() (GenerationRequest, error) {
	if err := w.expect(StepConfirm); err != nil {
		return GenerationRequest{}, err
	}
	w.err = ""
	w.step = StepSubmitting
	return w.answers.Request(), nil
}

// CompleteSubmit marks generation as successful.
func (w *Wizard) CompleteSubmit() error {
	if err := w.expect(StepSubmitting); err != nil {
		return err
	}
	w.step = StepDone
	return nil
}

// FailSubmit returns to confirm with the error attached. Answers are kept
// so the user can resubmit.
func (w *Wizard) FailSubmit(msg string) error {
	if err := w.expect(StepSubmitting); err != nil {
		return err
	}
	w.err = msg
	w.step = StepConfirm
	return nil
}

// Reset discards all progress and returns to landing.
func (w *Wizard) Reset() {
	*w = *NewWizard()
}

func (w *Wizard) expect(step WizardStep) error {
	if w.step != step {
		return fmt.Errorf("%w: expected %s, at %s", ErrInvalidTransition, step, w.step)
	}
	return nil
}
