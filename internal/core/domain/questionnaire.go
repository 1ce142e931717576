package domain

import "fmt"

// Quiz scoring constants.
const (
	// MaxQuizScore is the highest score the calibration quiz can award.
	MaxQuizScore = 10

	// DowngradeThreshold is the score below which the selected level drops one tier.
	DowngradeThreshold = 8
)

// SkillLevel is the learner's self-reported proficiency.
type SkillLevel string

// Available skill levels.
const (
	SkillLevelBeginner     SkillLevel = "beginner"
	SkillLevelIntermediate SkillLevel = "intermediate"
	SkillLevelAdvanced     SkillLevel = "advanced"
)

// IsValid returns true if the skill level is recognised.
func (l SkillLevel) IsValid() bool {
	switch l {
	case SkillLevelBeginner, SkillLevelIntermediate, SkillLevelAdvanced:
		return true
	default:
		return false
	}
}

// RequiresQuiz returns true if selecting this level leads to the calibration quiz.
func (l SkillLevel) RequiresQuiz() bool {
	return l == SkillLevelIntermediate || l == SkillLevelAdvanced
}

// String returns the string representation.
func (l SkillLevel) String() string {
	return string(l)
}

// Description returns a human-readable description of the level.
func (l SkillLevel) Description() string {
	switch l {
	case SkillLevelBeginner:
		return "Beginner"
	case SkillLevelIntermediate:
		return "Intermediate"
	case SkillLevelAdvanced:
		return "Advanced"
	default:
		return unknownDescription
	}
}

// DowngradeLevel applies the quiz calibration rule.
// Intermediate and advanced drop exactly one tier when score < DowngradeThreshold.
// Beginner never reaches the quiz and is returned unchanged.
func DowngradeLevel(level SkillLevel, score int) SkillLevel {
	if score >= DowngradeThreshold {
		return level
	}
	switch level {
	case SkillLevelIntermediate:
		return SkillLevelBeginner
	case SkillLevelAdvanced:
		return SkillLevelIntermediate
	default:
		return level
	}
}

// HoursPerDay is the daily study time bucket.
type HoursPerDay string

// Available daily study buckets.
const (
	HoursOneToTwo    HoursPerDay = "1-2"
	HoursTwoToThree  HoursPerDay = "2-3"
	HoursThreeToFour HoursPerDay = "3-4"
	HoursMoreThan4   HoursPerDay = ">4"
)

// IsValid returns true if the bucket is recognised.
func (h HoursPerDay) IsValid() bool {
	switch h {
	case HoursOneToTwo, HoursTwoToThree, HoursThreeToFour, HoursMoreThan4:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (h HoursPerDay) String() string {
	return string(h)
}

// ProgrammingLanguage is the language the plan's practice problems target.
type ProgrammingLanguage string

// Supported languages.
const (
	LanguagePython     ProgrammingLanguage = "python"
	LanguageJava       ProgrammingLanguage = "java"
	LanguageCPP        ProgrammingLanguage = "cpp"
	LanguageJavaScript ProgrammingLanguage = "javascript"
	LanguageC          ProgrammingLanguage = "c"
)

// IsValid returns true if the language is supported.
func (p ProgrammingLanguage) IsValid() bool {
	switch p {
	case LanguagePython, LanguageJava, LanguageCPP, LanguageJavaScript, LanguageC:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (p ProgrammingLanguage) String() string {
	return string(p)
}

// Description returns the language's display name.
func (p ProgrammingLanguage) Description() string {
	switch p {
	case LanguagePython:
		return "Python"
	case LanguageJava:
		return "Java"
	case LanguageCPP:
		return "C++"
	case LanguageJavaScript:
		return "JavaScript"
	case LanguageC:
		return "C"
	default:
		return unknownDescription
	}
}

// PrepTime is how long the learner has to prepare.
type PrepTime string

// Available preparation windows.
const (
	PrepOneWeek     PrepTime = "1 week"
	PrepOneMonth    PrepTime = "1 month"
	PrepThreeMonths PrepTime = "3 months"
)

// IsValid returns true if the preparation window is recognised.
func (p PrepTime) IsValid() bool {
	switch p {
	case PrepOneWeek, PrepOneMonth, PrepThreeMonths:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (p PrepTime) String() string {
	return string(p)
}

// AllSkillLevels returns the selectable skill levels in display order.
func AllSkillLevels() []SkillLevel {
	return []SkillLevel{SkillLevelBeginner, SkillLevelIntermediate, SkillLevelAdvanced}
}

// AllHoursPerDay returns the selectable daily study buckets in display order.
func AllHoursPerDay() []HoursPerDay {
	return []HoursPerDay{HoursOneToTwo, HoursTwoToThree, HoursThreeToFour, HoursMoreThan4}
}

// AllLanguages returns the supported languages in display order.
func AllLanguages() []ProgrammingLanguage {
	return []ProgrammingLanguage{LanguagePython, LanguageJava, LanguageCPP, LanguageJavaScript, LanguageC}
}

// AllPrepTimes returns the preparation windows in display order.
func AllPrepTimes() []PrepTime {
	return []PrepTime{PrepOneWeek, PrepOneMonth, PrepThreeMonths}
}

// QuestionnaireAnswers holds the learner's intake preferences.
type QuestionnaireAnswers struct {
	SkillLevel          SkillLevel
	HoursPerDay         HoursPerDay
	ProgrammingLanguage ProgrammingLanguage
	PrepTime            PrepTime
}

// DefaultAnswers returns the answers preselected when the wizard opens.
func DefaultAnswers() QuestionnaireAnswers {
	return QuestionnaireAnswers{
		SkillLevel:          SkillLevelBeginner,
		HoursPerDay:         HoursOneToTwo,
		ProgrammingLanguage: LanguagePython,
		PrepTime:            PrepOneWeek,
	}
}

// Validate checks every answer against its enumeration.
func (a QuestionnaireAnswers) Validate() error {
	if !a.SkillLevel.IsValid() {
		return fmt.Errorf("%w: skill level %q", ErrInvalidInput, a.SkillLevel)
	}
	if !a.HoursPerDay.IsValid() {
		return fmt.Errorf("%w: hours per day %q", ErrInvalidInput, a.HoursPerDay)
	}
	if !a.ProgrammingLanguage.IsValid() {
		return fmt.Errorf("%w: programming language %q", ErrInvalidInput, a.ProgrammingLanguage)
	}
	if !a.PrepTime.IsValid() {
		return fmt.Errorf("%w: prep time %q", ErrInvalidInput, a.PrepTime)
	}
	return nil
}

// Request builds the generation payload from the answers.
func (a QuestionnaireAnswers) Request() GenerationRequest {
	return GenerationRequest{
		SkillLevel:          a.SkillLevel,
		HoursPerDay:         a.HoursPerDay,
		ProgrammingLanguage: a.ProgrammingLanguage,
		PrepTime:            a.PrepTime,
	}
}

// QuizResult is the outcome of the calibration quiz.
type QuizResult struct {
	// Score is in [0, MaxQuizScore].
	Score int
	// LevelBefore is the level selected before calibration.
	LevelBefore SkillLevel
	// LevelAfter is the level after the downgrade rule was applied.
	LevelAfter SkillLevel
}

// Downgraded returns true if the quiz lowered the selected level.
func (q QuizResult) Downgraded() bool {
	return q.LevelBefore != q.LevelAfter
}

// ValidateQuizScore checks that a score lies in the closed interval [0, MaxQuizScore].
func ValidateQuizScore(score int) error {
	if score < 0 || score > MaxQuizScore {
		return fmt.Errorf("%w: quiz score %d outside [0, %d]", ErrInvalidInput, score, MaxQuizScore)
	}
	return nil
}

// GenerationRequest is the payload sent to the plan generation endpoint.
type GenerationRequest struct {
	SkillLevel          SkillLevel          `json:"skillLevel"`
	HoursPerDay         HoursPerDay         `json:"hoursPerDay"`
	ProgrammingLanguage ProgrammingLanguage `json:"programmingLanguage"`
	PrepTime            PrepTime            `json:"prepTime"`
}
