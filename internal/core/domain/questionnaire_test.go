package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestSkillLevel_IsValid tests all valid and invalid skill levels
func TestSkillLevel_IsValid(t *testing.T) {
	tests := []struct {
		name     string
		level    SkillLevel
		expected bool
	}{
		{"beginner is valid", SkillLevelBeginner, true},
		{"intermediate is valid", SkillLevelIntermediate, true},
		{"advanced is valid", SkillLevelAdvanced, true},
		{"empty string is invalid", SkillLevel(""), false},
		{"expert is invalid", SkillLevel("expert"), false},
		{"case sensitive", SkillLevel("Beginner"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.level.IsValid())
		})
	}
}

func TestSkillLevel_RequiresQuiz(t *testing.T) {
	assert.False(t, SkillLevelBeginner.RequiresQuiz())
	assert.True(t, SkillLevelIntermediate.RequiresQuiz())
	assert.True(t, SkillLevelAdvanced.RequiresQuiz())
}

func TestDowngradeLevel(t *testing.T) {
	tests := []struct {
		level    SkillLevel
		score    int
		expected SkillLevel
	}{
		{SkillLevelIntermediate, 0, SkillLevelBeginner},
		{SkillLevelIntermediate, 7, SkillLevelBeginner},
		{SkillLevelIntermediate, 8, SkillLevelIntermediate},
		{SkillLevelIntermediate, 10, SkillLevelIntermediate},
		{SkillLevelAdvanced, 0, SkillLevelIntermediate},
		{SkillLevelAdvanced, 5, SkillLevelIntermediate},
		{SkillLevelAdvanced, 7, SkillLevelIntermediate},
		{SkillLevelAdvanced, 8, SkillLevelAdvanced},
		{SkillLevelAdvanced, 10, SkillLevelAdvanced},
		{SkillLevelBeginner, 0, SkillLevelBeginner},
	}

	for _, tt := range tests {
		t.Run(string(tt.level), func(t *testing.T) {
			assert.Equal(t, tt.expected, DowngradeLevel(tt.level, tt.score),
				"level=%s score=%d", tt.level, tt.score)
		})
	}
}

func TestDowngradeLevel_SingleStep(t *testing.T) {
	// advanced never drops straight to beginner, whatever the score
	for score := 0; score <= MaxQuizScore; score++ {
		assert.NotEqual(t, SkillLevelBeginner, DowngradeLevel(SkillLevelAdvanced, score))
	}
}

func TestValidateQuizScore(t *testing.T) {
	for score := 0; score <= MaxQuizScore; score++ {
		assert.NoError(t, ValidateQuizScore(score))
	}

	assert.ErrorIs(t, ValidateQuizScore(-1), ErrInvalidInput)
	assert.ErrorIs(t, ValidateQuizScore(11), ErrInvalidInput)
}

func TestDefaultAnswers(t *testing.T) {
	answers := DefaultAnswers()

	assert.Equal(t, SkillLevelBeginner, answers.SkillLevel)
	assert.Equal(t, HoursOneToTwo, answers.HoursPerDay)
	assert.Equal(t, LanguagePython, answers.ProgrammingLanguage)
	assert.Equal(t, PrepOneWeek, answers.PrepTime)
	require.NoError(t, answers.Validate())
}

func TestQuestionnaireAnswers_Validate(t *testing.T) {
	base := DefaultAnswers()

	bad := base
	bad.HoursPerDay = "5-6"
	assert.ErrorIs(t, bad.Validate(), ErrInvalidInput)

	bad = base
	bad.ProgrammingLanguage = "rust"
	assert.ErrorIs(t, bad.Validate(), ErrInvalidInput)

	bad = base
	bad.PrepTime = "6 months"
	assert.ErrorIs(t, bad.Validate(), ErrInvalidInput)

	bad = base
	bad.SkillLevel = ""
	assert.ErrorIs(t, bad.Validate(), ErrInvalidInput)
}

func TestQuestionnaireAnswers_Request(t *testing.T) {
	answers := QuestionnaireAnswers{
		SkillLevel:          SkillLevelIntermediate,
		HoursPerDay:         HoursMoreThan4,
		ProgrammingLanguage: LanguageCPP,
		PrepTime:            PrepThreeMonths,
	}

	req := answers.Request()

	assert.Equal(t, GenerationRequest{
		SkillLevel:          SkillLevelIntermediate,
		HoursPerDay:         HoursMoreThan4,
		ProgrammingLanguage: LanguageCPP,
		PrepTime:            PrepThreeMonths,
	}, req)
}

func TestEnumerations_AllValid(t *testing.T) {
	for _, l := range AllSkillLevels() {
		assert.True(t, l.IsValid(), l)
	}
	for _, h := range AllHoursPerDay() {
		assert.True(t, h.IsValid(), h)
	}
	for _, p := range AllLanguages() {
		assert.True(t, p.IsValid(), p)
		assert.NotEqual(t, unknownDescription, p.Description())
	}
	for _, p := range AllPrepTimes() {
		assert.True(t, p.IsValid(), p)
	}
}

func TestQuizResult_Downgraded(t *testing.T) {
	q := QuizResult{Score: 5, LevelBefore: SkillLevelAdvanced, LevelAfter: SkillLevelIntermediate}
	assert.True(t, q.Downgraded())

	q = QuizResult{Score: 9, LevelBefore: SkillLevelAdvanced, LevelAfter: SkillLevelAdvanced}
	assert.False(t, q.Downgraded())
}
