package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/Surya-Mathivanan/pathway-cli/internal/core/domain"
	"github.com/Surya-Mathivanan/pathway-cli/internal/core/ports/driven"
	"github.com/Surya-Mathivanan/pathway-cli/internal/core/ports/driving"
)

var (
	_ driving.SessionService   = (*mockSession)(nil)
	_ driving.ProgressService  = (*mockProgress)(nil)
	_ driving.PathwayService   = (*mockPathways)(nil)
	_ driving.AssistantService = (*mockAssistant)(nil)
	_ driving.ExportService    = (*mockExporter)(nil)
	_ driving.SettingsService  = (*mockSettings)(nil)
	_ driven.PathwayAPI        = (*fakeAPI)(nil)
)

type mockSession struct {
	session   domain.Session
	signInErr error
	logoutErr error
	signIns   int
	logouts   int
}

func signedIn() *mockSession {
	return &mockSession{session: domain.NewSession(&domain.Identity{
		Subject: "sub-1", Email: "ada@example.com", Name: "Ada",
	})}
}

func (m *mockSession) Open() error { return nil }
func (m *mockSession) Close() {}
func (m *mockSession) Observe(func(domain.Session)) func() {
	return func() {}
}
func (m *mockSession) IsAuthenticated() bool { return m.session.Authenticated }
func (m *mockSession) Session() domain.Session { return m.session }

func (m *mockSession) SignIn(_ context.Context) error {
	m.signIns++
	if m.signInErr != nil {
		return m.signInErr
	}
	m.session = domain.NewSession(&domain.Identity{Subject: "sub-1", Name: "Ada"})
	return nil
}

func (m *mockSession) Logout(_ context.Context) error {
	m.logouts++
	if m.logoutErr != nil {
		return m.logoutErr
	}
	m.session = domain.Session{}
	return nil
}

func (m *mockSession) CurrentToken(_ context.Context) (string, error) {
	if !m.session.Authenticated {
		return "", nil
	}
	return "token", nil
}

type mockProgress struct {
	snapshot domain.ProgressSnapshot
	err      error
	toggled  []string
}

func (m *mockProgress) Reload(_ context.Context) (domain.ProgressSnapshot, error) {
	return m.snapshot, m.err
}

func (m *mockProgress) Toggle(_ context.Context, itemID string) (domain.ProgressSnapshot, error) {
	m.toggled = append(m.toggled, itemID)
	if m.err != nil {
		return m.snapshot, m.err
	}
	if m.snapshot.Pathway != nil {
		flip(m.snapshot.Pathway, itemID)
		m.snapshot.Progress = domain.ComputeProgress(m.snapshot.Pathway)
	}
	return m.snapshot, nil
}

func (m *mockProgress) Snapshot() domain.ProgressSnapshot { return m.snapshot }

type mockPathways struct {
	current    *domain.Pathway
	summaries  []domain.PathwaySummary
	suggestion string
	note       string
	err        error
}

func (m *mockPathways) Current(_ context.Context) (*domain.Pathway, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.current == nil {
		return nil, domain.ErrNoPathway
	}
	return m.current, nil
}

func (m *mockPathways) List(_ context.Context) ([]domain.PathwaySummary, error) {
	return m.summaries, m.err
}

func (m *mockPathways) Dashboard(_ context.Context) (*domain.Dashboard, error) {
	return &domain.Dashboard{Current: m.current}, m.err
}

func (m *mockPathways) Adjust(_ context.Context, note string) (string, error) {
	m.note = note
	return m.suggestion, m.err
}

type mockAssistant struct {
	answer   string
	tips     []string
	err      error
	question string
}

func (m *mockAssistant) Ask(_ context.Context, message string) (string, error) {
	m.question = message
	return m.answer, m.err
}

func (m *mockAssistant) Tips(_ context.Context) ([]string, error) {
	return m.tips, m.err
}

type mockExporter struct {
	record  *domain.ExportRecord
	history []domain.ExportRecord
	err     error
	format  domain.ExportFormat
	dir     string
	limit   int
}

func (m *mockExporter) Export(
	_ context.Context, _ *domain.Pathway, format domain.ExportFormat, dir string,
) (*domain.ExportRecord, error) {
	m.format = format
	m.dir = dir
	return m.record, m.err
}

func (m *mockExporter) History(_ context.Context, limit int) ([]domain.ExportRecord, error) {
	m.limit = limit
	return m.history, m.err
}

type mockSettings struct {
	settings    domain.AppSettings
	validateErr error
	setErr      error
	set         map[string]string
	validations int
}

func newMockSettings() *mockSettings {
	return &mockSettings{settings: domain.DefaultAppSettings(), set: map[string]string{}}
}

func (m *mockSettings) Get() (*domain.AppSettings, error) {
	s := m.settings
	return &s, nil
}

func (m *mockSettings) Save(s *domain.AppSettings) error {
	m.settings = *s
	return nil
}

func (m *mockSettings) Set(key, value string) error {
	if m.setErr != nil {
		return m.setErr
	}
	m.set[key] = value
	return nil
}

func (m *mockSettings) Keys() []string { return settingKeys() }

func (m *mockSettings) Validate() error {
	m.validations++
	return m.validateErr
}

func (m *mockSettings) GetDefaults() domain.AppSettings { return domain.DefaultAppSettings() }

// fakeAPI backs a real wizard service.
type fakeAPI struct {
	resetErr error
	genErr   error
	pathway  *domain.Pathway
	request  domain.GenerationRequest
}

func (f *fakeAPI) ResetDraft(_ context.Context) error { return f.resetErr }

func (f *fakeAPI) Generate(_ context.Context, req domain.GenerationRequest) (*domain.Pathway, error) {
	f.request = req
	return f.pathway, f.genErr
}

func (f *fakeAPI) Current(_ context.Context) (*domain.Pathway, error) { return f.pathway, nil }

func (f *fakeAPI) List(_ context.Context) ([]domain.PathwaySummary, error) { return nil, nil }

func (f *fakeAPI) ToggleProgress(_ context.Context, _ string) error { return nil }

func (f *fakeAPI) Adjust(_ context.Context, _ string) (string, error) { return "", nil }

func flip(p *domain.Pathway, id string) {
	for _, items := range [][]domain.SectionItem{
		p.Sections.CodingProblems, p.Sections.YoutubeReferences, p.Sections.TheoryContent,
	} {
		for i := range items {
			if items[i].ID == id {
				items[i].Completed = !items[i].Completed
				return
			}
		}
	}
}

func samplePathway() *domain.Pathway {
	url := "https://example.com/two-sum"
	return &domain.Pathway{
		ID:    "pw-1",
		Title: "Python DSA Plan",
		Schedule: domain.Schedule{Daily: []domain.DayPlan{
			{Day: 2, Focus: "Hashing", Time: "2", Topics: []string{"maps"}},
			{Day: 1, Focus: "Arrays", Time: "1-2", Topics: []string{"two pointers", "sliding window"}},
		}},
		Sections: domain.Sections{
			CodingProblems:    []domain.SectionItem{{ID: "c1", Title: "Two Sum", URL: &url, Completed: true}},
			YoutubeReferences: []domain.SectionItem{{ID: "y1", Title: "Arrays explained"}},
			TheoryContent:     []domain.SectionItem{{ID: "t1", Title: "Big-O basics"}},
		},
	}
}

// useServices installs services for one test.
func useServices(t *testing.T, s Services) {
	t.Helper()
	SetServices(s)
	t.Cleanup(func() { SetServices(Services{}) })
}

// execute runs the root command with args and captures its output.
// Flag variables are reset so tests do not leak into each other.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	defaults := domain.DefaultAnswers()
	newLevel = string(defaults.SkillLevel)
	newHours = string(defaults.HoursPerDay)
	newLanguage = string(defaults.ProgrammingLanguage)
	newPrep = string(defaults.PrepTime)
	newScore = -1
	exportFormat = string(domain.ExportFormatPDF)
	exportOut = ""
	historyLimit = 10

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	err := rootCmd.Execute()
	return buf.String(), err
}
