package services

import (
	"context"
	"image"
	"image/color"
	"sync"

	"github.com/Surya-Mathivanan/pathway-cli/internal/core/domain"
)

// --- Mock implementations shared by the service tests ---

// mockPathwayAPI implements driven.PathwayAPI for testing.
type mockPathwayAPI struct {
	mu sync.Mutex

	resetErr    error
	resetCalls  int
	generated   *domain.Pathway
	generateErr error
	lastRequest domain.GenerationRequest

	current    *domain.Pathway
	currentErr error
	// currentFn overrides current/currentErr when set.
	currentFn func(ctx context.Context) (*domain.Pathway, error)

	list    []domain.PathwaySummary
	listErr error

	toggleErr error
	toggled   []string

	adjustment string
	adjustErr  error
	lastNote   string
}

func (m *mockPathwayAPI) ResetDraft(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.resetCalls++
	return m.resetErr
}

func (m *mockPathwayAPI) Generate(_ context.Context, req domain.GenerationRequest) (*domain.Pathway, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastRequest = req
	return m.generated, m.generateErr
}

func (m *mockPathwayAPI) Current(ctx context.Context) (*domain.Pathway, error) {
	m.mu.Lock()
	fn := m.currentFn
	current, err := m.current, m.currentErr
	m.mu.Unlock()
	if fn != nil {
		return fn(ctx)
	}
	return current, err
}

func (m *mockPathwayAPI) List(_ context.Context) ([]domain.PathwaySummary, error) {
	return m.list, m.listErr
}

func (m *mockPathwayAPI) ToggleProgress(_ context.Context, itemID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.toggled = append(m.toggled, itemID)
	return m.toggleErr
}

func (m *mockPathwayAPI) Adjust(_ context.Context, note string) (string, error) {
	m.lastNote = note
	return m.adjustment, m.adjustErr
}

// mockAssistantAPI implements driven.AssistantAPI for testing.
type mockAssistantAPI struct {
	answer   string
	chatErr  error
	tips     []string
	tipsErr  error
	messages []string
}

func (m *mockAssistantAPI) Chat(_ context.Context, message string) (string, error) {
	m.messages = append(m.messages, message)
	return m.answer, m.chatErr
}

func (m *mockAssistantAPI) Motivation(_ context.Context) ([]string, error) {
	return m.tips, m.tipsErr
}

// mockIdentityProvider implements driven.IdentityProvider for testing.
// It delivers initial on Subscribe, like a real provider.
type mockIdentityProvider struct {
	mu           sync.Mutex
	initial      *domain.Identity
	listener     func(*domain.Identity)
	subscribes   int
	unsubscribed bool

	signInErr  error
	signOutErr error
	token      string
	tokenErr   error
	tokenCalls int
}

func (m *mockIdentityProvider) Subscribe(listener func(*domain.Identity)) func() {
	m.mu.Lock()
	m.listener = listener
	m.subscribes++
	initial := m.initial
	m.mu.Unlock()

	listener(initial)
	return func() {
		m.mu.Lock()
		m.unsubscribed = true
		m.listener = nil
		m.mu.Unlock()
	}
}

// deliver simulates the provider pushing a new identity.
func (m *mockIdentityProvider) deliver(identity *domain.Identity) {
	m.mu.Lock()
	listener := m.listener
	m.mu.Unlock()
	if listener != nil {
		listener(identity)
	}
}

func (m *mockIdentityProvider) SignIn(_ context.Context) error {
	return m.signInErr
}

func (m *mockIdentityProvider) SignOut(_ context.Context) error {
	if m.signOutErr != nil {
		return m.signOutErr
	}
	m.deliver(nil)
	return nil
}

func (m *mockIdentityProvider) Token(_ context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tokenCalls++
	return m.token, m.tokenErr
}

// mockRenderer implements driven.SurfaceRenderer with a blank surface.
type mockRenderer struct {
	width, height int
	err           error
	scale         float64
}

func (m *mockRenderer) Render(_ context.Context, _ *domain.Pathway, scale float64) (image.Image, error) {
	m.scale = scale
	if m.err != nil {
		return nil, m.err
	}
	img := image.NewRGBA(image.Rect(0, 0, m.width, m.height))
	img.Set(0, 0, color.White)
	return img, nil
}

// mockDocumentWriter implements driven.DocumentWriter and captures the layout.
type mockDocumentWriter struct {
	path   string
	layout domain.PageLayout
	err    error
	// block, when set, is waited on before returning.
	block chan struct{}
	// started is closed when Write is entered.
	started chan struct{}
}

func (m *mockDocumentWriter) Write(_ context.Context, path string, _ image.Image, layout domain.PageLayout) error {
	if m.started != nil {
		close(m.started)
	}
	if m.block != nil {
		<-m.block
	}
	m.path = path
	m.layout = layout
	return m.err
}

// samplePathway returns a pathway with 4 coding problems (2 done),
// no videos, and 6 theory items (3 done).
func samplePathway() *domain.Pathway {
	mk := func(prefix string, total, done int) []domain.SectionItem {
		items := make([]domain.SectionItem, total)
		for i := range items {
			items[i] = domain.SectionItem{
				ID:        prefix + string(rune('1'+i)),
				Title:     prefix + " item",
				Completed: i < done,
			}
		}
		return items
	}
	return &domain.Pathway{
		ID:    "p1",
		Title: "Python DSA in 1 week",
		Schedule: domain.Schedule{Daily: []domain.DayPlan{
			{Day: 1, Focus: "Arrays", Time: "1-2", Topics: []string{"two pointers"}},
			{Day: 2, Focus: "Strings", Time: "1-2", Topics: []string{"hashing"}},
		}},
		Sections: domain.Sections{
			CodingProblems: mk("cp-", 4, 2),
			TheoryContent:  mk("th-", 6, 3),
		},
	}
}
