package mcp

import (
	"context"

	"github.com/Surya-Mathivanan/pathway-cli/internal/core/domain"
	"github.com/Surya-Mathivanan/pathway-cli/internal/core/ports/driving"
)

var (
	_ driving.ProgressService  = (*mockProgressService)(nil)
	_ driving.PathwayService   = (*mockPathwayService)(nil)
	_ driving.AssistantService = (*mockAssistantService)(nil)
)

// mockProgressService is a mock implementation of driving.ProgressService.
type mockProgressService struct {
	snapshot  domain.ProgressSnapshot
	reloaded  domain.ProgressSnapshot
	err       error
	reloads   int
	toggledID string
}

func (m *mockProgressService) Reload(_ context.Context) (domain.ProgressSnapshot, error) {
	m.reloads++
	if m.err != nil {
		return m.snapshot, m.err
	}
	m.snapshot = m.reloaded
	return m.snapshot, nil
}

func (m *mockProgressService) Toggle(_ context.Context, itemID string) (domain.ProgressSnapshot, error) {
	m.toggledID = itemID
	if m.err != nil {
		return m.snapshot, m.err
	}
	m.snapshot = m.reloaded
	return m.snapshot, nil
}

func (m *mockProgressService) Snapshot() domain.ProgressSnapshot {
	return m.snapshot
}

// mockPathwayService is a mock implementation of driving.PathwayService.
type mockPathwayService struct {
	current   *domain.Pathway
	summaries []domain.PathwaySummary
	err       error
}

func (m *mockPathwayService) Current(_ context.Context) (*domain.Pathway, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.current == nil {
		return nil, domain.ErrNoPathway
	}
	return m.current, nil
}

func (m *mockPathwayService) List(_ context.Context) ([]domain.PathwaySummary, error) {
	return m.summaries, m.err
}

func (m *mockPathwayService) Dashboard(_ context.Context) (*domain.Dashboard, error) {
	return &domain.Dashboard{Current: m.current}, m.err
}

func (m *mockPathwayService) Adjust(_ context.Context, _ string) (string, error) {
	return "", m.err
}

// mockAssistantService is a mock implementation of driving.AssistantService.
type mockAssistantService struct {
	answer  string
	tips    []string
	err     error
	message string
}

func (m *mockAssistantService) Ask(_ context.Context, message string) (string, error) {
	m.message = message
	return m.answer, m.err
}

func (m *mockAssistantService) Tips(_ context.Context) ([]string, error) {
	return m.tips, m.err
}

func testPathway() *domain.Pathway {
	url := "https://example.com/two-sum"
	details := "Warm up with arrays."
	return &domain.Pathway{
		ID:    "pw-1",
		Title: "Go in 30 days",
		Schedule: domain.Schedule{Daily: []domain.DayPlan{
			{Day: 2, Focus: "Maps", Time: "2", Topics: []string{"hashing"}},
			{
				Day: 1, Focus: "Slices", Time: "1-2", Topics: []string{"append", "copy"},
				Details:   &details,
				Resources: &domain.DayResources{Practice: []domain.SectionItem{{ID: "r1", Title: "Two Sum", URL: &url}}},
			},
		}},
		Sections: domain.Sections{
			CodingProblems:    []domain.SectionItem{{ID: "c1", Title: "Two Sum", URL: &url, Completed: true}},
			YoutubeReferences: []domain.SectionItem{{ID: "y1", Title: "Slices talk"}},
			TheoryContent:     []domain.SectionItem{{ID: "t1", Title: "Effective Go"}},
		},
	}
}

func snapshotOf(p *domain.Pathway, seq uint64) domain.ProgressSnapshot {
	return domain.ProgressSnapshot{
		Pathway:  p,
		Progress: domain.ComputeProgress(p),
		Sequence: seq,
	}
}
