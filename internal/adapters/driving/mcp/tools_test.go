package mcp

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Surya-Mathivanan/pathway-cli/internal/core/domain"
)

func newTestServer(t *testing.T, ports *Ports) *Server {
	t.Helper()
	if ports.Pathway == nil {
		ports.Pathway = &mockPathwayService{}
	}
	if ports.Progress == nil {
		ports.Progress = &mockProgressService{}
	}
	server, err := NewServer(ports)
	require.NoError(t, err)
	return server
}

func TestServer_handleProgress(t *testing.T) {
	ctx := context.Background()

	t.Run("reloads when nothing is loaded", func(t *testing.T) {
		progress := &mockProgressService{reloaded: snapshotOf(testPathway(), 1)}
		server := newTestServer(t, &Ports{Progress: progress})

		_, output, err := server.handleProgress(ctx, nil, ProgressInput{})

		require.NoError(t, err)
		assert.Equal(t, 1, progress.reloads)
		assert.Equal(t, "Go in 30 days", output.Title)
		assert.Equal(t, 3, output.Total)
		assert.Equal(t, 1, output.Completed)
		assert.Equal(t, 33, output.Percentage)
		require.Len(t, output.Items, 3)
		assert.Equal(t, ItemOutput{
			ID: "c1", Section: "codingProblems", Title: "Two Sum",
			URL: "https://example.com/two-sum", Completed: true,
		}, output.Items[0])
		assert.Equal(t, "youtubeReferences", output.Items[1].Section)
		assert.Equal(t, "theoryContent", output.Items[2].Section)
	})

	t.Run("uses loaded snapshot without reload", func(t *testing.T) {
		progress := &mockProgressService{snapshot: snapshotOf(testPathway(), 4)}
		server := newTestServer(t, &Ports{Progress: progress})

		_, output, err := server.handleProgress(ctx, nil, ProgressInput{})

		require.NoError(t, err)
		assert.Equal(t, 0, progress.reloads)
		assert.Equal(t, 3, output.Total)
	})

	t.Run("reload flag forces reload", func(t *testing.T) {
		progress := &mockProgressService{
			snapshot: snapshotOf(testPathway(), 4),
			reloaded: snapshotOf(testPathway(), 5),
		}
		server := newTestServer(t, &Ports{Progress: progress})

		_, _, err := server.handleProgress(ctx, nil, ProgressInput{Reload: true})

		require.NoError(t, err)
		assert.Equal(t, 1, progress.reloads)
	})

	t.Run("no pathway", func(t *testing.T) {
		progress := &mockProgressService{reloaded: snapshotOf(nil, 1)}
		server := newTestServer(t, &Ports{Progress: progress})

		_, _, err := server.handleProgress(ctx, nil, ProgressInput{})

		assert.ErrorIs(t, err, domain.ErrNoPathway)
	})

	t.Run("unauthorized asks for sign-in", func(t *testing.T) {
		progress := &mockProgressService{err: domain.ErrUnauthorized}
		server := newTestServer(t, &Ports{Progress: progress})

		_, _, err := server.handleProgress(ctx, nil, ProgressInput{})

		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrSignInRequired)
		assert.Contains(t, err.Error(), "auth login")
	})
}

func TestServer_handleToggle(t *testing.T) {
	ctx := context.Background()

	t.Run("toggles trimmed id", func(t *testing.T) {
		progress := &mockProgressService{reloaded: snapshotOf(testPathway(), 2)}
		server := newTestServer(t, &Ports{Progress: progress})

		_, output, err := server.handleToggle(ctx, nil, ToggleInput{ItemID: "  y1 "})

		require.NoError(t, err)
		assert.Equal(t, "y1", progress.toggledID)
		assert.Equal(t, 3, output.Total)
	})

	t.Run("empty id is invalid", func(t *testing.T) {
		progress := &mockProgressService{}
		server := newTestServer(t, &Ports{Progress: progress})

		_, _, err := server.handleToggle(ctx, nil, ToggleInput{ItemID: " "})

		assert.ErrorIs(t, err, domain.ErrInvalidInput)
		assert.Empty(t, progress.toggledID)
	})

	t.Run("service error is returned", func(t *testing.T) {
		progress := &mockProgressService{err: errors.New("backend down")}
		server := newTestServer(t, &Ports{Progress: progress})

		_, _, err := server.handleToggle(ctx, nil, ToggleInput{ItemID: "c1"})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "backend down")
	})
}

func TestServer_handleList(t *testing.T) {
	ctx := context.Background()
	created := time.Date(2026, 3, 4, 10, 0, 0, 0, time.UTC)

	summaries := make([]domain.PathwaySummary, 12)
	for i := range summaries {
		summaries[i] = domain.PathwaySummary{ID: string(rune('a' + i)), Title: "Plan", Days: 7}
	}
	summaries[0].CreatedAt = &created

	t.Run("default limit is 10", func(t *testing.T) {
		server := newTestServer(t, &Ports{Pathway: &mockPathwayService{summaries: summaries}})

		_, output, err := server.handleList(ctx, nil, ListInput{})

		require.NoError(t, err)
		assert.Equal(t, 10, output.Count)
		assert.Len(t, output.Pathways, 10)
		assert.Equal(t, "a", output.Pathways[0].ID)
		assert.Equal(t, "2026-03-04", output.Pathways[0].CreatedAt)
		assert.Empty(t, output.Pathways[1].CreatedAt)
	})

	t.Run("custom limit", func(t *testing.T) {
		server := newTestServer(t, &Ports{Pathway: &mockPathwayService{summaries: summaries}})

		_, output, err := server.handleList(ctx, nil, ListInput{Limit: 2})

		require.NoError(t, err)
		assert.Equal(t, 2, output.Count)
	})

	t.Run("error", func(t *testing.T) {
		server := newTestServer(t, &Ports{Pathway: &mockPathwayService{err: errors.New("list failed")}})

		_, _, err := server.handleList(ctx, nil, ListInput{})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "list failed")
	})
}

func TestServer_handleAssistant(t *testing.T) {
	ctx := context.Background()

	t.Run("ask trims the message", func(t *testing.T) {
		assistant := &mockAssistantService{answer: "Use a map."}
		server := newTestServer(t, &Ports{Assistant: assistant})

		_, output, err := server.handleAsk(ctx, nil, AskInput{Message: " how to dedupe? "})

		require.NoError(t, err)
		assert.Equal(t, "how to dedupe?", assistant.message)
		assert.Equal(t, "Use a map.", output.Answer)
	})

	t.Run("ask requires a message", func(t *testing.T) {
		server := newTestServer(t, &Ports{Assistant: &mockAssistantService{}})

		_, _, err := server.handleAsk(ctx, nil, AskInput{})

		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("tips never returns nil", func(t *testing.T) {
		server := newTestServer(t, &Ports{Assistant: &mockAssistantService{}})

		_, output, err := server.handleTips(ctx, nil, struct{}{})

		require.NoError(t, err)
		assert.NotNil(t, output.Tips)
		assert.Empty(t, output.Tips)
	})

	t.Run("tips error", func(t *testing.T) {
		server := newTestServer(t, &Ports{Assistant: &mockAssistantService{err: errors.New("quota")}})

		_, _, err := server.handleTips(ctx, nil, struct{}{})

		require.Error(t, err)
	})
}
