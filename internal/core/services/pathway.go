package services

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/Surya-Mathivanan/pathway-cli/internal/core/domain"
	"github.com/Surya-Mathivanan/pathway-cli/internal/core/ports/driven"
	"github.com/Surya-Mathivanan/pathway-cli/internal/core/ports/driving"
	"github.com/Surya-Mathivanan/pathway-cli/internal/logger"
)

// Ensure PathwayService implements the interface.
var _ driving.PathwayService = (*PathwayService)(nil)

// PathwayService provides read access to pathways.
type PathwayService struct {
	api       driven.PathwayAPI
	assistant driven.AssistantAPI
}

// NewPathwayService creates a pathway service. The assistant is optional;
// without it the dashboard has no tips.
func NewPathwayService(api driven.PathwayAPI, assistant driven.AssistantAPI) *PathwayService {
	return &PathwayService{
		api:       api,
		assistant: assistant,
	}
}

// Current returns the current pathway.
func (s *PathwayService) Current(ctx context.Context) (*domain.Pathway, error) {
	p, err := s.api.Current(ctx)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNoPathway
	}
	return p, nil
}

// List returns pathway summaries exactly as the service ordered them.
func (s *PathwayService) List(ctx context.Context) ([]domain.PathwaySummary, error) {
	return s.api.List(ctx)
}

// Dashboard loads the current pathway, history and tips concurrently.
// Tips are best-effort; a failure there does not fail the dashboard.
func (s *PathwayService) Dashboard(ctx context.Context) (*domain.Dashboard, error) {
	var (
		current *domain.Pathway
		history []domain.PathwaySummary
		tips    []string
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		p, err := s.api.Current(gctx)
		if err != nil {
			return fmt.Errorf("load current pathway: %w", err)
		}
		current = p
		return nil
	})
	g.Go(func() error {
		items, err := s.api.List(gctx)
		if err != nil {
			return fmt.Errorf("load pathway list: %w", err)
		}
		history = items
		return nil
	})
	if s.assistant != nil {
		g.Go(func() error {
			t, err := s.assistant.Motivation(gctx)
			if err != nil {
				logger.Warn("dashboard: tips unavailable: %v", err)
				return nil
			}
			tips = t
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &domain.Dashboard{
		Current:  current,
		Progress: domain.ComputeProgress(current),
		Tips:     tips,
		History:  history,
	}, nil
}

// Adjust asks for an adjustment suggestion for the current plan.
func (s *PathwayService) Adjust(ctx context.Context, note string) (string, error) {
	note = strings.TrimSpace(note)
	if note == "" {
		return "", fmt.Errorf("%w: empty note", domain.ErrInvalidInput)
	}
	return s.api.Adjust(ctx, note)
}
