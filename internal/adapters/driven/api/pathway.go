package api

import (
	"context"
	"net/http"
	"time"

	"github.com/Surya-Mathivanan/pathway-cli/internal/core/domain"
)

type pathwayEnvelope struct {
	Pathway *domain.Pathway `json:"pathway"`
}

type listEnvelope struct {
	Items []summaryJSON `json:"items"`
	Total int           `json:"total"`
}

type summaryJSON struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Days      int    `json:"days"`
	CreatedAt string `json:"createdAt"`
}

type toggleRequest struct {
	ItemID string `json:"itemId"`
}

type adjustRequest struct {
	Note string `json:"note"`
}

type adjustResponse struct {
	Adjustment string `json:"adjustment"`
}

// ResetDraft discards the server-side draft.
func (c *Client) ResetDraft(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/api/pathway/new", nil, nil)
}

// Generate creates a pathway from the questionnaire answers.
func (c *Client) Generate(ctx context.Context, req domain.GenerationRequest) (*domain.Pathway, error) {
	var env pathwayEnvelope
	if err := c.do(ctx, http.MethodPost, "/api/pathway/generate", req, &env); err != nil {
		return nil, err
	}
	return env.Pathway, nil
}

// Current returns the current pathway, or nil when none exists.
func (c *Client) Current(ctx context.Context) (*domain.Pathway, error) {
	var env pathwayEnvelope
	if err := c.do(ctx, http.MethodGet, "/api/pathway/current", nil, &env); err != nil {
		return nil, err
	}
	return env.Pathway, nil
}

// List returns pathway summaries in server order.
func (c *Client) List(ctx context.Context) ([]domain.PathwaySummary, error) {
	var env listEnvelope
	if err := c.do(ctx, http.MethodGet, "/api/pathway/list", nil, &env); err != nil {
		return nil, err
	}
	out := make([]domain.PathwaySummary, 0, len(env.Items))
	for _, it := range env.Items {
		out = append(out, domain.PathwaySummary{
			ID:        it.ID,
			Title:     it.Title,
			Days:      it.Days,
			CreatedAt: parseTime(it.CreatedAt),
		})
	}
	return out, nil
}

// ToggleProgress flips an item's completion flag.
func (c *Client) ToggleProgress(ctx context.Context, itemID string) error {
	return c.do(ctx, http.MethodPatch, "/api/pathway/progress", toggleRequest{ItemID: itemID}, nil)
}

// Adjust asks for a plan adjustment suggestion.
func (c *Client) Adjust(ctx context.Context, note string) (string, error) {
	var resp adjustResponse
	if err := c.do(ctx, http.MethodPost, "/api/pathway/adjust", adjustRequest{Note: note}, &resp); err != nil {
		return "", err
	}
	return resp.Adjustment, nil
}

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// parseTime returns nil for empty or unrecognised timestamps.
func parseTime(s string) *time.Time {
	if s == "" {
		return nil
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}
