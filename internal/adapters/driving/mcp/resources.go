package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/Surya-Mathivanan/pathway-cli/internal/core/domain"
)

const uriScheme = "pathway://"

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "current",
		Name:        "current-pathway",
		Description: "The current study pathway with schedule and sections",
		MIMEType:    "application/json",
	}, s.handleCurrentResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "days/{day}",
		Name:        "pathway-day",
		Description: "One day of the current pathway schedule",
		MIMEType:    "text/plain",
	}, s.handleDayResource)
}

// handleCurrentResource returns the current pathway as JSON, or null.
func (s *Server) handleCurrentResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	p, err := s.ports.Pathway.Current(ctx)
	if errors.Is(err, domain.ErrNoPathway) {
		return textResult(req.Params.URI, "application/json", "null"), nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading pathway: %w", toolError(err))
	}

	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling pathway: %w", err)
	}
	return textResult(req.Params.URI, "application/json", string(data)), nil
}

// handleDayResource renders a single schedule day as plain text.
func (s *Server) handleDayResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	day, ok := extractDay(req.Params.URI)
	if !ok {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	p, err := s.ports.Pathway.Current(ctx)
	if errors.Is(err, domain.ErrNoPathway) {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	if err != nil {
		return nil, fmt.Errorf("loading pathway: %w", toolError(err))
	}

	for _, d := range p.Schedule.Daily {
		if d.Day == day {
			return textResult(req.Params.URI, "text/plain", formatDay(d)), nil
		}
	}
	return nil, mcp.ResourceNotFoundError(req.Params.URI)
}

func textResult(uri, mime, text string) *mcp.ReadResourceResult {
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: mime,
			Text:     text,
		}},
	}
}

func formatDay(d domain.DayPlan) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Day %d: %s\n", d.Day, d.Focus)
	if d.Time != "" {
		fmt.Fprintf(&b, "Time: %s hours\n", d.Time)
	}
	for _, topic := range d.Topics {
		fmt.Fprintf(&b, "- %s\n", topic)
	}
	if d.Details != nil && *d.Details != "" {
		fmt.Fprintf(&b, "\n%s\n", *d.Details)
	}
	if r := d.Resources; r != nil {
		for _, group := range [][]domain.SectionItem{r.Practice, r.Youtube, r.Theory} {
			for _, item := range group {
				if link := item.Link(); link != "" {
					fmt.Fprintf(&b, "* %s <%s>\n", item.Title, link)
				} else {
					fmt.Fprintf(&b, "* %s\n", item.Title)
				}
			}
		}
	}
	return b.String()
}

// extractDay parses the day number from a URI like pathway://days/{day}.
func extractDay(uri string) (int, bool) {
	const prefix = uriScheme + "days/"

	if !strings.HasPrefix(uri, prefix) {
		return 0, false
	}

	day, err := strconv.Atoi(strings.TrimPrefix(uri, prefix))
	if err != nil || day < 1 {
		return 0, false
	}
	return day, true
}
