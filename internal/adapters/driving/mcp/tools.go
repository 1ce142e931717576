package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/Surya-Mathivanan/pathway-cli/internal/core/domain"
)

// ProgressInput is the input schema for the pathway_progress tool.
type ProgressInput struct {
	Reload bool `json:"reload,omitempty" jsonschema:"fetch the pathway from the service before reporting"`
}

// ProgressOutput summarises completion of the current pathway.
type ProgressOutput struct {
	Title      string       `json:"title"`
	Total      int          `json:"total"`
	Completed  int          `json:"completed"`
	Percentage int          `json:"percentage"`
	Items      []ItemOutput `json:"items"`
}

// ItemOutput is one tracked item.
type ItemOutput struct {
	ID        string `json:"id"`
	Section   string `json:"section"`
	Title     string `json:"title"`
	URL       string `json:"url,omitempty"`
	Completed bool   `json:"completed"`
}

// ToggleInput is the input schema for the pathway_toggle tool.
type ToggleInput struct {
	ItemID string `json:"item_id" jsonschema:"id of the item to mark complete or incomplete"`
}

// ListInput is the input schema for the pathway_list tool.
type ListInput struct {
	Limit int `json:"limit,omitempty" jsonschema:"maximum number of pathways to return (default 10)"`
}

// ListOutput lists generated pathways.
type ListOutput struct {
	Pathways []SummaryOutput `json:"pathways"`
	Count    int             `json:"count"`
}

// SummaryOutput is one pathway in the history list.
type SummaryOutput struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Days      int    `json:"days"`
	CreatedAt string `json:"created_at,omitempty"`
}

// TipsOutput holds motivational tips.
type TipsOutput struct {
	Tips []string `json:"tips"`
}

// AskInput is the input schema for the ask_assistant tool.
type AskInput struct {
	Message string `json:"message" jsonschema:"the question for the study assistant"`
}

// AskOutput holds the assistant's answer.
type AskOutput struct {
	Answer string `json:"answer"`
}

const defaultListLimit = 10

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "pathway_progress",
		Description: "Report completion of the current study pathway",
	}, s.handleProgress)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "pathway_toggle",
		Description: "Flip the completed flag of a pathway item",
	}, s.handleToggle)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "pathway_list",
		Description: "List previously generated pathways",
	}, s.handleList)

	if s.ports.Assistant == nil {
		return
	}

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "motivation_tips",
		Description: "Get short motivational study tips",
	}, s.handleTips)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "ask_assistant",
		Description: "Ask the study assistant a question",
	}, s.handleAsk)
}

func (s *Server) handleProgress(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ProgressInput,
) (*mcp.CallToolResult, ProgressOutput, error) {
	snap := s.ports.Progress.Snapshot()
	if input.Reload || !snap.Loaded() {
		var err error
		snap, err = s.ports.Progress.Reload(ctx)
		if err != nil {
			return nil, ProgressOutput{}, toolError(err)
		}
	}
	if snap.Pathway == nil {
		return nil, ProgressOutput{}, toolError(domain.ErrNoPathway)
	}
	return nil, progressOutput(snap), nil
}

func (s *Server) handleToggle(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ToggleInput,
) (*mcp.CallToolResult, ProgressOutput, error) {
	id := strings.TrimSpace(input.ItemID)
	if id == "" {
		return nil, ProgressOutput{}, fmt.Errorf("%w: item_id is required", domain.ErrInvalidInput)
	}

	snap, err := s.ports.Progress.Toggle(ctx, id)
	if err != nil {
		return nil, ProgressOutput{}, toolError(err)
	}
	if snap.Pathway == nil {
		return nil, ProgressOutput{}, toolError(domain.ErrNoPathway)
	}
	return nil, progressOutput(snap), nil
}

func (s *Server) handleList(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ListInput,
) (*mcp.CallToolResult, ListOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}

	summaries, err := s.ports.Pathway.List(ctx)
	if err != nil {
		return nil, ListOutput{}, toolError(err)
	}
	if len(summaries) > limit {
		summaries = summaries[:limit]
	}

	output := ListOutput{
		Pathways: make([]SummaryOutput, len(summaries)),
		Count:    len(summaries),
	}
	for i, sum := range summaries {
		output.Pathways[i] = SummaryOutput{
			ID:    sum.ID,
			Title: sum.Title,
			Days:  sum.Days,
		}
		if sum.CreatedAt != nil {
			output.Pathways[i].CreatedAt = sum.CreatedAt.Format("2006-01-02")
		}
	}
	return nil, output, nil
}

func (s *Server) handleTips(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ struct{},
) (*mcp.CallToolResult, TipsOutput, error) {
	tips, err := s.ports.Assistant.Tips(ctx)
	if err != nil {
		return nil, TipsOutput{}, toolError(err)
	}
	if tips == nil {
		tips = []string{}
	}
	return nil, TipsOutput{Tips: tips}, nil
}

func (s *Server) handleAsk(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AskInput,
) (*mcp.CallToolResult, AskOutput, error) {
	msg := strings.TrimSpace(input.Message)
	if msg == "" {
		return nil, AskOutput{}, fmt.Errorf("%w: message is required", domain.ErrInvalidInput)
	}

	answer, err := s.ports.Assistant.Ask(ctx, msg)
	if err != nil {
		return nil, AskOutput{}, toolError(err)
	}
	return nil, AskOutput{Answer: answer}, nil
}

// progressOutput flattens a snapshot into the tool schema.
func progressOutput(snap domain.ProgressSnapshot) ProgressOutput {
	out := ProgressOutput{
		Title:      snap.Pathway.Title,
		Total:      snap.Progress.Total,
		Completed:  snap.Progress.Completed,
		Percentage: snap.Progress.Percentage,
		Items:      []ItemOutput{},
	}
	for _, kind := range domain.AllSectionKinds() {
		for _, item := range snap.Pathway.Sections.Items(kind) {
			out.Items = append(out.Items, ItemOutput{
				ID:        item.ID,
				Section:   string(kind),
				Title:     item.Title,
				URL:       item.Link(),
				Completed: item.Completed,
			})
		}
	}
	return out
}

// toolError turns sign-in failures into a message a client can act on.
func toolError(err error) error {
	if errors.Is(err, domain.ErrUnauthorized) || errors.Is(err, domain.ErrNotAuthenticated) ||
		errors.Is(err, domain.ErrSignInRequired) {
		return fmt.Errorf("%w: run 'pathway auth login' first", domain.ErrSignInRequired)
	}
	return err
}
