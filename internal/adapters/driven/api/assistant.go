package api

import (
	"context"
	"net/http"
)

type chatRequest struct {
	Message string `json:"message"`
}

type chatResponse struct {
	Answer string `json:"answer"`
}

type motivationResponse struct {
	Tips []string `json:"tips"`
}

// Chat sends a question to the study assistant.
func (c *Client) Chat(ctx context.Context, message string) (string, error) {
	var resp chatResponse
	if err := c.do(ctx, http.MethodPost, "/api/chat", chatRequest{Message: message}, &resp); err != nil {
		return "", err
	}
	return resp.Answer, nil
}

// Motivation returns motivational tips.
func (c *Client) Motivation(ctx context.Context) ([]string, error) {
	var resp motivationResponse
	if err := c.do(ctx, http.MethodGet, "/api/motivation", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Tips, nil
}
