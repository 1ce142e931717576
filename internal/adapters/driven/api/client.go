// Package api provides the REST adapter for the pathway service.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/time/rate"

	"github.com/Surya-Mathivanan/pathway-cli/internal/core/domain"
	"github.com/Surya-Mathivanan/pathway-cli/internal/core/ports/driven"
	"github.com/Surya-Mathivanan/pathway-cli/internal/logger"
)

// Ensure Client implements the interfaces.
var (
	_ driven.PathwayAPI   = (*Client)(nil)
	_ driven.AssistantAPI = (*Client)(nil)
)

// Default configuration values.
const (
	DefaultTimeout = 60 * time.Second
	// maxErrorBody caps how much of an error response is read.
	maxErrorBody = 64 << 10
)

// RequestIDHeader carries a per-request correlation id.
const RequestIDHeader = "X-Request-ID"

// Config holds configuration for the REST client.
type Config struct {
	// BaseURL is the service root, e.g. http://localhost:8080 (required).
	BaseURL string

	// Tokens supplies the bearer credential for every request (required).
	Tokens driven.TokenProvider

	// RateLimit is the maximum requests per second. Zero disables limiting.
	RateLimit int

	// Timeout is the per-request timeout (default: 60s).
	Timeout time.Duration

	// Transport is the base round tripper (default: http.DefaultTransport).
	Transport http.RoundTripper
}

// Client talks to the pathway service over HTTP.
type Client struct {
	http    *http.Client
	tokens  *tokenSource
	baseURL string
	limiter *rate.Limiter
}

// New creates a REST client.
func New(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("%w: api base url is required", domain.ErrInvalidInput)
	}
	if cfg.Tokens == nil {
		return nil, fmt.Errorf("%w: token provider is required", domain.ErrInvalidInput)
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	base := cfg.Transport
	if base == nil {
		base = http.DefaultTransport
	}

	limiter := rate.NewLimiter(rate.Inf, 0)
	if cfg.RateLimit > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.RateLimit)
	}

	return &Client{
		http: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: base,
		},
		tokens:  &tokenSource{provider: cfg.Tokens},
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		limiter: limiter,
	}, nil
}

// tokenSource asks the provider for a token on every call.
// Tokens are never cached between requests.
type tokenSource struct {
	provider driven.TokenProvider
}

// Token fetches the bearer within ctx, so a cancelled request also
// cancels any refresh the provider performs.
func (s *tokenSource) Token(ctx context.Context) (*oauth2.Token, error) {
	tok, err := s.provider.GetToken(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrUnauthorized, err)
	}
	if tok == "" {
		return nil, domain.ErrUnauthorized
	}
	return &oauth2.Token{AccessToken: tok, TokenType: "Bearer"}, nil
}

// errorBody is the service's error envelope.
type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// do sends a JSON request and decodes the response into out when non-nil.
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrRateLimited, err)
	}

	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	tok, err := c.tokens.Token(ctx)
	if err != nil {
		return err
	}
	tok.SetAuthHeader(req)

	requestID := uuid.NewString()
	req.Header.Set(RequestIDHeader, requestID)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	logger.Debug("%s %s -> %d (%s, id=%s)", method, path, resp.StatusCode, time.Since(start).Round(time.Millisecond), requestID)

	if resp.StatusCode == http.StatusUnauthorized {
		return domain.ErrUnauthorized
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		svcErr := &domain.ServiceError{Status: resp.StatusCode, Message: readErrorMessage(resp.Body)}
		if resp.StatusCode == http.StatusTooManyRequests {
			return fmt.Errorf("%w: %w", domain.ErrRateLimited, svcErr)
		}
		return svcErr
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func readErrorMessage(r io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(r, maxErrorBody))
	if err != nil || len(data) == 0 {
		return ""
	}
	var eb errorBody
	if err := json.Unmarshal(data, &eb); err != nil {
		return ""
	}
	if eb.Error != "" {
		return eb.Error
	}
	return eb.Message
}
