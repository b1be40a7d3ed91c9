// Package platform provides driven adapters for the vessel management
// platform HTTP API: search, ledger recording, action execution, and
// share-link resolution.
package platform

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/quayside-labs/deckhand/internal/core/ports/driven"
)

// Default configuration values.
const (
	DefaultBaseURL = "https://api.quayside.app"
	DefaultTimeout = 30 * time.Second
)

// Config holds configuration for the platform client.
type Config struct {
	// BaseURL is the API base URL (default: https://api.quayside.app).
	BaseURL string

	// Timeout is the per-request timeout (default: 30s).
	Timeout time.Duration

	// Tokens supplies the bearer token for authenticated requests.
	Tokens driven.TokenProvider
}

// Client is the shared HTTP transport for all platform endpoints.
type Client struct {
	client  *http.Client
	baseURL string
	tokens  driven.TokenProvider
}

// apiError is the platform's structured error envelope.
type apiError struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// NewClient creates a platform client.
func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	return &Client{
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		baseURL: cfg.BaseURL,
		tokens:  cfg.Tokens,
	}
}

// postJSON sends a JSON POST and decodes the response into out. A non-2xx
// status returns an error carrying the platform's error code when present.
func (c *Client) postJSON(ctx context.Context, path string, in, out any) error {
	jsonBody, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		c.baseURL+path,
		bytes.NewReader(jsonBody),
	)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	if c.tokens != nil {
		token, err := c.tokens.Token(ctx)
		if err != nil {
			return fmt.Errorf("session token: %w", err)
		}
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return newStatusError(path, resp.StatusCode, body)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// StatusError is a non-2xx platform response.
type StatusError struct {
	// Path is the endpoint path.
	Path string

	// StatusCode is the HTTP status.
	StatusCode int

	// Code is the platform error code, when the envelope carried one.
	Code string

	// Message is the platform error message, when present.
	Message string
}

// Error implements the error interface.
func (e *StatusError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("platform %s: status %d: %s (%s)", e.Path, e.StatusCode, e.Message, e.Code)
	}
	return fmt.Sprintf("platform %s: status %d", e.Path, e.StatusCode)
}

func newStatusError(path string, status int, body []byte) *StatusError {
	serr := &StatusError{Path: path, StatusCode: status}
	var env apiError
	if err := json.Unmarshal(body, &env); err == nil {
		serr.Code = env.Error.Code
		serr.Message = env.Error.Message
	}
	return serr
}
