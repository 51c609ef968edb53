// Package llm talks to an Ollama-compatible language model and turns its
// answers into dispute inputs and user-facing explanations.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// Request is one prompt sent to the model
type Request struct {
	Prompt string
	// JSON asks the model to answer with a JSON document
	JSON bool
}

// Generator produces raw model text for a prompt. Deadlines are carried by ctx.
type Generator interface {
	Generate(ctx context.Context, req Request) (string, error)
}

// GeneratorFunc adapts a function to the Generator interface
type GeneratorFunc func(ctx context.Context, req Request) (string, error)

// Generate calls f(ctx, req)
func (f GeneratorFunc) Generate(ctx context.Context, req Request) (string, error) {
	return f(ctx, req)
}

// Client calls the /api/generate endpoint of an Ollama-compatible server.
// It performs a single attempt; callers own the deadline.
type Client struct {
	client  *http.Client
	baseURL string
	model   string
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) { c.client = hc }
}

// NewClient creates a client for the given endpoint and model
func NewClient(baseURL, model string, opts ...ClientOption) *Client {
	c := &Client{
		client:  &http.Client{},
		baseURL: baseURL,
		model:   model,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type generateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Format string `json:"format,omitempty"`
	Stream bool   `json:"stream"`
}

type generateResponse struct {
	Response string `json:"response"`
}

// Generate sends the prompt and returns the raw response text
func (c *Client) Generate(ctx context.Context, req Request) (string, error) {
	payload := generateRequest{
		Model:  c.model,
		Prompt: req.Prompt,
		Stream: false,
	}
	if req.JSON {
		payload.Format = "json"
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", newError(FailureMalformed, fmt.Errorf("marshal request: %w", err))
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
	if err != nil {
		return "", newError(FailureUnreachable, fmt.Errorf("create request: %w", err))
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		if isTimeout(err) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return "", newError(FailureTimeout, err)
		}
		return "", newError(FailureUnreachable, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		if isTimeout(err) {
			return "", newError(FailureTimeout, err)
		}
		return "", newError(FailureUnreachable, fmt.Errorf("read response: %w", err))
	}

	if resp.StatusCode != http.StatusOK {
		return "", newError(FailureUnreachable, fmt.Errorf("model server error (%d): %s", resp.StatusCode, string(respBody)))
	}

	var genResp generateResponse
	if err := json.Unmarshal(respBody, &genResp); err != nil {
		return "", newError(FailureMalformed, fmt.Errorf("decode response: %w", err))
	}

	return genResp.Response, nil
}

var _ Generator = (*Client)(nil)
