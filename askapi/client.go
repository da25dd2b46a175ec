// Package askapi talks to the labor-law question-answering service:
// POST /ask with a question, GET /health for a liveness check.
package askapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const maxErrorBody = 512

// ErrMalformedResponse means the service answered 2xx with a body that is not
// the expected {"answer": ...} shape.
var ErrMalformedResponse = errors.New("malformed response")

// StatusError is returned for non-2xx responses
type StatusError struct {
	StatusCode int
	Detail     string
}

func (e *StatusError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("unexpected status %d", e.StatusCode)
	}
	return fmt.Sprintf("unexpected status %d: %s", e.StatusCode, e.Detail)
}

type Request struct {
	Question  string `json:"question"`
	SessionID string `json:"session_id,omitempty"`
}

type Response struct {
	Answer  string
	Sources []string
}

type wireResponse struct {
	Answer  *string  `json:"answer"`
	Sources []string `json:"sources,omitempty"`
}

type HealthStatus struct {
	Status   string `json:"status"`
	Database string `json:"database,omitempty"`
}

// OK reports whether the service declared itself healthy
func (h *HealthStatus) OK() bool {
	return h != nil && strings.EqualFold(h.Status, "ok")
}

// Asker is what the conversation model needs from the service
type Asker interface {
	Ask(ctx context.Context, req Request) (*Response, error)
	Health(ctx context.Context) (*HealthStatus, error)
}

type Client struct {
	endpoint   string
	healthURL  string
	httpClient *http.Client
	timeout    time.Duration
}

var _ Asker = (*Client)(nil)

type Option func(*Client)

// WithTimeout bounds each Ask call. Zero leaves requests unbounded.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

func NewClient(endpoint string, opts ...Option) (*Client, error) {
	if endpoint == "" {
		endpoint = "http://localhost:8000/ask"
	}

	parsedURL, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("invalid endpoint URL: %w", err)
	}
	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return nil, fmt.Errorf("invalid endpoint URL %q: scheme must be http or https", endpoint)
	}
	if parsedURL.Host == "" {
		return nil, fmt.Errorf("invalid endpoint URL %q: missing host", endpoint)
	}

	c := &Client{
		endpoint:   parsedURL.String(),
		healthURL:  parsedURL.ResolveReference(&url.URL{Path: "/health"}).String(),
		httpClient: http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func (c *Client) Endpoint() string {
	return c.endpoint
}

// Ask sends one question and waits for the answer. Failures are one of:
// a transport error, *StatusError, or ErrMalformedResponse.
func (c *Client) Ask(ctx context.Context, req Request) (*Response, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("ask request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, newStatusError(resp)
	}

	var wire wireResponse
	if err := json.NewDecoder(resp.Body).Decode(&wire); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if wire.Answer == nil {
		return nil, fmt.Errorf("%w: missing answer", ErrMalformedResponse)
	}

	return &Response{Answer: *wire.Answer, Sources: wire.Sources}, nil
}

// Health calls GET /health on the endpoint's host
func (c *Client) Health(ctx context.Context) (*HealthStatus, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.healthURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build health request: %w", err)
	}
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("health request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, newStatusError(resp)
	}

	var status HealthStatus
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return &status, nil
}

func newStatusError(resp *http.Response) *StatusError {
	data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	return &StatusError{StatusCode: resp.StatusCode, Detail: extractDetail(data)}
}

// extractDetail pulls FastAPI's {"detail": "..."} out of an error body, falling back to the raw text
func extractDetail(body []byte) string {
	var withDetail struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &withDetail); err == nil && len(withDetail.Detail) > 0 {
		var s string
		if err := json.Unmarshal(withDetail.Detail, &s); err == nil {
			return s
		}
		return string(withDetail.Detail)
	}
	return strings.TrimSpace(string(body))
}
