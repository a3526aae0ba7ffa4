package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/johnquangdev/meeting-assistant-client/pkg/config"
	"github.com/johnquangdev/meeting-assistant-client/pkg/metrics"
)

// Client talks to the meeting backend over HTTP. Every method makes exactly
// one attempt.
type Client struct {
	apiKey  string
	baseURL string
	client  *http.Client
	// stream is used for long-lived streaming responses; ctx bounds them.
	stream  *http.Client
	metrics *metrics.AssistantMetrics
}

// StatusError is returned for non-2xx responses
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("backend returned status %d", e.Code)
	}
	return fmt.Sprintf("backend returned status %d: %s", e.Code, e.Body)
}

// NewClient creates a backend client from config. m may be nil.
func NewClient(cfg *config.BackendConfig, m *metrics.AssistantMetrics) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		apiKey:  cfg.APIKey,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		client:  &http.Client{Timeout: timeout},
		stream:  &http.Client{},
		metrics: m,
	}
}

// BaseURL returns the configured backend root.
func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}
	return req, nil
}

// postJSON sends in as JSON and decodes the response into out.
func (c *Client) postJSON(ctx context.Context, operation, path string, in, out interface{}) (err error) {
	started := time.Now()
	defer func() { c.metrics.ObserveCall(operation, started, err) }()

	b, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("marshal %s request: %w", operation, err)
	}
	req, err := c.newRequest(ctx, http.MethodPost, path, bytes.NewReader(b))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(c.client, req, out)
}

func (c *Client) getJSON(ctx context.Context, operation, path string, out interface{}) (err error) {
	started := time.Now()
	defer func() { c.metrics.ObserveCall(operation, started, err) }()

	req, err := c.newRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	return c.do(c.client, req, out)
}

func (c *Client) do(hc *http.Client, req *http.Request, out interface{}) error {
	resp, err := hc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", req.URL.Path, err)
	}
	return nil
}

func checkStatus(resp *http.Response) error {
	if resp.StatusCode < 400 {
		return nil
	}
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	return &StatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(body))}
}
