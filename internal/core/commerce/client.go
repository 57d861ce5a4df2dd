package commerce

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"checkout-gateway/internal/core/config"
	"checkout-gateway/internal/core/httpclient"
)

// envelope is the uniform response wrapper used by every commerce API endpoint.
// Callers must branch on Success before trusting Data.
type envelope struct {
	// Success indicates whether the operation succeeded.
	Success bool `json:"success"`
	// Message is the human-readable outcome description.
	Message string `json:"message"`
	// Data is the endpoint-specific payload, decoded lazily.
	Data json.RawMessage `json:"data"`
}

// APIError represents a failure reported by the commerce API, either as a
// non-2xx status or as a success=false envelope.
type APIError struct {
	// StatusCode is the HTTP status returned by the API.
	StatusCode int
	// Message is the server-provided failure message, if any.
	Message string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("commerce API error (status %d): %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("commerce API error (status %d)", e.StatusCode)
}

// Client is an HTTP client for the remote commerce API.
type Client struct {
	// http is the HTTP client used for API requests.
	http *http.Client
	// config holds the commerce API connection details.
	config config.CommerceConfig
}

// NewClient creates a new commerce API client.
func NewClient(cfg config.CommerceConfig) *Client {
	return &Client{
		http:   httpclient.NewClient(10 * time.Second),
		config: cfg,
	}
}

// RequestOption mutates an outgoing request before it is executed.
type RequestOption func(*http.Request)

// WithBearer forwards an end-user bearer token to the commerce API,
// which remains the authority on its validity.
func WithBearer(token string) RequestOption {
	return func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}

// WithQuery appends a query string parameter to the request URL.
func WithQuery(key, value string) RequestOption {
	return func(req *http.Request) {
		q := req.URL.Query()
		q.Set(key, value)
		req.URL.RawQuery = q.Encode()
	}
}

// Do executes a request against the commerce API, decodes the response
// envelope, and unmarshals its data payload into out when out is non-nil.
func (c *Client) Do(ctx context.Context, method, path string, body interface{}, out interface{}, opts ...RequestOption) error {
	url := c.config.URL + path

	var reqBody *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(payload)
	} else {
		reqBody = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("X-API-Key", c.config.APIKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	for _, opt := range opts {
		opt(req)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		if resp.StatusCode >= http.StatusBadRequest {
			return &APIError{StatusCode: resp.StatusCode}
		}
		return fmt.Errorf("failed to decode response: %w", err)
	}

	if resp.StatusCode >= http.StatusBadRequest || !env.Success {
		return &APIError{StatusCode: resp.StatusCode, Message: env.Message}
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("failed to decode response data: %w", err)
		}
	}

	return nil
}

// Get performs a GET request against the commerce API.
func (c *Client) Get(ctx context.Context, path string, out interface{}, opts ...RequestOption) error {
	return c.Do(ctx, http.MethodGet, path, nil, out, opts...)
}

// Post performs a POST request against the commerce API.
func (c *Client) Post(ctx context.Context, path string, body, out interface{}, opts ...RequestOption) error {
	return c.Do(ctx, http.MethodPost, path, body, out, opts...)
}

// Put performs a PUT request against the commerce API.
func (c *Client) Put(ctx context.Context, path string, body, out interface{}, opts ...RequestOption) error {
	return c.Do(ctx, http.MethodPut, path, body, out, opts...)
}

// Delete performs a DELETE request against the commerce API.
func (c *Client) Delete(ctx context.Context, path string, opts ...RequestOption) error {
	return c.Do(ctx, http.MethodDelete, path, nil, nil, opts...)
}

// HealthCheck verifies that the commerce API is reachable and the key is valid.
func (c *Client) HealthCheck(ctx context.Context) error {
	if err := c.Get(ctx, "/api/v1/health", nil); err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	return nil
}
