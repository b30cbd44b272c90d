package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/ms1708/academy-portal/internal/config"
)

// Envelope is the standard response wrapper used by the backend.
type Envelope struct {
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Success bool            `json:"success"`
	Errors  []string        `json:"errors,omitempty"`
}

// TokenSource supplies the bearer token for outgoing requests. An empty
// return means the request goes out unauthenticated.
type TokenSource func() string

// Client is the gateway to the remote enrollment backend: base URL, default
// timeout (overridable per call) and a fixed retry count, zero by default.
// Callers must not assume idempotent re-delivery when retries are enabled.
type Client struct {
	baseURL     string
	httpClient  *http.Client
	timeout     time.Duration
	retries     int
	tokenSource TokenSource
	logger      *zap.Logger
}

// NewClient builds a gateway from configuration.
func NewClient(cfg config.BackendConfig, logger *zap.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{},
		timeout:    cfg.Timeout(),
		retries:    cfg.RetryAttempts,
		logger:     logger,
	}
}

// SetTokenSource installs the bearer-token supplier. The session store calls
// this after construction to break the client/session dependency cycle.
func (c *Client) SetTokenSource(src TokenSource) {
	c.tokenSource = src
}

// CallOption overrides per-request behavior.
type CallOption func(*callSettings)

type callSettings struct {
	timeout time.Duration
	query   url.Values
}

// WithTimeout overrides the default request timeout for one call.
func WithTimeout(d time.Duration) CallOption {
	return func(s *callSettings) { s.timeout = d }
}

// WithQuery adds a query parameter to the request URL.
func WithQuery(key, value string) CallOption {
	return func(s *callSettings) {
		if s.query == nil {
			s.query = url.Values{}
		}
		s.query.Set(key, value)
	}
}

// Get performs a GET request and decodes the response into out.
func (c *Client) Get(ctx context.Context, endpoint string, out interface{}, opts ...CallOption) error {
	return c.call(ctx, http.MethodGet, endpoint, nil, out, opts...)
}

// Post performs a POST request with a JSON body and decodes the response into
// out. A nil body sends an empty request; a nil out discards the response.
func (c *Client) Post(ctx context.Context, endpoint string, body, out interface{}, opts ...CallOption) error {
	return c.call(ctx, http.MethodPost, endpoint, body, out, opts...)
}

// Put performs a PUT request with a JSON body and decodes the response into out.
func (c *Client) Put(ctx context.Context, endpoint string, body, out interface{}, opts ...CallOption) error {
	return c.call(ctx, http.MethodPut, endpoint, body, out, opts...)
}

// Delete performs a DELETE request and decodes the response into out.
func (c *Client) Delete(ctx context.Context, endpoint string, out interface{}, opts ...CallOption) error {
	return c.call(ctx, http.MethodDelete, endpoint, nil, out, opts...)
}

func (c *Client) call(ctx context.Context, method, endpoint string, body, out interface{}, opts ...CallOption) error {
	settings := callSettings{timeout: c.timeout}
	for _, opt := range opts {
		opt(&settings)
	}

	var payload []byte
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return &Error{Err: fmt.Errorf("encode request: %w", err)}
		}
		payload = encoded
	}

	target := c.baseURL + "/" + strings.TrimLeft(endpoint, "/")
	if len(settings.query) > 0 {
		target += "?" + settings.query.Encode()
	}

	var lastErr error
	for attempt := 0; attempt <= c.retries; attempt++ {
		lastErr = c.doOnce(ctx, method, target, payload, settings.timeout, out)
		if lastErr == nil {
			return nil
		}
		if attempt < c.retries {
			c.logger.Warn("backend request retrying",
				zap.String("method", method),
				zap.String("url", target),
				zap.Int("attempt", attempt+1),
				zap.Error(lastErr))
		}
	}
	return lastErr
}

func (c *Client) doOnce(ctx context.Context, method, target string, payload []byte, timeout time.Duration, out interface{}) error {
	callCtx := ctx
	if timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	var bodyReader io.Reader
	if payload != nil {
		bodyReader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(callCtx, method, target, bodyReader)
	if err != nil {
		return &Error{Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.tokenSource != nil {
		if token := c.tokenSource(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &Error{Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &Error{Err: fmt.Errorf("read response: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp.StatusCode, data)
	}
	if out == nil || len(data) == 0 {
		return nil
	}
	return decodeBody(data, out)
}

// decodeBody unwraps the standard envelope when present; legacy endpoints
// respond with the bare object instead.
func decodeBody(data []byte, out interface{}) error {
	var envelope Envelope
	if err := json.Unmarshal(data, &envelope); err == nil && len(envelope.Data) > 0 {
		if err := json.Unmarshal(envelope.Data, out); err != nil {
			return &Error{Err: fmt.Errorf("decode response data: %w", err)}
		}
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &Error{Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

func decodeError(status int, data []byte) *Error {
	be := &Error{StatusCode: status}

	var body struct {
		Message string   `json:"message"`
		Errors  []string `json:"errors"`
		ErrorFlags
	}
	if err := json.Unmarshal(data, &body); err == nil {
		be.Message = body.Message
		be.Errors = body.Errors
		be.Flags = body.ErrorFlags
	}
	if be.Message == "" {
		be.Message = http.StatusText(status)
	}
	return be
}
