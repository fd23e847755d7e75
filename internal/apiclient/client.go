// Package apiclient is the HTTP client for the storefront backend.
//
// Client centralizes the base URL, default headers and error classification so callers only
// name the path. Storefront wraps it with one typed method per backend endpoint.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/Cheertaboi/storefront/internal/requestid"
)

const maxBodyBytes = 1 << 20

type Client struct {
	baseURL string
	http    *http.Client
	headers http.Header
	logger  *zap.Logger
}

type Option func(*Client)

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTimeout bounds every request. Zero means no timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.Timeout = d }
}

// WithHeaders adds headers sent on every request.
func WithHeaders(h map[string]string) Option {
	return func(c *Client) {
		for k, v := range h {
			c.headers.Set(k, v)
		}
	}
}

func New(baseURL string, logger *zap.Logger, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		http:    &http.Client{},
		headers: make(http.Header),
		logger:  logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, body, out)
}

func (c *Client) Delete(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodDelete, path, nil, out)
}

// errorBody is the loose shape of backend error responses.
type errorBody struct {
	Message any `json:"message"`
	Error   any `json:"error"`
}

func (b errorBody) text() string {
	if s, ok := b.Message.(string); ok && s != "" {
		return s
	}
	if s, ok := b.Error.(string); ok && s != "" {
		return s
	}
	return ""
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	fail := func(kind Kind, err error) error {
		return &Error{Kind: kind, Method: method, Path: path, Err: err}
	}

	var reqBody io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fail(KindUnknown, fmt.Errorf("encode request: %w", err))
		}
		reqBody = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fail(KindUnknown, fmt.Errorf("build request: %w", err))
	}
	for k, vs := range c.headers {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	reqID := requestid.FromContext(ctx)
	if reqID != "" {
		req.Header.Set(requestid.Header, reqID)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		kind := kindForTransport(err)
		c.logger.Warn("backend request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.String("kind", kind.String()),
			zap.String("request_id", reqID),
			zap.Error(err))
		return fail(kind, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return fail(kindForTransport(err), fmt.Errorf("read response: %w", err))
	}

	c.logger.Debug("backend request",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("latency", time.Since(start)),
		zap.String("request_id", reqID))

	if !isSuccess(resp.StatusCode) {
		var eb errorBody
		_ = json.Unmarshal(raw, &eb)
		apiErr := &Error{
			Kind:       kindForStatus(resp.StatusCode),
			Method:     method,
			Path:       path,
			StatusCode: resp.StatusCode,
			Message:    eb.text(),
		}
		c.logger.Info("backend returned error status",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
			zap.String("message", apiErr.Message),
			zap.String("request_id", reqID))
		return apiErr
	}

	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fail(KindUnknown, fmt.Errorf("decode response: %w", err))
	}
	return nil
}
