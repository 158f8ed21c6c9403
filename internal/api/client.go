// Package api is the single HTTP gateway to the backend. It attaches the
// bearer credential from the session store, normalizes every failure into
// an *Error, and tears the session down on 401 responses.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/imtda/edusite/internal/obs"
)

// TokenSource supplies and owns the persisted bearer credential.
type TokenSource interface {
	// Token returns the current access token, or ok=false when no valid,
	// unexpired token exists.
	Token(ctx context.Context) (token string, ok bool)
	// Store persists a new token with the given expiry.
	Store(ctx context.Context, token string, expiresAt time.Time)
	// Clear purges the persisted session.
	Clear(ctx context.Context)
}

// Envelope is the backend's response wrapper. Its shape is asserted, not
// trusted; Data is decoded lazily by the caller.
type Envelope struct {
	Data       json.RawMessage `json:"data"`
	Message    string          `json:"message"`
	Code       string          `json:"code"`
	Pagination *Pagination     `json:"pagination,omitempty"`
}

// Pagination carries the paginated list metadata.
type Pagination struct {
	Total      int `json:"total"`
	Page       int `json:"page"`
	PageSize   int `json:"pageSize"`
	TotalPages int `json:"totalPages"`
}

// Config holds construction parameters for the client.
type Config struct {
	BaseURL      string
	Timeout      time.Duration
	TokenTTL     time.Duration
	RateLimitRPS float64
}

// Option customizes a Client.
type Option func(*Client)

// WithTokenSource wires the session store the client reads on every call.
func WithTokenSource(source TokenSource) Option {
	return func(c *Client) { c.tokens = source }
}

// WithOnUnauthorized registers the session-invalidated callback fired after
// a 401 teardown. The application shell translates it into navigation.
func WithOnUnauthorized(fn func(ctx context.Context)) Option {
	return func(c *Client) { c.onUnauthorized = fn }
}

// WithMetrics enables outbound request instrumentation.
func WithMetrics(m *obs.Metrics) Option {
	return func(c *Client) { c.metrics = m }
}

// WithLogger sets the client logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// WithHTTPClient overrides the underlying transport (used by tests).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// Client is the request gateway. It never retries transparently; a 401 is
// the single trigger for forced session teardown, every other error is
// reported upward unchanged.
type Client struct {
	baseURL        string
	http           *http.Client
	tokenTTL       time.Duration
	tokens         TokenSource
	onUnauthorized func(ctx context.Context)
	limiter        *rate.Limiter
	metrics        *obs.Metrics
	logger         *slog.Logger

	teardownMu sync.Mutex
}

// New creates a client with the fixed base URL and global timeout.
func New(cfg Config, opts ...Option) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	tokenTTL := cfg.TokenTTL
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	c := &Client{
		baseURL:  strings.TrimRight(cfg.BaseURL, "/"),
		http:     &http.Client{Timeout: timeout},
		tokenTTL: tokenTTL,
		logger:   slog.New(slog.DiscardHandler),
	}
	if cfg.RateLimitRPS > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimitRPS), 1)
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetToken persists the access token through the session store. A zero
// expiresAt defaults to now plus the configured TTL.
func (c *Client) SetToken(ctx context.Context, token string, expiresAt time.Time) {
	if c.tokens == nil {
		return
	}
	if expiresAt.IsZero() {
		expiresAt = time.Now().Add(c.tokenTTL)
	}
	c.tokens.Store(ctx, token, expiresAt)
}

// ClearToken purges the persisted session.
func (c *Client) ClearToken(ctx context.Context) {
	if c.tokens != nil {
		c.tokens.Clear(ctx)
	}
}

// Get issues a GET and decodes the envelope data into out.
func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, "", nil, out)
}

// Post issues a POST with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.doJSON(ctx, http.MethodPost, path, body, out)
}

// Put issues a PUT with a JSON body.
func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.doJSON(ctx, http.MethodPut, path, body, out)
}

// Patch issues a PATCH with a JSON body.
func (c *Client) Patch(ctx context.Context, path string, body, out any) error {
	return c.doJSON(ctx, http.MethodPatch, path, body, out)
}

// Delete issues a DELETE.
func (c *Client) Delete(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodDelete, path, "", nil, out)
}

// PostMultipart submits form fields plus one file as multipart/form-data.
// The content type comes from the multipart writer; nothing is set manually.
func (c *Client) PostMultipart(ctx context.Context, path string, fields map[string]string, fileField, fileName string, file io.Reader, out any) error {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for name, value := range fields {
		if err := writer.WriteField(name, value); err != nil {
			return &Error{Code: CodeUnknown, Message: "building multipart payload", cause: err}
		}
	}
	if file != nil {
		part, err := writer.CreateFormFile(fileField, fileName)
		if err != nil {
			return &Error{Code: CodeUnknown, Message: "building multipart payload", cause: err}
		}
		if _, err := io.Copy(part, file); err != nil {
			return &Error{Code: CodeUnknown, Message: "reading upload", cause: err}
		}
	}
	if err := writer.Close(); err != nil {
		return &Error{Code: CodeUnknown, Message: "building multipart payload", cause: err}
	}
	return c.do(ctx, http.MethodPost, path, writer.FormDataContentType(), &buf, out)
}

func (c *Client) doJSON(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return &Error{Code: CodeUnknown, Message: "encoding request body", cause: err}
		}
		reader = bytes.NewReader(encoded)
	}
	return c.do(ctx, method, path, "application/json", reader, out)
}

func (c *Client) do(ctx context.Context, method, path, contentType string, body io.Reader, out any) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return networkError(err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return &Error{Code: CodeUnknown, Message: "building request", cause: err}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.tokens != nil {
		if token, ok := c.tokens.Token(ctx); ok {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	done := c.metrics.ObserveStart(method, path)
	resp, err := c.http.Do(req)
	if err != nil {
		done(0)
		c.logger.Debug("request failed", "method", method, "path", path, "error", err)
		return networkError(err)
	}
	defer resp.Body.Close()
	done(resp.StatusCode)

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return networkError(err)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		c.teardown(ctx)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var env Envelope
		_ = json.Unmarshal(payload, &env)
		apiErr := statusError(resp.StatusCode, env.Message, env.Code)
		c.logger.Debug("request rejected", "method", method, "path", path,
			"status", resp.StatusCode, "code", apiErr.Code)
		return apiErr
	}

	if out == nil || len(payload) == 0 {
		return nil
	}
	var env Envelope
	if err := json.Unmarshal(payload, &env); err != nil {
		return &Error{Code: CodeUnknown, Message: "malformed response envelope", Status: resp.StatusCode, cause: err}
	}
	if len(env.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return &Error{Code: CodeUnknown, Message: "malformed response payload", Status: resp.StatusCode, cause: err}
	}
	return nil
}

// teardown purges the session once per 401 and emits the session-invalidated
// event. Concurrent 401s collapse into sequential idempotent purges.
func (c *Client) teardown(ctx context.Context) {
	c.teardownMu.Lock()
	defer c.teardownMu.Unlock()
	if c.tokens != nil {
		c.tokens.Clear(ctx)
	}
	if c.onUnauthorized != nil {
		c.onUnauthorized(ctx)
	}
}

// List fetches a collection, coercing any non-array data payload into an
// empty slice instead of propagating a type-inconsistent response.
func List[T any](ctx context.Context, c *Client, path string) ([]T, error) {
	var raw json.RawMessage
	if err := c.Get(ctx, path, &raw); err != nil {
		return nil, err
	}
	items := []T{}
	if len(raw) == 0 {
		return items, nil
	}
	if err := json.Unmarshal(raw, &items); err != nil || items == nil {
		return []T{}, nil
	}
	return items, nil
}

// Object fetches a single record.
func Object[T any](ctx context.Context, c *Client, path string) (*T, error) {
	var out T
	if err := c.Get(ctx, path, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
