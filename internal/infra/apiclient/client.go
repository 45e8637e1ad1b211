// Package apiclient provides the HTTP client for the task backend.
// Every call passes through the same interceptor chain: the request side
// attaches the stored bearer token, the response side turns a 401 into a
// session-expiry notification plus logout.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/todolist/todo-client/internal/domain"
)

// Ensure Client implements the API ports.
var (
	_ domain.AuthAPI = (*Client)(nil)
	_ domain.TaskAPI = (*Client)(nil)
)

// SessionExpiredMessage is shown when a request is rejected with 401.
const SessionExpiredMessage = "Your session has expired. Please log in again."

// RequestInterceptor runs on every outgoing request before it is sent.
type RequestInterceptor func(req *http.Request) error

// ResponseInterceptor runs on every completed request, successful or not.
// err is the error that will be returned to the caller.
type ResponseInterceptor func(req *http.Request, resp *http.Response, err error)

// Client is the configured HTTP client for the backend API.
// Fields are ordered to minimize memory padding.
type Client struct {
	httpClient     *http.Client
	creds          domain.CredentialStore
	notifier       domain.Notifier
	logger         domain.Logger
	metrics        *metrics
	onUnauthorized func()
	baseURL        string
	requestChain   []RequestInterceptor
	responseChain  []ResponseInterceptor
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTimeout sets a per-request timeout. Zero keeps the transport default.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithUnauthorizedHandler sets the callback run after a 401 on a non-login request.
func WithUnauthorizedHandler(fn func()) Option {
	return func(c *Client) {
		c.onUnauthorized = fn
	}
}

// WithNotifier sets where the session-expiry warning is raised.
func WithNotifier(n domain.Notifier) Option {
	return func(c *Client) {
		c.notifier = n
	}
}

// WithLogger sets the diagnostic logger.
func WithLogger(l domain.Logger) Option {
	return func(c *Client) {
		c.logger = l
	}
}

// WithMetrics registers request metrics on reg.
func WithMetrics(reg prometheus.Registerer) Option {
	return func(c *Client) {
		c.metrics = newMetrics(reg)
	}
}

// WithRequestInterceptor appends an interceptor after the built-in ones.
func WithRequestInterceptor(fn RequestInterceptor) Option {
	return func(c *Client) {
		c.requestChain = append(c.requestChain, fn)
	}
}

// WithResponseInterceptor appends an interceptor after the built-in ones.
func WithResponseInterceptor(fn ResponseInterceptor) Option {
	return func(c *Client) {
		c.responseChain = append(c.responseChain, fn)
	}
}

// New creates a Client for the API served at origin (e.g. "http://localhost:8000").
// The /api/v1 prefix is appended. creds is read on every request.
func New(origin string, creds domain.CredentialStore, opts ...Option) (*Client, error) {
	origin = strings.TrimRight(strings.TrimSpace(origin), "/")
	if origin == "" {
		return nil, domain.ErrNoAPIURL
	}

	c := &Client{
		httpClient: &http.Client{},
		creds:      creds,
		logger:     domain.NopLogger{},
		baseURL:    origin + domain.APIPathPrefix,
	}
	c.requestChain = []RequestInterceptor{c.setDefaultHeaders, c.attachBearer}
	c.responseChain = []ResponseInterceptor{c.handleUnauthorized}

	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the API root including the version prefix.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// setDefaultHeaders applies headers shared by every request.
func (c *Client) setDefaultHeaders(req *http.Request) error {
	if req.Header.Get("Content-Type") == "" {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	return nil
}

// attachBearer adds the stored token, if any.
// Token and registration calls are sent unauthenticated.
func (c *Client) attachBearer(req *http.Request) error {
	if c.creds == nil || isAuthPath(routePath(req)) {
		return nil
	}
	creds, err := c.creds.Load()
	if err != nil {
		// An unreadable record behaves like no record.
		c.logger.Warn("api", fmt.Sprintf("load credentials: %v", err))
		return nil
	}
	if creds.Token != "" {
		req.Header.Set("Authorization", "Bearer "+creds.Token)
	}
	return nil
}

// handleUnauthorized invalidates the session when a non-login request gets a 401.
// The original error still reaches the caller.
func (c *Client) handleUnauthorized(req *http.Request, resp *http.Response, _ error) {
	if resp == nil || resp.StatusCode != http.StatusUnauthorized {
		return
	}
	if isLoginPath(routePath(req)) {
		return
	}

	c.logger.Warn("api", fmt.Sprintf("%s %s: session expired", req.Method, routePath(req)))

	if c.notifier != nil {
		c.notifier.Notify(SessionExpiredMessage, domain.ToastWarning)
	}
	if c.creds != nil {
		if err := c.creds.Clear(); err != nil {
			c.logger.Error("api", fmt.Sprintf("clear credentials: %v", err))
		}
	}
	if c.onUnauthorized != nil {
		c.onUnauthorized()
		return
	}
	c.logger.Warn("api", "no unauthorized handler registered; credentials cleared only")
}

// request describes one API call.
type request struct {
	body        io.Reader
	out         any
	method      string
	path        string
	contentType string
}

// do sends the request through the interceptor chain and decodes the JSON answer into out.
func (c *Client) do(ctx context.Context, r request) error {
	req, err := http.NewRequestWithContext(ctx, r.method, c.baseURL+r.path, r.body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if r.contentType != "" {
		req.Header.Set("Content-Type", r.contentType)
	}

	for _, fn := range c.requestChain {
		if err := fn(req); err != nil {
			return fmt.Errorf("request interceptor: %w", err)
		}
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.metrics.observe(r.method, r.path, "error", time.Since(start))
		c.logger.Error("api", fmt.Sprintf("%s %s: %v", r.method, r.path, err))
		callErr := &NetworkError{Method: r.method, Path: r.path, Err: err}
		c.runResponseChain(req, nil, callErr)
		return callErr
	}
	defer func() { _ = resp.Body.Close() }()

	body, readErr := io.ReadAll(resp.Body)
	c.metrics.observe(r.method, r.path, fmt.Sprintf("%d", resp.StatusCode), time.Since(start))
	c.logger.Debug("api", fmt.Sprintf("%s %s -> %d", r.method, r.path, resp.StatusCode))

	var callErr error
	switch {
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		callErr = &HTTPError{
			Method: r.method,
			Path:   r.path,
			Status: resp.StatusCode,
			Detail: parseDetail(body),
		}
	case readErr != nil:
		callErr = &NetworkError{Method: r.method, Path: r.path, Err: readErr}
	case r.out != nil && len(bytes.TrimSpace(body)) > 0:
		if err := json.Unmarshal(body, r.out); err != nil {
			callErr = fmt.Errorf("decode %s %s response: %w", r.method, r.path, err)
		}
	}

	c.runResponseChain(req, resp, callErr)
	return callErr
}

func (c *Client) runResponseChain(req *http.Request, resp *http.Response, err error) {
	for _, fn := range c.responseChain {
		fn(req, resp, err)
	}
}

// jsonBody encodes v for a request body.
func jsonBody(v any) (io.Reader, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode request body: %w", err)
	}
	return bytes.NewReader(data), nil
}

// routePath returns the request path relative to the API prefix.
func routePath(req *http.Request) string {
	p := req.URL.Path
	if i := strings.Index(p, domain.APIPathPrefix); i >= 0 {
		p = p[i+len(domain.APIPathPrefix):]
	}
	return p
}

// isLoginPath reports whether a 401 on path means bad credentials rather than an expired session.
func isLoginPath(path string) bool {
	return strings.Contains(path, "/auth/token") || strings.Contains(path, "/auth/login")
}

// isAuthPath reports whether path is an endpoint that is called without a bearer token.
func isAuthPath(path string) bool {
	return isLoginPath(path) || strings.Contains(path, "/auth/register")
}
