// Package walti is a client for the Walti security-scanning API.
package walti

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/crucial707/walti/internal/apierr"
	"github.com/crucial707/walti/internal/middleware"
	"golang.org/x/time/rate"
)

const (
	DefaultAPIHost     = "https://api.walti.io"
	DefaultConsoleHost = "https://console.walti.io"
	DefaultUserAgent   = "Walti Go Plugin"
)

// Response pairs the status of one call with its body. Body is set for
// every status; the caller must close it.
type Response struct {
	StatusCode int
	Body       io.ReadCloser
}

// Client talks to the Walti API with one key/secret pair. It keeps no
// per-call state and may be shared between goroutines.
type Client struct {
	key         string
	secret      string
	apiHost     string
	consoleHost string
	userAgent   string
	httpClient  *http.Client
	logger      *slog.Logger
	limiter     *rate.Limiter
	timeout     time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithAPIHost points the client at another API root, e.g. a test server.
func WithAPIHost(host string) Option {
	return func(c *Client) { c.apiHost = strings.TrimRight(host, "/") }
}

// WithConsoleHost sets the root used for result page URLs.
func WithConsoleHost(host string) Option {
	return func(c *Client) { c.consoleHost = strings.TrimRight(host, "/") }
}

func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

// WithHTTPClient replaces the underlying *http.Client. The client is
// copied; its transport is wrapped, not replaced.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// WithRateLimit caps outgoing calls at rps per second. rps <= 0 disables it.
func WithRateLimit(rps float64, burst int) Option {
	return func(c *Client) { c.limiter = middleware.NewLimiter(rps, burst) }
}

// WithTimeout bounds each call, including reading the body. It overrides
// the timeout of a client passed to WithHTTPClient without changing it.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// New returns a client authenticating with key and secret.
func New(key, secret string, opts ...Option) *Client {
	c := &Client{
		key:         key,
		secret:      secret,
		apiHost:     DefaultAPIHost,
		consoleHost: DefaultConsoleHost,
		userAgent:   DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}

	base := &http.Client{}
	if c.httpClient != nil {
		*base = *c.httpClient
	}
	if c.timeout > 0 {
		base.Timeout = c.timeout
	}
	base.Transport = middleware.Chain(base.Transport,
		middleware.RequestLog(c.logger),
		middleware.Prometheus,
		middleware.RateLimit(c.limiter),
	)
	c.httpClient = base
	return c
}

// ConsoleHost returns the root of the web console.
func (c *Client) ConsoleHost() string {
	return c.consoleHost
}

// Get issues an authenticated GET to path under the API host.
func (c *Client) Get(ctx context.Context, path string) (*Response, error) {
	req, err := c.newRequest(ctx, http.MethodGet, path)
	if err != nil {
		return nil, err
	}
	return c.do(req)
}

// Post issues an authenticated form POST with an empty body.
func (c *Client) Post(ctx context.Context, path string) (*Response, error) {
	req, err := c.newRequest(ctx, http.MethodPost, path)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return c.do(req)
}

// PostForm behaves exactly like Post: params are not sent. No endpoint
// in use takes a body yet.
// TODO: encode params into the body once an endpoint needs form fields.
func (c *Client) PostForm(ctx context.Context, path string, params url.Values) (*Response, error) {
	if len(params) > 0 {
		c.logger.Warn("form parameters are not sent", "path", path, "params", len(params))
	}
	return c.Post(ctx, path)
}

// IsValidCredentials checks the key/secret pair against /v1/me.
func (c *Client) IsValidCredentials(ctx context.Context) (bool, error) {
	resp, err := c.Get(ctx, "/v1/me")
	if err != nil {
		return false, err
	}
	closeQuietly(resp.Body)

	switch resp.StatusCode {
	case http.StatusOK:
		return true, nil
	case http.StatusNotFound:
		return false, nil
	default:
		return false, apierr.Errorf("unexpected status %d validating credentials", resp.StatusCode)
	}
}

func (c *Client) newRequest(ctx context.Context, method, path string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.apiHost+path, nil)
	if err != nil {
		return nil, apierr.Wrap(err, "build request "+method+" "+path)
	}
	req.Header.Set("Api-Key", c.key)
	req.Header.Set("Api-Secret", c.secret)
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")
	return req, nil
}

func (c *Client) do(req *http.Request) (*Response, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apierr.Wrap(err, req.Method+" "+req.URL.Path)
	}
	return &Response{StatusCode: resp.StatusCode, Body: resp.Body}, nil
}

// readAll drains and closes body.
func readAll(body io.ReadCloser) ([]byte, error) {
	defer closeQuietly(body)
	data, err := io.ReadAll(body)
	if err != nil {
		return nil, apierr.Wrap(err, "read response body")
	}
	return data, nil
}

// closeQuietly drops close errors so they never mask the primary one.
func closeQuietly(c io.Closer) {
	if c != nil {
		_ = c.Close()
	}
}
