// Package http provides the HTTP transport for the client
package http

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/nineflags-io/jenkinsapi/internal/constants"
	"github.com/nineflags-io/jenkinsapi/pkg/jenkins"
)

// BasicAuth carries HTTP Basic credentials. The password slot also accepts
// an API token.
type BasicAuth struct {
	Username string
	Password string
}

// Request represents an HTTP request
type Request struct {
	Method      string
	Path        string
	Query       url.Values
	Headers     map[string]string
	Body        []byte
	ContentType string
}

// Response represents an HTTP response
type Response struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
}

// Client is an HTTP client for the server's JSON API. It attaches
// authentication and CSRF crumbs, classifies failures into the package
// error taxonomy, and optionally retries transient transport failures.
type Client struct {
	baseURL       string
	httpClient    *retryablehttp.Client
	auth          *BasicAuth
	userAgent     string
	logger        jenkins.Logger
	debug         bool
	crumbs        *crumbStore
	crumbDisabled bool
	tlsConfig     *tls.Config
	timeout       time.Duration
}

// Option is a functional option for configuring the client
type Option func(*Client)

// WithLogger sets the logger for the client
func WithLogger(logger jenkins.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithDebug enables debug logging of requests and responses. Credentials
// and crumb values are never logged.
func WithDebug(debug bool) Option {
	return func(c *Client) {
		c.debug = debug
	}
}

// WithUserAgent sets a custom user agent
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

// WithTimeout sets the per-request timeout
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.timeout = timeout
	}
}

// WithRetryConfig opts in to automatic retries of transient transport
// failures. The default is no retries.
func WithRetryConfig(maxRetries int, waitMin, waitMax time.Duration) Option {
	return func(c *Client) {
		c.httpClient.RetryMax = maxRetries
		c.httpClient.RetryWaitMin = waitMin
		c.httpClient.RetryWaitMax = waitMax
	}
}

// WithTLSConfig overrides TLS settings of the underlying transport
func WithTLSConfig(tlsConfig *tls.Config) Option {
	return func(c *Client) {
		c.tlsConfig = tlsConfig
	}
}

// WithCrumbDisabled turns off CSRF crumb handling entirely
func WithCrumbDisabled(disabled bool) Option {
	return func(c *Client) {
		c.crumbDisabled = disabled
	}
}

// NewClient creates a new HTTP client. auth may be nil for anonymous
// access.
func NewClient(baseURL string, auth *BasicAuth, opts ...Option) *Client {
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = constants.DefaultRetryMax
	retryClient.RetryWaitMin = constants.DefaultRetryWaitMin
	retryClient.RetryWaitMax = constants.DefaultRetryWaitMax
	retryClient.Logger = nil
	retryClient.HTTPClient.Timeout = constants.DefaultHTTPTimeout
	// trigger endpoints answer 302 with the queue item in the Location
	// header, which redirect following would swallow
	retryClient.HTTPClient.CheckRedirect = func(req *http.Request, via []*http.Request) error {
		return http.ErrUseLastResponse
	}

	client := &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: retryClient,
		auth:       auth,
		userAgent:  constants.DefaultUserAgent,
		crumbs:     newCrumbStore(),
	}

	for _, opt := range opts {
		opt(client)
	}

	if client.timeout > 0 {
		retryClient.HTTPClient.Timeout = client.timeout
	}
	if client.tlsConfig != nil {
		transport := http.DefaultTransport.(*http.Transport).Clone()
		transport.TLSClientConfig = client.tlsConfig
		retryClient.HTTPClient.Transport = transport
	}

	return client
}

// Do executes an HTTP request. Mutating requests carry a CSRF crumb; when
// the server rejects the crumb the request is retried once with a fresh
// one, and a second rejection surfaces ErrInvalidCrumb.
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	mutating := req.Method != http.MethodGet && req.Method != http.MethodHead

	var crumb *crumb
	if mutating && !c.crumbDisabled {
		var err error
		crumb, err = c.currentCrumb(ctx)
		if err != nil {
			return nil, err
		}
	}

	resp, err := c.send(ctx, req, crumb)
	if err != nil {
		return resp, err
	}

	if mutating && !c.crumbDisabled && crumbRejected(resp.StatusCode) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		c.crumbs.invalidate()
		crumb, err = c.currentCrumb(ctx)
		if err != nil {
			return nil, err
		}
		resp, err = c.send(ctx, req, crumb)
		if err != nil {
			return resp, err
		}
		if crumbRejected(resp.StatusCode) {
			return resp, fmt.Errorf("%s %s: %w", req.Method, req.Path, jenkins.ErrInvalidCrumb)
		}
	}

	if resp.StatusCode >= 400 {
		return resp, &jenkins.StatusError{
			StatusCode: resp.StatusCode,
			Path:       req.Path,
			Snippet:    jenkins.Snippet(resp.Body),
		}
	}

	return resp, nil
}

func crumbRejected(statusCode int) bool {
	return statusCode == http.StatusUnauthorized || statusCode == http.StatusForbidden
}

// send performs one HTTP round trip without crumb retry logic
func (c *Client) send(ctx context.Context, req *Request, crumb *crumb) (*Response, error) {
	fullURL := c.baseURL + req.Path
	if len(req.Query) > 0 {
		fullURL += "?" + req.Query.Encode()
	}

	var body io.Reader
	if req.Body != nil {
		body = bytes.NewReader(req.Body)
	}

	httpReq, err := retryablehttp.NewRequestWithContext(ctx, req.Method, fullURL, body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	httpReq.Header.Set(constants.HeaderAccept, constants.ContentTypeJSON)
	httpReq.Header.Set(constants.HeaderUserAgent, c.userAgent)
	if req.ContentType != "" {
		httpReq.Header.Set(constants.HeaderContentType, req.ContentType)
	}
	for key, value := range req.Headers {
		httpReq.Header.Set(key, value)
	}
	if c.auth != nil {
		httpReq.SetBasicAuth(c.auth.Username, c.auth.Password)
	}
	if crumb != nil {
		httpReq.Header.Set(crumb.RequestField, crumb.Value)
	}

	if c.debug && c.logger != nil {
		c.logger.Debug("http request", map[string]interface{}{
			"method": req.Method,
			"url":    fullURL,
		})
	}

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, &jenkins.TransportError{URL: fullURL, Err: err}
	}
	defer func() { _ = httpResp.Body.Close() }()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, &jenkins.TransportError{URL: fullURL, Err: err}
	}

	if c.debug && c.logger != nil {
		c.logger.Debug("http response", map[string]interface{}{
			"method": req.Method,
			"url":    fullURL,
			"status": httpResp.StatusCode,
		})
	}

	return &Response{
		StatusCode: httpResp.StatusCode,
		Headers:    httpResp.Header,
		Body:       respBody,
	}, nil
}

// Get performs a GET request
func (c *Client) Get(ctx context.Context, path string, query url.Values) (*Response, error) {
	return c.Do(ctx, &Request{
		Method: http.MethodGet,
		Path:   path,
		Query:  query,
	})
}

// Post performs a POST request with an empty body
func (c *Client) Post(ctx context.Context, path string, query url.Values) (*Response, error) {
	return c.Do(ctx, &Request{
		Method: http.MethodPost,
		Path:   path,
		Query:  query,
	})
}

// PostForm performs a POST request with form-encoded parameters
func (c *Client) PostForm(ctx context.Context, path string, form url.Values) (*Response, error) {
	return c.Do(ctx, &Request{
		Method:      http.MethodPost,
		Path:        path,
		Body:        []byte(form.Encode()),
		ContentType: constants.ContentTypeForm,
	})
}

// Delete performs a DELETE request
func (c *Client) Delete(ctx context.Context, path string) (*Response, error) {
	return c.Do(ctx, &Request{
		Method: http.MethodDelete,
		Path:   path,
	})
}
