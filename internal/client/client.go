// Package client implements the jenkins.Client interface
package client

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/nineflags-io/jenkinsapi/internal/constants"
	"github.com/nineflags-io/jenkinsapi/internal/http"
	"github.com/nineflags-io/jenkinsapi/pkg/jenkins"
)

// Client implements jenkins.Client
type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     jenkins.Logger

	// Resource clients
	jobs   jenkins.JobsClient
	builds jenkins.BuildsClient
	views  jenkins.ViewsClient
	queue  jenkins.QueueClient
	nodes  jenkins.NodesClient
}

// New creates a new client for the server at config.BaseURL
func New(ctx context.Context, config *jenkins.Config) (*Client, error) {
	if config == nil {
		return nil, jenkins.ErrConfigRequired
	}

	baseURL, err := validateBaseURL(config.BaseURL)
	if err != nil {
		return nil, err
	}

	httpClient := http.NewClient(baseURL, createAuth(config), createHTTPClientOptions(config)...)

	cache, err := jenkins.NewCacheFromConfig(config.Cache)
	if err != nil {
		return nil, fmt.Errorf("creating cache: %w", err)
	}

	depth := config.Depth
	if depth <= 0 {
		depth = constants.DefaultDepth
	}

	client := &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		logger:     config.Logger,
	}

	client.jobs = NewJobsClient(httpClient, baseURL, depth)
	client.builds = NewBuildsClient(httpClient, baseURL, depth, cache, config.Cache.EntryTTL())
	client.views = NewViewsClient(httpClient)
	client.queue = NewQueueClient(httpClient, baseURL)
	client.nodes = NewNodesClient(httpClient)

	return client, nil
}

// validateBaseURL checks the URL is absolute and strips the trailing slash
func validateBaseURL(rawURL string) (string, error) {
	if rawURL == "" {
		return "", jenkins.ErrBaseURLRequired
	}

	parsed, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("%q: %w", rawURL, jenkins.ErrInvalidBaseURL)
	}
	if (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return "", fmt.Errorf("%q: %w", rawURL, jenkins.ErrInvalidBaseURL)
	}

	return strings.TrimSuffix(rawURL, "/"), nil
}

// createAuth builds Basic credentials from config. An API token takes
// precedence over a password.
func createAuth(config *jenkins.Config) *http.BasicAuth {
	if config.Username == "" {
		return nil
	}
	secret := config.Password
	if config.APIToken != "" {
		secret = config.APIToken
	}
	return &http.BasicAuth{Username: config.Username, Password: secret}
}

// createHTTPClientOptions builds HTTP client options from config
func createHTTPClientOptions(config *jenkins.Config) []http.Option {
	var httpOpts []http.Option

	if config.Logger != nil {
		httpOpts = append(httpOpts, http.WithLogger(config.Logger))
	}

	if config.Debug {
		httpOpts = append(httpOpts, http.WithDebug(true))
	}

	if config.UserAgent != "" {
		httpOpts = append(httpOpts, http.WithUserAgent(config.UserAgent))
	}

	if config.HTTPTimeout > 0 {
		httpOpts = append(httpOpts, http.WithTimeout(config.HTTPTimeout))
	}

	if config.RetryMax > 0 {
		retryWaitMin := config.RetryWaitMin
		if retryWaitMin <= 0 {
			retryWaitMin = constants.DefaultRetryWaitMin
		}
		retryWaitMax := config.RetryWaitMax
		if retryWaitMax <= 0 {
			retryWaitMax = constants.DefaultRetryWaitMax
		}
		httpOpts = append(httpOpts, http.WithRetryConfig(config.RetryMax, retryWaitMin, retryWaitMax))
	}

	if config.TLSConfig != nil {
		httpOpts = append(httpOpts, http.WithTLSConfig(config.TLSConfig))
	}

	if config.DisableCrumb {
		httpOpts = append(httpOpts, http.WithCrumbDisabled(true))
	}

	return httpOpts
}

// GetHome implements jenkins.Client.GetHome
func (c *Client) GetHome(ctx context.Context) (*jenkins.Home, error) {
	resp, err := c.httpClient.Get(ctx, jenkins.HomePath().APIEndpoint(), nil)
	if err != nil {
		return nil, fmt.Errorf("getting home: %w", err)
	}

	var home jenkins.Home
	if err := jenkins.DecodeInto("home", resp.Body, &home); err != nil {
		return nil, decorateDecodeError(err, resp.StatusCode)
	}

	return &home, nil
}

// Jobs implements jenkins.Client.Jobs
func (c *Client) Jobs() jenkins.JobsClient {
	return c.jobs
}

// Builds implements jenkins.Client.Builds
func (c *Client) Builds() jenkins.BuildsClient {
	return c.builds
}

// Views implements jenkins.Client.Views
func (c *Client) Views() jenkins.ViewsClient {
	return c.views
}

// Queue implements jenkins.Client.Queue
func (c *Client) Queue() jenkins.QueueClient {
	return c.queue
}

// Nodes implements jenkins.Client.Nodes
func (c *Client) Nodes() jenkins.NodesClient {
	return c.nodes
}

// queryValues renders query parameters, applying the client default depth
// when the caller did not choose one
func queryValues(params *jenkins.QueryParams, defaultDepth int) url.Values {
	if params == nil {
		params = jenkins.NewQueryParams()
	}
	values := params.ToValues()
	if params.Depth == nil {
		values.Set("depth", strconv.Itoa(defaultDepth))
	}
	return values
}

// decorateDecodeError attaches the HTTP status to a decode failure
func decorateDecodeError(err error, statusCode int) error {
	var decodeErr *jenkins.DecodeError
	if errors.As(err, &decodeErr) {
		decodeErr.StatusCode = statusCode
	}
	return err
}

// checkActionBody surfaces Jenkins failure markers hidden inside 2xx
// action responses
func checkActionBody(body []byte) error {
	if message, failed := jenkins.ActionFailureMessage(body); failed {
		return &jenkins.ActionError{Message: message}
	}
	return nil
}
