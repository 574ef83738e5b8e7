package client

import (
	"context"
	"fmt"
	"time"

	"github.com/nineflags-io/jenkinsapi/internal/http"
	"github.com/nineflags-io/jenkinsapi/pkg/jenkins"
)

// BuildsClient implements jenkins.BuildsClient. Completed builds never
// change, so their JSON is cached when a cache backend is configured.
type BuildsClient struct {
	httpClient   *http.Client
	baseURL      string
	defaultDepth int
	cache        jenkins.Cache
	cacheTTL     time.Duration
}

// NewBuildsClient creates a new builds client
func NewBuildsClient(httpClient *http.Client, baseURL string, defaultDepth int, cache jenkins.Cache, cacheTTL time.Duration) *BuildsClient {
	if cache == nil {
		cache = jenkins.NewNoOpCache()
	}
	return &BuildsClient{
		httpClient:   httpClient,
		baseURL:      baseURL,
		defaultDepth: defaultDepth,
		cache:        cache,
		cacheTTL:     cacheTTL,
	}
}

// Get implements jenkins.BuildsClient.Get
func (c *BuildsClient) Get(ctx context.Context, job string, ref jenkins.BuildRef, folders ...string) (jenkins.Build, error) {
	return c.GetWithQuery(ctx, job, ref, nil, folders...)
}

// GetWithQuery implements jenkins.BuildsClient.GetWithQuery
func (c *BuildsClient) GetWithQuery(ctx context.Context, job string, ref jenkins.BuildRef, params *jenkins.QueryParams, folders ...string) (jenkins.Build, error) {
	path := jenkins.BuildPath(job, ref, folders...)
	if err := path.Validate(); err != nil {
		return nil, err
	}
	return c.fetch(ctx, path, params, fmt.Sprintf("getting build %s of %s", ref, job))
}

// Follow implements jenkins.BuildsClient.Follow
func (c *BuildsClient) Follow(ctx context.Context, ref *jenkins.ShortBuild) (jenkins.Build, error) {
	path := jenkins.ParsePath(c.baseURL, ref.URL)
	return c.fetch(ctx, path, nil, "following build "+ref.URL)
}

// GetConsole implements jenkins.BuildsClient.GetConsole
func (c *BuildsClient) GetConsole(ctx context.Context, job string, ref jenkins.BuildRef, folders ...string) (string, error) {
	path := jenkins.ConsoleTextPath(job, ref, folders...)
	if err := path.Validate(); err != nil {
		return "", err
	}

	resp, err := c.httpClient.Get(ctx, path.String(), nil)
	if err != nil {
		return "", fmt.Errorf("getting console of build %s of %s: %w", ref, job, err)
	}

	return string(resp.Body), nil
}

// fetch retrieves and decodes one build, consulting the cache first. Only
// finished builds are stored: a concrete number or alias can point at a
// running build whose fields still change.
func (c *BuildsClient) fetch(ctx context.Context, path jenkins.Path, params *jenkins.QueryParams, action string) (jenkins.Build, error) {
	query := queryValues(params, c.defaultDepth)
	key := c.baseURL + path.APIEndpoint() + "?" + query.Encode()

	if entry, err := c.cache.Get(ctx, key); err == nil {
		if build, err := jenkins.DecodeBuild(entry.Data); err == nil {
			return build, nil
		}
		// stale or corrupt entry, drop it and refetch
		_ = c.cache.Delete(ctx, key)
	}

	resp, err := c.httpClient.Get(ctx, path.APIEndpoint(), query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", action, err)
	}

	build, err := jenkins.DecodeBuild(resp.Body)
	if err != nil {
		return nil, decorateDecodeError(err, resp.StatusCode)
	}

	if build.BuildResult() != nil {
		_ = c.cache.Set(ctx, key, &jenkins.CacheEntry{
			Data:      resp.Body,
			ExpiresAt: time.Now().Add(c.cacheTTL),
		})
	}

	return build, nil
}
