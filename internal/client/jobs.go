package client

import (
	"context"
	"fmt"
	"net/url"

	"github.com/nineflags-io/jenkinsapi/internal/constants"
	"github.com/nineflags-io/jenkinsapi/internal/http"
	"github.com/nineflags-io/jenkinsapi/pkg/jenkins"
)

// JobsClient implements jenkins.JobsClient
type JobsClient struct {
	httpClient   *http.Client
	baseURL      string
	defaultDepth int
}

// NewJobsClient creates a new jobs client
func NewJobsClient(httpClient *http.Client, baseURL string, defaultDepth int) *JobsClient {
	return &JobsClient{
		httpClient:   httpClient,
		baseURL:      baseURL,
		defaultDepth: defaultDepth,
	}
}

// Get implements jenkins.JobsClient.Get
func (c *JobsClient) Get(ctx context.Context, name string, folders ...string) (jenkins.Job, error) {
	return c.GetWithQuery(ctx, name, nil, folders...)
}

// GetWithQuery implements jenkins.JobsClient.GetWithQuery
func (c *JobsClient) GetWithQuery(ctx context.Context, name string, params *jenkins.QueryParams, folders ...string) (jenkins.Job, error) {
	path := jenkins.JobPath(name, folders...)
	if err := path.Validate(); err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Get(ctx, path.APIEndpoint(), queryValues(params, c.defaultDepth))
	if err != nil {
		return nil, fmt.Errorf("getting job %s: %w", name, err)
	}

	job, err := jenkins.DecodeJob(resp.Body)
	if err != nil {
		return nil, decorateDecodeError(err, resp.StatusCode)
	}

	return job, nil
}

// Follow implements jenkins.JobsClient.Follow
func (c *JobsClient) Follow(ctx context.Context, ref *jenkins.ShortJob) (jenkins.Job, error) {
	path := jenkins.ParsePath(c.baseURL, ref.URL)

	resp, err := c.httpClient.Get(ctx, path.APIEndpoint(), queryValues(nil, c.defaultDepth))
	if err != nil {
		return nil, fmt.Errorf("following job %s: %w", ref.Name, err)
	}

	job, err := jenkins.DecodeJob(resp.Body)
	if err != nil {
		return nil, decorateDecodeError(err, resp.StatusCode)
	}

	return job, nil
}

// Enable implements jenkins.JobsClient.Enable
func (c *JobsClient) Enable(ctx context.Context, name string, folders ...string) error {
	return c.postAction(ctx, jenkins.EnableJobPath(name, folders...), nil, "enabling job "+name)
}

// Disable implements jenkins.JobsClient.Disable
func (c *JobsClient) Disable(ctx context.Context, name string, folders ...string) error {
	return c.postAction(ctx, jenkins.DisableJobPath(name, folders...), nil, "disabling job "+name)
}

// Build implements jenkins.JobsClient.Build
func (c *JobsClient) Build(ctx context.Context, name string, folders ...string) (*jenkins.ShortQueueItem, error) {
	path := jenkins.BuildJobPath(name, folders...)
	if err := path.Validate(); err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Post(ctx, path.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("triggering job %s: %w", name, err)
	}
	if err := checkActionBody(resp.Body); err != nil {
		return nil, err
	}

	return queueItemFromLocation(resp)
}

// BuildWithParameters implements jenkins.JobsClient.BuildWithParameters
func (c *JobsClient) BuildWithParameters(ctx context.Context, name string, params url.Values, folders ...string) (*jenkins.ShortQueueItem, error) {
	path := jenkins.BuildJobWithParametersPath(name, folders...)
	if err := path.Validate(); err != nil {
		return nil, err
	}

	resp, err := c.httpClient.PostForm(ctx, path.String(), params)
	if err != nil {
		return nil, fmt.Errorf("triggering job %s: %w", name, err)
	}
	if err := checkActionBody(resp.Body); err != nil {
		return nil, err
	}

	return queueItemFromLocation(resp)
}

// PollSCM implements jenkins.JobsClient.PollSCM
func (c *JobsClient) PollSCM(ctx context.Context, name string, folders ...string) error {
	return c.postAction(ctx, jenkins.PollSCMPath(name, folders...), nil, "polling job "+name)
}

// postAction posts to an action endpoint and surfaces hidden failures
func (c *JobsClient) postAction(ctx context.Context, path jenkins.Path, query url.Values, action string) error {
	if err := path.Validate(); err != nil {
		return err
	}

	resp, err := c.httpClient.Post(ctx, path.String(), query)
	if err != nil {
		return fmt.Errorf("%s: %w", action, err)
	}

	return checkActionBody(resp.Body)
}

// queueItemFromLocation extracts the queued item reference a trigger
// response carries in its Location header
func queueItemFromLocation(resp *http.Response) (*jenkins.ShortQueueItem, error) {
	location := resp.Headers.Get(constants.HeaderLocation)
	if location == "" {
		return nil, &jenkins.DecodeError{
			Target:     "queue item location",
			StatusCode: resp.StatusCode,
			Snippet:    jenkins.Snippet(resp.Body),
		}
	}
	return &jenkins.ShortQueueItem{URL: location}, nil
}
