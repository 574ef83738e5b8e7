package client

import (
	"context"
	"fmt"
	"net/url"

	"github.com/nineflags-io/jenkinsapi/internal/http"
	"github.com/nineflags-io/jenkinsapi/pkg/jenkins"
)

// ViewsClient implements jenkins.ViewsClient
type ViewsClient struct {
	httpClient *http.Client
}

// NewViewsClient creates a new views client
func NewViewsClient(httpClient *http.Client) *ViewsClient {
	return &ViewsClient{httpClient: httpClient}
}

// Get implements jenkins.ViewsClient.Get
func (c *ViewsClient) Get(ctx context.Context, name string) (jenkins.View, error) {
	path := jenkins.ViewPath(name)
	if err := path.Validate(); err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Get(ctx, path.APIEndpoint(), nil)
	if err != nil {
		return nil, fmt.Errorf("getting view %s: %w", name, err)
	}

	view, err := jenkins.DecodeView(resp.Body)
	if err != nil {
		return nil, decorateDecodeError(err, resp.StatusCode)
	}

	return view, nil
}

// AddJob implements jenkins.ViewsClient.AddJob
func (c *ViewsClient) AddJob(ctx context.Context, view, job string) error {
	return c.postViewAction(ctx, jenkins.AddJobToViewPath(view), job, fmt.Sprintf("adding job %s to view %s", job, view))
}

// RemoveJob implements jenkins.ViewsClient.RemoveJob
func (c *ViewsClient) RemoveJob(ctx context.Context, view, job string) error {
	return c.postViewAction(ctx, jenkins.RemoveJobFromViewPath(view), job, fmt.Sprintf("removing job %s from view %s", job, view))
}

func (c *ViewsClient) postViewAction(ctx context.Context, path jenkins.Path, job, action string) error {
	if err := path.Validate(); err != nil {
		return err
	}
	if job == "" {
		return fmt.Errorf("job name: %w", jenkins.ErrEmptyPathSegment)
	}

	query := url.Values{}
	query.Set("name", job)

	resp, err := c.httpClient.Post(ctx, path.String(), query)
	if err != nil {
		return fmt.Errorf("%s: %w", action, err)
	}

	return checkActionBody(resp.Body)
}
