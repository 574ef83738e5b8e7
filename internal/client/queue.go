package client

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/nineflags-io/jenkinsapi/internal/http"
	"github.com/nineflags-io/jenkinsapi/pkg/jenkins"
)

// QueueClient implements jenkins.QueueClient
type QueueClient struct {
	httpClient *http.Client
	baseURL    string
}

// NewQueueClient creates a new queue client
func NewQueueClient(httpClient *http.Client, baseURL string) *QueueClient {
	return &QueueClient{httpClient: httpClient, baseURL: baseURL}
}

// List implements jenkins.QueueClient.List
func (c *QueueClient) List(ctx context.Context) (*jenkins.Queue, error) {
	resp, err := c.httpClient.Get(ctx, jenkins.QueuePath().APIEndpoint(), nil)
	if err != nil {
		return nil, fmt.Errorf("listing queue: %w", err)
	}

	var queue jenkins.Queue
	if err := jenkins.DecodeInto("queue", resp.Body, &queue); err != nil {
		return nil, decorateDecodeError(err, resp.StatusCode)
	}

	return &queue, nil
}

// Get implements jenkins.QueueClient.Get
func (c *QueueClient) Get(ctx context.Context, id int64) (*jenkins.QueueItem, error) {
	resp, err := c.httpClient.Get(ctx, jenkins.QueueItemPath(id).APIEndpoint(), nil)
	if err != nil {
		return nil, fmt.Errorf("getting queue item %d: %w", id, err)
	}

	var item jenkins.QueueItem
	if err := jenkins.DecodeInto("queue item", resp.Body, &item); err != nil {
		return nil, decorateDecodeError(err, resp.StatusCode)
	}

	return &item, nil
}

// Follow implements jenkins.QueueClient.Follow
func (c *QueueClient) Follow(ctx context.Context, ref *jenkins.ShortQueueItem) (*jenkins.QueueItem, error) {
	path := jenkins.ParsePath(c.baseURL, ref.URL)

	resp, err := c.httpClient.Get(ctx, path.APIEndpoint(), nil)
	if err != nil {
		return nil, fmt.Errorf("following queue item %s: %w", ref.URL, err)
	}

	var item jenkins.QueueItem
	if err := jenkins.DecodeInto("queue item", resp.Body, &item); err != nil {
		return nil, decorateDecodeError(err, resp.StatusCode)
	}

	return &item, nil
}

// Cancel implements jenkins.QueueClient.Cancel
func (c *QueueClient) Cancel(ctx context.Context, id int64) error {
	query := url.Values{}
	query.Set("id", strconv.FormatInt(id, 10))

	resp, err := c.httpClient.Post(ctx, jenkins.CancelQueueItemPath().String(), query)
	if err != nil {
		return fmt.Errorf("cancelling queue item %d: %w", id, err)
	}

	return checkActionBody(resp.Body)
}
