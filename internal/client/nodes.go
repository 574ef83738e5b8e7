package client

import (
	"context"
	"fmt"

	"github.com/nineflags-io/jenkinsapi/internal/http"
	"github.com/nineflags-io/jenkinsapi/pkg/jenkins"
)

// NodesClient implements jenkins.NodesClient
type NodesClient struct {
	httpClient *http.Client
}

// NewNodesClient creates a new nodes client
func NewNodesClient(httpClient *http.Client) *NodesClient {
	return &NodesClient{httpClient: httpClient}
}

// List implements jenkins.NodesClient.List
func (c *NodesClient) List(ctx context.Context) (*jenkins.ComputerSet, error) {
	resp, err := c.httpClient.Get(ctx, jenkins.ComputersPath().APIEndpoint(), nil)
	if err != nil {
		return nil, fmt.Errorf("listing nodes: %w", err)
	}

	var set jenkins.ComputerSet
	if err := jenkins.DecodeInto("computer set", resp.Body, &set); err != nil {
		return nil, decorateDecodeError(err, resp.StatusCode)
	}

	return &set, nil
}

// Get implements jenkins.NodesClient.Get
func (c *NodesClient) Get(ctx context.Context, name string) (jenkins.Computer, error) {
	path := jenkins.ComputerPath(name)
	if err := path.Validate(); err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Get(ctx, path.APIEndpoint(), nil)
	if err != nil {
		return nil, fmt.Errorf("getting node %s: %w", name, err)
	}

	computer, err := jenkins.DecodeComputer(resp.Body)
	if err != nil {
		return nil, decorateDecodeError(err, resp.StatusCode)
	}

	return computer, nil
}

// GetMaster implements jenkins.NodesClient.GetMaster
func (c *NodesClient) GetMaster(ctx context.Context) (jenkins.Computer, error) {
	return c.Get(ctx, jenkins.MasterComputerName)
}
