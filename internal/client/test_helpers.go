package client

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/nineflags-io/jenkinsapi/internal/constants"
	internalhttp "github.com/nineflags-io/jenkinsapi/internal/http"
	"github.com/nineflags-io/jenkinsapi/pkg/jenkins"
)

// newTestServer starts an httptest server wrapping handler
func newTestServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return server
}

// newTestClient creates a client against baseURL without authentication
// and without crumb handling, which most handlers do not care about
func newTestClient(t *testing.T, baseURL string) *Client {
	t.Helper()

	httpClient := internalhttp.NewClient(baseURL, nil, internalhttp.WithCrumbDisabled(true))

	client := &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
	}
	client.jobs = NewJobsClient(httpClient, baseURL, constants.DefaultDepth)
	client.builds = NewBuildsClient(httpClient, baseURL, constants.DefaultDepth, jenkins.NewNoOpCache(), 0)
	client.views = NewViewsClient(httpClient)
	client.queue = NewQueueClient(httpClient, baseURL)
	client.nodes = NewNodesClient(httpClient)

	return client
}
