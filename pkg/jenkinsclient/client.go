// Package jenkinsclient provides the main entry point for creating clients
package jenkinsclient

import (
	"context"
	"fmt"
	"strings"

	"github.com/nineflags-io/jenkinsapi/internal/client"
	"github.com/nineflags-io/jenkinsapi/pkg/jenkins"
)

// New creates a new client for the configured server.
func New(ctx context.Context, config *jenkins.Config) (jenkins.Client, error) {
	if config == nil {
		return nil, jenkins.ErrConfigRequired
	}

	if config.BaseURL == "" {
		return nil, jenkins.ErrBaseURLRequired
	}

	// Normalize the base URL
	baseURL := strings.TrimSuffix(config.BaseURL, "/")
	if !strings.HasPrefix(baseURL, "http://") && !strings.HasPrefix(baseURL, "https://") {
		baseURL = "https://" + baseURL
	}

	config.BaseURL = baseURL

	// Use the internal client implementation
	client, err := client.New(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create new client: %w", err)
	}

	return client, nil
}

// NewWithEndpoint creates a new client with just a server URL (no auth).
func NewWithEndpoint(ctx context.Context, baseURL string) (jenkins.Client, error) {
	return New(ctx, &jenkins.Config{
		BaseURL: baseURL,
	})
}

// NewWithToken creates a new client authenticating with an API token.
func NewWithToken(ctx context.Context, baseURL, username, token string) (jenkins.Client, error) {
	return New(ctx, &jenkins.Config{
		BaseURL:  baseURL,
		Username: username,
		APIToken: token,
	})
}

// NewWithPassword creates a new client using username/password authentication.
func NewWithPassword(ctx context.Context, baseURL, username, password string) (jenkins.Client, error) {
	return New(ctx, &jenkins.Config{
		BaseURL:  baseURL,
		Username: username,
		Password: password,
	})
}
