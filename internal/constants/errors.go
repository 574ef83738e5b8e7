package constants

import "errors"

// CLI configuration errors.
var (
	ErrNoServerConfigured = errors.New("no server configured, use 'jenkinsapi login' or --server to set one")
	ErrServerURLRequired  = errors.New("server URL is required")
	ErrConfigNotFound     = errors.New("configuration file not found")
)

// CLI validation errors.
var (
	ErrInvalidOutputFormat = errors.New("invalid output format, expected table, json or yaml")
	ErrInvalidBuildRef     = errors.New("invalid build reference, expected a number or an alias like lastBuild")
	ErrInvalidQueueItemID  = errors.New("invalid queue item id, expected a number")
	ErrParameterFormat     = errors.New("invalid parameter, expected key=value")
)

// File system errors.
var (
	ErrNotRegularFile             = errors.New("path is not a regular file")
	ErrDirectoryTraversalDetected = errors.New("directory traversal detected in file path")
)
