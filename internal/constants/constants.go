// Package constants defines shared values used across the client
package constants

import "time"

// File and directory permissions.
const (
	// ConfigDirPerm is the permission for configuration directories.
	ConfigDirPerm = 0750

	// ConfigFilePerm is the permission for configuration files.
	ConfigFilePerm = 0600
)

// HTTP and network defaults.
const (
	// DefaultHTTPTimeout is the default timeout for HTTP requests.
	DefaultHTTPTimeout = 30 * time.Second

	// DefaultRetryMax is the default number of automatic retries. Zero: a
	// blindly retried POST can trigger a build twice.
	DefaultRetryMax = 0

	// DefaultRetryWaitMin is the minimum wait between opt-in retries.
	DefaultRetryWaitMin = 1 * time.Second

	// DefaultRetryWaitMax is the maximum wait between opt-in retries.
	DefaultRetryWaitMax = 30 * time.Second

	// DefaultUserAgent identifies the client to the server.
	DefaultUserAgent = "jenkinsapi-go/1.0"
)

// Server protocol values.
const (
	// APISuffix selects the JSON rendition of an object path.
	APISuffix = "/api/json"

	// CrumbIssuerEndpoint serves the CSRF crumb.
	CrumbIssuerEndpoint = "/crumbIssuer/api/json"

	// DefaultDepth is the default object expansion depth.
	DefaultDepth = 1
)

// Header names.
const (
	HeaderAccept      = "Accept"
	HeaderContentType = "Content-Type"
	HeaderUserAgent   = "User-Agent"
	HeaderLocation    = "Location"
)

// Content types.
const (
	ContentTypeJSON = "application/json"
	ContentTypeForm = "application/x-www-form-urlencoded"
)

// UI and display constants.
const (
	// NotAvailable is used when information is not available.
	NotAvailable = "N/A"

	// MaskedSecret is used to hide sensitive information.
	MaskedSecret = "***"
)

// Format constants.
const (
	// FormatTable for table output format.
	FormatTable = "table"

	// FormatJSON for JSON output format.
	FormatJSON = "json"

	// FormatYAML for YAML output format.
	FormatYAML = "yaml"
)

// Timestamp display layout.
const (
	// TimeLayout is the layout for rendering millisecond epochs.
	TimeLayout = "2006-01-02 15:04:05"
)
