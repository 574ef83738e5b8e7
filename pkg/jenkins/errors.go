package jenkins

import (
	"errors"
	"fmt"
	"strings"
)

// Configuration errors, raised before any network call is attempted.
var (
	// ErrConfigRequired indicates a nil configuration was passed to New
	ErrConfigRequired = errors.New("configuration is required")

	// ErrBaseURLRequired indicates the base URL was empty
	ErrBaseURLRequired = errors.New("base URL is required")

	// ErrInvalidBaseURL indicates the base URL could not be parsed or is not absolute
	ErrInvalidBaseURL = errors.New("base URL is invalid")

	// ErrEmptyPathSegment indicates a path constructor received an empty segment
	ErrEmptyPathSegment = errors.New("path segment cannot be empty")

	// ErrInvalidCrumb indicates the server rejected a mutating request even
	// after the CSRF crumb was re-issued once
	ErrInvalidCrumb = errors.New("server rejected CSRF crumb after refresh")
)

// SnippetLimit bounds how much of a response body is retained inside errors.
const SnippetLimit = 512

// TransportError wraps a network-level failure (DNS, connect, TLS, timeout).
type TransportError struct {
	URL string
	Err error
}

// Error implements the error interface
func (e *TransportError) Error() string {
	return fmt.Sprintf("transport error calling %s: %v", e.URL, e.Err)
}

// Unwrap returns the underlying network error
func (e *TransportError) Unwrap() error {
	return e.Err
}

// StatusError represents a non-2xx HTTP response from the server.
type StatusError struct {
	StatusCode int
	Path       string
	Snippet    string
}

// Error implements the error interface
func (e *StatusError) Error() string {
	if e.Snippet != "" {
		return fmt.Sprintf("server returned %d for %s: %s", e.StatusCode, e.Path, e.Snippet)
	}
	return fmt.Sprintf("server returned %d for %s", e.StatusCode, e.Path)
}

// DecodeError indicates a response body did not match the expected shape:
// invalid JSON, or a payload missing required fields for the target type.
type DecodeError struct {
	Target     string
	StatusCode int
	Snippet    string
	Err        error
}

// Error implements the error interface
func (e *DecodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("decoding %s: %v (body: %s)", e.Target, e.Err, e.Snippet)
	}
	return fmt.Sprintf("decoding %s: unexpected shape (body: %s)", e.Target, e.Snippet)
}

// Unwrap returns the underlying decode error, if any
func (e *DecodeError) Unwrap() error {
	return e.Err
}

// ActionError indicates an action endpoint answered 2xx but the body carries
// a Jenkins failure marker. Jenkins reports some action failures this way
// instead of using an error status code.
type ActionError struct {
	Message string
}

// Error implements the error interface
func (e *ActionError) Error() string {
	return fmt.Sprintf("action failed: %s", e.Message)
}

// actionFailureMarkers are substrings Jenkins embeds in 2xx bodies when an
// action did not actually take effect.
var actionFailureMarkers = []string{
	"java.lang.IllegalStateException",
	"java.lang.IllegalArgumentException",
	"cannot be triggered",
}

// ActionFailureMessage scans a 2xx action response body for Jenkins failure
// markers. It returns the line carrying the marker and true when one is
// found, or "" and false for a clean body.
func ActionFailureMessage(body []byte) (string, bool) {
	text := string(body)
	for _, marker := range actionFailureMarkers {
		idx := strings.Index(text, marker)
		if idx < 0 {
			continue
		}
		line := text[idx:]
		if end := strings.IndexAny(line, "\r\n"); end >= 0 {
			line = line[:end]
		}
		return Snippet([]byte(line)), true
	}
	return "", false
}

// Snippet truncates a response body to SnippetLimit bytes for inclusion in
// error messages.
func Snippet(body []byte) string {
	if len(body) > SnippetLimit {
		body = body[:SnippetLimit]
	}
	return string(body)
}

// IsTransport returns true if the error is a network-level failure
func IsTransport(err error) bool {
	var transportErr *TransportError
	return errors.As(err, &transportErr)
}

// IsNotFound returns true if the error represents a 404 response
func IsNotFound(err error) bool {
	return hasStatus(err, 404)
}

// IsUnauthorized returns true if the error represents a 401 response
func IsUnauthorized(err error) bool {
	return hasStatus(err, 401)
}

// IsForbidden returns true if the error represents a 403 response
func IsForbidden(err error) bool {
	return hasStatus(err, 403)
}

// IsServerError returns true if the error represents a 5xx response
func IsServerError(err error) bool {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.StatusCode >= 500 && statusErr.StatusCode < 600
	}
	return false
}

// IsInvalidCrumb returns true if the server rejected the crumb twice
func IsInvalidCrumb(err error) bool {
	return errors.Is(err, ErrInvalidCrumb)
}

// IsUnexpectedShape returns true if a response body failed to decode
func IsUnexpectedShape(err error) bool {
	var decodeErr *DecodeError
	return errors.As(err, &decodeErr)
}

// IsActionFailed returns true if a 2xx action response carried a failure marker
func IsActionFailed(err error) bool {
	var actionErr *ActionError
	return errors.As(err, &actionErr)
}

func hasStatus(err error, code int) bool {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.StatusCode == code
	}
	return false
}
