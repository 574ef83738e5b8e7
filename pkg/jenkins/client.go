// Package jenkins provides a typed client for a Jenkins-compatible
// automation server's JSON HTTP API.
package jenkins

import (
	"context"
	"crypto/tls"
	"net/url"
	"time"
)

// Config holds the client configuration
type Config struct {
	// BaseURL of the server, e.g. "https://ci.example.com". Required.
	BaseURL string

	// Username for HTTP Basic authentication. Leave empty for anonymous
	// access.
	Username string

	// Password for HTTP Basic authentication. Either Password or APIToken
	// may be set, not both.
	Password string

	// APIToken authenticates like a password but survives password rotation
	APIToken string

	// DisableCrumb skips CSRF crumb handling entirely
	DisableCrumb bool

	// Depth is the default expansion depth for read requests. Zero means
	// the server default of 1.
	Depth int

	// UserAgent overrides the default User-Agent header
	UserAgent string

	// HTTPTimeout for individual requests. Zero means the default applies.
	HTTPTimeout time.Duration

	// RetryMax is the number of automatic retries for transient transport
	// failures. Zero, the default, disables retries: a retried POST can
	// trigger a build twice.
	RetryMax     int
	RetryWaitMin time.Duration
	RetryWaitMax time.Duration

	// TLSConfig overrides TLS settings for the underlying transport
	TLSConfig *tls.Config

	// Cache configures response caching for completed builds. Nil disables
	// caching.
	Cache *CacheConfig

	// Logger receives structured log output. Nil disables logging.
	Logger Logger

	// Debug enables request/response logging through Logger
	Debug bool
}

// Logger is the interface for structured log output. Implementations must
// be safe for concurrent use.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Client is the top-level interface for interacting with the server
type Client interface {
	// GetHome fetches the root object: jobs, views, node description
	GetHome(ctx context.Context) (*Home, error)

	// Jobs returns the jobs resource client
	Jobs() JobsClient

	// Builds returns the builds resource client
	Builds() BuildsClient

	// Views returns the views resource client
	Views() ViewsClient

	// Queue returns the build queue resource client
	Queue() QueueClient

	// Nodes returns the nodes resource client
	Nodes() NodesClient
}

// JobsClient handles job operations. Job names may address jobs inside
// folders by passing the folder chain, outermost first.
type JobsClient interface {
	// Get fetches a job with the client's default depth
	Get(ctx context.Context, name string, folders ...string) (Job, error)

	// GetWithQuery fetches a job with explicit depth/tree parameters
	GetWithQuery(ctx context.Context, name string, params *QueryParams, folders ...string) (Job, error)

	// Follow resolves a linked job reference to the full object
	Follow(ctx context.Context, ref *ShortJob) (Job, error)

	// Enable enables a disabled job
	Enable(ctx context.Context, name string, folders ...string) error

	// Disable disables a job
	Disable(ctx context.Context, name string, folders ...string) error

	// Build triggers a build and returns the queued item reference from
	// the Location header
	Build(ctx context.Context, name string, folders ...string) (*ShortQueueItem, error)

	// BuildWithParameters triggers a parameterized build
	BuildWithParameters(ctx context.Context, name string, params url.Values, folders ...string) (*ShortQueueItem, error)

	// PollSCM asks the server to poll the job's SCM for changes
	PollSCM(ctx context.Context, name string, folders ...string) error
}

// BuildsClient handles build operations
type BuildsClient interface {
	// Get fetches one build of a job, by number or alias
	Get(ctx context.Context, job string, ref BuildRef, folders ...string) (Build, error)

	// GetWithQuery fetches one build with explicit depth/tree parameters
	GetWithQuery(ctx context.Context, job string, ref BuildRef, params *QueryParams, folders ...string) (Build, error)

	// Follow resolves a linked build reference to the full object
	Follow(ctx context.Context, ref *ShortBuild) (Build, error)

	// GetConsole fetches the plain-text console log of a build
	GetConsole(ctx context.Context, job string, ref BuildRef, folders ...string) (string, error)
}

// ViewsClient handles view operations
type ViewsClient interface {
	// Get fetches a view by name
	Get(ctx context.Context, name string) (View, error)

	// AddJob adds a job to a view
	AddJob(ctx context.Context, view, job string) error

	// RemoveJob removes a job from a view
	RemoveJob(ctx context.Context, view, job string) error
}

// QueueClient handles build queue operations
type QueueClient interface {
	// List fetches the whole build queue
	List(ctx context.Context) (*Queue, error)

	// Get fetches one queue item by id
	Get(ctx context.Context, id int64) (*QueueItem, error)

	// Follow resolves a queued item reference, typically obtained from a
	// trigger response, to the full item
	Follow(ctx context.Context, ref *ShortQueueItem) (*QueueItem, error)

	// Cancel removes an item from the queue
	Cancel(ctx context.Context, id int64) error
}

// NodesClient handles node operations
type NodesClient interface {
	// List fetches the set of computers attached to the server
	List(ctx context.Context) (*ComputerSet, error)

	// Get fetches one computer by display name
	Get(ctx context.Context, name string) (Computer, error)

	// GetMaster fetches the built-in node
	GetMaster(ctx context.Context) (Computer, error)
}
