package http

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"

	"github.com/nineflags-io/jenkinsapi/internal/constants"
	"github.com/nineflags-io/jenkinsapi/pkg/jenkins"
)

// crumb is a CSRF token issued by the server. Every mutating request must
// echo it back in the header named by RequestField.
type crumb struct {
	Value        string `json:"crumb"`
	RequestField string `json:"crumbRequestField"`
}

// crumbStore caches the crumb for a client. A 404 from the issuer means
// CSRF protection is off, which is cached as the absent state so mutating
// calls proceed crumbless without re-asking.
type crumbStore struct {
	mu     sync.RWMutex
	cached *crumb
	absent bool
}

func newCrumbStore() *crumbStore {
	return &crumbStore{}
}

func (s *crumbStore) current() (*crumb, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.absent {
		return nil, true
	}
	if s.cached != nil {
		return s.cached, true
	}
	return nil, false
}

func (s *crumbStore) invalidate() {
	s.mu.Lock()
	s.cached = nil
	s.absent = false
	s.mu.Unlock()
}

// currentCrumb returns the cached crumb, fetching it from the issuer on
// first use. Returns nil when the server has CSRF protection disabled.
func (c *Client) currentCrumb(ctx context.Context) (*crumb, error) {
	if cached, ok := c.crumbs.current(); ok {
		return cached, nil
	}

	c.crumbs.mu.Lock()
	defer c.crumbs.mu.Unlock()

	// another caller may have fetched while we waited for the lock
	if c.crumbs.absent {
		return nil, nil
	}
	if c.crumbs.cached != nil {
		return c.crumbs.cached, nil
	}

	fetched, err := c.fetchCrumb(ctx)
	if err != nil {
		return nil, err
	}
	if fetched == nil {
		c.crumbs.absent = true
		return nil, nil
	}
	c.crumbs.cached = fetched
	return fetched, nil
}

// fetchCrumb asks the issuer for a fresh crumb. A 404 means CSRF
// protection is disabled and is not an error.
func (c *Client) fetchCrumb(ctx context.Context) (*crumb, error) {
	resp, err := c.send(ctx, &Request{
		Method: http.MethodGet,
		Path:   constants.CrumbIssuerEndpoint,
	}, nil)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode >= 400 {
		return nil, &jenkins.StatusError{
			StatusCode: resp.StatusCode,
			Path:       constants.CrumbIssuerEndpoint,
			Snippet:    jenkins.Snippet(resp.Body),
		}
	}

	var fetched crumb
	if err := json.Unmarshal(resp.Body, &fetched); err != nil {
		return nil, &jenkins.DecodeError{
			Target:     "crumb",
			StatusCode: resp.StatusCode,
			Snippet:    jenkins.Snippet(resp.Body),
			Err:        err,
		}
	}
	if fetched.Value == "" || fetched.RequestField == "" {
		return nil, &jenkins.DecodeError{
			Target:     "crumb",
			StatusCode: resp.StatusCode,
			Snippet:    jenkins.Snippet(resp.Body),
		}
	}

	if c.debug && c.logger != nil {
		// the crumb value itself is never logged
		c.logger.Debug("crumb issued", map[string]interface{}{
			"field": fetched.RequestField,
		})
	}

	return &fetched, nil
}
