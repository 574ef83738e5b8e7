package jenkins

import (
	"net/url"
	"strconv"
)

// QueryParams represents the query parameters accepted by read endpoints
type QueryParams struct {
	// Depth controls how deep the server expands nested objects. Nil means
	// the client default applies.
	Depth *int

	// Tree selects which fields the server returns
	Tree *TreeSelector

	// Extra carries additional raw parameters
	Extra url.Values
}

// NewQueryParams creates a new QueryParams instance
func NewQueryParams() *QueryParams {
	return &QueryParams{Extra: url.Values{}}
}

// WithDepth sets the expansion depth
func (q *QueryParams) WithDepth(depth int) *QueryParams {
	q.Depth = &depth
	return q
}

// WithTree sets the field selection
func (q *QueryParams) WithTree(tree *TreeSelector) *QueryParams {
	q.Tree = tree
	return q
}

// WithParam adds a raw query parameter
func (q *QueryParams) WithParam(key, value string) *QueryParams {
	if q.Extra == nil {
		q.Extra = url.Values{}
	}
	q.Extra.Add(key, value)
	return q
}

// ToValues converts the parameters to url.Values
func (q *QueryParams) ToValues() url.Values {
	values := url.Values{}
	if q == nil {
		return values
	}
	for key, vals := range q.Extra {
		for _, v := range vals {
			values.Add(key, v)
		}
	}
	if q.Depth != nil {
		values.Set("depth", strconv.Itoa(*q.Depth))
	}
	if q.Tree != nil && !q.Tree.Empty() {
		values.Set("tree", q.Tree.String())
	}
	return values
}
