package jenkins

import "strings"

// TreeSelector builds the server's tree query grammar, which selects which
// fields of an object the server should return. Selections serialize in
// insertion order, so the same selector always renders the same string.
//
//	NewTreeSelector().
//		WithField("name").
//		WithObject("builds", NewTreeSelector().WithField("number").WithField("result"))
//
// renders "name,builds[number,result]".
type TreeSelector struct {
	entries []treeEntry
}

type treeEntry struct {
	field string
	sub   *TreeSelector
}

// NewTreeSelector creates an empty tree selector
func NewTreeSelector() *TreeSelector {
	return &TreeSelector{}
}

// WithField selects a scalar field
func (t *TreeSelector) WithField(name string) *TreeSelector {
	t.entries = append(t.entries, treeEntry{field: name})
	return t
}

// WithFields selects several scalar fields at once
func (t *TreeSelector) WithFields(names ...string) *TreeSelector {
	for _, name := range names {
		t.WithField(name)
	}
	return t
}

// WithObject selects a nested object with its own sub-selection
func (t *TreeSelector) WithObject(name string, sub *TreeSelector) *TreeSelector {
	t.entries = append(t.entries, treeEntry{field: name, sub: sub})
	return t
}

// Empty reports whether no fields have been selected
func (t *TreeSelector) Empty() bool {
	return t == nil || len(t.entries) == 0
}

// String renders the selection in the server's tree grammar
func (t *TreeSelector) String() string {
	if t.Empty() {
		return ""
	}
	var b strings.Builder
	for i, entry := range t.entries {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(entry.field)
		if entry.sub != nil && !entry.sub.Empty() {
			b.WriteByte('[')
			b.WriteString(entry.sub.String())
			b.WriteByte(']')
		}
	}
	return b.String()
}
