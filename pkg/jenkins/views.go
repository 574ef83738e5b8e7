package jenkins

import "encoding/json"

// View class discriminators recognized by the decoder
const (
	ClassListView = "hudson.model.ListView"
	ClassAllView  = "hudson.model.AllView"
	ClassMyView   = "hudson.model.MyView"
)

// View is implemented by every decoded view variant
type View interface {
	// ViewClass returns the _class discriminator
	ViewClass() string
	// ViewName returns the view name
	ViewName() string
	// ViewURL returns the absolute URL of the view
	ViewURL() string
}

// ViewCommon carries the fields shared by every view variant
type ViewCommon struct {
	Class       string     `json:"_class,omitempty"`
	Name        string     `json:"name"`
	URL         string     `json:"url"`
	Description *string    `json:"description,omitempty"`
	Jobs        []ShortJob `json:"jobs,omitempty"`
}

// ViewClass returns the _class discriminator
func (v *ViewCommon) ViewClass() string { return v.Class }

// ViewName returns the view name
func (v *ViewCommon) ViewName() string { return v.Name }

// ViewURL returns the absolute URL of the view
func (v *ViewCommon) ViewURL() string { return v.URL }

// ListView is a view listing a chosen set of jobs
type ListView struct {
	ViewCommon
}

// AllView is the built-in view listing every job
type AllView struct {
	ViewCommon
}

// MyView is a per-user view
type MyView struct {
	ViewCommon
}

// GenericView is the fallback for view classes without a dedicated variant.
// Raw retains every field of the original payload.
type GenericView struct {
	ViewCommon
	Raw map[string]json.RawMessage `json:"-"`
}
