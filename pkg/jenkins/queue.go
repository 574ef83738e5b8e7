package jenkins

// Queue is the build queue of the server
type Queue struct {
	Class string      `json:"_class,omitempty"`
	Items []QueueItem `json:"items"`
}

// QueueItem is one entry of the build queue. Executable is set once the
// item has started building.
type QueueItem struct {
	Class                      string      `json:"_class,omitempty"`
	ID                         int64       `json:"id"`
	URL                        string      `json:"url,omitempty"`
	Blocked                    bool        `json:"blocked,omitempty"`
	Buildable                  bool        `json:"buildable,omitempty"`
	Stuck                      bool        `json:"stuck,omitempty"`
	Cancelled                  *bool       `json:"cancelled,omitempty"`
	InQueueSince               *int64      `json:"inQueueSince,omitempty"`
	BuildableStartMilliseconds *int64      `json:"buildableStartMilliseconds,omitempty"`
	Params                     string      `json:"params,omitempty"`
	Why                        *string     `json:"why,omitempty"`
	Task                       *ShortJob   `json:"task,omitempty"`
	Executable                 *ShortBuild `json:"executable,omitempty"`
}
