package jenkins

// BallColor is the color of the status ball shown next to a job. The
// "_anime" variants indicate the job is currently running.
type BallColor string

// BallColor values as the server serializes them
const (
	BallColorBlue          BallColor = "blue"
	BallColorBlueAnime     BallColor = "blue_anime"
	BallColorYellow        BallColor = "yellow"
	BallColorYellowAnime   BallColor = "yellow_anime"
	BallColorRed           BallColor = "red"
	BallColorRedAnime      BallColor = "red_anime"
	BallColorGrey          BallColor = "grey"
	BallColorGreyAnime     BallColor = "grey_anime"
	BallColorDisabled      BallColor = "disabled"
	BallColorDisabledAnime BallColor = "disabled_anime"
	BallColorAborted       BallColor = "aborted"
	BallColorAbortedAnime  BallColor = "aborted_anime"
	BallColorNotBuilt      BallColor = "notbuilt"
	BallColorNotBuiltAnime BallColor = "notbuilt_anime"
)

// BuildStatus is the final result of a build
type BuildStatus string

// BuildStatus values as the server serializes them
const (
	BuildStatusSuccess  BuildStatus = "SUCCESS"
	BuildStatusUnstable BuildStatus = "UNSTABLE"
	BuildStatusFailure  BuildStatus = "FAILURE"
	BuildStatusNotBuilt BuildStatus = "NOT_BUILT"
	BuildStatusAborted  BuildStatus = "ABORTED"
)

// ShortJob is a link to a job as it appears inside other objects
type ShortJob struct {
	Class string    `json:"_class,omitempty"`
	Name  string    `json:"name"`
	URL   string    `json:"url"`
	Color BallColor `json:"color,omitempty"`
}

// ShortBuild is a link to a build as it appears inside other objects
type ShortBuild struct {
	Class  string `json:"_class,omitempty"`
	Number *int64 `json:"number"`
	URL    string `json:"url"`
}

// ShortView is a link to a view as it appears inside other objects
type ShortView struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// ShortQueueItem is a link to a queue item, typically taken from the
// Location header of a trigger response
type ShortQueueItem struct {
	URL string `json:"url"`
}

// Home is the root object of the server
type Home struct {
	Class           string      `json:"_class,omitempty"`
	Mode            string      `json:"mode,omitempty"`
	NodeDescription string      `json:"nodeDescription,omitempty"`
	NodeName        string      `json:"nodeName"`
	NumExecutors    *int64      `json:"numExecutors,omitempty"`
	Description     *string     `json:"description,omitempty"`
	Jobs            []ShortJob  `json:"jobs,omitempty"`
	Views           []ShortView `json:"views,omitempty"`
	PrimaryView     *ShortView  `json:"primaryView,omitempty"`
	QuietingDown    bool        `json:"quietingDown,omitempty"`
	UseCrumbs       bool        `json:"useCrumbs,omitempty"`
	UseSecurity     bool        `json:"useSecurity,omitempty"`
	SlaveAgentPort  *int64      `json:"slaveAgentPort,omitempty"`
}
