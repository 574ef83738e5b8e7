package jenkins

import (
	"encoding/json"
	"strconv"
)

// Build class discriminators recognized by the decoder
const (
	ClassFreeStyleBuild      = "hudson.model.FreeStyleBuild"
	ClassWorkflowRun         = "org.jenkinsci.plugins.workflow.job.WorkflowRun"
	ClassMatrixBuild         = "hudson.matrix.MatrixBuild"
	ClassMatrixRun           = "hudson.matrix.MatrixRun"
	ClassMavenBuild          = "hudson.maven.MavenBuild"
	ClassMavenModuleSetBuild = "hudson.maven.MavenModuleSetBuild"
	ClassMultiJobBuild       = "com.tikal.jenkins.plugins.multijob.MultiJobBuild"
)

// Build number aliases the server resolves to concrete builds
const (
	LastBuild             = "lastBuild"
	LastCompletedBuild    = "lastCompletedBuild"
	LastFailedBuild       = "lastFailedBuild"
	LastStableBuild       = "lastStableBuild"
	LastSuccessfulBuild   = "lastSuccessfulBuild"
	LastUnsuccessfulBuild = "lastUnsuccessfulBuild"
)

var buildAliases = map[string]bool{
	LastBuild:             true,
	LastCompletedBuild:    true,
	LastFailedBuild:       true,
	LastStableBuild:       true,
	LastSuccessfulBuild:   true,
	LastUnsuccessfulBuild: true,
}

// BuildRef addresses one build of a job, either by concrete number or by a
// server-resolved alias such as lastBuild.
type BuildRef struct {
	number int64
	alias  string
}

// BuildNumber addresses a build by its number
func BuildNumber(n int64) BuildRef {
	return BuildRef{number: n}
}

// BuildAlias addresses a build by a server alias such as LastSuccessfulBuild
func BuildAlias(alias string) BuildRef {
	return BuildRef{alias: alias}
}

// String renders the reference as a path segment
func (r BuildRef) String() string {
	if r.alias != "" {
		return r.alias
	}
	return strconv.FormatInt(r.number, 10)
}

// ParseBuildRef recognizes a path segment as a build number or known alias
func ParseBuildRef(s string) (BuildRef, bool) {
	if buildAliases[s] {
		return BuildAlias(s), true
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return BuildNumber(n), true
	}
	return BuildRef{}, false
}

// Build is implemented by every decoded build variant
type Build interface {
	// BuildClass returns the _class discriminator
	BuildClass() string
	// BuildNumber returns the build number, or nil if the payload omitted it
	BuildNumber() *int64
	// BuildURL returns the absolute URL of the build
	BuildURL() string
	// BuildResult returns the result, or nil while the build is running
	BuildResult() *BuildStatus
}

// BuildCommon carries the fields shared by every build variant. Numeric
// fields the server may send as null are pointers, so null decodes as nil
// rather than zero.
type BuildCommon struct {
	Class             string       `json:"_class,omitempty"`
	Number            *int64       `json:"number"`
	URL               string       `json:"url"`
	ID                string       `json:"id,omitempty"`
	DisplayName       string       `json:"displayName,omitempty"`
	FullDisplayName   string       `json:"fullDisplayName,omitempty"`
	Description       *string      `json:"description,omitempty"`
	Building          bool         `json:"building,omitempty"`
	KeepLog           bool         `json:"keepLog,omitempty"`
	Result            *BuildStatus `json:"result,omitempty"`
	Timestamp         *int64       `json:"timestamp,omitempty"`
	Duration          *int64       `json:"duration,omitempty"`
	EstimatedDuration *int64       `json:"estimatedDuration,omitempty"`
	QueueID           *int64       `json:"queueId,omitempty"`
	Artifacts         []Artifact   `json:"artifacts,omitempty"`
}

// BuildClass returns the _class discriminator
func (b *BuildCommon) BuildClass() string { return b.Class }

// BuildNumber returns the build number, or nil if the payload omitted it
func (b *BuildCommon) BuildNumber() *int64 { return b.Number }

// BuildURL returns the absolute URL of the build
func (b *BuildCommon) BuildURL() string { return b.URL }

// BuildResult returns the result, or nil while the build is running
func (b *BuildCommon) BuildResult() *BuildStatus { return b.Result }

// Completed reports whether the build has finished with a result
func (b *BuildCommon) Completed() bool {
	return !b.Building && b.Result != nil
}

// Artifact is a file archived by a build
type Artifact struct {
	DisplayPath  *string `json:"displayPath"`
	FileName     string  `json:"fileName"`
	RelativePath string  `json:"relativePath"`
}

// FreeStyleBuild is a build of a freestyle job
type FreeStyleBuild struct {
	BuildCommon
	BuiltOn       string      `json:"builtOn,omitempty"`
	NextBuild     *ShortBuild `json:"nextBuild,omitempty"`
	PreviousBuild *ShortBuild `json:"previousBuild,omitempty"`
}

// WorkflowRun is a run of a pipeline job
type WorkflowRun struct {
	BuildCommon
	NextBuild     *ShortBuild `json:"nextBuild,omitempty"`
	PreviousBuild *ShortBuild `json:"previousBuild,omitempty"`
}

// MatrixBuild is a build of a multi-configuration job
type MatrixBuild struct {
	BuildCommon
	BuiltOn string       `json:"builtOn,omitempty"`
	Runs    []ShortBuild `json:"runs,omitempty"`
}

// MatrixRun is a build of one configuration of a multi-configuration job
type MatrixRun struct {
	BuildCommon
	BuiltOn string `json:"builtOn,omitempty"`
}

// MavenBuild is a build of one module of a maven job
type MavenBuild struct {
	BuildCommon
	BuiltOn string `json:"builtOn,omitempty"`
}

// MavenModuleSetBuild is a build of a maven job
type MavenModuleSetBuild struct {
	BuildCommon
	BuiltOn      string                  `json:"builtOn,omitempty"`
	ModuleBuilds map[string][]ShortBuild `json:"moduleBuilds,omitempty"`
}

// MultiJobBuild is a build of a multijob project
type MultiJobBuild struct {
	BuildCommon
	BuiltOn   string     `json:"builtOn,omitempty"`
	SubBuilds []SubBuild `json:"subBuilds,omitempty"`
}

// SubBuild is a phase build launched by a multijob build
type SubBuild struct {
	JobName     string  `json:"jobName"`
	BuildNumber *int64  `json:"buildNumber"`
	PhaseName   string  `json:"phaseName,omitempty"`
	Result      *string `json:"result,omitempty"`
	URL         string  `json:"url,omitempty"`
	Abort       bool    `json:"abort,omitempty"`
	Retry       bool    `json:"retry,omitempty"`
}

// GenericBuild is the fallback for build classes without a dedicated
// variant. Raw retains every field of the original payload.
type GenericBuild struct {
	BuildCommon
	Raw map[string]json.RawMessage `json:"-"`
}
