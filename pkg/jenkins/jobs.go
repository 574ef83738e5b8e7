package jenkins

import "encoding/json"

// Job class discriminators recognized by the decoder
const (
	ClassFreeStyleProject = "hudson.model.FreeStyleProject"
	ClassWorkflowJob      = "org.jenkinsci.plugins.workflow.job.WorkflowJob"
	ClassMatrixProject    = "hudson.matrix.MatrixProject"
	ClassMavenModuleSet   = "hudson.maven.MavenModuleSet"
	ClassFolder           = "com.cloudbees.hudson.plugins.folder.Folder"
)

// Job is implemented by every decoded job variant
type Job interface {
	// JobClass returns the _class discriminator
	JobClass() string
	// JobName returns the job name
	JobName() string
	// JobURL returns the absolute URL of the job
	JobURL() string
}

// JobCommon carries the fields shared by every job variant
type JobCommon struct {
	Class                 string       `json:"_class,omitempty"`
	Name                  string       `json:"name"`
	URL                   string       `json:"url"`
	DisplayName           string       `json:"displayName,omitempty"`
	FullDisplayName       string       `json:"fullDisplayName,omitempty"`
	FullName              string       `json:"fullName,omitempty"`
	Description           *string      `json:"description,omitempty"`
	Color                 BallColor    `json:"color,omitempty"`
	Buildable             bool         `json:"buildable,omitempty"`
	InQueue               bool         `json:"inQueue,omitempty"`
	KeepDependencies      bool         `json:"keepDependencies,omitempty"`
	NextBuildNumber       *int64       `json:"nextBuildNumber,omitempty"`
	Builds                []ShortBuild `json:"builds,omitempty"`
	FirstBuild            *ShortBuild  `json:"firstBuild,omitempty"`
	LastBuild             *ShortBuild  `json:"lastBuild,omitempty"`
	LastCompletedBuild    *ShortBuild  `json:"lastCompletedBuild,omitempty"`
	LastFailedBuild       *ShortBuild  `json:"lastFailedBuild,omitempty"`
	LastStableBuild       *ShortBuild  `json:"lastStableBuild,omitempty"`
	LastSuccessfulBuild   *ShortBuild  `json:"lastSuccessfulBuild,omitempty"`
	LastUnstableBuild     *ShortBuild  `json:"lastUnstableBuild,omitempty"`
	LastUnsuccessfulBuild *ShortBuild  `json:"lastUnsuccessfulBuild,omitempty"`
}

// JobClass returns the _class discriminator
func (j *JobCommon) JobClass() string { return j.Class }

// JobName returns the job name
func (j *JobCommon) JobName() string { return j.Name }

// JobURL returns the absolute URL of the job
func (j *JobCommon) JobURL() string { return j.URL }

// FreeStyleProject is a classic freestyle job
type FreeStyleProject struct {
	JobCommon
	ConcurrentBuild    bool       `json:"concurrentBuild,omitempty"`
	UpstreamProjects   []ShortJob `json:"upstreamProjects,omitempty"`
	DownstreamProjects []ShortJob `json:"downstreamProjects,omitempty"`
}

// WorkflowJob is a pipeline job
type WorkflowJob struct {
	JobCommon
	ConcurrentBuild bool `json:"concurrentBuild,omitempty"`
	ResumeBlocked   bool `json:"resumeBlocked,omitempty"`
}

// MatrixProject is a multi-configuration job
type MatrixProject struct {
	JobCommon
	ConcurrentBuild      bool       `json:"concurrentBuild,omitempty"`
	ActiveConfigurations []ShortJob `json:"activeConfigurations,omitempty"`
	UpstreamProjects     []ShortJob `json:"upstreamProjects,omitempty"`
	DownstreamProjects   []ShortJob `json:"downstreamProjects,omitempty"`
}

// MavenModuleSet is a maven job
type MavenModuleSet struct {
	JobCommon
	ConcurrentBuild bool       `json:"concurrentBuild,omitempty"`
	Modules         []ShortJob `json:"modules,omitempty"`
}

// Folder groups jobs under a /job/folder/job/name nesting
type Folder struct {
	JobCommon
	Jobs         []ShortJob     `json:"jobs,omitempty"`
	Views        []ShortView    `json:"views,omitempty"`
	PrimaryView  *ShortView     `json:"primaryView,omitempty"`
	HealthReport []HealthReport `json:"healthReport,omitempty"`
}

// HealthReport is the weather report attached to jobs and folders
type HealthReport struct {
	Description string `json:"description,omitempty"`
	IconURL     string `json:"iconUrl,omitempty"`
	Score       *int64 `json:"score,omitempty"`
}

// GenericJob is the fallback for job classes without a dedicated variant.
// Raw retains every field of the original payload.
type GenericJob struct {
	JobCommon
	Raw map[string]json.RawMessage `json:"-"`
}
