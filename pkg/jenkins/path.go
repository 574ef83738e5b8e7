package jenkins

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// pathKind discriminates the known server path shapes
type pathKind int

const (
	pathHome pathKind = iota
	pathRaw
	pathView
	pathJob
	pathBuild
	pathConsoleText
	pathBuildJob
	pathBuildJobWithParameters
	pathPollSCM
	pathEnableJob
	pathDisableJob
	pathAddJobToView
	pathRemoveJobFromView
	pathQueue
	pathQueueItem
	pathCancelQueueItem
	pathComputers
	pathComputer
	pathCrumbIssuer
)

// Path is a typed server path. Constructors cover the known shapes; RawPath
// carries anything else verbatim. Names are stored decoded and each segment
// is percent-encoded individually on render, so a job called "my job" becomes
// /job/my%20job.
type Path struct {
	kind          pathKind
	folders       []string
	name          string
	view          string
	configuration string
	build         BuildRef
	id            int64
	raw           string
}

// HomePath addresses the server root
func HomePath() Path {
	return Path{kind: pathHome}
}

// RawPath carries an arbitrary path verbatim, without segment encoding
func RawPath(path string) Path {
	return Path{kind: pathRaw, raw: path}
}

// ViewPath addresses a view by name
func ViewPath(name string) Path {
	return Path{kind: pathView, name: name}
}

// JobPath addresses a job by name. Enclosing folders, outermost first, nest
// the job as /job/folder/job/name.
func JobPath(name string, folders ...string) Path {
	return Path{kind: pathJob, name: name, folders: folders}
}

// JobConfigurationPath addresses one configuration of a matrix job
func JobConfigurationPath(name, configuration string, folders ...string) Path {
	return Path{kind: pathJob, name: name, configuration: configuration, folders: folders}
}

// BuildPath addresses one build of a job, by number or alias
func BuildPath(job string, ref BuildRef, folders ...string) Path {
	return Path{kind: pathBuild, name: job, build: ref, folders: folders}
}

// ConsoleTextPath addresses the plain-text console log of a build
func ConsoleTextPath(job string, ref BuildRef, folders ...string) Path {
	return Path{kind: pathConsoleText, name: job, build: ref, folders: folders}
}

// BuildJobPath addresses the trigger endpoint of a job
func BuildJobPath(job string, folders ...string) Path {
	return Path{kind: pathBuildJob, name: job, folders: folders}
}

// BuildJobWithParametersPath addresses the parameterized trigger endpoint
func BuildJobWithParametersPath(job string, folders ...string) Path {
	return Path{kind: pathBuildJobWithParameters, name: job, folders: folders}
}

// PollSCMPath addresses the SCM polling endpoint of a job
func PollSCMPath(job string, folders ...string) Path {
	return Path{kind: pathPollSCM, name: job, folders: folders}
}

// EnableJobPath addresses the enable endpoint of a job
func EnableJobPath(job string, folders ...string) Path {
	return Path{kind: pathEnableJob, name: job, folders: folders}
}

// DisableJobPath addresses the disable endpoint of a job
func DisableJobPath(job string, folders ...string) Path {
	return Path{kind: pathDisableJob, name: job, folders: folders}
}

// AddJobToViewPath addresses the endpoint adding a job to a view. The job
// name travels as the "name" query parameter, not as a path segment.
func AddJobToViewPath(view string) Path {
	return Path{kind: pathAddJobToView, view: view}
}

// RemoveJobFromViewPath addresses the endpoint removing a job from a view
func RemoveJobFromViewPath(view string) Path {
	return Path{kind: pathRemoveJobFromView, view: view}
}

// QueuePath addresses the build queue
func QueuePath() Path {
	return Path{kind: pathQueue}
}

// QueueItemPath addresses one queue item by id
func QueueItemPath(id int64) Path {
	return Path{kind: pathQueueItem, id: id}
}

// CancelQueueItemPath addresses the queue cancellation endpoint. The item id
// travels as the "id" query parameter.
func CancelQueueItemPath() Path {
	return Path{kind: pathCancelQueueItem}
}

// ComputersPath addresses the list of computers
func ComputersPath() Path {
	return Path{kind: pathComputers}
}

// ComputerPath addresses one computer by display name. The built-in node is
// named "(master)".
func ComputerPath(name string) Path {
	return Path{kind: pathComputer, name: name}
}

// CrumbIssuerPath addresses the CSRF crumb issuer
func CrumbIssuerPath() Path {
	return Path{kind: pathCrumbIssuer}
}

// Validate checks that no required segment is empty
func (p Path) Validate() error {
	for _, folder := range p.folders {
		if folder == "" {
			return fmt.Errorf("folder name: %w", ErrEmptyPathSegment)
		}
	}
	switch p.kind {
	case pathView:
		if p.name == "" {
			return fmt.Errorf("view name: %w", ErrEmptyPathSegment)
		}
	case pathJob, pathBuild, pathConsoleText, pathBuildJob,
		pathBuildJobWithParameters, pathPollSCM, pathEnableJob, pathDisableJob:
		if p.name == "" {
			return fmt.Errorf("job name: %w", ErrEmptyPathSegment)
		}
	case pathAddJobToView, pathRemoveJobFromView:
		if p.view == "" {
			return fmt.Errorf("view name: %w", ErrEmptyPathSegment)
		}
	case pathComputer:
		if p.name == "" {
			return fmt.Errorf("computer name: %w", ErrEmptyPathSegment)
		}
	}
	return nil
}

// String renders the path with each segment percent-encoded
func (p Path) String() string {
	switch p.kind {
	case pathHome:
		return ""
	case pathRaw:
		return p.raw
	case pathView:
		return "/view/" + url.PathEscape(p.name)
	case pathJob:
		s := p.jobBase()
		if p.configuration != "" {
			s += "/" + url.PathEscape(p.configuration)
		}
		return s
	case pathBuild:
		return p.jobBase() + "/" + p.build.String()
	case pathConsoleText:
		return p.jobBase() + "/" + p.build.String() + "/consoleText"
	case pathBuildJob:
		return p.jobBase() + "/build"
	case pathBuildJobWithParameters:
		return p.jobBase() + "/buildWithParameters"
	case pathPollSCM:
		return p.jobBase() + "/polling"
	case pathEnableJob:
		return p.jobBase() + "/enable"
	case pathDisableJob:
		return p.jobBase() + "/disable"
	case pathAddJobToView:
		return "/view/" + url.PathEscape(p.view) + "/addJobToView"
	case pathRemoveJobFromView:
		return "/view/" + url.PathEscape(p.view) + "/removeJobFromView"
	case pathQueue:
		return "/queue"
	case pathQueueItem:
		return "/queue/item/" + strconv.FormatInt(p.id, 10)
	case pathCancelQueueItem:
		return "/queue/cancelItem"
	case pathComputers:
		return "/computer"
	case pathComputer:
		return "/computer/" + url.PathEscape(p.name)
	case pathCrumbIssuer:
		return "/crumbIssuer"
	default:
		return ""
	}
}

// APIEndpoint renders the path with the JSON API suffix appended
func (p Path) APIEndpoint() string {
	return p.String() + "/api/json"
}

func (p Path) jobBase() string {
	var b strings.Builder
	for _, folder := range p.folders {
		b.WriteString("/job/")
		b.WriteString(url.PathEscape(folder))
	}
	b.WriteString("/job/")
	b.WriteString(url.PathEscape(p.name))
	return b.String()
}

// ParsePath reverses the known path shapes from a URL the server handed
// back, typically the url field of a linked object. Unknown shapes degrade
// to RawPath, so rendering a parsed path always reproduces its input.
func ParsePath(baseURL, rawURL string) Path {
	path := strings.TrimPrefix(rawURL, strings.TrimSuffix(baseURL, "/"))
	if u, err := url.Parse(path); err == nil && u.Host != "" {
		// URL from a different base, keep only its path
		path = u.EscapedPath()
	}
	path = strings.TrimSuffix(path, "/api/json")
	path = strings.TrimSuffix(path, "/")
	if path == "" {
		return HomePath()
	}

	segments, ok := splitSegments(path)
	if !ok {
		return RawPath(path)
	}

	if p, ok := parseSegments(segments); ok {
		return p
	}
	return RawPath(path)
}

func splitSegments(path string) ([]string, bool) {
	parts := strings.Split(strings.TrimPrefix(path, "/"), "/")
	segments := make([]string, 0, len(parts))
	for _, part := range parts {
		decoded, err := url.PathUnescape(part)
		if err != nil {
			return nil, false
		}
		segments = append(segments, decoded)
	}
	return segments, true
}

func parseSegments(segments []string) (Path, bool) {
	switch segments[0] {
	case "view":
		if len(segments) == 2 {
			return ViewPath(segments[1]), true
		}
	case "job":
		return parseJobSegments(segments)
	case "queue":
		if len(segments) == 1 {
			return QueuePath(), true
		}
		if len(segments) == 3 && segments[1] == "item" {
			if id, err := strconv.ParseInt(segments[2], 10, 64); err == nil {
				return QueueItemPath(id), true
			}
		}
	case "computer":
		if len(segments) == 1 {
			return ComputersPath(), true
		}
		if len(segments) == 2 {
			return ComputerPath(segments[1]), true
		}
	case "crumbIssuer":
		if len(segments) == 1 {
			return CrumbIssuerPath(), true
		}
	}
	return Path{}, false
}

func parseJobSegments(segments []string) (Path, bool) {
	var folders []string
	for len(segments) >= 4 && segments[0] == "job" && segments[2] == "job" {
		folders = append(folders, segments[1])
		segments = segments[2:]
	}
	if len(segments) < 2 || segments[0] != "job" {
		return Path{}, false
	}
	name := segments[1]
	rest := segments[2:]

	switch len(rest) {
	case 0:
		return JobPath(name, folders...), true
	case 1:
		if ref, ok := ParseBuildRef(rest[0]); ok {
			return BuildPath(name, ref, folders...), true
		}
		return JobConfigurationPath(name, rest[0], folders...), true
	case 2:
		if ref, ok := ParseBuildRef(rest[0]); ok && rest[1] == "consoleText" {
			return ConsoleTextPath(name, ref, folders...), true
		}
	}
	return Path{}, false
}
