package jenkins

import (
	"encoding/json"
	"fmt"
)

// classProbe reads only the _class discriminator
type classProbe struct {
	Class string `json:"_class"`
}

// DecodeInto unmarshals data into v, returning a DecodeError on failure.
// target names the expected type inside the error.
func DecodeInto(target string, data []byte, v any) error {
	if err := json.Unmarshal(data, v); err != nil {
		return &DecodeError{Target: target, Snippet: Snippet(data), Err: err}
	}
	return nil
}

// DecodeJob decodes a job payload into its concrete variant by _class.
// Unknown classes fall back to GenericJob, retaining every raw field.
func DecodeJob(data []byte) (Job, error) {
	var probe classProbe
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, &DecodeError{Target: "job", Snippet: Snippet(data), Err: err}
	}

	var job Job
	switch probe.Class {
	case ClassFreeStyleProject:
		job = &FreeStyleProject{}
	case ClassWorkflowJob:
		job = &WorkflowJob{}
	case ClassMatrixProject:
		job = &MatrixProject{}
	case ClassMavenModuleSet:
		job = &MavenModuleSet{}
	case ClassFolder:
		job = &Folder{}
	default:
		generic := &GenericJob{}
		if err := DecodeInto("job", data, &generic.JobCommon); err != nil {
			return nil, err
		}
		if err := DecodeInto("job", data, &generic.Raw); err != nil {
			return nil, err
		}
		if err := requireJobFields(&generic.JobCommon, data); err != nil {
			return nil, err
		}
		return generic, nil
	}

	if err := DecodeInto(probe.Class, data, job); err != nil {
		return nil, err
	}
	if err := requireJobFields(jobCommonOf(job), data); err != nil {
		return nil, err
	}
	return job, nil
}

func jobCommonOf(job Job) *JobCommon {
	switch j := job.(type) {
	case *FreeStyleProject:
		return &j.JobCommon
	case *WorkflowJob:
		return &j.JobCommon
	case *MatrixProject:
		return &j.JobCommon
	case *MavenModuleSet:
		return &j.JobCommon
	case *Folder:
		return &j.JobCommon
	case *GenericJob:
		return &j.JobCommon
	default:
		return nil
	}
}

// A tree-projected response carries only the selected fields, so a payload
// is rejected only when nothing identifies it as a job at all.
func requireJobFields(common *JobCommon, data []byte) error {
	if common == nil || (common.Class == "" && common.Name == "" && common.URL == "") {
		return &DecodeError{
			Target:  "job",
			Snippet: Snippet(data),
			Err:     fmt.Errorf("no job fields present"),
		}
	}
	return nil
}

// DecodeBuild decodes a build payload into its concrete variant by _class.
// Unknown classes fall back to GenericBuild, retaining every raw field.
func DecodeBuild(data []byte) (Build, error) {
	var probe classProbe
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, &DecodeError{Target: "build", Snippet: Snippet(data), Err: err}
	}

	var build Build
	switch probe.Class {
	case ClassFreeStyleBuild:
		build = &FreeStyleBuild{}
	case ClassWorkflowRun:
		build = &WorkflowRun{}
	case ClassMatrixBuild:
		build = &MatrixBuild{}
	case ClassMatrixRun:
		build = &MatrixRun{}
	case ClassMavenBuild:
		build = &MavenBuild{}
	case ClassMavenModuleSetBuild:
		build = &MavenModuleSetBuild{}
	case ClassMultiJobBuild:
		build = &MultiJobBuild{}
	default:
		generic := &GenericBuild{}
		if err := DecodeInto("build", data, &generic.BuildCommon); err != nil {
			return nil, err
		}
		if err := DecodeInto("build", data, &generic.Raw); err != nil {
			return nil, err
		}
		if err := requireBuildFields(&generic.BuildCommon, data); err != nil {
			return nil, err
		}
		return generic, nil
	}

	if err := DecodeInto(probe.Class, data, build); err != nil {
		return nil, err
	}
	if err := requireBuildFields(buildCommonOf(build), data); err != nil {
		return nil, err
	}
	return build, nil
}

func buildCommonOf(build Build) *BuildCommon {
	switch b := build.(type) {
	case *FreeStyleBuild:
		return &b.BuildCommon
	case *WorkflowRun:
		return &b.BuildCommon
	case *MatrixBuild:
		return &b.BuildCommon
	case *MatrixRun:
		return &b.BuildCommon
	case *MavenBuild:
		return &b.BuildCommon
	case *MavenModuleSetBuild:
		return &b.BuildCommon
	case *MultiJobBuild:
		return &b.BuildCommon
	case *GenericBuild:
		return &b.BuildCommon
	default:
		return nil
	}
}

func requireBuildFields(common *BuildCommon, data []byte) error {
	if common == nil || (common.Class == "" && common.Number == nil && common.URL == "") {
		return &DecodeError{
			Target:  "build",
			Snippet: Snippet(data),
			Err:     fmt.Errorf("no build fields present"),
		}
	}
	return nil
}

// DecodeView decodes a view payload into its concrete variant by _class.
// Unknown classes fall back to GenericView, retaining every raw field.
func DecodeView(data []byte) (View, error) {
	var probe classProbe
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, &DecodeError{Target: "view", Snippet: Snippet(data), Err: err}
	}

	var view View
	switch probe.Class {
	case ClassListView:
		view = &ListView{}
	case ClassAllView:
		view = &AllView{}
	case ClassMyView:
		view = &MyView{}
	default:
		generic := &GenericView{}
		if err := DecodeInto("view", data, &generic.ViewCommon); err != nil {
			return nil, err
		}
		if err := DecodeInto("view", data, &generic.Raw); err != nil {
			return nil, err
		}
		if err := requireViewFields(&generic.ViewCommon, data); err != nil {
			return nil, err
		}
		return generic, nil
	}

	if err := DecodeInto(probe.Class, data, view); err != nil {
		return nil, err
	}
	if err := requireViewFields(viewCommonOf(view), data); err != nil {
		return nil, err
	}
	return view, nil
}

func viewCommonOf(view View) *ViewCommon {
	switch v := view.(type) {
	case *ListView:
		return &v.ViewCommon
	case *AllView:
		return &v.ViewCommon
	case *MyView:
		return &v.ViewCommon
	case *GenericView:
		return &v.ViewCommon
	default:
		return nil
	}
}

func requireViewFields(common *ViewCommon, data []byte) error {
	if common == nil || (common.Class == "" && common.Name == "" && common.URL == "") {
		return &DecodeError{
			Target:  "view",
			Snippet: Snippet(data),
			Err:     fmt.Errorf("no view fields present"),
		}
	}
	return nil
}

// DecodeComputer decodes a computer payload into its concrete variant by
// _class. Unknown classes fall back to GenericComputer, retaining every raw
// field.
func DecodeComputer(data []byte) (Computer, error) {
	var probe classProbe
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, &DecodeError{Target: "computer", Snippet: Snippet(data), Err: err}
	}

	var computer Computer
	switch probe.Class {
	case ClassMasterComputer:
		computer = &MasterComputer{}
	case ClassSlaveComputer:
		computer = &SlaveComputer{}
	default:
		generic := &GenericComputer{}
		if err := DecodeInto("computer", data, &generic.ComputerCommon); err != nil {
			return nil, err
		}
		if err := DecodeInto("computer", data, &generic.Raw); err != nil {
			return nil, err
		}
		if err := requireComputerFields(&generic.ComputerCommon, data); err != nil {
			return nil, err
		}
		return generic, nil
	}

	if err := DecodeInto(probe.Class, data, computer); err != nil {
		return nil, err
	}
	if err := requireComputerFields(computerCommonOf(computer), data); err != nil {
		return nil, err
	}
	return computer, nil
}

func computerCommonOf(computer Computer) *ComputerCommon {
	switch c := computer.(type) {
	case *MasterComputer:
		return &c.ComputerCommon
	case *SlaveComputer:
		return &c.ComputerCommon
	case *GenericComputer:
		return &c.ComputerCommon
	default:
		return nil
	}
}

func requireComputerFields(common *ComputerCommon, data []byte) error {
	if common == nil || (common.Class == "" && common.DisplayName == "") {
		return &DecodeError{
			Target:  "computer",
			Snippet: Snippet(data),
			Err:     fmt.Errorf("no computer fields present"),
		}
	}
	return nil
}
