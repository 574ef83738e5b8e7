package jenkins_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nineflags-io/jenkinsapi/pkg/jenkins"
)

func TestDecodeJob_FreeStyleProject(t *testing.T) {
	t.Parallel()

	payload := `{
		"_class": "hudson.model.FreeStyleProject",
		"name": "my-job",
		"url": "http://ci.example/job/my-job/",
		"color": "blue",
		"buildable": true,
		"concurrentBuild": false,
		"nextBuildNumber": 43,
		"lastBuild": {"_class": "hudson.model.FreeStyleBuild", "number": 42, "url": "http://ci.example/job/my-job/42/"},
		"builds": [
			{"number": 42, "url": "http://ci.example/job/my-job/42/"},
			{"number": 41, "url": "http://ci.example/job/my-job/41/"}
		]
	}`

	job, err := jenkins.DecodeJob([]byte(payload))
	require.NoError(t, err)

	project, ok := job.(*jenkins.FreeStyleProject)
	require.True(t, ok)
	assert.Equal(t, "my-job", project.Name)
	assert.Equal(t, "http://ci.example/job/my-job/", project.URL)
	assert.Equal(t, jenkins.BallColorBlue, project.Color)
	assert.True(t, project.Buildable)
	require.NotNil(t, project.NextBuildNumber)
	assert.Equal(t, int64(43), *project.NextBuildNumber)
	require.NotNil(t, project.LastBuild)
	assert.Equal(t, int64(42), *project.LastBuild.Number)
	assert.Len(t, project.Builds, 2)

	assert.Equal(t, jenkins.ClassFreeStyleProject, job.JobClass())
	assert.Equal(t, "my-job", job.JobName())
}

func TestDecodeJob_WorkflowJob(t *testing.T) {
	t.Parallel()

	payload := `{
		"_class": "org.jenkinsci.plugins.workflow.job.WorkflowJob",
		"name": "pipeline",
		"url": "http://ci.example/job/pipeline/",
		"resumeBlocked": true
	}`

	job, err := jenkins.DecodeJob([]byte(payload))
	require.NoError(t, err)

	workflow, ok := job.(*jenkins.WorkflowJob)
	require.True(t, ok)
	assert.True(t, workflow.ResumeBlocked)
}

func TestDecodeJob_Folder(t *testing.T) {
	t.Parallel()

	payload := `{
		"_class": "com.cloudbees.hudson.plugins.folder.Folder",
		"name": "team",
		"url": "http://ci.example/job/team/",
		"jobs": [
			{"name": "inner", "url": "http://ci.example/job/team/job/inner/", "color": "red"}
		]
	}`

	job, err := jenkins.DecodeJob([]byte(payload))
	require.NoError(t, err)

	folder, ok := job.(*jenkins.Folder)
	require.True(t, ok)
	require.Len(t, folder.Jobs, 1)
	assert.Equal(t, "inner", folder.Jobs[0].Name)
	assert.Equal(t, jenkins.BallColorRed, folder.Jobs[0].Color)
}

func TestDecodeJob_UnknownClassFallsBackToGeneric(t *testing.T) {
	t.Parallel()

	payload := `{
		"_class": "org.example.plugins.ExoticProject",
		"name": "exotic",
		"url": "http://ci.example/job/exotic/",
		"customField": {"nested": [1, 2, 3]}
	}`

	job, err := jenkins.DecodeJob([]byte(payload))
	require.NoError(t, err)

	generic, ok := job.(*jenkins.GenericJob)
	require.True(t, ok)
	assert.Equal(t, "exotic", generic.Name)
	assert.Equal(t, "org.example.plugins.ExoticProject", generic.Class)

	// every original field survives in Raw
	assert.Contains(t, generic.Raw, "customField")
	assert.Contains(t, generic.Raw, "name")
	assert.JSONEq(t, `{"nested": [1, 2, 3]}`, string(generic.Raw["customField"]))
}

func TestDecodeJob_MissingDiscriminator(t *testing.T) {
	t.Parallel()

	payload := `{"name": "bare", "url": "http://ci.example/job/bare/"}`

	job, err := jenkins.DecodeJob([]byte(payload))
	require.NoError(t, err)

	_, ok := job.(*jenkins.GenericJob)
	assert.True(t, ok)
}

func TestDecodeJob_TreeProjectedFields(t *testing.T) {
	t.Parallel()

	// tree=name,builds[number,result] leaves every unselected field out,
	// url included
	payload := `{"_class": "FreeStyleProject", "name": "my-job", "builds": [{"number": 12, "result": "SUCCESS"}]}`

	job, err := jenkins.DecodeJob([]byte(payload))
	require.NoError(t, err)

	assert.Equal(t, "my-job", job.JobName())
	assert.Empty(t, job.JobURL())

	generic, ok := job.(*jenkins.GenericJob)
	require.True(t, ok)
	require.Len(t, generic.Builds, 1)
	require.NotNil(t, generic.Builds[0].Number)
	assert.Equal(t, int64(12), *generic.Builds[0].Number)
}

func TestDecodeJob_TreeProjectedConcreteClass(t *testing.T) {
	t.Parallel()

	payload := `{"_class": "hudson.model.FreeStyleProject", "name": "my-job", "color": "blue"}`

	job, err := jenkins.DecodeJob([]byte(payload))
	require.NoError(t, err)

	project, ok := job.(*jenkins.FreeStyleProject)
	require.True(t, ok)
	assert.Equal(t, "my-job", project.Name)
	assert.Empty(t, project.URL)
	assert.Equal(t, jenkins.BallColorBlue, project.Color)
}

func TestDecodeJob_EmptyObject(t *testing.T) {
	t.Parallel()

	_, err := jenkins.DecodeJob([]byte(`{}`))
	require.Error(t, err)
	assert.True(t, jenkins.IsUnexpectedShape(err))
}

func TestDecodeJob_InvalidJSON(t *testing.T) {
	t.Parallel()

	_, err := jenkins.DecodeJob([]byte("<html>login page</html>"))
	require.Error(t, err)
	assert.True(t, jenkins.IsUnexpectedShape(err))
}

func TestDecodeJob_SnippetBounded(t *testing.T) {
	t.Parallel()

	body := make([]byte, 4096)
	for i := range body {
		body[i] = 'a'
	}

	_, err := jenkins.DecodeJob(body)
	require.Error(t, err)

	var decodeErr *jenkins.DecodeError
	require.ErrorAs(t, err, &decodeErr)
	assert.LessOrEqual(t, len(decodeErr.Snippet), jenkins.SnippetLimit)
}

func TestDecodeBuild_FreeStyleBuild(t *testing.T) {
	t.Parallel()

	payload := `{
		"_class": "hudson.model.FreeStyleBuild",
		"number": 42,
		"url": "http://ci.example/job/my-job/42/",
		"building": false,
		"result": "SUCCESS",
		"duration": 12345,
		"timestamp": 1700000000000,
		"builtOn": "agent-1",
		"artifacts": [
			{"displayPath": "app.jar", "fileName": "app.jar", "relativePath": "target/app.jar"}
		]
	}`

	build, err := jenkins.DecodeBuild([]byte(payload))
	require.NoError(t, err)

	freestyle, ok := build.(*jenkins.FreeStyleBuild)
	require.True(t, ok)
	require.NotNil(t, freestyle.Number)
	assert.Equal(t, int64(42), *freestyle.Number)
	require.NotNil(t, freestyle.Result)
	assert.Equal(t, jenkins.BuildStatusSuccess, *freestyle.Result)
	assert.Equal(t, "agent-1", freestyle.BuiltOn)
	assert.Len(t, freestyle.Artifacts, 1)
	assert.True(t, freestyle.Completed())
}

func TestDecodeBuild_NullVersusZero(t *testing.T) {
	t.Parallel()

	// a running build: result and duration are literal nulls, estimated
	// duration is a real zero
	payload := `{
		"_class": "hudson.model.FreeStyleBuild",
		"number": 7,
		"url": "http://ci.example/job/my-job/7/",
		"building": true,
		"result": null,
		"duration": null,
		"estimatedDuration": 0
	}`

	build, err := jenkins.DecodeBuild([]byte(payload))
	require.NoError(t, err)

	freestyle, ok := build.(*jenkins.FreeStyleBuild)
	require.True(t, ok)
	assert.Nil(t, freestyle.Result)
	assert.Nil(t, freestyle.Duration)
	require.NotNil(t, freestyle.EstimatedDuration)
	assert.Equal(t, int64(0), *freestyle.EstimatedDuration)
	assert.False(t, freestyle.Completed())
}

func TestDecodeBuild_WorkflowRun(t *testing.T) {
	t.Parallel()

	payload := `{
		"_class": "org.jenkinsci.plugins.workflow.job.WorkflowRun",
		"number": 3,
		"url": "http://ci.example/job/pipeline/3/",
		"result": "UNSTABLE",
		"previousBuild": {"number": 2, "url": "http://ci.example/job/pipeline/2/"}
	}`

	build, err := jenkins.DecodeBuild([]byte(payload))
	require.NoError(t, err)

	run, ok := build.(*jenkins.WorkflowRun)
	require.True(t, ok)
	require.NotNil(t, run.PreviousBuild)
	assert.Equal(t, int64(2), *run.PreviousBuild.Number)
}

func TestDecodeBuild_MatrixBuildRuns(t *testing.T) {
	t.Parallel()

	payload := `{
		"_class": "hudson.matrix.MatrixBuild",
		"number": 5,
		"url": "http://ci.example/job/matrix/5/",
		"runs": [
			{"number": 5, "url": "http://ci.example/job/matrix/linux/5/"},
			{"number": 5, "url": "http://ci.example/job/matrix/windows/5/"}
		]
	}`

	build, err := jenkins.DecodeBuild([]byte(payload))
	require.NoError(t, err)

	matrix, ok := build.(*jenkins.MatrixBuild)
	require.True(t, ok)
	assert.Len(t, matrix.Runs, 2)
}

func TestDecodeBuild_MultiJobSubBuilds(t *testing.T) {
	t.Parallel()

	payload := `{
		"_class": "com.tikal.jenkins.plugins.multijob.MultiJobBuild",
		"number": 9,
		"url": "http://ci.example/job/multi/9/",
		"subBuilds": [
			{"jobName": "phase-a", "buildNumber": 12, "phaseName": "build"}
		]
	}`

	build, err := jenkins.DecodeBuild([]byte(payload))
	require.NoError(t, err)

	multi, ok := build.(*jenkins.MultiJobBuild)
	require.True(t, ok)
	require.Len(t, multi.SubBuilds, 1)
	assert.Equal(t, "phase-a", multi.SubBuilds[0].JobName)
	require.NotNil(t, multi.SubBuilds[0].BuildNumber)
	assert.Equal(t, int64(12), *multi.SubBuilds[0].BuildNumber)
}

func TestDecodeBuild_UnknownClassFallsBackToGeneric(t *testing.T) {
	t.Parallel()

	payload := `{
		"_class": "org.example.ExoticRun",
		"number": 1,
		"url": "http://ci.example/job/x/1/",
		"exoticField": true
	}`

	build, err := jenkins.DecodeBuild([]byte(payload))
	require.NoError(t, err)

	generic, ok := build.(*jenkins.GenericBuild)
	require.True(t, ok)
	assert.Contains(t, generic.Raw, "exoticField")
}

func TestDecodeBuild_TreeProjectedFields(t *testing.T) {
	t.Parallel()

	// tree=result,duration leaves number and url out
	payload := `{"_class": "hudson.model.FreeStyleBuild", "result": "SUCCESS", "duration": 12345}`

	build, err := jenkins.DecodeBuild([]byte(payload))
	require.NoError(t, err)

	freestyle, ok := build.(*jenkins.FreeStyleBuild)
	require.True(t, ok)
	assert.Nil(t, freestyle.Number)
	assert.Empty(t, freestyle.URL)
	require.NotNil(t, freestyle.Result)
	assert.Equal(t, jenkins.BuildStatusSuccess, *freestyle.Result)
}

func TestDecodeBuild_EmptyObject(t *testing.T) {
	t.Parallel()

	_, err := jenkins.DecodeBuild([]byte(`{}`))
	require.Error(t, err)
	assert.True(t, jenkins.IsUnexpectedShape(err))
}

func TestDecodeView(t *testing.T) {
	t.Parallel()

	t.Run("list view", func(t *testing.T) {
		t.Parallel()

		payload := `{
			"_class": "hudson.model.ListView",
			"name": "team view",
			"url": "http://ci.example/view/team%20view/",
			"jobs": [{"name": "my-job", "url": "http://ci.example/job/my-job/"}]
		}`

		view, err := jenkins.DecodeView([]byte(payload))
		require.NoError(t, err)

		listView, ok := view.(*jenkins.ListView)
		require.True(t, ok)
		assert.Equal(t, "team view", listView.Name)
		assert.Len(t, listView.Jobs, 1)
	})

	t.Run("all view", func(t *testing.T) {
		t.Parallel()

		payload := `{"_class": "hudson.model.AllView", "name": "all", "url": "http://ci.example/view/all/"}`

		view, err := jenkins.DecodeView([]byte(payload))
		require.NoError(t, err)

		_, ok := view.(*jenkins.AllView)
		assert.True(t, ok)
	})

	t.Run("unknown class", func(t *testing.T) {
		t.Parallel()

		payload := `{"_class": "org.example.DashboardView", "name": "dash", "url": "http://ci.example/view/dash/", "widgets": []}`

		view, err := jenkins.DecodeView([]byte(payload))
		require.NoError(t, err)

		generic, ok := view.(*jenkins.GenericView)
		require.True(t, ok)
		assert.Contains(t, generic.Raw, "widgets")
	})

	t.Run("projected fields", func(t *testing.T) {
		t.Parallel()

		payload := `{"_class": "hudson.model.ListView", "jobs": [{"name": "my-job"}]}`

		view, err := jenkins.DecodeView([]byte(payload))
		require.NoError(t, err)

		listView, ok := view.(*jenkins.ListView)
		require.True(t, ok)
		assert.Empty(t, listView.Name)
		require.Len(t, listView.Jobs, 1)
		assert.Equal(t, "my-job", listView.Jobs[0].Name)
	})

	t.Run("empty object", func(t *testing.T) {
		t.Parallel()

		_, err := jenkins.DecodeView([]byte(`{}`))
		require.Error(t, err)
		assert.True(t, jenkins.IsUnexpectedShape(err))
	})
}

func TestDecodeComputer(t *testing.T) {
	t.Parallel()

	t.Run("master", func(t *testing.T) {
		t.Parallel()

		payload := `{
			"_class": "hudson.model.Hudson$MasterComputer",
			"displayName": "master",
			"idle": true,
			"numExecutors": 2
		}`

		computer, err := jenkins.DecodeComputer([]byte(payload))
		require.NoError(t, err)

		master, ok := computer.(*jenkins.MasterComputer)
		require.True(t, ok)
		assert.Equal(t, "master", master.DisplayName)
		require.NotNil(t, master.NumExecutors)
		assert.Equal(t, int64(2), *master.NumExecutors)
	})

	t.Run("slave", func(t *testing.T) {
		t.Parallel()

		payload := `{
			"_class": "hudson.slaves.SlaveComputer",
			"displayName": "agent-1",
			"offline": true,
			"offlineCauseReason": "maintenance",
			"absoluteRemotePath": "/home/jenkins"
		}`

		computer, err := jenkins.DecodeComputer([]byte(payload))
		require.NoError(t, err)

		slave, ok := computer.(*jenkins.SlaveComputer)
		require.True(t, ok)
		assert.True(t, slave.Offline)
		require.NotNil(t, slave.AbsoluteRemotePath)
		assert.Equal(t, "/home/jenkins", *slave.AbsoluteRemotePath)
	})

	t.Run("unknown class", func(t *testing.T) {
		t.Parallel()

		payload := `{"_class": "org.example.KubernetesComputer", "displayName": "pod-1", "podName": "pod-1"}`

		computer, err := jenkins.DecodeComputer([]byte(payload))
		require.NoError(t, err)

		generic, ok := computer.(*jenkins.GenericComputer)
		require.True(t, ok)
		assert.Contains(t, generic.Raw, "podName")
	})

	t.Run("projected fields", func(t *testing.T) {
		t.Parallel()

		payload := `{"_class": "hudson.slaves.SlaveComputer", "offline": false}`

		computer, err := jenkins.DecodeComputer([]byte(payload))
		require.NoError(t, err)

		slave, ok := computer.(*jenkins.SlaveComputer)
		require.True(t, ok)
		assert.Empty(t, slave.DisplayName)
		assert.False(t, slave.Offline)
	})

	t.Run("empty object", func(t *testing.T) {
		t.Parallel()

		_, err := jenkins.DecodeComputer([]byte(`{}`))
		require.Error(t, err)
		assert.True(t, jenkins.IsUnexpectedShape(err))
	})
}

func TestComputerSet_Unmarshal(t *testing.T) {
	t.Parallel()

	payload := `{
		"_class": "hudson.model.ComputerSet",
		"displayName": "Nodes",
		"busyExecutors": 1,
		"totalExecutors": 4,
		"computer": [
			{"_class": "hudson.model.Hudson$MasterComputer", "displayName": "master"},
			{"_class": "hudson.slaves.SlaveComputer", "displayName": "agent-1"}
		]
	}`

	var set jenkins.ComputerSet
	err := jenkins.DecodeInto("computer set", []byte(payload), &set)
	require.NoError(t, err)

	require.NotNil(t, set.TotalExecutors)
	assert.Equal(t, int64(4), *set.TotalExecutors)
	require.Len(t, set.Computers, 2)

	_, ok := set.Computers[0].(*jenkins.MasterComputer)
	assert.True(t, ok)
	_, ok = set.Computers[1].(*jenkins.SlaveComputer)
	assert.True(t, ok)
}
