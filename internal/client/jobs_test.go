package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nineflags-io/jenkinsapi/pkg/jenkins"
)

func TestJobsClient_Get(t *testing.T) {
	t.Parallel()

	server := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/job/my-job/api/json", r.URL.Path)
		assert.Equal(t, "GET", r.Method)
		assert.Equal(t, "1", r.URL.Query().Get("depth"))

		job := map[string]interface{}{
			"_class":    "hudson.model.FreeStyleProject",
			"name":      "my-job",
			"url":       "http://ci.example/job/my-job/",
			"color":     "blue",
			"buildable": true,
			"lastBuild": map[string]interface{}{"number": 42, "url": "http://ci.example/job/my-job/42/"},
		}
		_ = json.NewEncoder(w).Encode(job)
	})

	client := newTestClient(t, server.URL)

	job, err := client.Jobs().Get(context.Background(), "my-job")
	require.NoError(t, err)

	project, ok := job.(*jenkins.FreeStyleProject)
	require.True(t, ok)
	assert.Equal(t, "my-job", project.Name)
	assert.Equal(t, jenkins.BallColorBlue, project.Color)
	require.NotNil(t, project.LastBuild)
	assert.Equal(t, int64(42), *project.LastBuild.Number)
}

func TestJobsClient_GetWithQuery_TreeSelection(t *testing.T) {
	t.Parallel()

	server := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/job/my-job/api/json", r.URL.Path)
		assert.Equal(t, "name,builds[number,result]", r.URL.Query().Get("tree"))
		// explicit params leave depth to the server default
		assert.Empty(t, r.URL.Query().Get("depth"))

		// the server answers with only the selected fields plus _class
		job := map[string]interface{}{
			"_class": "hudson.model.FreeStyleProject",
			"name":   "my-job",
			"builds": []map[string]interface{}{
				{"number": 42, "result": "SUCCESS"},
				{"number": 41, "result": "FAILURE"},
			},
		}
		_ = json.NewEncoder(w).Encode(job)
	})

	client := newTestClient(t, server.URL)

	tree := jenkins.NewTreeSelector().
		WithField("name").
		WithObject("builds", jenkins.NewTreeSelector().WithFields("number", "result"))

	job, err := client.Jobs().GetWithQuery(context.Background(), "my-job",
		jenkins.NewQueryParams().WithTree(tree))
	require.NoError(t, err)

	project, ok := job.(*jenkins.FreeStyleProject)
	require.True(t, ok)
	assert.Equal(t, "my-job", project.Name)
	assert.Empty(t, project.URL)
	require.Len(t, project.Builds, 2)
	require.NotNil(t, project.Builds[0].Number)
	assert.Equal(t, int64(42), *project.Builds[0].Number)
}

func TestJobsClient_Get_InFolder(t *testing.T) {
	t.Parallel()

	server := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/job/team/job/my-job/api/json", r.URL.Path)

		job := map[string]interface{}{
			"_class": "org.jenkinsci.plugins.workflow.job.WorkflowJob",
			"name":   "my-job",
			"url":    "http://ci.example/job/team/job/my-job/",
		}
		_ = json.NewEncoder(w).Encode(job)
	})

	client := newTestClient(t, server.URL)

	job, err := client.Jobs().Get(context.Background(), "my-job", "team")
	require.NoError(t, err)
	_, ok := job.(*jenkins.WorkflowJob)
	assert.True(t, ok)
}

func TestJobsClient_Get_EscapedName(t *testing.T) {
	t.Parallel()

	server := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/job/my job/api/json", r.URL.Path)
		assert.Equal(t, "/job/my%20job/api/json", r.URL.EscapedPath())

		job := map[string]interface{}{
			"_class": "hudson.model.FreeStyleProject",
			"name":   "my job",
			"url":    "http://ci.example/job/my%20job/",
		}
		_ = json.NewEncoder(w).Encode(job)
	})

	client := newTestClient(t, server.URL)

	job, err := client.Jobs().Get(context.Background(), "my job")
	require.NoError(t, err)
	assert.Equal(t, "my job", job.JobName())
}

func TestJobsClient_Get_EmptyName(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, "http://ci.example")

	_, err := client.Jobs().Get(context.Background(), "")
	require.Error(t, err)
	assert.ErrorIs(t, err, jenkins.ErrEmptyPathSegment)
}

func TestJobsClient_Get_NotFound(t *testing.T) {
	t.Parallel()

	server := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	client := newTestClient(t, server.URL)

	_, err := client.Jobs().Get(context.Background(), "missing")
	require.Error(t, err)
	assert.True(t, jenkins.IsNotFound(err))
}

func TestJobsClient_Follow(t *testing.T) {
	t.Parallel()

	var serverURL string
	server := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/job/team/job/inner/api/json", r.URL.Path)

		job := map[string]interface{}{
			"_class": "hudson.model.FreeStyleProject",
			"name":   "inner",
			"url":    serverURL + "/job/team/job/inner/",
		}
		_ = json.NewEncoder(w).Encode(job)
	})
	serverURL = server.URL

	client := newTestClient(t, server.URL)

	ref := &jenkins.ShortJob{Name: "inner", URL: server.URL + "/job/team/job/inner/"}
	job, err := client.Jobs().Follow(context.Background(), ref)
	require.NoError(t, err)
	assert.Equal(t, "inner", job.JobName())
}

func TestJobsClient_EnableDisable(t *testing.T) {
	t.Parallel()

	var lastPath string
	server := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		lastPath = r.URL.Path
		w.WriteHeader(http.StatusFound)
	})

	client := newTestClient(t, server.URL)

	err := client.Jobs().Enable(context.Background(), "my-job")
	require.NoError(t, err)
	assert.Equal(t, "/job/my-job/enable", lastPath)

	err = client.Jobs().Disable(context.Background(), "my-job")
	require.NoError(t, err)
	assert.Equal(t, "/job/my-job/disable", lastPath)
}

func TestJobsClient_Build(t *testing.T) {
	t.Parallel()

	server := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		assert.Equal(t, "/job/my-job/build", r.URL.Path)

		w.Header().Set("Location", "http://ci.example/queue/item/123/")
		w.WriteHeader(http.StatusCreated)
	})

	client := newTestClient(t, server.URL)

	item, err := client.Jobs().Build(context.Background(), "my-job")
	require.NoError(t, err)
	assert.Equal(t, "http://ci.example/queue/item/123/", item.URL)
}

func TestJobsClient_Build_MissingLocation(t *testing.T) {
	t.Parallel()

	server := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	})

	client := newTestClient(t, server.URL)

	_, err := client.Jobs().Build(context.Background(), "my-job")
	require.Error(t, err)
	assert.True(t, jenkins.IsUnexpectedShape(err))
}

func TestJobsClient_BuildWithParameters(t *testing.T) {
	t.Parallel()

	server := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		assert.Equal(t, "/job/my-job/buildWithParameters", r.URL.Path)
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "release", r.PostForm.Get("BRANCH"))
		assert.Equal(t, "true", r.PostForm.Get("CLEAN"))

		w.Header().Set("Location", "http://ci.example/queue/item/124/")
		w.WriteHeader(http.StatusCreated)
	})

	client := newTestClient(t, server.URL)

	params := url.Values{}
	params.Set("BRANCH", "release")
	params.Set("CLEAN", "true")

	item, err := client.Jobs().BuildWithParameters(context.Background(), "my-job", params)
	require.NoError(t, err)
	assert.Equal(t, "http://ci.example/queue/item/124/", item.URL)
}

func TestJobsClient_Build_HiddenFailure(t *testing.T) {
	t.Parallel()

	server := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		// Jenkins reports some trigger failures inside a 200 body
		_, _ = w.Write([]byte("<html>java.lang.IllegalStateException: cannot schedule build</html>"))
	})

	client := newTestClient(t, server.URL)

	_, err := client.Jobs().Build(context.Background(), "my-job")
	require.Error(t, err)
	assert.True(t, jenkins.IsActionFailed(err))
	assert.Contains(t, err.Error(), "IllegalStateException")
}

func TestJobsClient_PollSCM(t *testing.T) {
	t.Parallel()

	server := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		assert.Equal(t, "/job/my-job/polling", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	})

	client := newTestClient(t, server.URL)

	err := client.Jobs().PollSCM(context.Background(), "my-job")
	require.NoError(t, err)
}
