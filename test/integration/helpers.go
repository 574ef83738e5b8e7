// Package integration provides an in-process fake server for exercising
// the client end to end, crumb handling included.
package integration

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"
)

// FakeServer simulates a small automation server: one job, a build queue,
// and a crumb issuer that rejects mutating requests without a valid crumb.
type FakeServer struct {
	mu sync.Mutex

	crumbValue  string
	nextQueueID int64
	nextBuild   int64
	queue       map[int64]int64 // queue item id -> build number, 0 while pending
	jobEnabled  bool

	server *httptest.Server
}

// NewFakeServer starts the fake server and registers cleanup with t.
func NewFakeServer(t *testing.T) *FakeServer {
	t.Helper()

	fake := &FakeServer{
		crumbValue:  "crumb-1",
		nextQueueID: 100,
		nextBuild:   1,
		queue:       make(map[int64]int64),
		jobEnabled:  true,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/crumbIssuer/api/json", fake.handleCrumbIssuer)
	mux.HandleFunc("/api/json", fake.handleHome)
	mux.HandleFunc("/job/app-build/api/json", fake.handleJob)
	mux.HandleFunc("/job/app-build/build", fake.handleTrigger)
	mux.HandleFunc("/job/app-build/enable", fake.handleEnable)
	mux.HandleFunc("/job/app-build/disable", fake.handleDisable)
	mux.HandleFunc("/job/app-build/1/api/json", fake.handleBuild)
	mux.HandleFunc("/job/app-build/1/consoleText", fake.handleConsole)
	mux.HandleFunc("/queue/item/", fake.handleQueueItem)

	fake.server = httptest.NewServer(mux)
	t.Cleanup(fake.server.Close)

	return fake
}

// URL returns the base URL of the fake server.
func (f *FakeServer) URL() string {
	return f.server.URL
}

// StartQueuedBuilds moves every pending queue item to a started build.
func (f *FakeServer) StartQueuedBuilds() {
	f.mu.Lock()
	defer f.mu.Unlock()

	for id, build := range f.queue {
		if build == 0 {
			f.queue[id] = f.nextBuild
			f.nextBuild++
		}
	}
}

// JobEnabled reports the current enabled state of the job.
func (f *FakeServer) JobEnabled() bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.jobEnabled
}

func (f *FakeServer) checkCrumb(w http.ResponseWriter, r *http.Request) bool {
	f.mu.Lock()
	valid := r.Header.Get("Jenkins-Crumb") == f.crumbValue
	f.mu.Unlock()

	if !valid {
		w.WriteHeader(http.StatusForbidden)
	}

	return valid
}

func (f *FakeServer) handleCrumbIssuer(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	crumb := f.crumbValue
	f.mu.Unlock()

	_ = json.NewEncoder(w).Encode(map[string]string{
		"crumb":             crumb,
		"crumbRequestField": "Jenkins-Crumb",
	})
}

func (f *FakeServer) handleHome(w http.ResponseWriter, r *http.Request) {
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"_class":          "hudson.model.Hudson",
		"nodeDescription": "fake controller",
		"numExecutors":    2,
		"useCrumbs":       true,
		"jobs": []map[string]string{
			{"name": "app-build", "url": f.server.URL + "/job/app-build/", "color": "blue"},
		},
	})
}

func (f *FakeServer) handleJob(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	enabled := f.jobEnabled
	f.mu.Unlock()

	color := "blue"
	if !enabled {
		color = "disabled"
	}

	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"_class":    "hudson.model.FreeStyleProject",
		"name":      "app-build",
		"url":       f.server.URL + "/job/app-build/",
		"color":     color,
		"buildable": enabled,
	})
}

func (f *FakeServer) handleTrigger(w http.ResponseWriter, r *http.Request) {
	if !f.checkCrumb(w, r) {
		return
	}

	f.mu.Lock()
	id := f.nextQueueID
	f.nextQueueID++
	f.queue[id] = 0
	f.mu.Unlock()

	w.Header().Set("Location", fmt.Sprintf("%s/queue/item/%d/", f.server.URL, id))
	w.WriteHeader(http.StatusCreated)
}

func (f *FakeServer) handleEnable(w http.ResponseWriter, r *http.Request) {
	if !f.checkCrumb(w, r) {
		return
	}

	f.mu.Lock()
	f.jobEnabled = true
	f.mu.Unlock()

	w.WriteHeader(http.StatusFound)
}

func (f *FakeServer) handleDisable(w http.ResponseWriter, r *http.Request) {
	if !f.checkCrumb(w, r) {
		return
	}

	f.mu.Lock()
	f.jobEnabled = false
	f.mu.Unlock()

	w.WriteHeader(http.StatusFound)
}

func (f *FakeServer) handleBuild(w http.ResponseWriter, r *http.Request) {
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"_class":   "hudson.model.FreeStyleBuild",
		"number":   1,
		"url":      f.server.URL + "/job/app-build/1/",
		"result":   "SUCCESS",
		"building": false,
		"duration": 1234,
	})
}

func (f *FakeServer) handleConsole(w http.ResponseWriter, r *http.Request) {
	_, _ = w.Write([]byte("Started by remote request\nFinished: SUCCESS\n"))
}

func (f *FakeServer) handleQueueItem(w http.ResponseWriter, r *http.Request) {
	var id int64

	_, err := fmt.Sscanf(r.URL.Path, "/queue/item/%d/api/json", &id)
	if err != nil {
		http.NotFound(w, r)

		return
	}

	f.mu.Lock()
	build, ok := f.queue[id]
	f.mu.Unlock()

	if !ok {
		http.NotFound(w, r)

		return
	}

	item := map[string]interface{}{
		"id":  id,
		"url": "queue/item/" + strconv.FormatInt(id, 10) + "/",
	}

	if build == 0 {
		why := "Waiting for next available executor"
		item["buildable"] = true
		item["why"] = why
	} else {
		item["executable"] = map[string]interface{}{
			"number": build,
			"url":    fmt.Sprintf("%s/job/app-build/%d/", f.server.URL, build),
		}
	}

	_ = json.NewEncoder(w).Encode(item)
}
