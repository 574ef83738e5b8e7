package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	internalhttp "github.com/nineflags-io/jenkinsapi/internal/http"
	"github.com/nineflags-io/jenkinsapi/pkg/jenkins"
)

// MockLogger for testing.
type MockLogger struct {
	mu   sync.Mutex
	logs []map[string]interface{}
}

func (l *MockLogger) record(level, msg string, fields map[string]interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.logs = append(l.logs, map[string]interface{}{"level": level, "msg": msg, "fields": fields})
}

func (l *MockLogger) Debug(msg string, fields map[string]interface{}) { l.record("debug", msg, fields) }
func (l *MockLogger) Info(msg string, fields map[string]interface{})  { l.record("info", msg, fields) }
func (l *MockLogger) Warn(msg string, fields map[string]interface{})  { l.record("warn", msg, fields) }
func (l *MockLogger) Error(msg string, fields map[string]interface{}) { l.record("error", msg, fields) }

func writeCrumb(t *testing.T, w http.ResponseWriter, value string) {
	t.Helper()
	err := json.NewEncoder(w).Encode(map[string]string{
		"crumb":             value,
		"crumbRequestField": "Jenkins-Crumb",
	})
	require.NoError(t, err)
}

func TestClient_Do(t *testing.T) {
	t.Parallel()

	t.Run("successful request", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "/job/my-job/api/json", request.URL.Path)
			assert.Equal(t, "GET", request.Method)
			assert.Equal(t, "application/json", request.Header.Get("Accept"))

			response := map[string]string{"name": "my-job"}
			_ = json.NewEncoder(writer).Encode(response)
		}))
		defer server.Close()

		client := internalhttp.NewClient(server.URL, nil)

		resp, err := client.Do(context.Background(), &internalhttp.Request{
			Method: "GET",
			Path:   "/job/my-job/api/json",
		})
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)

		var result map[string]string
		err = json.Unmarshal(resp.Body, &result)
		require.NoError(t, err)
		assert.Equal(t, "my-job", result["name"])
	})

	t.Run("request with query parameters", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "/job/my-job/api/json", request.URL.Path)
			assert.Equal(t, "name,builds[number,result]", request.URL.Query().Get("tree"))
			writer.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		client := internalhttp.NewClient(server.URL, nil)

		resp, err := client.Do(context.Background(), &internalhttp.Request{
			Method: "GET",
			Path:   "/job/my-job/api/json",
			Query:  url.Values{"tree": []string{"name,builds[number,result]"}},
		})
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)
	})

	t.Run("basic auth", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			username, password, ok := request.BasicAuth()
			assert.True(t, ok)
			assert.Equal(t, "admin", username)
			assert.Equal(t, "token-123", password)
			writer.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		client := internalhttp.NewClient(server.URL, &internalhttp.BasicAuth{
			Username: "admin",
			Password: "token-123",
		})

		_, err := client.Get(context.Background(), "/api/json", nil)
		require.NoError(t, err)
	})

	t.Run("error status", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			writer.WriteHeader(http.StatusNotFound)
			_, _ = writer.Write([]byte("Not Found"))
		}))
		defer server.Close()

		client := internalhttp.NewClient(server.URL, nil)

		resp, err := client.Get(context.Background(), "/job/missing/api/json", nil)
		require.Error(t, err)
		assert.True(t, jenkins.IsNotFound(err))

		var statusErr *jenkins.StatusError
		require.ErrorAs(t, err, &statusErr)
		assert.Equal(t, 404, statusErr.StatusCode)
		assert.Equal(t, "/job/missing/api/json", statusErr.Path)
		assert.Contains(t, statusErr.Snippet, "Not Found")

		// the response still carries the body for callers that want it
		require.NotNil(t, resp)
		assert.Equal(t, 404, resp.StatusCode)
	})

	t.Run("transport error", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {}))
		server.Close()

		client := internalhttp.NewClient(server.URL, nil)

		_, err := client.Get(context.Background(), "/api/json", nil)
		require.Error(t, err)
		assert.True(t, jenkins.IsTransport(err))
	})

	t.Run("context cancelled before send", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			t.Error("server should not be reached")
		}))
		defer server.Close()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		client := internalhttp.NewClient(server.URL, nil)

		_, err := client.Get(ctx, "/api/json", nil)
		require.Error(t, err)
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("post form", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			if request.URL.Path == "/crumbIssuer/api/json" {
				writeCrumb(t, writer, "crumb-1")
				return
			}

			assert.Equal(t, "POST", request.Method)
			assert.Equal(t, "application/x-www-form-urlencoded", request.Header.Get("Content-Type"))
			require.NoError(t, request.ParseForm())
			assert.Equal(t, "release", request.PostForm.Get("BRANCH"))
			writer.WriteHeader(http.StatusCreated)
		}))
		defer server.Close()

		client := internalhttp.NewClient(server.URL, nil)

		form := url.Values{}
		form.Set("BRANCH", "release")

		resp, err := client.PostForm(context.Background(), "/job/my-job/buildWithParameters", form)
		require.NoError(t, err)
		assert.Equal(t, 201, resp.StatusCode)
	})
}

func TestClient_Crumbs(t *testing.T) {
	t.Parallel()

	t.Run("mutating request carries crumb", func(t *testing.T) {
		t.Parallel()

		var issuerCalls atomic.Int32

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			if request.URL.Path == "/crumbIssuer/api/json" {
				issuerCalls.Add(1)
				writeCrumb(t, writer, "crumb-value")
				return
			}

			assert.Equal(t, "crumb-value", request.Header.Get("Jenkins-Crumb"))
			writer.WriteHeader(http.StatusCreated)
		}))
		defer server.Close()

		client := internalhttp.NewClient(server.URL, nil)

		_, err := client.Post(context.Background(), "/job/my-job/build", nil)
		require.NoError(t, err)
		assert.Equal(t, int32(1), issuerCalls.Load())
	})

	t.Run("crumb is cached across requests", func(t *testing.T) {
		t.Parallel()

		var issuerCalls atomic.Int32

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			if request.URL.Path == "/crumbIssuer/api/json" {
				issuerCalls.Add(1)
				writeCrumb(t, writer, "crumb-value")
				return
			}
			writer.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		client := internalhttp.NewClient(server.URL, nil)

		for range 3 {
			_, err := client.Post(context.Background(), "/job/my-job/build", nil)
			require.NoError(t, err)
		}
		assert.Equal(t, int32(1), issuerCalls.Load())
	})

	t.Run("get requests never consult the issuer", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			if request.URL.Path == "/crumbIssuer/api/json" {
				t.Error("issuer should not be called for GET")
			}
			writer.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		client := internalhttp.NewClient(server.URL, nil)

		_, err := client.Get(context.Background(), "/api/json", nil)
		require.NoError(t, err)
	})

	t.Run("issuer 404 means crumbless", func(t *testing.T) {
		t.Parallel()

		var issuerCalls atomic.Int32

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			if request.URL.Path == "/crumbIssuer/api/json" {
				issuerCalls.Add(1)
				writer.WriteHeader(http.StatusNotFound)
				return
			}

			assert.Empty(t, request.Header.Get("Jenkins-Crumb"))
			writer.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		client := internalhttp.NewClient(server.URL, nil)

		for range 2 {
			_, err := client.Post(context.Background(), "/job/my-job/build", nil)
			require.NoError(t, err)
		}
		// the no-crumb state is cached too
		assert.Equal(t, int32(1), issuerCalls.Load())
	})

	t.Run("rejected crumb is refreshed and retried once", func(t *testing.T) {
		t.Parallel()

		var issuerCalls, buildCalls atomic.Int32

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			if request.URL.Path == "/crumbIssuer/api/json" {
				call := issuerCalls.Add(1)
				if call == 1 {
					writeCrumb(t, writer, "stale-crumb")
				} else {
					writeCrumb(t, writer, "fresh-crumb")
				}
				return
			}

			buildCalls.Add(1)
			if request.Header.Get("Jenkins-Crumb") == "fresh-crumb" {
				writer.WriteHeader(http.StatusCreated)
				return
			}
			writer.WriteHeader(http.StatusForbidden)
		}))
		defer server.Close()

		client := internalhttp.NewClient(server.URL, nil)

		resp, err := client.Post(context.Background(), "/job/my-job/build", nil)
		require.NoError(t, err)
		assert.Equal(t, 201, resp.StatusCode)
		assert.Equal(t, int32(2), issuerCalls.Load())
		assert.Equal(t, int32(2), buildCalls.Load())
	})

	t.Run("second rejection surfaces invalid crumb", func(t *testing.T) {
		t.Parallel()

		var buildCalls atomic.Int32

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			if request.URL.Path == "/crumbIssuer/api/json" {
				writeCrumb(t, writer, "always-rejected")
				return
			}

			buildCalls.Add(1)
			writer.WriteHeader(http.StatusForbidden)
		}))
		defer server.Close()

		client := internalhttp.NewClient(server.URL, nil)

		_, err := client.Post(context.Background(), "/job/my-job/build", nil)
		require.Error(t, err)
		assert.True(t, jenkins.IsInvalidCrumb(err))
		// exactly one retry, never a third attempt
		assert.Equal(t, int32(2), buildCalls.Load())
	})

	t.Run("crumb disabled skips the issuer", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			if request.URL.Path == "/crumbIssuer/api/json" {
				t.Error("issuer should not be called when crumbs are disabled")
			}
			writer.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		client := internalhttp.NewClient(server.URL, nil, internalhttp.WithCrumbDisabled(true))

		_, err := client.Post(context.Background(), "/job/my-job/build", nil)
		require.NoError(t, err)
	})

	t.Run("concurrent mutating requests share one crumb", func(t *testing.T) {
		t.Parallel()

		var issuerCalls atomic.Int32

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			if request.URL.Path == "/crumbIssuer/api/json" {
				issuerCalls.Add(1)
				writeCrumb(t, writer, "shared-crumb")
				return
			}

			assert.Equal(t, "shared-crumb", request.Header.Get("Jenkins-Crumb"))
			writer.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		client := internalhttp.NewClient(server.URL, nil)

		var wg sync.WaitGroup
		for range 8 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := client.Post(context.Background(), "/job/my-job/build", nil)
				assert.NoError(t, err)
			}()
		}
		wg.Wait()

		assert.Equal(t, int32(1), issuerCalls.Load())
	})

	t.Run("malformed crumb payload", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			if request.URL.Path == "/crumbIssuer/api/json" {
				_, _ = writer.Write([]byte(`{"unexpected": true}`))
				return
			}
			writer.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		client := internalhttp.NewClient(server.URL, nil)

		_, err := client.Post(context.Background(), "/job/my-job/build", nil)
		require.Error(t, err)
		assert.True(t, jenkins.IsUnexpectedShape(err))
	})
}

func TestClient_DebugLogging(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if request.URL.Path == "/crumbIssuer/api/json" {
			writeCrumb(t, writer, "secret-crumb")
			return
		}
		writer.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	logger := &MockLogger{}
	client := internalhttp.NewClient(server.URL, &internalhttp.BasicAuth{
		Username: "admin",
		Password: "secret-password",
	}, internalhttp.WithLogger(logger), internalhttp.WithDebug(true))

	_, err := client.Post(context.Background(), "/job/my-job/build", nil)
	require.NoError(t, err)

	require.NotEmpty(t, logger.logs)
	for _, entry := range logger.logs {
		serialized, marshalErr := json.Marshal(entry)
		require.NoError(t, marshalErr)
		assert.NotContains(t, string(serialized), "secret-password")
		assert.NotContains(t, string(serialized), "secret-crumb")
	}
}
