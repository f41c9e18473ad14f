package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/liquid-state/pathways-client/pkg/pathways"
)

type recordingLogger struct {
	mu       sync.Mutex
	messages []string
}

func (l *recordingLogger) log(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.messages = append(l.messages, msg)
}

func (l *recordingLogger) Debug(msg string, _ map[string]interface{}) { l.log(msg) }
func (l *recordingLogger) Info(msg string, _ map[string]interface{})  { l.log(msg) }
func (l *recordingLogger) Warn(msg string, _ map[string]interface{})  { l.log(msg) }
func (l *recordingLogger) Error(msg string, _ map[string]interface{}) { l.log(msg) }

func TestClientGetSetsHeaders(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "GET", r.Method)
		assert.Equal(t, "/pathways/", r.URL.Path)
		assert.Equal(t, "page=1&", r.URL.RawQuery)
		assert.Equal(t, "Bearer test-jwt", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		assert.Equal(t, "pathways-client-go", r.Header.Get("User-Agent"))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"count": 0})
	}))
	defer server.Close()

	client := NewClient(server.URL+"/", "test-jwt")

	resp, err := client.Get(context.Background(), "pathways/", "?page=1&", "unable to get list of pathways")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, resp.IsJSON())
	assert.Contains(t, string(resp.Body), `"count"`)
}

func TestClientPostMultipartForm(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)

		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "identity-1", r.FormValue("identity_id"))
		assert.Equal(t, "12", r.FormValue("journey_id"))
		assert.Equal(t, "true", r.FormValue("is_active"))

		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id": 1}`))
	}))
	defer server.Close()

	client := NewClient(server.URL+"/", "test-jwt")

	form := NewForm()
	form.Set("identity_id", "identity-1")
	form.SetInt("journey_id", 12)
	form.SetBool("is_active", true)

	resp, err := client.Post(context.Background(), "appusers/", form, "unable to create app user")
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
}

func TestClientErrorResponse(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"detail": "Not found."}`))
	}))
	defer server.Close()

	client := NewClient(server.URL+"/", "test-jwt")

	_, err := client.Get(context.Background(), "pathways/999/", "", "unable to get data for pathway 999")
	require.Error(t, err)

	var apiErr *pathways.APIError

	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, "unable to get data for pathway 999", apiErr.Message)
	assert.Contains(t, err.Error(), "unable to get data for pathway 999")
	assert.Contains(t, string(apiErr.Body), "Not found.")
	assert.True(t, pathways.IsNotFound(err))
}

func TestClientDelete(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "DELETE", r.Method)

		if r.URL.Path == "/rules/7/" {
			w.WriteHeader(http.StatusNoContent)

			return
		}

		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	client := NewClient(server.URL+"/", "test-jwt")

	deleted, err := client.Delete(context.Background(), "rules/7/", "unable to delete rule")
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = client.Delete(context.Background(), "rules/8/", "unable to delete rule")
	require.Error(t, err)
	assert.False(t, deleted)
	assert.True(t, pathways.IsForbidden(err))
}

func TestClientGetURLBypassesBase(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/absolute/entries/", r.URL.Path)
		assert.Equal(t, "page=2&", r.URL.RawQuery)

		_, _ = w.Write([]byte(`{"count": 0}`))
	}))
	defer server.Close()

	client := NewClient("https://unused.invalid/", "test-jwt",
		WithHTTPClient(server.Client()))

	resp, err := client.GetURL(context.Background(), server.URL+"/absolute/entries/?page=2&", "unable to list entries for journey")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestClientDebugLogging(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	logger := &recordingLogger{}
	client := NewClient(server.URL+"/", "test-jwt",
		WithLogger(logger), WithDebug(true))

	_, err := client.Get(context.Background(), "me/", "", "unable to get data for user")
	require.NoError(t, err)

	require.Len(t, logger.messages, 2)
	assert.Equal(t, "HTTP Request", logger.messages[0])
	assert.Equal(t, "HTTP Response", logger.messages[1])
}

func TestClientUserAgentOverride(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "custom-agent/1.0", r.Header.Get("User-Agent"))

		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := NewClient(server.URL+"/", "test-jwt", WithUserAgent("custom-agent/1.0"))

	_, err := client.Get(context.Background(), "me/", "", "unable to get data for user")
	require.NoError(t, err)
}

func TestClientErrorMessageFallback(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := NewClient(server.URL+"/", "test-jwt")

	_, err := client.Get(context.Background(), "pathways/999/", "", "")
	require.Error(t, err)

	var apiErr *pathways.APIError

	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusText(http.StatusNotFound), apiErr.Message)
}

func TestResponseDecodeContentType(t *testing.T) {
	t.Parallel()

	resp := &Response{
		StatusCode: http.StatusOK,
		Headers:    http.Header{"Content-Type": []string{"application/vnd.api+json"}},
		Body:       []byte(`{"id": 7}`),
	}

	var out struct {
		ID int `json:"id"`
	}

	require.NoError(t, resp.Decode(&out))
	assert.Equal(t, 7, out.ID)

	resp.Headers.Set("Content-Type", "text/html; charset=utf-8")
	err := resp.Decode(&out)
	require.Error(t, err)
	assert.ErrorIs(t, err, pathways.ErrUnexpectedContentType)
	assert.Equal(t, `{"id": 7}`, resp.Text())
}
