package engine

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quarry-ai/uireport/internal/config"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testConfig(url string) *config.Config {
	cfg := config.DefaultConfig()
	cfg.AgentURL = url
	cfg.MaxRetries = 1
	cfg.RetryDelay = 0
	cfg.RequestTimeout = 5 * time.Second
	return cfg
}

func renditionBody(content string) string {
	body, _ := json.Marshal(map[string]any{
		"renditions": []map[string]string{{"content": content}},
	})
	return string(body)
}

func TestGenerateComponent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/components", r.URL.Path)
		var req componentRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "llama3.2", req.Model)
		assert.Equal(t, "Show me details about Toy Story", req.Prompt)

		io.WriteString(w, renditionBody(`{"component": "one-card", "title": "Toy Story"}`))
	}))
	defer srv.Close()

	e := New(testConfig(srv.URL), discardLogger())
	component, err := e.GenerateComponent("Show me details about Toy Story")
	require.NoError(t, err)
	assert.Equal(t, "one-card", component)
}

func TestGenerateComponentRetriesServerErrors(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			http.Error(w, "model loading", http.StatusServiceUnavailable)
			return
		}
		io.WriteString(w, renditionBody(`{"component": "table"}`))
	}))
	defer srv.Close()

	e := New(testConfig(srv.URL), discardLogger())
	component, err := e.GenerateComponent("List all Pixar movies")
	require.NoError(t, err)
	assert.Equal(t, "table", component)
	assert.Equal(t, 2, calls)
}

func TestGenerateComponentStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	e := New(testConfig(srv.URL), discardLogger())
	_, err := e.GenerateComponent("anything")
	require.Error(t, err)

	var agentErr *AgentError
	require.ErrorAs(t, err, &agentErr)
	assert.Equal(t, KindStatus, agentErr.Kind)
	assert.Contains(t, agentErr.Detail, "boom")
}

func TestGenerateComponentContentParseNoRetry(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		io.WriteString(w, renditionBody("this is not JSON"))
	}))
	defer srv.Close()

	e := New(testConfig(srv.URL), discardLogger())
	_, err := e.GenerateComponent("anything")
	require.Error(t, err)

	var agentErr *AgentError
	require.ErrorAs(t, err, &agentErr)
	assert.Equal(t, KindContentParse, agentErr.Kind)
	assert.Equal(t, "this is not JSON", agentErr.Detail)
	// Deterministic content failures are not retried.
	assert.Equal(t, 1, calls)
}

func TestGenerateComponentEmptyRenditions(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"renditions": []}`)
	}))
	defer srv.Close()

	e := New(testConfig(srv.URL), discardLogger())
	_, err := e.GenerateComponent("anything")
	require.Error(t, err)

	var agentErr *AgentError
	require.ErrorAs(t, err, &agentErr)
	assert.Equal(t, KindEmptyRendition, agentErr.Kind)
}

func TestGenerateComponentMissingComponentField(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, renditionBody(`{"title": "no component here"}`))
	}))
	defer srv.Close()

	e := New(testConfig(srv.URL), discardLogger())
	_, err := e.GenerateComponent("anything")
	require.Error(t, err)

	var agentErr *AgentError
	require.ErrorAs(t, err, &agentErr)
	assert.Equal(t, KindMissingComponent, agentErr.Kind)
}

func TestGenerateComponentTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused

	e := New(testConfig(srv.URL), discardLogger())
	_, err := e.GenerateComponent("anything")
	require.Error(t, err)

	var agentErr *AgentError
	require.ErrorAs(t, err, &agentErr)
	assert.Equal(t, KindRequest, agentErr.Kind)
}
