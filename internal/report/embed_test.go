package report

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quarry-ai/uireport/internal/model"
)

func strptr(s string) *string { return &s }

func sampleResults() []model.Result {
	return []model.Result{
		{
			UserPrompt:        "Show me details about Toy Story",
			ExpectedComponent: strptr("one-card"),
			ActualResults:     strptr("one-card"),
			Status:            true,
			LLMModel:          "llama3.2",
			Timestamp:         "2025-11-15T13:57:05Z",
		},
		{
			UserPrompt:        "List all Pixar movies",
			ExpectedComponent: strptr("table"),
			ActualResults:     nil,
			Status:            false,
			LLMModel:          "llama3.2",
			Timestamp:         "2025-11-15T13:57:21Z",
			Error:             "agent returned no renditions",
			ExceptionType:     "EmptyRenditionError",
			Traceback:         `{"renditions": []}`,
		},
	}
}

// provisionRun writes a provisioned shell plus a results file and
// returns both paths.
func provisionRun(t *testing.T, results []model.Result) (htmlPath, jsonPath string) {
	t.Helper()
	runDir := t.TempDir()

	p := NewProvisioner(discardLogger())
	htmlPath, err := p.Provision(runDir, "20251115_135705")
	require.NoError(t, err)

	data, err := json.MarshalIndent(results, "", "  ")
	require.NoError(t, err)
	jsonPath = filepath.Join(runDir, ResultsFileName("20251115_135705"))
	require.NoError(t, os.WriteFile(jsonPath, data, 0644))
	return htmlPath, jsonPath
}

// embeddedLiteral extracts the inline results literal from an embedded
// document.
func embeddedLiteral(t *testing.T, doc string) []model.Result {
	t.Helper()
	markerIdx := strings.Index(doc, embeddedMarker)
	require.GreaterOrEqual(t, markerIdx, 0, "document carries no embed marker")

	rest := doc[markerIdx:]
	start := strings.Index(rest, "allResults = ")
	require.GreaterOrEqual(t, start, 0)
	rest = rest[start+len("allResults = "):]

	end := strings.Index(rest, ";\n        updateSummary();")
	require.GreaterOrEqual(t, end, 0)

	var results []model.Result
	require.NoError(t, json.Unmarshal([]byte(rest[:end]), &results))
	return results
}

func TestEmbedRoundTrip(t *testing.T) {
	want := sampleResults()
	htmlPath, jsonPath := provisionRun(t, want)

	e := NewEmbedder(discardLogger())
	require.NoError(t, e.Embed(htmlPath, jsonPath))

	doc, err := os.ReadFile(htmlPath)
	require.NoError(t, err)

	got := embeddedLiteral(t, string(doc))
	assert.Equal(t, want, got)
}

func TestEmbedIdempotent(t *testing.T) {
	htmlPath, jsonPath := provisionRun(t, sampleResults())
	e := NewEmbedder(discardLogger())

	require.NoError(t, e.Embed(htmlPath, jsonPath))
	once, err := os.ReadFile(htmlPath)
	require.NoError(t, err)

	require.NoError(t, e.Embed(htmlPath, jsonPath))
	twice, err := os.ReadFile(htmlPath)
	require.NoError(t, err)

	assert.Equal(t, once, twice)
}

func TestEmbedRemovesFetchTokens(t *testing.T) {
	htmlPath, jsonPath := provisionRun(t, sampleResults())
	e := NewEmbedder(discardLogger())
	require.NoError(t, e.Embed(htmlPath, jsonPath))

	doc, err := os.ReadFile(htmlPath)
	require.NoError(t, err)
	assert.NotContains(t, string(doc), "fetch(")
	assert.NotContains(t, string(doc), ".catch(")
	assert.Contains(t, string(doc), embeddedMarker)
	// The successful-fetch side effects must survive the replacement.
	assert.Contains(t, string(doc), "updateSummary();")
	assert.Contains(t, string(doc), "displayResults();")
	assert.Contains(t, string(doc), "document.getElementById('loading').style.display = 'none';")
}

func TestEmbedPatternNotFound(t *testing.T) {
	dir := t.TempDir()
	htmlPath := filepath.Join(dir, "index.html")
	original := "<html><script>loadResults();</script></html>"
	require.NoError(t, os.WriteFile(htmlPath, []byte(original), 0644))

	data, err := json.MarshalIndent(sampleResults(), "", "  ")
	require.NoError(t, err)
	jsonPath := filepath.Join(dir, "temp_results_20251115_135705.json")
	require.NoError(t, os.WriteFile(jsonPath, data, 0644))

	e := NewEmbedder(discardLogger())
	err = e.Embed(htmlPath, jsonPath)
	require.ErrorIs(t, err, ErrPatternNotFound)

	// The document must be byte-identical after the failed attempt.
	doc, readErr := os.ReadFile(htmlPath)
	require.NoError(t, readErr)
	assert.Equal(t, original, string(doc))
}

func TestEmbedInvalidJSON(t *testing.T) {
	htmlPath, jsonPath := provisionRun(t, sampleResults())
	require.NoError(t, os.WriteFile(jsonPath, []byte("{not json"), 0644))

	before, err := os.ReadFile(htmlPath)
	require.NoError(t, err)

	e := NewEmbedder(discardLogger())
	err = e.Embed(htmlPath, jsonPath)
	require.ErrorIs(t, err, ErrInvalidData)
	assert.NotErrorIs(t, err, ErrPatternNotFound)

	after, readErr := os.ReadFile(htmlPath)
	require.NoError(t, readErr)
	assert.Equal(t, before, after)
}

func TestEmbedMissingResultsFile(t *testing.T) {
	htmlPath, jsonPath := provisionRun(t, sampleResults())
	require.NoError(t, os.Remove(jsonPath))

	e := NewEmbedder(discardLogger())
	err := e.Embed(htmlPath, jsonPath)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidData)
	assert.NotErrorIs(t, err, ErrPatternNotFound)
}

func TestEmbedMatchesTimestampedFilename(t *testing.T) {
	// The structural match must tolerate the run-specific filename the
	// provisioner substitutes in, not just the generic placeholder.
	htmlPath, jsonPath := provisionRun(t, sampleResults())

	doc, err := os.ReadFile(htmlPath)
	require.NoError(t, err)
	require.Contains(t, string(doc), "temp_results_20251115_135705.json")

	e := NewEmbedder(discardLogger())
	require.NoError(t, e.Embed(htmlPath, jsonPath))
}
