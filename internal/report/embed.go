/*
PURPOSE:
  Embeds a run's JSON results directly into its HTML report so the
  report renders when opened via file:// (browsers refuse cross-origin
  fetches from local pages).

REQUIREMENTS:
  User-specified:
  - Replace the fetch-based loader with an inline literal assignment.
  - Re-running on an already-embedded document is a no-op success.
  - Unrecognized documents must be left byte-identical.

  Implementation-discovered:
  - The fragment match must be structural, not literal: provisioned
    shells carry a timestamped results filename, not the placeholder.
  - Callers need to tell "bad JSON" apart from "template drift";
    sentinel errors carry that taxonomy.

ARCHITECTURE INTEGRATION:
  - Called by: internal/engine (finalize step), internal/report/fix.go
  - Consumes: internal/model.Result

ERROR HANDLING:
  - ErrInvalidData: results JSON unparseable, document untouched.
  - ErrPatternNotFound: loader fragment unrecognized, document untouched.
  - Other errors: plain I/O failures with the cause preserved.

IMPLEMENTATION RULES:
  - All locate-and-replace logic lives in replaceLoaderFragment; the
    matched grammar is documented there and nowhere else.
  - Plain overwrite on success. No atomic rename: the operation is
    idempotent and re-runnable, a torn write is recovered by re-running.

USAGE:
  e := report.NewEmbedder(log)
  err := e.Embed(htmlPath, jsonPath)

SELF-HEALING INSTRUCTIONS:
  - ErrPatternNotFound after a template edit means the loader fragment
    drifted; update loaderFragmentRe alongside the template.

RELATED FILES:
  - internal/assets/templates/report_template.html
  - internal/report/fix.go

MAINTENANCE:
  - Keep marker comment stable; it is the idempotence guard for every
    previously shipped report.
*/

package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"regexp"
	"strings"

	"github.com/quarry-ai/uireport/internal/model"
)

var (
	// ErrInvalidData marks a results file that failed to parse.
	ErrInvalidData = errors.New("invalid results JSON")
	// ErrPatternNotFound marks a document without a recognizable
	// data-loading fragment.
	ErrPatternNotFound = errors.New("data-loading fragment not found")
)

// embeddedMarker is written by every successful embed and checked as the
// idempotence guard. Never change it: shipped reports carry it forever.
const embeddedMarker = "// Data embedded directly to avoid CORS issues"

// loaderFragmentRe matches the data-loading fragment:
//
//	comment     <- "// Fetch and display results"
//	call        <- "fetch('temp_results" ... ".json')"
//	continuation<- anything (the .then chain), lazily
//	terminator  <- ".catch(" body-without-"}" "});"
//
// The filename is matched by shape so both the generic placeholder and
// run-specific timestamped names are recognized.
var loaderFragmentRe = regexp.MustCompile(
	`(?s)[ \t]*// Fetch and display results\s*\n` +
		`\s*fetch\('temp_results[^']*\.json'\)` +
		`.*?` +
		`\.catch\([^}]*}\);`)

// Embedder rewrites HTML reports to carry their results inline.
type Embedder struct {
	log *slog.Logger
}

// NewEmbedder returns an Embedder logging through log.
func NewEmbedder(log *slog.Logger) *Embedder {
	return &Embedder{log: log}
}

// Embed reads the results at jsonPath and rewrites the document at
// htmlPath with the results embedded inline. Succeeds as a no-op when
// the document is already embedded.
func (e *Embedder) Embed(htmlPath, jsonPath string) error {
	jsonData, err := os.ReadFile(jsonPath)
	if err != nil {
		return fmt.Errorf("failed to read results file %s: %w", jsonPath, err)
	}

	var results []model.Result
	if err := json.Unmarshal(jsonData, &results); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidData, jsonPath, err)
	}

	htmlData, err := os.ReadFile(htmlPath)
	if err != nil {
		return fmt.Errorf("failed to read HTML report %s: %w", htmlPath, err)
	}
	doc := string(htmlData)

	if strings.Contains(doc, embeddedMarker) {
		e.log.Info("Report already embedded, skipping", "path", htmlPath)
		return nil
	}

	payload, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize results: %w", err)
	}

	updated, err := replaceLoaderFragment(doc, string(payload))
	if err != nil {
		return fmt.Errorf("%s: %w", htmlPath, err)
	}

	if err := os.WriteFile(htmlPath, []byte(updated), 0644); err != nil {
		return fmt.Errorf("failed to write HTML report %s: %w", htmlPath, err)
	}

	e.log.Info("HTML report finalized with embedded data", "path", htmlPath)
	return nil
}

// replaceLoaderFragment locates the data-loading fragment (grammar at
// loaderFragmentRe) and replaces it with the inline-literal form:
// marker comment, assignment of payload to allResults, then the same
// three calls the fetch continuation made on success. Returns
// ErrPatternNotFound when the document holds no recognizable fragment.
func replaceLoaderFragment(doc, payload string) (string, error) {
	loc := loaderFragmentRe.FindStringIndex(doc)
	if loc == nil {
		return "", ErrPatternNotFound
	}

	replacement := "        " + embeddedMarker + " when viewing locally\n" +
		"        allResults = " + payload + ";\n" +
		"        updateSummary();\n" +
		"        displayResults();\n" +
		"        document.getElementById('loading').style.display = 'none';"

	return doc[:loc[0]] + replacement + doc[loc[1]:], nil
}
