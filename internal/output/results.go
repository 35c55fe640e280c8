/*
PURPOSE:
  Persists test-case results to the run's JSON results file.
  Keeps the on-disk file a complete, valid document at all times.

REQUIREMENTS:
  User-specified:
  - JSON output, 2-space indented, a single top-level array.
  - A crash mid-run must lose at most the in-flight record.

  Implementation-discovered:
  - Rewriting the full array on every append is the simplest way to keep
    the file valid after each case; runs are small (tens of cases), so
    the O(n^2) rewrite cost is irrelevant.

ARCHITECTURE INTEGRATION:
  - Called by: internal/engine
  - Consumes: internal/model.Result

ERROR HANDLING:
  - Returns error on marshal or write failure.

IMPLEMENTATION RULES:
  - Use json.MarshalIndent with two-space indent; the same serialization
    is embedded verbatim into the HTML report later.
  - Single-writer by design; no locking.

USAGE:
  log := output.NewResultLog(path)
  err := log.Append(result)

SELF-HEALING INSTRUCTIONS:
  - None specific.

RELATED FILES:
  - internal/model/types.go
  - internal/report/embed.go

MAINTENANCE:
  - Revisit the rewrite-per-append strategy if datasets grow past a few
    thousand cases.
*/

package output

import (
	"encoding/json"
	"os"

	"github.com/quarry-ai/uireport/internal/model"
)

// ResultLog accumulates results in memory and mirrors the full sequence
// to disk after every append.
type ResultLog struct {
	path    string
	results []model.Result
}

// NewResultLog creates a ResultLog writing to path. Nothing is written
// until the first Append.
func NewResultLog(path string) *ResultLog {
	return &ResultLog{path: path}
}

// Append records r and rewrites the results file with the full sequence.
func (l *ResultLog) Append(r model.Result) error {
	l.results = append(l.results, r)

	data, err := json.MarshalIndent(l.results, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(l.path, data, 0644)
}

// Results returns the accumulated sequence.
func (l *ResultLog) Results() []model.Result {
	return l.results
}

// Path returns the results file path.
func (l *ResultLog) Path() string {
	return l.path
}
