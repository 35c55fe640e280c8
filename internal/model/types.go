/*
PURPOSE:
  Defines the core data structures used throughout uireport.
  These models represent individual test-case results and run summaries.

REQUIREMENTS:
  User-specified:
  - Record prompt, expected/actual UI component, pass/fail status.
  - Track model name and per-case timestamp.
  - On failure: error message, error classification, captured trace.

  Implementation-discovered:
  - JSON field names must match what the report template's client-side
    code reads.
  - expected/actual serialize as null when absent; a null actual signals
    a processing failure, which the report renders differently.

ARCHITECTURE INTEGRATION:
  - Used by: internal/engine, internal/output, internal/report
  - Shared across boundaries.

ERROR HANDLING:
  - None (pure data structs).

IMPLEMENTATION RULES:
  - Keep structs simple and public.
  - Timestamps travel as ISO-8601 strings, not time.Time: the value is
    display data for the HTML report, never computed on.

USAGE:
  res := model.Result{...}

SELF-HEALING INSTRUCTIONS:
  - If new fields are needed, add field and update the report template's
    detail rendering.

RELATED FILES:
  - internal/output/results.go
  - internal/report/embed.go

MAINTENANCE:
  - Update when the report template starts displaying new per-case data.
*/

package model

// Result represents the outcome of a single evaluated test case.
type Result struct {
	UserPrompt        string  `json:"user_prompt"`
	ExpectedComponent *string `json:"expected_component"`
	// ActualResults is nil when the case failed before producing a
	// component (agent error, unparseable rendition, ...).
	ActualResults *string `json:"actual_results"`
	Status        bool    `json:"status"`
	LLMModel      string  `json:"llm_model"`
	Timestamp     string  `json:"timestamp"`

	// Failure details. Empty on passing cases.
	Error         string `json:"error,omitempty"`
	ExceptionType string `json:"exception_type,omitempty"`
	Traceback     string `json:"traceback,omitempty"`
}

// Matches reports whether expected and actual compare equal.
// Result.Status must only be true when this holds.
func Matches(expected, actual *string) bool {
	if expected == nil || actual == nil {
		return expected == actual
	}
	return *expected == *actual
}

// Summary aggregates pass/fail counts for a finished run.
type Summary struct {
	Total  int
	Passed int
	Failed int
}

// Summarize computes a Summary over a result sequence.
func Summarize(results []Result) Summary {
	s := Summary{Total: len(results)}
	for _, r := range results {
		if r.Status {
			s.Passed++
		} else {
			s.Failed++
		}
	}
	return s
}

// PassRate returns the pass percentage (0 when the run is empty).
func (s Summary) PassRate() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Passed) / float64(s.Total) * 100.0
}
