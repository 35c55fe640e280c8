/*
PURPOSE:
  HTTP client for the UI-agent service under test.
  Sends one prompt per call and extracts the generated UI component name
  from the first rendition's content.

REQUIREMENTS:
  User-specified:
  - Invoke the agent per prompt.
  - Resilience against transient transport errors (retry with delay).

  Implementation-discovered:
  - Needs http.Client with a timeout.
  - Rendition content is itself a JSON document; a malformed content
    body must be classified separately from transport failures so the
    report can show what kind of failure occurred.

ARCHITECTURE INTEGRATION:
  - Called by: internal/engine/runner.go
  - Uses: internal/config

ERROR HANDLING:
  - All failures surface as *AgentError with a Kind tag and the captured
    response body; the runner copies both into the result record.
  - Retries on transport errors and 5xx responses only.

IMPLEMENTATION RULES:
  - Use net/http.
  - Enforce timeouts.

USAGE:
  e := engine.New(cfg, log)
  component, err := e.GenerateComponent("Show me details about Toy Story")

SELF-HEALING INSTRUCTIONS:
  - If the agent API changes, update the /v1/components endpoint and the
    rendition payload shape here.

RELATED FILES:
  - internal/config/config.go
  - internal/engine/runner.go

MAINTENANCE:
  - Update for new agent API features.
*/

package engine

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/quarry-ai/uireport/internal/config"
)

// AgentError classifies a failed agent invocation. Kind feeds the
// result record's exception_type, Detail its captured trace.
type AgentError struct {
	Kind   string
	Detail string
	Err    error
}

func (e *AgentError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	}
	return e.Kind
}

func (e *AgentError) Unwrap() error { return e.Err }

// Agent error kinds.
const (
	KindRequest          = "AgentRequestError"
	KindStatus           = "AgentStatusError"
	KindEmptyRendition   = "EmptyRenditionError"
	KindContentParse     = "ContentParseError"
	KindMissingComponent = "MissingComponentError"
)

// Engine handles UI-agent interactions.
type Engine struct {
	Config *config.Config
	Client *http.Client
	Log    *slog.Logger
}

// New creates a new Engine.
func New(cfg *config.Config, log *slog.Logger) *Engine {
	return &Engine{
		Config: cfg,
		Log:    log,
		Client: &http.Client{Timeout: cfg.RequestTimeout},
	}
}

type componentRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
}

type componentResponse struct {
	Renditions []struct {
		Content string `json:"content"`
	} `json:"renditions"`
}

// GenerateComponent asks the agent to render userPrompt and returns the
// name of the UI component it selected. Transport errors and 5xx
// responses are retried per config before giving up.
func (e *Engine) GenerateComponent(userPrompt string) (string, error) {
	var lastErr error
	for attempt := 0; attempt <= e.Config.MaxRetries; attempt++ {
		if attempt > 0 {
			e.Log.Warn("Retrying agent request", "attempt", attempt, "error", lastErr)
			time.Sleep(e.Config.RetryDelay)
		}

		component, err := e.invoke(userPrompt)
		if err == nil {
			return component, nil
		}
		lastErr = err

		var agentErr *AgentError
		if errors.As(err, &agentErr) && agentErr.Kind != KindRequest && agentErr.Kind != KindStatus {
			// Content-level failures are deterministic, retrying wastes time.
			return "", err
		}
	}
	return "", lastErr
}

func (e *Engine) invoke(userPrompt string) (string, error) {
	body, err := json.Marshal(componentRequest{Model: e.Config.Model, Prompt: userPrompt})
	if err != nil {
		return "", &AgentError{Kind: KindRequest, Err: err}
	}

	resp, err := e.Client.Post(
		fmt.Sprintf("%s/v1/components", e.Config.AgentURL),
		"application/json",
		bytes.NewReader(body),
	)
	if err != nil {
		return "", &AgentError{Kind: KindRequest, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &AgentError{Kind: KindRequest, Err: err}
	}

	if resp.StatusCode != http.StatusOK {
		return "", &AgentError{
			Kind:   KindStatus,
			Detail: string(raw),
			Err:    fmt.Errorf("bad status: %s", resp.Status),
		}
	}

	var payload componentResponse
	if err := json.Unmarshal(raw, &payload); err != nil {
		return "", &AgentError{Kind: KindContentParse, Detail: string(raw), Err: err}
	}
	if len(payload.Renditions) == 0 {
		return "", &AgentError{Kind: KindEmptyRendition, Detail: string(raw), Err: fmt.Errorf("agent returned no renditions")}
	}

	content := payload.Renditions[0].Content
	var rendition struct {
		Component string `json:"component"`
	}
	if err := json.Unmarshal([]byte(content), &rendition); err != nil {
		return "", &AgentError{Kind: KindContentParse, Detail: content, Err: err}
	}
	if rendition.Component == "" {
		return "", &AgentError{Kind: KindMissingComponent, Detail: content, Err: fmt.Errorf("rendition content has no component field")}
	}

	return rendition.Component, nil
}
