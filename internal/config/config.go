/*
PURPOSE:
  Defines the configuration structure and loading logic for uireport.
  Adheres to "Config IS Code" philosophy.

REQUIREMENTS:
  User-specified:
  - Allow configuration of the agent endpoint, model name, dataset path,
    report output directory and request timeouts.

  Implementation-discovered:
  - Needs to support YAML parsing.

ARCHITECTURE INTEGRATION:
  - Used by: internal/cli, internal/engine
  - Dependencies: gopkg.in/yaml.v3 (standard for Go config)

ERROR HANDLING:
  - Returns explicit error if config file is invalid.
  - Missing config file falls back to defaults (not an error unless the
    user named the file explicitly).

IMPLEMENTATION RULES:
  - Config struct tags should support yaml.
  - Defaults should be sensible (e.g., 60s timeout).

USAGE:
  cfg, err := config.Load("uireport.yaml")

SELF-HEALING INSTRUCTIONS:
  - If new fields are needed, add to Config struct and update Load() defaults.

RELATED FILES:
  - internal/cli/root.go

MAINTENANCE:
  - Update when adding new tuning parameters.
*/

package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the full configuration for uireport.
type Config struct {
	// AgentURL is the base URL of the UI-agent service under test.
	AgentURL string `yaml:"agent_url"`
	// Model is the LLM model identifier; it also names the run directory.
	Model string `yaml:"model"`
	// Dataset is the path to the JSON test dataset.
	Dataset string `yaml:"dataset"`
	// ReportDir is the base directory for per-run report directories.
	ReportDir string `yaml:"report_dir"`

	RequestTimeout time.Duration `yaml:"request_timeout"`
	MaxRetries     int           `yaml:"max_retries"`
	RetryDelay     time.Duration `yaml:"retry_delay"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		AgentURL:       "http://localhost:8000",
		Model:          "llama3.2",
		Dataset:        "testdata/toy_story_dataset_5.json",
		ReportDir:      "AI_Reports",
		RequestTimeout: 60 * time.Second,
		MaxRetries:     3,
		RetryDelay:     2 * time.Second,
	}
}

// Load reads configuration from a file.
// If path is specified, it attempts to load that file.
// If path is empty, it searches for default files in order.
// If no file found, returns default config.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	var data []byte
	var err error

	if path != "" {
		data, err = os.ReadFile(path)
		if err != nil {
			return cfg, err
		}
	} else {
		defaults := []string{"uireport.yaml", "uireport.conf"}
		found := false
		for _, name := range defaults {
			data, err = os.ReadFile(name)
			if err == nil {
				path = name // record which file we loaded
				found = true
				break
			}
		}
		if !found {
			// No config file found, return default
			return cfg, nil
		}
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	return cfg, nil
}
