/*
PURPOSE:
  Defines the 'run' subcommand.
  Executes the full test suite against the agent.

REQUIREMENTS:
  User-specified:
  - Run the tests.
  - Specific flags for overrides.

  Implementation-discovered:
  - Need to load config first.
  - Apply flag overrides to config.

ARCHITECTURE INTEGRATION:
  - Calls: internal/engine.Run()
  - Uses: internal/config, internal/output

ERROR HANDLING:
  - Returns error if config load fails or engine run fails.

IMPLEMENTATION RULES:
  - Setup flags in init().
  - Logic: Load Config -> Override -> Engine.Run.

USAGE:
  uireport run --model llama3.2 --dataset ./testdata/toy_story_dataset_5.json

SELF-HEALING INSTRUCTIONS:
  - Check flag names match Config struct fields generally.

RELATED FILES:
  - internal/cli/root.go

MAINTENANCE:
  - Update when adding new CLI overrides.
*/

package cli

import (
	"github.com/quarry-ai/uireport/internal/config"
	"github.com/quarry-ai/uireport/internal/engine"
	"github.com/quarry-ai/uireport/internal/output"
	"github.com/spf13/cobra"
)

var (
	agentURLOverride  string
	modelOverride     string
	datasetOverride   string
	reportDirOverride string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the test suite and generate a report",
	Long: `Evaluates every prompt in the dataset against the UI-generation agent.
Each case passes when the agent selects the expected UI component.

Results are written incrementally to a per-run report directory
(report_<timestamp>_<model>/) as JSON, and the run finishes by embedding
the results into the directory's index.html so the report opens straight
from the filesystem, no web server required.`,
	Example: `  # Run with defaults (uses uireport.yaml)
  uireport run

  # Override agent endpoint and model
  uireport run --agent-url http://agent:8000 --model llama3.2

  # Use a specific dataset and report directory
  uireport run --dataset ./testdata/movies.json -o ./AI_Reports`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// 1. Load Config
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return err
		}

		// 2. Overrides
		if agentURLOverride != "" {
			cfg.AgentURL = agentURLOverride
		}
		if modelOverride != "" {
			cfg.Model = modelOverride
		}
		if datasetOverride != "" {
			cfg.Dataset = datasetOverride
		}
		if reportDirOverride != "" {
			cfg.ReportDir = reportDirOverride
		}

		// 3. Execution
		return engine.Run(cfg, output.Default())
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVar(&agentURLOverride, "agent-url", "", "Base URL of the UI-agent service")
	runCmd.Flags().StringVar(&modelOverride, "model", "", "LLM model identifier (names the run directory)")
	runCmd.Flags().StringVarP(&datasetOverride, "dataset", "d", "", "Path to the JSON test dataset")
	runCmd.Flags().StringVarP(&reportDirOverride, "report-dir", "o", "", "Base directory for report output")
}
