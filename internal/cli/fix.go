/*
PURPOSE:
  Defines the 'fix' subcommand.
  Retrofits embedded result data into downloaded HTML reports so they
  render from file:// without CORS errors.

REQUIREMENTS:
  User-specified:
  - One positional argument: the report root directory.
  - Exit code 0 only when every discovered report was fixed.
  - No flags, no environment variables.

  Implementation-discovered:
  - Per-item outcome lines go to stdout; the exit code is the only
    machine-readable signal.

ARCHITECTURE INTEGRATION:
  - Calls: internal/report.Fixer
  - Uses: internal/output

ERROR HANDLING:
  - Precondition failures (missing root, no reports found) and any
    per-item failure surface as a non-nil RunE error -> exit 1.

IMPLEMENTATION RULES:
  - cobra.ExactArgs(1).

USAGE:
  uireport fix ~/Downloads/artifact/report_20251115_135705_llama3.2/

SELF-HEALING INSTRUCTIONS:
  - None.

RELATED FILES:
  - internal/report/fix.go

MAINTENANCE:
  - None.
*/

package cli

import (
	"fmt"
	"os"

	"github.com/quarry-ai/uireport/internal/output"
	"github.com/quarry-ai/uireport/internal/report"
	"github.com/spf13/cobra"
)

var fixCmd = &cobra.Command{
	Use:   "fix <report-root>",
	Short: "Embed result data into downloaded HTML reports",
	Long: `Recursively scans a directory for HTML reports that still load their
results via fetch(), pairs each with its sibling temp_results*.json and
rewrites the report with the data embedded inline.

Already-embedded reports are skipped and counted as successes, so the
command is safe to re-run over the same tree.`,
	Example: `  uireport fix ~/Downloads/artifact/
  uireport fix ./AI_Reports`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		fixer := report.NewFixer(output.NewLogger(os.Stdout))

		fixed, failed, err := fixer.FixTree(args[0])
		if err != nil {
			return err
		}
		if failed > 0 {
			return fmt.Errorf("%d of %d report(s) could not be fixed", failed, fixed+failed)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(fixCmd)
}
