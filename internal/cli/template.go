package cli

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/quarry-ai/uireport/internal/assets"
	"github.com/quarry-ai/uireport/internal/output"
	"github.com/spf13/cobra"
)

var templateCmd = &cobra.Command{
	Use:   "template",
	Short: "Manage the embedded HTML report template",
}

var exportCmd = &cobra.Command{
	Use:   "export [dir]",
	Short: "Export the embedded report template for inspection",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		targetDir := "."
		if len(args) == 1 {
			targetDir = args[0]
		}

		log := output.Default()
		log.Info("Exporting report template...", "target", targetDir)

		if err := os.MkdirAll(targetDir, 0755); err != nil {
			return fmt.Errorf("failed to create target directory %s: %w", targetDir, err)
		}

		// Read embedded files from internal/assets/templates/
		entries, err := fs.ReadDir(assets.Templates, "templates")
		if err != nil {
			return fmt.Errorf("failed to read embedded templates: %w", err)
		}

		count := 0
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}

			content, err := fs.ReadFile(assets.Templates, "templates/"+entry.Name())
			if err != nil {
				log.Error("Failed to read embedded file", "file", entry.Name(), "error", err)
				continue
			}

			targetPath := filepath.Join(targetDir, entry.Name())
			if err := os.WriteFile(targetPath, content, 0644); err != nil {
				log.Error("Failed to write to target", "path", targetPath, "error", err)
				continue
			}

			log.Info("Exported template", "name", entry.Name())
			count++
		}

		log.Info("Export Complete", "total_files", count)
		return nil
	},
}

func init() {
	templateCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(templateCmd)
}
