/*
PURPOSE:
  Batch retrofit for downloaded report archives.
  Walks a directory tree, pairs each HTML report with its sibling JSON
  results file and embeds the data in place.

REQUIREMENTS:
  User-specified:
  - Fix an entire archive of historical runs in one pass.
  - One broken report must not abort the rest.
  - Finding zero reports is a failure, not vacuous success: a typo'd
    root silently succeeding would hide an unfixed archive.

  Implementation-discovered:
  - Sibling JSON is discovered by the temp_results*.json shape; on
    multiple candidates the first in directory-listing order wins
    (deterministic, matches the one-results-file-per-run invariant).

ARCHITECTURE INTEGRATION:
  - Called by: internal/cli (fix command)
  - Uses: internal/report.Embedder

ERROR HANDLING:
  - Root missing / not a directory / empty aborts with an error.
  - Per-document failures are logged with the cause and counted.

IMPLEMENTATION RULES:
  - filepath.WalkDir for discovery (arbitrary depth).
  - Per-item outcome line plus final tally through the injected logger.

USAGE:
  f := report.NewFixer(log)
  fixed, failed, err := f.FixTree(root)

SELF-HEALING INSTRUCTIONS:
  - None.

RELATED FILES:
  - internal/report/embed.go
  - internal/cli/fix.go

MAINTENANCE:
  - None.
*/

package report

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Fixer retrofits embedded data into trees of downloaded reports.
type Fixer struct {
	log      *slog.Logger
	embedder *Embedder
}

// NewFixer returns a Fixer logging through log.
func NewFixer(log *slog.Logger) *Fixer {
	return &Fixer{log: log, embedder: NewEmbedder(log)}
}

// FixTree embeds results into every HTML report under root and returns
// (fixed, failed). A non-nil error means the whole batch was aborted:
// root missing, root not a directory, or no reports found at all.
func (f *Fixer) FixTree(root string) (int, int, error) {
	info, err := os.Stat(root)
	if err != nil {
		return 0, 0, fmt.Errorf("directory not found: %s", root)
	}
	if !info.IsDir() {
		return 0, 0, fmt.Errorf("not a directory: %s", root)
	}

	htmlFiles, err := findHTMLReports(root)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to scan %s: %w", root, err)
	}
	if len(htmlFiles) == 0 {
		return 0, 0, fmt.Errorf("no HTML reports found in: %s", root)
	}

	f.log.Info("Found HTML reports", "root", root, "count", len(htmlFiles))

	fixed, failed := 0, 0
	for _, htmlPath := range htmlFiles {
		jsonPath, err := siblingResultsFile(filepath.Dir(htmlPath))
		if err != nil {
			f.log.Warn("No results file found, skipping", "report", htmlPath)
			failed++
			continue
		}

		if err := f.embedder.Embed(htmlPath, jsonPath); err != nil {
			f.log.Error("Failed to fix report", "report", htmlPath, "error", err)
			failed++
			continue
		}

		f.log.Info("Fixed report", "report", htmlPath)
		fixed++
	}

	f.log.Info("Retrofit complete", "fixed", fixed, "failed", failed, "total", fixed+failed)
	return fixed, failed, nil
}

// findHTMLReports returns every .html file under root, sorted for
// deterministic processing order.
func findHTMLReports(root string) ([]string, error) {
	var htmlFiles []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(d.Name(), ".html") {
			htmlFiles = append(htmlFiles, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(htmlFiles)
	return htmlFiles, nil
}

// siblingResultsFile returns the first temp_results*.json in dir, in
// directory-listing order.
func siblingResultsFile(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", err
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, "temp_results") && strings.HasSuffix(name, ".json") {
			return filepath.Join(dir, name), nil
		}
	}
	return "", fmt.Errorf("no temp_results*.json in %s", dir)
}
