/*
PURPOSE:
  Provides structured logger construction for uireport.
  Wraps slog for consistent output.

REQUIREMENTS:
  User-specified:
  - "Sane" CLI output. Not spammy.
  - Readable on a terminal, parseable when redirected.

  Implementation-discovered:
  - Needs Info/Warn/Error levels.
  - Components take the logger as an explicit dependency so tests can
    capture output deterministically; no package-level mutable logger.

ARCHITECTURE INTEGRATION:
  - Used everywhere.

ERROR HANDLING:
  - N/A

IMPLEMENTATION RULES:
  - Use `log/slog` (Go 1.21+).
  - tint handler only when the destination is a terminal.

USAGE:
  log := output.NewLogger(os.Stdout)
  log.Info("message", "key", "value")

SELF-HEALING INSTRUCTIONS:
  - Ensure Go 1.21+ is used.

RELATED FILES:
  - All.

MAINTENANCE:
  - Configurable log levels?
*/

package output

import (
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
)

// NewLogger builds a logger writing to w.
// When w is a terminal the tint handler is used for colored, compact
// output; otherwise a plain text handler keeps lines grep-friendly.
func NewLogger(w io.Writer) *slog.Logger {
	if f, ok := w.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		return slog.New(tint.NewHandler(w, &tint.Options{
			TimeFormat: time.Kitchen,
		}))
	}
	return slog.New(slog.NewTextHandler(w, nil))
}

// Default returns the standard process logger (stdout).
func Default() *slog.Logger {
	return NewLogger(os.Stdout)
}
