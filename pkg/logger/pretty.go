package logger

import (
	"io"
	"os"
	"time"

	charmlog "github.com/charmbracelet/log"
)

// NewPretty returns a colorized, human-friendly logger for interactive CLI
// commands. Services use NewLogger (zap) instead; this one trades structure
// for readability at a terminal.
func NewPretty(debug bool, w io.Writer) *charmlog.Logger {
	if w == nil {
		w = os.Stderr
	}

	level := charmlog.InfoLevel
	if debug {
		level = charmlog.DebugLevel
	}

	return charmlog.NewWithOptions(w, charmlog.Options{
		Level:           level,
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
	})
}
