// Package outwriter has output and writer logic.
package outwriter

import (
	"os"
	"time"

	"github.com/huangsam/rvss/internal/contract"
	"github.com/huangsam/rvss/schema"
	"golang.org/x/term"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the core logic.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteScores prints scored vectors using the configured output format.
func (ow *OutWriter) WriteScores(results []schema.ScoreResult, cfg *contract.Config, duration time.Duration) error {
	return WriteScoreResults(results, cfg, duration)
}

// WriteParse prints a parsed vector using the configured output format.
func (ow *OutWriter) WriteParse(result schema.ParseResult, cfg *contract.Config) error {
	return WriteParseResult(result, cfg)
}

// WriteSystems prints the registered systems using the configured output format.
func (ow *OutWriter) WriteSystems(systems []schema.SystemInfo, cfg *contract.Config) error {
	return WriteSystemInfos(systems, cfg)
}

// WriteDescription prints a system's metric enumeration using the configured output format.
func (ow *OutWriter) WriteDescription(desc schema.SystemDescription, cfg *contract.Config) error {
	return WriteSystemDescription(desc, cfg)
}

// terminalWidth returns the width override from cfg, the detected terminal
// width, or a conservative default.
func terminalWidth(cfg *contract.Config) int {
	// Check for absolute width override from flag/env
	if cfg.Width > 0 {
		return cfg.Width
	}
	detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || detectedWidth <= 0 {
		// Fallback to conservative default if terminal size can't be detected
		return 80
	}
	return detectedWidth
}

// GetMaxTableVectorWidth calculates the maximum width for vectors in table output
// based on terminal width and table configuration.
func GetMaxTableVectorWidth(cfg *contract.Config) int {
	termWidth := terminalWidth(cfg)

	// Reserve space for fixed columns with table formatting
	baseWidth := 50 // # + System + three scores + Severity with borders/padding

	// Add explain column
	if cfg.Explain {
		baseWidth += 45
	}

	// Reserve generous space for table borders, separators, and padding
	baseWidth += 10

	available := termWidth - baseWidth
	if available < 20 {
		// Minimum reasonable vector width
		return 20
	}
	if available > 120 {
		// Maximum vector width to prevent overly long rows
		return 120
	}
	return available
}
