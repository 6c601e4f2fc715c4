// Package contract provides interfaces and shared utilities for the rvss CLI's internal architecture.
package contract

import (
	"time"

	"github.com/huangsam/rvss/schema"
)

// HistoryStore defines the interface for tracking scoring runs and storing their results.
// This allows the history layer to be mocked for testing.
type HistoryStore interface {
	// BeginRun creates a new run for the given command and returns its unique ID
	BeginRun(startTime time.Time, command string, configParams map[string]any) (string, error)

	// EndRun updates the run with completion data
	EndRun(runID string, endTime time.Time, totalVectors int) error

	// RecordScore stores a single scored vector for a run
	RecordScore(runID string, result schema.ScoreResult) error

	// GetStatus returns status information about the history store
	GetStatus() (schema.HistoryStatus, error)

	// GetAllRuns returns every recorded run, oldest first
	GetAllRuns() ([]schema.RunRecord, error)

	// GetAllScores returns every recorded score, grouped by run
	GetAllScores() ([]schema.ScoreRecord, error)

	// Clear removes all runs and scores
	Clear() error

	// Close closes the underlying connection
	Close() error
}
