package core

import (
	"fmt"
	"time"

	"github.com/huangsam/rvss/internal/contract"
	"github.com/huangsam/rvss/schema"
)

// recordRun stores a finished run in the history store when recording is enabled.
// Tracking failures are logged and never fail the command.
func recordRun(cfg *contract.Config, store contract.HistoryStore, command string, start time.Time, results []schema.ScoreResult) {
	if !cfg.Record || store == nil {
		return
	}

	runID, err := store.BeginRun(start, command, cfg.Params())
	if err != nil {
		contract.LogWarn("History tracking initialization failed", err)
		return
	}

	for _, res := range results {
		if res.Error != "" {
			continue
		}
		if err := store.RecordScore(runID, res); err != nil {
			logTrackingError("RecordScore", res.Vector, err)
		}
	}

	if err := store.EndRun(runID, time.Now(), len(results)); err != nil {
		contract.LogWarn("Failed to finalize history tracking", err)
	}
}

// logTrackingError logs database tracking errors to stderr without disrupting scoring.
func logTrackingError(operation, vector string, err error) {
	contract.LogWarn(fmt.Sprintf("History tracking failed for %s on %s", operation, vector), err)
}
