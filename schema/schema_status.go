package schema

import "time"

// HistoryStatus represents the status of the score history store.
type HistoryStatus struct {
	Backend       string           `json:"backend" yaml:"backend"`
	Connected     bool             `json:"connected" yaml:"connected"`
	TotalRuns     int              `json:"total_runs" yaml:"total_runs"`
	TotalScores   int              `json:"total_scores" yaml:"total_scores"`
	LastRunID     string           `json:"last_run_id" yaml:"last_run_id"`
	LastRunTime   time.Time        `json:"last_run_time" yaml:"last_run_time"`
	OldestRunTime time.Time        `json:"oldest_run_time" yaml:"oldest_run_time"`
	SystemCounts  map[string]int64 `json:"system_counts" yaml:"system_counts"`
}
