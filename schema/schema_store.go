package schema

import "time"

// RunRecord represents a row from the rvss_runs table.
type RunRecord struct {
	RunID        string     `json:"run_id" yaml:"run_id"`
	Command      string     `json:"command" yaml:"command"`
	StartTime    time.Time  `json:"start_time" yaml:"start_time"`
	EndTime      *time.Time `json:"end_time,omitempty" yaml:"end_time,omitempty"`
	DurationMs   *int64     `json:"duration_ms,omitempty" yaml:"duration_ms,omitempty"`
	TotalVectors *int32     `json:"total_vectors,omitempty" yaml:"total_vectors,omitempty"`
	ConfigParams *string    `json:"config_params,omitempty" yaml:"config_params,omitempty"`
}

// ScoreRecord represents a row from the rvss_scores table.
type ScoreRecord struct {
	RunID         string    `json:"run_id" yaml:"run_id"`
	Seq           int32     `json:"seq" yaml:"seq"`
	RecordedAt    time.Time `json:"recorded_at" yaml:"recorded_at"`
	System        string    `json:"system" yaml:"system"`
	Vector        string    `json:"vector" yaml:"vector"`
	Metrics       string    `json:"metrics" yaml:"metrics"` // JSON object of metric name to token
	Base          float64   `json:"base" yaml:"base"`
	Temporal      float64   `json:"temporal" yaml:"temporal"`
	Environmental float64   `json:"environmental" yaml:"environmental"`
	Severity      string    `json:"severity" yaml:"severity"`
	Custom        *string   `json:"custom,omitempty" yaml:"custom,omitempty"` // JSON of a user-defined result
}
