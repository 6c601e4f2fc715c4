// Package parquet provides data structures and functions for exporting rvss
// score data to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/huangsam/rvss/schema"
	"github.com/parquet-go/parquet-go"
)

// Run represents a single rvss command run with metadata.
// This struct maps to the rvss_runs database table.
type Run struct {
	// RunID is the UUID of this run
	RunID string `parquet:"run_id,snappy"`

	// Command is the CLI command that produced the run
	Command string `parquet:"command,snappy"`

	// StartTime is when the run began (stored as TIMESTAMP with nanosecond precision)
	StartTime time.Time `parquet:"start_time,snappy"`

	// EndTime is when the run completed (nullable)
	EndTime *time.Time `parquet:"end_time,optional,snappy"`

	// DurationMs is the duration of the run in milliseconds (nullable)
	DurationMs *int64 `parquet:"duration_ms,optional,snappy"`

	// TotalVectors is the number of vectors scored in this run (nullable)
	TotalVectors *int32 `parquet:"total_vectors,optional,snappy"`

	// ConfigParams contains the JSON-encoded configuration parameters (nullable)
	ConfigParams *string `parquet:"config_params,optional,snappy"`
}

// Score represents one scored vector.
// This struct maps to the rvss_scores database table.
type Score struct {
	RunID      string    `parquet:"run_id,snappy"`
	Seq        int32     `parquet:"seq,snappy"`
	RecordedAt time.Time `parquet:"recorded_at,snappy"`

	// System is the registered name of the scoring system
	System string `parquet:"system,snappy"`

	// Vector is the canonical vector string
	Vector string `parquet:"vector,snappy"`

	// Metrics is a JSON object of metric name to value token
	Metrics string `parquet:"metrics,snappy"`

	Base          float64 `parquet:"base,snappy"`
	Temporal      float64 `parquet:"temporal,snappy"`
	Environmental float64 `parquet:"environmental,snappy"`
	Severity      string  `parquet:"severity,snappy"`

	// Custom is the JSON-encoded result of a user-defined system (nullable)
	Custom *string `parquet:"custom,optional,snappy"`

	// Error is set when the vector could not be scored (nullable)
	Error *string `parquet:"error,optional,snappy"`
}

// WriteRunsParquet writes a slice of Run structs to a Parquet file.
func WriteRunsParquet(data []Run, outputPath string) error {
	return writeParquet(data, outputPath)
}

// WriteScoresParquet writes a slice of Score structs to a Parquet file.
func WriteScoresParquet(data []Score, outputPath string) error {
	return writeParquet(data, outputPath)
}

func writeParquet[T any](data []T, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// The schema is derived from the struct tags of T
	writer := parquet.NewGenericWriter[T](file)
	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}
	return nil
}

// ConvertRunRecords converts schema.RunRecord to Run for Parquet export.
func ConvertRunRecords(records []schema.RunRecord) []Run {
	result := make([]Run, len(records))
	for i, record := range records {
		result[i] = Run{
			RunID:        record.RunID,
			Command:      record.Command,
			StartTime:    record.StartTime,
			EndTime:      record.EndTime,
			DurationMs:   record.DurationMs,
			TotalVectors: record.TotalVectors,
			ConfigParams: record.ConfigParams,
		}
	}
	return result
}

// ConvertScoreRecords converts schema.ScoreRecord to Score for Parquet export.
func ConvertScoreRecords(records []schema.ScoreRecord) []Score {
	result := make([]Score, len(records))
	for i, record := range records {
		result[i] = Score{
			RunID:         record.RunID,
			Seq:           record.Seq,
			RecordedAt:    record.RecordedAt,
			System:        record.System,
			Vector:        record.Vector,
			Metrics:       record.Metrics,
			Base:          record.Base,
			Temporal:      record.Temporal,
			Environmental: record.Environmental,
			Severity:      record.Severity,
			Custom:        record.Custom,
		}
	}
	return result
}

// ConvertScoreResults converts freshly computed results to Score rows.
// Rows carry no run id and are numbered in input order.
func ConvertScoreResults(results []schema.ScoreResult, at time.Time) ([]Score, error) {
	rows := make([]Score, len(results))
	for i, res := range results {
		metrics, custom, err := EncodeResult(res)
		if err != nil {
			return nil, err
		}
		rows[i] = Score{
			Seq:           int32(i),
			RecordedAt:    at,
			System:        res.System,
			Vector:        res.Vector,
			Metrics:       metrics,
			Base:          res.Base,
			Temporal:      res.Temporal,
			Environmental: res.Environmental,
			Severity:      string(res.Severity),
			Custom:        custom,
		}
		if rows[i].Vector == "" {
			rows[i].Vector = res.Source
		}
		if res.Error != "" {
			msg := res.Error
			rows[i].Error = &msg
		}
	}
	return rows, nil
}

// EncodeResult returns the JSON encodings of a result's metrics and custom value.
// The custom encoding is nil for built-in systems.
func EncodeResult(res schema.ScoreResult) (string, *string, error) {
	metrics := res.Metrics
	if metrics == nil {
		metrics = map[string]string{}
	}
	m, err := json.Marshal(metrics)
	if err != nil {
		return "", nil, fmt.Errorf("failed to marshal metrics: %w", err)
	}
	if res.Custom == nil {
		return string(m), nil, nil
	}
	c, err := json.Marshal(res.Custom)
	if err != nil {
		return "", nil, fmt.Errorf("failed to marshal custom result: %w", err)
	}
	custom := string(c)
	return string(m), &custom, nil
}
