package parquet

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/huangsam/rvss/schema"
	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readAll[T any](t *testing.T, path string) []T {
	t.Helper()
	file, err := os.Open(path)
	require.NoError(t, err)
	defer func() { _ = file.Close() }()

	reader := parquet.NewGenericReader[T](file)
	defer func() { _ = reader.Close() }()

	rows := make([]T, reader.NumRows())
	n, err := reader.Read(rows)
	if err != nil && err != io.EOF {
		require.NoError(t, err)
	}
	return rows[:n]
}

func TestStructTags(t *testing.T) {
	tests := []struct {
		name    string
		model   any
		columns []string
	}{
		{"run", new(Run), []string{"run_id", "command", "start_time", "end_time", "duration_ms", "total_vectors", "config_params"}},
		{"score", new(Score), []string{"run_id", "seq", "recorded_at", "system", "vector", "metrics", "base", "temporal", "environmental", "severity", "custom", "error"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sch := parquet.SchemaOf(tt.model)
			for _, col := range tt.columns {
				_, ok := sch.Lookup(col)
				assert.True(t, ok, "column %s should exist", col)
			}
		})
	}
}

func TestWriteRunsParquet(t *testing.T) {
	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	end := start.Add(1500 * time.Millisecond)
	duration := int64(1500)
	total := int32(3)
	params := `{"output":"json"}`

	records := []schema.RunRecord{
		{RunID: "a", Command: "calc", StartTime: start, EndTime: &end, DurationMs: &duration, TotalVectors: &total, ConfigParams: &params},
		{RunID: "b", Command: "batch", StartTime: start.Add(time.Hour)},
	}

	path := filepath.Join(t.TempDir(), "runs.parquet")
	require.NoError(t, WriteRunsParquet(ConvertRunRecords(records), path))

	rows := readAll[Run](t, path)
	require.Len(t, rows, 2)
	assert.Equal(t, "a", rows[0].RunID)
	assert.Equal(t, "calc", rows[0].Command)
	require.NotNil(t, rows[0].EndTime)
	assert.WithinDuration(t, end, *rows[0].EndTime, time.Nanosecond)
	require.NotNil(t, rows[0].DurationMs)
	assert.Equal(t, duration, *rows[0].DurationMs)
	require.NotNil(t, rows[0].ConfigParams)
	assert.Equal(t, params, *rows[0].ConfigParams)

	assert.Nil(t, rows[1].EndTime)
	assert.Nil(t, rows[1].DurationMs)
	assert.Nil(t, rows[1].TotalVectors)
	assert.Nil(t, rows[1].ConfigParams)
}

func TestWriteScoresParquet(t *testing.T) {
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	results := []schema.ScoreResult{
		{
			Vector: "CVSS:3.1/AV:N/AC:L/PR:N/UI:N/S:U/C:H/I:H/A:H", System: "cvss31",
			Base: 9.8, Temporal: 9.8, Environmental: 9.8, Severity: schema.SeverityCritical,
			Metrics: map[string]string{schema.AttackVector: "N"},
		},
		{Source: "DREAD:1.0/D:H", System: "dread", Custom: 2.2},
		{Source: "CVSS:3.0/AV:Z", System: "cvss3", Error: "unknown metric value"},
	}

	rows, err := ConvertScoreResults(results, at)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "scores.parquet")
	require.NoError(t, WriteScoresParquet(rows, path))

	got := readAll[Score](t, path)
	require.Len(t, got, 3)

	assert.Equal(t, int32(0), got[0].Seq)
	assert.Equal(t, 9.8, got[0].Base)
	assert.Equal(t, "Critical", got[0].Severity)
	assert.JSONEq(t, `{"attack_vector":"N"}`, got[0].Metrics)
	assert.Nil(t, got[0].Custom)
	assert.Nil(t, got[0].Error)

	require.NotNil(t, got[1].Custom)
	assert.Equal(t, "2.2", *got[1].Custom)
	assert.Equal(t, "DREAD:1.0/D:H", got[1].Vector)
	assert.Equal(t, "{}", got[1].Metrics)

	require.NotNil(t, got[2].Error)
	assert.Equal(t, "unknown metric value", *got[2].Error)
	assert.Equal(t, "CVSS:3.0/AV:Z", got[2].Vector)
}

func TestConvertScoreRecords(t *testing.T) {
	custom := `{"risk":3}`
	records := []schema.ScoreRecord{{RunID: "r", Seq: 4, System: "risk", Custom: &custom, Metrics: "{}"}}
	rows := ConvertScoreRecords(records)
	require.Len(t, rows, 1)
	assert.Equal(t, "r", rows[0].RunID)
	assert.Equal(t, int32(4), rows[0].Seq)
	assert.Equal(t, &custom, rows[0].Custom)
}

func TestWriteParquet_EmptyData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.parquet")
	require.NoError(t, WriteRunsParquet(nil, path))
	assert.Empty(t, readAll[Run](t, path))
}

func TestWriteParquet_InvalidPath(t *testing.T) {
	err := WriteScoresParquet(nil, filepath.Join(t.TempDir(), "missing", "scores.parquet"))
	assert.Error(t, err)
}
