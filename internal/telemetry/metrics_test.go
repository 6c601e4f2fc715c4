package telemetry

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/huangsam/rvss/schema"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMetrics(t *testing.T) {
	m := NewMetrics()

	assert.NotNil(t, m.VectorsTotal)
	assert.NotNil(t, m.SeverityTotal)
	assert.NotNil(t, m.ScoreValue)
	assert.NotNil(t, m.FilesRead)
	assert.NotNil(t, m.BatchDuration)
	assert.NotNil(t, m.Registry())
}

func TestObserve(t *testing.T) {
	m := NewMetrics()

	m.Observe(schema.ScoreResult{System: "cvss31", Environmental: 9.8, Severity: schema.SeverityCritical})
	m.Observe(schema.ScoreResult{System: "cvss31", Environmental: 5.3, Severity: schema.SeverityMedium})
	m.Observe(schema.ScoreResult{System: "cvss31", Error: "unknown metric value"})
	m.Observe(schema.ScoreResult{Error: "unknown scoring system"})
	m.Observe(schema.ScoreResult{System: "dread", Custom: 2.2})

	assert.Equal(t, 2.0, testutil.ToFloat64(m.VectorsTotal.WithLabelValues("cvss31", OutcomeScored)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.VectorsTotal.WithLabelValues("cvss31", OutcomeFailed)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.VectorsTotal.WithLabelValues("unknown", OutcomeFailed)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.VectorsTotal.WithLabelValues("dread", OutcomeScored)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SeverityTotal.WithLabelValues("cvss31", string(schema.SeverityCritical))))
	assert.Equal(t, 1, testutil.CollectAndCount(m.ScoreValue))

	totals, err := m.Totals()
	require.NoError(t, err)
	assert.Equal(t, map[string]int{OutcomeScored: 3, OutcomeFailed: 2}, totals)
}

func TestWriteToTextfile(t *testing.T) {
	m := NewMetrics()
	m.Observe(schema.ScoreResult{System: "rvss1", Environmental: 7.3, Severity: schema.SeverityHigh})
	m.ObserveBatch(2, 1500*time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.FilesRead))
	assert.Equal(t, 1.5, testutil.ToFloat64(m.BatchDuration))

	path := filepath.Join(t.TempDir(), "rvss.prom")
	require.NoError(t, m.WriteToTextfile(path))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(content)
	assert.Contains(t, text, `rvss_vectors_total{outcome="scored",system="rvss1"} 1`)
	assert.Contains(t, text, "rvss_files_read_total 2")
	assert.Contains(t, text, "rvss_environmental_score_count")

	err = m.WriteToTextfile(filepath.Join(t.TempDir(), "missing", "rvss.prom"))
	assert.Error(t, err)
}
