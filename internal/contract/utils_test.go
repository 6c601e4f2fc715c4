package contract

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/huangsam/rvss/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetPlainLabel(t *testing.T) {
	assert.Equal(t, "Critical", GetPlainLabel(schema.SeverityCritical))
	assert.Equal(t, "None", GetPlainLabel(schema.SeverityNone))
	assert.Equal(t, "-", GetPlainLabel(""))
}

func TestGetColorLabel(t *testing.T) {
	prev := color.NoColor
	color.NoColor = false
	t.Cleanup(func() { color.NoColor = prev })

	for _, sev := range []schema.Severity{
		schema.SeverityNone, schema.SeverityLow, schema.SeverityMedium, schema.SeverityHigh, schema.SeverityCritical,
	} {
		label := GetColorLabel(sev)
		assert.Contains(t, label, string(sev))
		assert.Contains(t, label, "\x1b[")
	}
	assert.Equal(t, "-", GetColorLabel(""))
}

func TestTruncateVector(t *testing.T) {
	tests := []struct {
		input    string
		width    int
		expected string
	}{
		{"CVSS:3.0/AV:N", 40, "CVSS:3.0/AV:N"},
		{"CVSS:3.0/AV:N/AC:L", 10, "CVSS:3..."},
		{"CVSS:3.0/AV:N", 3, "CVSS:3.0/AV:N"},
	}
	for _, tt := range tests {
		got := TruncateVector(tt.input, tt.width)
		assert.Equal(t, tt.expected, got)
		if tt.width > 3 {
			assert.LessOrEqual(t, len([]rune(got)), tt.width)
		}
	}
}

func TestParseBoolString(t *testing.T) {
	for _, s := range []string{"yes", "TRUE", "1"} {
		v, err := ParseBoolString(s)
		require.NoError(t, err)
		assert.True(t, v)
	}
	for _, s := range []string{"no", "False", "0"} {
		v, err := ParseBoolString(s)
		require.NoError(t, err)
		assert.False(t, v)
	}
	_, err := ParseBoolString("maybe")
	assert.Error(t, err)
}

func TestGetHistoryDBFilePath(t *testing.T) {
	path := GetHistoryDBFilePath()
	assert.Equal(t, ".rvss_history.db", filepath.Base(path))
}

func TestSelectOutputFile(t *testing.T) {
	f, err := SelectOutputFile("")
	require.NoError(t, err)
	assert.Same(t, os.Stdout, f)

	path := filepath.Join(t.TempDir(), "out.txt")
	f, err = SelectOutputFile(path)
	require.NoError(t, err)
	assert.Equal(t, path, f.Name())
	require.NoError(t, f.Close())
}
