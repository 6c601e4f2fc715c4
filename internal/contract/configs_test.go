package contract

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/huangsam/rvss/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validInput() *ConfigRawInput {
	return &ConfigRawInput{
		Output:    "text",
		Precision: 1,
		Workers:   4,
		Color:     "no",
	}
}

func TestProcessAndValidate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*ConfigRawInput)
		expectError bool
	}{
		{
			name:   "valid minimal config",
			mutate: func(*ConfigRawInput) {},
		},
		{
			name:   "empty output defaults to text",
			mutate: func(in *ConfigRawInput) { in.Output = "" },
		},
		{
			name:        "invalid output",
			mutate:      func(in *ConfigRawInput) { in.Output = "xml" },
			expectError: true,
		},
		{
			name:        "parquet without output file",
			mutate:      func(in *ConfigRawInput) { in.Output = "parquet" },
			expectError: true,
		},
		{
			name: "parquet with output file",
			mutate: func(in *ConfigRawInput) {
				in.Output = "parquet"
				in.OutputFile = "scores.parquet"
			},
		},
		{
			name:        "precision too high",
			mutate:      func(in *ConfigRawInput) { in.Precision = 3 },
			expectError: true,
		},
		{
			name:        "zero workers",
			mutate:      func(in *ConfigRawInput) { in.Workers = 0 },
			expectError: true,
		},
		{
			name:        "negative limit",
			mutate:      func(in *ConfigRawInput) { in.Limit = -1 },
			expectError: true,
		},
		{
			name:        "invalid color",
			mutate:      func(in *ConfigRawInput) { in.Color = "maybe" },
			expectError: true,
		},
		{
			name:        "invalid backend",
			mutate:      func(in *ConfigRawInput) { in.HistoryBackend = "redis" },
			expectError: true,
		},
		{
			name:        "mysql backend without connection string",
			mutate:      func(in *ConfigRawInput) { in.HistoryBackend = string(schema.MySQLBackend) },
			expectError: true,
		},
		{
			name: "mysql backend with connection string",
			mutate: func(in *ConfigRawInput) {
				in.HistoryBackend = string(schema.MySQLBackend)
				in.HistoryDBConnect = "user:pass@tcp(localhost:3306)/rvss"
			},
		},
		{
			name:        "postgresql backend without connection string",
			mutate:      func(in *ConfigRawInput) { in.HistoryBackend = string(schema.PostgreSQLBackend) },
			expectError: true,
		},
		{
			name:        "record without backend",
			mutate:      func(in *ConfigRawInput) { in.Record = true },
			expectError: true,
		},
		{
			name: "record with sqlite",
			mutate: func(in *ConfigRawInput) {
				in.Record = true
				in.HistoryBackend = "SQLite"
			},
		},
		{
			name:        "missing plugin",
			mutate:      func(in *ConfigRawInput) { in.Plugins = []string{"does-not-exist.cue"} },
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validInput()
			tt.mutate(input)

			cfg := &Config{}
			err := ProcessAndValidate(cfg, input)
			if tt.expectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, input.Workers, cfg.Workers)
			assert.Equal(t, input.Precision, cfg.Precision)
			assert.NotEmpty(t, cfg.Output)
			assert.NotEmpty(t, cfg.HistoryBackend)
		})
	}
}

func TestProcessAndValidatePlugins(t *testing.T) {
	dir := t.TempDir()
	plugin := filepath.Join(dir, "dread.cue")
	require.NoError(t, os.WriteFile(plugin, []byte(`name: "dread"`), 0o600))

	input := validInput()
	input.Plugins = []string{plugin, " ", plugin}

	cfg := &Config{}
	require.NoError(t, ProcessAndValidate(cfg, input))
	assert.Equal(t, []string{plugin}, cfg.Plugins)

	input.Plugins = []string{dir}
	assert.Error(t, ProcessAndValidate(cfg, input))
}

func TestConfigClone(t *testing.T) {
	cfg := &Config{Plugins: []string{"a.cue"}, Precision: 2}
	clone := cfg.Clone()
	clone.Plugins[0] = "b.cue"
	clone.Precision = 1

	assert.Equal(t, "a.cue", cfg.Plugins[0])
	assert.Equal(t, 2, cfg.Precision)
}

func TestConfigParams(t *testing.T) {
	cfg := &Config{Output: schema.JSONOut, Precision: 2, HistoryDBConnect: "secret"}
	params := cfg.Params()
	assert.Equal(t, "json", params["output"])
	assert.Equal(t, 2, params["precision"])
	assert.NotContains(t, params, "plugins")
	for _, v := range params {
		assert.NotEqual(t, "secret", v)
	}
}

func TestValidateDatabaseConnectionString(t *testing.T) {
	tests := []struct {
		backend schema.DatabaseBackend
		conn    string
		ok      bool
	}{
		{schema.SQLiteBackend, "", true},
		{schema.NoneBackend, "", true},
		{schema.MySQLBackend, "user:pass@tcp(localhost:3306)/rvss", true},
		{schema.MySQLBackend, "user:pass@localhost", false},
		{schema.PostgreSQLBackend, "host=localhost dbname=rvss", true},
		{schema.PostgreSQLBackend, "host=localhost", false},
		{schema.PostgreSQLBackend, "dbname=rvss", false},
	}
	for _, tt := range tests {
		t.Run(string(tt.backend)+"/"+tt.conn, func(t *testing.T) {
			err := ValidateDatabaseConnectionString(tt.backend, tt.conn)
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}
