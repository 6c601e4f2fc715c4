package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"time"

	"github.com/huangsam/rvss/schema"
)

// Default values for configuration.
const (
	DefaultResultLimit = 0 // no limit
	MaxResultLimit     = 100000
	DefaultPrecision   = 1
)

// DefaultWorkers is the default number of concurrent workers to use.
var DefaultWorkers = runtime.GOMAXPROCS(0)

// DateTimeFormat is the default date time representation.
var DateTimeFormat = time.RFC3339

// Config holds the runtime configuration for a command.
// This struct remains the "final, validated" config.
type Config struct {
	ResultLimit int
	Workers     int
	Precision   int
	Output      schema.OutputMode
	OutputFile  string
	Width       int // Terminal width override (0 = auto-detect)

	Explain  bool // Include formula breakdowns
	Full     bool // Serialize default values too
	Prefix   bool // Always emit the version prefix, even for legacy systems
	Markdown bool // Render descriptions as markdown
	Record   bool // Record results in the history store

	Plugins     []string // CUE plugin files to register
	MetricsFile string   // Prometheus textfile written after batch runs

	HistoryBackend   schema.DatabaseBackend
	HistoryDBConnect string // Please use env var as this is plaintext

	UseColors bool // Enable colored severity labels in table output
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// --- Fields from rootCmd.PersistentFlags() ---
	Output           string   `mapstructure:"output"`
	OutputFile       string   `mapstructure:"output-file"`
	Precision        int      `mapstructure:"precision"`
	Width            int      `mapstructure:"width"`
	Color            string   `mapstructure:"color"`
	Prefix           bool     `mapstructure:"prefix"`
	Plugins          []string `mapstructure:"plugin"`
	HistoryBackend   string   `mapstructure:"history-backend"`
	HistoryDBConnect string   `mapstructure:"history-db-connect"`

	// --- Fields from calcCmd.Flags() and batchCmd.Flags() ---
	Explain     bool   `mapstructure:"explain"`
	Record      bool   `mapstructure:"record"`
	Limit       int    `mapstructure:"limit"`
	Workers     int    `mapstructure:"workers"`
	MetricsFile string `mapstructure:"metrics-file"`

	// --- Fields from parseCmd.Flags() and describeCmd.Flags() ---
	Full     bool `mapstructure:"full"`
	Markdown bool `mapstructure:"markdown"`
}

// Clone returns a deep copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	clone.Plugins = slices.Clone(c.Plugins)
	return &clone
}

// Params returns the configuration as a flat map for run bookkeeping.
// The history connection string is never included.
func (c *Config) Params() map[string]any {
	params := map[string]any{
		"output":    string(c.Output),
		"precision": c.Precision,
		"workers":   c.Workers,
		"explain":   c.Explain,
		"full":      c.Full,
		"prefix":    c.Prefix,
		"limit":     c.ResultLimit,
	}
	if len(c.Plugins) > 0 {
		params["plugins"] = slices.Clone(c.Plugins)
	}
	return params
}

// ProcessAndValidate validates the raw input and fills in the final Config.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := validateBackendConfigs(cfg, input); err != nil {
		return err
	}
	return validatePlugins(cfg, input)
}

// ValidateDatabaseConnectionString checks the minimal shape of a connection string for backend.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("history-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("history-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}

func validateBackendConfigs(cfg *Config, input *ConfigRawInput) error {
	backend := schema.DatabaseBackend(strings.ToLower(input.HistoryBackend))
	if backend == "" {
		backend = schema.NoneBackend
	}
	if _, ok := schema.ValidDatabaseBackends[backend]; !ok {
		return fmt.Errorf("invalid history backend '%s'. must be sqlite, mysql, postgresql, none", input.HistoryBackend)
	}
	if err := ValidateDatabaseConnectionString(backend, input.HistoryDBConnect); err != nil {
		return err
	}
	cfg.HistoryBackend = backend
	cfg.HistoryDBConnect = input.HistoryDBConnect
	if cfg.Record && backend == schema.NoneBackend {
		return fmt.Errorf("--record requires a history backend other than %s", schema.NoneBackend)
	}
	return nil
}

func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	// --- 0. Transfer simple non-validated fields from input -> cfg ---
	cfg.OutputFile = input.OutputFile
	cfg.Width = input.Width
	cfg.Explain = input.Explain
	cfg.Full = input.Full
	cfg.Prefix = input.Prefix
	cfg.Markdown = input.Markdown
	cfg.Record = input.Record
	cfg.MetricsFile = input.MetricsFile

	// Parse color flag
	color := input.Color
	if color == "" {
		color = "yes"
	}
	colors, err := ParseBoolString(color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	// --- 1. ResultLimit Validation ---
	if input.Limit < 0 || input.Limit > MaxResultLimit {
		return fmt.Errorf("limit cannot be negative or exceed %d (received %d)", MaxResultLimit, input.Limit)
	}
	cfg.ResultLimit = input.Limit

	// --- 2. Workers Validation ---
	if input.Workers <= 0 {
		return fmt.Errorf("workers must be greater than 0 (received %d)", input.Workers)
	}
	cfg.Workers = input.Workers

	// --- 3. Precision and Output Validation ---
	if input.Precision < 1 || input.Precision > 2 {
		return fmt.Errorf("precision must be 1 or 2 (received %d)", input.Precision)
	}
	cfg.Precision = input.Precision

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if cfg.Output == "" {
		cfg.Output = schema.TextOut
	}
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json, yaml, parquet", input.Output)
	}
	if cfg.Output == schema.ParquetOut && cfg.OutputFile == "" {
		return fmt.Errorf("parquet output requires --output-file")
	}

	return nil
}

func validatePlugins(cfg *Config, input *ConfigRawInput) error {
	cfg.Plugins = nil
	seen := make(map[string]struct{}, len(input.Plugins))
	for _, p := range input.Plugins {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		abs, err := filepath.Abs(p)
		if err != nil {
			return fmt.Errorf("invalid plugin path %q: %w", p, err)
		}
		if _, ok := seen[abs]; ok {
			continue
		}
		info, err := os.Stat(abs)
		if err != nil {
			return fmt.Errorf("plugin %q: %w", p, err)
		}
		if info.IsDir() {
			return fmt.Errorf("plugin %q is a directory", p)
		}
		seen[abs] = struct{}{}
		cfg.Plugins = append(cfg.Plugins, p)
	}
	return nil
}
