package cmd

import (
	"fmt"
	"os"

	"github.com/huangsam/rvss/internal/contract"
	"github.com/huangsam/rvss/internal/history"
	"github.com/huangsam/rvss/internal/outwriter"
	"github.com/huangsam/rvss/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// historyConnection loads the backend settings used by every history subcommand.
func historyConnection() (schema.DatabaseBackend, string, error) {
	if err := loadConfigFile(); err != nil {
		return "", "", err
	}

	backend := schema.DatabaseBackend(viper.GetString("history-backend"))
	if backend == "" {
		backend = schema.NoneBackend
	}
	connStr := viper.GetString("history-db-connect")

	// Basic validation for database backends
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return "", "", err
	}
	if backend == schema.NoneBackend {
		return "", "", fmt.Errorf("history backend is %s; set --history-backend to sqlite, mysql or postgresql", schema.NoneBackend)
	}
	return backend, connStr, nil
}

// historySetup loads minimal configuration and opens the history store.
// History subcommands skip the registry and plugin setup of the scoring commands.
func historySetup(_ *cobra.Command, _ []string) error {
	backend, connStr, err := historyConnection()
	if err != nil {
		return err
	}

	store, err := history.NewStore(backend, connStr)
	if err != nil {
		return fmt.Errorf("failed to initialize history: %w", err)
	}
	historyStore = store

	cfg.HistoryBackend = backend
	cfg.HistoryDBConnect = connStr
	cfg.OutputFile = viper.GetString("output-file")
	cfg.Output = schema.OutputMode(viper.GetString("output"))
	return nil
}

// historyMigrateSetup does NOT open the store, so migrations can run on a fresh database.
func historyMigrateSetup(_ *cobra.Command, _ []string) error {
	backend, connStr, err := historyConnection()
	if err != nil {
		return err
	}

	// For SQLite backend with empty connection string, use default path
	if backend == schema.SQLiteBackend && connStr == "" {
		connStr = contract.GetHistoryDBFilePath()
	}

	cfg.HistoryBackend = backend
	cfg.HistoryDBConnect = connStr
	return nil
}

// historyCmd focused on history data management.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Manage recorded scoring runs and exports",
	Long: `Manage the history of scoring runs recorded with --record.

Every recorded run stores:
- Run metadata (command, timestamp, configuration, duration)
- One row per scored vector with its system, canonical vector and metrics
- The Base, Temporal and Environmental scores and the severity rating

Supported backends: SQLite, MySQL, PostgreSQL, or None (disabled, default)

Subcommands:
  status  - Show history statistics
  export  - Export data to Parquet for analytics
  clear   - Remove all recorded runs
  migrate - Run database schema migrations

Examples:
  # Check history status
  rvss history status --history-backend sqlite

  # Export for analysis in pandas/DuckDB
  rvss history export --history-backend sqlite --output-file rvss-data`,
}

// historyStatusCmd shows history status.
var historyStatusCmd = &cobra.Command{
	Use:     "status",
	Short:   "Display history statistics and connection details",
	PreRunE: historySetup,
	Run: func(_ *cobra.Command, _ []string) {
		status, err := historyStore.GetStatus()
		if err != nil {
			closeHistory()
			contract.LogFatal("Failed to get history status", err)
		}
		if err := outwriter.NewOutWriter().WriteHistoryStatus(status, cfg); err != nil {
			closeHistory()
			contract.LogFatal("Failed to print history status", err)
		}
	},
}

// historyClearCmd clears the history data.
var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all recorded runs and scores",
	Long: `Delete all recorded runs and their scores.

WARNING: This action cannot be undone. Consider exporting data first.

Examples:
  rvss history export --history-backend sqlite --output-file backup
  rvss history clear --history-backend sqlite`,
	PreRunE: historySetup,
	Run: func(_ *cobra.Command, _ []string) {
		if err := historyStore.Clear(); err != nil {
			closeHistory()
			contract.LogFatal("Failed to clear history data", err)
		}
		fmt.Println("History data cleared successfully.")
	},
}

// historyExportCmd exports history data to Parquet files.
var historyExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export recorded runs to Parquet for BI tools and analytics",
	Long: `Export all recorded data to two Parquet files next to --output-file:
<output-file>.runs.parquet and <output-file>.scores.parquet.

Requires: --output-file parameter

Examples:
  rvss history export --history-backend sqlite --output-file rvss-data
  duckdb -c "SELECT system, avg(environmental) FROM read_parquet('rvss-data.scores.parquet') GROUP BY 1"`,
	PreRunE: historySetup,
	Run: func(_ *cobra.Command, _ []string) {
		if _, err := history.Export(historyStore, cfg.OutputFile, os.Stdout); err != nil {
			closeHistory()
			contract.LogFatal("Failed to export history data", err)
		}
	},
}

// historyMigrateCmd runs database migrations for the history store.
var historyMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database schema migrations (upgrades/downgrades)",
	Long: `Manage database schema versions for the history store.

By default, migrates to the latest version. Use --target-version for specific versions.

Examples:
  # Migrate to latest version (default)
  rvss history migrate --history-backend postgresql --history-db-connect "$RVSS_HISTORY_DB_CONNECT"

  # Rollback to the initial state
  rvss history migrate --history-backend sqlite --target-version 0`,
	PreRunE: historyMigrateSetup,
	Run: func(_ *cobra.Command, _ []string) {
		targetVersion := viper.GetInt("target-version")
		if err := history.Migrate(cfg.HistoryBackend, cfg.HistoryDBConnect, targetVersion); err != nil {
			contract.LogFatal("Failed to run migrations", err)
		}
	},
}
