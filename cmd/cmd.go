// Package cmd defines the command-line interface for rvss.
package cmd

import (
	"github.com/huangsam/rvss/internal/contract"
	"github.com/huangsam/rvss/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(calcCmd)
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(systemsCmd)
	rootCmd.AddCommand(describeCmd)
	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(batchCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(historyCmd)

	// Add the history subcommands to the parent history command
	historyCmd.AddCommand(historyStatusCmd)
	historyCmd.AddCommand(historyClearCmd)
	historyCmd.AddCommand(historyExportCmd)
	historyCmd.AddCommand(historyMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json or yaml or parquet")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for numeric columns")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().Bool("prefix", false, "Always emit the version prefix, even for CVSS v2 vectors")
	rootCmd.PersistentFlags().StringSlice("plugin", nil, "CUE file defining an extra scoring system (repeatable)")
	rootCmd.PersistentFlags().String("history-backend", string(schema.NoneBackend), "History backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("history-db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Flags shared by the scoring commands are bound to Viper in sharedSetupWrapper,
	// once the running command is known.
	for _, c := range []*cobra.Command{calcCmd, batchCmd, buildCmd} {
		c.Flags().Bool("explain", false, "Print the intermediate subscores of each formula")
		c.Flags().Bool("record", false, "Record results in the history store")
	}
	for _, c := range []*cobra.Command{calcCmd, batchCmd} {
		c.Flags().IntP("limit", "l", contract.DefaultResultLimit, "Number of results to display (0 = all)")
	}
	for _, c := range []*cobra.Command{parseCmd, buildCmd} {
		c.Flags().Bool("full", false, "Include metrics set to their default value")
	}
	calcCmd.Flags().Int("workers", contract.DefaultWorkers, "Number of concurrent workers")
	batchCmd.Flags().Int("workers", contract.DefaultWorkers, "Number of concurrent workers")
	batchCmd.Flags().String("metrics-file", "", "Write Prometheus metrics for the run to this textfile")
	describeCmd.Flags().Bool("markdown", false, "Render the metric reference as markdown")
	// Bind all flags of historyMigrateCmd to Viper
	historyMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(historyMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding history migrate flags", err)
	}
}
