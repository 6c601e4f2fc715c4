package cmd

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/huangsam/rvss/core"
	"github.com/huangsam/rvss/core/plugin"
	"github.com/huangsam/rvss/internal/contract"
	"github.com/huangsam/rvss/internal/history"
	"github.com/huangsam/rvss/schema"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// All linker flags will be set by goreleaser infra at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// rootCtx is the root context for all operations.
var rootCtx = context.Background()

// cfg will hold the validated, final configuration.
var cfg = &contract.Config{}

// input holds the raw, unvalidated configuration from all sources (file, env, flags).
// Viper will unmarshal into this struct.
var input = &contract.ConfigRawInput{}

// registry holds the built-in systems plus any loaded plugins. It is frozen after setup.
var registry *core.Registry

// historyStore is only opened when results are recorded.
var historyStore contract.HistoryStore

// rootCmd is the command-line entrypoint for all other commands.
var rootCmd = &cobra.Command{
	Use:                "rvss",
	Short:              "Score CVSS and RVSS vulnerability vectors.",
	Long:               `RVSS parses, validates and scores CVSS v2, CVSS v3.0/v3.1 and RVSS v1 vectors, plus any scoring system defined in a CUE plugin.`,
	Version:            version,
	SilenceErrors:      true,
	SilenceUsage:       true,
	DisableSuggestions: true,
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
}

// initConfig reads in .env, config file and ENV variables if set.
func initConfig() {
	// A missing .env file is fine; anything else is worth a warning.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		contract.LogWarn("Failed to load .env file", err)
	}

	setConfigFile()

	// Set environment variable prefix
	viper.SetEnvPrefix("RVSS")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv() // Read in environment variables that match

	// Set defaults in Viper
	viper.SetDefault("limit", contract.DefaultResultLimit)
	viper.SetDefault("workers", contract.DefaultWorkers)
	viper.SetDefault("precision", contract.DefaultPrecision)
	viper.SetDefault("output", string(schema.TextOut))
	viper.SetDefault("history-backend", string(schema.NoneBackend))
	viper.SetDefault("history-db-connect", "")
	viper.SetDefault("color", "yes")
}

// setConfigFile points viper at --config or the default .rvss.yaml locations.
func setConfigFile() {
	if configFile := viper.GetString("config"); configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.SetConfigName(".rvss") // Name of config file (without extension)
		viper.SetConfigType("yaml")  // We'll use YAML format
		viper.AddConfigPath(".")     // Look in the current directory
		viper.AddConfigPath("$HOME") // Look in the home directory
	}
}

// loadConfigFile handles config file loading logic common to all setup functions.
func loadConfigFile() error {
	setConfigFile()
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			// Config file was found but another error was produced
			return fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found, which is fine; we'll use defaults/env/flags.
	}
	return nil
}

// sharedSetup unmarshals config, runs validation and builds the registry.
func sharedSetup(_ context.Context, _ *cobra.Command, _ []string) error {
	// 1. Read config file. This merges defaults, file, env, and flags.
	if err := loadConfigFile(); err != nil {
		return err
	}

	// 2. Unmarshal all resolved values from Viper into our raw input struct.
	if err := viper.Unmarshal(input); err != nil {
		return fmt.Errorf("unable to unmarshal config: %w", err)
	}

	// 3. Run all validation and complex parsing.
	if err := contract.ProcessAndValidate(cfg, input); err != nil {
		return err
	}

	// 4. Register built-in systems and plugins, then freeze the registry.
	reg := core.NewDefaultRegistry()
	if _, err := plugin.LoadAll(reg, cfg.Plugins); err != nil {
		return err
	}
	reg.Freeze()
	registry = reg

	// 5. Open the history store only when results are recorded.
	if cfg.Record {
		store, err := history.NewStore(cfg.HistoryBackend, cfg.HistoryDBConnect)
		if err != nil {
			return fmt.Errorf("failed to initialize history: %w", err)
		}
		historyStore = store
	}

	return nil
}

// sharedSetupWrapper wraps sharedSetup to provide context for Cobra's PreRunE.
func sharedSetupWrapper(cmd *cobra.Command, args []string) error {
	if err := viper.BindPFlags(cmd.Flags()); err != nil {
		return fmt.Errorf("error binding %s flags: %w", cmd.Name(), err)
	}
	return sharedSetup(rootCtx, cmd, args)
}

// runExecutor adapts a core executor to a cobra Run function.
func runExecutor(name string, exec core.ExecutorFunc) func(*cobra.Command, []string) {
	return func(_ *cobra.Command, args []string) {
		if err := exec(rootCtx, cfg, registry, historyStore, args); err != nil {
			closeHistory()
			contract.LogFatal(fmt.Sprintf("Cannot run %s", name), err)
		}
	}
}

// closeHistory closes the history store if one was opened.
func closeHistory() {
	if historyStore == nil {
		return
	}
	if err := historyStore.Close(); err != nil {
		contract.LogWarn("Failed to close history store", err)
	}
	historyStore = nil
}

// Execute runs the root command.
func Execute() error {
	defer closeHistory()
	return rootCmd.Execute()
}
