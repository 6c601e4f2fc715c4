package cmd

import (
	"bytes"
	"testing"

	"github.com/huangsam/rvss/schema"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommandTree(t *testing.T) {
	var names []string
	for _, c := range rootCmd.Commands() {
		names = append(names, c.Name())
	}
	for _, want := range []string{"calc", "parse", "systems", "describe", "build", "batch", "history", "mcp", "version"} {
		assert.Contains(t, names, want)
	}

	var sub []string
	for _, c := range historyCmd.Commands() {
		sub = append(sub, c.Name())
	}
	assert.ElementsMatch(t, []string{"status", "clear", "export", "migrate"}, sub)
}

func TestVersionListsSystems(t *testing.T) {
	var buf bytes.Buffer
	versionCmd.SetOut(&buf)
	t.Cleanup(func() { versionCmd.SetOut(nil) })

	versionCmd.Run(versionCmd, nil)

	out := buf.String()
	assert.Contains(t, out, "rvss CLI")
	assert.Contains(t, out, "cvss2   CVSS:2.0 (prefix optional)")
	assert.Contains(t, out, "cvss31  CVSS:3.1\n")
	assert.Contains(t, out, "rvss1   RVSS:1.0\n")
}

func TestCommandFlags(t *testing.T) {
	for _, name := range []string{"output", "output-file", "precision", "plugin", "history-backend", "history-db-connect", "config"} {
		assert.NotNil(t, rootCmd.PersistentFlags().Lookup(name), name)
	}
	assert.NotNil(t, calcCmd.Flags().Lookup("explain"))
	assert.NotNil(t, batchCmd.Flags().Lookup("metrics-file"))
	assert.NotNil(t, parseCmd.Flags().Lookup("full"))
	assert.NotNil(t, describeCmd.Flags().Lookup("markdown"))
	assert.Nil(t, parseCmd.Flags().Lookup("record"))
}

func TestHistoryConnection(t *testing.T) {
	t.Cleanup(viper.Reset)
	t.Chdir(t.TempDir())

	viper.Set("history-backend", "")
	_, _, err := historyConnection()
	assert.ErrorContains(t, err, "history backend is none")

	viper.Set("history-backend", "mysql")
	viper.Set("history-db-connect", "")
	_, _, err = historyConnection()
	assert.Error(t, err)

	viper.Set("history-backend", "sqlite")
	viper.Set("history-db-connect", ":memory:")
	backend, connStr, err := historyConnection()
	require.NoError(t, err)
	assert.Equal(t, schema.SQLiteBackend, backend)
	assert.Equal(t, ":memory:", connStr)
}
