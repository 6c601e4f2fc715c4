package history

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/huangsam/rvss/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrate_NoneBackend(t *testing.T) {
	err := Migrate(schema.NoneBackend, "", -1)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "migrations are not supported for NoneBackend")
}

func TestMigrate_SQLite(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test_migration.db")
	var buf bytes.Buffer

	steps := []struct {
		target int
		output string
	}{
		{-1, "Successfully migrated from version 0 to version 2"},
		{-1, "already at the latest version"},
		{1, "Successfully migrated from version 2 to version 1"},
		{0, "Successfully rolled back from version 1 to version 0"},
		{0, "already at version 0"},
		{2, "Successfully migrated from version 0 to version 2"},
	}
	for _, step := range steps {
		buf.Reset()
		require.NoError(t, migrateTo(schema.SQLiteBackend, dbPath, step.target, &buf))
		assert.Contains(t, buf.String(), step.output)
	}
}

func TestMigrate_SQLiteInMemory(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, migrateTo(schema.SQLiteBackend, ":memory:", -1, &buf))
}

func TestMigrate_UnknownVersion(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test_migration.db")
	var buf bytes.Buffer
	assert.Error(t, migrateTo(schema.SQLiteBackend, dbPath, 9, &buf))
}
