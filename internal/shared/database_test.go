package shared

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDatabase(t *testing.T) {
	t.Run("opens an in-memory sqlite database", func(t *testing.T) {
		db, err := NewDatabase(DatabaseConfig{Driver: DriverSQLite, Path: ":memory:"})
		require.NoError(t, err)
		defer db.Close()

		ConfigureDatabase(db, 1, 1)
		assert.NoError(t, VerifyConnection(db))
	})

	t.Run("opens a file-backed sqlite database", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "test.db")

		db, err := NewDatabase(DatabaseConfig{Driver: DriverSQLite, Path: path})
		require.NoError(t, err)
		defer db.Close()

		assert.NoError(t, VerifyConnection(db))
		assert.FileExists(t, path)
	})

	t.Run("rejects an unknown driver", func(t *testing.T) {
		_, err := NewDatabase(DatabaseConfig{Driver: "oracle"})
		assert.ErrorIs(t, err, ErrUnknownDriver)
	})

	t.Run("fails when the sqlite path is unwritable", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "missing", "dir", "test.db")
		_, err := NewDatabase(DatabaseConfig{Driver: DriverSQLite, Path: path})
		assert.Error(t, err)
	})
}
