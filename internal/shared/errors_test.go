package shared

import (
	"errors"
	"fmt"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsDuplicate(t *testing.T) {
	t.Run("mysql duplicate entry", func(t *testing.T) {
		err := &mysql.MySQLError{Number: 1062, Message: "Duplicate entry 'x' for key 'email'"}
		assert.True(t, IsDuplicate(err))
		assert.True(t, IsDuplicate(fmt.Errorf("insert failed: %w", err)))
	})

	t.Run("other mysql errors", func(t *testing.T) {
		err := &mysql.MySQLError{Number: 1146, Message: "Table 'users' doesn't exist"}
		assert.False(t, IsDuplicate(err))
	})

	t.Run("sqlite unique violation", func(t *testing.T) {
		db, err := NewDatabase(DatabaseConfig{Driver: DriverSQLite, Path: ":memory:"})
		require.NoError(t, err)
		defer db.Close()
		ConfigureDatabase(db, 1, 1)

		_, err = db.Exec("CREATE TABLE t (v TEXT UNIQUE)")
		require.NoError(t, err)
		_, err = db.Exec("INSERT INTO t (v) VALUES ('a')")
		require.NoError(t, err)

		_, err = db.Exec("INSERT INTO t (v) VALUES ('a')")
		require.Error(t, err)
		assert.True(t, IsDuplicate(err))
	})

	t.Run("unrelated errors", func(t *testing.T) {
		assert.False(t, IsDuplicate(errors.New("connection refused")))
		assert.False(t, IsDuplicate(nil))
	})
}
