package seeder

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"userseed/internal/shared"
)

// SeedTable is the name of the generation table. It is deliberately
// distinct from the accounts table managed by the repository.
const SeedTable = "seed_users"

const seedTableMySQL = `
CREATE TABLE seed_users (
	id INT AUTO_INCREMENT PRIMARY KEY,
	name VARCHAR(100) NOT NULL,
	email VARCHAR(100) NOT NULL UNIQUE,
	gender ENUM('Male', 'Female') NOT NULL,
	phone VARCHAR(30) NOT NULL,
	address TEXT NOT NULL,
	username VARCHAR(50) NOT NULL UNIQUE,
	date_of_birth DATE NOT NULL,
	signup_date DATE NOT NULL,
	is_active BOOLEAN NOT NULL DEFAULT TRUE
)`

const seedTableSQLite = `
CREATE TABLE seed_users (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL,
	email TEXT NOT NULL UNIQUE,
	gender TEXT NOT NULL CHECK (gender IN ('Male', 'Female')),
	phone TEXT NOT NULL,
	address TEXT NOT NULL,
	username TEXT NOT NULL UNIQUE,
	date_of_birth DATE NOT NULL,
	signup_date DATE NOT NULL,
	is_active BOOLEAN NOT NULL DEFAULT TRUE
)`

// EnsureSeedTable checks for the seed table and creates it if absent.
// Schema setup is a precondition for a generation run, so any error here
// is fatal and never retried.
func EnsureSeedTable(ctx context.Context, db *sqlx.DB) error {
	exists, err := tableExists(ctx, db, SeedTable)
	if err != nil {
		return fmt.Errorf("failed to check for table %s: %w", SeedTable, err)
	}
	if exists {
		return nil
	}

	ddl := seedTableSQLite
	if db.DriverName() == shared.DriverMySQL {
		ddl = seedTableMySQL
	}
	if _, err := db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("failed to create table %s: %w", SeedTable, err)
	}

	return nil
}

// DropSeedTable unconditionally drops the seed table. Destructive; used
// for resets and testing only.
func DropSeedTable(ctx context.Context, db *sqlx.DB) error {
	if _, err := db.ExecContext(ctx, "DROP TABLE "+SeedTable); err != nil {
		return fmt.Errorf("failed to drop table %s: %w", SeedTable, err)
	}
	return nil
}

func tableExists(ctx context.Context, db *sqlx.DB, name string) (bool, error) {
	var query string
	switch db.DriverName() {
	case shared.DriverMySQL:
		query = "SHOW TABLES LIKE ?"
	default:
		query = "SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?"
	}

	var found string
	err := db.QueryRowContext(ctx, query, name).Scan(&found)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
