package shared

import (
	"fmt"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

// Supported database drivers.
const (
	DriverMySQL  = "mysql"
	DriverSQLite = "sqlite3"
)

// NewDatabase opens a connection for the configured driver and verifies it
// with a ping. For sqlite3 the path can be ":memory:" for an in-memory
// database. The returned handle is owned by the caller; components never
// open or close connections themselves.
func NewDatabase(cfg DatabaseConfig) (*sqlx.DB, error) {
	var dsn string
	switch cfg.Driver {
	case DriverMySQL:
		mc := mysql.NewConfig()
		mc.Net = "tcp"
		mc.Addr = fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
		mc.User = cfg.User
		mc.Passwd = cfg.Password
		mc.DBName = cfg.Name
		mc.ParseTime = true
		if cfg.ConnectTimeout > 0 {
			mc.Timeout = time.Duration(cfg.ConnectTimeout) * time.Second
		}
		dsn = mc.FormatDSN()
	case DriverSQLite:
		dsn = cfg.Path
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, cfg.Driver)
	}

	db, err := sqlx.Open(cfg.Driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// ConfigureDatabase sets connection pool settings for the database.
// Recommended for production use to limit connections and improve performance.
func ConfigureDatabase(db *sqlx.DB, maxOpenConns, maxIdleConns int) {
	db.SetMaxOpenConns(maxOpenConns)
	db.SetMaxIdleConns(maxIdleConns)
}

// VerifyConnection executes a round-trip query against the open
// connection, confirming the server answers queries and not just pings.
func VerifyConnection(db *sqlx.DB) error {
	var result int
	if err := db.Get(&result, "SELECT 1 + 1"); err != nil {
		return fmt.Errorf("connection check failed: %w", err)
	}
	if result != 2 {
		return fmt.Errorf("connection check returned unexpected result: %d", result)
	}
	return nil
}
