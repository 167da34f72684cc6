// package repositories provides the persistence layer for account records.
package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"userseed/internal/models"
	"userseed/internal/shared"
)

const accountsTable = "accounts"

var accountColumns = []string{
	"id", "username", "email", "full_name", "password_hash", "created_at", "updated_at", "is_active",
}

const accountsTableMySQL = `
CREATE TABLE IF NOT EXISTS accounts (
	id INT AUTO_INCREMENT PRIMARY KEY,
	username VARCHAR(50) NOT NULL UNIQUE,
	email VARCHAR(100) NOT NULL UNIQUE,
	full_name VARCHAR(100),
	password_hash VARCHAR(255) NOT NULL,
	created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
	updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
	is_active BOOLEAN NOT NULL DEFAULT TRUE
)`

const accountsTableSQLite = `
CREATE TABLE IF NOT EXISTS accounts (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	username TEXT NOT NULL UNIQUE,
	email TEXT NOT NULL UNIQUE,
	full_name TEXT,
	password_hash TEXT NOT NULL,
	created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
	updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
	is_active BOOLEAN NOT NULL DEFAULT TRUE
)`

// AccountRepository persists [models.Account] records. It never swallows
// storage errors: callers branch on [shared.ErrNotFound] and
// [shared.ErrDuplicate] via errors.Is, and everything else arrives
// wrapped.
type AccountRepository struct {
	db *sqlx.DB
}

// NewAccountRepository creates a new [AccountRepository] with the given database connection
func NewAccountRepository(db *sqlx.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

// EnsureSchema creates the accounts table if it does not already exist.
func (r *AccountRepository) EnsureSchema(ctx context.Context) error {
	ddl := accountsTableSQLite
	if r.db.DriverName() == shared.DriverMySQL {
		ddl = accountsTableMySQL
	}
	if _, err := r.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("failed to create table %s: %w", accountsTable, err)
	}
	return nil
}

// Add inserts a new account and returns its id. A username or email that
// already exists yields an error wrapping [shared.ErrDuplicate].
func (r *AccountRepository) Add(ctx context.Context, username, email, fullName, passwordHash string) (int64, error) {
	query, args, err := sq.Insert(accountsTable).
		Columns("username", "email", "full_name", "password_hash").
		Values(username, email, fullName, passwordHash).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build insert: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		if shared.IsDuplicate(err) {
			return 0, fmt.Errorf("%w: username or email already taken", shared.ErrDuplicate)
		}
		return 0, fmt.Errorf("failed to insert account: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read inserted id: %w", err)
	}
	return id, nil
}

// GetByID retrieves an account by id, returning [shared.ErrNotFound] when
// no row matches.
func (r *AccountRepository) GetByID(ctx context.Context, id int64) (*models.Account, error) {
	return r.getBy(ctx, sq.Eq{"id": id})
}

// GetByUsername retrieves an account by username, returning
// [shared.ErrNotFound] when no row matches.
func (r *AccountRepository) GetByUsername(ctx context.Context, username string) (*models.Account, error) {
	return r.getBy(ctx, sq.Eq{"username": username})
}

func (r *AccountRepository) getBy(ctx context.Context, pred sq.Eq) (*models.Account, error) {
	query, args, err := sq.Select(accountColumns...).
		From(accountsTable).
		Where(pred).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	var account models.Account
	if err := r.db.GetContext(ctx, &account, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, fmt.Errorf("failed to query account: %w", err)
	}

	return &account, nil
}

// Edit applies the non-nil fields of patch to the account and refreshes
// updated_at. It reports true iff a row was updated. An empty patch
// issues no statement and reports false.
func (r *AccountRepository) Edit(ctx context.Context, id int64, patch models.AccountPatch) (bool, error) {
	if patch.Empty() {
		return false, nil
	}

	update := sq.Update(accountsTable)
	if patch.Email != nil {
		update = update.Set("email", *patch.Email)
	}
	if patch.FullName != nil {
		update = update.Set("full_name", *patch.FullName)
	}
	if patch.PasswordHash != nil {
		update = update.Set("password_hash", *patch.PasswordHash)
	}
	if patch.IsActive != nil {
		update = update.Set("is_active", *patch.IsActive)
	}

	query, args, err := update.
		Set("updated_at", sq.Expr("CURRENT_TIMESTAMP")).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build update: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		if shared.IsDuplicate(err) {
			return false, fmt.Errorf("%w: email already taken", shared.ErrDuplicate)
		}
		return false, fmt.Errorf("failed to update account: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get affected rows: %w", err)
	}
	return rows > 0, nil
}

// ListOptions control pagination and filtering for [AccountRepository.List].
type ListOptions struct {
	Limit      uint64
	Offset     uint64
	ActiveOnly bool
}

// DefaultListOptions returns the standard page: first 100 active accounts.
func DefaultListOptions() ListOptions {
	return ListOptions{Limit: 100, ActiveOnly: true}
}

// List returns a page of accounts ordered by ascending id. A zero limit
// falls back to the default page size.
func (r *AccountRepository) List(ctx context.Context, opts ListOptions) ([]models.Account, error) {
	if opts.Limit == 0 {
		opts.Limit = 100
	}

	builder := sq.Select(accountColumns...).From(accountsTable)
	if opts.ActiveOnly {
		builder = builder.Where(sq.Eq{"is_active": true})
	}

	query, args, err := builder.
		OrderBy("id ASC").
		Limit(opts.Limit).
		Offset(opts.Offset).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	accounts := []models.Account{}
	if err := r.db.SelectContext(ctx, &accounts, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	return accounts, nil
}

// Search returns accounts whose username, email, or full name contains
// term as a substring. Case sensitivity follows the storage engine's
// collation. No match is an empty slice, not an error.
func (r *AccountRepository) Search(ctx context.Context, term string) ([]models.Account, error) {
	pattern := "%" + term + "%"
	query, args, err := sq.Select(accountColumns...).
		From(accountsTable).
		Where(sq.Or{
			sq.Like{"username": pattern},
			sq.Like{"email": pattern},
			sq.Like{"full_name": pattern},
		}).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	accounts := []models.Account{}
	if err := r.db.SelectContext(ctx, &accounts, query, args...); err != nil {
		return nil, fmt.Errorf("failed to search accounts: %w", err)
	}
	return accounts, nil
}

// Delete removes an account permanently. It reports true iff a row was
// removed.
func (r *AccountRepository) Delete(ctx context.Context, id int64) (bool, error) {
	query, args, err := sq.Delete(accountsTable).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build delete: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("failed to delete account: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get affected rows: %w", err)
	}
	return rows > 0, nil
}

// Deactivate marks an account inactive instead of deleting it.
func (r *AccountRepository) Deactivate(ctx context.Context, id int64) (bool, error) {
	active := false
	return r.Edit(ctx, id, models.AccountPatch{IsActive: &active})
}

// Activate re-enables a previously deactivated account.
func (r *AccountRepository) Activate(ctx context.Context, id int64) (bool, error) {
	active := true
	return r.Edit(ctx, id, models.AccountPatch{IsActive: &active})
}
