package repositories

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"userseed/internal/models"
	"userseed/internal/shared"
)

// setupTestRepo creates a repository over an in-memory SQLite database
// pinned to a single connection.
func setupTestRepo(t *testing.T) *AccountRepository {
	t.Helper()

	db, err := shared.NewDatabase(shared.DatabaseConfig{Driver: shared.DriverSQLite, Path: ":memory:"})
	require.NoError(t, err)
	shared.ConfigureDatabase(db, 1, 1)
	t.Cleanup(func() { db.Close() })

	repo := NewAccountRepository(db)
	require.NoError(t, repo.EnsureSchema(context.Background()))
	return repo
}

func addAccount(t *testing.T, repo *AccountRepository, username, email, fullName string) int64 {
	t.Helper()
	id, err := repo.Add(context.Background(), username, email, fullName, "$2y$10$hash")
	require.NoError(t, err)
	return id
}

func TestAccountRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("Add and GetByID round-trip", func(t *testing.T) {
		repo := setupTestRepo(t)

		id, err := repo.Add(ctx, "johndoe", "john@example.com", "John Doe", "$2y$10$secret")
		require.NoError(t, err)
		assert.Positive(t, id)

		account, err := repo.GetByID(ctx, id)
		require.NoError(t, err)

		assert.Equal(t, id, account.ID)
		assert.Equal(t, "johndoe", account.Username)
		assert.Equal(t, "john@example.com", account.Email)
		require.NotNil(t, account.FullName)
		assert.Equal(t, "John Doe", *account.FullName)
		assert.Equal(t, "$2y$10$secret", account.PasswordHash)
		assert.True(t, account.IsActive)
		assert.False(t, account.CreatedAt.IsZero())
		assert.False(t, account.UpdatedAt.IsZero())
	})

	t.Run("Add rejects duplicate username and email", func(t *testing.T) {
		repo := setupTestRepo(t)
		addAccount(t, repo, "johndoe", "john@example.com", "John Doe")

		_, err := repo.Add(ctx, "johndoe", "other@example.com", "", "h")
		assert.ErrorIs(t, err, shared.ErrDuplicate)

		_, err = repo.Add(ctx, "other", "john@example.com", "", "h")
		assert.ErrorIs(t, err, shared.ErrDuplicate)
	})

	t.Run("GetByUsername", func(t *testing.T) {
		repo := setupTestRepo(t)
		id := addAccount(t, repo, "johndoe", "john@example.com", "John Doe")

		account, err := repo.GetByUsername(ctx, "johndoe")
		require.NoError(t, err)
		assert.Equal(t, id, account.ID)

		_, err = repo.GetByUsername(ctx, "nobody")
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("GetByID not found", func(t *testing.T) {
		repo := setupTestRepo(t)
		_, err := repo.GetByID(ctx, 999)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("Edit updates fields and refreshes updated_at", func(t *testing.T) {
		repo := setupTestRepo(t)
		id := addAccount(t, repo, "johndoe", "john@example.com", "John Doe")

		before, err := repo.GetByID(ctx, id)
		require.NoError(t, err)

		email := "x@y.com"
		updated, err := repo.Edit(ctx, id, models.AccountPatch{Email: &email})
		require.NoError(t, err)
		assert.True(t, updated)

		after, err := repo.GetByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, "x@y.com", after.Email)
		assert.Equal(t, "johndoe", after.Username)
		assert.False(t, after.UpdatedAt.Before(before.UpdatedAt))
	})

	t.Run("Edit with empty patch is a no-op", func(t *testing.T) {
		repo := setupTestRepo(t)
		id := addAccount(t, repo, "johndoe", "john@example.com", "John Doe")

		before, err := repo.GetByID(ctx, id)
		require.NoError(t, err)

		updated, err := repo.Edit(ctx, id, models.AccountPatch{})
		require.NoError(t, err)
		assert.False(t, updated)

		after, err := repo.GetByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, before, after)
	})

	t.Run("Edit on missing id reports false", func(t *testing.T) {
		repo := setupTestRepo(t)

		email := "x@y.com"
		updated, err := repo.Edit(ctx, 999, models.AccountPatch{Email: &email})
		require.NoError(t, err)
		assert.False(t, updated)
	})

	t.Run("Edit duplicate email is signaled", func(t *testing.T) {
		repo := setupTestRepo(t)
		addAccount(t, repo, "johndoe", "john@example.com", "")
		id := addAccount(t, repo, "janedoe", "jane@example.com", "")

		email := "john@example.com"
		_, err := repo.Edit(ctx, id, models.AccountPatch{Email: &email})
		assert.ErrorIs(t, err, shared.ErrDuplicate)
	})

	t.Run("List paginates active accounts by ascending id", func(t *testing.T) {
		repo := setupTestRepo(t)

		var ids []int64
		for i := 1; i <= 6; i++ {
			ids = append(ids, addAccount(t, repo,
				fmt.Sprintf("user%d", i), fmt.Sprintf("user%d@example.com", i), ""))
		}
		deactivated, err := repo.Deactivate(ctx, ids[5])
		require.NoError(t, err)
		require.True(t, deactivated)

		page, err := repo.List(ctx, ListOptions{Limit: 2, ActiveOnly: true})
		require.NoError(t, err)
		require.Len(t, page, 2)
		assert.Equal(t, ids[0], page[0].ID)
		assert.Equal(t, ids[1], page[1].ID)
		assert.True(t, page[0].IsActive)
		assert.True(t, page[1].IsActive)

		next, err := repo.List(ctx, ListOptions{Limit: 2, Offset: 2, ActiveOnly: true})
		require.NoError(t, err)
		require.Len(t, next, 2)
		assert.Equal(t, ids[2], next[0].ID)

		all, err := repo.List(ctx, ListOptions{Limit: 100})
		require.NoError(t, err)
		assert.Len(t, all, 6)

		active, err := repo.List(ctx, DefaultListOptions())
		require.NoError(t, err)
		assert.Len(t, active, 5)
	})

	t.Run("List zero limit uses the default page size", func(t *testing.T) {
		repo := setupTestRepo(t)
		addAccount(t, repo, "user1", "user1@example.com", "")

		page, err := repo.List(ctx, ListOptions{})
		require.NoError(t, err)
		assert.Len(t, page, 1)
	})

	t.Run("Search matches username, email, or full name", func(t *testing.T) {
		repo := setupTestRepo(t)
		addAccount(t, repo, "johndoe", "jd@example.com", "")
		addAccount(t, repo, "alice", "john@x.com", "Alice A")
		addAccount(t, repo, "bob", "bob@example.com", "John Smith")
		addAccount(t, repo, "carol", "carol@example.com", "Carol C")

		matches, err := repo.Search(ctx, "john")
		require.NoError(t, err)
		assert.Len(t, matches, 3)

		none, err := repo.Search(ctx, "zzz")
		require.NoError(t, err)
		assert.Empty(t, none)
	})

	t.Run("Delete removes the row", func(t *testing.T) {
		repo := setupTestRepo(t)
		id := addAccount(t, repo, "johndoe", "john@example.com", "")

		deleted, err := repo.Delete(ctx, id)
		require.NoError(t, err)
		assert.True(t, deleted)

		_, err = repo.GetByID(ctx, id)
		assert.ErrorIs(t, err, shared.ErrNotFound)

		deleted, err = repo.Delete(ctx, id)
		require.NoError(t, err)
		assert.False(t, deleted)
	})

	t.Run("Deactivate and Activate flip is_active", func(t *testing.T) {
		repo := setupTestRepo(t)
		id := addAccount(t, repo, "johndoe", "john@example.com", "")

		updated, err := repo.Deactivate(ctx, id)
		require.NoError(t, err)
		assert.True(t, updated)

		account, err := repo.GetByID(ctx, id)
		require.NoError(t, err)
		assert.False(t, account.IsActive)

		updated, err = repo.Activate(ctx, id)
		require.NoError(t, err)
		assert.True(t, updated)

		account, err = repo.GetByID(ctx, id)
		require.NoError(t, err)
		assert.True(t, account.IsActive)
	})

	t.Run("EnsureSchema is idempotent", func(t *testing.T) {
		repo := setupTestRepo(t)
		require.NoError(t, repo.EnsureSchema(ctx))
	})
}
