package repository_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amirhossein-jamali/bank-portal/internal/domain/entity"
	errs "github.com/amirhossein-jamali/bank-portal/internal/domain/error"
	"github.com/amirhossein-jamali/bank-portal/internal/infrastructure/adapter/database"
	"github.com/amirhossein-jamali/bank-portal/internal/infrastructure/adapter/repository"
)

func TestUserRepository(t *testing.T) {
	ctx := context.Background()
	tdb := database.NewTestDBManager(t)
	repo := repository.NewUserRepository(tdb.Manager.DB(), tdb.TimeProvider, tdb.Logger)

	alice, err := entity.NewUser("Alice@Example.com", "alice", "hash", "Alice", "Smith", entity.RoleCustomer, tdb.TimeProvider)
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, alice))

	t.Run("should find users by email case-insensitively", func(t *testing.T) {
		found, err := repo.GetByEmail(ctx, "  ALICE@example.COM")
		require.NoError(t, err)
		assert.Equal(t, alice.ID, found.ID)
		assert.Equal(t, "alice", found.Username)
		assert.True(t, found.IsActive)
	})

	t.Run("should report missing users as not found", func(t *testing.T) {
		_, err := repo.GetByID(ctx, "missing")
		assert.ErrorIs(t, err, errs.ErrUserNotFound)

		_, err = repo.GetByEmail(ctx, "nobody@example.com")
		assert.ErrorIs(t, err, errs.ErrUserNotFound)
	})

	t.Run("should reject a duplicate email", func(t *testing.T) {
		dup, err := entity.NewUser("alice@example.com", "", "hash", "A", "S", entity.RoleCustomer, tdb.TimeProvider)
		require.NoError(t, err)

		assert.ErrorIs(t, repo.Create(ctx, dup), errs.ErrDuplicateKey)
	})

	t.Run("should reject a duplicate username", func(t *testing.T) {
		dup, err := entity.NewUser("other@example.com", "alice", "hash", "A", "S", entity.RoleCustomer, tdb.TimeProvider)
		require.NoError(t, err)

		assert.ErrorIs(t, repo.Create(ctx, dup), errs.ErrDuplicateKey)
	})

	t.Run("should allow many users without a username", func(t *testing.T) {
		for _, email := range []string{"n1@example.com", "n2@example.com"} {
			user, err := entity.NewUser(email, "", "hash", "No", "Name", entity.RoleCustomer, tdb.TimeProvider)
			require.NoError(t, err)
			require.NoError(t, repo.Create(ctx, user))
		}
	})

	t.Run("should check existence", func(t *testing.T) {
		exists, err := repo.ExistsByEmail(ctx, "alice@example.com")
		require.NoError(t, err)
		assert.True(t, exists)

		exists, err = repo.ExistsByUsername(ctx, "alice")
		require.NoError(t, err)
		assert.True(t, exists)

		exists, err = repo.ExistsByUsername(ctx, "")
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("should toggle the active flag", func(t *testing.T) {
		require.NoError(t, repo.SetActive(ctx, alice.ID, false))

		found, err := repo.GetByID(ctx, alice.ID)
		require.NoError(t, err)
		assert.False(t, found.IsActive)

		assert.ErrorIs(t, repo.SetActive(ctx, "missing", true), errs.ErrUserNotFound)
	})
}
