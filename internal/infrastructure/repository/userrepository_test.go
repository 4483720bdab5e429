package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gavel/internal/domain/user"
)

func TestUserRepository_GetByID(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db, nopLogger{})
	ctx := context.Background()

	userID := createTestUser(t, db, "alice@example.com", 50)

	t.Run("existing user", func(t *testing.T) {
		found, err := repo.GetByID(ctx, userID)
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, "alice@example.com", found.Email())
		assert.Equal(t, 50, found.Credits())
	})

	t.Run("unknown user returns nil", func(t *testing.T) {
		found, err := repo.GetByID(ctx, 99999)
		require.NoError(t, err)
		assert.Nil(t, found)
	})
}

func TestUserRepository_GetCredits(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db, nopLogger{})
	ctx := context.Background()

	userID := createTestUser(t, db, "bob@example.com", 120)

	credits, err := repo.GetCredits(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 120, credits)

	_, err = repo.GetCredits(ctx, 99999)
	assert.ErrorIs(t, err, user.ErrUserNotFound)
}

func TestUserRepository_SetCredits(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db, nopLogger{})
	ctx := context.Background()

	userID := createTestUser(t, db, "carol@example.com", 10)

	t.Run("overwrites balance", func(t *testing.T) {
		require.NoError(t, repo.SetCredits(ctx, userID, 300))

		credits, err := repo.GetCredits(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, 300, credits)
	})

	t.Run("negative clamps to zero", func(t *testing.T) {
		require.NoError(t, repo.SetCredits(ctx, userID, -40))

		credits, err := repo.GetCredits(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, 0, credits)
	})

	t.Run("unknown user", func(t *testing.T) {
		err := repo.SetCredits(ctx, 99999, 10)
		assert.ErrorIs(t, err, user.ErrUserNotFound)
	})
}

func TestUserRepository_AddCredits(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db, nopLogger{})
	ctx := context.Background()

	userID := createTestUser(t, db, "dave@example.com", 25)

	require.NoError(t, repo.AddCredits(ctx, userID, 75))

	credits, err := repo.GetCredits(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 100, credits)

	t.Run("non-positive delta is a no-op", func(t *testing.T) {
		require.NoError(t, repo.AddCredits(ctx, userID, 0))
		require.NoError(t, repo.AddCredits(ctx, userID, -5))

		credits, err := repo.GetCredits(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, 100, credits)
	})
}
