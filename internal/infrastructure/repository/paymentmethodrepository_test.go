package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"gavel/internal/domain/billing"
	"gavel/internal/infrastructure/persistence/models"
)

func createTestMethod(t *testing.T, userID uint, token string) *billing.PaymentMethod {
	method, err := billing.NewPaymentMethod(userID, token, "Jane Doe", "12", "2027", "4242", "visa")
	require.NoError(t, err)
	return method
}

func TestPaymentMethodRepository_CreateAndGet(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPaymentMethodRepository(db, nopLogger{})
	ctx := context.Background()

	method := createTestMethod(t, 1, "pm_abc")
	require.NoError(t, repo.Create(ctx, method))
	assert.NotZero(t, method.ID())

	found, err := repo.GetByID(ctx, method.ID())
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "pm_abc", found.GatewayMethodID())
	assert.Equal(t, "4242", found.LastFourDigits())
}

func TestPaymentMethodRepository_GetDefaultByUserID(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPaymentMethodRepository(db, nopLogger{})
	ctx := context.Background()

	t.Run("no method returns nil", func(t *testing.T) {
		found, err := repo.GetDefaultByUserID(ctx, 5)
		require.NoError(t, err)
		assert.Nil(t, found)
	})

	t.Run("default active method is returned", func(t *testing.T) {
		method := createTestMethod(t, 5, "pm_default")
		method.MarkDefault()
		require.NoError(t, repo.Create(ctx, method))

		found, err := repo.GetDefaultByUserID(ctx, 5)
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, method.ID(), found.ID())
	})

	t.Run("deactivated default is not returned", func(t *testing.T) {
		method := createTestMethod(t, 6, "pm_gone")
		method.MarkDefault()
		require.NoError(t, repo.Create(ctx, method))

		method.Deactivate()
		require.NoError(t, repo.Update(ctx, method))

		found, err := repo.GetDefaultByUserID(ctx, 6)
		require.NoError(t, err)
		assert.Nil(t, found)
	})
}

func countDefaults(t *testing.T, db *gorm.DB, userID uint) int64 {
	t.Helper()
	var count int64
	require.NoError(t, db.Model(&models.PaymentMethodModel{}).
		Where("user_id = ? AND is_default = ?", userID, true).
		Count(&count).Error)
	return count
}

func TestPaymentMethodRepository_SetDefaultExclusively(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPaymentMethodRepository(db, nopLogger{})
	ctx := context.Background()

	first := createTestMethod(t, 9, "pm_first")
	require.NoError(t, repo.SetDefaultExclusively(ctx, first))
	assert.NotZero(t, first.ID())

	second := createTestMethod(t, 9, "pm_second")
	require.NoError(t, repo.SetDefaultExclusively(ctx, second))

	t.Run("exactly one default remains after insert", func(t *testing.T) {
		found, err := repo.GetDefaultByUserID(ctx, 9)
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, second.ID(), found.ID())
		assert.EqualValues(t, 1, countDefaults(t, db, 9))
	})

	t.Run("promoting an existing method demotes the rest", func(t *testing.T) {
		require.NoError(t, repo.SetDefaultExclusively(ctx, first))

		found, err := repo.GetDefaultByUserID(ctx, 9)
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, first.ID(), found.ID())
		assert.EqualValues(t, 1, countDefaults(t, db, 9))
	})

	t.Run("other users keep their default", func(t *testing.T) {
		other := createTestMethod(t, 10, "pm_other")
		require.NoError(t, repo.SetDefaultExclusively(ctx, other))

		require.NoError(t, repo.SetDefaultExclusively(ctx, second))

		kept, err := repo.GetDefaultByUserID(ctx, 10)
		require.NoError(t, err)
		require.NotNil(t, kept)
		assert.Equal(t, other.ID(), kept.ID())
	})

	t.Run("unknown method", func(t *testing.T) {
		ghost := createTestMethod(t, 9, "pm_ghost")
		require.NoError(t, ghost.SetID(777))

		err := repo.SetDefaultExclusively(ctx, ghost)
		assert.ErrorIs(t, err, billing.ErrPaymentMethodNotFound)
		assert.EqualValues(t, 1, countDefaults(t, db, 9))
	})
}

func TestPaymentMethodRepository_ListByUserID(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPaymentMethodRepository(db, nopLogger{})
	ctx := context.Background()

	active := createTestMethod(t, 3, "pm_active")
	require.NoError(t, repo.Create(ctx, active))

	removed := createTestMethod(t, 3, "pm_removed")
	require.NoError(t, repo.Create(ctx, removed))
	removed.Deactivate()
	require.NoError(t, repo.Update(ctx, removed))

	methods, err := repo.ListByUserID(ctx, 3)
	require.NoError(t, err)
	require.Len(t, methods, 1)
	assert.Equal(t, active.ID(), methods[0].ID())
}

func TestPaymentMethodRepository_UpdateMissingRow(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPaymentMethodRepository(db, nopLogger{})
	ctx := context.Background()

	method := createTestMethod(t, 2, "pm_ghost")
	require.NoError(t, method.SetID(777))

	err := repo.Update(ctx, method)
	assert.ErrorIs(t, err, billing.ErrPaymentMethodNotFound)
}
