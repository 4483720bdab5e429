package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gavel/internal/domain/billing"
	vo "gavel/internal/domain/billing/valueobjects"
	"gavel/internal/infrastructure/persistence/models"
)

func TestSubscriptionRepository_CreateAndGet(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSubscriptionRepository(db, nopLogger{})
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Second)

	t.Run("create assigns ID", func(t *testing.T) {
		sub := createTestSubscription(t, 1, now, now.AddDate(0, 1, 0))

		err := repo.Create(ctx, sub)
		require.NoError(t, err)
		assert.NotZero(t, sub.ID())
	})

	t.Run("get by ID round-trips fields", func(t *testing.T) {
		sub := createTestSubscription(t, 2, now, now.AddDate(0, 1, 0))
		require.NoError(t, repo.Create(ctx, sub))

		found, err := repo.GetByID(ctx, sub.ID())
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, sub.UserID(), found.UserID())
		assert.Equal(t, vo.StatusActive, found.Status())
		assert.Equal(t, "pi_test_123", found.PaymentID())
		assert.Equal(t, int64(2900), found.Amount())
	})

	t.Run("missing ID returns nil without error", func(t *testing.T) {
		found, err := repo.GetByID(ctx, 9999)
		require.NoError(t, err)
		assert.Nil(t, found)
	})
}

func TestSubscriptionRepository_GetByIDAndUserID(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSubscriptionRepository(db, nopLogger{})
	ctx := context.Background()

	now := time.Now().UTC()
	sub := createTestSubscription(t, 7, now, now.AddDate(0, 1, 0))
	require.NoError(t, repo.Create(ctx, sub))

	t.Run("owner finds the row", func(t *testing.T) {
		found, err := repo.GetByIDAndUserID(ctx, sub.ID(), 7)
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, sub.ID(), found.ID())
	})

	t.Run("other user sees nothing", func(t *testing.T) {
		found, err := repo.GetByIDAndUserID(ctx, sub.ID(), 8)
		require.NoError(t, err)
		assert.Nil(t, found)
	})
}

func TestSubscriptionRepository_GetActiveByUserID(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSubscriptionRepository(db, nopLogger{})
	ctx := context.Background()

	now := time.Now().UTC()

	t.Run("no subscription returns nil", func(t *testing.T) {
		found, err := repo.GetActiveByUserID(ctx, 42)
		require.NoError(t, err)
		assert.Nil(t, found)
	})

	t.Run("cancelled subscription is not returned", func(t *testing.T) {
		sub := createTestSubscription(t, 42, now.AddDate(0, -1, 0), now.AddDate(0, 1, 0))
		require.NoError(t, repo.Create(ctx, sub))
		require.NoError(t, sub.Cancel(now))
		require.NoError(t, repo.Update(ctx, sub))

		found, err := repo.GetActiveByUserID(ctx, 42)
		require.NoError(t, err)
		assert.Nil(t, found)
	})

	t.Run("active subscription is returned", func(t *testing.T) {
		sub := createTestSubscription(t, 42, now, now.AddDate(0, 1, 0))
		require.NoError(t, repo.Create(ctx, sub))

		found, err := repo.GetActiveByUserID(ctx, 42)
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, sub.ID(), found.ID())
	})
}

func TestSubscriptionRepository_Update(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSubscriptionRepository(db, nopLogger{})
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Second)

	t.Run("persists status and end date changes", func(t *testing.T) {
		sub := createTestSubscription(t, 3, now.AddDate(0, -1, 0), now.Add(time.Hour))
		require.NoError(t, repo.Create(ctx, sub))

		require.NoError(t, sub.RollForward(now, now.AddDate(0, 1, 0)))
		require.NoError(t, repo.Update(ctx, sub))

		found, err := repo.GetByID(ctx, sub.ID())
		require.NoError(t, err)
		assert.Equal(t, vo.StatusActive, found.Status())
		assert.WithinDuration(t, now.AddDate(0, 1, 0), found.EndDate(), time.Second)
	})

	t.Run("unknown row reports not found", func(t *testing.T) {
		sub := createTestSubscription(t, 3, now, now.AddDate(0, 1, 0))
		require.NoError(t, sub.SetID(12345))

		err := repo.Update(ctx, sub)
		assert.ErrorIs(t, err, billing.ErrSubscriptionNotFound)
	})
}

func TestSubscriptionRepository_FindExpiringWithin(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSubscriptionRepository(db, nopLogger{})
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Second)
	horizon := 24 * time.Hour

	inWindow := createTestSubscription(t, 1, now.AddDate(0, -1, 0), now.Add(2*time.Hour))
	require.NoError(t, repo.Create(ctx, inWindow))

	atBoundary := createTestSubscription(t, 2, now.AddDate(0, -1, 0), now.Add(horizon))
	require.NoError(t, repo.Create(ctx, atBoundary))

	beyond := createTestSubscription(t, 3, now.AddDate(0, -1, 0), now.Add(horizon+time.Hour))
	require.NoError(t, repo.Create(ctx, beyond))

	lapsed := createTestSubscription(t, 4, now.AddDate(0, -1, 0), now.Add(time.Hour))
	require.NoError(t, repo.Create(ctx, lapsed))
	lapsed.Expire(now)
	require.NoError(t, repo.Update(ctx, lapsed))

	due, err := repo.FindExpiringWithin(ctx, now, horizon)
	require.NoError(t, err)
	require.Len(t, due, 2)

	// Ordered by end date ascending
	assert.Equal(t, inWindow.ID(), due[0].ID())
	assert.Equal(t, atBoundary.ID(), due[1].ID())
}

func TestSubscriptionRepository_List(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSubscriptionRepository(db, nopLogger{})
	ctx := context.Background()

	now := time.Now().UTC()
	for i := 0; i < 3; i++ {
		sub := createTestSubscription(t, uint(i+1), now, now.AddDate(0, 1, 0))
		require.NoError(t, repo.Create(ctx, sub))
	}

	subs, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, subs, 3)
}

func TestSubscriptionRepository_ActivateExclusively(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSubscriptionRepository(db, nopLogger{})
	ctx := context.Background()

	userID := createTestUser(t, db, "upgrade@example.com", 10)
	now := time.Now().UTC().Truncate(time.Second)

	prior := createTestSubscription(t, userID, now.AddDate(0, -1, 0), now.AddDate(0, 0, 3))
	require.NoError(t, repo.Create(ctx, prior))
	priorStart := prior.StartDate()
	priorEnd := prior.EndDate()

	replacement, err := billing.NewSubscription(userID, 2, now, now.AddDate(0, 1, 0), "pi_upgrade", 4900)
	require.NoError(t, err)

	require.NoError(t, repo.ActivateExclusively(ctx, replacement, 100))
	assert.NotZero(t, replacement.ID())

	t.Run("prior row demoted with dates untouched", func(t *testing.T) {
		demoted, err := repo.GetByID(ctx, prior.ID())
		require.NoError(t, err)
		require.NotNil(t, demoted)
		assert.Equal(t, vo.StatusInactive, demoted.Status())
		assert.WithinDuration(t, priorStart, demoted.StartDate(), time.Second)
		assert.WithinDuration(t, priorEnd, demoted.EndDate(), time.Second)
	})

	t.Run("replacement is the single active row", func(t *testing.T) {
		active, err := repo.GetActiveByUserID(ctx, userID)
		require.NoError(t, err)
		require.NotNil(t, active)
		assert.Equal(t, replacement.ID(), active.ID())

		var count int64
		require.NoError(t, db.Model(&models.SubscriptionModel{}).
			Where("user_id = ? AND status = ?", userID, string(vo.StatusActive)).
			Count(&count).Error)
		assert.EqualValues(t, 1, count)
	})

	t.Run("credits granted atomically", func(t *testing.T) {
		userRepo := NewUserRepository(db, nopLogger{})
		credits, err := userRepo.GetCredits(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, 110, credits)
	})

	t.Run("unknown user rolls the whole purchase back", func(t *testing.T) {
		orphan, err := billing.NewSubscription(99999, 2, now, now.AddDate(0, 1, 0), "pi_orphan", 4900)
		require.NoError(t, err)

		err = repo.ActivateExclusively(ctx, orphan, 100)
		require.Error(t, err)

		found, err := repo.GetActiveByUserID(ctx, 99999)
		require.NoError(t, err)
		assert.Nil(t, found)
	})
}
