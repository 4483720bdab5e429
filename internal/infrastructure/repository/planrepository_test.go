package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gavel/internal/domain/billing"
	vo "gavel/internal/domain/billing/valueobjects"
)

func createTestPlan(t *testing.T, name string, price int64) *billing.Plan {
	interval, err := vo.ParseInterval("monthly")
	require.NoError(t, err)

	plan, err := billing.NewPlan(name, "test plan", price, interval, 100, []string{"contracts", "research"})
	require.NoError(t, err)
	return plan
}

func TestPlanRepository_CreateAndGet(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPlanRepository(db, nopLogger{})
	ctx := context.Background()

	plan := createTestPlan(t, "Solo", 2900)
	require.NoError(t, repo.Create(ctx, plan))
	assert.NotZero(t, plan.ID())

	found, err := repo.GetByID(ctx, plan.ID())
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "Solo", found.Name())
	assert.Equal(t, int64(2900), found.Price())
	assert.Equal(t, 100, found.CreditAmount())
	assert.Equal(t, []string{"contracts", "research"}, found.Features())
	assert.True(t, found.IsActive())

	t.Run("unknown plan returns nil", func(t *testing.T) {
		found, err := repo.GetByID(ctx, 99999)
		require.NoError(t, err)
		assert.Nil(t, found)
	})
}

func TestPlanRepository_Update(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPlanRepository(db, nopLogger{})
	ctx := context.Background()

	plan := createTestPlan(t, "Firm", 9900)
	require.NoError(t, repo.Create(ctx, plan))

	plan.Deactivate()
	require.NoError(t, repo.Update(ctx, plan))

	found, err := repo.GetByID(ctx, plan.ID())
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.False(t, found.IsActive())

	t.Run("unknown plan", func(t *testing.T) {
		ghost := createTestPlan(t, "Ghost", 100)
		require.NoError(t, ghost.SetID(777))

		err := repo.Update(ctx, ghost)
		assert.ErrorIs(t, err, billing.ErrPlanNotFound)
	})
}

func TestPlanRepository_ListActive(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPlanRepository(db, nopLogger{})
	ctx := context.Background()

	expensive := createTestPlan(t, "Firm", 9900)
	require.NoError(t, repo.Create(ctx, expensive))

	cheap := createTestPlan(t, "Solo", 2900)
	require.NoError(t, repo.Create(ctx, cheap))

	retired := createTestPlan(t, "Legacy", 500)
	require.NoError(t, repo.Create(ctx, retired))
	retired.Deactivate()
	require.NoError(t, repo.Update(ctx, retired))

	plans, err := repo.ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, plans, 2)
	assert.Equal(t, "Solo", plans[0].Name())
	assert.Equal(t, "Firm", plans[1].Name())

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}
