package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gavel/internal/domain/billing"
)

func TestPaymentRepository_CreateAndList(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPaymentRepository(db, nopLogger{})
	ctx := context.Background()

	first, err := billing.NewPayment(7, 2900, "usd", "pi_first", "succeeded")
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, first))
	assert.NotZero(t, first.ID())

	second, err := billing.NewPayment(7, 9900, "usd", "pi_second", "succeeded")
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, second))

	other, err := billing.NewPayment(8, 500, "usd", "pi_other", "succeeded")
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, other))

	payments, err := repo.ListByUserID(ctx, 7)
	require.NoError(t, err)
	require.Len(t, payments, 2)
	for _, p := range payments {
		assert.Equal(t, uint(7), p.UserID())
		assert.Equal(t, "usd", p.Currency())
	}

	none, err := repo.ListByUserID(ctx, 99)
	require.NoError(t, err)
	assert.Empty(t, none)
}
