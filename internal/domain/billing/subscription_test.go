package billing

import (
	"testing"
	"time"

	vo "gavel/internal/domain/billing/valueobjects"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSubscription(t *testing.T) *Subscription {
	t.Helper()
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)
	sub, err := NewSubscription(1, 2, start, end, "pi_test_123", 2900)
	require.NoError(t, err)
	return sub
}

func TestNewSubscription(t *testing.T) {
	sub := newTestSubscription(t)
	assert.Equal(t, vo.StatusActive, sub.Status())
	assert.True(t, sub.IsActive())
	assert.Equal(t, uint(1), sub.UserID())
	assert.Equal(t, uint(2), sub.PlanID())
}

func TestNewSubscription_Validation(t *testing.T) {
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)

	_, err := NewSubscription(0, 2, start, end, "pi_test", 100)
	assert.Error(t, err)

	_, err = NewSubscription(1, 0, start, end, "pi_test", 100)
	assert.Error(t, err)

	_, err = NewSubscription(1, 2, end, start, "pi_test", 100)
	assert.Error(t, err)

	_, err = NewSubscription(1, 2, start, end, "", 100)
	assert.Error(t, err)
}

func TestCancel(t *testing.T) {
	sub := newTestSubscription(t)
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

	require.NoError(t, sub.Cancel(now))
	assert.Equal(t, vo.StatusCancelled, sub.Status())
	assert.Equal(t, now, sub.EndDate())
}

func TestCancel_Twice(t *testing.T) {
	sub := newTestSubscription(t)
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

	require.NoError(t, sub.Cancel(now))
	err := sub.Cancel(now.Add(time.Hour))
	assert.ErrorIs(t, err, ErrAlreadyCancelled)
	assert.Equal(t, now, sub.EndDate())
}

func TestSupersede(t *testing.T) {
	sub := newTestSubscription(t)
	originalEnd := sub.EndDate()

	require.NoError(t, sub.Supersede())
	assert.Equal(t, vo.StatusInactive, sub.Status())
	assert.Equal(t, originalEnd, sub.EndDate())
}

func TestSupersede_TerminalStatus(t *testing.T) {
	sub := newTestSubscription(t)
	sub.Expire(time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC))

	err := sub.Supersede()
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Equal(t, vo.StatusExpired, sub.Status())
}

func TestExpire(t *testing.T) {
	sub := newTestSubscription(t)
	now := time.Date(2024, 3, 29, 0, 0, 0, 0, time.UTC)

	sub.Expire(now)
	assert.Equal(t, vo.StatusExpired, sub.Status())
	assert.Equal(t, now, sub.EndDate())
}

func TestRollForward(t *testing.T) {
	sub := newTestSubscription(t)
	now := time.Date(2024, 3, 30, 0, 0, 0, 0, time.UTC)
	newEnd := now.AddDate(0, 1, 0)

	require.NoError(t, sub.RollForward(now, newEnd))
	assert.Equal(t, vo.StatusActive, sub.Status())
	assert.Equal(t, now, sub.StartDate())
	assert.Equal(t, newEnd, sub.EndDate())
}

func TestRollForward_NotActive(t *testing.T) {
	sub := newTestSubscription(t)
	now := time.Date(2024, 3, 30, 0, 0, 0, 0, time.UTC)
	sub.Expire(now)

	err := sub.RollForward(now, now.AddDate(0, 1, 0))
	assert.Error(t, err)
}
