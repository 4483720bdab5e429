package usecases

import (
	"context"
	"testing"
	"time"

	"gavel/internal/domain/billing"
	vo "gavel/internal/domain/billing/valueobjects"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func testSubscription(t *testing.T, id, userID uint, status vo.SubscriptionStatus) *billing.Subscription {
	t.Helper()
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)
	sub, err := billing.ReconstructSubscription(id, userID, 2, status, start, end, "pi_test", 2900, start, start)
	require.NoError(t, err)
	return sub
}

func TestCancelSubscription_Success(t *testing.T) {
	subRepo := new(mockSubscriptionRepository)
	cache := new(mockSubscriptionCache)

	sub := testSubscription(t, 10, 7, vo.StatusActive)

	subRepo.On("GetByIDAndUserID", mock.Anything, uint(10), uint(7)).Return(sub, nil)
	subRepo.On("Update", mock.Anything, sub).Return(nil)
	cache.On("Invalidate", mock.Anything, uint(7)).Return(nil)

	uc := NewCancelSubscriptionUseCase(subRepo, cache, nopLogger{})

	result, err := uc.Execute(context.Background(), CancelSubscriptionCommand{SubscriptionID: 10, UserID: 7})

	require.NoError(t, err)
	assert.Equal(t, vo.StatusCancelled, result.Status())
	assert.WithinDuration(t, time.Now().UTC(), result.EndDate(), 5*time.Second)
	subRepo.AssertExpectations(t)
	cache.AssertExpectations(t)
}

func TestCancelSubscription_NotFound(t *testing.T) {
	subRepo := new(mockSubscriptionRepository)

	subRepo.On("GetByIDAndUserID", mock.Anything, uint(10), uint(7)).Return(nil, nil)

	uc := NewCancelSubscriptionUseCase(subRepo, nil, nopLogger{})

	_, err := uc.Execute(context.Background(), CancelSubscriptionCommand{SubscriptionID: 10, UserID: 7})

	assert.ErrorIs(t, err, billing.ErrSubscriptionNotFound)
	subRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestCancelSubscription_NotOwned(t *testing.T) {
	subRepo := new(mockSubscriptionRepository)

	// Scoped lookup: someone else's subscription resolves to nothing.
	subRepo.On("GetByIDAndUserID", mock.Anything, uint(10), uint(8)).Return(nil, nil)

	uc := NewCancelSubscriptionUseCase(subRepo, nil, nopLogger{})

	_, err := uc.Execute(context.Background(), CancelSubscriptionCommand{SubscriptionID: 10, UserID: 8})

	assert.ErrorIs(t, err, billing.ErrSubscriptionNotFound)
}

func TestCancelSubscription_AlreadyCancelled(t *testing.T) {
	subRepo := new(mockSubscriptionRepository)

	sub := testSubscription(t, 10, 7, vo.StatusCancelled)
	subRepo.On("GetByIDAndUserID", mock.Anything, uint(10), uint(7)).Return(sub, nil)

	uc := NewCancelSubscriptionUseCase(subRepo, nil, nopLogger{})

	_, err := uc.Execute(context.Background(), CancelSubscriptionCommand{SubscriptionID: 10, UserID: 7})

	assert.ErrorIs(t, err, billing.ErrAlreadyCancelled)
	subRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}
