package usecases

import (
	"context"
	"errors"
	"testing"
	"time"

	"gavel/internal/application/billing/gateway"
	"gavel/internal/domain/billing"
	vo "gavel/internal/domain/billing/valueobjects"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func renewTestPaymentMethod(t *testing.T, userID uint) *billing.PaymentMethod {
	t.Helper()
	now := time.Now().UTC()
	method, err := billing.ReconstructPaymentMethod(1, userID, "pm_test", "Jane Doe", "12", "2027", "4242", "visa", true, true, now, now)
	require.NoError(t, err)
	return method
}

func newRenewFixture() (*mockSubscriptionRepository, *mockPlanRepository, *mockPaymentMethodRepository, *mockPaymentRepository, *mockUserCreditStore, *gateway.MockGateway, *RenewSubscriptionsUseCase) {
	subRepo := new(mockSubscriptionRepository)
	planRepo := new(mockPlanRepository)
	methodRepo := new(mockPaymentMethodRepository)
	paymentRepo := new(mockPaymentRepository)
	userRepo := new(mockUserCreditStore)
	gw := new(gateway.MockGateway)

	uc := NewRenewSubscriptionsUseCase(subRepo, planRepo, methodRepo, paymentRepo, userRepo, gw, nil, nopLogger{})
	return subRepo, planRepo, methodRepo, paymentRepo, userRepo, gw, uc
}

func TestRenewSubscriptions_NoneDue(t *testing.T) {
	subRepo, _, _, _, _, _, uc := newRenewFixture()

	subRepo.On("FindExpiringWithin", mock.Anything, mock.Anything, DefaultRenewalHorizon).
		Return([]*billing.Subscription{}, nil)

	renewed, err := uc.Execute(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 0, renewed)
}

func TestRenewSubscriptions_SelectionFailureAborts(t *testing.T) {
	subRepo, _, _, _, _, _, uc := newRenewFixture()

	subRepo.On("FindExpiringWithin", mock.Anything, mock.Anything, DefaultRenewalHorizon).
		Return(nil, errors.New("db down"))

	_, err := uc.Execute(context.Background())

	assert.Error(t, err)
}

func TestRenewSubscriptions_ChargeSucceeds(t *testing.T) {
	subRepo, planRepo, methodRepo, paymentRepo, userRepo, gw, uc := newRenewFixture()

	sub := testSubscription(t, 10, 7, vo.StatusActive)
	plan := testPlan(t, 2, vo.IntervalMonthly, 100)

	subRepo.On("FindExpiringWithin", mock.Anything, mock.Anything, DefaultRenewalHorizon).
		Return([]*billing.Subscription{sub}, nil)
	planRepo.On("GetByID", mock.Anything, uint(2)).Return(plan, nil)
	methodRepo.On("GetDefaultByUserID", mock.Anything, uint(7)).Return(renewTestPaymentMethod(t, 7), nil)
	gw.On("ChargeOffSession", mock.Anything, "pm_test", int64(2900), "usd").Return(&gateway.Intent{
		ID:       "pi_renew",
		Status:   gateway.IntentStatusSucceeded,
		Amount:   2900,
		Currency: "usd",
	}, nil)
	userRepo.On("SetCredits", mock.Anything, uint(7), 100).Return(nil)
	subRepo.On("Update", mock.Anything, sub).Return(nil)
	paymentRepo.On("Create", mock.Anything, mock.AnythingOfType("*billing.Payment")).Return(nil)

	renewed, err := uc.Execute(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, renewed)
	assert.Equal(t, vo.StatusActive, sub.Status())
	assert.True(t, sub.EndDate().After(time.Now().UTC().AddDate(0, 0, 27)))
	userRepo.AssertExpectations(t)
	subRepo.AssertExpectations(t)
}

func TestRenewSubscriptions_NoDefaultMethod(t *testing.T) {
	subRepo, planRepo, methodRepo, _, userRepo, gw, uc := newRenewFixture()

	sub := testSubscription(t, 10, 7, vo.StatusActive)
	plan := testPlan(t, 2, vo.IntervalMonthly, 100)

	subRepo.On("FindExpiringWithin", mock.Anything, mock.Anything, DefaultRenewalHorizon).
		Return([]*billing.Subscription{sub}, nil)
	planRepo.On("GetByID", mock.Anything, uint(2)).Return(plan, nil)
	methodRepo.On("GetDefaultByUserID", mock.Anything, uint(7)).Return(nil, nil)
	subRepo.On("Update", mock.Anything, sub).Return(nil)

	renewed, err := uc.Execute(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 0, renewed)
	assert.Equal(t, vo.StatusExpired, sub.Status())
	// Credits are left alone when no charge was even attempted.
	userRepo.AssertNotCalled(t, "SetCredits", mock.Anything, mock.Anything, mock.Anything)
	gw.AssertNotCalled(t, "ChargeOffSession", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestRenewSubscriptions_ChargeDeclined(t *testing.T) {
	subRepo, planRepo, methodRepo, _, userRepo, gw, uc := newRenewFixture()

	sub := testSubscription(t, 10, 7, vo.StatusActive)
	plan := testPlan(t, 2, vo.IntervalMonthly, 100)

	subRepo.On("FindExpiringWithin", mock.Anything, mock.Anything, DefaultRenewalHorizon).
		Return([]*billing.Subscription{sub}, nil)
	planRepo.On("GetByID", mock.Anything, uint(2)).Return(plan, nil)
	methodRepo.On("GetDefaultByUserID", mock.Anything, uint(7)).Return(renewTestPaymentMethod(t, 7), nil)
	gw.On("ChargeOffSession", mock.Anything, "pm_test", int64(2900), "usd").Return(&gateway.Intent{
		ID:     "pi_renew",
		Status: "failed",
	}, nil)
	subRepo.On("Update", mock.Anything, sub).Return(nil)
	userRepo.On("SetCredits", mock.Anything, uint(7), 0).Return(nil)

	renewed, err := uc.Execute(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 0, renewed)
	assert.Equal(t, vo.StatusExpired, sub.Status())
	userRepo.AssertExpectations(t)
}

func TestRenewSubscriptions_GatewayError(t *testing.T) {
	subRepo, planRepo, methodRepo, _, userRepo, gw, uc := newRenewFixture()

	sub := testSubscription(t, 10, 7, vo.StatusActive)
	plan := testPlan(t, 2, vo.IntervalMonthly, 100)

	subRepo.On("FindExpiringWithin", mock.Anything, mock.Anything, DefaultRenewalHorizon).
		Return([]*billing.Subscription{sub}, nil)
	planRepo.On("GetByID", mock.Anything, uint(2)).Return(plan, nil)
	methodRepo.On("GetDefaultByUserID", mock.Anything, uint(7)).Return(renewTestPaymentMethod(t, 7), nil)
	gw.On("ChargeOffSession", mock.Anything, "pm_test", int64(2900), "usd").
		Return(nil, billing.ErrGatewayFailure)
	subRepo.On("Update", mock.Anything, sub).Return(nil)
	userRepo.On("SetCredits", mock.Anything, uint(7), 0).Return(nil)

	renewed, err := uc.Execute(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 0, renewed)
	assert.Equal(t, vo.StatusExpired, sub.Status())
	userRepo.AssertExpectations(t)
}

func TestRenewSubscriptions_OneFailureDoesNotStopOthers(t *testing.T) {
	subRepo, planRepo, methodRepo, paymentRepo, userRepo, gw, uc := newRenewFixture()

	failing := testSubscription(t, 10, 7, vo.StatusActive)
	healthy := testSubscription(t, 11, 8, vo.StatusActive)
	plan := testPlan(t, 2, vo.IntervalMonthly, 100)

	subRepo.On("FindExpiringWithin", mock.Anything, mock.Anything, DefaultRenewalHorizon).
		Return([]*billing.Subscription{failing, healthy}, nil)
	planRepo.On("GetByID", mock.Anything, uint(2)).Return(plan, nil)

	methodRepo.On("GetDefaultByUserID", mock.Anything, uint(7)).Return(renewTestPaymentMethod(t, 7), nil)
	gw.On("ChargeOffSession", mock.Anything, "pm_test", int64(2900), "usd").
		Return(nil, billing.ErrGatewayFailure).Once()

	healthyMethod, err := billing.ReconstructPaymentMethod(2, 8, "pm_healthy", "John Doe", "06", "2028", "1111", "mastercard", true, true, time.Now().UTC(), time.Now().UTC())
	require.NoError(t, err)
	methodRepo.On("GetDefaultByUserID", mock.Anything, uint(8)).Return(healthyMethod, nil)
	gw.On("ChargeOffSession", mock.Anything, "pm_healthy", int64(2900), "usd").Return(&gateway.Intent{
		ID:       "pi_ok",
		Status:   gateway.IntentStatusSucceeded,
		Amount:   2900,
		Currency: "usd",
	}, nil)

	subRepo.On("Update", mock.Anything, mock.AnythingOfType("*billing.Subscription")).Return(nil)
	userRepo.On("SetCredits", mock.Anything, uint(7), 0).Return(nil)
	userRepo.On("SetCredits", mock.Anything, uint(8), 100).Return(nil)
	paymentRepo.On("Create", mock.Anything, mock.AnythingOfType("*billing.Payment")).Return(nil)

	renewed, err := uc.Execute(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, renewed)
	assert.Equal(t, vo.StatusExpired, failing.Status())
	assert.Equal(t, vo.StatusActive, healthy.Status())
	userRepo.AssertExpectations(t)
}

func TestRenewSubscriptions_NotifierCalledOnMissingMethod(t *testing.T) {
	subRepo, planRepo, methodRepo, _, _, _, uc := newRenewFixture()
	notifier := new(mockExpiryNotifier)
	uc.SetExpiryNotifier(notifier)

	sub := testSubscription(t, 10, 7, vo.StatusActive)
	plan := testPlan(t, 2, vo.IntervalMonthly, 100)

	subRepo.On("FindExpiringWithin", mock.Anything, mock.Anything, DefaultRenewalHorizon).
		Return([]*billing.Subscription{sub}, nil)
	planRepo.On("GetByID", mock.Anything, uint(2)).Return(plan, nil)
	methodRepo.On("GetDefaultByUserID", mock.Anything, uint(7)).Return(nil, nil)
	subRepo.On("Update", mock.Anything, sub).Return(nil)
	notifier.On("NotifyExpired", mock.Anything, uint(7), "Pro").Return(nil)

	_, err := uc.Execute(context.Background())

	require.NoError(t, err)
	notifier.AssertExpectations(t)
}
