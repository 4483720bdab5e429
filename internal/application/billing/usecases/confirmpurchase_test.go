package usecases

import (
	"context"
	"testing"
	"time"

	"gavel/internal/application/billing/gateway"
	"gavel/internal/domain/billing"
	vo "gavel/internal/domain/billing/valueobjects"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func testPlan(t *testing.T, id uint, interval vo.BillingInterval, creditAmount int) *billing.Plan {
	t.Helper()
	now := time.Now().UTC()
	plan, err := billing.ReconstructPlan(id, "Pro", "pro tier", 2900, interval, creditAmount, []string{"contracts"}, "active", now, now)
	require.NoError(t, err)
	return plan
}

func TestConfirmPurchase_CreditTopUp(t *testing.T) {
	subRepo := new(mockSubscriptionRepository)
	planRepo := new(mockPlanRepository)
	paymentRepo := new(mockPaymentRepository)
	userRepo := new(mockUserCreditStore)
	gw := new(gateway.MockGateway)

	gw.On("RetrieveIntent", mock.Anything, "pi_123").Return(&gateway.Intent{
		ID:       "pi_123",
		Status:   gateway.IntentStatusSucceeded,
		Amount:   500,
		Currency: "usd",
	}, nil)
	userRepo.On("AddCredits", mock.Anything, uint(7), 50).Return(nil)
	userRepo.On("GetCredits", mock.Anything, uint(7)).Return(75, nil)
	paymentRepo.On("Create", mock.Anything, mock.AnythingOfType("*billing.Payment")).Return(nil)

	uc := NewConfirmPurchaseUseCase(subRepo, planRepo, paymentRepo, userRepo, gw, nil, nopLogger{})

	result, err := uc.Execute(context.Background(), ConfirmPurchaseCommand{
		UserID:       7,
		IntentID:     "pi_123",
		CreditAmount: 50,
	})

	require.NoError(t, err)
	assert.Equal(t, 75, result.Credits)
	assert.Nil(t, result.Subscription)
	userRepo.AssertExpectations(t)
	subRepo.AssertNotCalled(t, "ActivateExclusively", mock.Anything, mock.Anything, mock.Anything)
}

func TestConfirmPurchase_PlanPurchase(t *testing.T) {
	subRepo := new(mockSubscriptionRepository)
	planRepo := new(mockPlanRepository)
	paymentRepo := new(mockPaymentRepository)
	userRepo := new(mockUserCreditStore)
	cache := new(mockSubscriptionCache)
	gw := new(gateway.MockGateway)

	plan := testPlan(t, 3, vo.IntervalMonthly, 100)

	gw.On("RetrieveIntent", mock.Anything, "pi_456").Return(&gateway.Intent{
		ID:       "pi_456",
		Status:   gateway.IntentStatusSucceeded,
		Amount:   2900,
		Currency: "usd",
	}, nil)
	planRepo.On("GetByID", mock.Anything, uint(3)).Return(plan, nil)
	subRepo.On("ActivateExclusively", mock.Anything, mock.AnythingOfType("*billing.Subscription"), 100).Return(nil)
	cache.On("Invalidate", mock.Anything, uint(7)).Return(nil)
	paymentRepo.On("Create", mock.Anything, mock.AnythingOfType("*billing.Payment")).Return(nil)
	userRepo.On("GetCredits", mock.Anything, uint(7)).Return(100, nil)

	uc := NewConfirmPurchaseUseCase(subRepo, planRepo, paymentRepo, userRepo, gw, cache, nopLogger{})

	result, err := uc.Execute(context.Background(), ConfirmPurchaseCommand{
		UserID:       7,
		IntentID:     "pi_456",
		CreditAmount: 100,
		PlanID:       3,
	})

	require.NoError(t, err)
	require.NotNil(t, result.Subscription)
	assert.Equal(t, vo.StatusActive, result.Subscription.Status())
	assert.Equal(t, uint(3), result.Subscription.PlanID())
	assert.Equal(t, "pi_456", result.Subscription.PaymentID())
	assert.Equal(t, 100, result.Credits)
	subRepo.AssertExpectations(t)
	cache.AssertExpectations(t)
}

func TestConfirmPurchase_IntentNotSucceeded(t *testing.T) {
	subRepo := new(mockSubscriptionRepository)
	planRepo := new(mockPlanRepository)
	paymentRepo := new(mockPaymentRepository)
	userRepo := new(mockUserCreditStore)
	gw := new(gateway.MockGateway)

	gw.On("RetrieveIntent", mock.Anything, "pi_789").Return(&gateway.Intent{
		ID:     "pi_789",
		Status: "requires_payment_method",
	}, nil)

	uc := NewConfirmPurchaseUseCase(subRepo, planRepo, paymentRepo, userRepo, gw, nil, nopLogger{})

	_, err := uc.Execute(context.Background(), ConfirmPurchaseCommand{
		UserID:       7,
		IntentID:     "pi_789",
		CreditAmount: 50,
		PlanID:       3,
	})

	assert.ErrorIs(t, err, billing.ErrPaymentNotCompleted)
	userRepo.AssertNotCalled(t, "AddCredits", mock.Anything, mock.Anything, mock.Anything)
	subRepo.AssertNotCalled(t, "ActivateExclusively", mock.Anything, mock.Anything, mock.Anything)
	planRepo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestConfirmPurchase_PlanNotFound(t *testing.T) {
	subRepo := new(mockSubscriptionRepository)
	planRepo := new(mockPlanRepository)
	paymentRepo := new(mockPaymentRepository)
	userRepo := new(mockUserCreditStore)
	gw := new(gateway.MockGateway)

	gw.On("RetrieveIntent", mock.Anything, "pi_123").Return(&gateway.Intent{
		ID:     "pi_123",
		Status: gateway.IntentStatusSucceeded,
		Amount: 2900,
	}, nil)
	planRepo.On("GetByID", mock.Anything, uint(99)).Return(nil, nil)

	uc := NewConfirmPurchaseUseCase(subRepo, planRepo, paymentRepo, userRepo, gw, nil, nopLogger{})

	_, err := uc.Execute(context.Background(), ConfirmPurchaseCommand{
		UserID:   7,
		IntentID: "pi_123",
		PlanID:   99,
	})

	assert.ErrorIs(t, err, billing.ErrPlanNotFound)
	subRepo.AssertNotCalled(t, "ActivateExclusively", mock.Anything, mock.Anything, mock.Anything)
}

func TestConfirmPurchase_NegativeCreditAmountClamped(t *testing.T) {
	subRepo := new(mockSubscriptionRepository)
	planRepo := new(mockPlanRepository)
	paymentRepo := new(mockPaymentRepository)
	userRepo := new(mockUserCreditStore)
	gw := new(gateway.MockGateway)

	gw.On("RetrieveIntent", mock.Anything, "pi_123").Return(&gateway.Intent{
		ID:     "pi_123",
		Status: gateway.IntentStatusSucceeded,
	}, nil)
	paymentRepo.On("Create", mock.Anything, mock.AnythingOfType("*billing.Payment")).Return(nil)
	userRepo.On("GetCredits", mock.Anything, uint(7)).Return(0, nil)

	uc := NewConfirmPurchaseUseCase(subRepo, planRepo, paymentRepo, userRepo, gw, nil, nopLogger{})

	result, err := uc.Execute(context.Background(), ConfirmPurchaseCommand{
		UserID:       7,
		IntentID:     "pi_123",
		CreditAmount: -10,
	})

	require.NoError(t, err)
	assert.Equal(t, 0, result.Credits)
	userRepo.AssertNotCalled(t, "AddCredits", mock.Anything, mock.Anything, mock.Anything)
}
