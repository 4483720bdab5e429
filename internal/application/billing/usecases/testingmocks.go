package usecases

import (
	"context"
	"time"

	"gavel/internal/domain/billing"
	"gavel/internal/shared/logger"

	"github.com/stretchr/testify/mock"
)

type nopLogger struct{}

func (nopLogger) Debug(msg string, keysAndValues ...interface{})  {}
func (nopLogger) Info(msg string, keysAndValues ...interface{})   {}
func (nopLogger) Warn(msg string, keysAndValues ...interface{})   {}
func (nopLogger) Error(msg string, keysAndValues ...interface{})  {}
func (nopLogger) Debugw(msg string, keysAndValues ...interface{}) {}
func (nopLogger) Infow(msg string, keysAndValues ...interface{})  {}
func (nopLogger) Warnw(msg string, keysAndValues ...interface{})  {}
func (nopLogger) Errorw(msg string, keysAndValues ...interface{}) {}
func (n nopLogger) With(keysAndValues ...interface{}) logger.Interface { return n }
func (n nopLogger) Named(name string) logger.Interface                 { return n }

type mockSubscriptionRepository struct {
	mock.Mock
}

func (m *mockSubscriptionRepository) Create(ctx context.Context, subscription *billing.Subscription) error {
	args := m.Called(ctx, subscription)
	if args.Error(0) == nil && subscription.ID() == 0 {
		_ = subscription.SetID(1)
	}
	return args.Error(0)
}

func (m *mockSubscriptionRepository) GetByID(ctx context.Context, id uint) (*billing.Subscription, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Subscription), args.Error(1)
}

func (m *mockSubscriptionRepository) GetByIDAndUserID(ctx context.Context, id, userID uint) (*billing.Subscription, error) {
	args := m.Called(ctx, id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Subscription), args.Error(1)
}

func (m *mockSubscriptionRepository) GetActiveByUserID(ctx context.Context, userID uint) (*billing.Subscription, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Subscription), args.Error(1)
}

func (m *mockSubscriptionRepository) Update(ctx context.Context, subscription *billing.Subscription) error {
	args := m.Called(ctx, subscription)
	return args.Error(0)
}

func (m *mockSubscriptionRepository) List(ctx context.Context) ([]*billing.Subscription, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*billing.Subscription), args.Error(1)
}

func (m *mockSubscriptionRepository) FindExpiringWithin(ctx context.Context, now time.Time, horizon time.Duration) ([]*billing.Subscription, error) {
	args := m.Called(ctx, now, horizon)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*billing.Subscription), args.Error(1)
}

func (m *mockSubscriptionRepository) ActivateExclusively(ctx context.Context, subscription *billing.Subscription, creditDelta int) error {
	args := m.Called(ctx, subscription, creditDelta)
	if args.Error(0) == nil && subscription.ID() == 0 {
		_ = subscription.SetID(1)
	}
	return args.Error(0)
}

type mockPlanRepository struct {
	mock.Mock
}

func (m *mockPlanRepository) Create(ctx context.Context, plan *billing.Plan) error {
	args := m.Called(ctx, plan)
	if args.Error(0) == nil && plan.ID() == 0 {
		_ = plan.SetID(1)
	}
	return args.Error(0)
}

func (m *mockPlanRepository) GetByID(ctx context.Context, id uint) (*billing.Plan, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Plan), args.Error(1)
}

func (m *mockPlanRepository) Update(ctx context.Context, plan *billing.Plan) error {
	args := m.Called(ctx, plan)
	return args.Error(0)
}

func (m *mockPlanRepository) ListActive(ctx context.Context) ([]*billing.Plan, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*billing.Plan), args.Error(1)
}

func (m *mockPlanRepository) List(ctx context.Context) ([]*billing.Plan, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*billing.Plan), args.Error(1)
}

type mockPaymentMethodRepository struct {
	mock.Mock
}

func (m *mockPaymentMethodRepository) Create(ctx context.Context, method *billing.PaymentMethod) error {
	args := m.Called(ctx, method)
	if args.Error(0) == nil && method.ID() == 0 {
		_ = method.SetID(1)
	}
	return args.Error(0)
}

func (m *mockPaymentMethodRepository) GetByID(ctx context.Context, id uint) (*billing.PaymentMethod, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.PaymentMethod), args.Error(1)
}

func (m *mockPaymentMethodRepository) GetDefaultByUserID(ctx context.Context, userID uint) (*billing.PaymentMethod, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.PaymentMethod), args.Error(1)
}

func (m *mockPaymentMethodRepository) ListByUserID(ctx context.Context, userID uint) ([]*billing.PaymentMethod, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*billing.PaymentMethod), args.Error(1)
}

func (m *mockPaymentMethodRepository) Update(ctx context.Context, method *billing.PaymentMethod) error {
	args := m.Called(ctx, method)
	return args.Error(0)
}

func (m *mockPaymentMethodRepository) SetDefaultExclusively(ctx context.Context, method *billing.PaymentMethod) error {
	args := m.Called(ctx, method)
	if args.Error(0) == nil && method.ID() == 0 {
		_ = method.SetID(1)
	}
	return args.Error(0)
}

type mockPaymentRepository struct {
	mock.Mock
}

func (m *mockPaymentRepository) Create(ctx context.Context, payment *billing.Payment) error {
	args := m.Called(ctx, payment)
	if args.Error(0) == nil && payment.ID() == 0 {
		_ = payment.SetID(1)
	}
	return args.Error(0)
}

func (m *mockPaymentRepository) ListByUserID(ctx context.Context, userID uint) ([]*billing.Payment, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*billing.Payment), args.Error(1)
}

type mockUserCreditStore struct {
	mock.Mock
}

func (m *mockUserCreditStore) GetCredits(ctx context.Context, userID uint) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

func (m *mockUserCreditStore) SetCredits(ctx context.Context, userID uint, credits int) error {
	args := m.Called(ctx, userID, credits)
	return args.Error(0)
}

func (m *mockUserCreditStore) AddCredits(ctx context.Context, userID uint, delta int) error {
	args := m.Called(ctx, userID, delta)
	return args.Error(0)
}

type mockSubscriptionCache struct {
	mock.Mock
}

func (m *mockSubscriptionCache) GetActive(ctx context.Context, userID uint) (*ActiveSubscription, bool, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*ActiveSubscription), args.Bool(1), args.Error(2)
}

func (m *mockSubscriptionCache) SetActive(ctx context.Context, userID uint, sub *ActiveSubscription) error {
	args := m.Called(ctx, userID, sub)
	return args.Error(0)
}

func (m *mockSubscriptionCache) Invalidate(ctx context.Context, userID uint) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

type mockExpiryNotifier struct {
	mock.Mock
}

func (m *mockExpiryNotifier) NotifyExpired(ctx context.Context, userID uint, planName string) error {
	args := m.Called(ctx, userID, planName)
	return args.Error(0)
}
