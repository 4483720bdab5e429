package usecases

import (
	"context"
	"fmt"
	"time"

	"gavel/internal/application/billing/gateway"
	"gavel/internal/domain/billing"
	"gavel/internal/shared/biztime"
	"gavel/internal/shared/logger"
)

// DefaultRenewalHorizon is how far ahead of expiry the sweep charges.
const DefaultRenewalHorizon = 24 * time.Hour

// RenewSubscriptionsUseCase is the renewal sweep. Each run selects ACTIVE
// subscriptions expiring within the horizon and renews them off-session via
// the user's default payment method. Subscriptions are processed in
// isolation: one failed renewal never stops the rest of the sweep.
//
// Outcomes per subscription:
//   - no default payment method: EXPIRED at sweep time, credits untouched
//   - charge succeeded: period rolled forward, credits reset to the plan grant
//   - charge failed or errored: EXPIRED at sweep time, credits reset to zero
type RenewSubscriptionsUseCase struct {
	subscriptionRepo billing.SubscriptionRepository
	planRepo         billing.PlanRepository
	paymentMethods   billing.PaymentMethodRepository
	paymentRepo      billing.PaymentRepository
	userRepo         UserCreditStore
	chargeGateway    gateway.ChargeGateway
	cache            SubscriptionCache
	notifier         ExpiryNotifier
	horizon          time.Duration
	currency         string
	logger           logger.Interface
}

func NewRenewSubscriptionsUseCase(
	subscriptionRepo billing.SubscriptionRepository,
	planRepo billing.PlanRepository,
	paymentMethods billing.PaymentMethodRepository,
	paymentRepo billing.PaymentRepository,
	userRepo UserCreditStore,
	chargeGateway gateway.ChargeGateway,
	cache SubscriptionCache,
	log logger.Interface,
) *RenewSubscriptionsUseCase {
	return &RenewSubscriptionsUseCase{
		subscriptionRepo: subscriptionRepo,
		planRepo:         planRepo,
		paymentMethods:   paymentMethods,
		paymentRepo:      paymentRepo,
		userRepo:         userRepo,
		chargeGateway:    chargeGateway,
		cache:            cache,
		horizon:          DefaultRenewalHorizon,
		currency:         "usd",
		logger:           log,
	}
}

// SetExpiryNotifier sets the optional lapse notifier.
func (uc *RenewSubscriptionsUseCase) SetExpiryNotifier(notifier ExpiryNotifier) {
	uc.notifier = notifier
}

// SetHorizon overrides the renewal look-ahead window.
func (uc *RenewSubscriptionsUseCase) SetHorizon(horizon time.Duration) {
	if horizon > 0 {
		uc.horizon = horizon
	}
}

// SetCurrency overrides the charge currency.
func (uc *RenewSubscriptionsUseCase) SetCurrency(currency string) {
	if currency != "" {
		uc.currency = currency
	}
}

// Execute runs one sweep and returns the number of subscriptions renewed.
// A selection failure aborts the sweep with an error; per-subscription
// failures are logged and absorbed.
func (uc *RenewSubscriptionsUseCase) Execute(ctx context.Context) (int, error) {
	now := biztime.NowUTC()

	expiring, err := uc.subscriptionRepo.FindExpiringWithin(ctx, now, uc.horizon)
	if err != nil {
		return 0, fmt.Errorf("failed to find expiring subscriptions: %w", err)
	}

	if len(expiring) == 0 {
		uc.logger.Debugw("no subscriptions due for renewal")
		return 0, nil
	}

	uc.logger.Infow("found subscriptions due for renewal", "count", len(expiring))

	renewed := 0
	for _, sub := range expiring {
		if err := uc.renewOne(ctx, sub); err != nil {
			uc.logger.Errorw("subscription renewal failed",
				"subscription_id", sub.ID(),
				"user_id", sub.UserID(),
				"error", err,
			)
			uc.expireAndZeroCredits(ctx, sub)
			continue
		}
		renewed++
	}

	return renewed, nil
}

func (uc *RenewSubscriptionsUseCase) renewOne(ctx context.Context, sub *billing.Subscription) error {
	plan, err := uc.planRepo.GetByID(ctx, sub.PlanID())
	if err != nil {
		return fmt.Errorf("failed to get plan: %w", err)
	}
	if plan == nil {
		return billing.ErrPlanNotFound
	}

	method, err := uc.paymentMethods.GetDefaultByUserID(ctx, sub.UserID())
	if err != nil {
		return fmt.Errorf("failed to get default payment method: %w", err)
	}
	if method == nil {
		// A missing instrument is terminal for this cycle: expire without
		// touching credits, and no charge is attempted.
		uc.logger.Infow("no default payment method, expiring subscription",
			"subscription_id", sub.ID(),
			"user_id", sub.UserID(),
		)
		uc.expireOnly(ctx, sub, plan)
		return nil
	}

	intent, err := uc.chargeGateway.ChargeOffSession(ctx, method.GatewayMethodID(), plan.Price(), uc.currency)
	if err != nil {
		return fmt.Errorf("off-session charge failed: %w", err)
	}

	if intent.Status != gateway.IntentStatusSucceeded {
		uc.logger.Warnw("renewal charge not completed",
			"subscription_id", sub.ID(),
			"user_id", sub.UserID(),
			"status", intent.Status,
		)
		uc.expireAndZeroCredits(ctx, sub)
		uc.notifyExpired(ctx, sub.UserID(), plan.Name())
		return nil
	}

	now := biztime.NowUTC()
	newEndDate := plan.Interval().NextExpiry(now)

	if err := uc.userRepo.SetCredits(ctx, sub.UserID(), plan.CreditAmount()); err != nil {
		return fmt.Errorf("failed to reset credits: %w", err)
	}

	if err := sub.RollForward(now, newEndDate); err != nil {
		return fmt.Errorf("failed to roll subscription forward: %w", err)
	}

	if err := uc.subscriptionRepo.Update(ctx, sub); err != nil {
		return fmt.Errorf("failed to persist renewal: %w", err)
	}

	uc.recordPayment(ctx, sub.UserID(), intent)
	uc.invalidateCache(ctx, sub.UserID())

	uc.logger.Infow("subscription renewed",
		"subscription_id", sub.ID(),
		"user_id", sub.UserID(),
		"new_end_date", newEndDate,
	)

	return nil
}

// expireOnly marks the subscription EXPIRED without touching credits.
func (uc *RenewSubscriptionsUseCase) expireOnly(ctx context.Context, sub *billing.Subscription, plan *billing.Plan) {
	sub.Expire(biztime.NowUTC())
	if err := uc.subscriptionRepo.Update(ctx, sub); err != nil {
		uc.logger.Errorw("failed to persist expiry", "error", err, "subscription_id", sub.ID())
		return
	}
	uc.invalidateCache(ctx, sub.UserID())
	uc.notifyExpired(ctx, sub.UserID(), plan.Name())
}

// expireAndZeroCredits is the failed-renewal branch: the subscription is
// expired first, then the balance is zeroed.
func (uc *RenewSubscriptionsUseCase) expireAndZeroCredits(ctx context.Context, sub *billing.Subscription) {
	sub.Expire(biztime.NowUTC())
	if err := uc.subscriptionRepo.Update(ctx, sub); err != nil {
		uc.logger.Errorw("failed to persist expiry", "error", err, "subscription_id", sub.ID())
	}
	if err := uc.userRepo.SetCredits(ctx, sub.UserID(), 0); err != nil {
		uc.logger.Errorw("failed to zero credits", "error", err, "user_id", sub.UserID())
	}
	uc.invalidateCache(ctx, sub.UserID())
}

func (uc *RenewSubscriptionsUseCase) recordPayment(ctx context.Context, userID uint, intent *gateway.Intent) {
	payment, err := billing.NewPayment(userID, intent.Amount, intent.Currency, intent.ID, intent.Status)
	if err != nil {
		uc.logger.Warnw("failed to build payment record", "error", err, "intent_id", intent.ID)
		return
	}
	if err := uc.paymentRepo.Create(ctx, payment); err != nil {
		uc.logger.Warnw("failed to record renewal payment", "error", err, "intent_id", intent.ID)
	}
}

func (uc *RenewSubscriptionsUseCase) invalidateCache(ctx context.Context, userID uint) {
	if uc.cache == nil {
		return
	}
	if err := uc.cache.Invalidate(ctx, userID); err != nil {
		uc.logger.Warnw("failed to invalidate subscription cache", "error", err, "user_id", userID)
	}
}

func (uc *RenewSubscriptionsUseCase) notifyExpired(ctx context.Context, userID uint, planName string) {
	if uc.notifier == nil {
		return
	}
	if err := uc.notifier.NotifyExpired(ctx, userID, planName); err != nil {
		uc.logger.Warnw("failed to send expiry notification", "error", err, "user_id", userID)
	}
}
