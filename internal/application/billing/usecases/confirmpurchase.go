package usecases

import (
	"context"
	"fmt"

	"gavel/internal/application/billing/gateway"
	"gavel/internal/domain/billing"
	"gavel/internal/shared/biztime"
	"gavel/internal/shared/logger"
)

type ConfirmPurchaseCommand struct {
	UserID       uint
	IntentID     string
	CreditAmount int
	// PlanID is optional; zero means a pure credit top-up without a
	// subscription.
	PlanID uint
}

type ConfirmPurchaseResult struct {
	Credits      int
	Subscription *billing.Subscription
}

// ConfirmPurchaseUseCase settles a client-confirmed charge: verifies the
// intent with the gateway, grants credits, and when a plan is involved
// activates a new subscription while demoting any prior active one.
type ConfirmPurchaseUseCase struct {
	subscriptionRepo billing.SubscriptionRepository
	planRepo         billing.PlanRepository
	paymentRepo      billing.PaymentRepository
	userRepo         UserCreditStore
	chargeGateway    gateway.ChargeGateway
	cache            SubscriptionCache
	logger           logger.Interface
}

func NewConfirmPurchaseUseCase(
	subscriptionRepo billing.SubscriptionRepository,
	planRepo billing.PlanRepository,
	paymentRepo billing.PaymentRepository,
	userRepo UserCreditStore,
	chargeGateway gateway.ChargeGateway,
	cache SubscriptionCache,
	log logger.Interface,
) *ConfirmPurchaseUseCase {
	return &ConfirmPurchaseUseCase{
		subscriptionRepo: subscriptionRepo,
		planRepo:         planRepo,
		paymentRepo:      paymentRepo,
		userRepo:         userRepo,
		chargeGateway:    chargeGateway,
		cache:            cache,
		logger:           log,
	}
}

func (uc *ConfirmPurchaseUseCase) Execute(ctx context.Context, cmd ConfirmPurchaseCommand) (*ConfirmPurchaseResult, error) {
	if cmd.UserID == 0 {
		return nil, fmt.Errorf("user ID is required")
	}
	if cmd.IntentID == "" {
		return nil, fmt.Errorf("payment intent ID is required")
	}

	intent, err := uc.chargeGateway.RetrieveIntent(ctx, cmd.IntentID)
	if err != nil {
		uc.logger.Errorw("failed to retrieve payment intent", "error", err, "intent_id", cmd.IntentID)
		return nil, err
	}

	// Nothing is mutated unless the gateway reports terminal success.
	if intent.Status != gateway.IntentStatusSucceeded {
		uc.logger.Warnw("payment intent not completed",
			"intent_id", cmd.IntentID,
			"status", intent.Status,
			"user_id", cmd.UserID,
		)
		return nil, billing.ErrPaymentNotCompleted
	}

	creditAmount := cmd.CreditAmount
	if creditAmount < 0 {
		creditAmount = 0
	}

	now := biztime.NowUTC()

	var sub *billing.Subscription
	if cmd.PlanID != 0 {
		plan, err := uc.planRepo.GetByID(ctx, cmd.PlanID)
		if err != nil {
			return nil, fmt.Errorf("failed to get plan: %w", err)
		}
		if plan == nil {
			return nil, billing.ErrPlanNotFound
		}

		endDate := plan.Interval().NextExpiry(now)

		sub, err = billing.NewSubscription(cmd.UserID, plan.ID(), now, endDate, intent.ID, intent.Amount)
		if err != nil {
			return nil, fmt.Errorf("failed to build subscription: %w", err)
		}

		// Demotion of the prior ACTIVE row, insert, and credit grant happen
		// in one transaction so a concurrent purchase cannot leave two
		// active rows or a granted credit without its subscription.
		if err := uc.subscriptionRepo.ActivateExclusively(ctx, sub, creditAmount); err != nil {
			uc.logger.Errorw("failed to activate subscription", "error", err, "user_id", cmd.UserID, "plan_id", cmd.PlanID)
			return nil, fmt.Errorf("failed to activate subscription: %w", err)
		}

		uc.invalidateCache(ctx, cmd.UserID)
	} else if creditAmount > 0 {
		if err := uc.userRepo.AddCredits(ctx, cmd.UserID, creditAmount); err != nil {
			uc.logger.Errorw("failed to grant credits", "error", err, "user_id", cmd.UserID)
			return nil, fmt.Errorf("failed to grant credits: %w", err)
		}
	}

	uc.recordPayment(ctx, cmd.UserID, intent)

	credits, err := uc.userRepo.GetCredits(ctx, cmd.UserID)
	if err != nil {
		uc.logger.Errorw("failed to read credit balance", "error", err, "user_id", cmd.UserID)
		return nil, fmt.Errorf("failed to read credit balance: %w", err)
	}

	uc.logger.Infow("purchase confirmed",
		"user_id", cmd.UserID,
		"intent_id", intent.ID,
		"credits_granted", creditAmount,
		"plan_id", cmd.PlanID,
	)

	return &ConfirmPurchaseResult{
		Credits:      credits,
		Subscription: sub,
	}, nil
}

// recordPayment persists the settled charge for audit. Best effort: a failed
// audit insert does not unwind a confirmed purchase.
func (uc *ConfirmPurchaseUseCase) recordPayment(ctx context.Context, userID uint, intent *gateway.Intent) {
	payment, err := billing.NewPayment(userID, intent.Amount, intent.Currency, intent.ID, intent.Status)
	if err != nil {
		uc.logger.Warnw("failed to build payment record", "error", err, "intent_id", intent.ID)
		return
	}
	if err := uc.paymentRepo.Create(ctx, payment); err != nil {
		uc.logger.Warnw("failed to record payment", "error", err, "intent_id", intent.ID)
	}
}

func (uc *ConfirmPurchaseUseCase) invalidateCache(ctx context.Context, userID uint) {
	if uc.cache == nil {
		return
	}
	if err := uc.cache.Invalidate(ctx, userID); err != nil {
		uc.logger.Warnw("failed to invalidate subscription cache", "error", err, "user_id", userID)
	}
}
