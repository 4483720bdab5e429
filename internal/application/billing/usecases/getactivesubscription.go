package usecases

import (
	"context"
	"fmt"

	"gavel/internal/domain/billing"
	"gavel/internal/shared/logger"
)

// GetActiveSubscriptionUseCase returns the user's ACTIVE subscription joined
// with plan details, or nil when none exists. "No active subscription" is a
// normal answer, never an error.
type GetActiveSubscriptionUseCase struct {
	subscriptionRepo billing.SubscriptionRepository
	planRepo         billing.PlanRepository
	cache            SubscriptionCache
	logger           logger.Interface
}

func NewGetActiveSubscriptionUseCase(
	subscriptionRepo billing.SubscriptionRepository,
	planRepo billing.PlanRepository,
	cache SubscriptionCache,
	log logger.Interface,
) *GetActiveSubscriptionUseCase {
	return &GetActiveSubscriptionUseCase{
		subscriptionRepo: subscriptionRepo,
		planRepo:         planRepo,
		cache:            cache,
		logger:           log,
	}
}

func (uc *GetActiveSubscriptionUseCase) Execute(ctx context.Context, userID uint) (*ActiveSubscription, error) {
	if userID == 0 {
		return nil, fmt.Errorf("user ID is required")
	}

	if uc.cache != nil {
		cached, hit, err := uc.cache.GetActive(ctx, userID)
		if err != nil {
			uc.logger.Warnw("subscription cache read failed", "error", err, "user_id", userID)
		} else if hit {
			return cached, nil
		}
	}

	sub, err := uc.subscriptionRepo.GetActiveByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get active subscription: %w", err)
	}
	if sub == nil {
		return nil, nil
	}

	plan, err := uc.planRepo.GetByID(ctx, sub.PlanID())
	if err != nil {
		return nil, fmt.Errorf("failed to get plan: %w", err)
	}

	result := &ActiveSubscription{Subscription: sub, Plan: plan}

	if uc.cache != nil {
		if err := uc.cache.SetActive(ctx, userID, result); err != nil {
			uc.logger.Warnw("subscription cache write failed", "error", err, "user_id", userID)
		}
	}

	return result, nil
}
