package usecases

import (
	"context"
	"fmt"

	"gavel/internal/domain/billing"
	"gavel/internal/shared/biztime"
	"gavel/internal/shared/logger"
)

type CancelSubscriptionCommand struct {
	SubscriptionID uint
	UserID         uint
}

// CancelSubscriptionUseCase terminates a subscription at the user's request.
// Cancelling an already-cancelled subscription returns ErrAlreadyCancelled.
type CancelSubscriptionUseCase struct {
	subscriptionRepo billing.SubscriptionRepository
	cache            SubscriptionCache
	logger           logger.Interface
}

func NewCancelSubscriptionUseCase(
	subscriptionRepo billing.SubscriptionRepository,
	cache SubscriptionCache,
	log logger.Interface,
) *CancelSubscriptionUseCase {
	return &CancelSubscriptionUseCase{
		subscriptionRepo: subscriptionRepo,
		cache:            cache,
		logger:           log,
	}
}

func (uc *CancelSubscriptionUseCase) Execute(ctx context.Context, cmd CancelSubscriptionCommand) (*billing.Subscription, error) {
	if cmd.SubscriptionID == 0 || cmd.UserID == 0 {
		return nil, fmt.Errorf("subscription ID and user ID are required")
	}

	sub, err := uc.subscriptionRepo.GetByIDAndUserID(ctx, cmd.SubscriptionID, cmd.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to get subscription: %w", err)
	}
	if sub == nil {
		return nil, billing.ErrSubscriptionNotFound
	}

	if err := sub.Cancel(biztime.NowUTC()); err != nil {
		return nil, err
	}

	if err := uc.subscriptionRepo.Update(ctx, sub); err != nil {
		uc.logger.Errorw("failed to persist cancellation", "error", err, "subscription_id", cmd.SubscriptionID)
		return nil, fmt.Errorf("failed to update subscription: %w", err)
	}

	if uc.cache != nil {
		if err := uc.cache.Invalidate(ctx, cmd.UserID); err != nil {
			uc.logger.Warnw("failed to invalidate subscription cache", "error", err, "user_id", cmd.UserID)
		}
	}

	uc.logger.Infow("subscription cancelled",
		"subscription_id", cmd.SubscriptionID,
		"user_id", cmd.UserID,
	)

	return sub, nil
}
