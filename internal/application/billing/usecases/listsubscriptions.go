package usecases

import (
	"context"
	"fmt"

	"gavel/internal/domain/billing"
	"gavel/internal/shared/logger"
)

// ListSubscriptionsUseCase returns every subscription with plan details,
// newest first. Admin reporting surface.
type ListSubscriptionsUseCase struct {
	subscriptionRepo billing.SubscriptionRepository
	planRepo         billing.PlanRepository
	logger           logger.Interface
}

func NewListSubscriptionsUseCase(
	subscriptionRepo billing.SubscriptionRepository,
	planRepo billing.PlanRepository,
	log logger.Interface,
) *ListSubscriptionsUseCase {
	return &ListSubscriptionsUseCase{
		subscriptionRepo: subscriptionRepo,
		planRepo:         planRepo,
		logger:           log,
	}
}

type SubscriptionWithPlan struct {
	Subscription *billing.Subscription
	Plan         *billing.Plan
}

func (uc *ListSubscriptionsUseCase) Execute(ctx context.Context) ([]SubscriptionWithPlan, error) {
	subs, err := uc.subscriptionRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list subscriptions: %w", err)
	}

	plans, err := uc.planRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list plans: %w", err)
	}

	planByID := make(map[uint]*billing.Plan, len(plans))
	for _, p := range plans {
		planByID[p.ID()] = p
	}

	result := make([]SubscriptionWithPlan, 0, len(subs))
	for _, s := range subs {
		result = append(result, SubscriptionWithPlan{
			Subscription: s,
			Plan:         planByID[s.PlanID()],
		})
	}

	return result, nil
}
