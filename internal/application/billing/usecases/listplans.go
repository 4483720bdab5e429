package usecases

import (
	"context"
	"fmt"

	"gavel/internal/domain/billing"
	"gavel/internal/shared/logger"
)

// ListPlansUseCase returns the purchasable catalog. IncludeInactive widens
// the listing for admin views.
type ListPlansUseCase struct {
	planRepo billing.PlanRepository
	logger   logger.Interface
}

func NewListPlansUseCase(planRepo billing.PlanRepository, log logger.Interface) *ListPlansUseCase {
	return &ListPlansUseCase{planRepo: planRepo, logger: log}
}

func (uc *ListPlansUseCase) Execute(ctx context.Context, includeInactive bool) ([]*billing.Plan, error) {
	var (
		plans []*billing.Plan
		err   error
	)
	if includeInactive {
		plans, err = uc.planRepo.List(ctx)
	} else {
		plans, err = uc.planRepo.ListActive(ctx)
	}
	if err != nil {
		uc.logger.Errorw("failed to list plans", "error", err)
		return nil, fmt.Errorf("failed to list plans: %w", err)
	}
	return plans, nil
}
