package usecases

import (
	"context"
	"fmt"

	"gavel/internal/domain/billing"
	"gavel/internal/shared/logger"
)

// GetPlanUseCase fetches a single plan by ID.
type GetPlanUseCase struct {
	planRepo billing.PlanRepository
	logger   logger.Interface
}

func NewGetPlanUseCase(planRepo billing.PlanRepository, log logger.Interface) *GetPlanUseCase {
	return &GetPlanUseCase{planRepo: planRepo, logger: log}
}

func (uc *GetPlanUseCase) Execute(ctx context.Context, planID uint) (*billing.Plan, error) {
	plan, err := uc.planRepo.GetByID(ctx, planID)
	if err != nil {
		return nil, fmt.Errorf("failed to get plan: %w", err)
	}
	if plan == nil {
		return nil, billing.ErrPlanNotFound
	}
	return plan, nil
}
