package usecases

import (
	"context"
	"fmt"

	"gavel/internal/domain/billing"
	"gavel/internal/shared/logger"
)

// DeactivatePlanUseCase retires a plan from the catalog. Subscriptions
// already sold against it keep running until they lapse.
type DeactivatePlanUseCase struct {
	planRepo billing.PlanRepository
	logger   logger.Interface
}

func NewDeactivatePlanUseCase(planRepo billing.PlanRepository, log logger.Interface) *DeactivatePlanUseCase {
	return &DeactivatePlanUseCase{planRepo: planRepo, logger: log}
}

func (uc *DeactivatePlanUseCase) Execute(ctx context.Context, planID uint) error {
	plan, err := uc.planRepo.GetByID(ctx, planID)
	if err != nil {
		return fmt.Errorf("failed to get plan: %w", err)
	}
	if plan == nil {
		return billing.ErrPlanNotFound
	}

	plan.Deactivate()

	if err := uc.planRepo.Update(ctx, plan); err != nil {
		uc.logger.Errorw("failed to deactivate plan", "error", err, "plan_id", planID)
		return fmt.Errorf("failed to deactivate plan: %w", err)
	}

	uc.logger.Infow("plan deactivated", "plan_id", planID)
	return nil
}
