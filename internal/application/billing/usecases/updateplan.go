package usecases

import (
	"context"
	"fmt"

	"gavel/internal/domain/billing"
	vo "gavel/internal/domain/billing/valueobjects"
	"gavel/internal/shared/logger"
)

type UpdatePlanCommand struct {
	PlanID       uint
	Name         *string
	Description  *string
	Price        *int64
	Interval     *string
	CreditAmount *int
	Features     []string
	Status       *string
}

// UpdatePlanUseCase applies a partial update to a catalog plan. Existing
// subscriptions keep the terms they were sold under; changes only affect
// future purchases and renewals.
type UpdatePlanUseCase struct {
	planRepo billing.PlanRepository
	logger   logger.Interface
}

func NewUpdatePlanUseCase(planRepo billing.PlanRepository, log logger.Interface) *UpdatePlanUseCase {
	return &UpdatePlanUseCase{planRepo: planRepo, logger: log}
}

func (uc *UpdatePlanUseCase) Execute(ctx context.Context, cmd UpdatePlanCommand) (*billing.Plan, error) {
	plan, err := uc.planRepo.GetByID(ctx, cmd.PlanID)
	if err != nil {
		return nil, fmt.Errorf("failed to get plan: %w", err)
	}
	if plan == nil {
		return nil, billing.ErrPlanNotFound
	}

	update := billing.PlanUpdate{
		Name:         cmd.Name,
		Description:  cmd.Description,
		Price:        cmd.Price,
		CreditAmount: cmd.CreditAmount,
		Features:     cmd.Features,
	}
	if cmd.Interval != nil {
		interval, err := vo.ParseInterval(*cmd.Interval)
		if err != nil {
			return nil, err
		}
		update.Interval = &interval
	}
	if cmd.Status != nil {
		status := billing.PlanStatus(*cmd.Status)
		update.Status = &status
	}

	if err := plan.Apply(update); err != nil {
		return nil, err
	}

	if err := uc.planRepo.Update(ctx, plan); err != nil {
		uc.logger.Errorw("failed to update plan", "error", err, "plan_id", cmd.PlanID)
		return nil, fmt.Errorf("failed to update plan: %w", err)
	}

	uc.logger.Infow("plan updated", "plan_id", plan.ID(), "name", plan.Name())
	return plan, nil
}
