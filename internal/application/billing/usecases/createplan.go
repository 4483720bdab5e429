package usecases

import (
	"context"
	"fmt"

	"gavel/internal/domain/billing"
	vo "gavel/internal/domain/billing/valueobjects"
	"gavel/internal/shared/logger"
)

type CreatePlanCommand struct {
	Name         string
	Description  string
	Price        int64
	Interval     string
	CreditAmount int
	Features     []string
}

// CreatePlanUseCase adds a plan to the catalog.
type CreatePlanUseCase struct {
	planRepo billing.PlanRepository
	logger   logger.Interface
}

func NewCreatePlanUseCase(planRepo billing.PlanRepository, log logger.Interface) *CreatePlanUseCase {
	return &CreatePlanUseCase{planRepo: planRepo, logger: log}
}

func (uc *CreatePlanUseCase) Execute(ctx context.Context, cmd CreatePlanCommand) (*billing.Plan, error) {
	interval, err := vo.ParseInterval(cmd.Interval)
	if err != nil {
		return nil, err
	}

	plan, err := billing.NewPlan(cmd.Name, cmd.Description, cmd.Price, interval, cmd.CreditAmount, cmd.Features)
	if err != nil {
		return nil, err
	}

	if err := uc.planRepo.Create(ctx, plan); err != nil {
		uc.logger.Errorw("failed to create plan", "error", err, "name", cmd.Name)
		return nil, fmt.Errorf("failed to create plan: %w", err)
	}

	uc.logger.Infow("plan created", "plan_id", plan.ID(), "name", plan.Name(), "interval", plan.Interval())
	return plan, nil
}
