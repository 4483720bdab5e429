package usecases

import (
	"context"
	"fmt"

	"gavel/internal/application/billing/gateway"
	"gavel/internal/domain/billing"
	"gavel/internal/shared/logger"
)

type CreateChargeIntentCommand struct {
	UserID   uint
	Amount   int64
	Currency string
	// PlanID is optional; when set the amount is taken from the plan price
	// and the client-supplied amount is ignored.
	PlanID uint
}

type CreateChargeIntentResult struct {
	IntentID     string
	ClientSecret string
	Amount       int64
	Currency     string
}

// CreateChargeIntentUseCase opens a charge with the gateway and hands the
// client secret back for client-side confirmation.
type CreateChargeIntentUseCase struct {
	planRepo      billing.PlanRepository
	chargeGateway gateway.ChargeGateway
	currency      string
	logger        logger.Interface
}

func NewCreateChargeIntentUseCase(
	planRepo billing.PlanRepository,
	chargeGateway gateway.ChargeGateway,
	currency string,
	log logger.Interface,
) *CreateChargeIntentUseCase {
	if currency == "" {
		currency = "usd"
	}
	return &CreateChargeIntentUseCase{
		planRepo:      planRepo,
		chargeGateway: chargeGateway,
		currency:      currency,
		logger:        log,
	}
}

func (uc *CreateChargeIntentUseCase) Execute(ctx context.Context, cmd CreateChargeIntentCommand) (*CreateChargeIntentResult, error) {
	if cmd.UserID == 0 {
		return nil, fmt.Errorf("user ID is required")
	}

	amount := cmd.Amount
	currency := cmd.Currency
	if currency == "" {
		currency = uc.currency
	}

	if cmd.PlanID != 0 {
		plan, err := uc.planRepo.GetByID(ctx, cmd.PlanID)
		if err != nil {
			return nil, fmt.Errorf("failed to get plan: %w", err)
		}
		if plan == nil {
			return nil, billing.ErrPlanNotFound
		}
		if !plan.IsActive() {
			return nil, billing.ErrPlanInactive
		}
		amount = plan.Price()
	}

	if amount <= 0 {
		return nil, billing.ErrInvalidPrice
	}

	intent, err := uc.chargeGateway.CreateIntent(ctx, amount, currency)
	if err != nil {
		uc.logger.Errorw("failed to create payment intent", "error", err, "user_id", cmd.UserID, "amount", amount)
		return nil, err
	}

	uc.logger.Infow("payment intent created",
		"user_id", cmd.UserID,
		"intent_id", intent.ID,
		"amount", amount,
		"currency", currency,
	)

	return &CreateChargeIntentResult{
		IntentID:     intent.ID,
		ClientSecret: intent.ClientSecret,
		Amount:       amount,
		Currency:     currency,
	}, nil
}
