package usecases

import (
	"context"
	"fmt"

	"gavel/internal/domain/billing"
	"gavel/internal/shared/logger"
)

type AddPaymentMethodCommand struct {
	UserID          uint
	GatewayMethodID string
	CardholderName  string
	ExpiryMonth     string
	ExpiryYear      string
	LastFourDigits  string
	CardType        string
}

// AddPaymentMethodUseCase stores a tokenized charge instrument. A newly added
// method becomes the default; the previous default is cleared in the same
// transaction so the renewal sweep always sees exactly one.
type AddPaymentMethodUseCase struct {
	methodRepo billing.PaymentMethodRepository
	logger     logger.Interface
}

func NewAddPaymentMethodUseCase(methodRepo billing.PaymentMethodRepository, log logger.Interface) *AddPaymentMethodUseCase {
	return &AddPaymentMethodUseCase{methodRepo: methodRepo, logger: log}
}

func (uc *AddPaymentMethodUseCase) Execute(ctx context.Context, cmd AddPaymentMethodCommand) (*billing.PaymentMethod, error) {
	method, err := billing.NewPaymentMethod(
		cmd.UserID,
		cmd.GatewayMethodID,
		cmd.CardholderName,
		cmd.ExpiryMonth,
		cmd.ExpiryYear,
		cmd.LastFourDigits,
		cmd.CardType,
	)
	if err != nil {
		return nil, err
	}

	if err := uc.methodRepo.SetDefaultExclusively(ctx, method); err != nil {
		uc.logger.Errorw("failed to store payment method", "error", err, "user_id", cmd.UserID)
		return nil, fmt.Errorf("failed to store payment method: %w", err)
	}

	uc.logger.Infow("payment method added",
		"user_id", cmd.UserID,
		"method_id", method.ID(),
		"card_type", method.CardType(),
		"last_four", method.LastFourDigits(),
	)

	return method, nil
}
