package usecases

import (
	"context"
	"fmt"

	"gavel/internal/domain/billing"
	"gavel/internal/shared/logger"
)

// SetDefaultPaymentMethodUseCase promotes one stored instrument to default.
// The previous default is cleared in the same transaction; renewals charge
// whichever method carries the flag at sweep time.
type SetDefaultPaymentMethodUseCase struct {
	methodRepo billing.PaymentMethodRepository
	logger     logger.Interface
}

func NewSetDefaultPaymentMethodUseCase(methodRepo billing.PaymentMethodRepository, log logger.Interface) *SetDefaultPaymentMethodUseCase {
	return &SetDefaultPaymentMethodUseCase{methodRepo: methodRepo, logger: log}
}

func (uc *SetDefaultPaymentMethodUseCase) Execute(ctx context.Context, methodID, userID uint) (*billing.PaymentMethod, error) {
	method, err := uc.methodRepo.GetByID(ctx, methodID)
	if err != nil {
		return nil, fmt.Errorf("failed to get payment method: %w", err)
	}
	if method == nil || method.UserID() != userID || !method.IsActive() {
		return nil, billing.ErrPaymentMethodNotFound
	}

	method.MarkDefault()

	if err := uc.methodRepo.SetDefaultExclusively(ctx, method); err != nil {
		uc.logger.Errorw("failed to set default payment method", "error", err, "method_id", methodID)
		return nil, fmt.Errorf("failed to set default payment method: %w", err)
	}

	uc.logger.Infow("default payment method changed", "user_id", userID, "method_id", methodID)
	return method, nil
}
