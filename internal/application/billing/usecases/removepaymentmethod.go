package usecases

import (
	"context"
	"fmt"

	"gavel/internal/domain/billing"
	"gavel/internal/shared/logger"
)

// RemovePaymentMethodUseCase soft-deletes a stored instrument. Ownership is
// checked so one user cannot remove another's card.
type RemovePaymentMethodUseCase struct {
	methodRepo billing.PaymentMethodRepository
	logger     logger.Interface
}

func NewRemovePaymentMethodUseCase(methodRepo billing.PaymentMethodRepository, log logger.Interface) *RemovePaymentMethodUseCase {
	return &RemovePaymentMethodUseCase{methodRepo: methodRepo, logger: log}
}

func (uc *RemovePaymentMethodUseCase) Execute(ctx context.Context, methodID, userID uint) error {
	method, err := uc.methodRepo.GetByID(ctx, methodID)
	if err != nil {
		return fmt.Errorf("failed to get payment method: %w", err)
	}
	if method == nil || method.UserID() != userID || !method.IsActive() {
		return billing.ErrPaymentMethodNotFound
	}

	method.Deactivate()

	if err := uc.methodRepo.Update(ctx, method); err != nil {
		uc.logger.Errorw("failed to remove payment method", "error", err, "method_id", methodID)
		return fmt.Errorf("failed to remove payment method: %w", err)
	}

	uc.logger.Infow("payment method removed", "user_id", userID, "method_id", methodID)
	return nil
}
