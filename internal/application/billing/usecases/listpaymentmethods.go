package usecases

import (
	"context"
	"fmt"

	"gavel/internal/domain/billing"
	"gavel/internal/shared/logger"
)

// ListPaymentMethodsUseCase returns a user's active stored instruments.
type ListPaymentMethodsUseCase struct {
	methodRepo billing.PaymentMethodRepository
	logger     logger.Interface
}

func NewListPaymentMethodsUseCase(methodRepo billing.PaymentMethodRepository, log logger.Interface) *ListPaymentMethodsUseCase {
	return &ListPaymentMethodsUseCase{methodRepo: methodRepo, logger: log}
}

func (uc *ListPaymentMethodsUseCase) Execute(ctx context.Context, userID uint) ([]*billing.PaymentMethod, error) {
	if userID == 0 {
		return nil, fmt.Errorf("user ID is required")
	}
	methods, err := uc.methodRepo.ListByUserID(ctx, userID)
	if err != nil {
		uc.logger.Errorw("failed to list payment methods", "error", err, "user_id", userID)
		return nil, fmt.Errorf("failed to list payment methods: %w", err)
	}
	return methods, nil
}
