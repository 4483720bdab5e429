package usecases

import (
	"context"
	"fmt"

	"gavel/internal/domain/billing"
	"gavel/internal/shared/logger"
)

// ListPaymentsUseCase returns a user's charge history, newest first.
type ListPaymentsUseCase struct {
	paymentRepo billing.PaymentRepository
	logger      logger.Interface
}

func NewListPaymentsUseCase(paymentRepo billing.PaymentRepository, log logger.Interface) *ListPaymentsUseCase {
	return &ListPaymentsUseCase{paymentRepo: paymentRepo, logger: log}
}

func (uc *ListPaymentsUseCase) Execute(ctx context.Context, userID uint) ([]*billing.Payment, error) {
	if userID == 0 {
		return nil, fmt.Errorf("user ID is required")
	}
	payments, err := uc.paymentRepo.ListByUserID(ctx, userID)
	if err != nil {
		uc.logger.Errorw("failed to list payments", "error", err, "user_id", userID)
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	return payments, nil
}
