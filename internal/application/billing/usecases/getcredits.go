package usecases

import (
	"context"
	"fmt"

	"gavel/internal/shared/logger"
)

// GetCreditsUseCase reads a user's current credit balance.
type GetCreditsUseCase struct {
	userRepo UserCreditStore
	logger   logger.Interface
}

func NewGetCreditsUseCase(userRepo UserCreditStore, log logger.Interface) *GetCreditsUseCase {
	return &GetCreditsUseCase{userRepo: userRepo, logger: log}
}

func (uc *GetCreditsUseCase) Execute(ctx context.Context, userID uint) (int, error) {
	if userID == 0 {
		return 0, fmt.Errorf("user ID is required")
	}
	credits, err := uc.userRepo.GetCredits(ctx, userID)
	if err != nil {
		uc.logger.Errorw("failed to read credit balance", "error", err, "user_id", userID)
		return 0, fmt.Errorf("failed to read credit balance: %w", err)
	}
	return credits, nil
}
