package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"gavel/internal/domain/billing"
	"gavel/internal/infrastructure/persistence/mappers"
	"gavel/internal/infrastructure/persistence/models"
	"gavel/internal/shared/logger"
)

type PaymentRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.PaymentMapper
	logger logger.Interface
}

func NewPaymentRepository(db *gorm.DB, logger logger.Interface) billing.PaymentRepository {
	return &PaymentRepositoryImpl{
		db:     db,
		mapper: mappers.NewPaymentMapper(),
		logger: logger,
	}
}

func (r *PaymentRepositoryImpl) Create(ctx context.Context, payment *billing.Payment) error {
	model, err := r.mapper.ToModel(payment)
	if err != nil {
		return fmt.Errorf("failed to map payment entity: %w", err)
	}

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		r.logger.Errorw("failed to create payment record", "error", err)
		return fmt.Errorf("failed to create payment record: %w", err)
	}

	if err := payment.SetID(model.ID); err != nil {
		return fmt.Errorf("failed to set payment ID: %w", err)
	}

	return nil
}

func (r *PaymentRepositoryImpl) ListByUserID(ctx context.Context, userID uint) ([]*billing.Payment, error) {
	var modelList []*models.PaymentModel

	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&modelList).Error; err != nil {
		r.logger.Errorw("failed to list payments", "user_id", userID, "error", err)
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}

	return r.mapper.ToEntities(modelList)
}
