package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"gavel/internal/domain/billing"
	"gavel/internal/infrastructure/persistence/mappers"
	"gavel/internal/infrastructure/persistence/models"
	"gavel/internal/shared/logger"
)

type PaymentMethodRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.PaymentMethodMapper
	logger logger.Interface
}

func NewPaymentMethodRepository(db *gorm.DB, logger logger.Interface) billing.PaymentMethodRepository {
	return &PaymentMethodRepositoryImpl{
		db:     db,
		mapper: mappers.NewPaymentMethodMapper(),
		logger: logger,
	}
}

func (r *PaymentMethodRepositoryImpl) Create(ctx context.Context, method *billing.PaymentMethod) error {
	model, err := r.mapper.ToModel(method)
	if err != nil {
		return fmt.Errorf("failed to map payment method entity: %w", err)
	}

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		r.logger.Errorw("failed to create payment method in database", "error", err)
		return fmt.Errorf("failed to create payment method: %w", err)
	}

	if err := method.SetID(model.ID); err != nil {
		return fmt.Errorf("failed to set payment method ID: %w", err)
	}

	return nil
}

func (r *PaymentMethodRepositoryImpl) GetByID(ctx context.Context, id uint) (*billing.PaymentMethod, error) {
	var model models.PaymentMethodModel

	if err := r.db.WithContext(ctx).First(&model, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get payment method by ID", "id", id, "error", err)
		return nil, fmt.Errorf("failed to get payment method: %w", err)
	}

	return r.mapper.ToEntity(&model)
}

func (r *PaymentMethodRepositoryImpl) GetDefaultByUserID(ctx context.Context, userID uint) (*billing.PaymentMethod, error) {
	var model models.PaymentMethodModel

	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND is_default = ? AND active = ?", userID, true, true).
		First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get default payment method", "user_id", userID, "error", err)
		return nil, fmt.Errorf("failed to get default payment method: %w", err)
	}

	return r.mapper.ToEntity(&model)
}

func (r *PaymentMethodRepositoryImpl) ListByUserID(ctx context.Context, userID uint) ([]*billing.PaymentMethod, error) {
	var modelList []*models.PaymentMethodModel

	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND active = ?", userID, true).
		Order("created_at DESC").
		Find(&modelList).Error; err != nil {
		r.logger.Errorw("failed to list payment methods", "user_id", userID, "error", err)
		return nil, fmt.Errorf("failed to list payment methods: %w", err)
	}

	return r.mapper.ToEntities(modelList)
}

func (r *PaymentMethodRepositoryImpl) Update(ctx context.Context, method *billing.PaymentMethod) error {
	model, err := r.mapper.ToModel(method)
	if err != nil {
		return fmt.Errorf("failed to map payment method entity: %w", err)
	}

	result := r.db.WithContext(ctx).Model(&models.PaymentMethodModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]interface{}{
			"is_default": model.IsDefault,
			"active":     model.Active,
			"updated_at": model.UpdatedAt,
		})
	if result.Error != nil {
		r.logger.Errorw("failed to update payment method", "id", model.ID, "error", result.Error)
		return fmt.Errorf("failed to update payment method: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return billing.ErrPaymentMethodNotFound
	}

	return nil
}

func (r *PaymentMethodRepositoryImpl) SetDefaultExclusively(ctx context.Context, method *billing.PaymentMethod) error {
	model, err := r.mapper.ToModel(method)
	if err != nil {
		return fmt.Errorf("failed to map payment method entity: %w", err)
	}

	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Lock the user's current default rows so two concurrent switches
		// serialize instead of each clearing the other's flag.
		var current []models.PaymentMethodModel
		if err := forUpdate(tx).
			Where("user_id = ? AND is_default = ?", model.UserID, true).
			Find(&current).Error; err != nil {
			return fmt.Errorf("failed to lock default payment methods: %w", err)
		}

		if err := tx.Model(&models.PaymentMethodModel{}).
			Where("user_id = ? AND is_default = ?", model.UserID, true).
			Updates(map[string]interface{}{
				"is_default": false,
				"updated_at": time.Now().UTC(),
			}).Error; err != nil {
			return fmt.Errorf("failed to clear default payment methods: %w", err)
		}

		if model.ID == 0 {
			if err := tx.Create(model).Error; err != nil {
				return fmt.Errorf("failed to create payment method: %w", err)
			}
			return nil
		}

		result := tx.Model(&models.PaymentMethodModel{}).
			Where("id = ?", model.ID).
			Updates(map[string]interface{}{
				"is_default": true,
				"updated_at": model.UpdatedAt,
			})
		if result.Error != nil {
			return fmt.Errorf("failed to promote payment method: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return billing.ErrPaymentMethodNotFound
		}
		return nil
	})
	if err != nil {
		r.logger.Errorw("failed to set default payment method", "user_id", model.UserID, "error", err)
		return err
	}

	if method.ID() == 0 {
		if err := method.SetID(model.ID); err != nil {
			return fmt.Errorf("failed to set payment method ID: %w", err)
		}
	}

	return nil
}
