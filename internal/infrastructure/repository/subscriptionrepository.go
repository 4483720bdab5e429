package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"gavel/internal/domain/billing"
	vo "gavel/internal/domain/billing/valueobjects"
	"gavel/internal/infrastructure/persistence/mappers"
	"gavel/internal/infrastructure/persistence/models"
	"gavel/internal/shared/constants"
	"gavel/internal/shared/logger"
)

type SubscriptionRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.SubscriptionMapper
	logger logger.Interface
}

func NewSubscriptionRepository(db *gorm.DB, logger logger.Interface) billing.SubscriptionRepository {
	return &SubscriptionRepositoryImpl{
		db:     db,
		mapper: mappers.NewSubscriptionMapper(),
		logger: logger,
	}
}

func (r *SubscriptionRepositoryImpl) Create(ctx context.Context, subscriptionEntity *billing.Subscription) error {
	model, err := r.mapper.ToModel(subscriptionEntity)
	if err != nil {
		r.logger.Errorw("failed to map subscription entity to model", "error", err)
		return fmt.Errorf("failed to map subscription entity: %w", err)
	}

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		r.logger.Errorw("failed to create subscription in database", "error", err)
		return fmt.Errorf("failed to create subscription: %w", err)
	}

	if err := subscriptionEntity.SetID(model.ID); err != nil {
		return fmt.Errorf("failed to set subscription ID: %w", err)
	}

	r.logger.Infow("subscription created", "id", model.ID, "user_id", model.UserID, "plan_id", model.PlanID)
	return nil
}

func (r *SubscriptionRepositoryImpl) GetByID(ctx context.Context, id uint) (*billing.Subscription, error) {
	var model models.SubscriptionModel

	if err := r.db.WithContext(ctx).First(&model, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get subscription by ID", "id", id, "error", err)
		return nil, fmt.Errorf("failed to get subscription: %w", err)
	}

	entity, err := r.mapper.ToEntity(&model)
	if err != nil {
		return nil, fmt.Errorf("failed to map subscription: %w", err)
	}

	return entity, nil
}

func (r *SubscriptionRepositoryImpl) GetByIDAndUserID(ctx context.Context, id, userID uint) (*billing.Subscription, error) {
	var model models.SubscriptionModel

	if err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get subscription", "id", id, "user_id", userID, "error", err)
		return nil, fmt.Errorf("failed to get subscription: %w", err)
	}

	entity, err := r.mapper.ToEntity(&model)
	if err != nil {
		return nil, fmt.Errorf("failed to map subscription: %w", err)
	}

	return entity, nil
}

func (r *SubscriptionRepositoryImpl) GetActiveByUserID(ctx context.Context, userID uint) (*billing.Subscription, error) {
	var model models.SubscriptionModel

	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND status = ?", userID, string(vo.StatusActive)).
		Order("created_at DESC").
		First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get active subscription", "user_id", userID, "error", err)
		return nil, fmt.Errorf("failed to get active subscription: %w", err)
	}

	entity, err := r.mapper.ToEntity(&model)
	if err != nil {
		return nil, fmt.Errorf("failed to map subscription: %w", err)
	}

	return entity, nil
}

func (r *SubscriptionRepositoryImpl) Update(ctx context.Context, subscriptionEntity *billing.Subscription) error {
	model, err := r.mapper.ToModel(subscriptionEntity)
	if err != nil {
		return fmt.Errorf("failed to map subscription entity: %w", err)
	}

	result := r.db.WithContext(ctx).Model(&models.SubscriptionModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]interface{}{
			"status":     model.Status,
			"start_date": model.StartDate,
			"end_date":   model.EndDate,
			"payment_id": model.PaymentID,
			"amount":     model.Amount,
			"updated_at": model.UpdatedAt,
		})
	if result.Error != nil {
		r.logger.Errorw("failed to update subscription", "id", model.ID, "error", result.Error)
		return fmt.Errorf("failed to update subscription: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return billing.ErrSubscriptionNotFound
	}

	return nil
}

func (r *SubscriptionRepositoryImpl) List(ctx context.Context) ([]*billing.Subscription, error) {
	var modelList []*models.SubscriptionModel

	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&modelList).Error; err != nil {
		r.logger.Errorw("failed to list subscriptions", "error", err)
		return nil, fmt.Errorf("failed to list subscriptions: %w", err)
	}

	return r.mapper.ToEntities(modelList)
}

func (r *SubscriptionRepositoryImpl) FindExpiringWithin(ctx context.Context, now time.Time, horizon time.Duration) ([]*billing.Subscription, error) {
	var modelList []*models.SubscriptionModel

	// Half-open window (now, now+horizon]: already-lapsed rows are the
	// expiry path's concern, not the renewal sweep's.
	if err := r.db.WithContext(ctx).
		Where("status = ? AND end_date > ? AND end_date <= ?", string(vo.StatusActive), now, now.Add(horizon)).
		Order("end_date ASC").
		Find(&modelList).Error; err != nil {
		r.logger.Errorw("failed to find expiring subscriptions", "error", err)
		return nil, fmt.Errorf("failed to find expiring subscriptions: %w", err)
	}

	return r.mapper.ToEntities(modelList)
}

func (r *SubscriptionRepositoryImpl) ActivateExclusively(ctx context.Context, subscriptionEntity *billing.Subscription, creditDelta int) error {
	model, err := r.mapper.ToModel(subscriptionEntity)
	if err != nil {
		return fmt.Errorf("failed to map subscription entity: %w", err)
	}

	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Lock the user's current ACTIVE rows so two concurrent purchases
		// serialize instead of both inserting.
		var active []models.SubscriptionModel
		if err := forUpdate(tx).
			Where("user_id = ? AND status = ?", model.UserID, string(vo.StatusActive)).
			Find(&active).Error; err != nil {
			return fmt.Errorf("failed to lock active subscriptions: %w", err)
		}

		for i := range active {
			prior, err := r.mapper.ToEntity(&active[i])
			if err != nil {
				return fmt.Errorf("failed to map active subscription: %w", err)
			}
			if err := prior.Supersede(); err != nil {
				return err
			}
			demoted, err := r.mapper.ToModel(prior)
			if err != nil {
				return fmt.Errorf("failed to map superseded subscription: %w", err)
			}
			if err := tx.Model(&models.SubscriptionModel{}).
				Where("id = ?", active[i].ID).
				Updates(map[string]interface{}{
					"status":     demoted.Status,
					"updated_at": demoted.UpdatedAt,
				}).Error; err != nil {
				return fmt.Errorf("failed to demote active subscription: %w", err)
			}
		}

		if err := tx.Create(model).Error; err != nil {
			return fmt.Errorf("failed to create subscription: %w", err)
		}

		if creditDelta > 0 {
			result := tx.Table(constants.TableUsers).
				Where("id = ?", model.UserID).
				UpdateColumn("credits", gorm.Expr("credits + ?", creditDelta))
			if result.Error != nil {
				return fmt.Errorf("failed to grant credits: %w", result.Error)
			}
			if result.RowsAffected == 0 {
				return fmt.Errorf("user %d not found for credit grant", model.UserID)
			}
		}

		return nil
	})
	if err != nil {
		r.logger.Errorw("failed to activate subscription", "user_id", model.UserID, "error", err)
		return err
	}

	if err := subscriptionEntity.SetID(model.ID); err != nil {
		return fmt.Errorf("failed to set subscription ID: %w", err)
	}

	r.logger.Infow("subscription activated",
		"id", model.ID,
		"user_id", model.UserID,
		"plan_id", model.PlanID,
		"credit_delta", creditDelta,
	)
	return nil
}
