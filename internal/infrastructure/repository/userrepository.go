package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"gavel/internal/domain/user"
	"gavel/internal/infrastructure/persistence/mappers"
	"gavel/internal/infrastructure/persistence/models"
	"gavel/internal/shared/logger"
)

type UserRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.UserMapper
	logger logger.Interface
}

func NewUserRepository(db *gorm.DB, logger logger.Interface) user.Repository {
	return &UserRepositoryImpl{
		db:     db,
		mapper: mappers.NewUserMapper(),
		logger: logger,
	}
}

func (r *UserRepositoryImpl) GetByID(ctx context.Context, id uint) (*user.User, error) {
	var model models.UserModel

	if err := r.db.WithContext(ctx).First(&model, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get user by ID", "id", id, "error", err)
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return r.mapper.ToEntity(&model)
}

func (r *UserRepositoryImpl) GetCredits(ctx context.Context, id uint) (int, error) {
	var credits int

	err := r.db.WithContext(ctx).Model(&models.UserModel{}).
		Select("credits").
		Where("id = ?", id).
		Scan(&credits).Error
	if err != nil {
		r.logger.Errorw("failed to get user credits", "id", id, "error", err)
		return 0, fmt.Errorf("failed to get user credits: %w", err)
	}

	return credits, nil
}

func (r *UserRepositoryImpl) SetCredits(ctx context.Context, id uint, credits int) error {
	if credits < 0 {
		credits = 0
	}

	result := r.db.WithContext(ctx).Model(&models.UserModel{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"credits":    credits,
			"updated_at": time.Now().UTC(),
		})
	if result.Error != nil {
		r.logger.Errorw("failed to set user credits", "id", id, "error", result.Error)
		return fmt.Errorf("failed to set user credits: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return user.ErrUserNotFound
	}

	return nil
}

func (r *UserRepositoryImpl) AddCredits(ctx context.Context, id uint, delta int) error {
	if delta <= 0 {
		return nil
	}

	result := r.db.WithContext(ctx).Model(&models.UserModel{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"credits":    gorm.Expr("credits + ?", delta),
			"updated_at": time.Now().UTC(),
		})
	if result.Error != nil {
		r.logger.Errorw("failed to add user credits", "id", id, "error", result.Error)
		return fmt.Errorf("failed to add user credits: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return user.ErrUserNotFound
	}

	return nil
}
