package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"gavel/internal/domain/billing"
	"gavel/internal/infrastructure/persistence/models"
	"gavel/internal/shared/logger"
)

type nopLogger struct{}

func (nopLogger) Debug(msg string, args ...any)                   {}
func (nopLogger) Info(msg string, args ...any)                    {}
func (nopLogger) Warn(msg string, args ...any)                    {}
func (nopLogger) Error(msg string, args ...any)                   {}
func (l nopLogger) With(args ...any) logger.Interface             { return l }
func (l nopLogger) Named(name string) logger.Interface            { return l }
func (nopLogger) Debugw(msg string, keysAndValues ...interface{}) {}
func (nopLogger) Infow(msg string, keysAndValues ...interface{})  {}
func (nopLogger) Warnw(msg string, keysAndValues ...interface{})  {}
func (nopLogger) Errorw(msg string, keysAndValues ...interface{}) {}

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.UserModel{},
		&models.PlanModel{},
		&models.SubscriptionModel{},
		&models.PaymentMethodModel{},
		&models.PaymentModel{},
	)
	require.NoError(t, err)

	return db
}

func createTestUser(t *testing.T, db *gorm.DB, email string, credits int) uint {
	model := &models.UserModel{
		Email:   email,
		Name:    "Jane Doe",
		Status:  "active",
		Credits: credits,
	}
	require.NoError(t, db.Create(model).Error)
	return model.ID
}

func createTestSubscription(t *testing.T, userID uint, start, end time.Time) *billing.Subscription {
	sub, err := billing.NewSubscription(userID, 1, start, end, "pi_test_123", 2900)
	require.NoError(t, err)
	return sub
}
